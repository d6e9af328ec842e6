package report

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Krishiv14/EarningsAgent/internal/contracts"
)

const sampleHTML = `
<html><body>
<h1>Q3 FY26 Results</h1>
<table>
  <tr><th>Particulars</th><th>Q3 FY26</th><th>Q2 FY26</th></tr>
  <tr><td>Revenue from Operations</td><td>Rs 1,24,500.50</td><td>Rs 1,10,000.00</td></tr>
  <tr><td>EBITDA</td><td>32,100</td><td>30,500</td></tr>
  <tr><td>Net Profit</td><td>18,250.25</td><td>17,900</td></tr>
  <tr><td>Basic EPS</td><td>12.4</td><td>12.1</td></tr>
</table>
</body></html>`

const sampleText = `
Financial Highlights for the quarter:
Total Revenue: Rs 98,765.4
Profit After Tax: 12,345.6
EBITDA: 23,456
Basic EPS: 8.75
`

func TestExtractor_HTML(t *testing.T) {
	e := NewExtractor(zerolog.Nop())

	metrics, err := e.ExtractHTML(strings.NewReader(sampleHTML))
	require.NoError(t, err)

	require.NotNil(t, metrics.Revenue)
	assert.InDelta(t, 124500.50, *metrics.Revenue, 1e-9)
	require.NotNil(t, metrics.Profit)
	assert.InDelta(t, 18250.25, *metrics.Profit, 1e-9)
	require.NotNil(t, metrics.EBITDA)
	assert.InDelta(t, 32100, *metrics.EBITDA, 1e-9)
	require.NotNil(t, metrics.EPS)
	assert.InDelta(t, 12.4, *metrics.EPS, 1e-9)
	assert.Equal(t, 4, metrics.Found())
}

func TestExtractor_Text(t *testing.T) {
	e := NewExtractor(zerolog.Nop())

	metrics := e.ExtractText(sampleText)

	require.NotNil(t, metrics.Revenue)
	assert.InDelta(t, 98765.4, *metrics.Revenue, 1e-9)
	require.NotNil(t, metrics.Profit)
	assert.InDelta(t, 12345.6, *metrics.Profit, 1e-9)
	require.NotNil(t, metrics.EBITDA)
	assert.InDelta(t, 23456, *metrics.EBITDA, 1e-9)
	require.NotNil(t, metrics.EPS)
	assert.InDelta(t, 8.75, *metrics.EPS, 1e-9)
}

func TestExtractor_TextMissingFields(t *testing.T) {
	e := NewExtractor(zerolog.Nop())

	metrics := e.ExtractText("Management commentary without any figures.")
	assert.Equal(t, 0, metrics.Found())
	assert.Nil(t, metrics.Revenue)
}

func TestExtractor_NegativeProfit(t *testing.T) {
	e := NewExtractor(zerolog.Nop())

	metrics := e.ExtractText("Net Sales: 5,000\nNet Profit: -1,200.5\n")
	require.NotNil(t, metrics.Profit)
	assert.InDelta(t, -1200.5, *metrics.Profit, 1e-9)
}

func TestMetrics_Snapshot(t *testing.T) {
	rev, profit := 1000.0, 120.0

	full := &Metrics{Revenue: &rev, Profit: &profit}
	snapshot, err := full.Snapshot("2026-Q2")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, snapshot.Revenue)
	assert.Equal(t, 120.0, snapshot.NetProfit)
	assert.Equal(t, "2026-Q2", snapshot.Period)

	// 매출이나 이익이 빠지면 스냅샷 불가
	partial := &Metrics{Revenue: &rev}
	_, err = partial.Snapshot("2026-Q2")
	require.Error(t, err)
	assert.ErrorIs(t, err, contracts.ErrInvalidInput)
}

func TestExtractor_HTMLFallsBackToTextSweep(t *testing.T) {
	e := NewExtractor(zerolog.Nop())

	// 표 없이 본문에만 수치가 있는 HTML
	html := `<html><body><p>Total Revenue: 4,500 and Net Profit: 320</p></body></html>`
	metrics, err := e.ExtractHTML(strings.NewReader(html))
	require.NoError(t, err)
	require.NotNil(t, metrics.Revenue)
	assert.InDelta(t, 4500, *metrics.Revenue, 1e-9)
	require.NotNil(t, metrics.Profit)
	assert.InDelta(t, 320, *metrics.Profit, 1e-9)
}
