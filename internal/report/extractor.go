package report

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/Krishiv14/EarningsAgent/internal/contracts"
)

// Metrics holds figures extracted from an earnings report.
// nil = 해당 항목을 찾지 못함
type Metrics struct {
	Revenue *float64 `json:"revenue"`
	Profit  *float64 `json:"profit"`
	EBITDA  *float64 `json:"ebitda"`
	EPS     *float64 `json:"eps"`
}

// Found reports how many metrics were extracted.
func (m *Metrics) Found() int {
	count := 0
	for _, v := range []*float64{m.Revenue, m.Profit, m.EBITDA, m.EPS} {
		if v != nil {
			count++
		}
	}
	return count
}

// Snapshot converts extracted metrics into a MetricSnapshot.
// Revenue와 Profit은 필수: 없으면 ErrInvalidInput
func (m *Metrics) Snapshot(period string) (contracts.MetricSnapshot, error) {
	if m.Revenue == nil || m.Profit == nil {
		return contracts.MetricSnapshot{}, fmt.Errorf(
			"report is missing revenue or profit figures: %w", contracts.ErrInvalidInput)
	}
	return contracts.MetricSnapshot{
		Revenue:   *m.Revenue,
		NetProfit: *m.Profit,
		Period:    period,
	}, nil
}

// Extraction regex patterns. 인도 결산 공시 표기 관행 기준 (Rs/INR/₹ 접두 허용)
var (
	revenuePattern = regexp.MustCompile(`(?i)(?:Total Revenue|Net Sales|Total Income|Revenue from Operations)\s*[:\s]\s*(?:Rs\.?|INR|₹)?\s*([0-9][0-9,]*\.?[0-9]*)`)
	profitPattern  = regexp.MustCompile(`(?i)(?:Net Profit|PAT|Profit After Tax|Profit for the period)\s*[:\s]\s*(?:Rs\.?|INR|₹)?\s*(-?[0-9][0-9,]*\.?[0-9]*)`)
	ebitdaPattern  = regexp.MustCompile(`(?i)EBITDA\s*[:\s]\s*(?:Rs\.?|INR|₹)?\s*(-?[0-9][0-9,]*\.?[0-9]*)`)
	epsPattern     = regexp.MustCompile(`(?i)(?:Basic EPS|Earnings Per Share|EPS)\s*[:\s]\s*(?:Rs\.?|INR|₹)?\s*(-?[0-9][0-9,]*\.?[0-9]*)`)

	numberPattern = regexp.MustCompile(`-?[0-9][0-9,]*\.?[0-9]*`)
)

// Extractor pulls key figures out of already-downloaded earnings reports
// ⭐ SSOT: 리포트 수치 추출은 여기서만
//
// It never fetches anything; callers hand it report text or HTML.
type Extractor struct {
	log zerolog.Logger
}

// NewExtractor creates an extractor.
func NewExtractor(log zerolog.Logger) *Extractor {
	return &Extractor{log: log.With().Str("component", "report.extractor").Logger()}
}

// ExtractHTML parses an HTML report: table rows first, then a regex sweep
// over the document text for anything the tables did not yield.
func (e *Extractor) ExtractHTML(r io.Reader) (*Metrics, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse report HTML: %w", err)
	}

	metrics := &Metrics{}

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() < 2 {
			return
		}

		label := strings.ToLower(strings.TrimSpace(cells.First().Text()))
		value, ok := firstNumber(cells.Slice(1, cells.Length()))
		if !ok {
			return
		}

		assignByLabel(metrics, label, value)
	})

	// 표에서 못 찾은 항목은 본문 텍스트에서 패턴 매칭
	fillFromText(metrics, doc.Text())

	e.log.Debug().Int("found", metrics.Found()).Msg("extracted metrics from HTML report")
	return metrics, nil
}

// ExtractText applies the regex patterns to plain report text.
func (e *Extractor) ExtractText(text string) *Metrics {
	metrics := &Metrics{}
	fillFromText(metrics, text)

	e.log.Debug().Int("found", metrics.Found()).Msg("extracted metrics from text report")
	return metrics
}

// assignByLabel routes a table value into the right metric slot.
// 이미 찾은 항목은 덮어쓰지 않음 (첫 매치 우선)
func assignByLabel(m *Metrics, label string, value float64) {
	switch {
	case m.Revenue == nil && (strings.Contains(label, "revenue") || strings.Contains(label, "sales") || strings.Contains(label, "total income")):
		m.Revenue = &value
	case m.EBITDA == nil && strings.Contains(label, "ebitda"):
		m.EBITDA = &value
	case m.EPS == nil && (strings.Contains(label, "eps") || strings.Contains(label, "earnings per share")):
		m.EPS = &value
	case m.Profit == nil && (strings.Contains(label, "profit") || strings.Contains(label, "pat")):
		m.Profit = &value
	}
}

// fillFromText fills still-missing metrics via regex.
func fillFromText(m *Metrics, text string) {
	if m.Revenue == nil {
		m.Revenue = matchNumber(revenuePattern, text)
	}
	if m.Profit == nil {
		m.Profit = matchNumber(profitPattern, text)
	}
	if m.EBITDA == nil {
		m.EBITDA = matchNumber(ebitdaPattern, text)
	}
	if m.EPS == nil {
		m.EPS = matchNumber(epsPattern, text)
	}
}

func matchNumber(pattern *regexp.Regexp, text string) *float64 {
	match := pattern.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	v, err := parseNumber(match[1])
	if err != nil {
		return nil
	}
	return &v
}

// firstNumber returns the first parseable number in the given cells.
func firstNumber(cells *goquery.Selection) (float64, bool) {
	var value float64
	found := false

	cells.EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		raw := numberPattern.FindString(cell.Text())
		if raw == "" {
			return true
		}
		v, err := parseNumber(raw)
		if err != nil {
			return true
		}
		value = v
		found = true
		return false
	})

	return value, found
}

// parseNumber parses a comma-grouped decimal like "1,23,456.78".
func parseNumber(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	return strconv.ParseFloat(cleaned, 64)
}
