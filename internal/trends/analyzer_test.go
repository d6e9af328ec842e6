package trends

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Krishiv14/EarningsAgent/internal/contracts"
)

func snapshots(pairs ...[2]float64) []contracts.MetricSnapshot {
	out := make([]contracts.MetricSnapshot, len(pairs))
	for i, p := range pairs {
		out[i] = contracts.MetricSnapshot{Revenue: p[0], NetProfit: p[1]}
	}
	return out
}

func TestAnalyzer_InsufficientHistory(t *testing.T) {
	a := NewAnalyzer(zerolog.Nop())

	_, err := a.Analyze("TCS", snapshots([2]float64{100, 10}, [2]float64{110, 11}))
	require.Error(t, err)
	assert.ErrorIs(t, err, contracts.ErrInsufficientHistory)
}

func TestAnalyzer_GrowingTrend(t *testing.T) {
	a := NewAnalyzer(zerolog.Nop())

	// 매출/이익 모두 분기당 +10%
	series := snapshots(
		[2]float64{100, 10},
		[2]float64{110, 11},
		[2]float64{121, 12.1},
		[2]float64{133.1, 13.31},
	)

	report, err := a.Analyze("TCS", series)
	require.NoError(t, err)

	assert.Equal(t, DirGrowing, report.RevenueTrend)
	assert.Equal(t, DirGrowing, report.ProfitTrend)
	assert.Equal(t, DirStable, report.MarginTrend) // 마진 10%로 고정
	assert.Equal(t, ConsistencyHigh, report.Consistency)
	assert.Empty(t, report.Alerts)
	assert.Len(t, report.Quarters, 4)

	require.NotNil(t, report.Projection)
	assert.InDelta(t, 10, report.Projection.RevenueChangePct, 1e-9)
	assert.InDelta(t, 133.1*1.1, report.Projection.Revenue, 1e-9)
	assert.Equal(t, ConfidenceMedium, report.Projection.Confidence)
}

func TestAnalyzer_DecliningProfitWithGrowingRevenue(t *testing.T) {
	a := NewAnalyzer(zerolog.Nop())

	// 매출은 +10%씩, 이익은 -10%씩: 마진 압박 + 동시 경고
	series := snapshots(
		[2]float64{100, 20},
		[2]float64{110, 18},
		[2]float64{121, 16.2},
		[2]float64{133.1, 14.58},
	)

	report, err := a.Analyze("RELIANCE", series)
	require.NoError(t, err)

	assert.Equal(t, DirGrowing, report.RevenueTrend)
	assert.Equal(t, DirDeclining, report.ProfitTrend)
	assert.Equal(t, DirDeclining, report.MarginTrend)
	assert.Contains(t, report.Alerts, "3 consecutive quarters of margin compression")
	assert.Contains(t, report.Alerts, "revenue growing while profit declines")
}

func TestAnalyzer_AcceleratingProfitDecline(t *testing.T) {
	a := NewAnalyzer(zerolog.Nop())

	// 이익 변화: -2%, -5%, -12% (점점 악화)
	series := snapshots(
		[2]float64{100, 100},
		[2]float64{100, 98},
		[2]float64{100, 93.1},
		[2]float64{100, 81.9},
	)

	report, err := a.Analyze("INFY", series)
	require.NoError(t, err)
	assert.Contains(t, report.Alerts, "profit decline is accelerating")
}

func TestAnalyzer_VolatileSeries(t *testing.T) {
	a := NewAnalyzer(zerolog.Nop())

	// 매출 변화 +50%, -40%, +60%: 고변동
	series := snapshots(
		[2]float64{100, 10},
		[2]float64{150, 12},
		[2]float64{90, 9},
		[2]float64{144, 13},
	)

	report, err := a.Analyze("TATAMOTORS", series)
	require.NoError(t, err)
	assert.Equal(t, ConsistencyVolatile, report.Consistency)

	require.NotNil(t, report.Projection)
	assert.Equal(t, ConfidenceLow, report.Projection.Confidence)
}

func TestAnalyzer_ZeroPriorHandledAsUndefined(t *testing.T) {
	a := NewAnalyzer(zerolog.Nop())

	series := snapshots(
		[2]float64{0, 0},
		[2]float64{100, 10},
		[2]float64{110, 11},
		[2]float64{121, 12.1},
	)

	report, err := a.Analyze("NEWCO", series)
	require.NoError(t, err)

	// 첫 구간은 전기 0이라 변화율 없음
	assert.Nil(t, report.Quarters[1].RevenueChangePct)
	require.NotNil(t, report.Quarters[2].RevenueChangePct)
	assert.InDelta(t, 10, *report.Quarters[2].RevenueChangePct, 1e-9)
}

func TestAnalyzer_TruncatesToMaxQuarters(t *testing.T) {
	a := NewAnalyzer(zerolog.Nop())

	series := make([]contracts.MetricSnapshot, 12)
	for i := range series {
		series[i] = contracts.MetricSnapshot{Revenue: 100 + float64(i), NetProfit: 10}
	}

	report, err := a.Analyze("ITC", series)
	require.NoError(t, err)
	assert.Len(t, report.Quarters, DefaultThresholds().MaxQuarters)
}
