package trends

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/Krishiv14/EarningsAgent/internal/contracts"
)

// Analyzer derives multi-quarter trend reports from snapshot series
// ⭐ SSOT: 추세 분석은 이 구조체에서만
type Analyzer struct {
	thresholds Thresholds
	log        zerolog.Logger
}

// NewAnalyzer creates an analyzer with default thresholds.
func NewAnalyzer(log zerolog.Logger) *Analyzer {
	return NewAnalyzerWithThresholds(DefaultThresholds(), log)
}

// NewAnalyzerWithThresholds creates an analyzer with custom thresholds.
func NewAnalyzerWithThresholds(thresholds Thresholds, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		thresholds: thresholds,
		log:        log.With().Str("component", "trends.analyzer").Logger(),
	}
}

// Thresholds returns the thresholds in effect.
func (a *Analyzer) Thresholds() Thresholds {
	return a.thresholds
}

// Analyze builds a trend report from a chronological (oldest first) series of
// quarterly snapshots. 최소 3개 분기 필요, 최대 MaxQuarters개만 사용.
func (a *Analyzer) Analyze(ticker string, series []contracts.MetricSnapshot) (*Report, error) {
	if len(series) < 3 {
		return nil, fmt.Errorf("trend analysis needs at least 3 quarters, got %d: %w",
			len(series), contracts.ErrInsufficientHistory)
	}
	for _, s := range series {
		if !s.Valid() {
			return nil, fmt.Errorf("snapshot %q contains non-finite values: %w",
				s.Period, contracts.ErrInvalidInput)
		}
	}

	if max := a.thresholds.MaxQuarters; max > 0 && len(series) > max {
		series = series[len(series)-max:]
	}

	report := &Report{
		Ticker:   ticker,
		Quarters: buildPoints(series),
	}

	revChanges := collect(report.Quarters, func(p QuarterPoint) *float64 { return p.RevenueChangePct })
	profitChanges := collect(report.Quarters, func(p QuarterPoint) *float64 { return p.ProfitChangePct })

	recentRev := tailMean(revChanges, 3)
	recentProfit := tailMean(profitChanges, 3)

	report.RevenueTrend = a.direction(recentRev)
	report.ProfitTrend = a.direction(recentProfit)
	report.MarginTrend = a.marginDirection(report.Quarters)
	report.Consistency = a.consistency(revChanges)
	report.Alerts = a.alerts(report.Quarters, recentRev, recentProfit)
	report.Projection = a.project(series[len(series)-1], recentRev, recentProfit)

	a.log.Debug().
		Str("ticker", ticker).
		Int("quarters", len(report.Quarters)).
		Str("revenue_trend", string(report.RevenueTrend)).
		Str("profit_trend", string(report.ProfitTrend)).
		Int("alerts", len(report.Alerts)).
		Msg("trend report built")

	return report, nil
}

// buildPoints computes margins and QoQ changes for the series.
func buildPoints(series []contracts.MetricSnapshot) []QuarterPoint {
	points := make([]QuarterPoint, len(series))
	for i, s := range series {
		points[i] = QuarterPoint{
			Period:    s.Period,
			Revenue:   s.Revenue,
			Profit:    s.NetProfit,
			MarginPct: s.Margin(),
		}
		if i == 0 {
			continue
		}
		prev := series[i-1]
		points[i].RevenueChangePct = changePct(s.Revenue, prev.Revenue)
		points[i].ProfitChangePct = changePct(s.NetProfit, prev.NetProfit)
		diff := points[i].MarginPct - points[i-1].MarginPct
		points[i].MarginChangePP = &diff
	}
	return points
}

func (a *Analyzer) direction(recentMean *float64) Direction {
	if recentMean == nil {
		return DirStable
	}
	switch {
	case *recentMean > a.thresholds.GrowthPP:
		return DirGrowing
	case *recentMean < -a.thresholds.GrowthPP:
		return DirDeclining
	default:
		return DirStable
	}
}

// marginDirection compares first vs last margin.
func (a *Analyzer) marginDirection(points []QuarterPoint) Direction {
	diff := points[len(points)-1].MarginPct - points[0].MarginPct
	switch {
	case diff > a.thresholds.MarginPP:
		return DirGrowing
	case diff < -a.thresholds.MarginPP:
		return DirDeclining
	default:
		return DirStable
	}
}

func (a *Analyzer) consistency(revChanges []float64) Consistency {
	vol := sampleStdDev(revChanges)
	switch {
	case vol < a.thresholds.ModerateVolatility:
		return ConsistencyHigh
	case vol < a.thresholds.HighVolatility:
		return ConsistencyModerate
	default:
		return ConsistencyVolatile
	}
}

// alerts applies the fixed alert rules.
func (a *Analyzer) alerts(points []QuarterPoint, recentRev, recentProfit *float64) []string {
	alerts := []string{}

	// 마진 압박 3분기 연속
	if consecutiveMarginCompression(points, 3) {
		alerts = append(alerts, "3 consecutive quarters of margin compression")
	}

	// 매출 성장 + 이익 하락 동시 발생
	if recentRev != nil && recentProfit != nil &&
		*recentRev > a.thresholds.GrowthPP && *recentProfit < -a.thresholds.GrowthPP {
		alerts = append(alerts, "revenue growing while profit declines")
	}

	// 이익 하락 가속
	if profitDeclineAccelerating(points) {
		alerts = append(alerts, "profit decline is accelerating")
	}

	return alerts
}

// project extrapolates the next quarter from recent average changes.
func (a *Analyzer) project(latest contracts.MetricSnapshot, recentRev, recentProfit *float64) *Projection {
	if recentRev == nil || recentProfit == nil {
		return nil
	}

	confidence := ConfidenceMedium
	if math.Abs(*recentRev) > a.thresholds.LowConfidencePct ||
		math.Abs(*recentProfit) > a.thresholds.LowConfidencePct {
		confidence = ConfidenceLow
	}

	return &Projection{
		Revenue:          latest.Revenue * (1 + *recentRev/100),
		Profit:           latest.NetProfit * (1 + *recentProfit/100),
		RevenueChangePct: *recentRev,
		ProfitChangePct:  *recentProfit,
		Confidence:       confidence,
	}
}

// consecutiveMarginCompression reports whether the last n quarters all show
// a negative margin diff.
func consecutiveMarginCompression(points []QuarterPoint, n int) bool {
	const eps = 1e-9 // 부동소수점 잡음은 압박으로 치지 않음
	count := 0
	for i := len(points) - 1; i >= 0 && count < n; i-- {
		diff := points[i].MarginChangePP
		if diff == nil || *diff >= -eps {
			return false
		}
		count++
	}
	return count == n
}

// profitDeclineAccelerating reports whether the last 3 profit changes are
// strictly decreasing.
func profitDeclineAccelerating(points []QuarterPoint) bool {
	changes := collect(points, func(p QuarterPoint) *float64 { return p.ProfitChangePct })
	if len(changes) < 3 {
		return false
	}
	last := changes[len(changes)-3:]
	return last[0] > last[1] && last[1] > last[2]
}

// collect extracts the defined (non-nil) values in order.
func collect(points []QuarterPoint, get func(QuarterPoint) *float64) []float64 {
	var out []float64
	for _, p := range points {
		if v := get(p); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// tailMean averages the last n values, nil when none are defined.
func tailMean(values []float64, n int) *float64 {
	if len(values) == 0 {
		return nil
	}
	if len(values) > n {
		values = values[len(values)-n:]
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	return &mean
}

// sampleStdDev returns the sample standard deviation, 0 for fewer than 2 values.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	ss := 0.0
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}

// changePct returns (current-prior)/|prior|*100, nil when prior is zero.
func changePct(current, prior float64) *float64 {
	if prior == 0 {
		return nil
	}
	pct := (current - prior) / math.Abs(prior) * 100
	return &pct
}
