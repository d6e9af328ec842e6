package sector

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// CompanyMetrics holds the metrics being compared against the sector.
// nil = 해당 지표 없음 (비교에서 제외)
type CompanyMetrics struct {
	PERatio         *float64 `json:"pe_ratio"`
	ProfitMarginPct *float64 `json:"profit_margin_pct"`
	ROEPct          *float64 `json:"roe_pct"`
	DebtToEquity    *float64 `json:"debt_to_equity"`
}

// Comparison is one metric compared against its sector average.
type Comparison struct {
	Value      float64 `json:"value"`
	SectorAvg  float64 `json:"sector_avg"`
	Difference float64 `json:"difference"` // P/E는 %, 나머지는 절대 차이
	Verdict    string  `json:"verdict"`
}

// Result is the outcome of a sector comparison.
type Result struct {
	Available   bool                  `json:"available"`
	Reason      string                `json:"reason,omitempty"`
	Ticker      string                `json:"ticker"`
	Sector      string                `json:"sector,omitempty"`
	Peers       []string              `json:"peers,omitempty"`
	Comparisons map[string]Comparison `json:"comparisons,omitempty"`
	Insights    []string              `json:"insights,omitempty"`
}

// Thresholds holds sector comparison tunables.
type Thresholds struct {
	PEBandPct    float64 `yaml:"pe_band_pct" json:"pe_band_pct"`       // Over/Undervalued 판정 (기본: ±20%)
	ROEBandPP    float64 `yaml:"roe_band_pp" json:"roe_band_pp"`       // Strong/Weak 판정 (기본: ±5pp)
	MarginNotePP float64 `yaml:"margin_note_pp" json:"margin_note_pp"` // 인사이트 언급 기준 (기본: 5pp)
}

// DefaultThresholds returns the stock defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{PEBandPct: 20, ROEBandPP: 5, MarginNotePP: 5}
}

// Comparator compares company metrics against curated sector averages
// ⭐ SSOT: 섹터 비교 판정은 이 구조체에서만
type Comparator struct {
	thresholds Thresholds
	log        zerolog.Logger
}

// NewComparator creates a comparator with default thresholds.
func NewComparator(log zerolog.Logger) *Comparator {
	return NewComparatorWithThresholds(DefaultThresholds(), log)
}

// NewComparatorWithThresholds creates a comparator with custom thresholds.
func NewComparatorWithThresholds(thresholds Thresholds, log zerolog.Logger) *Comparator {
	return &Comparator{
		thresholds: thresholds,
		log:        log.With().Str("component", "sector.comparator").Logger(),
	}
}

// Compare evaluates a ticker's metrics against its sector averages.
// 모르는 티커는 에러가 아니라 Available=false 결과.
func (c *Comparator) Compare(ticker string, metrics CompanyMetrics) *Result {
	normalized := normalize(ticker)

	info, ok := Lookup(normalized)
	if !ok {
		return &Result{
			Available: false,
			Ticker:    normalized,
			Reason:    "sector comparison not available for this ticker",
		}
	}

	result := &Result{
		Available:   true,
		Ticker:      normalized,
		Sector:      info.Sector,
		Peers:       info.Peers,
		Comparisons: make(map[string]Comparison),
	}

	avg := info.IndustryAvg

	if metrics.PERatio != nil {
		diff := (*metrics.PERatio - avg.PERatio) / avg.PERatio * 100
		verdict := "Fair"
		switch {
		case diff > c.thresholds.PEBandPct:
			verdict = "Overvalued"
		case diff < -c.thresholds.PEBandPct:
			verdict = "Undervalued"
		}
		result.Comparisons["pe_ratio"] = Comparison{
			Value: *metrics.PERatio, SectorAvg: avg.PERatio, Difference: diff, Verdict: verdict,
		}
	}

	if metrics.ProfitMarginPct != nil {
		diff := *metrics.ProfitMarginPct - avg.ProfitMarginPct
		verdict := "Below Average"
		if diff > 0 {
			verdict = "Above Average"
		}
		result.Comparisons["profit_margin"] = Comparison{
			Value: *metrics.ProfitMarginPct, SectorAvg: avg.ProfitMarginPct, Difference: diff, Verdict: verdict,
		}
	}

	if metrics.ROEPct != nil {
		diff := *metrics.ROEPct - avg.ROEPct
		verdict := "Average"
		switch {
		case diff > c.thresholds.ROEBandPP:
			verdict = "Strong"
		case diff < -c.thresholds.ROEBandPP:
			verdict = "Weak"
		}
		result.Comparisons["roe"] = Comparison{
			Value: *metrics.ROEPct, SectorAvg: avg.ROEPct, Difference: diff, Verdict: verdict,
		}
	}

	if metrics.DebtToEquity != nil {
		diff := *metrics.DebtToEquity - avg.DebtToEquity
		verdict := "Higher Debt"
		if diff < 0 {
			verdict = "Lower Debt"
		}
		result.Comparisons["debt_to_equity"] = Comparison{
			Value: *metrics.DebtToEquity, SectorAvg: avg.DebtToEquity, Difference: diff, Verdict: verdict,
		}
	}

	result.Insights = c.insights(result)

	c.log.Debug().
		Str("ticker", normalized).
		Str("sector", info.Sector).
		Int("comparisons", len(result.Comparisons)).
		Msg("sector comparison done")

	return result
}

// insights renders deterministic insight strings from the verdicts.
func (c *Comparator) insights(result *Result) []string {
	insights := []string{}

	if pe, ok := result.Comparisons["pe_ratio"]; ok {
		switch pe.Verdict {
		case "Overvalued":
			insights = append(insights, fmt.Sprintf("trading at %.1f%% premium to sector average P/E", pe.Difference))
		case "Undervalued":
			insights = append(insights, fmt.Sprintf("trading at %.1f%% discount to sector average P/E", -pe.Difference))
		}
	}

	if pm, ok := result.Comparisons["profit_margin"]; ok {
		switch {
		case pm.Difference > c.thresholds.MarginNotePP:
			insights = append(insights, fmt.Sprintf("profit margin %.1fpp above sector, pricing power intact", pm.Difference))
		case pm.Difference < -c.thresholds.MarginNotePP:
			insights = append(insights, fmt.Sprintf("profit margin %.1fpp below sector, competitive pressure", -pm.Difference))
		}
	}

	if roe, ok := result.Comparisons["roe"]; ok {
		switch roe.Verdict {
		case "Strong":
			insights = append(insights, "ROE above sector average, efficient capital allocation")
		case "Weak":
			insights = append(insights, "ROE below sector average, lagging peers")
		}
	}

	if de, ok := result.Comparisons["debt_to_equity"]; ok {
		if de.Verdict == "Lower Debt" {
			insights = append(insights, "lower leverage than sector")
		} else {
			insights = append(insights, "higher leverage than sector, monitor closely")
		}
	}

	return insights
}

// normalize strips exchange suffixes and uppercases the ticker.
func normalize(ticker string) string {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	t = strings.TrimSuffix(t, ".NS")
	t = strings.TrimSuffix(t, ".BO")
	return t
}
