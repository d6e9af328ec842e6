package delta

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/Krishiv14/EarningsAgent/internal/contracts"
)

// Analyzer classifies the divergence between revenue and profit movement
// ⭐ SSOT: 델타 판정은 이 구조체에서만
//
// Analyze is a total, deterministic function over valid pairs: no I/O, no
// shared state, safe for concurrent use.
type Analyzer struct {
	thresholds contracts.DeltaThresholds
	log        zerolog.Logger
}

// NewAnalyzer creates an analyzer with default thresholds.
func NewAnalyzer(log zerolog.Logger) *Analyzer {
	return NewAnalyzerWithThresholds(contracts.DefaultDeltaThresholds(), log)
}

// NewAnalyzerWithThresholds creates an analyzer with custom thresholds.
func NewAnalyzerWithThresholds(thresholds contracts.DeltaThresholds, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		thresholds: thresholds,
		log:        log.With().Str("component", "delta.analyzer").Logger(),
	}
}

// Thresholds returns the thresholds this analyzer was built with.
func (a *Analyzer) Thresholds() contracts.DeltaThresholds {
	return a.thresholds
}

// Analyze computes percentage deltas for a pair of periods and grades the
// relationship between revenue and profit movement.
//
// 에러는 ErrInvalidInput 하나뿐: 필수 수치가 NaN/±Inf인 경우.
// 전기 값이 0이면 에러가 아니라 Indeterminate 판정으로 처리한다.
func (a *Analyzer) Analyze(pair contracts.MetricPair) (*contracts.DeltaVerdict, error) {
	if !pair.Current.Valid() || !pair.Prior.Valid() {
		return nil, fmt.Errorf("metric pair contains non-finite values: %w", contracts.ErrInvalidInput)
	}

	verdict := &contracts.DeltaVerdict{
		RevenueChangePct: changePct(pair.Current.Revenue, pair.Prior.Revenue),
		ProfitChangePct:  changePct(pair.Current.NetProfit, pair.Prior.NetProfit),
		CurrentPeriod:    pair.Current.Period,
		PriorPeriod:      pair.Prior.Period,
	}

	// 음수 매출은 거부하지 않고 플래그만 세움 (상위에서 거부 여부 결정)
	if pair.Current.Revenue < 0 || pair.Prior.Revenue < 0 {
		verdict.AnomalyFlag = true
	}

	verdict.Relationship = a.classify(verdict.RevenueChangePct, verdict.ProfitChangePct)
	verdict.Severity = a.grade(verdict)
	verdict.Narrative = narrate(verdict)

	a.log.Debug().
		Str("relationship", string(verdict.Relationship)).
		Str("severity", string(verdict.Severity)).
		Bool("anomaly", verdict.AnomalyFlag).
		Msg("delta analyzed")

	return verdict, nil
}

// classify decides the relationship class from the two changes.
func (a *Analyzer) classify(revPct, profitPct *float64) contracts.Relationship {
	// 둘 중 하나라도 계산 불가면 보수적으로 Indeterminate
	if revPct == nil || profitPct == nil {
		return contracts.RelIndeterminate
	}

	revUp := *revPct >= 0
	profitUp := *profitPct >= 0

	if revUp != profitUp {
		return contracts.RelInverted
	}

	if math.Abs(*revPct-*profitPct) < a.thresholds.AlignmentPP {
		return contracts.RelAligned
	}
	return contracts.RelDivergent
}

// grade assigns a severity from the divergence magnitude.
// Indeterminate는 항상 Low: 정보 부족이지 "안전"이 아님.
func (a *Analyzer) grade(v *contracts.DeltaVerdict) contracts.Severity {
	if v.Undefined() {
		return contracts.SeverityLow
	}
	divergence := math.Abs(*v.RevenueChangePct - *v.ProfitChangePct)
	return a.thresholds.GradeSeverity(divergence)
}

// changePct returns (current-prior)/|prior|*100, nil when prior is zero.
// 0으로 나누기는 ±Inf/NaN으로 전파하지 않고 "계산 불가"로 표시
func changePct(current, prior float64) *float64 {
	if prior == 0 {
		return nil
	}
	pct := (current - prior) / math.Abs(prior) * 100
	return &pct
}
