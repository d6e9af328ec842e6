package contracts

import "time"

// Relationship classifies how the revenue and profit changes co-move.
type Relationship string

const (
	RelAligned       Relationship = "Aligned"       // 같은 방향, 차이가 임계값 미만
	RelDivergent     Relationship = "Divergent"     // 같은 방향, 차이가 임계값 이상 (마진 압박)
	RelInverted      Relationship = "Inverted"      // 반대 방향 (매출↑ 이익↓ 또는 그 반대)
	RelIndeterminate Relationship = "Indeterminate" // 변화율 계산 불가 (전기 값 0)
)

// Severity grades how concerning a divergence is.
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// DeltaVerdict is the immutable result of a delta analysis
// ⭐ SSOT: 델타 분석 결과는 이 타입으로만 전달
type DeltaVerdict struct {
	// Nil means the change is undefined (prior denominator was zero).
	// 0과 "계산 불가"를 구분해야 하므로 포인터 사용
	RevenueChangePct *float64 `json:"revenue_change_pct"`
	ProfitChangePct  *float64 `json:"profit_change_pct"`

	Relationship Relationship `json:"relationship"`
	Severity     Severity     `json:"severity"`
	Narrative    string       `json:"narrative"`

	// AnomalyFlag marks inputs that are legal but suspicious (negative revenue).
	AnomalyFlag bool `json:"anomaly_flag,omitempty"`

	CurrentPeriod string `json:"current_period,omitempty"`
	PriorPeriod   string `json:"prior_period,omitempty"`
}

// Undefined reports whether either change could not be computed.
func (v *DeltaVerdict) Undefined() bool {
	return v.RevenueChangePct == nil || v.ProfitChangePct == nil
}

// StoredVerdict is a DeltaVerdict as persisted, with audit fields.
type StoredVerdict struct {
	ID             int64        `json:"id"`
	Ticker         string       `json:"ticker"`
	Verdict        DeltaVerdict `json:"verdict"`
	ThresholdsHash string       `json:"thresholds_hash"` // 감사용: 어떤 임계값으로 산출됐는지
	CreatedAt      time.Time    `json:"created_at"`
}

// DeltaThresholds holds the tunables of the delta analyzer.
// 섹터별 민감도 조정을 위해 하드코딩 대신 명시적 설정으로 전달
type DeltaThresholds struct {
	AlignmentPP float64 `yaml:"alignment_pp" json:"alignment_pp"` // Aligned 판정 한계 (기본: 5pp)
	MediumPP    float64 `yaml:"medium_pp" json:"medium_pp"`       // Medium 하한 (기본: 5pp)
	HighPP      float64 `yaml:"high_pp" json:"high_pp"`           // High 하한 (기본: 15pp)
	CriticalPP  float64 `yaml:"critical_pp" json:"critical_pp"`   // Critical 하한, 초과 시 (기본: 30pp)
}

// DefaultDeltaThresholds returns the stock defaults.
func DefaultDeltaThresholds() DeltaThresholds {
	return DeltaThresholds{
		AlignmentPP: 5,
		MediumPP:    5,
		HighPP:      15,
		CriticalPP:  30,
	}
}

// GradeSeverity maps a divergence magnitude (percentage points) onto a grade.
func (t DeltaThresholds) GradeSeverity(divergencePP float64) Severity {
	switch {
	case divergencePP > t.CriticalPP:
		return SeverityCritical
	case divergencePP >= t.HighPP:
		return SeverityHigh
	case divergencePP >= t.MediumPP:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
