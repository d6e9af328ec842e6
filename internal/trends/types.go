package trends

// Direction classifies the recent movement of a metric.
type Direction string

const (
	DirGrowing   Direction = "Growing"
	DirDeclining Direction = "Declining"
	DirStable    Direction = "Stable"
)

// Consistency classifies revenue-change volatility.
type Consistency string

const (
	ConsistencyHigh     Consistency = "Consistent"
	ConsistencyModerate Consistency = "Moderate"
	ConsistencyVolatile Consistency = "Volatile"
)

// Confidence grades a projection.
type Confidence string

const (
	ConfidenceLow    Confidence = "Low"
	ConfidenceMedium Confidence = "Medium"
)

// QuarterPoint is one quarter of the trend series with derived figures.
type QuarterPoint struct {
	Period    string  `json:"period"`
	Revenue   float64 `json:"revenue"`
	Profit    float64 `json:"profit"`
	MarginPct float64 `json:"margin_pct"`

	// QoQ 변화. nil = 계산 불가 (첫 분기 또는 전기 값 0)
	RevenueChangePct *float64 `json:"revenue_change_pct"`
	ProfitChangePct  *float64 `json:"profit_change_pct"`
	MarginChangePP   *float64 `json:"margin_change_pp"`
}

// Projection is a naive next-quarter linear extrapolation.
// ML 모델 아님: 최근 3개 분기 평균 변화율의 단순 연장
type Projection struct {
	Revenue          float64    `json:"revenue"`
	Profit           float64    `json:"profit"`
	RevenueChangePct float64    `json:"revenue_change_pct"`
	ProfitChangePct  float64    `json:"profit_change_pct"`
	Confidence       Confidence `json:"confidence"`
}

// Report is the output of historical trend analysis.
type Report struct {
	Ticker   string         `json:"ticker"`
	Quarters []QuarterPoint `json:"quarters"`

	RevenueTrend Direction   `json:"revenue_trend"`
	ProfitTrend  Direction   `json:"profit_trend"`
	MarginTrend  Direction   `json:"margin_trend"`
	Consistency  Consistency `json:"consistency"`

	Alerts     []string    `json:"alerts"`
	Projection *Projection `json:"projection,omitempty"`
}

// Thresholds holds trend classification tunables.
type Thresholds struct {
	GrowthPP           float64 `yaml:"growth_pp" json:"growth_pp"`                       // 성장/하락 판정 (기본: 5%/분기)
	MarginPP           float64 `yaml:"margin_pp" json:"margin_pp"`                       // 마진 개선/압박 판정 (기본: 2pp)
	ModerateVolatility float64 `yaml:"moderate_volatility" json:"moderate_volatility"`   // 기본: 10
	HighVolatility     float64 `yaml:"high_volatility" json:"high_volatility"`           // 기본: 20
	LowConfidencePct   float64 `yaml:"low_confidence_pct" json:"low_confidence_pct"`     // 기본: 20
	MaxQuarters        int     `yaml:"max_quarters" json:"max_quarters"`                 // 기본: 8
}

// DefaultThresholds returns the stock defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		GrowthPP:           5,
		MarginPP:           2,
		ModerateVolatility: 10,
		HighVolatility:     20,
		LowConfidencePct:   20,
		MaxQuarters:        8,
	}
}
