package contracts

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidInput is returned when a required numeric field is missing or not
// a finite number. 검증 실패는 절대 기본값으로 대체하지 않음.
var ErrInvalidInput = errors.New("invalid input")

// ErrInsufficientHistory is returned when fewer quarters are available than
// an analysis requires.
var ErrInsufficientHistory = errors.New("insufficient history")

// MetricSnapshot represents one period's raw financial figures
// ⭐ SSOT: 분기 재무 수치는 이 타입으로만 전달
type MetricSnapshot struct {
	Revenue   float64 `json:"revenue"`    // 매출 (>= 0 expected; negative is flagged, not rejected)
	NetProfit float64 `json:"net_profit"` // 순이익 (loss → negative)
	Period    string  `json:"period"`     // display label only, e.g. "2025-Q4"
}

// Valid reports whether the snapshot carries finite numbers.
// Revenue/NetProfit가 NaN이나 ±Inf면 상위에서 ErrInvalidInput 처리
func (s MetricSnapshot) Valid() bool {
	return isFinite(s.Revenue) && isFinite(s.NetProfit)
}

// Margin returns net profit as a percentage of revenue, 0 when revenue is 0.
func (s MetricSnapshot) Margin() float64 {
	if s.Revenue == 0 {
		return 0
	}
	return s.NetProfit / s.Revenue * 100
}

// MetricPair is the comparison unit for delta analysis.
type MetricPair struct {
	Current MetricSnapshot `json:"current"`
	Prior   MetricSnapshot `json:"prior"`
}

// StoredSnapshot is a MetricSnapshot as persisted, with bookkeeping fields.
type StoredSnapshot struct {
	Ticker     string         `json:"ticker"`
	Snapshot   MetricSnapshot `json:"snapshot"`
	ReportDate time.Time      `json:"report_date"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
