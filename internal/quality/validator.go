package quality

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/Krishiv14/EarningsAgent/internal/contracts"
)

// Grade is a letter grade for overall data quality.
type Grade string

const (
	GradeA Grade = "A" // >= 90
	GradeB Grade = "B" // >= 75
	GradeC Grade = "C" // >= 60
	GradeD Grade = "D"
)

// Freshness describes how old the underlying data is.
type Freshness struct {
	Fresh   bool   `json:"fresh"`
	AgeDays int    `json:"age_days"`
	Warning string `json:"warning,omitempty"`
}

// Report is the aggregated quality assessment for one analysis request.
type Report struct {
	Warnings  []string  `json:"warnings"`
	Freshness Freshness `json:"freshness"`
	Score     int       `json:"score"` // 0-100
	Grade     Grade     `json:"grade"`
}

// Validator performs per-request data sanity checks
// ⭐ SSOT: 데이터 품질 판정은 여기서만
//
// Unlike a dataset-wide coverage gate, this validator looks at a single
// pair of snapshots; it touches no storage.
type Validator struct {
	log zerolog.Logger
}

// NewValidator creates a validator.
func NewValidator(log zerolog.Logger) *Validator {
	return &Validator{log: log.With().Str("component", "quality.validator").Logger()}
}

// Assess validates a metric pair and grades overall data quality.
// now는 재현 가능한 테스트를 위해 주입받음.
func (v *Validator) Assess(pair contracts.MetricPair, lastUpdated time.Time, now time.Time) *Report {
	report := &Report{
		Warnings: []string{},
	}

	report.Warnings = append(report.Warnings, SnapshotWarnings(pair.Current, "current")...)
	report.Warnings = append(report.Warnings, SnapshotWarnings(pair.Prior, "prior")...)
	report.Freshness = CheckFreshness(lastUpdated, now)

	report.Score, report.Grade = score(report.Warnings, report.Freshness)

	v.log.Debug().
		Int("warnings", len(report.Warnings)).
		Int("score", report.Score).
		Str("grade", string(report.Grade)).
		Msg("quality assessed")

	return report
}

// SnapshotWarnings returns sanity warnings for a single snapshot.
func SnapshotWarnings(s contracts.MetricSnapshot, label string) []string {
	warnings := []string{}

	if s.Revenue < 0 {
		warnings = append(warnings, fmt.Sprintf("%s revenue is negative", label))
	}
	if s.Revenue != 0 && math.Abs(s.NetProfit) > math.Abs(s.Revenue) {
		warnings = append(warnings, fmt.Sprintf("%s net profit exceeds revenue in magnitude", label))
	}
	if s.Revenue == 0 && s.NetProfit != 0 {
		warnings = append(warnings, fmt.Sprintf("%s reports profit with zero revenue", label))
	}

	return warnings
}

// CheckFreshness classifies data age: fresh < 7d, aging 7-30d, stale > 30d.
func CheckFreshness(lastUpdated time.Time, now time.Time) Freshness {
	if lastUpdated.IsZero() {
		return Freshness{Fresh: false, AgeDays: -1, Warning: "no timestamp on source data"}
	}

	ageDays := int(now.Sub(lastUpdated).Hours() / 24)
	f := Freshness{
		Fresh:   ageDays < 7,
		AgeDays: ageDays,
	}

	switch {
	case ageDays > 30:
		f.Warning = fmt.Sprintf("data is %d days old, may be outdated", ageDays)
	case ageDays >= 7:
		f.Warning = fmt.Sprintf("data is %d days old", ageDays)
	}

	return f
}

// score converts warnings and freshness into a 0-100 score and a grade.
// 경고당 10점, 오래된 데이터는 추가 감점
func score(warnings []string, freshness Freshness) (int, Grade) {
	s := 100
	s -= len(warnings) * 10

	switch {
	case freshness.AgeDays < 0 || freshness.AgeDays > 30:
		s -= 20
	case freshness.AgeDays >= 7:
		s -= 5
	}

	if s < 0 {
		s = 0
	}

	return s, grade(s)
}

func grade(score int) Grade {
	switch {
	case score >= 90:
		return GradeA
	case score >= 75:
		return GradeB
	case score >= 60:
		return GradeC
	default:
		return GradeD
	}
}
