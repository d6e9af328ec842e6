package quality

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/Krishiv14/EarningsAgent/internal/contracts"
)

var now = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func TestAssess_CleanPair(t *testing.T) {
	v := NewValidator(zerolog.Nop())

	pair := contracts.MetricPair{
		Current: contracts.MetricSnapshot{Revenue: 120, NetProfit: 15},
		Prior:   contracts.MetricSnapshot{Revenue: 100, NetProfit: 12},
	}

	report := v.Assess(pair, now.AddDate(0, 0, -2), now)

	assert.Empty(t, report.Warnings)
	assert.True(t, report.Freshness.Fresh)
	assert.Equal(t, 100, report.Score)
	assert.Equal(t, GradeA, report.Grade)
}

func TestSnapshotWarnings(t *testing.T) {
	tests := []struct {
		name     string
		snapshot contracts.MetricSnapshot
		want     int
	}{
		{"clean", contracts.MetricSnapshot{Revenue: 100, NetProfit: 10}, 0},
		{"negative revenue", contracts.MetricSnapshot{Revenue: -50, NetProfit: 10}, 1},
		{"profit exceeds revenue", contracts.MetricSnapshot{Revenue: 100, NetProfit: 150}, 1},
		{"loss exceeds revenue", contracts.MetricSnapshot{Revenue: 100, NetProfit: -150}, 1},
		{"profit with zero revenue", contracts.MetricSnapshot{Revenue: 0, NetProfit: 5}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, SnapshotWarnings(tt.snapshot, "current"), tt.want)
		})
	}
}

func TestCheckFreshness(t *testing.T) {
	tests := []struct {
		name     string
		updated  time.Time
		fresh    bool
		warn     bool
	}{
		{"fresh", now.AddDate(0, 0, -3), true, false},
		{"aging", now.AddDate(0, 0, -10), false, true},
		{"stale", now.AddDate(0, 0, -45), false, true},
		{"no timestamp", time.Time{}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := CheckFreshness(tt.updated, now)
			assert.Equal(t, tt.fresh, f.Fresh)
			assert.Equal(t, tt.warn, f.Warning != "")
		})
	}
}

func TestAssess_ScoreDeductions(t *testing.T) {
	v := NewValidator(zerolog.Nop())

	// 경고 2건 (current 음수 매출, prior 이익>매출) + 오래된 데이터: 100-20-20=60 → C
	pair := contracts.MetricPair{
		Current: contracts.MetricSnapshot{Revenue: -10, NetProfit: 5},
		Prior:   contracts.MetricSnapshot{Revenue: 100, NetProfit: 200},
	}

	report := v.Assess(pair, now.AddDate(0, 0, -60), now)

	assert.Len(t, report.Warnings, 2)
	assert.Equal(t, 60, report.Score)
	assert.Equal(t, GradeC, report.Grade)
}

func TestAssess_ScoreFloor(t *testing.T) {
	v := NewValidator(zerolog.Nop())

	// 경고를 쌓아도 0 밑으로 내려가지 않음
	pair := contracts.MetricPair{
		Current: contracts.MetricSnapshot{Revenue: -10, NetProfit: 500},
		Prior:   contracts.MetricSnapshot{Revenue: -10, NetProfit: 500},
	}

	report := v.Assess(pair, time.Time{}, now)
	assert.GreaterOrEqual(t, report.Score, 0)
	assert.Equal(t, GradeD, report.Grade)
}
