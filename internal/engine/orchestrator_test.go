package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Krishiv14/EarningsAgent/internal/contracts"
	"github.com/Krishiv14/EarningsAgent/internal/delta"
	"github.com/Krishiv14/EarningsAgent/internal/quality"
	"github.com/Krishiv14/EarningsAgent/internal/sector"
	"github.com/Krishiv14/EarningsAgent/internal/trends"
	"github.com/Krishiv14/EarningsAgent/pkg/config"
	"github.com/Krishiv14/EarningsAgent/pkg/logger"
)

func testOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	log := logger.New(&config.Config{Env: "test", LogLevel: "error", LogFormat: "json"})
	zl := log.Zerolog()

	return New(
		delta.NewAnalyzer(zl),
		trends.NewAnalyzer(zl),
		sector.NewComparator(zl),
		quality.NewValidator(zl),
		nil, nil, nil, "",
		log,
	)
}

func TestAnalyzePair(t *testing.T) {
	o := testOrchestrator(t)

	verdict, err := o.AnalyzePair(contracts.MetricPair{
		Current: contracts.MetricSnapshot{Revenue: 110, NetProfit: 107, Period: "Q2 FY25"},
		Prior:   contracts.MetricSnapshot{Revenue: 100, NetProfit: 100, Period: "Q1 FY25"},
	})
	require.NoError(t, err)
	assert.Equal(t, contracts.RelAligned, verdict.Relationship)
	require.NotNil(t, verdict.RevenueChangePct)
	assert.InDelta(t, 10.0, *verdict.RevenueChangePct, 1e-9)
}

func TestAnalyzeTickerRequiresDatabase(t *testing.T) {
	o := testOrchestrator(t)

	_, err := o.AnalyzeTicker(context.Background(), "TCS")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a database")
}

func TestTrendReportRequiresDatabase(t *testing.T) {
	o := testOrchestrator(t)

	_, err := o.TrendReport(context.Background(), "TCS")
	require.Error(t, err)
}

func TestCompareSector(t *testing.T) {
	o := testOrchestrator(t)

	result := o.CompareSector("TCS", sector.CompanyMetrics{})
	require.NotNil(t, result)
	assert.True(t, result.Available)
}

func TestSweepAllFailWithoutDatabase(t *testing.T) {
	o := testOrchestrator(t)

	result := o.Sweep(context.Background(), []string{"TCS", "INFY"})
	assert.Empty(t, result.Analyzed)
	assert.Len(t, result.Failed, 2)
}

func TestSweepCanceledContext(t *testing.T) {
	o := testOrchestrator(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := o.Sweep(ctx, []string{"TCS"})
	assert.Empty(t, result.Analyzed)
	require.Contains(t, result.Failed, "TCS")
	assert.ErrorIs(t, result.Failed["TCS"], context.Canceled)
}
