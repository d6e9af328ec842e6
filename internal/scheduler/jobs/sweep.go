package jobs

import (
	"context"
	"fmt"

	"github.com/Krishiv14/EarningsAgent/internal/engine"
	"github.com/Krishiv14/EarningsAgent/pkg/logger"
)

// WatchlistSweepJob re-analyzes every watchlist ticker on a schedule.
// 스냅샷 적재 후 새 분기 반영을 보장하는 경로
type WatchlistSweepJob struct {
	engine    *engine.Orchestrator
	watchlist []string
	schedule  string
	logger    *logger.Logger
}

// NewWatchlistSweepJob creates a new sweep job
func NewWatchlistSweepJob(eng *engine.Orchestrator, watchlist []string, schedule string, log *logger.Logger) *WatchlistSweepJob {
	return &WatchlistSweepJob{
		engine:    eng,
		watchlist: watchlist,
		schedule:  schedule,
		logger:    log,
	}
}

// Name returns the job name
func (j *WatchlistSweepJob) Name() string {
	return "watchlist_sweep"
}

// Schedule returns the cron schedule from configuration
func (j *WatchlistSweepJob) Schedule() string {
	return j.schedule
}

// Run sweeps the watchlist
func (j *WatchlistSweepJob) Run(ctx context.Context) error {
	if len(j.watchlist) == 0 {
		j.logger.Debug("Watchlist is empty, nothing to sweep")
		return nil
	}

	result := j.engine.Sweep(ctx, j.watchlist)

	// 전 종목 실패만 작업 실패로 취급 (일부 실패는 로그로 충분)
	if len(result.Analyzed) == 0 && len(result.Failed) > 0 {
		return fmt.Errorf("sweep failed for all %d tickers", len(result.Failed))
	}

	return nil
}
