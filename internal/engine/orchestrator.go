package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/Krishiv14/EarningsAgent/internal/contracts"
	"github.com/Krishiv14/EarningsAgent/internal/delta"
	"github.com/Krishiv14/EarningsAgent/internal/quality"
	"github.com/Krishiv14/EarningsAgent/internal/sector"
	"github.com/Krishiv14/EarningsAgent/internal/storage"
	"github.com/Krishiv14/EarningsAgent/internal/trends"
	"github.com/Krishiv14/EarningsAgent/pkg/logger"
	"github.com/Krishiv14/EarningsAgent/pkg/redis"
)

// Publisher receives freshly computed verdicts.
// api.Hub가 구현하지만 엔진은 구체 타입을 몰라야 함
type Publisher interface {
	Publish(v *contracts.StoredVerdict)
}

// Orchestrator coordinates analysis, persistence and caching for a ticker
// ⭐ SSOT: 분석 파이프라인 조율은 여기서만
type Orchestrator struct {
	analyzer      *delta.Analyzer
	trendAnalyzer *trends.Analyzer
	comparator    *sector.Comparator
	validator     *quality.Validator

	snapshotRepo *storage.SnapshotRepository
	verdictRepo  *storage.VerdictRepository
	cache        *redis.Cache

	thresholdsHash string
	publisher      Publisher
	cacheTTL       time.Duration

	logger *logger.Logger
}

// New creates a new orchestrator. snapshotRepo/verdictRepo may be nil when
// running without a database; cache may wrap a disabled client.
func New(
	analyzer *delta.Analyzer,
	trendAnalyzer *trends.Analyzer,
	comparator *sector.Comparator,
	validator *quality.Validator,
	snapshotRepo *storage.SnapshotRepository,
	verdictRepo *storage.VerdictRepository,
	cache *redis.Cache,
	thresholdsHash string,
	log *logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		analyzer:       analyzer,
		trendAnalyzer:  trendAnalyzer,
		comparator:     comparator,
		validator:      validator,
		snapshotRepo:   snapshotRepo,
		verdictRepo:    verdictRepo,
		cache:          cache,
		thresholdsHash: thresholdsHash,
		cacheTTL:       redis.TTLMedium,
		logger:         log,
	}
}

// SetPublisher attaches a verdict publisher (e.g. the websocket hub)
func (o *Orchestrator) SetPublisher(p Publisher) {
	o.publisher = p
}

// SetCacheTTL overrides the default TTL for cached analysis results
func (o *Orchestrator) SetCacheTTL(ttl time.Duration) {
	if ttl > 0 {
		o.cacheTTL = ttl
	}
}

// AnalyzePair runs delta analysis on caller-supplied metrics.
// No persistence, no cache: ad-hoc 분석용
func (o *Orchestrator) AnalyzePair(pair contracts.MetricPair) (*contracts.DeltaVerdict, error) {
	return o.analyzer.Analyze(pair)
}

// AnalyzeTicker loads the two most recent stored snapshots for the ticker,
// runs delta analysis, persists the verdict and refreshes the cache.
func (o *Orchestrator) AnalyzeTicker(ctx context.Context, ticker string) (*contracts.StoredVerdict, error) {
	if o.snapshotRepo == nil {
		return nil, fmt.Errorf("ticker analysis requires a database")
	}

	pair, err := o.snapshotRepo.GetLatestPair(ctx, ticker)
	if err != nil {
		return nil, err
	}

	verdict, err := o.analyzer.Analyze(*pair)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", ticker, err)
	}

	stored := &contracts.StoredVerdict{
		Ticker:         ticker,
		Verdict:        *verdict,
		ThresholdsHash: o.thresholdsHash,
		CreatedAt:      time.Now(),
	}

	if o.verdictRepo != nil {
		if err := o.verdictRepo.Save(ctx, stored); err != nil {
			return nil, err
		}
	}

	if o.cache != nil {
		if err := o.cache.Set(ctx, redis.VerdictKey(ticker), stored, o.cacheTTL); err != nil {
			o.logger.WithError(err).WithField("ticker", ticker).Warn("verdict cache write failed")
		}
	}

	if o.publisher != nil {
		o.publisher.Publish(stored)
	}

	o.logger.WithFields(map[string]interface{}{
		"ticker":       ticker,
		"relationship": string(verdict.Relationship),
		"severity":     string(verdict.Severity),
	}).Info("Ticker analyzed")

	return stored, nil
}

// CachedVerdict returns the cached or latest persisted verdict for a ticker,
// computing a fresh one only when neither exists.
func (o *Orchestrator) CachedVerdict(ctx context.Context, ticker string) (*contracts.StoredVerdict, error) {
	if o.cache != nil {
		var cached contracts.StoredVerdict
		found, err := o.cache.Get(ctx, redis.VerdictKey(ticker), &cached)
		if err != nil {
			o.logger.WithError(err).WithField("ticker", ticker).Warn("verdict cache read failed")
		}
		if found {
			return &cached, nil
		}
	}

	if o.verdictRepo != nil {
		stored, err := o.verdictRepo.GetLatestByTicker(ctx, ticker)
		if err == nil && stored.ThresholdsHash == o.thresholdsHash {
			return stored, nil
		}
	}

	return o.AnalyzeTicker(ctx, ticker)
}

// TrendReport builds a multi-quarter trend report from stored snapshots
func (o *Orchestrator) TrendReport(ctx context.Context, ticker string) (*trends.Report, error) {
	if o.cache != nil {
		var cached trends.Report
		found, err := o.cache.Get(ctx, redis.TrendKey(ticker), &cached)
		if err != nil {
			o.logger.WithError(err).WithField("ticker", ticker).Warn("trend cache read failed")
		}
		if found {
			return &cached, nil
		}
	}

	if o.snapshotRepo == nil {
		return nil, fmt.Errorf("trend analysis requires a database")
	}

	stored, err := o.snapshotRepo.GetRecent(ctx, ticker, o.trendAnalyzer.Thresholds().MaxQuarters)
	if err != nil {
		return nil, err
	}

	// GetRecent is newest-first; trends expects oldest-first
	series := make([]contracts.MetricSnapshot, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		series = append(series, stored[i].Snapshot)
	}

	report, err := o.trendAnalyzer.Analyze(ticker, series)
	if err != nil {
		return nil, err
	}

	if o.cache != nil {
		if err := o.cache.Set(ctx, redis.TrendKey(ticker), report, o.cacheTTL); err != nil {
			o.logger.WithError(err).WithField("ticker", ticker).Warn("trend cache write failed")
		}
	}

	return report, nil
}

// CompareSector compares caller-supplied company metrics to the static
// industry baseline. Metrics vary per request so the result is not cached.
func (o *Orchestrator) CompareSector(ticker string, metrics sector.CompanyMetrics) *sector.Result {
	return o.comparator.Compare(ticker, metrics)
}

// QualityReport assesses the stored data for a ticker
func (o *Orchestrator) QualityReport(ctx context.Context, ticker string) (*quality.Report, error) {
	if o.snapshotRepo == nil {
		return nil, fmt.Errorf("quality assessment requires a database")
	}

	pair, err := o.snapshotRepo.GetLatestPair(ctx, ticker)
	if err != nil {
		return nil, err
	}

	lastUpdated, err := o.snapshotRepo.LastUpdated(ctx, ticker)
	if err != nil {
		return nil, err
	}

	return o.validator.Assess(*pair, lastUpdated, time.Now()), nil
}

// SweepResult summarizes one watchlist sweep
type SweepResult struct {
	Analyzed []string
	Failed   map[string]error
	Duration time.Duration
}

// Sweep analyzes every ticker in the watchlist, invalidating cached
// results first so the sweep always works from stored snapshots.
func (o *Orchestrator) Sweep(ctx context.Context, watchlist []string) *SweepResult {
	start := time.Now()
	result := &SweepResult{
		Failed: make(map[string]error),
	}

	for _, ticker := range watchlist {
		if ctx.Err() != nil {
			result.Failed[ticker] = ctx.Err()
			continue
		}

		if o.cache != nil {
			if err := o.cache.DeleteByTicker(ctx, ticker); err != nil {
				o.logger.WithError(err).WithField("ticker", ticker).Warn("cache invalidation failed")
			}
		}

		if _, err := o.AnalyzeTicker(ctx, ticker); err != nil {
			result.Failed[ticker] = err
			o.logger.WithError(err).WithField("ticker", ticker).Warn("sweep analysis failed")
			continue
		}
		result.Analyzed = append(result.Analyzed, ticker)
	}

	result.Duration = time.Since(start)

	o.logger.WithFields(map[string]interface{}{
		"analyzed": len(result.Analyzed),
		"failed":   len(result.Failed),
		"duration": result.Duration.Seconds(),
	}).Info("Watchlist sweep completed")

	return result
}
