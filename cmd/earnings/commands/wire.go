package commands

import (
	"fmt"

	"github.com/Krishiv14/EarningsAgent/internal/analysisconfig"
	"github.com/Krishiv14/EarningsAgent/internal/delta"
	"github.com/Krishiv14/EarningsAgent/internal/engine"
	"github.com/Krishiv14/EarningsAgent/internal/quality"
	"github.com/Krishiv14/EarningsAgent/internal/sector"
	"github.com/Krishiv14/EarningsAgent/internal/storage"
	"github.com/Krishiv14/EarningsAgent/internal/trends"
	"github.com/Krishiv14/EarningsAgent/pkg/config"
	"github.com/Krishiv14/EarningsAgent/pkg/database"
	"github.com/Krishiv14/EarningsAgent/pkg/logger"
	"github.com/Krishiv14/EarningsAgent/pkg/redis"
)

// runtime bundles everything a command needs after wiring
type runtime struct {
	cfg     *config.Config
	log     *logger.Logger
	profile *analysisconfig.Config
	engine  *engine.Orchestrator

	db    *database.DB
	redis *redis.Client

	snapshotRepo *storage.SnapshotRepository
	verdictRepo  *storage.VerdictRepository
	cache        *redis.Cache
	limiter      *redis.RateLimiter
}

// close releases held connections
func (rt *runtime) close() {
	if rt.db != nil {
		rt.db.Close()
	}
	if rt.redis != nil {
		rt.redis.Close()
	}
}

// wire loads config and builds the analysis engine.
// needDB=false면 저장소 없이 ad-hoc 분석만 가능한 엔진을 구성
func wire(needDB bool) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	// Thresholds profile: --profile flag wins over env
	profilePath := profileFile
	if profilePath == "" {
		profilePath = cfg.Analysis.ThresholdsFile
	}
	profile, _, err := analysisconfig.LoadOrDefault(profilePath)
	if err != nil {
		return nil, fmt.Errorf("load analysis profile: %w", err)
	}
	hash, err := analysisconfig.Hash(profile)
	if err != nil {
		return nil, fmt.Errorf("hash analysis profile: %w", err)
	}

	rt := &runtime{cfg: cfg, log: log, profile: profile}

	if needDB {
		if err := cfg.RequireDatabase(); err != nil {
			return nil, err
		}
		db, err := database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		rt.db = db
		rt.snapshotRepo = storage.NewSnapshotRepository(db.Pool)
		rt.verdictRepo = storage.NewVerdictRepository(db.Pool)
	}

	rdb, err := redis.New(cfg)
	if err != nil {
		// Redis 장애는 치명적이지 않음: 캐시 없이 동작
		log.WithError(err).Warn("Redis unavailable, continuing without cache")
		rdb, _ = redis.New(&config.Config{})
	}
	rt.redis = rdb
	rt.cache = redis.NewCache(rdb, "earnings")
	rt.limiter = redis.NewRateLimiter(rdb, "earnings")

	zl := log.Zerolog()
	rt.engine = engine.New(
		delta.NewAnalyzerWithThresholds(profile.Delta.Thresholds(), zl),
		trends.NewAnalyzerWithThresholds(profile.Trends.Thresholds(), zl),
		sector.NewComparatorWithThresholds(profile.Sector.Thresholds(), zl),
		quality.NewValidator(zl),
		rt.snapshotRepo,
		rt.verdictRepo,
		rt.cache,
		hash,
		log,
	)
	rt.engine.SetCacheTTL(cfg.Analysis.CacheTTL)

	return rt, nil
}
