package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Krishiv14/EarningsAgent/internal/api/handlers"
	"github.com/Krishiv14/EarningsAgent/pkg/logger"
	"github.com/Krishiv14/EarningsAgent/pkg/redis"
)

// RouterConfig bundles the router's dependencies
type RouterConfig struct {
	Analysis *handlers.AnalysisHandler
	Report   *handlers.ReportHandler
	Sweep    *handlers.SweepHandler
	Hub      *Hub

	RateLimiter     *redis.RateLimiter
	RateLimit       int
	RateLimitWindow time.Duration
}

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(cfg RouterConfig, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// Verdict stream
	if cfg.Hub != nil {
		r.HandleFunc("/ws/verdicts", cfg.Hub.HandleWS).Methods("GET")
	}

	// API v1
	api := r.PathPrefix("/api").Subrouter()

	// Ad-hoc analysis
	api.HandleFunc("/analyze", cfg.Analysis.Analyze).Methods("POST")

	// Stored ticker endpoints
	api.HandleFunc("/stocks/{ticker}/snapshots", cfg.Analysis.SaveSnapshots).Methods("POST")
	api.HandleFunc("/stocks/{ticker}/delta", cfg.Analysis.GetDelta).Methods("GET")
	api.HandleFunc("/stocks/{ticker}/trends", cfg.Analysis.GetTrends).Methods("GET")
	api.HandleFunc("/stocks/{ticker}/sector", cfg.Analysis.CompareSector).Methods("POST")
	api.HandleFunc("/stocks/{ticker}/quality", cfg.Analysis.GetQuality).Methods("GET")

	// Cross-ticker queries
	api.HandleFunc("/verdicts", cfg.Analysis.ListVerdicts).Methods("GET")

	// Report extraction
	api.HandleFunc("/report/extract", cfg.Report.Extract).Methods("POST")

	// Watchlist sweep
	if cfg.Sweep != nil {
		api.HandleFunc("/sweep", cfg.Sweep.Run).Methods("POST")
	}

	// Apply middleware. 레이트 리밋은 /api에만
	if cfg.RateLimiter != nil && cfg.RateLimit > 0 {
		api.Use(rateLimitMiddleware(cfg.RateLimiter, cfg.RateLimit, cfg.RateLimitWindow, log))
	}
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "earnings-agent-api",
	})
}
