package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Krishiv14/EarningsAgent/internal/api"
	"github.com/Krishiv14/EarningsAgent/internal/api/handlers"
	"github.com/Krishiv14/EarningsAgent/internal/report"
	"github.com/Krishiv14/EarningsAgent/internal/scheduler"
	"github.com/Krishiv14/EarningsAgent/internal/scheduler/jobs"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- 실적 분석 엔드포인트 제공
- 워치리스트 스윕 스케줄러 시작
- 판정 WebSocket 스트림 제공

Endpoints:
  GET  /health                        - Health check
  POST /api/analyze                   - Ad-hoc 델타 분석
  POST /api/stocks/{t}/snapshots      - 분기 스냅샷 적재
  GET  /api/stocks/{t}/delta          - 저장 데이터 기반 판정
  GET  /api/stocks/{t}/trends         - 다분기 추세 리포트
  POST /api/stocks/{t}/sector         - 섹터 비교
  GET  /api/stocks/{t}/quality        - 데이터 품질 리포트
  GET  /api/verdicts                  - 판정 목록 (severity 필터)
  POST /api/report/extract            - 실적 공시에서 수치 추출
  POST /api/sweep                     - 워치리스트 즉시 스윕
  GET  /ws/verdicts                   - 판정 실시간 스트림

Example:
  go run ./cmd/earnings api
  go run ./cmd/earnings api --port 9000`,
	RunE: runAPIServer,
}

var (
	apiPort        string
	apiNoScheduler bool
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: PORT env)")
	apiCmd.Flags().BoolVar(&apiNoScheduler, "no-scheduler", false, "워치리스트 스윕 스케줄러 비활성화")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== EarningsAgent API Server ===")

	rt, err := wire(true)
	if err != nil {
		return err
	}
	defer rt.close()

	if apiPort != "" {
		rt.cfg.Port = apiPort
	}
	log := rt.log

	// Apply schema on startup
	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := rt.db.Migrate(migrateCtx); err != nil {
		cancelMigrate()
		return fmt.Errorf("apply schema: %w", err)
	}
	cancelMigrate()
	log.Info("Database schema ready")

	// Verdict stream hub
	hub := api.NewHub(log)
	rt.engine.SetPublisher(hub)

	// Handlers
	analysisHandler := handlers.NewAnalysisHandler(rt.engine, rt.snapshotRepo, rt.verdictRepo, log)
	reportHandler := handlers.NewReportHandler(report.NewExtractor(log.Zerolog()), log)
	sweepHandler := handlers.NewSweepHandler(rt.engine, rt.cfg.Analysis.Watchlist, log)

	// Router + server
	router := api.NewRouter(api.RouterConfig{
		Analysis:        analysisHandler,
		Report:          reportHandler,
		Sweep:           sweepHandler,
		Hub:             hub,
		RateLimiter:     rt.limiter,
		RateLimit:       rt.cfg.Analysis.RateLimit,
		RateLimitWindow: rt.cfg.Analysis.RateLimitWindow,
	}, log)
	server := api.New(rt.cfg, log, router)

	// Watchlist sweep scheduler
	var sched *scheduler.Scheduler
	if !apiNoScheduler && len(rt.cfg.Analysis.Watchlist) > 0 {
		sched = scheduler.New(log)
		sweepJob := jobs.NewWatchlistSweepJob(
			rt.engine, rt.cfg.Analysis.Watchlist, rt.cfg.Analysis.SweepSchedule, log)
		if err := sched.AddJob(sweepJob); err != nil {
			return fmt.Errorf("schedule sweep job: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.WithFields(map[string]interface{}{
		"profile":   rt.profile.Meta.ProfileID,
		"watchlist": len(rt.cfg.Analysis.Watchlist),
	}).Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", rt.cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
