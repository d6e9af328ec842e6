package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Krishiv14/EarningsAgent/internal/contracts"
	"github.com/Krishiv14/EarningsAgent/internal/engine"
	"github.com/Krishiv14/EarningsAgent/internal/quality"
	"github.com/Krishiv14/EarningsAgent/internal/sector"
	"github.com/Krishiv14/EarningsAgent/internal/storage"
	"github.com/Krishiv14/EarningsAgent/pkg/logger"
)

// AnalysisHandler handles delta analysis API endpoints
// ⭐ SSOT: 분석 API 핸들러는 이 구조체에서만
type AnalysisHandler struct {
	engine       *engine.Orchestrator
	snapshotRepo *storage.SnapshotRepository
	verdictRepo  *storage.VerdictRepository
	logger       *logger.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(
	eng *engine.Orchestrator,
	snapshotRepo *storage.SnapshotRepository,
	verdictRepo *storage.VerdictRepository,
	log *logger.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		engine:       eng,
		snapshotRepo: snapshotRepo,
		verdictRepo:  verdictRepo,
		logger:       log,
	}
}

// snapshotRequest is one quarter of metrics. Pointers distinguish
// "field absent" from zero.
type snapshotRequest struct {
	Revenue   *float64 `json:"revenue"`
	NetProfit *float64 `json:"netProfit"`
	Period    string   `json:"period"`
}

// analyzeRequest is the body of POST /api/analyze
type analyzeRequest struct {
	Current *snapshotRequest `json:"current"`
	Prior   *snapshotRequest `json:"prior"`
}

func (r *analyzeRequest) toPair() (contracts.MetricPair, error) {
	var pair contracts.MetricPair

	if r.Current == nil || r.Prior == nil {
		return pair, errors.New("current and prior snapshots are required")
	}

	cur, err := r.Current.toSnapshot("current")
	if err != nil {
		return pair, err
	}
	pri, err := r.Prior.toSnapshot("prior")
	if err != nil {
		return pair, err
	}

	pair.Current = cur
	pair.Prior = pri
	return pair, nil
}

func (s *snapshotRequest) toSnapshot(which string) (contracts.MetricSnapshot, error) {
	var snap contracts.MetricSnapshot

	if s.Revenue == nil {
		return snap, errors.New(which + ".revenue is required")
	}
	if math.IsNaN(*s.Revenue) || math.IsInf(*s.Revenue, 0) {
		return snap, errors.New(which + ".revenue must be finite")
	}

	snap.Revenue = *s.Revenue
	if s.NetProfit != nil {
		snap.NetProfit = *s.NetProfit
	}
	snap.Period = s.Period
	return snap, nil
}

// Analyze runs delta analysis on metrics supplied in the request body
// POST /api/analyze
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	pair, err := req.toPair()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	verdict, err := h.engine.AnalyzePair(pair)
	if err != nil {
		if errors.Is(err, contracts.ErrInvalidInput) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.WithError(err).Error("Ad-hoc analysis failed")
		respondError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	// 판정과 함께 입력 데이터 경고도 반환
	warnings := quality.SnapshotWarnings(pair.Current, "current")
	warnings = append(warnings, quality.SnapshotWarnings(pair.Prior, "prior")...)

	respondJSON(w, http.StatusOK, struct {
		*contracts.DeltaVerdict
		Warnings []string `json:"warnings,omitempty"`
	}{verdict, warnings})
}

// GetDelta returns the latest verdict for a stored ticker
// GET /api/stocks/{ticker}/delta
func (h *AnalysisHandler) GetDelta(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	stored, err := h.engine.CachedVerdict(ctx, ticker)
	if err != nil {
		if errors.Is(err, contracts.ErrInsufficientHistory) {
			respondError(w, http.StatusNotFound, "not enough stored quarters for "+ticker)
			return
		}
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to get verdict")
		respondError(w, http.StatusInternalServerError, "failed to get verdict")
		return
	}

	respondJSON(w, http.StatusOK, stored)
}

// GetTrends returns the multi-quarter trend report for a ticker
// GET /api/stocks/{ticker}/trends
func (h *AnalysisHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	report, err := h.engine.TrendReport(ctx, ticker)
	if err != nil {
		if errors.Is(err, contracts.ErrInsufficientHistory) {
			respondError(w, http.StatusNotFound, "not enough stored quarters for "+ticker)
			return
		}
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to build trend report")
		respondError(w, http.StatusInternalServerError, "failed to build trend report")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// sectorRequest is the body of POST /api/stocks/{ticker}/sector
type sectorRequest struct {
	PERatio      *float64 `json:"peRatio"`
	ProfitMargin *float64 `json:"profitMargin"`
	ROE          *float64 `json:"roe"`
	DebtToEquity *float64 `json:"debtToEquity"`
}

// CompareSector compares company metrics to the sector baseline
// POST /api/stocks/{ticker}/sector
func (h *AnalysisHandler) CompareSector(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]

	var req sectorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result := h.engine.CompareSector(ticker, sector.CompanyMetrics{
		PERatio:         req.PERatio,
		ProfitMarginPct: req.ProfitMargin,
		ROEPct:          req.ROE,
		DebtToEquity:    req.DebtToEquity,
	})

	respondJSON(w, http.StatusOK, result)
}

// GetQuality returns the data quality report for a ticker
// GET /api/stocks/{ticker}/quality
func (h *AnalysisHandler) GetQuality(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	report, err := h.engine.QualityReport(ctx, ticker)
	if err != nil {
		if errors.Is(err, contracts.ErrInsufficientHistory) {
			respondError(w, http.StatusNotFound, "not enough stored quarters for "+ticker)
			return
		}
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to assess quality")
		respondError(w, http.StatusInternalServerError, "failed to assess quality")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// snapshotIngest is one element of POST /api/stocks/{ticker}/snapshots
type snapshotIngest struct {
	Revenue    *float64 `json:"revenue"`
	NetProfit  *float64 `json:"netProfit"`
	Period     string   `json:"period"`
	ReportDate string   `json:"reportDate"` // YYYY-MM-DD, optional
}

// SaveSnapshots stores quarterly snapshots for later analysis
// POST /api/stocks/{ticker}/snapshots
func (h *AnalysisHandler) SaveSnapshots(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	if h.snapshotRepo == nil {
		respondError(w, http.StatusServiceUnavailable, "storage not configured")
		return
	}

	var reqs []snapshotIngest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(reqs) == 0 {
		respondError(w, http.StatusBadRequest, "at least one snapshot is required")
		return
	}

	stored := make([]*contracts.StoredSnapshot, 0, len(reqs))
	for i, req := range reqs {
		if req.Revenue == nil || req.Period == "" {
			respondError(w, http.StatusBadRequest,
				"snapshot "+strconv.Itoa(i)+": revenue and period are required")
			return
		}

		s := &contracts.StoredSnapshot{
			Ticker: ticker,
			Snapshot: contracts.MetricSnapshot{
				Revenue: *req.Revenue,
				Period:  req.Period,
			},
		}
		if req.NetProfit != nil {
			s.Snapshot.NetProfit = *req.NetProfit
		}
		if !s.Snapshot.Valid() {
			respondError(w, http.StatusBadRequest,
				"snapshot "+strconv.Itoa(i)+": values must be finite")
			return
		}
		if req.ReportDate != "" {
			d, err := time.Parse("2006-01-02", req.ReportDate)
			if err != nil {
				respondError(w, http.StatusBadRequest,
					"snapshot "+strconv.Itoa(i)+": reportDate must be YYYY-MM-DD")
				return
			}
			s.ReportDate = d
		}
		stored = append(stored, s)
	}

	if err := h.snapshotRepo.SaveBatch(ctx, stored); err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to save snapshots")
		respondError(w, http.StatusInternalServerError, "failed to save snapshots")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"ticker": ticker,
		"saved":  len(stored),
	})
}

// ListVerdicts returns recent verdicts, optionally filtered by severity
// GET /api/verdicts?severity=High&limit=20
func (h *AnalysisHandler) ListVerdicts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.verdictRepo == nil {
		respondError(w, http.StatusServiceUnavailable, "storage not configured")
		return
	}

	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 200 {
			limit = l
		}
	}

	var (
		verdicts []*contracts.StoredVerdict
		err      error
	)
	if sev := r.URL.Query().Get("severity"); sev != "" {
		severity := contracts.Severity(sev)
		switch severity {
		case contracts.SeverityLow, contracts.SeverityMedium,
			contracts.SeverityHigh, contracts.SeverityCritical:
		default:
			respondError(w, http.StatusBadRequest, "unknown severity: "+sev)
			return
		}
		verdicts, err = h.verdictRepo.ListBySeverity(ctx, severity, limit)
	} else {
		verdicts, err = h.verdictRepo.ListRecent(ctx, limit)
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to list verdicts")
		respondError(w, http.StatusInternalServerError, "failed to list verdicts")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"verdicts": verdicts,
		"count":    len(verdicts),
	})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
