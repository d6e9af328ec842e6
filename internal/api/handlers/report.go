package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Krishiv14/EarningsAgent/internal/report"
	"github.com/Krishiv14/EarningsAgent/pkg/logger"
)

// ReportHandler handles earnings report extraction endpoints
type ReportHandler struct {
	extractor *report.Extractor
	logger    *logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(extractor *report.Extractor, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		extractor: extractor,
		logger:    log,
	}
}

// extractRequest is the body of POST /api/report/extract
type extractRequest struct {
	Content string `json:"content"`
	Format  string `json:"format"` // "html" | "text", 기본 html
	Period  string `json:"period"` // optional, 스냅샷 변환용
}

// extractResponse carries the extracted metrics and an optional snapshot
type extractResponse struct {
	Metrics  *report.Metrics `json:"metrics"`
	Found    int             `json:"found"`
	Snapshot interface{}     `json:"snapshot,omitempty"`
}

// Extract pulls key figures out of a submitted earnings report
// POST /api/report/extract
func (h *ReportHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respondError(w, http.StatusBadRequest, "content is required")
		return
	}

	var (
		metrics *report.Metrics
		err     error
	)
	switch req.Format {
	case "", "html":
		metrics, err = h.extractor.ExtractHTML(strings.NewReader(req.Content))
		if err != nil {
			respondError(w, http.StatusBadRequest, "failed to parse HTML content")
			return
		}
	case "text":
		metrics = h.extractor.ExtractText(req.Content)
	default:
		respondError(w, http.StatusBadRequest, "format must be html or text")
		return
	}

	resp := extractResponse{
		Metrics: metrics,
		Found:   metrics.Found(),
	}

	// 수익과 이익을 모두 찾은 경우에만 스냅샷 제공
	if snap, err := metrics.Snapshot(req.Period); err == nil {
		resp.Snapshot = snap
	}

	respondJSON(w, http.StatusOK, resp)
}
