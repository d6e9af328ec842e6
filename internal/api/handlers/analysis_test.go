package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Krishiv14/EarningsAgent/internal/contracts"
	"github.com/Krishiv14/EarningsAgent/internal/delta"
	"github.com/Krishiv14/EarningsAgent/internal/engine"
	"github.com/Krishiv14/EarningsAgent/internal/quality"
	"github.com/Krishiv14/EarningsAgent/internal/sector"
	"github.com/Krishiv14/EarningsAgent/internal/trends"
	"github.com/Krishiv14/EarningsAgent/pkg/config"
	"github.com/Krishiv14/EarningsAgent/pkg/logger"
)

func testHandler(t *testing.T) *AnalysisHandler {
	t.Helper()
	log := logger.New(&config.Config{Env: "test", LogLevel: "error", LogFormat: "json"})
	zl := log.Zerolog()

	eng := engine.New(
		delta.NewAnalyzer(zl),
		trends.NewAnalyzer(zl),
		sector.NewComparator(zl),
		quality.NewValidator(zl),
		nil, nil, nil, "",
		log,
	)
	return NewAnalysisHandler(eng, nil, nil, log)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestAnalyze(t *testing.T) {
	h := testHandler(t)

	body := `{
		"current": {"revenue": 115, "netProfit": 92, "period": "Q2 FY25"},
		"prior":   {"revenue": 100, "netProfit": 100, "period": "Q1 FY25"}
	}`
	rr := postJSON(t, h.Analyze, "/api/analyze", body)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var verdict contracts.DeltaVerdict
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &verdict))
	assert.Equal(t, contracts.RelInverted, verdict.Relationship)
	assert.Equal(t, contracts.SeverityHigh, verdict.Severity)
	require.NotNil(t, verdict.RevenueChangePct)
	assert.InDelta(t, 15.0, *verdict.RevenueChangePct, 1e-9)
}

func TestAnalyzeZeroPrior(t *testing.T) {
	h := testHandler(t)

	body := `{
		"current": {"revenue": 500, "netProfit": 50},
		"prior":   {"revenue": 0, "netProfit": 0}
	}`
	rr := postJSON(t, h.Analyze, "/api/analyze", body)

	require.Equal(t, http.StatusOK, rr.Code)

	var verdict contracts.DeltaVerdict
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &verdict))
	assert.Equal(t, contracts.RelIndeterminate, verdict.Relationship)
	assert.Nil(t, verdict.RevenueChangePct)
}

func TestAnalyzeBadRequests(t *testing.T) {
	h := testHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `this is not json`},
		{"missing prior", `{"current": {"revenue": 100, "netProfit": 10}}`},
		{"missing revenue", `{
			"current": {"netProfit": 92},
			"prior":   {"revenue": 100, "netProfit": 100}
		}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postJSON(t, h.Analyze, "/api/analyze", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestCompareSector(t *testing.T) {
	h := testHandler(t)

	router := mux.NewRouter()
	router.HandleFunc("/api/stocks/{ticker}/sector", h.CompareSector).Methods("POST")

	body := `{"peRatio": 35, "profitMargin": 18, "roe": 28, "debtToEquity": 0.1}`
	req := httptest.NewRequest(http.MethodPost, "/api/stocks/TCS/sector", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var result sector.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.True(t, result.Available)
	assert.Equal(t, "TCS", result.Ticker)
}

func TestCompareSectorUnknownTicker(t *testing.T) {
	h := testHandler(t)

	router := mux.NewRouter()
	router.HandleFunc("/api/stocks/{ticker}/sector", h.CompareSector).Methods("POST")

	req := httptest.NewRequest(http.MethodPost, "/api/stocks/ZZZZ/sector",
		bytes.NewBufferString(`{"peRatio": 20}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var result sector.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.False(t, result.Available)
}

func TestSaveSnapshotsWithoutStorage(t *testing.T) {
	h := testHandler(t)

	router := mux.NewRouter()
	router.HandleFunc("/api/stocks/{ticker}/snapshots", h.SaveSnapshots).Methods("POST")

	req := httptest.NewRequest(http.MethodPost, "/api/stocks/TCS/snapshots",
		bytes.NewBufferString(`[{"revenue": 100, "netProfit": 10, "period": "Q1 FY25"}]`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestListVerdictsWithoutStorage(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/verdicts", nil)
	rr := httptest.NewRecorder()
	h.ListVerdicts(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
