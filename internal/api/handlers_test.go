package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/candor/internal/business"
	"github.com/ppiankov/candor/internal/detect"
	"github.com/ppiankov/candor/internal/model"
	"github.com/ppiankov/candor/internal/pipeline"
	"github.com/ppiankov/candor/internal/rules"
	"github.com/ppiankov/candor/internal/score"
	"github.com/ppiankov/candor/internal/telemetry"
)

type panickingAnalyzer struct{}

func (panickingAnalyzer) AnalyzeReview(model.Review) model.AnalysisResult { panic("boom") }

func (panickingAnalyzer) AnalyzeCSV(context.Context, io.Reader) model.BatchReport { panic("boom") }

func testConfig() model.ServerConfig {
	cfg := model.DefaultConfig().Server
	cfg.RateLimit.Enabled = false
	return cfg
}

func newTestServer(t *testing.T, cfg model.ServerConfig, metrics *telemetry.Metrics) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	detector := detect.NewDetector(rules.Default(), business.DefaultModel())
	analyzer := pipeline.NewAnalyzer(detector, score.NewScorer(score.ZeroNoise))
	return NewServer(cfg, analyzer, nil, metrics)
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func postFile(t *testing.T, h http.Handler, field, name, content string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		fw, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("note", "no file"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-csv", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "Review Legitimacy Detector", body["service"])
	assert.Equal(t, "2.0.0", body["version"])
	assert.Len(t, body["features"], 3)
}

func TestAnalyze(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	w := postJSON(t, s.Handler(), "/api/analyze", `{"text": "Call us at 555-123-4567 for a discount", "star_rating": "4"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "advertisement", body["status"])
	assert.Equal(t, false, body["legitimate"])

	meta := body["metadata"].(map[string]any)
	assert.Equal(t, "2.0.0", meta["model_version"])
	assert.Equal(t, true, meta["enhanced_analysis"])
	assert.NotEmpty(t, meta["analyzed_at"])
	assert.Contains(t, meta, "processing_time_ms")

	analysis := body["analysis"].(map[string]any)
	insights := analysis["metadata_analysis"].(map[string]any)["insights"].(map[string]any)
	assert.Equal(t, 4.0, insights["star_rating"])
}

func TestAnalyze_EmptyTextIsInvalid(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	w := postJSON(t, s.Handler(), "/api/analyze", `{"text": ""}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "invalid", decode(t, w)["status"])
}

func TestAnalyze_Validation(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "missing text", body: `{"place_name": "Cafe"}`, message: "Review text is required"},
		{name: "not json", body: `text=hello`, message: "Invalid JSON body"},
		{name: "rating too high", body: `{"text": "Nice place", "star_rating": 6}`, message: "Star rating must be between 1 and 5"},
		{name: "rating too low", body: `{"text": "Nice place", "star_rating": "0.5"}`, message: "Star rating must be between 1 and 5"},
		{name: "rating not numeric", body: `{"text": "Nice place", "star_rating": "five"}`, message: "Invalid star rating format"},
		{name: "rating empty string", body: `{"text": "Nice place", "star_rating": ""}`, message: "Invalid star rating format"},
		{name: "rating boolean", body: `{"text": "Nice place", "star_rating": true}`, message: "Invalid star rating format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, s.Handler(), "/api/analyze", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.message, decode(t, w)["error"])
		})
	}
}

func TestAnalyze_NullRatingIsAbsent(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	w := postJSON(t, s.Handler(), "/api/analyze", `{"text": "The food was amazing and the waiter was friendly", "star_rating": null}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "authentic", decode(t, w)["status"])
}

func TestAnalyze_Panic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := NewServer(testConfig(), panickingAnalyzer{}, nil, nil)

	w := postJSON(t, s.Handler(), "/api/analyze", `{"text": "anything at all"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Analysis failed: boom", decode(t, w)["error"])
}

func TestAnalyzeCSV(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	csv := "review_text,place_name,star_rating\n" +
		"The food was amazing and the waiter was friendly,Cafe Luna,5\n" +
		"Call us at 555-123-4567 for a discount today,Cafe Luna,4\n"
	w := postFile(t, s.Handler(), "file", "reviews.CSV", csv)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["analysis_results"], 2)
	meta := body["metadata"].(map[string]any)
	assert.Equal(t, "reviews.CSV", meta["file_name"])
	assert.NotContains(t, meta, "enhanced_analysis")
}

func TestAnalyzeCSV_FailureIsReportedWith200(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	w := postFile(t, s.Handler(), "file", "reviews.csv", "comment\nnice\n")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "text column")
}

func TestAnalyzeCSV_Validation(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	w := postFile(t, s.Handler(), "", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No CSV file provided", decode(t, w)["error"])

	w = postFile(t, s.Handler(), "file", "reviews.txt", "text\nhello there\n")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "File must be a CSV file", decode(t, w)["error"])
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = model.RateLimit{Enabled: true, RequestsPerSecond: 0.001, BurstSize: 1}
	metrics := telemetry.NewMetrics()
	s := newTestServer(t, cfg, metrics)

	body := `{"text": "The food was amazing and the waiter was friendly"}`
	assert.Equal(t, http.StatusOK, postJSON(t, s.Handler(), "/api/analyze", body).Code)

	w := postJSON(t, s.Handler(), "/api/analyze", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RateLimited))

	// Health checks are never throttled
	hw := httptest.NewRecorder()
	s.Handler().ServeHTTP(hw, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, hw.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	metrics := telemetry.NewMetrics()
	s := newTestServer(t, testConfig(), metrics)

	postJSON(t, s.Handler(), "/api/analyze", `{"place_name": "Cafe"}`)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("/api/analyze", "400")))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "candor_http_requests_total")
}
