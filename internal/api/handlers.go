package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ppiankov/candor/internal/logging"
	"github.com/ppiankov/candor/internal/model"
)

// validationError is a client error whose message is returned verbatim
type validationError string

func (e validationError) Error() string { return string(e) }

const (
	errRatingRange  validationError = "Star rating must be between 1 and 5"
	errRatingFormat validationError = "Invalid star rating format"
)

// features advertised by the health endpoint
var features = []string{"single_review_analysis", "csv_batch_analysis", "enhanced_metadata"}

type analyzeRequest struct {
	Text         *string         `json:"text"`
	PlaceName    string          `json:"place_name"`
	StarRating   json.RawMessage `json:"star_rating"`
	BusinessType string          `json:"business_type"`
}

// envelope is attached to every analysis response
type envelope struct {
	AnalyzedAt       string  `json:"analyzed_at"`
	ModelVersion     string  `json:"model_version"`
	ProcessingTimeMS float64 `json:"processing_time_ms"`
	EnhancedAnalysis bool    `json:"enhanced_analysis,omitempty"`
	FileName         string  `json:"file_name,omitempty"`
}

type analyzeResponse struct {
	model.AnalysisResult
	Metadata envelope `json:"metadata"`
}

type batchResponse struct {
	model.BatchReport
	Metadata envelope `json:"metadata"`
}

type healthResponse struct {
	Status    string   `json:"status"`
	Service   string   `json:"service"`
	Version   string   `json:"version"`
	Timestamp string   `json:"timestamp"`
	Features  []string `json:"features"`
}

func newEnvelope(start time.Time) envelope {
	elapsed := float64(time.Since(start).Microseconds()) / 1000
	return envelope{
		AnalyzedAt:       time.Now().UTC().Format(time.RFC3339),
		ModelVersion:     model.ModelVersion,
		ProcessingTimeMS: math.Round(elapsed*100) / 100,
	}
}

// health handles GET /api/health
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:    "healthy",
		Service:   serviceName,
		Version:   model.ModelVersion,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Features:  features,
	})
}

// analyze handles POST /api/analyze
func (s *Server) analyze(c *gin.Context) {
	start := time.Now()
	defer s.recoverAnalysis(c)

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	if req.Text == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Review text is required"})
		return
	}

	rating, err := parseRating(req.StarRating)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := s.analyzer.AnalyzeReview(model.Review{
		Text:         *req.Text,
		PlaceName:    req.PlaceName,
		StarRating:   rating,
		BusinessType: req.BusinessType,
	})

	meta := newEnvelope(start)
	meta.EnhancedAnalysis = true
	c.JSON(http.StatusOK, analyzeResponse{AnalysisResult: result, Metadata: meta})
}

// analyzeCSV handles POST /api/analyze-csv. Batch failures are reported in the body with 200.
func (s *Server) analyzeCSV(c *gin.Context) {
	start := time.Now()
	defer s.recoverAnalysis(c)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("File exceeds %d bytes", tooLarge.Limit)})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No CSV file provided"})
		return
	}
	if header.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file selected"})
		return
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File must be a CSV file"})
		return
	}

	f, err := header.Open()
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed: " + err.Error()})
		return
	}
	defer func() { _ = f.Close() }()

	report := s.analyzer.AnalyzeCSV(c.Request.Context(), f)

	meta := newEnvelope(start)
	meta.FileName = header.Filename
	c.JSON(http.StatusOK, batchResponse{BatchReport: report, Metadata: meta})
}

func (s *Server) recoverAnalysis(c *gin.Context) {
	r := recover()
	if r == nil {
		return
	}
	s.logger.Error("analysis panicked", logging.String("path", c.Request.URL.Path), logging.String("panic", fmt.Sprint(r)))
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Analysis failed: %v", r)})
}

// parseRating accepts a JSON number or numeric string. Null or absent means no rating.
func parseRating(raw json.RawMessage) (*float64, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, errRatingFormat
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, errRatingFormat
		}
		v = parsed
	}

	// NaN fails both comparisons
	if !(v >= 1 && v <= 5) {
		return nil, errRatingRange
	}
	return &v, nil
}
