package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/candor/internal/model"
)

func sampleResult() model.AnalysisResult {
	return model.AnalysisResult{
		Legitimate: false,
		Status:     model.StatusAdvertisement,
		Confidence: 0.4,
		Analysis: model.Analysis{
			Sentiment: model.SentimentNeutral,
			Violations: []model.Violation{
				{Type: model.ViolationAdvertisement, Description: "Contains direct promotional content", Details: map[string]int{"strong_indicators": 1}},
				{Type: model.ViolationPersonalInfo, Description: "Contains personal information", Pattern: "phone-number"},
			},
			TextFeatures:    model.TextFeatures{Length: 38, WordCount: 8, Keywords: []string{"discount"}},
			RiskFactors:     []string{"Contains direct promotional content", "Low confidence score"},
			Recommendations: []string{"Remove promotional content and focus on product experience."},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "TEXT": FormatText, " json ": FormatJSON, "yaml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestRenderer_ResultText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(FormatText, true, true).Result(&buf, sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "ADVERTISEMENT")
	assert.Contains(t, out, "0.400")
	assert.Contains(t, out, "(phone-number)")
	assert.Contains(t, out, "strong_indicators: 1")
	assert.Contains(t, out, "keywords: discount")
	assert.Contains(t, out, "Remove promotional content")
	assert.NotContains(t, out, "\x1b[")
}

func TestRenderer_ResultJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(FormatJSON, true, false).Result(&buf, sampleResult()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "advertisement", decoded["status"])
	analysis := decoded["analysis"].(map[string]any)
	assert.Len(t, analysis["policy_violations"], 2)
}

func TestRenderer_ResultYAMLUsesJSONNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(FormatYAML, true, false).Result(&buf, sampleResult()))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "advertisement", decoded["status"])
	assert.Contains(t, buf.String(), "policy_violations:")
	assert.Contains(t, buf.String(), "risk_factors:")
}

func TestRenderer_Batch(t *testing.T) {
	report := model.BatchReport{
		Success: true,
		PreprocessingSteps: []model.PreprocessingStep{
			{Step: model.StepDataLoading, Description: "Loaded 3 rows"},
		},
		Results: []model.RowResult{
			{Index: 0, Status: model.StatusAuthentic, Confidence: 0.9},
			{Index: 2, Status: model.StatusAdvertisement, Confidence: 0.2, Violations: 2},
		},
		Summary: model.BatchSummary{
			TotalAnalyzed:      2,
			StatusDistribution: map[model.Status]int{model.StatusAuthentic: 1, model.StatusAdvertisement: 1},
			AverageConfidence:  0.55,
			TotalViolations:    2,
			ViolationRate:      1,
		},
		FinalShape: [2]int{3, 2},
	}

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(FormatText, true, true).Batch(&buf, report))
	out := buf.String()
	assert.Contains(t, out, "Loaded 3 rows")
	assert.Contains(t, out, "3 rows x 2 columns")
	assert.Contains(t, out, "#2")
	// Ties are ordered by name
	assert.Less(t, strings.Index(out, "advertisement  1"), strings.Index(out, "authentic      1"))
}

func TestRenderer_BatchInsights(t *testing.T) {
	report := model.BatchReport{
		Success: true,
		Summary: model.BatchSummary{
			TotalAnalyzed: 4,
			Insights: &model.BatchInsights{
				Ratings: &model.RatingStats{
					Count: 4, Mean: 3.75, Median: 4, Std: 0.96, Min: 3, Max: 5,
					Distribution: map[string]int{"3": 2, "5": 1, "4.5": 1},
				},
				PlaceRatings: map[string]model.PlaceRating{"Cafe Luna": {Mean: 4.25, Count: 2}},
				Text: &model.TextStats{
					AvgLength: 42, MedianLength: 40, MinLength: 20, MaxLength: 70,
					AvgWords: 8, MedianWords: 7, MinWords: 4, MaxWords: 13,
				},
				DataQuality: model.DataQuality{MissingText: 1, MissingRatings: 2},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(FormatText, true, false).Batch(&buf, report))
	out := buf.String()
	assert.Contains(t, out, "mean 3.75, median 4.00")
	assert.Less(t, strings.Index(out, "  3      2"), strings.Index(out, "  4.5    1"))
	assert.Contains(t, out, "length: avg 42, median 40, range 20-70 characters")
	assert.Contains(t, out, "words:  avg 8, median 7, range 4-13")
	assert.Contains(t, out, "Cafe Luna")
	assert.Contains(t, out, "4.25 (2 reviews)")
	assert.Contains(t, out, "Data quality: missing text 1, ratings 2, places 0")
}

func TestRenderer_BatchFailed(t *testing.T) {
	var buf bytes.Buffer
	report := model.BatchReport{Success: false, Error: "csv input is empty"}
	require.NoError(t, NewRenderer(FormatText, true, false).Batch(&buf, report))
	assert.Contains(t, buf.String(), "Batch analysis failed: csv input is empty")
}
