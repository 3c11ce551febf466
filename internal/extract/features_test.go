package extract

import (
	"strings"
	"testing"

	"github.com/ppiankov/candor/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestFeatureExtractor_Extract(t *testing.T) {
	e := NewFeatureExtractor()

	f := e.Extract("The food was amazing and the waiter was friendly")
	assert.Equal(t, 48, f.Length)
	assert.Equal(t, 9, f.WordCount)
	assert.Equal(t, 1, f.SentenceCount)
	assert.Equal(t, 4.44, f.AvgWordLength)
	assert.Equal(t, 9.0, f.AvgSentenceLength)
	assert.Equal(t, model.ReadabilityHigh, f.Readability)
	assert.Equal(t, []string{"food", "amazing", "waiter", "friendly"}, f.Keywords)
	assert.Empty(t, f.Error)
}

func TestFeatureExtractor_TrailingPeriodCountsAsSentence(t *testing.T) {
	e := NewFeatureExtractor()

	f := e.Extract("Great place. Loved it.")
	assert.Equal(t, 3, f.SentenceCount)
	assert.Equal(t, 4, f.WordCount)
	assert.Equal(t, 4.75, f.AvgWordLength)
	assert.Equal(t, 1.33, f.AvgSentenceLength)
	assert.Equal(t, []string{"great", "place", "loved"}, f.Keywords)
}

func TestFeatureExtractor_Empty(t *testing.T) {
	e := NewFeatureExtractor()

	f := e.Extract("")
	assert.Equal(t, 0, f.Length)
	assert.Equal(t, 0, f.WordCount)
	assert.Equal(t, 1, f.SentenceCount)
	assert.Zero(t, f.AvgWordLength)
	assert.Zero(t, f.AvgSentenceLength)
	assert.NotNil(t, f.Keywords)
	assert.Empty(t, f.Keywords)
}

func TestFeatureExtractor_Readability(t *testing.T) {
	e := NewFeatureExtractor()

	tests := []struct {
		name     string
		text     string
		expected model.Readability
	}{
		{name: "short words short sentences", text: "Nice cozy spot", expected: model.ReadabilityHigh},
		{name: "long words", text: "amazing amazing", expected: model.ReadabilityMedium},
		{name: "long sentence", text: strings.Repeat("a ", 20), expected: model.ReadabilityMedium},
		{name: "very long words", text: "Incomprehensibilities notwithstanding", expected: model.ReadabilityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, e.Extract(tt.text).Readability)
		})
	}
}

func TestFeatureExtractor_Keywords(t *testing.T) {
	e := NewFeatureExtractor()

	f := e.Extract("alpha bravo charlie delta echo foxtrot golf hotel")
	assert.Equal(t, []string{"alpha", "bravo", "charlie", "delta", "echo"}, f.Keywords)

	f = e.Extract("Pizza pizza PIZZA! Pasta with the sauce")
	assert.Equal(t, []string{"pizza", "pasta", "sauce"}, f.Keywords)

	// Punctuation-only tokens produce no keyword
	f = e.Extract("wow ..!! nice")
	assert.Equal(t, []string{"nice"}, f.Keywords)
}

func TestFeatureExtractor_CountsCodePoints(t *testing.T) {
	e := NewFeatureExtractor()

	f := e.Extract("café crème brûlée")
	assert.Equal(t, 17, f.Length)
	assert.Equal(t, 5.0, f.AvgWordLength)
}

func TestInvalidFeatures(t *testing.T) {
	f := InvalidFeatures(" ok ")
	assert.Equal(t, 4, f.Length)
	assert.NotEmpty(t, f.Error)
	assert.Zero(t, f.WordCount)
}
