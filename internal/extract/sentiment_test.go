package extract

import (
	"testing"

	"github.com/ppiankov/candor/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestSentimentAnalyzer_Analyze(t *testing.T) {
	a := NewSentimentAnalyzer()

	tests := []struct {
		name     string
		text     string
		expected model.Sentiment
	}{
		{name: "positive", text: "The food was amazing and the waiter was friendly", expected: model.SentimentPositive},
		{name: "negative", text: "Bad service and awful coffee, but a good view", expected: model.SentimentNegative},
		{name: "tie", text: "good food, bad parking", expected: model.SentimentNeutral},
		{name: "none", text: "We had lunch here", expected: model.SentimentNeutral},
		{name: "case insensitive", text: "WONDERFUL", expected: model.SentimentPositive},
		{name: "substring", text: "the goodness of it", expected: model.SentimentPositive},
		{name: "repeats count once", text: "great great great, terrible, worst", expected: model.SentimentNegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, a.Analyze(tt.text))
		})
	}
}
