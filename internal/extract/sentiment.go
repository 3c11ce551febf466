package extract

import (
	"strings"

	"github.com/ppiankov/candor/internal/match"
	"github.com/ppiankov/candor/internal/model"
)

// SentimentAnalyzer classifies text polarity by counting distinct positive and
// negative words contained in it
type SentimentAnalyzer struct {
	positive *match.Terms
	negative *match.Terms
}

// NewSentimentAnalyzer creates an analyzer with the built-in word lists
func NewSentimentAnalyzer() *SentimentAnalyzer {
	return &SentimentAnalyzer{
		positive: match.NewTerms([]string{"good", "great", "excellent", "amazing", "love", "perfect", "wonderful"}),
		negative: match.NewTerms([]string{"bad", "terrible", "awful", "hate", "worst", "horrible", "disappointing"}),
	}
}

// Analyze returns the polarity of text. Words match as substrings, so "goodness" counts as good.
func (a *SentimentAnalyzer) Analyze(text string) model.Sentiment {
	lowered := strings.ToLower(text)
	pos := a.positive.Count(lowered)
	neg := a.negative.Count(lowered)

	switch {
	case pos > neg:
		return model.SentimentPositive
	case neg > pos:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}
