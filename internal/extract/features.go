// Package extract derives structural features and lexical sentiment from review text.
package extract

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/candor/internal/model"
)

const (
	keywordLimit        = 10 // Distinct keywords kept
	keywordDisplayLimit = 5  // Keywords exposed in TextFeatures
	keywordMinLength    = 4  // Words must be longer than three characters
)

// FeatureExtractor computes TextFeatures. It holds no mutable state.
type FeatureExtractor struct {
	stopwords map[string]struct{}
}

// NewFeatureExtractor creates a feature extractor with the built-in stopword list
func NewFeatureExtractor() *FeatureExtractor {
	words := []string{
		"the", "a", "an", "and", "or", "but", "in", "on", "at", "to",
		"for", "of", "with", "by", "is", "was", "are", "were",
	}
	stopwords := make(map[string]struct{}, len(words))
	for _, w := range words {
		stopwords[w] = struct{}{}
	}
	return &FeatureExtractor{stopwords: stopwords}
}

// Extract computes the structural features of text. Lengths are counted in code points.
func (e *FeatureExtractor) Extract(text string) model.TextFeatures {
	words := strings.Fields(text)
	// A trailing period yields a trailing empty sentence, which is counted
	sentences := len(strings.Split(text, "."))

	var avgWord float64
	if len(words) > 0 {
		total := 0
		for _, w := range words {
			total += utf8.RuneCountInString(w)
		}
		avgWord = float64(total) / float64(len(words))
	}
	avgSentence := float64(len(words)) / float64(sentences)

	return model.TextFeatures{
		Length:            utf8.RuneCountInString(text),
		WordCount:         len(words),
		SentenceCount:     sentences,
		AvgWordLength:     round(avgWord, 2),
		AvgSentenceLength: round(avgSentence, 2),
		Readability:       readability(avgWord, avgSentence),
		Keywords:          e.keywords(words),
	}
}

// InvalidFeatures describes text too short to analyze
func InvalidFeatures(text string) model.TextFeatures {
	return model.TextFeatures{
		Length:   utf8.RuneCountInString(text),
		Keywords: []string{},
		Error:    "Insufficient text for analysis",
	}
}

func readability(avgWord, avgSentence float64) model.Readability {
	switch {
	case avgWord < 6 && avgSentence < 20:
		return model.ReadabilityHigh
	case avgWord < 8:
		return model.ReadabilityMedium
	default:
		return model.ReadabilityLow
	}
}

// keywords returns distinct non-stopword words in order of first occurrence
func (e *FeatureExtractor) keywords(words []string) []string {
	seen := make(map[string]struct{})
	keywords := make([]string, 0, keywordLimit)

	for _, w := range words {
		if len(keywords) == keywordLimit {
			break
		}
		if utf8.RuneCountInString(w) < keywordMinLength {
			continue
		}
		lowered := strings.ToLower(w)
		if _, stop := e.stopwords[lowered]; stop {
			continue
		}
		kw := strings.Trim(lowered, ".,!?")
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		keywords = append(keywords, kw)
	}

	if len(keywords) > keywordDisplayLimit {
		keywords = keywords[:keywordDisplayLimit]
	}
	return keywords
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
