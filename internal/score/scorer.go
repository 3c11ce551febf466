// Package score turns violations, text features and review metadata into a bounded
// confidence score, a legitimacy verdict and the user-facing status.
package score

import (
	"fmt"
	"math"
	"strings"

	"github.com/ppiankov/candor/internal/model"
)

const (
	baseScore          = 0.8
	violationPenalty   = 0.2
	shortPenalty       = 0.3
	longPenalty        = 0.1
	metadataPenalty    = 0.1
	readabilityBonus   = 0.1
	legitimacyFloor    = 0.6
	lowConfidenceLimit = 0.5

	shortTextLength    = 20   // Below this a review is penalized and flagged
	flaggedLongLength  = 500  // Above this a review is flagged as unusually long
	penalizedLongText  = 1000 // Above this a review is also penalized
	extremeRatingWords = 10   // Extreme ratings need at least this many words
)

// InvalidConfidence is the fixed confidence of a review too short to analyze
const InvalidConfidence = 0.95

// Metadata risk factors
const (
	RiskPlaceNotMentioned  = "Review does not mention the place name"
	RiskExtremeShortRating = "Extreme rating with very short review text"
)

// Scorer computes confidence scores and verdicts. It is safe for concurrent use
// when its NoiseSource is.
type Scorer struct {
	noise NoiseSource
}

// NewScorer creates a scorer. A nil noise source means no noise.
func NewScorer(noise NoiseSource) *Scorer {
	if noise == nil {
		noise = ZeroNoise
	}
	return &Scorer{noise: noise}
}

// Score computes the confidence score, clamped to [0,1] and rounded to 3 decimals.
// violations counts every violation including metadata ones; metadataRisks counts the
// metadata-derived risk factors.
func (s *Scorer) Score(violations int, features model.TextFeatures, metadataRisks int) float64 {
	score := baseScore
	score -= float64(violations) * violationPenalty
	score -= lengthPenalty(features.Length)
	score -= float64(metadataRisks) * metadataPenalty
	if features.Readability == model.ReadabilityHigh {
		score += readabilityBonus
	}
	score += s.noise.Noise()

	score = math.Max(0, math.Min(1, score))
	return math.Round(score*1000) / 1000
}

func lengthPenalty(length int) float64 {
	switch {
	case length < shortTextLength:
		return shortPenalty
	case length > penalizedLongText:
		return longPenalty
	default:
		return 0
	}
}

// AnalyzeMetadata checks the place name and star rating against the text. sentiment is the
// polarity of text.
func (s *Scorer) AnalyzeMetadata(text, placeName string, rating *float64, sentiment model.Sentiment) model.MetadataAnalysis {
	result := model.MetadataAnalysis{
		Violations:  []model.Violation{},
		RiskFactors: []string{},
		Insights:    map[string]any{},
	}

	if placeName != "" {
		result.Insights["place_name"] = placeName
		if !strings.Contains(strings.ToLower(text), strings.ToLower(placeName)) {
			result.RiskFactors = append(result.RiskFactors, RiskPlaceNotMentioned)
		}
	}

	if rating == nil {
		return result
	}
	r := *rating
	result.Insights["star_rating"] = r

	switch {
	case r <= 2 && sentiment == model.SentimentPositive:
		result.Violations = append(result.Violations, model.Violation{
			Type:        model.ViolationSuspicious,
			Description: "Low star rating conflicts with positive review text",
		})
	case r >= 4 && sentiment == model.SentimentNegative:
		result.Violations = append(result.Violations, model.Violation{
			Type:        model.ViolationSuspicious,
			Description: "High star rating conflicts with negative review text",
		})
	}

	if (r == 1 || r == 5) && len(strings.Fields(text)) < extremeRatingWords {
		result.RiskFactors = append(result.RiskFactors, RiskExtremeShortRating)
	}

	return result
}

// Legitimate reports the verdict: no violations and a confidence above 0.6
func Legitimate(violations []model.Violation, confidence float64) bool {
	return len(violations) == 0 && confidence > legitimacyFloor
}

// DeriveStatus picks the status label. Non-legitimate reviews take the highest priority
// violation kind present.
func DeriveStatus(legitimate bool, violations []model.Violation) model.Status {
	if legitimate {
		return model.StatusAuthentic
	}

	present := make(map[model.ViolationKind]bool, len(violations))
	for _, v := range violations {
		present[v.Type] = true
	}
	for _, kind := range model.StatusPriority {
		if present[kind] {
			return model.Status(kind)
		}
	}
	return model.StatusSuspicious
}

// RiskFactors lists the observations behind a verdict: violation descriptions, length
// extremes, low confidence, then metadata risks.
func RiskFactors(violations []model.Violation, features model.TextFeatures, confidence float64, metadata model.MetadataAnalysis) []string {
	factors := make([]string, 0, len(violations)+len(metadata.RiskFactors)+2)
	for _, v := range violations {
		factors = append(factors, v.Description)
	}
	if features.Length < shortTextLength {
		factors = append(factors, "Review is very short")
	}
	if features.Length > flaggedLongLength {
		factors = append(factors, "Review is unusually long")
	}
	if confidence < lowConfidenceLimit {
		factors = append(factors, "Low confidence score")
	}
	return append(factors, metadata.RiskFactors...)
}

// Recommendation returns the advice for a status. Off-topic advice names up to five
// relevant topics when the business context is known.
func Recommendation(status model.Status, info *model.BusinessContextInfo) string {
	switch status {
	case model.StatusAdvertisement:
		return "Remove promotional content and focus on product experience."
	case model.StatusNoVisit:
		return "Please only review products or services you have actually used or visited."
	case model.StatusOffTopic:
		if info != nil {
			topics := info.RelevantTopics
			if len(topics) > 5 {
				topics = topics[:5]
			}
			return fmt.Sprintf("Ensure your review is relevant to %s. Focus on topics like: %s.", info.BusinessType, strings.Join(topics, ", "))
		}
		return "Ensure your review is relevant to the product or service."
	case model.StatusInappropriate:
		return "Please use appropriate language in your review."
	case model.StatusPersonalInfo:
		return "Avoid sharing personal identifiable information in reviews."
	case model.StatusFake:
		return "Use more specific and balanced language to describe your experience."
	case model.StatusSuspicious:
		return "Review contains suspicious patterns. Consider rephrasing for clarity."
	case model.StatusInvalid:
		return "Please provide a more detailed review"
	default:
		return "This review appears to be authentic and helpful."
	}
}
