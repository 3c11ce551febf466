package model

// Review is a single review submitted for analysis
type Review struct {
	Text         string   `json:"text"`
	PlaceName    string   `json:"place_name,omitempty"`    // Business the review is about (optional)
	StarRating   *float64 `json:"star_rating,omitempty"`   // 1-5, nil when absent or unparsable
	BusinessType string   `json:"business_type,omitempty"` // Explicit business type, overrides name resolution
}

// ViolationKind classifies a policy violation
type ViolationKind string

const (
	ViolationAdvertisement ViolationKind = "advertisement" // Promotional content
	ViolationNoVisit       ViolationKind = "no-visit"      // Author never visited or tried it
	ViolationOffTopic      ViolationKind = "off-topic"     // Unrelated to the business
	ViolationInappropriate ViolationKind = "inappropriate" // Profanity or sexual content
	ViolationPersonalInfo  ViolationKind = "personal-info" // Phone numbers, emails, addresses
	ViolationFake          ViolationKind = "fake"          // Language typical of fabricated reviews
	ViolationSuspicious    ViolationKind = "suspicious"    // Suspicious keywords or rating mismatch
	ViolationInvalid       ViolationKind = "invalid"       // Too short to analyze
)

// Violation is a single detected policy violation. Records are never mutated after creation.
type Violation struct {
	Type             ViolationKind  `json:"type"`
	Description      string         `json:"description"`
	Pattern          string         `json:"pattern,omitempty"`           // Rule identifier that matched
	Keywords         []string       `json:"keywords,omitempty"`          // Suspicious keywords found
	IrrelevantTopics []string       `json:"irrelevant_topics,omitempty"` // Off-topic terms for the business type
	BusinessType     string         `json:"business_type,omitempty"`
	Details          map[string]int `json:"details,omitempty"` // Advertisement indicator counts
}

// Status is the user-facing classification label
type Status string

const (
	StatusAuthentic     Status = "authentic"
	StatusAdvertisement Status = "advertisement"
	StatusNoVisit       Status = "no-visit"
	StatusOffTopic      Status = "off-topic"
	StatusInappropriate Status = "inappropriate"
	StatusPersonalInfo  Status = "personal-info"
	StatusFake          Status = "fake"
	StatusSuspicious    Status = "suspicious"
	StatusInvalid       Status = "invalid"
)

// StatusPriority is the order in which violation kinds decide the status of a non-legitimate review
var StatusPriority = []ViolationKind{
	ViolationAdvertisement,
	ViolationNoVisit,
	ViolationOffTopic,
	ViolationInappropriate,
	ViolationPersonalInfo,
	ViolationFake,
	ViolationSuspicious,
}

// Sentiment is the coarse lexical polarity of a review
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Readability buckets the text by average word and sentence length
type Readability string

const (
	ReadabilityHigh   Readability = "high"
	ReadabilityMedium Readability = "medium"
	ReadabilityLow    Readability = "low"
)

// TextFeatures holds structural features of the review text
type TextFeatures struct {
	Length            int         `json:"length"`
	WordCount         int         `json:"word_count"`
	SentenceCount     int         `json:"sentence_count"`
	AvgWordLength     float64     `json:"avg_word_length"`
	AvgSentenceLength float64     `json:"avg_sentence_length"`
	Readability       Readability `json:"readability,omitempty"`
	Keywords          []string    `json:"keywords"`
	Error             string      `json:"error,omitempty"` // Set only for invalid input
}

// BusinessContextInfo describes what a business type's reviews are expected to talk about
type BusinessContextInfo struct {
	BusinessType     string   `json:"business_type"`
	RelevantTopics   []string `json:"relevant_topics"`
	IrrelevantTopics []string `json:"irrelevant_topics"`
}

// MetadataAnalysis is the outcome of checking the place name and star rating against the text
type MetadataAnalysis struct {
	Violations  []Violation    `json:"violations"`
	RiskFactors []string       `json:"risk_factors"`
	Insights    map[string]any `json:"insights"`
}

// AnalysisResult is the verdict for a single review
type AnalysisResult struct {
	Legitimate bool     `json:"legitimate"`
	Status     Status   `json:"status"`
	Confidence float64  `json:"confidence"` // Heuristic score in [0,1], not a calibrated probability
	Analysis   Analysis `json:"analysis"`
}

// Analysis carries the evidence behind a verdict
type Analysis struct {
	Sentiment       Sentiment            `json:"sentiment"`
	Violations      []Violation          `json:"policy_violations"`
	TextFeatures    TextFeatures         `json:"text_features"`
	RiskFactors     []string             `json:"risk_factors"`
	Recommendations []string             `json:"recommendations"`
	Metadata        MetadataAnalysis     `json:"metadata_analysis"`
	BusinessContext *BusinessContextInfo `json:"business_context,omitempty"`
}

// HasViolation reports whether any violation of the given kind was recorded
func (r *AnalysisResult) HasViolation(kind ViolationKind) bool {
	for _, v := range r.Analysis.Violations {
		if v.Type == kind {
			return true
		}
	}
	return false
}
