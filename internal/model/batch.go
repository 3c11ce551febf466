package model

// Row is a normalized tabular record mapped onto the internal review schema
type Row struct {
	Index      int      // Position in the loaded input (0-based)
	Text       string   // review_text | text
	PlaceName  string   // place_name | business_name
	StarRating *float64 // star_rating | rating, nil when absent or unparsable
}

// PreprocessingStep documents one stage of batch preprocessing
type PreprocessingStep struct {
	Step        string         `json:"step"`
	Description string         `json:"description"`
	Details     map[string]any `json:"details"`
}

// Preprocessing step names
const (
	StepDataLoading    = "Data Loading"
	StepMissingValues  = "Missing Value Removal"
	StepOutlierRemoval = "Outlier Removal"
)

// RowResult is the condensed verdict for one analyzed row
type RowResult struct {
	Index      int     `json:"index"`
	Status     Status  `json:"status"`
	Confidence float64 `json:"confidence"`
	Violations int     `json:"violations"`
}

// BatchSummary aggregates row results
type BatchSummary struct {
	TotalAnalyzed      int            `json:"total_analyzed"`
	StatusDistribution map[Status]int `json:"status_distribution"`
	AverageConfidence  float64        `json:"average_confidence"`
	TotalViolations    int            `json:"total_violations"`
	ViolationRate      float64        `json:"violation_rate"`
	Insights           *BatchInsights `json:"insights,omitempty"`
}

// BatchInsights carries dataset-level observations about the analyzed rows
type BatchInsights struct {
	Ratings      *RatingStats           `json:"ratings,omitempty"`
	Places       map[string]int         `json:"top_places,omitempty"`    // Up to 10 most reviewed place names
	PlaceRatings map[string]PlaceRating `json:"place_ratings,omitempty"` // Places with at least 2 rated reviews
	Text         *TextStats             `json:"text,omitempty"`
	DataQuality  DataQuality            `json:"data_quality"`
}

// PlaceRating is the average star rating of one place
type PlaceRating struct {
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// TextStats describes review text lengths in characters and words. Averages and
// medians are rounded to whole numbers.
type TextStats struct {
	AvgLength    float64 `json:"avg_length"`
	MedianLength float64 `json:"median_length"`
	MinLength    int     `json:"min_length"`
	MaxLength    int     `json:"max_length"`
	AvgWords     float64 `json:"avg_words"`
	MedianWords  float64 `json:"median_words"`
	MinWords     int     `json:"min_words"`
	MaxWords     int     `json:"max_words"`
}

// DataQuality counts blank cells per review field in the loaded input
type DataQuality struct {
	MissingRatings int `json:"missing_ratings"`
	MissingText    int `json:"missing_text"`
	MissingPlaces  int `json:"missing_places"`
}

// RatingStats summarizes the parsable star ratings of analyzed rows
type RatingStats struct {
	Count        int            `json:"count"`
	Mean         float64        `json:"mean"`
	Median       float64        `json:"median"`
	Std          float64        `json:"std"`
	Min          float64        `json:"min"`
	Max          float64        `json:"max"`
	Categories   map[string]int `json:"categories"`   // excellent, good, average, poor
	Distribution map[string]int `json:"distribution"` // Rows per distinct rating value
}

// BatchReport is the result of a batch analysis. Failures are reported here, never raised.
type BatchReport struct {
	Success            bool                `json:"success"`
	Error              string              `json:"error,omitempty"`
	PreprocessingSteps []PreprocessingStep `json:"preprocessing_steps"`
	Results            []RowResult         `json:"analysis_results"`
	Summary            BatchSummary        `json:"summary"`
	FinalShape         [2]int              `json:"final_dataset_shape"` // rows, columns
}

// Step returns the preprocessing step with the given name, or nil
func (r *BatchReport) Step(name string) *PreprocessingStep {
	for i := range r.PreprocessingSteps {
		if r.PreprocessingSteps[i].Step == name {
			return &r.PreprocessingSteps[i]
		}
	}
	return nil
}
