// Package pipeline orchestrates single review and batch analysis.
package pipeline

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ppiankov/candor/internal/business"
	"github.com/ppiankov/candor/internal/cache"
	"github.com/ppiankov/candor/internal/dataset"
	"github.com/ppiankov/candor/internal/detect"
	"github.com/ppiankov/candor/internal/extract"
	"github.com/ppiankov/candor/internal/logging"
	"github.com/ppiankov/candor/internal/model"
	"github.com/ppiankov/candor/internal/rules"
	"github.com/ppiankov/candor/internal/score"
)

// minTextLength is the shortest trimmed text that is analyzed at all
const minTextLength = 5

// Recorder receives analysis observations
type Recorder interface {
	ObserveReview(result model.AnalysisResult, duration time.Duration)
	ObserveBatch(report model.BatchReport)
}

// Analyzer runs the full review analysis. It is safe for concurrent use.
type Analyzer struct {
	detector  *detect.Detector
	features  *extract.FeatureExtractor
	sentiment *extract.SentimentAnalyzer
	scorer    *score.Scorer
	prep      *dataset.Preprocessor
	maxRows   int
	workers   int
	logger    logging.Logger
	recorder  Recorder
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// WithRecorder sets the metrics recorder
func WithRecorder(r Recorder) Option {
	return func(a *Analyzer) { a.recorder = r }
}

// WithBatch sets the batch row cap, worker count and text length bounds
func WithBatch(cfg model.BatchConfig) Option {
	return func(a *Analyzer) {
		if cfg.MaxRows > 0 {
			a.maxRows = cfg.MaxRows
		}
		if cfg.Workers > 0 {
			a.workers = cfg.Workers
		}
		a.prep = dataset.NewPreprocessor(cfg.MinTextLength, cfg.MaxTextLength)
	}
}

// NewAnalyzer creates an analyzer from its collaborators
func NewAnalyzer(detector *detect.Detector, scorer *score.Scorer, opts ...Option) *Analyzer {
	defaults := model.DefaultConfig().Batch
	a := &Analyzer{
		detector:  detector,
		features:  extract.NewFeatureExtractor(),
		sentiment: extract.NewSentimentAnalyzer(),
		scorer:    scorer,
		prep:      dataset.NewPreprocessor(defaults.MinTextLength, defaults.MaxTextLength),
		maxRows:   defaults.MaxRows,
		workers:   defaults.Workers,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewAnalyzerFromConfig loads rule and catalog overrides named in cfg and wires an analyzer
func NewAnalyzerFromConfig(cfg *model.Config, opts ...Option) (*Analyzer, error) {
	ruleSet, err := LoadRules(cfg.Analysis)
	if err != nil {
		return nil, err
	}

	var modelOpts []business.Option
	if cfg.Cache.Enabled {
		c := cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
		modelOpts = append(modelOpts, business.WithCache(c, cfg.Cache.TTL))
	}
	bm, err := LoadBusinessModel(cfg.Analysis, modelOpts...)
	if err != nil {
		return nil, err
	}

	noise := score.NewUniformNoise(cfg.Analysis.NoiseAmplitude, cfg.Analysis.Seed)
	opts = append([]Option{WithBatch(cfg.Batch)}, opts...)
	return NewAnalyzer(detect.NewDetector(ruleSet, bm), score.NewScorer(noise), opts...), nil
}

// LoadRules returns the built-in rule set, or the rules file named in cfg
func LoadRules(cfg model.AnalysisConfig) (*rules.Set, error) {
	if cfg.RulesFile == "" {
		return rules.Default(), nil
	}
	s, err := rules.LoadFile(cfg.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	return s, nil
}

// LoadBusinessModel builds the business model from the built-in catalog, or the catalog file named in cfg
func LoadBusinessModel(cfg model.AnalysisConfig, opts ...business.Option) (*business.Model, error) {
	catalog := business.DefaultCatalog()
	if cfg.CatalogFile != "" {
		c, err := business.LoadCatalog(cfg.CatalogFile)
		if err != nil {
			return nil, fmt.Errorf("load business catalog: %w", err)
		}
		catalog = c
	}
	bm, err := business.NewModel(catalog, opts...)
	if err != nil {
		return nil, fmt.Errorf("build business model: %w", err)
	}
	return bm, nil
}

// AnalyzeReview classifies a single review
func (a *Analyzer) AnalyzeReview(review model.Review) model.AnalysisResult {
	start := time.Now()
	result := a.analyze(review)
	elapsed := time.Since(start)

	if a.recorder != nil {
		a.recorder.ObserveReview(result, elapsed)
	}
	a.logger.Debug("review analyzed",
		logging.String("status", string(result.Status)),
		logging.Float64("confidence", result.Confidence),
		logging.Int("violations", len(result.Analysis.Violations)),
		logging.Duration("elapsed", elapsed),
	)
	return result
}

func (a *Analyzer) analyze(review model.Review) model.AnalysisResult {
	text := review.Text
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minTextLength {
		return invalidResult(text)
	}

	rating := review.StarRating
	if rating != nil && (math.IsNaN(*rating) || math.IsInf(*rating, 0)) {
		rating = nil
	}

	sentiment := a.sentiment.Analyze(text)
	violations := a.detector.Detect(text)
	features := a.features.Extract(text)

	var info *model.BusinessContextInfo
	if businessType, ok := a.detector.ResolveType(review.BusinessType, strings.TrimSpace(review.PlaceName)); ok {
		var offTopic *model.Violation
		offTopic, info = a.detector.Relevance(businessType, text)
		if offTopic != nil {
			violations = append(violations, *offTopic)
		}
	}

	metadata := a.scorer.AnalyzeMetadata(text, review.PlaceName, rating, sentiment)
	violations = append(violations, metadata.Violations...)

	confidence := a.scorer.Score(len(violations), features, len(metadata.RiskFactors))
	legitimate := score.Legitimate(violations, confidence)
	status := score.DeriveStatus(legitimate, violations)

	return model.AnalysisResult{
		Legitimate: legitimate,
		Status:     status,
		Confidence: confidence,
		Analysis: model.Analysis{
			Sentiment:       sentiment,
			Violations:      violations,
			TextFeatures:    features,
			RiskFactors:     score.RiskFactors(violations, features, confidence, metadata),
			Recommendations: []string{score.Recommendation(status, info)},
			Metadata:        metadata,
			BusinessContext: info,
		},
	}
}

func invalidResult(text string) model.AnalysisResult {
	return model.AnalysisResult{
		Legitimate: false,
		Status:     model.StatusInvalid,
		Confidence: score.InvalidConfidence,
		Analysis: model.Analysis{
			Sentiment: model.SentimentNeutral,
			Violations: []model.Violation{{
				Type:        model.ViolationInvalid,
				Description: "Review text is too short or empty",
			}},
			TextFeatures:    extract.InvalidFeatures(text),
			RiskFactors:     []string{"Insufficient content"},
			Recommendations: []string{score.Recommendation(model.StatusInvalid, nil)},
			Metadata: model.MetadataAnalysis{
				Violations:  []model.Violation{},
				RiskFactors: []string{},
				Insights:    map[string]any{},
			},
		},
	}
}
