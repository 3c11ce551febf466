package worker

import (
	"context"
	"fmt"

	"github.com/ppiankov/candor/internal/model"
)

// Analyzer analyzes a single review
type Analyzer interface {
	AnalyzeReview(review model.Review) model.AnalysisResult
}

// ReviewJob analyzes one normalized row
type ReviewJob struct {
	Seq      int // Position in the submitted batch
	Row      model.Row
	Analyzer Analyzer
}

// Execute runs the analysis. A panic in the analyzer becomes the job's error.
func (j *ReviewJob) Execute(ctx context.Context) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = &ReviewResult{Seq: j.Seq, Row: j.Row, Error: fmt.Errorf("analyze row %d: %v", j.Row.Index, r)}
		}
	}()

	if err := ctx.Err(); err != nil {
		return &ReviewResult{Seq: j.Seq, Row: j.Row, Error: err}
	}

	result := j.Analyzer.AnalyzeReview(model.Review{
		Text:       j.Row.Text,
		PlaceName:  j.Row.PlaceName,
		StarRating: j.Row.StarRating,
	})
	return &ReviewResult{Seq: j.Seq, Row: j.Row, Result: result}
}

// ReviewResult is the outcome of a ReviewJob
type ReviewResult struct {
	Seq    int
	Row    model.Row
	Result model.AnalysisResult
	Error  error
}

// GetError returns the job error
func (r *ReviewResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes rows concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessRows analyzes rows and returns their results in input order. It fails only when
// ctx is cancelled before every row has been analyzed.
func (b *BatchProcessor) ProcessRows(ctx context.Context, rows []model.Row) ([]*ReviewResult, error) {
	if len(rows) == 0 {
		return []*ReviewResult{}, nil
	}

	jobs := make([]Job, len(rows))
	for i, row := range rows {
		jobs[i] = &ReviewJob{Seq: i, Row: row, Analyzer: b.analyzer}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()
	results := pool.Run(jobs)

	ordered := make([]*ReviewResult, len(rows))
	for _, result := range results {
		rr := result.(*ReviewResult)
		ordered[rr.Seq] = rr
	}
	for i, rr := range ordered {
		if rr == nil {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("batch interrupted: %w", err)
			}
			return nil, fmt.Errorf("row %d produced no result", rows[i].Index)
		}
	}

	return ordered, nil
}
