package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ppiankov/candor/internal/dataset"
	"github.com/ppiankov/candor/internal/logging"
	"github.com/ppiankov/candor/internal/model"
	"github.com/ppiankov/candor/internal/worker"
)

// AnalyzeCSV parses a CSV document and analyzes it as a batch
func (a *Analyzer) AnalyzeCSV(ctx context.Context, r io.Reader) model.BatchReport {
	table, err := dataset.ParseCSV(r)
	if err != nil {
		report := failedReport(err)
		a.observeBatch(report)
		return report
	}
	return a.AnalyzeBatch(ctx, table)
}

// AnalyzeBatch preprocesses a table and analyzes up to the row cap. Failures, including
// panics, are reported in the returned report and never raised.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, table *dataset.Table) (report model.BatchReport) {
	defer func() {
		if r := recover(); r != nil {
			report = failedReport(fmt.Errorf("batch analysis failed: %v", r))
		}
		a.observeBatch(report)
	}()

	if table == nil {
		return failedReport(dataset.ErrEmptyInput)
	}

	prepared, err := a.prep.Run(table)
	if err != nil {
		return failedReport(err)
	}

	rows := prepared.Rows
	if len(rows) > a.maxRows {
		rows = rows[:a.maxRows]
	}

	results, err := worker.NewBatchProcessor(a, a.workers).ProcessRows(ctx, rows)
	if err != nil {
		return failedReport(err)
	}

	rowResults := make([]model.RowResult, 0, len(results))
	var errs []error
	for _, res := range results {
		if res.Error != nil {
			errs = append(errs, res.Error)
			continue
		}
		rowResults = append(rowResults, model.RowResult{
			Index:      res.Row.Index,
			Status:     res.Result.Status,
			Confidence: res.Result.Confidence,
			Violations: len(res.Result.Analysis.Violations),
		})
	}
	if len(errs) > 0 {
		return failedReport(errors.Join(errs...))
	}

	summary := summarize(rowResults)
	summary.Insights = dataset.Insights(rows, prepared.Quality)

	return model.BatchReport{
		Success:            true,
		PreprocessingSteps: prepared.Steps,
		Results:            rowResults,
		Summary:            summary,
		FinalShape:         [2]int{len(prepared.Rows), prepared.Columns},
	}
}

func summarize(results []model.RowResult) model.BatchSummary {
	summary := model.BatchSummary{StatusDistribution: map[model.Status]int{}}
	if len(results) == 0 {
		return summary
	}

	confidence := 0.0
	for _, r := range results {
		summary.StatusDistribution[r.Status]++
		summary.TotalViolations += r.Violations
		confidence += r.Confidence
	}
	n := float64(len(results))
	summary.TotalAnalyzed = len(results)
	summary.AverageConfidence = round3(confidence / n)
	summary.ViolationRate = round3(float64(summary.TotalViolations) / n)
	return summary
}

func failedReport(err error) model.BatchReport {
	return model.BatchReport{
		Success:            false,
		Error:              err.Error(),
		PreprocessingSteps: []model.PreprocessingStep{},
		Results:            []model.RowResult{},
		Summary:            model.BatchSummary{StatusDistribution: map[model.Status]int{}},
	}
}

func (a *Analyzer) observeBatch(report model.BatchReport) {
	if a.recorder != nil {
		a.recorder.ObserveBatch(report)
	}
	if !report.Success {
		a.logger.Warn("batch analysis failed", logging.String("error", report.Error))
		return
	}
	a.logger.Info("batch analyzed",
		logging.Int("analyzed", report.Summary.TotalAnalyzed),
		logging.Int("violations", report.Summary.TotalViolations),
		logging.Float64("average_confidence", report.Summary.AverageConfidence),
	)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
