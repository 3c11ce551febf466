// Demo program running canonical reviews through the analyzer
// This shows each violation category and the batch preprocessing steps
package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/candor/internal/business"
	"github.com/ppiankov/candor/internal/detect"
	"github.com/ppiankov/candor/internal/model"
	"github.com/ppiankov/candor/internal/pipeline"
	"github.com/ppiankov/candor/internal/rules"
	"github.com/ppiankov/candor/internal/score"
)

func rating(v float64) *float64 { return &v }

func main() {
	fmt.Println("=== Review Legitimacy Demo ===")
	fmt.Println()

	detector := detect.NewDetector(rules.Default(), business.DefaultModel())
	analyzer := pipeline.NewAnalyzer(detector, score.NewScorer(score.ZeroNoise))

	reviews := []model.Review{
		{Text: "The food was amazing and the waiter was friendly"},
		{Text: "Call us at 555-123-4567 for a discount"},
		{Text: "Visit www.example.com for the best deals"},
		{Text: "Never been there but I heard it's great"},
		{Text: "My phone and my computer both stopped working", PlaceName: "Luigi's Pizzeria"},
		{Text: "Revolutionary breakthrough with a money back guarantee"},
		{Text: "Loved every minute, amazing staff", PlaceName: "Hilton Garden", StarRating: rating(1)},
		{Text: "ok"},
	}

	for _, review := range reviews {
		fmt.Printf("Review: %q\n", review.Text)
		if review.PlaceName != "" {
			fmt.Printf("Place:  %s\n", review.PlaceName)
		}
		fmt.Println(strings.Repeat("-", 60))

		result := analyzer.AnalyzeReview(review)
		mark := "✓"
		if !result.Legitimate {
			mark = "⚠️ "
		}
		fmt.Printf("  %s %s (confidence %.3f, sentiment %s)\n", mark, strings.ToUpper(string(result.Status)), result.Confidence, result.Analysis.Sentiment)
		for _, v := range result.Analysis.Violations {
			fmt.Printf("     - %s: %s\n", v.Type, v.Description)
		}
		for _, rec := range result.Analysis.Recommendations {
			fmt.Printf("     → %s\n", rec)
		}
		fmt.Println()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	csv := "review_text,place_name,star_rating\n" +
		"The food was amazing and the waiter was friendly,Cafe Luna,5\n" +
		"Great coffee and the barista was kind,Starbucks,4\n" +
		"Call us at 555-123-4567 for a discount today,Cafe Luna,5\n" +
		"The staff at the restaurant were friendly and kind,Grill House,4\n" +
		"Nice,Cafe Luna,3\n" +
		strings.Repeat("Long rambling story about nothing in particular. ", 10) + ",Grill House,2\n"

	fmt.Println("Batch")
	fmt.Println(strings.Repeat("-", 60))
	report := analyzer.AnalyzeCSV(ctx, strings.NewReader(csv))
	if !report.Success {
		fmt.Printf("  Batch failed: %s\n", report.Error)
		return
	}
	for _, step := range report.PreprocessingSteps {
		fmt.Printf("  %-22s %s\n", step.Step, step.Description)
	}
	fmt.Printf("  Analyzed %d rows, average confidence %.3f, %d violations\n",
		report.Summary.TotalAnalyzed, report.Summary.AverageConfidence, report.Summary.TotalViolations)
	for status, n := range report.Summary.StatusDistribution {
		fmt.Printf("     - %s: %d\n", status, n)
	}
}
