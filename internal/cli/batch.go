package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/candor/internal/model"
	"github.com/ppiankov/candor/internal/render"
)

var (
	outJSON      string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file.csv>",
	Short: "Analyze a CSV file of reviews",
	Long: `Batch analyzes a CSV file of reviews:
- Map columns onto the review schema (review_text or text, place_name or
  business_name, star_rating or rating)
- Clean text cells (localized values, HTML markup)
- Drop rows with missing values and text-length outliers (IQR)
- Analyze up to the configured row cap in parallel
- Summarize statuses, violations, ratings and places

Pass "-" to read the CSV from stdin.

Example:
  candor batch reviews.csv
  candor batch reviews.csv --workers 8 --max-rows 500 -o yaml
  candor batch reviews.csv --json report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().Int("workers", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().Int("max-rows", 0, "maximum rows analyzed after preprocessing (default from config)")
	batchCmd.Flags().StringVar(&outJSON, "json", "", "also write the JSON report to this path")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	_ = viper.BindPFlag("batch.workers", batchCmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("batch.max_rows", batchCmd.Flags().Lookup("max-rows"))
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	if a.cfg.Output.Verbose {
		stderr := cmd.ErrOrStderr()
		fmt.Fprintf(stderr, "\n")
		fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
		fmt.Fprintf(stderr, "  Candor Batch Analysis\n")
		fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
		fmt.Fprintf(stderr, "\n")
		fmt.Fprintf(stderr, "  Input file:   %s\n", file)
		fmt.Fprintf(stderr, "  Workers:      %d\n", a.cfg.Batch.Workers)
		fmt.Fprintf(stderr, "  Max rows:     %d\n", a.cfg.Batch.MaxRows)
		fmt.Fprintf(stderr, "  Timeout:      %v\n", batchTimeout)
		fmt.Fprintf(stderr, "\n")
	}

	in, closeInput, err := openInput(cmd.InOrStdin(), file)
	if err != nil {
		return err
	}
	defer closeInput()

	report := a.analyzer.AnalyzeCSV(ctx, in)

	if outJSON != "" {
		if err := writeJSONReport(outJSON, report); err != nil {
			return err
		}
	}
	if err := a.renderer.Batch(cmd.OutOrStdout(), report); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if !report.Success {
		return fmt.Errorf("batch analysis failed: %s", report.Error)
	}
	return nil
}

func openInput(stdin io.Reader, path string) (io.Reader, func(), error) {
	if path == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func writeJSONReport(path string, report model.BatchReport) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close report: %w", closeErr)
		}
	}()

	return render.NewRenderer(render.FormatJSON, true, false).Batch(f, report)
}
