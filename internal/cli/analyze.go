package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/candor/internal/model"
)

var (
	placeName    string
	starRating   string
	businessType string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Classify a single review",
	Long: `Analyze classifies one review and explains the verdict:
- Detect advertisements, no-visit claims, off-topic content, inappropriate
  language, personal information, fake-review language and suspicious keywords
- Check relevance against the business type (explicit or resolved from the name)
- Compare the star rating and place name with the text
- Score confidence and derive the status

The review text is read from the arguments, or from stdin when none are given
or the only argument is "-".

Example:
  candor analyze "The food was amazing and the waiter was friendly"
  candor analyze --place "Luigi's Pizzeria" --rating 5 "Best slice in town"
  echo "Call us at 555-123-4567 for a discount" | candor analyze -o json`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&placeName, "place", "", "name of the reviewed business")
	analyzeCmd.Flags().StringVar(&starRating, "rating", "", "star rating, 1 to 5")
	analyzeCmd.Flags().StringVar(&businessType, "type", "", "business type (overrides resolution from --place)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, err := reviewText(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	rating, err := parseStarRating(starRating)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	result := a.analyzer.AnalyzeReview(model.Review{
		Text:         text,
		PlaceName:    placeName,
		StarRating:   rating,
		BusinessType: businessType,
	})
	return a.renderer.Result(cmd.OutOrStdout(), result)
}

func reviewText(stdin io.Reader, args []string) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	if stdin == os.Stdin {
		if fi, err := os.Stdin.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
			return "", fmt.Errorf("no review text given (pass it as an argument or pipe it on stdin)")
		}
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read review text: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// parseStarRating validates a rating flag. Empty means no rating.
func parseStarRating(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return nil, fmt.Errorf("invalid star rating %q", s)
	}
	if v < 1 || v > 5 {
		return nil, fmt.Errorf("star rating must be between 1 and 5, got %g", v)
	}
	return &v, nil
}
