// Package render writes analysis results as colored text, JSON or YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/candor/internal/model"
)

// Format names an output format
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected text, json or yaml)", s)
	}
}

// Renderer writes results in one format
type Renderer struct {
	format  Format
	verbose bool
	green   *color.Color
	yellow  *color.Color
	red     *color.Color
	cyan    *color.Color
	bold    *color.Color
}

// NewRenderer creates a renderer. Colors are disabled when noColor is set.
func NewRenderer(format Format, noColor, verbose bool) *Renderer {
	r := &Renderer{
		format:  format,
		verbose: verbose,
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow),
		red:     color.New(color.FgRed),
		cyan:    color.New(color.FgCyan),
		bold:    color.New(color.FgWhite, color.Bold),
	}
	if noColor {
		for _, c := range []*color.Color{r.green, r.yellow, r.red, r.cyan, r.bold} {
			c.DisableColor()
		}
	}
	return r
}

// Result writes a single review verdict
func (r *Renderer) Result(w io.Writer, result model.AnalysisResult) error {
	switch r.format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatYAML:
		return writeYAML(w, result)
	}

	var b strings.Builder
	verdict := r.red
	if result.Legitimate {
		verdict = r.green
	}
	b.WriteString(r.bold.Sprint("Verdict:     "))
	b.WriteString(verdict.Sprintf("%s", strings.ToUpper(string(result.Status))))
	fmt.Fprintf(&b, "\nConfidence:  %s\n", r.confidence(result.Confidence))
	fmt.Fprintf(&b, "Sentiment:   %s\n", result.Analysis.Sentiment)

	if ctx := result.Analysis.BusinessContext; ctx != nil {
		fmt.Fprintf(&b, "Business:    %s\n", ctx.BusinessType)
	}

	if len(result.Analysis.Violations) > 0 {
		b.WriteString(r.bold.Sprint("\nViolations\n"))
		for _, v := range result.Analysis.Violations {
			fmt.Fprintf(&b, "  %s %s", r.red.Sprintf("%-14s", v.Type), v.Description)
			if v.Pattern != "" {
				fmt.Fprintf(&b, " (%s)", v.Pattern)
			}
			b.WriteString("\n")
			if r.verbose {
				for _, kw := range v.Keywords {
					fmt.Fprintf(&b, "      keyword: %s\n", kw)
				}
				for _, key := range sortedKeys(v.Details) {
					fmt.Fprintf(&b, "      %s: %d\n", key, v.Details[key])
				}
			}
		}
	}

	if len(result.Analysis.RiskFactors) > 0 {
		b.WriteString(r.bold.Sprint("\nRisk factors\n"))
		for _, f := range result.Analysis.RiskFactors {
			fmt.Fprintf(&b, "  - %s\n", f)
		}
	}

	if r.verbose {
		f := result.Analysis.TextFeatures
		b.WriteString(r.bold.Sprint("\nText features\n"))
		fmt.Fprintf(&b, "  length %d, words %d, sentences %d, readability %s\n", f.Length, f.WordCount, f.SentenceCount, f.Readability)
		if len(f.Keywords) > 0 {
			fmt.Fprintf(&b, "  keywords: %s\n", strings.Join(f.Keywords, ", "))
		}
	}

	for _, rec := range result.Analysis.Recommendations {
		fmt.Fprintf(&b, "\n%s\n", r.cyan.Sprint(rec))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Batch writes a batch report
func (r *Renderer) Batch(w io.Writer, report model.BatchReport) error {
	switch r.format {
	case FormatJSON:
		return writeJSON(w, report)
	case FormatYAML:
		return writeYAML(w, report)
	}

	var b strings.Builder
	if !report.Success {
		fmt.Fprintf(&b, "%s %s\n", r.red.Sprint("Batch analysis failed:"), report.Error)
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString(r.bold.Sprint("Preprocessing\n"))
	for _, step := range report.PreprocessingSteps {
		fmt.Fprintf(&b, "  %-22s %s\n", step.Step, step.Description)
	}

	s := report.Summary
	b.WriteString(r.bold.Sprint("\nSummary\n"))
	fmt.Fprintf(&b, "  analyzed:            %d\n", s.TotalAnalyzed)
	fmt.Fprintf(&b, "  average confidence:  %s\n", r.confidence(s.AverageConfidence))
	fmt.Fprintf(&b, "  violations:          %d (%.3f per review)\n", s.TotalViolations, s.ViolationRate)
	fmt.Fprintf(&b, "  final shape:         %d rows x %d columns\n", report.FinalShape[0], report.FinalShape[1])

	if len(s.StatusDistribution) > 0 {
		b.WriteString(r.bold.Sprint("\nStatus distribution\n"))
		for _, status := range sortedStatuses(s.StatusDistribution) {
			fmt.Fprintf(&b, "  %s %d\n", r.statusColor(status).Sprintf("%-14s", status), s.StatusDistribution[status])
		}
	}

	if s.Insights != nil {
		r.insights(&b, s.Insights)
	}

	if r.verbose {
		b.WriteString(r.bold.Sprint("\nRows\n"))
		for _, row := range report.Results {
			fmt.Fprintf(&b, "  #%-5d %s %.3f  %d violation(s)\n", row.Index, r.statusColor(row.Status).Sprintf("%-14s", row.Status), row.Confidence, row.Violations)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Renderer) insights(b *strings.Builder, ins *model.BatchInsights) {
	if rs := ins.Ratings; rs != nil {
		b.WriteString(r.bold.Sprint("\nRatings\n"))
		fmt.Fprintf(b, "  mean %.2f, median %.2f, std %.2f, range %.1f-%.1f over %d rows\n", rs.Mean, rs.Median, rs.Std, rs.Min, rs.Max, rs.Count)
		for _, value := range sortedKeys(rs.Distribution) {
			fmt.Fprintf(b, "  %-6s %d\n", value, rs.Distribution[value])
		}
	}

	if ts := ins.Text; ts != nil {
		b.WriteString(r.bold.Sprint("\nReview text\n"))
		fmt.Fprintf(b, "  length: avg %.0f, median %.0f, range %d-%d characters\n", ts.AvgLength, ts.MedianLength, ts.MinLength, ts.MaxLength)
		fmt.Fprintf(b, "  words:  avg %.0f, median %.0f, range %d-%d\n", ts.AvgWords, ts.MedianWords, ts.MinWords, ts.MaxWords)
	}

	if len(ins.PlaceRatings) > 0 {
		b.WriteString(r.bold.Sprint("\nPlace ratings\n"))
		for _, name := range sortedKeys(ins.PlaceRatings) {
			pr := ins.PlaceRatings[name]
			fmt.Fprintf(b, "  %-24s %.2f (%d reviews)\n", name, pr.Mean, pr.Count)
		}
	}

	q := ins.DataQuality
	fmt.Fprintf(b, "\n%s missing text %d, ratings %d, places %d\n", r.bold.Sprint("Data quality:"), q.MissingText, q.MissingRatings, q.MissingPlaces)
}

// Value writes any value as JSON or YAML. Text output falls back to YAML.
func (r *Renderer) Value(w io.Writer, v any) error {
	if r.format == FormatJSON {
		return writeJSON(w, v)
	}
	return writeYAML(w, v)
}

func (r *Renderer) confidence(v float64) string {
	switch {
	case v > 0.6:
		return r.green.Sprintf("%.3f", v)
	case v >= 0.5:
		return r.yellow.Sprintf("%.3f", v)
	default:
		return r.red.Sprintf("%.3f", v)
	}
}

func (r *Renderer) statusColor(status model.Status) *color.Color {
	switch status {
	case model.StatusAuthentic:
		return r.green
	case model.StatusSuspicious, model.StatusInvalid:
		return r.yellow
	default:
		return r.red
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	// yaml.v3 ignores json tags; encode the JSON form so field names match
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
