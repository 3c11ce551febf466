package dataset

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/candor/internal/model"
)

// Default text length bounds applied on top of the IQR fences
const (
	DefaultMinTextLength = 10
	DefaultMaxTextLength = 2000
)

// Prepared is a table after preprocessing
type Prepared struct {
	Rows    []model.Row
	Columns int
	Steps   []model.PreprocessingStep
	Quality model.DataQuality // Blank cells in the loaded table
}

// Preprocessor runs the loading, missing value and outlier removal steps
type Preprocessor struct {
	minLength int
	maxLength int
}

// NewPreprocessor creates a preprocessor. Non-positive bounds fall back to the defaults.
func NewPreprocessor(minLength, maxLength int) *Preprocessor {
	if minLength <= 0 {
		minLength = DefaultMinTextLength
	}
	if maxLength <= 0 {
		maxLength = DefaultMaxTextLength
	}
	return &Preprocessor{minLength: minLength, maxLength: maxLength}
}

// Run normalizes t onto the internal schema and applies the preprocessing steps in order
func (p *Preprocessor) Run(t *Table) (*Prepared, error) {
	schema, err := ResolveSchema(t.Columns)
	if err != nil {
		return nil, err
	}

	out := &Prepared{Columns: len(t.Columns), Quality: countMissing(t, schema)}
	out.Steps = append(out.Steps, model.PreprocessingStep{
		Step:        model.StepDataLoading,
		Description: fmt.Sprintf("Loaded %d rows and %d columns", len(t.Rows), len(t.Columns)),
		Details: map[string]any{
			"rows":         len(t.Rows),
			"columns":      len(t.Columns),
			"column_names": t.Columns,
		},
	})

	rows, step := p.dropMissing(t, schema)
	out.Steps = append(out.Steps, step)

	rows, step = p.dropOutliers(rows)
	out.Steps = append(out.Steps, step)

	out.Rows = rows
	return out, nil
}

// countMissing counts blank review fields before any cleaning. Absent columns count as
// zero.
func countMissing(t *Table, schema Schema) model.DataQuality {
	var q model.DataQuality
	blank := func(record map[string]string, col string) bool {
		return col != "" && strings.TrimSpace(record[col]) == ""
	}
	for _, record := range t.Rows {
		if blank(record, schema.Text) {
			q.MissingText++
		}
		if blank(record, schema.Rating) {
			q.MissingRatings++
		}
		if blank(record, schema.Place) {
			q.MissingPlaces++
		}
	}
	return q
}

// dropMissing cleans the text column and drops every row holding an empty cell
func (p *Preprocessor) dropMissing(t *Table, schema Schema) ([]model.Row, model.PreprocessingStep) {
	rows := make([]model.Row, 0, len(t.Rows))
	missing := 0

	for i, record := range t.Rows {
		text := CleanText(record[schema.Text])

		empty := 0
		for _, col := range t.Columns {
			cell := record[col]
			if col == schema.Text {
				cell = text
			}
			if strings.TrimSpace(cell) == "" {
				empty++
			}
		}
		if empty > 0 {
			missing += empty
			continue
		}

		row := model.Row{Index: i, Text: text}
		if schema.Place != "" {
			row.PlaceName = record[schema.Place]
		}
		if schema.Rating != "" {
			row.StarRating = ParseRating(record[schema.Rating])
		}
		rows = append(rows, row)
	}

	removed := len(t.Rows) - len(rows)
	return rows, model.PreprocessingStep{
		Step:        model.StepMissingValues,
		Description: fmt.Sprintf("Removed %d rows with missing values", removed),
		Details: map[string]any{
			"missing_values_before": missing,
			"missing_values_after":  0,
			"rows_removed":          removed,
		},
	}
}

// dropOutliers removes rows whose text length falls outside the IQR fences, clamped to
// the configured bounds. Bounds are inclusive.
func (p *Preprocessor) dropOutliers(rows []model.Row) ([]model.Row, model.PreprocessingStep) {
	lower, upper := float64(p.minLength), float64(p.maxLength)

	if len(rows) > 0 {
		lengths := make([]float64, len(rows))
		for i, r := range rows {
			lengths[i] = float64(utf8.RuneCountInString(r.Text))
		}
		q1, q3 := Quartiles(lengths)
		iqr := q3 - q1
		lower = math.Max(lower, q1-1.5*iqr)
		upper = math.Min(upper, q3+1.5*iqr)
	}

	kept := make([]model.Row, 0, len(rows))
	for _, r := range rows {
		n := float64(utf8.RuneCountInString(r.Text))
		if n >= lower && n <= upper {
			kept = append(kept, r)
		}
	}

	removed := len(rows) - len(kept)
	return kept, model.PreprocessingStep{
		Step:        model.StepOutlierRemoval,
		Description: fmt.Sprintf("Removed %d reviews with extreme text lengths", removed),
		Details: map[string]any{
			"outliers_removed":  removed,
			"text_length_range": fmt.Sprintf("%d-%d characters", int(lower), int(upper)),
			"remaining_reviews": len(kept),
		},
	}
}

// Quartiles returns the first and third quartiles of values using linear interpolation
// between closest ranks. values need not be sorted; it is not modified.
func Quartiles(values []float64) (q1, q3 float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return quantile(sorted, 0.25), quantile(sorted, 0.75)
}

func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
