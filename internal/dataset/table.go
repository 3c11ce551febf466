// Package dataset loads tabular review data and prepares it for batch analysis:
// CSV parsing, column normalization, text cleaning and outlier removal.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrEmptyInput is returned for input without a header row
	ErrEmptyInput = errors.New("csv input is empty")
	// ErrNoTextColumn is returned when no column holds review text
	ErrNoTextColumn = errors.New("no review text column (expected review_text or text)")
)

// Column aliases, in lookup order
var (
	textColumns   = []string{"review_text", "text"}
	placeColumns  = []string{"place_name", "business_name"}
	ratingColumns = []string{"star_rating", "rating"}
)

// Table is a sequence of rows keyed by column name. A key absent from a row is an empty cell.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// NewTable builds a table from rows. When columns is empty it is derived from the
// first row, sorted for stability.
func NewTable(columns []string, rows []map[string]string) *Table {
	if len(columns) == 0 && len(rows) > 0 {
		for k := range rows[0] {
			columns = append(columns, k)
		}
		sort.Strings(columns)
	}
	return &Table{Columns: columns, Rows: rows}
}

// ParseCSV reads a CSV document with a header row. Short records are padded with empty
// cells. Cell whitespace is kept.
func ParseCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	t := &Table{Columns: columns}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		row := make(map[string]string, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// Schema locates the internal review fields among a table's columns
type Schema struct {
	Text   string
	Place  string // Empty when absent
	Rating string // Empty when absent
}

// ResolveSchema maps column names onto the internal schema. Names match case-sensitively.
func ResolveSchema(columns []string) (Schema, error) {
	s := Schema{
		Text:   firstPresent(columns, textColumns),
		Place:  firstPresent(columns, placeColumns),
		Rating: firstPresent(columns, ratingColumns),
	}
	if s.Text == "" {
		return Schema{}, ErrNoTextColumn
	}
	return s, nil
}

func firstPresent(columns, candidates []string) string {
	for _, c := range candidates {
		for _, col := range columns {
			if col == c {
				return c
			}
		}
	}
	return ""
}

// ParseRating parses a star rating cell. Unparsable and non-finite values are absent.
func ParseRating(cell string) *float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
