package dataset

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/candor/internal/model"
)

const (
	topPlacesLimit  = 10 // Place names reported in insights
	minPlaceRatings = 2  // Rated reviews a place needs for an average
)

// Insights summarizes the ratings, place names and text of rows, or nil when there are
// no rows. quality is carried through as counted while loading.
func Insights(rows []model.Row, quality model.DataQuality) *model.BatchInsights {
	if len(rows) == 0 {
		return nil
	}
	return &model.BatchInsights{
		Ratings:      RatingSummary(rows),
		Places:       TopPlaces(rows, topPlacesLimit),
		PlaceRatings: PlaceRatings(rows, minPlaceRatings),
		Text:         TextSummary(rows),
		DataQuality:  quality,
	}
}

// RatingSummary computes statistics over the parsable ratings of rows, or nil when there are none.
// The standard deviation is the sample deviation.
func RatingSummary(rows []model.Row) *model.RatingStats {
	var ratings []float64
	for _, r := range rows {
		if r.StarRating != nil {
			ratings = append(ratings, *r.StarRating)
		}
	}
	if len(ratings) == 0 {
		return nil
	}
	sort.Float64s(ratings)

	sum := 0.0
	categories := map[string]int{"excellent": 0, "good": 0, "average": 0, "poor": 0}
	distribution := make(map[string]int)
	for _, v := range ratings {
		sum += v
		distribution[strconv.FormatFloat(v, 'f', -1, 64)]++
		switch {
		case v >= 4.5:
			categories["excellent"]++
		case v >= 3.5:
			categories["good"]++
		case v >= 2.5:
			categories["average"]++
		default:
			categories["poor"]++
		}
	}
	n := float64(len(ratings))
	mean := sum / n

	var std float64
	if len(ratings) > 1 {
		ss := 0.0
		for _, v := range ratings {
			ss += (v - mean) * (v - mean)
		}
		std = math.Sqrt(ss / (n - 1))
	}

	return &model.RatingStats{
		Count:        len(ratings),
		Mean:         round2(mean),
		Median:       round2(quantile(ratings, 0.5)),
		Std:          round2(std),
		Min:          ratings[0],
		Max:          ratings[len(ratings)-1],
		Categories:   categories,
		Distribution: distribution,
	}
}

// TopPlaces counts rows per place name and keeps the limit most frequent. Ties keep
// first-seen order.
func TopPlaces(rows []model.Row, limit int) map[string]int {
	counts := make(map[string]int)
	var order []string
	for _, r := range rows {
		if r.PlaceName == "" {
			continue
		}
		if _, seen := counts[r.PlaceName]; !seen {
			order = append(order, r.PlaceName)
		}
		counts[r.PlaceName]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}

	top := make(map[string]int, len(order))
	for _, name := range order {
		top[name] = counts[name]
	}
	return top
}

// PlaceRatings averages the parsable ratings per place name, keeping places with at
// least minCount rated rows
func PlaceRatings(rows []model.Row, minCount int) map[string]model.PlaceRating {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range rows {
		if r.PlaceName == "" || r.StarRating == nil {
			continue
		}
		sums[r.PlaceName] += *r.StarRating
		counts[r.PlaceName]++
	}

	out := make(map[string]model.PlaceRating)
	for name, n := range counts {
		if n < minCount {
			continue
		}
		out[name] = model.PlaceRating{Mean: round2(sums[name] / float64(n)), Count: n}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// TextSummary computes character and word statistics over the review text of rows,
// or nil when there are none. Lengths count runes.
func TextSummary(rows []model.Row) *model.TextStats {
	if len(rows) == 0 {
		return nil
	}

	lengths := make([]float64, len(rows))
	words := make([]float64, len(rows))
	for i, r := range rows {
		lengths[i] = float64(utf8.RuneCountInString(r.Text))
		words[i] = float64(len(strings.Fields(r.Text)))
	}
	sort.Float64s(lengths)
	sort.Float64s(words)

	return &model.TextStats{
		AvgLength:    math.RoundToEven(average(lengths)),
		MedianLength: math.RoundToEven(quantile(lengths, 0.5)),
		MinLength:    int(lengths[0]),
		MaxLength:    int(lengths[len(lengths)-1]),
		AvgWords:     math.RoundToEven(average(words)),
		MedianWords:  math.RoundToEven(quantile(words, 0.5)),
		MinWords:     int(words[0]),
		MaxWords:     int(words[len(words)-1]),
	}
}

func average(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
