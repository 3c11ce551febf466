// Package match finds which of a fixed list of terms occur in a text.
package match

import (
	"sort"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// Terms is an immutable dictionary matched with a single Aho-Corasick pass.
// Matching is plain substring containment against lowercased text.
type Terms struct {
	terms   []string
	matcher *ahocorasick.Matcher
}

// NewTerms lowercases and trims terms, dropping empty ones
func NewTerms(terms []string) *Terms {
	normalized := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			normalized = append(normalized, t)
		}
	}

	t := &Terms{terms: normalized}
	if len(normalized) > 0 {
		t.matcher = ahocorasick.NewStringMatcher(normalized)
	}
	return t
}

// Find returns the distinct terms contained in lowered, in definition order
func (t *Terms) Find(lowered string) []string {
	if t.matcher == nil || lowered == "" {
		return nil
	}

	hits := t.matcher.MatchThreadSafe([]byte(lowered))
	if len(hits) == 0 {
		return nil
	}
	sort.Ints(hits)

	found := make([]string, 0, len(hits))
	last := -1
	for _, idx := range hits {
		if idx == last || idx >= len(t.terms) {
			continue
		}
		last = idx
		found = append(found, t.terms[idx])
	}
	return found
}

// Count returns how many distinct terms are contained in lowered
func (t *Terms) Count(lowered string) int {
	return len(t.Find(lowered))
}

// List returns a copy of the dictionary, optionally capped to the first n terms (n <= 0 means all)
func (t *Terms) List(n int) []string {
	if n <= 0 || n > len(t.terms) {
		n = len(t.terms)
	}
	out := make([]string, n)
	copy(out, t.terms[:n])
	return out
}
