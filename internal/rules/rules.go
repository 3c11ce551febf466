// Package rules holds the compiled pattern rule sets used to detect policy violations.
// A Set is immutable once compiled and safe to share between goroutines.
package rules

import (
	"fmt"
	"os"
	"regexp"

	"github.com/ppiankov/candor/internal/match"
	"gopkg.in/yaml.v3"
)

// Category names a rule group
type Category string

const (
	CategoryStrongAd        Category = "advertisement-strong"
	CategoryWeakAd          Category = "advertisement-weak"
	CategoryBusinessContext Category = "business-context"
	CategoryPromoMention    Category = "promo-mention"
	CategoryNoVisit         Category = "no-visit"
	CategoryOffTopic        Category = "off-topic"
	CategoryInappropriate   Category = "inappropriate"
	CategoryPersonalInfo    Category = "personal-info"
	CategoryFake            Category = "fake"
	CategorySuspicious      Category = "suspicious-keyword"
)

// Definition is an uncompiled rule
type Definition struct {
	ID      string `yaml:"id" json:"id"`
	Pattern string `yaml:"pattern" json:"pattern"`
}

// Definitions is the serializable form of a rule set
type Definitions struct {
	StrongAd           []Definition `yaml:"advertisement_strong"`
	WeakAd             []Definition `yaml:"advertisement_weak"`
	BusinessContext    []Definition `yaml:"business_context"`
	PromoMention       []Definition `yaml:"promo_mention"`
	NoVisit            []Definition `yaml:"no_visit"`
	OffTopic           []Definition `yaml:"off_topic"`
	Inappropriate      []Definition `yaml:"inappropriate"`
	PersonalInfo       []Definition `yaml:"personal_info"`
	Fake               []Definition `yaml:"fake"`
	SuspiciousKeywords []string     `yaml:"suspicious_keywords"`
}

// Rule is a compiled, case-insensitive search pattern
type Rule struct {
	ID      string
	Pattern string
	re      *regexp.Regexp
}

// Match reports whether the rule matches anywhere in text
func (r Rule) Match(text string) bool {
	return r.re.MatchString(text)
}

// Group is an ordered list of rules sharing a category
type Group struct {
	Category Category
	Rules    []Rule
}

// Set is a complete compiled rule set
type Set struct {
	groups     map[Category]Group
	suspicious *match.Terms
}

// categoryOrder is the order groups are listed in
var categoryOrder = []Category{
	CategoryStrongAd,
	CategoryWeakAd,
	CategoryBusinessContext,
	CategoryPromoMention,
	CategoryNoVisit,
	CategoryOffTopic,
	CategoryInappropriate,
	CategoryPersonalInfo,
	CategoryFake,
}

// Compile compiles definitions into a Set
func Compile(d Definitions) (*Set, error) {
	byCategory := map[Category][]Definition{
		CategoryStrongAd:        d.StrongAd,
		CategoryWeakAd:          d.WeakAd,
		CategoryBusinessContext: d.BusinessContext,
		CategoryPromoMention:    d.PromoMention,
		CategoryNoVisit:         d.NoVisit,
		CategoryOffTopic:        d.OffTopic,
		CategoryInappropriate:   d.Inappropriate,
		CategoryPersonalInfo:    d.PersonalInfo,
		CategoryFake:            d.Fake,
	}

	s := &Set{groups: make(map[Category]Group, len(byCategory))}
	for _, category := range categoryOrder {
		defs := byCategory[category]
		group := Group{Category: category, Rules: make([]Rule, 0, len(defs))}
		for i, def := range defs {
			re, err := regexp.Compile("(?i)" + def.Pattern)
			if err != nil {
				return nil, fmt.Errorf("compile %s rule %q: %w", category, def.ID, err)
			}
			id := def.ID
			if id == "" {
				id = fmt.Sprintf("%s-%d", category, i+1)
			}
			group.Rules = append(group.Rules, Rule{ID: id, Pattern: def.Pattern, re: re})
		}
		s.groups[category] = group
	}

	s.suspicious = match.NewTerms(d.SuspiciousKeywords)

	return s, nil
}

// Default compiles the built-in definitions
func Default() *Set {
	s, err := Compile(DefaultDefinitions())
	if err != nil {
		panic(fmt.Sprintf("default rules do not compile: %v", err))
	}
	return s
}

// LoadFile compiles a YAML rule file. Groups absent from the file keep their defaults.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}

	d := DefaultDefinitions()
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	return Compile(d)
}

// Group returns the rules of a category
func (s *Set) Group(c Category) Group {
	return s.groups[c]
}

// Groups returns all pattern groups in a stable order
func (s *Set) Groups() []Group {
	out := make([]Group, 0, len(categoryOrder))
	for _, c := range categoryOrder {
		out = append(out, s.groups[c])
	}
	return out
}

// Count returns how many rules of a category match text
func (s *Set) Count(c Category, text string) int {
	n := 0
	for _, r := range s.groups[c].Rules {
		if r.Match(text) {
			n++
		}
	}
	return n
}

// Matching returns every rule of a category that matches text, in definition order
func (s *Set) Matching(c Category, text string) []Rule {
	var matched []Rule
	for _, r := range s.groups[c].Rules {
		if r.Match(text) {
			matched = append(matched, r)
		}
	}
	return matched
}

// SuspiciousKeywords returns the distinct suspicious keywords contained in lowered text,
// in definition order
func (s *Set) SuspiciousKeywords(lowered string) []string {
	return s.suspicious.Find(lowered)
}

// SuspiciousList returns the configured suspicious keywords
func (s *Set) SuspiciousList() []string {
	return s.suspicious.List(0)
}
