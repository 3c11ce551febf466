// Package business maps business names to business types and judges whether
// review text stays on the topics a business type is expected to cover.
package business

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/candor/internal/cache"
	"github.com/ppiankov/candor/internal/match"
	"github.com/ppiankov/candor/internal/model"
)

// contextTopicLimit caps the topic lists exposed by ContextInfo
const contextTopicLimit = 10

// unresolved is cached for names that map to no business type
const unresolved = "-"

// Model resolves business types and checks topic relevance. It is read-only after
// construction and safe for concurrent use.
type Model struct {
	types   map[string]*businessType
	order   []string // Type names in definition order
	aliases []Alias
	exact   map[string]string
	cache   cache.Cache
	ttl     time.Duration
}

type businessType struct {
	def        TypeDef
	relevant   *match.Terms
	irrelevant *match.Terms
}

// Option configures a Model
type Option func(*Model)

// WithCache memoizes name resolution in c
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(m *Model) {
		m.cache = c
		m.ttl = ttl
	}
}

// NewModel validates a catalog and builds a Model from it
func NewModel(c Catalog, opts ...Option) (*Model, error) {
	if len(c.Types) == 0 {
		return nil, errors.New("catalog defines no business types")
	}

	m := &Model{
		types:   make(map[string]*businessType, len(c.Types)),
		order:   make([]string, 0, len(c.Types)),
		aliases: make([]Alias, 0, len(c.Aliases)),
		exact:   make(map[string]string, len(c.Aliases)),
	}

	for _, def := range c.Types {
		name := strings.ToLower(strings.TrimSpace(def.Name))
		if name == "" {
			return nil, errors.New("business type with empty name")
		}
		if _, dup := m.types[name]; dup {
			return nil, fmt.Errorf("duplicate business type %q", name)
		}
		def.Name = name
		m.types[name] = &businessType{
			def:        def,
			relevant:   match.NewTerms(def.Relevant),
			irrelevant: match.NewTerms(def.Irrelevant),
		}
		m.order = append(m.order, name)
	}

	for _, a := range c.Aliases {
		alias := Alias{
			Name: strings.ToLower(strings.TrimSpace(a.Name)),
			Type: strings.ToLower(strings.TrimSpace(a.Type)),
		}
		if alias.Name == "" {
			continue
		}
		if _, ok := m.types[alias.Type]; !ok {
			return nil, fmt.Errorf("alias %q refers to unknown business type %q", alias.Name, alias.Type)
		}
		if _, dup := m.exact[alias.Name]; !dup {
			m.exact[alias.Name] = alias.Type
		}
		m.aliases = append(m.aliases, alias)
	}

	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// DefaultModel builds a Model from the built-in catalog
func DefaultModel(opts ...Option) *Model {
	m, err := NewModel(DefaultCatalog(), opts...)
	if err != nil {
		panic(fmt.Sprintf("default business catalog is invalid: %v", err))
	}
	return m
}

// Types returns the known business type names in definition order
func (m *Model) Types() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Resolve maps a business name to a business type. Resolution order: exact alias,
// alias substring match in either direction, then name keywords. Short aliases can
// match unrelated names through the substring rule.
func (m *Model) Resolve(name string) (string, bool) {
	lowered := normalize(name)
	if lowered == "" {
		return "", false
	}

	if m.cache != nil {
		key := cache.CacheKey(lowered)
		if cached, found := m.cache.Get(key); found {
			return cached, cached != unresolved
		}
		resolved, ok := m.resolve(lowered)
		value := resolved
		if !ok {
			value = unresolved
		}
		m.cache.Set(key, value, m.ttl)
		return resolved, ok
	}

	return m.resolve(lowered)
}

func (m *Model) resolve(lowered string) (string, bool) {
	if t, ok := m.exact[lowered]; ok {
		return t, true
	}

	for _, a := range m.aliases {
		if strings.Contains(lowered, a.Name) || strings.Contains(a.Name, lowered) {
			return a.Type, true
		}
	}

	for _, name := range m.order {
		for _, kw := range m.types[name].def.NameKeywords {
			kw = strings.ToLower(kw)
			if kw != "" && strings.Contains(lowered, kw) {
				return name, true
			}
		}
	}

	return "", false
}

// CheckRelevance reports whether text is on topic for businessType, returning the
// irrelevant topics found when it is not. Unknown or empty types are always relevant.
// Any relevant topic in the text outweighs every irrelevant one.
func (m *Model) CheckRelevance(businessType, text string) (bool, []string) {
	bt, ok := m.types[normalize(businessType)]
	if !ok {
		return true, nil
	}

	lowered := strings.ToLower(text)
	irrelevant := bt.irrelevant.Find(lowered)
	if len(irrelevant) == 0 {
		return true, nil
	}

	if bt.relevant.Count(lowered) > 0 {
		return true, nil
	}
	return false, irrelevant
}

// ContextInfo describes businessType's expected topics, or nil for unknown types
func (m *Model) ContextInfo(businessType string) *model.BusinessContextInfo {
	bt, ok := m.types[normalize(businessType)]
	if !ok {
		return nil
	}

	return &model.BusinessContextInfo{
		BusinessType:     bt.def.Name,
		RelevantTopics:   bt.relevant.List(contextTopicLimit),
		IrrelevantTopics: bt.irrelevant.List(contextTopicLimit),
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
