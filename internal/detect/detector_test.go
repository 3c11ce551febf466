package detect

import (
	"testing"

	"github.com/ppiankov/candor/internal/business"
	"github.com/ppiankov/candor/internal/model"
	"github.com/ppiankov/candor/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDetector() *Detector {
	return NewDetector(rules.Default(), business.DefaultModel())
}

func kinds(violations []model.Violation) []model.ViolationKind {
	out := make([]model.ViolationKind, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.Type)
	}
	return out
}

func TestDetector_Advertisement(t *testing.T) {
	d := newDetector()

	tests := []struct {
		name        string
		text        string
		description string
		details     map[string]int
	}{
		{
			name:        "url is a strong indicator",
			text:        "visit www.example.com",
			description: "Contains direct promotional content (URLs, contact info, or business promotion)",
			details:     map[string]int{DetailStrong: 1, DetailWeak: 0, DetailBusinessContext: 1, DetailPromoMentions: 0},
		},
		{
			name:        "several weak indicators without context",
			text:        "Limited time offer, hurry!",
			description: "Contains multiple promotional phrases without business review context",
			details:     map[string]int{DetailStrong: 0, DetailWeak: 2, DetailBusinessContext: 0, DetailPromoMentions: 0},
		},
		{
			name:        "single weak indicator without context",
			text:        "Hurry while it lasts",
			description: "Contains promotional language without business review context",
			details:     map[string]int{DetailStrong: 0, DetailWeak: 1, DetailBusinessContext: 0, DetailPromoMentions: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := d.Detect(tt.text)
			require.NotEmpty(t, violations)
			assert.Equal(t, model.ViolationAdvertisement, violations[0].Type)
			assert.Equal(t, tt.description, violations[0].Description)
			assert.Equal(t, tt.details, violations[0].Details)
		})
	}
}

func TestDetector_AdvertisementSuppressedByContext(t *testing.T) {
	d := newDetector()

	// A promotion the business ran is not an advertisement
	assert.Empty(t, d.Detect("Hurry, they had a great deal"))

	// Weak indicators inside a genuine visit report are tolerated
	violations := d.Detect("We visited the restaurant and it was the best price in town, hurry")
	assert.NotContains(t, kinds(violations), model.ViolationAdvertisement)
}

func TestDetector_CallUsScenario(t *testing.T) {
	d := newDetector()

	violations := d.Detect("Call us at 555-123-4567 for a discount")
	assert.Equal(t, []model.ViolationKind{model.ViolationAdvertisement, model.ViolationPersonalInfo}, kinds(violations))
	assert.Equal(t, "phone-number", violations[1].Pattern)
	assert.Equal(t, 1, violations[0].Details[DetailStrong])
}

func TestDetector_OneRecordPerMatchingPattern(t *testing.T) {
	d := newDetector()

	violations := d.Detect("my dog ate it, unrelated story")
	require.Len(t, violations, 2)
	assert.Equal(t, "personal-life", violations[0].Pattern)
	assert.Equal(t, "self-declared", violations[1].Pattern)
	for _, v := range violations {
		assert.Equal(t, model.ViolationOffTopic, v.Type)
		assert.Equal(t, "Contains content unrelated to the product or service", v.Description)
	}
}

func TestDetector_SuspiciousKeywords(t *testing.T) {
	d := newDetector()

	violations := d.Detect("Revolutionary breakthrough with a money back guarantee")
	require.Len(t, violations, 2)
	suspicious := violations[1]
	assert.Equal(t, model.ViolationSuspicious, suspicious.Type)
	assert.Equal(t, []string{"guarantee", "money back", "breakthrough", "revolutionary"}, suspicious.Keywords)
	assert.Equal(t, "Contains multiple suspicious keywords: guarantee, money back, breakthrough, revolutionary", suspicious.Description)

	// One keyword is not enough
	assert.Empty(t, d.Detect("A real breakthrough in flavor"))
}

func TestDetector_Clean(t *testing.T) {
	d := newDetector()
	assert.Empty(t, d.Detect("The food was amazing and the waiter was friendly"))
	assert.NotNil(t, d.Detect("The food was amazing and the waiter was friendly"))
}

func TestDetector_InjectedRules(t *testing.T) {
	set, err := rules.Compile(rules.Definitions{Fake: []rules.Definition{{ID: "flawless", Pattern: `\bflawless\b`}}})
	require.NoError(t, err)
	d := NewDetector(set, business.DefaultModel())

	violations := d.Detect("A flawless stay, visit www.example.com")
	require.Len(t, violations, 1)
	assert.Equal(t, model.ViolationFake, violations[0].Type)
	assert.Equal(t, "flawless", violations[0].Pattern)
}

func TestDetector_ResolveType(t *testing.T) {
	d := newDetector()

	got, ok := d.ResolveType(" Hotel ", "Starbucks Downtown")
	assert.True(t, ok)
	assert.Equal(t, "hotel", got)

	got, ok = d.ResolveType("", "Starbucks Downtown")
	assert.True(t, ok)
	assert.Equal(t, "coffee_shop", got)

	_, ok = d.ResolveType("", "")
	assert.False(t, ok)
}

func TestDetector_Relevance(t *testing.T) {
	d := newDetector()

	v, info := d.Relevance("restaurant", "My phone and my computer both stopped working")
	require.NotNil(t, v)
	require.NotNil(t, info)
	assert.Equal(t, model.ViolationOffTopic, v.Type)
	assert.Equal(t, "Review discusses topics irrelevant to restaurant: phone, computer", v.Description)
	assert.Equal(t, []string{"phone", "computer"}, v.IrrelevantTopics)
	assert.Equal(t, "restaurant", v.BusinessType)

	v, info = d.Relevance("restaurant", "I loved the chef's pizza but my phone broke too")
	assert.Nil(t, v)
	assert.NotNil(t, info)

	v, info = d.Relevance("spaceport", "my phone broke")
	assert.Nil(t, v)
	assert.Nil(t, info)
}
