// Package detect applies rule sets and the business context model to review text,
// producing typed policy violation records.
package detect

import (
	"fmt"
	"strings"

	"github.com/ppiankov/candor/internal/business"
	"github.com/ppiankov/candor/internal/model"
	"github.com/ppiankov/candor/internal/rules"
)

// suspiciousThreshold is the number of distinct suspicious keywords that makes a review suspicious
const suspiciousThreshold = 2

// Advertisement indicator keys reported in violation details
const (
	DetailStrong          = "strong_indicators"
	DetailWeak            = "weak_indicators"
	DetailBusinessContext = "business_context"
	DetailPromoMentions   = "promo_mentions"
)

// patternCategory binds a rule group to the violation it produces
type patternCategory struct {
	category    rules.Category
	kind        model.ViolationKind
	description string
}

// perPattern categories emit one violation per matching rule, in this order
var perPattern = []patternCategory{
	{rules.CategoryNoVisit, model.ViolationNoVisit, "Review appears to be from someone who has not visited or tried the product/service"},
	{rules.CategoryOffTopic, model.ViolationOffTopic, "Contains content unrelated to the product or service"},
	{rules.CategoryInappropriate, model.ViolationInappropriate, "Contains inappropriate language or content"},
	{rules.CategoryPersonalInfo, model.ViolationPersonalInfo, "Contains personal identifiable information"},
	{rules.CategoryFake, model.ViolationFake, "Contains language typical of fake reviews"},
}

// Detector finds policy violations. It is safe for concurrent use.
type Detector struct {
	rules    *rules.Set
	business *business.Model
}

// NewDetector creates a detector over a compiled rule set and a business model
func NewDetector(set *rules.Set, bm *business.Model) *Detector {
	return &Detector{rules: set, business: bm}
}

// Detect returns the text-pattern violations of text in emission order: advertisement,
// per-pattern categories, then suspicious keywords.
func (d *Detector) Detect(text string) []model.Violation {
	lowered := strings.ToLower(text)
	violations := make([]model.Violation, 0)

	if v, ok := d.advertisement(lowered); ok {
		violations = append(violations, v)
	}

	for _, pc := range perPattern {
		for _, r := range d.rules.Matching(pc.category, lowered) {
			violations = append(violations, model.Violation{
				Type:        pc.kind,
				Description: pc.description,
				Pattern:     r.ID,
			})
		}
	}

	if found := d.rules.SuspiciousKeywords(lowered); len(found) >= suspiciousThreshold {
		violations = append(violations, model.Violation{
			Type:        model.ViolationSuspicious,
			Description: "Contains multiple suspicious keywords: " + strings.Join(found, ", "),
			Keywords:    found,
		})
	}

	return violations
}

// ResolveType returns the business type to judge relevance against: the explicit type when
// given, else the type resolved from the place name.
func (d *Detector) ResolveType(explicit, placeName string) (string, bool) {
	if t := strings.ToLower(strings.TrimSpace(explicit)); t != "" {
		return t, true
	}
	if strings.TrimSpace(placeName) == "" {
		return "", false
	}
	return d.business.Resolve(placeName)
}

// Relevance checks text against a business type. It returns an off-topic violation when the
// text only discusses topics irrelevant to the type, and the type's context info when known.
func (d *Detector) Relevance(businessType, text string) (*model.Violation, *model.BusinessContextInfo) {
	info := d.business.ContextInfo(businessType)

	relevant, topics := d.business.CheckRelevance(businessType, text)
	if relevant || len(topics) == 0 {
		return nil, info
	}

	return &model.Violation{
		Type:             model.ViolationOffTopic,
		Description:      fmt.Sprintf("Review discusses topics irrelevant to %s: %s", businessType, strings.Join(topics, ", ")),
		IrrelevantTopics: topics,
		BusinessType:     businessType,
	}, info
}

// advertisement decides whether the text is promotional. Strong indicators decide alone;
// weak indicators only count when the text has no business review context.
func (d *Detector) advertisement(lowered string) (model.Violation, bool) {
	strong := d.rules.Count(rules.CategoryStrongAd, lowered)
	weak := d.rules.Count(rules.CategoryWeakAd, lowered)
	ctx := d.rules.Count(rules.CategoryBusinessContext, lowered)
	promo := d.rules.Count(rules.CategoryPromoMention, lowered)

	var description string
	switch {
	case strong > 0:
		description = "Contains direct promotional content (URLs, contact info, or business promotion)"
	case weak >= 2 && ctx == 0:
		description = "Contains multiple promotional phrases without business review context"
	case weak >= 1 && ctx == 0 && promo == 0:
		description = "Contains promotional language without business review context"
	default:
		return model.Violation{}, false
	}

	return model.Violation{
		Type:        model.ViolationAdvertisement,
		Description: description,
		Details: map[string]int{
			DetailStrong:          strong,
			DetailWeak:            weak,
			DetailBusinessContext: ctx,
			DetailPromoMentions:   promo,
		},
	}, true
}
