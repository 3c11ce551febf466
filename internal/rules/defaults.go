package rules

// DefaultDefinitions returns the built-in rule definitions
func DefaultDefinitions() Definitions {
	return Definitions{
		// Strong indicators classify as advertisement on their own
		StrongAd: []Definition{
			{ID: "promo-phrase", Pattern: `\b(visit our website|check out our store|promo code|coupon code)\b`},
			{ID: "url", Pattern: `\b(www\.|http|\.com|\.net|\.org)\b`},
			{ID: "contact-us", Pattern: `\b(call us|contact us|email us)\b.*\b(for|at)\b`},
			{ID: "company-offer", Pattern: `\b(our company|our business|our service)\b.*\b(offers|provides)\b`},
			{ID: "referral", Pattern: `\b(referral program|refer a friend|referral code|referral link)\b`},
			{ID: "my-code", Pattern: `\b(join my|use my|my referral|my promo)\b.*\b(code|link|program)\b`},
			{ID: "earn-money", Pattern: `\b(earn|get|receive)\b.*\$\d+.*\b(if you|when you|by)\b`},
			{ID: "sign-up", Pattern: `\b(sign up|subscribe|register)\b.*\b(now|today|here)\b.*\b(get|receive|earn)\b`},
			{ID: "our-app", Pattern: `\b(download our app|install our|try our service)\b`},
			{ID: "free-trial", Pattern: `\b(free trial|free month|free subscription)\b.*\b(if you|when you)\b`},
			{ID: "affiliate", Pattern: `\b(affiliate|partnership|commission|sponsored)\b`},
			{ID: "click-here", Pattern: `\b(click here|tap here|visit here)\b.*\b(to get|for)\b`},
		},
		// Weak indicators need the absence of review context
		WeakAd: []Definition{
			{ID: "urgency", Pattern: `\b(buy now|click here|limited time|act fast)\b`},
			{ID: "hyped-deal", Pattern: `\b(amazing|incredible|unbelievable|fantastic)\b.*\b(deal|offer|price)\b`},
			{ID: "dollar-discount", Pattern: `\$\d+.*\b(discount|off|save|cashback|reward)\b`},
			{ID: "special-offer", Pattern: `\b(special offer|exclusive deal|limited offer)\b`},
			{ID: "scarcity", Pattern: `\b(don't miss|hurry|expires soon|while supplies last)\b`},
			{ID: "reward-conditions", Pattern: `\b(bonus|reward|cashback|points)\b.*\b(when you|if you)\b`},
			{ID: "free-shipping", Pattern: `\b(free shipping|free delivery|no cost)\b.*\b(order|purchase|buy)\b`},
			{ID: "best-price", Pattern: `\b(best price|lowest price|guaranteed)\b`},
			{ID: "risk-free", Pattern: `\b(money back|satisfaction guaranteed|risk free)\b`},
		},
		BusinessContext: []Definition{
			{ID: "visited", Pattern: `\b(went to|visited|tried|ordered|ate at|stayed at|shopped at)\b`},
			{ID: "the-place", Pattern: `\b(the staff|the service|the food|the atmosphere|the location)\b`},
			{ID: "venue", Pattern: `\b(restaurant|hotel|store|shop|cafe|bar|museum|park)\b`},
			{ID: "experience", Pattern: `\b(experience|visit|trip|meal|stay|purchase)\b`},
			{ID: "would-return", Pattern: `\b(recommend|would go back|will return|worth it)\b`},
		},
		// Legitimate mentions of a promotion the business ran
		PromoMention: []Definition{
			{ID: "they-ran", Pattern: `\b(they had|there was|they offered|they were running)\b.*\b(promotion|deal|discount|special)\b`},
			{ID: "told-us", Pattern: `\b(mentioned|told us about|offered us)\b.*\b(discount|deal|promotion)\b`},
			{ID: "used-discount", Pattern: `\b(got|received|used)\b.*\b(discount|coupon|deal)\b`},
		},
		NoVisit: []Definition{
			{ID: "never-been", Pattern: `\b(never been|haven't been|have not been|not been)\b.*\b(there|here|to this place)\b`},
			{ID: "never-visited", Pattern: `\b(never visited|haven't visited|have not visited|not visited)\b`},
			{ID: "never-tried", Pattern: `\b(never tried|haven't tried|have not tried|not tried)\b.*\b(this|it|them)\b`},
			{ID: "planning", Pattern: `\b(planning to|going to|will|might)\b.*\b(visit|go|try)\b`},
			{ID: "hearsay", Pattern: `\b(heard|someone told me|people say|they say)\b.*\b(it's|its|this place is)\b`},
			{ID: "secondhand", Pattern: `\b(based on|according to)\b.*\b(reviews|what i heard|others)\b`},
			{ID: "appearance", Pattern: `\b(looks like|seems like|appears to be)\b.*\b(from|based on)\b`},
			{ID: "considering", Pattern: `\b(considering|thinking about|contemplating)\b.*\b(visiting|going|trying)\b`},
			{ID: "wishlist", Pattern: `\b(want to|would like to|hope to)\b.*\b(visit|go|try)\b.*\b(soon|someday|eventually)\b`},
		},
		OffTopic: []Definition{
			{ID: "personal-life", Pattern: `\b(my phone|my dog|my cat|my car|my house|my family|my vacation)\b`},
			{ID: "self-declared", Pattern: `\b(unrelated|not about this place|irrelevant)\b`},
		},
		Inappropriate: []Definition{
			{ID: "profanity", Pattern: `\b(fuck|shit|bitch|asshole|damn|cunt|motherfucker)\b`},
			{ID: "sexual", Pattern: `\b(sex|sexual|porn|naked)\b`},
		},
		PersonalInfo: []Definition{
			{ID: "phone-number", Pattern: `\b(\d{3}[-\s]?\d{3}[-\s]?\d{4})\b`},
			{ID: "email-address", Pattern: `\b([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})\b`},
			{ID: "disclosure", Pattern: `\b(my address is|my phone number is|my email is)\b`},
		},
		Fake: []Definition{
			{ID: "superlative", Pattern: `\b(best product ever|life changing|miracle|perfect)\b`},
			{ID: "must-buy", Pattern: `\b(highly recommend|must buy|everyone should)\b.*\b(buy|purchase|get)\b`},
			{ID: "no-doubt-stars", Pattern: `\b(five stars|5 stars|10/10)\b.*\b(without|no)\b.*\b(doubt|question)\b`},
		},
		SuspiciousKeywords: []string{"guarantee", "money back", "risk free", "breakthrough", "revolutionary"},
	}
}
