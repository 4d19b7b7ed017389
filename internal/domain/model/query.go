package model

import (
	"fmt"
	"strings"
)

// PricingPreference extends Pricing with a "Both" wildcard.
type PricingPreference string

// Pricing preference values accepted on requests.
const (
	PreferFree PricingPreference = "Free"
	PreferPaid PricingPreference = "Paid"
	PreferBoth PricingPreference = "Both"
)

// ParsePricingPreference maps free-form input to a PricingPreference.
func ParsePricingPreference(s string) (PricingPreference, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "free":
		return PreferFree, true
	case "paid":
		return PreferPaid, true
	case "both":
		return PreferBoth, true
	}
	return "", false
}

// Admits reports whether a course pricing satisfies the preference.
func (p PricingPreference) Admits(pricing Pricing) bool {
	switch p {
	case PreferBoth:
		return true
	case PreferFree:
		return pricing == PricingFree
	case PreferPaid:
		return pricing == PricingPaid
	}
	return false
}

// CategoryAny is the wildcard category marker admitting every category.
const CategoryAny = "Any"

// PreferenceQuery is the transient per-request input to the engine.
// It is constructed by the API layer and discarded after scoring.
type PreferenceQuery struct {
	UserID   string // optional; empty means anonymous, no feedback adjustment
	Category string
	Skill    SkillLevel
	Duration DurationBucket
	Pricing  PricingPreference
	Interest string // optional free text
}

// WantsAnyCategory reports whether the category constraint is a wildcard.
func (q PreferenceQuery) WantsAnyCategory() bool {
	return q.Category == "" || strings.EqualFold(q.Category, CategoryAny)
}

// QueryText synthesizes the lexical query from the stated preferences.
// The category name seeds the query so on-topic descriptions score even
// when the user provides no free text.
func (q PreferenceQuery) QueryText() string {
	if q.WantsAnyCategory() {
		return strings.TrimSpace(q.Interest)
	}
	return strings.TrimSpace(q.Category + " " + q.Interest)
}

// Validate rejects queries with missing or malformed required fields.
func (q PreferenceQuery) Validate() error {
	switch {
	case strings.TrimSpace(q.Category) == "":
		return fmt.Errorf("%w: missing category", ErrInvalidPreference)
	case q.Skill != SkillBeginner && q.Skill != SkillIntermediate && q.Skill != SkillAdvanced:
		return fmt.Errorf("%w: unknown skill level %q", ErrInvalidPreference, string(q.Skill))
	case q.Duration != DurationShort && q.Duration != DurationLong:
		return fmt.Errorf("%w: unknown duration preference %q", ErrInvalidPreference, string(q.Duration))
	case q.Pricing != PreferFree && q.Pricing != PreferPaid && q.Pricing != PreferBoth:
		return fmt.Errorf("%w: unknown pricing preference %q", ErrInvalidPreference, string(q.Pricing))
	}
	return nil
}
