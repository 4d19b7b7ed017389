// Package model contains domain models passed between layers.
package model

import (
	"strconv"
	"strings"
)

// SkillLevel classifies the audience a course targets.
type SkillLevel string

// Skill levels recognized by the catalog.
const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
)

// ParseSkillLevel maps free-form input to a SkillLevel.
func ParseSkillLevel(s string) (SkillLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner":
		return SkillBeginner, true
	case "intermediate":
		return SkillIntermediate, true
	case "advanced":
		return SkillAdvanced, true
	}
	return "", false
}

// Pricing classifies whether a course costs money.
type Pricing string

// Pricing values recognized by the catalog.
const (
	PricingFree Pricing = "Free"
	PricingPaid Pricing = "Paid"
)

// ParsePricing maps free-form input to a Pricing.
func ParsePricing(s string) (Pricing, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "free":
		return PricingFree, true
	case "paid":
		return PricingPaid, true
	}
	return "", false
}

// DurationBucket is the coarse classification of a course's stated length.
type DurationBucket string

// Duration buckets. Short covers courses up to the configured week bound.
const (
	DurationShort DurationBucket = "Short"
	DurationLong  DurationBucket = "Long"
)

// ParseDurationBucket maps free-form input to a DurationBucket.
func ParseDurationBucket(s string) (DurationBucket, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "short", "short term":
		return DurationShort, true
	case "long", "long term":
		return DurationLong, true
	}
	return "", false
}

// Course is an immutable catalog entry. The engine never mutates courses;
// they are owned by the catalog store and replaced wholesale on refresh.
type Course struct {
	ID          string
	Title       string
	Description string
	Platform    string
	Duration    string // free text, e.g. "4 weeks"
	SkillLevel  SkillLevel
	Pricing     Pricing
	Category    string
	URL         string
}

// DurationWeeks parses the course's free-text duration into whole weeks.
// Returns false when no length can be extracted (e.g. "Self-paced").
func (c Course) DurationWeeks() (int, bool) {
	fields := strings.Fields(strings.ToLower(c.Duration))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			continue
		}
		if i+1 < len(fields) {
			switch {
			case strings.HasPrefix(fields[i+1], "week"):
				return n, true
			case strings.HasPrefix(fields[i+1], "month"):
				return n * 4, true
			}
		}
	}
	return 0, false
}

// DurationBucket classifies the course duration against shortMaxWeeks.
// Unparseable durations bucket as Long: a course that does not state a
// length cannot be promised to fit a short time budget.
func (c Course) DurationBucket(shortMaxWeeks int) DurationBucket {
	weeks, ok := c.DurationWeeks()
	if !ok {
		return DurationLong
	}
	if weeks <= shortMaxWeeks {
		return DurationShort
	}
	return DurationLong
}
