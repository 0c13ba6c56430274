package service

import (
	"strings"
)

/* ===================== Category names ===================== */

const (
	CategoryFull          = "Full"
	CategoryUnder30       = "Under 30"
	CategoryIntermediate  = "Intermediate"
	CategoryJunior        = "Junior"
	CategoryLife          = "Life"
	CategoryOver80        = "Over 80"
	CategorySeniorLoyalty = "Senior Loyalty"
)

/* ===================== Location ===================== */

type CategoryLocation string

const (
	LocationNone CategoryLocation = ""
	LocationHome CategoryLocation = "Home"
	LocationAway CategoryLocation = "Away"
)

// CategorySpec is the structured form of the legacy CRM category string.
// The CRM stores e.g. "7 Day Full (H)" or "Under 30 Away"; the base name and
// the Home/Away marker are parsed apart once instead of being regex-stripped
// at every comparison site.
type CategorySpec struct {
	Base     string
	Location CategoryLocation
}

// Legacy prefixes still present on categories imported from the old CRM.
var legacyPrefixes = []string{"7 Day ", "5 Day ", "Gents ", "Ladies "}

// ParseCategory splits a raw category string into its base name and
// Home/Away marker.
func ParseCategory(raw string) CategorySpec {
	s := strings.TrimSpace(raw)

	for _, p := range legacyPrefixes {
		if len(s) > len(p) && strings.EqualFold(s[:len(p)], p) {
			s = strings.TrimSpace(s[len(p):])
			break
		}
	}

	loc := LocationNone
	switch {
	case strings.HasSuffix(s, "(H)"):
		loc = LocationHome
		s = strings.TrimSpace(strings.TrimSuffix(s, "(H)"))
	case strings.HasSuffix(s, "(A)"):
		loc = LocationAway
		s = strings.TrimSpace(strings.TrimSuffix(s, "(A)"))
	case hasFoldSuffix(s, " Home"):
		loc = LocationHome
		s = strings.TrimSpace(s[:len(s)-len(" Home")])
	case hasFoldSuffix(s, " Away"):
		loc = LocationAway
		s = strings.TrimSpace(s[:len(s)-len(" Away")])
	}

	return CategorySpec{Base: s, Location: loc}
}

func hasFoldSuffix(s, suffix string) bool {
	return len(s) > len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}

// String re-assembles the category in the modern "(H)"/"(A)" form.
func (c CategorySpec) String() string {
	switch c.Location {
	case LocationHome:
		return c.Base + " (H)"
	case LocationAway:
		return c.Base + " (A)"
	default:
		return c.Base
	}
}

// IsSocial matches any social category variant ("Social", "Social - House").
func IsSocial(category string) bool {
	return strings.Contains(strings.ToLower(category), "social")
}

// IsOutOfCounty matches the out-of-county category variants.
func IsOutOfCounty(category string) bool {
	return strings.Contains(strings.ToLower(category), "out of county")
}

// AgeBandCategory returns the base category a member of the given age on
// 1 April belongs in.
func AgeBandCategory(age int) string {
	switch {
	case age >= 30:
		return CategoryFull
	case age >= 21:
		return CategoryUnder30
	case age >= 18:
		return CategoryIntermediate
	default:
		return CategoryJunior
	}
}
