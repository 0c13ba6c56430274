package service

import (
	"fmt"
	"strings"
	"time"

	"linksclub_backend/internals/features/members/model"
)

// CategoryRecommendation is the outcome of the renewal-year category review
// for one member. NewCategory == nil means "leave as is"; Reason always says
// why.
type CategoryRecommendation struct {
	NewCategory *string `json:"new_category,omitempty"`
	Reason      string  `json:"reason"`
}

// Categories the engine never touches: these are assigned by hand and carry
// meaning the age/tenure rules cannot see.
var nonAutoManagedCategories = []string{
	"social",
	"twilight",
	"out of county",
	"honorary",
	"gratis",
	"retention",
	"resigned",
	"winter",
	"pga professional",
	"international",
	"life",
}

func isNonAutoManaged(category string) bool {
	lc := strings.ToLower(category)
	for _, skip := range nonAutoManagedCategories {
		if strings.Contains(lc, skip) {
			return true
		}
	}
	return false
}

// CalculateSubscriptionType decides whether a member's category should change
// for the renewal year containing referenceDate. Rules run in strict priority
// order; the first match wins. The promotion rules are monotonic: a member
// already at Life / Over 80 / Senior Loyalty is never moved to a lower band.
func CalculateSubscriptionType(m model.MemberModel, referenceDate time.Time) CategoryRecommendation {
	if isNonAutoManaged(m.MemberCategory) {
		return CategoryRecommendation{Reason: "category is not auto-managed"}
	}

	year := referenceDate.Year()
	aprilFirst := time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC)
	// Tenure for the Life rule is measured at year end: reaching 50 years at
	// any point in the year is enough, unlike the April-pinned age rules.
	decemberLast := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	currentBase := ParseCategory(m.MemberCategory).Base

	// 1. Life
	if yrs, ok := yearsOfMembershipOn(m, decemberLast); ok && yrs >= 50 {
		return recommend(CategoryLife, fmt.Sprintf("%d years of membership in %d", yrs, year))
	}

	// 2. Over 80
	if age, ok := ageOn(m, aprilFirst); ok && age >= 80 {
		if strings.EqualFold(currentBase, CategoryOver80) {
			return CategoryRecommendation{Reason: "already Over 80"}
		}
		return recommend(CategoryOver80, fmt.Sprintf("aged %d on 1 April %d", age, year))
	}

	// 3. Senior Loyalty
	age, ageOK := ageOn(m, aprilFirst)
	yrs, yrsOK := yearsOfMembershipOn(m, aprilFirst)
	if ageOK && yrsOK && age >= 65 && yrs >= 25 {
		if strings.EqualFold(currentBase, CategorySeniorLoyalty) ||
			strings.EqualFold(currentBase, CategoryOver80) {
			return CategoryRecommendation{Reason: "already at or above Senior Loyalty"}
		}
		return recommend(CategorySeniorLoyalty,
			fmt.Sprintf("aged %d with %d years of membership on 1 April %d", age, yrs, year))
	}

	// 4. Age-band correction. Never demotes the loyalty categories.
	if strings.EqualFold(currentBase, CategoryOver80) ||
		strings.EqualFold(currentBase, CategorySeniorLoyalty) {
		return CategoryRecommendation{Reason: "loyalty category retained"}
	}
	if !ageOK {
		return CategoryRecommendation{Reason: "no valid date of birth on record"}
	}
	band := AgeBandCategory(age)
	if strings.EqualFold(currentBase, band) {
		return CategoryRecommendation{Reason: "category matches age band"}
	}
	return recommend(band, fmt.Sprintf("aged %d on 1 April %d, band is %s", age, year, band))
}

// DefaultCategory assigns the category for a brand-new member: the same
// thresholds as the renewal review, without a current category to compare.
func DefaultCategory(m model.MemberModel, referenceDate time.Time) string {
	year := referenceDate.Year()
	aprilFirst := time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC)
	decemberLast := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	if yrs, ok := yearsOfMembershipOn(m, decemberLast); ok && yrs >= 50 {
		return CategoryLife
	}
	age, ageOK := ageOn(m, aprilFirst)
	if ageOK && age >= 80 {
		return CategoryOver80
	}
	if yrs, ok := yearsOfMembershipOn(m, aprilFirst); ok && ageOK && age >= 65 && yrs >= 25 {
		return CategorySeniorLoyalty
	}
	if !ageOK {
		return CategoryFull
	}
	return AgeBandCategory(age)
}

func recommend(category, reason string) CategoryRecommendation {
	return CategoryRecommendation{NewCategory: &category, Reason: reason}
}

/* ===================== Age / tenure ===================== */

func ageOn(m model.MemberModel, ref time.Time) (int, bool) {
	if m.MemberDateOfBirth == nil {
		return 0, false
	}
	return wholeYearsBetween(time.Time(*m.MemberDateOfBirth), ref)
}

func yearsOfMembershipOn(m model.MemberModel, ref time.Time) (int, bool) {
	if m.MemberDateJoined == nil {
		return 0, false
	}
	return wholeYearsBetween(time.Time(*m.MemberDateJoined), ref)
}

// wholeYearsBetween counts completed years from start to ref. A zero or
// future start date yields ok=false rather than a negative count.
func wholeYearsBetween(start, ref time.Time) (int, bool) {
	if start.IsZero() || start.After(ref) {
		return 0, false
	}
	years := ref.Year() - start.Year()
	anniversary := time.Date(ref.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	if anniversary.After(ref) {
		years--
	}
	if years < 0 {
		return 0, false
	}
	return years, true
}
