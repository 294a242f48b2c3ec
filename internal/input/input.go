// Package input sanitizes and validates free-text user input before it
// reaches any external lookup.
package input

import (
	"regexp"
	"strings"
)

const (
	// DefaultMaxCityLen bounds city names accepted by ValidateCity.
	DefaultMaxCityLen = 50
	// DefaultMaxQuestionLen bounds questions accepted by ValidateQuestion.
	DefaultMaxQuestionLen = 200
)

var (
	disallowedRe = regexp.MustCompile(`[^\w\s,.!?-]`)
	spaceRunRe   = regexp.MustCompile(`\s+`)
	cityRe       = regexp.MustCompile(`^[\w\s\-,.]+$`)
)

// Clean strips surrounding whitespace, removes characters outside the
// allow-list (word characters, whitespace and ",.!?-") and collapses
// internal whitespace runs to a single space. Idempotent.
func Clean(text string) string {
	text = disallowedRe.ReplaceAllString(strings.TrimSpace(text), "")
	text = spaceRunRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// ValidateCity reports whether a cleaned city name is acceptable:
// non-empty, within maxLen and built only from letters, digits,
// spaces, commas, periods and hyphens.
func ValidateCity(city string, maxLen int) bool {
	if maxLen <= 0 {
		maxLen = DefaultMaxCityLen
	}
	if len(city) > maxLen {
		return false
	}
	return cityRe.MatchString(city)
}

// ValidateQuestion reports whether a question is acceptable:
// non-empty after trimming and within maxLen.
func ValidateQuestion(question string, maxLen int) bool {
	if maxLen <= 0 {
		maxLen = DefaultMaxQuestionLen
	}
	if len(question) > maxLen {
		return false
	}
	return strings.TrimSpace(question) != ""
}
