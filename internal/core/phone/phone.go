// Package phone provides phone number normalization for duplicate comparison
// and the device-facing formatting policy
//
// Normalize builds comparison keys only and never mutates stored values.
// Apply rewrites numbers for the base station according to a Policy.
package phone

import (
	"strings"

	"github.com/jordiboehme/gigaset-central-phonebook/internal/core/contact"
)

// comparisonStrip holds the characters removed when building comparison keys
const comparisonStrip = " -.()"

// formatSeparators holds the characters the formatting policy may strip
const formatSeparators = ".-_,;/\\()[]{}"

// Policy carries the formatting flags persisted in settings
type Policy struct {
	LocalCountryCode string `json:"localCountryCode"`
	ConvertFormat    bool   `json:"phoneFormatConversion"`
	StripSeparators  bool   `json:"removeSeparators"`
	StripSpaces      bool   `json:"removeSpaces"`
}

// Enabled reports whether any transformation is switched on
func (p Policy) Enabled() bool {
	return p.ConvertFormat || p.StripSeparators || p.StripSpaces
}

// Normalize strips spaces, hyphens, dots, and parentheses
// two strings denote the same number iff their normalized forms are equal
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(comparisonStrip, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// StripSeparators removes common separator characters from a number
func StripSeparators(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(formatSeparators, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// StripSpaces removes all whitespace from a number
func StripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// Convert rewrites an international number to the device's dialing form:
// a +<localCC> prefix becomes a single leading 0, any other + becomes 00,
// numbers without + are returned unchanged
func Convert(s, localCC string) string {
	if s == "" || !strings.HasPrefix(s, "+") {
		return s
	}
	if localCC != "" && strings.HasPrefix(s, localCC) {
		return "0" + s[len(localCC):]
	}
	return "00" + s[1:]
}

// Apply runs the enabled transformations in order: separators, spaces,
// then format conversion
func Apply(s string, p Policy) string {
	if s == "" {
		return s
	}
	out := s
	if p.StripSeparators {
		out = StripSeparators(out)
	}
	if p.StripSpaces {
		out = StripSpaces(out)
	}
	if p.ConvertFormat && p.LocalCountryCode != "" {
		out = Convert(out, p.LocalCountryCode)
	}
	return out
}

// NeedsTransformation reports whether any enabled rule would change s
func NeedsTransformation(s string, p Policy) bool {
	if s == "" {
		return false
	}
	if p.ConvertFormat && strings.HasPrefix(s, "+") {
		return true
	}
	if p.StripSeparators && strings.ContainsAny(s, formatSeparators) {
		return true
	}
	if p.StripSpaces && strings.ContainsAny(s, " \t\r\n") {
		return true
	}
	return false
}

// ApplyRecord returns a copy of rec with every phone slot transformed
func ApplyRecord(rec contact.Record, p Policy) contact.Record {
	out := rec
	for i, v := range rec.Phones() {
		if v != "" {
			out.SetPhone(i, Apply(v, p))
		}
	}
	return out
}

// RecordNeedsTransformation reports whether any slot of rec would change
func RecordNeedsTransformation(rec contact.Record, p Policy) bool {
	for _, v := range rec.Phones() {
		if NeedsTransformation(v, p) {
			return true
		}
	}
	return false
}
