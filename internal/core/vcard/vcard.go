// Package vcard extracts phonebook candidates from vCard 3.0/4.0 text
//
// This is intentionally not a standard-compliant parser: only the N, FN,
// ORG, and TEL properties matter to the base station, everything else is
// skipped
package vcard

import (
	"strings"
	"unicode/utf8"

	"github.com/jordiboehme/gigaset-central-phonebook/internal/core/contact"
	perrs "github.com/jordiboehme/gigaset-central-phonebook/internal/platform/errors"
)

const beginMarker = "BEGIN:VCARD"

// Parse splits raw vCard text into candidate records
// returns a parse error when the input is not valid UTF-8; a stream with
// zero valid blocks yields an empty slice, the caller decides whether that
// is fatal
func Parse(raw []byte) ([]contact.Record, error) {
	if !utf8.Valid(raw) {
		return nil, perrs.Parsef("vcard: input is not valid UTF-8 text")
	}

	var out []contact.Record
	for _, block := range splitBlocks(string(raw)) {
		rec, ok := parseBlock(block)
		if ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// splitBlocks cuts the input at each case-insensitive BEGIN:VCARD marker,
// dropping any preamble before the first one
func splitBlocks(s string) []string {
	upper := strings.ToUpper(s)
	var starts []int
	for i := 0; ; {
		j := strings.Index(upper[i:], beginMarker)
		if j < 0 {
			break
		}
		starts = append(starts, i+j)
		i += j + len(beginMarker)
	}
	blocks := make([]string, 0, len(starts))
	for k, st := range starts {
		end := len(s)
		if k+1 < len(starts) {
			end = starts[k+1]
		}
		blocks = append(blocks, s[st:end])
	}
	return blocks
}

// unfold undoes vCard line folding: a line starting with space or tab
// continues the previous line
func unfold(block string) []string {
	block = strings.ReplaceAll(block, "\r\n", "\n")
	block = strings.ReplaceAll(block, "\r", "\n")
	raw := strings.Split(block, "\n")

	var lines []string
	for _, l := range raw {
		if len(l) > 0 && (l[0] == ' ' || l[0] == '\t') && len(lines) > 0 {
			lines[len(lines)-1] += l[1:]
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

func parseBlock(block string) (contact.Record, bool) {
	var rec contact.Record

	var work, cell, home []string
	var org string
	nWasEmpty := false

	for _, line := range unfold(block) {
		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "N:") || strings.HasPrefix(upper, "N;"):
			parts := splitComponents(rawValue(line))
			rec.Surname = decode(partAt(parts, 0))
			rec.Name = decode(partAt(parts, 1))
			if rec.Surname == "" && rec.Name == "" {
				nWasEmpty = true
			}

		case strings.HasPrefix(upper, "FN:") || strings.HasPrefix(upper, "FN;"):
			// fallback only when N produced nothing
			if rec.Surname == "" && rec.Name == "" {
				full := extractValue(line)
				if i := strings.Index(full, " "); i > 0 {
					rec.Name = full[:i]
					rec.Surname = full[i+1:]
				} else {
					rec.Surname = full
				}
			}

		case strings.HasPrefix(upper, "ORG:") || strings.HasPrefix(upper, "ORG;"):
			// ORG format is company;department, only the company matters
			org = decode(partAt(splitComponents(rawValue(line)), 0))

		case strings.HasPrefix(upper, "TEL"):
			num := extractValue(line)
			switch {
			case hasAnyType(upper, "CELL", "MOBILE", "IPHONE"):
				cell = append(cell, num)
			case hasAnyType(upper, "WORK", "OFFICE", "MAIN"):
				work = append(work, num)
			default:
				// HOME, OTHER, VOICE, and untyped numbers all land here
				home = append(home, num)
			}
		}
	}

	// business contacts carry their name in ORG with an empty N property;
	// that overrides whatever FN splitting produced
	if nWasEmpty && org != "" {
		rec.Surname = org
		rec.Name = ""
	}

	assign(&rec.Office1, &rec.Office2, work)
	assign(&rec.Mobile1, &rec.Mobile2, cell)
	assign(&rec.Home1, &rec.Home2, home)

	if !rec.HasName() && !rec.HasPrimaryPhone() {
		return contact.Record{}, false
	}
	return rec, true
}

// rawValue returns the text after the first colon, escapes intact
func rawValue(line string) string {
	i := strings.Index(line, ":")
	if i < 0 {
		return ""
	}
	return line[i+1:]
}

// extractValue returns the decoded, trimmed value for single-component
// properties like FN and TEL
func extractValue(line string) string {
	return decode(rawValue(line))
}

// splitComponents splits a structured value on unescaped semicolons
// decoding happens per component afterwards so an escaped \; survives as a
// literal semicolon inside a component
func splitComponents(v string) []string {
	var parts []string
	var b strings.Builder
	escaped := false
	for _, r := range v {
		switch {
		case escaped:
			b.WriteRune('\\')
			b.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ';':
			parts = append(parts, b.String())
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	if escaped {
		b.WriteRune('\\')
	}
	parts = append(parts, b.String())
	return parts
}

// decode undoes vCard backslash escaping on one value
func decode(v string) string {
	var b strings.Builder
	b.Grow(len(v))
	escaped := false
	for _, r := range v {
		if escaped {
			switch r {
			case 'n', 'N':
				b.WriteRune('\n')
			case ',', ';', '\\':
				b.WriteRune(r)
			default:
				b.WriteRune('\\')
				b.WriteRune(r)
			}
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	if escaped {
		b.WriteRune('\\')
	}
	return strings.TrimSpace(b.String())
}

func partAt(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}

func hasAnyType(upperLine string, types ...string) bool {
	for _, t := range types {
		if strings.Contains(upperLine, "TYPE="+t) {
			return true
		}
	}
	return false
}

// assign fills slot1/slot2 from the first two collected numbers,
// extras are dropped silently
func assign(slot1, slot2 *string, nums []string) {
	if len(nums) > 0 {
		*slot1 = nums[0]
	}
	if len(nums) > 1 {
		*slot2 = nums[1]
	}
}
