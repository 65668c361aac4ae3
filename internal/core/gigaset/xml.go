// Package gigaset renders the phonebook as the XML document the base
// station downloads
package gigaset

import (
	"strings"

	"github.com/jordiboehme/gigaset-central-phonebook/internal/core/contact"
)

// MaxFieldLength is the device's per-field character limit
const MaxFieldLength = 32

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
	"\n", " ",
	"\r", "",
)

// Escape replaces XML-reserved characters and flattens newlines
func Escape(s string) string {
	if s == "" {
		return ""
	}
	return escaper.Replace(s)
}

// Truncate cuts a field to the device limit, counting runes not bytes
func Truncate(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	if len(r) <= MaxFieldLength {
		return s
	}
	return string(r[:MaxFieldLength])
}

// Render emits one self-closing entry element per record inside the fixed
// list wrapper the device expects
func Render(entries []contact.Record) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n")
	b.WriteString("<!DOCTYPE LocalDirectory>\n")
	b.WriteString("<list>\n")

	for _, e := range entries {
		b.WriteString(`  <entry surname="`)
		b.WriteString(field(e.Surname))
		b.WriteString(`" name="`)
		b.WriteString(field(e.Name))
		b.WriteString(`" office1="`)
		b.WriteString(field(e.Office1))
		b.WriteString(`" office2="`)
		b.WriteString(field(e.Office2))
		b.WriteString(`" mobile1="`)
		b.WriteString(field(e.Mobile1))
		b.WriteString(`" mobile2="`)
		b.WriteString(field(e.Mobile2))
		b.WriteString(`" home1="`)
		b.WriteString(field(e.Home1))
		b.WriteString(`" home2="`)
		b.WriteString(field(e.Home2))
		b.WriteString("\"/>\n")
	}

	b.WriteString("</list>")
	return b.String()
}

// field truncates first so escaping never reintroduces over-length values
func field(s string) string {
	return Escape(Truncate(s))
}
