// Package domain holds the import pipeline shapes
package domain

import (
	"github.com/jordiboehme/gigaset-central-phonebook/internal/core/contact"
	phonebookdom "github.com/jordiboehme/gigaset-central-phonebook/internal/services/phonebook/domain"
)

// Formats the import pipeline can parse
const (
	FormatVCard = "vcard"
	FormatJSON  = "json"
)

// Merge strategies for confirmed duplicates
const (
	StrategySkip        = "skip"
	StrategyReplace     = "replace"
	StrategyFillMissing = "fillMissing"
)

// Issue kinds
const (
	IssueNameTooLong    = "name_too_long"
	IssueNoPhoneNumber  = "no_phone_number"
	IssueTooManyEntries = "too_many_entries"
)

// Issue severities
const (
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// MaxEntries is the phonebook capacity ceiling enforced on imports
const MaxEntries = 2000

// DuplicateMatch pairs an incoming candidate with the stored entry it collides with
type DuplicateMatch struct {
	Candidate contact.Record     `json:"candidate"`
	Existing  phonebookdom.Entry `json:"existing"`
	MatchType string             `json:"matchType"`
}

// ValidationIssue flags a problem found while screening candidates
type ValidationIssue struct {
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Subject  string `json:"subject,omitempty"`
}

// Blocking reports whether the issue prevents the import from running
func (i ValidationIssue) Blocking() bool { return i.Severity == SeverityError }

// ImportPlan is the preview handed back to the client before confirmation
type ImportPlan struct {
	NewEntries []contact.Record  `json:"newEntries"`
	Duplicates []DuplicateMatch  `json:"duplicates"`
	Issues     []ValidationIssue `json:"issues"`
}

// Blocked reports whether any issue prevents the import
func (p ImportPlan) Blocked() bool {
	for _, i := range p.Issues {
		if i.Blocking() {
			return true
		}
	}
	return false
}

// ConfirmInput carries the client held plan back with a chosen strategy
type ConfirmInput struct {
	NewEntries []contact.Record `json:"newEntries"`
	Duplicates []DuplicateMatch `json:"duplicates"`
	Strategy   string           `json:"strategy" validate:"required,oneof=skip replace fillMissing"`
}

// ConfirmOutput summarizes what a confirmed import did
type ConfirmOutput struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
}

// ReplaceOutput summarizes a wholesale phonebook replacement
type ReplaceOutput struct {
	Imported int `json:"imported"`
}
