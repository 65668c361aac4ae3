// Package service implements the contact import pipeline
package service

import (
	"context"
	"encoding/json"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/jordiboehme/gigaset-central-phonebook/internal/core/contact"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/core/gigaset"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/core/phone"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/core/vcard"
	perrs "github.com/jordiboehme/gigaset-central-phonebook/internal/platform/errors"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/services/importer/domain"
	phonebookdom "github.com/jordiboehme/gigaset-central-phonebook/internal/services/phonebook/domain"
)

// Svc implements domain.ServicePort
type Svc struct {
	book phonebookdom.MutatorPort

	fold cases.Caser
}

// New builds the import service
func New(book phonebookdom.MutatorPort) *Svc {
	if book == nil {
		panic("import service requires the phonebook mutator port")
	}
	return &Svc{book: book, fold: cases.Fold()}
}

// Preview parses the payload and screens it against the stored book.
// Nothing is written, the plan is handed back for the client to confirm
func (s *Svc) Preview(ctx context.Context, format string, raw []byte) (domain.ImportPlan, error) {
	candidates, err := parse(format, raw)
	if err != nil {
		return domain.ImportPlan{}, err
	}
	if len(candidates) == 0 {
		return domain.ImportPlan{}, perrs.Parsef("no importable contacts found")
	}

	existing, err := s.book.List(ctx, "")
	if err != nil {
		return domain.ImportPlan{}, err
	}

	plan := s.detect(candidates, existing)
	plan.Issues = screen(candidates)
	return plan, nil
}

// Confirm applies a previewed plan with the chosen strategy. Duplicates are
// re-resolved against the live book first, entries deleted since the preview
// fall back to plain inserts
func (s *Svc) Confirm(ctx context.Context, in domain.ConfirmInput) (domain.ConfirmOutput, error) {
	existing, err := s.book.List(ctx, "")
	if err != nil {
		return domain.ConfirmOutput{}, err
	}
	live := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		live[e.ID] = struct{}{}
	}

	inserts := append([]contact.Record{}, in.NewEntries...)
	var updates []domain.DuplicateMatch
	skipped := 0
	for _, d := range in.Duplicates {
		if _, ok := live[d.Existing.ID]; !ok {
			inserts = append(inserts, d.Candidate)
			continue
		}
		switch in.Strategy {
		case domain.StrategySkip:
			skipped++
		case domain.StrategyReplace, domain.StrategyFillMissing:
			updates = append(updates, d)
		default:
			return domain.ConfirmOutput{}, perrs.InvalidArgf("unknown merge strategy %q", in.Strategy)
		}
	}

	if len(existing)+len(inserts) > domain.MaxEntries {
		return domain.ConfirmOutput{}, perrs.InvalidArgf(
			"import would exceed the %d entry limit", domain.MaxEntries)
	}

	out := domain.ConfirmOutput{Skipped: skipped}
	for _, d := range updates {
		rec := d.Candidate
		if in.Strategy == domain.StrategyFillMissing {
			rec = fillMissing(d.Existing.Record, d.Candidate)
			if rec == d.Existing.Record {
				out.Skipped++
				continue
			}
		}
		if _, err := s.book.Overwrite(ctx, d.Existing.ID, rec); err != nil {
			return domain.ConfirmOutput{}, err
		}
		out.Updated++
	}

	added, err := s.book.Append(ctx, inserts)
	if err != nil {
		return domain.ConfirmOutput{}, err
	}
	out.Inserted = len(added)
	return out, nil
}

// Replace swaps the whole book for the parsed payload
func (s *Svc) Replace(ctx context.Context, format string, raw []byte) (domain.ReplaceOutput, error) {
	candidates, err := parse(format, raw)
	if err != nil {
		return domain.ReplaceOutput{}, err
	}
	if len(candidates) == 0 {
		return domain.ReplaceOutput{}, perrs.Parsef("no importable contacts found")
	}
	if len(candidates) > domain.MaxEntries {
		return domain.ReplaceOutput{}, perrs.InvalidArgf(
			"import would exceed the %d entry limit", domain.MaxEntries)
	}
	out, err := s.book.ReplaceAll(ctx, candidates)
	if err != nil {
		return domain.ReplaceOutput{}, err
	}
	return domain.ReplaceOutput{Imported: len(out)}, nil
}

// parse dispatches on the declared payload format
func parse(format string, raw []byte) ([]contact.Record, error) {
	switch format {
	case domain.FormatVCard:
		return vcard.Parse(raw)
	case domain.FormatJSON:
		return parseJSON(raw)
	default:
		return nil, perrs.InvalidArgf("unsupported import format %q", format)
	}
}

// parseJSON accepts the export shape or a bare entry array
func parseJSON(raw []byte) ([]contact.Record, error) {
	var wrapped struct {
		Entries []contact.Record `json:"entries"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Entries != nil {
		return wrapped.Entries, nil
	}
	var bare []contact.Record
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, perrs.Parsef("payload is neither an export document nor an entry array")
	}
	return bare, nil
}

// detect splits candidates into fresh entries and duplicate pairs. A phone
// collision outranks a name collision, the first stored match wins either way
func (s *Svc) detect(candidates []contact.Record, existing []phonebookdom.Entry) domain.ImportPlan {
	plan := domain.ImportPlan{
		NewEntries: []contact.Record{},
		Duplicates: []domain.DuplicateMatch{},
	}
	for _, c := range candidates {
		if hit, matchType, ok := s.match(c, existing); ok {
			plan.Duplicates = append(plan.Duplicates, domain.DuplicateMatch{
				Candidate: c,
				Existing:  hit,
				MatchType: matchType,
			})
			continue
		}
		plan.NewEntries = append(plan.NewEntries, c)
	}
	return plan
}

func (s *Svc) match(c contact.Record, existing []phonebookdom.Entry) (phonebookdom.Entry, string, bool) {
	for _, e := range existing {
		if phonesCollide(c, e.Record) {
			return e, "phone", true
		}
	}
	for _, e := range existing {
		if s.namesCollide(c, e.Record) {
			return e, "name", true
		}
	}
	return phonebookdom.Entry{}, "", false
}

func phonesCollide(a, b contact.Record) bool {
	bn := make([]string, 0, len(contact.PhoneFields))
	for _, p := range b.Phones() {
		if n := phone.Normalize(p); n != "" {
			bn = append(bn, n)
		}
	}
	if len(bn) == 0 {
		return false
	}
	for _, p := range a.Phones() {
		n := phone.Normalize(p)
		if n == "" {
			continue
		}
		for _, m := range bn {
			if n == m {
				return true
			}
		}
	}
	return false
}

func (s *Svc) namesCollide(a, b contact.Record) bool {
	if !a.HasName() || !b.HasName() {
		return false
	}
	return s.fold.String(a.Surname) == s.fold.String(b.Surname) &&
		s.fold.String(a.Name) == s.fold.String(b.Name)
}

// screen produces the validation issues for a detected plan
func screen(candidates []contact.Record) []domain.ValidationIssue {
	issues := []domain.ValidationIssue{}
	for _, c := range candidates {
		if utf8.RuneCountInString(c.Surname) > gigaset.MaxFieldLength ||
			utf8.RuneCountInString(c.Name) > gigaset.MaxFieldLength {
			issues = append(issues, domain.ValidationIssue{
				Kind:     domain.IssueNameTooLong,
				Severity: domain.SeverityWarning,
				Subject:  displayName(c),
			})
		}
		if !c.HasPhone() {
			issues = append(issues, domain.ValidationIssue{
				Kind:     domain.IssueNoPhoneNumber,
				Severity: domain.SeverityWarning,
				Subject:  displayName(c),
			})
		}
	}
	if len(candidates) > domain.MaxEntries {
		issues = append(issues, domain.ValidationIssue{
			Kind:     domain.IssueTooManyEntries,
			Severity: domain.SeverityError,
		})
	}
	return issues
}

func displayName(c contact.Record) string {
	switch {
	case c.Surname != "" && c.Name != "":
		return c.Surname + ", " + c.Name
	case c.Surname != "":
		return c.Surname
	default:
		return c.Name
	}
}

// fillMissing keeps the stored name and every populated number, filling only
// empty phone slots from the candidate
func fillMissing(base, candidate contact.Record) contact.Record {
	out := base
	for i, p := range out.Phones() {
		if p == "" {
			out.SetPhone(i, candidate.Phones()[i])
		}
	}
	return out
}
