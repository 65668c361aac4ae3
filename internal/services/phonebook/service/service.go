// Package service implements the phonebook business logic
package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jordiboehme/gigaset-central-phonebook/internal/core/contact"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/core/gigaset"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/core/phone"
	perrs "github.com/jordiboehme/gigaset-central-phonebook/internal/platform/errors"
	devicedom "github.com/jordiboehme/gigaset-central-phonebook/internal/services/device/domain"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/services/phonebook/domain"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/services/phonebook/repo"
	settingsdom "github.com/jordiboehme/gigaset-central-phonebook/internal/services/settings/domain"
)

// Svc implements domain.ServicePort and domain.MutatorPort
type Svc struct {
	Repo repo.Repo

	settings settingsdom.ServicePort
	stamps   devicedom.StampsPort

	// rendered directory cache, invalidated on every mutation
	mu    sync.Mutex
	cache *cached
	now   func() time.Time
}

type cached struct {
	policy    phone.Policy
	directory domain.Directory
}

// New builds the phonebook service
func New(rp repo.Repo, settings settingsdom.ServicePort, stamps devicedom.StampsPort) *Svc {
	if rp == nil {
		panic("phonebook service requires a repo")
	}
	if settings == nil {
		panic("phonebook service requires the settings port")
	}
	if stamps == nil {
		panic("phonebook service requires the timestamps port")
	}
	return &Svc{Repo: rp, settings: settings, stamps: stamps, now: time.Now}
}

// List returns entries, optionally filtered by a search term. Names match
// case insensitively, phone numbers by plain substring
func (s *Svc) List(ctx context.Context, search string) ([]domain.Entry, error) {
	entries, err := s.Repo.List(ctx)
	if err != nil {
		return nil, perrs.Storagef("list phonebook: %v", err)
	}
	if entries == nil {
		entries = []domain.Entry{}
	}
	search = strings.TrimSpace(search)
	if search == "" {
		return entries, nil
	}

	needle := strings.ToLower(search)
	out := []domain.Entry{}
	for _, e := range entries {
		if matches(e.Record, needle, search) {
			out = append(out, e)
		}
	}
	return out, nil
}

func matches(rec contact.Record, lowered, raw string) bool {
	if strings.Contains(strings.ToLower(rec.Surname), lowered) ||
		strings.Contains(strings.ToLower(rec.Name), lowered) {
		return true
	}
	for _, p := range rec.Phones() {
		if p != "" && strings.Contains(p, raw) {
			return true
		}
	}
	return false
}

// Create stores a new contact
func (s *Svc) Create(ctx context.Context, in domain.CreateInput) (domain.Entry, error) {
	rec := in.Record()
	if !rec.HasName() && !rec.HasPrimaryPhone() {
		return domain.Entry{}, perrs.InvalidArgf("contact needs a name or a primary phone number")
	}
	added, err := s.Repo.Insert(ctx, []contact.Record{rec})
	if err != nil {
		return domain.Entry{}, perrs.Storagef("create contact: %v", err)
	}
	s.bump(ctx)
	return added[0], nil
}

// Update merges a partial change onto an existing contact
func (s *Svc) Update(ctx context.Context, id string, in domain.UpdateInput) (domain.Entry, error) {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrEntryNotFound) {
			return domain.Entry{}, perrs.NotFoundf("contact %s not found", id)
		}
		return domain.Entry{}, perrs.Storagef("load contact: %v", err)
	}
	rec := existing.Record
	in.ApplyTo(&rec)
	if !rec.HasName() && !rec.HasPrimaryPhone() {
		return domain.Entry{}, perrs.InvalidArgf("contact needs a name or a primary phone number")
	}
	updated, err := s.Repo.Put(ctx, id, rec)
	if err != nil {
		return domain.Entry{}, perrs.Storagef("update contact: %v", err)
	}
	s.bump(ctx)
	return updated, nil
}

// Delete removes one contact
func (s *Svc) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrEntryNotFound) {
			return perrs.NotFoundf("contact %s not found", id)
		}
		return perrs.Storagef("delete contact: %v", err)
	}
	s.bump(ctx)
	return nil
}

// DeleteMany removes a batch of contacts, unknown ids are skipped
func (s *Svc) DeleteMany(ctx context.Context, in domain.DeleteManyInput) (domain.DeleteManyResult, error) {
	n, err := s.Repo.DeleteMany(ctx, in.IDs)
	if err != nil {
		return domain.DeleteManyResult{}, perrs.Storagef("delete contacts: %v", err)
	}
	if n > 0 {
		s.bump(ctx)
	}
	return domain.DeleteManyResult{Deleted: n}, nil
}

// Export dumps the full phonebook in its portable JSON shape
func (s *Svc) Export(ctx context.Context) (domain.Export, error) {
	entries, err := s.Repo.List(ctx)
	if err != nil {
		return domain.Export{}, perrs.Storagef("export phonebook: %v", err)
	}
	if entries == nil {
		entries = []domain.Entry{}
	}
	return domain.Export{Entries: entries}, nil
}

// Directory renders the device XML, applying the active number policy.
// The rendered bytes are cached until the book or the policy changes
func (s *Svc) Directory(ctx context.Context) (domain.Directory, error) {
	policy, err := s.settings.Policy(ctx)
	if err != nil {
		return domain.Directory{}, err
	}

	s.mu.Lock()
	if s.cache != nil && s.cache.policy == policy {
		d := s.cache.directory
		s.mu.Unlock()
		return d, nil
	}
	s.mu.Unlock()

	entries, err := s.Repo.List(ctx)
	if err != nil {
		return domain.Directory{}, perrs.Storagef("render directory: %v", err)
	}

	recs := make([]contact.Record, 0, len(entries))
	for _, e := range entries {
		rec := e.Record
		if policy.Enabled() {
			rec = phone.ApplyRecord(rec, policy)
		}
		recs = append(recs, rec)
	}

	xml := []byte(gigaset.Render(recs))
	sum := md5.Sum(xml)
	d := domain.Directory{
		XML:          xml,
		ETag:         `"` + hex.EncodeToString(sum[:]) + `"`,
		LastModified: s.now().UTC().Format(http.TimeFormat),
	}

	s.mu.Lock()
	s.cache = &cached{policy: policy, directory: d}
	s.mu.Unlock()
	return d, nil
}

// CountUnconverted reports how many entries the active policy would rewrite
func (s *Svc) CountUnconverted(ctx context.Context) (domain.UnconvertedCount, error) {
	policy, err := s.settings.Policy(ctx)
	if err != nil {
		return domain.UnconvertedCount{}, err
	}
	entries, err := s.Repo.List(ctx)
	if err != nil {
		return domain.UnconvertedCount{}, perrs.Storagef("scan phonebook: %v", err)
	}
	count := 0
	for _, e := range entries {
		if phone.RecordNeedsTransformation(e.Record, policy) {
			count++
		}
	}
	return domain.UnconvertedCount{Count: count}, nil
}

// ConvertAll rewrites every stored number per the active policy
func (s *Svc) ConvertAll(ctx context.Context) (domain.ConvertResult, error) {
	policy, err := s.settings.Policy(ctx)
	if err != nil {
		return domain.ConvertResult{}, err
	}
	entries, err := s.Repo.List(ctx)
	if err != nil {
		return domain.ConvertResult{}, perrs.Storagef("scan phonebook: %v", err)
	}

	converted := 0
	for _, e := range entries {
		if !phone.RecordNeedsTransformation(e.Record, policy) {
			continue
		}
		rec := phone.ApplyRecord(e.Record, policy)
		if _, err := s.Repo.Put(ctx, e.ID, rec); err != nil {
			return domain.ConvertResult{}, perrs.Storagef("convert contact %s: %v", e.ID, err)
		}
		converted++
	}
	if converted > 0 {
		s.bump(ctx)
	}
	return domain.ConvertResult{Converted: converted}, nil
}

// Append adds already validated records, used by the importer
func (s *Svc) Append(ctx context.Context, recs []contact.Record) ([]domain.Entry, error) {
	if len(recs) == 0 {
		return []domain.Entry{}, nil
	}
	added, err := s.Repo.Insert(ctx, recs)
	if err != nil {
		return nil, perrs.Storagef("append contacts: %v", err)
	}
	s.bump(ctx)
	return added, nil
}

// Overwrite replaces the record behind an id, used by the importer
func (s *Svc) Overwrite(ctx context.Context, id string, rec contact.Record) (domain.Entry, error) {
	updated, err := s.Repo.Put(ctx, id, rec)
	if err != nil {
		if errors.Is(err, repo.ErrEntryNotFound) {
			return domain.Entry{}, perrs.NotFoundf("contact %s not found", id)
		}
		return domain.Entry{}, perrs.Storagef("overwrite contact: %v", err)
	}
	s.bump(ctx)
	return updated, nil
}

// ReplaceAll swaps the whole book for the given records
func (s *Svc) ReplaceAll(ctx context.Context, recs []contact.Record) ([]domain.Entry, error) {
	out, err := s.Repo.ReplaceAll(ctx, recs)
	if err != nil {
		return nil, perrs.Storagef("replace phonebook: %v", err)
	}
	if out == nil {
		out = []domain.Entry{}
	}
	s.bump(ctx)
	return out, nil
}

// bump invalidates the directory cache and records the modification.
// A failed stamp never fails the mutation that triggered it
func (s *Svc) bump(ctx context.Context) {
	s.mu.Lock()
	s.cache = nil
	s.mu.Unlock()
	_ = s.stamps.MarkPhonebookModified(ctx)
}
