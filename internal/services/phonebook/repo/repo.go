// Package repo persists the phonebook as one JSON document
package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jordiboehme/gigaset-central-phonebook/internal/core/contact"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/platform/store"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/services/phonebook/domain"
)

const phonebookDoc = "phonebook.json"

// ErrEntryNotFound is returned when an id does not exist in the book
var ErrEntryNotFound = errors.New("phonebook entry not found")

type book struct {
	Entries []domain.Entry `json:"entries"`
}

// Repo defines the repository contract for phonebook entries
type Repo interface {
	List(ctx context.Context) ([]domain.Entry, error)
	Get(ctx context.Context, id string) (domain.Entry, error)
	Insert(ctx context.Context, recs []contact.Record) ([]domain.Entry, error)
	Put(ctx context.Context, id string, rec contact.Record) (domain.Entry, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int, error)
	ReplaceAll(ctx context.Context, recs []contact.Record) ([]domain.Entry, error)
}

// Files implements Repo over the document store
type Files struct {
	docs store.Documents

	// newID is a seam for tests
	newID func() string
}

// NewFiles creates a file backed phonebook repository
func NewFiles(docs store.Documents) *Files {
	if docs == nil {
		panic("phonebook repo requires a non nil document store")
	}
	return &Files{docs: docs, newID: uuid.NewString}
}

func (f *Files) load(ctx context.Context) (book, error) {
	var b book
	if err := f.docs.Load(ctx, phonebookDoc, &b); err != nil && !errors.Is(err, store.ErrNotFound) {
		return book{}, err
	}
	return b, nil
}

// List returns all entries in stored order
func (f *Files) List(ctx context.Context) ([]domain.Entry, error) {
	b, err := f.load(ctx)
	if err != nil {
		return nil, err
	}
	return b.Entries, nil
}

// Get returns one entry by id
func (f *Files) Get(ctx context.Context, id string) (domain.Entry, error) {
	b, err := f.load(ctx)
	if err != nil {
		return domain.Entry{}, err
	}
	for _, e := range b.Entries {
		if e.ID == id {
			return e, nil
		}
	}
	return domain.Entry{}, ErrEntryNotFound
}

// Insert appends records with freshly minted ids
func (f *Files) Insert(ctx context.Context, recs []contact.Record) ([]domain.Entry, error) {
	var b book
	var added []domain.Entry
	err := f.docs.Update(ctx, phonebookDoc, &b, func() error {
		added = added[:0]
		for _, rec := range recs {
			e := domain.Entry{ID: f.newID(), Record: rec}
			b.Entries = append(b.Entries, e)
			added = append(added, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// Put replaces the record behind an existing id
func (f *Files) Put(ctx context.Context, id string, rec contact.Record) (domain.Entry, error) {
	var b book
	var out domain.Entry
	err := f.docs.Update(ctx, phonebookDoc, &b, func() error {
		for i := range b.Entries {
			if b.Entries[i].ID == id {
				b.Entries[i].Record = rec
				out = b.Entries[i]
				return nil
			}
		}
		return ErrEntryNotFound
	})
	if err != nil {
		return domain.Entry{}, err
	}
	return out, nil
}

// Delete removes one entry by id
func (f *Files) Delete(ctx context.Context, id string) error {
	var b book
	return f.docs.Update(ctx, phonebookDoc, &b, func() error {
		for i := range b.Entries {
			if b.Entries[i].ID == id {
				b.Entries = append(b.Entries[:i], b.Entries[i+1:]...)
				return nil
			}
		}
		return ErrEntryNotFound
	})
}

// DeleteMany removes every listed id and reports how many existed
func (f *Files) DeleteMany(ctx context.Context, ids []string) (int, error) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	var b book
	removed := 0
	err := f.docs.Update(ctx, phonebookDoc, &b, func() error {
		removed = 0
		kept := b.Entries[:0]
		for _, e := range b.Entries {
			if _, hit := drop[e.ID]; hit {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		b.Entries = kept
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// ReplaceAll swaps the whole book for the given records
func (f *Files) ReplaceAll(ctx context.Context, recs []contact.Record) ([]domain.Entry, error) {
	var b book
	var out []domain.Entry
	err := f.docs.Update(ctx, phonebookDoc, &b, func() error {
		out = out[:0]
		for _, rec := range recs {
			out = append(out, domain.Entry{ID: f.newID(), Record: rec})
		}
		b.Entries = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
