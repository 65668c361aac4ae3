// Package repo persists refresh timestamps as one JSON document
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jordiboehme/gigaset-central-phonebook/internal/platform/store"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/services/device/domain"
)

const timestampsDoc = "timestamps.json"

// Repo defines the repository contract for timestamps
type Repo interface {
	Load(ctx context.Context) (domain.Timestamps, error)
	MarkPhonebookModified(ctx context.Context) error
	MarkDeviceRefreshed(ctx context.Context) error
}

// Files implements Repo over the document store
type Files struct {
	docs store.Documents

	// now is a seam for tests
	now func() time.Time
}

// NewFiles creates a file backed timestamps repository
func NewFiles(docs store.Documents) *Files {
	if docs == nil {
		panic("device repo requires a non nil document store")
	}
	return &Files{docs: docs, now: time.Now}
}

// Load reads the timestamps, missing or unreadable documents read as empty
func (f *Files) Load(ctx context.Context) (domain.Timestamps, error) {
	var ts domain.Timestamps
	if err := f.docs.Load(ctx, timestampsDoc, &ts); err != nil && !errors.Is(err, store.ErrNotFound) {
		return domain.Timestamps{}, nil
	}
	return ts, nil
}

// MarkPhonebookModified records that the phonebook changed just now
func (f *Files) MarkPhonebookModified(ctx context.Context) error {
	var ts domain.Timestamps
	return f.docs.Update(ctx, timestampsDoc, &ts, func() error {
		ms := f.now().UnixMilli()
		ts.PhonebookModified = &ms
		return nil
	})
}

// MarkDeviceRefreshed records a successful device refresh just now
func (f *Files) MarkDeviceRefreshed(ctx context.Context) error {
	var ts domain.Timestamps
	return f.docs.Update(ctx, timestampsDoc, &ts, func() error {
		ms := f.now().UnixMilli()
		ts.DeviceRefreshed = &ms
		return nil
	})
}
