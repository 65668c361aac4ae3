// Package repo persists settings as one JSON document
package repo

import (
	"context"
	"errors"

	"github.com/jordiboehme/gigaset-central-phonebook/internal/platform/store"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/services/settings/domain"
)

const settingsDoc = "settings.json"

// Repo defines the repository contract for settings
type Repo interface {
	Load(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, s domain.Settings) error
}

// Files implements Repo over the document store
type Files struct{ docs store.Documents }

// NewFiles creates a file backed settings repository
func NewFiles(docs store.Documents) *Files {
	if docs == nil {
		panic("settings repo requires a non nil document store")
	}
	return &Files{docs: docs}
}

// Load reads settings, returning defaults when the document is missing or
// unreadable so a corrupt file never takes the service down
func (f *Files) Load(ctx context.Context) (domain.Settings, error) {
	var s domain.Settings
	if err := f.docs.Load(ctx, settingsDoc, &s); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Defaults(), nil
		}
		return domain.Defaults(), nil
	}
	return s, nil
}

// Save persists settings atomically
func (f *Files) Save(ctx context.Context, s domain.Settings) error {
	return f.docs.Save(ctx, settingsDoc, s)
}
