package domain

import (
	"context"

	"github.com/jordiboehme/gigaset-central-phonebook/internal/core/contact"
)

// ServicePort is the phonebook surface other modules and handlers consume
type ServicePort interface {
	List(ctx context.Context, search string) ([]Entry, error)
	Create(ctx context.Context, in CreateInput) (Entry, error)
	Update(ctx context.Context, id string, in UpdateInput) (Entry, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, in DeleteManyInput) (DeleteManyResult, error)
	Export(ctx context.Context) (Export, error)
	Directory(ctx context.Context) (Directory, error)
	CountUnconverted(ctx context.Context) (UnconvertedCount, error)
	ConvertAll(ctx context.Context) (ConvertResult, error)
}

// MutatorPort is the narrow write surface the importer consumes
type MutatorPort interface {
	List(ctx context.Context, search string) ([]Entry, error)
	Append(ctx context.Context, recs []contact.Record) ([]Entry, error)
	Overwrite(ctx context.Context, id string, rec contact.Record) (Entry, error)
	ReplaceAll(ctx context.Context, recs []contact.Record) ([]Entry, error)
}
