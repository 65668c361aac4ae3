package domain

import "context"

// ServicePort defines the service contract for the device module
type ServicePort interface {
	Test(ctx context.Context, in TestInput) (Result, error)
	Refresh(ctx context.Context) (Result, error)
	Status(ctx context.Context) (Status, error)
}

// StampsPort lets other modules record phonebook mutations
// the device module owns the refresh reminder logic built on top of it
type StampsPort interface {
	MarkPhonebookModified(ctx context.Context) error
}
