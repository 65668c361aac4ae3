package domain

import "context"

// ServicePort is the import surface the transport consumes
type ServicePort interface {
	Preview(ctx context.Context, format string, raw []byte) (ImportPlan, error)
	Confirm(ctx context.Context, in ConfirmInput) (ConfirmOutput, error)
	Replace(ctx context.Context, format string, raw []byte) (ReplaceOutput, error)
}
