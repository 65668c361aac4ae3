package domain

import (
	"context"

	"github.com/jordiboehme/gigaset-central-phonebook/internal/core/phone"
)

// ServicePort defines the service contract for settings
type ServicePort interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, in UpdateInput) (Settings, error)

	// Policy returns the current phone formatting policy
	Policy(ctx context.Context) (phone.Policy, error)

	// Device returns the device block with the password still encrypted,
	// plus whether a device is fully configured
	Device(ctx context.Context) (DeviceConfig, bool, error)
}
