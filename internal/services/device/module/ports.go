package module

import (
	"github.com/jordiboehme/gigaset-central-phonebook/internal/services/device/domain"
)

// Ports exposes the device service for cross-module wiring
type Ports struct {
	Device domain.ServicePort
	Stamps domain.StampsPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
