package module

import (
	"github.com/jordiboehme/gigaset-central-phonebook/internal/services/settings/domain"
)

// Ports exposes the settings service for cross-module wiring
type Ports struct {
	Settings domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
