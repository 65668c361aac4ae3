package module

import (
	"github.com/jordiboehme/gigaset-central-phonebook/internal/services/importer/domain"
)

// Ports exposes the import service for cross-module wiring
type Ports struct {
	Importer domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
