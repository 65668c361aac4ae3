package module

import (
	"github.com/jordiboehme/gigaset-central-phonebook/internal/services/phonebook/domain"
)

// Ports exposes the phonebook surfaces for cross-module wiring
type Ports struct {
	Phonebook domain.ServicePort
	Mutator   domain.MutatorPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
