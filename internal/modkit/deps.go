// Package modkit provides module wiring and core deps
package modkit

import (
	"github.com/jordiboehme/gigaset-central-phonebook/internal/platform/config"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/platform/logger"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	DB  store.Documents
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check optional handles
func (d Deps) ZeroOK() bool { return true }
