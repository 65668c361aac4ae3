// Package module wires the device service into the API using modkit
package module

import (
	"net/http"

	modkit "github.com/jordiboehme/gigaset-central-phonebook/internal/modkit"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/modkit/httpkit"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/platform/crypt"
	str "github.com/jordiboehme/gigaset-central-phonebook/internal/platform/strings"

	devicehttp "github.com/jordiboehme/gigaset-central-phonebook/internal/services/device/http"
	devicerepo "github.com/jordiboehme/gigaset-central-phonebook/internal/services/device/repo"
	devicesvc "github.com/jordiboehme/gigaset-central-phonebook/internal/services/device/service"
	settingsdom "github.com/jordiboehme/gigaset-central-phonebook/internal/services/settings/domain"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc devicesvc.Service
}

// Wiring declares the injected ports this module requires
type Wiring struct {
	Settings settingsdom.ServicePort
}

// New constructs a device module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("device"),
		modkit.WithPrefix("/gigaset"),
	}, opts...)...)

	var injected Wiring
	if w, ok := b.Ports.(Wiring); ok {
		injected = w
	}
	if injected.Settings == nil {
		panic("device module requires the settings port (from services/settings)")
	}

	repo := devicerepo.NewFiles(deps.DB)
	svc := devicesvc.New(repo, devicesvc.NewClient(), crypt.New(deps.DB), injected.Settings)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Device: svc, Stamps: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		devicehttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
