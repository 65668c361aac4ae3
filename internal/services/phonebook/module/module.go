// Package module wires the phonebook into the API using modkit
package module

import (
	"net/http"

	modkit "github.com/jordiboehme/gigaset-central-phonebook/internal/modkit"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/modkit/httpkit"
	str "github.com/jordiboehme/gigaset-central-phonebook/internal/platform/strings"

	devicedom "github.com/jordiboehme/gigaset-central-phonebook/internal/services/device/domain"
	phonebookhttp "github.com/jordiboehme/gigaset-central-phonebook/internal/services/phonebook/http"
	phonebookrepo "github.com/jordiboehme/gigaset-central-phonebook/internal/services/phonebook/repo"
	phonebooksvc "github.com/jordiboehme/gigaset-central-phonebook/internal/services/phonebook/service"
	settingsdom "github.com/jordiboehme/gigaset-central-phonebook/internal/services/settings/domain"
)

// Wiring names the cross module ports the phonebook consumes
type Wiring struct {
	Settings settingsdom.ServicePort
	Stamps   devicedom.StampsPort
}

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

	svc *phonebooksvc.Svc
}

// New constructs a phonebook module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("phonebook"),
		modkit.WithPrefix("/contacts"),
	}, opts...)...)

	var injected Wiring
	if w, ok := b.Ports.(Wiring); ok {
		injected = w
	}
	if injected.Settings == nil {
		panic("phonebook module requires the settings port (from services/settings)")
	}
	if injected.Stamps == nil {
		panic("phonebook module requires the timestamps port (from services/device)")
	}

	repo := phonebookrepo.NewFiles(deps.DB)
	svc := phonebooksvc.New(repo, injected.Settings, injected.Stamps)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Phonebook: svc, Mutator: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		phonebookhttp.Register(r, m.svc)
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
