// Package module wires the import pipeline into the API using modkit
package module

import (
	"net/http"

	modkit "github.com/jordiboehme/gigaset-central-phonebook/internal/modkit"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/modkit/httpkit"
	str "github.com/jordiboehme/gigaset-central-phonebook/internal/platform/strings"

	importerhttp "github.com/jordiboehme/gigaset-central-phonebook/internal/services/importer/http"
	importersvc "github.com/jordiboehme/gigaset-central-phonebook/internal/services/importer/service"
	phonebookdom "github.com/jordiboehme/gigaset-central-phonebook/internal/services/phonebook/domain"
)

// Wiring names the cross module ports the importer consumes
type Wiring struct {
	Phonebook phonebookdom.MutatorPort
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

	svc *importersvc.Svc
}

// New constructs an importer module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("importer"),
		modkit.WithPrefix("/import"),
	}, opts...)...)

	var injected Wiring
	if w, ok := b.Ports.(Wiring); ok {
		injected = w
	}
	if injected.Phonebook == nil {
		panic("importer module requires the phonebook mutator port (from services/phonebook)")
	}

	svc := importersvc.New(injected.Phonebook)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Importer: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		importerhttp.Register(r, m.svc)
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
