// Package api provides the HTTP API for the application
package api

import (
	"github.com/jordiboehme/gigaset-central-phonebook/internal/platform/config"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/platform/logger"
	phttp "github.com/jordiboehme/gigaset-central-phonebook/internal/platform/net/http"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/platform/net/middleware"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/platform/store"

	"github.com/jordiboehme/gigaset-central-phonebook/internal/modkit"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/modkit/httpkit"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/modkit/module"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/modkit/swaggerkit"

	devicemod "github.com/jordiboehme/gigaset-central-phonebook/internal/services/device/module"
	importermod "github.com/jordiboehme/gigaset-central-phonebook/internal/services/importer/module"
	metamod "github.com/jordiboehme/gigaset-central-phonebook/internal/services/meta/module"
	phonebookhttp "github.com/jordiboehme/gigaset-central-phonebook/internal/services/phonebook/http"
	phonebookmod "github.com/jordiboehme/gigaset-central-phonebook/internal/services/phonebook/module"
	settingsmod "github.com/jordiboehme/gigaset-central-phonebook/internal/services/settings/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	AuthUser       string
	AuthPass       string
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		DB:  opt.Store,
	}

	// Settings first, every other module hangs off its ports
	settings := settingsmod.New(deps)
	settingsPorts := module.MustPortsOf[settingsmod.Ports](settings)

	// Device consumes the settings port and owns the refresh timestamps
	device := devicemod.New(deps, modkit.WithPorts(devicemod.Wiring{
		Settings: settingsPorts.Settings,
	}))
	devicePorts := module.MustPortsOf[devicemod.Ports](device)

	// Phonebook renders with the number policy and stamps modifications
	phonebook := phonebookmod.New(deps, modkit.WithPorts(phonebookmod.Wiring{
		Settings: settingsPorts.Settings,
		Stamps:   devicePorts.Stamps,
	}))
	phonebookPorts := module.MustPortsOf[phonebookmod.Ports](phonebook)

	// Importer writes through the phonebook mutator
	importer := importermod.New(deps, modkit.WithPorts(importermod.Wiring{
		Phonebook: phonebookPorts.Mutator,
	}))

	mods := []module.Module{
		metamod.New(deps),
		settings,
		device,
		phonebook,
		importer,
	}

	// single admin credential pair, empty means the API runs open
	var auth middleware.AuthPort
	if opt.AuthUser != "" && opt.AuthPass != "" {
		auth = httpkit.NewBasicPort(opt.AuthUser, opt.AuthPass)
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		httpkit.Protected(api, auth, func(sec httpkit.Router) {
			for _, m := range mods {
				// register each module's ports under its own name (for cross-module lookups)
				module.Register(m.Name(), m.Ports())

				// mount module routes under its Prefix()
				m.MountRoutes(sec)
			}
		})
	})

	// base stations fetch the directory unauthenticated, outside the versioned API
	r.Get("/phonebook.xml", phonebookhttp.XMLHandler(phonebookPorts.Phonebook))
}
