// @title         Central Phonebook API
// @version       1.0.0
// @description   Contact management and Gigaset directory endpoints

package main

import (
	"context"

	"github.com/jordiboehme/gigaset-central-phonebook/internal/platform/config"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/platform/logger"
	phttp "github.com/jordiboehme/gigaset-central-phonebook/internal/platform/net/http"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/platform/store"

	"github.com/jordiboehme/gigaset-central-phonebook/internal/services/api"
)

func main() {
	// service-scoped config (PHONEBOOK_*)
	root := config.New()
	apiCfg := root.Prefix("PHONEBOOK_")

	// bring up logging early
	l := logger.Get()

	// open the document store
	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "phonebook-api",
			Dir:     apiCfg.MayString("DATA_DIR", "data"),
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads PHONEBOOK_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			AuthUser:       apiCfg.MayString("AUTH_USER", ""),
			AuthPass:       apiCfg.MayString("AUTH_PASS", ""),
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
