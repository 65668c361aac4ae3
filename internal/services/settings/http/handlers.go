// Package http provides http transport for settings
package http

import (
	stdhttp "net/http"

	"github.com/jordiboehme/gigaset-central-phonebook/internal/modkit/httpkit"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/services/settings/domain"
	svc "github.com/jordiboehme/gigaset-central-phonebook/internal/services/settings/service"
)

// Register mounts settings endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.get)
	httpkit.PutJSON[domain.UpdateInput](r, "/", h.update)
}

type handlers struct{ svc svc.Service }

// @Summary Current settings
// @Tags Settings
// @Produce json
// @Success 200 {object} domain.Settings "ok"
// @Router /settings [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context())
}

// @Summary Update settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body domain.UpdateInput true "Partial settings"
// @Success 200 {object} domain.Settings "ok"
// @Router /settings [put]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	return h.svc.Update(r.Context(), in)
}
