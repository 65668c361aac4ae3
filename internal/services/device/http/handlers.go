// Package http provides http transport for the device module
package http

import (
	stdhttp "net/http"

	"github.com/jordiboehme/gigaset-central-phonebook/internal/modkit/httpkit"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/services/device/domain"
	svc "github.com/jordiboehme/gigaset-central-phonebook/internal/services/device/service"
)

// Register mounts device endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.TestInput](r, "/test", h.test)
	httpkit.Post(r, "/refresh", h.refresh)
	httpkit.Get(r, "/status", h.status)
}

type handlers struct{ svc svc.Service }

// @Summary Test device credentials (login then logout)
// @Tags Device
// @Accept json
// @Produce json
// @Param payload body domain.TestInput true "Credentials"
// @Success 200 {object} domain.Result "ok"
// @Router /gigaset/test [post]
func (h *handlers) test(r *stdhttp.Request, in domain.TestInput) (any, error) {
	return h.svc.Test(r.Context(), in)
}

// @Summary Trigger a phonebook refresh with stored credentials
// @Tags Device
// @Produce json
// @Success 200 {object} domain.Result "ok"
// @Router /gigaset/refresh [post]
func (h *handlers) refresh(r *stdhttp.Request) (any, error) {
	return h.svc.Refresh(r.Context())
}

// @Summary Device configuration and refresh reminder status
// @Tags Device
// @Produce json
// @Success 200 {object} domain.Status "ok"
// @Router /gigaset/status [get]
func (h *handlers) status(r *stdhttp.Request) (any, error) {
	return h.svc.Status(r.Context())
}
