// Package http provides http transport for the phonebook
package http

import (
	"encoding/json"
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jordiboehme/gigaset-central-phonebook/internal/modkit/httpkit"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/services/phonebook/domain"
)

// Register mounts phonebook endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.list)
	httpkit.PostJSON[domain.CreateInput](r, "/", h.create)
	httpkit.DeleteJSON[domain.DeleteManyInput](r, "/", h.deleteMany)
	httpkit.PutJSON[domain.UpdateInput](r, "/{id}", h.update)
	httpkit.Delete(r, "/{id}", h.delete)
	r.Get("/export", h.export)
	httpkit.Get(r, "/unconverted/count", h.countUnconverted)
	httpkit.Post(r, "/unconverted/convert", h.convertAll)
}

type handlers struct{ svc domain.ServicePort }

// @Summary List contacts
// @Tags Contacts
// @Produce json
// @Param search query string false "Name or number fragment"
// @Success 200 {array} domain.Entry "ok"
// @Router /contacts [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context(), r.URL.Query().Get("search"))
}

// @Summary Create a contact
// @Tags Contacts
// @Accept json
// @Produce json
// @Param payload body domain.CreateInput true "New contact"
// @Success 200 {object} domain.Entry "ok"
// @Router /contacts [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	return h.svc.Create(r.Context(), in)
}

// @Summary Update a contact
// @Tags Contacts
// @Accept json
// @Produce json
// @Param id path string true "Contact id"
// @Param payload body domain.UpdateInput true "Partial contact"
// @Success 200 {object} domain.Entry "ok"
// @Router /contacts/{id} [put]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	return h.svc.Update(r.Context(), chi.URLParam(r, "id"), in)
}

// @Summary Delete a contact
// @Tags Contacts
// @Produce json
// @Param id path string true "Contact id"
// @Success 200 {object} map[string]bool "ok"
// @Router /contacts/{id} [delete]
func (h *handlers) delete(r *stdhttp.Request) (any, error) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		return nil, err
	}
	return map[string]bool{"deleted": true}, nil
}

// @Summary Delete several contacts
// @Tags Contacts
// @Accept json
// @Produce json
// @Param payload body domain.DeleteManyInput true "Ids to remove"
// @Success 200 {object} domain.DeleteManyResult "ok"
// @Router /contacts [delete]
func (h *handlers) deleteMany(r *stdhttp.Request, in domain.DeleteManyInput) (any, error) {
	return h.svc.DeleteMany(r.Context(), in)
}

// @Summary Export the phonebook as a download
// @Tags Contacts
// @Produce json
// @Success 200 {object} domain.Export "ok"
// @Router /contacts/export [get]
func (h *handlers) export(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	out, err := h.svc.Export(r.Context())
	if err != nil {
		httpkit.RespondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="phonebook-export.json"`)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}

// @Summary Count numbers the format policy would rewrite
// @Tags Contacts
// @Produce json
// @Success 200 {object} domain.UnconvertedCount "ok"
// @Router /contacts/unconverted/count [get]
func (h *handlers) countUnconverted(r *stdhttp.Request) (any, error) {
	return h.svc.CountUnconverted(r.Context())
}

// @Summary Rewrite all numbers per the format policy
// @Tags Contacts
// @Produce json
// @Success 200 {object} domain.ConvertResult "ok"
// @Router /contacts/unconverted/convert [post]
func (h *handlers) convertAll(r *stdhttp.Request) (any, error) {
	return h.svc.ConvertAll(r.Context())
}

// XMLHandler serves the device directory. It lives outside the
// authenticated API surface so base stations can fetch it directly
func XMLHandler(s domain.ServicePort) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		d, err := s.Directory(r.Context())
		if err != nil {
			httpkit.RespondError(w, r, err)
			return
		}
		if match := r.Header.Get("If-None-Match"); match != "" && match == d.ETag {
			w.WriteHeader(stdhttp.StatusNotModified)
			return
		}
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		w.Header().Set("ETag", d.ETag)
		w.Header().Set("Last-Modified", d.LastModified)
		_, _ = w.Write(d.XML)
	}
}
