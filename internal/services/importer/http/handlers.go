// Package http provides http transport for the import pipeline
package http

import (
	"io"
	stdhttp "net/http"
	"path"
	"strings"

	"github.com/jordiboehme/gigaset-central-phonebook/internal/modkit/httpkit"
	perrs "github.com/jordiboehme/gigaset-central-phonebook/internal/platform/errors"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/services/importer/domain"
)

const maxUploadBytes = 10 << 20

// Register mounts import endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.Post(r, "/preview", h.preview)
	httpkit.PostJSON[domain.ConfirmInput](r, "/confirm", h.confirm)
	httpkit.Post(r, "/replace", h.replace)
}

type handlers struct{ svc domain.ServicePort }

// @Summary Preview an import
// @Tags Import
// @Accept mpfd
// @Produce json
// @Param format query string false "vcard or json"
// @Param file formData file false "Contact file"
// @Success 200 {object} domain.ImportPlan "ok"
// @Router /import/preview [post]
func (h *handlers) preview(r *stdhttp.Request) (any, error) {
	format, raw, err := payload(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Preview(r.Context(), format, raw)
}

// @Summary Apply a previewed import
// @Tags Import
// @Accept json
// @Produce json
// @Param payload body domain.ConfirmInput true "Plan plus strategy"
// @Success 200 {object} domain.ConfirmOutput "ok"
// @Router /import/confirm [post]
func (h *handlers) confirm(r *stdhttp.Request, in domain.ConfirmInput) (any, error) {
	return h.svc.Confirm(r.Context(), in)
}

// @Summary Replace the whole phonebook from a file
// @Tags Import
// @Accept mpfd
// @Produce json
// @Param format query string false "vcard or json"
// @Param file formData file false "Contact file"
// @Success 200 {object} domain.ReplaceOutput "ok"
// @Router /import/replace [post]
func (h *handlers) replace(r *stdhttp.Request) (any, error) {
	format, raw, err := payload(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Replace(r.Context(), format, raw)
}

// payload extracts the uploaded contact data. Multipart uploads carry the
// file under "file", anything else is read as the raw body. The format
// comes from the query or form, falling back to the filename extension
func payload(r *stdhttp.Request) (string, []byte, error) {
	format := r.URL.Query().Get("format")

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return "", nil, perrs.InvalidArgf("invalid multipart payload: %v", err)
		}
		if format == "" {
			format = r.FormValue("format")
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return "", nil, perrs.InvalidArgf("missing file field")
		}
		defer func() { _ = file.Close() }()
		raw, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			return "", nil, perrs.InvalidArgf("read upload: %v", err)
		}
		if format == "" {
			format = formatFromName(header.Filename)
		}
		return format, raw, nil
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		return "", nil, perrs.InvalidArgf("read payload: %v", err)
	}
	if format == "" {
		return "", nil, perrs.InvalidArgf("format query parameter required")
	}
	return format, raw, nil
}

func formatFromName(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".vcf", ".vcard":
		return domain.FormatVCard
	case ".json":
		return domain.FormatJSON
	default:
		return ""
	}
}
