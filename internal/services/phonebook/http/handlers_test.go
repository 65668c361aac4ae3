package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jordiboehme/gigaset-central-phonebook/internal/services/phonebook/domain"
)

// directoryStub serves a fixed rendered directory
type directoryStub struct {
	domain.ServicePort
	d domain.Directory
}

func (s directoryStub) Directory(context.Context) (domain.Directory, error) {
	return s.d, nil
}

func TestXMLHandler_ServesDirectory(t *testing.T) {
	t.Parallel()

	d := domain.Directory{
		XML:          []byte(`<?xml version="1.0" encoding="utf-8"?>` + "\n<!DOCTYPE LocalDirectory>\n<list>\n</list>"),
		ETag:         `"abc123"`,
		LastModified: "Fri, 29 Aug 2026 12:00:00 GMT",
	}
	h := XMLHandler(directoryStub{d: d})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/phonebook.xml", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/xml") {
		t.Fatalf("content type %q", ct)
	}
	if rec.Header().Get("ETag") != d.ETag {
		t.Fatalf("etag %q", rec.Header().Get("ETag"))
	}
	if rec.Header().Get("Last-Modified") != d.LastModified {
		t.Fatalf("last modified %q", rec.Header().Get("Last-Modified"))
	}
	if !strings.Contains(rec.Body.String(), "<!DOCTYPE LocalDirectory>") {
		t.Fatalf("body %q", rec.Body.String())
	}
}

func TestXMLHandler_NotModified(t *testing.T) {
	t.Parallel()

	d := domain.Directory{XML: []byte("<list></list>"), ETag: `"abc123"`}
	h := XMLHandler(directoryStub{d: d})

	req := httptest.NewRequest(http.MethodGet, "/phonebook.xml", nil)
	req.Header.Set("If-None-Match", `"abc123"`)
	rec := httptest.NewRecorder()
	h(rec, req)

	if rec.Code != http.StatusNotModified {
		t.Fatalf("status %d, want 304", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("304 must carry no body, got %q", rec.Body.String())
	}

	// a stale validator gets the full document
	req = httptest.NewRequest(http.MethodGet, "/phonebook.xml", nil)
	req.Header.Set("If-None-Match", `"stale"`)
	rec = httptest.NewRecorder()
	h(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
}
