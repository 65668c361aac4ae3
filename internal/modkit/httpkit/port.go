// Package httpkit provides tiny HTTP helpers and adapters
package httpkit

import (
	"crypto/subtle"
	"net/http"

	perrs "github.com/jordiboehme/gigaset-central-phonebook/internal/platform/errors"
)

// BasicPort implements middleware.AuthPort by checking HTTP Basic credentials
// against a single configured user/pass pair
type BasicPort struct {
	user string
	pass string
}

// NewBasicPort builds a BasicPort from the configured credentials
// an empty user or pass disables the check; callers should pass nil to Auth instead
func NewBasicPort(user, pass string) *BasicPort {
	return &BasicPort{user: user, pass: pass}
}

// Parse extracts and verifies Basic credentials from the Authorization header
// returns unauthorized when the header is missing, malformed, or the pair mismatches
func (p *BasicPort) Parse(r *http.Request) (string, error) {
	user, pass, ok := r.BasicAuth()
	if !ok {
		return "", perrs.Unauthorizedf("missing credentials")
	}
	// constant time on both fields so a mismatch does not leak which one failed
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(p.user)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(p.pass)) == 1
	if !userOK || !passOK {
		return "", perrs.Unauthorizedf("invalid credentials")
	}
	return user, nil
}
