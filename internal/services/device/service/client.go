package service

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	perrs "github.com/jordiboehme/gigaset-central-phonebook/internal/platform/errors"
)

// apiTimeout bounds every call to the base station
const apiTimeout = 10 * time.Second

// Client talks to the base station's admin API
// the device ships with a self-signed certificate, so verification is off
type Client struct {
	http *http.Client
}

// NewClient constructs a device client
func NewClient() *Client {
	return &Client{
		http: &http.Client{
			Timeout: apiTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
}

// NormalizeURL defaults the scheme to https and trims trailing slashes
func NormalizeURL(deviceURL string) string {
	u := strings.TrimSpace(deviceURL)
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}
	return strings.TrimRight(u, "/")
}

type apiResponse struct {
	ok     bool
	status int
	body   map[string]any
}

func (c *Client) do(ctx context.Context, method, url string, body any, token string) (apiResponse, error) {
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return apiResponse{}, perrs.Internalf("device: encode request: %v", err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return apiResponse{}, perrs.InvalidArgf("device: bad request url %q: %v", url, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return apiResponse{}, perrs.Unavailablef("device: %s", friendlyNetError(err))
	}
	defer res.Body.Close()

	out := apiResponse{ok: res.StatusCode >= 200 && res.StatusCode < 300, status: res.StatusCode}
	// tolerate non-JSON bodies, the device is not always tidy
	_ = json.NewDecoder(res.Body).Decode(&out.body)
	return out, nil
}

func friendlyNetError(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "connection refused, check device URL"
	case strings.Contains(msg, "no such host"):
		return "device not found, check hostname"
	case strings.Contains(msg, "context deadline exceeded"), strings.Contains(msg, "Client.Timeout"):
		return "request timeout, device not responding"
	default:
		return "network error: " + msg
	}
}

func (r apiResponse) message(fallback string) string {
	if m, ok := r.body["message"].(string); ok && m != "" {
		return m
	}
	return fallback
}

// Login authenticates against the device and returns the session token
func (c *Client) Login(ctx context.Context, deviceURL, username, password string) (string, error) {
	res, err := c.do(ctx, http.MethodPost, deviceURL+"/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	if err != nil {
		return "", err
	}
	if !res.ok {
		switch res.status {
		case http.StatusUnauthorized:
			return "", perrs.Unauthorizedf("invalid username or password")
		case http.StatusConflict:
			return "", perrs.Conflictf("another admin session is active on the device")
		default:
			return "", perrs.Unavailablef("login failed: %s", res.message(http.StatusText(res.status)))
		}
	}
	token, _ := res.body["token"].(string)
	if token == "" {
		return "", perrs.Unavailablef("login succeeded but no token received")
	}
	return token, nil
}

// Logout ends a device session, errors are ignored since sessions expire
func (c *Client) Logout(ctx context.Context, deviceURL, token string) {
	_, _ = c.do(ctx, http.MethodPost, deviceURL+"/api/auth/logout", nil, token)
}

// RefreshPhonebook asks the device to re-pull the central phonebook
func (c *Client) RefreshPhonebook(ctx context.Context, deviceURL, token string) error {
	res, err := c.do(ctx, http.MethodPost,
		deviceURL+"/api/system/central-phonebook?action=refreshPhonebook", nil, token)
	if err != nil {
		return err
	}
	if !res.ok {
		return perrs.Unavailablef("refresh failed: %s", res.message(http.StatusText(res.status)))
	}
	return nil
}
