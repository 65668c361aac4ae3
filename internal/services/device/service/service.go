// Package service contains device workflows: connection tests, refresh
// triggering, and the refresh reminder state
package service

import (
	"context"
	"time"

	"github.com/jordiboehme/gigaset-central-phonebook/internal/platform/crypt"
	perrs "github.com/jordiboehme/gigaset-central-phonebook/internal/platform/errors"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/services/device/domain"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/services/device/repo"
	settingsdom "github.com/jordiboehme/gigaset-central-phonebook/internal/services/settings/domain"
)

// reminderWindow is how long a phonebook change keeps the refresh banner up
const reminderWindow = 24 * time.Hour

// Service defines the service contract for the device module
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo     repo.Repo
	client   *Client
	keeper   *crypt.Keeper
	settings settingsdom.ServicePort

	// now is a seam for tests
	now func() time.Time
}

// New creates a new device service
func New(r repo.Repo, client *Client, keeper *crypt.Keeper, settings settingsdom.ServicePort) *Svc {
	if r == nil {
		panic("device.Service requires a non nil Repo")
	}
	if client == nil {
		panic("device.Service requires a non nil Client")
	}
	if keeper == nil {
		panic("device.Service requires a non nil crypt.Keeper")
	}
	if settings == nil {
		panic("device.Service requires the settings port")
	}
	return &Svc{Repo: r, client: client, keeper: keeper, settings: settings, now: time.Now}
}

// Test logs in with the supplied credentials and logs straight out
func (s *Svc) Test(ctx context.Context, in domain.TestInput) (domain.Result, error) {
	url := NormalizeURL(in.DeviceURL)
	token, err := s.client.Login(ctx, url, in.Username, in.Password)
	if err != nil {
		return domain.Result{Success: false, Message: perrs.WireFrom(err).Message}, nil
	}
	s.client.Logout(ctx, url, token)
	return domain.Result{Success: true, Message: "connection successful"}, nil
}

// Refresh triggers a full login, refresh, logout cycle with the stored
// credentials and records the refresh time on success
func (s *Svc) Refresh(ctx context.Context) (domain.Result, error) {
	dev, configured, err := s.settings.Device(ctx)
	if err != nil {
		return domain.Result{}, err
	}
	if !configured {
		return domain.Result{}, perrs.InvalidArgf("device not configured, set it up in settings first")
	}

	password := s.keeper.Decrypt(dev.Password)
	if password == "" {
		return domain.Result{}, perrs.InvalidArgf("stored password cannot be decrypted, re-enter credentials")
	}

	url := NormalizeURL(dev.DeviceURL)
	token, err := s.client.Login(ctx, url, dev.Username, password)
	if err != nil {
		return domain.Result{Success: false, Message: perrs.WireFrom(err).Message}, nil
	}
	defer s.client.Logout(ctx, url, token)

	if err := s.client.RefreshPhonebook(ctx, url, token); err != nil {
		return domain.Result{Success: false, Message: perrs.WireFrom(err).Message}, nil
	}
	if err := s.Repo.MarkDeviceRefreshed(ctx); err != nil {
		return domain.Result{}, err
	}
	return domain.Result{Success: true, Message: "phonebook refresh triggered successfully"}, nil
}

// Status reports configuration and refresh reminder state
func (s *Svc) Status(ctx context.Context) (domain.Status, error) {
	dev, configured, err := s.settings.Device(ctx)
	if err != nil {
		return domain.Status{}, err
	}
	ts, err := s.Repo.Load(ctx)
	if err != nil {
		return domain.Status{}, err
	}
	return domain.Status{
		Configured:          configured,
		DeviceURL:           dev.DeviceURL,
		Username:            dev.Username,
		HasPassword:         dev.Password != "",
		ShowRefreshReminder: dev.ShowRefreshReminder,
		NeedsRefresh:        s.needsRefresh(ts),
		PhonebookModified:   ts.PhonebookModified,
		DeviceRefreshed:     ts.DeviceRefreshed,
	}, nil
}

// MarkPhonebookModified implements domain.StampsPort for other modules
func (s *Svc) MarkPhonebookModified(ctx context.Context) error {
	return s.Repo.MarkPhonebookModified(ctx)
}

// needsRefresh is true when the phonebook changed after the last device
// refresh and the change is younger than the reminder window
func (s *Svc) needsRefresh(ts domain.Timestamps) bool {
	if ts.PhonebookModified == nil {
		return false
	}
	if s.now().UnixMilli()-*ts.PhonebookModified > reminderWindow.Milliseconds() {
		return false
	}
	if ts.DeviceRefreshed == nil {
		return true
	}
	return *ts.PhonebookModified > *ts.DeviceRefreshed
}
