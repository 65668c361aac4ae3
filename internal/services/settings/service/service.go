// Package service contains settings workflows
package service

import (
	"context"

	"github.com/jordiboehme/gigaset-central-phonebook/internal/core/phone"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/platform/crypt"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/services/settings/domain"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/services/settings/repo"
)

// Service defines the service contract for settings
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	keeper *crypt.Keeper
}

// New creates a new settings service
func New(r repo.Repo, keeper *crypt.Keeper) *Svc {
	if r == nil {
		panic("settings.Service requires a non nil Repo")
	}
	if keeper == nil {
		panic("settings.Service requires a non nil crypt.Keeper")
	}
	return &Svc{Repo: r, keeper: keeper}
}

// Get returns the current settings with defaults filled in
func (s *Svc) Get(ctx context.Context) (domain.Settings, error) {
	return s.Repo.Load(ctx)
}

// Update merges a partial update into the stored settings
// only fields present in the payload change; a plaintext device password is
// encrypted before it touches disk
func (s *Svc) Update(ctx context.Context, in domain.UpdateInput) (domain.Settings, error) {
	cur, err := s.Repo.Load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}

	if in.LocalCountryCode != nil {
		cur.LocalCountryCode = *in.LocalCountryCode
	}
	if in.PhoneFormatConversion != nil {
		cur.PhoneFormatConversion = *in.PhoneFormatConversion
	}
	if in.RemoveSeparators != nil {
		cur.RemoveSeparators = *in.RemoveSeparators
	}
	if in.RemoveSpaces != nil {
		cur.RemoveSpaces = *in.RemoveSpaces
	}

	if in.Gigaset != nil {
		dev := domain.DeviceConfig{ShowRefreshReminder: true}
		if cur.Gigaset != nil {
			dev = *cur.Gigaset
		}
		if in.Gigaset.DeviceURL != nil {
			dev.DeviceURL = *in.Gigaset.DeviceURL
		}
		if in.Gigaset.Username != nil {
			dev.Username = *in.Gigaset.Username
		}
		if in.Gigaset.Password != nil {
			if *in.Gigaset.Password == "" {
				dev.Password = ""
			} else {
				enc, eerr := s.keeper.Encrypt(*in.Gigaset.Password)
				if eerr != nil {
					return domain.Settings{}, eerr
				}
				dev.Password = enc
			}
		}
		if in.Gigaset.ShowRefreshReminder != nil {
			dev.ShowRefreshReminder = *in.Gigaset.ShowRefreshReminder
		}
		cur.Gigaset = &dev
	}

	if err := s.Repo.Save(ctx, cur); err != nil {
		return domain.Settings{}, err
	}
	return cur, nil
}

// Policy returns the phone formatting policy derived from settings
func (s *Svc) Policy(ctx context.Context) (phone.Policy, error) {
	cur, err := s.Repo.Load(ctx)
	if err != nil {
		return phone.Policy{}, err
	}
	return cur.Policy(), nil
}

// Device returns the stored device block and whether it is fully configured
func (s *Svc) Device(ctx context.Context) (domain.DeviceConfig, bool, error) {
	cur, err := s.Repo.Load(ctx)
	if err != nil {
		return domain.DeviceConfig{}, false, err
	}
	if cur.Gigaset == nil {
		return domain.DeviceConfig{ShowRefreshReminder: true}, false, nil
	}
	dev := *cur.Gigaset
	configured := dev.DeviceURL != "" && dev.Username != "" && dev.Password != ""
	return dev, configured, nil
}
