// Package domain holds DTOs for settings http and service contracts
package domain

import (
	"github.com/jordiboehme/gigaset-central-phonebook/internal/core/phone"
)

// DeviceConfig is the base station connection block nested in settings
// Password holds the encrypted form, never the plaintext
type DeviceConfig struct {
	DeviceURL           string `json:"deviceUrl"`
	Username            string `json:"username"`
	Password            string `json:"password"`
	ShowRefreshReminder bool   `json:"showRefreshReminder"`
}

// Settings is the persisted application configuration
type Settings struct {
	LocalCountryCode      string        `json:"localCountryCode"`
	PhoneFormatConversion bool          `json:"phoneFormatConversion"`
	RemoveSeparators      bool          `json:"removeSeparators"`
	RemoveSpaces          bool          `json:"removeSpaces"`
	Gigaset               *DeviceConfig `json:"gigaset,omitempty"`
}

// Defaults returns the settings used before anything is persisted
func Defaults() Settings {
	return Settings{}
}

// Policy projects the phone formatting flags into the core policy shape
func (s Settings) Policy() phone.Policy {
	return phone.Policy{
		LocalCountryCode: s.LocalCountryCode,
		ConvertFormat:    s.PhoneFormatConversion,
		StripSeparators:  s.RemoveSeparators,
		StripSpaces:      s.RemoveSpaces,
	}
}

// DeviceUpdate carries a partial update of the device block
// nil fields are left unchanged; a non-empty Password is plaintext and is
// encrypted before persisting
type DeviceUpdate struct {
	DeviceURL           *string `json:"deviceUrl" validate:"omitempty,max=200"`
	Username            *string `json:"username" validate:"omitempty,max=100"`
	Password            *string `json:"password" validate:"omitempty,max=200"`
	ShowRefreshReminder *bool   `json:"showRefreshReminder"`
}

// UpdateInput carries a partial settings update
// nil fields are left unchanged
type UpdateInput struct {
	LocalCountryCode      *string       `json:"localCountryCode" validate:"omitempty,max=8"`
	PhoneFormatConversion *bool         `json:"phoneFormatConversion"`
	RemoveSeparators      *bool         `json:"removeSeparators"`
	RemoveSpaces          *bool         `json:"removeSpaces"`
	Gigaset               *DeviceUpdate `json:"gigaset"`
}
