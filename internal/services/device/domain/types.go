// Package domain holds DTOs for device http and service contracts
package domain

// TestInput carries one-off credentials for a connection test
type TestInput struct {
	DeviceURL string `json:"deviceUrl" validate:"required,max=200" example:"gigaset.local"`
	Username  string `json:"username" validate:"required,max=100" example:"admin"`
	Password  string `json:"password" validate:"required,max=200"`
}

// Result reports the outcome of a device interaction
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Timestamps tracks phonebook and device refresh times as epoch millis
// nil means the event never happened
type Timestamps struct {
	PhonebookModified *int64 `json:"phonebookModified"`
	DeviceRefreshed   *int64 `json:"gigasetRefreshed"`
}

// Status describes device configuration and refresh state
type Status struct {
	Configured          bool   `json:"configured"`
	DeviceURL           string `json:"deviceUrl"`
	Username            string `json:"username"`
	HasPassword         bool   `json:"hasPassword"`
	ShowRefreshReminder bool   `json:"showRefreshReminder"`
	NeedsRefresh        bool   `json:"needsRefresh"`
	PhonebookModified   *int64 `json:"phonebookModified"`
	DeviceRefreshed     *int64 `json:"gigasetRefreshed"`
}
