// Package domain holds the phonebook entities and transfer shapes
package domain

import (
	"github.com/jordiboehme/gigaset-central-phonebook/internal/core/contact"
)

// Entry is a stored contact with its identity
type Entry struct {
	ID string `json:"id"`
	contact.Record
}

// CreateInput carries a new contact. At least one of the name or a
// primary phone slot must be present; the service enforces that
type CreateInput struct {
	Surname string `json:"surname" validate:"max=128"`
	Name    string `json:"name" validate:"max=128"`
	Office1 string `json:"office1" validate:"max=64"`
	Office2 string `json:"office2" validate:"max=64"`
	Mobile1 string `json:"mobile1" validate:"max=64"`
	Mobile2 string `json:"mobile2" validate:"max=64"`
	Home1   string `json:"home1" validate:"max=64"`
	Home2   string `json:"home2" validate:"max=64"`
}

// Record converts the input into a contact record
func (in CreateInput) Record() contact.Record {
	return contact.Record{
		Surname: in.Surname,
		Name:    in.Name,
		Office1: in.Office1,
		Office2: in.Office2,
		Mobile1: in.Mobile1,
		Mobile2: in.Mobile2,
		Home1:   in.Home1,
		Home2:   in.Home2,
	}
}

// UpdateInput carries a partial contact change, absent fields keep their value
type UpdateInput struct {
	Surname *string `json:"surname" validate:"omitempty,max=128"`
	Name    *string `json:"name" validate:"omitempty,max=128"`
	Office1 *string `json:"office1" validate:"omitempty,max=64"`
	Office2 *string `json:"office2" validate:"omitempty,max=64"`
	Mobile1 *string `json:"mobile1" validate:"omitempty,max=64"`
	Mobile2 *string `json:"mobile2" validate:"omitempty,max=64"`
	Home1   *string `json:"home1" validate:"omitempty,max=64"`
	Home2   *string `json:"home2" validate:"omitempty,max=64"`
}

// ApplyTo merges the set fields onto an existing record
func (in UpdateInput) ApplyTo(rec *contact.Record) {
	if in.Surname != nil {
		rec.Surname = *in.Surname
	}
	if in.Name != nil {
		rec.Name = *in.Name
	}
	if in.Office1 != nil {
		rec.Office1 = *in.Office1
	}
	if in.Office2 != nil {
		rec.Office2 = *in.Office2
	}
	if in.Mobile1 != nil {
		rec.Mobile1 = *in.Mobile1
	}
	if in.Mobile2 != nil {
		rec.Mobile2 = *in.Mobile2
	}
	if in.Home1 != nil {
		rec.Home1 = *in.Home1
	}
	if in.Home2 != nil {
		rec.Home2 = *in.Home2
	}
}

// DeleteManyInput names the entries a batch delete removes
type DeleteManyInput struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

// DeleteManyResult reports how many entries a batch delete removed
type DeleteManyResult struct {
	Deleted int `json:"deleted"`
}

// Export is the portable phonebook dump
type Export struct {
	Entries []Entry `json:"entries"`
}

// Directory is a rendered device directory with its cache validators
type Directory struct {
	XML          []byte
	ETag         string
	LastModified string
}

// UnconvertedCount reports how many stored numbers the active policy would change
type UnconvertedCount struct {
	Count int `json:"count"`
}

// ConvertResult reports how many entries a bulk conversion rewrote
type ConvertResult struct {
	Converted int `json:"converted"`
}
