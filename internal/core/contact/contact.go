// Package contact defines the canonical phonebook record shape shared by
// parsers, renderers, and the import pipeline
package contact

// PhoneFields lists the six phone slot names in wire order
var PhoneFields = []string{"office1", "office2", "mobile1", "mobile2", "home1", "home2"}

// Record is one contact, name plus six phone slots
// absence is always the empty string, never null
type Record struct {
	Surname string `json:"surname"`
	Name    string `json:"name"`
	Office1 string `json:"office1"`
	Office2 string `json:"office2"`
	Mobile1 string `json:"mobile1"`
	Mobile2 string `json:"mobile2"`
	Home1   string `json:"home1"`
	Home2   string `json:"home2"`
}

// Phones returns the six phone slots in wire order
func (r Record) Phones() [6]string {
	return [6]string{r.Office1, r.Office2, r.Mobile1, r.Mobile2, r.Home1, r.Home2}
}

// SetPhone writes slot i in wire order, out-of-range indexes are ignored
func (r *Record) SetPhone(i int, v string) {
	switch i {
	case 0:
		r.Office1 = v
	case 1:
		r.Office2 = v
	case 2:
		r.Mobile1 = v
	case 3:
		r.Mobile2 = v
	case 4:
		r.Home1 = v
	case 5:
		r.Home2 = v
	}
}

// HasName reports whether either name field is non empty
func (r Record) HasName() bool { return r.Surname != "" || r.Name != "" }

// HasPhone reports whether any of the six slots is non empty
func (r Record) HasPhone() bool {
	for _, p := range r.Phones() {
		if p != "" {
			return true
		}
	}
	return false
}

// HasPrimaryPhone reports whether any slot-1 field is non empty
// parsers use this to decide if a candidate is worth keeping
func (r Record) HasPrimaryPhone() bool {
	return r.Office1 != "" || r.Mobile1 != "" || r.Home1 != ""
}
