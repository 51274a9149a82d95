// Package form holds the view-model side of the account forms: which fields
// are required, which server messages belong to which field, and which
// values survive a failed submit.
package form

import "strings"

// Field describes one input of a form.
type Field struct {
	// ID is the element id of the input, e.g. "form-email".
	ID string
	// Name is the form post key.
	Name string
	// ErrorID is the element id of the message slot rendered after the input.
	ErrorID string
	Label   string
	Type    string
	// Required fields must hold a non-blank value before submit is enabled.
	Required bool
	// RequiredFor limits Required to one role. Empty means every role.
	RequiredFor string
}

// requiredFor reports whether the field counts towards submit enablement
// while role is active.
func (f Field) requiredFor(role string) bool {
	if !f.Required {
		return false
	}
	return f.RequiredFor == "" || f.RequiredFor == role
}

// Satisfied reports whether every field required under role has a
// non-blank value.
func Satisfied(fields []Field, values map[string]string, role string) bool {
	for _, f := range fields {
		if !f.requiredFor(role) {
			continue
		}
		if strings.TrimSpace(values[f.ID]) == "" {
			return false
		}
	}
	return true
}

// sensitive reports whether a key or field id names a value that must never
// be carried across requests.
func sensitive(name string) bool {
	n := strings.ToLower(name)
	for _, s := range []string{"pass", "dob", "birth"} {
		if strings.Contains(n, s) {
			return true
		}
	}
	return false
}
