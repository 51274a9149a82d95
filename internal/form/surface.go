package form

import (
	"net/url"
	"strings"
)

// Surface is the rendered form as the behaviours in this package see it.
type Surface interface {
	Value(id string) string
	SetValue(id, v string)
	ShowError(id, msg string)
	ClearError(id string)
	SetSubmitEnabled(enabled bool)
}

// Model is a Surface held in memory. Pages are rendered from it.
type Model struct {
	fields        []Field
	values        map[string]string
	errors        map[string]string
	submitEnabled bool
}

// NewModel builds an empty model over fields.
func NewModel(fields []Field) *Model {
	return &Model{
		fields: fields,
		values: make(map[string]string, len(fields)),
		errors: make(map[string]string),
	}
}

// Load copies posted values into the model by field name. Keys that are
// not fields (such as the role switch) are stored under their own name.
func (m *Model) Load(values url.Values) {
	for key := range values {
		if f, ok := m.fieldByName(key); ok {
			m.values[f.ID] = values.Get(key)
			continue
		}
		m.values[key] = values.Get(key)
	}
}

func (m *Model) fieldByName(name string) (Field, bool) {
	for _, f := range m.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Field returns the field with element id.
func (m *Model) Field(id string) (Field, bool) {
	for _, f := range m.fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// FieldByName returns the field posted under name.
func (m *Model) FieldByName(name string) (Field, bool) {
	return m.fieldByName(strings.TrimSpace(name))
}

func (m *Model) Fields() []Field { return m.fields }

func (m *Model) Value(id string) string { return m.values[id] }

func (m *Model) SetValue(id, v string) { m.values[id] = v }

func (m *Model) ShowError(id, msg string) { m.errors[id] = msg }

func (m *Model) ClearError(id string) { delete(m.errors, id) }

func (m *Model) SetSubmitEnabled(enabled bool) { m.submitEnabled = enabled }

// Error returns the message shown on field id, if any.
func (m *Model) Error(id string) (string, bool) {
	msg, ok := m.errors[id]
	return msg, ok
}

// ErrorCount is the number of fields currently showing an error.
func (m *Model) ErrorCount() int { return len(m.errors) }

func (m *Model) SubmitEnabled() bool { return m.submitEnabled }

// Values returns a copy of the current values keyed by element id.
func (m *Model) Values() map[string]string {
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}
