package partials

import (
	"github.com/nfrund/learnhub/internal/form"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

// Watch wires an input to a form's validate endpoint. The server answers
// with the refreshed submit button and clears the field's error slot.
type Watch struct {
	URL      string
	FormID   string
	SubmitID string
}

// Field returns the htmx attributes for the input with fieldID.
func (w Watch) Field(fieldID string) g.Node {
	if w.URL == "" {
		return nil
	}
	return g.Group{
		hx.Post(w.URL),
		hx.Trigger("input changed delay:300ms, change"),
		hx.Target("#" + w.SubmitID),
		hx.Swap("outerHTML"),
		hx.Include("#" + w.FormID),
		hx.Vals(`{"changed":"` + fieldID + `"}`),
	}
}

// Role returns the htmx attributes for the role switch.
func (w Watch) Role() g.Node {
	return w.Field(form.RoleField)
}

// Input renders a labelled field with its error slot. Password and date of
// birth values are never echoed back. The field is highlighted while its
// slot holds a message (see Invalid), so clearing the slot out of band
// clears the highlight without replacing the input being typed in.
func Input(m *form.Model, f form.Field, w Watch) g.Node {
	msg, _ := m.Error(f.ID)
	value := m.Value(f.ID)
	if f.Type == "password" || f.Type == "date" {
		value = ""
	}
	return h.Div(
		h.Class("form-field"),
		h.Label(h.For(f.ID), g.Text(f.Label)),
		h.Input(
			h.ID(f.ID),
			h.Name(f.Name),
			h.Type(f.Type),
			g.If(value != "", h.Value(value)),
			h.Aria("describedby", f.ErrorID),
			w.Field(f.ID),
		),
		ErrorSlot(f.ErrorID, msg, false),
	)
}

// InvalidSelector matches a field whose error slot holds a message. The
// stylesheet outlines controls matched by it.
const InvalidSelector = ".form-field:has(> .error-message:not(:empty))"

// ErrorSlot is the message area under a field. With oob set it replaces the
// slot already on the page. An empty slot renders with no children so the
// field loses its highlight.
func ErrorSlot(id, msg string, oob bool) g.Node {
	return h.Div(
		h.ID(id),
		h.Class("error-message"),
		g.If(oob, hx.SwapOOB("true")),
		g.If(msg != "", g.Text(msg)),
	)
}

// SubmitButton is the form's submit control.
func SubmitButton(id, label string, enabled bool) g.Node {
	return h.Button(
		h.ID(id),
		h.Type("submit"),
		g.If(!enabled, h.Disabled()),
		g.Text(label),
	)
}
