package form

// Watcher keeps the submit control in step with the required fields.
type Watcher struct {
	surface   Surface
	fields    []Field
	roleField string
}

// NewWatcher watches fields on surface. roleField is the surface key holding
// the active role; it may be empty for forms without roles.
func NewWatcher(surface Surface, fields []Field, roleField string) *Watcher {
	return &Watcher{surface: surface, fields: fields, roleField: roleField}
}

// Role returns the active role.
func (w *Watcher) Role() string {
	if w.roleField == "" {
		return ""
	}
	return w.surface.Value(w.roleField)
}

// Changed is called after the value of field id changed. The field's error
// is cleared before the submit state is recomputed.
func (w *Watcher) Changed(id string) bool {
	w.surface.ClearError(id)
	return w.Evaluate()
}

// SetRole switches the active role and re-evaluates.
func (w *Watcher) SetRole(role string) bool {
	if w.roleField != "" {
		w.surface.SetValue(w.roleField, role)
	}
	return w.Evaluate()
}

// Evaluate recomputes the submit state without touching any error.
func (w *Watcher) Evaluate() bool {
	values := make(map[string]string, len(w.fields))
	for _, f := range w.fields {
		values[f.ID] = w.surface.Value(f.ID)
	}
	ok := Satisfied(w.fields, values, w.Role())
	w.surface.SetSubmitEnabled(ok)
	return ok
}
