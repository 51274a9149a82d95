package form

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Well-known storage keys.
const (
	KeyEmail      = "email"
	KeySignUpInfo = "signUpInfo"
)

// ErrSensitiveBinding is returned when a carrier is asked to hold a
// password or date of birth.
var ErrSensitiveBinding = errors.New("form: sensitive field cannot be carried")

// SessionStore holds values for the lifetime of the browser session.
// Take reads and deletes in one step.
type SessionStore interface {
	Put(key, value string) error
	Take(key string) (string, bool)
}

// Binding ties a snapshot key to a surface field.
type Binding struct {
	Key     string
	FieldID string
}

// SnapshotEntry is one restored key.
type SnapshotEntry struct {
	Key   string
	Value string
}

// Snapshot is the restored data in binding order.
type Snapshot []SnapshotEntry

// Get returns the value stored under key.
func (s Snapshot) Get(key string) (string, bool) {
	for _, e := range s {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Carrier snapshots a fixed set of fields as one JSON object.
type Carrier struct {
	store    SessionStore
	key      string
	bindings []Binding
}

// NewCarrier builds a carrier storing under key.
func NewCarrier(store SessionStore, key string, bindings ...Binding) (*Carrier, error) {
	for _, b := range bindings {
		if sensitive(b.Key) || sensitive(b.FieldID) {
			return nil, fmt.Errorf("%w: %s", ErrSensitiveBinding, b.Key)
		}
	}
	return &Carrier{store: store, key: key, bindings: bindings}, nil
}

// Capture stores the bound values. Keys keep binding order.
func (c *Carrier) Capture(s Surface) error {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, b := range c.bindings {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(b.Key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(s.Value(b.FieldID))
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return c.store.Put(c.key, buf.String())
}

// Restore takes the stored snapshot and writes every present, non-null key
// back to its field. Absent or malformed data restores nothing.
func (c *Carrier) Restore(s Surface) Snapshot {
	raw, ok := c.store.Take(c.key)
	if !ok {
		return nil
	}
	var stored map[string]*string
	if err := json.Unmarshal([]byte(raw), &stored); err != nil || stored == nil {
		return nil
	}

	var snap Snapshot
	for _, b := range c.bindings {
		v, ok := stored[b.Key]
		if !ok || v == nil {
			continue
		}
		s.SetValue(b.FieldID, *v)
		snap = append(snap, SnapshotEntry{Key: b.Key, Value: *v})
	}
	return snap
}

// Discard drops whatever the carrier has stored.
func (c *Carrier) Discard() {
	Discard(c.store, c.key)
}

// ValueCarrier carries one raw field value.
type ValueCarrier struct {
	store   SessionStore
	key     string
	fieldID string
}

// NewValueCarrier builds a carrier for a single field.
func NewValueCarrier(store SessionStore, key, fieldID string) (*ValueCarrier, error) {
	if sensitive(key) || sensitive(fieldID) {
		return nil, fmt.Errorf("%w: %s", ErrSensitiveBinding, key)
	}
	return &ValueCarrier{store: store, key: key, fieldID: fieldID}, nil
}

func (c *ValueCarrier) Capture(s Surface) error {
	return c.store.Put(c.key, s.Value(c.fieldID))
}

// Restore writes the stored value back once. The literal "null" counts as absent.
func (c *ValueCarrier) Restore(s Surface) (string, bool) {
	v, ok := c.store.Take(c.key)
	if !ok || v == "null" {
		return "", false
	}
	s.SetValue(c.fieldID, v)
	return v, true
}

// Discard removes key from store without using it.
func Discard(store SessionStore, key string) {
	store.Take(key)
}
