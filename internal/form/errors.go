package form

import "strings"

// ErrorEntry maps a literal server message to the field it belongs to.
type ErrorEntry struct {
	Message string
	FieldID string
}

// ErrorTable is searched in order; the first entry contained in a message wins.
type ErrorTable []ErrorEntry

// Match returns the first entry whose Message occurs in msg.
func (t ErrorTable) Match(msg string) (ErrorEntry, bool) {
	for _, e := range t {
		if strings.Contains(msg, e.Message) {
			return e, true
		}
	}
	return ErrorEntry{}, false
}

// Present marks the field matched by msg with the full message. It returns
// the marked field id, or "" when msg is blank or unmatched.
func Present(s Surface, table ErrorTable, msg string) string {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return ""
	}
	e, ok := table.Match(msg)
	if !ok {
		return ""
	}
	s.ShowError(e.FieldID, msg)
	return e.FieldID
}
