// Package panel keeps the lesson page's side menu and content panels in a
// consistent state: one panel shown, its tab marked, media elsewhere stopped.
package panel

import (
	"net/url"
	"strings"
)

// Kind is the type of content a panel holds.
type Kind string

const (
	KindLesson   Kind = "lesson"
	KindVideo    Kind = "video"
	KindTextbook Kind = "textbook"
	KindQuiz     Kind = "quiz"
)

// Panel is one content section.
type Panel struct {
	ID      string
	Kind    Kind
	Shown   bool
	Playing bool
}

// Tab is the menu entry opening a panel.
type Tab struct {
	PanelID string
	Label   string
	Active  bool
}

// Navigator shows exactly one panel among its siblings.
type Navigator struct {
	panels  []*Panel
	tabs    []*Tab
	parents map[string]*Dropdown
	active  string
}

// NewNavigator creates a navigator with nothing selected yet.
func NewNavigator() *Navigator {
	return &Navigator{parents: make(map[string]*Dropdown)}
}

// Add registers a panel and its tab. parent is the dropdown listing the tab
// and may be nil.
func (n *Navigator) Add(p Panel, label string, parent *Dropdown) {
	p.Shown = false
	n.panels = append(n.panels, &p)
	n.tabs = append(n.tabs, &Tab{PanelID: p.ID, Label: label})
	if parent != nil {
		n.parents[p.ID] = parent
	}
}

// Select shows panel id and hides the rest, stopping any video among them.
// An unknown id leaves everything as it was and returns false.
func (n *Navigator) Select(id string) bool {
	if n.Panel(id) == nil {
		return false
	}
	for _, p := range n.panels {
		if p.ID == id {
			p.Shown = true
			continue
		}
		p.Shown = false
		if p.Kind == KindVideo {
			p.Playing = false
		}
	}
	for _, t := range n.tabs {
		t.Active = t.PanelID == id
	}
	n.active = id
	return true
}

// Initial selects the panel named by fragment, or the first panel when the
// fragment is empty or names nothing. The selected panel's dropdowns are opened.
func (n *Navigator) Initial(fragment string) string {
	if len(n.panels) == 0 {
		return ""
	}
	id := strings.TrimPrefix(fragment, "#")
	if n.Panel(id) == nil {
		id = n.panels[0].ID
	}
	n.OpenPath(id)
	return n.active
}

// OpenPath opens the grandparent and parent dropdowns of a panel's tab,
// then selects it.
func (n *Navigator) OpenPath(id string) bool {
	if d := n.parents[id]; d != nil {
		if d.Parent != nil {
			d.Parent.Open()
		}
		d.Open()
	}
	return n.Select(id)
}

// Play starts the media of a video panel.
func (n *Navigator) Play(id string) bool {
	p := n.Panel(id)
	if p == nil || p.Kind != KindVideo || !p.Shown {
		return false
	}
	p.Playing = true
	return true
}

// Active returns the shown panel id.
func (n *Navigator) Active() string { return n.active }

// Panel returns the panel with id, or nil.
func (n *Navigator) Panel(id string) *Panel {
	if id == "" {
		return nil
	}
	for _, p := range n.panels {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Panels returns the panels in insertion order.
func (n *Navigator) Panels() []Panel {
	out := make([]Panel, len(n.panels))
	for i, p := range n.panels {
		out[i] = *p
	}
	return out
}

// Tabs returns the tabs in insertion order.
func (n *Navigator) Tabs() []Tab {
	out := make([]Tab, len(n.tabs))
	for i, t := range n.tabs {
		out[i] = *t
	}
	return out
}

// FragmentOf returns the fragment of rawURL without the leading '#'.
func FragmentOf(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		if i := strings.IndexByte(rawURL, '#'); i >= 0 {
			return rawURL[i+1:]
		}
		return ""
	}
	return u.Fragment
}
