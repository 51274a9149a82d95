package panel

// ItemHeight is the rendered height in pixels of one collapsed menu row.
const ItemHeight = 44

// Dropdown is a menu entry whose children slide open beneath it.
type Dropdown struct {
	ID        string
	Label     string
	Parent    *Dropdown
	Items     []int
	Expanded  bool
	MaxHeight int
}

// NewDropdown creates a closed dropdown nested under parent (nil for the top level).
func NewDropdown(id, label string, parent *Dropdown) *Dropdown {
	return &Dropdown{ID: id, Label: label, Parent: parent}
}

// AddItem records a child row of the given height.
func (d *Dropdown) AddItem(height int) {
	d.Items = append(d.Items, height)
}

// ChildHeight is the summed height of the child rows.
func (d *Dropdown) ChildHeight() int {
	total := 0
	for _, h := range d.Items {
		total += h
	}
	return total
}

// Toggle flips the dropdown. Opening sizes it to its children and grows the
// enclosing dropdown by the same amount; closing collapses it to zero.
func (d *Dropdown) Toggle() {
	if d.Expanded {
		d.Expanded = false
		d.MaxHeight = 0
		return
	}
	d.Expanded = true
	h := d.ChildHeight()
	d.MaxHeight = h
	if d.Parent != nil {
		d.Parent.MaxHeight += h
	}
}

// Open expands the dropdown if it is closed.
func (d *Dropdown) Open() {
	if !d.Expanded {
		d.Toggle()
	}
}
