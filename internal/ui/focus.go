package ui

// FocusManager tracks the focused pane and rotates focus across workspace
// areas. Current may be any pane identity; rotation works on areas, so AreaOf
// maps a pane back to the area that hosts it.
type FocusManager struct {
	Current  string                // ID of the focused pane or area
	Order    []string              // Area tab order for focus rotation
	AreaOf   func(id string) string // Resolves a pane ID to its hosting area
	OnChange func(from, to string)
}

// Next advances focus to the next area in order.
// Returns the new current focus ID.
func (f *FocusManager) Next() string {
	return f.rotate(1)
}

// Prev advances focus to the previous area in order.
func (f *FocusManager) Prev() string {
	return f.rotate(-1)
}

func (f *FocusManager) rotate(step int) string {
	if len(f.Order) == 0 {
		return ""
	}
	area := f.Current
	if f.AreaOf != nil {
		area = f.AreaOf(f.Current)
	}
	idx := 0
	for i, id := range f.Order {
		if id == area {
			idx = i
			break
		}
	}
	next := (idx + step + len(f.Order)) % len(f.Order)
	f.set(f.Order[next])
	return f.Current
}

// SetFocus moves focus to the given pane or area ID.
func (f *FocusManager) SetFocus(id string) {
	f.set(id)
}

func (f *FocusManager) set(id string) {
	from := f.Current
	f.Current = id
	if f.OnChange != nil && from != id {
		f.OnChange(from, id)
	}
}
