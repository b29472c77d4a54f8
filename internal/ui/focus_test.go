package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFocusManagerRotation(t *testing.T) {
	f := &FocusManager{
		Current: "a",
		Order:   []string{"a", "b", "c"},
	}

	assert.Equal(t, "b", f.Next())
	assert.Equal(t, "c", f.Next())
	assert.Equal(t, "a", f.Next())
	assert.Equal(t, "c", f.Prev())
}

func TestFocusManagerRotatesFromPaneArea(t *testing.T) {
	f := &FocusManager{
		Current: "pane-7",
		Order:   []string{"editors", "terminal"},
		AreaOf: func(id string) string {
			if id == "pane-7" {
				return "terminal"
			}
			return "editors"
		},
	}

	// pane-7 lives in the terminal area, so Next wraps to editors.
	assert.Equal(t, "editors", f.Next())
}

func TestFocusManagerOnChange(t *testing.T) {
	var from, to string
	f := &FocusManager{
		Current:  "a",
		Order:    []string{"a", "b"},
		OnChange: func(f2, t2 string) { from, to = f2, t2 },
	}

	f.SetFocus("b")
	assert.Equal(t, "a", from)
	assert.Equal(t, "b", to)

	// Re-focusing the current target does not fire the callback.
	from, to = "", ""
	f.SetFocus("b")
	assert.Empty(t, from)
	assert.Empty(t, to)
}

func TestFocusManagerEmptyOrder(t *testing.T) {
	f := &FocusManager{}
	assert.Equal(t, "", f.Next())
	assert.Equal(t, "", f.Prev())
}
