// Package keybind maps key sequences to workbench command names.
// Key sequences use spacemacs-style notation: "SPC" for space, "SPC f" for
// SPC then f. Single keys: "j", "k", "esc", "ctrl+c", "enter".
package keybind

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"splitdesk/internal/command"
)

// Registry maps key sequences to workbench command names.
// Binding order is preserved: when one command is bound to several sequences,
// SequenceFor returns the first one bound.
type Registry struct {
	order    []string
	bindings map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings: make(map[string]string),
	}
}

// Bind registers a key sequence to a command name.
// Rebinding an existing sequence overwrites it in place.
func (r *Registry) Bind(seq, cmdName string) {
	n := normalizeSeq(seq)
	if _, ok := r.bindings[n]; !ok {
		r.order = append(r.order, n)
	}
	r.bindings[n] = cmdName
}

// Lookup returns the command name for a key sequence, or "" if not bound.
func (r *Registry) Lookup(seq string) string {
	return r.bindings[normalizeSeq(seq)]
}

// SequenceFor returns the first key sequence bound to the command name.
// Used by empty-container affordances; unbound commands render as "Unbound".
func (r *Registry) SequenceFor(cmdName string) (string, bool) {
	for _, seq := range r.order {
		if r.bindings[seq] == cmdName {
			return seq, true
		}
	}
	return "", false
}

// HasPrefix returns true if any binding starts with seq and a space
// (i.e. more keys follow).
func (r *Registry) HasPrefix(seq string) bool {
	prefix := normalizeSeq(seq) + " "
	for _, k := range r.order {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// normalizeSeq converts tea key strings to our canonical format.
// "space" -> "SPC", "ctrl+c" -> "ctrl+c", "j" -> "j".
func normalizeSeq(seq string) string {
	parts := strings.Fields(seq)
	for i, p := range parts {
		if p == "space" || p == " " {
			parts[i] = "SPC"
		}
	}
	return strings.Join(parts, " ")
}

// Handler manages leader key state and dispatches to the registry.
type Handler struct {
	Registry      *Registry
	LeaderKey     string   // " " (tea.KeyMsg.String() format for space)
	LeaderSeq     string   // "SPC" (our format)
	LeaderWaiting bool     // true when waiting for key after leader
	Buffer        []string // accumulated sequence in leader mode
}

// NewHandler creates a handler with SPC as leader.
// Bubble Tea reports space as " " (KeySpace), not "space".
func NewHandler(reg *Registry) *Handler {
	return &Handler{
		Registry:  reg,
		LeaderKey: " ",
		LeaderSeq: "SPC",
	}
}

// Handle processes a KeyMsg. Returns (consumed, cmd).
// If consumed is true, the key was handled by the keybind system and should
// not be passed to panes. cmd dispatches the bound workbench command, if any.
func (h *Handler) Handle(msg tea.KeyMsg) (consumed bool, cmd tea.Cmd) {
	s := msg.String()

	// Esc cancels leader mode
	if s == "esc" {
		if h.LeaderWaiting {
			h.LeaderWaiting = false
			h.Buffer = nil
			return true, nil
		}
		return false, nil
	}

	// Leader key pressed
	if s == h.LeaderKey {
		h.LeaderWaiting = true
		h.Buffer = []string{h.LeaderSeq}
		return true, nil
	}

	// In leader mode: append key and look up
	if h.LeaderWaiting {
		h.Buffer = append(h.Buffer, keyToSeqPart(s))
		seq := strings.Join(h.Buffer, " ")

		if name := h.Registry.Lookup(seq); name != "" {
			h.LeaderWaiting = false
			h.Buffer = nil
			return true, dispatch(name)
		}
		// No exact match; stay in leader mode if a longer binding exists
		if h.Registry.HasPrefix(seq) {
			return true, nil
		}
		h.LeaderWaiting = false
		h.Buffer = nil
		return true, nil
	}

	// Not in leader mode: check single-key bindings
	part := keyToSeqPart(s)
	if name := h.Registry.Lookup(part); name != "" {
		return true, dispatch(name)
	}

	// A key that starts a multi-key binding (e.g. "ctrl+w" of "ctrl+w v")
	// enters the same pending state as the leader.
	if h.Registry.HasPrefix(part) {
		h.LeaderWaiting = true
		h.Buffer = []string{part}
		return true, nil
	}

	return false, nil
}

// keyToSeqPart converts a tea key string to our sequence part.
func keyToSeqPart(s string) string {
	if s == " " || s == "space" {
		return "SPC"
	}
	return s
}

func dispatch(name string) tea.Cmd {
	return func() tea.Msg {
		return command.WorkbenchMsg{Name: name}
	}
}
