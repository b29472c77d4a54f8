package search

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"splitdesk/internal/command"
	"splitdesk/internal/geom"
)

// matchItem implements list.Item for Match.
type matchItem struct {
	Match
}

func (m matchItem) FilterValue() string { return m.Path }
func (m matchItem) Title() string {
	return fmt.Sprintf("%s:%d:%d  %s", m.Path, m.Line, m.Col, m.Preview)
}
func (m matchItem) Description() string { return "" }

// Results is a pane listing search matches. Activating a match emits a
// jump-to-location request; the workspace decides which editor handles it.
type Results struct {
	list    list.Model
	matches []Match
	rect    geom.Rect
}

// NewResults creates an empty results pane.
func NewResults() *Results {
	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)
	delegate.ShowDescription = false
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle
	delegate.Styles.NormalTitle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	delegate.Styles.NormalDesc = delegate.Styles.NormalTitle

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Search Results"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

	return &Results{list: l}
}

// SetMatches replaces the listed matches.
func (r *Results) SetMatches(matches []Match) {
	r.matches = matches
	items := make([]list.Item, len(matches))
	for i, m := range matches {
		items[i] = matchItem{Match: m}
	}
	r.list.SetItems(items)
}

// Matches returns the listed matches.
func (r *Results) Matches() []Match {
	return r.matches
}

// Selected returns the currently selected match.
func (r *Results) Selected() (Match, bool) {
	idx := r.list.Index()
	if idx < 0 || idx >= len(r.matches) {
		return Match{}, false
	}
	return r.matches[idx], true
}

// Measure fills whatever box the layout offers.
func (r *Results) Measure(bc geom.Constraints) geom.Size {
	return bc.Max()
}

// Place commits the final rectangle and sizes the list to it.
func (r *Results) Place(rect geom.Rect) {
	if rect == r.rect {
		return
	}
	r.rect = rect
	r.list.SetWidth(rect.Width)
	r.list.SetHeight(rect.Height)
}

// Update navigates the list and emits a jump request on enter.
func (r *Results) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		m, ok := r.Selected()
		if !ok {
			return nil
		}
		return func() tea.Msg {
			return command.JumpToLocationMsg{Path: m.Path, Line: m.Line, Col: m.Col}
		}
	}
	var cmd tea.Cmd
	r.list, cmd = r.list.Update(msg)
	return cmd
}

// View renders the match list.
func (r *Results) View() string {
	if r.list.Width() == 0 {
		r.list.SetWidth(80)
	}
	if r.list.Height() == 0 {
		r.list.SetHeight(20)
	}
	return r.list.View()
}
