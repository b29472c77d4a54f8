// Package ui assembles the workspace: the editor split area, the terminal
// panel, and the search results panel, glued together by a focus manager and
// a root Bubble Tea model. Structural pane commands are produced here (from
// keybindings and mouse input) and routed to the split containers; the focus
// and scroll requests the containers emit in return are applied here.
package ui
