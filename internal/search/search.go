// Package search models the search subsystem at the edge the workspace sees:
// an index that resolves matches for a path and a results pane that lists
// them. Match discovery itself lives behind the Index interface.
package search

// Match is one search hit.
type Match struct {
	Path    string
	Line    int
	Col     int
	Preview string
}

// Index resolves the matches recorded for a path.
type Index interface {
	Lookup(path string) []Match
}
