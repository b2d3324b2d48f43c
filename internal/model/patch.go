package model

import "strings"

// Placement says on which side of the anchor line new lines land.
type Placement string

const (
	// PlaceAfter inserts immediately after the anchor line.
	PlaceAfter Placement = "after"

	// PlaceBefore inserts immediately before the anchor line.
	PlaceBefore Placement = "before"
)

// Anchor identifies the insertion point for an op: the first line matching
// either the prefix or the substring. Exactly one of Prefix/Contains is set.
type Anchor struct {
	Prefix    string    `yaml:"prefix,omitempty"`
	Contains  string    `yaml:"contains,omitempty"`
	Placement Placement `yaml:"placement,omitempty"`
}

// Matches reports whether the given line is this anchor's line.
func (a Anchor) Matches(line string) bool {
	if a.Prefix != "" {
		return strings.HasPrefix(line, a.Prefix)
	}

	return a.Contains != "" && strings.Contains(line, a.Contains)
}

// Side returns the placement, defaulting to after-the-anchor.
func (a Anchor) Side() Placement {
	if a.Placement == PlaceBefore {
		return PlaceBefore
	}

	return PlaceAfter
}

// Insert is one idempotent patch operation on a cell. Marker is the
// substring whose presence means the op was already applied. A nil Anchor
// appends the lines as a block at the end of the cell, separated from the
// existing content by a blank line.
type Insert struct {
	Marker string   `yaml:"marker"`
	Lines  []string `yaml:"lines"`
	Anchor *Anchor  `yaml:"anchor,omitempty"`
}

// CellPatch addresses a single cell by position and carries its ops in
// application order.
type CellPatch struct {
	Cell    int      `yaml:"cell"`
	Inserts []Insert `yaml:"inserts"`
}

// PatchSet is a named collection of cell patches applied in one pass.
type PatchSet struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Cells       []CellPatch `yaml:"cells"`
}
