package model

// CatalogKind labels what a catalog entry describes.
type CatalogKind string

const (
	// KindBlueprint is a buildable notebook blueprint.
	KindBlueprint CatalogKind = "blueprint"
	// KindPatchSet is an applicable patch set.
	KindPatchSet CatalogKind = "patch set"
)

// CatalogEntry is one row of the built-ins listing.
type CatalogEntry struct {
	Kind        CatalogKind
	Name        string
	Target      string // output filename for blueprints, cell list for patch sets
	Description string
}
