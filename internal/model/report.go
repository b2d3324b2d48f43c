package model

// OpStatus is the outcome of a single patch op.
type OpStatus int

const (
	// Applied indicates the op inserted its lines.
	Applied OpStatus = iota
	// AlreadyApplied indicates the marker was present and the op was skipped.
	AlreadyApplied
	// AnchorMissing indicates no line matched the anchor; the op was skipped.
	AnchorMissing
)

// String returns a short human-readable label for the status.
func (s OpStatus) String() string {
	switch s {
	case Applied:
		return "applied"
	case AlreadyApplied:
		return "already applied"
	case AnchorMissing:
		return "anchor missing"
	}

	return "unknown"
}

// OpResult records what happened to one op of a patch pass.
type OpResult struct {
	Cell   int
	Marker string
	Status OpStatus
}

// PatchReport is the result of applying a patch set to one notebook.
type PatchReport struct {
	Notebook Path
	Results  []OpResult
}

// Applied counts ops that inserted lines.
func (r PatchReport) Applied() int { return r.count(Applied) }

// Skipped counts ops skipped because their marker was already present.
func (r PatchReport) Skipped() int { return r.count(AlreadyApplied) }

// Missing counts ops skipped because their anchor line was not found.
func (r PatchReport) Missing() int { return r.count(AnchorMissing) }

// Changed reports whether the pass mutated the document.
func (r PatchReport) Changed() bool { return r.Applied() > 0 }

func (r PatchReport) count(status OpStatus) int {
	n := 0

	for _, result := range r.Results {
		if result.Status == status {
			n++
		}
	}

	return n
}
