// Package domain contains the notebook assembly and patching logic.
package domain

import (
	"context"
	"fmt"
	"strings"

	m "nbforge.dev/pkg/nbforge/internal/model"
)

// Patcher applies a patch set to an in-memory notebook. Application is
// idempotent: an op whose marker already appears in the cell is a no-op,
// so running the same pass twice leaves the document byte-identical.
type Patcher interface {
	Apply(ctx context.Context, nb *m.Notebook, set m.PatchSet) (m.PatchReport, error)
}

type patcher struct{}

// NewPatcher creates a Patcher.
func NewPatcher() Patcher {
	return &patcher{}
}

// Apply runs every cell patch of the set against the notebook. A cell index
// beyond the document is a structural mismatch and aborts the pass; a
// missing anchor only skips the individual op.
func (p *patcher) Apply(ctx context.Context, nb *m.Notebook, set m.PatchSet) (m.PatchReport, error) {
	report := m.PatchReport{}

	for _, cellPatch := range set.Cells {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		cell, err := nb.Cell(cellPatch.Cell)
		if err != nil {
			return report, fmt.Errorf("patch set %q: %w", set.Name, err)
		}

		report.Results = append(report.Results, applyCellPatch(cell, cellPatch)...)
	}

	return report, nil
}

// applyCellPatch applies the ops of one cell patch in order against the
// live line slice, then writes the lines back in the cell's original
// representation. Markers and anchors are evaluated against the mutated
// lines, so an op sees what earlier ops of the same pass inserted.
func applyCellPatch(cell *m.Cell, cellPatch m.CellPatch) []m.OpResult {
	lines := cell.Source.Lines()
	results := make([]m.OpResult, 0, len(cellPatch.Inserts))

	// Indices of lines inserted during this pass. "After" inserts anchored
	// to the same line stack behind each other instead of reversing order.
	inserted := make(map[int]bool)

	changed := false

	for _, op := range cellPatch.Inserts {
		result := m.OpResult{Cell: cellPatch.Cell, Marker: op.Marker}

		switch {
		case linesContain(lines, op.Marker):
			result.Status = m.AlreadyApplied

		case op.Anchor == nil:
			lines = appendBlock(lines, op.Lines)
			changed = true
			result.Status = m.Applied

		default:
			target, ok := anchorTarget(lines, *op.Anchor, inserted)
			if !ok {
				result.Status = m.AnchorMissing
				break
			}

			lines = spliceLines(lines, target, op.Lines, inserted)
			changed = true
			result.Status = m.Applied
		}

		results = append(results, result)
	}

	if changed {
		cell.Source.SetLines(lines)
	}

	return results
}

// anchorTarget locates the insertion index for an anchored op: the first
// matching line, adjusted for placement. Lines already inserted this pass
// directly after the anchor shift an "after" target past them.
func anchorTarget(lines []string, anchor m.Anchor, inserted map[int]bool) (int, bool) {
	idx := -1

	for i, line := range lines {
		if anchor.Matches(line) {
			idx = i
			break
		}
	}

	if idx < 0 {
		return 0, false
	}

	if anchor.Side() == m.PlaceBefore {
		return idx, true
	}

	target := idx + 1
	for target < len(lines) && inserted[target] {
		target++
	}

	return target, true
}

// spliceLines inserts newLines at target and records their positions,
// shifting previously recorded positions that now sit after the splice.
func spliceLines(lines []string, target int, newLines []string, inserted map[int]bool) []string {
	spliced := make([]string, 0, len(lines)+len(newLines))
	spliced = append(spliced, lines[:target]...)
	spliced = append(spliced, newLines...)
	spliced = append(spliced, lines[target:]...)

	shifted := make(map[int]bool, len(inserted)+len(newLines))

	for i := range inserted {
		if i >= target {
			shifted[i+len(newLines)] = true
		} else {
			shifted[i] = true
		}
	}

	for i := range newLines {
		shifted[target+i] = true
	}

	for k := range inserted {
		delete(inserted, k)
	}

	for k, v := range shifted {
		inserted[k] = v
	}

	return spliced
}

// appendBlock appends a block at the end of the cell: the last existing
// line gets terminated when it lacks a newline, then a blank separator
// line, then the block itself.
func appendBlock(lines []string, block []string) []string {
	out := append([]string(nil), lines...)

	if len(out) > 0 && !strings.HasSuffix(out[len(out)-1], "\n") {
		out[len(out)-1] += "\n"
	}

	if len(out) > 0 {
		out = append(out, "\n")
	}

	return append(out, block...)
}

func linesContain(lines []string, substr string) bool {
	if substr == "" {
		return false
	}

	for _, line := range lines {
		if strings.Contains(line, substr) {
			return true
		}
	}

	return false
}
