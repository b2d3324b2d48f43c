// Package blueprints holds the built-in notebook blueprints and patch sets
// shipped with nbforge. A blueprint is pure data: an ordered cell list plus
// the kernel metadata the serialized document carries verbatim.
package blueprints

import (
	"encoding/json"
	"fmt"

	m "nbforge.dev/pkg/nbforge/internal/model"
)

// Blueprint describes one buildable notebook.
type Blueprint struct {
	Name        string
	Filename    string
	Description string
	Cells       []m.Cell
	Metadata    json.RawMessage
}

// python3Metadata is the document metadata every built-in blueprint uses.
var python3Metadata = json.RawMessage(`{
 "kernelspec": {
  "display_name": "Python 3",
  "language": "python",
  "name": "python3"
 },
 "language_info": {
  "file_extension": ".py",
  "mimetype": "text/x-python",
  "name": "python",
  "nbconvert_exporter": "python",
  "pygments_lexer": "ipython3",
  "version": "3.11"
 }
}`)

// All returns the built-in blueprints in a stable order.
func All() []Blueprint {
	return []Blueprint{vegetationMonitor(), landUseChange()}
}

// Find returns the blueprint with the given name.
func Find(name string) (Blueprint, error) {
	for _, bp := range All() {
		if bp.Name == name {
			return bp, nil
		}
	}

	return Blueprint{}, fmt.Errorf("unknown blueprint %q", name)
}

// Sets returns the built-in patch sets in a stable order.
func Sets() []m.PatchSet {
	return []m.PatchSet{NDVIEnrichment()}
}

// FindSet returns the built-in patch set with the given name.
func FindSet(name string) (m.PatchSet, error) {
	for _, set := range Sets() {
		if set.Name == name {
			return set, nil
		}
	}

	return m.PatchSet{}, fmt.Errorf("unknown patch set %q", name)
}

// markdown builds a markdown cell whose source is a single-element line
// list, the shape the original notebooks carry.
func markdown(text string) m.Cell {
	return m.Cell{
		Type:   m.CellMarkdown,
		Source: m.NewSourceLines([]string{text}),
	}
}

// code builds a code cell from logical lines; each line gets its newline
// terminator appended.
func code(lines ...string) m.Cell {
	terminated := make([]string, len(lines))
	for i, line := range lines {
		terminated[i] = line + "\n"
	}

	return m.Cell{
		Type:   m.CellCode,
		Source: m.NewSourceLines(terminated),
	}
}

// block turns logical lines into terminated patch lines, same convention
// as code cells.
func block(lines ...string) []string {
	terminated := make([]string, len(lines))
	for i, line := range lines {
		terminated[i] = line + "\n"
	}

	return terminated
}
