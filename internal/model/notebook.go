// Package model defines the notebook document types shared across nbforge.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Path represents a file system path.
type Path string

// CellType distinguishes the kinds of notebook cells.
type CellType string

const (
	// CellMarkdown holds explanatory text.
	CellMarkdown CellType = "markdown"

	// CellCode holds executable code plus outputs and an execution counter.
	CellCode CellType = "code"

	// CellRaw holds unrendered text. nbforge never produces raw cells but
	// must round-trip them when patching foreign notebooks.
	CellRaw CellType = "raw"
)

// Source is a cell's text content. The nbformat schema allows it to be
// either a single JSON string or a list of line strings; both spell the
// same content. Source remembers which shape it was decoded from so a
// patched notebook round-trips in its original representation.
type Source struct {
	lines  []string
	scalar bool
}

// NewSourceLines builds a Source in list-of-lines representation.
func NewSourceLines(lines []string) Source {
	return Source{lines: append([]string(nil), lines...)}
}

// NewSourceText builds a Source in single-string representation.
func NewSourceText(text string) Source {
	return Source{lines: splitKeepEnds(text), scalar: true}
}

// Lines returns a copy of the content as lines with terminators kept.
func (s *Source) Lines() []string {
	return append([]string(nil), s.lines...)
}

// SetLines replaces the content, keeping the original representation.
func (s *Source) SetLines(lines []string) {
	s.lines = append([]string(nil), lines...)
}

// Text returns the concatenated content.
func (s *Source) Text() string {
	return strings.Join(s.lines, "")
}

// Scalar reports whether the source was decoded from a single string.
func (s *Source) Scalar() bool {
	return s.scalar
}

// Contains reports whether any line contains the given substring.
// An empty substring matches nothing.
func (s *Source) Contains(substr string) bool {
	if substr == "" {
		return false
	}

	for _, line := range s.lines {
		if strings.Contains(line, substr) {
			return true
		}
	}

	return false
}

// MarshalJSON encodes the source in the representation it was decoded from.
func (s Source) MarshalJSON() ([]byte, error) {
	if s.scalar {
		return json.Marshal(s.Text())
	}

	if s.lines == nil {
		return json.Marshal([]string{})
	}

	return json.Marshal(s.lines)
}

// UnmarshalJSON decodes either a string or a list of strings.
func (s *Source) UnmarshalJSON(data []byte) error {
	var lines []string
	if err := json.Unmarshal(data, &lines); err == nil {
		s.lines = lines
		s.scalar = false

		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("source is neither a string nor a string list: %w", err)
	}

	s.lines = splitKeepEnds(text)
	s.scalar = true

	return nil
}

// splitKeepEnds splits text into lines keeping the trailing newline on each
// line, mirroring how notebook tooling normalizes scalar sources.
func splitKeepEnds(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// Cell is one unit of a notebook document.
type Cell struct {
	Type           CellType
	ID             string
	Metadata       json.RawMessage
	Source         Source
	ExecutionCount *int              // code cells only
	Outputs        []json.RawMessage // code cells only
	Attachments    json.RawMessage   // markdown/raw cells, optional
}

// cellJSON is the superset wire shape used for decoding any cell type.
type cellJSON struct {
	Type           CellType          `json:"cell_type"`
	ID             string            `json:"id,omitempty"`
	Metadata       json.RawMessage   `json:"metadata,omitempty"`
	ExecutionCount *int              `json:"execution_count,omitempty"`
	Outputs        []json.RawMessage `json:"outputs,omitempty"`
	Attachments    json.RawMessage   `json:"attachments,omitempty"`
	Source         Source            `json:"source"`
}

type markdownCellJSON struct {
	Type        CellType        `json:"cell_type"`
	ID          string          `json:"id,omitempty"`
	Attachments json.RawMessage `json:"attachments,omitempty"`
	Metadata    json.RawMessage `json:"metadata"`
	Source      Source          `json:"source"`
}

type codeCellJSON struct {
	Type           CellType          `json:"cell_type"`
	ID             string            `json:"id,omitempty"`
	ExecutionCount *int              `json:"execution_count"`
	Metadata       json.RawMessage   `json:"metadata"`
	Outputs        []json.RawMessage `json:"outputs"`
	Source         Source            `json:"source"`
}

var emptyObject = json.RawMessage("{}")

// MarshalJSON emits the nbformat shape for the cell's type: code cells
// always carry execution_count and outputs keys, other cells never do.
func (c Cell) MarshalJSON() ([]byte, error) {
	metadata := c.Metadata
	if metadata == nil {
		metadata = emptyObject
	}

	if c.Type == CellCode {
		outputs := c.Outputs
		if outputs == nil {
			outputs = []json.RawMessage{}
		}

		return json.Marshal(codeCellJSON{
			Type:           c.Type,
			ID:             c.ID,
			ExecutionCount: c.ExecutionCount,
			Metadata:       metadata,
			Outputs:        outputs,
			Source:         c.Source,
		})
	}

	return json.Marshal(markdownCellJSON{
		Type:        c.Type,
		ID:          c.ID,
		Attachments: c.Attachments,
		Metadata:    metadata,
		Source:      c.Source,
	})
}

// UnmarshalJSON decodes any nbformat v4 cell.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var raw cellJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw.Type == "" {
		return fmt.Errorf("cell is missing cell_type")
	}

	c.Type = raw.Type
	c.ID = raw.ID
	c.Metadata = raw.Metadata
	c.ExecutionCount = raw.ExecutionCount
	c.Outputs = raw.Outputs
	c.Attachments = raw.Attachments
	c.Source = raw.Source

	return nil
}

// Notebook is an ordered list of cells plus opaque document metadata.
// Metadata is copied verbatim on round-trip.
type Notebook struct {
	Cells         []Cell          `json:"cells"`
	Metadata      json.RawMessage `json:"metadata"`
	NBFormat      int             `json:"nbformat"`
	NBFormatMinor int             `json:"nbformat_minor"`
}

// Cell returns a pointer to the cell at index, or an error when the
// document has fewer cells than the caller assumes.
func (nb *Notebook) Cell(index int) (*Cell, error) {
	if index < 0 || index >= len(nb.Cells) {
		return nil, fmt.Errorf("cell index %d out of range: notebook has %d cells", index, len(nb.Cells))
	}

	return &nb.Cells[index], nil
}
