package domain

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"nbforge.dev/pkg/nbforge/internal/domain/blueprints"
	m "nbforge.dev/pkg/nbforge/internal/model"
)

// Assembler turns a blueprint into a serializable notebook document.
type Assembler interface {
	Assemble(ctx context.Context, bp blueprints.Blueprint) (*m.Notebook, error)
}

type assembler struct{}

// NewAssembler creates an Assembler.
func NewAssembler() Assembler {
	return &assembler{}
}

// Assemble copies the blueprint cells in order, mints a cell id for each
// (nbformat 4.5 wants one per cell) and wraps them with the blueprint's
// document metadata.
func (a *assembler) Assemble(ctx context.Context, bp blueprints.Blueprint) (*m.Notebook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(bp.Cells) == 0 {
		return nil, fmt.Errorf("blueprint %q has no cells", bp.Name)
	}

	cells := make([]m.Cell, len(bp.Cells))
	copy(cells, bp.Cells)

	for i := range cells {
		if cells[i].ID == "" {
			cells[i].ID = newCellID(bp.Name, i)
		}
	}

	return &m.Notebook{
		Cells:         cells,
		Metadata:      bp.Metadata,
		NBFormat:      4,
		NBFormatMinor: 5,
	}, nil
}

// newCellID derives a short id from the blueprint name and cell position.
// Derived rather than random so repeated builds are byte-identical.
func newCellID(blueprint string, index int) string {
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s/%d", blueprint, index)))

	return id.String()[:8]
}
