package adapter

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	m "nbforge.dev/pkg/nbforge/internal/model"
)

// PatchSetStore loads user-supplied patch sets from YAML files.
type PatchSetStore interface {
	Load(ctx context.Context, path m.Path) (m.PatchSet, error)
}

// LocalPatchSetStore is the concrete PatchSetStore backed by the local
// filesystem.
type LocalPatchSetStore struct{}

// NewLocalPatchSetStore constructs a LocalPatchSetStore.
func NewLocalPatchSetStore() *LocalPatchSetStore {
	return &LocalPatchSetStore{}
}

// Load reads, decodes and validates a YAML patch set. Decoding is strict:
// unknown fields are rejected so a typoed anchor key fails loudly instead
// of silently skipping ops.
func (s *LocalPatchSetStore) Load(ctx context.Context, path m.Path) (m.PatchSet, error) {
	var set m.PatchSet

	if err := ctx.Err(); err != nil {
		return set, err
	}

	data, err := os.ReadFile(string(path))
	if err != nil {
		return set, fmt.Errorf("read patch set: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&set); err != nil {
		return set, fmt.Errorf("decode patch set %s: %w", path, err)
	}

	if err := validatePatchSet(set); err != nil {
		return set, fmt.Errorf("patch set %s: %w", path, err)
	}

	return set, nil
}

func validatePatchSet(set m.PatchSet) error {
	if set.Name == "" {
		return fmt.Errorf("missing name")
	}

	if len(set.Cells) == 0 {
		return fmt.Errorf("no cell patches")
	}

	for _, cellPatch := range set.Cells {
		if cellPatch.Cell < 0 {
			return fmt.Errorf("cell index %d is negative", cellPatch.Cell)
		}

		if len(cellPatch.Inserts) == 0 {
			return fmt.Errorf("cell %d has no inserts", cellPatch.Cell)
		}

		for _, op := range cellPatch.Inserts {
			if err := validateInsert(cellPatch.Cell, op); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateInsert(cell int, op m.Insert) error {
	if op.Marker == "" {
		return fmt.Errorf("cell %d: insert without a marker cannot be idempotent", cell)
	}

	if len(op.Lines) == 0 {
		return fmt.Errorf("cell %d: insert %q has no lines", cell, op.Marker)
	}

	if op.Anchor != nil {
		if (op.Anchor.Prefix == "") == (op.Anchor.Contains == "") {
			return fmt.Errorf("cell %d: insert %q needs exactly one of anchor.prefix or anchor.contains", cell, op.Marker)
		}

		switch op.Anchor.Placement {
		case "", m.PlaceBefore, m.PlaceAfter:
		default:
			return fmt.Errorf("cell %d: insert %q has unknown placement %q", cell, op.Marker, op.Anchor.Placement)
		}
	}

	return nil
}
