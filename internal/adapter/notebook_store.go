// Package adapter contains filesystem and storage adapters for the nbforge CLI.
package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	m "nbforge.dev/pkg/nbforge/internal/model"
)

// NotebookStore reads and writes notebook documents. It hides direct os
// access so the workflow logic can be tested without touching the disk.
type NotebookStore interface {
	// Load reads and decodes the notebook at path.
	Load(ctx context.Context, path m.Path) (*m.Notebook, error)

	// Save encodes the notebook and overwrites path unconditionally.
	Save(ctx context.Context, path m.Path, nb *m.Notebook) error

	// Encode returns the exact bytes Save would write, for change detection.
	Encode(nb *m.Notebook) ([]byte, error)
}

// LocalNotebookStore is the concrete NotebookStore backed by the local
// filesystem.
type LocalNotebookStore struct{}

// NewLocalNotebookStore constructs a LocalNotebookStore.
func NewLocalNotebookStore() *LocalNotebookStore {
	return &LocalNotebookStore{}
}

// Load reads and decodes the notebook at path.
func (s *LocalNotebookStore) Load(ctx context.Context, path m.Path) (*m.Notebook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("read notebook: %w", err)
	}

	var nb m.Notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("decode notebook %s: %w", path, err)
	}

	return &nb, nil
}

// Save writes the notebook to path, overwriting any previous content.
func (s *LocalNotebookStore) Save(ctx context.Context, path m.Path, nb *m.Notebook) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := s.Encode(nb)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(string(path)); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	if err := os.WriteFile(string(path), data, 0o644); err != nil {
		return fmt.Errorf("write notebook: %w", err)
	}

	return nil
}

// Encode serializes a notebook the way Jupyter tooling does: one-space
// indent, HTML escaping off (cell text is full of <, > and &), trailing
// newline.
func (s *LocalNotebookStore) Encode(nb *m.Notebook) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", " ")

	if err := enc.Encode(nb); err != nil {
		return nil, fmt.Errorf("encode notebook: %w", err)
	}

	return buf.Bytes(), nil
}
