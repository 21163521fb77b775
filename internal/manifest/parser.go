package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
)

// FileName is the manifest file written at the project root.
const FileName = "package.json"

// Write encodes m and writes it to path.
func Write(fsys afero.Fs, path string, m *Manifest) error {
	data, err := Marshal(m)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(fsys, path, data, 0644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// Read loads a manifest from path.
func Read(fsys afero.Fs, path string) (*Manifest, error) {
	data, err := readFile(fsys, path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// readFile reads the contents of a file at the given path.
func readFile(fsys afero.Fs, path string) ([]byte, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
