package mapping

import (
	"fmt"
	"os"
)

const filePerm = 0o644

// LoadFile loads and parses a mapping file from the given path.
func LoadFile(path string, opts ...ParseOption) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}
	defer f.Close()

	m, err := ParseReader(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping file %s: %w", path, err)
	}

	return m, nil
}

// WriteFile writes m to the given path in mapping text form.
func WriteFile(m *Model, path string) error {
	if err := os.WriteFile(path, Format(m), filePerm); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}

	return nil
}
