package convert

import (
	"context"
	"fmt"
	"os"

	"mapconv/internal/tsrg"
)

// ResolveFile is Resolve on the contents of a file.
func ResolveFile(ctx context.Context, path string, opts Options) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file: %w", err)
	}

	return Resolve(ctx, data, opts)
}

// ConvertFile converts the mapping at in and writes tsrg to out. Nothing is
// written when any stage fails.
func ConvertFile(ctx context.Context, in, out string, opts Options) (*Result, error) {
	data, err := os.ReadFile(in)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file: %w", err)
	}

	res, err := Convert(ctx, data, opts)
	if err != nil {
		return nil, err
	}

	if err := tsrg.WriteFile(out, res.Output); err != nil {
		return nil, err
	}

	return res, nil
}
