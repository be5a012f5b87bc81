// Package convert runs the whole pipeline: parse a proguard mapping, attach
// hierarchy edges from a sidecar file and/or a jar, merge inherited renames
// and serialize the table as tsrg.
package convert

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"mapconv/internal/diagnostic"
	"mapconv/internal/hierarchy"
	"mapconv/internal/mapping"
	"mapconv/internal/merge"
	"mapconv/internal/tsrg"
)

// Options configures a pipeline run. The zero value converts without any
// hierarchy and writes obfuscated-to-named output.
type Options struct {
	// HierarchyFile is a YAML sidecar with extends/implements edges.
	HierarchyFile string
	// JarFile is a jar whose class headers supply edges.
	JarFile   string
	Direction tsrg.Direction
	// Workers below 1 use one serializer worker per CPU.
	Workers int
	// SkipFields limits inheritance to methods.
	SkipFields bool
	// AllowRedundant accepts exact repeats of member lines.
	AllowRedundant bool
	Logger         *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}

	return o.Logger
}

// Result is the outcome of a pipeline run.
type Result struct {
	Model *mapping.Model
	Table *merge.Table
	// Edges is the number of hierarchy edges attached to the model.
	Edges int
	// Output is the serialized table; nil after Resolve.
	Output []byte

	diags diagnostic.Diagnostics
}

// Diagnostics returns mapping warnings and merge notes.
func (r *Result) Diagnostics() diagnostic.Diagnostics {
	return r.diags.Clone()
}

// Resolve parses data and merges it against the configured hierarchy.
func Resolve(ctx context.Context, data []byte, opts Options) (*Result, error) {
	log := opts.logger()

	var parseOpts []mapping.ParseOption
	if opts.AllowRedundant {
		parseOpts = append(parseOpts, mapping.AllowRedundant())
	}

	m, err := mapping.Parse(data, parseOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping: %w", err)
	}

	s := m.Stats()
	log.Debug("parsed mapping",
		zap.Int("classes", s.Classes),
		zap.Int("fields", s.Fields),
		zap.Int("methods", s.Methods),
	)

	edges, err := collectEdges(ctx, m, opts)
	if err != nil {
		return nil, err
	}

	attached, err := hierarchy.Attach(m, edges)
	if err != nil {
		return nil, fmt.Errorf("failed to attach hierarchy: %w", err)
	}

	log.Debug("attached hierarchy", zap.Int("edges", attached), zap.Int("candidates", len(edges)))

	idx := hierarchy.Build(m)

	var mergeOpts []merge.Option

	mergeOpts = append(mergeOpts, merge.WithLogger(log))
	if opts.SkipFields {
		mergeOpts = append(mergeOpts, merge.WithoutFields())
	}

	table, err := merge.Merge(m, idx, mergeOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to merge hierarchy: %w", err)
	}

	res := &Result{Model: m, Table: table, Edges: attached}
	res.diags.Merge(*mapping.Validate(m))
	res.diags.Merge(table.Diagnostics())

	return res, nil
}

// Convert resolves data and serializes the table.
func Convert(ctx context.Context, data []byte, opts Options) (*Result, error) {
	res, err := Resolve(ctx, data, opts)
	if err != nil {
		return nil, err
	}

	out, err := tsrg.Serialize(ctx, res.Table,
		tsrg.WithDirection(opts.Direction),
		tsrg.WithWorkers(opts.Workers),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize mapping: %w", err)
	}

	res.Output = out

	return res, nil
}

func collectEdges(ctx context.Context, m *mapping.Model, opts Options) ([]hierarchy.Edge, error) {
	var edges []hierarchy.Edge

	if opts.HierarchyFile != "" {
		fromFile, err := hierarchy.LoadYAML(opts.HierarchyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load hierarchy: %w", err)
		}

		edges = append(edges, fromFile...)
	}

	if opts.JarFile != "" {
		fromJar, err := hierarchy.FromJar(ctx, opts.JarFile, m)
		if err != nil {
			return nil, fmt.Errorf("failed to read hierarchy from jar: %w", err)
		}

		edges = append(edges, fromJar...)
	}

	return edges, nil
}
