package tsrg

import (
	"bytes"
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"mapconv/internal/descriptor"
	"mapconv/internal/merge"
)

// Direction selects which namespace is written in the left column.
type Direction int

const (
	// ObfToNamed maps obfuscated names to original names.
	ObfToNamed Direction = iota
	// NamedToObf maps original names to obfuscated names.
	NamedToObf
)

// String returns the flag spelling of d.
func (d Direction) String() string {
	switch d {
	case ObfToNamed:
		return "obf-to-named"
	case NamedToObf:
		return "named-to-obf"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection parses the flag spelling of a direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "", "obf-to-named":
		return ObfToNamed, nil
	case "named-to-obf":
		return NamedToObf, nil
	default:
		return 0, fmt.Errorf("unknown direction %q (want obf-to-named or named-to-obf)", s)
	}
}

type options struct {
	direction Direction
	workers   int
}

// Option configures Serialize.
type Option func(*options)

// WithDirection sets the output direction. Defaults to ObfToNamed.
func WithDirection(d Direction) Option {
	return func(o *options) {
		o.direction = d
	}
}

// WithWorkers sets how many classes are encoded concurrently. Values below 1
// select GOMAXPROCS. Defaults to 1.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}

		o.workers = n
	}
}

// Serialize renders t as tsrg. The output depends only on t and the
// direction; the worker count never changes it.
func Serialize(ctx context.Context, t *merge.Table, opts ...Option) ([]byte, error) {
	o := options{direction: ObfToNamed, workers: 1}
	for _, opt := range opts {
		opt(&o)
	}

	if o.direction != ObfToNamed && o.direction != NamedToObf {
		return nil, fmt.Errorf("unknown direction %s", o.direction)
	}

	classes := t.Classes()
	enc := &encoder{table: t, direction: o.direction}

	// Each worker owns the slot of its class rank.
	chunks := make([][]byte, len(classes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	for i := range classes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			chunk, err := enc.class(classes[i])
			if err != nil {
				return err
			}

			chunks[i] = chunk

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return bytes.Join(chunks, nil), nil
}

type encoder struct {
	table     *merge.Table
	direction Direction
}

func (e *encoder) class(c merge.Class) ([]byte, error) {
	var buf bytes.Buffer

	left, right := c.Obfuscated, c.Original
	if e.direction == NamedToObf {
		left, right = right, left
	}

	fmt.Fprintf(&buf, "%s %s\n", descriptor.InternalName(left), descriptor.InternalName(right))

	for _, f := range c.Fields {
		l, r := e.pair(f)
		fmt.Fprintf(&buf, "\t%s %s\n", l, r)
	}

	for _, mt := range c.Methods {
		desc, err := e.methodDescriptor(mt)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s.%s: %w", c.Original, mt.Name, err)
		}

		l, r := e.pair(mt)
		fmt.Fprintf(&buf, "\t%s %s %s\n", l, desc, r)
	}

	return buf.Bytes(), nil
}

func (e *encoder) pair(m merge.Member) (string, string) {
	if e.direction == NamedToObf {
		return m.Name, m.Obfuscated
	}

	return m.Obfuscated, m.Name
}

func (e *encoder) methodDescriptor(m merge.Member) (string, error) {
	if e.direction == NamedToObf {
		return m.Descriptor, nil
	}

	return descriptor.EncodeMethodFunc(m.Return, m.Params, e.rename)
}

// rename maps a class known to the table to its obfuscated name.
func (e *encoder) rename(className string) string {
	if obf, ok := e.table.ObfuscatedName(className); ok {
		return obf
	}

	return className
}
