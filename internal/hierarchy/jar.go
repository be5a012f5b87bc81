package hierarchy

import (
	"archive/zip"
	"context"
	"fmt"
	"path"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"mapconv/internal/classfile"
	"mapconv/internal/descriptor"
	"mapconv/internal/mapping"
)

const objectClass = "java/lang/Object"

// FromJar reads the class headers of every .class entry in the jar at
// jarPath and returns the edges of the classes that m maps, translated to
// original names.
func FromJar(ctx context.Context, jarPath string, m *mapping.Model) ([]Edge, error) {
	zr, err := zip.OpenReader(jarPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open jar %s: %w", jarPath, err)
	}
	defer zr.Close()

	var entries []*zip.File

	for _, f := range zr.File {
		if isClassEntry(f.Name) {
			entries = append(entries, f)
		}
	}

	headers := make([]*classfile.Header, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, f := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			rc, err := f.Open()
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", f.Name, err)
			}
			defer rc.Close()

			h, err := classfile.Parse(rc)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", f.Name, err)
			}

			headers[i] = h

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to read jar %s: %w", jarPath, err)
	}

	return FromHeaders(headers, m), nil
}

// FromHeaders translates class headers in the obfuscated namespace to edges
// in the original namespace. Classes m does not map are dropped; ancestors m
// does not map keep their own name. java.lang.Object is never an edge.
func FromHeaders(headers []*classfile.Header, m *mapping.Model) []Edge {
	translate := func(internal string) string {
		name := descriptor.SourceName(internal)
		if c, ok := m.ByObfuscated(name); ok {
			return c.Original
		}

		return name
	}

	edges := make([]Edge, 0, len(headers))

	for _, h := range headers {
		c, ok := m.ByObfuscated(descriptor.SourceName(h.ThisClass))
		if !ok {
			continue
		}

		e := Edge{Class: c.Original}
		if h.SuperClass != "" && h.SuperClass != objectClass {
			e.Super = translate(h.SuperClass)
		}

		for _, iface := range h.Interfaces {
			e.Interfaces = append(e.Interfaces, translate(iface))
		}

		edges = append(edges, e)
	}

	sort.Slice(edges, func(i, j int) bool { return edges[i].Class < edges[j].Class })

	return edges
}

func isClassEntry(name string) bool {
	if !strings.HasSuffix(name, ".class") || strings.HasPrefix(name, "META-INF/") {
		return false
	}

	base := path.Base(name)

	return base != "module-info.class" && base != "package-info.class"
}
