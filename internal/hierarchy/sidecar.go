package hierarchy

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"mapconv/internal/descriptor"
	"mapconv/internal/diagnostic"
)

// sidecarFile is the YAML layout of a hierarchy sidecar:
//
//	classes:
//	  net.minecraft.world.entity.LivingEntity:
//	    extends: net.minecraft.world.entity.Entity
//	    implements:
//	      - net.minecraft.world.entity.Attackable
type sidecarFile struct {
	Classes map[string]sidecarClass `yaml:"classes"`
}

type sidecarClass struct {
	Extends    string   `yaml:"extends,omitempty"`
	Implements []string `yaml:"implements,omitempty"`
}

// LoadYAML loads hierarchy edges from a sidecar file.
func LoadYAML(path string) ([]Edge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read hierarchy file %s: %w", path, err)
	}

	return ParseYAML(data)
}

// ParseYAML parses sidecar YAML into edges sorted by class name. Unknown
// keys and malformed class names are rejected.
func ParseYAML(data []byte) ([]Edge, error) {
	var sf sidecarFile

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&sf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse hierarchy YAML: %w", err)
	}

	edges := make([]Edge, 0, len(sf.Classes))

	for name, entry := range sf.Classes {
		refs := append([]string{name}, entry.Implements...)
		if entry.Extends != "" {
			refs = append(refs, entry.Extends)
		}

		for _, ref := range refs {
			if err := validateClassName(ref); err != nil {
				return nil, diagnostic.Errorf(diagnostic.KindMalformedMapping,
					"bad class name %q in hierarchy", ref).In(name, "").Wrap(err)
			}
		}

		edges = append(edges, Edge{
			Class:      name,
			Super:      entry.Extends,
			Interfaces: entry.Implements,
		})
	}

	sort.Slice(edges, func(i, j int) bool { return edges[i].Class < edges[j].Class })

	return edges, nil
}

// MarshalYAML renders edges in sidecar form.
func MarshalYAML(edges []Edge) ([]byte, error) {
	sf := sidecarFile{Classes: make(map[string]sidecarClass, len(edges))}
	for _, e := range edges {
		sf.Classes[e.Class] = sidecarClass{Extends: e.Super, Implements: e.Interfaces}
	}

	return yaml.Marshal(&sf)
}

func validateClassName(name string) error {
	if descriptor.IsPrimitive(name) || descriptor.ElementType(name) != name {
		return diagnostic.Errorf(diagnostic.KindMalformedTypeName, "%q is not a class name", name)
	}

	return descriptor.Validate(name)
}
