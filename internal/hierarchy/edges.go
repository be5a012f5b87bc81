package hierarchy

import (
	"slices"
	"sort"

	"mapconv/internal/diagnostic"
	"mapconv/internal/mapping"
)

// Edge lists the direct ancestors of one class, by original name.
type Edge struct {
	Class      string
	Super      string
	Interfaces []string
}

func (e Edge) equal(o Edge) bool {
	return e.Class == o.Class && e.Super == o.Super && slices.Equal(e.Interfaces, o.Interfaces)
}

// Attach sets Super and Interfaces on the classes of m named by edges and
// returns how many classes were updated. Edges for classes outside m are
// ignored. Two different edges for one class fail with
// diagnostic.ErrMalformedMapping.
func Attach(m *mapping.Model, edges []Edge) (int, error) {
	seen := make(map[string]Edge, len(edges))

	sorted := append([]Edge(nil), edges...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Class < sorted[j].Class })

	applied := 0

	for _, e := range sorted {
		if prev, ok := seen[e.Class]; ok {
			if prev.equal(e) {
				continue
			}

			return applied, diagnostic.Errorf(diagnostic.KindMalformedMapping,
				"conflicting hierarchy entries").In(e.Class, "")
		}

		seen[e.Class] = e

		c, ok := m.Class(e.Class)
		if !ok {
			continue
		}

		c.Super = e.Super
		c.Interfaces = append([]string(nil), e.Interfaces...)
		applied++
	}

	return applied, nil
}
