package hierarchy

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"mapconv/internal/diagnostic"
	"mapconv/internal/mapping"
	"mapconv/internal/match"
)

const maxSuggestions = 3

// Index answers inheritance queries over a model. It is immutable once built.
type Index struct {
	names    []string // sorted original names of model classes
	known    map[string]struct{}
	super    map[string]string
	ifaces   map[string][]string
	subs     map[string][]string
	external map[string]struct{}
	diags    diagnostic.Diagnostics
}

// Build indexes the Super and Interfaces edges of every class in m.
func Build(m *mapping.Model) *Index {
	idx := &Index{
		names:    m.Names(),
		known:    make(map[string]struct{}, m.Len()),
		super:    make(map[string]string),
		ifaces:   make(map[string][]string),
		subs:     make(map[string][]string),
		external: make(map[string]struct{}),
	}

	for _, name := range idx.names {
		idx.known[name] = struct{}{}
	}

	referrers := make(map[string][]string)

	for _, name := range idx.names {
		c, _ := m.Class(name)

		for _, parent := range parentsOf(c) {
			idx.subs[parent] = append(idx.subs[parent], name)

			if _, ok := idx.known[parent]; !ok {
				idx.external[parent] = struct{}{}
				referrers[parent] = append(referrers[parent], name)
			}
		}

		if c.Super != "" {
			idx.super[name] = c.Super
		}

		if len(c.Interfaces) > 0 {
			idx.ifaces[name] = append([]string(nil), c.Interfaces...)
		}
	}

	for parent := range idx.subs {
		idx.subs[parent] = dedupeSorted(idx.subs[parent])
	}

	idx.recordExternals(referrers)

	return idx
}

// recordExternals notes each external ancestor once, in name order.
func (x *Index) recordExternals(referrers map[string][]string) {
	externals := make([]string, 0, len(x.external))
	for name := range x.external {
		externals = append(externals, name)
	}

	sort.Strings(externals)

	for _, name := range externals {
		refs := dedupeSorted(referrers[name])
		msg := fmt.Sprintf("ancestor is not in the mapping; referenced by %d class(es), first %s",
			len(refs), refs[0])

		x.diags.AddInfo(diagnostic.KindUnresolvedAncestorReference, msg, name, "",
			match.Suggest(name, x.names, maxSuggestions, match.DefaultThreshold)...)
	}
}

// Contains reports whether class is a class of the model.
func (x *Index) Contains(class string) bool {
	_, ok := x.known[class]
	return ok
}

// IsExternal reports whether name is referenced as an ancestor but is not a
// class of the model.
func (x *Index) IsExternal(name string) bool {
	_, ok := x.external[name]
	return ok
}

// Externals returns all external ancestor names, sorted.
func (x *Index) Externals() []string {
	out := make([]string, 0, len(x.external))
	for name := range x.external {
		out = append(out, name)
	}

	sort.Strings(out)

	return out
}

// SuperclassOf returns the direct superclass of class, if any.
func (x *Index) SuperclassOf(class string) (string, bool) {
	s, ok := x.super[class]
	return s, ok
}

// InterfacesOf returns the direct superinterfaces of class in declared order.
func (x *Index) InterfacesOf(class string) []string {
	return append([]string(nil), x.ifaces[class]...)
}

// SubclassesOf returns the classes that directly extend or implement class,
// sorted.
func (x *Index) SubclassesOf(class string) []string {
	return append([]string(nil), x.subs[class]...)
}

// AllAncestorsOf returns every transitive ancestor of class, breadth-first:
// nearest first, and at each node the superclass before the interfaces.
// External ancestors are included but not expanded. Any cycle above class,
// whether or not it passes through class, fails with
// diagnostic.ErrHierarchyCycleDetected.
func (x *Index) AllAncestorsOf(class string) ([]string, error) {
	if cycle := x.cycleAbove(class); cycle != nil {
		return nil, diagnostic.Errorf(diagnostic.KindHierarchyCycleDetected,
			"ancestors of %s loop: %s", class, strings.Join(cycle, " -> ")).In(class, "")
	}

	var out []string

	visited := map[string]struct{}{class: {}}
	queue := []string{class}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		for _, parent := range x.parents(n) {
			if _, seen := visited[parent]; seen {
				continue
			}

			visited[parent] = struct{}{}
			out = append(out, parent)

			if x.Contains(parent) {
				queue = append(queue, parent)
			}
		}
	}

	return out, nil
}

// cycleAbove walks the model-class ancestors of class depth-first and returns
// the first cycle found as a closed path, or nil.
func (x *Index) cycleAbove(class string) []string {
	const (
		onPath = 1
		closed = 2
	)

	state := map[string]int{}

	var path []string

	var visit func(n string) []string

	visit = func(n string) []string {
		state[n] = onPath
		path = append(path, n)

		for _, parent := range x.parents(n) {
			if !x.Contains(parent) {
				continue
			}

			switch state[parent] {
			case onPath:
				i := slices.Index(path, parent)
				return append(slices.Clone(path[i:]), parent)
			case closed:
				continue
			}

			if cycle := visit(parent); cycle != nil {
				return cycle
			}
		}

		path = path[:len(path)-1]
		state[n] = closed

		return nil
	}

	return visit(class)
}

// SuperChainOf returns the superclass chain of class, nearest first, ending
// at the first external or root class.
func (x *Index) SuperChainOf(class string) ([]string, error) {
	var chain []string

	visited := map[string]struct{}{class: {}}
	n := class

	for {
		s, ok := x.super[n]
		if !ok {
			return chain, nil
		}

		if _, seen := visited[s]; seen {
			return nil, diagnostic.Errorf(diagnostic.KindHierarchyCycleDetected,
				"superclass chain of %s loops at %s", class, s).In(class, "")
		}

		visited[s] = struct{}{}
		chain = append(chain, s)

		if !x.Contains(s) {
			return chain, nil
		}

		n = s
	}
}

// TopoOrder returns all model classes with every ancestor before its
// descendants. Unrelated classes are ordered by name.
func (x *Index) TopoOrder() ([]string, error) {
	pos := make(map[string]int, len(x.names))
	for i, name := range x.names {
		pos[name] = i
	}

	order, err := topoSort(len(x.names), func(i int) []int {
		var deps []int

		for _, parent := range x.parents(x.names[i]) {
			if j, ok := pos[parent]; ok {
				deps = append(deps, j)
			}
		}

		return deps
	})
	if err != nil {
		if errors.Is(err, errCycle) {
			return nil, x.cycleError(order)
		}

		return nil, err
	}

	out := make([]string, len(order))
	for i, j := range order {
		out[i] = x.names[j]
	}

	return out, nil
}

// Diagnostics returns the informational notes gathered while indexing.
func (x *Index) Diagnostics() diagnostic.Diagnostics {
	return x.diags.Clone()
}

// cycleError describes one cycle among the classes the sort could not place.
// Every such class has at least one unplaced parent, so following unplaced
// parents from the smallest one must revisit a class.
func (x *Index) cycleError(placed []int) error {
	done := make(map[string]struct{}, len(placed))
	for _, i := range placed {
		done[x.names[i]] = struct{}{}
	}

	var start string

	for _, name := range x.names {
		if _, ok := done[name]; !ok {
			start = name
			break
		}
	}

	seenAt := map[string]int{}

	var path []string

	for n := start; ; {
		if i, ok := seenAt[n]; ok {
			cycle := append(path[i:], n)
			return diagnostic.Errorf(diagnostic.KindHierarchyCycleDetected,
				"%s", strings.Join(cycle, " -> ")).In(cycle[0], "")
		}

		seenAt[n] = len(path)
		path = append(path, n)

		next := ""

		for _, parent := range x.parents(n) {
			if _, ok := done[parent]; !ok && x.Contains(parent) {
				next = parent
				break
			}
		}

		if next == "" {
			return diagnostic.Errorf(diagnostic.KindHierarchyCycleDetected,
				"unordered classes starting at %s", start).In(start, "")
		}

		n = next
	}
}

// parents returns superclass then interfaces of class.
func (x *Index) parents(class string) []string {
	var out []string
	if s, ok := x.super[class]; ok {
		out = append(out, s)
	}

	return append(out, x.ifaces[class]...)
}

func parentsOf(c *mapping.ClassEntry) []string {
	var out []string
	if c.Super != "" {
		out = append(out, c.Super)
	}

	return append(out, c.Interfaces...)
}

func dedupeSorted(in []string) []string {
	sort.Strings(in)
	return slices.Compact(in)
}
