package merge

import (
	"fmt"

	"go.uber.org/zap"

	"mapconv/internal/hierarchy"
	"mapconv/internal/mapping"
)

const (
	constructorName = "<init>"
	initializerName = "<clinit>"
)

type config struct {
	logger *zap.Logger
	fields bool
}

// Option configures Merge.
type Option func(*config)

// WithLogger sets the logger used to report the merge. Defaults to a no-op
// logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithoutFields restricts inheritance to methods. Own fields are still
// emitted.
func WithoutFields() Option {
	return func(c *config) {
		c.fields = false
	}
}

// Merge resolves every class of m against idx. idx must have been built from
// m after all hierarchy edges were attached.
func Merge(m *mapping.Model, idx *hierarchy.Index, opts ...Option) (*Table, error) {
	cfg := config{logger: zap.NewNop(), fields: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	// TopoOrder puts every ancestor before its descendants and rejects cycles.
	order, err := idx.TopoOrder()
	if err != nil {
		return nil, fmt.Errorf("failed to order class hierarchy: %w", err)
	}

	classes := make([]Class, 0, len(order))
	resolved := make(map[string]Class, len(order))

	for _, name := range order {
		c, ok := m.Class(name)
		if !ok {
			return nil, fmt.Errorf("class %s is indexed but not in the mapping", name)
		}

		r := newResolver(c)

		// Ancestors come earlier in order, so each parent is already resolved.
		for _, parent := range parentsOf(idx, name) {
			if pc, ok := resolved[parent]; ok {
				r.inherit(pc, cfg.fields)
			}
		}

		rc := r.class()
		resolved[name] = rc
		classes = append(classes, rc)
	}

	diags := idx.Diagnostics()
	for _, d := range diags.Infos {
		cfg.logger.Debug("ancestor outside the mapping",
			zap.String("ancestor", d.Class),
			zap.String("detail", d.Message),
			zap.Strings("suggestions", d.Suggestions),
		)
	}

	t := newTable(classes, diags)

	s := t.Stats()
	cfg.logger.Debug("merged class hierarchy",
		zap.Int("classes", s.Classes),
		zap.Int("inherited_fields", s.InheritedFields),
		zap.Int("inherited_methods", s.InheritedMethods),
		zap.Int("external_ancestors", len(idx.Externals())),
	)

	return t, nil
}

// parentsOf lists the superclass first, then the interfaces in declared
// order, so chain entries take precedence over interface entries.
func parentsOf(idx *hierarchy.Index, name string) []string {
	var out []string
	if s, ok := idx.SuperclassOf(name); ok {
		out = append(out, s)
	}

	return append(out, idx.InterfacesOf(name)...)
}

type resolver struct {
	owner   *mapping.ClassEntry
	fields  []Member
	methods []Member
	present map[string]struct{}
}

func newResolver(c *mapping.ClassEntry) *resolver {
	r := &resolver{
		owner:   c,
		fields:  make([]Member, 0, len(c.Fields)),
		methods: make([]Member, 0, len(c.Methods)),
		present: make(map[string]struct{}, len(c.Fields)+len(c.Methods)),
	}

	for _, f := range c.Fields {
		r.add(fieldMember(f, c.Original))
	}

	for _, mt := range c.Methods {
		r.add(methodMember(mt, c.Original))
	}

	return r
}

// inherit copies the resolved entries of a parent class.
func (r *resolver) inherit(from Class, fields bool) {
	if fields {
		for _, f := range from.Fields {
			r.add(f)
		}
	}

	for _, mt := range from.Methods {
		if mt.Name == constructorName || mt.Name == initializerName {
			continue
		}

		r.add(mt)
	}
}

// add keeps the first member seen for a key.
func (r *resolver) add(m Member) {
	key := presenceKey(m)
	if _, ok := r.present[key]; ok {
		return
	}

	r.present[key] = struct{}{}

	if m.Kind == FieldMember {
		r.fields = append(r.fields, m)
	} else {
		r.methods = append(r.methods, m)
	}
}

func (r *resolver) class() Class {
	return Class{
		Original:   r.owner.Original,
		Obfuscated: r.owner.Obfuscated,
		Fields:     r.fields,
		Methods:    r.methods,
	}
}

// Fields and methods live in separate namespaces.
func presenceKey(m Member) string {
	if m.Kind == FieldMember {
		return "f:" + m.Key()
	}

	return "m:" + m.Key()
}

func fieldMember(f *mapping.FieldEntry, from string) Member {
	return Member{
		Kind:       FieldMember,
		Name:       f.Name,
		Obfuscated: f.Obfuscated,
		Descriptor: f.Descriptor(),
		Type:       f.Type,
		From:       from,
	}
}

func methodMember(mt *mapping.MethodEntry, from string) Member {
	return Member{
		Kind:       MethodMember,
		Name:       mt.Name,
		Obfuscated: mt.Obfuscated,
		Descriptor: mt.Descriptor(),
		Return:     mt.Return,
		Params:     append([]string(nil), mt.Params...),
		From:       from,
	}
}
