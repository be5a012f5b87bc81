package mapping

import (
	"fmt"
	"sort"

	"mapconv/internal/descriptor"
	"mapconv/internal/diagnostic"
)

// Model is a parsed mapping: classes keyed by original name.
type Model struct {
	classes map[string]*ClassEntry
	byObf   map[string]*ClassEntry
	order   []*ClassEntry // insertion order, used by Format
}

// NewModel creates an empty Model.
func NewModel() *Model {
	return &Model{
		classes: make(map[string]*ClassEntry),
		byObf:   make(map[string]*ClassEntry),
	}
}

// AddClass registers c. A second class with the same original name fails
// with diagnostic.ErrDuplicateClassMapping.
func (m *Model) AddClass(c *ClassEntry) error {
	if prev, ok := m.classes[c.Original]; ok {
		return diagnostic.Errorf(diagnostic.KindDuplicateClassMapping,
			"already mapped to %s at line %d", prev.Obfuscated, prev.Line).
			AtLine(c.Line).
			In(c.Original, "")
	}

	m.classes[c.Original] = c
	m.order = append(m.order, c)

	// First class wins the reverse lookup; collisions are reported by Validate.
	if _, ok := m.byObf[c.Obfuscated]; !ok {
		m.byObf[c.Obfuscated] = c
	}

	return nil
}

// Class returns the class with the given original name.
func (m *Model) Class(original string) (*ClassEntry, bool) {
	c, ok := m.classes[original]
	return c, ok
}

// ByObfuscated returns the class with the given obfuscated name.
func (m *Model) ByObfuscated(obfuscated string) (*ClassEntry, bool) {
	c, ok := m.byObf[obfuscated]
	return c, ok
}

// Classes returns all classes in the order they were added.
func (m *Model) Classes() []*ClassEntry {
	return append([]*ClassEntry(nil), m.order...)
}

// Names returns all original class names, sorted.
func (m *Model) Names() []string {
	names := make([]string, 0, len(m.classes))
	for name := range m.classes {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Len returns the number of classes.
func (m *Model) Len() int {
	return len(m.order)
}

// Stats summarizes the size of a model.
type Stats struct {
	Classes int
	Fields  int
	Methods int
	// WithAncestors counts classes that have a superclass or interface set.
	WithAncestors int
}

// Stats computes counts over the model.
func (m *Model) Stats() Stats {
	s := Stats{Classes: len(m.order)}

	for _, c := range m.order {
		s.Fields += len(c.Fields)
		s.Methods += len(c.Methods)

		if c.Super != "" || len(c.Interfaces) > 0 {
			s.WithAncestors++
		}
	}

	return s
}

// ClassEntry is one class of the mapping with its declared members.
type ClassEntry struct {
	Original   string
	Obfuscated string
	// Line is the 1-based line of the class header, 0 if built in code.
	Line int

	// Super is the original name of the direct superclass, "" if unknown.
	Super string
	// Interfaces are the original names of the direct superinterfaces.
	Interfaces []string

	Fields  []*FieldEntry
	Methods []*MethodEntry

	fieldIndex  map[string]*FieldEntry
	methodIndex map[string]*MethodEntry
}

// NewClass creates a ClassEntry without members.
func NewClass(original, obfuscated string) *ClassEntry {
	return &ClassEntry{
		Original:    original,
		Obfuscated:  obfuscated,
		fieldIndex:  make(map[string]*FieldEntry),
		methodIndex: make(map[string]*MethodEntry),
	}
}

// AddField registers f. Two fields with the same original name fail with
// diagnostic.ErrDuplicateMemberMapping.
func (c *ClassEntry) AddField(f *FieldEntry) error {
	if f.Type != "" {
		if f.Type == "void" {
			return diagnostic.Errorf(diagnostic.KindMalformedTypeName, "field of type void").
				AtLine(f.Line).In(c.Original, f.Name)
		}

		if err := descriptor.Validate(f.Type); err != nil {
			return err
		}
	}

	c.ensureIndex()

	if prev, ok := c.fieldIndex[f.Name]; ok {
		return duplicateMember(c, f.Name, f.Line, prev.Line)
	}

	c.fieldIndex[f.Name] = f
	c.Fields = append(c.Fields, f)

	return nil
}

// AddMethod computes the descriptor of mt and registers it. Two methods
// with the same original name and descriptor fail with
// diagnostic.ErrDuplicateMemberMapping.
func (c *ClassEntry) AddMethod(mt *MethodEntry) error {
	desc, err := descriptor.EncodeMethod(mt.Return, mt.Params)
	if err != nil {
		return err
	}

	mt.desc = desc

	c.ensureIndex()

	key := mt.Name + desc
	if prev, ok := c.methodIndex[key]; ok {
		return duplicateMember(c, key, mt.Line, prev.Line)
	}

	c.methodIndex[key] = mt
	c.Methods = append(c.Methods, mt)

	return nil
}

// Field returns the field with the given original name.
func (c *ClassEntry) Field(name string) (*FieldEntry, bool) {
	f, ok := c.fieldIndex[name]
	return f, ok
}

// Method returns the method with the given original name and descriptor.
func (c *ClassEntry) Method(name, desc string) (*MethodEntry, bool) {
	mt, ok := c.methodIndex[name+desc]
	return mt, ok
}

func (c *ClassEntry) ensureIndex() {
	if c.fieldIndex == nil {
		c.fieldIndex = make(map[string]*FieldEntry, len(c.Fields))
	}

	if c.methodIndex == nil {
		c.methodIndex = make(map[string]*MethodEntry, len(c.Methods))
	}
}

func duplicateMember(c *ClassEntry, member string, line, prevLine int) error {
	return diagnostic.Errorf(diagnostic.KindDuplicateMemberMapping,
		"first declared at line %d", prevLine).
		AtLine(line).
		In(c.Original, member)
}

// FieldEntry is a renamed field.
type FieldEntry struct {
	Name       string
	Obfuscated string
	// Type is the source-notation type, "" when the mapping omits it.
	Type string
	Line int
}

// Descriptor returns the field type descriptor, or "" when Type is unknown.
func (f *FieldEntry) Descriptor() string {
	if f.Type == "" {
		return ""
	}

	desc, err := descriptor.Encode(f.Type)
	if err != nil {
		// AddField validated the type already.
		return ""
	}

	return desc
}

// LineRange is the "start:end:" prefix of a method line.
type LineRange struct {
	Start int
	End   int
}

// String formats the range as it appears in mapping text.
func (r LineRange) String() string {
	return fmt.Sprintf("%d:%d", r.Start, r.End)
}

// MethodEntry is a renamed method.
type MethodEntry struct {
	Name       string
	Obfuscated string
	Return     string
	Params     []string
	// Lines is the optional source line range; it carries no renaming meaning.
	Lines *LineRange
	Line  int

	desc string
}

// Descriptor returns the JVM method descriptor in the original namespace.
// It is set when the method is added to a class.
func (mt *MethodEntry) Descriptor() string {
	return mt.desc
}

// Signature returns name plus descriptor, the identity of a method within
// its class.
func (mt *MethodEntry) Signature() string {
	return mt.Name + mt.desc
}
