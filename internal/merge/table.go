package merge

import (
	"sort"

	"mapconv/internal/diagnostic"
)

// MemberKind distinguishes fields from methods.
type MemberKind int

const (
	FieldMember MemberKind = iota
	MethodMember
)

// Member is a resolved rename of one field or method of a class.
type Member struct {
	Kind       MemberKind
	Name       string
	Obfuscated string
	// Descriptor is in the original namespace. Fields without a known type
	// have an empty descriptor.
	Descriptor string
	// Type is the source type of a field; Return and Params belong to methods.
	Type   string
	Return string
	Params []string
	// From is the original name of the class that declares the member.
	From string
}

// Key is the identity of the member within a class.
func (m Member) Key() string {
	if m.Kind == FieldMember {
		return m.Name
	}

	return m.Name + m.Descriptor
}

func (m Member) clone() Member {
	m.Params = append([]string(nil), m.Params...)
	return m
}

// Class is a class of the resolved table.
type Class struct {
	Original   string
	Obfuscated string
	Fields     []Member
	Methods    []Member
}

// Inherited reports whether m was declared by an ancestor of c.
func (c Class) Inherited(m Member) bool {
	return m.From != c.Original
}

func (c Class) clone() Class {
	out := c
	out.Fields = make([]Member, len(c.Fields))
	out.Methods = make([]Member, len(c.Methods))

	for i, f := range c.Fields {
		out.Fields[i] = f.clone()
	}

	for i, mt := range c.Methods {
		out.Methods[i] = mt.clone()
	}

	return out
}

// Stats counts the entries of a table.
type Stats struct {
	Classes          int
	OwnFields        int
	InheritedFields  int
	OwnMethods       int
	InheritedMethods int
}

// Table is the resolved rename table. It is immutable; accessors return
// copies.
type Table struct {
	classes []Class
	byName  map[string]int
	diags   diagnostic.Diagnostics
}

func newTable(classes []Class, diags diagnostic.Diagnostics) *Table {
	sort.Slice(classes, func(i, j int) bool { return classes[i].Original < classes[j].Original })

	t := &Table{
		classes: classes,
		byName:  make(map[string]int, len(classes)),
		diags:   diags,
	}

	for i, c := range classes {
		sortMembers(c.Fields)
		sortMembers(c.Methods)
		t.byName[c.Original] = i
	}

	return t
}

func sortMembers(ms []Member) {
	sort.Slice(ms, func(i, j int) bool {
		if ms[i].Name != ms[j].Name {
			return ms[i].Name < ms[j].Name
		}

		return ms[i].Descriptor < ms[j].Descriptor
	})
}

// Len returns the number of classes.
func (t *Table) Len() int {
	return len(t.classes)
}

// Classes returns all classes sorted by original name.
func (t *Table) Classes() []Class {
	out := make([]Class, len(t.classes))
	for i, c := range t.classes {
		out[i] = c.clone()
	}

	return out
}

// Class returns the class with the given original name.
func (t *Table) Class(original string) (Class, bool) {
	i, ok := t.byName[original]
	if !ok {
		return Class{}, false
	}

	return t.classes[i].clone(), true
}

// ObfuscatedName returns the obfuscated name of a class in the table.
func (t *Table) ObfuscatedName(original string) (string, bool) {
	i, ok := t.byName[original]
	if !ok {
		return "", false
	}

	return t.classes[i].Obfuscated, true
}

// Diagnostics returns the informational notes gathered during the merge.
func (t *Table) Diagnostics() diagnostic.Diagnostics {
	return t.diags.Clone()
}

// Stats counts own and inherited members.
func (t *Table) Stats() Stats {
	s := Stats{Classes: len(t.classes)}

	for _, c := range t.classes {
		for _, f := range c.Fields {
			if c.Inherited(f) {
				s.InheritedFields++
			} else {
				s.OwnFields++
			}
		}

		for _, mt := range c.Methods {
			if c.Inherited(mt) {
				s.InheritedMethods++
			} else {
				s.OwnMethods++
			}
		}
	}

	return s
}
