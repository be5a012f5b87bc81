package mapping

import (
	"fmt"

	"mapconv/internal/diagnostic"
)

// Validate checks namespace invariants that single-line parsing cannot see.
//
// Obfuscated member names must be unique within their class: a field by
// (obfuscated name, descriptor) and a method by (obfuscated name,
// descriptor). A collision is an error because the remapper could not tell
// the two members apart. Two classes sharing an obfuscated name only warn.
func Validate(m *Model) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if m == nil {
		res.AddError(diagnostic.KindMalformedMapping, "model is nil", "", "")
		return res
	}

	seenClasses := make(map[string]string, m.Len())

	for _, c := range m.Classes() {
		if prev, ok := seenClasses[c.Obfuscated]; ok {
			res.AddWarningAt(diagnostic.KindDuplicateClassMapping, c.Line,
				fmt.Sprintf("obfuscated name %q also used by %s", c.Obfuscated, prev), c.Original, "")
		} else {
			seenClasses[c.Obfuscated] = c.Original
		}

		seenFields := make(map[string]string, len(c.Fields))

		for _, f := range c.Fields {
			key := f.Obfuscated + ":" + f.Descriptor()
			if prev, ok := seenFields[key]; ok {
				res.AddErrorAt(diagnostic.KindDuplicateMemberMapping, f.Line,
					fmt.Sprintf("obfuscated name %q also used by field %s", f.Obfuscated, prev), c.Original, f.Name)

				continue
			}

			seenFields[key] = f.Name
		}

		seenMethods := make(map[string]string, len(c.Methods))

		for _, mt := range c.Methods {
			key := mt.Obfuscated + mt.Descriptor()
			if prev, ok := seenMethods[key]; ok {
				res.AddErrorAt(diagnostic.KindDuplicateMemberMapping, mt.Line,
					fmt.Sprintf("obfuscated name %q also used by method %s", mt.Obfuscated, prev),
					c.Original, mt.Signature())

				continue
			}

			seenMethods[key] = mt.Signature()
		}
	}

	return res
}
