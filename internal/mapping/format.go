package mapping

import (
	"bytes"
	"strings"
)

const memberIndent = "    "

// Format renders m as mapping text. Classes and members keep the order in
// which they were added, and method line ranges are preserved, so
// Parse(Format(m)) reproduces m.
func Format(m *Model) []byte {
	var buf bytes.Buffer

	for _, c := range m.Classes() {
		buf.WriteString(c.Original)
		buf.WriteString(arrow)
		buf.WriteString(c.Obfuscated)
		buf.WriteString(":\n")

		for _, f := range c.Fields {
			buf.WriteString(memberIndent)

			if f.Type != "" {
				buf.WriteString(f.Type)
				buf.WriteByte(' ')
			}

			buf.WriteString(f.Name)
			buf.WriteString(arrow)
			buf.WriteString(f.Obfuscated)
			buf.WriteByte('\n')
		}

		for _, mt := range c.Methods {
			buf.WriteString(memberIndent)

			if mt.Lines != nil {
				buf.WriteString(mt.Lines.String())
				buf.WriteByte(':')
			}

			buf.WriteString(mt.Return)
			buf.WriteByte(' ')
			buf.WriteString(mt.Name)
			buf.WriteByte('(')
			buf.WriteString(strings.Join(mt.Params, ","))
			buf.WriteByte(')')
			buf.WriteString(arrow)
			buf.WriteString(mt.Obfuscated)
			buf.WriteByte('\n')
		}
	}

	return buf.Bytes()
}
