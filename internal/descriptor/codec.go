package descriptor

import (
	"strings"

	"mapconv/internal/diagnostic"
)

const arraySuffix = "[]"

var primitiveCodes = map[string]byte{
	"int":     'I',
	"boolean": 'Z',
	"long":    'J',
	"float":   'F',
	"double":  'D',
	"short":   'S',
	"byte":    'B',
	"char":    'C',
	"void":    'V',
}

var primitiveNames = map[byte]string{
	'I': "int",
	'Z': "boolean",
	'J': "long",
	'F': "float",
	'D': "double",
	'S': "short",
	'B': "byte",
	'C': "char",
	'V': "void",
}

// RenameFunc maps a source-notation class name to another class name.
// It is never called for primitive types.
type RenameFunc func(className string) string

// Encode converts a source type name to its descriptor.
func Encode(typeName string) (string, error) {
	return EncodeFunc(typeName, nil)
}

// EncodeFunc is Encode with class names passed through rename first.
// A nil rename leaves class names unchanged.
func EncodeFunc(typeName string, rename RenameFunc) (string, error) {
	base, dims, err := splitArray(typeName)
	if err != nil {
		return "", err
	}

	var b strings.Builder

	b.Grow(dims + len(base) + 2)

	for range dims {
		b.WriteByte('[')
	}

	if code, ok := primitiveCodes[base]; ok {
		if code == 'V' && dims > 0 {
			return "", malformed(typeName, "array of void")
		}

		b.WriteByte(code)

		return b.String(), nil
	}

	if rename != nil {
		base = rename(base)
		if err := validateClassName(base); err != nil {
			return "", err
		}
	}

	b.WriteByte('L')
	b.WriteString(InternalName(base))
	b.WriteByte(';')

	return b.String(), nil
}

// EncodeMethod builds a method descriptor from a return type and parameter types.
func EncodeMethod(ret string, params []string) (string, error) {
	return EncodeMethodFunc(ret, params, nil)
}

// EncodeMethodFunc is EncodeMethod with class names passed through rename.
func EncodeMethodFunc(ret string, params []string, rename RenameFunc) (string, error) {
	var b strings.Builder

	b.WriteByte('(')

	for _, p := range params {
		if p == "void" {
			return "", malformed(p, "void parameter")
		}

		enc, err := EncodeFunc(p, rename)
		if err != nil {
			return "", err
		}

		b.WriteString(enc)
	}

	b.WriteByte(')')

	enc, err := EncodeFunc(ret, rename)
	if err != nil {
		return "", err
	}

	b.WriteString(enc)

	return b.String(), nil
}

// Decode converts a field or return type descriptor back to a source type name.
func Decode(desc string) (string, error) {
	name, n, err := decodeOne(desc, 0)
	if err != nil {
		return "", err
	}

	if n != len(desc) {
		return "", malformed(desc, "trailing characters")
	}

	return name, nil
}

// DecodeMethod splits a method descriptor into its return type and
// parameter types, all in source notation.
func DecodeMethod(desc string) (string, []string, error) {
	if !strings.HasPrefix(desc, "(") {
		return "", nil, malformed(desc, "method descriptor must start with '('")
	}

	params := []string{}
	pos := 1

	for {
		if pos >= len(desc) {
			return "", nil, malformed(desc, "unterminated parameter list")
		}

		if desc[pos] == ')' {
			pos++
			break
		}

		name, next, err := decodeOne(desc, pos)
		if err != nil {
			return "", nil, err
		}

		if name == "void" {
			return "", nil, malformed(desc, "void parameter")
		}

		params = append(params, name)
		pos = next
	}

	ret, err := Decode(desc[pos:])
	if err != nil {
		return "", nil, err
	}

	return ret, params, nil
}

// InternalName converts a dotted class name to its slash-separated form.
func InternalName(className string) string {
	return strings.ReplaceAll(className, ".", "/")
}

// SourceName converts a slash-separated internal class name to dotted form.
func SourceName(internal string) string {
	return strings.ReplaceAll(internal, "/", ".")
}

// IsPrimitive reports whether name is a primitive type or void.
func IsPrimitive(name string) bool {
	_, ok := primitiveCodes[name]
	return ok
}

// ElementType strips every array suffix from typeName.
func ElementType(typeName string) string {
	for strings.HasSuffix(typeName, arraySuffix) {
		typeName = strings.TrimSuffix(typeName, arraySuffix)
	}

	return typeName
}

// Validate checks that typeName is a well-formed source type name.
func Validate(typeName string) error {
	_, err := Encode(typeName)
	return err
}

func decodeOne(desc string, pos int) (string, int, error) {
	dims := 0
	for pos < len(desc) && desc[pos] == '[' {
		dims++
		pos++
	}

	if pos >= len(desc) {
		return "", pos, malformed(desc, "missing element type")
	}

	var base string

	switch c := desc[pos]; c {
	case 'L':
		end := strings.IndexByte(desc[pos:], ';')
		if end < 0 {
			return "", pos, malformed(desc, "unterminated class type")
		}

		base = SourceName(desc[pos+1 : pos+end])
		if err := validateClassName(base); err != nil {
			return "", pos, err
		}

		pos += end + 1
	default:
		name, ok := primitiveNames[c]
		if !ok {
			return "", pos, malformed(desc, "unknown type code "+string(c))
		}

		if c == 'V' && dims > 0 {
			return "", pos, malformed(desc, "array of void")
		}

		base = name
		pos++
	}

	return base + strings.Repeat(arraySuffix, dims), pos, nil
}

// splitArray validates typeName and separates the element type from the
// number of array dimensions.
func splitArray(typeName string) (string, int, error) {
	for i := 0; i < len(typeName); i++ {
		if !validChar(typeName[i]) {
			return "", 0, malformed(typeName, "invalid character "+string(typeName[i]))
		}
	}

	base := typeName
	dims := 0

	for strings.HasSuffix(base, arraySuffix) {
		base = strings.TrimSuffix(base, arraySuffix)
		dims++
	}

	if strings.ContainsAny(base, "[]") {
		return "", 0, malformed(typeName, "unterminated array suffix")
	}

	if _, ok := primitiveCodes[base]; ok {
		return base, dims, nil
	}

	if err := validateClassName(base); err != nil {
		return "", 0, err
	}

	return base, dims, nil
}

func validateClassName(name string) error {
	if name == "" {
		return malformed(name, "empty type name")
	}

	for i := 0; i < len(name); i++ {
		if c := name[i]; c == '[' || c == ']' || !validChar(c) {
			return malformed(name, "invalid character "+string(c))
		}
	}

	for seg := range strings.SplitSeq(name, ".") {
		if seg == "" {
			return malformed(name, "empty package segment")
		}
	}

	return nil
}

func validChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '.', c == '$', c == '[', c == ']':
		return true
	default:
		return false
	}
}

func malformed(input, reason string) *diagnostic.Error {
	return diagnostic.Errorf(diagnostic.KindMalformedTypeName, "%q: %s", input, reason)
}
