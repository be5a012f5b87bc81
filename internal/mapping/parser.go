package mapping

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"mapconv/internal/descriptor"
	"mapconv/internal/diagnostic"
)

const (
	arrow         = " -> "
	maxLineLength = 1 << 20
)

// ParseOption configures the parser.
type ParseOption func(*parser)

// AllowRedundant accepts a member line that exactly repeats an earlier one
// (same name, descriptor and obfuscated name). Conflicting repeats still fail.
func AllowRedundant() ParseOption {
	return func(p *parser) {
		p.allowRedundant = true
	}
}

// Parse parses mapping text into a Model.
func Parse(data []byte, opts ...ParseOption) (*Model, error) {
	return ParseReader(bytes.NewReader(data), opts...)
}

// ParseReader parses mapping text from r into a Model.
func ParseReader(r io.Reader, opts ...ParseOption) (*Model, error) {
	p := &parser{model: NewModel()}
	for _, opt := range opts {
		opt(p)
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	for sc.Scan() {
		p.line++

		if err := p.parseLine(sc.Text()); err != nil {
			return nil, err
		}
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mapping: %w", err)
	}

	if diags := Validate(p.model); diags.HasErrors() {
		first := diags.Errors[0]
		return nil, diagnostic.Errorf(first.Kind, "%s", first.Message).
			AtLine(first.Line).
			In(first.Class, first.Member)
	}

	return p.model, nil
}

type parser struct {
	model          *Model
	current        *ClassEntry
	line           int
	allowRedundant bool
}

func (p *parser) parseLine(raw string) error {
	text := strings.TrimRight(raw, " \t\r")

	trimmed := strings.TrimLeft(text, " \t")
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	if len(trimmed) == len(text) {
		return p.parseClass(text)
	}

	if p.current == nil {
		return p.malformed("member line before any class line")
	}

	return p.parseMember(trimmed)
}

// parseClass handles "orig.Name -> obf.Name:".
func (p *parser) parseClass(text string) error {
	body, ok := strings.CutSuffix(text, ":")
	if !ok {
		return p.malformed("class line must end with ':'")
	}

	orig, obf, ok := strings.Cut(body, arrow)
	if !ok {
		return p.malformed("missing " + strings.TrimSpace(arrow))
	}

	for _, name := range []string{orig, obf} {
		if err := validateClassName(name); err != nil {
			return p.wrap(err)
		}
	}

	c := NewClass(orig, obf)
	c.Line = p.line

	if err := p.model.AddClass(c); err != nil {
		return err
	}

	p.current = c

	return nil
}

// parseMember handles "Type name -> obf" and "[a:b:]Ret name(P,...) -> obf".
func (p *parser) parseMember(text string) error {
	left, obf, ok := strings.Cut(text, arrow)
	if !ok {
		return p.malformed("missing " + strings.TrimSpace(arrow))
	}

	if !validMemberName(obf) {
		return p.malformed(fmt.Sprintf("invalid obfuscated name %q", obf))
	}

	lines, left, err := p.lineRange(left)
	if err != nil {
		return err
	}

	typ, name, hasType := strings.Cut(left, " ")
	if !hasType {
		name, typ = typ, ""
	}

	open := strings.IndexByte(name, '(')
	if open < 0 {
		if lines != nil {
			return p.malformed("line range on a field")
		}

		return p.addField(name, obf, typ)
	}

	if !hasType {
		return p.malformed("method without return type")
	}

	if !strings.HasSuffix(name, ")") {
		return p.malformed("unterminated parameter list")
	}

	params := splitParams(name[open+1 : len(name)-1])

	return p.addMethod(&MethodEntry{
		Name:       name[:open],
		Obfuscated: obf,
		Return:     typ,
		Params:     params,
		Lines:      lines,
		Line:       p.line,
	})
}

func (p *parser) addField(name, obf, typ string) error {
	if !validMemberName(name) {
		return p.malformed(fmt.Sprintf("invalid field name %q", name))
	}

	f := &FieldEntry{Name: name, Obfuscated: obf, Type: typ, Line: p.line}

	err := p.current.AddField(f)
	if err == nil {
		return nil
	}

	if errors.Is(err, diagnostic.ErrDuplicateMemberMapping) && p.allowRedundant {
		if prev, _ := p.current.Field(name); prev.Obfuscated == obf && prev.Type == typ {
			return nil
		}
	}

	return p.wrap(err)
}

func (p *parser) addMethod(mt *MethodEntry) error {
	if !validMemberName(mt.Name) {
		return p.malformed(fmt.Sprintf("invalid method name %q", mt.Name))
	}

	err := p.current.AddMethod(mt)
	if err == nil {
		return nil
	}

	if errors.Is(err, diagnostic.ErrDuplicateMemberMapping) && p.allowRedundant {
		if prev, _ := p.current.Method(mt.Name, mt.Descriptor()); prev.Obfuscated == mt.Obfuscated {
			return nil
		}
	}

	return p.wrap(err)
}

// lineRange strips an optional "start:end:" prefix.
func (p *parser) lineRange(left string) (*LineRange, string, error) {
	if left == "" || left[0] < '0' || left[0] > '9' {
		return nil, left, nil
	}

	parts := strings.SplitN(left, ":", 3)
	if len(parts) != 3 {
		return nil, "", p.malformed("incomplete line range")
	}

	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, "", p.malformed("bad line range start " + strconv.Quote(parts[0]))
	}

	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, "", p.malformed("bad line range end " + strconv.Quote(parts[1]))
	}

	return &LineRange{Start: start, End: end}, parts[2], nil
}

func (p *parser) malformed(msg string) error {
	return diagnostic.Errorf(diagnostic.KindMalformedMapping, "%s", msg).AtLine(p.line)
}

// wrap attaches the current line to err. Type name failures become
// malformed-mapping errors that still match ErrMalformedTypeName.
func (p *parser) wrap(err error) error {
	var de *diagnostic.Error
	if !errors.As(err, &de) {
		return diagnostic.Errorf(diagnostic.KindMalformedMapping, "unexpected failure").
			AtLine(p.line).Wrap(err)
	}

	if de.Kind == diagnostic.KindMalformedTypeName {
		owner := ""
		if p.current != nil {
			owner = p.current.Original
		}

		return diagnostic.Errorf(diagnostic.KindMalformedMapping, "bad type name").
			AtLine(p.line).In(owner, "").Wrap(de)
	}

	if de.Line == 0 {
		de.Line = p.line
	}

	return de
}

func splitParams(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}

	params := strings.Split(list, ",")
	for i := range params {
		params[i] = strings.TrimSpace(params[i])
	}

	return params
}

func validateClassName(name string) error {
	if descriptor.IsPrimitive(name) || strings.HasSuffix(name, "[]") {
		return diagnostic.Errorf(diagnostic.KindMalformedTypeName, "%q is not a class name", name)
	}

	return descriptor.Validate(name)
}

// validMemberName accepts Java identifiers plus the <init> and <clinit>
// special names.
func validMemberName(name string) bool {
	if name == "<init>" || name == "<clinit>" {
		return true
	}

	if name == "" {
		return false
	}

	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_', c == '$':
		case c >= '0' && c <= '9' && i > 0:
		case c >= 0x80:
			// Non-ASCII identifiers are legal Java.
		default:
			return false
		}
	}

	return true
}
