package graph

import (
	"fmt"
	"strings"
)

// Field is one selected field, optionally with a nested selection for
// relational fields.
type Field struct {
	Name      string
	Selection Selection
}

// Selection is an ordered list of fields. Output objects list their keys in
// selection order.
type Selection []Field

// Select builds a selection of scalar fields.
func Select(names ...string) Selection {
	sel := make(Selection, 0, len(names))
	for _, name := range names {
		sel = append(sel, Field{Name: name})
	}
	return sel
}

// With appends a relational field with its own selection.
func (s Selection) With(name string, sub Selection) Selection {
	return append(s, Field{Name: name, Selection: sub})
}

// String renders the selection in the syntax accepted by ParseSelection.
func (s Selection) String() string {
	var b strings.Builder
	for i, f := range s {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(f.Name)
		if len(f.Selection) > 0 {
			b.WriteString(" { ")
			b.WriteString(f.Selection.String())
			b.WriteString(" }")
		}
	}
	return b.String()
}

// ParseSelection parses a GraphQL-like selection such as
// "id name posts { id title }". Commas are ignored and the whole selection
// may be wrapped in braces.
func ParseSelection(src string) (Selection, error) {
	p := &selectionParser{src: src}
	p.next()
	wrapped := p.tok == "{"
	if wrapped {
		p.next()
	}
	sel, err := p.parseFields()
	if err != nil {
		return nil, err
	}
	if wrapped {
		if p.tok != "}" {
			return nil, p.errorf("expected }")
		}
		p.next()
	}
	if p.tok != "" {
		return nil, p.errorf("unexpected %q", p.tok)
	}
	return sel, nil
}

type selectionParser struct {
	src string
	pos int
	// tok is the current token; "" at end of input.
	tok    string
	tokPos int
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}

func (p *selectionParser) next() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',' {
			p.pos++
			continue
		}
		break
	}
	p.tokPos = p.pos
	if p.pos >= len(p.src) {
		p.tok = ""
		return
	}
	c := p.src[p.pos]
	if !isNameStart(c) {
		p.tok = string(c)
		p.pos++
		return
	}
	end := p.pos + 1
	for end < len(p.src) && isNameChar(p.src[end]) {
		end++
	}
	p.tok = p.src[p.pos:end]
	p.pos = end
}

func (p *selectionParser) errorf(format string, args ...any) error {
	return BadRequestError{Reason: fmt.Sprintf("selection at offset %d: %s", p.tokPos, fmt.Sprintf(format, args...))}
}

func (p *selectionParser) parseFields() (Selection, error) {
	var sel Selection
	for p.tok != "" && p.tok != "}" {
		if !isNameStart(p.tok[0]) {
			return nil, p.errorf("unexpected %q", p.tok)
		}
		field := Field{Name: p.tok}
		p.next()
		if p.tok == "{" {
			p.next()
			sub, err := p.parseFields()
			if err != nil {
				return nil, err
			}
			if p.tok != "}" {
				return nil, p.errorf("expected } to close %s", field.Name)
			}
			if len(sub) == 0 {
				return nil, p.errorf("empty selection on %s", field.Name)
			}
			p.next()
			field.Selection = sub
		}
		sel = append(sel, field)
	}
	return sel, nil
}

// resolve checks sel against the fields of t and fills in default
// selections for relational fields named without subfields.
func (s Selection) resolve(t TypeName) (Selection, error) {
	if len(s) == 0 {
		return defaultSelection(t), nil
	}
	fields := schema[t]
	seen := make(map[string]struct{}, len(s))
	out := make(Selection, 0, len(s))
	for _, f := range s {
		def, ok := fields[f.Name]
		if !ok {
			return nil, BadRequestError{Reason: fmt.Sprintf("type %s has no field %q", t, f.Name)}
		}
		if _, dup := seen[f.Name]; dup {
			return nil, BadRequestError{Reason: fmt.Sprintf("field %s.%s selected twice", t, f.Name)}
		}
		seen[f.Name] = struct{}{}
		if !def.relational() {
			if len(f.Selection) > 0 {
				return nil, BadRequestError{Reason: fmt.Sprintf("scalar field %s.%s has no subfields", t, f.Name)}
			}
			out = append(out, Field{Name: f.Name})
			continue
		}
		sub, err := f.Selection.resolve(def.target)
		if err != nil {
			return nil, err
		}
		out = append(out, Field{Name: f.Name, Selection: sub})
	}
	return out, nil
}
