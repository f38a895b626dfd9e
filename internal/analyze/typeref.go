package analyze

import (
	"fmt"
	"strings"
	"unicode"

	"rxgen/internal/common"
)

// TypeRef is a parsed type reference such as "System.IObservable<string>[]".
type TypeRef struct {
	Name     string // dotted name without global:: or type arguments
	Args     []TypeRef
	Array    int  // number of trailing [] ranks
	Nullable bool // trailing ?
}

// ParseTypeRef parses a C# type reference. Tuple and pointer types are not supported.
func ParseTypeRef(s string) (TypeRef, error) {
	p := &refParser{src: s}

	ref, err := p.parse()
	if err != nil {
		return TypeRef{}, fmt.Errorf("parse type reference %q: %w", s, err)
	}

	p.skipSpace()
	if p.pos != len(p.src) {
		return TypeRef{}, fmt.Errorf("parse type reference %q: unexpected %q at offset %d", s, p.src[p.pos:], p.pos)
	}

	return ref, nil
}

// String renders the reference back in canonical form.
func (r TypeRef) String() string {
	var sb strings.Builder

	sb.WriteString(r.Name)

	if len(r.Args) > 0 {
		sb.WriteByte('<')

		for i, a := range r.Args {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(a.String())
		}

		sb.WriteByte('>')
	}

	if r.Nullable {
		sb.WriteByte('?')
	}

	for range r.Array {
		sb.WriteString("[]")
	}

	return sb.String()
}

type refParser struct {
	src string
	pos int
}

func (p *refParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *refParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}

	return p.src[p.pos]
}

func (p *refParser) parse() (TypeRef, error) {
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], common.GlobalPrefix) {
		p.pos += len(common.GlobalPrefix)
	}

	start := p.pos
	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if r == '.' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || r >= 0x80 {
			p.pos++
			continue
		}

		break
	}

	name := p.src[start:p.pos]
	if name == "" || strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") || strings.Contains(name, "..") {
		return TypeRef{}, fmt.Errorf("expected type name at offset %d", start)
	}

	ref := TypeRef{Name: name}

	p.skipSpace()
	if p.peek() == '<' {
		p.pos++

		for {
			arg, err := p.parse()
			if err != nil {
				return TypeRef{}, err
			}

			ref.Args = append(ref.Args, arg)

			p.skipSpace()

			switch p.peek() {
			case ',':
				p.pos++
				continue
			case '>':
				p.pos++
			default:
				return TypeRef{}, fmt.Errorf("expected ',' or '>' at offset %d", p.pos)
			}

			break
		}
	}

	for {
		p.skipSpace()

		switch {
		case p.peek() == '?':
			p.pos++
			ref.Nullable = true
		case strings.HasPrefix(p.src[p.pos:], "[]"):
			p.pos += 2
			ref.Array++
		default:
			return ref, nil
		}
	}
}
