package typedesc

import (
	"strings"
	"unicode"
)

const (
	nullSuffix   = " or null"
	enumWrapper  = "Enum"
	arrayWrapper = "Array"
)

// Context is the resource context a raw type string is normalized in.
type Context struct {
	// Resource is the resource currently being processed.
	Resource string
	// Field is the field being normalized; it only serves error reporting.
	Field string
	// Known holds every resource name of the run.
	Known map[string]struct{}
}

// IsKnown reports whether name is a documented resource.
func (c Context) IsKnown(name string) bool {
	_, ok := c.Known[name]
	return ok
}

// Normalize parses a raw documented type string into a Descriptor.
//
// Rules, in precedence order:
//  1. "X or null" strips the suffix and marks the result nullable.
//  2. "Enum(a, b)" / "Enum[a, b]" yields a constrained string.
//  3. "Array(X)" / "Array[X]" yields a collection of X.
//  4. A known resource name yields a reference, or a self reference when it
//     names the resource being processed.
//  5. Anything else is passed through as a scalar token.
//
// Wrapper arguments end at the matching closer, so "Array(Enum(a, b))" is a
// collection of a constrained string. A collection of collections is rejected.
func Normalize(raw string, ctx Context) (*Descriptor, error) {
	p := &normalizer{ctx: ctx, raw: raw}

	return p.normalize(raw)
}

type normalizer struct {
	ctx Context
	raw string
}

func (p *normalizer) fail(reason string) *ParseError {
	return &ParseError{
		Resource: p.ctx.Resource,
		Field:    p.ctx.Field,
		Raw:      p.raw,
		Reason:   reason,
	}
}

func (p *normalizer) normalize(s string) (*Descriptor, error) {
	// The suffix is matched before leading space is trimmed so that
	// " or null" leaves an empty type.
	if rest, ok := strings.CutSuffix(strings.TrimRightFunc(s, unicode.IsSpace), nullSuffix); ok {
		d, err := p.normalize(rest)
		if err != nil {
			return nil, err
		}

		return d.OrNull(), nil
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return nil, p.fail("empty type")
	}

	if inner, ok, err := p.unwrap(s, enumWrapper); ok || err != nil {
		if err != nil {
			return nil, err
		}

		return p.enum(inner)
	}

	if inner, ok, err := p.unwrap(s, arrayWrapper); ok || err != nil {
		if err != nil {
			return nil, err
		}

		elem, err := p.normalize(inner)
		if err != nil {
			return nil, err
		}

		if elem.Kind == KindCollection {
			return nil, p.fail("nested collections are not supported")
		}

		return Collection(elem), nil
	}

	if _, err := p.balance(s); err != nil {
		return nil, err
	}

	if p.ctx.IsKnown(s) {
		if s == p.ctx.Resource {
			return SelfReference(), nil
		}

		return Reference(s), nil
	}

	return Scalar(s), nil
}

// unwrap matches "<wrapper>(inner)" or "<wrapper>[inner]". The boolean result
// is false when s does not start with the wrapper and an opener.
func (p *normalizer) unwrap(s, wrapper string) (string, bool, error) {
	rest, ok := strings.CutPrefix(s, wrapper)
	if !ok || rest == "" || !isOpener(rest[0]) {
		return "", false, nil
	}

	end, err := p.balance(rest)
	if err != nil {
		return "", true, err
	}

	if end != len(rest)-1 {
		return "", true, p.fail("unexpected text after " + wrapper + " arguments")
	}

	inner := rest[1:end]
	if strings.TrimSpace(inner) == "" {
		return "", true, p.fail("empty " + wrapper + " arguments")
	}

	return inner, true, nil
}

func (p *normalizer) enum(inner string) (*Descriptor, error) {
	parts := strings.Split(inner, ",")
	allowed := make([]string, 0, len(parts))

	for _, part := range parts {
		v := strings.TrimSpace(part)
		if v == "" {
			return nil, p.fail("empty Enum value")
		}

		allowed = append(allowed, v)
	}

	return ConstrainedString(allowed...), nil
}

// balance verifies every bracket in s is properly paired and returns the
// index where the bracket opened at s[0] is closed, or -1 when s does not
// start with an opener.
func (p *normalizer) balance(s string) (int, error) {
	var stack []byte

	first := -1

	for i := range len(s) {
		c := s[i]

		switch {
		case isOpener(c):
			stack = append(stack, c)
		case isCloser(c):
			if len(stack) == 0 || closerFor(stack[len(stack)-1]) != c {
				return 0, p.fail("unmatched " + string(c))
			}

			stack = stack[:len(stack)-1]
			if len(stack) == 0 && first < 0 && isOpener(s[0]) {
				first = i
			}
		}
	}

	if len(stack) > 0 {
		return 0, p.fail("unclosed " + string(stack[len(stack)-1]))
	}

	return first, nil
}

func isOpener(c byte) bool {
	return c == '(' || c == '['
}

func isCloser(c byte) bool {
	return c == ')' || c == ']'
}

func closerFor(opener byte) byte {
	if opener == '[' {
		return ']'
	}

	return ')'
}
