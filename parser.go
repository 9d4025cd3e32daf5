package cstn

import (
	"fmt"
	"math/big"
	"strings"
)

const (
	// signKeep leaves the magnitude as is, signNegate negates it. This is the
	// reverse of the usual convention and the serializer writes it the same
	// way.
	signKeep   = '-'
	signNegate = '+'

	escapeChar = '|'
)

var escapes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'\'': '\'',
}

var bases = map[rune]int{
	'h': 16,
	'd': 10,
	'o': 8,
	'b': 2,
	'u': 1,
}

// DefaultMaxDepth bounds container nesting for DefaultParser.
const DefaultMaxDepth = 10000

type Parser interface {
	Parse(text string) (*Value, error)
	ParseBytes(b []byte) (*Value, error)
}

type parser struct {
	maxDepth int
	strict   bool
}

var DefaultParser Parser = parser{maxDepth: DefaultMaxDepth}

// NewParser returns a Parser that fails with a DepthError once containers
// nest deeper than maxDepth. A maxDepth <= 0 selects DefaultMaxDepth.
func NewParser(maxDepth int) Parser {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return parser{maxDepth: maxDepth}
}

// NewStrictParser is like NewParser but the returned Parser also fails with
// a SyntaxError when anything other than whitespace follows the value.
func NewStrictParser(maxDepth int) Parser {
	p := NewParser(maxDepth).(parser)
	p.strict = true
	return p
}

// Parse reads the first value from text. Anything after it is ignored; use
// NewStrictParser to reject trailing data.
func Parse(text string) (*Value, error) {
	return DefaultParser.Parse(text)
}

func ParseBytes(b []byte) (*Value, error) {
	return DefaultParser.ParseBytes(b)
}

func (p parser) ParseBytes(b []byte) (*Value, error) {
	return p.Parse(string(b))
}

func (p parser) Parse(text string) (v *Value, err error) {
	d := decoder{c: newCursor(text), maxDepth: p.maxDepth}

	v, err = d.parseValue(0)
	if err != nil {
		return nil, err
	}

	if !p.strict {
		return v, nil
	}
	if r := d.c.peekPastWhitespace(); r != eof {
		return nil, &SyntaxError{Offset: d.c.Offset(), Char: r, Msg: "trailing data after value"}
	}

	return v, nil
}

// decoder holds the state of a single Parse call.
type decoder struct {
	c        *cursor
	maxDepth int
}

func (d *decoder) syntax(offset int, r rune, format string, args ...interface{}) error {
	return &SyntaxError{Offset: offset, Char: r, Msg: fmt.Sprintf(format, args...)}
}

func (d *decoder) truncated(format string, args ...interface{}) error {
	return &TruncatedInputError{Offset: d.c.Offset(), Msg: fmt.Sprintf(format, args...)}
}

func (d *decoder) enter(depth int) error {
	if depth+1 > d.maxDepth {
		return &DepthError{Offset: d.c.Offset() - 1, Limit: d.maxDepth}
	}
	return nil
}

func (d *decoder) parseValue(depth int) (*Value, error) {
	r := d.c.skipWhitespace()
	offset := d.c.Offset() - 1

	switch {
	case r == eof:
		return nil, d.truncated("expected a value")
	case r == ',':
		return d.parseString('\'')
	case r == '«':
		return d.parseString('»')
	case r == '{':
		if err := d.enter(depth); err != nil {
			return nil, err
		}
		items, err := d.parseItems('}', depth+1)
		if err != nil {
			return nil, err
		}
		return &Value{Kind: KindList, Items: items}, nil
	case r == '[':
		if err := d.enter(depth); err != nil {
			return nil, err
		}
		items, err := d.parseItems(']', depth+1)
		if err != nil {
			return nil, err
		}
		return &Value{Kind: KindTuple, Items: items}, nil
	case r == '(':
		if err := d.enter(depth); err != nil {
			return nil, err
		}
		return d.parseMap(')', depth+1)
	case r == signKeep || r == signNegate:
		next := d.c.read()
		if next == eof {
			return nil, d.truncated("expected a digit after sign %q", r)
		}
		if !isDigit(next) {
			return nil, d.syntax(d.c.Offset()-1, next, "expected a digit after sign %q", r)
		}
		v, err := d.parseInteger(next)
		if err != nil {
			return nil, err
		}
		if r == signNegate {
			v.Int.Neg(v.Int)
		}
		return v, nil
	case isDigit(r):
		return d.parseInteger(r)
	}

	return nil, d.syntax(offset, r, "expected a value")
}

func (d *decoder) parseString(end rune) (*Value, error) {
	start := d.c.Offset() - 1

	var sb strings.Builder
	for {
		r := d.c.read()
		if r == eof {
			return nil, d.truncated("string started at offset %d is not terminated by %q", start, end)
		}
		if r == end {
			return &Value{Kind: KindString, Text: sb.String()}, nil
		}

		if r == escapeChar {
			r = d.c.read()
			if r == eof {
				return nil, d.truncated("escape at end of input")
			}
			if e, ok := escapes[r]; ok {
				r = e
			}
		}

		sb.WriteRune(r)
	}
}

func (d *decoder) parseItems(end rune, depth int) ([]*Value, error) {
	start := d.c.Offset() - 1

	items := make([]*Value, 0)
	for {
		r := d.c.peekPastWhitespace()
		if r == eof {
			return nil, d.truncated("container started at offset %d is not terminated by %q", start, end)
		}
		if r == end {
			d.c.read()
			return items, nil
		}

		item, err := d.parseValue(depth)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

func (d *decoder) parseMap(end rune, depth int) (*Value, error) {
	start := d.c.Offset() - 1

	m := &Value{Kind: KindMap, Pairs: make([]Pair, 0)}
	for {
		r := d.c.peekPastWhitespace()
		if r == eof {
			return nil, d.truncated("map started at offset %d is not terminated by %q", start, end)
		}
		if r == end {
			d.c.read()
			return m, nil
		}

		key, err := d.parseValue(depth)
		if err != nil {
			return nil, err
		}
		d.c.peekPastWhitespace()
		value, err := d.parseValue(depth)
		if err != nil {
			return nil, err
		}

		m.put(key, value)
	}
}

func isDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'A' && r <= 'F')
}

func digitValue(r rune) int {
	if r >= '0' && r <= '9' {
		return int(r - '0')
	}
	return int(r-'A') + 10
}

// parseInteger reads the digit run that starts with first and its optional
// base glyph.
func (d *decoder) parseInteger(first rune) (*Value, error) {
	start := d.c.Offset() - 1
	digits := string(first) + d.c.readWhile(isDigit)

	base, ok := bases[d.c.peek()]
	if ok {
		d.c.read()
	} else {
		base = 12
	}

	if base == 1 {
		count := int64(0)
		for i, r := range digits {
			switch r {
			case '1':
				count++
			case '0':
			default:
				return nil, d.syntax(start+i, r, "unary digits must be 0 or 1")
			}
		}
		return &Value{Kind: KindInteger, Int: big.NewInt(count)}, nil
	}

	for i, r := range digits {
		if digitValue(r) >= base {
			return nil, d.syntax(start+i, r, "digit is not valid in base %d", base)
		}
	}

	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, d.syntax(start, first, "invalid base %d integer %q", base, digits)
	}

	return &Value{Kind: KindInteger, Int: n}, nil
}
