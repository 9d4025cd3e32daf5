package cstn

import (
	"bytes"
	"sort"
	"strings"
)

var escapesInverse = map[rune]rune{
	'\n': 'n',
	'\t': 't',
	'\'': '\'',
}

// Serialize renders v as compact CSTN. Strings use the ",…'" form and
// integers are written in base 10. The escape glyph is written as is, so a
// string holding "|" followed by n, t, ' or | does not read back unchanged.
func Serialize(v *Value) (string, error) {
	b, err := encoder{}.appendValue(nil, v, 0)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// AppendText appends the compact CSTN form of v to dst.
func AppendText(dst []byte, v *Value) ([]byte, error) {
	return encoder{}.appendValue(dst, v, 0)
}

// SerializeIndent is like Serialize but puts each container element on its
// own line, indented by indent per nesting level. Map keys and values share
// a line.
func SerializeIndent(v *Value, indent string) (string, error) {
	b, err := encoder{indent: indent, pretty: true}.appendValue(nil, v, 0)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Canonical renders v compactly with map pairs ordered by the canonical
// text of their keys. Unlike Serialize it writes the escape glyph as "||",
// so two values are Equal exactly when their canonical texts are identical.
func (v *Value) Canonical() (string, error) {
	b, err := encoder{canonical: true}.appendValue(nil, v, 0)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type encoder struct {
	indent    string
	pretty    bool
	canonical bool
}

func (e encoder) newline(dst []byte, level int) []byte {
	if !e.pretty {
		return dst
	}
	dst = append(dst, '\n')
	for i := 0; i < level; i++ {
		dst = append(dst, e.indent...)
	}
	return dst
}

func (e encoder) appendValue(dst []byte, v *Value, level int) (_ []byte, err error) {
	if v == nil {
		return dst, &UnsupportedTypeError{Kind: -1, Msg: "nil value"}
	}

	switch v.Kind {
	case KindString:
		return e.appendString(dst, v.Text), nil
	case KindInteger:
		if v.Int == nil {
			return dst, &UnsupportedTypeError{Kind: v.Kind, Msg: "nil integer"}
		}
		return appendInteger(dst, v), nil
	case KindList:
		return e.appendItems(dst, '{', '}', v.Items, level)
	case KindTuple:
		return e.appendItems(dst, '[', ']', v.Items, level)
	case KindMap:
		return e.appendMap(dst, v, level)
	}

	return dst, &UnsupportedTypeError{Kind: v.Kind}
}

func (e encoder) appendString(dst []byte, s string) []byte {
	var sb strings.Builder
	sb.Grow(len(s) + 2)

	sb.WriteRune(',')
	for _, r := range s {
		if g, ok := escapesInverse[r]; ok {
			sb.WriteRune(escapeChar)
			r = g
		} else if r == escapeChar && e.canonical {
			sb.WriteRune(escapeChar)
		}
		sb.WriteRune(r)
	}
	sb.WriteRune('\'')

	return append(dst, sb.String()...)
}

func appendInteger(dst []byte, v *Value) []byte {
	s := v.Int.String()
	switch s[0] {
	case '-':
		s = string(signNegate) + s[1:]
	case '+':
		s = string(signKeep) + s[1:]
	}

	dst = append(dst, s...)
	return append(dst, 'd')
}

func (e encoder) appendItems(dst []byte, start, end byte, items []*Value, level int) (_ []byte, err error) {
	dst = append(dst, start)
	for _, c := range items {
		dst = e.newline(dst, level+1)
		dst, err = e.appendValue(dst, c, level+1)
		if err != nil {
			return
		}
	}
	if len(items) > 0 {
		dst = e.newline(dst, level)
	}
	dst = append(dst, end)
	return dst, nil
}

func (e encoder) appendMap(dst []byte, v *Value, level int) (_ []byte, err error) {
	if e.canonical && len(v.Pairs) > 1 {
		return e.appendSortedMap(dst, v.Pairs)
	}

	dst = append(dst, '(')
	for _, p := range v.Pairs {
		dst = e.newline(dst, level+1)
		dst, err = e.appendValue(dst, p.Key, level+1)
		if err != nil {
			return
		}
		if e.pretty {
			dst = append(dst, ' ')
		}
		dst, err = e.appendValue(dst, p.Value, level+1)
		if err != nil {
			return
		}
	}
	if len(v.Pairs) > 0 {
		dst = e.newline(dst, level)
	}
	dst = append(dst, ')')
	return dst, nil
}

type renderedPair struct {
	key, value []byte
}

// appendSortedMap writes pairs ordered by canonical key text, then by
// canonical value text. Keys of one map are distinct, so the second
// comparison only matters for maps built by hand with duplicate keys.
// Each pair is rendered exactly once.
func (e encoder) appendSortedMap(dst []byte, pairs []Pair) ([]byte, error) {
	rs := make([]renderedPair, len(pairs))
	for i, p := range pairs {
		k, err := e.appendValue(nil, p.Key, 0)
		if err != nil {
			return dst, err
		}
		v, err := e.appendValue(nil, p.Value, 0)
		if err != nil {
			return dst, err
		}
		rs[i] = renderedPair{key: k, value: v}
	}

	sort.SliceStable(rs, func(i, j int) bool {
		if c := bytes.Compare(rs[i].key, rs[j].key); c != 0 {
			return c < 0
		}
		return bytes.Compare(rs[i].value, rs[j].value) < 0
	})

	dst = append(dst, '(')
	for _, r := range rs {
		dst = append(dst, r.key...)
		dst = append(dst, r.value...)
	}
	dst = append(dst, ')')
	return dst, nil
}
