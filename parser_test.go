package cstn

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireValue(t *testing.T, want, got *Value) {
	t.Helper()
	require.Truef(t, Equal(want, got), "want %v\ngot  %v", want, got)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    *Value
		wantErr error
	}{
		// base 16
		{name: "xpass: hex zero", text: "0h", want: Int(0)},
		{name: "xpass: hex one", text: "1h", want: Int(1)},
		{name: "xpass: hex EF", text: "EFh", want: Int(239)},
		{name: "xpass: hex 1234", text: "1234h", want: Int(0x1234)},
		{name: "xpass: hex leading whitespace", text: "    000Fh", want: Int(15)},

		// base 12
		{name: "xpass: duodecimal zero", text: "0 ", want: Int(0)},
		{name: "xpass: duodecimal tab", text: "1\t", want: Int(1)},
		{name: "xpass: duodecimal AB", text: "AB\n", want: Int(131)},
		{name: "xpass: duodecimal 1234", text: "1234 ", want: Int(2056)},
		{name: "xpass: duodecimal at end of input", text: "AB", want: Int(131)},
		{name: "xpass: duodecimal leading whitespace", text: "    000B ", want: Int(11)},
		{name: "xfail: duodecimal with C", text: "1C ", wantErr: ErrSyntax},

		// base 10
		{name: "xpass: decimal zero", text: "0d", want: Int(0)},
		{name: "xpass: decimal 89", text: "89d", want: Int(89)},
		{name: "xpass: decimal 1234", text: "1234d", want: Int(1234)},
		{name: "xpass: decimal leading whitespace", text: "    0009d", want: Int(9)},
		{name: "xfail: decimal with A", text: "1Ad", wantErr: ErrSyntax},

		// base 8
		{name: "xpass: octal 67", text: "67o", want: Int(55)},
		{name: "xpass: octal 1234", text: "1234o", want: Int(01234)},
		{name: "xfail: octal with 8", text: "18o", wantErr: ErrSyntax},

		// base 2
		{name: "xpass: binary 11010", text: "11010b", want: Int(0x1a)},
		{name: "xpass: binary 101010", text: "101010b", want: Int(42)},
		{name: "xpass: binary leading zeros", text: "    0001b", want: Int(1)},
		{name: "xfail: binary with 2", text: "12b", wantErr: ErrSyntax},

		// unary
		{name: "xpass: unary zero", text: "0u", want: Int(0)},
		{name: "xpass: unary ten", text: "1111111111u", want: Int(10)},
		{name: "xpass: unary counts ones", text: "101010u", want: Int(3)},
		{name: "xfail: unary with 2", text: "1021u", wantErr: ErrSyntax},

		// signs
		{name: "xpass: negating sign", text: "+9d", want: Int(-9)},
		{name: "xpass: keeping sign", text: "-9d", want: Int(9)},
		{name: "xpass: negating sign with hex", text: "+FFh", want: Int(-255)},
		{name: "xfail: sign followed by space", text: "+ 9d", wantErr: ErrSyntax},
		{name: "xfail: sign followed by letter", text: "-x", wantErr: ErrSyntax},
		{name: "xfail: sign at end of input", text: "+", wantErr: ErrTruncated},

		// strings
		{name: "xpass: comma string", text: ",hello, world!'", want: String("hello, world!")},
		{name: "xpass: guillemet string", text: "«Je suis Cancer»", want: String("Je suis Cancer")},
		{name: "xpass: comma string escapes", text: ",escaped:|t|''", want: String("escaped:\t'")},
		{name: "xpass: guillemet string escapes", text: "«escaped:|t|»»", want: String("escaped:\t»")},
		{name: "xpass: newline escape", text: ",a|nb'", want: String("a\nb")},
		{name: "xpass: unknown escape passes through", text: ",|x||'", want: String("x|")},
		{name: "xpass: apostrophe inside guillemets", text: "«it's»", want: String("it's")},
		{name: "xpass: guillemet inside comma string", text: ",a»b'", want: String("a»b")},
		{name: "xpass: whitespace kept inside string", text: ", \t '", want: String(" \t ")},
		{name: "xfail: unterminated string", text: ",abc", wantErr: ErrTruncated},
		{name: "xfail: escape at end of input", text: ",abc|", wantErr: ErrTruncated},

		// lists
		{name: "xpass: empty list", text: "{}", want: List()},
		{name: "xpass: empty list with space", text: "{ }", want: List()},
		{name: "xpass: empty list with tab", text: "{\t}", want: List()},
		{name: "xpass: empty list with newline", text: "{\n}", want: List()},
		{name: "xpass: list of integers", text: "{1 2 3d}", want: List(Int(1), Int(2), Int(3))},
		{name: "xpass: list of strings", text: "{,1',2',3'}", want: List(String("1"), String("2"), String("3"))},
		{name: "xpass: list of mixed", text: "{,1'2d,3'}", want: List(String("1"), Int(2), String("3"))},
		{name: "xfail: unterminated list", text: "{", wantErr: ErrTruncated},
		{name: "xfail: list closed by paren", text: "{)", wantErr: ErrSyntax},

		// tuples
		{name: "xpass: empty tuple", text: "[]", want: Tuple()},
		{name: "xpass: empty tuple with newline", text: "[\n]", want: Tuple()},
		{name: "xpass: tuple of integers", text: "[1 2 3d]", want: Tuple(Int(1), Int(2), Int(3))},
		{name: "xpass: tuple of mixed", text: "[,1'2d,3']", want: Tuple(String("1"), Int(2), String("3"))},
		{name: "xfail: unterminated tuple", text: "[1d", wantErr: ErrTruncated},

		// maps
		{name: "xpass: empty map", text: "()", want: NewMap()},
		{name: "xpass: empty map with tab", text: "(\t)", want: NewMap()},
		{name: "xpass: map of integers", text: "(1d2d3d4d)", want: NewMap(P(Int(1), Int(2)), P(Int(3), Int(4)))},
		{
			name: "xpass: map of mixed",
			text: "(,1'2d3d«4»)",
			want: NewMap(P(String("1"), Int(2)), P(Int(3), String("4"))),
		},
		{name: "xpass: list as key", text: "({}{})", want: NewMap(P(List(), List()))},
		{
			name: "xpass: map as key",
			text: "(({}{})3d)",
			want: NewMap(P(NewMap(P(List(), List())), Int(3))),
		},
		{name: "xfail: map missing value", text: "(,a')", wantErr: ErrSyntax},
		{name: "xfail: unterminated map", text: "(,a',b'", wantErr: ErrTruncated},
		{name: "xfail: map value at end of input", text: "(,a'", wantErr: ErrTruncated},

		// readme
		{name: "xpass: readme list", text: "{,hello',world'}", want: List(String("hello"), String("world"))},
		{name: "xpass: readme tuple", text: "[,hello',world']", want: Tuple(String("hello"), String("world"))},
		{name: "xpass: readme map", text: "(,hello',world')", want: NewMap(P(String("hello"), String("world")))},
		{
			name: "xpass: readme nested",
			text: "{\n    FFhFFh1234d\n    (,key',value')\n    ({«hello»«world»},the previous list is the key for this value')\n}",
			want: List(
				Int(255),
				Int(255),
				Int(1234),
				NewMap(P(String("key"), String("value"))),
				NewMap(P(List(String("hello"), String("world")), String("the previous list is the key for this value"))),
			),
		},

		// top level
		{name: "xfail: empty input", text: "", wantErr: ErrTruncated},
		{name: "xfail: whitespace only", text: " \n\t", wantErr: ErrTruncated},
		{name: "xfail: unexpected character", text: "%", wantErr: ErrSyntax},
		{name: "xfail: lower case digit", text: "ff", wantErr: ErrSyntax},
		{name: "xfail: stray closer", text: "}", wantErr: ErrSyntax},
		{name: "xpass: trailing whitespace", text: "{}\n\n", want: List()},
		{name: "xpass: trailing value ignored", text: "1d2d", want: Int(1)},
		{name: "xpass: trailing garbage ignored", text: "{}%", want: List()},
		{name: "xpass: trailing closer ignored", text: "(,a'1d))", want: NewMap(P(String("a"), Int(1)))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.text)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Truef(t, errors.Is(err, tt.wantErr), "Parse() error = %v, want %v", err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			requireValue(t, tt.want, got)
		})
	}
}

func TestParse_ListAndTupleDiffer(t *testing.T) {
	list, err := Parse("{1d}")
	require.NoError(t, err)
	tuple, err := Parse("[1d]")
	require.NoError(t, err)

	assert.Equal(t, KindList, list.Kind)
	assert.Equal(t, KindTuple, tuple.Kind)
	assert.False(t, Equal(list, tuple))
}

func TestParse_DuplicateKeyOverwrites(t *testing.T) {
	v, err := Parse("(,a'1d,b'2d,a'3d)")
	require.NoError(t, err)

	require.Equal(t, 2, v.Len())
	requireValue(t, String("a"), v.Pairs[0].Key)
	requireValue(t, Int(3), v.Pairs[0].Value)
	requireValue(t, String("b"), v.Pairs[1].Key)

	// structurally equal container keys collapse too
	v, err = Parse("({1d}1d {1d}2d)")
	require.NoError(t, err)
	require.Equal(t, 1, v.Len())
	got, ok := v.Get(List(Int(1)))
	require.True(t, ok)
	requireValue(t, Int(2), got)
}

func TestParse_BigInteger(t *testing.T) {
	v, err := Parse("+123456789012345678901234567890d")
	require.NoError(t, err)

	want, ok := new(big.Int).SetString("-123456789012345678901234567890", 10)
	require.True(t, ok)
	assert.Equal(t, 0, v.Int.Cmp(want))
}

func TestParse_ErrorOffsets(t *testing.T) {
	_, err := Parse("{1d %}")
	var se *SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 4, se.Offset)
	assert.Equal(t, '%', se.Char)

	_, err = Parse("«ab")
	var te *TruncatedInputError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 3, te.Offset)

	// offsets count runes, not bytes
	_, err = NewStrictParser(0).Parse("«é» x")
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 4, se.Offset)
	assert.Equal(t, 'x', se.Char)
}

func TestStrictParser(t *testing.T) {
	p := NewStrictParser(0)

	tests := []struct {
		name    string
		text    string
		want    *Value
		wantErr error
	}{
		{name: "xpass: single value", text: "1d", want: Int(1)},
		{name: "xpass: trailing whitespace", text: "[]\t\n ", want: Tuple()},
		{name: "xfail: trailing value", text: "1d 2d", wantErr: ErrSyntax},
		{name: "xfail: trailing garbage", text: "{}%", wantErr: ErrSyntax},
		{name: "xfail: value error still reported", text: "{", wantErr: ErrTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Parse(tt.text)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Truef(t, errors.Is(err, tt.wantErr), "Parse() error = %v, want %v", err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			requireValue(t, tt.want, got)
		})
	}

	_, err := NewStrictParser(2).Parse("{{{}}}")
	assert.True(t, errors.Is(err, ErrTooDeep))
}

func TestParser_MaxDepth(t *testing.T) {
	p := NewParser(3)

	_, err := p.Parse("{{{}}}")
	require.NoError(t, err)

	_, err = p.Parse("{{{{}}}}")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooDeep))

	deep := strings.Repeat("(", DefaultMaxDepth+1)
	_, err = Parse(deep)
	assert.True(t, errors.Is(err, ErrTooDeep))

	_, err = Parse(strings.Repeat("[", 100))
	assert.True(t, errors.Is(err, ErrTruncated))
}

func TestParseBytes(t *testing.T) {
	v, err := ParseBytes([]byte("[«a»1d]"))
	require.NoError(t, err)
	requireValue(t, Tuple(String("a"), Int(1)), v)
}
