package cstn

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax          = errors.New("syntax error")
	ErrTruncated       = errors.New("unexpected end of input")
	ErrUnsupportedType = errors.New("unsupported type")
	ErrTooDeep         = errors.New("nesting too deep")
)

// SyntaxError reports an unexpected character at a rune offset.
type SyntaxError struct {
	Offset int
	Char   rune
	Msg    string
}

func (e *SyntaxError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%v at offset %d (unexpected character %q): %s", ErrSyntax, e.Offset, e.Char, e.Msg)
	}
	return fmt.Sprintf("%v at offset %d (unexpected character %q)", ErrSyntax, e.Offset, e.Char)
}

func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

// TruncatedInputError reports input that ended before a token or container
// was closed.
type TruncatedInputError struct {
	Offset int
	Msg    string
}

func (e *TruncatedInputError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%v at offset %d: %s", ErrTruncated, e.Offset, e.Msg)
	}
	return fmt.Sprintf("%v at offset %d", ErrTruncated, e.Offset)
}

func (e *TruncatedInputError) Is(target error) bool { return target == ErrTruncated }

type UnsupportedTypeError struct {
	Kind Kind
	Msg  string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%v %v: %s", ErrUnsupportedType, e.Kind, e.Msg)
	}
	return fmt.Sprintf("%v %v", ErrUnsupportedType, e.Kind)
}

func (e *UnsupportedTypeError) Is(target error) bool { return target == ErrUnsupportedType }

type DepthError struct {
	Offset int
	Limit  int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("%v at offset %d: limit is %d", ErrTooDeep, e.Offset, e.Limit)
}

func (e *DepthError) Is(target error) bool { return target == ErrTooDeep }
