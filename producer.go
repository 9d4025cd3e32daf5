package cstn

import (
	"fmt"
	"math/big"
)

func String(s string) *Value {
	return &Value{Kind: KindString, Text: s}
}

func Int(i int64) *Value {
	return &Value{Kind: KindInteger, Int: big.NewInt(i)}
}

// Integer copies n into a new integer value.
func Integer(n *big.Int) *Value {
	return &Value{Kind: KindInteger, Int: new(big.Int).Set(n)}
}

// IntegerString parses s in the given base (2 to 62, or 0 to detect a Go
// style prefix) into an integer value. The sign is read the usual way: a
// leading "-" negates.
func IntegerString(s string, base int) (*Value, error) {
	n, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, fmt.Errorf("cstn: invalid base %d integer %q", base, s)
	}
	return &Value{Kind: KindInteger, Int: n}, nil
}

func MustIntegerString(s string, base int) *Value {
	v, err := IntegerString(s, base)
	if err != nil {
		panic(err)
	}
	return v
}

func List(items ...*Value) *Value {
	return &Value{Kind: KindList, Items: append(make([]*Value, 0, len(items)), items...)}
}

func Tuple(items ...*Value) *Value {
	return &Value{Kind: KindTuple, Items: append(make([]*Value, 0, len(items)), items...)}
}

func P(key, value *Value) Pair {
	return Pair{Key: key, Value: value}
}

// NewMap builds a map from pairs in order. A key that repeats an earlier
// key overwrites its value but keeps the earlier position.
func NewMap(pairs ...Pair) *Value {
	m := &Value{Kind: KindMap, Pairs: make([]Pair, 0, len(pairs))}
	for _, p := range pairs {
		m.put(p.Key, p.Value)
	}
	return m
}
