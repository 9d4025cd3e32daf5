package cstn

import (
	"math/big"
	"strconv"
)

type Kind int

const (
	KindString Kind = iota
	KindList
	KindTuple
	KindMap
	KindInteger
)

var kindNames = [...]string{
	KindString:  "string",
	KindList:    "list",
	KindTuple:   "tuple",
	KindMap:     "map",
	KindInteger: "integer",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Value is a parsed CSTN node. Only the fields matching Kind are set:
// Text for strings, Int for integers, Items for lists and tuples and Pairs
// for maps.
//
// Values returned by Parse or built with the constructors in producer.go are
// not modified afterwards and may be shared between goroutines.
type Value struct {
	Kind
	Text  string
	Int   *big.Int
	Items []*Value
	Pairs []Pair

	// index maps a key hash to positions in Pairs; keyHashes holds the
	// hash of each key in Pairs order.
	index     map[Hash][]int
	keyHashes []Hash
}

type Pair struct {
	Key   *Value
	Value *Value
}

// Len returns the number of items of a list or tuple, the number of pairs
// of a map, the number of runes of a string and 0 for integers.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}

	switch v.Kind {
	case KindList, KindTuple:
		return len(v.Items)
	case KindMap:
		return len(v.Pairs)
	case KindString:
		return len([]rune(v.Text))
	}

	return 0
}

// Get looks up key in a map using structural equality.
func (v *Value) Get(key *Value) (*Value, bool) {
	if v == nil || v.Kind != KindMap {
		return nil, false
	}

	var h Hash
	if v.index != nil {
		h = key.Hash()
	}
	i := v.match(key, h)
	if i < 0 {
		return nil, false
	}
	return v.Pairs[i].Value, true
}

// match returns the position of the first pair whose key equals key. h
// must be key's hash when v has an index.
func (v *Value) match(key *Value, h Hash) int {
	if v.index == nil {
		for i, p := range v.Pairs {
			if Equal(p.Key, key) {
				return i
			}
		}
		return -1
	}

	for _, i := range v.index[h] {
		if Equal(v.Pairs[i].Key, key) {
			return i
		}
	}
	return -1
}

// keyHash returns the hash of the i-th key, cached when the map was built
// by put.
func (v *Value) keyHash(i int) Hash {
	if i < len(v.keyHashes) {
		return v.keyHashes[i]
	}
	return v.Pairs[i].Key.Hash()
}

// put inserts or overwrites a pair. Overwriting keeps the position of the
// first insertion.
func (v *Value) put(key, value *Value) {
	if v.index == nil {
		v.index = make(map[Hash][]int, len(v.Pairs)+1)
		v.keyHashes = make([]Hash, 0, len(v.Pairs)+1)
		for i, p := range v.Pairs {
			h := p.Key.Hash()
			v.index[h] = append(v.index[h], i)
			v.keyHashes = append(v.keyHashes, h)
		}
	}

	h := key.Hash()
	if i := v.match(key, h); i >= 0 {
		v.Pairs[i].Value = value
		return
	}

	v.index[h] = append(v.index[h], len(v.Pairs))
	v.keyHashes = append(v.keyHashes, h)
	v.Pairs = append(v.Pairs, Pair{Key: key, Value: value})
}

func (v *Value) String() string {
	if v == nil {
		return ""
	}

	b, err := encoder{}.appendValue(nil, v, 0)
	if err != nil {
		return "!!(" + err.Error() + ")!!"
	}

	return string(b)
}
