package cstn

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Hash is a 32-byte BLAKE3 digest of a value's canonical text.
type Hash [32]byte

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// valueDomainKey keys the BLAKE3 hasher so value hashes never collide with
// plain BLAKE3 digests of the same text.
var valueDomainKey = [32]byte{
	'c', 's', 't', 'n', '.', 'v', 'a', 'l', 'u', 'e', 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Hash returns a structural hash of v: Equal values have equal hashes. Maps
// hash their pairs in canonical key order, so insertion order does not
// matter.
func (v *Value) Hash() Hash {
	text, err := v.Canonical()
	if err != nil {
		text = "!!(" + err.Error() + ")!!"
	}

	hasher, err := blake3.NewKeyed(valueDomainKey[:])
	if err != nil {
		panic("cstn: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write([]byte(text))

	var h Hash
	copy(h[:], hasher.Sum(nil))
	return h
}

func (v *Value) Equal(o *Value) bool {
	return Equal(v, o)
}

// Equal compares two values structurally. Lists and tuples never equal each
// other. Maps are equal when they hold the same pairs in any order; maps
// built by hand with repeated keys compare as multisets of pairs.
func Equal(a, b *Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a == b {
		return true
	}
	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case KindString:
		return a.Text == b.Text
	case KindInteger:
		if a.Int == nil || b.Int == nil {
			return a.Int == b.Int
		}
		return a.Int.Cmp(b.Int) == 0
	case KindList, KindTuple:
		if len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	case KindMap:
		return mapsEqual(a, b)
	}

	return false
}

// mapsEqual pairs every entry of a with a distinct, equal entry of b. With
// equal lengths that pairing is a bijection, so no reverse pass is needed.
func mapsEqual(a, b *Value) bool {
	if len(a.Pairs) != len(b.Pairs) {
		return false
	}

	used := make([]bool, len(b.Pairs))
	for i, p := range a.Pairs {
		var h Hash
		if b.index != nil {
			h = a.keyHash(i)
		}

		j := b.matchPair(p, h, used)
		if j < 0 {
			return false
		}
		used[j] = true
	}
	return true
}

// matchPair returns the position of the first pair of v not marked in used
// whose key and value equal p's. h must be the hash of p.Key when v has an
// index.
func (v *Value) matchPair(p Pair, h Hash, used []bool) int {
	same := func(i int) bool {
		return !used[i] && Equal(v.Pairs[i].Key, p.Key) && Equal(v.Pairs[i].Value, p.Value)
	}

	if v.index == nil {
		for i := range v.Pairs {
			if same(i) {
				return i
			}
		}
		return -1
	}

	for _, i := range v.index[h] {
		if same(i) {
			return i
		}
	}
	return -1
}
