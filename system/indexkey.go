package system

import "sort"

// IndexKey is the identity of a group of small non-negative integers: the
// dense class ids making up a composition (NewIndexKey, order-independent:
// two keys built from the same set, regardless of insertion order, compare
// equal and hash equal), or a class id paired with an enum ordinal for a
// state-tenant (EnumKey, positional).
//
// Grounded on the original engine's IndexKey/HashCode: sort the ids into a
// canonical order, then fold them through a multiplicative hash so the
// key can live as a map key without a custom Equal being invoked by the
// runtime on every lookup.
type IndexKey struct {
	hash uint64
	key  string // canonical sorted-ids rendering, used for equality
}

const fnvOffset = 14695981039346656037
const fnvPrime = 1099511628211

// foldKey hashes ids in the exact order given, without canonicalizing.
func foldKey(ids []int) IndexKey {
	h := uint64(fnvOffset)
	buf := make([]byte, 0, len(ids)*5)
	for _, id := range ids {
		v := uint32(id)
		buf = append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24), ',')
		h ^= uint64(id)
		h *= fnvPrime
	}
	return IndexKey{hash: h, key: string(buf)}
}

// NewIndexKey builds a canonical key from an unordered slice of class ids.
func NewIndexKey(ids []int) IndexKey {
	sorted := append([]int(nil), ids...)
	sort.Ints(sorted)
	return foldKey(sorted)
}

// EnumKey builds the key for a state-tenant: the enum type's class id
// combined with the enum value's ordinal. Unlike NewIndexKey this
// is positional, not canonicalized — classID and ordinal play different
// roles (namespace, then value within it), so EnumKey(2, 5) and
// EnumKey(5, 2) must not collide the way an unordered pair would.
func EnumKey(classID, ordinal int) IndexKey {
	return foldKey([]int{classID, ordinal})
}

// Hash returns the key's multiplicative hash, for callers that want to
// pre-bucket keys themselves.
func (k IndexKey) Hash() uint64 { return k.hash }

// Equal reports whether two keys were built from the same set of ids.
func (k IndexKey) Equal(other IndexKey) bool {
	return k.hash == other.hash && k.key == other.key
}
