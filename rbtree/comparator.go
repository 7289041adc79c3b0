package rbtree

import "cmp"
import "unsafe"

// OrderedKey order records by a key extracted from each record. Two
// records are identical only if they are equal values of R.
type OrderedKey[R comparable, K cmp.Ordered] struct {
	keyof func(R) K
}

// NewOrderedKey return a comparator ordering records by keyof(record).
func NewOrderedKey[R comparable, K cmp.Ordered](keyof func(R) K) OrderedKey[R, K] {
	if keyof == nil {
		panic("rbtree: nil key function")
	}
	return OrderedKey[R, K]{keyof: keyof}
}

// IntKey order records by an integer key.
func IntKey[R comparable](keyof func(R) int64) OrderedKey[R, int64] {
	return NewOrderedKey[R, int64](keyof)
}

// StringKey order records by a string key, compared bytewise.
func StringKey[R comparable](keyof func(R) string) OrderedKey[R, string] {
	return NewOrderedKey[R, string](keyof)
}

// OrderKey implement api.Comparator interface.
func (c OrderedKey[R, K]) OrderKey(stored, key R) int {
	return cmp.Compare(c.keyof(key), c.keyof(stored))
}

// Identify implement api.Comparator interface.
func (c OrderedKey[R, K]) Identify(stored, record R) bool {
	return stored == record
}

// Pointers order records by their address. Every record is its own key,
// hence ties under Pointers are always the same record.
type Pointers[T any] struct{}

// OrderKey implement api.Comparator interface.
func (Pointers[T]) OrderKey(stored, key *T) int {
	return cmp.Compare(uintptr(unsafe.Pointer(key)), uintptr(unsafe.Pointer(stored)))
}

// Identify implement api.Comparator interface.
func (Pointers[T]) Identify(stored, record *T) bool {
	return stored == record
}
