// Package api define types and interfaces common to the tree algorithm,
// its memory management and its collaborators.
package api

// Comparator supply ordering and identity for records of one index.
// A single comparator serves two purposes:
//
//   - OrderKey, key mode, used to navigate the tree when searching for
//     a key or placing a new record.
//   - Identify, identity mode, used to pick out one particular record
//     among several records that tie under OrderKey.
type Comparator[R any] interface {
	// OrderKey return a negative number if key orders before stored,
	// zero if they tie and a positive number if key orders after stored.
	OrderKey(stored, key R) int

	// Identify return true if stored is the same record as record.
	// Identify shall return true only for records that also tie under
	// OrderKey.
	Identify(stored, record R) bool
}

// NodeCallb callback for walking records in sort order, return false
// to stop the walk.
type NodeCallb[R any] func(record R) bool
