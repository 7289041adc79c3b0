package api

import "errors"

// ErrorKeyMissing operation cannot succeed because specified key is
// missing in the index.
var ErrorKeyMissing = errors.New("keyMissing")

// ErrorDuplicateKey insertion conflicts with a different record already
// indexed under the same key, and duplicates are not allowed.
var ErrorDuplicateKey = errors.New("duplicateKey")

// ErrorStoreNotEmpty indexes can be added only before the first
// record is inserted.
var ErrorStoreNotEmpty = errors.New("storeNotEmpty")

// ErrorTooManyIndexes store already holds the configured maximum
// number of indexes.
var ErrorTooManyIndexes = errors.New("tooManyIndexes")

// ErrorInvalidIndex index number is not registered with the store.
var ErrorInvalidIndex = errors.New("invalidIndex")

// ErrorInvariant red-black or bookkeeping invariant broken, this is a
// bug in the tree algorithm.
var ErrorInvariant = errors.New("invariantViolation")

// ErrorOutofMemory allocator has exhausted its capacity.
var ErrorOutofMemory = errors.New("outofMemory")
