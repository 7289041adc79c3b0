// Package rbindex is an in-process store that orders the same set of
// records under several independent red-black trees.
//
// rbtree:
//
// Multi-index store. Index 0 is the primary index and owns the record
// count and size accounting, secondary indexes are added before the
// first insert. Records can be removed by identity or by key on any
// index, removal cascades to every other index.
//
// malloc:
//
// Slot pool handing out node handles for each index, optionally
// wrapped by a tracker that accounts allocations by call site.
//
// inflight:
//
// Registry of messages awaiting acknowledgement, indexed by token,
// topic and address.
//
// api:
//
// Comparator and Allocator interfaces, and error values shared across
// packages.
//
// lib, log:
//
// Settings, statistics and leveled logging.
//
// tools/rbstore:
//
// Command line tool to load and verify a store.
package rbindex
