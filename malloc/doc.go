// Package malloc supplies slot management for tree nodes, with a
// limited scope:
//
//   - Types and Functions exported by this package are not thread safe.
//   - Slots are addressed by api.Handle, a stable slot number, and the
//     actual objects live in a slice owned by the caller. Nodes link to
//     each other by handle instead of by pointer.
//   - Pool hands out slots upto a configured capacity, and recycles
//     freed slots before growing.
//   - Tracker wraps any api.Allocator and accounts allocations by call
//     site, live bytes and peak bytes.
//
// Settings, refer to Defaultsettings():
//
//	"capacity"  (int64) maximum number of live slots.
//	"initslots" (int64) free list reservation at start.
//	"tracking"  (bool)  wrap the pool with a Tracker.
package malloc
