package api

// Handle address a memory slot handed out by an Allocator. Handles are
// stable for the lifetime of the allocation and can be reused once freed.
type Handle int32

// NilHandle is the zero-value for missing slots, like a nil pointer.
const NilHandle = Handle(-1)

// Allocator interface for node memory management. Site is the
// caller's description of the allocation point, like "file:line", and
// is used for accounting only.
type Allocator interface {
	// Alloc a slot for an object of `size` bytes.
	Alloc(site string, size int64) Handle

	// Free a slot previously allocated from this allocator.
	Free(site string, h Handle)

	// Info of slot accounting, capacity is the maximum number of slots
	// and allocated is the number of live slots.
	Info() (capacity, allocated int64)

	// Release all slots and resources.
	Release()
}
