package malloc

import "fmt"
import "math/bits"

import "github.com/bnclabs/rbindex/api"

// Pool manages a bounded set of slots, numbered from zero. Freed slots
// are kept in a free list and handed out before new slots are minted.
type Pool struct {
	capacity  int64        // maximum live slots
	highwater int64        // slots [0, highwater) have been minted
	allocated int64        // live slots
	freelist  []api.Handle // recycled slots, LIFO
	inuse     []uint64     // bitmap of live slots
}

// NewPool create a pool that can hand out upto capacity slots.
func NewPool(capacity, initslots int64) *Pool {
	if capacity <= 0 {
		panic(fmt.Errorf("pool capacity cannot be %v", capacity))
	} else if capacity > Maxslots {
		panic(fmt.Errorf("pool capacity %v exceeds %v", capacity, Maxslots))
	}
	if initslots > capacity {
		initslots = capacity
	} else if initslots < 0 {
		initslots = 0
	}
	return &Pool{
		capacity: capacity,
		freelist: make([]api.Handle, 0, initslots),
		inuse:    make([]uint64, 0, (initslots+63)/64),
	}
}

// Alloc implement api.Allocator interface. Panics with
// api.ErrorOutofMemory once capacity is exhausted.
func (pool *Pool) Alloc(site string, size int64) api.Handle {
	var h api.Handle
	if n := len(pool.freelist); n > 0 {
		h, pool.freelist = pool.freelist[n-1], pool.freelist[:n-1]
	} else if pool.highwater < pool.capacity {
		h = api.Handle(pool.highwater)
		pool.highwater++
		if int(pool.highwater) > len(pool.inuse)*64 {
			pool.inuse = append(pool.inuse, 0)
		}
	} else {
		fmsg := "%w: %v slots allocated at %v"
		panic(fmt.Errorf(fmsg, api.ErrorOutofMemory, pool.capacity, site))
	}
	pool.inuse[h>>6] |= 1 << (uint(h) & 63)
	pool.allocated++
	return h
}

// Free implement api.Allocator interface.
func (pool *Pool) Free(site string, h api.Handle) {
	if !pool.isinuse(h) {
		panic(fmt.Errorf("Free(): slot %v not allocated, at %v", h, site))
	}
	pool.inuse[h>>6] &^= 1 << (uint(h) & 63)
	pool.freelist = append(pool.freelist, h)
	pool.allocated--
}

// Info implement api.Allocator interface.
func (pool *Pool) Info() (capacity, allocated int64) {
	return pool.capacity, pool.allocated
}

// Release implement api.Allocator interface.
func (pool *Pool) Release() {
	pool.freelist, pool.inuse = nil, nil
	pool.highwater, pool.allocated = 0, 0
}

func (pool *Pool) isinuse(h api.Handle) bool {
	if h < 0 || int64(h) >= pool.highwater {
		return false
	}
	return (pool.inuse[h>>6] & (1 << (uint(h) & 63))) != 0
}

// countinuse walk the bitmap, used for validating the accounting.
func (pool *Pool) countinuse() (n int64) {
	for _, word := range pool.inuse {
		n += int64(bits.OnesCount64(word))
	}
	return n
}
