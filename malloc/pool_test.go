package malloc

import "errors"
import "fmt"
import "testing"

import "github.com/bnclabs/rbindex/api"
import "github.com/stretchr/testify/require"

var _ = fmt.Sprintf("dummy")

func TestNewPool(t *testing.T) {
	pool := NewPool(100, 1000)
	if capacity, allocated := pool.Info(); capacity != 100 {
		t.Errorf("expected %v, got %v", 100, capacity)
	} else if allocated != 0 {
		t.Errorf("expected %v, got %v", 0, allocated)
	} else if cap(pool.freelist) != 100 {
		t.Errorf("expected %v, got %v", 100, cap(pool.freelist))
	}

	for _, capacity := range []int64{0, -1, Maxslots + 1} {
		func() {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("expected panic for capacity %v", capacity)
				}
			}()
			NewPool(capacity, 0)
		}()
	}
}

func TestPoolAlloc(t *testing.T) {
	n := int64(130)
	pool := NewPool(n, 0)
	handles := make([]api.Handle, 0, n)
	for i := int64(0); i < n; i++ {
		h := pool.Alloc("test", 10)
		if h != api.Handle(i) {
			t.Errorf("expected %v, got %v", i, h)
		}
		handles = append(handles, h)
	}
	if _, allocated := pool.Info(); allocated != n {
		t.Errorf("expected %v, got %v", n, allocated)
	} else if x := pool.countinuse(); x != n {
		t.Errorf("expected %v, got %v", n, x)
	} else if pool.highwater != n {
		t.Errorf("expected %v, got %v", n, pool.highwater)
	}

	// free every other slot, they shall be reused LIFO.
	for i := 0; i < len(handles); i += 2 {
		pool.Free("test", handles[i])
	}
	if x := pool.countinuse(); x != n/2 {
		t.Errorf("expected %v, got %v", n/2, x)
	}
	if h := pool.Alloc("test", 10); h != handles[len(handles)-2] {
		t.Errorf("expected %v, got %v", handles[len(handles)-2], h)
	} else if pool.highwater != n {
		t.Errorf("unexpected highwater %v", pool.highwater)
	}

	pool.Release()
	if _, allocated := pool.Info(); allocated != 0 {
		t.Errorf("expected %v, got %v", 0, allocated)
	}
}

func TestPoolExhaust(t *testing.T) {
	pool := NewPool(2, 2)
	pool.Alloc("test", 1)
	pool.Alloc("test", 1)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		require.True(t, errors.Is(err, api.ErrorOutofMemory), err.Error())
	}()
	pool.Alloc("test", 1)
}

func TestPoolDoubleFree(t *testing.T) {
	pool := NewPool(10, 0)
	h := pool.Alloc("test", 1)
	pool.Free("test", h)

	require.Panics(t, func() { pool.Free("test", h) })
	require.Panics(t, func() { pool.Free("test", api.NilHandle) })
	require.Panics(t, func() { pool.Free("test", 5) })
}

func TestNewAllocator(t *testing.T) {
	mallocer := NewAllocator("nodes", nil)
	if _, ok := mallocer.(*Pool); !ok {
		t.Errorf("unexpected %T", mallocer)
	}
	capacity, _ := mallocer.Info()
	require.Equal(t, Maxslots, capacity)

	setts := map[string]interface{}{"capacity": 16, "tracking": true}
	mallocer = NewAllocator("nodes", setts)
	if _, ok := mallocer.(*Tracker); !ok {
		t.Errorf("unexpected %T", mallocer)
	}
	capacity, _ = mallocer.Info()
	require.Equal(t, int64(16), capacity)
}

func BenchmarkPoolAlloc(b *testing.B) {
	pool := NewPool(Maxslots, int64(b.N))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.Alloc("bench", 64)
	}
}

func BenchmarkPoolCycle(b *testing.B) {
	pool := NewPool(1024, 1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.Free("bench", pool.Alloc("bench", 64))
	}
}
