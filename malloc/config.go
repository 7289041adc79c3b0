package malloc

import "math"

import "github.com/bnclabs/rbindex/api"
import "github.com/bnclabs/rbindex/lib"

// Maxslots maximum number of slots a single pool can manage, bounded
// by the width of api.Handle.
const Maxslots = int64(math.MaxInt32)

// Defaultsettings for a slot pool.
func Defaultsettings() lib.Settings {
	return lib.Settings{
		"capacity":  Maxslots,
		"initslots": int64(64),
		"tracking":  false,
	}
}

// NewAllocator create a slot pool from settings, wrapped with a
// Tracker if "tracking" is true.
func NewAllocator(name string, setts lib.Settings) api.Allocator {
	setts = make(lib.Settings).Mixin(Defaultsettings(), setts)
	pool := NewPool(setts.Int64("capacity"), setts.Int64("initslots"))
	if setts.Bool("tracking") {
		return NewTracker(name, pool)
	}
	return pool
}
