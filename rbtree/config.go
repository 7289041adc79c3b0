package rbtree

import "unsafe"

import "github.com/bnclabs/rbindex/lib"
import "github.com/bnclabs/rbindex/malloc"
import "github.com/cloudfoundry/gosigar"

// Defaultsettings for a store and the node arena of its indexes.
//
// "allowdups" (bool, default: false),
//		Admit records whose key ties with an existing record. When
//		false, inserting a tying record replaces the existing one.
//
// "maxindexes" (int64, default: 8),
//		Maximum number of indexes a store can hold, including the
//		primary index.
//
// "nodearena.capacity" (int64),
//		Maximum number of nodes in each index. Default is sized from
//		free RAM.
//
// "nodearena.initslots" (int64, default: 64),
//		Node slots to reserve upfront for each index.
//
// "nodearena.tracking" (bool, default: false),
//		Account node allocations by call site, figures are reported
//		in Stats() and Log().
//
func Defaultsettings() lib.Settings {
	_, _, free := getsysmem()
	capacity := int64(free / uint64(unsafe.Sizeof(node[unsafe.Pointer]{})))
	if capacity <= 0 || capacity > malloc.Maxslots {
		capacity = malloc.Maxslots
	}
	setts := lib.Settings{
		"allowdups":  false,
		"maxindexes": int64(8),
	}
	nodesetts := malloc.Defaultsettings()
	nodesetts["capacity"] = capacity
	return setts.Mixin(nodesetts.AddPrefix("nodearena."))
}

func getsysmem() (total, used, free uint64) {
	mem := sigar.Mem{}
	mem.Get()
	return mem.Total, mem.Used, mem.Free
}
