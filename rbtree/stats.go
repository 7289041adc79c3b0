package rbtree

import "fmt"
import "strings"

import humanize "github.com/dustin/go-humanize"
import "github.com/bnclabs/rbindex/api"
import "github.com/bnclabs/rbindex/lib"
import "github.com/bnclabs/rbindex/log"
import "github.com/bnclabs/rbindex/malloc"

// Stats return store and per index statistics. Index statistics are
// prefixed with "<index-name>.".
func (store *Store[R]) Stats() map[string]interface{} {
	stats := map[string]interface{}{
		"n_count":   store.n_count,
		"n_inserts": store.n_inserts,
		"n_updates": store.n_updates,
		"n_deletes": store.n_deletes,
		"n_lookups": store.n_lookups,
		"n_rejects": store.n_rejects,
		"n_indexes": int64(len(store.indexes)),
		"size":      store.size,
		"a_recsize": store.a_recsize.Stats(),
	}
	for _, idx := range store.indexes {
		for k, v := range idx.stats() {
			stats[idx.name+"."+k] = v
		}
	}
	return stats
}

// Fullstats include tree shape statistics, computed by walking every
// index, along with Stats().
func (store *Store[R]) Fullstats() map[string]interface{} {
	stats := store.Stats()
	for _, idx := range store.indexes {
		h_height, blacks := idx.heightstats()
		stats[idx.name+".h_height"] = h_height.Fullstats()
		stats[idx.name+".n_blacks"] = blacks
		if x := h_height.Samples(); x != idx.n_count {
			fmsg := "%w: %v h_height.samples:%v != n_count:%v"
			panicerr(fmsg, api.ErrorInvariant, idx.logprefix, x, idx.n_count)
		}
	}
	return stats
}

// Log store statistics, with sizes humanized if humanize is true.
func (store *Store[R]) Log(humanize bool) {
	log.Infof("%v\n", store.Logstring(humanize))
	for _, idx := range store.indexes {
		fmsg := "%v h_upsertdepth %v\n"
		log.Infof(fmsg, idx.logprefix, idx.h_upsertdepth.Logstring())
		if tracker, ok := idx.nodearena.(*malloc.Tracker); ok {
			tracker.Log()
		}
	}
}

// Logstring return a one line summary of the store.
func (store *Store[R]) Logstring(pretty bool) string {
	count, size := fmt.Sprintf("%v", store.n_count), fmt.Sprintf("%v", store.size)
	if pretty {
		count = humanize.Comma(store.n_count)
		size = humanize.Bytes(uint64(store.size))
	}
	names := make([]string, 0, len(store.indexes))
	for _, idx := range store.indexes {
		names = append(names, idx.name)
	}
	fmsg := "%v count:%v size:%v maxdepth:%v indexes:[%v]"
	return fmt.Sprintf(fmsg, store.logprefix, count, size, store.MaxDepth(),
		strings.Join(names, ","))
}

// Dumpstats return Fullstats as JSON text.
func (store *Store[R]) Dumpstats(pretty bool) string {
	return lib.Prettystats(store.Fullstats(), pretty)
}

func (idx *Index[R]) stats() map[string]interface{} {
	capacity, allocated := idx.nodearena.Info()
	stats := map[string]interface{}{
		"n_count":        idx.n_count,
		"n_inserts":      idx.n_inserts,
		"n_updates":      idx.n_updates,
		"n_deletes":      idx.n_deletes,
		"node.capacity":  capacity,
		"node.allocated": allocated,
		"node.size":      idx.nodesize,
		"h_upsertdepth":  idx.h_upsertdepth.Fullstats(),
	}
	if tracker, ok := idx.nodearena.(*malloc.Tracker); ok {
		for k, v := range tracker.Stats() {
			stats["tracker."+k] = v
		}
	}
	return stats
}

// heightstats return a histogram of node depths and the number of
// black nodes on the left-most path.
func (idx *Index[R]) heightstats() (*lib.HistogramInt64, int64) {
	type frame struct {
		h     api.Handle
		depth int64
	}
	h_height := lib.NewhistorgramInt64(1, 256, 1)
	if idx.root == api.NilHandle {
		return h_height, 0
	}
	stack := []frame{{idx.root, 1}}
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		h_height.Add(fr.depth)
		for _, child := range idx.nodes[fr.h].child {
			if child != api.NilHandle {
				stack = append(stack, frame{child, fr.depth + 1})
			}
		}
	}
	blacks := int64(0)
	for h := idx.root; h != api.NilHandle; h = idx.nodes[h].child[left] {
		if idx.nodes[h].black {
			blacks++
		}
	}
	return h_height, blacks
}
