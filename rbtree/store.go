package rbtree

import "fmt"

import "github.com/bnclabs/rbindex/api"
import "github.com/bnclabs/rbindex/lib"

// Store manage a set of records under one or more indexes. Every
// record is held by exactly one node in each index.
type Store[R comparable] struct {
	// statistics
	n_count   int64
	n_inserts int64
	n_updates int64
	n_deletes int64
	n_lookups int64
	n_rejects int64
	size      int64
	a_recsize lib.AverageInt64

	name      string
	indexes   []*Index[R]
	logprefix string

	// settings
	allowdups  bool
	maxindexes int64
	nodesetts  lib.Settings
	setts      lib.Settings

	// scratch pad
	ties []api.Handle
}

// NewStore create a store with primary as index 0. Settings not
// supplied are picked from Defaultsettings().
func NewStore[R comparable](
	name string, primary api.Comparator[R], setts lib.Settings) *Store[R] {

	store := &Store[R]{name: name}
	store.logprefix = fmt.Sprintf("RBTREE [%s]", name)

	setts = make(lib.Settings).Mixin(Defaultsettings(), setts)
	store.readsettings(setts)
	store.indexes = make([]*Index[R], 0, store.maxindexes)
	store.ties = make([]api.Handle, 0, store.maxindexes)
	store.indexes = append(store.indexes, store.newindex("primary", primary))

	infof("%v started with allowdups:%v ...\n", store.logprefix, store.allowdups)
	return store
}

func (store *Store[R]) readsettings(setts lib.Settings) {
	store.allowdups = setts.Bool("allowdups")
	store.maxindexes = setts.Int64("maxindexes")
	if store.maxindexes < 1 {
		panicerr("%v maxindexes cannot be %v", store.logprefix, store.maxindexes)
	}
	store.nodesetts = setts.Section("nodearena.").Trim("nodearena.")
	if capacity := store.nodesetts.Int64("capacity"); capacity <= 0 {
		panicerr("%v nodearena.capacity cannot be %v", store.logprefix, capacity)
	}
	store.setts = setts
}

func (store *Store[R]) newindex(name string, cmp api.Comparator[R]) *Index[R] {
	return newindex[R](store.name, name, cmp, store.nodesetts)
}

// AddIndex register a secondary index, return its index number.
// Indexes can be added only while the store is empty.
func (store *Store[R]) AddIndex(name string, cmp api.Comparator[R]) (int, error) {
	if store.n_count > 0 {
		return -1, fmt.Errorf("%w: %v holds %v records", api.ErrorStoreNotEmpty, store.logprefix, store.n_count)
	} else if int64(len(store.indexes)) >= store.maxindexes {
		return -1, fmt.Errorf("%w: %v limit %v", api.ErrorTooManyIndexes, store.logprefix, store.maxindexes)
	}
	store.indexes = append(store.indexes, store.newindex(name, cmp))
	n := len(store.indexes) - 1
	infof("%v index %v registered as %q\n", store.logprefix, n, name)
	return n, nil
}

// Index return the index registered under number n.
func (store *Store[R]) Index(n int) *Index[R] {
	return store.index(n)
}

// Indexes return the number of registered indexes.
func (store *Store[R]) Indexes() int {
	return len(store.indexes)
}

// Count return number of records in the store.
func (store *Store[R]) Count() int64 {
	return store.n_count
}

// Size return the sum of size hints of all records in the store.
func (store *Store[R]) Size() int64 {
	return store.size
}

// MaxDepth return the number of nodes on the longest path of the
// primary index.
func (store *Store[R]) MaxDepth() int64 {
	return store.indexes[0].Depth()
}

// Insert record into every index. If duplicates are not allowed and
// record ties with an existing record P in the primary index, P is
// replaced and returned as old. If record ties with any record other
// than P in a secondary index, Insert fails with api.ErrorDuplicateKey
// and the store is not modified.
func (store *Store[R]) Insert(record R, size int64) (old R, replaced bool, err error) {
	if store.allowdups {
		store.insertall(record, size)
		return old, false, nil
	}

	primary := store.indexes[0]
	ph := primary.find(record)
	hasprev := ph != api.NilHandle
	if hasprev {
		old = primary.nodes[ph].record
	}
	// probe every index before mutating any.
	ties := store.ties[:0]
	for _, idx := range store.indexes[1:] {
		h := idx.find(record)
		if h != api.NilHandle && (!hasprev || !idx.cmp.Identify(idx.nodes[h].record, old)) {
			store.n_rejects++
			warnf("%v insert rejected, duplicate key in index %q\n", store.logprefix, idx.name)
			var zero R
			return zero, false, fmt.Errorf("%w: index %q", api.ErrorDuplicateKey, idx.name)
		}
		ties = append(ties, h)
	}
	if !hasprev {
		store.insertall(record, size)
		return old, false, nil
	}

	debugf("%v replacing record in %v indexes\n", store.logprefix, len(store.indexes))
	_, oldsize := primary.replace(ph, record, size)
	for i, idx := range store.indexes[1:] {
		if h := ties[i]; h != api.NilHandle {
			idx.replace(h, record, size)
			continue
		}
		if _, _, ok := idx.removerecord(old); !ok {
			panicerr("%w: %v record missing in index %q", api.ErrorInvariant, store.logprefix, idx.name)
		}
		idx.insert(record, size)
	}
	store.size += size - oldsize
	store.a_recsize.Remove(oldsize)
	store.a_recsize.Add(size)
	store.n_updates++
	return old, true, nil
}

func (store *Store[R]) insertall(record R, size int64) {
	for _, idx := range store.indexes {
		idx.insert(record, size)
	}
	store.n_count++
	store.n_inserts++
	store.size += size
	store.a_recsize.Add(size)
}

// Find return the first record tying with key in index n.
func (store *Store[R]) Find(key R, n int) (R, bool) {
	idx := store.index(n)
	store.n_lookups++
	if h := idx.find(key); h != api.NilHandle {
		return idx.nodes[h].record, true
	}
	var zero R
	return zero, false
}

// RemoveRecord remove record from every index, return the removed
// record. If record is not in the primary index, the store is not
// modified.
func (store *Store[R]) RemoveRecord(record R) (R, bool) {
	removed, size, ok := store.indexes[0].removerecord(record)
	if !ok {
		return removed, false
	}
	store.cascade(0, removed)
	store.deleted(size)
	return removed, true
}

// RemoveKey remove the first record tying with key in index n, and
// remove the same record from every other index.
func (store *Store[R]) RemoveKey(key R, n int) (R, bool) {
	idx := store.index(n)
	h := idx.find(key)
	if h == api.NilHandle {
		var zero R
		return zero, false
	}
	removed, size := idx.removenode(h)
	store.cascade(n, removed)
	store.deleted(size)
	return removed, true
}

func (store *Store[R]) cascade(skip int, record R) {
	for i, idx := range store.indexes {
		if i == skip {
			continue
		}
		if _, _, ok := idx.removerecord(record); !ok {
			errorf("%v cascade failed on index %q\n", store.logprefix, idx.name)
			panicerr("%w: %v record missing in index %q", api.ErrorInvariant, store.logprefix, idx.name)
		}
	}
}

func (store *Store[R]) deleted(size int64) {
	store.n_count--
	store.n_deletes++
	store.size -= size
	store.a_recsize.Remove(size)
}

// Cursor remember a position in one index, between calls to Next.
// The zero value is positioned before the first record.
type Cursor[R comparable] struct {
	record  R
	seqno   uint64
	started bool
}

// Record return the record the cursor is positioned at.
func (cur *Cursor[R]) Record() R {
	return cur.record
}

// Reset position the cursor before the first record.
func (cur *Cursor[R]) Reset() {
	var zero R
	cur.record, cur.seqno, cur.started = zero, 0, false
}

// Next advance cur to the record following it in index n and return
// that record. Records removed or inserted between calls do not make
// the walk skip or repeat the records remaining after cur.
func (store *Store[R]) Next(n int, cur *Cursor[R]) (R, bool) {
	idx := store.index(n)
	h := idx.minimum(idx.root)
	if cur.started {
		h = idx.after(cur.record, cur.seqno)
	}
	if h == api.NilHandle {
		var zero R
		return zero, false
	}
	nd := &idx.nodes[h]
	cur.record, cur.seqno, cur.started = nd.record, nd.seqno, true
	return nd.record, true
}

// Iterate over records of index n in ascending order, until callb
// returns false.
func (store *Store[R]) Iterate(n int, callb api.NodeCallb[R]) {
	idx := store.index(n)
	for h := idx.minimum(idx.root); h != api.NilHandle; h = idx.successor(h) {
		if !callb(idx.nodes[h].record) {
			return
		}
	}
}

// IterateFrom walk records of index n in ascending order, starting
// with the first record tying with key, until callb returns false.
func (store *Store[R]) IterateFrom(n int, key R, callb api.NodeCallb[R]) {
	idx := store.index(n)
	store.n_lookups++
	for h := idx.find(key); h != api.NilHandle; h = idx.successor(h) {
		if !callb(idx.nodes[h].record) {
			return
		}
	}
}

// Min return the first record in index n.
func (store *Store[R]) Min(n int) (R, bool) {
	idx := store.index(n)
	return idx.recordat(idx.minimum(idx.root))
}

// Max return the last record in index n.
func (store *Store[R]) Max(n int) (R, bool) {
	idx := store.index(n)
	return idx.recordat(idx.maximum(idx.root))
}

// Release all nodes, the store cannot be used afterwards.
func (store *Store[R]) Release() {
	for _, idx := range store.indexes {
		idx.release()
	}
	store.n_count, store.size = 0, 0
	store.a_recsize = lib.AverageInt64{}
	infof("%v released\n", store.logprefix)
}

func (store *Store[R]) index(n int) *Index[R] {
	if n < 0 || n >= len(store.indexes) {
		panicerr("%w: %v not in [0,%v)", api.ErrorInvalidIndex, n, len(store.indexes))
	}
	return store.indexes[n]
}

func (idx *Index[R]) recordat(h api.Handle) (R, bool) {
	if h == api.NilHandle {
		var zero R
		return zero, false
	}
	return idx.nodes[h].record, true
}

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}
