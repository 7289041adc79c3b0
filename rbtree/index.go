package rbtree

import "fmt"
import "unsafe"

import "github.com/bnclabs/rbindex/api"
import "github.com/bnclabs/rbindex/lib"
import "github.com/bnclabs/rbindex/malloc"

// Index is a single red-black tree ordering records with its own
// comparator. Indexes are created and owned by a Store.
type Index[R comparable] struct {
	// statistics
	n_count   int64
	n_inserts int64
	n_updates int64
	n_deletes int64

	name      string
	cmp       api.Comparator[R]
	root      api.Handle
	nodes     []node[R]
	nodearena api.Allocator
	nodesize  int64
	seqno     uint64 // last seqno handed to a node
	tracking  bool
	logprefix string

	h_upsertdepth *lib.HistogramInt64
}

func newindex[R comparable](
	store, name string, cmp api.Comparator[R], setts lib.Settings) *Index[R] {

	if cmp == nil {
		panic(fmt.Errorf("index %q: nil comparator", name))
	}
	idx := &Index[R]{
		name:     name,
		cmp:      cmp,
		root:     api.NilHandle,
		nodesize: int64(unsafe.Sizeof(node[R]{})),
		tracking: setts.Bool("tracking"),
	}
	idx.logprefix = fmt.Sprintf("RBTREE [%s.%s]", store, name)
	idx.nodes = make([]node[R], 0, setts.Int64("initslots"))
	idx.nodearena = malloc.NewAllocator(store+"."+name, setts)
	idx.h_upsertdepth = lib.NewhistorgramInt64(1, 64, 1)
	return idx
}

// Name of this index.
func (idx *Index[R]) Name() string {
	return idx.name
}

// Count return number of records in this index.
func (idx *Index[R]) Count() int64 {
	return idx.n_count
}

// Depth return the number of nodes on the longest root-to-leaf path.
func (idx *Index[R]) Depth() int64 {
	type frame struct {
		h     api.Handle
		depth int64
	}
	if idx.root == api.NilHandle {
		return 0
	}
	maxdepth, stack := int64(0), []frame{{idx.root, 1}}
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if fr.depth > maxdepth {
			maxdepth = fr.depth
		}
		for _, child := range idx.nodes[fr.h].child {
			if child != api.NilHandle {
				stack = append(stack, frame{child, fr.depth + 1})
			}
		}
	}
	return maxdepth
}

//---- node management

func (idx *Index[R]) newnode(record R, size int64) api.Handle {
	site := "rbtree"
	if idx.tracking {
		site = lib.Callsite(2)
	}
	h := idx.nodearena.Alloc(site, idx.nodesize)
	for int(h) >= len(idx.nodes) {
		idx.nodes = append(idx.nodes, node[R]{})
	}
	nd := &idx.nodes[h]
	nd.reset()
	idx.seqno++
	nd.record, nd.size, nd.seqno = record, size, idx.seqno
	return h
}

func (idx *Index[R]) freenode(h api.Handle) {
	site := "rbtree"
	if idx.tracking {
		site = lib.Callsite(2)
	}
	idx.nodes[h].reset()
	idx.nodearena.Free(site, h)
}

func (idx *Index[R]) isblack(h api.Handle) bool {
	return h == api.NilHandle || idx.nodes[h].black
}

//---- lookup

// find return the left-most node tying with key.
func (idx *Index[R]) find(key R) api.Handle {
	found := api.NilHandle
	for h := idx.root; h != api.NilHandle; {
		switch c := idx.cmp.OrderKey(idx.nodes[h].record, key); {
		case c < 0:
			h = idx.nodes[h].child[left]
		case c > 0:
			h = idx.nodes[h].child[right]
		default:
			found, h = h, idx.nodes[h].child[left]
		}
	}
	return found
}

// findrecord return the node holding record, among nodes tying with it.
func (idx *Index[R]) findrecord(record R) api.Handle {
	for h := idx.find(record); h != api.NilHandle; h = idx.successor(h) {
		stored := idx.nodes[h].record
		if idx.cmp.OrderKey(stored, record) != 0 {
			break
		} else if idx.cmp.Identify(stored, record) {
			return h
		}
	}
	return api.NilHandle
}

// after return the left-most node ordering strictly after the position
// (key, seqno). Nodes are in (key, seqno) order, hence a position stays
// meaningful after the node holding it is removed.
func (idx *Index[R]) after(key R, seqno uint64) api.Handle {
	found := api.NilHandle
	for h := idx.root; h != api.NilHandle; {
		nd := &idx.nodes[h]
		if c := idx.cmp.OrderKey(nd.record, key); c < 0 || (c == 0 && nd.seqno > seqno) {
			found, h = h, nd.child[left]
		} else {
			h = nd.child[right]
		}
	}
	return found
}

func (idx *Index[R]) minimum(h api.Handle) api.Handle {
	return idx.extreme(h, left)
}

func (idx *Index[R]) maximum(h api.Handle) api.Handle {
	return idx.extreme(h, right)
}

func (idx *Index[R]) extreme(h api.Handle, dir int) api.Handle {
	if h == api.NilHandle {
		return h
	}
	for idx.nodes[h].child[dir] != api.NilHandle {
		h = idx.nodes[h].child[dir]
	}
	return h
}

func (idx *Index[R]) successor(h api.Handle) api.Handle {
	if r := idx.nodes[h].child[right]; r != api.NilHandle {
		return idx.minimum(r)
	}
	p := idx.nodes[h].parent
	for p != api.NilHandle && idx.nodes[p].child[right] == h {
		h, p = p, idx.nodes[p].parent
	}
	return p
}

//---- mutation

// insert record as a new node, ties are placed after every equal node.
func (idx *Index[R]) insert(record R, size int64) api.Handle {
	h := idx.newnode(record, size)
	nodes := idx.nodes

	parent, dir, depth := api.NilHandle, left, int64(1)
	for x := idx.root; x != api.NilHandle; depth++ {
		parent, dir = x, right
		if idx.cmp.OrderKey(nodes[x].record, record) < 0 {
			dir = left
		}
		x = nodes[x].child[dir]
	}
	nodes[h].parent = parent
	if parent == api.NilHandle {
		idx.root = h
	} else {
		nodes[parent].child[dir] = h
	}
	idx.insertfixup(h)

	idx.n_count++
	idx.n_inserts++
	idx.h_upsertdepth.Add(depth)
	return h
}

// replace the record held by node h, return the previous record.
func (idx *Index[R]) replace(h api.Handle, record R, size int64) (R, int64) {
	nd := &idx.nodes[h]
	old, oldsize := nd.record, nd.size
	nd.record, nd.size = record, size
	idx.n_updates++
	return old, oldsize
}

// removerecord remove the node holding record, return false if record
// is not in this index.
func (idx *Index[R]) removerecord(record R) (R, int64, bool) {
	h := idx.findrecord(record)
	if h == api.NilHandle {
		var zero R
		return zero, 0, false
	}
	record, size := idx.removenode(h)
	return record, size, true
}

// removenode unlink node h and return its record. Handles of other
// nodes in this index may hold different records afterwards.
func (idx *Index[R]) removenode(h api.Handle) (record R, size int64) {
	nodes := idx.nodes
	record, size = nodes[h].record, nodes[h].size

	y := h
	if nodes[h].child[left] != api.NilHandle && nodes[h].child[right] != api.NilHandle {
		y = idx.minimum(nodes[h].child[right])
		nodes[h].record, nodes[h].size = nodes[y].record, nodes[y].size
		nodes[h].seqno = nodes[y].seqno
	}

	x := nodes[y].child[left]
	if x == api.NilHandle {
		x = nodes[y].child[right]
	}
	parent := nodes[y].parent
	if x != api.NilHandle {
		nodes[x].parent = parent
	}
	if parent == api.NilHandle {
		idx.root = x
	} else {
		nodes[parent].child[nodes[parent].side(y)] = x
	}
	if nodes[y].black {
		idx.deletefixup(x, parent)
	}
	idx.freenode(y)

	idx.n_count--
	idx.n_deletes++
	return record, size
}

// rotate node x toward dir, x's child on the other side takes its place.
func (idx *Index[R]) rotate(x api.Handle, dir int) {
	nodes := idx.nodes
	y := nodes[x].child[1-dir]
	nodes[x].child[1-dir] = nodes[y].child[dir]
	if c := nodes[y].child[dir]; c != api.NilHandle {
		nodes[c].parent = x
	}
	p := nodes[x].parent
	nodes[y].parent = p
	if p == api.NilHandle {
		idx.root = y
	} else {
		nodes[p].child[nodes[p].side(x)] = y
	}
	nodes[y].child[dir] = x
	nodes[x].parent = y
}

func (idx *Index[R]) insertfixup(x api.Handle) {
	nodes := idx.nodes
	for {
		p := nodes[x].parent
		if p == api.NilHandle || nodes[p].black {
			break
		}
		g := nodes[p].parent
		if g == api.NilHandle {
			break
		}
		dir := 1 - nodes[g].side(p) // uncle's side
		if uncle := nodes[g].child[dir]; !idx.isblack(uncle) {
			nodes[p].black, nodes[uncle].black, nodes[g].black = true, true, false
			x = g
			continue
		}
		if nodes[p].child[dir] == x { // inner grandchild
			x = p
			idx.rotate(x, 1-dir)
			p = nodes[x].parent
		}
		nodes[p].black, nodes[g].black = true, false
		idx.rotate(g, dir)
	}
	nodes[idx.root].black = true
}

// deletefixup restore black height after splicing a black node. x can
// be NilHandle, hence its parent is carried along.
func (idx *Index[R]) deletefixup(x, parent api.Handle) {
	nodes := idx.nodes
	for x != idx.root && idx.isblack(x) {
		dir := right // sibling's side
		if nodes[parent].child[left] != x {
			dir = left
		}
		s := nodes[parent].child[dir]
		if !idx.isblack(s) {
			nodes[s].black, nodes[parent].black = true, false
			idx.rotate(parent, 1-dir)
			s = nodes[parent].child[dir]
		}
		near, far := nodes[s].child[1-dir], nodes[s].child[dir]
		if idx.isblack(near) && idx.isblack(far) {
			nodes[s].black = false
			x, parent = parent, nodes[parent].parent
			continue
		}
		if idx.isblack(far) {
			nodes[near].black, nodes[s].black = true, false
			idx.rotate(s, dir)
			s = nodes[parent].child[dir]
			far = nodes[s].child[dir]
		}
		nodes[s].black = nodes[parent].black
		nodes[parent].black, nodes[far].black = true, true
		idx.rotate(parent, 1-dir)
		x, parent = idx.root, api.NilHandle
	}
	if x != api.NilHandle {
		nodes[x].black = true
	}
}

func (idx *Index[R]) release() {
	idx.nodearena.Release()
	idx.nodes, idx.root = nil, api.NilHandle
	idx.n_count = 0
}
