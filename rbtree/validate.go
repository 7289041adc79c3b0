package rbtree

import "fmt"
import "math"

import "github.com/bnclabs/rbindex/api"

// height of the tree cannot exceed 2*log2(n+1) for a red-black tree.
func maxheight(entries int64) float64 {
	return 2 * math.Log2(float64(entries)+1)
}

// Validate walk every index to confirm the red-black properties, sort
// order and bookkeeping. Panics with an error wrapping
// api.ErrorInvariant on the first violation.
func (store *Store[R]) Validate() {
	var size int64
	for i, idx := range store.indexes {
		n, sz := idx.validate()
		if n != store.n_count {
			fmsg := "%w: %v index %q holds %v records, store count %v"
			panicerr(fmsg, api.ErrorInvariant, store.logprefix, idx.name, n, store.n_count)
		}
		if i == 0 {
			size = sz
		}
	}
	if size != store.size {
		fmsg := "%w: %v size %v != actual %v"
		panicerr(fmsg, api.ErrorInvariant, store.logprefix, store.size, size)
	}
	if x, y := store.a_recsize.Sum(), store.a_recsize.Samples(); x != store.size || y != store.n_count {
		fmsg := "%w: %v a_recsize {%v,%v} != {size:%v,n_count:%v}"
		panicerr(fmsg, api.ErrorInvariant, store.logprefix, x, y, store.size, store.n_count)
	}
	// n_count should match (n_inserts - n_deletes)
	if store.n_count != store.n_inserts-store.n_deletes {
		fmsg := "%w: %v n_count:%v != (n_inserts:%v - n_deletes:%v)"
		panicerr(fmsg, api.ErrorInvariant, store.logprefix,
			store.n_count, store.n_inserts, store.n_deletes)
	}
}

// validate return the number of nodes and the sum of their size hints.
func (idx *Index[R]) validate() (n, size int64) {
	if idx.root == api.NilHandle {
		return 0, 0
	}
	if !idx.nodes[idx.root].black {
		idx.invariant("root is red")
	} else if idx.nodes[idx.root].parent != api.NilHandle {
		idx.invariant("root has a parent %v", idx.nodes[idx.root].parent)
	}

	type frame struct {
		h      api.Handle
		blacks int64
	}
	leafblacks := int64(-1)
	stack := []frame{{idx.root, 1}}
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nd := &idx.nodes[fr.h]
		n, size = n+1, size+nd.size

		for _, child := range nd.child {
			if child == api.NilHandle {
				if leafblacks < 0 {
					leafblacks = fr.blacks
				} else if leafblacks != fr.blacks {
					idx.invariant("unbalanced blacks {%v,%v}", leafblacks, fr.blacks)
				}
				continue
			}
			cnd := &idx.nodes[child]
			if cnd.parent != fr.h {
				idx.invariant("node %v parent %v, expected %v", child, cnd.parent, fr.h)
			} else if !nd.black && !cnd.black {
				idx.invariant("consecutive red spotted at %v", child)
			}
			blacks := fr.blacks
			if cnd.black {
				blacks++
			}
			stack = append(stack, frame{child, blacks})
		}
	}

	// sort order
	prev, seen := idx.minimum(idx.root), int64(1)
	for h := idx.successor(prev); h != api.NilHandle; h = idx.successor(h) {
		pnd, nd := &idx.nodes[prev], &idx.nodes[h]
		switch c := idx.cmp.OrderKey(pnd.record, nd.record); {
		case c < 0:
			idx.invariant("sort order violated at %v", h)
		case c == 0 && pnd.seqno >= nd.seqno:
			idx.invariant("ties out of order at %v {%v,%v}", h, pnd.seqno, nd.seqno)
		}
		prev, seen = h, seen+1
	}

	if n != idx.n_count || seen != n {
		idx.invariant("n_count:%v walked:%v in-order:%v", idx.n_count, n, seen)
	}
	if _, allocated := idx.nodearena.Info(); allocated != n {
		idx.invariant("allocated %v nodes for %v records", allocated, n)
	}
	if depth := idx.Depth(); n > 8 && float64(depth) > maxheight(n) {
		idx.invariant("max height %v exceeds 2*log2(%v)", depth, n)
	}
	return n, size
}

func (idx *Index[R]) invariant(fmsg string, args ...interface{}) {
	err := fmt.Errorf(fmsg, args...)
	panicerr("%w: %v %v", api.ErrorInvariant, idx.logprefix, err)
}
