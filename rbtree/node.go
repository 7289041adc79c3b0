package rbtree

import "github.com/bnclabs/rbindex/api"

const (
	left  = 0
	right = 1
)

// node of a red-black tree. Links are slot numbers into the owning
// Index's arena, child is indexed by direction so that rotation and
// fixup are written once for both sides.
type node[R any] struct {
	parent api.Handle
	child  [2]api.Handle
	black  bool
	seqno  uint64 // insertion order, ties are ordered by seqno
	size   int64  // size hint supplied with the record
	record R
}

func (nd *node[R]) reset() {
	var zero R
	nd.parent, nd.child = api.NilHandle, [2]api.Handle{api.NilHandle, api.NilHandle}
	nd.black, nd.seqno, nd.size, nd.record = false, 0, 0, zero
}

// side return the direction of child h under nd.
func (nd *node[R]) side(h api.Handle) int {
	if nd.child[left] == h {
		return left
	}
	return right
}
