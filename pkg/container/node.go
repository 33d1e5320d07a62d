package container

// newSentinels allocates the head/tail sentinel pair for a brand new,
// empty container.
func newSentinels() (head, tail *node) {
	head = &node{kind: sentinelKind}
	tail = &node{kind: sentinelKind}
	head.next = tail
	tail.prev = head
	return head, tail
}

// allocNode allocates a node of the given kind, charging it against the
// Store's memory budget.
func (s *Store) allocNode(kind Kind) (*node, error) {
	if err := s.budget.reserve(approxNodeBytes); err != nil {
		return nil, err
	}
	if s.alloc.AllocZeroed != nil {
		if err := s.alloc.AllocZeroed(int(approxNodeBytes)); err != nil {
			s.budget.release(approxNodeBytes)
			return nil, wrapErr(ErrAllocationFailed, "allocating node", err)
		}
	}
	return &node{kind: kind}, nil
}

// freeNode releases a node previously returned by allocNode and credits the
// budget back.
func (s *Store) freeNode(c *Container, n *node) {
	s.budget.release(approxNodeBytes)
	c.bytesReserved -= approxNodeBytes
	if s.alloc.Release != nil {
		s.alloc.Release(int(approxNodeBytes))
	}
}

// unlink removes n from its doubly-linked list. n must not be a sentinel.
func unlink(n *node) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev = nil
	n.next = nil
}

// insertBefore splices newNode into the list immediately before at.
func insertBefore(at, newNode *node) {
	newNode.prev = at.prev
	newNode.next = at
	at.prev.next = newNode
	at.prev = newNode
}

// locate walks from head to find the node holding 1-based position pos and
// the 0-based offset of that slot within the node, per spec.md §4.A's
// indexing algorithm.
func locate(c *Container, pos int) (*node, int) {
	running := 0
	for n := c.head.next; n != c.tail; n = n.next {
		running += n.count
		if running >= pos {
			return n, n.count - 1 - (running - pos)
		}
	}
	return nil, -1
}

// splitAt splits n at keepLeft (0-based count to retain in n), whether or
// not n is full; the remaining elements move to a freshly allocated node of the same
// kind spliced in immediately after n. This is the only mechanism by which
// nodes subdivide.
func (s *Store) splitAt(c *Container, n *node, keepLeft int) (*node, error) {
	right, err := s.allocNode(n.kind)
	if err != nil {
		return nil, err
	}
	c.bytesReserved += approxNodeBytes

	moveCount := n.count - keepLeft
	switch n.kind {
	case Int:
		copy(right.ints[:moveCount], n.ints[keepLeft:n.count])
	case List:
		copy(right.lists[:moveCount], n.lists[keepLeft:n.count])
		for i := keepLeft; i < n.count; i++ {
			n.lists[i] = nil
		}
	}
	right.count = moveCount
	n.count = keepLeft

	insertBefore(n.next, right)
	return right, nil
}

// unlinkIfEmpty frees n if it has become empty, preserving the invariant
// that non-sentinel nodes always have count > 0.
func (s *Store) unlinkIfEmpty(c *Container, n *node) {
	if n.count > 0 {
		return
	}
	unlink(n)
	s.freeNode(c, n)
}
