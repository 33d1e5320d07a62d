package container

// checkReachability is the single entry point the rest of the package calls
// whenever a handle targeting target is destroyed (external Free, or an
// internal handle falling out of a node slot). It runs the traversal of
// spec.md §4.C and, if target turns out unreachable, drives the cascading
// free.
func (s *Store) checkReachability(target *Container) {
	if target == nil || target.onFreeChain {
		return
	}
	if !reachableFrom(target) {
		s.freeUnreachable(target)
	}
}

// reachableFrom runs the two-pass mark/clear traversal described in
// spec.md §4.C and returns whether c is reachable from some external
// handle. See the comment on Container.refsHead for why the traversal
// walks the unified incoming-refs list rather than a literal
// external-only one.
func reachableFrom(c *Container) bool {
	visitedList := []*Container{c}
	c.visited = true
	c.prevOnPath = nil

	current := c
	found := false

	for {
		var candidate *Container
		sawExternal := false
		for h := current.refsHead; h != nil; h = h.nextRef {
			if h.parent == nil {
				sawExternal = true
				break
			}
			if !h.parent.visited {
				candidate = h.parent
				break
			}
		}

		if sawExternal {
			found = true
			break
		}

		if candidate == nil {
			if current.prevOnPath == nil {
				break
			}
			current = current.prevOnPath
			continue
		}

		candidate.visited = true
		candidate.prevOnPath = current
		visitedList = append(visitedList, candidate)
		current = candidate
	}

	for _, v := range visitedList {
		v.visited = false
		v.prevOnPath = nil
	}

	return found
}

// freeUnreachable drains and releases target and every container that
// becomes unreachable as a consequence, following arbitrary cycles
// (including self-reference) without recursing once per reference: each
// container is appended to the to-free chain at most once, guarded by
// onFreeChain.
func (s *Store) freeUnreachable(root *Container) {
	root.onFreeChain = true
	root.freeChainNext = nil
	chainTail := root

	for current := root; current != nil; current = current.freeChainNext {
		n := current.head.next
		for n != current.tail {
			switch n.kind {
			case Int:
				// nothing to release explicitly; the array is inline.
			case List:
				for j := 0; j < n.count; j++ {
					h := n.lists[j]
					n.lists[j] = nil
					target := h.pointsTo
					unregisterRef(target, h)
					h.freed = true

					if target == current || target.onFreeChain {
						continue
					}
					if !reachableFrom(target) {
						target.onFreeChain = true
						target.freeChainNext = nil
						chainTail.freeChainNext = target
						chainTail = target
					}
				}
			}
			next := n.next
			n.prev = nil
			n.next = nil
			n = next
		}
		current.head.next = current.tail
		current.tail.prev = current.head
		current.childrenCount = 0

		s.budget.release(current.bytesReserved)
		current.bytesReserved = 0
	}

	// second pass: release every container on the chain now that all
	// internal handles throughout the chain have been cleared.
	for current := root; current != nil; {
		next := current.freeChainNext
		current.freeChainNext = nil
		current.onFreeChain = false
		current.head = nil
		current.tail = nil
		current = next
	}
}
