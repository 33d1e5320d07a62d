package container

// Init creates a new, empty container and returns a fresh external handle
// to it.
func (s *Store) Init() (*Handle, error) {
	c := &Container{typeTag: 0, userTag: 0}
	c.head, c.tail = newSentinels()
	h := newExternalHandle(c)
	return h, nil
}

// Twin returns a new external handle to the same container h targets.
func (s *Store) Twin(h *Handle) (*Handle, error) {
	if err := checkHandle(h); err != nil {
		return nil, err
	}
	return newExternalHandle(h.pointsTo), nil
}

// Free destroys the external handle h. h may be nil, in which case Free is
// a no-op. Freeing the last external reference to a container may trigger
// the reachability collector (spec.md §4.C).
func (s *Store) Free(h *Handle) error {
	if h == nil || h.freed {
		return nil
	}
	if h.parent != nil {
		return newErr(ErrPrecondition, "Free called with an internal handle")
	}
	target := h.pointsTo
	unregisterRef(target, h)
	h.freed = true
	s.checkReachability(target)
	return nil
}

// Same reports whether a and b currently target the same container, the
// public equivalent of comparing two handles' identity without exposing
// the underlying pointer type.
func Same(a, b *Handle) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.pointsTo == b.pointsTo
}

func checkHandle(h *Handle) error {
	if h == nil {
		return newErr(ErrPrecondition, "nil handle")
	}
	if h.freed {
		return newErr(ErrPrecondition, "handle already freed")
	}
	return nil
}
