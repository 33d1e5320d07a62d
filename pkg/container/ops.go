package container

// MaxChildren caps Container.childrenCount. It defaults to the hard limit
// and is only ever lowered by configuration (internal/config), never raised
// past MaxChildrenHardLimit.
var MaxChildren = MaxChildrenHardLimit

// Len returns h's target's current children count.
func (s *Store) Len(h *Handle) (int, error) {
	if err := checkHandle(h); err != nil {
		return 0, err
	}
	return h.pointsTo.childrenCount, nil
}

// Kind reports whether the child at i is Int or List.
func (s *Store) Kind(h *Handle, i int) (Kind, error) {
	if err := checkHandle(h); err != nil {
		return sentinelKind, err
	}
	c := h.pointsTo
	pos, err := normalizeGetIndex(c.childrenCount, i)
	if err != nil {
		return sentinelKind, err
	}
	n, _ := locate(c, pos)
	return n.kind, nil
}

// normalizeGetIndex converts a 1-based, possibly-negative index into a
// positive 1-based position for getter-style operations (get, kind,
// remove, replace-target, enlist/delist/copyspan endpoints).
func normalizeGetIndex(length, i int) (int, error) {
	if i < 0 {
		i = length + i + 1
	}
	if i <= 0 || i > length {
		return 0, newErr(ErrBadIndex, "index out of range")
	}
	return i, nil
}

// normalizeInsertIndex converts a 1-based, possibly-negative index into a
// positive 1-based position for insert-style operations, whose valid range
// extends one past the end (len+1 means append). See DESIGN.md for why this
// uses the same negative formula as normalizeGetIndex rather than the "+2"
// shift spec.md's prose mentions: that shift, combined with the prose's own
// stated negative range, would map index -1 to the same position as
// len+1 ("append"), directly contradicting the spec's own boundary test
// that -1 must insert before the last element rather than append.
func normalizeInsertIndex(length, i int) (int, error) {
	if i < 0 {
		i = length + i + 1
	}
	if i <= 0 || i > length+1 {
		return 0, newErr(ErrBadIndex, "index out of range")
	}
	return i, nil
}

// AppendInt appends an integer child to the end of h's target.
func (s *Store) AppendInt(h *Handle, v int32) error {
	if err := checkHandle(h); err != nil {
		return err
	}
	c := h.pointsTo
	if c.childrenCount >= MaxChildren {
		return newErr(ErrOverflow, "list at MaxChildren")
	}
	n := c.tail.prev
	if n == c.head || n.kind != Int || n.count == NodeCapacity {
		var err error
		n, err = s.allocNode(Int)
		if err != nil {
			return err
		}
		c.bytesReserved += approxNodeBytes
		insertBefore(c.tail, n)
	}
	n.ints[n.count] = v
	n.count++
	c.childrenCount++
	return nil
}

// AppendList appends a new internal handle pointing at the same container
// as source, to the end of h's target.
func (s *Store) AppendList(h *Handle, source *Handle) error {
	if err := checkHandle(h); err != nil {
		return err
	}
	if err := checkHandle(source); err != nil {
		return err
	}
	c := h.pointsTo
	if c.childrenCount >= MaxChildren {
		return newErr(ErrOverflow, "list at MaxChildren")
	}
	n := c.tail.prev
	if n == c.head || n.kind != List || n.count == NodeCapacity {
		var err error
		n, err = s.allocNode(List)
		if err != nil {
			return err
		}
		c.bytesReserved += approxNodeBytes
		insertBefore(c.tail, n)
	}
	n.lists[n.count] = newInternalHandle(c, source.pointsTo)
	n.count++
	c.childrenCount++
	return nil
}

// InsertInt inserts an integer child before position i (1-based, negative
// counts from the end; see normalizeInsertIndex).
func (s *Store) InsertInt(h *Handle, i int, v int32) error {
	if err := checkHandle(h); err != nil {
		return err
	}
	c := h.pointsTo
	pos, err := normalizeInsertIndex(c.childrenCount, i)
	if err != nil {
		return err
	}
	if pos == c.childrenCount+1 {
		return s.AppendInt(h, v)
	}
	if c.childrenCount >= MaxChildren {
		return newErr(ErrOverflow, "list at MaxChildren")
	}

	n, offset := locate(c, pos)

	if n.kind == Int {
		if n.count == NodeCapacity {
			right, err := s.splitAt(c, n, NodeCapacity/2)
			if err != nil {
				return err
			}
			if offset >= n.count {
				offset -= n.count
				n = right
			}
		}
		copy(n.ints[offset+1:n.count+1], n.ints[offset:n.count])
		n.ints[offset] = v
		n.count++
		c.childrenCount++
		return nil
	}

	// n.kind == List: inserting an int at the start of a list node.
	if offset == 0 && n.prev != c.head && n.prev.kind == Int && n.prev.count < NodeCapacity {
		prev := n.prev
		prev.ints[prev.count] = v
		prev.count++
		c.childrenCount++
		return nil
	}
	if offset != 0 {
		var err error
		n, err = s.splitAt(c, n, offset)
		if err != nil {
			return err
		}
	}
	fresh, err := s.allocNode(Int)
	if err != nil {
		return err
	}
	c.bytesReserved += approxNodeBytes
	fresh.ints[0] = v
	fresh.count = 1
	insertBefore(n, fresh)
	c.childrenCount++
	return nil
}

// InsertList inserts a new internal handle to source's target before
// position i.
func (s *Store) InsertList(h *Handle, i int, source *Handle) error {
	if err := checkHandle(h); err != nil {
		return err
	}
	if err := checkHandle(source); err != nil {
		return err
	}
	c := h.pointsTo
	pos, err := normalizeInsertIndex(c.childrenCount, i)
	if err != nil {
		return err
	}
	if pos == c.childrenCount+1 {
		return s.AppendList(h, source)
	}
	if c.childrenCount >= MaxChildren {
		return newErr(ErrOverflow, "list at MaxChildren")
	}

	n, offset := locate(c, pos)
	target := source.pointsTo

	if n.kind == List {
		if n.count == NodeCapacity {
			right, err := s.splitAt(c, n, NodeCapacity/2)
			if err != nil {
				return err
			}
			if offset >= n.count {
				offset -= n.count
				n = right
			}
		}
		copy(n.lists[offset+1:n.count+1], n.lists[offset:n.count])
		n.lists[offset] = newInternalHandle(c, target)
		n.count++
		c.childrenCount++
		return nil
	}

	// n.kind == Int: inserting a list at the start of an int node.
	if offset == 0 && n.prev != c.head && n.prev.kind == List && n.prev.count < NodeCapacity {
		prev := n.prev
		prev.lists[prev.count] = newInternalHandle(c, target)
		prev.count++
		c.childrenCount++
		return nil
	}
	if offset != 0 {
		var err error
		n, err = s.splitAt(c, n, offset)
		if err != nil {
			return err
		}
	}
	fresh, err := s.allocNode(List)
	if err != nil {
		return err
	}
	c.bytesReserved += approxNodeBytes
	fresh.lists[0] = newInternalHandle(c, target)
	fresh.count = 1
	insertBefore(n, fresh)
	c.childrenCount++
	return nil
}

// GetInt returns the integer value at index i.
func (s *Store) GetInt(h *Handle, i int) (int32, error) {
	if err := checkHandle(h); err != nil {
		return 0, err
	}
	c := h.pointsTo
	pos, err := normalizeGetIndex(c.childrenCount, i)
	if err != nil {
		return 0, err
	}
	n, offset := locate(c, pos)
	if n.kind != Int {
		return 0, newErr(ErrWrongKind, "child is not an Int")
	}
	return n.ints[offset], nil
}

// GetList returns a fresh external handle to the child list at index i.
func (s *Store) GetList(h *Handle, i int) (*Handle, error) {
	if err := checkHandle(h); err != nil {
		return nil, err
	}
	c := h.pointsTo
	pos, err := normalizeGetIndex(c.childrenCount, i)
	if err != nil {
		return nil, err
	}
	n, offset := locate(c, pos)
	if n.kind != List {
		return nil, newErr(ErrWrongKind, "child is not a List")
	}
	return newExternalHandle(n.lists[offset].pointsTo), nil
}

// RemoveInt removes and returns the integer child at index i.
func (s *Store) RemoveInt(h *Handle, i int) (int32, error) {
	if err := checkHandle(h); err != nil {
		return 0, err
	}
	c := h.pointsTo
	pos, err := normalizeGetIndex(c.childrenCount, i)
	if err != nil {
		return 0, err
	}
	n, offset := locate(c, pos)
	if n.kind != Int {
		return 0, newErr(ErrWrongKind, "child is not an Int")
	}
	v := n.ints[offset]
	copy(n.ints[offset:n.count-1], n.ints[offset+1:n.count])
	n.count--
	c.childrenCount--
	s.unlinkIfEmpty(c, n)
	return v, nil
}

// RemoveList removes the list child at index i and returns a fresh
// external handle to it.
func (s *Store) RemoveList(h *Handle, i int) (*Handle, error) {
	if err := checkHandle(h); err != nil {
		return nil, err
	}
	c := h.pointsTo
	pos, err := normalizeGetIndex(c.childrenCount, i)
	if err != nil {
		return nil, err
	}
	n, offset := locate(c, pos)
	if n.kind != List {
		return nil, newErr(ErrWrongKind, "child is not a List")
	}
	removed := n.lists[offset]
	target := removed.pointsTo
	copy(n.lists[offset:n.count-1], n.lists[offset+1:n.count])
	n.lists[n.count-1] = nil
	n.count--
	c.childrenCount--
	s.unlinkIfEmpty(c, n)

	unregisterRef(target, removed)
	removed.freed = true
	// Register the caller's new external handle before checking
	// reachability, so a child with no other incoming ref is kept alive by
	// the handle we are about to hand back instead of being freed out from
	// under it.
	out := newExternalHandle(target)
	s.checkReachability(target)

	return out, nil
}

// Remove removes the child at index i, discarding its value (or releasing
// its internal handle, for a List child) without producing a replacement.
func (s *Store) Remove(h *Handle, i int) error {
	if err := checkHandle(h); err != nil {
		return err
	}
	c := h.pointsTo
	pos, err := normalizeGetIndex(c.childrenCount, i)
	if err != nil {
		return err
	}
	n, offset := locate(c, pos)
	if n.kind == Int {
		copy(n.ints[offset:n.count-1], n.ints[offset+1:n.count])
		n.count--
		c.childrenCount--
		s.unlinkIfEmpty(c, n)
		return nil
	}
	removed := n.lists[offset]
	target := removed.pointsTo
	copy(n.lists[offset:n.count-1], n.lists[offset+1:n.count])
	n.lists[n.count-1] = nil
	n.count--
	c.childrenCount--
	s.unlinkIfEmpty(c, n)

	unregisterRef(target, removed)
	removed.freed = true
	s.checkReachability(target)
	return nil
}

// ReplaceWithInt overwrites the child at index i with an integer value.
func (s *Store) ReplaceWithInt(h *Handle, i int, v int32) error {
	if err := checkHandle(h); err != nil {
		return err
	}
	c := h.pointsTo
	pos, err := normalizeGetIndex(c.childrenCount, i)
	if err != nil {
		return err
	}
	n, offset := locate(c, pos)
	if n.kind == Int {
		n.ints[offset] = v
		return nil
	}

	if err := s.InsertInt(h, pos, v); err != nil {
		return err
	}
	// the original slot shifted from pos to pos+1 when the replacement was
	// inserted; pos is already a normalized positive position, so it is
	// safe to reuse directly regardless of the sign of the caller's i. Remove
	// already unregisters the old internal handle and runs the reachability
	// check, so doing either again here would double-free it.
	return s.Remove(h, pos+1)
}

// ReplaceWithList overwrites the child at index i with a new internal
// handle to source's target.
func (s *Store) ReplaceWithList(h *Handle, i int, source *Handle) error {
	if err := checkHandle(h); err != nil {
		return err
	}
	if err := checkHandle(source); err != nil {
		return err
	}
	c := h.pointsTo
	pos, err := normalizeGetIndex(c.childrenCount, i)
	if err != nil {
		return err
	}
	n, offset := locate(c, pos)

	if n.kind == List {
		old := n.lists[offset]
		oldTarget := old.pointsTo
		unregisterRef(oldTarget, old)
		old.freed = true
		n.lists[offset] = newInternalHandle(c, source.pointsTo)
		s.checkReachability(oldTarget)
		return nil
	}

	if err := s.InsertList(h, pos, source); err != nil {
		return err
	}
	return s.Remove(h, pos+1)
}

// GetTypeTag returns the container's type tag (0 is the default "data" tag).
func (s *Store) GetTypeTag(h *Handle) (int64, error) {
	if err := checkHandle(h); err != nil {
		return 0, err
	}
	return h.pointsTo.typeTag, nil
}

// SetTypeTag sets the container's type tag.
func (s *Store) SetTypeTag(h *Handle, tag int64) error {
	if err := checkHandle(h); err != nil {
		return err
	}
	if tag < 0 {
		return newErr(ErrBadTag, "type tag must be non-negative")
	}
	h.pointsTo.typeTag = tag
	return nil
}

// GetUserTag returns the container's user tag.
func (s *Store) GetUserTag(h *Handle) (int64, error) {
	if err := checkHandle(h); err != nil {
		return 0, err
	}
	return h.pointsTo.userTag, nil
}

// SetUserTag sets the container's user tag.
func (s *Store) SetUserTag(h *Handle, tag int64) error {
	if err := checkHandle(h); err != nil {
		return err
	}
	if tag < 0 {
		return newErr(ErrBadTag, "user tag must be non-negative")
	}
	h.pointsTo.userTag = tag
	return nil
}
