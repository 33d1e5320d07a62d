package container

// Enlist replaces the contiguous span [start, end] of h's target with a
// single new list child whose children are the extracted elements. end <
// start swaps the two bounds.
func (s *Store) Enlist(h *Handle, start, end int) error {
	if err := checkHandle(h); err != nil {
		return err
	}
	c := h.pointsTo
	startPos, err := normalizeGetIndex(c.childrenCount, start)
	if err != nil {
		return err
	}
	endPos, err := normalizeGetIndex(c.childrenCount, end)
	if err != nil {
		return err
	}
	if endPos < startPos {
		startPos, endPos = endPos, startPos
	}

	newH, err := s.Init()
	if err != nil {
		return err
	}

	count := endPos - startPos + 1
	for j := 0; j < count; j++ {
		if err := s.moveOne(h, startPos, newH); err != nil {
			_ = s.Free(newH)
			return err
		}
	}

	if err := s.InsertList(h, startPos, newH); err != nil {
		_ = s.Free(newH)
		return err
	}
	return s.Free(newH)
}

// moveOne removes the element at position pos of src and appends it to dst.
func (s *Store) moveOne(src *Handle, pos int, dst *Handle) error {
	k, err := s.Kind(src, pos)
	if err != nil {
		return err
	}
	if k == Int {
		v, err := s.RemoveInt(src, pos)
		if err != nil {
			return err
		}
		return s.AppendInt(dst, v)
	}
	child, err := s.RemoveList(src, pos)
	if err != nil {
		return err
	}
	if err := s.AppendList(dst, child); err != nil {
		_ = s.Free(child)
		return err
	}
	return s.Free(child)
}

// Delist requires the slot at i to be a List; its children are spliced into
// the parent at position i, in order, and the now-empty list is released.
func (s *Store) Delist(h *Handle, i int) error {
	if err := checkHandle(h); err != nil {
		return err
	}
	c := h.pointsTo
	pos, err := normalizeGetIndex(c.childrenCount, i)
	if err != nil {
		return err
	}
	k, err := s.Kind(h, pos)
	if err != nil {
		return err
	}
	if k != List {
		return newErr(ErrWrongKind, "Delist target is not a List")
	}

	child, err := s.RemoveList(h, pos)
	if err != nil {
		return err
	}

	childLen, err := s.Len(child)
	if err != nil {
		_ = s.Free(child)
		return err
	}
	for j := 0; j < childLen; j++ {
		ck, err := s.Kind(child, 1)
		if err != nil {
			_ = s.Free(child)
			return err
		}
		if ck == Int {
			v, err := s.RemoveInt(child, 1)
			if err != nil {
				_ = s.Free(child)
				return err
			}
			if err := s.InsertInt(h, pos+j, v); err != nil {
				_ = s.Free(child)
				return err
			}
			continue
		}
		sub, err := s.RemoveList(child, 1)
		if err != nil {
			_ = s.Free(child)
			return err
		}
		if err := s.InsertList(h, pos+j, sub); err != nil {
			_ = s.Free(sub)
			_ = s.Free(child)
			return err
		}
		_ = s.Free(sub)
	}

	return s.Free(child)
}

// CopySpan returns a new container holding a shallow copy of [start, end]:
// integers are copied by value, list slots are twinned.
func (s *Store) CopySpan(h *Handle, start, end int) (*Handle, error) {
	if err := checkHandle(h); err != nil {
		return nil, err
	}
	c := h.pointsTo
	startPos, err := normalizeGetIndex(c.childrenCount, start)
	if err != nil {
		return nil, err
	}
	endPos, err := normalizeGetIndex(c.childrenCount, end)
	if err != nil {
		return nil, err
	}
	if endPos < startPos {
		startPos, endPos = endPos, startPos
	}

	newH, err := s.Init()
	if err != nil {
		return nil, err
	}
	for idx := startPos; idx <= endPos; idx++ {
		k, err := s.Kind(h, idx)
		if err != nil {
			_ = s.Free(newH)
			return nil, err
		}
		if k == Int {
			v, err := s.GetInt(h, idx)
			if err != nil {
				_ = s.Free(newH)
				return nil, err
			}
			if err := s.AppendInt(newH, v); err != nil {
				_ = s.Free(newH)
				return nil, err
			}
			continue
		}
		child, err := s.GetList(h, idx)
		if err != nil {
			_ = s.Free(newH)
			return nil, err
		}
		if err := s.AppendList(newH, child); err != nil {
			_ = s.Free(child)
			_ = s.Free(newH)
			return nil, err
		}
		_ = s.Free(child)
	}
	return newH, nil
}

// RemoveSpan removes the contiguous span [start, end], discarding the
// elements entirely (as opposed to Enlist, which keeps them nested).
func (s *Store) RemoveSpan(h *Handle, start, end int) error {
	if err := checkHandle(h); err != nil {
		return err
	}
	c := h.pointsTo
	startPos, err := normalizeGetIndex(c.childrenCount, start)
	if err != nil {
		return err
	}
	endPos, err := normalizeGetIndex(c.childrenCount, end)
	if err != nil {
		return err
	}
	if endPos < startPos {
		startPos, endPos = endPos, startPos
	}
	if err := s.Enlist(h, startPos, endPos); err != nil {
		return err
	}
	return s.Remove(h, startPos)
}
