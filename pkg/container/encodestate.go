package container

// The five methods below expose the transient encodingParent/
// encodingChildNumber scratch fields (zeroed outside of an encode pass) to
// the codec package, which drives the two-pass walk described in spec.md
// §4.D. Root is distinguished from "unvisited" by the sentinel
// encodingChildNumber == -1 (a real child position is always >= 1); zero
// means "not yet visited by this pass".

// EncodeVisited reports whether h's target was already visited earlier in
// the in-progress encode pass.
func (s *Store) EncodeVisited(h *Handle) bool {
	return h.pointsTo.encodingChildNumber != 0
}

// EncodeMarkRoot marks h's target as the root of the encode pass.
func (s *Store) EncodeMarkRoot(h *Handle) {
	h.pointsTo.encodingChildNumber = -1
	h.pointsTo.encodingParent = nil
}

// EncodeMarkChild marks h's target as reached, for the first time in this
// pass, through position childIndex of parent.
func (s *Store) EncodeMarkChild(h, parent *Handle, childIndex int) {
	h.pointsTo.encodingChildNumber = int64(childIndex)
	h.pointsTo.encodingParent = parent.pointsTo
}

// EncodeParentPath walks encodingParent links from h's target back to the
// root visited earlier in this pass, returning the child-index path from
// the root down to h (root-first order), for backreference emission. An
// empty result means h's target is itself the root.
func (s *Store) EncodeParentPath(h *Handle) []int {
	var reversed []int
	c := h.pointsTo
	for c.encodingParent != nil {
		reversed = append(reversed, int(c.encodingChildNumber))
		c = c.encodingParent
	}
	path := make([]int, len(reversed))
	for i, v := range reversed {
		path[len(reversed)-1-i] = v
	}
	return path
}

// EncodeReset clears h's target's transient encode-pass marking, the
// second of the two passes spec.md §4.D requires so a later encode call
// never observes stale state.
func (s *Store) EncodeReset(h *Handle) {
	h.pointsTo.encodingChildNumber = 0
	h.pointsTo.encodingParent = nil
}
