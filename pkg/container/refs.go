package container

// registerRef links a newly allocated Handle into target's incoming-refs
// list. Called exactly once per Handle, at the point it is allocated,
// whether it is external (parent == nil) or internal (parent == some
// container). See the comment on Container.refsHead for why this list
// carries both kinds.
func registerRef(target *Container, h *Handle) {
	h.prevRef = target.refsTail
	h.nextRef = nil
	if target.refsTail != nil {
		target.refsTail.nextRef = h
	} else {
		target.refsHead = h
	}
	target.refsTail = h
}

// unregisterRef removes h from target's incoming-refs list. Called exactly
// once per Handle, when it is destroyed (Free for an external handle, or
// node-slot removal/overwrite for an internal one that is not hand back to
// a caller as a fresh handle).
func unregisterRef(target *Container, h *Handle) {
	if h.prevRef != nil {
		h.prevRef.nextRef = h.nextRef
	} else {
		target.refsHead = h.nextRef
	}
	if h.nextRef != nil {
		h.nextRef.prevRef = h.prevRef
	} else {
		target.refsTail = h.prevRef
	}
	h.prevRef = nil
	h.nextRef = nil
}

// newExternalHandle allocates a fresh external handle to target and
// registers it.
func newExternalHandle(target *Container) *Handle {
	h := &Handle{pointsTo: target}
	registerRef(target, h)
	return h
}

// newInternalHandle allocates a fresh handle owned by a node slot of
// parent, pointing at target, and registers it.
func newInternalHandle(parent, target *Container) *Handle {
	h := &Handle{pointsTo: target, parent: parent}
	registerRef(target, h)
	return h
}

// externalRefs returns the external handles currently targeting c, in
// insertion order: the filtered subset of the unified incoming-refs list
// whose parent is nil. This is the "external_refs(C)" of spec.md §3/§8.
func externalRefs(c *Container) []*Handle {
	var out []*Handle
	for h := c.refsHead; h != nil; h = h.nextRef {
		if h.parent == nil {
			out = append(out, h)
		}
	}
	return out
}

// hasExternalRef reports whether c currently has at least one external
// handle, without allocating a slice.
func hasExternalRef(c *Container) bool {
	for h := c.refsHead; h != nil; h = h.nextRef {
		if h.parent == nil {
			return true
		}
	}
	return false
}
