package codec

import (
	"fmt"
	"strings"

	"github.com/gavlooth/rcseq/pkg/container"
)

// Encode renders h's target as canonical textual form: a depth-first
// walk (pass 1 of spec.md §4.D) that emits '[', tag annotations, and
// children separated by single spaces, emitting '@.p1.p2…' instead of
// redescending whenever a container is reached for a second time — which
// is what makes shared substructure and cycles representable at all.
// Pass 2 resets the transient per-container marking the walk uses, so a
// later Encode call never observes stale state from this one.
func Encode(s *container.Store, h *container.Handle) (string, error) {
	var buf strings.Builder
	err := encodeWalk(&buf, s, h, nil, 0, true)
	resetWalk(s, h)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func encodeWalk(buf *strings.Builder, s *container.Store, h, parent *container.Handle, childIndex int, isRoot bool) error {
	if isRoot {
		s.EncodeMarkRoot(h)
	} else {
		if s.EncodeVisited(h) {
			path := s.EncodeParentPath(h)
			buf.WriteByte('@')
			for _, p := range path {
				fmt.Fprintf(buf, ".%d", p)
			}
			return nil
		}
		s.EncodeMarkChild(h, parent, childIndex)
	}

	buf.WriteByte('[')
	wrote := false

	typeTag, err := s.GetTypeTag(h)
	if err != nil {
		return err
	}
	if typeTag != 0 {
		fmt.Fprintf(buf, "~%d", typeTag)
		wrote = true
	}
	userTag, err := s.GetUserTag(h)
	if err != nil {
		return err
	}
	if userTag != 0 {
		if wrote {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "`%d", userTag)
		wrote = true
	}

	n, err := s.Len(h)
	if err != nil {
		return err
	}
	for i := 1; i <= n; i++ {
		if wrote {
			buf.WriteByte(' ')
		}
		wrote = true

		k, err := s.Kind(h, i)
		if err != nil {
			return err
		}
		if k == container.Int {
			v, err := s.GetInt(h, i)
			if err != nil {
				return err
			}
			fmt.Fprintf(buf, "%d", v)
			continue
		}

		child, err := s.GetList(h, i)
		if err != nil {
			return err
		}
		err = encodeWalk(buf, s, child, h, i, false)
		_ = s.Free(child)
		if err != nil {
			return err
		}
	}

	buf.WriteByte(']')
	return nil
}

// resetWalk mirrors encodeWalk's traversal, without writing anything,
// clearing the transient encoding_parent/encoding_child_number fields pass
// 1 set. Each container has by construction been marked exactly once by
// pass 1 (EncodeVisited reports true), which both identifies the nodes
// pass 2 must visit and stops it from redescending into a node a cycle or
// shared reference has already brought it back to.
func resetWalk(s *container.Store, h *container.Handle) {
	if !s.EncodeVisited(h) {
		return
	}
	s.EncodeReset(h)

	n, err := s.Len(h)
	if err != nil {
		return
	}
	for i := 1; i <= n; i++ {
		k, err := s.Kind(h, i)
		if err != nil || k != container.List {
			continue
		}
		child, err := s.GetList(h, i)
		if err != nil {
			continue
		}
		resetWalk(s, child)
		_ = s.Free(child)
	}
}
