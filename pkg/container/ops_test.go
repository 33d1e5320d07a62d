package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndGetInt(t *testing.T) {
	s := NewStore()
	h, _ := s.Init()
	defer s.Free(h)

	for i := int32(0); i < int32(NodeCapacity)*3; i++ {
		require.NoError(t, s.AppendInt(h, i))
	}
	n, err := s.Len(h)
	require.NoError(t, err)
	assert.Equal(t, NodeCapacity*3, n)

	for i := 0; i < n; i++ {
		v, err := s.GetInt(h, i+1)
		require.NoError(t, err)
		assert.Equal(t, int32(i), v)
	}

	// negative indexing: -1 is the last element.
	last, err := s.GetInt(h, -1)
	require.NoError(t, err)
	assert.Equal(t, int32(n-1), last)
}

func TestInsertShiftsSubsequentElements(t *testing.T) {
	s := NewStore()
	h, _ := s.Init()
	defer s.Free(h)

	for i := int32(1); i <= 5; i++ {
		require.NoError(t, s.AppendInt(h, i))
	}
	// [1 2 3 4 5] -> insert 99 before position 3 -> [1 2 99 3 4 5]
	require.NoError(t, s.InsertInt(h, 3, 99))

	want := []int32{1, 2, 99, 3, 4, 5}
	n, _ := s.Len(h)
	require.Equal(t, len(want), n)
	for i, w := range want {
		v, err := s.GetInt(h, i+1)
		require.NoError(t, err)
		assert.Equal(t, w, v)
	}
}

func TestInsertNegativeOneDoesNotAppend(t *testing.T) {
	s := NewStore()
	h, _ := s.Init()
	defer s.Free(h)

	for i := int32(1); i <= 3; i++ {
		require.NoError(t, s.AppendInt(h, i))
	}
	// [1 2 3], insert 99 at -1 must land before the last element, not after it.
	require.NoError(t, s.InsertInt(h, -1, 99))

	n, _ := s.Len(h)
	require.Equal(t, 4, n)
	last, err := s.GetInt(h, -1)
	require.NoError(t, err)
	assert.Equal(t, int32(3), last, "append-like -1 insert would leave 99 last")

	secondToLast, err := s.GetInt(h, -2)
	require.NoError(t, err)
	assert.Equal(t, int32(99), secondToLast)
}

func TestInsertAtLengthPlusOneAppends(t *testing.T) {
	s := NewStore()
	h, _ := s.Init()
	defer s.Free(h)
	require.NoError(t, s.AppendInt(h, 1))
	require.NoError(t, s.InsertInt(h, 2, 42))
	v, err := s.GetInt(h, -1)
	require.NoError(t, err)
	assert.Equal(t, int32(42), v)
}

func TestInsertSplitsFullNode(t *testing.T) {
	s := NewStore()
	h, _ := s.Init()
	defer s.Free(h)

	for i := int32(0); i < int32(NodeCapacity); i++ {
		require.NoError(t, s.AppendInt(h, i))
	}
	require.NoError(t, s.InsertInt(h, NodeCapacity/2, -1))

	n, _ := s.Len(h)
	require.Equal(t, NodeCapacity+1, n)
	v, err := s.GetInt(h, NodeCapacity/2)
	require.NoError(t, err)
	assert.Equal(t, int32(-1), v)
}

func TestRemoveAndUnlinkEmptyNode(t *testing.T) {
	s := NewStore()
	h, _ := s.Init()
	defer s.Free(h)
	require.NoError(t, s.AppendInt(h, 7))

	v, err := s.RemoveInt(h, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(7), v)

	n, _ := s.Len(h)
	assert.Equal(t, 0, n)
	assert.Same(t, h.pointsTo.tail, h.pointsTo.head.next, "emptied node must be unlinked")
}

func TestGetKindWrongKindErrors(t *testing.T) {
	s := NewStore()
	h, _ := s.Init()
	defer s.Free(h)
	require.NoError(t, s.AppendInt(h, 1))

	_, err := s.GetList(h, 1)
	assert.Equal(t, ErrWrongKind, Code(err))
}

func TestListChildBecomesInternalHandle(t *testing.T) {
	s := NewStore()
	parent, _ := s.Init()
	defer s.Free(parent)
	child, _ := s.Init()
	require.NoError(t, s.AppendInt(child, 123))

	require.NoError(t, s.AppendList(parent, child))
	require.NoError(t, s.Free(child))

	got, err := s.GetList(parent, 1)
	require.NoError(t, err)
	v, err := s.GetInt(got, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(123), v)
	require.NoError(t, s.Free(got))
}

func TestReplaceWithIntAcrossKind(t *testing.T) {
	s := NewStore()
	h, _ := s.Init()
	defer s.Free(h)
	child, _ := s.Init()
	require.NoError(t, s.AppendList(h, child))
	require.NoError(t, s.Free(child))
	require.NoError(t, s.AppendInt(h, 9))

	require.NoError(t, s.ReplaceWithInt(h, 1, 55))

	k, err := s.Kind(h, 1)
	require.NoError(t, err)
	assert.Equal(t, Int, k)
	v, err := s.GetInt(h, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(55), v)

	n, _ := s.Len(h)
	assert.Equal(t, 2, n)
}

func TestReplaceWithListAcrossKind(t *testing.T) {
	s := NewStore()
	h, _ := s.Init()
	defer s.Free(h)
	require.NoError(t, s.AppendInt(h, 1))
	require.NoError(t, s.AppendInt(h, 2))

	newChild, _ := s.Init()
	require.NoError(t, s.AppendInt(newChild, 777))

	require.NoError(t, s.ReplaceWithList(h, 1, newChild))
	require.NoError(t, s.Free(newChild))

	k, err := s.Kind(h, 1)
	require.NoError(t, err)
	assert.Equal(t, List, k)

	got, err := s.GetList(h, 1)
	require.NoError(t, err)
	v, err := s.GetInt(got, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(777), v)
	require.NoError(t, s.Free(got))

	n, _ := s.Len(h)
	assert.Equal(t, 2, n)
}

func TestTypeAndUserTags(t *testing.T) {
	s := NewStore()
	h, _ := s.Init()
	defer s.Free(h)

	require.NoError(t, s.SetTypeTag(h, 5))
	tag, err := s.GetTypeTag(h)
	require.NoError(t, err)
	assert.Equal(t, int64(5), tag)

	require.NoError(t, s.SetUserTag(h, 42))
	utag, err := s.GetUserTag(h)
	require.NoError(t, err)
	assert.Equal(t, int64(42), utag)

	assert.Equal(t, ErrBadTag, Code(s.SetTypeTag(h, -1)))
	assert.Equal(t, ErrBadTag, Code(s.SetUserTag(h, -1)))
}

func TestMaxChildrenOverflow(t *testing.T) {
	s := NewStore()
	old := MaxChildren
	MaxChildren = 2
	defer func() { MaxChildren = old }()

	h, _ := s.Init()
	defer s.Free(h)
	require.NoError(t, s.AppendInt(h, 1))
	require.NoError(t, s.AppendInt(h, 2))
	assert.Equal(t, ErrOverflow, Code(s.AppendInt(h, 3)))
}
