package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyCleanContainer(t *testing.T) {
	s := NewStore()
	h, _ := s.Init()
	defer s.Free(h)

	for i := int32(0); i < int32(NodeCapacity)*2+3; i++ {
		require.NoError(t, s.AppendInt(h, i))
	}
	child, _ := s.Init()
	require.NoError(t, s.AppendInt(child, 1))
	require.NoError(t, s.AppendList(h, child))
	require.NoError(t, s.Free(child))

	report := Verify(h)
	assert.True(t, report.OK(), report.Violations)
}

func TestVerifyCatchesChildrenCountMismatch(t *testing.T) {
	s := NewStore()
	h, _ := s.Init()
	defer s.Free(h)
	require.NoError(t, s.AppendInt(h, 1))

	h.pointsTo.childrenCount = 99

	report := Verify(h)
	assert.False(t, report.OK())
}

func TestVerifyCatchesOrphanedInternalHandle(t *testing.T) {
	s := NewStore()
	h, _ := s.Init()
	defer s.Free(h)
	child, _ := s.Init()
	require.NoError(t, s.AppendList(h, child))
	require.NoError(t, s.Free(child))

	n, _ := locate(h.pointsTo, 1)
	unregisterRef(n.lists[0].pointsTo, n.lists[0])

	report := Verify(h)
	assert.False(t, report.OK())
}
