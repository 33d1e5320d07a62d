package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gavlooth/rcseq/pkg/container"
)

func TestDecodeSimpleList(t *testing.T) {
	s := container.NewStore()
	h, err := Decode(s, "[1 2 -3 0]")
	require.NoError(t, err)
	defer s.Free(h)

	n, _ := s.Len(h)
	require.Equal(t, 4, n)
	want := []int32{1, 2, -3, 0}
	for i, w := range want {
		v, err := s.GetInt(h, i+1)
		require.NoError(t, err)
		assert.Equal(t, w, v)
	}
}

func TestDecodeNestedLists(t *testing.T) {
	s := container.NewStore()
	h, err := Decode(s, "[1 [2 3] 4]")
	require.NoError(t, err)
	defer s.Free(h)

	k, err := s.Kind(h, 2)
	require.NoError(t, err)
	assert.Equal(t, container.List, k)

	nested, err := s.GetList(h, 2)
	require.NoError(t, err)
	defer s.Free(nested)
	v, err := s.GetInt(nested, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(2), v)
}

func TestDecodeTags(t *testing.T) {
	s := container.NewStore()
	h, err := Decode(s, "[~5 `7 1]")
	require.NoError(t, err)
	defer s.Free(h)

	tt, err := s.GetTypeTag(h)
	require.NoError(t, err)
	assert.Equal(t, int64(5), tt)
	ut, err := s.GetUserTag(h)
	require.NoError(t, err)
	assert.Equal(t, int64(7), ut)
}

func TestDecodeRejectsExtraWhitespace(t *testing.T) {
	s := container.NewStore()
	_, err := Decode(s, "[1  2]")
	require.Error(t, err)
	assert.Equal(t, container.ErrDecode, Code(err))
}

func TestDecodeRejectsLeadingZero(t *testing.T) {
	s := container.NewStore()
	_, err := Decode(s, "[01]")
	assert.Error(t, err)
}

func TestDecodeRejectsTrailingGarbage(t *testing.T) {
	s := container.NewStore()
	_, err := Decode(s, "[1] 2")
	assert.Error(t, err)
}

func TestDecodeRejectsUnterminatedList(t *testing.T) {
	s := container.NewStore()
	_, err := Decode(s, "[1 [2]")
	assert.Error(t, err)
}

func TestDecodeRejectsNonListOutermost(t *testing.T) {
	s := container.NewStore()
	_, err := Decode(s, "5")
	assert.Error(t, err)
}

func TestDecodeBackrefToSibling(t *testing.T) {
	s := container.NewStore()
	h, err := Decode(s, "[[1 2] @.1]")
	require.NoError(t, err)
	defer s.Free(h)

	first, err := s.GetList(h, 1)
	require.NoError(t, err)
	defer s.Free(first)
	second, err := s.GetList(h, 2)
	require.NoError(t, err)
	defer s.Free(second)
	assert.True(t, container.Same(first, second))
}

func TestDecodeBackrefSelfReferenceCycle(t *testing.T) {
	s := container.NewStore()
	h, err := Decode(s, "[1 @]")
	require.NoError(t, err)
	defer s.Free(h)

	self, err := s.GetList(h, 2)
	require.NoError(t, err)
	defer s.Free(self)
	assert.True(t, container.Same(h, self))
}

func TestEncodeRoundTripFlat(t *testing.T) {
	s := container.NewStore()
	h, _ := s.Init()
	defer s.Free(h)
	require.NoError(t, s.AppendInt(h, 1))
	require.NoError(t, s.AppendInt(h, -2))
	require.NoError(t, s.AppendInt(h, 0))

	text, err := Encode(s, h)
	require.NoError(t, err)
	assert.Equal(t, "[1 -2 0]", text)

	decoded, err := Decode(s, text)
	require.NoError(t, err)
	defer s.Free(decoded)
	text2, err := Encode(s, decoded)
	require.NoError(t, err)
	assert.Equal(t, text, text2, "round trip must be idempotent")
}

func TestEncodeEmitsTagsWhenNonZero(t *testing.T) {
	s := container.NewStore()
	h, _ := s.Init()
	defer s.Free(h)
	require.NoError(t, s.SetTypeTag(h, 3))
	require.NoError(t, s.AppendInt(h, 1))

	text, err := Encode(s, h)
	require.NoError(t, err)
	assert.Equal(t, "[~3 1]", text)
}

func TestEncodeOmitsZeroTags(t *testing.T) {
	s := container.NewStore()
	h, _ := s.Init()
	defer s.Free(h)
	require.NoError(t, s.AppendInt(h, 1))

	text, err := Encode(s, h)
	require.NoError(t, err)
	assert.Equal(t, "[1]", text)
}

func TestEncodeSharedSubstructureUsesBackref(t *testing.T) {
	s := container.NewStore()
	shared, _ := s.Init()
	require.NoError(t, s.AppendInt(shared, 9))

	root, _ := s.Init()
	defer s.Free(root)
	require.NoError(t, s.AppendList(root, shared))
	require.NoError(t, s.AppendList(root, shared))
	require.NoError(t, s.Free(shared))

	text, err := Encode(s, root)
	require.NoError(t, err)
	assert.Equal(t, "[[9] @.1]", text)
}

func TestEncodeSelfReferenceUsesBareBackref(t *testing.T) {
	s := container.NewStore()
	h, _ := s.Init()
	defer s.Free(h)
	require.NoError(t, s.AppendInt(h, 1))
	require.NoError(t, s.AppendList(h, h))

	text, err := Encode(s, h)
	require.NoError(t, err)
	assert.Equal(t, "[1 @]", text)
}

func TestEncodeIsRepeatableAfterReset(t *testing.T) {
	s := container.NewStore()
	h, _ := s.Init()
	defer s.Free(h)
	require.NoError(t, s.AppendInt(h, 1))
	require.NoError(t, s.AppendList(h, h))

	first, err := Encode(s, h)
	require.NoError(t, err)
	second, err := Encode(s, h)
	require.NoError(t, err)
	assert.Equal(t, first, second, "pass 2 must fully reset transient encode state")
}

func TestDecodeCycleThroughTwoContainers(t *testing.T) {
	// root -> child1 -> child2 -> (back to) child1, a genuine two-container
	// cycle built entirely from backrefs to already-open ancestors, which is
	// all a single-pass decoder can ever construct a cycle out of.
	s := container.NewStore()
	h, err := Decode(s, "[[1 [@.1]]]")
	require.NoError(t, err)
	defer s.Free(h)

	child1, err := s.GetList(h, 1)
	require.NoError(t, err)
	defer s.Free(child1)
	child2, err := s.GetList(child1, 2)
	require.NoError(t, err)
	defer s.Free(child2)

	backToChild1, err := s.GetList(child2, 1)
	require.NoError(t, err)
	defer s.Free(backToChild1)
	assert.True(t, container.Same(child1, backToChild1))
}
