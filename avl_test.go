package mbst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHasher(t *testing.T) *hasher {
	t.Helper()
	h, err := newHasher(nil, 0)
	require.NoError(t, err)
	return h
}

func leaf(t *testing.T, h *hasher, key string) *leafNode {
	t.Helper()
	l, err := newLeaf(h, []byte(key), key)
	require.NoError(t, err)
	return l
}

func TestRotateRightLL(t *testing.T) {
	t.Parallel()
	h := newTestHasher(t)
	// z
	//  \-left: y = (ab, c), height 2
	//  \-right: d, height 0
	// z.delta() == 2, y.delta() == 1 >= 0: the LL case.
	a, b, c, d := leaf(t, h, "a"), leaf(t, h, "b"), leaf(t, h, "c"), leaf(t, h, "d")
	ab, err := rehash(h, a, b, []byte("a"))
	require.NoError(t, err)
	y, err := rehash(h, ab, c, []byte("b"))
	require.NoError(t, err)
	require.EqualValues(t, 1, y.delta())
	z, err := rehash(h, y, d, []byte("c"))
	require.NoError(t, err)
	require.EqualValues(t, 2, z.delta(), "left-heavy before rotation")

	newRoot, err := rotateRight(h, z)
	require.NoError(t, err)
	newLeft, ok := newRoot.left.(*innerNode)
	require.True(t, ok)
	assert.Equal(t, []byte("a"), newLeft.search)
	newRight, ok := newRoot.right.(*innerNode)
	require.True(t, ok)
	assert.Equal(t, []byte("c"), newRight.search)
	assert.Equal(t, 0, newRoot.delta())

	expectedCD, err := h.concat(c.keyHash(), d.keyHash())
	require.NoError(t, err)
	expectedRoot, err := h.concat(ab.keyHash(), expectedCD)
	require.NoError(t, err)
	assert.Equal(t, expectedRoot, newRoot.keyHash())
}

func TestRotateLeftRR(t *testing.T) {
	t.Parallel()
	h := newTestHasher(t)
	// z
	//  \-left: a, height 0
	//  \-right: y = (b, cd), height 2
	// z.delta() == -2, y.delta() == -1 <= 0: the RR case.
	a, b, c, d := leaf(t, h, "a"), leaf(t, h, "b"), leaf(t, h, "c"), leaf(t, h, "d")
	cd, err := rehash(h, c, d, []byte("c"))
	require.NoError(t, err)
	y, err := rehash(h, b, cd, []byte("b"))
	require.NoError(t, err)
	require.EqualValues(t, -1, y.delta())
	z, err := rehash(h, a, y, []byte("a"))
	require.NoError(t, err)
	require.EqualValues(t, -2, z.delta(), "right-heavy before rotation")

	newRoot, err := rotateLeft(h, z)
	require.NoError(t, err)
	newLeft, ok := newRoot.left.(*innerNode)
	require.True(t, ok)
	assert.Equal(t, []byte("a"), newLeft.search)
	newRight, ok := newRoot.right.(*innerNode)
	require.True(t, ok)
	assert.Equal(t, []byte("c"), newRight.search)
	assert.Equal(t, 0, newRoot.delta())
}

func TestRebalanceLeftRight(t *testing.T) {
	t.Parallel()
	// Insert c, d, a, b in that order. After c, d, a the root is
	// ((a, c), d); b then lands between a and c, so the root's left child
	// becomes (a, (b, c)) with delta -1 and the root's delta reaches 2: the
	// LR case. Rotating left at the left child and then right at the root
	// leaves ((a, b), (c, d)), whose root search key is "b".
	var tr *Tree
	var err error
	tr, err = New()
	require.NoError(t, err)
	for _, k := range []string{"c", "d", "a", "b"} {
		tr, err = tr.Insert([]byte(k), k)
		require.NoError(t, err)
	}
	assertAVLBalanced(t, tr.root)
	inner, ok := tr.root.(*innerNode)
	require.True(t, ok)
	assert.Equal(t, []byte("b"), inner.search)
}

func TestRebalanceRightLeft(t *testing.T) {
	t.Parallel()
	var tr *Tree
	var err error
	tr, err = New()
	require.NoError(t, err)
	// Mirror of the LR case: after a, c, d the root is (a, (c, d)); b lands
	// between a and c, making the right child ((b, c), d) with delta 1 and the
	// root's delta -2. Rotating right at the right child and then left at the
	// root leaves ((a, b), (c, d)).
	for _, k := range []string{"a", "c", "d", "b"} {
		tr, err = tr.Insert([]byte(k), k)
		require.NoError(t, err)
	}
	assertAVLBalanced(t, tr.root)
	inner, ok := tr.root.(*innerNode)
	require.True(t, ok)
	assert.Equal(t, []byte("b"), inner.search)
}

func TestRehashHeightAndDigest(t *testing.T) {
	t.Parallel()
	h := newTestHasher(t)
	a, b := leaf(t, h, "a"), leaf(t, h, "b")
	combined, err := rehash(h, a, b, []byte("a"))
	require.NoError(t, err)
	assert.EqualValues(t, 1, combined.height())
	expected, err := h.concat(a.keyHash(), b.keyHash())
	require.NoError(t, err)
	assert.Equal(t, expected, combined.keyHash())
}
