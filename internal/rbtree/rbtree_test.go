package rbtree

import (
	"cmp"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntSet() *Tree[int] {
	return New(cmp.Compare[int])
}

// checkInvariants verifies the red-black properties and returns the black height.
func checkInvariants(t *testing.T, n *node[int], parent *node[int]) int {
	t.Helper()
	if n == nil {
		return 1
	}
	require.True(t, parent == n.parent, "parent link")
	if n.color == red {
		require.Equal(t, black, colorOf(n.left), "red node with red left child")
		require.Equal(t, black, colorOf(n.right), "red node with red right child")
	}
	lh := checkInvariants(t, n.left, n)
	rh := checkInvariants(t, n.right, n)
	require.Equal(t, lh, rh, "black height mismatch")
	if n.color == black {
		return lh + 1
	}
	return lh
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	tree := newIntSet()
	assert.Equal(t, 0, tree.Len())
	assert.True(t, tree.Max().NegativeLimit())
	assert.True(t, tree.Min().Limit())
	assert.True(t, tree.FindGE(10).Limit())
	assert.True(t, tree.FindLE(10).NegativeLimit())
	assert.True(t, tree.Find(10).Limit())
	assert.False(t, tree.Delete(10))
}

func TestFindGE(t *testing.T) {
	t.Parallel()

	tree := newIntSet()
	ok, _ := tree.Insert(10)
	require.True(t, ok)
	ok, _ = tree.Insert(10)
	require.False(t, ok)
	assert.Equal(t, 1, tree.Len())
	assert.Equal(t, 10, tree.FindGE(10).Item())
	assert.Equal(t, 10, tree.FindGE(9).Item())
	assert.True(t, tree.FindGE(11).Limit())
}

func TestFindLE(t *testing.T) {
	t.Parallel()

	tree := newIntSet()
	tree.Insert(10)
	tree.Insert(20)
	assert.Equal(t, 10, tree.FindLE(10).Item())
	assert.Equal(t, 10, tree.FindLE(19).Item())
	assert.Equal(t, 20, tree.FindLE(25).Item())
	assert.True(t, tree.FindLE(9).NegativeLimit())
	assert.Equal(t, 10, tree.FindLT(20).Item())
	assert.True(t, tree.FindLT(10).NegativeLimit())
}

func TestProbeSearch(t *testing.T) {
	t.Parallel()

	tree := newIntSet()
	for _, v := range []int{0, 48, 96, 192} {
		tree.Insert(v)
	}

	// Greatest item strictly below 96 without building a key.
	it := tree.FindLEFunc(func(item int) int {
		if item < 96 {
			return -1
		}
		return 1
	})
	require.True(t, it.Valid())
	assert.Equal(t, 48, it.Item())

	it = tree.FindGEFunc(func(item int) int { return cmp.Compare(item, 100) })
	require.True(t, it.Valid())
	assert.Equal(t, 192, it.Item())
}

func TestIterate(t *testing.T) {
	t.Parallel()

	tree := newIntSet()
	values := []int{5, 3, 9, 1, 7}
	for _, v := range values {
		tree.Insert(v)
	}

	var forward []int
	for it := tree.Min(); !it.Limit(); it = it.Next() {
		forward = append(forward, it.Item())
	}
	assert.Equal(t, []int{1, 3, 5, 7, 9}, forward)

	var backward []int
	for it := tree.Max(); !it.NegativeLimit(); it = it.Prev() {
		backward = append(backward, it.Item())
	}
	assert.Equal(t, []int{9, 7, 5, 3, 1}, backward)

	assert.Equal(t, 9, tree.Limit().Prev().Item())
	assert.Equal(t, 1, tree.NegativeLimit().Next().Item())
	assert.Equal(t, forward, tree.Items())
}

func TestIteratorSurvivesOtherDeletes(t *testing.T) {
	t.Parallel()

	tree := newIntSet()
	for i := range 32 {
		tree.Insert(i)
	}
	it := tree.Find(16)
	for i := range 32 {
		if i != 16 {
			require.True(t, tree.Delete(i))
		}
	}
	assert.Equal(t, 16, it.Item())
	assert.True(t, it.Next().Limit())
	assert.True(t, it.Prev().NegativeLimit())
}

func TestDeleteWithIterator(t *testing.T) {
	t.Parallel()

	tree := newIntSet()
	for _, v := range []int{1, 2, 3} {
		tree.Insert(v)
	}
	tree.DeleteWithIterator(tree.Find(2))
	assert.Equal(t, []int{1, 3}, tree.Items())
	checkInvariants(t, tree.root, nil)
}

func TestRandomized(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	tree := newIntSet()
	present := map[int]bool{}

	for range 5000 {
		v := rng.Intn(500)
		if rng.Intn(3) == 0 {
			assert.Equal(t, present[v], tree.Delete(v))
			delete(present, v)
		} else {
			ok, it := tree.Insert(v)
			assert.Equal(t, !present[v], ok)
			assert.Equal(t, v, it.Item())
			present[v] = true
		}
	}

	checkInvariants(t, tree.root, nil)
	require.Equal(t, len(present), tree.Len())

	expected := make([]int, 0, len(present))
	for v := range present {
		expected = append(expected, v)
	}
	slices.Sort(expected)
	assert.Equal(t, expected, tree.Items())
}

func BenchmarkInsertDelete(b *testing.B) {
	tree := newIntSet()
	for n := 0; n < b.N; n++ {
		tree.Insert(n)
		if n%2 == 0 {
			tree.Delete(n / 2)
		}
	}
}
