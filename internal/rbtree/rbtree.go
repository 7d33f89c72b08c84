// Package rbtree is a generic red-black tree with an API similar to C++ STL's
// std::set: ordered insertion, deletion, bound searches and bidirectional
// iterators that stay valid across modifications of other elements.
package rbtree

// Tree is a red-black tree of items ordered by a comparison function.
//
// Items comparing equal are rejected by Insert, so callers that need
// duplicates must break ties themselves (for example with a sequence number).
type Tree[T any] struct {
	root  *node[T]
	count int
	cmp   func(a, b T) int
}

// New creates an empty tree ordered by cmp. cmp must return a negative
// number when a sorts before b, zero when equal and a positive number
// otherwise.
func New[T any](cmp func(a, b T) int) *Tree[T] {
	return &Tree[T]{cmp: cmp}
}

// Len returns the number of elements in the tree.
func (tree *Tree[T]) Len() int {
	return tree.count
}

// Clear removes all the nodes from the tree.
func (tree *Tree[T]) Clear() {
	tree.root = nil
	tree.count = 0
}

// Min creates an iterator that points to the minimum item in the tree.
// If the tree is empty, returns Limit().
func (tree *Tree[T]) Min() Iterator[T] {
	if tree.root == nil {
		return tree.Limit()
	}
	return Iterator[T]{tree: tree, node: minimum(tree.root)}
}

// Max creates an iterator that points at the maximum item in the tree.
// If the tree is empty, returns NegativeLimit().
func (tree *Tree[T]) Max() Iterator[T] {
	if tree.root == nil {
		return tree.NegativeLimit()
	}
	return Iterator[T]{tree: tree, node: maximum(tree.root)}
}

// Limit creates an iterator that points beyond the maximum item in the tree.
func (tree *Tree[T]) Limit() Iterator[T] {
	return Iterator[T]{tree: tree}
}

// NegativeLimit creates an iterator that points before the minimum item in the tree.
func (tree *Tree[T]) NegativeLimit() Iterator[T] {
	return Iterator[T]{tree: tree, negative: true}
}

// Find returns an iterator to the item equal to key, or Limit() when absent.
func (tree *Tree[T]) Find(key T) Iterator[T] {
	n := tree.root
	for n != nil {
		c := tree.cmp(key, n.item)
		switch {
		case c == 0:
			return Iterator[T]{tree: tree, node: n}
		case c < 0:
			n = n.left
		default:
			n = n.right
		}
	}
	return tree.Limit()
}

// FindGE finds the smallest element N such that N >= key, and returns the
// iterator pointing to the element. If no such element is found,
// returns tree.Limit().
func (tree *Tree[T]) FindGE(key T) Iterator[T] {
	return tree.FindGEFunc(func(item T) int { return tree.cmp(item, key) })
}

// FindLE finds the largest element N such that N <= key, and returns the
// iterator pointing to the element. If no such element is found,
// returns tree.NegativeLimit().
func (tree *Tree[T]) FindLE(key T) Iterator[T] {
	return tree.FindLEFunc(func(item T) int { return tree.cmp(item, key) })
}

// FindLT finds the largest element N such that N < key.
// If no such element is found, returns tree.NegativeLimit().
func (tree *Tree[T]) FindLT(key T) Iterator[T] {
	return tree.FindLEFunc(func(item T) int {
		if tree.cmp(item, key) < 0 {
			return -1
		}
		return 1
	})
}

// FindGEFunc returns the first item for which probe is >= 0.
//
// probe compares an item against an implicit key and must be monotonic over
// the tree order, which lets callers search by a synthetic key (a row, a
// time) without building an item. Returns Limit() when no item qualifies.
func (tree *Tree[T]) FindGEFunc(probe func(item T) int) Iterator[T] {
	var best *node[T]
	n := tree.root
	for n != nil {
		if probe(n.item) >= 0 {
			best = n
			n = n.left
		} else {
			n = n.right
		}
	}
	if best == nil {
		return tree.Limit()
	}
	return Iterator[T]{tree: tree, node: best}
}

// FindLEFunc returns the last item for which probe is <= 0.
// Returns NegativeLimit() when no item qualifies.
func (tree *Tree[T]) FindLEFunc(probe func(item T) int) Iterator[T] {
	var best *node[T]
	n := tree.root
	for n != nil {
		if probe(n.item) <= 0 {
			best = n
			n = n.right
		} else {
			n = n.left
		}
	}
	if best == nil {
		return tree.NegativeLimit()
	}
	return Iterator[T]{tree: tree, node: best}
}

// Insert an item. If an equal item is already in the tree, do nothing and
// return false and an iterator to the existing item. Else return true.
func (tree *Tree[T]) Insert(item T) (bool, Iterator[T]) {
	var parent *node[T]
	n := tree.root
	c := 0
	for n != nil {
		parent = n
		c = tree.cmp(item, n.item)
		switch {
		case c == 0:
			return false, Iterator[T]{tree: tree, node: n}
		case c < 0:
			n = n.left
		default:
			n = n.right
		}
	}

	z := &node[T]{item: item, parent: parent, color: red}
	switch {
	case parent == nil:
		tree.root = z
	case c < 0:
		parent.left = z
	default:
		parent.right = z
	}
	tree.count++
	tree.insertFixup(z)
	return true, Iterator[T]{tree: tree, node: z}
}

// Delete removes the item equal to key. Returns true iff the item was found.
func (tree *Tree[T]) Delete(key T) bool {
	iter := tree.Find(key)
	if iter.Limit() {
		return false
	}
	tree.doDelete(iter.node)
	return true
}

// DeleteWithIterator deletes the current item.
//
// REQUIRES: !iter.Limit() && !iter.NegativeLimit().
func (tree *Tree[T]) DeleteWithIterator(iter Iterator[T]) {
	doAssert(!iter.Limit() && !iter.NegativeLimit())
	tree.doDelete(iter.node)
}

// Items returns every item in order.
func (tree *Tree[T]) Items() []T {
	items := make([]T, 0, tree.count)
	for it := tree.Min(); !it.Limit(); it = it.Next() {
		items = append(items, it.Item())
	}
	return items
}

// Iterator allows scanning tree elements in sort order.
//
// Iterator invalidation rule is the same as C++ std::map<>'s. That
// is, if you delete the element that an iterator points to, the
// iterator becomes invalid. For other operation types, the iterator
// remains valid.
type Iterator[T any] struct {
	tree     *Tree[T]
	node     *node[T]
	negative bool
}

// Equal checks for the underlying nodes equality.
func (iter Iterator[T]) Equal(other Iterator[T]) bool {
	return iter.node == other.node && iter.negative == other.negative
}

// Limit checks if the iterator points beyond the max element in the tree.
func (iter Iterator[T]) Limit() bool {
	return iter.node == nil && !iter.negative
}

// NegativeLimit checks if the iterator points before the minimum element in the tree.
func (iter Iterator[T]) NegativeLimit() bool {
	return iter.node == nil && iter.negative
}

// Valid reports whether the iterator points at an item.
func (iter Iterator[T]) Valid() bool {
	return iter.node != nil
}

// Item returns the current element.
//
// The zero value of T is returned if iter.Limit() || iter.NegativeLimit().
func (iter Iterator[T]) Item() T {
	if iter.node == nil {
		var zero T
		return zero
	}
	return iter.node.item
}

// Next creates a new iterator that points to the successor of the current element.
//
// REQUIRES: !iter.Limit().
func (iter Iterator[T]) Next() Iterator[T] {
	doAssert(!iter.Limit())

	if iter.NegativeLimit() {
		return iter.tree.Min()
	}
	return Iterator[T]{tree: iter.tree, node: successor(iter.node)}
}

// Prev creates a new iterator that points to the predecessor of the current
// node.
//
// REQUIRES: !iter.NegativeLimit().
func (iter Iterator[T]) Prev() Iterator[T] {
	doAssert(!iter.NegativeLimit())

	if iter.Limit() {
		return iter.tree.Max()
	}
	p := predecessor(iter.node)
	if p == nil {
		return iter.tree.NegativeLimit()
	}
	return Iterator[T]{tree: iter.tree, node: p}
}

func doAssert(condition bool) {
	if !condition {
		panic("rbtree internal assertion failed")
	}
}

type color bool

const (
	red   color = false
	black color = true
)

type node[T any] struct {
	item                T
	parent, left, right *node[T]
	color               color
}

func colorOf[T any](n *node[T]) color {
	if n == nil {
		return black
	}
	return n.color
}

func minimum[T any](n *node[T]) *node[T] {
	for n.left != nil {
		n = n.left
	}
	return n
}

func maximum[T any](n *node[T]) *node[T] {
	for n.right != nil {
		n = n.right
	}
	return n
}

// Return the minimum node that's larger than n, or nil.
func successor[T any](n *node[T]) *node[T] {
	if n.right != nil {
		return minimum(n.right)
	}
	p := n.parent
	for p != nil && n == p.right {
		n = p
		p = p.parent
	}
	return p
}

// Return the maximum node that's smaller than n, or nil.
func predecessor[T any](n *node[T]) *node[T] {
	if n.left != nil {
		return maximum(n.left)
	}
	p := n.parent
	for p != nil && n == p.left {
		n = p
		p = p.parent
	}
	return p
}

func (tree *Tree[T]) rotateLeft(x *node[T]) {
	y := x.right
	x.right = y.left
	if y.left != nil {
		y.left.parent = x
	}
	y.parent = x.parent
	switch {
	case x.parent == nil:
		tree.root = y
	case x == x.parent.left:
		x.parent.left = y
	default:
		x.parent.right = y
	}
	y.left = x
	x.parent = y
}

func (tree *Tree[T]) rotateRight(x *node[T]) {
	y := x.left
	x.left = y.right
	if y.right != nil {
		y.right.parent = x
	}
	y.parent = x.parent
	switch {
	case x.parent == nil:
		tree.root = y
	case x == x.parent.right:
		x.parent.right = y
	default:
		x.parent.left = y
	}
	y.right = x
	x.parent = y
}

func (tree *Tree[T]) insertFixup(z *node[T]) {
	for z.parent != nil && z.parent.color == red {
		gp := z.parent.parent
		if z.parent == gp.left {
			uncle := gp.right
			if colorOf(uncle) == red {
				z.parent.color = black
				uncle.color = black
				gp.color = red
				z = gp
				continue
			}
			if z == z.parent.right {
				z = z.parent
				tree.rotateLeft(z)
			}
			z.parent.color = black
			z.parent.parent.color = red
			tree.rotateRight(z.parent.parent)
		} else {
			uncle := gp.left
			if colorOf(uncle) == red {
				z.parent.color = black
				uncle.color = black
				gp.color = red
				z = gp
				continue
			}
			if z == z.parent.left {
				z = z.parent
				tree.rotateRight(z)
			}
			z.parent.color = black
			z.parent.parent.color = red
			tree.rotateLeft(z.parent.parent)
		}
	}
	tree.root.color = black
}

// transplant replaces the subtree rooted at u with the one rooted at v.
func (tree *Tree[T]) transplant(u, v *node[T]) {
	switch {
	case u.parent == nil:
		tree.root = v
	case u == u.parent.left:
		u.parent.left = v
	default:
		u.parent.right = v
	}
	if v != nil {
		v.parent = u.parent
	}
}

// doDelete unlinks z without moving items between nodes, so iterators to
// other elements stay valid.
func (tree *Tree[T]) doDelete(z *node[T]) {
	y := z
	removed := y.color
	var x, xParent *node[T]

	switch {
	case z.left == nil:
		x = z.right
		xParent = z.parent
		tree.transplant(z, z.right)
	case z.right == nil:
		x = z.left
		xParent = z.parent
		tree.transplant(z, z.left)
	default:
		y = minimum(z.right)
		removed = y.color
		x = y.right
		if y.parent == z {
			xParent = y
		} else {
			xParent = y.parent
			tree.transplant(y, y.right)
			y.right = z.right
			y.right.parent = y
		}
		tree.transplant(z, y)
		y.left = z.left
		y.left.parent = y
		y.color = z.color
	}

	z.parent, z.left, z.right = nil, nil, nil
	tree.count--

	if removed == black {
		tree.deleteFixup(x, xParent)
	}
}

func (tree *Tree[T]) deleteFixup(x, parent *node[T]) {
	for x != tree.root && colorOf(x) == black {
		if x == parent.left {
			w := parent.right
			if colorOf(w) == red {
				w.color = black
				parent.color = red
				tree.rotateLeft(parent)
				w = parent.right
			}
			if colorOf(w.left) == black && colorOf(w.right) == black {
				w.color = red
				x = parent
				parent = x.parent
				continue
			}
			if colorOf(w.right) == black {
				w.left.color = black
				w.color = red
				tree.rotateRight(w)
				w = parent.right
			}
			w.color = parent.color
			parent.color = black
			if w.right != nil {
				w.right.color = black
			}
			tree.rotateLeft(parent)
			x = tree.root
			parent = nil
		} else {
			w := parent.left
			if colorOf(w) == red {
				w.color = black
				parent.color = red
				tree.rotateRight(parent)
				w = parent.left
			}
			if colorOf(w.left) == black && colorOf(w.right) == black {
				w.color = red
				x = parent
				parent = x.parent
				continue
			}
			if colorOf(w.left) == black {
				w.right.color = black
				w.color = red
				tree.rotateLeft(w)
				w = parent.left
			}
			w.color = parent.color
			parent.color = black
			if w.left != nil {
				w.left.color = black
			}
			tree.rotateRight(parent)
			x = tree.root
			parent = nil
		}
	}
	if x != nil {
		x.color = black
	}
}
