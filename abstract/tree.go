// Copyright 2021 Andrew Werner.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package abstract

import (
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ajwerner/bst/internal/slab"
)

// none marks an absent link.
const none int32 = -1

var treeIDs uint64

// Position identifies a node of a specific Tree. It stays valid until the
// node is deleted or moved to another tree; rotations do not invalidate
// it. The zero Position is the nil position, used for absent nodes.
type Position struct {
	owner uint64
	slot  int32
	gen   uint32
}

// IsNil returns true for the nil position.
func (p Position) IsNil() bool { return p.owner == 0 }

type node[E, A any] struct {
	elem                E
	aug                 A
	parent, left, right int32
}

// Tree is a linked binary tree whose nodes carry an element E and an
// augmentation A maintained by whoever balances the tree. Nodes live in
// an arena and are linked by index, so the parent back-reference never
// owns anything.
//
// The zero value is an empty tree ready to use. A Tree is not safe for
// concurrent use.
type Tree[E, A any] struct {
	id    uint64
	root  int32
	nodes slab.Slab[node[E, A]]
	log   *zap.Logger
}

// NewTree returns an empty tree.
func NewTree[E, A any]() *Tree[E, A] {
	t := &Tree[E, A]{}
	t.init()
	return t
}

func (t *Tree[E, A]) init() {
	if t.id == 0 {
		t.id = atomic.AddUint64(&treeIDs, 1)
		t.root = none
	}
}

func (t *Tree[E, A]) logger() *zap.Logger {
	if t.log == nil {
		return nopLogger
	}
	return t.log
}

func (t *Tree[E, A]) n(slot int32) *node[E, A] {
	return t.nodes.Get(slot)
}

func (t *Tree[E, A]) pos(slot int32) Position {
	if slot == none {
		return Position{}
	}
	return Position{owner: t.id, slot: slot, gen: t.nodes.Gen(slot)}
}

// lookup resolves p to its slot, rejecting positions that are nil, that
// were produced by another tree or whose node has since been deleted.
func (t *Tree[E, A]) lookup(p Position) (int32, error) {
	switch {
	case p.IsNil():
		return none, errors.Wrap(ErrInvalidPosition, "nil position")
	case p.owner != t.id:
		return none, errors.Wrap(ErrInvalidPosition, "position belongs to another tree")
	case !t.nodes.Live(p.slot, p.gen):
		return none, errors.Wrap(ErrInvalidPosition, "position refers to a deleted node")
	}
	return p.slot, nil
}

// Len returns the number of nodes in the tree.
func (t *Tree[E, A]) Len() int { return t.nodes.Len() }

// IsEmpty returns true if the tree has no nodes.
func (t *Tree[E, A]) IsEmpty() bool { return t.nodes.Len() == 0 }

// Reset removes every node. All positions handed out so far become
// invalid.
func (t *Tree[E, A]) Reset() {
	t.id = atomic.AddUint64(&treeIDs, 1)
	t.root = none
	t.nodes.Reset()
}

// Root returns the root position, or the nil position if the tree is
// empty.
func (t *Tree[E, A]) Root() Position {
	t.init()
	return t.pos(t.root)
}

// Parent returns the parent of p, or the nil position if p is the root.
func (t *Tree[E, A]) Parent(p Position) (Position, error) {
	s, err := t.lookup(p)
	if err != nil {
		return Position{}, err
	}
	return t.pos(t.n(s).parent), nil
}

// Left returns the left child of p, or the nil position.
func (t *Tree[E, A]) Left(p Position) (Position, error) {
	s, err := t.lookup(p)
	if err != nil {
		return Position{}, err
	}
	return t.pos(t.n(s).left), nil
}

// Right returns the right child of p, or the nil position.
func (t *Tree[E, A]) Right(p Position) (Position, error) {
	s, err := t.lookup(p)
	if err != nil {
		return Position{}, err
	}
	return t.pos(t.n(s).right), nil
}

// Sibling returns the other child of p's parent, or the nil position.
func (t *Tree[E, A]) Sibling(p Position) (Position, error) {
	s, err := t.lookup(p)
	if err != nil {
		return Position{}, err
	}
	return t.pos(t.sibling(s)), nil
}

// Children returns the existing children of p, left first.
func (t *Tree[E, A]) Children(p Position) ([]Position, error) {
	s, err := t.lookup(p)
	if err != nil {
		return nil, err
	}
	n := t.n(s)
	var children []Position
	if n.left != none {
		children = append(children, t.pos(n.left))
	}
	if n.right != none {
		children = append(children, t.pos(n.right))
	}
	return children, nil
}

// NumChildren returns the number of children of p.
func (t *Tree[E, A]) NumChildren(p Position) (int, error) {
	s, err := t.lookup(p)
	if err != nil {
		return 0, err
	}
	return t.numChildren(s), nil
}

// IsRoot returns true if p is the root.
func (t *Tree[E, A]) IsRoot(p Position) (bool, error) {
	s, err := t.lookup(p)
	if err != nil {
		return false, err
	}
	return s == t.root, nil
}

// IsLeaf returns true if p has no children.
func (t *Tree[E, A]) IsLeaf(p Position) (bool, error) {
	s, err := t.lookup(p)
	if err != nil {
		return false, err
	}
	return t.numChildren(s) == 0, nil
}

// Depth returns the number of edges between p and the root.
func (t *Tree[E, A]) Depth(p Position) (int, error) {
	s, err := t.lookup(p)
	if err != nil {
		return 0, err
	}
	d := 0
	for s = t.n(s).parent; s != none; s = t.n(s).parent {
		d++
	}
	return d, nil
}

// Height returns the number of edges on the longest downward path from p
// to a leaf; a leaf has height 0.
func (t *Tree[E, A]) Height(p Position) (int, error) {
	s, err := t.lookup(p)
	if err != nil {
		return 0, err
	}
	return t.subtreeHeight(s), nil
}

// Element returns the element stored at p.
func (t *Tree[E, A]) Element(p Position) (e E, err error) {
	s, err := t.lookup(p)
	if err != nil {
		return e, err
	}
	return t.n(s).elem, nil
}

// AddRoot places e at the root of an empty tree.
func (t *Tree[E, A]) AddRoot(e E) (Position, error) {
	t.init()
	if t.root != none {
		return Position{}, errors.Wrap(ErrStructuralViolation, "root exists")
	}
	return t.pos(t.addRoot(e)), nil
}

// AddLeft creates a new left child of p holding e.
func (t *Tree[E, A]) AddLeft(p Position, e E) (Position, error) {
	s, err := t.lookup(p)
	if err != nil {
		return Position{}, err
	}
	if t.n(s).left != none {
		return Position{}, errors.Wrap(ErrStructuralViolation, "left child exists")
	}
	return t.pos(t.addChild(s, e, true)), nil
}

// AddRight creates a new right child of p holding e.
func (t *Tree[E, A]) AddRight(p Position, e E) (Position, error) {
	s, err := t.lookup(p)
	if err != nil {
		return Position{}, err
	}
	if t.n(s).right != none {
		return Position{}, errors.Wrap(ErrStructuralViolation, "right child exists")
	}
	return t.pos(t.addChild(s, e, false)), nil
}

// Replace stores e at p and returns the element previously there.
func (t *Tree[E, A]) Replace(p Position, e E) (old E, err error) {
	s, err := t.lookup(p)
	if err != nil {
		return old, err
	}
	n := t.n(s)
	old, n.elem = n.elem, e
	return old, nil
}

// Delete removes the node at p, promoting its only child if it has one,
// and returns its element. p and every copy of it become invalid.
func (t *Tree[E, A]) Delete(p Position) (e E, err error) {
	s, err := t.lookup(p)
	if err != nil {
		return e, err
	}
	if t.numChildren(s) == 2 {
		return e, errors.Wrap(ErrStructuralViolation, "position has two children")
	}
	return t.delete(s), nil
}

// Attach moves the contents of left and right into this tree as the left
// and right subtrees of the leaf p. Both source trees are left empty and
// their positions become invalid. Either may be nil. The attached nodes are
// copied into this tree's arena, so Attach is linear in their number.
func (t *Tree[E, A]) Attach(p Position, left, right *Tree[E, A]) error {
	s, err := t.lookup(p)
	if err != nil {
		return err
	}
	if t.numChildren(s) != 0 {
		return errors.Wrap(ErrStructuralViolation, "position must be a leaf")
	}
	if left == t || right == t {
		return errors.Wrap(ErrStructuralViolation, "cannot attach a tree to itself")
	}
	if left != nil && left == right && !left.IsEmpty() {
		return errors.Wrap(ErrStructuralViolation, "cannot attach the same tree twice")
	}
	// graft allocates; resolve the node pointer only once it returns.
	if left != nil && !left.IsEmpty() {
		l := t.graft(left, s)
		t.n(s).left = l
		left.Reset()
	}
	if right != nil && !right.IsEmpty() {
		r := t.graft(right, s)
		t.n(s).right = r
		right.Reset()
	}
	return nil
}

// Rotate lifts p above its parent.
func (t *Tree[E, A]) Rotate(p Position) error {
	s, err := t.lookup(p)
	if err != nil {
		return err
	}
	if t.n(s).parent == none {
		return errors.Wrap(ErrStructuralViolation, "cannot rotate the root")
	}
	t.rotate(s)
	return nil
}

// Restructure performs a trinode restructuring of x with its parent and
// grandparent and returns the new root of the three.
func (t *Tree[E, A]) Restructure(x Position) (Position, error) {
	s, err := t.lookup(x)
	if err != nil {
		return Position{}, err
	}
	if y := t.n(s).parent; y == none || t.n(y).parent == none {
		return Position{}, errors.Wrap(ErrStructuralViolation, "restructure requires a grandparent")
	}
	return t.pos(t.restructure(s)), nil
}

func (t *Tree[E, A]) numChildren(s int32) int {
	n, c := t.n(s), 0
	if n.left != none {
		c++
	}
	if n.right != none {
		c++
	}
	return c
}

func (t *Tree[E, A]) sibling(s int32) int32 {
	parent := t.n(s).parent
	if parent == none {
		return none
	}
	if pn := t.n(parent); pn.left == s {
		return pn.right
	} else {
		return pn.left
	}
}

func (t *Tree[E, A]) addRoot(e E) int32 {
	s, _ := t.nodes.Alloc(node[E, A]{elem: e, parent: none, left: none, right: none})
	t.root = s
	return s
}

func (t *Tree[E, A]) addChild(parent int32, e E, left bool) int32 {
	// Alloc may move the arena; take node pointers afterwards.
	s, _ := t.nodes.Alloc(node[E, A]{elem: e, parent: parent, left: none, right: none})
	if left {
		t.n(parent).left = s
	} else {
		t.n(parent).right = s
	}
	return s
}

func (t *Tree[E, A]) delete(s int32) E {
	n := t.n(s)
	child := n.left
	if child == none {
		child = n.right
	}
	if child != none {
		t.n(child).parent = n.parent
	}
	if s == t.root {
		t.root = child
	} else if pn := t.n(n.parent); pn.left == s {
		pn.left = child
	} else {
		pn.right = child
	}
	return t.nodes.Free(s).elem
}

// graft copies the nodes of src into t below parent and returns the slot
// of the copied root.
func (t *Tree[E, A]) graft(src *Tree[E, A], parent int32) int32 {
	type frame struct {
		from, parent int32
		left         bool
	}
	var top int32 = none
	stack := []frame{{from: src.root, parent: parent}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		sn := src.n(f.from)
		s, _ := t.nodes.Alloc(node[E, A]{
			elem: sn.elem, aug: sn.aug, parent: f.parent, left: none, right: none,
		})
		switch {
		case top == none:
			top = s
		case f.left:
			t.n(f.parent).left = s
		default:
			t.n(f.parent).right = s
		}
		if sn.right != none {
			stack = append(stack, frame{from: sn.right, parent: s})
		}
		if sn.left != none {
			stack = append(stack, frame{from: sn.left, parent: s, left: true})
		}
	}
	return top
}

func (t *Tree[E, A]) subtreeHeight(s int32) int {
	type frame struct {
		slot  int32
		depth int
	}
	h := 0
	stack := []frame{{slot: s}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.depth > h {
			h = f.depth
		}
		n := t.n(f.slot)
		if n.left != none {
			stack = append(stack, frame{n.left, f.depth + 1})
		}
		if n.right != none {
			stack = append(stack, frame{n.right, f.depth + 1})
		}
	}
	return h
}

func (t *Tree[E, A]) subtreeFirst(s int32) int32 {
	for l := t.n(s).left; l != none; l = t.n(s).left {
		s = l
	}
	return s
}

func (t *Tree[E, A]) subtreeLast(s int32) int32 {
	for r := t.n(s).right; r != none; r = t.n(s).right {
		s = r
	}
	return s
}

// after returns the in-order successor of s, or none.
func (t *Tree[E, A]) after(s int32) int32 {
	if r := t.n(s).right; r != none {
		return t.subtreeFirst(r)
	}
	above := t.n(s).parent
	for above != none && t.n(above).right == s {
		s, above = above, t.n(above).parent
	}
	return above
}

// before returns the in-order predecessor of s, or none.
func (t *Tree[E, A]) before(s int32) int32 {
	if l := t.n(s).left; l != none {
		return t.subtreeLast(l)
	}
	above := t.n(s).parent
	for above != none && t.n(above).left == s {
		s, above = above, t.n(above).parent
	}
	return above
}
