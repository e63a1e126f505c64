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

import "go.uber.org/zap"

// LowLevelTree is an unchecked view of a Tree for use by balancers and the
// map skeleton. Positions passed to it must be valid; a stale or foreign
// position is a programming error and panics.
type LowLevelTree[E, A any] Tree[E, A]

// LowLevel converts a tree to its LowLevelTree view.
func LowLevel[E, A any](t *Tree[E, A]) *LowLevelTree[E, A] {
	return (*LowLevelTree[E, A])(t)
}

func (l *LowLevelTree[E, A]) tree() *Tree[E, A] {
	return (*Tree[E, A])(l)
}

func (l *LowLevelTree[E, A]) slot(p Position) int32 {
	s, err := l.tree().lookup(p)
	if err != nil {
		panic(err)
	}
	return s
}

// Logger returns the logger configured for the owning map.
func (l *LowLevelTree[E, A]) Logger() *zap.Logger {
	return l.tree().logger()
}

// Len returns the number of nodes.
func (l *LowLevelTree[E, A]) Len() int { return l.nodes.Len() }

// Root returns the root position or the nil position.
func (l *LowLevelTree[E, A]) Root() Position { return l.tree().Root() }

// Parent returns the parent of p or the nil position.
func (l *LowLevelTree[E, A]) Parent(p Position) Position {
	t := l.tree()
	return t.pos(t.n(l.slot(p)).parent)
}

// Left returns the left child of p or the nil position.
func (l *LowLevelTree[E, A]) Left(p Position) Position {
	t := l.tree()
	return t.pos(t.n(l.slot(p)).left)
}

// Right returns the right child of p or the nil position.
func (l *LowLevelTree[E, A]) Right(p Position) Position {
	t := l.tree()
	return t.pos(t.n(l.slot(p)).right)
}

// Sibling returns the other child of p's parent or the nil position.
func (l *LowLevelTree[E, A]) Sibling(p Position) Position {
	t := l.tree()
	return t.pos(t.sibling(l.slot(p)))
}

// NumChildren returns the number of children of p.
func (l *LowLevelTree[E, A]) NumChildren(p Position) int {
	return l.tree().numChildren(l.slot(p))
}

// IsRoot returns true if p is the root.
func (l *LowLevelTree[E, A]) IsRoot(p Position) bool {
	return l.slot(p) == l.root
}

// IsLeaf returns true if p has no children.
func (l *LowLevelTree[E, A]) IsLeaf(p Position) bool {
	return l.NumChildren(p) == 0
}

// Element returns a pointer to the element at p. The pointer must not be
// retained across insertions.
func (l *LowLevelTree[E, A]) Element(p Position) *E {
	return &l.tree().n(l.slot(p)).elem
}

// Aug returns a pointer to the augmentation at p. A new node starts with
// the zero value of A. The pointer must not be retained across insertions.
func (l *LowLevelTree[E, A]) Aug(p Position) *A {
	return &l.tree().n(l.slot(p)).aug
}

// AddRoot places e at the root of an empty tree.
func (l *LowLevelTree[E, A]) AddRoot(e E) Position {
	t := l.tree()
	t.init()
	if t.root != none {
		panic("abstract: root exists")
	}
	return t.pos(t.addRoot(e))
}

// AddLeft creates the left child of p, which must not have one.
func (l *LowLevelTree[E, A]) AddLeft(p Position, e E) Position {
	t, s := l.tree(), l.slot(p)
	if t.n(s).left != none {
		panic("abstract: left child exists")
	}
	return t.pos(t.addChild(s, e, true))
}

// AddRight creates the right child of p, which must not have one.
func (l *LowLevelTree[E, A]) AddRight(p Position, e E) Position {
	t, s := l.tree(), l.slot(p)
	if t.n(s).right != none {
		panic("abstract: right child exists")
	}
	return t.pos(t.addChild(s, e, false))
}

// Delete removes p, which must have at most one child.
func (l *LowLevelTree[E, A]) Delete(p Position) E {
	t, s := l.tree(), l.slot(p)
	if t.numChildren(s) == 2 {
		panic("abstract: delete of a node with two children")
	}
	return t.delete(s)
}

// Rotate lifts p above its parent. p must not be the root.
func (l *LowLevelTree[E, A]) Rotate(p Position) {
	l.tree().rotate(l.slot(p))
}

// Restructure performs a trinode restructuring of x, which must have a
// grandparent, and returns the new local root.
func (l *LowLevelTree[E, A]) Restructure(x Position) Position {
	t := l.tree()
	return t.pos(t.restructure(l.slot(x)))
}

// SubtreeFirst returns the leftmost position below p.
func (l *LowLevelTree[E, A]) SubtreeFirst(p Position) Position {
	t := l.tree()
	return t.pos(t.subtreeFirst(l.slot(p)))
}

// SubtreeLast returns the rightmost position below p.
func (l *LowLevelTree[E, A]) SubtreeLast(p Position) Position {
	t := l.tree()
	return t.pos(t.subtreeLast(l.slot(p)))
}

// Before returns the in-order predecessor of p or the nil position.
func (l *LowLevelTree[E, A]) Before(p Position) Position {
	t := l.tree()
	return t.pos(t.before(l.slot(p)))
}

// After returns the in-order successor of p or the nil position.
func (l *LowLevelTree[E, A]) After(p Position) Position {
	t := l.tree()
	return t.pos(t.after(l.slot(p)))
}

// Postorder visits every position children-first.
func (l *LowLevelTree[E, A]) Postorder(f func(Position) bool) {
	l.tree().Postorder(f)
}
