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

// Package avl provides an ordered map kept balanced as an AVL tree: the
// heights of the two subtrees of every node differ by at most one.
package avl

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ajwerner/bst/abstract"
)

// Node is the augmentation every AVL node carries: the height of its
// subtree, counting the node itself. A fresh leaf starts at 0 and is set to
// 1 by its first rebalance. Augmentations that summarize their subtree
// embed Node.
type Node struct {
	height int
}

func (n *Node) node() *Node { return n }

// Augmentation is implemented by pointers to per-node augmentations
// balanced by Balancer.
type Augmentation[E, A any] interface {
	*A
	node() *Node
	// Update recomputes the subtree summary of the node holding e from
	// the augmentations of its children, which are nil when absent. It
	// returns false if the augmentation carries no summary, in which case
	// rebalancing stops as soon as heights settle.
	Update(e *E, left, right *A) bool
}

type plain[K, V any] struct {
	Node
}

func (*plain[K, V]) Update(*abstract.Entry[K, V], *plain[K, V], *plain[K, V]) bool {
	return false
}

// Map is an ordered map backed by an AVL tree.
type Map[K, V any] struct {
	abstract.Map[K, V, plain[K, V]]
}

// New returns an empty Map ordered by cmp.
func New[K, V any](cmp func(K, K) int, opts ...abstract.Option) *Map[K, V] {
	return &Map[K, V]{
		Map: abstract.MakeMap[K, V, plain[K, V]](
			cmp, Balancer[abstract.Entry[K, V], plain[K, V], *plain[K, V]]{}, opts...,
		),
	}
}

// Balancer keeps a tree AVL balanced and maintains the augmentation AP on
// every node whose subtree changes.
type Balancer[E, A any, AP Augmentation[E, A]] struct{}

var _ abstract.Rebalancer[abstract.Entry[int, int], plain[int, int]] = Balancer[
	abstract.Entry[int, int], plain[int, int], *plain[int, int],
]{}

// RebalanceAccess implements abstract.Rebalancer. Lookups do not change
// the shape of an AVL tree.
func (Balancer[E, A, AP]) RebalanceAccess(*abstract.LowLevelTree[E, A], abstract.Position) {}

// RebalanceInsert implements abstract.Rebalancer.
func (Balancer[E, A, AP]) RebalanceInsert(t *abstract.LowLevelTree[E, A], p abstract.Position) {
	rebalance[E, A, AP](t, p)
}

// RebalanceDelete implements abstract.Rebalancer.
func (Balancer[E, A, AP]) RebalanceDelete(t *abstract.LowLevelTree[E, A], p abstract.Position) {
	rebalance[E, A, AP](t, p)
}

func height[E, A any, AP Augmentation[E, A]](
	t *abstract.LowLevelTree[E, A], p abstract.Position,
) int {
	if p.IsNil() {
		return 0
	}
	return AP(t.Aug(p)).node().height
}

func aug[E, A any](t *abstract.LowLevelTree[E, A], p abstract.Position) *A {
	if p.IsNil() {
		return nil
	}
	return t.Aug(p)
}

// recompute refreshes the height and summary of p from its children and
// reports whether the augmentation carries a summary.
func recompute[E, A any, AP Augmentation[E, A]](
	t *abstract.LowLevelTree[E, A], p abstract.Position,
) (summarized bool) {
	if p.IsNil() {
		return false
	}
	l, r := t.Left(p), t.Right(p)
	hl, hr := height[E, A, AP](t, l), height[E, A, AP](t, r)
	if hl < hr {
		hl = hr
	}
	a := AP(t.Aug(p))
	a.node().height = hl + 1
	return a.Update(t.Element(p), aug(t, l), aug(t, r))
}

func balanced[E, A any, AP Augmentation[E, A]](
	t *abstract.LowLevelTree[E, A], p abstract.Position,
) bool {
	d := height[E, A, AP](t, t.Left(p)) - height[E, A, AP](t, t.Right(p))
	return -1 <= d && d <= 1
}

// tallChild returns the child of p with the greater height. Ties go left
// if favorLeft is set and right otherwise.
func tallChild[E, A any, AP Augmentation[E, A]](
	t *abstract.LowLevelTree[E, A], p abstract.Position, favorLeft bool,
) abstract.Position {
	l, r := t.Left(p), t.Right(p)
	hl, hr := height[E, A, AP](t, l), height[E, A, AP](t, r)
	if favorLeft {
		hl++
	}
	if hl > hr {
		return l
	}
	return r
}

// tallGrandchild returns the taller child of p's taller child, preferring
// the grandchild on the same side as the child when the two tie.
func tallGrandchild[E, A any, AP Augmentation[E, A]](
	t *abstract.LowLevelTree[E, A], p abstract.Position,
) abstract.Position {
	child := tallChild[E, A, AP](t, p, false)
	return tallChild[E, A, AP](t, child, child == t.Left(p))
}

// rebalance walks up from p restoring the height invariant. It stops as
// soon as a node's height comes out unchanged, unless the augmentation
// summarizes subtrees, in which case every ancestor is refreshed.
func rebalance[E, A any, AP Augmentation[E, A]](
	t *abstract.LowLevelTree[E, A], p abstract.Position,
) {
	for !p.IsNil() {
		old := height[E, A, AP](t, p)
		if !balanced[E, A, AP](t, p) {
			p = t.Restructure(tallGrandchild[E, A, AP](t, p))
			recompute[E, A, AP](t, t.Left(p))
			recompute[E, A, AP](t, t.Right(p))
			if ce := t.Logger().Check(zap.DebugLevel, "avl: restructured"); ce != nil {
				ce.Write(zap.Any("root", *t.Element(p)))
			}
		}
		summarized := recompute[E, A, AP](t, p)
		if !summarized && height[E, A, AP](t, p) == old {
			return
		}
		p = t.Parent(p)
	}
}

// Verify implements abstract.Rebalancer. It checks every cached height
// against the children's and the balance bound at every node.
func (Balancer[E, A, AP]) Verify(t *abstract.LowLevelTree[E, A]) error {
	var err error
	t.Postorder(func(p abstract.Position) bool {
		hl, hr := height[E, A, AP](t, t.Left(p)), height[E, A, AP](t, t.Right(p))
		want := hl + 1
		if hr > hl {
			want = hr + 1
		}
		if got := AP(t.Aug(p)).node().height; got != want {
			err = errors.Wrapf(abstract.ErrInvariantViolated,
				"avl: node %v caches height %d, want %d", *t.Element(p), got, want)
			return false
		}
		if d := hl - hr; d < -1 || d > 1 {
			err = errors.Wrapf(abstract.ErrInvariantViolated,
				"avl: node %v unbalanced: left %d right %d", *t.Element(p), hl, hr)
			return false
		}
		return true
	})
	return err
}
