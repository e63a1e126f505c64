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

// Package redblack provides an ordered map backed by a red-black tree.
//
// The tree maintains three properties: the root is black, a red node has
// no red child, and every path from a node down to an absent child passes
// through the same number of black nodes.
package redblack

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ajwerner/bst/abstract"
)

// node is the color of a node. The zero value is red, which is the color
// of every newly inserted leaf.
type node struct {
	black bool
}

// Map is an ordered map backed by a red-black tree.
type Map[K, V any] struct {
	abstract.Map[K, V, node]
}

// New returns an empty Map ordered by cmp.
func New[K, V any](cmp func(K, K) int, opts ...abstract.Option) *Map[K, V] {
	return &Map[K, V]{
		Map: abstract.MakeMap[K, V, node](cmp, balancer[abstract.Entry[K, V]]{}, opts...),
	}
}

type balancer[E any] struct{}

var _ abstract.Rebalancer[int, node] = balancer[int]{}

func isRed[E any](t *abstract.LowLevelTree[E, node], p abstract.Position) bool {
	return !p.IsNil() && !t.Aug(p).black
}

func isRedLeaf[E any](t *abstract.LowLevelTree[E, node], p abstract.Position) bool {
	return isRed(t, p) && t.IsLeaf(p)
}

func setColor[E any](t *abstract.LowLevelTree[E, node], p abstract.Position, red bool) {
	if !p.IsNil() {
		t.Aug(p).black = !red
	}
}

func setBlack[E any](t *abstract.LowLevelTree[E, node], p abstract.Position) {
	setColor(t, p, false)
}

func setRed[E any](t *abstract.LowLevelTree[E, node], p abstract.Position) {
	setColor(t, p, true)
}

// redChild returns a red child of p, checking the left child first, or
// the nil position if neither child is red.
func redChild[E any](t *abstract.LowLevelTree[E, node], p abstract.Position) abstract.Position {
	if l := t.Left(p); isRed(t, l) {
		return l
	}
	if r := t.Right(p); isRed(t, r) {
		return r
	}
	return abstract.Position{}
}

// RebalanceAccess implements abstract.Rebalancer.
func (balancer[E]) RebalanceAccess(*abstract.LowLevelTree[E, node], abstract.Position) {}

// RebalanceInsert implements abstract.Rebalancer. The new leaf is red.
func (balancer[E]) RebalanceInsert(t *abstract.LowLevelTree[E, node], p abstract.Position) {
	resolveRed(t, p)
}

// resolveRed repairs a red node p whose parent may also be red.
func resolveRed[E any](t *abstract.LowLevelTree[E, node], p abstract.Position) {
	for {
		if t.IsRoot(p) {
			setBlack(t, p)
			return
		}
		parent := t.Parent(p)
		if !isRed(t, parent) {
			return
		}
		if uncle := t.Sibling(parent); !isRed(t, uncle) {
			// Black uncle: a trinode restructure fixes the double red.
			middle := t.Restructure(p)
			setBlack(t, middle)
			setRed(t, t.Left(middle))
			setRed(t, t.Right(middle))
			if ce := t.Logger().Check(zap.DebugLevel, "redblack: restructured double red"); ce != nil {
				ce.Write(zap.Any("root", *t.Element(middle)))
			}
			return
		}
		// Red uncle: recolor and push the problem up to the grandparent.
		grand := t.Parent(parent)
		setRed(t, grand)
		setBlack(t, t.Left(grand))
		setBlack(t, t.Right(grand))
		if ce := t.Logger().Check(zap.DebugLevel, "redblack: recolored"); ce != nil {
			ce.Write(zap.Any("at", *t.Element(grand)))
		}
		p = grand
	}
}

// RebalanceDelete implements abstract.Rebalancer. p is the parent of the
// removed node, or nil if the removed node was the root.
func (balancer[E]) RebalanceDelete(t *abstract.LowLevelTree[E, node], p abstract.Position) {
	if t.Len() == 1 {
		setBlack(t, t.Root())
		return
	}
	if p.IsNil() {
		return
	}
	switch t.NumChildren(p) {
	case 1:
		// The removed node was black; unless the remaining child is a red
		// leaf that absorbs the lost black, p's empty side is short.
		c := t.Left(p)
		if c.IsNil() {
			c = t.Right(p)
		}
		if !isRedLeaf(t, c) {
			fixDeficit(t, p, c)
		}
	case 2:
		// The removed node's red child was promoted into p's child slot.
		if isRedLeaf(t, t.Left(p)) {
			setBlack(t, t.Left(p))
		} else {
			setBlack(t, t.Right(p))
		}
	}
}

// fixDeficit restores the black height when the subtree of z opposite to
// its child y is one black node short.
func fixDeficit[E any](t *abstract.LowLevelTree[E, node], z, y abstract.Position) {
	for {
		if !isRed(t, y) {
			if x := redChild(t, y); !x.IsNil() {
				// Black sibling with a red child: restructure.
				oldRed := isRed(t, z)
				middle := t.Restructure(x)
				setColor(t, middle, oldRed)
				setBlack(t, t.Left(middle))
				setBlack(t, t.Right(middle))
				if ce := t.Logger().Check(zap.DebugLevel, "redblack: deficit restructured"); ce != nil {
					ce.Write(zap.Any("root", *t.Element(middle)))
				}
				return
			}
			// Black sibling with black children: recolor.
			setRed(t, y)
			if isRed(t, z) {
				setBlack(t, z)
				return
			}
			if t.IsRoot(z) {
				return
			}
			z, y = t.Parent(z), t.Sibling(z)
			continue
		}
		// Red sibling: rotate it above z and retry with the new sibling.
		t.Rotate(y)
		setBlack(t, y)
		setRed(t, z)
		if z == t.Right(y) {
			y = t.Left(z)
		} else {
			y = t.Right(z)
		}
	}
}

// Verify implements abstract.Rebalancer.
func (balancer[E]) Verify(t *abstract.LowLevelTree[E, node]) error {
	root := t.Root()
	if root.IsNil() {
		return nil
	}
	if isRed(t, root) {
		return errors.Wrapf(abstract.ErrInvariantViolated,
			"redblack: root %v is red", *t.Element(root))
	}
	heights := make(map[abstract.Position]int, t.Len())
	bh := func(p abstract.Position) int {
		if p.IsNil() {
			return 0
		}
		return heights[p]
	}
	var err error
	t.Postorder(func(p abstract.Position) bool {
		l, r := t.Left(p), t.Right(p)
		if isRed(t, p) && (isRed(t, l) || isRed(t, r)) {
			err = errors.Wrapf(abstract.ErrInvariantViolated,
				"redblack: red node %v has a red child", *t.Element(p))
			return false
		}
		hl, hr := bh(l), bh(r)
		if hl != hr {
			err = errors.Wrapf(abstract.ErrInvariantViolated,
				"redblack: node %v has black heights %d and %d", *t.Element(p), hl, hr)
			return false
		}
		if !isRed(t, p) {
			hl++
		}
		heights[p] = hl
		return true
	})
	return err
}

// blackHeight returns the number of black nodes on any path from the root
// down to an absent child; 0 for an empty tree.
func blackHeight[E any](t *abstract.LowLevelTree[E, node]) int {
	var n int
	for p := t.Root(); !p.IsNil(); p = t.Left(p) {
		if !isRed(t, p) {
			n++
		}
	}
	return n
}

// BlackHeight returns the black height of the tree.
func (m *Map[K, V]) BlackHeight() int {
	return blackHeight(m.LowLevel())
}
