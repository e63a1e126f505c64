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

// Package splay provides an ordered map backed by a splay tree. Every
// access, insertion and deletion moves the touched node to the root, so
// recently used keys are cheap to reach again.
package splay

import (
	"go.uber.org/zap"

	"github.com/ajwerner/bst/abstract"
)

type node = struct{}

// Map is an ordered map backed by a splay tree. Lookups restructure the
// tree, so even reads must not run concurrently.
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

// RebalanceAccess implements abstract.Rebalancer.
func (balancer[E]) RebalanceAccess(t *abstract.LowLevelTree[E, node], p abstract.Position) {
	splay(t, p)
}

// RebalanceInsert implements abstract.Rebalancer.
func (balancer[E]) RebalanceInsert(t *abstract.LowLevelTree[E, node], p abstract.Position) {
	splay(t, p)
}

// RebalanceDelete implements abstract.Rebalancer. p is the parent of the
// removed node and is nil when the root was removed.
func (balancer[E]) RebalanceDelete(t *abstract.LowLevelTree[E, node], p abstract.Position) {
	if !p.IsNil() {
		splay(t, p)
	}
}

// Verify implements abstract.Rebalancer. A splay tree has no shape
// invariant beyond ordering.
func (balancer[E]) Verify(*abstract.LowLevelTree[E, node]) error { return nil }

// splay rotates p up to the root.
//
//	zig:      p's parent is the root; rotate p once.
//	zig-zig:  p and its parent are children on the same side; rotate the
//	          parent, then p.
//	zig-zag:  p and its parent are on opposite sides; rotate p twice.
func splay[E any](t *abstract.LowLevelTree[E, node], p abstract.Position) {
	var depth int
	for !t.IsRoot(p) {
		parent := t.Parent(p)
		grand := t.Parent(parent)
		switch {
		case grand.IsNil():
			t.Rotate(p)
			depth++
		case (parent == t.Left(grand)) == (p == t.Left(parent)):
			t.Rotate(parent)
			t.Rotate(p)
			depth += 2
		default:
			t.Rotate(p)
			t.Rotate(p)
			depth += 2
		}
	}
	if ce := t.Logger().Check(zap.DebugLevel, "splay: moved to root"); ce != nil {
		ce.Write(zap.Int("depth", depth))
	}
}
