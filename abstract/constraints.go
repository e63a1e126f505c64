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

import "fmt"

// Entry is a key/value pair stored in a Map.
type Entry[K, V any] struct {
	Key   K
	Value V
}

func (e Entry[K, V]) String() string {
	return fmt.Sprintf("(%v:%v)", e.Key, e.Value)
}

// Rebalancer is a balancing strategy plugged into a Map. The map performs
// plain binary-search-tree insertion and deletion and then calls the
// matching hook, which may recolor, recompute augmentations and rotate
// through the LowLevelTree.
type Rebalancer[E, A any] interface {

	// RebalanceAccess is called with the position of a key that was found
	// by a lookup or overwritten by a set.
	RebalanceAccess(t *LowLevelTree[E, A], p Position)

	// RebalanceInsert is called with the position of a newly created leaf.
	RebalanceInsert(t *LowLevelTree[E, A], p Position)

	// RebalanceDelete is called with the former parent of the node that
	// was physically removed. p is nil if the removed node was the root.
	RebalanceDelete(t *LowLevelTree[E, A], p Position)

	// Verify checks the strategy's structural invariant over the whole
	// tree. The error must wrap ErrInvariantViolated.
	Verify(t *LowLevelTree[E, A]) error
}

// Unbalanced is a Rebalancer which does nothing, yielding a plain binary
// search tree.
type Unbalanced[E, A any] struct{}

var _ Rebalancer[int, struct{}] = Unbalanced[int, struct{}]{}

// RebalanceAccess implements Rebalancer.
func (Unbalanced[E, A]) RebalanceAccess(*LowLevelTree[E, A], Position) {}

// RebalanceInsert implements Rebalancer.
func (Unbalanced[E, A]) RebalanceInsert(*LowLevelTree[E, A], Position) {}

// RebalanceDelete implements Rebalancer.
func (Unbalanced[E, A]) RebalanceDelete(*LowLevelTree[E, A], Position) {}

// Verify implements Rebalancer.
func (Unbalanced[E, A]) Verify(*LowLevelTree[E, A]) error { return nil }

// Bound is an optional end of a key range.
type Bound[K any] struct {
	key K
	set bool
}

// Unbounded returns a Bound which places no limit on its side of a range.
func Unbounded[K any]() Bound[K] { return Bound[K]{} }

// Bounded returns a Bound at k. As a range start it is inclusive, as a
// range stop it is exclusive.
func Bounded[K any](k K) Bound[K] { return Bound[K]{key: k, set: true} }

// Key returns the bound's key and whether the bound is set.
func (b Bound[K]) Key() (K, bool) { return b.key, b.set }
