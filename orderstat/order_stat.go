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

// Package orderstat provides an ordered map that answers order statistic
// queries: selecting the entry of a given rank and computing the rank of a
// key, both in logarithmic time.
package orderstat

import (
	"github.com/pkg/errors"

	"github.com/ajwerner/bst/abstract"
	"github.com/ajwerner/bst/avl"
)

type aug[K, V any] struct {
	avl.Node

	// size is the number of entries rooted at the current subtree.
	size int
}

func (a *aug[K, V]) Update(_ *abstract.Entry[K, V], left, right *aug[K, V]) bool {
	a.size = 1
	if left != nil {
		a.size += left.size
	}
	if right != nil {
		a.size += right.size
	}
	return true
}

// Map is an AVL balanced ordered map whose nodes also track the size of
// their subtree.
type Map[K, V any] struct {
	abstract.Map[K, V, aug[K, V]]
}

// New returns an empty Map ordered by cmp.
func New[K, V any](cmp func(K, K) int, opts ...abstract.Option) *Map[K, V] {
	return &Map[K, V]{
		Map: abstract.MakeMap[K, V, aug[K, V]](
			cmp, avl.Balancer[abstract.Entry[K, V], aug[K, V], *aug[K, V]]{}, opts...,
		),
	}
}

func size[K, V any](ll *abstract.LowLevelTree[abstract.Entry[K, V], aug[K, V]], p abstract.Position) int {
	if p.IsNil() {
		return 0
	}
	return ll.Aug(p).size
}

// nth returns the position of the entry with i smaller keys.
func (m *Map[K, V]) nth(i int) abstract.Position {
	if i < 0 || i >= m.Len() {
		return abstract.Position{}
	}
	ll := m.LowLevel()
	p := ll.Root()
	for {
		l := size(ll, ll.Left(p))
		switch {
		case i < l:
			p = ll.Left(p)
		case i == l:
			return p
		default:
			i -= l + 1
			p = ll.Right(p)
		}
	}
}

// Select returns the entry with exactly i smaller keys.
func (m *Map[K, V]) Select(i int) (abstract.Entry[K, V], bool) {
	p := m.nth(i)
	if p.IsNil() {
		return abstract.Entry[K, V]{}, false
	}
	return *m.LowLevel().Element(p), true
}

// Rank returns the number of keys smaller than k.
func (m *Map[K, V]) Rank(k K) int {
	ll := m.LowLevel()
	var rank int
	for p := ll.Root(); !p.IsNil(); {
		if m.Compare(k, ll.Element(p).Key) <= 0 {
			p = ll.Left(p)
		} else {
			rank += size(ll, ll.Left(p)) + 1
			p = ll.Right(p)
		}
	}
	return rank
}

// Validate checks the map's invariants including the cached subtree
// sizes.
func (m *Map[K, V]) Validate() error {
	if err := m.Map.Validate(); err != nil {
		return err
	}
	ll := m.LowLevel()
	var err error
	ll.Postorder(func(p abstract.Position) bool {
		want := size(ll, ll.Left(p)) + size(ll, ll.Right(p)) + 1
		if got := ll.Aug(p).size; got != want {
			err = errors.Wrapf(abstract.ErrInvariantViolated,
				"orderstat: node %v caches size %d, want %d", *ll.Element(p), got, want)
			return false
		}
		return true
	})
	return err
}

// Iterator is an abstract.Iterator that can also seek by rank.
type Iterator[K, V any] struct {
	abstract.Iterator[K, V, aug[K, V]]
	m *Map[K, V]
}

// MakeIter returns a new, unpositioned Iterator.
func (m *Map[K, V]) MakeIter() Iterator[K, V] {
	return Iterator[K, V]{Iterator: m.Map.MakeIter(), m: m}
}

// Nth positions the iterator at the entry with exactly i smaller keys. It
// is invalid if i is out of range.
func (it *Iterator[K, V]) Nth(i int) {
	it.Seek(it.m.nth(i))
}
