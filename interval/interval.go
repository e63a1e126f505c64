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

// Package interval provides an ordered map keyed by intervals that can
// efficiently find every stored interval overlapping a query.
//
// Nodes are AVL balanced and each caches the greatest upper bound of the
// intervals in its subtree, which lets an overlap scan skip subtrees that
// end before the query begins.
package interval

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"

	"github.com/ajwerner/bst/abstract"
	"github.com/ajwerner/bst/avl"
)

// Interval is the half-open range [Start, End). An interval whose End does
// not exceed its Start is the single point Start.
type Interval[K constraints.Ordered] struct {
	Start, End K
}

// Point returns the interval containing only k.
func Point[K constraints.Ordered](k K) Interval[K] {
	return Interval[K]{Start: k, End: k}
}

// Overlaps returns true if i and o share at least one point.
func (i Interval[K]) Overlaps(o Interval[K]) bool {
	return upperBound(o).contains(i.Start) && upperBound(i).contains(o.Start)
}

func compare[K constraints.Ordered](a, b Interval[K]) int {
	switch {
	case a.Start < b.Start:
		return -1
	case a.Start > b.Start:
		return 1
	case a.End < b.End:
		return -1
	case a.End > b.End:
		return 1
	default:
		return 0
	}
}

type keyBound[K constraints.Ordered] struct {
	k         K
	inclusive bool
}

func upperBound[K constraints.Ordered](i Interval[K]) keyBound[K] {
	if !(i.Start < i.End) {
		return keyBound[K]{k: i.Start, inclusive: true}
	}
	return keyBound[K]{k: i.End}
}

func (b keyBound[K]) compare(o keyBound[K]) int {
	switch {
	case b.k < o.k:
		return -1
	case b.k > o.k:
		return 1
	case b.inclusive == o.inclusive:
		return 0
	case b.inclusive:
		return 1
	default:
		return -1
	}
}

// contains returns true if k lies below the bound.
func (b keyBound[K]) contains(k K) bool {
	if k == b.k {
		return b.inclusive
	}
	return k < b.k
}

type aug[K constraints.Ordered, V any] struct {
	avl.Node

	// max is the greatest upper bound of the intervals in the subtree.
	max keyBound[K]
}

func (a *aug[K, V]) Update(e *abstract.Entry[Interval[K], V], left, right *aug[K, V]) bool {
	a.max = upperBound(e.Key)
	for _, c := range [...]*aug[K, V]{left, right} {
		if c != nil && a.max.compare(c.max) < 0 {
			a.max = c.max
		}
	}
	return true
}

// Map is an ordered map keyed by intervals, sorted by start and then end.
type Map[K constraints.Ordered, V any] struct {
	abstract.Map[Interval[K], V, aug[K, V]]
}

// New returns an empty Map.
func New[K constraints.Ordered, V any](opts ...abstract.Option) *Map[K, V] {
	return &Map[K, V]{
		Map: abstract.MakeMap[Interval[K], V, aug[K, V]](
			compare[K],
			avl.Balancer[abstract.Entry[Interval[K], V], aug[K, V], *aug[K, V]]{},
			opts...,
		),
	}
}

// Validate checks the map's invariants including the cached upper bounds.
func (m *Map[K, V]) Validate() error {
	if err := m.Map.Validate(); err != nil {
		return err
	}
	ll := m.LowLevel()
	var err error
	ll.Postorder(func(p abstract.Position) bool {
		var want aug[K, V]
		var l, r *aug[K, V]
		if c := ll.Left(p); !c.IsNil() {
			l = ll.Aug(c)
		}
		if c := ll.Right(p); !c.IsNil() {
			r = ll.Aug(c)
		}
		want.Update(ll.Element(p), l, r)
		if got := ll.Aug(p).max; got != want.max {
			err = errors.Wrapf(abstract.ErrInvariantViolated,
				"interval: node %v caches bound %v, want %v", ll.Element(p).Key, got, want.max)
			return false
		}
		return true
	})
	return err
}
