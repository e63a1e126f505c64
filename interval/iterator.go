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

package interval

import (
	"golang.org/x/exp/constraints"

	"github.com/ajwerner/bst/abstract"
)

// Iterator iterates a Map in key order and can also scan only the
// intervals overlapping a query. Mutating the map ends an overlap scan:
// the iterator must be repositioned afterwards.
type Iterator[K constraints.Ordered, V any] struct {
	abstract.Iterator[Interval[K], V, aug[K, V]]

	m *Map[K, V]
	o overlapScan[K]
}

type overlapScan[K constraints.Ordered] struct {
	bounds Interval[K]
	set    bool

	// pending holds the ancestors still to be visited in order.
	pending []abstract.Position
	// next is the subtree to descend into before popping pending.
	next abstract.Position
}

// MakeIter returns a new, unpositioned Iterator.
func (m *Map[K, V]) MakeIter() Iterator[K, V] {
	return Iterator[K, V]{Iterator: m.Map.MakeIter(), m: m}
}

// Reset clears the iterator's position and any overlap scan.
func (i *Iterator[K, V]) Reset() {
	i.o = overlapScan[K]{pending: i.o.pending[:0]}
	i.Iterator.Reset()
}

// FirstOverlap positions the iterator at the first interval, in key
// order, that overlaps bounds.
func (i *Iterator[K, V]) FirstOverlap(bounds Interval[K]) {
	i.Reset()
	i.o.bounds, i.o.set = bounds, true
	i.o.next = i.m.Root()
	i.findNextOverlap()
}

// NextOverlap advances to the next interval overlapping the bounds given
// to FirstOverlap. Mixing it with other positioning methods invalidates
// the iterator.
func (i *Iterator[K, V]) NextOverlap() {
	if !i.Valid() {
		return
	}
	if !i.o.set {
		i.Reset()
		return
	}
	i.o.next = i.m.LowLevel().Right(i.Position())
	i.findNextOverlap()
}

func (i *Iterator[K, V]) findNextOverlap() {
	ll := i.m.LowLevel()
	o := &i.o
	end := upperBound(o.bounds)
	for {
		// Descend left while the subtree may still reach the query.
		for p := o.next; !p.IsNil() && ll.Aug(p).max.contains(o.bounds.Start); p = ll.Left(p) {
			o.pending = append(o.pending, p)
		}
		o.next = abstract.Position{}
		if len(o.pending) == 0 {
			i.Reset()
			return
		}
		p := o.pending[len(o.pending)-1]
		o.pending = o.pending[:len(o.pending)-1]
		iv := ll.Element(p).Key
		if !end.contains(iv.Start) {
			// Past possible overlaps.
			i.Reset()
			return
		}
		if upperBound(iv).contains(o.bounds.Start) {
			i.Iterator.Seek(p)
			return
		}
		o.next = ll.Right(p)
	}
}
