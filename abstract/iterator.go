// Copyright 2018 The Cockroach Authors.
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

// Iterator is responsible for search and traversal within a Map.
//
// An Iterator survives mutations of the map as long as the node it points
// at is not deleted: rotations keep positions intact. If that node is
// deleted, the iterator becomes invalid and Err reports why.
type Iterator[K, V, A any] struct {
	m   *Map[K, V, A]
	pos Position
	err error
}

// MakeIter returns a new, unpositioned Iterator.
func (m *Map[K, V, A]) MakeIter() Iterator[K, V, A] {
	return Iterator[K, V, A]{m: m}
}

// Reset clears the iterator's position and error.
func (i *Iterator[K, V, A]) Reset() {
	i.pos = Position{}
	i.err = nil
}

// SeekGE seeks to the first key greater-than or equal to the provided
// key. The landing position counts as an access.
func (i *Iterator[K, V, A]) SeekGE(key K) {
	i.Reset()
	p, c := i.m.search(key)
	if !p.IsNil() && c > 0 {
		p = i.m.ll().After(p)
	}
	i.m.access(p)
	i.pos = p
}

// SeekLT seeks to the last key less-than the provided key. The landing
// position counts as an access.
func (i *Iterator[K, V, A]) SeekLT(key K) {
	i.Reset()
	p, c := i.m.search(key)
	if !p.IsNil() && c <= 0 {
		p = i.m.ll().Before(p)
	}
	i.m.access(p)
	i.pos = p
}

// Seek positions the iterator at p. A position that is not valid in the
// map leaves the iterator invalid with Err set.
func (i *Iterator[K, V, A]) Seek(p Position) {
	i.Reset()
	if p.IsNil() {
		return
	}
	if _, err := i.m.t.lookup(p); err != nil {
		i.err = err
		return
	}
	i.pos = p
}

// First seeks to the first key in the Map.
func (i *Iterator[K, V, A]) First() {
	i.Reset()
	i.pos = i.m.First()
}

// Last seeks to the last key in the Map.
func (i *Iterator[K, V, A]) Last() {
	i.Reset()
	i.pos = i.m.Last()
}

// Next positions the Iterator to the key immediately following
// its current position.
func (i *Iterator[K, V, A]) Next() {
	if i.pos.IsNil() {
		return
	}
	i.pos, i.err = i.m.After(i.pos)
}

// Prev positions the Iterator to the key immediately preceding
// its current position.
func (i *Iterator[K, V, A]) Prev() {
	if i.pos.IsNil() {
		return
	}
	i.pos, i.err = i.m.Before(i.pos)
}

// Valid returns whether the Iterator is positioned at a valid position.
func (i *Iterator[K, V, A]) Valid() bool {
	if i.pos.IsNil() {
		return false
	}
	if _, err := i.m.t.lookup(i.pos); err != nil {
		i.pos, i.err = Position{}, err
		return false
	}
	return true
}

// Err returns the error which invalidated the iterator, if any.
func (i *Iterator[K, V, A]) Err() error { return i.err }

// Position returns the iterator's current position.
func (i *Iterator[K, V, A]) Position() Position { return i.pos }

// Key returns the key at the Iterator's current position. It is illegal
// to call Key if the Iterator is not valid.
func (i *Iterator[K, V, A]) Key() K {
	return i.m.ll().Element(i.pos).Key
}

// Value returns the value at the Iterator's current position. It is illegal
// to call Value if the Iterator is not valid.
func (i *Iterator[K, V, A]) Value() V {
	return i.m.ll().Element(i.pos).Value
}

// RangeIterator walks the half-open key range [start, stop) in ascending
// order.
type RangeIterator[K, V, A any] struct {
	it          Iterator[K, V, A]
	start, stop Bound[K]
}

// Reset repositions the iterator at the first key of the range.
func (r *RangeIterator[K, V, A]) Reset() {
	if k, ok := r.start.Key(); ok {
		r.it.SeekGE(k)
	} else {
		r.it.First()
	}
	r.clamp()
}

// Next advances to the following key in the range.
func (r *RangeIterator[K, V, A]) Next() {
	r.it.Next()
	r.clamp()
}

func (r *RangeIterator[K, V, A]) clamp() {
	k, ok := r.stop.Key()
	if ok && r.it.Valid() && r.it.m.cmp(r.it.Key(), k) >= 0 {
		r.it.pos = Position{}
	}
}

// Valid returns whether the iterator is positioned inside the range.
func (r *RangeIterator[K, V, A]) Valid() bool { return r.it.Valid() }

// Err returns the error which invalidated the iterator, if any.
func (r *RangeIterator[K, V, A]) Err() error { return r.it.Err() }

// Key returns the current key. It is illegal to call Key if the iterator
// is not valid.
func (r *RangeIterator[K, V, A]) Key() K { return r.it.Key() }

// Value returns the current value. It is illegal to call Value if the
// iterator is not valid.
func (r *RangeIterator[K, V, A]) Value() V { return r.it.Value() }

// Collect drains the remaining entries of the range into a slice.
func (r *RangeIterator[K, V, A]) Collect() []Entry[K, V] {
	var out []Entry[K, V]
	for ; r.Valid(); r.Next() {
		out = append(out, Entry[K, V]{Key: r.Key(), Value: r.Value()})
	}
	return out
}
