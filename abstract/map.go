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
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Map is an ordered map over a binary search tree. All searching,
// insertion, deletion and navigation is done here; the Rebalancer decides
// how the tree is kept in shape.
//
// Map is not safe for concurrent use, including concurrent reads: lookups
// may restructure the tree.
type Map[K, V, A any] struct {
	t   Tree[Entry[K, V], A]
	cmp func(K, K) int
	rb  Rebalancer[Entry[K, V], A]
	cfg Config
}

// MakeMap constructs a Map ordered by cmp and balanced by rb.
func MakeMap[K, V, A any](
	cmp func(K, K) int, rb Rebalancer[Entry[K, V], A], opts ...Option,
) Map[K, V, A] {
	m := Map[K, V, A]{
		cmp: cmp,
		rb:  rb,
		cfg: makeConfig(opts),
	}
	m.t.init()
	m.t.log = m.cfg.Logger
	return m
}

func (m *Map[K, V, A]) ll() *LowLevelTree[Entry[K, V], A] {
	return LowLevel(&m.t)
}

// LowLevel returns the unchecked view of the underlying tree. Mutating the
// tree through it can break the map's ordering and balance.
func (m *Map[K, V, A]) LowLevel() *LowLevelTree[Entry[K, V], A] {
	return m.ll()
}

// Tree returns the underlying positional tree.
func (m *Map[K, V, A]) Tree() *Tree[Entry[K, V], A] {
	return &m.t
}

// Compare compares two keys with the map's comparison function.
func (m *Map[K, V, A]) Compare(a, b K) int { return m.cmp(a, b) }

// Len returns the number of entries.
func (m *Map[K, V, A]) Len() int { return m.t.Len() }

// IsEmpty returns true if the map has no entries.
func (m *Map[K, V, A]) IsEmpty() bool { return m.t.IsEmpty() }

// Reset removes every entry and invalidates every position.
func (m *Map[K, V, A]) Reset() { m.t.Reset() }

// Height returns the number of levels in the tree; 0 when empty.
func (m *Map[K, V, A]) Height() int {
	if m.t.IsEmpty() {
		return 0
	}
	return m.t.subtreeHeight(m.t.root) + 1
}

// String returns the tree as an indented preorder listing of "(key:value)"
// lines.
func (m *Map[K, V, A]) String() string { return m.t.String() }

// search descends from the root towards k. It returns the matching
// position, or the last position visited, with the result of comparing k
// to that position's key. The position is nil only if the map is empty.
func (m *Map[K, V, A]) search(k K) (p Position, c int) {
	ll := m.ll()
	p = ll.Root()
	if p.IsNil() {
		return p, 0
	}
	for {
		c = m.cmp(k, ll.Element(p).Key)
		if c == 0 {
			return p, c
		}
		var next Position
		if c < 0 {
			next = ll.Left(p)
		} else {
			next = ll.Right(p)
		}
		if next.IsNil() {
			return p, c
		}
		p = next
	}
}

func (m *Map[K, V, A]) access(p Position) {
	if !p.IsNil() {
		m.rb.RebalanceAccess(m.ll(), p)
	}
}

func (m *Map[K, V, A]) entry(p Position) (e Entry[K, V], ok bool) {
	if p.IsNil() {
		return e, false
	}
	return *m.ll().Element(p), true
}

func (m *Map[K, V, A]) checkInvariants(op string) {
	if !m.cfg.CheckInvariants {
		return
	}
	if err := m.Validate(); err != nil {
		m.cfg.Logger.Error("invariant check failed", zap.String("op", op), zap.Error(err))
		panic(err)
	}
}

// Get returns the value stored under k.
func (m *Map[K, V, A]) Get(k K) (v V, err error) {
	p, c := m.search(k)
	if p.IsNil() || c != 0 {
		return v, errors.Wrapf(ErrNotFound, "get %v", k)
	}
	m.access(p)
	return m.ll().Element(p).Value, nil
}

// Contains returns true if k is present. A hit counts as an access.
func (m *Map[K, V, A]) Contains(k K) bool {
	p, c := m.search(k)
	if p.IsNil() || c != 0 {
		return false
	}
	m.access(p)
	return true
}

// Set stores v under k, overwriting any previous value, and reports whether
// a value was replaced.
func (m *Map[K, V, A]) Set(k K, v V) (replaced bool) {
	ll := m.ll()
	p, c := m.search(k)
	var leaf Position
	switch {
	case p.IsNil():
		leaf = ll.AddRoot(Entry[K, V]{Key: k, Value: v})
	case c == 0:
		ll.Element(p).Value = v
		m.access(p)
		m.checkInvariants("set")
		return true
	case c < 0:
		leaf = ll.AddLeft(p, Entry[K, V]{Key: k, Value: v})
	default:
		leaf = ll.AddRight(p, Entry[K, V]{Key: k, Value: v})
	}
	m.rb.RebalanceInsert(ll, leaf)
	m.checkInvariants("insert")
	return false
}

// Delete removes k and returns the value it held.
func (m *Map[K, V, A]) Delete(k K) (v V, err error) {
	p, c := m.search(k)
	if p.IsNil() || c != 0 {
		return v, errors.Wrapf(ErrNotFound, "delete %v", k)
	}
	return m.deleteAt(p).Value, nil
}

// DeletePosition removes the entry at p and returns it. When p has two
// children the in-order predecessor's entry moves into p's node, so p
// stays valid and holds that entry afterwards.
func (m *Map[K, V, A]) DeletePosition(p Position) (e Entry[K, V], err error) {
	if _, err := m.t.lookup(p); err != nil {
		return e, err
	}
	return m.deleteAt(p), nil
}

func (m *Map[K, V, A]) deleteAt(p Position) Entry[K, V] {
	ll := m.ll()
	removed := *ll.Element(p)
	if ll.NumChildren(p) == 2 {
		r := ll.SubtreeLast(ll.Left(p))
		*ll.Element(p) = *ll.Element(r)
		p = r
	}
	parent := ll.Parent(p)
	ll.Delete(p)
	m.rb.RebalanceDelete(ll, parent)
	m.checkInvariants("delete")
	return removed
}

// Root returns the root position or the nil position.
func (m *Map[K, V, A]) Root() Position { return m.t.Root() }

// Parent returns the parent of p.
func (m *Map[K, V, A]) Parent(p Position) (Position, error) { return m.t.Parent(p) }

// Left returns the left child of p.
func (m *Map[K, V, A]) Left(p Position) (Position, error) { return m.t.Left(p) }

// Right returns the right child of p.
func (m *Map[K, V, A]) Right(p Position) (Position, error) { return m.t.Right(p) }

// Entry returns the entry stored at p.
func (m *Map[K, V, A]) Entry(p Position) (Entry[K, V], error) { return m.t.Element(p) }

// First returns the position of the smallest key or the nil position.
func (m *Map[K, V, A]) First() Position {
	if m.t.IsEmpty() {
		return Position{}
	}
	return m.t.pos(m.t.subtreeFirst(m.t.root))
}

// Last returns the position of the largest key or the nil position.
func (m *Map[K, V, A]) Last() Position {
	if m.t.IsEmpty() {
		return Position{}
	}
	return m.t.pos(m.t.subtreeLast(m.t.root))
}

// Before returns the position preceding p in key order, or the nil
// position if p is first.
func (m *Map[K, V, A]) Before(p Position) (Position, error) {
	s, err := m.t.lookup(p)
	if err != nil {
		return Position{}, err
	}
	return m.t.pos(m.t.before(s)), nil
}

// After returns the position following p in key order, or the nil
// position if p is last.
func (m *Map[K, V, A]) After(p Position) (Position, error) {
	s, err := m.t.lookup(p)
	if err != nil {
		return Position{}, err
	}
	return m.t.pos(m.t.after(s)), nil
}

// FindPosition returns the position holding k or, if k is absent, the
// neighbouring position where the search ended. It is nil only when the
// map is empty. The returned position counts as an access.
func (m *Map[K, V, A]) FindPosition(k K) Position {
	p, _ := m.search(k)
	m.access(p)
	return p
}

// FindMin returns the entry with the smallest key.
func (m *Map[K, V, A]) FindMin() (Entry[K, V], bool) {
	return m.found(m.First())
}

// FindMax returns the entry with the largest key.
func (m *Map[K, V, A]) FindMax() (Entry[K, V], bool) {
	return m.found(m.Last())
}

// FindGE returns the entry with the least key greater than or equal to k.
func (m *Map[K, V, A]) FindGE(k K) (Entry[K, V], bool) {
	p, c := m.search(k)
	if !p.IsNil() && c > 0 {
		p = m.ll().After(p)
	}
	return m.found(p)
}

// FindGT returns the entry with the least key strictly greater than k.
func (m *Map[K, V, A]) FindGT(k K) (Entry[K, V], bool) {
	p, c := m.search(k)
	if !p.IsNil() && c >= 0 {
		p = m.ll().After(p)
	}
	return m.found(p)
}

// FindLE returns the entry with the greatest key less than or equal to k.
func (m *Map[K, V, A]) FindLE(k K) (Entry[K, V], bool) {
	p, c := m.search(k)
	if !p.IsNil() && c < 0 {
		p = m.ll().Before(p)
	}
	return m.found(p)
}

// FindLT returns the entry with the greatest key strictly less than k.
func (m *Map[K, V, A]) FindLT(k K) (Entry[K, V], bool) {
	p, c := m.search(k)
	if !p.IsNil() && c <= 0 {
		p = m.ll().Before(p)
	}
	return m.found(p)
}

func (m *Map[K, V, A]) found(p Position) (Entry[K, V], bool) {
	m.access(p)
	return m.entry(p)
}

// Range returns an iterator over the entries with start <= key < stop in
// ascending order, positioned at the first of them. An unbounded side
// places no limit. The iterator is lazy and can be restarted with Reset.
func (m *Map[K, V, A]) Range(start, stop Bound[K]) RangeIterator[K, V, A] {
	r := RangeIterator[K, V, A]{
		it:    m.MakeIter(),
		start: start,
		stop:  stop,
	}
	r.Reset()
	return r
}

// Ascend calls f for every entry in ascending key order until f returns
// false.
func (m *Map[K, V, A]) Ascend(f func(K, V) bool) {
	it := m.MakeIter()
	for it.First(); it.Valid(); it.Next() {
		if !f(it.Key(), it.Value()) {
			return
		}
	}
}

// Descend calls f for every entry in descending key order until f returns
// false.
func (m *Map[K, V, A]) Descend(f func(K, V) bool) {
	it := m.MakeIter()
	for it.Last(); it.Valid(); it.Prev() {
		if !f(it.Key(), it.Value()) {
			return
		}
	}
}

// Validate checks the tree links, the search-tree ordering, and the
// balancer's own invariant. The returned error wraps ErrInvariantViolated.
func (m *Map[K, V, A]) Validate() error {
	if err := m.t.checkLinks(); err != nil {
		return err
	}
	var (
		err  error
		prev *Entry[K, V]
	)
	m.t.Inorder(func(p Position) bool {
		e := &m.t.n(p.slot).elem
		if prev != nil && m.cmp(prev.Key, e.Key) >= 0 {
			err = errors.Wrapf(ErrInvariantViolated,
				"keys out of order: %v before %v", prev.Key, e.Key)
			return false
		}
		prev = e
		return true
	})
	if err != nil {
		return err
	}
	return m.rb.Verify(m.ll())
}
