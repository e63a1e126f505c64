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

// Package slab provides a generational arena. Entries are addressed by a
// stable index and a generation; freeing an entry bumps its generation so
// that stale handles can be detected in constant time.
package slab

// Slab stores values of type T in reusable slots.
type Slab[T any] struct {
	entries []entry[T]
	free    []int32
	live    int
}

type entry[T any] struct {
	val  T
	gen  uint32
	used bool
}

// Alloc stores v in a free slot, reusing reclaimed slots before growing.
func (s *Slab[T]) Alloc(v T) (idx int32, gen uint32) {
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.entries = append(s.entries, entry[T]{})
		idx = int32(len(s.entries) - 1)
	}
	e := &s.entries[idx]
	e.val = v
	e.used = true
	s.live++
	return idx, e.gen
}

// Free releases the slot at idx and returns the value it held. Any handle
// carrying the previous generation becomes stale.
func (s *Slab[T]) Free(idx int32) T {
	e := &s.entries[idx]
	if !e.used {
		panic("slab: double free")
	}
	v := e.val
	var zero T
	e.val = zero
	e.used = false
	e.gen++
	s.free = append(s.free, idx)
	s.live--
	return v
}

// Get returns a pointer to the value in a used slot. The pointer is only
// valid until the next Alloc.
func (s *Slab[T]) Get(idx int32) *T {
	e := &s.entries[idx]
	if !e.used {
		panic("slab: access to free slot")
	}
	return &e.val
}

// Gen returns the current generation of the slot at idx.
func (s *Slab[T]) Gen(idx int32) uint32 {
	return s.entries[idx].gen
}

// Live reports whether idx names a used slot of generation gen.
func (s *Slab[T]) Live(idx int32, gen uint32) bool {
	if idx < 0 || int(idx) >= len(s.entries) {
		return false
	}
	e := &s.entries[idx]
	return e.used && e.gen == gen
}

// Len returns the number of used slots.
func (s *Slab[T]) Len() int {
	return s.live
}

// Reset drops every entry. Callers that hand out (idx, gen) handles must
// invalidate them by other means, since generations restart at zero.
func (s *Slab[T]) Reset() {
	s.entries = nil
	s.free = nil
	s.live = 0
}
