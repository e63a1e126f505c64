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

// Package bst provides ordered maps backed by self-balancing binary search
// trees. The AVL, splay and red-black variants share one implementation of
// the map operations and differ only in how they keep the tree in shape;
// all of them satisfy OrderedMap.
package bst

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"

	"github.com/ajwerner/bst/abstract"
	"github.com/ajwerner/bst/avl"
	"github.com/ajwerner/bst/redblack"
	"github.com/ajwerner/bst/splay"
)

// Option configures a map.
type Option = abstract.Option

// Options re-exported for convenience.
var (
	WithLogger          = abstract.WithLogger
	WithInvariantChecks = abstract.WithInvariantChecks
)

// Error classes re-exported from abstract.
var (
	ErrNotFound            = abstract.ErrNotFound
	ErrInvalidPosition     = abstract.ErrInvalidPosition
	ErrStructuralViolation = abstract.ErrStructuralViolation
	ErrInvariantViolated   = abstract.ErrInvariantViolated
)

// Unbounded returns a Bound that places no limit on a range.
func Unbounded[K any]() abstract.Bound[K] { return abstract.Unbounded[K]() }

// Bounded returns a Bound at k.
func Bounded[K any](k K) abstract.Bound[K] { return abstract.Bounded(k) }

// Range is a lazy, restartable ascending walk over a half-open key range.
type Range[K, V any] interface {
	Valid() bool
	Next()
	Reset()
	Key() K
	Value() V
	Err() error
}

// OrderedMap is the contract shared by every tree variant.
type OrderedMap[K, V any] interface {
	// Get returns the value for k or an error wrapping ErrNotFound.
	Get(k K) (V, error)
	// Set stores v under k and reports whether a previous value was
	// replaced.
	Set(k K, v V) (replaced bool)
	// Delete removes k and returns its value, or an error wrapping
	// ErrNotFound.
	Delete(k K) (V, error)
	Contains(k K) bool
	Len() int
	IsEmpty() bool

	FindMin() (abstract.Entry[K, V], bool)
	FindMax() (abstract.Entry[K, V], bool)
	FindGE(k K) (abstract.Entry[K, V], bool)
	FindGT(k K) (abstract.Entry[K, V], bool)
	FindLE(k K) (abstract.Entry[K, V], bool)
	FindLT(k K) (abstract.Entry[K, V], bool)

	// Range returns the entries with start <= key < stop.
	Range(start, stop abstract.Bound[K]) Range[K, V]
	Ascend(f func(K, V) bool)
	Descend(f func(K, V) bool)

	// Height returns the number of levels in the tree.
	Height() int
	String() string
	Reset()
	Validate() error
}

// Kind selects a balancing strategy.
type Kind int

const (
	// AVL keeps subtree heights within one of each other.
	AVL Kind = iota
	// Splay moves every accessed key to the root.
	Splay
	// RedBlack keeps the tree balanced by coloring nodes.
	RedBlack
)

// Kinds lists every supported Kind.
var Kinds = []Kind{AVL, Splay, RedBlack}

func (k Kind) String() string {
	switch k {
	case AVL:
		return "avl"
	case Splay:
		return "splay"
	case RedBlack:
		return "redblack"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseKind maps a name such as "avl", "splay" or "red-black" to its
// Kind. Matching ignores case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "avl":
		return AVL, nil
	case "splay":
		return Splay, nil
	case "redblack", "red-black", "rb":
		return RedBlack, nil
	}
	return 0, errors.Errorf("unknown tree kind %q", s)
}

// New returns an empty map of the given kind ordered by cmp.
func New[K, V any](kind Kind, cmp func(K, K) int, opts ...Option) (OrderedMap[K, V], error) {
	switch kind {
	case AVL:
		return adapt(&avl.New[K, V](cmp, opts...).Map), nil
	case Splay:
		return adapt(&splay.New[K, V](cmp, opts...).Map), nil
	case RedBlack:
		return adapt(&redblack.New[K, V](cmp, opts...).Map), nil
	}
	return nil, errors.Errorf("unknown tree kind %v", kind)
}

// Compare is the natural ordering of an ordered type.
func Compare[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a == b:
		return 0
	default:
		return 1
	}
}
