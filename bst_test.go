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

package bst

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/btree"
	"github.com/stretchr/testify/require"

	"github.com/ajwerner/bst/abstract"
)

func forEachKind(t *testing.T, f func(t *testing.T, kind Kind)) {
	for _, kind := range Kinds {
		kind := kind
		t.Run(kind.String(), func(t *testing.T) { f(t, kind) })
	}
}

func newMap(t *testing.T, kind Kind, opts ...Option) OrderedMap[int, string] {
	m, err := New[int, string](kind, Compare[int], opts...)
	require.NoError(t, err)
	return m
}

func keys(m OrderedMap[int, string]) []int {
	var out []int
	m.Ascend(func(k int, _ string) bool {
		out = append(out, k)
		return true
	})
	return out
}

func TestParseKind(t *testing.T) {
	for _, kind := range Kinds {
		got, err := ParseKind(kind.String())
		require.NoError(t, err)
		require.Equal(t, kind, got)
	}
	got, err := ParseKind("Red-Black")
	require.NoError(t, err)
	require.Equal(t, RedBlack, got)
	_, err = ParseKind("btree")
	require.Error(t, err)
	_, err = New[int, int](Kind(7), Compare[int])
	require.Error(t, err)
	require.Equal(t, "Kind(7)", Kind(7).String())
}

func TestCompare(t *testing.T) {
	require.Equal(t, -1, Compare(1, 2))
	require.Equal(t, 0, Compare("a", "a"))
	require.Equal(t, 1, Compare(2.5, 1.0))
}

func TestOrderedMapContract(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind Kind) {
		m := newMap(t, kind, WithInvariantChecks())
		require.True(t, m.IsEmpty())
		require.Equal(t, 0, m.Height())
		_, ok := m.FindMin()
		require.False(t, ok)

		for _, k := range []int{50, 30, 70, 20, 40, 60, 80} {
			require.False(t, m.Set(k, fmt.Sprint(k)))
		}
		require.True(t, m.Set(40, "forty"))
		require.Equal(t, 7, m.Len())

		v, err := m.Get(40)
		require.NoError(t, err)
		require.Equal(t, "forty", v)
		_, err = m.Get(45)
		require.True(t, abstract.IsNotFound(err))
		require.True(t, m.Contains(20))
		require.False(t, m.Contains(25))

		e, ok := m.FindMin()
		require.True(t, ok)
		require.Equal(t, 20, e.Key)
		e, ok = m.FindMax()
		require.True(t, ok)
		require.Equal(t, 80, e.Key)
		e, ok = m.FindGE(45)
		require.True(t, ok)
		require.Equal(t, 50, e.Key)
		e, ok = m.FindLT(20)
		require.False(t, ok)

		// Deleting a node with two children.
		v, err = m.Delete(50)
		require.NoError(t, err)
		require.Equal(t, "50", v)
		require.Equal(t, []int{20, 30, 40, 60, 70, 80}, keys(m))
		_, err = m.Delete(50)
		require.True(t, abstract.IsNotFound(err))
		require.NoError(t, m.Validate())

		var desc []int
		m.Descend(func(k int, _ string) bool {
			desc = append(desc, k)
			return true
		})
		require.Equal(t, []int{80, 70, 60, 40, 30, 20}, desc)

		m.Reset()
		require.True(t, m.IsEmpty())
		require.Empty(t, keys(m))
	})
}

func TestEntriesAndBoundsAreAbstractTypes(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind Kind) {
		m := newMap(t, kind)
		for _, k := range []int{1, 2, 3, 4} {
			m.Set(k, fmt.Sprint(k))
		}
		var e abstract.Entry[int, string]
		e, ok := m.FindGT(2)
		require.True(t, ok)
		require.Equal(t, abstract.Entry[int, string]{Key: 3, Value: "3"}, e)

		var lo, hi abstract.Bound[int] = Bounded(2), Unbounded[int]()
		var got []int
		for r := m.Range(lo, hi); r.Valid(); r.Next() {
			got = append(got, r.Key())
		}
		require.Equal(t, []int{2, 3, 4}, got)
	})
}

func TestRoundTrip(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind Kind) {
		m := newMap(t, kind)
		rng := rand.New(rand.NewSource(int64(kind)))
		perm := rng.Perm(300)
		for _, k := range perm {
			m.Set(k, fmt.Sprint(k))
		}
		for _, k := range perm {
			v, err := m.Get(k)
			require.NoError(t, err)
			require.Equal(t, fmt.Sprint(k), v)
		}
		require.NoError(t, m.Validate())
		for _, k := range rng.Perm(300) {
			v, err := m.Delete(k)
			require.NoError(t, err)
			require.Equal(t, fmt.Sprint(k), v)
		}
		require.True(t, m.IsEmpty())
		require.NoError(t, m.Validate())
	})
}

func TestRangeMatchesLinearScan(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind Kind) {
		m := newMap(t, kind)
		rng := rand.New(rand.NewSource(99))
		for i := 0; i < 200; i++ {
			m.Set(rng.Intn(1000), "")
		}
		all := keys(m)
		for i := 0; i < 100; i++ {
			lo, hi := rng.Intn(1100)-50, rng.Intn(1100)-50
			var exp []int
			for _, k := range all {
				if k >= lo && k < hi {
					exp = append(exp, k)
				}
			}
			var got []int
			r := m.Range(Bounded(lo), Bounded(hi))
			for ; r.Valid(); r.Next() {
				got = append(got, r.Key())
			}
			require.NoError(t, r.Err())
			require.Equal(t, exp, got, "[%d, %d)", lo, hi)

			// The range can be walked again after Reset.
			r.Reset()
			var again []int
			for ; r.Valid(); r.Next() {
				again = append(again, r.Key())
			}
			require.Equal(t, got, again)
		}
		var unbounded []int
		for r := m.Range(Unbounded[int](), Unbounded[int]()); r.Valid(); r.Next() {
			unbounded = append(unbounded, r.Key())
		}
		require.Equal(t, all, unbounded)
	})
}

type item struct {
	k int
	v string
}

func (a item) Less(b btree.Item) bool { return a.k < b.(item).k }

// TestAgainstBTree drives every variant and a google/btree with the same
// random operations and checks that they always agree.
func TestAgainstBTree(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind Kind) {
		m := newMap(t, kind)
		ref := btree.New(8)
		rng := rand.New(rand.NewSource(2021))
		const keySpace = 400
		for i := 0; i < 20000; i++ {
			k := rng.Intn(keySpace)
			switch op := rng.Intn(10); {
			case op < 4:
				v := fmt.Sprint(i)
				replaced := m.Set(k, v)
				require.Equal(t, ref.ReplaceOrInsert(item{k, v}) != nil, replaced)
			case op < 7:
				v, err := m.Delete(k)
				if old := ref.Delete(item{k: k}); old != nil {
					require.NoError(t, err)
					require.Equal(t, old.(item).v, v)
				} else {
					require.True(t, abstract.IsNotFound(err))
				}
			case op < 9:
				v, err := m.Get(k)
				if got := ref.Get(item{k: k}); got != nil {
					require.NoError(t, err)
					require.Equal(t, got.(item).v, v)
				} else {
					require.True(t, abstract.IsNotFound(err))
				}
			default:
				e, ok := m.FindGE(k)
				var exp *item
				ref.AscendGreaterOrEqual(item{k: k}, func(it btree.Item) bool {
					i := it.(item)
					exp = &i
					return false
				})
				require.Equal(t, exp != nil, ok)
				if ok {
					require.Equal(t, exp.k, e.Key)
				}
			}
			require.Equal(t, ref.Len(), m.Len())
			if i%1000 == 0 {
				require.NoError(t, m.Validate())
			}
		}
		var exp []int
		ref.Ascend(func(it btree.Item) bool {
			exp = append(exp, it.(item).k)
			return true
		})
		require.Equal(t, exp, keys(m))
		require.NoError(t, m.Validate())
	})
}

func TestBalancedHeight(t *testing.T) {
	for _, kind := range []Kind{AVL, RedBlack} {
		m := newMap(t, kind)
		for i := 0; i < 1<<12; i++ {
			m.Set(i, "")
		}
		// 2*log2(n+1) bounds both AVL and red-black trees.
		require.LessOrEqual(t, m.Height(), 2*13, kind.String())
	}
	m := newMap(t, Splay)
	for i := 0; i < 100; i++ {
		m.Set(i, "")
	}
	// Sorted insertion into a splay tree leaves a path.
	require.Equal(t, 100, m.Height())
}
