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

package avl

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ajwerner/bst/abstract"
)

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func rootKey(t *testing.T, m *Map[int, int]) int {
	e, err := m.Entry(m.Root())
	require.NoError(t, err)
	return e.Key
}

func TestAVLSingleRotation(t *testing.T) {
	m := New[int, int](cmpInt, abstract.WithInvariantChecks())
	for _, k := range []int{1, 2, 3} {
		m.Set(k, k)
	}
	require.Equal(t, "(2:2)\n  (1:1)\n  (3:3)\n", m.String())
	ll := m.LowLevel()
	require.Equal(t, 2, ll.Aug(ll.Root()).height)
	require.Equal(t, 2, m.Height())
}

func TestAVLDoubleRotation(t *testing.T) {
	m := New[int, int](cmpInt, abstract.WithInvariantChecks())
	for _, k := range []int{3, 1, 2} {
		m.Set(k, k)
	}
	require.Equal(t, 2, rootKey(t, m))
	require.Equal(t, "(2:2)\n  (1:1)\n  (3:3)\n", m.String())
}

func TestAVLSequentialInsertHeight(t *testing.T) {
	m := New[int, int](cmpInt, abstract.WithInvariantChecks())
	for i := 1; i <= 1023; i++ {
		m.Set(i, i)
	}
	// A perfectly balanced tree results from sorted insertion of 2^k-1 keys.
	require.Equal(t, 10, m.Height())
	require.Equal(t, 512, rootKey(t, m))
}

func TestAVLDeleteRebalances(t *testing.T) {
	m := New[int, int](cmpInt, abstract.WithInvariantChecks())
	for _, k := range []int{2, 1, 3, 4} {
		m.Set(k, k)
	}
	_, err := m.Delete(1)
	require.NoError(t, err)
	require.Equal(t, 3, rootKey(t, m))
	require.Equal(t, "(3:3)\n  (2:2)\n  (4:4)\n", m.String())
}

func TestAVLRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	m := New[int, int](cmpInt)
	present := map[int]bool{}
	for i := 0; i < 5000; i++ {
		k := rng.Intn(500)
		if rng.Intn(2) == 0 {
			_, err := m.Delete(k)
			require.Equal(t, !present[k], abstract.IsNotFound(err))
			delete(present, k)
		} else {
			m.Set(k, i)
			present[k] = true
		}
		if i%100 == 0 {
			require.NoError(t, m.Validate())
		}
	}
	require.NoError(t, m.Validate())
	require.Equal(t, len(present), m.Len())
}

func TestAVLVerifyDetectsStaleHeight(t *testing.T) {
	m := New[int, int](cmpInt)
	for _, k := range []int{2, 1, 3} {
		m.Set(k, k)
	}
	ll := m.LowLevel()
	ll.Aug(ll.Root()).height = 5
	require.True(t, abstract.IsInvariantViolated(m.Validate()))
}
