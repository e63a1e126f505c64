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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIterator(t *testing.T) {
	m := newPlainMap(4, 2, 6, 1, 3, 5, 7)
	it := m.MakeIter()
	require.False(t, it.Valid())

	var got []int
	for it.First(); it.Valid(); it.Next() {
		got = append(got, it.Key())
	}
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, got)
	require.NoError(t, it.Err())

	got = got[:0]
	for it.Last(); it.Valid(); it.Prev() {
		got = append(got, it.Key())
	}
	require.Equal(t, []int{7, 6, 5, 4, 3, 2, 1}, got)

	it.SeekGE(4)
	require.True(t, it.Valid())
	require.Equal(t, 4, it.Key())
	require.Equal(t, "4", it.Value())
	it.SeekLT(4)
	require.Equal(t, 3, it.Key())
	it.SeekLT(1)
	require.False(t, it.Valid())
	it.SeekGE(8)
	require.False(t, it.Valid())
	require.NoError(t, it.Err())
}

func TestIteratorSurvivesOtherMutations(t *testing.T) {
	m := newPlainMap(4, 2, 6)
	it := m.MakeIter()
	it.SeekGE(4)
	m.Set(5, "5")
	_, err := m.Delete(2)
	require.NoError(t, err)
	require.True(t, it.Valid())
	it.Next()
	require.Equal(t, 5, it.Key())
}

func TestIteratorInvalidatedByDelete(t *testing.T) {
	m := newPlainMap(4, 2, 6)
	it := m.MakeIter()
	it.SeekGE(6)
	_, err := m.Delete(6)
	require.NoError(t, err)
	require.False(t, it.Valid())
	require.True(t, IsInvalidPosition(it.Err()), "%v", it.Err())

	it.SeekGE(2)
	_, err = m.Delete(2)
	require.NoError(t, err)
	it.Next()
	require.False(t, it.Valid())
	require.True(t, IsInvalidPosition(it.Err()), "%v", it.Err())

	// Reset clears the error.
	it.First()
	require.True(t, it.Valid())
	require.NoError(t, it.Err())
}

func TestIteratorInvalidatedByReset(t *testing.T) {
	m := newPlainMap(1, 2)
	r := m.Range(Unbounded[int](), Unbounded[int]())
	m.Reset()
	m.Set(1, "one")
	require.False(t, r.Valid())
	require.True(t, IsInvalidPosition(r.Err()))
	r.Reset()
	require.Equal(t, []Entry[int, string]{{Key: 1, Value: "one"}}, r.Collect())
}
