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

package workload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ajwerner/bst"
)

func TestParse(t *testing.T) {
	s, err := Parse(`
name = "reads"
seed = 7
keys = 1000
ops = 5000
range_width = 10

[mix]
set = 1
get = 8
range = 1
`)
	require.NoError(t, err)
	require.Equal(t, Spec{
		Name:       "reads",
		Seed:       7,
		Keys:       1000,
		Ops:        5000,
		Mix:        Mix{Set: 1, Get: 8, Range: 1},
		RangeWidth: 10,
	}, s)
}

func TestPartialMixZeroesOmittedWeights(t *testing.T) {
	s, err := Parse("[mix]\nget = 3\n")
	require.NoError(t, err)
	require.Equal(t, Mix{Get: 3}, s.Mix)
	require.Equal(t, Default().Keys, s.Keys)

	s, err = Parse(`ops = 10`)
	require.NoError(t, err)
	require.Equal(t, Default().Mix, s.Mix)

	path := filepath.Join(t.TempDir(), "w.toml")
	require.NoError(t, os.WriteFile(path, []byte("[mix]\nset = 2\ndelete = 1\n"), 0o644))
	s, err = Load(path)
	require.NoError(t, err)
	require.Equal(t, Mix{Set: 2, Delete: 1}, s.Mix)
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		name, data string
	}{
		{"unknown key", `bogus = 1`},
		{"zero keys", `keys = 0`},
		{"empty mix", "[mix]\nset = 0\nget = 0\ndelete = 0\nrange = 0"},
		{"negative weight", "[mix]\nset = -1"},
		{"bad syntax", `keys = `},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.data)
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w.toml")
	require.NoError(t, os.WriteFile(path, []byte("name = \"file\"\nops = 10\n"), 0o644))
	s, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "file", s.Name)
	require.Equal(t, 10, s.Ops)
	require.Equal(t, Default().Keys, s.Keys)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestGenerateDeterministic(t *testing.T) {
	s := Default()
	s.Ops = 2000
	a, b := Generate(s), Generate(s)
	require.Equal(t, a, b)
	var counts [numOpKinds]int
	for _, op := range a {
		require.True(t, op.Key >= 0 && op.Key < s.Keys)
		if op.Kind == OpRange {
			require.Equal(t, op.Key+s.RangeWidth, op.Stop)
		}
		counts[op.Kind]++
	}
	for k, c := range counts {
		require.NotZero(t, c, OpKind(k).String())
	}
	s.Seed++
	require.NotEqual(t, a, Generate(s))
}

func TestTargetsAgree(t *testing.T) {
	s := Spec{
		Name:       "agree",
		Seed:       3,
		Keys:       500,
		Ops:        20000,
		Mix:        Mix{Set: 4, Get: 3, Delete: 2, Range: 1},
		RangeWidth: 25,
	}
	ops := Generate(s)
	var results []Result
	for _, name := range TargetNames() {
		target, err := NewTarget(name, bst.WithInvariantChecks())
		require.NoError(t, err)
		require.Equal(t, name, target.Name())
		res, err := Run(target, ops)
		require.NoError(t, err)
		require.Equal(t, s.Ops, res.Ops())
		results = append(results, res)
	}
	first := results[0]
	for _, res := range results[1:] {
		require.Equal(t, first.Len, res.Len, res.Target)
		require.Equal(t, first.Hits, res.Hits, res.Target)
		require.Equal(t, first.Misses, res.Misses, res.Target)
		require.Equal(t, first.Scanned, res.Scanned, res.Target)
		require.Equal(t, first.Counts, res.Counts, res.Target)
	}
}

func TestNewTargetUnknown(t *testing.T) {
	_, err := NewTarget("skiplist")
	require.Error(t, err)
}
