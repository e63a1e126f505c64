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

func TestRotate(t *testing.T) {
	tr := NewTree[int, struct{}]()
	root := mustAdd(t)(tr.AddRoot(20))
	ten := mustAdd(t)(tr.AddLeft(root, 10))
	mustAdd(t)(tr.AddRight(root, 30))
	mustAdd(t)(tr.AddLeft(ten, 5))
	fifteen := mustAdd(t)(tr.AddRight(ten, 15))

	require.NoError(t, tr.Rotate(ten))
	require.Equal(t, ten, tr.Root())
	require.Equal(t, "10\n  5\n  20\n    15\n    30\n", tr.String())
	parent, err := tr.Parent(fifteen)
	require.NoError(t, err)
	require.Equal(t, root, parent)
	require.NoError(t, tr.checkLinks())

	// Rotating back restores the original shape.
	require.NoError(t, tr.Rotate(root))
	require.Equal(t, "20\n  10\n    5\n    15\n  30\n", tr.String())
	require.NoError(t, tr.checkLinks())
}

func TestRotateBelowRoot(t *testing.T) {
	tr := NewTree[int, struct{}]()
	root := mustAdd(t)(tr.AddRoot(50))
	thirty := mustAdd(t)(tr.AddLeft(root, 30))
	forty := mustAdd(t)(tr.AddRight(thirty, 40))

	require.NoError(t, tr.Rotate(forty))
	left, err := tr.Left(root)
	require.NoError(t, err)
	require.Equal(t, forty, left)
	require.Equal(t, "50\n  40\n    30\n", tr.String())
	require.NoError(t, tr.checkLinks())
}

func TestRestructure(t *testing.T) {
	t.Run("zig-zig", func(t *testing.T) {
		tr := NewTree[int, struct{}]()
		z := mustAdd(t)(tr.AddRoot(30))
		y := mustAdd(t)(tr.AddLeft(z, 20))
		x := mustAdd(t)(tr.AddLeft(y, 10))
		mid, err := tr.Restructure(x)
		require.NoError(t, err)
		require.Equal(t, y, mid)
		require.Equal(t, y, tr.Root())
		require.Equal(t, "20\n  10\n  30\n", tr.String())
		require.NoError(t, tr.checkLinks())
	})
	t.Run("zig-zag", func(t *testing.T) {
		tr := NewTree[int, struct{}]()
		z := mustAdd(t)(tr.AddRoot(10))
		y := mustAdd(t)(tr.AddRight(z, 30))
		x := mustAdd(t)(tr.AddLeft(y, 20))
		mid, err := tr.Restructure(x)
		require.NoError(t, err)
		require.Equal(t, x, mid)
		require.Equal(t, "20\n  10\n  30\n", tr.String())
		require.NoError(t, tr.checkLinks())
	})
}
