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

// relink makes child the left or right child of parent. child may be none.
func (t *Tree[E, A]) relink(parent, child int32, makeLeft bool) {
	if makeLeft {
		t.n(parent).left = child
	} else {
		t.n(parent).right = child
	}
	if child != none {
		t.n(child).parent = parent
	}
}

// rotate lifts x above its parent y. The child of x that lies between x
// and y in key order moves across to y, and the grandparent (or the root
// pointer) is pointed at x.
//
//	      y              x
//	     / \            / \
//	    x   c    <->   a   y
//	   / \                / \
//	  a   b              b   c
func (t *Tree[E, A]) rotate(x int32) {
	y := t.n(x).parent
	z := t.n(y).parent
	if z == none {
		t.root = x
		t.n(x).parent = none
	} else {
		t.relink(z, x, t.n(z).left == y)
	}
	if t.n(y).left == x {
		t.relink(y, t.n(x).right, true)
		t.relink(x, y, false)
	} else {
		t.relink(y, t.n(x).left, false)
		t.relink(x, y, true)
	}
}

// restructure performs a trinode restructuring of x, its parent y and its
// grandparent z. When x and y lean the same way a single rotation of y
// suffices and y becomes the local root; otherwise x is rotated twice and
// becomes the local root.
func (t *Tree[E, A]) restructure(x int32) int32 {
	y := t.n(x).parent
	z := t.n(y).parent
	if (t.n(y).right == x) == (t.n(z).right == y) {
		t.rotate(y)
		return y
	}
	t.rotate(x)
	t.rotate(x)
	return x
}
