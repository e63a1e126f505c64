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
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// slotStack is the explicit stack used by the traversals, which never
// recurse: a splay tree can be arbitrarily deep between operations.
type slotStack struct {
	a    slotStackArr
	aLen int16 // -1 when using s
	s    []int32
}

const slotStackDepth = 32

// Used to avoid allocations for stacks below a certain size.
type slotStackArr [slotStackDepth]int32

func (ss *slotStack) push(s int32) {
	if ss.aLen == -1 {
		ss.s = append(ss.s, s)
	} else if int(ss.aLen) == len(ss.a) {
		ss.s = make([]int32, int(ss.aLen)+1, 2*int(ss.aLen))
		copy(ss.s, ss.a[:])
		ss.s[int(ss.aLen)] = s
		ss.aLen = -1
	} else {
		ss.a[ss.aLen] = s
		ss.aLen++
	}
}

func (ss *slotStack) pop() int32 {
	if ss.aLen == -1 {
		s := ss.s[len(ss.s)-1]
		ss.s = ss.s[:len(ss.s)-1]
		return s
	}
	ss.aLen--
	return ss.a[ss.aLen]
}

func (ss *slotStack) peek() int32 {
	if ss.aLen == -1 {
		return ss.s[len(ss.s)-1]
	}
	return ss.a[ss.aLen-1]
}

func (ss *slotStack) len() int {
	if ss.aLen == -1 {
		return len(ss.s)
	}
	return int(ss.aLen)
}

// Preorder visits every position parent-first. Returning false from f
// stops the traversal.
func (t *Tree[E, A]) Preorder(f func(Position) bool) {
	if t.IsEmpty() {
		return
	}
	var st slotStack
	st.push(t.root)
	for st.len() > 0 {
		s := st.pop()
		if !f(t.pos(s)) {
			return
		}
		n := t.n(s)
		if n.right != none {
			st.push(n.right)
		}
		if n.left != none {
			st.push(n.left)
		}
	}
}

// Postorder visits every position children-first. Returning false from f
// stops the traversal.
func (t *Tree[E, A]) Postorder(f func(Position) bool) {
	if t.IsEmpty() {
		return
	}
	var st slotStack
	last := none
	s := t.root
	for s != none || st.len() > 0 {
		if s != none {
			st.push(s)
			s = t.n(s).left
			continue
		}
		top := st.peek()
		if r := t.n(top).right; r != none && r != last {
			s = r
			continue
		}
		st.pop()
		if !f(t.pos(top)) {
			return
		}
		last = top
	}
}

// Inorder visits every position in symmetric order. Returning false from
// f stops the traversal.
func (t *Tree[E, A]) Inorder(f func(Position) bool) {
	if t.IsEmpty() {
		return
	}
	var st slotStack
	s := t.root
	for s != none || st.len() > 0 {
		for ; s != none; s = t.n(s).left {
			st.push(s)
		}
		s = st.pop()
		if !f(t.pos(s)) {
			return
		}
		s = t.n(s).right
	}
}

// BreadthFirst visits every position level by level. Returning false from
// f stops the traversal.
func (t *Tree[E, A]) BreadthFirst(f func(Position) bool) {
	if t.IsEmpty() {
		return
	}
	fringe := []int32{t.root}
	for len(fringe) > 0 {
		s := fringe[0]
		fringe = fringe[1:]
		if !f(t.pos(s)) {
			return
		}
		n := t.n(s)
		if n.left != none {
			fringe = append(fringe, n.left)
		}
		if n.right != none {
			fringe = append(fringe, n.right)
		}
	}
}

// String returns a preorder listing of the elements, each line indented
// by two spaces per level of depth.
func (t *Tree[E, A]) String() string {
	if t.IsEmpty() {
		return ""
	}
	type frame struct {
		slot  int32
		depth int
	}
	var b strings.Builder
	stack := []frame{{slot: t.root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.n(f.slot)
		fmt.Fprintf(&b, "%s%v\n", strings.Repeat("  ", f.depth), n.elem)
		if n.right != none {
			stack = append(stack, frame{n.right, f.depth + 1})
		}
		if n.left != none {
			stack = append(stack, frame{n.left, f.depth + 1})
		}
	}
	return b.String()
}

// checkLinks verifies that every child points back at its parent, that the
// root has no parent and that every node is reachable from the root.
func (t *Tree[E, A]) checkLinks() error {
	if t.IsEmpty() {
		if t.id != 0 && t.root != none {
			return errors.Wrap(ErrInvariantViolated, "empty tree has a root")
		}
		return nil
	}
	if p := t.n(t.root).parent; p != none {
		return errors.Wrapf(ErrInvariantViolated, "root has parent slot %d", p)
	}
	var err error
	count := 0
	t.Preorder(func(p Position) bool {
		count++
		n := t.n(p.slot)
		for _, c := range [2]int32{n.left, n.right} {
			if c != none && t.n(c).parent != p.slot {
				err = errors.Wrapf(ErrInvariantViolated,
					"node %v: child %v does not point back", n.elem, t.n(c).elem)
				return false
			}
		}
		return true
	})
	if err != nil {
		return err
	}
	if count != t.Len() {
		return errors.Wrapf(ErrInvariantViolated,
			"%d nodes reachable from the root, %d allocated", count, t.Len())
	}
	return nil
}
