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

package bst_test

import (
	"fmt"
	"strings"

	"github.com/ajwerner/bst"
	"github.com/ajwerner/bst/redblack"
)

func ExampleNew() {
	m, err := bst.New[string, int](bst.AVL, strings.Compare)
	if err != nil {
		panic(err)
	}
	m.Set("foo", 1)
	m.Set("bar", 2)
	fmt.Println(m.Get("foo"))
	_, err = m.Get("baz")
	fmt.Println(err)
	m.Ascend(func(k string, v int) bool {
		fmt.Println(k, v)
		return true
	})

	// Output:
	// 1 <nil>
	// get baz: key not found
	// bar 2
	// foo 1
}

func ExampleOrderedMap_Range() {
	m, _ := bst.New[int, string](bst.Splay, bst.Compare[int])
	for i := 1; i <= 9; i += 2 {
		m.Set(i, fmt.Sprint("v", i))
	}
	for r := m.Range(bst.Bounded(3), bst.Bounded(8)); r.Valid(); r.Next() {
		fmt.Println(r.Key(), r.Value())
	}
	// Output:
	// 3 v3
	// 5 v5
	// 7 v7
}

func Example_redBlack() {
	m := redblack.New[int, int](bst.Compare[int])
	for i := 1; i <= 5; i++ {
		m.Set(i, i*i)
	}
	fmt.Print(m)
	fmt.Println(m.BlackHeight())
	// Output:
	// (2:4)
	//   (1:1)
	//   (4:16)
	//     (3:9)
	//     (5:25)
	// 2
}
