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

package interval_test

import (
	"fmt"

	"github.com/ajwerner/bst/interval"
)

func Example() {
	m := interval.New[int, string]()
	for _, iv := range []interval.Interval[int]{
		{1, 2}, {2, 3}, {1, 5}, {0, 6}, {2, 7},
	} {
		m.Set(iv, fmt.Sprintf("%d-%d", iv.Start, iv.End))
	}
	it := m.MakeIter()
	for it.FirstOverlap(interval.Interval[int]{Start: 4, End: 5}); it.Valid(); it.NextOverlap() {
		fmt.Println(it.Key(), it.Value())
	}
	// Output:
	// {0 6} 0-6
	// {1 5} 1-5
	// {2 7} 2-7
}
