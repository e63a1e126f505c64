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

import "github.com/ajwerner/bst/abstract"

// mapAdapter presents an abstract.Map as an OrderedMap.
type mapAdapter[K, V, A any] struct {
	*abstract.Map[K, V, A]
}

var _ OrderedMap[int, int] = mapAdapter[int, int, struct{}]{}

func adapt[K, V, A any](m *abstract.Map[K, V, A]) OrderedMap[K, V] {
	return mapAdapter[K, V, A]{Map: m}
}

func (m mapAdapter[K, V, A]) Range(start, stop abstract.Bound[K]) Range[K, V] {
	r := m.Map.Range(start, stop)
	return &r
}
