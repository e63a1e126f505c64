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
	"github.com/NVIDIA/sortedmap"
	"github.com/google/btree"
	"github.com/pkg/errors"

	"github.com/ajwerner/bst"
	"github.com/ajwerner/bst/abstract"
)

// Target is an ordered map from int to int that a workload runs against.
type Target interface {
	Name() string
	// Set stores v under k.
	Set(k, v int) error
	// Get reports whether k is present.
	Get(k int) (bool, error)
	// Delete removes k and reports whether it was present.
	Delete(k int) (bool, error)
	// Range visits the keys in [start, stop) in order and returns how many
	// it saw.
	Range(start, stop int) (int, error)
	Len() (int, error)
}

// Target names accepted by NewTarget besides the bst.Kind names.
const (
	BTreeTarget = "btree"
	LLRBTarget  = "llrb"
)

// TargetNames lists every name NewTarget accepts.
func TargetNames() []string {
	names := make([]string, 0, len(bst.Kinds)+2)
	for _, k := range bst.Kinds {
		names = append(names, k.String())
	}
	return append(names, BTreeTarget, LLRBTarget)
}

// NewTarget returns an empty target by name. opts apply only to the bst
// variants.
func NewTarget(name string, opts ...bst.Option) (Target, error) {
	switch name {
	case BTreeTarget:
		return &btreeTarget{t: btree.New(32)}, nil
	case LLRBTarget:
		return &llrbTarget{t: sortedmap.NewLLRBTree(sortedmap.CompareInt, nil)}, nil
	}
	kind, err := bst.ParseKind(name)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown target %q", name)
	}
	m, err := bst.New[int, int](kind, bst.Compare[int], opts...)
	if err != nil {
		return nil, err
	}
	return &treeTarget{kind: kind, m: m}, nil
}

type treeTarget struct {
	kind bst.Kind
	m    bst.OrderedMap[int, int]
}

func (t *treeTarget) Name() string { return t.kind.String() }

func (t *treeTarget) Set(k, v int) error {
	t.m.Set(k, v)
	return nil
}

func (t *treeTarget) Get(k int) (bool, error) {
	_, err := t.m.Get(k)
	if abstract.IsNotFound(err) {
		return false, nil
	}
	return err == nil, err
}

func (t *treeTarget) Delete(k int) (bool, error) {
	_, err := t.m.Delete(k)
	if abstract.IsNotFound(err) {
		return false, nil
	}
	return err == nil, err
}

func (t *treeTarget) Range(start, stop int) (int, error) {
	var n int
	r := t.m.Range(bst.Bounded(start), bst.Bounded(stop))
	for ; r.Valid(); r.Next() {
		n++
	}
	return n, r.Err()
}

func (t *treeTarget) Len() (int, error) { return t.m.Len(), nil }

type btreeItem struct {
	k, v int
}

func (a btreeItem) Less(b btree.Item) bool { return a.k < b.(btreeItem).k }

type btreeTarget struct {
	t *btree.BTree
}

func (t *btreeTarget) Name() string { return BTreeTarget }

func (t *btreeTarget) Set(k, v int) error {
	t.t.ReplaceOrInsert(btreeItem{k: k, v: v})
	return nil
}

func (t *btreeTarget) Get(k int) (bool, error) {
	return t.t.Has(btreeItem{k: k}), nil
}

func (t *btreeTarget) Delete(k int) (bool, error) {
	return t.t.Delete(btreeItem{k: k}) != nil, nil
}

func (t *btreeTarget) Range(start, stop int) (int, error) {
	var n int
	t.t.AscendRange(btreeItem{k: start}, btreeItem{k: stop}, func(btree.Item) bool {
		n++
		return true
	})
	return n, nil
}

func (t *btreeTarget) Len() (int, error) { return t.t.Len(), nil }

type llrbTarget struct {
	t sortedmap.LLRBTree
}

func (t *llrbTarget) Name() string { return LLRBTarget }

func (t *llrbTarget) Set(k, v int) error {
	ok, err := t.t.Put(k, v)
	if err != nil || ok {
		return err
	}
	// Put refuses existing keys.
	_, err = t.t.PatchByKey(k, v)
	return err
}

func (t *llrbTarget) Get(k int) (bool, error) {
	_, ok, err := t.t.GetByKey(k)
	return ok, err
}

func (t *llrbTarget) Delete(k int) (bool, error) {
	return t.t.DeleteByKey(k)
}

func (t *llrbTarget) Range(start, stop int) (int, error) {
	i, found, err := t.t.BisectLeft(start)
	if err != nil {
		return 0, err
	}
	if !found {
		// BisectLeft lands on the last key before start.
		i++
	}
	var n int
	for ; ; i++ {
		key, _, ok, err := t.t.GetByIndex(i)
		if err != nil {
			return n, err
		}
		if !ok || key.(int) >= stop {
			return n, nil
		}
		n++
	}
}

func (t *llrbTarget) Len() (int, error) { return t.t.Len() }
