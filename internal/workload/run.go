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
	"time"

	"github.com/pkg/errors"
)

// Result summarizes a run of a workload against one target.
type Result struct {
	Target string
	Counts [numOpKinds]int
	// Hits and Misses count get and delete operations that did and did
	// not find their key.
	Hits, Misses int
	// Scanned is the total number of keys visited by range operations.
	Scanned int
	// Len is the size of the target once the run finished.
	Len     int
	Elapsed time.Duration
}

// Ops returns the number of operations run.
func (r Result) Ops() int {
	var n int
	for _, c := range r.Counts {
		n += c
	}
	return n
}

// Count returns the number of operations of kind k that were run.
func (r Result) Count(k OpKind) int { return r.Counts[k] }

// Run applies ops to t in order.
func Run(t Target, ops []Op) (Result, error) {
	res := Result{Target: t.Name()}
	start := time.Now()
	for i, op := range ops {
		var (
			found bool
			err   error
		)
		switch op.Kind {
		case OpSet:
			err = t.Set(op.Key, op.Value)
		case OpGet:
			found, err = t.Get(op.Key)
		case OpDelete:
			found, err = t.Delete(op.Key)
		case OpRange:
			var n int
			n, err = t.Range(op.Key, op.Stop)
			res.Scanned += n
		default:
			err = errors.Errorf("unknown op kind %d", op.Kind)
		}
		if err != nil {
			return res, errors.Wrapf(err, "%s: op %d (%s %d)", t.Name(), i, op.Kind, op.Key)
		}
		res.Counts[op.Kind]++
		if op.Kind == OpGet || op.Kind == OpDelete {
			if found {
				res.Hits++
			} else {
				res.Misses++
			}
		}
	}
	res.Elapsed = time.Since(start)
	n, err := t.Len()
	if err != nil {
		return res, errors.Wrapf(err, "%s: len", t.Name())
	}
	res.Len = n
	return res, nil
}
