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

// Package workload describes, generates and runs synthetic ordered-map
// workloads so that the tree variants can be compared with each other and
// with other ordered map implementations.
package workload

import (
	"math/rand"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Mix holds the relative weights of each operation kind.
type Mix struct {
	Set    int `toml:"set"`
	Get    int `toml:"get"`
	Delete int `toml:"delete"`
	Range  int `toml:"range"`
}

func (m Mix) total() int { return m.Set + m.Get + m.Delete + m.Range }

// Spec describes a workload.
type Spec struct {
	Name string `toml:"name"`
	// Seed makes generation deterministic.
	Seed int64 `toml:"seed"`
	// Keys is the size of the key space [0, Keys).
	Keys int `toml:"keys"`
	// Ops is the number of operations to generate.
	Ops int `toml:"ops"`
	Mix Mix `toml:"mix"`
	// RangeWidth is the width of the key span covered by a range scan.
	RangeWidth int `toml:"range_width"`
}

// Default returns a balanced read/write workload.
func Default() Spec {
	return Spec{
		Name:       "default",
		Seed:       1,
		Keys:       100000,
		Ops:        1000000,
		Mix:        Mix{Set: 40, Get: 40, Delete: 15, Range: 5},
		RangeWidth: 100,
	}
}

// Validate reports whether the spec can be generated.
func (s Spec) Validate() error {
	switch {
	case s.Keys <= 0:
		return errors.Errorf("workload %q: keys must be positive, got %d", s.Name, s.Keys)
	case s.Ops < 0:
		return errors.Errorf("workload %q: ops must not be negative, got %d", s.Name, s.Ops)
	case s.Mix.Set < 0 || s.Mix.Get < 0 || s.Mix.Delete < 0 || s.Mix.Range < 0:
		return errors.Errorf("workload %q: mix weights must not be negative: %+v", s.Name, s.Mix)
	case s.Mix.total() <= 0:
		return errors.Errorf("workload %q: mix weights sum to zero", s.Name)
	case s.Mix.Range > 0 && s.RangeWidth <= 0:
		return errors.Errorf("workload %q: range_width must be positive, got %d", s.Name, s.RangeWidth)
	}
	return nil
}

// Parse decodes a TOML workload description. Fields absent from data keep
// their Default values.
func Parse(data string) (Spec, error) {
	s, err := decode(data)
	if err != nil {
		return Spec{}, errors.Wrap(err, "decoding workload")
	}
	return s, nil
}

// Load reads a TOML workload description from path.
func Load(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, errors.Wrapf(err, "loading workload %s", path)
	}
	s, err := decode(string(data))
	if err != nil {
		return Spec{}, errors.Wrapf(err, "loading workload %s", path)
	}
	return s, nil
}

// decode fills the top-level fields missing from data with their defaults.
// A [mix] table replaces the default mix entirely, so omitted weights are 0.
func decode(data string) (Spec, error) {
	s := Default()
	md, err := toml.Decode(data, &s)
	if err != nil {
		return Spec{}, err
	}
	if md.IsDefined("mix") {
		var explicit struct {
			Mix Mix `toml:"mix"`
		}
		if _, err := toml.Decode(data, &explicit); err != nil {
			return Spec{}, err
		}
		s.Mix = explicit.Mix
	}
	return s, check(md, s)
}

func check(md toml.MetaData, s Spec) error {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.Errorf("workload %q: unknown keys %v", s.Name, undecoded)
	}
	return s.Validate()
}

// OpKind is the kind of an Op.
type OpKind int

const (
	OpSet OpKind = iota
	OpGet
	OpDelete
	OpRange
	numOpKinds
)

func (k OpKind) String() string {
	switch k {
	case OpSet:
		return "set"
	case OpGet:
		return "get"
	case OpDelete:
		return "delete"
	case OpRange:
		return "range"
	default:
		return "unknown"
	}
}

// Op is a single generated operation. Stop is only meaningful for OpRange,
// which covers [Key, Stop).
type Op struct {
	Kind  OpKind
	Key   int
	Value int
	Stop  int
}

// Generate produces s.Ops operations. The same spec always yields the
// same operations.
func Generate(s Spec) []Op {
	rng := rand.New(rand.NewSource(s.Seed))
	total := s.Mix.total()
	ops := make([]Op, s.Ops)
	for i := range ops {
		op := Op{Key: rng.Intn(s.Keys), Value: i}
		switch w := rng.Intn(total); {
		case w < s.Mix.Set:
			op.Kind = OpSet
		case w < s.Mix.Set+s.Mix.Get:
			op.Kind = OpGet
		case w < s.Mix.Set+s.Mix.Get+s.Mix.Delete:
			op.Kind = OpDelete
		default:
			op.Kind = OpRange
			op.Stop = op.Key + s.RangeWidth
		}
		ops[i] = op
	}
	return ops
}
