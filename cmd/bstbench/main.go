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

// Command bstbench runs a synthetic workload against the tree variants
// and reference ordered maps and reports how each performed.
//
//	bstbench --config workload.toml --targets avl,redblack,btree
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ajwerner/bst"
	"github.com/ajwerner/bst/internal/workload"
)

type options struct {
	config     string
	targets    []string
	seed       int64
	keys       int
	ops        int
	rangeWidth int
	check      bool
	verbose    bool
	dev        bool
}

func main() {
	var o options
	flags := pflag.NewFlagSet("bstbench", pflag.ExitOnError)
	flags.StringVarP(&o.config, "config", "c", "", "Path to a TOML workload description.")
	flags.StringSliceVarP(&o.targets, "targets", "t", workload.TargetNames(),
		"Targets to run: "+strings.Join(workload.TargetNames(), ", ")+".")
	flags.Int64Var(&o.seed, "seed", 0, "Overrides the workload seed.")
	flags.IntVar(&o.keys, "keys", 0, "Overrides the size of the key space.")
	flags.IntVar(&o.ops, "ops", 0, "Overrides the number of operations.")
	flags.IntVar(&o.rangeWidth, "range-width", 0, "Overrides the width of range scans.")
	flags.BoolVar(&o.check, "check", false, "Validate tree invariants after every mutation (slow).")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "Log tree restructuring at debug level.")
	flags.BoolVar(&o.dev, "dev", false, "Use human readable development logging.")
	_ = flags.Parse(os.Args[1:])

	logger, err := newLogger(o)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger, flags, o); err != nil {
		logger.Error("bstbench failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func newLogger(o options) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if o.dev {
		cfg = zap.NewDevelopmentConfig()
	}
	level := zapcore.InfoLevel
	if o.verbose {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := cfg.Build()
	return logger, errors.Wrap(err, "building logger")
}

// loadSpec reads the workload and applies the flags that were set.
func loadSpec(flags *pflag.FlagSet, o options) (workload.Spec, error) {
	spec := workload.Default()
	if o.config != "" {
		var err error
		if spec, err = workload.Load(o.config); err != nil {
			return spec, err
		}
	}
	if flags.Changed("seed") {
		spec.Seed = o.seed
	}
	if flags.Changed("keys") {
		spec.Keys = o.keys
	}
	if flags.Changed("ops") {
		spec.Ops = o.ops
	}
	if flags.Changed("range-width") {
		spec.RangeWidth = o.rangeWidth
	}
	return spec, spec.Validate()
}

func run(logger *zap.Logger, flags *pflag.FlagSet, o options) error {
	spec, err := loadSpec(flags, o)
	if err != nil {
		return err
	}
	logger.Info("generating workload",
		zap.String("name", spec.Name),
		zap.Int64("seed", spec.Seed),
		zap.Int("keys", spec.Keys),
		zap.Int("ops", spec.Ops))
	ops := workload.Generate(spec)

	treeOpts := []bst.Option{bst.WithLogger(logger)}
	if o.check {
		treeOpts = append(treeOpts, bst.WithInvariantChecks())
	}
	var results []workload.Result
	for _, name := range o.targets {
		target, err := workload.NewTarget(name, treeOpts...)
		if err != nil {
			return err
		}
		res, err := workload.Run(target, ops)
		if err != nil {
			return err
		}
		logger.Info("finished target",
			zap.String("target", res.Target),
			zap.Duration("elapsed", res.Elapsed),
			zap.Int("len", res.Len))
		results = append(results, res)
	}
	report(os.Stdout, results)
	return crossCheck(results)
}

func report(w io.Writer, results []workload.Result) {
	fmt.Fprintf(w, "%-10s %12s %14s %12s %10s %12s\n",
		"target", "ops", "ops/sec", "elapsed", "len", "scanned")
	for _, r := range results {
		rate := float64(r.Ops()) / r.Elapsed.Seconds()
		fmt.Fprintf(w, "%-10s %12s %14s %12s %10s %12s\n",
			r.Target,
			humanize.Comma(int64(r.Ops())),
			humanize.Commaf(float64(int64(rate))),
			r.Elapsed.Round(time.Microsecond),
			humanize.Comma(int64(r.Len)),
			humanize.Comma(int64(r.Scanned)))
	}
}

// crossCheck verifies that every target ended in the same state.
func crossCheck(results []workload.Result) error {
	if len(results) < 2 {
		return nil
	}
	first := results[0]
	for _, r := range results[1:] {
		if r.Len != first.Len || r.Hits != first.Hits || r.Scanned != first.Scanned {
			return errors.Errorf("%s and %s disagree: len %d/%d hits %d/%d scanned %d/%d",
				first.Target, r.Target, first.Len, r.Len, first.Hits, r.Hits, first.Scanned, r.Scanned)
		}
	}
	return nil
}
