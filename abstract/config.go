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

import "go.uber.org/zap"

var nopLogger = zap.NewNop()

// Config holds the optional settings of a Map.
type Config struct {
	// Logger receives debug events for structural repairs performed by the
	// balancer and errors from invariant checks. Defaults to a no-op logger.
	Logger *zap.Logger

	// CheckInvariants makes every mutation validate the whole tree
	// afterwards and panic on a violation. It turns each operation into
	// O(n) and is meant for tests.
	CheckInvariants bool
}

// Option configures a Map.
type Option func(*Config)

// WithLogger sets the logger used by the map and its balancer.
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithInvariantChecks enables validation after every mutation.
func WithInvariantChecks() Option {
	return func(c *Config) { c.CheckInvariants = true }
}

func makeConfig(opts []Option) Config {
	var c Config
	for _, o := range opts {
		o(&c)
	}
	if c.Logger == nil {
		c.Logger = nopLogger
	}
	return c
}
