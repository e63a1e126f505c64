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

import "github.com/pkg/errors"

// Error classes returned by trees and maps. Returned errors wrap one of
// these with context; test for a class with errors.Is or the helpers below.
var (
	// ErrNotFound is returned when a key is absent from a map.
	ErrNotFound = errors.New("key not found")

	// ErrInvalidPosition is returned for a nil position, a position
	// produced by a different tree, or a position whose node has been
	// deleted.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrStructuralViolation is returned when a positional primitive is
	// misused: a second root, an occupied child slot, deleting a node
	// with two children, attaching below a non-leaf and the like.
	ErrStructuralViolation = errors.New("structural violation")

	// ErrInvariantViolated is returned by Validate.
	ErrInvariantViolated = errors.New("invariant violated")
)

// IsNotFound returns true if err is of the ErrNotFound class.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsInvalidPosition returns true if err is of the ErrInvalidPosition class.
func IsInvalidPosition(err error) bool { return errors.Is(err, ErrInvalidPosition) }

// IsStructuralViolation returns true if err is of the
// ErrStructuralViolation class.
func IsStructuralViolation(err error) bool { return errors.Is(err, ErrStructuralViolation) }

// IsInvariantViolated returns true if err is of the ErrInvariantViolated
// class.
func IsInvariantViolated(err error) bool { return errors.Is(err, ErrInvariantViolated) }
