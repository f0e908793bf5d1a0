// Copyright 2025 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package aggexec implements the variance / standard-deviation aggregate
// executors. An executor owns the running state of one group on one
// worker; cross-worker combination happens only through Merge on the
// serialized state, never through shared memory.
package aggexec

import (
	"github.com/matrixorigin/vstats/pkg/container/nulls"
	"github.com/matrixorigin/vstats/pkg/container/types"
)

// AggFuncExec is the handle the execution operator drives per group.
//
// Fill and Merge never block; Flush is pure and may be called more than
// once. Calling Fill or Merge after Flush is not rejected, but the result
// already returned will not reflect later updates.
type AggFuncExec interface {
	// TypesInfo returns the argument type and the result type.
	TypesInfo() (types.Type, types.Type)

	// Fill adds one value to the aggregation. A nil value is a NULL row
	// and is skipped entirely.
	Fill(value any) error

	// BatchFill adds a column of values, skipping the rows marked in nsp.
	BatchFill(values any, nsp *nulls.Nulls) error

	// Merge combines a peer's serialized partial state into this one.
	Merge(peer []byte) error

	// MergeExec combines another in-process executor into this one.
	MergeExec(peer AggFuncExec) error

	// Flush returns the aggregation result and whether it is NULL.
	Flush() (float64, bool, error)

	// Marshal returns the fixed-size partial state for exchange.
	Marshal() ([]byte, error)

	// Reset returns the executor to its initial empty state.
	Reset()
}

// DivisorPolicy selects the variance divisor. It is resolved when the
// executor is built, not per row.
type DivisorPolicy uint8

const (
	// DivisorPopulation divides by count; undefined only for empty groups.
	DivisorPopulation DivisorPolicy = iota
	// DivisorSample divides by count-1; undefined for fewer than two rows.
	DivisorSample
)

// TransformPolicy selects the final transform applied to the variance.
type TransformPolicy uint8

const (
	TransformNone TransformPolicy = iota
	// TransformSquareRoot turns a variance into a standard deviation.
	TransformSquareRoot
)

// VarianceReturnType is the result type of every function in the
// variance family. All input domains accumulate in float64 and the final
// scalar is a float64.
func VarianceReturnType(_ []types.Type) types.Type {
	return types.New(types.T_float64, 0, 0)
}
