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

package aggexec

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/vstats/pkg/common/verr"
	"github.com/matrixorigin/vstats/pkg/container/types"
)

func TestRunPartials(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	values := make([]float64, 4096)
	for i := range values {
		values[i] = rng.Float64() * 1e6
	}

	sequential := makeExec(t, types.T_float64, DivisorSample, TransformNone)
	fillFloats(t, sequential, values...)
	expected := flushValue(t, sequential)

	const parts = 16
	chunk := len(values) / parts
	combined, err := RunPartials(4, parts,
		func() (AggFuncExec, error) {
			return MakeVarianceAgg(types.T_float64.ToType(), DivisorSample, TransformNone, true), nil
		},
		func(exec AggFuncExec, part int) error {
			lo := part * chunk
			hi := lo + chunk
			if part == parts-1 {
				hi = len(values)
			}
			return exec.BatchFill(values[lo:hi], nil)
		})
	require.NoError(t, err)
	require.InDelta(t, expected, flushValue(t, combined), math.Abs(expected)*1e-9)
}

func TestRunPartialsPropagatesErrors(t *testing.T) {
	_, err := RunPartials(2, 4,
		func() (AggFuncExec, error) {
			return MakeVarianceAgg(types.T_float64.ToType(), DivisorPopulation, TransformNone, true), nil
		},
		func(exec AggFuncExec, part int) error {
			if part == 2 {
				return verr.NewInvalidInput("broken part")
			}
			return exec.Fill(float64(part))
		})
	require.Error(t, err)
	require.True(t, verr.IsInvalidInput(err))

	_, err = RunPartials(2, 0, nil, nil)
	require.True(t, verr.IsInvalidInput(err))
}
