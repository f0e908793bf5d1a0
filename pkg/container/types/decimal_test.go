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

package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecimal64Float(t *testing.T) {
	x, err := Decimal64FromFloat64(-123.45, 18, 2)
	require.NoError(t, err)
	require.Equal(t, Decimal64(-12345), x)
	require.InDelta(t, -123.45, Decimal64ToFloat64(x, 2), 1e-12)

	_, err = Decimal64FromFloat64(math.NaN(), 18, 2)
	require.Error(t, err)
	_, err = Decimal64FromFloat64(1e20, 18, 2)
	require.Error(t, err)
}

func TestDecimal128Float(t *testing.T) {
	for _, f := range []float64{0, 1.5, -1.5, 99999.999, -12345678.9012} {
		x, err := Decimal128FromFloat64(f, 38, 4)
		require.NoError(t, err)
		require.InDelta(t, f, Decimal128ToFloat64(x, 4), 1e-6)
	}

	// values wider than 64 bits survive the split into halves
	big := 1.5e25
	x, err := Decimal128FromFloat64(big, 38, 2)
	require.NoError(t, err)
	require.NotZero(t, x.B64_127)
	require.InDelta(t, big, Decimal128ToFloat64(x, 2), big*1e-12)
}

func TestDecimal64Widening(t *testing.T) {
	pos := Decimal64(12345).ToDecimal128()
	require.Equal(t, uint64(12345), pos.B0_63)
	require.Equal(t, uint64(0), pos.B64_127)

	neg := Decimal64(-1).ToDecimal128()
	require.Equal(t, ^uint64(0), neg.B0_63)
	require.Equal(t, ^uint64(0), neg.B64_127)
	require.True(t, neg.Sign())

	// widening must not change the numeric value at any scale
	wide := Decimal64(-98765).ToDecimal128()
	require.InDelta(t,
		Decimal64ToFloat64(Decimal64(-98765), 3),
		Decimal128ToFloat64(wide, 3), 1e-12)
}

func TestDecimal128Minus(t *testing.T) {
	x, err := Decimal128FromFloat64(42.5, 38, 1)
	require.NoError(t, err)
	y := x.Minus()
	require.True(t, y.Sign())
	require.InDelta(t, -42.5, Decimal128ToFloat64(y, 1), 1e-12)
	require.Equal(t, x, y.Minus())

	zero := Decimal128{}
	require.True(t, zero.IsZero())
	require.Equal(t, zero, zero.Minus())
}

func TestCompareDecimal(t *testing.T) {
	require.Equal(t, -1, CompareDecimal64(Decimal64(-5), Decimal64(3)))
	require.Equal(t, 1, CompareDecimal64(Decimal64(7), Decimal64(3)))
	require.Equal(t, 0, CompareDecimal64(Decimal64(3), Decimal64(3)))

	a, _ := Decimal128FromFloat64(-10, 38, 0)
	b, _ := Decimal128FromFloat64(10, 38, 0)
	require.Equal(t, -1, CompareDecimal128(a, b))
	require.Equal(t, 1, CompareDecimal128(b, a))
	require.Equal(t, 0, CompareDecimal128(a, a))
}

func TestTypeNullability(t *testing.T) {
	nt := NewNullable(T_decimal64, 18, 2)
	require.True(t, nt.IsNullable())
	require.False(t, nt.Nested().IsNullable())
	require.Equal(t, int32(2), nt.Nested().Scale)
	require.Equal(t, "nullable(DECIMAL64)", nt.String())
	require.True(t, nt.IsNumeric())
	require.True(t, nt.IsDecimal())
	require.False(t, New(T_varchar, 0, 0).IsNumeric())
}
