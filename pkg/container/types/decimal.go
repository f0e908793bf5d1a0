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

	"github.com/matrixorigin/vstats/pkg/common/verr"
)

// Decimal64 is a fixed-point value scaled by the owning column's scale.
// Decimal128 is its widened form, a 128-bit two's-complement integer kept
// as two 64-bit halves. Narrow decimals are always widened to Decimal128
// before any arithmetic that could overflow.
type Decimal64 int64

type Decimal128 struct {
	B0_63   uint64
	B64_127 uint64
}

func (x Decimal64) Minus() Decimal64 {
	return -x
}

func (x Decimal128) Minus() Decimal128 {
	lo := ^x.B0_63 + 1
	hi := ^x.B64_127
	if lo == 0 {
		hi++
	}
	return Decimal128{B0_63: lo, B64_127: hi}
}

func (x Decimal128) Sign() bool {
	return x.B64_127>>63 != 0
}

func (x Decimal128) IsZero() bool {
	return x.B0_63 == 0 && x.B64_127 == 0
}

// ToDecimal128 sign-extends a Decimal64. The scale is unchanged.
func (x Decimal64) ToDecimal128() Decimal128 {
	d := Decimal128{B0_63: uint64(x)}
	if x < 0 {
		d.B64_127 = ^uint64(0)
	}
	return d
}

func CompareDecimal64(x, y Decimal64) int {
	if x < y {
		return -1
	}
	if x > y {
		return 1
	}
	return 0
}

func CompareDecimal128(x, y Decimal128) int {
	sx, sy := x.Sign(), y.Sign()
	if sx != sy {
		if sx {
			return -1
		}
		return 1
	}
	if x.B64_127 != y.B64_127 {
		if x.B64_127 < y.B64_127 {
			return -1
		}
		return 1
	}
	if x.B0_63 != y.B0_63 {
		if x.B0_63 < y.B0_63 {
			return -1
		}
		return 1
	}
	return 0
}

const two64 = 18446744073709551616.0 // 2^64 as float64

// Decimal64ToFloat64 converts x at the given scale to a float64.
func Decimal64ToFloat64(x Decimal64, scale int32) float64 {
	return float64(x) / math.Pow10(int(scale))
}

// Decimal128ToFloat64 converts x at the given scale to a float64.
// Precision past the 53-bit mantissa is lost, which is acceptable for the
// double-based accumulation the callers perform.
func Decimal128ToFloat64(x Decimal128, scale int32) float64 {
	sign := 1.0
	if x.Sign() {
		sign = -1.0
		x = x.Minus()
	}
	f := float64(x.B64_127)*two64 + float64(x.B0_63)
	return sign * f / math.Pow10(int(scale))
}

// Decimal64FromFloat64 converts f to a Decimal64 with the given width and
// scale, rounding to the nearest representable value.
func Decimal64FromFloat64(f float64, width, scale int32) (Decimal64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, verr.NewInvalidInput("cannot convert %v to decimal", f)
	}
	v := math.RoundToEven(f * math.Pow10(int(scale)))
	if math.Abs(v) >= math.Pow10(int(width)) || v > math.MaxInt64 || v < math.MinInt64 {
		return 0, verr.NewInvalidInput("decimal64 value %v out of range for DECIMAL(%d, %d)", f, width, scale)
	}
	return Decimal64(v), nil
}

// Decimal128FromFloat64 converts f to a Decimal128 with the given width
// and scale, rounding to the nearest representable value.
func Decimal128FromFloat64(f float64, width, scale int32) (Decimal128, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Decimal128{}, verr.NewInvalidInput("cannot convert %v to decimal", f)
	}
	v := math.RoundToEven(f * math.Pow10(int(scale)))
	if math.Abs(v) >= math.Pow10(int(width)) || math.Abs(v) >= math.Ldexp(1, 127) {
		return Decimal128{}, verr.NewInvalidInput("decimal128 value %v out of range for DECIMAL(%d, %d)", f, width, scale)
	}
	neg := math.Signbit(v)
	v = math.Abs(v)
	hi := math.Floor(v / two64)
	lo := v - hi*two64
	d := Decimal128{B0_63: uint64(lo), B64_127: uint64(hi)}
	if neg {
		d = d.Minus()
	}
	return d, nil
}
