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

import "fmt"

// T is the closed enumeration of column types known to the engine.
type T uint8

const (
	T_any T = iota

	T_bool

	T_int8
	T_int16
	T_int32
	T_int64
	T_uint8
	T_uint16
	T_uint32
	T_uint64

	T_float32
	T_float64

	T_decimal64
	T_decimal128

	T_date
	T_datetime
	T_timestamp

	T_char
	T_varchar
	T_json
)

// Type describes a column type as seen by the planner. A nullable column
// carries the same Oid as its nested type with IsNullable set; Nested
// unwraps it.
type Type struct {
	Oid   T
	Width int32
	Scale int32

	nullable bool
}

// New builds a non-nullable Type for the given oid.
func New(oid T, width, scale int32) Type {
	return Type{Oid: oid, Width: width, Scale: scale}
}

// NewNullable builds a nullable Type for the given oid.
func NewNullable(oid T, width, scale int32) Type {
	return Type{Oid: oid, Width: width, Scale: scale, nullable: true}
}

// ToType builds the default Type of an oid. Decimal oids get their
// maximum width and a zero scale; callers holding a real column set the
// scale themselves.
func (t T) ToType() Type {
	switch t {
	case T_decimal64:
		return New(t, 18, 0)
	case T_decimal128:
		return New(t, 38, 0)
	default:
		return New(t, 0, 0)
	}
}

func (t Type) IsNullable() bool {
	return t.nullable
}

// Nested returns the non-nullable type wrapped by a nullable one. For a
// non-nullable type it returns the type itself.
func (t Type) Nested() Type {
	t.nullable = false
	return t
}

func (t Type) IsDecimal() bool {
	return t.Oid == T_decimal64 || t.Oid == T_decimal128
}

func (t Type) IsNumeric() bool {
	switch t.Oid {
	case T_int8, T_int16, T_int32, T_int64,
		T_uint8, T_uint16, T_uint32, T_uint64,
		T_float32, T_float64,
		T_decimal64, T_decimal128:
		return true
	}
	return false
}

func (t Type) String() string {
	if t.nullable {
		return "nullable(" + t.Oid.String() + ")"
	}
	return t.Oid.String()
}

func (t T) String() string {
	switch t {
	case T_any:
		return "ANY"
	case T_bool:
		return "BOOL"
	case T_int8:
		return "TINYINT"
	case T_int16:
		return "SMALLINT"
	case T_int32:
		return "INT"
	case T_int64:
		return "BIGINT"
	case T_uint8:
		return "TINYINT UNSIGNED"
	case T_uint16:
		return "SMALLINT UNSIGNED"
	case T_uint32:
		return "INT UNSIGNED"
	case T_uint64:
		return "BIGINT UNSIGNED"
	case T_float32:
		return "FLOAT"
	case T_float64:
		return "DOUBLE"
	case T_decimal64:
		return "DECIMAL64"
	case T_decimal128:
		return "DECIMAL128"
	case T_date:
		return "DATE"
	case T_datetime:
		return "DATETIME"
	case T_timestamp:
		return "TIMESTAMP"
	case T_char:
		return "CHAR"
	case T_varchar:
		return "VARCHAR"
	case T_json:
		return "JSON"
	}
	return fmt.Sprintf("unexpected type %d", t)
}

// Ints, UInts and Floats are the generic constraints over the plain
// numeric domains. Numeric covers everything the accumulator converts
// directly to float64; decimals go through their own widening path.
type Ints interface {
	int8 | int16 | int32 | int64
}

type UInts interface {
	uint8 | uint16 | uint32 | uint64
}

type Floats interface {
	float32 | float64
}

type Numeric interface {
	Ints | UInts | Floats
}

type Decimals interface {
	Decimal64 | Decimal128
}

// FixedSized covers every fixed-width value a columnar cell can hold.
type FixedSized interface {
	Numeric | Decimals | bool
}
