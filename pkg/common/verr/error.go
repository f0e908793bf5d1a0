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

// Package verr defines the tagged error codes used by the aggregation
// engine. Construction failures always carry one of these codes so that
// the planner can classify them without string matching; per-row
// operations never allocate errors on the hot path.
package verr

import (
	"errors"
	"fmt"
)

const (
	Ok uint16 = 0

	// Group 1: internal errors
	ErrInternal uint16 = 20101
	ErrNYI      uint16 = 20102

	// Group 2: invalid input
	ErrInvalidInput uint16 = 20301
	ErrBadConfig    uint16 = 20302
	ErrInvalidState uint16 = 20303

	// Group 3: function resolution
	ErrUnknownFunction   uint16 = 20601
	ErrUnsupportedType   uint16 = 20602
	ErrVersionRestricted uint16 = 20603
)

type errorItem struct {
	code   uint16
	format string
}

var errorItems = map[uint16]errorItem{
	ErrInternal:          {ErrInternal, "internal error: %s"},
	ErrNYI:               {ErrNYI, "%s is not yet implemented"},
	ErrInvalidInput:      {ErrInvalidInput, "invalid input: %s"},
	ErrBadConfig:         {ErrBadConfig, "invalid configuration: %s"},
	ErrInvalidState:      {ErrInvalidState, "invalid state: %s"},
	ErrUnknownFunction:   {ErrUnknownFunction, "unknown aggregate function '%s'"},
	ErrUnsupportedType:   {ErrUnsupportedType, "aggregate function '%s' does not support type %s"},
	ErrVersionRestricted: {ErrVersionRestricted, "aggregate function '%s' requires execution version >= %d, current is %d"},
}

// Error is the only error type produced by this module.
type Error struct {
	code    uint16
	message string
}

func (e *Error) Error() string {
	return e.message
}

// Code returns the error code tag of e.
func (e *Error) Code() uint16 {
	return e.code
}

func newError(code uint16, args ...any) *Error {
	item, ok := errorItems[code]
	if !ok {
		panic(fmt.Sprintf("missing error item for code %d", code))
	}
	return &Error{
		code:    code,
		message: fmt.Sprintf(item.format, args...),
	}
}

func NewInternalError(msg string, args ...any) *Error {
	return newError(ErrInternal, fmt.Sprintf(msg, args...))
}

func NewNYI(msg string, args ...any) *Error {
	return newError(ErrNYI, fmt.Sprintf(msg, args...))
}

func NewInvalidInput(msg string, args ...any) *Error {
	return newError(ErrInvalidInput, fmt.Sprintf(msg, args...))
}

func NewBadConfig(msg string, args ...any) *Error {
	return newError(ErrBadConfig, fmt.Sprintf(msg, args...))
}

func NewInvalidState(msg string, args ...any) *Error {
	return newError(ErrInvalidState, fmt.Sprintf(msg, args...))
}

func NewUnknownFunction(name string) *Error {
	return newError(ErrUnknownFunction, name)
}

func NewUnsupportedType(name string, typ fmt.Stringer) *Error {
	return newError(ErrUnsupportedType, name, typ.String())
}

func NewVersionRestricted(name string, minVersion, current int32) *Error {
	return newError(ErrVersionRestricted, name, minVersion, current)
}

// IsErrCode reports whether err is a *Error carrying the given code.
func IsErrCode(err error, code uint16) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.code == code
	}
	return false
}

func IsUnknownFunction(err error) bool   { return IsErrCode(err, ErrUnknownFunction) }
func IsUnsupportedType(err error) bool   { return IsErrCode(err, ErrUnsupportedType) }
func IsVersionRestricted(err error) bool { return IsErrCode(err, ErrVersionRestricted) }
func IsInvalidInput(err error) bool      { return IsErrCode(err, ErrInvalidInput) }
