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

package verr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeType string

func (f fakeType) String() string { return string(f) }

func TestErrorCodes(t *testing.T) {
	cases := []struct {
		err  error
		code uint16
	}{
		{NewUnknownFunction("nope"), ErrUnknownFunction},
		{NewUnsupportedType("stddev", fakeType("VARCHAR")), ErrUnsupportedType},
		{NewVersionRestricted("variance_samp", 2, 1), ErrVersionRestricted},
		{NewInvalidInput("bad %s", "thing"), ErrInvalidInput},
		{NewInternalError("boom"), ErrInternal},
		{NewBadConfig("x"), ErrBadConfig},
		{NewInvalidState("y"), ErrInvalidState},
	}
	for _, c := range cases {
		require.True(t, IsErrCode(c.err, c.code), c.err.Error())
		var e *Error
		require.True(t, errors.As(c.err, &e))
		require.Equal(t, c.code, e.Code())
	}
}

func TestErrorMessages(t *testing.T) {
	err := NewUnsupportedType("stddev", fakeType("VARCHAR"))
	require.Equal(t, "aggregate function 'stddev' does not support type VARCHAR", err.Error())

	err = NewVersionRestricted("variance_samp", 2, 1)
	require.Equal(t,
		"aggregate function 'variance_samp' requires execution version >= 2, current is 1",
		err.Error())
}

func TestClassifiersRejectForeignErrors(t *testing.T) {
	plain := fmt.Errorf("plain")
	require.False(t, IsUnknownFunction(plain))
	require.False(t, IsUnsupportedType(plain))
	require.False(t, IsVersionRestricted(plain))
	require.False(t, IsInvalidInput(nil))

	// wrapped errors keep their code
	wrapped := fmt.Errorf("while planning: %w", NewUnknownFunction("f"))
	require.True(t, IsUnknownFunction(wrapped))
}
