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

package nulls

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNulls(t *testing.T) {
	require.False(t, Any(nil))
	require.False(t, Contains(nil, 0))
	require.Equal(t, uint64(0), Size(nil))

	nsp := Build(1, 3, 1<<40)
	require.True(t, Any(nsp))
	require.True(t, Contains(nsp, 1))
	require.True(t, Contains(nsp, 1<<40))
	require.False(t, Contains(nsp, 2))
	require.Equal(t, uint64(3), Size(nsp))

	Add(nsp, 2)
	require.True(t, Contains(nsp, 2))

	Reset(nsp)
	require.False(t, Any(nsp))
}
