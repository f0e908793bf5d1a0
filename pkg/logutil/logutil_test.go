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

package logutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSetup(t *testing.T) {
	old := GetGlobalLogger()
	defer globalLogger.Store(old)

	file := filepath.Join(t.TempDir(), "vstats.log")
	Setup(&LogConfig{Level: "debug", Format: "json", Filename: file, MaxSize: 1})
	require.NotNil(t, GetGlobalLogger())

	Info("registered aggregate function", zap.String("function", "variance"))
	Debugf("execution version %d", 2)
	require.NoError(t, GetGlobalLogger().Sync())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Contains(t, string(data), "registered aggregate function")
	require.Contains(t, string(data), `"function":"variance"`)
}

func TestSetupBadLevelFallsBack(t *testing.T) {
	old := GetGlobalLogger()
	defer globalLogger.Store(old)

	Setup(&LogConfig{Level: "nonsense"})
	require.NotNil(t, GetGlobalLogger())
	Warn("still logging")
}
