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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/vstats/pkg/common/verr"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vstats.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
version = "v1.2.0"
execution-version = 2

[log]
level = "debug"
format = "json"
filename = "/tmp/vstats.log"
max-size = 128
`)
	p, err := LoadConfigFile(path)
	require.NoError(t, err)
	require.Equal(t, "v1.2.0", p.Version)
	require.Equal(t, int32(2), p.ExecutionVersion)
	require.Equal(t, "debug", p.Log.Level)
	require.Equal(t, "json", p.Log.Format)
	require.Equal(t, 128, p.Log.MaxSize)
}

func TestLoadConfigDefaults(t *testing.T) {
	p, err := LoadConfigFile(writeConfig(t, ""))
	require.NoError(t, err)
	require.Equal(t, int32(1), p.ExecutionVersion)
	require.Equal(t, "info", p.Log.Level)
	require.Equal(t, "console", p.Log.Format)
	require.Equal(t, 512, p.Log.MaxSize)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.True(t, verr.IsErrCode(err, verr.ErrBadConfig))

	_, err = LoadConfigFile(writeConfig(t, "execution-version = [1]"))
	require.True(t, verr.IsErrCode(err, verr.ErrBadConfig))

	_, err = LoadConfigFile(writeConfig(t, "execution-version = -3"))
	require.True(t, verr.IsErrCode(err, verr.ErrBadConfig))
}
