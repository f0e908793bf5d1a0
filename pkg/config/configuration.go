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
	"github.com/BurntSushi/toml"

	"github.com/matrixorigin/vstats/pkg/common/verr"
	"github.com/matrixorigin/vstats/pkg/logutil"
)

// Parameters is the engine configuration loaded at process bootstrap.
type Parameters struct {
	// Version is the build version string, filled by the hosting process.
	Version string `toml:"version"`

	// ExecutionVersion is the execution-protocol version this node runs.
	// The cluster's version service negotiates it during rolling upgrades;
	// the aggregate factory uses it to gate functions whose semantics or
	// wire layout changed between releases.
	ExecutionVersion int32 `toml:"execution-version"`

	Log logutil.LogConfig `toml:"log"`
}

// SetDefaultValues fills the zero fields with their defaults.
func (p *Parameters) SetDefaultValues() {
	if p.ExecutionVersion == 0 {
		p.ExecutionVersion = 1
	}
	if p.Log.Level == "" {
		p.Log.Level = "info"
	}
	if p.Log.Format == "" {
		p.Log.Format = "console"
	}
	if p.Log.MaxSize == 0 {
		p.Log.MaxSize = 512
	}
}

// LoadConfigFile reads a TOML configuration file and applies defaults.
func LoadConfigFile(path string) (*Parameters, error) {
	p := &Parameters{}
	if _, err := toml.DecodeFile(path, p); err != nil {
		return nil, verr.NewBadConfig("parse %s: %s", path, err)
	}
	p.SetDefaultValues()
	if p.ExecutionVersion < 1 {
		return nil, verr.NewBadConfig("execution-version must be >= 1, got %d", p.ExecutionVersion)
	}
	return p, nil
}
