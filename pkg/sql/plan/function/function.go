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

// Package function holds the aggregate function registry the planner
// queries to build executors. The registry is populated once during
// process initialization and is read-only afterwards, so concurrent
// planning threads look it up without locking.
package function

import (
	"sync"

	"go.uber.org/zap"

	"github.com/matrixorigin/vstats/pkg/common/verr"
	"github.com/matrixorigin/vstats/pkg/container/types"
	"github.com/matrixorigin/vstats/pkg/logutil"
	"github.com/matrixorigin/vstats/pkg/sql/colexec/aggexec"
)

// Constructor builds an executor for the resolved primitive argument
// type. setNullForEmptyGroup mirrors the caller's result nullability:
// true flushes NULL for an undefined result, false flushes 0.
type Constructor func(argType types.Type, setNullForEmptyGroup bool) aggexec.AggFuncExec

// RegistryEntry is the immutable record of one canonical function name.
// The two constructor slots hold the nullable-argument and
// non-nullable-argument variants; either may be absent, in which case
// the other serves both shapes.
type RegistryEntry struct {
	name    string
	aliases []string

	nullableCtor    Constructor
	notNullableCtor Constructor

	// minExecutionVersion gates the function during rolling upgrades.
	// Zero means unrestricted.
	minExecutionVersion int32
}

func (e *RegistryEntry) Name() string {
	return e.name
}

func (e *RegistryEntry) Aliases() []string {
	return e.aliases
}

func (e *RegistryEntry) MinExecutionVersion() int32 {
	return e.minExecutionVersion
}

// Registry maps canonical names and aliases to constructor entries.
type Registry struct {
	entries map[string]*RegistryEntry
	aliases map[string]string
	frozen  bool
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
		aliases: make(map[string]string),
	}
}

func (r *Registry) checkMutable(op string) {
	if r.frozen {
		panic(verr.NewInvalidState("%s on a frozen function registry", op))
	}
}

// RegisterFunction adds a constructor under name. Registering the same
// name twice extends the entry with the other argument-nullability
// variant instead of erroring.
func (r *Registry) RegisterFunction(name string, ctor Constructor, nullableVariant bool) {
	r.checkMutable("RegisterFunction")
	entry, ok := r.entries[name]
	if !ok {
		entry = &RegistryEntry{name: name}
		r.entries[name] = entry
	}
	if nullableVariant {
		entry.nullableCtor = ctor
	} else {
		entry.notNullableCtor = ctor
	}
}

// RegisterFunctionBoth registers ctor as both the nullable and the
// non-nullable argument variant of name.
func (r *Registry) RegisterFunctionBoth(name string, ctor Constructor) {
	r.RegisterFunction(name, ctor, false)
	r.RegisterFunction(name, ctor, true)
}

// RegisterAlias makes alias resolve to canonical. Idempotent.
func (r *Registry) RegisterAlias(canonical, alias string) {
	r.checkMutable("RegisterAlias")
	entry, ok := r.entries[canonical]
	if !ok {
		panic(verr.NewInvalidState("alias %s registered before canonical %s", alias, canonical))
	}
	if resolved, ok := r.aliases[alias]; ok {
		if resolved != canonical {
			panic(verr.NewInvalidState("alias %s already resolves to %s", alias, resolved))
		}
		return
	}
	r.aliases[alias] = canonical
	entry.aliases = append(entry.aliases, alias)
}

// RestrictCompatibility marks name as unusable below minVersion. During
// a rolling upgrade old and new workers coexist; letting a function with
// new semantics or wire layout run unconditionally would let nodes
// interpret partial states incompatibly. The gate fails closed.
func (r *Registry) RestrictCompatibility(name string, minVersion int32) {
	r.checkMutable("RestrictCompatibility")
	entry, ok := r.entries[name]
	if !ok {
		panic(verr.NewInvalidState("compatibility restriction on unregistered function %s", name))
	}
	entry.minExecutionVersion = minVersion
}

// Freeze ends the initialization phase. Lookups after Freeze need no
// synchronization.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Resolve maps a name or alias to its registry entry.
func (r *Registry) Resolve(name string) (*RegistryEntry, error) {
	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	entry, ok := r.entries[name]
	if !ok {
		return nil, verr.NewUnknownFunction(name)
	}
	return entry, nil
}

// Create builds the executor for one aggregate expression. It is called
// once per expression at plan time, never per row, and mutates nothing.
func (r *Registry) Create(
	name string, argType types.Type,
	resultIsNullable bool, executionVersion int32) (aggexec.AggFuncExec, error) {
	entry, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}

	nested := argType.Nested()
	if !nested.IsNumeric() {
		return nil, verr.NewUnsupportedType(entry.name, nested)
	}

	if executionVersion < entry.minExecutionVersion {
		logutil.Warn("aggregate function rejected by the compatibility gate",
			zap.String("function", entry.name),
			zap.Int32("required", entry.minExecutionVersion),
			zap.Int32("current", executionVersion))
		return nil, verr.NewVersionRestricted(entry.name, entry.minExecutionVersion, executionVersion)
	}

	ctor := entry.notNullableCtor
	if argType.IsNullable() && entry.nullableCtor != nil {
		ctor = entry.nullableCtor
	}
	if ctor == nil {
		ctor = entry.nullableCtor
	}
	if ctor == nil {
		return nil, verr.NewInternalError("function %s has no registered constructor", entry.name)
	}
	return ctor(nested, resultIsNullable), nil
}

var (
	registryOnce   sync.Once
	globalRegistry *Registry
)

// InitRegistry builds the process-wide registry. The first caller wins;
// later calls return the same frozen registry.
func InitRegistry() *Registry {
	registryOnce.Do(func() {
		r := NewRegistry()
		registerVarianceFunctionsCompat(r)
		registerVarianceFunctions(r)
		r.Freeze()
		for _, entry := range r.entries {
			logutil.Info("registered aggregate function",
				zap.String("function", entry.name),
				zap.Strings("aliases", entry.aliases),
				zap.Int32("min-execution-version", entry.minExecutionVersion))
		}
		globalRegistry = r
	})
	return globalRegistry
}

// GetRegistry returns the process-wide registry, initializing it on
// first use.
func GetRegistry() *Registry {
	return InitRegistry()
}
