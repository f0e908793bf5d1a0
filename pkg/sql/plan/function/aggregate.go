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

package function

import (
	"github.com/matrixorigin/vstats/pkg/common/verr"
	"github.com/matrixorigin/vstats/pkg/container/types"
	"github.com/matrixorigin/vstats/pkg/sql/colexec/aggexec"
)

// Execution-protocol versions. A function whose semantics or partial
// state layout changed in version N is restricted to >= N so that a
// mixed-version cluster never combines incompatible states.
const (
	ExecutionVersion1 int32 = 1
	// ExecutionVersion2 introduced the sample variants of the variance
	// family together with their wire layout.
	ExecutionVersion2 int32 = 2

	ExecutionVersionDefault = ExecutionVersion2
)

// RuntimeExecutionVersion is this node's negotiated execution version,
// set from configuration during bootstrap. CreateAggregate threads it
// into Create; tests stub it.
var RuntimeExecutionVersion = ExecutionVersionDefault

// Canonical names of the variance family.
const (
	AggNameVariance     = "variance"
	AggNameVarianceSamp = "variance_samp"
	AggNameStddev       = "stddev"
	AggNameStddevSamp   = "stddev_samp"
)

// AggregateDescriptor is the static identity of a variance-family
// function, resolved once at plan time.
type AggregateDescriptor struct {
	Name     string
	IsSample bool
	IsStddev bool
}

// AggregateName maps a policy combination to its canonical name.
func AggregateName(isSample, isStddev bool) string {
	switch {
	case isStddev && isSample:
		return AggNameStddevSamp
	case isStddev:
		return AggNameStddev
	case isSample:
		return AggNameVarianceSamp
	default:
		return AggNameVariance
	}
}

// DescribeAggregate resolves a name or alias to its descriptor.
func DescribeAggregate(name string) (AggregateDescriptor, error) {
	entry, err := GetRegistry().Resolve(name)
	if err != nil {
		return AggregateDescriptor{}, err
	}
	switch entry.name {
	case AggNameVariance:
		return AggregateDescriptor{Name: entry.name}, nil
	case AggNameVarianceSamp:
		return AggregateDescriptor{Name: entry.name, IsSample: true}, nil
	case AggNameStddev:
		return AggregateDescriptor{Name: entry.name, IsStddev: true}, nil
	case AggNameStddevSamp:
		return AggregateDescriptor{Name: entry.name, IsSample: true, IsStddev: true}, nil
	}
	return AggregateDescriptor{}, verr.NewInternalError("no descriptor for function %s", entry.name)
}

// Policies returns the policy pair bound to the described function.
func (d AggregateDescriptor) Policies() (aggexec.DivisorPolicy, aggexec.TransformPolicy) {
	div := aggexec.DivisorPopulation
	if d.IsSample {
		div = aggexec.DivisorSample
	}
	trans := aggexec.TransformNone
	if d.IsStddev {
		trans = aggexec.TransformSquareRoot
	}
	return div, trans
}

func makeVarianceCtor(div aggexec.DivisorPolicy, trans aggexec.TransformPolicy) Constructor {
	return func(argType types.Type, setNullForEmptyGroup bool) aggexec.AggFuncExec {
		return aggexec.MakeVarianceAgg(argType, div, trans, setNullForEmptyGroup)
	}
}

// registerVarianceFunctionsCompat is the older registration path: the
// population pair, available at any execution version. It predates the
// sample variants and stays alongside them so that plans built by older
// nodes keep resolving during a rolling upgrade.
func registerVarianceFunctionsCompat(r *Registry) {
	r.RegisterFunction(AggNameVariance,
		makeVarianceCtor(aggexec.DivisorPopulation, aggexec.TransformNone), false)
	r.RegisterAlias(AggNameVariance, "var_pop")
	r.RegisterAlias(AggNameVariance, "variance_pop")

	r.RegisterFunction(AggNameStddev,
		makeVarianceCtor(aggexec.DivisorPopulation, aggexec.TransformSquareRoot), false)
	r.RegisterAlias(AggNameStddev, "stddev_pop")
}

// registerVarianceFunctions is the current registration path: the sample
// pair with both argument variants, restricted to the execution version
// that introduced them.
func registerVarianceFunctions(r *Registry) {
	r.RegisterFunctionBoth(AggNameVarianceSamp,
		makeVarianceCtor(aggexec.DivisorSample, aggexec.TransformNone))
	r.RegisterAlias(AggNameVarianceSamp, "var_samp")
	r.RestrictCompatibility(AggNameVarianceSamp, ExecutionVersion2)

	r.RegisterFunctionBoth(AggNameStddevSamp,
		makeVarianceCtor(aggexec.DivisorSample, aggexec.TransformSquareRoot))
	r.RestrictCompatibility(AggNameStddevSamp, ExecutionVersion2)
}

// CreateAggregate is the planner-facing convenience wrapper around
// Create using this node's negotiated execution version.
func CreateAggregate(name string, argType types.Type, resultIsNullable bool) (aggexec.AggFuncExec, error) {
	return GetRegistry().Create(name, argType, resultIsNullable, RuntimeExecutionVersion)
}
