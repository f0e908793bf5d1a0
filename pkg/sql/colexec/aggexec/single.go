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

package aggexec

import (
	"fmt"

	"github.com/matrixorigin/vstats/pkg/common/verr"
	"github.com/matrixorigin/vstats/pkg/container/nulls"
	"github.com/matrixorigin/vstats/pkg/container/types"
)

// stateHolder lets two executors of the variance family merge in process
// without going through the wire encoding.
type stateHolder interface {
	getState() *varianceState
}

// singleAggFuncExec is the variance-family executor monomorphized over
// one plain numeric argument domain. The policies are fixed at
// construction so the hot Fill path carries no per-row branching on the
// function variant.
type singleAggFuncExec[from types.Numeric] struct {
	argType types.Type
	retType types.Type

	div   DivisorPolicy
	trans TransformPolicy
	// setNullForEmptyGroup distinguishes the nullable-result executor
	// from the one that flushes 0 for an undefined result.
	setNullForEmptyGroup bool

	state varianceState
}

func (exec *singleAggFuncExec[from]) TypesInfo() (types.Type, types.Type) {
	return exec.argType, exec.retType
}

func (exec *singleAggFuncExec[from]) Fill(value any) error {
	if value == nil {
		return nil
	}
	v, ok := value.(from)
	if !ok {
		return verr.NewInvalidInput(
			"aggregate over %s cannot fill %T", exec.argType, value)
	}
	exec.state.fill(float64(v))
	return nil
}

func (exec *singleAggFuncExec[from]) BatchFill(values any, nsp *nulls.Nulls) error {
	vs, ok := values.([]from)
	if !ok {
		return verr.NewInvalidInput(
			"aggregate over %s cannot fill %T", exec.argType, values)
	}
	if !nulls.Any(nsp) {
		for i := range vs {
			exec.state.fill(float64(vs[i]))
		}
		return nil
	}
	for i := range vs {
		if nulls.Contains(nsp, uint64(i)) {
			continue
		}
		exec.state.fill(float64(vs[i]))
	}
	return nil
}

func (exec *singleAggFuncExec[from]) Merge(peer []byte) error {
	o, err := decodeVarianceState(peer)
	if err != nil {
		return err
	}
	exec.state.merge(&o)
	return nil
}

func (exec *singleAggFuncExec[from]) MergeExec(peer AggFuncExec) error {
	return mergeStates(exec, peer)
}

func (exec *singleAggFuncExec[from]) Flush() (float64, bool, error) {
	return flushState(&exec.state, exec.div, exec.trans, exec.setNullForEmptyGroup)
}

func (exec *singleAggFuncExec[from]) Marshal() ([]byte, error) {
	return exec.state.encode(nil), nil
}

func (exec *singleAggFuncExec[from]) Reset() {
	exec.state.reset()
}

func (exec *singleAggFuncExec[from]) getState() *varianceState {
	return &exec.state
}

// singleAggFuncExecDecimal is the executor for decimal arguments. Values
// are widened to Decimal128 and converted to float64 at the argument's
// declared scale before accumulation, so a narrow decimal cannot
// overflow on the way in.
type singleAggFuncExecDecimal[from types.Decimals] struct {
	argType types.Type
	retType types.Type

	div                  DivisorPolicy
	trans                TransformPolicy
	setNullForEmptyGroup bool

	argScale int32
	widen    func(from, int32) float64

	state varianceState
}

func widenDecimal64(v types.Decimal64, scale int32) float64 {
	return types.Decimal128ToFloat64(v.ToDecimal128(), scale)
}

func widenDecimal128(v types.Decimal128, scale int32) float64 {
	return types.Decimal128ToFloat64(v, scale)
}

func (exec *singleAggFuncExecDecimal[from]) TypesInfo() (types.Type, types.Type) {
	return exec.argType, exec.retType
}

func (exec *singleAggFuncExecDecimal[from]) Fill(value any) error {
	if value == nil {
		return nil
	}
	v, ok := value.(from)
	if !ok {
		return verr.NewInvalidInput(
			"aggregate over %s cannot fill %T", exec.argType, value)
	}
	exec.state.fill(exec.widen(v, exec.argScale))
	return nil
}

func (exec *singleAggFuncExecDecimal[from]) BatchFill(values any, nsp *nulls.Nulls) error {
	vs, ok := values.([]from)
	if !ok {
		return verr.NewInvalidInput(
			"aggregate over %s cannot fill %T", exec.argType, values)
	}
	for i := range vs {
		if nulls.Contains(nsp, uint64(i)) {
			continue
		}
		exec.state.fill(exec.widen(vs[i], exec.argScale))
	}
	return nil
}

func (exec *singleAggFuncExecDecimal[from]) Merge(peer []byte) error {
	o, err := decodeVarianceState(peer)
	if err != nil {
		return err
	}
	exec.state.merge(&o)
	return nil
}

func (exec *singleAggFuncExecDecimal[from]) MergeExec(peer AggFuncExec) error {
	return mergeStates(exec, peer)
}

func (exec *singleAggFuncExecDecimal[from]) Flush() (float64, bool, error) {
	return flushState(&exec.state, exec.div, exec.trans, exec.setNullForEmptyGroup)
}

func (exec *singleAggFuncExecDecimal[from]) Marshal() ([]byte, error) {
	return exec.state.encode(nil), nil
}

func (exec *singleAggFuncExecDecimal[from]) Reset() {
	exec.state.reset()
}

func (exec *singleAggFuncExecDecimal[from]) getState() *varianceState {
	return &exec.state
}

func mergeStates(target stateHolder, peer AggFuncExec) error {
	h, ok := peer.(stateHolder)
	if !ok {
		return verr.NewInvalidInput("cannot merge %T into a variance executor", peer)
	}
	target.getState().merge(h.getState())
	return nil
}

func flushState(
	s *varianceState,
	div DivisorPolicy, trans TransformPolicy,
	setNullForEmptyGroup bool) (float64, bool, error) {
	v, ok := s.result(div, trans)
	if !ok {
		if setNullForEmptyGroup {
			return 0, true, nil
		}
		return 0, false, nil
	}
	return v, false, nil
}

// MakeVarianceAgg builds the variance-family executor specialized for
// argType's primitive (non-nullable) form. The caller resolves function
// name, version gating and nullability before reaching here; an oid
// outside the closed numeric set is a caller bug.
func MakeVarianceAgg(
	argType types.Type,
	div DivisorPolicy, trans TransformPolicy,
	setNullForEmptyGroup bool) AggFuncExec {
	arg := argType.Nested()
	ret := VarianceReturnType([]types.Type{arg})

	switch arg.Oid {
	case types.T_int8:
		return newSingleVarianceExec[int8](arg, ret, div, trans, setNullForEmptyGroup)
	case types.T_int16:
		return newSingleVarianceExec[int16](arg, ret, div, trans, setNullForEmptyGroup)
	case types.T_int32:
		return newSingleVarianceExec[int32](arg, ret, div, trans, setNullForEmptyGroup)
	case types.T_int64:
		return newSingleVarianceExec[int64](arg, ret, div, trans, setNullForEmptyGroup)
	case types.T_uint8:
		return newSingleVarianceExec[uint8](arg, ret, div, trans, setNullForEmptyGroup)
	case types.T_uint16:
		return newSingleVarianceExec[uint16](arg, ret, div, trans, setNullForEmptyGroup)
	case types.T_uint32:
		return newSingleVarianceExec[uint32](arg, ret, div, trans, setNullForEmptyGroup)
	case types.T_uint64:
		return newSingleVarianceExec[uint64](arg, ret, div, trans, setNullForEmptyGroup)
	case types.T_float32:
		return newSingleVarianceExec[float32](arg, ret, div, trans, setNullForEmptyGroup)
	case types.T_float64:
		return newSingleVarianceExec[float64](arg, ret, div, trans, setNullForEmptyGroup)
	case types.T_decimal64:
		return &singleAggFuncExecDecimal[types.Decimal64]{
			argType: arg, retType: ret,
			div: div, trans: trans, setNullForEmptyGroup: setNullForEmptyGroup,
			argScale: arg.Scale, widen: widenDecimal64,
		}
	case types.T_decimal128:
		return &singleAggFuncExecDecimal[types.Decimal128]{
			argType: arg, retType: ret,
			div: div, trans: trans, setNullForEmptyGroup: setNullForEmptyGroup,
			argScale: arg.Scale, widen: widenDecimal128,
		}
	}
	panic(fmt.Sprintf("unsupported argument type %s for the variance family", arg))
}

func newSingleVarianceExec[from types.Numeric](
	arg, ret types.Type,
	div DivisorPolicy, trans TransformPolicy,
	setNullForEmptyGroup bool) AggFuncExec {
	return &singleAggFuncExec[from]{
		argType: arg, retType: ret,
		div: div, trans: trans,
		setNullForEmptyGroup: setNullForEmptyGroup,
	}
}
