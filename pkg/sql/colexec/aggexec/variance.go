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
	"encoding/binary"
	"math"

	"github.com/matrixorigin/vstats/pkg/common/verr"
)

// EncodedStateSize is the exact size of a serialized partial state:
// count (uint64) | mean (float64) | dev (float64), little-endian.
// Nodes exchanging states must run compatible execution versions; the
// function registry's compatibility gate enforces that before any state
// crosses the wire.
const EncodedStateSize = 24

// varianceState is the per-group accumulation state of the variance
// family, maintained with Welford's online algorithm. mean is
// meaningless while count is zero. dev is the running sum of squared
// deviation from the mean and stays non-negative up to rounding.
type varianceState struct {
	count uint64
	mean  float64
	dev   float64
}

// fill folds one value into the state. The delta-based update keeps the
// running mean bounded and avoids the catastrophic cancellation of the
// sum-of-squares formula.
func (s *varianceState) fill(x float64) {
	s.count++
	delta := x - s.mean
	s.mean += delta / float64(s.count)
	s.dev += delta * (x - s.mean)
}

// merge combines a peer's state into s. Commutative and associative up
// to float64 rounding, with the empty state as identity, so partial
// aggregation trees of any shape converge to the sequential result.
func (s *varianceState) merge(o *varianceState) {
	if o.count == 0 {
		return
	}
	if s.count == 0 {
		*s = *o
		return
	}
	delta := o.mean - s.mean
	total := s.count + o.count
	s.mean += delta * float64(o.count) / float64(total)
	s.dev += o.dev + delta*delta*float64(s.count)*float64(o.count)/float64(total)
	s.count = total
}

// result reads the final scalar under the given policies. ok is false
// when the result is undefined for the divisor policy. It never mutates
// the state.
func (s *varianceState) result(div DivisorPolicy, trans TransformPolicy) (v float64, ok bool) {
	switch div {
	case DivisorSample:
		if s.count < 2 {
			return 0, false
		}
		v = s.dev / float64(s.count-1)
	default:
		if s.count == 0 {
			return 0, false
		}
		v = s.dev / float64(s.count)
	}
	if v < 0 {
		// rounding in merge can push dev a hair below zero
		v = 0
	}
	if trans == TransformSquareRoot {
		v = math.Sqrt(v)
	}
	return v, true
}

func (s *varianceState) reset() {
	s.count, s.mean, s.dev = 0, 0, 0
}

// encode appends the fixed wire record to dst.
func (s *varianceState) encode(dst []byte) []byte {
	var buf [EncodedStateSize]byte
	binary.LittleEndian.PutUint64(buf[0:], s.count)
	binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(s.mean))
	binary.LittleEndian.PutUint64(buf[16:], math.Float64bits(s.dev))
	return append(dst, buf[:]...)
}

// decodeVarianceState rebuilds a state from its wire record. A record of
// the wrong length is malformed input and is rejected rather than
// misparsed.
func decodeVarianceState(data []byte) (varianceState, error) {
	if len(data) != EncodedStateSize {
		return varianceState{}, verr.NewInvalidInput(
			"variance state requires %d bytes, got %d", EncodedStateSize, len(data))
	}
	return varianceState{
		count: binary.LittleEndian.Uint64(data[0:]),
		mean:  math.Float64frombits(binary.LittleEndian.Uint64(data[8:])),
		dev:   math.Float64frombits(binary.LittleEndian.Uint64(data[16:])),
	}, nil
}
