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
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/matrixorigin/vstats/pkg/common/verr"
)

// RunPartials runs the local-combine stage of a partial aggregation:
// parts independent executors are filled on a goroutine pool, then their
// serialized states are merged into the first one. Each executor is
// owned by exactly one task, so no synchronization happens inside the
// accumulators themselves.
func RunPartials(
	workers int, parts int,
	build func() (AggFuncExec, error),
	fill func(exec AggFuncExec, part int) error) (AggFuncExec, error) {
	if parts <= 0 {
		return nil, verr.NewInvalidInput("partial aggregation needs at least one part, got %d", parts)
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, verr.NewInternalError("create aggregation pool: %s", err)
	}
	defer pool.Release()

	execs := make([]AggFuncExec, parts)
	errs := make([]error, parts)

	var wg sync.WaitGroup
	for i := 0; i < parts; i++ {
		i := i
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			exec, err := build()
			if err != nil {
				errs[i] = err
				return
			}
			execs[i] = exec
			errs[i] = fill(exec, i)
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = verr.NewInternalError("submit aggregation task: %s", submitErr)
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	// combine through the wire encoding, the same path a cross-node
	// exchange takes
	target := execs[0]
	for _, exec := range execs[1:] {
		data, err := exec.Marshal()
		if err != nil {
			return nil, err
		}
		if err = target.Merge(data); err != nil {
			return nil, err
		}
	}
	return target, nil
}
