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

// Package nulls wraps the roaring bitmap library to record which rows of
// a column hold NULL. A nil *Nulls means the column has no null rows.
package nulls

import (
	"github.com/RoaringBitmap/roaring/roaring64"
)

type Nulls struct {
	Np *roaring64.Bitmap
}

func New() *Nulls {
	return &Nulls{Np: roaring64.NewBitmap()}
}

// Build makes a Nulls holding the given rows.
func Build(rows ...uint64) *Nulls {
	nsp := New()
	nsp.Np.AddMany(rows)
	return nsp
}

// Any reports whether any row is null.
func Any(nsp *Nulls) bool {
	return nsp != nil && nsp.Np != nil && !nsp.Np.IsEmpty()
}

// Contains reports whether row is null.
func Contains(nsp *Nulls, row uint64) bool {
	return nsp != nil && nsp.Np != nil && nsp.Np.Contains(row)
}

// Size returns the number of null rows.
func Size(nsp *Nulls) uint64 {
	if nsp == nil || nsp.Np == nil {
		return 0
	}
	return nsp.Np.GetCardinality()
}

func Add(nsp *Nulls, rows ...uint64) {
	if nsp.Np == nil {
		nsp.Np = roaring64.NewBitmap()
	}
	nsp.Np.AddMany(rows)
}

func Reset(nsp *Nulls) {
	if nsp != nil && nsp.Np != nil {
		nsp.Np.Clear()
	}
}
