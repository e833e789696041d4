// Copyright 2020 Google LLC
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

// Package arr implements a growable array of fixed-size byte records.
//
// Elements are addressed by index, never by pointer: the backing buffer moves whenever the array
// grows, so slot views returned by Get, Set and All are only valid until the next call that may add
// elements. Failures are reported with the End index or a nil slice instead of an error, and leave
// the array unchanged.
package arr

import (
	"bytes"
	"iter"

	"github.com/Goodwine/go-xmldoc/mem"
)

// End is the index returned when there is no such element or an operation failed.
const End = -1

// Array is a contiguous store of Len records of Size bytes each.
//
// The descriptor is owned by the caller and is usually embedded in a larger structure. It holds
// nothing until Init is called and nothing again after Free.
type Array struct {
	data []byte
	cap  int
	cnt  int
	size int
	mem  *mem.Allocator
}

// Init allocates room for capacity records of size bytes from m. It returns nil if either value is
// not positive or the allocation failed.
func (a *Array) Init(m *mem.Allocator, capacity, size int) *Array {
	if a == nil || m == nil || capacity <= 0 || size <= 0 {
		return nil
	}
	data := m.Alloc(capacity * size)
	if data == nil {
		return nil
	}
	*a = Array{data: data, cap: capacity, size: size, mem: m}
	return a
}

// Free releases the backing buffer and zeroes the descriptor.
func (a *Array) Free() {
	if a == nil {
		return
	}
	if a.data != nil {
		a.mem.Free(a.data, a.cap*a.size)
	}
	*a = Array{}
}

// Len returns the number of records in the array.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return a.cnt
}

// Cap returns the number of records the array can hold before growing.
func (a *Array) Cap() int {
	if a == nil {
		return 0
	}
	return a.cap
}

// Size returns the size of a record in bytes.
func (a *Array) Size() int {
	if a == nil {
		return 0
	}
	return a.size
}

// Allocator returns the allocator the array was initialised with.
func (a *Array) Allocator() *mem.Allocator {
	if a == nil {
		return nil
	}
	return a.mem
}

func (a *Array) ready() bool {
	return a != nil && a.data != nil
}

func (a *Array) slot(i int) []byte {
	return a.data[i*a.size : (i+1)*a.size : (i+1)*a.size]
}

// reserve doubles the capacity until n records fit. Nothing changes if the reallocation fails.
func (a *Array) reserve(n int) bool {
	if n <= a.cap {
		return true
	}
	capacity := a.cap
	for capacity < n {
		capacity *= 2
	}
	data := a.mem.Realloc(a.data, capacity*a.size, a.cap*a.size)
	if data == nil {
		return false
	}
	a.data = data
	a.cap = capacity
	return true
}

// Add appends a zeroed record and returns its index, doubling the capacity first when the array
// is full.
func (a *Array) Add() int {
	if !a.ready() || !a.reserve(a.cnt+1) {
		return End
	}
	i := a.cnt
	a.cnt++
	clear(a.slot(i))
	return i
}

// Get returns the record at index i, or nil if i is out of range.
func (a *Array) Get(i int) []byte {
	if !a.ready() || i < 0 || i >= a.cnt {
		return nil
	}
	return a.slot(i)
}

// Set overwrites the record at index i with value, which must be exactly Size bytes long.
func (a *Array) Set(i int, value []byte) []byte {
	dst := a.Get(i)
	if dst == nil || value == nil || len(value) != a.size {
		return nil
	}
	copy(dst, value)
	return dst
}

// Append adds value as a new record and returns its index.
func (a *Array) Append(value []byte) int {
	if !a.ready() || value == nil || len(value) != a.size {
		return End
	}
	i := a.Add()
	if i == End {
		return End
	}
	copy(a.slot(i), value)
	return i
}

// Index returns the index of the first record byte-equal to value.
func (a *Array) Index(value []byte) int {
	return a.IndexFunc(value, bytes.Equal)
}

// IndexFunc returns the index of the first record for which eq(record, value) is true. A nil eq
// matches nothing.
func (a *Array) IndexFunc(value []byte, eq func(a, b []byte) bool) int {
	if !a.ready() || value == nil || eq == nil {
		return End
	}
	for i := range a.cnt {
		if eq(a.slot(i), value) {
			return i
		}
	}
	return End
}

// All iterates over every record in index order.
func (a *Array) All() iter.Seq2[int, []byte] {
	return func(yield func(int, []byte) bool) {
		if !a.ready() {
			return
		}
		for i := range a.cnt {
			if !yield(i, a.slot(i)) {
				return
			}
		}
	}
}

func (a *Array) compatible(src *Array) bool {
	return a.ready() && src.ready() && a.size == src.size
}

// appendRecords copies records after the last one. The capacity must already be reserved.
func (a *Array) appendRecords(records [][]byte) {
	for _, r := range records {
		copy(a.slot(a.cnt), r)
		a.cnt++
	}
}

func (a *Array) records() [][]byte {
	rs := make([][]byte, 0, a.cnt)
	for i := range a.cnt {
		rs = append(rs, a.slot(i))
	}
	return rs
}

// unique returns the records of srcs, in order, that are not byte-equal to a record of a or to
// one returned before them.
func (a *Array) unique(srcs ...*Array) [][]byte {
	var rs [][]byte
	for _, src := range srcs {
	next:
		for i := range src.cnt {
			r := src.slot(i)
			if a.Index(r) != End {
				continue
			}
			for _, seen := range rs {
				if bytes.Equal(seen, r) {
					continue next
				}
			}
			rs = append(rs, r)
		}
	}
	return rs
}

func (a *Array) extend(rs [][]byte) *Array {
	if !a.reserve(a.cnt + len(rs)) {
		return nil
	}
	a.appendRecords(rs)
	return a
}

// AddAll appends a copy of every record of src. Both arrays must have the same record size.
func (a *Array) AddAll(src *Array) *Array {
	if !a.compatible(src) {
		return nil
	}
	return a.extend(src.records())
}

// AddUnique appends the records of src that are not already present, keeping their relative order.
func (a *Array) AddUnique(src *Array) *Array {
	if !a.compatible(src) {
		return nil
	}
	return a.extend(a.unique(src))
}

// prepareMerge validates the inputs of a merge. An uninitialised destination is initialised with
// room for both inputs.
func (a *Array) prepareMerge(x, y *Array) bool {
	if a == nil || !x.compatible(y) {
		return false
	}
	if a.data == nil {
		return a.Init(x.mem, max(1, x.cnt+y.cnt), x.size) != nil
	}
	return a.size == x.size
}

// MergeAll appends every record of x and then every record of y.
func (a *Array) MergeAll(x, y *Array) *Array {
	if !a.prepareMerge(x, y) {
		return nil
	}
	return a.extend(append(x.records(), y.records()...))
}

// MergeUnique appends the records of x and then of y that are not already present.
func (a *Array) MergeUnique(x, y *Array) *Array {
	if !a.prepareMerge(x, y) {
		return nil
	}
	return a.extend(a.unique(x, y))
}
