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

package mem

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlloc(t *testing.T) {
	a := New()

	assert.Nil(t, a.Alloc(0))
	assert.Nil(t, a.Alloc(-1))

	buf := a.Alloc(16)
	require.Len(t, buf, 16)
	assert.Equal(t, Stats{Mem: 16, MemMax: 16, Allocs: 1}, a.Stats())

	a.Free(buf, 16)
	assert.Equal(t, Stats{Mem: 0, MemMax: 16, Allocs: 1}, a.Stats())
}

func TestCalloc(t *testing.T) {
	a := New()

	assert.Nil(t, a.Calloc(0, 4))
	assert.Nil(t, a.Calloc(4, 0))

	buf := a.Calloc(3, 4)
	require.Len(t, buf, 12)
	assert.Equal(t, make([]byte, 12), buf)
	assert.Equal(t, uint64(12), a.Stats().Mem)
	assert.Equal(t, 1, a.Stats().Allocs)
}

func TestRealloc(t *testing.T) {
	a := New()

	buf := a.Alloc(4)
	copy(buf, "abcd")

	grown := a.Realloc(buf, 8, 4)
	require.Len(t, grown, 8)
	assert.Equal(t, []byte("abcd\x00\x00\x00\x00"), grown)
	assert.Equal(t, Stats{Mem: 8, MemMax: 8, Allocs: 1, Reallocs: 1}, a.Stats())

	shrunk := a.Realloc(grown, 2, 8)
	assert.Equal(t, []byte("ab"), shrunk)
	assert.Equal(t, Stats{Mem: 2, MemMax: 8, Allocs: 1, Reallocs: 2}, a.Stats())

	assert.Nil(t, a.Realloc(shrunk, 0, 2))
	assert.Equal(t, uint64(0), a.Stats().Mem)
}

func TestFreeNil(t *testing.T) {
	a := New()
	a.Alloc(8)
	a.Free(nil, 8)
	assert.Equal(t, uint64(8), a.Stats().Mem)
}

func TestFreeNeverNegative(t *testing.T) {
	a := New()
	buf := a.Alloc(4)
	a.Free(buf, 100)
	assert.Equal(t, uint64(0), a.Stats().Mem)
	assert.Equal(t, uint64(4), a.Stats().MemMax)
}

func TestInjectFailure(t *testing.T) {
	a := New()
	buf := a.Alloc(4)
	copy(buf, "keep")

	a.InjectFailure(true)
	assert.Nil(t, a.Alloc(4))
	assert.Nil(t, a.Calloc(2, 2))
	assert.Nil(t, a.Realloc(buf, 8, 4))
	assert.Equal(t, []byte("keep"), buf)
	assert.Equal(t, Stats{Mem: 4, MemMax: 4, Allocs: 1}, a.Stats())

	a.InjectFailure(false)
	assert.NotNil(t, a.Alloc(4))
}

func TestAccounting(t *testing.T) {
	a := New()

	type live struct {
		buf  []byte
		size int
	}
	var bufs []live
	var want uint64
	for i := 1; i <= 10; i++ {
		bufs = append(bufs, live{a.Alloc(i * 3), i * 3})
		want += uint64(i * 3)
	}
	for i := range bufs {
		if i%2 == 0 {
			old := bufs[i].size
			bufs[i].buf = a.Realloc(bufs[i].buf, old*2, old)
			bufs[i].size = old * 2
			want += uint64(old)
		}
		assert.GreaterOrEqual(t, a.Stats().MemMax, a.Stats().Mem)
	}
	assert.Equal(t, want, a.Stats().Mem)

	for _, b := range bufs {
		a.Free(b.buf, b.size)
		assert.GreaterOrEqual(t, a.Stats().MemMax, a.Stats().Mem)
	}
	assert.Equal(t, uint64(0), a.Stats().Mem)
	assert.Equal(t, 10, a.Stats().Allocs)
	assert.Equal(t, 5, a.Stats().Reallocs)
}

func TestReport(t *testing.T) {
	testCases := []struct {
		desc  string
		sizes []int
		want  string
	}{
		{
			desc:  "bytes",
			sizes: []int{100},
			want:  "mem:      100 max: 100 B\nallocs:   1\nreallocs: 0\n",
		},
		{
			desc:  "kibibytes",
			sizes: []int{1024, 1024},
			want:  "mem:      2048 max: 2.0 KiB (2048 B)\nallocs:   2\nreallocs: 0\n",
		},
		{
			desc:  "mebibytes",
			sizes: []int{3 << 20},
			want:  "mem:      3145728 max: 3.0 MiB (3145728 B)\nallocs:   1\nreallocs: 0\n",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			a := New()
			for _, size := range tc.sizes {
				a.Alloc(size)
			}
			var buf bytes.Buffer
			require.NoError(t, a.Report(&buf))
			assert.Equal(t, tc.want, buf.String())
		})
	}
}
