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
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
)

// Stats is a snapshot of an Allocator's counters.
type Stats struct {
	// Mem is the number of bytes currently live.
	Mem uint64
	// MemMax is the highest value Mem has reached.
	MemMax uint64
	// Allocs counts successful Alloc and Calloc calls.
	Allocs int
	// Reallocs counts successful Realloc calls.
	Reallocs int
}

// Allocator hands out byte buffers and records how much memory is in use.
//
// The zero value is ready to use.
type Allocator struct {
	stats Stats
	fail  bool
}

// New returns an Allocator with all counters at zero.
func New() *Allocator {
	return &Allocator{}
}

// InjectFailure makes every following non-empty request fail until it is called again with false.
func (a *Allocator) InjectFailure(fail bool) {
	a.fail = fail
}

// Stats returns a copy of the current counters.
func (a *Allocator) Stats() Stats {
	return a.stats
}

func (a *Allocator) add(size int) {
	a.stats.Mem += uint64(size)
	a.stats.MemMax = max(a.stats.MemMax, a.stats.Mem)
}

func (a *Allocator) sub(size int) {
	if size <= 0 {
		return
	}
	a.stats.Mem -= min(uint64(size), a.stats.Mem)
}

// Alloc returns a zeroed buffer of size bytes, or nil if size is not positive or the request
// failed.
func (a *Allocator) Alloc(size int) []byte {
	if size <= 0 || a.fail {
		return nil
	}
	a.add(size)
	a.stats.Allocs++
	return make([]byte, size)
}

// Calloc returns a zeroed buffer for count elements of size bytes each.
func (a *Allocator) Calloc(count, size int) []byte {
	if count <= 0 || size <= 0 {
		return nil
	}
	return a.Alloc(count * size)
}

// Realloc resizes buf from oldSize to newSize bytes and returns the new buffer. The first
// min(oldSize, newSize) bytes are preserved.
//
// On failure nil is returned and buf is left untouched and still accounted for. A newSize of zero
// releases buf.
func (a *Allocator) Realloc(buf []byte, newSize, oldSize int) []byte {
	if newSize <= 0 {
		a.Free(buf, oldSize)
		return nil
	}
	if a.fail {
		return nil
	}
	grown := make([]byte, newSize)
	copy(grown, buf[:max(0, min(len(buf), oldSize, newSize))])
	a.sub(oldSize)
	a.add(newSize)
	a.stats.Reallocs++
	return grown
}

// Free releases buf, which was allocated with size bytes. Freeing nil does nothing.
func (a *Allocator) Free(buf []byte, size int) {
	if buf == nil {
		return
	}
	a.sub(size)
}

// Report writes a human readable summary of the counters to w. The peak is scaled to KiB or MiB
// once it passes one KiB, with the exact byte count kept in parentheses.
func (a *Allocator) Report(w io.Writer) error {
	s := a.stats
	var err error
	if s.MemMax > 1024 {
		_, err = fmt.Fprintf(w, "mem:      %d max: %s (%d B)\n", s.Mem, humanize.IBytes(s.MemMax), s.MemMax)
	} else {
		_, err = fmt.Fprintf(w, "mem:      %d max: %d B\n", s.Mem, s.MemMax)
	}
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "allocs:   %d\n", s.Allocs); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "reallocs: %d\n", s.Reallocs)
	return err
}
