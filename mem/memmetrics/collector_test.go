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

package memmetrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/Goodwine/go-xmldoc/mem"
)

func TestCollector(t *testing.T) {
	alloc := mem.New()
	buf := alloc.Alloc(64)
	buf = alloc.Realloc(buf, 128, 64)
	alloc.Free(buf, 128)
	alloc.Alloc(32)

	c := NewCollector(alloc, "xmldoc")

	const want = `
# HELP xmldoc_mem_allocs_total Successful allocations.
# TYPE xmldoc_mem_allocs_total counter
xmldoc_mem_allocs_total 2
# HELP xmldoc_mem_live_bytes Bytes currently allocated.
# TYPE xmldoc_mem_live_bytes gauge
xmldoc_mem_live_bytes 32
# HELP xmldoc_mem_peak_bytes Highest number of bytes allocated at once.
# TYPE xmldoc_mem_peak_bytes gauge
xmldoc_mem_peak_bytes 128
# HELP xmldoc_mem_reallocs_total Successful reallocations.
# TYPE xmldoc_mem_reallocs_total counter
xmldoc_mem_reallocs_total 1
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(want)))
	require.Equal(t, 4, testutil.CollectAndCount(c))
}
