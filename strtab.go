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

package xml

import (
	"github.com/Goodwine/triemap"

	"github.com/Goodwine/go-xmldoc/mem"
)

const (
	nullString  = 0
	emptyString = 1
)

// strTable stores every piece of text of a document exactly once. Records refer to text by its
// index in the table; index 0 is the null string and index 1 the empty one.
//
// The table itself lives on the Go heap: only the Owned buffers it holds are counted by the
// document allocator.
type strTable struct {
	strs  []String
	index triemap.RuneSliceMap
}

func newStrTable() *strTable {
	return &strTable{strs: []String{nil, Borrowed("")}}
}

// intern returns the index of the text of s, adding s to the table if it is new. An Owned s whose
// text is already stored is released right away.
func (t *strTable) intern(m *mem.Allocator, s String) int {
	if s == nil {
		return nullString
	}
	text := s.String()
	if text == "" {
		s.release(m)
		return emptyString
	}
	key := byteKey(text)
	if v, ok := t.index.Get(key); ok {
		s.release(m)
		return v.(int)
	}
	t.strs = append(t.strs, s)
	i := len(t.strs) - 1
	t.index.Put(key, i)
	return i
}

// byteKey maps every byte of text to its own rune. Converting with []rune would fold every invalid
// UTF-8 byte into U+FFFD and make different texts share a key.
func byteKey(text string) []rune {
	key := make([]rune, len(text))
	for i := 0; i < len(text); i++ {
		key[i] = rune(text[i])
	}
	return key
}

// get returns the text at index i and whether it is not the null string.
func (t *strTable) get(i int) (string, bool) {
	if i <= nullString || i >= len(t.strs) {
		return "", false
	}
	return t.strs[i].String(), true
}

// len returns the number of distinct non-empty strings.
func (t *strTable) len() int {
	return len(t.strs) - 2
}

// free releases every owned buffer and empties the table.
func (t *strTable) free(m *mem.Allocator) {
	for _, s := range t.strs[emptyString:] {
		s.release(m)
	}
	t.strs = []String{nil, Borrowed("")}
	t.index = triemap.RuneSliceMap{}
}
