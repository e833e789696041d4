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

package file

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadText(t *testing.T) {
	testCases := []struct {
		desc string
		in   string
		want string
	}{
		{desc: "lf", in: "a\nb\n", want: "a\nb\n"},
		{desc: "crlf", in: "a\r\nb\r\n", want: "a\nb\n"},
		{desc: "mixed", in: "<a>\r\n  <b />\n</a>\r\n", want: "<a>\n  <b />\n</a>\n"},
		{desc: "empty", in: "", want: ""},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "in.txt")
			require.NoError(t, os.WriteFile(path, []byte(tc.in), 0o644))

			got, err := ReadText(path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want, NormalizeText(tc.in))
		})
	}
}

func TestReadTextMissing(t *testing.T) {
	_, err := ReadText(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	require.NoError(t, WriteText(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "line\r\n")
		return err
	}))
	got, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "line\n", got)

	errFail := errors.New("fail")
	assert.ErrorIs(t, WriteText(path, func(io.Writer) error { return errFail }), errFail)
	assert.ErrorIs(t, WriteText(filepath.Join(t.TempDir(), "missing", "out.txt"), func(io.Writer) error { return nil }), os.ErrNotExist)
}
