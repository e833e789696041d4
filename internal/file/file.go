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

// Package file reads text files the way the document tests and tools compare them.
package file

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// crlf drops carriage returns so CRLF and LF line endings read the same.
func crlf() transform.Transformer {
	return runes.Remove(runes.Predicate(func(r rune) bool { return r == '\r' }))
}

// ReadText returns the contents of the file at path with every carriage return removed.
func ReadText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	b, err := io.ReadAll(transform.NewReader(f, crlf()))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(b), nil
}

// NormalizeText removes every carriage return from s.
func NormalizeText(s string) string {
	out, _, err := transform.String(crlf(), s)
	if err != nil {
		return s
	}
	return out
}

// WriteText creates or truncates the file at path and writes fn's output to it.
func WriteText(path string, fn func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(f)
}
