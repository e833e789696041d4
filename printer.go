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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Goodwine/go-xmldoc/list"
)

const declaration = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

// countWriter counts the bytes that reached the underlying writer.
type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// printer is a helper buffer for serializing a document. Once a write fails every following write
// is dropped and the first error is kept.
type printer struct {
	out *countWriter
	buf *bufio.Writer
}

func newPrinter(w io.Writer) *printer {
	out := &countWriter{w: w}
	return &printer{out: out, buf: bufio.NewWriter(out)}
}

func (p *printer) str(s string) {
	p.buf.WriteString(s)
}

func (p *printer) indent(depth int) {
	for range depth {
		p.buf.WriteString("  ")
	}
}

func (p *printer) flush() error {
	return p.buf.Flush()
}

// Print writes the XML declaration followed by tag and all of its descendants to w.
func (d *Document) Print(w io.Writer, tag Tag) error {
	_, err := d.print(w, tag)
	return err
}

// WriteTo writes the document starting at its Root to w and returns the number of bytes written.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return d.print(w, d.Root())
}

func (d *Document) print(w io.Writer, tag Tag) (int64, error) {
	if d.tag(tag) == nil {
		return 0, fmt.Errorf("%w: cannot print tag %d", ErrBadTag, tag)
	}
	p := newPrinter(w)
	p.str(declaration)
	d.printTag(p, tag, 0)
	if err := p.flush(); err != nil {
		d.log.Error("writing xml document failed", "tag", int(tag), "written", p.out.n, "error", err)
		return p.out.n, fmt.Errorf("xml: printing tag %d: %w", tag, err)
	}
	return p.out.n, nil
}

func (d *Document) printTag(p *printer, tag Tag, depth int) {
	rec := d.tag(tag)
	name, _ := d.strs.get(getIndex(rec, tagName))

	p.indent(depth)
	p.str("<")
	p.str(name)
	d.printAttrs(p, attrsHead(rec))

	value, hasValue := d.strs.get(getIndex(rec, tagValue))
	switch {
	case d.tags.HasChild(int(tag)):
		p.str(">\n")
		for child := range d.Children(tag) {
			d.printTag(p, child, depth+1)
		}
		p.indent(depth)
	case hasValue:
		p.str(">")
		p.str(value)
		if strings.HasSuffix(value, "\n") {
			p.indent(depth)
		}
	default:
		p.str(" />\n")
		return
	}
	p.str("</")
	p.str(name)
	p.str(">\n")
}

func (d *Document) printAttrs(p *printer, head int) {
	if head == list.End {
		return
	}
	for _, data := range d.attrs.Chain(head) {
		name, _ := d.strs.get(getIndex(data, attrName))
		value, _ := d.strs.get(getIndex(data, attrValue))
		p.str(" ")
		p.str(name)
		p.str(`="`)
		p.str(value)
		p.str(`"`)
	}
}

// PrintTree writes an outline of the tags below the Root to w, one tag per line, connected by box
// drawing characters. Each line holds the tag name, its attributes and its text, if any, after a
// colon.
func (d *Document) PrintTree(w io.Writer) error {
	root := d.Root()
	if d.tag(root) == nil {
		return fmt.Errorf("%w: document has no root", ErrBadTag)
	}
	p := newPrinter(w)
	err := d.tags.Print(p.buf, int(root), func(w io.Writer, rec []byte) error {
		name, _ := d.strs.get(getIndex(rec, tagName))
		p.str(name)
		d.printAttrs(p, attrsHead(rec))
		if value, ok := d.strs.get(getIndex(rec, tagValue)); ok {
			p.str(": ")
			p.str(strings.TrimSuffix(value, "\n"))
		}
		p.str("\n")
		return nil
	})
	if err == nil {
		err = p.flush()
	}
	if err != nil {
		d.log.Error("writing xml outline failed", "error", err)
		return fmt.Errorf("xml: printing outline: %w", err)
	}
	return nil
}
