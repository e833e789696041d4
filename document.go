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
	"encoding/binary"
	"fmt"
	"iter"
	"log/slog"

	"github.com/Goodwine/go-xmldoc/list"
	"github.com/Goodwine/go-xmldoc/mem"
	"github.com/Goodwine/go-xmldoc/tree"
)

// Tag records hold the name, first attribute and value of a tag; attribute records hold a name and
// a value. Every field is a little endian uint32.
const (
	tagName   = 0
	tagAttrs  = 4
	tagValue  = 8
	tagSize   = 12
	attrName  = 0
	attrValue = 4
	attrSize  = 8

	noAttrs = ^uint32(0)
)

type options struct {
	logger *slog.Logger
}

// Option configures a Document.
type Option func(*options)

// WithLogger sets the logger used to report write failures. Nothing is logged by default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Document is an XML document under construction.
//
// A Document is not safe for concurrent use.
type Document struct {
	mem   *mem.Allocator
	tags  tree.Tree
	attrs list.List
	strs  *strTable
	root  Tag
	log   *slog.Logger
}

// NewDocument creates an empty document whose tag and attribute storage starts with room for
// capacity entries each and grows through m.
func NewDocument(m *mem.Allocator, capacity int, opts ...Option) (*Document, error) {
	if m == nil || capacity <= 0 {
		return nil, fmt.Errorf("%w: document capacity %d", ErrInvalid, capacity)
	}
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}

	d := &Document{mem: m, strs: newStrTable(), root: None, log: o.logger}
	if d.tags.Init(m, capacity, tagSize) == nil {
		return nil, fmt.Errorf("%w: allocating %d tags", ErrNoMemory, capacity)
	}
	if d.attrs.Init(m, capacity, attrSize) == nil {
		d.tags.Free()
		return nil, fmt.Errorf("%w: allocating %d attributes", ErrNoMemory, capacity)
	}
	return d, nil
}

// Free releases the storage of the document and every Owned string handed to it. The document must
// not be used afterwards.
func (d *Document) Free() {
	if d == nil {
		return
	}
	d.strs.free(d.mem)
	d.tags.Free()
	d.attrs.Free()
	d.root = None
}

// Copy returns an Owned copy of s allocated from the document allocator, or nil if the allocation
// failed. Passing the nil result to an add function makes it fail.
func (d *Document) Copy(s string) String {
	if s == "" {
		return Borrowed("")
	}
	buf := d.mem.Alloc(len(s))
	if buf == nil {
		return nil
	}
	copy(buf, s)
	return Owned(buf)
}

// Sprintf formats according to a format specifier and returns the result as an Owned string, or
// nil if the allocation failed.
func (d *Document) Sprintf(format string, args ...any) String {
	return d.Copy(fmt.Sprintf(format, args...))
}

func getIndex(b []byte, off int) int {
	return int(binary.LittleEndian.Uint32(b[off:]))
}

func putIndex(b []byte, off, i int) {
	binary.LittleEndian.PutUint32(b[off:], uint32(i))
}

func attrsHead(rec []byte) int {
	v := binary.LittleEndian.Uint32(rec[tagAttrs:])
	if v == noAttrs {
		return list.End
	}
	return int(v)
}

// tag returns the record of tag, or nil if tag is not a tag of the document.
func (d *Document) tag(tag Tag) []byte {
	if d == nil || tag <= 0 {
		return nil
	}
	return d.tags.Data(int(tag))
}

// release frees the Owned strings of an add call that failed.
func (d *Document) release(strs ...String) {
	for _, s := range strs {
		if s != nil {
			s.release(d.mem)
		}
	}
}

// AddTag adds a tag without text as the last child of parent, or as a top-level tag if parent is
// None. The first top-level tag becomes the Root of the document; later ones follow it as siblings.
//
// It returns None if parent is invalid, name is nil or the storage could not grow.
func (d *Document) AddTag(parent Tag, name String) Tag {
	return d.AddTagValue(parent, name, nil)
}

// AddTagValue adds a tag with text value as the last child of parent, or as a top-level tag if
// parent is None.
func (d *Document) AddTagValue(parent Tag, name, value String) Tag {
	if d == nil {
		return None
	}
	if name == nil || (parent != None && d.tag(parent) == nil) {
		d.release(name, value)
		return None
	}

	var node int
	switch {
	case parent == None && d.root == None:
		node = d.tags.Add()
	case parent == None:
		node = d.tags.AddNext(int(d.root))
	default:
		node = d.tags.AddChild(int(parent))
	}
	if node == tree.End {
		d.release(name, value)
		return None
	}

	rec := d.tags.Data(node)
	putIndex(rec, tagName, d.strs.intern(d.mem, name))
	binary.LittleEndian.PutUint32(rec[tagAttrs:], noAttrs)
	putIndex(rec, tagValue, d.strs.intern(d.mem, value))

	tag := Tag(node)
	if parent == None && d.root == None {
		d.root = tag
	}
	return tag
}

// AddTagValuef adds a tag whose text is formatted according to a format specifier.
func (d *Document) AddTagValuef(parent Tag, name String, format string, args ...any) Tag {
	if d == nil {
		return None
	}
	value := d.Sprintf(format, args...)
	if value == nil {
		d.release(name)
		return None
	}
	return d.AddTagValue(parent, name, value)
}

// RemoveTag detaches tag and everything below it from the document. Its storage is kept until Free.
// Removing the Root promotes the next top-level tag, if there is one.
func (d *Document) RemoveTag(tag Tag) bool {
	if d.tag(tag) == nil {
		return false
	}
	next := d.tags.Next(int(tag))
	if !d.tags.Remove(int(tag)) {
		return false
	}
	if tag == d.root {
		d.root = None
		if next != 0 {
			d.root = Tag(next)
		}
	}
	return true
}

// HasChild reports whether tag has at least one child tag.
func (d *Document) HasChild(tag Tag) bool {
	return d.tag(tag) != nil && d.tags.HasChild(int(tag))
}

// AddAttr appends an attribute to tag. A nil value is written as an empty one.
//
// It returns None if tag is invalid, name is nil or the storage could not grow.
func (d *Document) AddAttr(tag Tag, name, value String) Attr {
	rec := d.tag(tag)
	if rec == nil || name == nil {
		if d != nil {
			d.release(name, value)
		}
		return None
	}

	var attr int
	if head := attrsHead(rec); head == list.End {
		attr = d.attrs.Add()
		if attr != list.End {
			putIndex(rec, tagAttrs, attr)
		}
	} else {
		attr = d.attrs.AddNext(head)
	}
	if attr == list.End {
		d.release(name, value)
		return None
	}

	data := d.attrs.Data(attr)
	putIndex(data, attrName, d.strs.intern(d.mem, name))
	putIndex(data, attrValue, d.strs.intern(d.mem, value))
	return Attr(attr)
}

// AddAttrf appends an attribute whose value is formatted according to a format specifier.
func (d *Document) AddAttrf(tag Tag, name String, format string, args ...any) Attr {
	if d == nil {
		return None
	}
	value := d.Sprintf(format, args...)
	if value == nil {
		d.release(name)
		return None
	}
	return d.AddAttr(tag, name, value)
}

// Root returns the first top-level tag, or None.
func (d *Document) Root() Tag {
	if d == nil {
		return None
	}
	return d.root
}

// Name returns the name of tag, or "" if tag is invalid.
func (d *Document) Name(tag Tag) string {
	rec := d.tag(tag)
	if rec == nil {
		return ""
	}
	name, _ := d.strs.get(getIndex(rec, tagName))
	return name
}

// Value returns the text of tag and whether it has any. An empty text still reports true.
func (d *Document) Value(tag Tag) (string, bool) {
	rec := d.tag(tag)
	if rec == nil {
		return "", false
	}
	return d.strs.get(getIndex(rec, tagValue))
}

// Attrs iterates over the names and values of the attributes of tag in insertion order.
func (d *Document) Attrs(tag Tag) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		rec := d.tag(tag)
		if rec == nil {
			return
		}
		for _, data := range d.attrs.Chain(attrsHead(rec)) {
			name, _ := d.strs.get(getIndex(data, attrName))
			value, _ := d.strs.get(getIndex(data, attrValue))
			if !yield(name, value) {
				return
			}
		}
	}
}

// Children iterates over the direct children of tag in insertion order.
func (d *Document) Children(tag Tag) iter.Seq[Tag] {
	return func(yield func(Tag) bool) {
		if d.tag(tag) == nil {
			return
		}
		for child := d.tags.Child(int(tag)); child != 0; child = d.tags.Next(child) {
			if !yield(Tag(child)) {
				return
			}
		}
	}
}
