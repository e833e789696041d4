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

// Package tree stores a first-child/next-sibling tree in the records of an arr.Array.
//
// Every node is one array record: a 4 byte first child index, a 4 byte next sibling index and the
// payload. Node 0 always exists and acts as the root; since nothing can point back at it, a child
// or sibling index of 0 means there is none.
package tree

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bits-and-blooms/bitset"

	"github.com/Goodwine/go-xmldoc/arr"
	"github.com/Goodwine/go-xmldoc/mem"
)

// End is returned when a node could not be created.
const End = arr.End

const (
	childOffset = 0
	nextOffset  = 4
	headerSize  = 8

	none = 0
)

// Mask holds one bit per depth level that is set when the ancestor at that level, or the node itself
// for the deepest level, is the last child of its parent. A Mask handed to a VisitFunc is only
// valid for the duration of that call.
type Mask struct {
	bits *bitset.BitSet
}

// Last reports whether the node at level+1 on the current path is the last of its siblings.
func (m Mask) Last(level int) bool {
	return level >= 0 && m.bits != nil && m.bits.Test(uint(level))
}

// VisitFunc is called for every node of a pre-order traversal. The returned values are summed.
type VisitFunc func(t *Tree, node, depth int, last Mask) int

// ChildFunc is called for every direct child of a node. The returned values are summed.
type ChildFunc func(t *Tree, node int, last bool) int

// Tree is a growable tree of nodes carrying a fixed-size payload.
type Tree struct {
	nodes arr.Array
}

// Init prepares the tree for capacity nodes carrying size bytes of payload each and creates the
// root node.
func (t *Tree) Init(m *mem.Allocator, capacity, size int) *Tree {
	if t == nil || size < 0 || t.nodes.Init(m, capacity, headerSize+size) == nil {
		return nil
	}
	t.nodes.Add()
	return t
}

// Free releases the storage of every node, including the root.
func (t *Tree) Free() {
	if t == nil {
		return
	}
	t.nodes.Free()
}

// Len returns the number of nodes ever created, including the root and removed nodes.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return t.nodes.Len()
}

func (t *Tree) header(node int) []byte {
	if t == nil {
		return nil
	}
	r := t.nodes.Get(node)
	if r == nil {
		return nil
	}
	return r[:headerSize]
}

func field(h []byte, off int) int {
	return int(binary.LittleEndian.Uint32(h[off:]))
}

func setField(h []byte, off, node int) {
	binary.LittleEndian.PutUint32(h[off:], uint32(node))
}

// Add creates a node that is attached to nothing. Its only link to the rest of the program is the
// returned index.
func (t *Tree) Add() int {
	if t == nil {
		return End
	}
	return t.nodes.Add()
}

// attach creates a node and links it at the end of the chain that starts at field off of node.
func (t *Tree) attach(node, off int) int {
	if t.header(node) == nil {
		return End
	}
	n := t.nodes.Add()
	if n == End {
		return End
	}
	h := t.header(node)
	for next := field(h, off); next != none; next = field(h, nextOffset) {
		h = t.header(next)
	}
	setField(h, off, n)
	return n
}

// AddChild creates a node and makes it the last child of parent.
func (t *Tree) AddChild(parent int) int {
	return t.attach(parent, childOffset)
}

// AddNext creates a node and makes it the last sibling in the chain that node belongs to.
func (t *Tree) AddNext(node int) int {
	return t.attach(node, nextOffset)
}

// Child returns the first child of node, or 0 if it has none.
func (t *Tree) Child(node int) int {
	h := t.header(node)
	if h == nil {
		return none
	}
	return field(h, childOffset)
}

// Next returns the sibling following node, or 0 if node is the last one.
func (t *Tree) Next(node int) int {
	h := t.header(node)
	if h == nil {
		return none
	}
	return field(h, nextOffset)
}

// HasChild reports whether node has at least one child.
func (t *Tree) HasChild(node int) bool {
	return t.Child(node) != none
}

// Data returns the payload of node, or nil if node does not exist.
func (t *Tree) Data(node int) []byte {
	if t.header(node) == nil {
		return nil
	}
	return t.nodes.Get(node)[headerSize:]
}

// Remove detaches node, together with all of its descendants, from the tree. The link that
// referenced node is pointed at the sibling that followed it. Storage is not reclaimed.
//
// It returns false if node is the root or does not exist.
func (t *Tree) Remove(node int) bool {
	h := t.header(node)
	if node == none || h == nil {
		return false
	}
	after := field(h, nextOffset)
	for i := range t.nodes.Len() {
		r := t.header(i)
		switch node {
		case field(r, childOffset):
			setField(r, childOffset, after)
		case field(r, nextOffset):
			setField(r, nextOffset, after)
		}
	}
	setField(h, nextOffset, none)
	return true
}

// walk visits node and its descendants in pre-order until fn returns false. bits is shared by the
// whole traversal: a node at depth d only reads the d bits its ancestors set.
func (t *Tree) walk(node, depth int, bits *bitset.BitSet, fn func(node, depth int) bool) bool {
	if !fn(node, depth) {
		return false
	}
	for child := t.Child(node); child != none; {
		next := t.Next(child)
		bits.SetTo(uint(depth), next == none)
		if !t.walk(child, depth+1, bits, fn) {
			return false
		}
		child = next
	}
	return true
}

// IteratePre calls visit for node and every node below it, parents before children and siblings
// in insertion order, and returns the sum of the values visit returned.
func (t *Tree) IteratePre(node int, visit VisitFunc) int {
	if visit == nil || t.header(node) == nil {
		return 0
	}
	total := 0
	mask := Mask{bits: bitset.New(0)}
	t.walk(node, 0, mask.bits, func(n, depth int) bool {
		total += visit(t, n, depth, mask)
		return true
	})
	return total
}

// IterateChildren calls visit for each direct child of node and returns the sum of the values
// visit returned.
func (t *Tree) IterateChildren(node int, visit ChildFunc) int {
	if visit == nil || t.header(node) == nil {
		return 0
	}
	total := 0
	for child := t.Child(node); child != none; {
		next := t.Next(child)
		total += visit(t, child, next == none)
		child = next
	}
	return total
}

// Print writes node and its descendants to w, one line per node, prefixed with box drawing
// connectors. fn writes the text of a single node and is expected to end it with a newline.
func (t *Tree) Print(w io.Writer, node int, fn func(w io.Writer, data []byte) error) error {
	if t.header(node) == nil {
		return fmt.Errorf("tree: node %d does not exist", node)
	}
	var err error
	bits := bitset.New(0)
	t.walk(node, 0, bits, func(n, depth int) bool {
		for i := 0; i < depth-1 && err == nil; i++ {
			if bits.Test(uint(i)) {
				_, err = io.WriteString(w, "  ")
			} else {
				_, err = io.WriteString(w, "│ ")
			}
		}
		if depth > 0 && err == nil {
			if bits.Test(uint(depth - 1)) {
				_, err = io.WriteString(w, "└─")
			} else {
				_, err = io.WriteString(w, "├─")
			}
		}
		if err == nil {
			err = fn(w, t.Data(n))
		}
		return err == nil
	})
	return err
}
