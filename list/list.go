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

// Package list threads singly-linked chains through the records of an arr.Array.
//
// Every node is one array record: a 4 byte next index followed by the payload. Many independent
// chains can share one List; a chain is identified by the index of its head node.
package list

import (
	"encoding/binary"
	"iter"

	"github.com/Goodwine/go-xmldoc/arr"
	"github.com/Goodwine/go-xmldoc/mem"
)

// End terminates a chain and is returned when an operation fails.
const End = arr.End

const (
	headerSize = 4
	endMark    = ^uint32(0)
)

// List is a set of singly-linked chains stored in one growable array.
type List struct {
	nodes arr.Array
}

// Init prepares the list for capacity nodes carrying size bytes of payload each.
func (l *List) Init(m *mem.Allocator, capacity, size int) *List {
	if l == nil || size < 0 || l.nodes.Init(m, capacity, headerSize+size) == nil {
		return nil
	}
	return l
}

// Free releases the storage of every node.
func (l *List) Free() {
	if l == nil {
		return
	}
	l.nodes.Free()
}

// Len returns the number of nodes ever added, including removed ones.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return l.nodes.Len()
}

func (l *List) header(node int) []byte {
	if l == nil {
		return nil
	}
	r := l.nodes.Get(node)
	if r == nil {
		return nil
	}
	return r[:headerSize]
}

func nextOf(h []byte) int {
	v := binary.LittleEndian.Uint32(h)
	if v == endMark {
		return End
	}
	return int(v)
}

func link(h []byte, node int) {
	v := endMark
	if node != End {
		v = uint32(node)
	}
	binary.LittleEndian.PutUint32(h, v)
}

// Add creates a node that is not linked to anything and returns its index.
func (l *List) Add() int {
	if l == nil {
		return End
	}
	node := l.nodes.Add()
	if node == End {
		return End
	}
	link(l.header(node), End)
	return node
}

// AddNext creates a node and appends it to the end of the chain that contains node.
func (l *List) AddNext(node int) int {
	if l.header(node) == nil {
		return End
	}
	n := l.Add()
	if n == End {
		return End
	}
	return l.SetNext(node, n)
}

// SetNext walks from node to the end of its chain and links next there. It returns next, or End
// if either index is invalid.
//
// Linking a node that is already part of the chain creates a cycle; this is not checked.
func (l *List) SetNext(node, next int) int {
	h := l.header(node)
	if h == nil || (next != End && l.header(next) == nil) {
		return End
	}
	for n := nextOf(h); n != End; n = nextOf(h) {
		h = l.header(n)
	}
	link(h, next)
	return next
}

// Next returns the node following node, or End.
func (l *List) Next(node int) int {
	h := l.header(node)
	if h == nil {
		return End
	}
	return nextOf(h)
}

// Data returns the payload of node, or nil if node is invalid.
func (l *List) Data(node int) []byte {
	h := l.header(node)
	if h == nil {
		return nil
	}
	return l.nodes.Get(node)[headerSize:]
}

// Remove unlinks node from whichever chain references it and returns the node that followed it.
//
// Every node of the list is scanned. The storage of the removed node is not reused, and its own
// next link is left as it was.
func (l *List) Remove(node int) int {
	h := l.header(node)
	if h == nil {
		return End
	}
	after := nextOf(h)
	for i := range l.nodes.Len() {
		prev := l.header(i)
		if i != node && nextOf(prev) == node {
			link(prev, after)
		}
	}
	return after
}

// Chain iterates over the payloads of the chain starting at head.
func (l *List) Chain(head int) iter.Seq2[int, []byte] {
	return func(yield func(int, []byte) bool) {
		for n := head; n != End; n = l.Next(n) {
			data := l.Data(n)
			if data == nil || !yield(n, data) {
				return
			}
		}
	}
}

// All iterates over the payload of every node in storage order, linked or not.
func (l *List) All() iter.Seq2[int, []byte] {
	return func(yield func(int, []byte) bool) {
		if l == nil {
			return
		}
		for i, r := range l.nodes.All() {
			if !yield(i, r[headerSize:]) {
				return
			}
		}
	}
}
