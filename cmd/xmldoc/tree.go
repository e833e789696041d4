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

package main

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Goodwine/go-xmldoc/mem"
	"github.com/Goodwine/go-xmldoc/tree"
)

func init() {
	rootCmd.AddCommand(newTreeCmd())
}

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print a sample numbered tree",
		Long: `The tree command builds a tree where every node is numbered after its path
from the root and prints it with box drawing connectors.

Example:
  xmldoc tree
  xmldoc tree --stats --capacity 32`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd.OutOrStdout())
		},
	}
}

// numbered is the shape of the sample tree: each node lists the numbers of its children.
var numbered = map[uint32][]uint32{
	0:   {1, 2, 3},
	1:   {11, 12, 13},
	2:   {21, 22, 23},
	3:   {31, 32, 33},
	11:  {111},
	13:  {131},
	21:  {212},
	22:  {222},
	23:  {232},
	33:  {333},
	111: {1111},
}

func addNumbered(t *tree.Tree, node int, value uint32) error {
	for _, v := range numbered[value] {
		child := t.AddChild(node)
		if child == tree.End {
			return fmt.Errorf("adding node %d: out of memory", v)
		}
		binary.LittleEndian.PutUint32(t.Data(child), v)
		if err := addNumbered(t, child, v); err != nil {
			return err
		}
	}
	return nil
}

func printNumbered(w io.Writer, t *tree.Tree) error {
	if err := addNumbered(t, 0, 0); err != nil {
		return err
	}
	err := t.Print(w, 0, func(w io.Writer, data []byte) error {
		_, err := fmt.Fprintf(w, "%d\n", binary.LittleEndian.Uint32(data))
		return err
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "nodes: %d\n", t.Len())
	return err
}

func runTree(w io.Writer) error {
	m := mem.New()
	var t tree.Tree
	if t.Init(m, capacity, 4) == nil {
		return fmt.Errorf("failed to create tree with capacity %d", capacity)
	}

	err := printNumbered(w, &t)
	t.Free()
	if err != nil {
		return err
	}
	return report(w, m)
}
