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
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Goodwine/go-xmldoc"
	"github.com/Goodwine/go-xmldoc/internal/file"
	"github.com/Goodwine/go-xmldoc/mem"
)

var (
	exampleOut     string
	exampleOutline bool
)

func init() {
	cmd := newExampleCmd()
	cmd.Flags().StringVarP(&exampleOut, "out", "o", "", "Write the document to a file instead of stdout")
	cmd.Flags().BoolVar(&exampleOutline, "outline", false, "Print the tag outline instead of XML")
	rootCmd.AddCommand(cmd)
}

func newExampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print a sample XML document",
		Long: `The example command builds a small document with nested tags, attributes,
and copied and formatted strings, then prints it.

Example:
  xmldoc example
  xmldoc example --out project.xml --stats
  xmldoc example --outline`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			return runExample(cmd.OutOrStdout(), logger)
		},
	}
	return cmd
}

// buildExample fills doc with the sample document and returns its root.
func buildExample(doc *xml.Document) xml.Tag {
	parent := doc.AddTag(xml.None, xml.Ref("Parent"))

	doc.AddTag(parent, xml.Ref("EmptyChild"))
	doc.AddTagValue(parent, xml.Ref("Child"), xml.Ref("Value"))
	child3 := doc.AddTag(parent, xml.Ref("Child"))
	child4 := doc.AddTag(parent, xml.Ref("Child"))
	doc.AddTagValuef(parent, xml.Ref("Child"), "Value: %d", 5)

	doc.AddAttr(child3, xml.Ref("Name"), xml.Ref("Child3"))

	doc.AddAttr(child4, xml.Ref("Name"), xml.Ref("Child4"))
	doc.AddAttr(child4, xml.Ref("Age"), xml.Ref("45"))
	doc.AddAttrf(child4, xml.Ref("Settings"), "Format:%s", "True")

	doc.AddTag(child4, xml.Ref("Child41"))
	doc.AddTag(child4, xml.Ref("Child42"))
	return parent
}

func runExample(w io.Writer, logger *slog.Logger) error {
	m := mem.New()
	doc, err := xml.NewDocument(m, capacity, xml.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	if root := buildExample(doc); root == xml.None {
		doc.Free()
		return fmt.Errorf("failed to build document: %w", xml.ErrNoMemory)
	}

	switch {
	case exampleOutline:
		err = doc.PrintTree(w)
	case exampleOut != "":
		err = file.WriteText(exampleOut, func(f io.Writer) error {
			n, err := doc.WriteTo(f)
			logger.Info("wrote document", "path", exampleOut, "bytes", n)
			return err
		})
	default:
		_, err = doc.WriteTo(w)
	}
	doc.Free()
	if err != nil {
		return err
	}
	return report(w, m)
}
