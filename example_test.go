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

package xml_test

import (
	"fmt"
	"log"
	"os"

	"github.com/Goodwine/go-xmldoc"
	"github.com/Goodwine/go-xmldoc/mem"
)

// This example demonstrates how to build a small document, mixing borrowed, copied and formatted
// strings, and how to write it out.
func Example_buildDocument() {
	m := mem.New()
	doc, err := xml.NewDocument(m, 8)
	if err != nil {
		log.Fatal(err)
	}

	parent := doc.AddTag(xml.None, xml.Ref("Parent"))
	doc.AddTag(parent, xml.Ref("EmptyChild"))
	doc.AddTagValue(parent, xml.Ref("Child"), xml.Ref("Value"))
	child := doc.AddTag(parent, doc.Copy("Child"))
	doc.AddAttr(child, xml.Ref("Name"), xml.Ref("Child3"))
	doc.AddAttrf(child, xml.Ref("Settings"), "Format:%s", "True")
	doc.AddTagValuef(parent, xml.Ref("Child"), "Value: %d", 5)

	if _, err := doc.WriteTo(os.Stdout); err != nil {
		log.Fatal(err)
	}

	doc.Free()
	fmt.Println("live bytes:", m.Stats().Mem)

	// Output:
	// <?xml version="1.0" encoding="utf-8"?>
	// <Parent>
	//   <EmptyChild />
	//   <Child>Value</Child>
	//   <Child Name="Child3" Settings="Format:True" />
	//   <Child>Value: 5</Child>
	// </Parent>
	// live bytes: 0
}

// This example demonstrates the outline view of a document.
func ExampleDocument_PrintTree() {
	m := mem.New()
	doc, err := xml.NewDocument(m, 4)
	if err != nil {
		log.Fatal(err)
	}
	defer doc.Free()

	project := doc.AddTag(xml.None, xml.Ref("Project"))
	doc.AddAttr(project, xml.Ref("Name"), xml.Ref("Project1"))
	deps := doc.AddTag(project, xml.Ref("Dependencies"))
	doc.AddTagValue(deps, xml.Ref("Dependency"), xml.Ref("cutils"))
	doc.AddTag(project, xml.Ref("Config"))

	if err := doc.PrintTree(os.Stdout); err != nil {
		log.Fatal(err)
	}

	// Output:
	// Project Name="Project1"
	// ├─Dependencies
	// │ └─Dependency: cutils
	// └─Config
}
