// Package xml builds XML documents in memory and writes them out.
//
// A Document keeps its tags in a tree and their attributes in linked chains, both stored in flat
// arrays that grow through an instrumented allocator. Tags and attributes are addressed by integer
// handles that stay valid while the document grows; nothing hands out pointers into its storage.
//
// Output is deterministic: an XML declaration, then one tag per line indented by two spaces per
// level. Tags without children or text are self-closed. Text and attribute values are written as
// they are, without escaping.
//
// There is no parser. Documents are only ever built through the API.
//
//    m := mem.New()
//    doc, err := xml.NewDocument(m, 16)
//    if err != nil {
//        return err
//    }
//    defer doc.Free()
//    project := doc.AddTag(xml.None, xml.Ref("Project"))
//    doc.AddAttr(project, xml.Ref("Name"), xml.Ref("Project1"))
//    doc.WriteTo(os.Stdout)
package xml
