// Package mem provides the instrumented allocator every structure in this module allocates through.
//
// An Allocator tracks the bytes currently live, the peak, and how many allocations and
// reallocations were served. Failures are reported with a nil buffer, never a panic, and can be
// forced with InjectFailure to exercise out-of-memory paths.
//
// Only buffers requested through an Allocator are counted. Bookkeeping a structure keeps on the Go
// heap, such as the string index of an xml.Document, is not part of the statistics.
//
// Allocators are not safe for concurrent use. Give each owner its own instance.
package mem
