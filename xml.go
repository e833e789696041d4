package xml

import (
	"github.com/Goodwine/go-xmldoc/mem"
)

type docError string

// Error implements error interface, returns itself since it's already a string.
func (err docError) Error() string {
	return string(err)
}

const (
	// ErrNoMemory is returned when the document allocator refused a request.
	ErrNoMemory docError = "out of memory"

	// ErrBadTag is returned when a tag handle does not refer to a tag of the document.
	ErrBadTag docError = "invalid tag"

	// ErrInvalid is returned by NewDocument for a nil allocator or a capacity below one.
	ErrInvalid docError = "invalid argument"
)

// Tag is a handle to an element of a Document.
type Tag int

// Attr is a handle to an attribute of a Document.
type Attr int

// None is the Tag passed as parent to create a top-level tag, and the handle returned by the add
// functions when they fail.
const None = -1

// String is text handed to a Document for tag names, attribute names and values.
//
// A String is either a Borrowed view, which the document never frees and which must outlive it, or
// an Owned buffer, which the document takes ownership of and releases back to its allocator. A nil
// String is the null string: a tag added with a nil value has no text at all, as opposed to an
// empty one.
type String interface {
	String() string

	release(m *mem.Allocator)
}

// Borrowed is text the caller keeps alive, usually a literal.
type Borrowed string

func (s Borrowed) String() string { return string(s) }

func (Borrowed) release(*mem.Allocator) {}

// Owned is text stored in a buffer obtained from the allocator of the document it is handed to.
// The buffer must keep the length it was allocated with and may be handed over only once: the
// document releases it when it is freed, or right away if the same text is already stored.
type Owned []byte

func (s Owned) String() string { return string(s) }

func (s Owned) release(m *mem.Allocator) {
	m.Free(s, len(s))
}

// Ref returns a borrowed view of s.
func Ref(s string) String {
	return Borrowed(s)
}
