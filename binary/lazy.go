// Lazy sequences: a vector decoded element-by-element on demand rather
// than eagerly into a slice, so a reader that only wants, say, the
// export names never pays to materialize every function body.
// Grounded on the teacher's streaming decoder.go section loop
// (DecodeModule never materializes the whole input before acting on
// each section), generalized into a reusable iterator type per
// spec.md §4.4.
package binary

import "github.com/jgravelle-google/wasp"

// LazySequence iterates a length-prefixed vector of T without
// decoding ahead of the caller's Next calls.
type LazySequence[T any] struct {
	cursor    *Cursor
	remaining uint32
	elem      func(*Cursor, wasp.ErrorSink) (T, bool)
	errs      wasp.ErrorSink
	failed    bool
}

// NewLazySequence constructs a LazySequence over c's remaining bytes,
// reading the vector's count immediately (as any reader of the vector
// must) but deferring every element decode to Next.
func NewLazySequence[T any](c *Cursor, desc string, errs wasp.ErrorSink, elem func(*Cursor, wasp.ErrorSink) (T, bool)) (*LazySequence[T], bool) {
	n, ok := c.ReadLength(desc, errs)
	if !ok {
		return nil, false
	}
	return &LazySequence[T]{cursor: c, remaining: n, elem: elem, errs: errs}, true
}

// Len returns the number of elements not yet consumed by Next.
func (s *LazySequence[T]) Len() uint32 { return s.remaining }

// Next decodes and returns the next element. ok is false once the
// sequence is exhausted or a decode has failed; Failed distinguishes
// the two.
func (s *LazySequence[T]) Next() (T, bool) {
	var zero T
	if s.failed || s.remaining == 0 {
		return zero, false
	}
	v, ok := s.elem(s.cursor, s.errs)
	if !ok {
		s.failed = true
		return zero, false
	}
	s.remaining--
	return v, true
}

// Failed reports whether a prior Next call hit a decode error.
func (s *LazySequence[T]) Failed() bool { return s.failed }

// ToSlice eagerly drains the remaining elements into a slice, for
// callers that want the Module convenience aggregate rather than
// streaming access.
func (s *LazySequence[T]) ToSlice() ([]T, bool) {
	out := make([]T, 0, s.remaining)
	for s.remaining > 0 {
		v, ok := s.Next()
		if !ok {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

// LazySection pairs a top-level section's id with a cursor positioned
// at its payload, deferring even the choice of which typed decoder to
// apply until the caller hands the Cursor below to one of the binary
// package's Decode* functions, modeled on wasp's lazy module/section
// split.
type LazySection struct {
	ID      wasp.SectionID
	Name    string // set only when ID == SectionCustom
	Payload []byte
	Offset  uint32
}

// Cursor returns a fresh cursor over the section's payload, positioned
// at its absolute offset.
func (s *LazySection) Cursor() *Cursor {
	return NewCursorAt(s.Payload, s.Offset)
}
