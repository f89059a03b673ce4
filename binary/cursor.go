// Package binary implements the byte cursor, entity decoders, lazy
// sequences, module reader, and symmetric encoders for the WebAssembly
// binary module format.
//
// Grounded on tetratelabs-wazero's wasm/binary and internal/wasm/binary
// packages for the overall decode/encode split and per-entity function
// shape, generalized to the cursor-based, non-consuming-on-failure
// discipline wasp's read primitives (include/wasp/binary/read/*.h)
// require: the teacher reads directly from an io.Reader/bytes.Reader,
// which already advances on a partial read; Cursor instead only
// commits its position after a read fully succeeds, so a failed read
// never consumes bytes the caller did not ask for.
package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/jgravelle-google/wasp"
	"github.com/jgravelle-google/wasp/leb128"
)

// Cursor is an advanceable, non-owning view over a byte span. Offset
// tracks the absolute position of data[0] within the original input
// the module reader was given, so every diagnostic carries a location
// meaningful to the caller even when decoding has descended into a
// section's or subsection's own sub-span.
type Cursor struct {
	data   []byte
	offset uint32
}

// NewCursor wraps data as a cursor positioned at absolute offset 0.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// NewCursorAt wraps data as a cursor positioned at the given absolute
// offset, for decoding a sub-span (a section or subsection payload)
// that does not start at the beginning of the original input.
func NewCursorAt(data []byte, offset uint32) *Cursor {
	return &Cursor{data: data, offset: offset}
}

// Offset is the absolute position of the next unread byte.
func (c *Cursor) Offset() uint32 { return c.offset }

// Len is the number of unread bytes remaining.
func (c *Cursor) Len() int { return len(c.data) }

// Remaining returns the unread tail of the cursor's span, without
// advancing.
func (c *Cursor) Remaining() []byte { return c.data }

// Empty reports whether there are no unread bytes left.
func (c *Cursor) Empty() bool { return len(c.data) == 0 }

// PeekU8 returns the next byte without advancing. ok is false when the
// cursor is empty.
func (c *Cursor) PeekU8() (b byte, ok bool) {
	if len(c.data) < 1 {
		return 0, false
	}
	return c.data[0], true
}

// ReadU8 reads one byte.
func (c *Cursor) ReadU8(errs wasp.ErrorSink) (byte, bool) {
	if len(c.data) < 1 {
		errs.OnError(c.offset, "Unable to read u8")
		return 0, false
	}
	b := c.data[0]
	c.data = c.data[1:]
	c.offset++
	return b, true
}

// ReadBytes reads and returns a borrowed sub-span of length n,
// advancing by n.
func (c *Cursor) ReadBytes(n int, errs wasp.ErrorSink) ([]byte, bool) {
	if len(c.data) < n {
		errs.OnError(c.offset, fmt.Sprintf("Unable to read %d bytes", n))
		return nil, false
	}
	b := c.data[:n]
	c.data = c.data[n:]
	c.offset += uint32(n)
	return b, true
}

// ReadU32LE reads a little-endian fixed-width u32.
func (c *Cursor) ReadU32LE(errs wasp.ErrorSink) (uint32, bool) {
	b, ok := c.ReadBytes(4, errs)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b), true
}

// ReadF32 reads a little-endian IEEE 754 single-precision float.
func (c *Cursor) ReadF32(errs wasp.ErrorSink) (float32, bool) {
	b, ok := c.ReadBytes(4, errs)
	if !ok {
		return 0, false
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), true
}

// ReadF64 reads a little-endian IEEE 754 double-precision float.
func (c *Cursor) ReadF64(errs wasp.ErrorSink) (float64, bool) {
	b, ok := c.ReadBytes(8, errs)
	if !ok {
		return 0, false
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), true
}

// isTruncation reports whether err is the "ran out of bytes
// mid-sequence" case, which is always reported as "Unable to read u8"
// regardless of target width, per spec.
func isTruncation(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

// ReadLEBU32 decodes an unsigned LEB128 u32, pushing/popping desc as
// the context frame for any diagnostic emitted while reading it.
func (c *Cursor) ReadLEBU32(desc string, errs wasp.ErrorSink) (uint32, bool) {
	guard := wasp.PushContext(errs, c.offset, desc)
	defer guard.Pop()

	start := c.offset
	sr := &sliceReader{data: c.data}
	v, n, err := leb128.DecodeU32(sr, desc)
	if err != nil {
		if isTruncation(err) {
			errs.OnError(start, "Unable to read u8")
		} else {
			errs.OnError(start+uint32(n), err.Error())
		}
		return 0, false
	}
	c.data = sr.data
	c.offset += uint32(n)
	return v, true
}

// ReadLEBU64 decodes an unsigned LEB128 u64.
func (c *Cursor) ReadLEBU64(desc string, errs wasp.ErrorSink) (uint64, bool) {
	guard := wasp.PushContext(errs, c.offset, desc)
	defer guard.Pop()

	start := c.offset
	sr := &sliceReader{data: c.data}
	v, n, err := leb128.DecodeU64(sr, desc)
	if err != nil {
		if isTruncation(err) {
			errs.OnError(start, "Unable to read u8")
		} else {
			errs.OnError(start+uint32(n), err.Error())
		}
		return 0, false
	}
	c.data = sr.data
	c.offset += uint32(n)
	return v, true
}

// ReadLEBS32 decodes a signed LEB128 s32.
func (c *Cursor) ReadLEBS32(desc string, errs wasp.ErrorSink) (int32, bool) {
	guard := wasp.PushContext(errs, c.offset, desc)
	defer guard.Pop()

	start := c.offset
	sr := &sliceReader{data: c.data}
	v, n, err := leb128.DecodeS32(sr, desc)
	if err != nil {
		if isTruncation(err) {
			errs.OnError(start, "Unable to read u8")
		} else {
			errs.OnError(start+uint32(n), err.Error())
		}
		return 0, false
	}
	c.data = sr.data
	c.offset += uint32(n)
	return v, true
}

// ReadLEBS33AsS64 decodes a signed 33-bit LEB128, sign-extended to
// int64 — the block-type index encoding's width.
func (c *Cursor) ReadLEBS33AsS64(desc string, errs wasp.ErrorSink) (int64, bool) {
	guard := wasp.PushContext(errs, c.offset, desc)
	defer guard.Pop()

	start := c.offset
	sr := &sliceReader{data: c.data}
	v, n, err := leb128.DecodeS33AsS64(sr, desc)
	if err != nil {
		if isTruncation(err) {
			errs.OnError(start, "Unable to read u8")
		} else {
			errs.OnError(start+uint32(n), err.Error())
		}
		return 0, false
	}
	c.data = sr.data
	c.offset += uint32(n)
	return v, true
}

// ReadLEBS64 decodes a signed LEB128 s64.
func (c *Cursor) ReadLEBS64(desc string, errs wasp.ErrorSink) (int64, bool) {
	guard := wasp.PushContext(errs, c.offset, desc)
	defer guard.Pop()

	start := c.offset
	sr := &sliceReader{data: c.data}
	v, n, err := leb128.DecodeS64(sr, desc)
	if err != nil {
		if isTruncation(err) {
			errs.OnError(start, "Unable to read u8")
		} else {
			errs.OnError(start+uint32(n), err.Error())
		}
		return 0, false
	}
	c.data = sr.data
	c.offset += uint32(n)
	return v, true
}

// ReadLength decodes a LEB128 u32 length and additionally rejects a
// declared length that exceeds the bytes remaining in the cursor.
func (c *Cursor) ReadLength(desc string, errs wasp.ErrorSink) (uint32, bool) {
	start := c.offset
	n, ok := c.ReadLEBU32(desc, errs)
	if !ok {
		return 0, false
	}
	if int(n) > len(c.data) {
		errs.OnError(start, fmt.Sprintf("Count is longer than the data length: %d > %d", n, len(c.data)))
		return 0, false
	}
	return n, true
}

// ReadString decodes a length-prefixed UTF-8 string as a borrowed
// sub-span reinterpreted as a Go string. UTF-8 validity is left to a
// validation layer, not enforced here.
func (c *Cursor) ReadString(desc string, errs wasp.ErrorSink) (string, bool) {
	n, ok := c.ReadLength(desc, errs)
	if !ok {
		return "", false
	}
	b, ok := c.ReadBytes(int(n), errs)
	if !ok {
		return "", false
	}
	return string(b), true
}

// ReadVector decodes a length-prefixed vector of T: a LEB128 count
// followed by that many applications of elem. A failure at any element
// aborts the vector.
func ReadVector[T any](c *Cursor, desc string, errs wasp.ErrorSink, elem func(*Cursor, wasp.ErrorSink) (T, bool)) ([]T, bool) {
	n, ok := c.ReadLength(desc, errs)
	if !ok {
		return nil, false
	}
	out := make([]T, 0, n)
	for i := uint32(0); i < n; i++ {
		v, ok := elem(c, errs)
		if !ok {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

// sliceReader adapts a byte slice to io.Reader without touching the
// Cursor it came from: leb128's decode functions read byte-by-byte
// through this, and only once a decode fully succeeds does the caller
// copy the reader's remaining slice back into the cursor. This is what
// makes every ReadLEB* method above leave the cursor untouched on
// failure, matching the non-consumption-on-failure invariant.
type sliceReader struct {
	data []byte
}

func (r *sliceReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}
