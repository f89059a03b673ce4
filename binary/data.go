// Data segments: the bulk-memory proposal's passive variant alongside
// the MVP active-only shape, mirroring the element segment's flags
// byte at smaller scale (0=active implicit memory 0, 1=passive,
// 2=active explicit memory index). Grounded on
// tetratelabs-wazero/internal/wasm/binary/data.go.
package binary

import (
	"fmt"

	"github.com/jgravelle-google/wasp"
	"github.com/jgravelle-google/wasp/leb128"
)

// DecodeDataSegment decodes one data-section entry.
func DecodeDataSegment(c *Cursor, features wasp.Features, errs wasp.ErrorSink) (*wasp.DataSegment, bool) {
	guard := wasp.PushContext(errs, c.Offset(), "data segment")
	defer guard.Pop()

	flagsOffset := c.Offset()
	flags, ok := c.ReadLEBU32("data segment flags", errs)
	if !ok {
		return nil, false
	}
	if flags > 2 {
		errs.OnError(flagsOffset, fmt.Sprintf("Invalid data segment flags: %d", flags))
		return nil, false
	}
	if flags != 0 {
		if err := features.Require("bulk_memory", features.BulkMemory); err != nil {
			errs.OnError(flagsOffset, err.Error())
			return nil, false
		}
	}

	seg := &wasp.DataSegment{}
	switch flags {
	case 0, 2:
		seg.Mode = wasp.DataModeActive
		if flags == 2 {
			idx, ok := c.ReadLEBU32("memory index", errs)
			if !ok {
				return nil, false
			}
			seg.MemoryIndex = idx
		}
		offset, ok := DecodeConstantExpression(c, features, errs)
		if !ok {
			return nil, false
		}
		seg.Offset = offset
	case 1:
		seg.Mode = wasp.DataModePassive
	}

	init, ok := c.ReadLength("data size", errs)
	if !ok {
		return nil, false
	}
	b, ok := c.ReadBytes(int(init), errs)
	if !ok {
		return nil, false
	}
	seg.Init = b
	return seg, true
}

// EncodeDataSegment appends seg's byte encoding to buf.
func EncodeDataSegment(buf []byte, seg *wasp.DataSegment) []byte {
	var flags uint32
	switch {
	case seg.Mode == wasp.DataModePassive:
		flags = 1
	case seg.MemoryIndex != 0:
		flags = 2
	default:
		flags = 0
	}

	buf = append(buf, leb128.EncodeU32(flags)...)
	if seg.Mode == wasp.DataModeActive {
		if flags == 2 {
			buf = append(buf, leb128.EncodeU32(seg.MemoryIndex)...)
		}
		buf = EncodeConstantExpression(buf, seg.Offset)
	}
	buf = append(buf, leb128.EncodeU32(uint32(len(seg.Init)))...)
	return append(buf, seg.Init...)
}
