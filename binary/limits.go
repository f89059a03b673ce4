package binary

import (
	"fmt"

	"github.com/jgravelle-google/wasp"
	"github.com/jgravelle-google/wasp/leb128"
)

// limits flag bits, per the threads proposal's extension of the
// original has-max-only flag byte.
const (
	limitsFlagHasMax = 1 << 0
	limitsFlagShared = 1 << 1
)

// DecodeLimits decodes a table's or memory's {min, max?, shared?} bound.
func DecodeLimits(c *Cursor, desc string, features wasp.Features, errs wasp.ErrorSink) (wasp.Limits, bool) {
	guard := wasp.PushContext(errs, c.Offset(), desc)
	defer guard.Pop()

	flagsOffset := c.Offset()
	flags, ok := c.ReadU8(errs)
	if !ok {
		return wasp.Limits{}, false
	}
	if flags&^(limitsFlagHasMax|limitsFlagShared) != 0 {
		errs.OnError(flagsOffset, fmt.Sprintf("Invalid flags value: %d", flags))
		return wasp.Limits{}, false
	}
	if flags&limitsFlagShared != 0 && !features.Threads {
		errs.OnError(flagsOffset, "feature \"threads\" is disabled")
		return wasp.Limits{}, false
	}

	min, ok := c.ReadLEBU32("limits min", errs)
	if !ok {
		return wasp.Limits{}, false
	}

	var max *uint32
	if flags&limitsFlagHasMax != 0 {
		m, ok := c.ReadLEBU32("limits max", errs)
		if !ok {
			return wasp.Limits{}, false
		}
		max = &m
	}

	return wasp.Limits{Min: min, Max: max, Shared: wasp.Shared(flags&limitsFlagShared != 0)}, true
}

// EncodeLimits appends l's byte encoding to buf.
func EncodeLimits(buf []byte, l wasp.Limits) []byte {
	var flags byte
	if l.Max != nil {
		flags |= limitsFlagHasMax
	}
	if bool(l.Shared) {
		flags |= limitsFlagShared
	}
	buf = append(buf, flags)
	buf = append(buf, leb128.EncodeU32(l.Min)...)
	if l.Max != nil {
		buf = append(buf, leb128.EncodeU32(*l.Max)...)
	}
	return buf
}
