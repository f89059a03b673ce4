package binary

import "github.com/jgravelle-google/wasp"

// DecodeMemoryType decodes a memory's page-count limits.
func DecodeMemoryType(c *Cursor, features wasp.Features, errs wasp.ErrorSink) (*wasp.MemoryType, bool) {
	guard := wasp.PushContext(errs, c.Offset(), "memory type")
	defer guard.Pop()

	limits, ok := DecodeLimits(c, "memory limits", features, errs)
	if !ok {
		return nil, false
	}
	return &wasp.MemoryType{Limits: limits}, true
}

// EncodeMemoryType appends m's byte encoding to buf.
func EncodeMemoryType(buf []byte, m *wasp.MemoryType) []byte {
	return EncodeLimits(buf, m.Limits)
}
