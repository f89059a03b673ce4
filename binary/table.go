package binary

import "github.com/jgravelle-google/wasp"

// DecodeTableType decodes a table's {element type, limits}.
func DecodeTableType(c *Cursor, features wasp.Features, errs wasp.ErrorSink) (*wasp.TableType, bool) {
	guard := wasp.PushContext(errs, c.Offset(), "table type")
	defer guard.Pop()

	offset := c.Offset()
	b, ok := c.ReadU8(errs)
	if !ok {
		return nil, false
	}
	elem, err := DecodeRefType(b, features)
	if err != nil {
		errs.OnError(offset, err.Error())
		return nil, false
	}

	limits, ok := DecodeLimits(c, "table limits", features, errs)
	if !ok {
		return nil, false
	}

	return &wasp.TableType{ElementType: elem, Limits: limits}, true
}

// EncodeTableType appends t's byte encoding to buf.
func EncodeTableType(buf []byte, t *wasp.TableType) []byte {
	buf = append(buf, EncodeRefType(t.ElementType))
	return EncodeLimits(buf, t.Limits)
}
