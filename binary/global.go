package binary

import "github.com/jgravelle-google/wasp"

// DecodeGlobal decodes a global-section entry: its type plus constant
// initializer.
func DecodeGlobal(c *Cursor, features wasp.Features, errs wasp.ErrorSink) (*wasp.Global, bool) {
	guard := wasp.PushContext(errs, c.Offset(), "global")
	defer guard.Pop()

	gt, ok := decodeGlobalType(c, features, errs)
	if !ok {
		return nil, false
	}

	init, ok := DecodeConstantExpression(c, features, errs)
	if !ok {
		return nil, false
	}

	return &wasp.Global{Type: *gt, Init: *init}, true
}

func decodeGlobalType(c *Cursor, features wasp.Features, errs wasp.ErrorSink) (*wasp.GlobalType, bool) {
	guard := wasp.PushContext(errs, c.Offset(), "global type")
	defer guard.Pop()

	offset := c.Offset()
	b, ok := c.ReadU8(errs)
	if !ok {
		return nil, false
	}
	vt, err := DecodeValueType(b, features)
	if err != nil {
		errs.OnError(offset, err.Error())
		return nil, false
	}

	mutOffset := c.Offset()
	mb, ok := c.ReadU8(errs)
	if !ok {
		return nil, false
	}
	mut, err := DecodeMutability(mb)
	if err != nil {
		errs.OnError(mutOffset, err.Error())
		return nil, false
	}

	return &wasp.GlobalType{ValueType: vt, Mutability: mut}, true
}

// EncodeGlobal appends g's byte encoding to buf.
func EncodeGlobal(buf []byte, g *wasp.Global) []byte {
	buf = append(buf, EncodeValueType(g.Type.ValueType))
	buf = append(buf, EncodeMutability(g.Type.Mutability))
	return EncodeConstantExpression(buf, &g.Init)
}
