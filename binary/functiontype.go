package binary

import (
	"fmt"

	"github.com/jgravelle-google/wasp"
	"github.com/jgravelle-google/wasp/leb128"
)

const functionTypeTag = 0x60

// DecodeFunctionType decodes a `0x60`-tagged {params, results} pair.
// Multiple results are only legal when features.MultiValue is set.
func DecodeFunctionType(c *Cursor, features wasp.Features, errs wasp.ErrorSink) (*wasp.FunctionType, bool) {
	guard := wasp.PushContext(errs, c.Offset(), "function type")
	defer guard.Pop()

	tagOffset := c.Offset()
	tag, ok := c.ReadU8(errs)
	if !ok {
		return nil, false
	}
	if tag != functionTypeTag {
		errs.OnError(tagOffset, fmt.Sprintf("Invalid function type tag: expected 0x60, got %#x", tag))
		return nil, false
	}

	params, ok := ReadVector(c, "params", errs, func(c *Cursor, errs wasp.ErrorSink) (wasp.ValueType, bool) {
		return decodeValueTypeAt(c, features, errs)
	})
	if !ok {
		return nil, false
	}

	resultsOffset := c.Offset()
	results, ok := ReadVector(c, "results", errs, func(c *Cursor, errs wasp.ErrorSink) (wasp.ValueType, bool) {
		return decodeValueTypeAt(c, features, errs)
	})
	if !ok {
		return nil, false
	}
	if len(results) > 1 && !features.MultiValue {
		errs.OnError(resultsOffset, "feature \"multi_value\" is disabled")
		return nil, false
	}

	return &wasp.FunctionType{Params: params, Results: results}, true
}

func decodeValueTypeAt(c *Cursor, features wasp.Features, errs wasp.ErrorSink) (wasp.ValueType, bool) {
	offset := c.Offset()
	b, ok := c.ReadU8(errs)
	if !ok {
		return 0, false
	}
	v, err := DecodeValueType(b, features)
	if err != nil {
		errs.OnError(offset, err.Error())
		return 0, false
	}
	return v, true
}

// EncodeFunctionType appends t's byte encoding to buf.
func EncodeFunctionType(buf []byte, t *wasp.FunctionType) []byte {
	buf = append(buf, functionTypeTag)
	buf = append(buf, leb128.EncodeU32(uint32(len(t.Params)))...)
	for _, p := range t.Params {
		buf = append(buf, EncodeValueType(p))
	}
	buf = append(buf, leb128.EncodeU32(uint32(len(t.Results)))...)
	for _, r := range t.Results {
		buf = append(buf, EncodeValueType(r))
	}
	return buf
}
