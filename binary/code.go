// Code bodies: a function's locals declarations followed by its
// instruction stream. Grounded on the teacher's code.go, which frames
// each entry as a length-prefixed blob and defers instruction decoding;
// this module additionally scans the body to its balanced end so the
// borrowed Expression span is always exact.
package binary

import (
	"github.com/jgravelle-google/wasp"
	"github.com/jgravelle-google/wasp/leb128"
)

// DecodeCode decodes one code-section entry: a byte-length-prefixed
// blob containing the locals vector and the body expression.
func DecodeCode(c *Cursor, features wasp.Features, errs wasp.ErrorSink) (*wasp.Code, bool) {
	guard := wasp.PushContext(errs, c.Offset(), "code")
	defer guard.Pop()

	size, ok := c.ReadLength("code size", errs)
	if !ok {
		return nil, false
	}
	bodyBytes, ok := c.ReadBytes(int(size), errs)
	if !ok {
		return nil, false
	}

	inner := NewCursorAt(bodyBytes, c.Offset()-size)
	locals, ok := ReadVector(inner, "locals", errs, decodeLocals)
	if !ok {
		return nil, false
	}

	expr, ok := decodeExpression(inner, features, errs)
	if !ok {
		return nil, false
	}
	if !inner.Empty() {
		errs.OnError(inner.Offset(), "Code section entry has trailing bytes after its body")
		return nil, false
	}

	return &wasp.Code{Locals: locals, Body: *expr}, true
}

func decodeLocals(c *Cursor, errs wasp.ErrorSink) (wasp.Locals, bool) {
	count, ok := c.ReadLEBU32("local count", errs)
	if !ok {
		return wasp.Locals{}, false
	}
	offset := c.Offset()
	b, ok := c.ReadU8(errs)
	if !ok {
		return wasp.Locals{}, false
	}
	t, err := DecodeValueType(b, wasp.All())
	if err != nil {
		errs.OnError(offset, err.Error())
		return wasp.Locals{}, false
	}
	return wasp.Locals{Count: count, Type: t}, true
}

// decodeExpression scans instructions, tracking nested block depth,
// until the end that closes the function's implicit outermost block.
// The returned Expression borrows the exact span scanned, including
// that final end.
func decodeExpression(c *Cursor, features wasp.Features, errs wasp.ErrorSink) (*wasp.Expression, bool) {
	start := c.Offset()
	startData := c.Remaining()

	depth := 0
	for {
		instr, ok := DecodeInstruction(c, features, errs)
		if !ok {
			return nil, false
		}
		switch instr.Opcode {
		case wasp.OpcodeBlock, wasp.OpcodeLoop, wasp.OpcodeIf, wasp.OpcodeTry:
			depth++
		case wasp.OpcodeEnd:
			if depth == 0 {
				n := c.Offset() - start
				return &wasp.Expression{Bytes: startData[:n]}, true
			}
			depth--
		}
	}
}

// EncodeCode appends code's length-prefixed encoding to buf.
func EncodeCode(buf []byte, code *wasp.Code) []byte {
	var body []byte
	body = append(body, leb128.EncodeU32(uint32(len(code.Locals)))...)
	for _, l := range code.Locals {
		body = append(body, leb128.EncodeU32(l.Count)...)
		body = append(body, EncodeValueType(l.Type))
	}
	body = append(body, code.Body.Bytes...)

	buf = append(buf, leb128.EncodeU32(uint32(len(body)))...)
	return append(buf, body...)
}
