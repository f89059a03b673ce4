// Constant expressions: globals' and active segments' offset
// initializers. Grounded on tetratelabs-wazero's const_expr.go, which
// restricts the opcode set accepted in this position, generalized to
// the full legality table spec.md §4.3/scenario 5 calls for (including
// ref.null/ref.func under reference_types; global.get is MVP).
package binary

import (
	"fmt"

	"github.com/jgravelle-google/wasp"
)

// constExprOpcodeAllowed reports whether op may appear as the single
// value-producing instruction of a constant expression.
func constExprOpcodeAllowed(op wasp.Opcode, features wasp.Features) bool {
	switch op {
	case wasp.OpcodeI32Const, wasp.OpcodeI64Const, wasp.OpcodeF32Const, wasp.OpcodeF64Const:
		return true
	case wasp.OpcodeGlobalGet:
		return true
	case wasp.OpcodeRefNull, wasp.OpcodeRefFunc:
		return features.ReferenceTypes
	default:
		return false
	}
}

// DecodeConstantExpression decodes and validates a constant expression:
// exactly one allowed value-producing instruction followed by end. The
// returned ConstantExpression borrows the exact byte span consumed,
// including the terminating end.
func DecodeConstantExpression(c *Cursor, features wasp.Features, errs wasp.ErrorSink) (*wasp.ConstantExpression, bool) {
	guard := wasp.PushContext(errs, c.Offset(), "constant expression")
	defer guard.Pop()

	start := c.Offset()
	startData := c.Remaining()

	instrOffset := c.Offset()
	instr, ok := DecodeInstruction(c, features, errs)
	if !ok {
		return nil, false
	}
	if !constExprOpcodeAllowed(instr.Opcode, features) {
		errs.OnError(instrOffset, fmt.Sprintf("Illegal instruction in constant expression: %s", wasp.InstructionName(instr.Opcode)))
		return nil, false
	}

	endOffset := c.Offset()
	if c.Empty() {
		errs.OnError(endOffset, "Unexpected end of constant expression")
		return nil, false
	}
	end, ok := c.ReadU8(errs)
	if !ok {
		return nil, false
	}
	if end != byte(wasp.OpcodeEnd) {
		errs.OnError(endOffset, "Expected end instruction")
		return nil, false
	}

	n := c.Offset() - start
	return &wasp.ConstantExpression{Bytes: startData[:n]}, true
}

// EncodeConstantExpression appends e's raw bytes to buf: ConstantExpression
// already stores the exact encoded span, including the terminating end.
func EncodeConstantExpression(buf []byte, e *wasp.ConstantExpression) []byte {
	return append(buf, e.Bytes...)
}
