// Element segments: the full flags-byte-driven format added by the
// bulk-memory and reference-types proposals on top of the MVP's single
// active-table-0 shape. Grounded on tetratelabs-wazero's
// internal/wasm/binary/element.go, which already implements this full
// flag space and gates it behind enabledFeatures.Require(
// wasm.FeatureBulkMemoryOperations) at the same call sites generalized
// here.
package binary

import (
	"fmt"

	"github.com/jgravelle-google/wasp"
	"github.com/jgravelle-google/wasp/leb128"
)

const (
	elementFlagPassiveOrDeclarative = 1 << 0
	elementFlagExplicitOrDeclared   = 1 << 1
	elementFlagExprInit             = 1 << 2
)

// DecodeElementSegment decodes one element-section entry across the
// full flags 0-7 space. Flags other than 0 require bulk_memory; a
// reftype other than funcref additionally requires reference_types.
func DecodeElementSegment(c *Cursor, features wasp.Features, errs wasp.ErrorSink) (*wasp.ElementSegment, bool) {
	guard := wasp.PushContext(errs, c.Offset(), "element segment")
	defer guard.Pop()

	flagsOffset := c.Offset()
	flags, ok := c.ReadLEBU32("element flags", errs)
	if !ok {
		return nil, false
	}
	if flags > 7 {
		errs.OnError(flagsOffset, fmt.Sprintf("Invalid element segment flags: %d", flags))
		return nil, false
	}
	if flags != 0 {
		if err := features.Require("bulk_memory", features.BulkMemory); err != nil {
			errs.OnError(flagsOffset, err.Error())
			return nil, false
		}
	}

	seg := &wasp.ElementSegment{}

	passiveOrDeclarative := flags&elementFlagPassiveOrDeclarative != 0
	explicitOrDeclared := flags&elementFlagExplicitOrDeclared != 0
	exprInit := flags&elementFlagExprInit != 0

	switch {
	case !passiveOrDeclarative:
		seg.Mode = wasp.ElementModeActive
		if explicitOrDeclared {
			idx, ok := c.ReadLEBU32("table index", errs)
			if !ok {
				return nil, false
			}
			seg.TableIndex = idx
		}
		offset, ok := DecodeConstantExpression(c, features, errs)
		if !ok {
			return nil, false
		}
		seg.Offset = offset
	case explicitOrDeclared:
		seg.Mode = wasp.ElementModeDeclarative
	default:
		seg.Mode = wasp.ElementModePassive
	}

	if !exprInit {
		seg.Type = wasp.RefTypeFuncRef
		if flags == 0 {
			// format 0: no elemkind byte at all, implicit funcref
		} else {
			kindOffset := c.Offset()
			kb, ok := c.ReadU8(errs)
			if !ok {
				return nil, false
			}
			if kb != 0x00 {
				errs.OnError(kindOffset, fmt.Sprintf("Invalid element kind: %#x", kb))
				return nil, false
			}
		}
		indices, ok := ReadVector(c, "element init", errs, func(c *Cursor, errs wasp.ErrorSink) (*uint32, bool) {
			idx, ok := c.ReadLEBU32("function index", errs)
			if !ok {
				return nil, false
			}
			v := idx
			return &v, true
		})
		if !ok {
			return nil, false
		}
		seg.Init = indices
		return seg, true
	}

	if flags == 4 {
		seg.Type = wasp.RefTypeFuncRef
	} else {
		rtOffset := c.Offset()
		rb, ok := c.ReadU8(errs)
		if !ok {
			return nil, false
		}
		rt, err := DecodeRefType(rb, features)
		if err != nil {
			errs.OnError(rtOffset, err.Error())
			return nil, false
		}
		seg.Type = rt
	}

	init, ok := ReadVector(c, "element init", errs, func(c *Cursor, errs wasp.ErrorSink) (*uint32, bool) {
		return decodeElementExpression(c, features, errs)
	})
	if !ok {
		return nil, false
	}
	seg.Init = init
	return seg, true
}

// decodeElementExpression decodes one element-init expression: either
// `ref.null t end` (nil) or `ref.func x end` (the function index).
func decodeElementExpression(c *Cursor, features wasp.Features, errs wasp.ErrorSink) (*uint32, bool) {
	guard := wasp.PushContext(errs, c.Offset(), "element expression")
	defer guard.Pop()

	opcodeOffset := c.Offset()
	op, ok := c.ReadU8(errs)
	if !ok {
		return nil, false
	}

	var result *uint32
	switch wasp.Opcode(op) {
	case wasp.OpcodeRefNull:
		rtOffset := c.Offset()
		rb, ok := c.ReadU8(errs)
		if !ok {
			return nil, false
		}
		if _, err := DecodeRefType(rb, features); err != nil {
			errs.OnError(rtOffset, err.Error())
			return nil, false
		}
		result = nil
	case wasp.OpcodeRefFunc:
		idx, ok := c.ReadLEBU32("function index", errs)
		if !ok {
			return nil, false
		}
		result = &idx
	default:
		errs.OnError(opcodeOffset, fmt.Sprintf("Illegal instruction in element expression: %s", wasp.InstructionName(wasp.Opcode(op))))
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
	return result, true
}

// EncodeElementSegment appends seg's byte encoding to buf, choosing the
// narrowest flags value its contents are representable with.
func EncodeElementSegment(buf []byte, seg *wasp.ElementSegment) []byte {
	usesExpr := seg.Type == wasp.RefTypeExternRef
	for _, idx := range seg.Init {
		if idx == nil {
			usesExpr = true
		}
	}
	var flags uint32
	switch seg.Mode {
	case wasp.ElementModeActive:
		// flags 4 implies funcref, so a non-funcref active segment
		// needs the explicit-table form (6) to carry its reftype byte.
		if seg.TableIndex != 0 || seg.Type == wasp.RefTypeExternRef {
			flags = elementFlagExplicitOrDeclared
		}
	case wasp.ElementModePassive:
		flags = elementFlagPassiveOrDeclarative
	case wasp.ElementModeDeclarative:
		flags = elementFlagPassiveOrDeclarative | elementFlagExplicitOrDeclared
	}
	if usesExpr {
		flags |= elementFlagExprInit
	}

	buf = append(buf, leb128.EncodeU32(flags)...)

	if seg.Mode == wasp.ElementModeActive {
		if flags&elementFlagExplicitOrDeclared != 0 {
			buf = append(buf, leb128.EncodeU32(seg.TableIndex)...)
		}
		buf = EncodeConstantExpression(buf, seg.Offset)
	}

	if flags&elementFlagExprInit == 0 {
		if flags != 0 {
			buf = append(buf, 0x00)
		}
		for _, idx := range seg.Init {
			buf = append(buf, leb128.EncodeU32(*idx)...)
		}
		return buf
	}

	if flags != 4 {
		buf = append(buf, EncodeRefType(seg.Type))
	}
	for _, idx := range seg.Init {
		if idx == nil {
			buf = append(buf, byte(wasp.OpcodeRefNull), EncodeRefType(seg.Type), byte(wasp.OpcodeEnd))
		} else {
			buf = append(buf, byte(wasp.OpcodeRefFunc))
			buf = append(buf, leb128.EncodeU32(*idx)...)
			buf = append(buf, byte(wasp.OpcodeEnd))
		}
	}
	return buf
}
