// Instruction decoding: one opcode byte (or a two-byte-prefixed
// selector) followed by whichever immediate that opcode demands.
// Grounded on the teacher's internal/wasm/binary instruction switch
// (wazero's decodeBlockType / instruction-by-instruction encoding
// table) and, for the two-byte-prefixed families, on
// other_examples/ziggy42-epsilon's parser.go readOpcode, generalized to
// the third prefix (0xFE) per the Opcode type's doc comment.
package binary

import (
	"fmt"

	"github.com/jgravelle-google/wasp"
	"github.com/jgravelle-google/wasp/ieee754"
	"github.com/jgravelle-google/wasp/leb128"
)

// DecodeInstruction decodes one instruction: its opcode plus immediate.
func DecodeInstruction(c *Cursor, features wasp.Features, errs wasp.ErrorSink) (wasp.Instruction, bool) {
	opcodeOffset := c.Offset()
	b, ok := c.ReadU8(errs)
	if !ok {
		return wasp.Instruction{}, false
	}

	switch b {
	case 0xFC, 0xFD, 0xFE:
		selector, ok := c.ReadLEBU32("opcode selector", errs)
		if !ok {
			return wasp.Instruction{}, false
		}
		op := prefixBase(b) + wasp.Opcode(selector)
		return decodePrefixedImmediate(c, op, features, errs)
	default:
		return decodeSingleByteImmediate(c, wasp.Opcode(b), opcodeOffset, features, errs)
	}
}

func prefixBase(prefix byte) wasp.Opcode {
	switch prefix {
	case 0xFC:
		return 0xFC00
	case 0xFD:
		return 0xFD00
	default:
		return 0xFE00
	}
}

func decodeSingleByteImmediate(c *Cursor, op wasp.Opcode, opcodeOffset uint32, features wasp.Features, errs wasp.ErrorSink) (wasp.Instruction, bool) {
	if op == wasp.OpcodeReturnCall || op == wasp.OpcodeReturnCallIndirect {
		if err := features.Require("tail_call", features.TailCall); err != nil {
			errs.OnError(opcodeOffset, err.Error())
			return wasp.Instruction{}, false
		}
	}
	switch op {
	case wasp.OpcodeBlock, wasp.OpcodeLoop, wasp.OpcodeIf, wasp.OpcodeTry:
		bt, ok := decodeBlockType(c, features, errs)
		if !ok {
			return wasp.Instruction{}, false
		}
		return wasp.Instruction{Opcode: op, Immediate: bt}, true

	case wasp.OpcodeElse, wasp.OpcodeEnd, wasp.OpcodeUnreachable, wasp.OpcodeNop,
		wasp.OpcodeReturn, wasp.OpcodeDrop, wasp.OpcodeSelect, wasp.OpcodeRethrow, wasp.OpcodeCatch:
		return wasp.Instruction{Opcode: op}, true

	case wasp.OpcodeMemorySize, wasp.OpcodeMemoryGrow:
		// reserved byte, must be 0
		reservedOffset := c.Offset()
		reserved, ok := c.ReadU8(errs)
		if !ok {
			return wasp.Instruction{}, false
		}
		if reserved != 0 {
			errs.OnError(reservedOffset, fmt.Sprintf("Expected reserved byte 0, got %d", reserved))
			return wasp.Instruction{}, false
		}
		return wasp.Instruction{Opcode: op, Immediate: uint32(0)}, true

	case wasp.OpcodeBr, wasp.OpcodeBrIf, wasp.OpcodeCall, wasp.OpcodeReturnCall,
		wasp.OpcodeLocalGet, wasp.OpcodeLocalSet, wasp.OpcodeLocalTee,
		wasp.OpcodeGlobalGet, wasp.OpcodeGlobalSet, wasp.OpcodeTableGet, wasp.OpcodeTableSet,
		wasp.OpcodeRefFunc, wasp.OpcodeThrow:
		idx, ok := c.ReadLEBU32("index", errs)
		if !ok {
			return wasp.Instruction{}, false
		}
		return wasp.Instruction{Opcode: op, Immediate: idx}, true

	case wasp.OpcodeBrOnExn:
		if err := features.Require("exceptions", features.Exceptions); err != nil {
			errs.OnError(opcodeOffset, err.Error())
			return wasp.Instruction{}, false
		}
		label, ok := c.ReadLEBU32("label", errs)
		if !ok {
			return wasp.Instruction{}, false
		}
		idx, ok := c.ReadLEBU32("exception index", errs)
		if !ok {
			return wasp.Instruction{}, false
		}
		return wasp.Instruction{Opcode: op, Immediate: wasp.BrOnExnImmediate{Label: label, Index: idx}}, true

	case wasp.OpcodeBrTable:
		targets, ok := ReadVector(c, "br_table targets", errs, func(c *Cursor, errs wasp.ErrorSink) (uint32, bool) {
			return c.ReadLEBU32("target", errs)
		})
		if !ok {
			return wasp.Instruction{}, false
		}
		def, ok := c.ReadLEBU32("default target", errs)
		if !ok {
			return wasp.Instruction{}, false
		}
		return wasp.Instruction{Opcode: op, Immediate: wasp.BrTableImmediate{Targets: targets, Default: def}}, true

	case wasp.OpcodeCallIndirect, wasp.OpcodeReturnCallIndirect:
		typeIdx, ok := c.ReadLEBU32("type index", errs)
		if !ok {
			return wasp.Instruction{}, false
		}
		tableOffset := c.Offset()
		tableIdx, ok := c.ReadLEBU32("table index", errs)
		if !ok {
			return wasp.Instruction{}, false
		}
		if tableIdx != 0 && !features.ReferenceTypes {
			errs.OnError(tableOffset, "feature \"reference_types\" is disabled")
			return wasp.Instruction{}, false
		}
		return wasp.Instruction{Opcode: op, Immediate: wasp.CallIndirectImmediate{TypeIndex: typeIdx, TableIndex: tableIdx}}, true

	case wasp.OpcodeSelectT:
		if err := features.Require("reference_types", features.ReferenceTypes); err != nil {
			errs.OnError(opcodeOffset, err.Error())
			return wasp.Instruction{}, false
		}
		types, ok := ReadVector(c, "select types", errs, func(c *Cursor, errs wasp.ErrorSink) (wasp.ValueType, bool) {
			return decodeValueTypeAt(c, features, errs)
		})
		if !ok {
			return wasp.Instruction{}, false
		}
		return wasp.Instruction{Opcode: op, Immediate: types}, true

	case wasp.OpcodeRefNull:
		offset := c.Offset()
		rb, ok := c.ReadU8(errs)
		if !ok {
			return wasp.Instruction{}, false
		}
		rt, err := DecodeRefType(rb, features)
		if err != nil {
			errs.OnError(offset, err.Error())
			return wasp.Instruction{}, false
		}
		return wasp.Instruction{Opcode: op, Immediate: rt}, true

	case wasp.OpcodeRefIsNull:
		return wasp.Instruction{Opcode: op}, true

	case wasp.OpcodeI32Const:
		v, ok := c.ReadLEBS32("i32 const", errs)
		if !ok {
			return wasp.Instruction{}, false
		}
		return wasp.Instruction{Opcode: op, Immediate: v}, true

	case wasp.OpcodeI64Const:
		v, ok := c.ReadLEBS64("i64 const", errs)
		if !ok {
			return wasp.Instruction{}, false
		}
		return wasp.Instruction{Opcode: op, Immediate: v}, true

	case wasp.OpcodeF32Const:
		v, ok := c.ReadF32(errs)
		if !ok {
			return wasp.Instruction{}, false
		}
		return wasp.Instruction{Opcode: op, Immediate: v}, true

	case wasp.OpcodeF64Const:
		v, ok := c.ReadF64(errs)
		if !ok {
			return wasp.Instruction{}, false
		}
		return wasp.Instruction{Opcode: op, Immediate: v}, true

	case wasp.OpcodeI32Extend8S, wasp.OpcodeI32Extend16S, wasp.OpcodeI64Extend8S,
		wasp.OpcodeI64Extend16S, wasp.OpcodeI64Extend32S:
		if err := features.Require("sign_extension", features.SignExtension); err != nil {
			errs.OnError(opcodeOffset, err.Error())
			return wasp.Instruction{}, false
		}
		return wasp.Instruction{Opcode: op}, true

	default:
		if op >= wasp.OpcodeI32Load && op <= wasp.OpcodeI64Store32 {
			memarg, ok := decodeMemArg(c, errs)
			if !ok {
				return wasp.Instruction{}, false
			}
			return wasp.Instruction{Opcode: op, Immediate: memarg}, true
		}
		if op >= 0x45 && op <= 0xBF {
			// numeric instructions (i32.eqz through f64.reinterpret_i64)
			// carry no immediate
			return wasp.Instruction{Opcode: op}, true
		}
		errs.OnError(opcodeOffset, fmt.Sprintf("Unknown opcode: %#x", byte(op)))
		return wasp.Instruction{}, false
	}
}

func decodeMemArg(c *Cursor, errs wasp.ErrorSink) (wasp.MemArg, bool) {
	align, ok := c.ReadLEBU32("alignment", errs)
	if !ok {
		return wasp.MemArg{}, false
	}
	offset, ok := c.ReadLEBU32("offset", errs)
	if !ok {
		return wasp.MemArg{}, false
	}
	return wasp.MemArg{AlignLog2: align, Offset: offset}, true
}

func decodeBlockType(c *Cursor, features wasp.Features, errs wasp.ErrorSink) (wasp.BlockType, bool) {
	peek, ok := c.PeekU8()
	if !ok {
		errs.OnError(c.Offset(), "Unable to read u8")
		return wasp.BlockType{}, false
	}
	isVoid, isValue := DecodeBlockTypeTag(peek)
	switch {
	case isVoid:
		c.ReadU8(errs)
		return wasp.BlockType{Kind: wasp.BlockTypeVoid}, true
	case isValue:
		offset := c.Offset()
		c.ReadU8(errs)
		v, err := DecodeValueType(peek, features)
		if err != nil {
			errs.OnError(offset, err.Error())
			return wasp.BlockType{}, false
		}
		return wasp.BlockType{Kind: wasp.BlockTypeValue, Value: v}, true
	default:
		offset := c.Offset()
		idx, ok := c.ReadLEBS33AsS64("block type index", errs)
		if !ok {
			return wasp.BlockType{}, false
		}
		if idx < 0 {
			errs.OnError(offset, fmt.Sprintf("Invalid block type index: %d", idx))
			return wasp.BlockType{}, false
		}
		if err := features.Require("multi_value", features.MultiValue); err != nil {
			errs.OnError(offset, err.Error())
			return wasp.BlockType{}, false
		}
		return wasp.BlockType{Kind: wasp.BlockTypeIndex, Index: uint32(idx)}, true
	}
}

// decodePrefixedImmediate decodes the immediate for a two-byte-prefixed
// opcode. All saturating-trunc and bulk-memory selectors are named
// individually because their immediates vary; SIMD and atomic selectors
// are handled by range: the few that carry a memarg/shuffle/const
// immediate are named, every other SIMD selector is a plain
// arithmetic/lane op with no immediate bytes at all, and every other
// atomic selector is a memory access carrying a memarg.
func decodePrefixedImmediate(c *Cursor, op wasp.Opcode, features wasp.Features, errs wasp.ErrorSink) (wasp.Instruction, bool) {
	opcodeOffset := c.Offset()
	switch op {
	case wasp.OpcodeI32TruncSatF32S, wasp.OpcodeI32TruncSatF32U, wasp.OpcodeI32TruncSatF64S, wasp.OpcodeI32TruncSatF64U,
		wasp.OpcodeI64TruncSatF32S, wasp.OpcodeI64TruncSatF32U, wasp.OpcodeI64TruncSatF64S, wasp.OpcodeI64TruncSatF64U:
		if err := features.Require("saturating_float_to_int", features.SaturatingFloatToInt); err != nil {
			errs.OnError(opcodeOffset, err.Error())
			return wasp.Instruction{}, false
		}
		return wasp.Instruction{Opcode: op}, true

	case wasp.OpcodeMemoryInit, wasp.OpcodeTableInit:
		if err := features.Require("bulk_memory", features.BulkMemory); err != nil {
			errs.OnError(opcodeOffset, err.Error())
			return wasp.Instruction{}, false
		}
		segIdx, ok := c.ReadLEBU32("segment index", errs)
		if !ok {
			return wasp.Instruction{}, false
		}
		targetIdx, ok := c.ReadLEBU32("target index", errs)
		if !ok {
			return wasp.Instruction{}, false
		}
		return wasp.Instruction{Opcode: op, Immediate: wasp.InitImmediate{SegmentIndex: segIdx, TargetIndex: targetIdx}}, true

	case wasp.OpcodeDataDrop, wasp.OpcodeElemDrop:
		if err := features.Require("bulk_memory", features.BulkMemory); err != nil {
			errs.OnError(opcodeOffset, err.Error())
			return wasp.Instruction{}, false
		}
		idx, ok := c.ReadLEBU32("segment index", errs)
		if !ok {
			return wasp.Instruction{}, false
		}
		return wasp.Instruction{Opcode: op, Immediate: idx}, true

	case wasp.OpcodeMemoryCopy, wasp.OpcodeTableCopy:
		if err := features.Require("bulk_memory", features.BulkMemory); err != nil {
			errs.OnError(opcodeOffset, err.Error())
			return wasp.Instruction{}, false
		}
		dst, ok := c.ReadLEBU32("dst index", errs)
		if !ok {
			return wasp.Instruction{}, false
		}
		src, ok := c.ReadLEBU32("src index", errs)
		if !ok {
			return wasp.Instruction{}, false
		}
		return wasp.Instruction{Opcode: op, Immediate: wasp.CopyImmediate{DstIndex: dst, SrcIndex: src}}, true

	case wasp.OpcodeMemoryFill:
		if err := features.Require("bulk_memory", features.BulkMemory); err != nil {
			errs.OnError(opcodeOffset, err.Error())
			return wasp.Instruction{}, false
		}
		idx, ok := c.ReadLEBU32("memory index", errs)
		if !ok {
			return wasp.Instruction{}, false
		}
		return wasp.Instruction{Opcode: op, Immediate: idx}, true

	case wasp.OpcodeTableGrow, wasp.OpcodeTableSize, wasp.OpcodeTableFill:
		if err := features.Require("bulk_memory", features.BulkMemory); err != nil {
			errs.OnError(opcodeOffset, err.Error())
			return wasp.Instruction{}, false
		}
		idx, ok := c.ReadLEBU32("table index", errs)
		if !ok {
			return wasp.Instruction{}, false
		}
		return wasp.Instruction{Opcode: op, Immediate: idx}, true

	case wasp.OpcodeV128Load, wasp.OpcodeV128Store:
		if err := features.Require("simd", features.SIMD); err != nil {
			errs.OnError(opcodeOffset, err.Error())
			return wasp.Instruction{}, false
		}
		memarg, ok := decodeMemArg(c, errs)
		if !ok {
			return wasp.Instruction{}, false
		}
		return wasp.Instruction{Opcode: op, Immediate: memarg}, true

	case wasp.OpcodeV128Const:
		if err := features.Require("simd", features.SIMD); err != nil {
			errs.OnError(opcodeOffset, err.Error())
			return wasp.Instruction{}, false
		}
		b, ok := c.ReadBytes(16, errs)
		if !ok {
			return wasp.Instruction{}, false
		}
		var lanes [16]byte
		copy(lanes[:], b)
		return wasp.Instruction{Opcode: op, Immediate: lanes}, true

	case wasp.OpcodeI8x16Shuffle:
		if err := features.Require("simd", features.SIMD); err != nil {
			errs.OnError(opcodeOffset, err.Error())
			return wasp.Instruction{}, false
		}
		b, ok := c.ReadBytes(16, errs)
		if !ok {
			return wasp.Instruction{}, false
		}
		var lanes [16]byte
		copy(lanes[:], b)
		return wasp.Instruction{Opcode: op, Immediate: wasp.ShuffleImmediate{Lanes: lanes}}, true

	case wasp.OpcodeAtomicFence:
		if err := features.Require("threads", features.Threads); err != nil {
			errs.OnError(opcodeOffset, err.Error())
			return wasp.Instruction{}, false
		}
		// reserved byte, must be 0
		reservedOffset := c.Offset()
		reserved, ok := c.ReadU8(errs)
		if !ok {
			return wasp.Instruction{}, false
		}
		if reserved != 0 {
			errs.OnError(reservedOffset, fmt.Sprintf("Expected reserved byte 0, got %d", reserved))
			return wasp.Instruction{}, false
		}
		return wasp.Instruction{Opcode: op, Immediate: uint32(0)}, true

	default:
		switch {
		case op >= 0xFE00:
			if err := features.Require("threads", features.Threads); err != nil {
				errs.OnError(opcodeOffset, err.Error())
				return wasp.Instruction{}, false
			}
			memarg, ok := decodeMemArg(c, errs)
			if !ok {
				return wasp.Instruction{}, false
			}
			return wasp.Instruction{Opcode: op, Immediate: memarg}, true
		case op >= 0xFD00:
			if err := features.Require("simd", features.SIMD); err != nil {
				errs.OnError(opcodeOffset, err.Error())
				return wasp.Instruction{}, false
			}
			return wasp.Instruction{Opcode: op}, true
		default:
			errs.OnError(opcodeOffset, fmt.Sprintf("Unknown opcode: %#x", uint32(op)))
			return wasp.Instruction{}, false
		}
	}
}

// EncodeInstruction appends i's opcode and immediate bytes to buf.
// Composite opcodes (>= 0xFC00) are re-split into their prefix byte and
// LEB-encoded selector; everything below that is a plain single byte.
func EncodeInstruction(buf []byte, i wasp.Instruction) []byte {
	switch {
	case i.Opcode >= 0xFC00:
		prefix, selector := splitPrefixed(i.Opcode)
		buf = append(buf, prefix)
		buf = append(buf, leb128.EncodeU32(selector)...)
	default:
		buf = append(buf, byte(i.Opcode))
	}
	return encodeImmediate(buf, i)
}

func splitPrefixed(op wasp.Opcode) (prefix byte, selector uint32) {
	switch {
	case op >= 0xFE00:
		return 0xFE, uint32(op - 0xFE00)
	case op >= 0xFD00:
		return 0xFD, uint32(op - 0xFD00)
	default:
		return 0xFC, uint32(op - 0xFC00)
	}
}

func encodeImmediate(buf []byte, i wasp.Instruction) []byte {
	switch v := i.Immediate.(type) {
	case nil:
		return buf
	case wasp.BlockType:
		return encodeBlockType(buf, v)
	case wasp.MemArg:
		buf = append(buf, leb128.EncodeU32(v.AlignLog2)...)
		return append(buf, leb128.EncodeU32(v.Offset)...)
	case uint32:
		return append(buf, leb128.EncodeU32(v)...)
	case int32:
		return append(buf, leb128.EncodeS32(v)...)
	case int64:
		return append(buf, leb128.EncodeS64(v)...)
	case float32:
		return append(buf, ieee754.EncodeFloat32(v)...)
	case float64:
		return append(buf, ieee754.EncodeFloat64(v)...)
	case wasp.BrTableImmediate:
		buf = append(buf, leb128.EncodeU32(uint32(len(v.Targets)))...)
		for _, t := range v.Targets {
			buf = append(buf, leb128.EncodeU32(t)...)
		}
		return append(buf, leb128.EncodeU32(v.Default)...)
	case wasp.CallIndirectImmediate:
		buf = append(buf, leb128.EncodeU32(v.TypeIndex)...)
		return append(buf, leb128.EncodeU32(v.TableIndex)...)
	case wasp.BrOnExnImmediate:
		buf = append(buf, leb128.EncodeU32(v.Label)...)
		return append(buf, leb128.EncodeU32(v.Index)...)
	case wasp.InitImmediate:
		buf = append(buf, leb128.EncodeU32(v.SegmentIndex)...)
		return append(buf, leb128.EncodeU32(v.TargetIndex)...)
	case wasp.CopyImmediate:
		buf = append(buf, leb128.EncodeU32(v.DstIndex)...)
		return append(buf, leb128.EncodeU32(v.SrcIndex)...)
	case wasp.ShuffleImmediate:
		return append(buf, v.Lanes[:]...)
	case [16]byte:
		return append(buf, v[:]...)
	case wasp.RefType:
		return append(buf, EncodeRefType(v))
	case []wasp.ValueType:
		buf = append(buf, leb128.EncodeU32(uint32(len(v)))...)
		for _, t := range v {
			buf = append(buf, EncodeValueType(t))
		}
		return buf
	default:
		return buf
	}
}

func encodeBlockType(buf []byte, bt wasp.BlockType) []byte {
	switch bt.Kind {
	case wasp.BlockTypeVoid:
		return append(buf, 0x40)
	case wasp.BlockTypeValue:
		return append(buf, EncodeValueType(bt.Value))
	default:
		return append(buf, leb128.EncodeS33(int64(bt.Index))...)
	}
}
