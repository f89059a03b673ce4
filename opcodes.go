package wasp

import "fmt"

// Opcode is the decoded numeric opcode of an instruction. Single-byte
// MVP opcodes occupy 0x00-0xFF directly; the post-MVP two-byte-prefixed
// families (0xFC, 0xFD, 0xFE) are folded into the composite ranges
// 0xFC00+selector / 0xFD00+selector / 0xFE00+selector, following the
// prefix+LEB-selector pattern the specification mandates (spec.md §9's
// first open question) — grounded on the two-byte opcode handling in
// other_examples/ziggy42-epsilon's parser.go readOpcode, generalized
// from its two prefixes (0xFC/0xFD) to the third (0xFE, atomics).
type Opcode uint32

const (
	OpcodeUnreachable Opcode = 0x00
	OpcodeNop         Opcode = 0x01
	OpcodeBlock       Opcode = 0x02
	OpcodeLoop        Opcode = 0x03
	OpcodeIf          Opcode = 0x04
	OpcodeElse        Opcode = 0x05
	OpcodeTry         Opcode = 0x06
	OpcodeCatch       Opcode = 0x07
	OpcodeThrow       Opcode = 0x08
	OpcodeRethrow     Opcode = 0x09
	OpcodeBrOnExn     Opcode = 0x0A
	OpcodeEnd         Opcode = 0x0B
	OpcodeBr          Opcode = 0x0C
	OpcodeBrIf        Opcode = 0x0D
	OpcodeBrTable     Opcode = 0x0E
	OpcodeReturn      Opcode = 0x0F
	OpcodeCall        Opcode = 0x10
	OpcodeCallIndirect Opcode = 0x11

	OpcodeReturnCall         Opcode = 0x12
	OpcodeReturnCallIndirect Opcode = 0x13

	OpcodeDrop   Opcode = 0x1A
	OpcodeSelect Opcode = 0x1B
	OpcodeSelectT Opcode = 0x1C

	OpcodeLocalGet  Opcode = 0x20
	OpcodeLocalSet  Opcode = 0x21
	OpcodeLocalTee  Opcode = 0x22
	OpcodeGlobalGet Opcode = 0x23
	OpcodeGlobalSet Opcode = 0x24
	OpcodeTableGet  Opcode = 0x25
	OpcodeTableSet  Opcode = 0x26

	OpcodeI32Load    Opcode = 0x28
	OpcodeI64Load    Opcode = 0x29
	OpcodeF32Load    Opcode = 0x2A
	OpcodeF64Load    Opcode = 0x2B
	OpcodeI32Load8S  Opcode = 0x2C
	OpcodeI32Load8U  Opcode = 0x2D
	OpcodeI32Load16S Opcode = 0x2E
	OpcodeI32Load16U Opcode = 0x2F
	OpcodeI64Load8S  Opcode = 0x30
	OpcodeI64Load8U  Opcode = 0x31
	OpcodeI64Load16S Opcode = 0x32
	OpcodeI64Load16U Opcode = 0x33
	OpcodeI64Load32S Opcode = 0x34
	OpcodeI64Load32U Opcode = 0x35
	OpcodeI32Store   Opcode = 0x36
	OpcodeI64Store   Opcode = 0x37
	OpcodeF32Store   Opcode = 0x38
	OpcodeF64Store   Opcode = 0x39
	OpcodeI32Store8  Opcode = 0x3A
	OpcodeI32Store16 Opcode = 0x3B
	OpcodeI64Store8  Opcode = 0x3C
	OpcodeI64Store16 Opcode = 0x3D
	OpcodeI64Store32 Opcode = 0x3E

	OpcodeMemorySize Opcode = 0x3F
	OpcodeMemoryGrow Opcode = 0x40

	OpcodeI32Const Opcode = 0x41
	OpcodeI64Const Opcode = 0x42
	OpcodeF32Const Opcode = 0x43
	OpcodeF64Const Opcode = 0x44

	OpcodeI32Extend8S  Opcode = 0xC0
	OpcodeI32Extend16S Opcode = 0xC1
	OpcodeI64Extend8S  Opcode = 0xC2
	OpcodeI64Extend16S Opcode = 0xC3
	OpcodeI64Extend32S Opcode = 0xC4

	OpcodeRefNull   Opcode = 0xD0
	OpcodeRefIsNull Opcode = 0xD1
	OpcodeRefFunc   Opcode = 0xD2
)

// Two-byte-prefixed composite opcodes (0xFC = saturating trunc / bulk
// memory, 0xFD = SIMD, 0xFE = threads/atomics). The low bits are the
// LEB-encoded selector read after the prefix byte.
const (
	prefixSatTruncBulkMemory Opcode = 0xFC00
	prefixSIMD               Opcode = 0xFD00
	prefixAtomic              Opcode = 0xFE00
)

const (
	OpcodeI32TruncSatF32S = prefixSatTruncBulkMemory + 0
	OpcodeI32TruncSatF32U = prefixSatTruncBulkMemory + 1
	OpcodeI32TruncSatF64S = prefixSatTruncBulkMemory + 2
	OpcodeI32TruncSatF64U = prefixSatTruncBulkMemory + 3
	OpcodeI64TruncSatF32S = prefixSatTruncBulkMemory + 4
	OpcodeI64TruncSatF32U = prefixSatTruncBulkMemory + 5
	OpcodeI64TruncSatF64S = prefixSatTruncBulkMemory + 6
	OpcodeI64TruncSatF64U = prefixSatTruncBulkMemory + 7

	OpcodeMemoryInit = prefixSatTruncBulkMemory + 8
	OpcodeDataDrop   = prefixSatTruncBulkMemory + 9
	OpcodeMemoryCopy = prefixSatTruncBulkMemory + 10
	OpcodeMemoryFill = prefixSatTruncBulkMemory + 11
	OpcodeTableInit  = prefixSatTruncBulkMemory + 12
	OpcodeElemDrop   = prefixSatTruncBulkMemory + 13
	OpcodeTableCopy  = prefixSatTruncBulkMemory + 14
	OpcodeTableGrow  = prefixSatTruncBulkMemory + 15
	OpcodeTableSize  = prefixSatTruncBulkMemory + 16
	OpcodeTableFill  = prefixSatTruncBulkMemory + 17
)

const (
	OpcodeV128Load     = prefixSIMD + 0
	OpcodeV128Store    = prefixSIMD + 11
	OpcodeV128Const    = prefixSIMD + 12
	OpcodeI8x16Shuffle = prefixSIMD + 13
)

const (
	OpcodeMemoryAtomicNotify = prefixAtomic + 0
	OpcodeMemoryAtomicWait32 = prefixAtomic + 1
	OpcodeMemoryAtomicWait64 = prefixAtomic + 2
	OpcodeAtomicFence        = prefixAtomic + 3
)

// InstructionName returns a human-readable mnemonic for opcodes that
// have one defined above; unrecognized opcodes report their numeric
// value, matching the format used by the "Illegal instruction in
// constant expression" / "Unknown opcode" diagnostics (spec.md §7).
func InstructionName(op Opcode) string {
	switch op {
	case OpcodeUnreachable:
		return "unreachable"
	case OpcodeNop:
		return "nop"
	case OpcodeBlock:
		return "block"
	case OpcodeLoop:
		return "loop"
	case OpcodeIf:
		return "if"
	case OpcodeElse:
		return "else"
	case OpcodeTry:
		return "try"
	case OpcodeCatch:
		return "catch"
	case OpcodeThrow:
		return "throw"
	case OpcodeRethrow:
		return "rethrow"
	case OpcodeBrOnExn:
		return "br_on_exn"
	case OpcodeEnd:
		return "end"
	case OpcodeBr:
		return "br"
	case OpcodeBrIf:
		return "br_if"
	case OpcodeBrTable:
		return "br_table"
	case OpcodeReturn:
		return "return"
	case OpcodeCall:
		return "call"
	case OpcodeCallIndirect:
		return "call_indirect"
	case OpcodeReturnCall:
		return "return_call"
	case OpcodeReturnCallIndirect:
		return "return_call_indirect"
	case OpcodeDrop:
		return "drop"
	case OpcodeSelect:
		return "select"
	case OpcodeSelectT:
		return "select_t"
	case OpcodeLocalGet:
		return "local.get"
	case OpcodeLocalSet:
		return "local.set"
	case OpcodeLocalTee:
		return "local.tee"
	case OpcodeGlobalGet:
		return "global.get"
	case OpcodeGlobalSet:
		return "global.set"
	case OpcodeI32Const:
		return "i32.const"
	case OpcodeI64Const:
		return "i64.const"
	case OpcodeF32Const:
		return "f32.const"
	case OpcodeF64Const:
		return "f64.const"
	case OpcodeMemorySize:
		return "memory.size"
	case OpcodeMemoryGrow:
		return "memory.grow"
	case OpcodeRefNull:
		return "ref.null"
	case OpcodeRefIsNull:
		return "ref.is_null"
	case OpcodeRefFunc:
		return "ref.func"
	default:
		return opcodeFallbackName(op)
	}
}

func opcodeFallbackName(op Opcode) string {
	switch {
	case op >= prefixAtomic:
		return fmt.Sprintf("atomic.op(%#x)", uint32(op-prefixAtomic))
	case op >= prefixSIMD:
		return fmt.Sprintf("v128.op(%#x)", uint32(op-prefixSIMD))
	case op >= prefixSatTruncBulkMemory:
		return fmt.Sprintf("bulk.op(%#x)", uint32(op-prefixSatTruncBulkMemory))
	default:
		return fmt.Sprintf("op(%#x)", uint32(op))
	}
}
