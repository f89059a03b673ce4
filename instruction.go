package wasp

// BlockTypeKind tags a BlockType's variant.
type BlockTypeKind byte

const (
	BlockTypeVoid  BlockTypeKind = iota // no result
	BlockTypeValue                      // a single ValueType result
	BlockTypeIndex                      // a FunctionType index (multi_value)
)

// BlockType is the immediate of block/loop/if/try. Void and a single
// ValueType are MVP; referencing a type index by signed LEB requires
// multi_value.
type BlockType struct {
	Kind  BlockTypeKind
	Value ValueType
	Index uint32
}

// BrTableImmediate is br_table's immediate: a vector of branch targets
// plus the default taken when the scrutinee is out of range.
type BrTableImmediate struct {
	Targets []uint32
	Default uint32
}

// CallIndirectImmediate is call_indirect's immediate. TableIndex is the
// reserved byte in the MVP encoding (must be 0); reference_types
// relaxes it to name a non-zero table.
type CallIndirectImmediate struct {
	TypeIndex  uint32
	TableIndex uint32
}

// BrOnExnImmediate is br_on_exn's immediate (exceptions).
type BrOnExnImmediate struct {
	Label uint32
	Index uint32
}

// InitImmediate is the immediate of memory.init/table.init: a segment
// index plus the target memory or table index (bulk_memory).
type InitImmediate struct {
	SegmentIndex uint32
	TargetIndex  uint32
}

// CopyImmediate is the immediate of memory.copy/table.copy: destination
// and source indices (bulk_memory).
type CopyImmediate struct {
	DstIndex uint32
	SrcIndex uint32
}

// ShuffleImmediate is i8x16.shuffle's 16 lane-index bytes (simd).
type ShuffleImmediate struct {
	Lanes [16]byte
}

// Instruction is one decoded instruction: an Opcode plus whichever
// immediate its opcode demands. Immediate is nil for opcodes that carry
// no immediate bytes at all. The concrete dynamic type of Immediate is
// one of: nil, BlockType, MemArg, uint32 (a plain index or reserved
// byte), int32, int64, float32, float64, BrTableImmediate,
// CallIndirectImmediate, BrOnExnImmediate, InitImmediate, CopyImmediate,
// ShuffleImmediate, [16]byte (v128.const), RefType (ref.null),
// []ValueType (typed select).
type Instruction struct {
	Opcode    Opcode
	Immediate any
}

// ConstantExpression is the borrowed span of a restricted instruction
// sequence (one value-producing instruction followed by end) used as an
// initializer for globals and segment offsets. It is not parsed beyond
// validating that single instruction; the stored Bytes span includes
// the terminating end.
type ConstantExpression struct {
	Bytes []byte
}

// Expression is the borrowed span of a code body's instruction stream,
// from the first instruction through the end that closes the
// function's implicit outermost block.
type Expression struct {
	Bytes []byte
}
