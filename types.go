package wasp

import "fmt"

// SectionID identifies a top-level module section. Values 0-11 are the
// MVP section ids; DataCount (12) is added by the bulk-memory proposal.
type SectionID byte

const (
	SectionCustom    SectionID = 0
	SectionType      SectionID = 1
	SectionImport    SectionID = 2
	SectionFunction  SectionID = 3
	SectionTable     SectionID = 4
	SectionMemory    SectionID = 5
	SectionGlobal    SectionID = 6
	SectionExport    SectionID = 7
	SectionStart     SectionID = 8
	SectionElement   SectionID = 9
	SectionCode      SectionID = 10
	SectionData      SectionID = 11
	SectionDataCount SectionID = 12
)

func (id SectionID) String() string {
	switch id {
	case SectionCustom:
		return "custom"
	case SectionType:
		return "type"
	case SectionImport:
		return "import"
	case SectionFunction:
		return "function"
	case SectionTable:
		return "table"
	case SectionMemory:
		return "memory"
	case SectionGlobal:
		return "global"
	case SectionExport:
		return "export"
	case SectionStart:
		return "start"
	case SectionElement:
		return "element"
	case SectionCode:
		return "code"
	case SectionData:
		return "data"
	case SectionDataCount:
		return "data count"
	default:
		return fmt.Sprintf("section(%d)", byte(id))
	}
}

// ValueType is a one-byte Wasm value type. I32/I64/F32/F64 are MVP; the
// rest are feature-gated (v128 by simd, FuncRef/ExternRef by
// reference_types — reference types also double as table element
// types, see RefType).
type ValueType byte

const (
	ValueTypeI32      ValueType = 0x7F
	ValueTypeI64      ValueType = 0x7E
	ValueTypeF32      ValueType = 0x7D
	ValueTypeF64      ValueType = 0x7C
	ValueTypeV128     ValueType = 0x7B
	ValueTypeFuncRef  ValueType = 0x70
	ValueTypeExternRef ValueType = 0x6F
)

func (v ValueType) String() string {
	switch v {
	case ValueTypeI32:
		return "i32"
	case ValueTypeI64:
		return "i64"
	case ValueTypeF32:
		return "f32"
	case ValueTypeF64:
		return "f64"
	case ValueTypeV128:
		return "v128"
	case ValueTypeFuncRef:
		return "funcref"
	case ValueTypeExternRef:
		return "externref"
	default:
		return fmt.Sprintf("valtype(%#x)", byte(v))
	}
}

// RefType is the element type of a table. funcref is MVP; externref is
// added by reference_types.
type RefType byte

const (
	RefTypeFuncRef   RefType = 0x70
	RefTypeExternRef RefType = 0x6F
)

func (t RefType) String() string {
	switch t {
	case RefTypeFuncRef:
		return "funcref"
	case RefTypeExternRef:
		return "externref"
	default:
		return fmt.Sprintf("reftype(%#x)", byte(t))
	}
}

// ExternalKind tags the descriptor carried by an Import or the target
// kind of an Export. Tag is added by the exceptions proposal.
type ExternalKind byte

const (
	ExternalKindFunction ExternalKind = 0
	ExternalKindTable    ExternalKind = 1
	ExternalKindMemory   ExternalKind = 2
	ExternalKindGlobal   ExternalKind = 3
	ExternalKindTag      ExternalKind = 4
)

func (k ExternalKind) String() string {
	switch k {
	case ExternalKindFunction:
		return "func"
	case ExternalKindTable:
		return "table"
	case ExternalKindMemory:
		return "memory"
	case ExternalKindGlobal:
		return "global"
	case ExternalKindTag:
		return "tag"
	default:
		return fmt.Sprintf("kind(%d)", byte(k))
	}
}

// Mutability tags a GlobalType.
type Mutability byte

const (
	Const Mutability = 0
	Var   Mutability = 1
)

func (m Mutability) String() string {
	if m == Var {
		return "var"
	}
	return "const"
}

// Shared tags a Limits (threads proposal).
type Shared bool

const (
	No  Shared = false
	Yes Shared = true
)
