package wasp

// ElementMode tags an ElementSegment's variant.
type ElementMode byte

const (
	ElementModeActive      ElementMode = iota
	ElementModePassive
	ElementModeDeclarative
)

// ElementSegment initializes a table (Active, at module-instantiation
// time, against an explicit offset) or supplies indices for later use
// by table.init (Passive) or validation-only reference (Declarative).
// Active is the only MVP variant; Passive/Declarative require
// bulk_memory.
type ElementSegment struct {
	Mode       ElementMode
	TableIndex uint32
	Offset     *ConstantExpression // non-nil only when Mode == ElementModeActive
	Type       RefType
	// Init holds one entry per element. A nil entry is a ref.null
	// initializer; otherwise it is the initializing function index.
	Init []*uint32
}

// DataMode tags a DataSegment's variant.
type DataMode byte

const (
	DataModeActive  DataMode = iota
	DataModePassive
)

// DataSegment initializes a memory region (Active) or supplies bytes
// for later use by memory.init (Passive, requires bulk_memory).
type DataSegment struct {
	Mode        DataMode
	MemoryIndex uint32
	Offset      *ConstantExpression // non-nil only when Mode == DataModeActive
	Init        []byte
}

// Locals is one run-length-encoded group of a function's local
// variable declarations.
type Locals struct {
	Count uint32
	Type  ValueType
}

// Code is a function body: its locals declarations followed by its
// instruction expression.
type Code struct {
	Locals []Locals
	Body   Expression
}
