package wasp

// Import names a module and field and carries a kind-tagged descriptor.
// Exactly one of FunctionTypeIndex/Table/Memory/Global is meaningful,
// selected by Kind.
type Import struct {
	Module string
	Field  string
	Kind   ExternalKind

	FunctionTypeIndex uint32
	Table             TableType
	Memory            MemoryType
	Global            GlobalType
}

// Export names an externally visible item and the index of its
// definition, tagged by kind.
type Export struct {
	Name  string
	Kind  ExternalKind
	Index uint32
}

// Global pairs a GlobalType with its initializer.
type Global struct {
	Type GlobalType
	Init ConstantExpression
}

// Section is a tagged sum: a module is a sequence of either KnownSection
// or CustomSection values. Consumers type-switch on it rather than on a
// discriminant field.
type Section interface {
	sectionTag()
}

// KnownSection is a standard section identified by SectionID, carrying
// the raw payload span; the module reader does not decode the payload
// until asked.
type KnownSection struct {
	ID      SectionID
	Payload []byte
}

func (KnownSection) sectionTag() {}

// CustomSection is a section with id 0: a length-prefixed name followed
// by tool-defined payload bytes.
type CustomSection struct {
	Name    string
	Payload []byte
}

func (CustomSection) sectionTag() {}

// Module is the eager, fully-materialized decode of a binary: every
// lazy section drained into owned slices. It is built on top of the
// lazy module reader (see binary.DecodeModule) purely for convenience;
// nothing in this module requires a caller to materialize one.
type Module struct {
	TypeSection     []*FunctionType
	ImportSection   []*Import
	FunctionSection []uint32
	TableSection    []*TableType
	MemorySection   []*MemoryType
	GlobalSection   []*Global
	ExportSection   map[string]*Export
	StartSection    *uint32
	ElementSection  []*ElementSegment
	CodeSection     []*Code
	DataSection     []*DataSegment
	DataCount       *uint32

	NameSection    *NameSection
	LinkingSection *LinkingSection
	CustomSections []*CustomSection
}
