package wasp

// NameSubsectionID identifies a subsection of the "name" custom
// section, as standardized.
type NameSubsectionID byte

const (
	NameSubsectionModule        NameSubsectionID = 0
	NameSubsectionFunction      NameSubsectionID = 1
	NameSubsectionLocal         NameSubsectionID = 2
	NameSubsectionLabel         NameSubsectionID = 4
	NameSubsectionType          NameSubsectionID = 5
	NameSubsectionTable         NameSubsectionID = 6
	NameSubsectionMemory        NameSubsectionID = 7
	NameSubsectionGlobal        NameSubsectionID = 8
	NameSubsectionElementSegment NameSubsectionID = 9
	NameSubsectionDataSegment   NameSubsectionID = 10
)

// NameAssoc is one (index, name) pair of a name map.
type NameAssoc struct {
	Index uint32
	Name  string
}

// NameMap is a vector of NameAssoc, ordered by increasing index as the
// format requires.
type NameMap []NameAssoc

// IndirectNameAssoc is one outer-index-scoped name map, used by the
// local and label subsections (e.g. function index -> that function's
// local-index-to-name map).
type IndirectNameAssoc struct {
	Index    uint32
	NameMap  NameMap
}

// IndirectNameMap is a vector of IndirectNameAssoc.
type IndirectNameMap []IndirectNameAssoc

// NameSection is the fully-decoded payload of a custom section named
// "name": one slot per standardized subsection id, populated only when
// that subsection was present.
type NameSection struct {
	ModuleName          string
	HasModuleName       bool
	FunctionNames       NameMap
	LocalNames          IndirectNameMap
	LabelNames          IndirectNameMap
	TypeNames           NameMap
	TableNames          NameMap
	MemoryNames         NameMap
	GlobalNames         NameMap
	ElementSegmentNames NameMap
	DataSegmentNames    NameMap
}
