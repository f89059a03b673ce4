package wasp

// LinkingSubsectionID identifies a subsection of the "linking" custom
// section, per the tool-convention object-file format.
type LinkingSubsectionID byte

const (
	LinkingSubsectionSegmentInfo LinkingSubsectionID = 5
	LinkingSubsectionInitFuncs   LinkingSubsectionID = 6
	LinkingSubsectionComdatInfo  LinkingSubsectionID = 7
	LinkingSubsectionSymbolTable LinkingSubsectionID = 8
)

// LinkingSubsection is a {id, payload} frame inside a "linking" custom
// section. Only the symbol-table subsection's payload is given a typed
// decoder (DecodeSymbolTable, in the binary package) because only it
// feeds the relocation model; segment-info/init-funcs/comdat-info stay
// as raw payload for a caller that needs them to decode further.
type LinkingSubsection struct {
	ID      LinkingSubsectionID
	Payload []byte
}

// LinkingSection is the fully-framed payload of a custom section named
// "linking": a version LEB (pinned to 2, see spec.md §6/§9) followed by
// subsections running to the end of the payload, with no leading count.
// A version mismatch is reported through the
// error sink but does not abort decoding the remaining subsections.
type LinkingSection struct {
	Version    uint32
	Subsections []LinkingSubsection
}

// RelocationType identifies how a RelocationEntry's Offset should be
// patched at link time.
type RelocationType byte

const (
	RelocationFunctionIndexLEB RelocationType = 0
	RelocationTableIndexSLEB   RelocationType = 1
	RelocationTableIndexI32    RelocationType = 2
	RelocationMemoryAddrLEB    RelocationType = 3
	RelocationMemoryAddrSLEB   RelocationType = 4
	RelocationMemoryAddrI32    RelocationType = 5
	RelocationTypeIndexLEB     RelocationType = 6
	RelocationGlobalIndexLEB   RelocationType = 7
	RelocationFunctionOffsetI32 RelocationType = 8
	RelocationSectionOffsetI32 RelocationType = 9
	RelocationTagIndexLEB      RelocationType = 10
	RelocationGlobalIndexI32   RelocationType = 13
	RelocationTableNumberLEB   RelocationType = 20
)

// RelocationEntry is one patch site inside a relocatable section:
// apply Type's patch rule at Offset, targeting Index, with an optional
// signed Addend. Mirrors wasp's RelocationEntry (type, offset, index,
// optional<s32> addend) field-for-field.
type RelocationEntry struct {
	Type   RelocationType
	Offset uint32
	Index  uint32
	Addend *int32
}

// RelocationSection is the fully-framed payload of a custom section
// named "reloc.*": the index of the section it relocates, followed by
// a vector of entries.
type RelocationSection struct {
	SectionIndex uint32
	Entries      []RelocationEntry
}

// SymbolInfoKind tags a SymbolInfo's variant.
type SymbolInfoKind byte

const (
	SymbolInfoFunction SymbolInfoKind = 0
	SymbolInfoData     SymbolInfoKind = 1
	SymbolInfoGlobal   SymbolInfoKind = 2
	SymbolInfoSection  SymbolInfoKind = 3
	SymbolInfoEvent    SymbolInfoKind = 4
	SymbolInfoTable    SymbolInfoKind = 5
)

// SymbolInfo is one entry of a symbol-table linking subsection. Flags
// is the raw tool-convention bitfield. For function/global/event/table
// symbols, Index names the definition and Name is present unless the
// symbol is anonymous. For data symbols, Name is always present and
// Defined additionally carries the owning segment's index/offset/size
// when the symbol refers to a definition rather than an import. For
// section symbols, only SectionIndex is meaningful.
type SymbolInfo struct {
	Kind  SymbolInfoKind
	Flags uint32

	Name    string
	HasName bool

	Index uint32 // function/global/event/table index

	SectionIndex uint32 // Kind == SymbolInfoSection

	Defined    bool // Kind == SymbolInfoData
	DataIndex  uint32
	DataOffset uint32
	DataSize   uint32
}
