// Top-level module encoding: the symmetric counterpart to decoder.go.
// Grounded on the teacher's encoder.go EncodeModule, completing the
// Table/Memory/Global/Element/Data encoders it left as "TODO" panics.
package binary

import (
	"encoding/binary"

	"github.com/jgravelle-google/wasp"
	"github.com/jgravelle-google/wasp/leb128"
)

// EncodeModule serializes mod as a complete binary module: magic,
// version, then one section per populated field, in the canonical
// section order.
func EncodeModule(mod *wasp.Module) []byte {
	buf := make([]byte, 0, 64)
	buf = append(buf, wasmMagic[:]...)
	var versionBytes [4]byte
	binary.LittleEndian.PutUint32(versionBytes[:], wasmVersion)
	buf = append(buf, versionBytes[:]...)

	if len(mod.TypeSection) > 0 {
		buf = appendKnownSection(buf, wasp.SectionType, encodeTypeSection(mod.TypeSection))
	}
	if len(mod.ImportSection) > 0 {
		buf = appendKnownSection(buf, wasp.SectionImport, encodeImportSection(mod.ImportSection))
	}
	if len(mod.FunctionSection) > 0 {
		buf = appendKnownSection(buf, wasp.SectionFunction, encodeFunctionSection(mod.FunctionSection))
	}
	if len(mod.TableSection) > 0 {
		buf = appendKnownSection(buf, wasp.SectionTable, encodeTableSection(mod.TableSection))
	}
	if len(mod.MemorySection) > 0 {
		buf = appendKnownSection(buf, wasp.SectionMemory, encodeMemorySection(mod.MemorySection))
	}
	if len(mod.GlobalSection) > 0 {
		buf = appendKnownSection(buf, wasp.SectionGlobal, encodeGlobalSection(mod.GlobalSection))
	}
	if len(mod.ExportSection) > 0 {
		buf = appendKnownSection(buf, wasp.SectionExport, encodeExportSection(mod.ExportSection))
	}
	if mod.StartSection != nil {
		buf = appendKnownSection(buf, wasp.SectionStart, leb128.EncodeU32(*mod.StartSection))
	}
	if len(mod.ElementSection) > 0 {
		buf = appendKnownSection(buf, wasp.SectionElement, encodeElementSection(mod.ElementSection))
	}
	if mod.DataCount != nil {
		buf = appendKnownSection(buf, wasp.SectionDataCount, leb128.EncodeU32(*mod.DataCount))
	}
	if len(mod.CodeSection) > 0 {
		buf = appendKnownSection(buf, wasp.SectionCode, encodeCodeSection(mod.CodeSection))
	}
	if len(mod.DataSection) > 0 {
		buf = appendKnownSection(buf, wasp.SectionData, encodeDataSectionVec(mod.DataSection))
	}
	if mod.NameSection != nil {
		buf = appendCustomSection(buf, "name", EncodeNameSection(nil, mod.NameSection))
	}
	if mod.LinkingSection != nil {
		buf = appendCustomSection(buf, "linking", EncodeLinkingSection(nil, mod.LinkingSection))
	}
	for _, cs := range mod.CustomSections {
		buf = appendCustomSection(buf, cs.Name, cs.Payload)
	}

	return buf
}

func appendKnownSection(buf []byte, id wasp.SectionID, payload []byte) []byte {
	return EncodeSection(buf, &wasp.KnownSection{ID: id, Payload: payload})
}

func appendCustomSection(buf []byte, name string, payload []byte) []byte {
	return EncodeSection(buf, &wasp.CustomSection{Name: name, Payload: payload})
}

func encodeTypeSection(types []*wasp.FunctionType) []byte {
	var buf []byte
	buf = append(buf, leb128.EncodeU32(uint32(len(types)))...)
	for _, t := range types {
		buf = EncodeFunctionType(buf, t)
	}
	return buf
}

func encodeImportSection(imports []*wasp.Import) []byte {
	var buf []byte
	buf = append(buf, leb128.EncodeU32(uint32(len(imports)))...)
	for _, imp := range imports {
		buf = EncodeImport(buf, imp)
	}
	return buf
}

func encodeFunctionSection(indices []uint32) []byte {
	var buf []byte
	buf = append(buf, leb128.EncodeU32(uint32(len(indices)))...)
	for _, idx := range indices {
		buf = append(buf, leb128.EncodeU32(idx)...)
	}
	return buf
}

func encodeTableSection(tables []*wasp.TableType) []byte {
	var buf []byte
	buf = append(buf, leb128.EncodeU32(uint32(len(tables)))...)
	for _, t := range tables {
		buf = EncodeTableType(buf, t)
	}
	return buf
}

func encodeMemorySection(mems []*wasp.MemoryType) []byte {
	var buf []byte
	buf = append(buf, leb128.EncodeU32(uint32(len(mems)))...)
	for _, m := range mems {
		buf = EncodeMemoryType(buf, m)
	}
	return buf
}

func encodeGlobalSection(globals []*wasp.Global) []byte {
	var buf []byte
	buf = append(buf, leb128.EncodeU32(uint32(len(globals)))...)
	for _, g := range globals {
		buf = EncodeGlobal(buf, g)
	}
	return buf
}

// encodeExportSection encodes exports in ascending-name order so
// EncodeModule(DecodeModule(x)) is deterministic despite Module storing
// exports in a map.
func encodeExportSection(exports map[string]*wasp.Export) []byte {
	names := make([]string, 0, len(exports))
	for name := range exports {
		names = append(names, name)
	}
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j-1] > names[j]; j-- {
			names[j-1], names[j] = names[j], names[j-1]
		}
	}

	var buf []byte
	buf = append(buf, leb128.EncodeU32(uint32(len(names)))...)
	for _, name := range names {
		buf = EncodeExport(buf, exports[name])
	}
	return buf
}

func encodeElementSection(elems []*wasp.ElementSegment) []byte {
	var buf []byte
	buf = append(buf, leb128.EncodeU32(uint32(len(elems)))...)
	for _, e := range elems {
		buf = EncodeElementSegment(buf, e)
	}
	return buf
}

func encodeCodeSection(code []*wasp.Code) []byte {
	var buf []byte
	buf = append(buf, leb128.EncodeU32(uint32(len(code)))...)
	for _, c := range code {
		buf = EncodeCode(buf, c)
	}
	return buf
}

func encodeDataSectionVec(data []*wasp.DataSegment) []byte {
	var buf []byte
	buf = append(buf, leb128.EncodeU32(uint32(len(data)))...)
	for _, d := range data {
		buf = EncodeDataSegment(buf, d)
	}
	return buf
}
