// Top-level module decoding: magic/version validation followed by a
// section-by-section walk that both streams LazySection frames and, for
// the Module convenience aggregate, eagerly decodes each section's
// typed contents. Grounded on the teacher's decoder.go DecodeModule
// entry point and its section-id dispatch switch.
package binary

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/jgravelle-google/wasp"
)

var wasmMagic = [4]byte{0x00, 0x61, 0x73, 0x6D} // "\0asm"

const wasmVersion = 1

// DecodeSections validates the magic number and version, then returns
// the LazySection frames of every section in the module in order,
// without decoding any section's contents. Use each frame's Cursor
// with the matching binary/*.go entity decoder to interpret it, or call
// DecodeModule for the eager convenience aggregate.
func DecodeSections(data []byte, errs wasp.ErrorSink) ([]*LazySection, bool) {
	c := NewCursor(data)

	magicOffset := c.Offset()
	magic, ok := c.ReadBytes(4, errs)
	if !ok {
		return nil, false
	}
	if [4]byte(magic) != wasmMagic {
		errs.OnError(magicOffset, fmt.Sprintf("Magic number mismatch: expected %#x, got %#x", wasmMagic, magic))
		return nil, false
	}

	versionOffset := c.Offset()
	versionBytes, ok := c.ReadBytes(4, errs)
	if !ok {
		return nil, false
	}
	version := binary.LittleEndian.Uint32(versionBytes)
	if version != wasmVersion {
		errs.OnError(versionOffset, fmt.Sprintf("Unknown binary version: expected %d, got %d", wasmVersion, version))
		return nil, false
	}

	var sections []*LazySection
	for !c.Empty() {
		sec, payloadOffset, ok := DecodeSectionAt(c, wasp.All(), errs)
		if !ok {
			return nil, false
		}
		switch s := sec.(type) {
		case *wasp.KnownSection:
			sections = append(sections, &LazySection{ID: s.ID, Payload: s.Payload, Offset: payloadOffset})
		case *wasp.CustomSection:
			sections = append(sections, &LazySection{ID: wasp.SectionCustom, Name: s.Name, Payload: s.Payload, Offset: payloadOffset})
		}
	}
	return sections, true
}

// DecodeModule decodes data into the eager Module aggregate: every
// section's contents fully materialized. The "name" and "linking"
// custom sections are decoded into Module.NameSection and
// Module.LinkingSection instead of being kept raw; every other custom
// section, "reloc.*" included, is preserved verbatim in
// Module.CustomSections (reloc.* payloads are not decoded here).
func DecodeModule(data []byte, features wasp.Features, errs wasp.ErrorSink) (*wasp.Module, bool) {
	sections, ok := DecodeSections(data, errs)
	if !ok {
		return nil, false
	}

	mod := &wasp.Module{ExportSection: map[string]*wasp.Export{}}
	for _, sec := range sections {
		if !decodeKnownOrCustom(mod, sec, features, errs) {
			return nil, false
		}
	}
	return mod, true
}

func decodeKnownOrCustom(mod *wasp.Module, sec *LazySection, features wasp.Features, errs wasp.ErrorSink) bool {
	c := sec.Cursor()
	switch sec.ID {
	case wasp.SectionType:
		types, ok := ReadVector(c, "type section", errs, func(c *Cursor, errs wasp.ErrorSink) (*wasp.FunctionType, bool) {
			return DecodeFunctionType(c, features, errs)
		})
		if !ok {
			return false
		}
		mod.TypeSection = types
	case wasp.SectionImport:
		imports, ok := ReadVector(c, "import section", errs, func(c *Cursor, errs wasp.ErrorSink) (*wasp.Import, bool) {
			return DecodeImport(c, features, errs)
		})
		if !ok {
			return false
		}
		mod.ImportSection = imports
	case wasp.SectionFunction:
		indices, ok := ReadVector(c, "function section", errs, func(c *Cursor, errs wasp.ErrorSink) (uint32, bool) {
			return c.ReadLEBU32("type index", errs)
		})
		if !ok {
			return false
		}
		mod.FunctionSection = indices
	case wasp.SectionTable:
		tables, ok := ReadVector(c, "table section", errs, func(c *Cursor, errs wasp.ErrorSink) (*wasp.TableType, bool) {
			return DecodeTableType(c, features, errs)
		})
		if !ok {
			return false
		}
		mod.TableSection = tables
	case wasp.SectionMemory:
		mems, ok := ReadVector(c, "memory section", errs, func(c *Cursor, errs wasp.ErrorSink) (*wasp.MemoryType, bool) {
			return DecodeMemoryType(c, features, errs)
		})
		if !ok {
			return false
		}
		mod.MemorySection = mems
	case wasp.SectionGlobal:
		globals, ok := ReadVector(c, "global section", errs, func(c *Cursor, errs wasp.ErrorSink) (*wasp.Global, bool) {
			return DecodeGlobal(c, features, errs)
		})
		if !ok {
			return false
		}
		mod.GlobalSection = globals
	case wasp.SectionExport:
		exports, ok := ReadVector(c, "export section", errs, func(c *Cursor, errs wasp.ErrorSink) (*wasp.Export, bool) {
			return DecodeExport(c, features, errs)
		})
		if !ok {
			return false
		}
		mod.ExportSection = map[string]*wasp.Export{}
		for _, e := range exports {
			mod.ExportSection[e.Name] = e
		}
	case wasp.SectionStart:
		idx, ok := c.ReadLEBU32("start function index", errs)
		if !ok {
			return false
		}
		mod.StartSection = &idx
	case wasp.SectionElement:
		elems, ok := ReadVector(c, "element section", errs, func(c *Cursor, errs wasp.ErrorSink) (*wasp.ElementSegment, bool) {
			return DecodeElementSegment(c, features, errs)
		})
		if !ok {
			return false
		}
		mod.ElementSection = elems
	case wasp.SectionCode:
		code, ok := ReadVector(c, "code section", errs, func(c *Cursor, errs wasp.ErrorSink) (*wasp.Code, bool) {
			return DecodeCode(c, features, errs)
		})
		if !ok {
			return false
		}
		mod.CodeSection = code
	case wasp.SectionData:
		data, ok := ReadVector(c, "data section", errs, func(c *Cursor, errs wasp.ErrorSink) (*wasp.DataSegment, bool) {
			return DecodeDataSegment(c, features, errs)
		})
		if !ok {
			return false
		}
		mod.DataSection = data
	case wasp.SectionDataCount:
		n, ok := c.ReadLEBU32("data count", errs)
		if !ok {
			return false
		}
		mod.DataCount = &n
	case wasp.SectionCustom:
		return decodeCustomSection(mod, sec, errs)
	}
	return true
}

func decodeCustomSection(mod *wasp.Module, sec *LazySection, errs wasp.ErrorSink) bool {
	switch {
	case sec.Name == "name":
		ns, ok := DecodeNameSection(sec.Payload, sec.Offset, errs)
		if !ok {
			return false
		}
		mod.NameSection = ns
	case sec.Name == "linking":
		ls, ok := DecodeLinkingSection(sec.Payload, sec.Offset, errs)
		if !ok {
			return false
		}
		mod.LinkingSection = ls
	case strings.HasPrefix(sec.Name, "reloc."):
		// Relocation sections are keyed by the section they patch, not
		// carried on Module directly; a caller that needs them decodes
		// on demand via DecodeRelocationSection and this raw payload.
		mod.CustomSections = append(mod.CustomSections, &wasp.CustomSection{Name: sec.Name, Payload: sec.Payload})
	default:
		mod.CustomSections = append(mod.CustomSections, &wasp.CustomSection{Name: sec.Name, Payload: sec.Payload})
	}
	return true
}
