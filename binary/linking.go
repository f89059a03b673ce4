// The "linking" and "reloc.*" custom sections: tool-convention
// object-file metadata layered on top of the core module format.
// Grounded on original_source/include/wasp/binary/relocation_entry.h
// and src/binary/read_section.cc's version-mismatch handling, since no
// Go example in the retrieval pack implements this — wazero is a
// runtime, not a linker, and never needed to read it.
package binary

import (
	"fmt"

	"github.com/jgravelle-google/wasp"
	"github.com/jgravelle-google/wasp/leb128"
)

// linkingVersion is the only version this module understands. A
// mismatch is reported through the error sink but, per wasp's
// read_section.cc precedent, does not abort decoding of the remaining
// subsections: a linker that only needs a handful of known-stable
// subsections can still recover them from an otherwise-unsupported
// version.
const linkingVersion = 2

// DecodeLinkingSection decodes a "linking" custom section's payload.
func DecodeLinkingSection(payload []byte, baseOffset uint32, errs wasp.ErrorSink) (*wasp.LinkingSection, bool) {
	c := NewCursorAt(payload, baseOffset)

	versionOffset := c.Offset()
	version, ok := c.ReadLEBU32("linking version", errs)
	if !ok {
		return nil, false
	}
	if version != linkingVersion {
		errs.OnError(versionOffset, fmt.Sprintf("Unknown linking metadata version: %d", version))
	}

	sec := &wasp.LinkingSection{Version: version}
	for !c.Empty() {
		idByte, ok := c.ReadU8(errs)
		if !ok {
			return nil, false
		}
		size, ok := c.ReadLength("linking subsection size", errs)
		if !ok {
			return nil, false
		}
		body, ok := c.ReadBytes(int(size), errs)
		if !ok {
			return nil, false
		}
		id, known := DecodeLinkingSubsectionID(idByte)
		if !known {
			continue
		}
		sec.Subsections = append(sec.Subsections, wasp.LinkingSubsection{ID: id, Payload: body})
	}
	return sec, true
}

// DecodeSymbolTable decodes a symbol-table linking subsection's payload
// (LinkingSubsectionSymbolTable) into its typed entries.
func DecodeSymbolTable(payload []byte, baseOffset uint32, errs wasp.ErrorSink) ([]wasp.SymbolInfo, bool) {
	c := NewCursorAt(payload, baseOffset)
	return ReadVector(c, "symbol table", errs, decodeSymbolInfo)
}

func decodeSymbolInfo(c *Cursor, errs wasp.ErrorSink) (wasp.SymbolInfo, bool) {
	kindOffset := c.Offset()
	kb, ok := c.ReadU8(errs)
	if !ok {
		return wasp.SymbolInfo{}, false
	}
	kind, err := DecodeSymbolInfoKind(kb)
	if err != nil {
		errs.OnError(kindOffset, err.Error())
		return wasp.SymbolInfo{}, false
	}

	flags, ok := c.ReadLEBU32("symbol flags", errs)
	if !ok {
		return wasp.SymbolInfo{}, false
	}

	const symFlagUndefined = 0x10

	info := wasp.SymbolInfo{Kind: kind, Flags: flags}
	switch kind {
	case wasp.SymbolInfoFunction, wasp.SymbolInfoGlobal, wasp.SymbolInfoEvent, wasp.SymbolInfoTable:
		idx, ok := c.ReadLEBU32("symbol index", errs)
		if !ok {
			return wasp.SymbolInfo{}, false
		}
		info.Index = idx
		if flags&symFlagUndefined == 0 {
			name, ok := c.ReadString("symbol name", errs)
			if !ok {
				return wasp.SymbolInfo{}, false
			}
			info.Name = name
			info.HasName = true
		}
	case wasp.SymbolInfoData:
		name, ok := c.ReadString("symbol name", errs)
		if !ok {
			return wasp.SymbolInfo{}, false
		}
		info.Name = name
		info.HasName = true
		if flags&symFlagUndefined == 0 {
			info.Defined = true
			idx, ok := c.ReadLEBU32("data segment index", errs)
			if !ok {
				return wasp.SymbolInfo{}, false
			}
			off, ok := c.ReadLEBU32("data segment offset", errs)
			if !ok {
				return wasp.SymbolInfo{}, false
			}
			size, ok := c.ReadLEBU32("data segment size", errs)
			if !ok {
				return wasp.SymbolInfo{}, false
			}
			info.DataIndex, info.DataOffset, info.DataSize = idx, off, size
		}
	case wasp.SymbolInfoSection:
		idx, ok := c.ReadLEBU32("section index", errs)
		if !ok {
			return wasp.SymbolInfo{}, false
		}
		info.SectionIndex = idx
	}

	return info, true
}

// DecodeRelocationSection decodes a "reloc.*" custom section's payload.
func DecodeRelocationSection(payload []byte, baseOffset uint32, errs wasp.ErrorSink) (*wasp.RelocationSection, bool) {
	c := NewCursorAt(payload, baseOffset)

	sectionIdx, ok := c.ReadLEBU32("relocated section index", errs)
	if !ok {
		return nil, false
	}

	entries, ok := ReadVector(c, "relocation entries", errs, decodeRelocationEntry)
	if !ok {
		return nil, false
	}

	return &wasp.RelocationSection{SectionIndex: sectionIdx, Entries: entries}, true
}

func decodeRelocationEntry(c *Cursor, errs wasp.ErrorSink) (wasp.RelocationEntry, bool) {
	typeOffset := c.Offset()
	tb, ok := c.ReadU8(errs)
	if !ok {
		return wasp.RelocationEntry{}, false
	}
	t, err := DecodeRelocationType(tb)
	if err != nil {
		errs.OnError(typeOffset, err.Error())
		return wasp.RelocationEntry{}, false
	}

	offset, ok := c.ReadLEBU32("relocation offset", errs)
	if !ok {
		return wasp.RelocationEntry{}, false
	}
	index, ok := c.ReadLEBU32("relocation index", errs)
	if !ok {
		return wasp.RelocationEntry{}, false
	}

	entry := wasp.RelocationEntry{Type: t, Offset: offset, Index: index}
	if RelocationHasAddend(t) {
		addend, ok := c.ReadLEBS32("relocation addend", errs)
		if !ok {
			return wasp.RelocationEntry{}, false
		}
		entry.Addend = &addend
	}
	return entry, true
}

// EncodeLinkingSection appends sec's byte encoding to buf.
func EncodeLinkingSection(buf []byte, sec *wasp.LinkingSection) []byte {
	buf = append(buf, leb128.EncodeU32(sec.Version)...)
	for _, s := range sec.Subsections {
		buf = append(buf, byte(s.ID))
		buf = append(buf, leb128.EncodeU32(uint32(len(s.Payload)))...)
		buf = append(buf, s.Payload...)
	}
	return buf
}

// EncodeRelocationSection appends sec's byte encoding to buf.
func EncodeRelocationSection(buf []byte, sec *wasp.RelocationSection) []byte {
	buf = append(buf, leb128.EncodeU32(sec.SectionIndex)...)
	buf = append(buf, leb128.EncodeU32(uint32(len(sec.Entries)))...)
	for _, e := range sec.Entries {
		buf = append(buf, byte(e.Type))
		buf = append(buf, leb128.EncodeU32(e.Offset)...)
		buf = append(buf, leb128.EncodeU32(e.Index)...)
		if e.Addend != nil {
			buf = append(buf, leb128.EncodeS32(*e.Addend)...)
		}
	}
	return buf
}
