// The "name" custom section: ten standardized subsections mapping
// indices back to their source-level identifiers. Unlike the teacher,
// which only decodes the module/function/local subsections it needs
// for debugging and skips the rest by length, this module decodes all
// ten, per spec.md's supplemented-features expansion.
package binary

import (
	"fmt"

	"github.com/jgravelle-google/wasp"
	"github.com/jgravelle-google/wasp/leb128"
)

// DecodeNameSection decodes a "name" custom section's payload.
// Unrecognized subsection ids are skipped by their declared length, the
// standard forward-compatibility rule for this section.
func DecodeNameSection(payload []byte, baseOffset uint32, errs wasp.ErrorSink) (*wasp.NameSection, bool) {
	c := NewCursorAt(payload, baseOffset)
	ns := &wasp.NameSection{}

	for !c.Empty() {
		idOffset := c.Offset()
		idByte, ok := c.ReadU8(errs)
		if !ok {
			return nil, false
		}
		size, ok := c.ReadLength("name subsection size", errs)
		if !ok {
			return nil, false
		}
		body, ok := c.ReadBytes(int(size), errs)
		if !ok {
			return nil, false
		}

		id, known := DecodeNameSubsectionID(idByte)
		if !known {
			continue
		}
		inner := NewCursorAt(body, c.Offset()-size)

		switch id {
		case wasp.NameSubsectionModule:
			name, ok := inner.ReadString("module name", errs)
			if !ok {
				return nil, false
			}
			ns.ModuleName = name
			ns.HasModuleName = true
		case wasp.NameSubsectionFunction:
			m, ok := decodeNameMap(inner, errs)
			if !ok {
				return nil, false
			}
			ns.FunctionNames = m
		case wasp.NameSubsectionLocal:
			m, ok := decodeIndirectNameMap(inner, errs)
			if !ok {
				return nil, false
			}
			ns.LocalNames = m
		case wasp.NameSubsectionLabel:
			m, ok := decodeIndirectNameMap(inner, errs)
			if !ok {
				return nil, false
			}
			ns.LabelNames = m
		case wasp.NameSubsectionType:
			m, ok := decodeNameMap(inner, errs)
			if !ok {
				return nil, false
			}
			ns.TypeNames = m
		case wasp.NameSubsectionTable:
			m, ok := decodeNameMap(inner, errs)
			if !ok {
				return nil, false
			}
			ns.TableNames = m
		case wasp.NameSubsectionMemory:
			m, ok := decodeNameMap(inner, errs)
			if !ok {
				return nil, false
			}
			ns.MemoryNames = m
		case wasp.NameSubsectionGlobal:
			m, ok := decodeNameMap(inner, errs)
			if !ok {
				return nil, false
			}
			ns.GlobalNames = m
		case wasp.NameSubsectionElementSegment:
			m, ok := decodeNameMap(inner, errs)
			if !ok {
				return nil, false
			}
			ns.ElementSegmentNames = m
		case wasp.NameSubsectionDataSegment:
			m, ok := decodeNameMap(inner, errs)
			if !ok {
				return nil, false
			}
			ns.DataSegmentNames = m
		default:
			errs.OnError(idOffset, fmt.Sprintf("Unhandled known name subsection id %d", id))
			return nil, false
		}
	}

	return ns, true
}

func decodeNameMap(c *Cursor, errs wasp.ErrorSink) (wasp.NameMap, bool) {
	return ReadVector(c, "name map", errs, func(c *Cursor, errs wasp.ErrorSink) (wasp.NameAssoc, bool) {
		idx, ok := c.ReadLEBU32("index", errs)
		if !ok {
			return wasp.NameAssoc{}, false
		}
		name, ok := c.ReadString("name", errs)
		if !ok {
			return wasp.NameAssoc{}, false
		}
		return wasp.NameAssoc{Index: idx, Name: name}, true
	})
}

func decodeIndirectNameMap(c *Cursor, errs wasp.ErrorSink) (wasp.IndirectNameMap, bool) {
	return ReadVector(c, "indirect name map", errs, func(c *Cursor, errs wasp.ErrorSink) (wasp.IndirectNameAssoc, bool) {
		idx, ok := c.ReadLEBU32("outer index", errs)
		if !ok {
			return wasp.IndirectNameAssoc{}, false
		}
		m, ok := decodeNameMap(c, errs)
		if !ok {
			return wasp.IndirectNameAssoc{}, false
		}
		return wasp.IndirectNameAssoc{Index: idx, NameMap: m}, true
	})
}

// EncodeNameSection appends ns's byte encoding (the payload that
// follows the custom section's own "name" name) to buf.
func EncodeNameSection(buf []byte, ns *wasp.NameSection) []byte {
	if ns.HasModuleName {
		buf = appendNameSubsection(buf, wasp.NameSubsectionModule, encodeString(nil, ns.ModuleName))
	}
	if len(ns.FunctionNames) > 0 {
		buf = appendNameSubsection(buf, wasp.NameSubsectionFunction, encodeNameMap(nil, ns.FunctionNames))
	}
	if len(ns.LocalNames) > 0 {
		buf = appendNameSubsection(buf, wasp.NameSubsectionLocal, encodeIndirectNameMap(nil, ns.LocalNames))
	}
	if len(ns.LabelNames) > 0 {
		buf = appendNameSubsection(buf, wasp.NameSubsectionLabel, encodeIndirectNameMap(nil, ns.LabelNames))
	}
	if len(ns.TypeNames) > 0 {
		buf = appendNameSubsection(buf, wasp.NameSubsectionType, encodeNameMap(nil, ns.TypeNames))
	}
	if len(ns.TableNames) > 0 {
		buf = appendNameSubsection(buf, wasp.NameSubsectionTable, encodeNameMap(nil, ns.TableNames))
	}
	if len(ns.MemoryNames) > 0 {
		buf = appendNameSubsection(buf, wasp.NameSubsectionMemory, encodeNameMap(nil, ns.MemoryNames))
	}
	if len(ns.GlobalNames) > 0 {
		buf = appendNameSubsection(buf, wasp.NameSubsectionGlobal, encodeNameMap(nil, ns.GlobalNames))
	}
	if len(ns.ElementSegmentNames) > 0 {
		buf = appendNameSubsection(buf, wasp.NameSubsectionElementSegment, encodeNameMap(nil, ns.ElementSegmentNames))
	}
	if len(ns.DataSegmentNames) > 0 {
		buf = appendNameSubsection(buf, wasp.NameSubsectionDataSegment, encodeNameMap(nil, ns.DataSegmentNames))
	}
	return buf
}

func appendNameSubsection(buf []byte, id wasp.NameSubsectionID, payload []byte) []byte {
	buf = append(buf, byte(id))
	buf = append(buf, leb128.EncodeU32(uint32(len(payload)))...)
	return append(buf, payload...)
}

func encodeString(buf []byte, s string) []byte {
	buf = append(buf, leb128.EncodeU32(uint32(len(s)))...)
	return append(buf, s...)
}

func encodeNameMap(buf []byte, m wasp.NameMap) []byte {
	buf = append(buf, leb128.EncodeU32(uint32(len(m)))...)
	for _, a := range m {
		buf = append(buf, leb128.EncodeU32(a.Index)...)
		buf = encodeString(buf, a.Name)
	}
	return buf
}

func encodeIndirectNameMap(buf []byte, m wasp.IndirectNameMap) []byte {
	buf = append(buf, leb128.EncodeU32(uint32(len(m)))...)
	for _, a := range m {
		buf = append(buf, leb128.EncodeU32(a.Index)...)
		buf = encodeNameMap(buf, a.NameMap)
	}
	return buf
}
