// Section framing: id, byte-length-prefixed payload, and the custom
// section's embedded name. Grounded on the teacher's decoder.go section
// loop, generalized to the Section tagged-sum (KnownSection /
// CustomSection) spec.md §9's polymorphism-without-inheritance note
// calls for.
package binary

import (
	"fmt"

	"github.com/jgravelle-google/wasp"
	"github.com/jgravelle-google/wasp/leb128"
)

// DecodeSection decodes one top-level section frame.
func DecodeSection(c *Cursor, features wasp.Features, errs wasp.ErrorSink) (wasp.Section, bool) {
	sec, _, ok := DecodeSectionAt(c, features, errs)
	return sec, ok
}

// DecodeSectionAt decodes one top-level section frame and additionally
// returns the absolute offset of the first byte of its payload (for a
// CustomSection, the first byte after its embedded name) — the offset a
// caller should hand to NewCursorAt when decoding the payload further.
func DecodeSectionAt(c *Cursor, features wasp.Features, errs wasp.ErrorSink) (wasp.Section, uint32, bool) {
	idOffset := c.Offset()
	idValue, ok := c.ReadLEBU32("section id", errs)
	if !ok {
		return nil, 0, false
	}
	id, err := DecodeSectionID(idValue, features)
	if err != nil {
		errs.OnError(idOffset, err.Error())
		return nil, 0, false
	}

	payload, ok := c.ReadLength("section size", errs)
	if !ok {
		return nil, 0, false
	}
	payloadOffset := c.Offset()
	body, ok := c.ReadBytes(int(payload), errs)
	if !ok {
		return nil, 0, false
	}

	if id != wasp.SectionCustom {
		return &wasp.KnownSection{ID: id, Payload: body}, payloadOffset, true
	}

	inner := NewCursorAt(body, payloadOffset)
	name, ok := inner.ReadString("custom section name", errs)
	if !ok {
		return nil, 0, false
	}
	return &wasp.CustomSection{Name: name, Payload: inner.Remaining()}, inner.Offset(), true
}

// EncodeSection appends sec's byte encoding (id, length, payload) to
// buf.
func EncodeSection(buf []byte, sec wasp.Section) []byte {
	switch s := sec.(type) {
	case *wasp.KnownSection:
		buf = append(buf, EncodeSectionID(s.ID))
		buf = append(buf, leb128.EncodeU32(uint32(len(s.Payload)))...)
		return append(buf, s.Payload...)
	case *wasp.CustomSection:
		var payload []byte
		payload = append(payload, leb128.EncodeU32(uint32(len(s.Name)))...)
		payload = append(payload, s.Name...)
		payload = append(payload, s.Payload...)

		buf = append(buf, EncodeSectionID(wasp.SectionCustom))
		buf = append(buf, leb128.EncodeU32(uint32(len(payload)))...)
		return append(buf, payload...)
	default:
		panic(fmt.Sprintf("unknown Section implementation %T", sec))
	}
}
