package binary

import (
	"github.com/jgravelle-google/wasp"
	"github.com/jgravelle-google/wasp/leb128"
)

// DecodeExport decodes an export-section entry: a name plus the
// (kind, index) pair it names.
func DecodeExport(c *Cursor, features wasp.Features, errs wasp.ErrorSink) (*wasp.Export, bool) {
	guard := wasp.PushContext(errs, c.Offset(), "export")
	defer guard.Pop()

	name, ok := c.ReadString("export name", errs)
	if !ok {
		return nil, false
	}

	kindOffset := c.Offset()
	kb, ok := c.ReadU8(errs)
	if !ok {
		return nil, false
	}
	kind, err := DecodeExternalKind(kb, features)
	if err != nil {
		errs.OnError(kindOffset, err.Error())
		return nil, false
	}

	idx, ok := c.ReadLEBU32("export index", errs)
	if !ok {
		return nil, false
	}

	return &wasp.Export{Name: name, Kind: kind, Index: idx}, true
}

// EncodeExport appends e's byte encoding to buf.
func EncodeExport(buf []byte, e *wasp.Export) []byte {
	buf = append(buf, leb128.EncodeU32(uint32(len(e.Name)))...)
	buf = append(buf, e.Name...)
	buf = append(buf, EncodeExternalKind(e.Kind))
	return append(buf, leb128.EncodeU32(e.Index)...)
}
