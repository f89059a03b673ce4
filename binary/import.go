package binary

import (
	"fmt"

	"github.com/jgravelle-google/wasp"
	"github.com/jgravelle-google/wasp/leb128"
)

// DecodeImport decodes an import-section entry: module/field names plus
// one of the four (five, with tags) descriptor kinds.
func DecodeImport(c *Cursor, features wasp.Features, errs wasp.ErrorSink) (*wasp.Import, bool) {
	guard := wasp.PushContext(errs, c.Offset(), "import")
	defer guard.Pop()

	module, ok := c.ReadString("module name", errs)
	if !ok {
		return nil, false
	}
	field, ok := c.ReadString("field name", errs)
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

	imp := &wasp.Import{Module: module, Field: field, Kind: kind}
	switch kind {
	case wasp.ExternalKindFunction:
		idx, ok := c.ReadLEBU32("type index", errs)
		if !ok {
			return nil, false
		}
		imp.FunctionTypeIndex = idx
	case wasp.ExternalKindTable:
		tt, ok := DecodeTableType(c, features, errs)
		if !ok {
			return nil, false
		}
		imp.Table = *tt
	case wasp.ExternalKindMemory:
		mt, ok := DecodeMemoryType(c, features, errs)
		if !ok {
			return nil, false
		}
		imp.Memory = *mt
	case wasp.ExternalKindGlobal:
		globalOffset := c.Offset()
		gt, ok := decodeGlobalType(c, features, errs)
		if !ok {
			return nil, false
		}
		if gt.Mutability == wasp.Var && !features.MutableGlobals {
			errs.OnError(globalOffset, "feature \"mutable_globals\" is disabled")
			return nil, false
		}
		imp.Global = *gt
	case wasp.ExternalKindTag:
		idx, ok := c.ReadLEBU32("tag type index", errs)
		if !ok {
			return nil, false
		}
		imp.FunctionTypeIndex = idx
	default:
		errs.OnError(kindOffset, fmt.Sprintf("Unhandled import kind: %s", kind))
		return nil, false
	}

	return imp, true
}

// EncodeImport appends imp's byte encoding to buf.
func EncodeImport(buf []byte, imp *wasp.Import) []byte {
	buf = append(buf, leb128.EncodeU32(uint32(len(imp.Module)))...)
	buf = append(buf, imp.Module...)
	buf = append(buf, leb128.EncodeU32(uint32(len(imp.Field)))...)
	buf = append(buf, imp.Field...)
	buf = append(buf, EncodeExternalKind(imp.Kind))

	switch imp.Kind {
	case wasp.ExternalKindFunction, wasp.ExternalKindTag:
		buf = append(buf, leb128.EncodeU32(imp.FunctionTypeIndex)...)
	case wasp.ExternalKindTable:
		buf = EncodeTableType(buf, &imp.Table)
	case wasp.ExternalKindMemory:
		buf = EncodeMemoryType(buf, &imp.Memory)
	case wasp.ExternalKindGlobal:
		buf = append(buf, EncodeValueType(imp.Global.ValueType))
		buf = append(buf, EncodeMutability(imp.Global.Mutability))
	}
	return buf
}
