package binary

import (
	"testing"

	"github.com/jgravelle-google/wasp"
	"github.com/jgravelle-google/wasp/leb128"
	"github.com/stretchr/testify/require"
)

func buildMinimalModule() []byte {
	var buf []byte
	buf = append(buf, wasmMagic[:]...)
	buf = append(buf, 0x01, 0x00, 0x00, 0x00)

	// type section: one () -> (i32) type
	typeSec := []byte{0x01, 0x60, 0x00, 0x01, byte(wasp.ValueTypeI32)}
	buf = append(buf, byte(wasp.SectionType), byte(len(typeSec)))
	buf = append(buf, typeSec...)

	// function section: one function of type 0
	funcSec := []byte{0x01, 0x00}
	buf = append(buf, byte(wasp.SectionFunction), byte(len(funcSec)))
	buf = append(buf, funcSec...)

	// export section: export function 0 as "f"
	exportSec := []byte{0x01, 0x01, 'f', byte(wasp.ExternalKindFunction), 0x00}
	buf = append(buf, byte(wasp.SectionExport), byte(len(exportSec)))
	buf = append(buf, exportSec...)

	// code section: one body returning i32.const 42
	body := []byte{0x00, byte(wasp.OpcodeI32Const)}
	body = append(body, leb128.EncodeS32(42)...)
	body = append(body, byte(wasp.OpcodeEnd))
	code := []byte{byte(len(body))}
	code = append(code, body...)
	codeSec := []byte{0x01}
	codeSec = append(codeSec, code...)
	buf = append(buf, byte(wasp.SectionCode), byte(len(codeSec)))
	buf = append(buf, codeSec...)

	return buf
}

func TestDecodeModule_RoundTrip(t *testing.T) {
	data := buildMinimalModule()
	errs := wasp.NewCollectingErrors()
	mod, ok := DecodeModule(data, wasp.Features{}, errs)
	require.True(t, ok, "%v", errs.Errors)
	require.Len(t, mod.TypeSection, 1)
	require.Equal(t, []wasp.ValueType{wasp.ValueTypeI32}, mod.TypeSection[0].Results)
	require.Len(t, mod.FunctionSection, 1)
	require.Contains(t, mod.ExportSection, "f")
	require.Len(t, mod.CodeSection, 1)
	require.True(t, errs.Empty())

	reencoded := EncodeModule(mod)
	mod2, ok := DecodeModule(reencoded, wasp.Features{}, wasp.NewCollectingErrors())
	require.True(t, ok)
	require.Equal(t, mod.TypeSection[0].Results, mod2.TypeSection[0].Results)
	require.Equal(t, mod.CodeSection[0].Body.Bytes, mod2.CodeSection[0].Body.Bytes)
}

func TestDecodeModule_BadMagic(t *testing.T) {
	data := append([]byte{0x00, 0x61, 0x73, 0x00}, 0x01, 0x00, 0x00, 0x00)
	errs := wasp.NewCollectingErrors()
	_, ok := DecodeModule(data, wasp.Features{}, errs)
	require.False(t, ok)
	require.Len(t, errs.Errors, 1)
}

func TestDecodeModule_BadVersion(t *testing.T) {
	data := append(wasmMagic[:], 0x02, 0x00, 0x00, 0x00)
	errs := wasp.NewCollectingErrors()
	_, ok := DecodeModule(data, wasp.Features{}, errs)
	require.False(t, ok)
	require.Len(t, errs.Errors, 1)
}

func TestDecodeConstantExpression_IllegalInstruction(t *testing.T) {
	c := NewCursor([]byte{byte(wasp.OpcodeNop), byte(wasp.OpcodeEnd)})
	errs := wasp.NewCollectingErrors()
	_, ok := DecodeConstantExpression(c, wasp.Features{}, errs)
	require.False(t, ok)
	require.Len(t, errs.Errors, 1)
	require.Contains(t, errs.Errors[0].Message, "Illegal instruction in constant expression")
}

func TestDecodeConstantExpression_GlobalGetAllowedByMVP(t *testing.T) {
	c := NewCursor([]byte{byte(wasp.OpcodeGlobalGet), 0x00, byte(wasp.OpcodeEnd)})
	errs := wasp.NewCollectingErrors()
	expr, ok := DecodeConstantExpression(c, wasp.Features{}, errs)
	require.True(t, ok)
	require.Equal(t, []byte{byte(wasp.OpcodeGlobalGet), 0x00, byte(wasp.OpcodeEnd)}, expr.Bytes)
}

func TestDecodeElementSegment_Format0_ImplicitActiveFuncref(t *testing.T) {
	data := []byte{
		0x00,                        // flags = 0
		byte(wasp.OpcodeI32Const), 0x00, byte(wasp.OpcodeEnd), // offset expr
		0x01, 0x00, // one func index: 0
	}
	c := NewCursor(data)
	errs := wasp.NewCollectingErrors()
	seg, ok := DecodeElementSegment(c, wasp.All(), errs)
	require.True(t, ok, "%v", errs.Errors)
	require.Equal(t, wasp.ElementModeActive, seg.Mode)
	require.Equal(t, wasp.RefTypeFuncRef, seg.Type)
	require.Len(t, seg.Init, 1)
	require.Equal(t, uint32(0), *seg.Init[0])
}

func TestDecodeElementSegment_NonzeroFlags_RequiresBulkMemory(t *testing.T) {
	data := []byte{0x01, 0x00, 0x00} // flags=1 (passive), elemkind, empty vec
	c := NewCursor(data)
	errs := wasp.NewCollectingErrors()
	_, ok := DecodeElementSegment(c, wasp.Features{}, errs)
	require.False(t, ok)
}

func TestDecodeDataSegment_ActiveExplicitMemoryIndex(t *testing.T) {
	data := []byte{
		0x02, 0x05, // flags=2, memory index 5
		byte(wasp.OpcodeI32Const), 0x00, byte(wasp.OpcodeEnd),
		0x02, 0xAA, 0xBB,
	}
	c := NewCursor(data)
	errs := wasp.NewCollectingErrors()
	seg, ok := DecodeDataSegment(c, wasp.Features{BulkMemory: true}, errs)
	require.True(t, ok, "%v", errs.Errors)
	require.Equal(t, wasp.DataModeActive, seg.Mode)
	require.Equal(t, uint32(5), seg.MemoryIndex)
	require.Equal(t, []byte{0xAA, 0xBB}, seg.Init)
}

func TestDecodeInstruction_MemArg(t *testing.T) {
	c := NewCursor([]byte{byte(wasp.OpcodeI32Load), 0x02, 0x04})
	errs := wasp.NewCollectingErrors()
	instr, ok := DecodeInstruction(c, wasp.Features{}, errs)
	require.True(t, ok)
	require.Equal(t, wasp.MemArg{AlignLog2: 2, Offset: 4}, instr.Immediate)
}

func TestDecodeInstruction_UnknownOpcode(t *testing.T) {
	c := NewCursor([]byte{0x1E}) // unassigned MVP opcode
	errs := wasp.NewCollectingErrors()
	_, ok := DecodeInstruction(c, wasp.Features{}, errs)
	require.False(t, ok)
	require.Len(t, errs.Errors, 1)
}

func TestDecodeNameSection_ModuleAndFunctionNames(t *testing.T) {
	var payload []byte
	payload = append(payload, byte(wasp.NameSubsectionModule))
	modName := encodeString(nil, "mymodule")
	payload = append(payload, byte(len(modName)))
	payload = append(payload, modName...)

	payload = append(payload, byte(wasp.NameSubsectionFunction))
	fnNames := encodeNameMap(nil, wasp.NameMap{{Index: 0, Name: "main"}})
	payload = append(payload, byte(len(fnNames)))
	payload = append(payload, fnNames...)

	errs := wasp.NewCollectingErrors()
	ns, ok := DecodeNameSection(payload, 0, errs)
	require.True(t, ok, "%v", errs.Errors)
	require.True(t, ns.HasModuleName)
	require.Equal(t, "mymodule", ns.ModuleName)
	require.Equal(t, wasp.NameMap{{Index: 0, Name: "main"}}, ns.FunctionNames)
}

func TestDecodeLinkingSection_VersionMismatchNonAborting(t *testing.T) {
	payload := []byte{0x03} // version 3, no subsections
	errs := wasp.NewCollectingErrors()
	ls, ok := DecodeLinkingSection(payload, 0, errs)
	require.True(t, ok)
	require.Equal(t, uint32(3), ls.Version)
	require.Len(t, errs.Errors, 1)
	require.Contains(t, errs.Errors[0].Message, "Unknown linking metadata version")
}
