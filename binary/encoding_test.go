package binary

import (
	"testing"

	"github.com/jgravelle-google/wasp"
	"github.com/stretchr/testify/require"
)

func TestDecodeValueType_FeatureGated(t *testing.T) {
	_, err := DecodeValueType(byte(wasp.ValueTypeV128), wasp.Features{})
	require.Error(t, err)

	v, err := DecodeValueType(byte(wasp.ValueTypeV128), wasp.Features{SIMD: true})
	require.NoError(t, err)
	require.Equal(t, wasp.ValueTypeV128, v)
}

func TestDecodeValueType_Invalid(t *testing.T) {
	_, err := DecodeValueType(0x00, wasp.Features{})
	require.ErrorIs(t, err, wasp.ErrInvalidByte)
}

func TestDecodeSectionID_DataCountGated(t *testing.T) {
	_, err := DecodeSectionID(uint32(wasp.SectionDataCount), wasp.Features{})
	require.Error(t, err)

	id, err := DecodeSectionID(uint32(wasp.SectionDataCount), wasp.Features{BulkMemory: true})
	require.NoError(t, err)
	require.Equal(t, wasp.SectionDataCount, id)
}

func TestDecodeBlockTypeTag(t *testing.T) {
	isVoid, isValue := DecodeBlockTypeTag(0x40)
	require.True(t, isVoid)
	require.False(t, isValue)

	isVoid, isValue = DecodeBlockTypeTag(byte(wasp.ValueTypeI32))
	require.False(t, isVoid)
	require.True(t, isValue)

	isVoid, isValue = DecodeBlockTypeTag(0x01)
	require.False(t, isVoid)
	require.False(t, isValue)
}

func TestRelocationHasAddend(t *testing.T) {
	require.True(t, RelocationHasAddend(wasp.RelocationMemoryAddrLEB))
	require.False(t, RelocationHasAddend(wasp.RelocationFunctionIndexLEB))
}
