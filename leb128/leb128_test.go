package leb128

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeU32_RoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 127, 128, 16384, 1<<32 - 1} {
		encoded := EncodeU32(v)
		got, n, err := DecodeU32(bytes.NewReader(encoded), "u32")
		require.NoError(t, err)
		require.Equal(t, v, got)
		require.Equal(t, len(encoded), n)
	}
}

func TestDecodeS32_RoundTrip(t *testing.T) {
	for _, v := range []int32{0, -1, 1, 63, -64, 64, -65, -3648, 1<<31 - 1, -(1 << 31)} {
		encoded := EncodeS32(v)
		got, n, err := DecodeS32(bytes.NewReader(encoded), "s32")
		require.NoError(t, err)
		require.Equal(t, v, got)
		require.Equal(t, len(encoded), n)
	}
}

func TestDecodeS32_InRangeNegative(t *testing.T) {
	// Scenario from the spec: C0 63 decodes to -3648, consuming 2 bytes.
	got, n, err := DecodeS32(bytes.NewReader([]byte{0xC0, 0x63}), "s32")
	require.NoError(t, err)
	require.Equal(t, int32(-3648), got)
	require.Equal(t, 2, n)
}

func TestDecodeU32_Overlong(t *testing.T) {
	got, n, err := DecodeU32(bytes.NewReader([]byte{0xF0, 0xF0, 0xF0, 0xF0, 0x12}), "u32")
	require.Error(t, err)
	require.Equal(t, uint32(0), got)
	require.Equal(t, 5, n)
	require.Equal(t, "Last byte of u32 must be zero extension: expected 0x2, got 0x12", err.Error())
}

func TestDecodeU32_MaxLengthBoundary(t *testing.T) {
	// Exactly at the zero-extension boundary (high nibble all zero) succeeds.
	got, n, err := DecodeU32(bytes.NewReader([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}), "u32")
	require.NoError(t, err)
	require.Equal(t, uint32(1<<32-1), got)
	require.Equal(t, 5, n)
}

func TestDecodeS64_RoundTrip(t *testing.T) {
	for _, v := range []int64{0, -1, 1, 1<<62 - 1, -(1 << 62)} {
		encoded := EncodeS64(v)
		got, n, err := DecodeS64(bytes.NewReader(encoded), "s64")
		require.NoError(t, err)
		require.Equal(t, v, got)
		require.Equal(t, len(encoded), n)
	}
}

func TestDecodeU32_Truncated(t *testing.T) {
	_, _, err := DecodeU32(bytes.NewReader([]byte{0x80}), "u32")
	require.Error(t, err)
}
