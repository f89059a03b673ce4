package binary

import (
	"testing"

	"github.com/jgravelle-google/wasp"
	"github.com/stretchr/testify/require"
)

func TestReadU32_Overlong(t *testing.T) {
	errs := wasp.NewCollectingErrors()
	c := NewCursor([]byte{0xF0, 0xF0, 0xF0, 0xF0, 0x12})
	_, ok := c.ReadLEBU32("u32", errs)
	require.False(t, ok)
	require.Len(t, errs.Errors, 1)
	require.Equal(t, uint32(5), errs.Errors[0].Offset)
	require.Equal(t, "Last byte of u32 must be zero extension: expected 0x2, got 0x12", errs.Errors[0].Message)
	require.True(t, errs.Empty())
}

func TestReadS32_InRangeNegative(t *testing.T) {
	errs := wasp.NewCollectingErrors()
	c := NewCursor([]byte{0xC0, 0x63})
	v, ok := c.ReadLEBS32("s32", errs)
	require.True(t, ok)
	require.Equal(t, int32(-3648), v)
	require.Equal(t, uint32(2), c.Offset())
	require.Empty(t, errs.Errors)
}

func TestReadLength_ExceedsRemaining(t *testing.T) {
	errs := wasp.NewCollectingErrors()
	c := NewCursor([]byte{0x05, 0x01, 0x02})
	_, ok := c.ReadLength("vector", errs)
	require.False(t, ok)
	require.Len(t, errs.Errors, 1)
	require.Equal(t, "Count is longer than the data length: 5 > 2", errs.Errors[0].Message)
}

func TestReadVector_Empty(t *testing.T) {
	errs := wasp.NewCollectingErrors()
	c := NewCursor([]byte{0x00, 0xFF})
	out, ok := ReadVector(c, "vector", errs, func(c *Cursor, errs wasp.ErrorSink) (byte, bool) {
		return c.ReadU8(errs)
	})
	require.True(t, ok)
	require.Empty(t, out)
	require.Equal(t, 1, c.Len())
}

func TestReadU8_NonConsumptionOnFailure(t *testing.T) {
	errs := wasp.NewCollectingErrors()
	c := NewCursor(nil)
	_, ok := c.ReadU8(errs)
	require.False(t, ok)
	require.Equal(t, uint32(0), c.Offset())
}

func TestReadLEBU32_NonConsumptionOnFailure(t *testing.T) {
	errs := wasp.NewCollectingErrors()
	c := NewCursor([]byte{0x80})
	before := c.Offset()
	_, ok := c.ReadLEBU32("u32", errs)
	require.False(t, ok)
	require.Equal(t, before, c.Offset())
	require.Equal(t, 1, c.Len())
}
