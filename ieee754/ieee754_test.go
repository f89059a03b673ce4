package ieee754

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFloat32RoundTrip(t *testing.T) {
	for _, v := range []float32{0, 1, -1, 3.14159, float32(math32NaN())} {
		encoded := EncodeFloat32(v)
		got, err := DecodeFloat32(bytes.NewReader(encoded))
		require.NoError(t, err)
		if v != v {
			require.True(t, got != got)
			continue
		}
		require.Equal(t, v, got)
	}
}

func TestFloat64RoundTrip(t *testing.T) {
	for _, v := range []float64{0, 1, -1, 2.71828} {
		encoded := EncodeFloat64(v)
		got, err := DecodeFloat64(bytes.NewReader(encoded))
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func math32NaN() float32 {
	var zero float32
	return zero / zero
}
