// Package ieee754 decodes and encodes the little-endian fixed-width
// float encodings used by f32.const/f64.const and float-typed memory
// accesses. Grounded on tetratelabs-wazero's wasm/ieee754 package.
package ieee754

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// DecodeFloat32 reads 4 little-endian bytes and reinterprets them as
// an IEEE 754 single-precision float.
func DecodeFloat32(r io.Reader) (float32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("read f32: %w", err)
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[:])), nil
}

// DecodeFloat64 reads 8 little-endian bytes and reinterprets them as
// an IEEE 754 double-precision float.
func DecodeFloat64(r io.Reader) (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("read f64: %w", err)
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[:])), nil
}
