package ieee754

import (
	"encoding/binary"
	"math"
)

// EncodeFloat32 writes v as 4 little-endian bytes.
func EncodeFloat32(v float32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
	return buf[:]
}

// EncodeFloat64 writes v as 8 little-endian bytes.
func EncodeFloat64(v float64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	return buf[:]
}
