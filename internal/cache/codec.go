package cache

import (
	"encoding/binary"
	"fmt"
	"math"
)

// EncodeVector packs a float32 vector as little-endian bytes
func EncodeVector(vector []float32) ([]byte, error) {
	blob := make([]byte, len(vector)*4)
	for i, v := range vector {
		binary.LittleEndian.PutUint32(blob[i*4:], math.Float32bits(v))
	}
	return blob, nil
}

// DecodeVector unpacks a vector written by EncodeVector
func DecodeVector(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("invalid vector blob length %d", len(blob))
	}
	vector := make([]float32, len(blob)/4)
	for i := range vector {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vector, nil
}

// VectorCodec is the Memo option for []float32 values
func VectorCodec() MemoOption[[]float32] {
	return WithCodec(EncodeVector, DecodeVector)
}
