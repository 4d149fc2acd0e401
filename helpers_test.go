package sampleconv

import (
	"encoding/binary"
	"math"
	"math/rand"
)

func float32ApproxEqual(value, expected, epsilon float32) bool {
	diff := value - expected
	if diff < 0 {
		diff = -diff
	}

	return diff <= epsilon
}

// foreign returns f stored in the byte order opposite to the machine's.
func foreign(f Format) Format {
	if nativeLittle {
		return f.WithEndian(BigEndian)
	}

	return f.WithEndian(LittleEndian)
}

func randomBytes(seed int64, n int) []byte {
	rng := rand.New(rand.NewSource(seed))
	b := make([]byte, n)
	rng.Read(b)

	return b
}

func le16(values ...int16) []byte {
	b := make([]byte, len(values)*2)
	for i, v := range values {
		binary.LittleEndian.PutUint16(b[i*2:], uint16(v))
	}

	return b
}

func decodeLE16(b []byte) []int16 {
	out := make([]int16, len(b)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(b[i*2:]))
	}

	return out
}

func leFloats(values ...float32) []byte {
	b := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}

	return b
}

func decodeLEFloats(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}

	return out
}

func nativeFloats(values ...float32) []byte {
	b := make([]byte, len(values)*4)
	for i, v := range values {
		storeFloat(b, i, v)
	}

	return b
}
