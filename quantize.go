package sampleconv

import (
	"encoding/binary"
	"math"
)

// Quantization multiplies by 2^n-1 while expansion divides by 2^n, so the
// two are not exact inverses. Three byte samples use the 32-bit scales and
// keep the top three bytes.
const (
	quantizeScale8  = 127.0
	quantizeScale16 = 32767.0
	quantizeScale32 = 2147483647.0

	expandScale8  = 128.0
	expandScale16 = 32768.0
	expandScale32 = 2147483648.0

	floatBytes = 4
)

func quantizeScale(bps int) float64 {
	switch bps {
	case 1:
		return quantizeScale8
	case 2:
		return quantizeScale16
	default:
		return quantizeScale32
	}
}

func expandScale(bps int) float64 {
	switch bps {
	case 1:
		return expandScale8
	case 2:
		return expandScale16
	default:
		return expandScale32
	}
}

func loadFloat(data []byte, i int) float32 {
	return math.Float32frombits(binary.NativeEndian.Uint32(data[i*floatBytes:]))
}

func storeFloat(data []byte, i int, v float32) {
	binary.NativeEndian.PutUint32(data[i*floatBytes:], math.Float32bits(v))
}

// quantizeSample scales and rounds half to even. Nothing is clamped:
// values outside [-1, 1] wrap around the target width.
func quantizeSample(v float32, bps int) uint32 {
	q := int64(math.RoundToEven(float64(v) * quantizeScale(bps)))

	switch bps {
	case 1:
		return uint32(uint8(int8(q))) << 24
	case 2:
		return uint32(uint16(int16(q))) << 16
	default:
		return uint32(int32(q))
	}
}

func expandSample(word uint32, bps int) float32 {
	var v int32

	switch bps {
	case 1:
		v = int32(int8(word >> 24))
	case 2:
		v = int32(int16(word >> 16))
	default:
		v = int32(word)
	}

	return float32(float64(v) / expandScale(bps))
}

// Quantize converts native-order float32 samples in src into signed
// native-order integers of width bps in dst.
func Quantize(dst, src []byte, bps int) {
	n := len(src) / floatBytes

	for i := range n {
		storeWord(dst, i, bps, quantizeSample(loadFloat(src, i), bps))
	}
}

// Expand converts signed native-order integers of width bps in src into
// native-order float32 samples in dst.
func Expand(dst, src []byte, bps int) {
	n := len(src) / bps

	for i := range n {
		storeFloat(dst, i, expandSample(loadWord(src, i, bps), bps))
	}
}
