package sampleconv

import "math"

// lawLinearScale maps the 16-bit linear domain of the companding tables to
// and from float samples.
const lawLinearScale = 32768.0

func lawDecodeTable(e Encoding) *[256]int16 {
	if e == EncodingALaw {
		return aLawToLinear
	}

	return muLawToLinear
}

func lawEncodeFunc(e Encoding) func(int16) byte {
	if e == EncodingALaw {
		return encodeALawSample
	}

	return encodeMuLawSample
}

// decodeLaw expands companded bytes in src into signed native-order
// samples of width outBps in dst, or into float32 samples when toFloat is
// set.
func decodeLaw(e Encoding, dst, src []byte, outBps int, toFloat bool) {
	table := lawDecodeTable(e)

	for i, b := range src {
		linear := table[b]
		if toFloat {
			storeFloat(dst, i, float32(float64(linear)/lawLinearScale))
			continue
		}

		storeWord(dst, i, outBps, uint32(int32(linear)<<16))
	}
}

// encodeLaw compresses signed native-order samples of width inBps, or
// float32 samples when fromFloat is set, into one byte per sample.
func encodeLaw(e Encoding, dst, src []byte, inBps int, fromFloat bool) {
	encode := lawEncodeFunc(e)

	n := len(src) / inBps
	for i := range n {
		var linear int16
		if fromFloat {
			linear = floatToLinear16(loadFloat(src, i))
		} else {
			linear = int16(loadWord(src, i, inBps) >> 16)
		}

		dst[i] = encode(linear)
	}
}

// transcodeLaw converts between the two companding laws through the
// 16-bit linear domain.
func transcodeLaw(from, to Encoding, dst, src []byte) {
	table := lawDecodeTable(from)
	encode := lawEncodeFunc(to)

	for i, b := range src {
		dst[i] = encode(table[b])
	}
}

func floatToLinear16(v float32) int16 {
	scaled := math.RoundToEven(float64(v) * quantizeScale16)

	return int16(max(min(scaled, math.MaxInt16), math.MinInt16))
}
