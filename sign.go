package sampleconv

// FlipSign toggles between signed and unsigned representation by flipping
// the most significant bit of every native-order sample in place.
func FlipSign(data []byte, bps int) {
	n := len(data) / bps
	if n == 0 {
		return
	}

	msb := 0
	if nativeLittle {
		msb = bps - 1
	}

	for i := range n {
		data[i*bps+msb] ^= 0x80
	}
}
