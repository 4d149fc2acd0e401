package sampleconv

// SwapBytes reverses the byte order of every sample in src and writes the
// result to dst. dst and src may be the same slice. Three byte samples
// keep their middle byte; single byte samples are copied unchanged.
func SwapBytes(dst, src []byte, bps int) {
	n := len(src) / bps

	switch bps {
	case 2:
		for i := range n {
			p := i * 2
			dst[p], dst[p+1] = src[p+1], src[p]
		}
	case 3:
		for i := range n {
			p := i * 3
			dst[p], dst[p+1], dst[p+2] = src[p+2], src[p+1], src[p]
		}
	case 4:
		for i := range n {
			p := i * 4
			dst[p], dst[p+1], dst[p+2], dst[p+3] = src[p+3], src[p+2], src[p+1], src[p]
		}
	default:
		copy(dst, src[:n*bps])
	}
}
