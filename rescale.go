package sampleconv

// Rescale converts native-order integer samples from inBps to outBps bytes
// per sample. Widening shifts the value into the high bytes and zero-fills
// the rest; narrowing drops the low bytes. dst must not overlap src when
// the widths differ.
func Rescale(dst, src []byte, inBps, outBps int) {
	n := len(src) / inBps

	if inBps == outBps {
		copy(dst, src[:n*inBps])
		return
	}

	for i := range n {
		storeWord(dst, i, outBps, loadWord(src, i, inBps))
	}
}
