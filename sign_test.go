package sampleconv

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestFlipSignInvolution(t *testing.T) {
	for bps := 1; bps <= 4; bps++ {
		orig := randomBytes(int64(10+bps), bps*512)

		data := append([]byte(nil), orig...)
		FlipSign(data, bps)
		FlipSign(data, bps)

		if !bytes.Equal(data, orig) {
			t.Fatalf("width %d: signFlip(signFlip(x)) != x", bps)
		}
	}
}

func TestFlipSignTogglesMostSignificantBit(t *testing.T) {
	data := make([]byte, 4)
	binary.NativeEndian.PutUint16(data, 0x0000)
	binary.NativeEndian.PutUint16(data[2:], 0xFFFF)

	FlipSign(data, 2)

	if got := binary.NativeEndian.Uint16(data); got != 0x8000 {
		t.Fatalf("first sample=%#04x, want 0x8000", got)
	}

	if got := binary.NativeEndian.Uint16(data[2:]); got != 0x7FFF {
		t.Fatalf("second sample=%#04x, want 0x7fff", got)
	}
}

func TestFlipSign24Bit(t *testing.T) {
	data := make([]byte, 3)
	store24(data, 0x12345600)

	FlipSign(data, 3)

	if got := load24(data); got != 0x92345600 {
		t.Fatalf("24-bit sample=%#08x, want 0x92345600", got)
	}
}

func TestFlipSignEmpty(t *testing.T) {
	FlipSign(nil, 2)
	FlipSign([]byte{1}, 2)
}
