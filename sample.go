package sampleconv

import "encoding/binary"

// Samples are handled as left-justified 32-bit words in machine byte
// order: an 8-bit sample occupies the top byte, a 16-bit sample the top
// half, and so on. Width changes then reduce to shifts.

func load24(b []byte) uint32 {
	if nativeLittle {
		return uint32(b[0])<<8 | uint32(b[1])<<16 | uint32(b[2])<<24
	}

	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8
}

func store24(b []byte, v uint32) {
	if nativeLittle {
		b[0] = byte(v >> 8)
		b[1] = byte(v >> 16)
		b[2] = byte(v >> 24)

		return
	}

	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
}

// loadWord reads sample i of a native-order block as a left-justified word.
func loadWord(data []byte, i, bps int) uint32 {
	switch bps {
	case 1:
		return uint32(data[i]) << 24
	case 2:
		return uint32(binary.NativeEndian.Uint16(data[i*2:])) << 16
	case 3:
		return load24(data[i*3:])
	default:
		return binary.NativeEndian.Uint32(data[i*4:])
	}
}

// storeWord writes the top bps bytes of a left-justified word as sample i.
func storeWord(data []byte, i, bps int, v uint32) {
	switch bps {
	case 1:
		data[i] = byte(v >> 24)
	case 2:
		binary.NativeEndian.PutUint16(data[i*2:], uint16(v>>16))
	case 3:
		store24(data[i*3:], v)
	default:
		binary.NativeEndian.PutUint32(data[i*4:], v)
	}
}
