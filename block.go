package sampleconv

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/go-audio/audio"
)

var (
	errNotIntegerBlock = errors.New("block doesn't hold linear integer samples")
	errNotFloatBlock   = errors.New("block doesn't hold float32 samples")
)

// Block is a run of interleaved samples in a single format. Channel count
// and sample rate are carried in Stream and never interpreted.
type Block struct {
	Data   []byte
	Format Format
	Stream audio.Format
}

// Samples returns the number of samples (not frames) in the block.
func (b *Block) Samples() int {
	if b == nil {
		return 0
	}

	return len(b.Data) / b.Format.BytesPerSample()
}

// Frames returns the number of whole sample frames, one sample per
// channel.
func (b *Block) Frames() int {
	if b == nil {
		return 0
	}

	return b.Samples() / b.streamFormat().NumChannels
}

// Duration is the playing time of the block, zero when the sample rate is
// unknown.
func (b *Block) Duration() time.Duration {
	if b == nil || b.Stream.SampleRate <= 0 {
		return 0
	}

	return time.Duration(b.Frames()) * time.Second / time.Duration(b.Stream.SampleRate)
}

func (b *Block) streamFormat() *audio.Format {
	format := b.Stream
	if format.NumChannels < 1 {
		format.NumChannels = 1
	}

	return &format
}

// IntBuffer decodes a linear integer block into a go-audio int buffer.
// Unsigned samples are re-centred around zero so the buffer always holds
// signed values.
func (b *Block) IntBuffer() (*audio.IntBuffer, error) {
	if b.Format.IsFloat() || b.Format.Encoding() != EncodingNone {
		return nil, fmt.Errorf("%w: %s", errNotIntegerBlock, b.Format)
	}

	bps := b.Format.BytesPerSample()
	if err := ValidateWidth(bps); err != nil {
		return nil, err
	}

	little := b.Format.Endian() == LittleEndian
	unsigned := b.Format.IsUnsigned()
	offset := 1 << (b.Format.Bits() - 1)

	n := b.Samples()
	buf := &audio.IntBuffer{
		Format:         b.streamFormat(),
		Data:           make([]int, n),
		SourceBitDepth: b.Format.Bits(),
	}

	for i := range n {
		raw := b.Data[i*bps : (i+1)*bps]

		var v int
		if unsigned {
			v = int(readUint(raw, little)) - offset
		} else {
			v = readInt(raw, little)
		}

		buf.Data[i] = v
	}

	return buf, nil
}

func readUint(raw []byte, little bool) uint32 {
	var order binary.ByteOrder = binary.BigEndian
	if little {
		order = binary.LittleEndian
	}

	switch len(raw) {
	case 1:
		return uint32(raw[0])
	case 2:
		return uint32(order.Uint16(raw))
	case 3:
		if little {
			return uint32(raw[0]) | uint32(raw[1])<<8 | uint32(raw[2])<<16
		}

		return audio.Uint24to32(raw)
	default:
		return order.Uint32(raw)
	}
}

func readInt(raw []byte, little bool) int {
	switch len(raw) {
	case 1:
		return int(int8(raw[0]))
	case 2:
		return int(int16(readUint(raw, little)))
	case 3:
		if little {
			return int(audio.Int24LETo32(raw))
		}

		return int(audio.Int24BETo32(raw))
	default:
		return int(int32(readUint(raw, little)))
	}
}

// Float32Buffer decodes a float block into a go-audio float32 buffer.
func (b *Block) Float32Buffer() (*audio.Float32Buffer, error) {
	if !b.Format.IsFloat() || b.Format.Encoding() != EncodingNone || b.Format.BytesPerSample() != floatBytes {
		return nil, fmt.Errorf("%w: %s", errNotFloatBlock, b.Format)
	}

	data := b.Data
	if !b.Format.IsNative() {
		data = make([]byte, len(b.Data))
		SwapBytes(data, b.Data, floatBytes)
	}

	n := len(data) / floatBytes
	buf := &audio.Float32Buffer{
		Format:         b.streamFormat(),
		Data:           make([]float32, n),
		SourceBitDepth: 32,
	}

	for i := range n {
		buf.Data[i] = loadFloat(data, i)
	}

	return buf, nil
}

// BlockFromIntBuffer packs a go-audio int buffer into a signed native-order
// block of the buffer's source bit depth.
func BlockFromIntBuffer(buf *audio.IntBuffer) (*Block, error) {
	if buf == nil {
		return nil, audio.ErrInvalidBuffer
	}

	bps := (buf.SourceBitDepth + 7) / 8
	if err := ValidateWidth(bps); err != nil {
		return nil, err
	}

	block := &Block{
		Data:   make([]byte, len(buf.Data)*bps),
		Format: Descriptor{BytesPerSample: bps, Endian: NativeEndian}.Format().canonical(),
	}
	if buf.Format != nil {
		block.Stream = *buf.Format
	}

	for i, v := range buf.Data {
		p := block.Data[i*bps:]

		switch bps {
		case 1:
			p[0] = byte(int8(v))
		case 2:
			binary.NativeEndian.PutUint16(p, uint16(int16(v)))
		case 3:
			var packed []byte
			if nativeLittle {
				packed = audio.Int32toInt24LEBytes(int32(v))
			} else {
				packed = audio.Int32toInt24BEBytes(int32(v))
			}

			copy(p, packed)
		default:
			binary.NativeEndian.PutUint32(p, uint32(int32(v)))
		}
	}

	return block, nil
}

// BlockFromFloat32Buffer packs a go-audio float32 buffer into a native-order
// float block.
func BlockFromFloat32Buffer(buf *audio.Float32Buffer) (*Block, error) {
	if buf == nil {
		return nil, audio.ErrInvalidBuffer
	}

	block := &Block{
		Data:   make([]byte, len(buf.Data)*floatBytes),
		Format: FloatNE,
	}
	if buf.Format != nil {
		block.Stream = *buf.Format
	}

	for i, v := range buf.Data {
		storeFloat(block.Data, i, v)
	}

	return block, nil
}
