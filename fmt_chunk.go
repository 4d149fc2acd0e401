package sampleconv

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/go-audio/riff"
)

const (
	wavFormatPCM        = 1
	wavFormatIEEEFloat  = 3
	wavFormatALaw       = 6
	wavFormatMuLaw      = 7
	wavFormatExtensible = 0xFFFE

	fmtChunkBaseSize       = 16
	fmtExtensibleExtraSize = 22
)

// KSDATAFORMAT_SUBTYPE GUID tail shared by all WAVE_FORMAT_EXTENSIBLE
// sub formats.
var ksSubFormatGUIDTail = [12]byte{0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71}

var (
	// ErrUnsupportedWavFormat is returned for WAV sample formats that have no
	// Format equivalent, and for Formats WAV can't store.
	ErrUnsupportedWavFormat = errors.New("unsupported wav sample format")
	errNilChunk             = errors.New("nil fmt chunk")
	errShortFmtChunk        = errors.New("fmt chunk too short")
)

// FmtChunk stores the parsed WAV fmt chunk, including extensible metadata.
type FmtChunk struct {
	FormatTag      uint16
	NumChannels    uint16
	SampleRate     uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
	Extensible     *FmtExtensible
}

// FmtExtensible stores WAVE_FORMAT_EXTENSIBLE extra fields.
type FmtExtensible struct {
	ValidBitsPerSample uint16
	ChannelMask        uint32
	SubFormat          [16]byte
}

// EffectiveFormatTag resolves extensible chunks to their sub format tag.
func (f *FmtChunk) EffectiveFormatTag() uint16 {
	if f == nil {
		return 0
	}

	if f.FormatTag == wavFormatExtensible && f.Extensible != nil {
		return binary.LittleEndian.Uint16(f.Extensible.SubFormat[:2])
	}

	return f.FormatTag
}

// SampleFormat maps the chunk to the Format of its data chunk.
func (f *FmtChunk) SampleFormat() (Format, error) {
	if f == nil {
		return 0, errNilChunk
	}

	tag := f.EffectiveFormatTag()
	bits := int(f.BitsPerSample)

	switch {
	case tag == wavFormatPCM && bits > 0 && bits <= 8:
		return U8, nil
	case tag == wavFormatPCM && bits > 8 && bits <= 32:
		return Descriptor{BytesPerSample: (bits + 7) / 8, Endian: LittleEndian}.Format(), nil
	case tag == wavFormatIEEEFloat && bits == 32:
		return FloatLE, nil
	case tag == wavFormatALaw && bits == 8:
		return ALaw, nil
	case tag == wavFormatMuLaw && bits == 8:
		return MuLaw, nil
	default:
		return 0, fmt.Errorf("%w: format tag %d, %d bits", ErrUnsupportedWavFormat, tag, bits)
	}
}

// WAVFormat returns the format WAV uses to store samples of format f:
// 8-bit PCM is unsigned, wider PCM is signed little endian, floats are
// 32-bit little endian and companded samples are kept as they are.
func WAVFormat(f Format) Format {
	switch {
	case f.IsLaw():
		return f.canonical()
	case f.IsFloat():
		return FloatLE
	case f.BytesPerSample() == 1:
		return U8
	default:
		return Descriptor{BytesPerSample: f.BytesPerSample(), Endian: LittleEndian}.Format()
	}
}

func wavFormatTag(f Format) (uint16, error) {
	switch {
	case f.Encoding() == EncodingALaw:
		return wavFormatALaw, nil
	case f.Encoding() == EncodingMuLaw:
		return wavFormatMuLaw, nil
	case f.Encoding() != EncodingNone:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedWavFormat, f)
	case f.IsFloat():
		return wavFormatIEEEFloat, nil
	default:
		return wavFormatPCM, nil
	}
}

// newFmtChunk builds the fmt chunk for a block. Streams with more than two
// channels use WAVE_FORMAT_EXTENSIBLE.
func newFmtChunk(f Format, numChans, sampleRate int) (*FmtChunk, error) {
	if WAVFormat(f) != f.canonical() {
		return nil, fmt.Errorf("%w: %s (use %s)", ErrUnsupportedWavFormat, f, WAVFormat(f))
	}

	tag, err := wavFormatTag(f)
	if err != nil {
		return nil, err
	}

	blockAlign := numChans * f.BytesPerSample()
	chunk := &FmtChunk{
		FormatTag:      tag,
		NumChannels:    uint16(numChans),
		SampleRate:     uint32(sampleRate),
		AvgBytesPerSec: uint32(sampleRate * blockAlign),
		BlockAlign:     uint16(blockAlign),
		BitsPerSample:  uint16(f.Bits()),
	}

	if numChans > 2 {
		chunk.FormatTag = wavFormatExtensible
		chunk.Extensible = &FmtExtensible{
			ValidBitsPerSample: chunk.BitsPerSample,
			SubFormat:          makeSubFormatGUID(tag),
		}
	}

	return chunk, nil
}

func makeSubFormatGUID(formatTag uint16) [16]byte {
	var guid [16]byte
	binary.LittleEndian.PutUint32(guid[:4], uint32(formatTag))
	copy(guid[4:], ksSubFormatGUIDTail[:])

	return guid
}

func decodeFmtChunk(chunk *riff.Chunk) (*FmtChunk, error) {
	if chunk == nil {
		return nil, errNilChunk
	}

	if chunk.Size < fmtChunkBaseSize {
		return nil, fmt.Errorf("%w: %d bytes", errShortFmtChunk, chunk.Size)
	}

	fmtChunk := &FmtChunk{}

	err := chunk.ReadLE(&fmtChunk.FormatTag)
	if err != nil {
		return nil, fmt.Errorf("failed to read wav format: %w", err)
	}

	err = chunk.ReadLE(&fmtChunk.NumChannels)
	if err != nil {
		return nil, fmt.Errorf("failed to read channels: %w", err)
	}

	err = chunk.ReadLE(&fmtChunk.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample rate: %w", err)
	}

	err = chunk.ReadLE(&fmtChunk.AvgBytesPerSec)
	if err != nil {
		return nil, fmt.Errorf("failed to read avg bytes/sec: %w", err)
	}

	err = chunk.ReadLE(&fmtChunk.BlockAlign)
	if err != nil {
		return nil, fmt.Errorf("failed to read block align: %w", err)
	}

	err = chunk.ReadLE(&fmtChunk.BitsPerSample)
	if err != nil {
		return nil, fmt.Errorf("failed to read bit depth: %w", err)
	}

	if fmtChunk.FormatTag != wavFormatExtensible || chunk.Size < fmtChunkBaseSize+2+fmtExtensibleExtraSize {
		chunk.Drain()

		return fmtChunk, nil
	}

	var extraSize uint16

	err = chunk.ReadLE(&extraSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read fmt extension size: %w", err)
	}

	if extraSize < fmtExtensibleExtraSize {
		chunk.Drain()

		return fmtChunk, nil
	}

	ext := &FmtExtensible{}

	err = chunk.ReadLE(&ext.ValidBitsPerSample)
	if err != nil {
		return nil, fmt.Errorf("failed to read valid bits per sample: %w", err)
	}

	err = chunk.ReadLE(&ext.ChannelMask)
	if err != nil {
		return nil, fmt.Errorf("failed to read channel mask: %w", err)
	}

	err = chunk.ReadLE(&ext.SubFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to read sub format: %w", err)
	}

	fmtChunk.Extensible = ext

	chunk.Drain()

	return fmtChunk, nil
}
