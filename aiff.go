package sampleconv

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
)

var errUnsupportedAIFFFormat = errors.New("unsupported aiff sample format")

// AIFFFormat returns the format AIFF uses to store samples of format f.
// AIFF holds signed big endian integers; floats and companded samples are
// stored as 16-bit.
func AIFFFormat(f Format) Format {
	if f.IsFloat() || f.Encoding() != EncodingNone || ValidateWidth(f.BytesPerSample()) != nil {
		return S16BE
	}

	return Descriptor{BytesPerSample: f.BytesPerSample(), Endian: BigEndian}.Format().canonical()
}

// ReadAIFF decodes the sound data of an AIFF file into a signed
// native-order block.
func ReadAIFF(r io.ReadSeeker) (*Block, error) {
	dec := aiff.NewDecoder(r)

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode aiff: %w", err)
	}

	return BlockFromIntBuffer(buf)
}

// WriteAIFF encodes a linear integer block as an AIFF file. The block's
// samples are written at its own bit depth.
func WriteAIFF(w io.WriteSeeker, block *Block) error {
	if w == nil {
		return errNilWriter
	}

	if block == nil {
		return errNilBlock
	}

	buf, err := block.IntBuffer()
	if err != nil {
		return fmt.Errorf("%w: %w", errUnsupportedAIFFFormat, err)
	}

	enc := aiff.NewEncoder(w, buf.Format.SampleRate, buf.SourceBitDepth, buf.Format.NumChannels)

	err = enc.Write(buf)
	if err != nil {
		return fmt.Errorf("failed to encode aiff: %w", err)
	}

	return enc.Close()
}
