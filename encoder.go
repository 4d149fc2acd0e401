package sampleconv

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

var errNilWriter = errors.New("can't write to a nil writer")

type wavWriter struct {
	w io.Writer
}

// AddLE serializes and adds the passed value using little endian.
func (e *wavWriter) AddLE(src any) error {
	err := binary.Write(e.w, binary.LittleEndian, src)
	if err != nil {
		return fmt.Errorf("failed to write little endian: %w", err)
	}

	return nil
}

func (e *wavWriter) write(p []byte) error {
	_, err := e.w.Write(p)

	return err
}

// WriteWAV writes a block as a complete WAV file. The block must already be
// in the format WAVFormat reports for it; convert it first otherwise.
func WriteWAV(w io.Writer, block *Block) error {
	if w == nil {
		return errNilWriter
	}

	if block == nil {
		return errNilBlock
	}

	chunk, err := newFmtChunk(block.Format, block.streamFormat().NumChannels, block.Stream.SampleRate)
	if err != nil {
		return err
	}

	// Build the file in memory so sizes don't need patching afterwards.
	var buf bytes.Buffer
	enc := &wavWriter{w: &buf}

	fmtSize := fmtChunkBaseSize
	if chunk.Extensible != nil {
		fmtSize += 2 + fmtExtensibleExtraSize
	}

	dataSize := len(block.Data)
	pad := dataSize % 2
	riffSize := 4 + (8 + fmtSize) + (8 + dataSize + pad)

	err = enc.AddLE(riff.RiffID)
	if err != nil {
		return err
	}

	err = enc.AddLE(uint32(riffSize))
	if err != nil {
		return err
	}

	err = enc.AddLE(riff.WavFormatID)
	if err != nil {
		return err
	}

	err = enc.writeFmtChunk(chunk, fmtSize)
	if err != nil {
		return err
	}

	err = enc.AddLE(riff.DataFormatID)
	if err != nil {
		return fmt.Errorf("error encoding sound header %w", err)
	}

	err = enc.AddLE(uint32(dataSize))
	if err != nil {
		return fmt.Errorf("%w when writing wav data chunk size header", err)
	}

	err = enc.write(block.Data)
	if err != nil {
		return fmt.Errorf("failed to write PCM data: %w", err)
	}

	if pad == 1 {
		err = enc.write([]byte{0})
		if err != nil {
			return fmt.Errorf("failed to write data chunk padding: %w", err)
		}
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write wav file: %w", err)
	}

	return nil
}

func (e *wavWriter) writeFmtChunk(chunk *FmtChunk, size int) error {
	err := e.AddLE(riff.FmtID)
	if err != nil {
		return err
	}

	err = e.AddLE(uint32(size))
	if err != nil {
		return err
	}

	err = e.AddLE(chunk.FormatTag)
	if err != nil {
		return err
	}

	err = e.AddLE(chunk.NumChannels)
	if err != nil {
		return fmt.Errorf("error encoding the number of channels - %w", err)
	}

	err = e.AddLE(chunk.SampleRate)
	if err != nil {
		return fmt.Errorf("error encoding the sample rate - %w", err)
	}

	err = e.AddLE(chunk.AvgBytesPerSec)
	if err != nil {
		return fmt.Errorf("error encoding the avg bytes per sec - %w", err)
	}

	err = e.AddLE(chunk.BlockAlign)
	if err != nil {
		return err
	}

	err = e.AddLE(chunk.BitsPerSample)
	if err != nil {
		return fmt.Errorf("error encoding bits per sample - %w", err)
	}

	if chunk.Extensible == nil {
		return nil
	}

	err = e.AddLE(uint16(fmtExtensibleExtraSize))
	if err != nil {
		return fmt.Errorf("error encoding fmt extension length - %w", err)
	}

	err = e.AddLE(chunk.Extensible.ValidBitsPerSample)
	if err != nil {
		return fmt.Errorf("error encoding valid bits per sample - %w", err)
	}

	err = e.AddLE(chunk.Extensible.ChannelMask)
	if err != nil {
		return fmt.Errorf("error encoding channel mask - %w", err)
	}

	err = e.AddLE(chunk.Extensible.SubFormat)
	if err != nil {
		return fmt.Errorf("error encoding sub format - %w", err)
	}

	return nil
}
