package sampleconv

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

var (
	// ErrPCMDataNotFound is returned when a WAV file has no data chunk.
	ErrPCMDataNotFound = errors.New("PCM data not found")
	errMissingFmtChunk = errors.New("data chunk found before fmt chunk")
	errNotWaveFile     = errors.New("not a RIFF/WAVE file")
)

// ReadWAV reads the first data chunk of a WAV file into a block. The
// block's format follows the fmt chunk; chunks other than fmt and data are
// skipped. A truncated data chunk yields the whole samples that are
// present.
func ReadWAV(r io.Reader) (*Block, error) {
	parser := riff.New(r)

	id, _, err := parser.IDnSize()
	if err != nil {
		return nil, fmt.Errorf("failed to read chunk ID and size: %w", err)
	}

	if id != riff.RiffID {
		return nil, fmt.Errorf("%w: %s - %w", errNotWaveFile, id, riff.ErrFmtNotSupported)
	}

	err = binary.Read(r, binary.BigEndian, &parser.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to read format: %w", err)
	}

	if parser.Format != riff.WavFormatID {
		return nil, fmt.Errorf("%w: %s", errNotWaveFile, parser.Format)
	}

	var fmtChunk *FmtChunk

	for {
		chunk, size, err := nextChunk(r, parser)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrPCMDataNotFound
			}

			return nil, err
		}

		switch chunk.ID {
		case riff.FmtID:
			fmtChunk, err = decodeFmtChunk(chunk)
			if err != nil {
				return nil, fmt.Errorf("failed to decode fmt chunk: %w", err)
			}
		case riff.DataFormatID:
			if fmtChunk == nil {
				return nil, errMissingFmtChunk
			}

			return readDataChunk(chunk, size, fmtChunk)
		default:
			chunk.Drain()
		}
	}
}

// nextChunk returns the next chunk limited to its padded size along with
// the size declared in its header.
func nextChunk(r io.Reader, parser *riff.Parser) (*riff.Chunk, uint32, error) {
	id, size, err := parser.IDnSize()
	if err != nil {
		return nil, 0, err
	}

	// RIFF chunks are word aligned; the declared size doesn't include the
	// padding byte.
	padded := size
	if padded%2 == 1 {
		padded++
	}

	return &riff.Chunk{
		ID:   id,
		Size: int(padded),
		R:    io.LimitReader(r, int64(padded)),
	}, size, nil
}

func readDataChunk(chunk *riff.Chunk, size uint32, fmtChunk *FmtChunk) (*Block, error) {
	format, err := fmtChunk.SampleFormat()
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(chunk, int64(size)))
	if err != nil {
		return nil, fmt.Errorf("failed to read PCM data: %w", err)
	}

	bps := format.BytesPerSample()

	return &Block{
		Data:   data[:len(data)-len(data)%bps],
		Format: format,
		Stream: audio.Format{
			NumChannels: int(fmtChunk.NumChannels),
			SampleRate:  int(fmtChunk.SampleRate),
		},
	}, nil
}
