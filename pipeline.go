package sampleconv

import (
	"errors"
	"fmt"
)

var (
	// ErrShortBuffer is returned when the destination can't hold the
	// converted block.
	ErrShortBuffer = errors.New("destination buffer too small")
	// ErrMisalignedBlock is returned when a block doesn't hold a whole
	// number of input samples.
	ErrMisalignedBlock = errors.New("block length is not a multiple of the sample width")
)

// StepKind identifies an elementary transform.
type StepKind uint8

const (
	StepSwapIn StepKind = iota
	StepSignFlip
	StepLawDecode
	StepLawEncode
	StepLawTranscode
	StepQuantize
	StepExpand
	StepRescale
	StepCopy
	StepSwapOut
)

func (k StepKind) String() string {
	switch k {
	case StepSwapIn:
		return "swap-in"
	case StepSignFlip:
		return "sign"
	case StepLawDecode:
		return "law-decode"
	case StepLawEncode:
		return "law-encode"
	case StepLawTranscode:
		return "law-transcode"
	case StepQuantize:
		return "quantize"
	case StepExpand:
		return "expand"
	case StepRescale:
		return "rescale"
	case StepCopy:
		return "copy"
	case StepSwapOut:
		return "swap-out"
	default:
		return fmt.Sprintf("step(%d)", uint8(k))
	}
}

type step struct {
	kind StepKind
	// bps is the width the step reads, except for law decoding and
	// quantization where it's the width written.
	bps    int
	outBps int
	law    Encoding
	toLaw  Encoding
	float  bool
	// output marks in-place steps that run on the destination block.
	output bool
}

// apply runs the step over n samples. In-place steps on the input side
// rewrite src; everything else fills dst.
func (s step) apply(dst, src []byte, n int) {
	switch s.kind {
	case StepSwapIn:
		SwapBytes(src, src, s.bps)
	case StepSwapOut:
		SwapBytes(dst, dst, s.bps)
	case StepSignFlip:
		if s.output {
			FlipSign(dst[:n*s.bps], s.bps)
		} else {
			FlipSign(src, s.bps)
		}
	case StepLawDecode:
		decodeLaw(s.law, dst, src, s.bps, s.float)
	case StepLawEncode:
		encodeLaw(s.law, dst, src, s.bps, s.float)
	case StepLawTranscode:
		transcodeLaw(s.law, s.toLaw, dst, src)
	case StepQuantize:
		Quantize(dst, src, s.bps)
	case StepExpand:
		Expand(dst, src, s.bps)
	case StepRescale:
		Rescale(dst, src, s.bps, s.outBps)
	case StepCopy:
		copy(dst, src[:n*s.bps])
	}
}

// Transform converts the samples in src into dst and returns the number
// of bytes written. dst must hold at least OutputSize(len(src)) bytes.
//
// src is used as scratch space: byte order and sign are normalised in
// place before the block is converted. dst may be src itself when input
// and output widths are equal, but must not overlap it otherwise.
func (c *Config) Transform(dst, src []byte) (int, error) {
	inBps := c.in.BytesPerSample()
	if c.redundant {
		inBps = 1
	}

	if len(src)%inBps != 0 {
		return 0, fmt.Errorf("%w: %d bytes, %d bytes per sample", ErrMisalignedBlock, len(src), inBps)
	}

	size := c.OutputSize(len(src))
	if len(dst) < size {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrShortBuffer, size, len(dst))
	}

	if c.redundant {
		return copy(dst, src), nil
	}

	n := len(src) / inBps
	for _, s := range c.steps {
		s.apply(dst[:size], src, n)
	}

	return size, nil
}
