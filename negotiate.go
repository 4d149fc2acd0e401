package sampleconv

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-audio/audio"
)

var (
	// ErrUnsupportedWidth is returned when a format's byte width is not 1, 2,
	// 3 or 4, or doesn't fit its encoding.
	ErrUnsupportedWidth = errors.New("unsupported bytes per sample")
	// ErrUnsupportedEncoding is returned for the compressed encodings (IMA
	// ADPCM, MPEG audio, AC-3). They are never converted.
	ErrUnsupportedEncoding = errors.New("unsupported sample encoding")
)

// ValidateWidth checks that bps is one of the supported sample widths.
func ValidateWidth(bps int) error {
	switch bps {
	case 1, 2, 3, 4:
		return nil
	default:
		return fmt.Errorf("%w: %d (must be 1, 2, 3 or 4)", ErrUnsupportedWidth, bps)
	}
}

// ValidateEncoding rejects the reserved compressed encodings.
func ValidateEncoding(f Format) error {
	switch f.Encoding() {
	case EncodingNone, EncodingMuLaw, EncodingALaw:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedEncoding, f.Encoding())
	}
}

func validateFormat(f Format) error {
	bps := f.BytesPerSample()

	if err := ValidateWidth(bps); err != nil {
		return err
	}

	if err := ValidateEncoding(f); err != nil {
		return err
	}

	if f.IsLaw() && bps != 1 {
		return fmt.Errorf("%w: %d for %s", ErrUnsupportedWidth, bps, f.Encoding())
	}

	if f.IsFloat() && !f.IsLaw() && bps != floatBytes {
		return fmt.Errorf("%w: %d for float samples", ErrUnsupportedWidth, bps)
	}

	return nil
}

// Config is a negotiated conversion between two formats. It is immutable
// and may be shared by goroutines transforming independent blocks.
type Config struct {
	in, out   Format
	stream    audio.Format
	redundant bool
	mul       float64
	steps     []step
}

// Configure negotiates the conversion from in to out. When both formats
// are identical the returned Config is redundant and the caller should
// bypass the conversion entirely. Stream parameters are carried through
// unchanged.
func Configure(in, out Format, stream audio.Format) (*Config, error) {
	cfg := &Config{
		in:     in,
		out:    out,
		stream: stream,
		mul:    1,
	}

	if in.canonical() == out.canonical() {
		cfg.redundant = true
		return cfg, nil
	}

	if err := validateFormat(in); err != nil {
		return nil, fmt.Errorf("input format %s: %w", in, err)
	}

	if err := validateFormat(out); err != nil {
		return nil, fmt.Errorf("output format %s: %w", out, err)
	}

	cfg.mul = float64(out.BytesPerSample()) / float64(in.BytesPerSample())
	cfg.steps = route(in, out)

	return cfg, nil
}

// route orders the elementary steps. Sign and law handling only ever see
// native-order samples, so byte order normalisation brackets the list.
func route(in, out Format) []step {
	inBps, outBps := in.BytesPerSample(), out.BytesPerSample()

	var steps []step
	if !in.IsNative() {
		steps = append(steps, step{kind: StepSwapIn, bps: inBps})
	}

	outUnsignedInt := out.IsUnsigned() && !out.IsFloat() && !out.IsLaw()

	switch {
	case in.IsLaw():
		if out.IsLaw() {
			steps = append(steps, step{kind: StepLawTranscode, law: in.Encoding(), toLaw: out.Encoding()})
			break
		}

		steps = append(steps, step{kind: StepLawDecode, law: in.Encoding(), bps: outBps, float: out.IsFloat()})
		if outUnsignedInt {
			steps = append(steps, step{kind: StepSignFlip, bps: outBps, output: true})
		}
	case in.IsFloat():
		switch {
		case out.IsLaw():
			steps = append(steps, step{kind: StepLawEncode, law: out.Encoding(), bps: inBps, float: true})
		case out.IsFloat():
			steps = append(steps, step{kind: StepCopy, bps: inBps})
		default:
			steps = append(steps, step{kind: StepQuantize, bps: outBps})
			if outUnsignedInt {
				steps = append(steps, step{kind: StepSignFlip, bps: outBps, output: true})
			}
		}
	default:
		if in.IsUnsigned() != outUnsignedInt {
			steps = append(steps, step{kind: StepSignFlip, bps: inBps})
		}

		switch {
		case out.IsLaw():
			steps = append(steps, step{kind: StepLawEncode, law: out.Encoding(), bps: inBps})
		case out.IsFloat():
			steps = append(steps, step{kind: StepExpand, bps: inBps})
		case inBps != outBps:
			steps = append(steps, step{kind: StepRescale, bps: inBps, outBps: outBps})
		default:
			steps = append(steps, step{kind: StepCopy, bps: inBps})
		}
	}

	if !out.IsNative() {
		steps = append(steps, step{kind: StepSwapOut, bps: outBps})
	}

	return steps
}

// Redundant reports whether input and output formats are identical.
func (c *Config) Redundant() bool { return c.redundant }

func (c *Config) Input() Format { return c.in }

func (c *Config) Output() Format { return c.out }

// Stream returns the sample rate and channel count the config was
// negotiated with.
func (c *Config) Stream() audio.Format { return c.stream }

// Multiplier is the ratio of output to input bytes per sample, used to
// size output buffers.
func (c *Config) Multiplier() float64 { return c.mul }

// OutputSize returns the number of bytes a block of inputLen bytes
// occupies once converted.
func (c *Config) OutputSize(inputLen int) int {
	if c.redundant {
		return inputLen
	}

	return inputLen / c.in.BytesPerSample() * c.out.BytesPerSample()
}

// Steps lists the elementary transforms applied to every block.
func (c *Config) Steps() []StepKind {
	kinds := make([]StepKind, len(c.steps))
	for i, s := range c.steps {
		kinds[i] = s.kind
	}

	return kinds
}

func (c *Config) String() string {
	if c.redundant {
		return fmt.Sprintf("%s -> %s: redundant", c.in, c.out)
	}

	names := make([]string, len(c.steps))
	for i, s := range c.steps {
		names[i] = s.kind.String()
	}

	return fmt.Sprintf("%s -> %s: %s", c.in, c.out, strings.Join(names, " > "))
}
