package sampleconv

import (
	"errors"
	"fmt"

	"github.com/go-audio/audio"
)

var (
	// ErrAllocationFailed is returned when the output buffer for a block
	// can't be obtained.
	ErrAllocationFailed = errors.New("output buffer allocation failed")
	// ErrStageNotReady is returned by Play before a successful Init.
	ErrStageNotReady = errors.New("format stage not initialised")
	// ErrFormatMismatch is returned when a block doesn't match the format
	// the stage was initialised with.
	ErrFormatMismatch = errors.New("block format doesn't match the negotiated input")
	errNilBlock       = errors.New("nil block")
)

// Allocator provides output buffers for converted blocks.
type Allocator interface {
	Alloc(size int) ([]byte, error)
}

// ScratchBuffer is an Allocator that reuses a single growing buffer.
// Blocks returned by a Stage using it are only valid until the next Play.
type ScratchBuffer struct {
	// Limit caps the buffer size in bytes. Zero means no limit.
	Limit int

	buf []byte
}

func (s *ScratchBuffer) Alloc(size int) ([]byte, error) {
	if s.Limit > 0 && size > s.Limit {
		return nil, fmt.Errorf("%d bytes requested, limit is %d", size, s.Limit)
	}

	if cap(s.buf) < size {
		s.buf = make([]byte, size)
	}

	return s.buf[:size], nil
}

// Status is the outcome of a successful Stage.Init.
type Status int

const (
	// StatusReady means blocks must go through Play.
	StatusReady Status = iota
	// StatusDetach means the conversion is redundant and the stage can be
	// removed from the chain.
	StatusDetach
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusDetach:
		return "detach"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Stage is a format conversion step of a processing chain. Init and Play
// must not be called concurrently.
type Stage struct {
	out   Format
	alloc Allocator
	cfg   *Config
}

// NewStage creates a stage converting to out. A nil alloc uses a
// ScratchBuffer.
func NewStage(out Format, alloc Allocator) *Stage {
	if alloc == nil {
		alloc = &ScratchBuffer{}
	}

	return &Stage{out: out, alloc: alloc}
}

// Init (re)negotiates the stage for a new input format. On error the stage
// is left unusable until the next successful Init.
func (s *Stage) Init(in Format, stream audio.Format) (Status, error) {
	s.cfg = nil

	cfg, err := Configure(in, s.out, stream)
	if err != nil {
		return StatusReady, err
	}

	s.cfg = cfg
	if cfg.Redundant() {
		return StatusDetach, nil
	}

	return StatusReady, nil
}

// Config returns the negotiated conversion, nil before a successful Init.
func (s *Stage) Config() *Config { return s.cfg }

// Multiplier returns the output to input size ratio, 1 before Init.
func (s *Stage) Multiplier() float64 {
	if s.cfg == nil {
		return 1
	}

	return s.cfg.Multiplier()
}

// Play converts a block. Redundant stages return the block unchanged.
// The input block's data may be rewritten in place.
func (s *Stage) Play(block *Block) (*Block, error) {
	if s.cfg == nil {
		return nil, ErrStageNotReady
	}

	if block == nil {
		return nil, errNilBlock
	}

	if s.cfg.Redundant() {
		return block, nil
	}

	if block.Format.canonical() != s.cfg.Input().canonical() {
		return nil, fmt.Errorf("%w: got %s, want %s", ErrFormatMismatch, block.Format, s.cfg.Input())
	}

	size := s.cfg.OutputSize(len(block.Data))

	buf, err := s.alloc.Alloc(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllocationFailed, err)
	}

	if len(buf) < size {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrAllocationFailed, len(buf), size)
	}

	n, err := s.cfg.Transform(buf, block.Data)
	if err != nil {
		return nil, err
	}

	return &Block{
		Data:   buf[:n],
		Format: s.cfg.Output(),
		Stream: block.Stream,
	}, nil
}
