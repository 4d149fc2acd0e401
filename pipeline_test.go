package sampleconv

import (
	"bytes"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/go-audio/audio"
)

func mustConfigure(t *testing.T, in, out Format) *Config {
	t.Helper()

	cfg, err := Configure(in, out, audio.Format{NumChannels: 1, SampleRate: 8000})
	if err != nil {
		t.Fatalf("Configure(%s, %s) error = %v", in, out, err)
	}

	return cfg
}

func transform(t *testing.T, cfg *Config, src []byte) []byte {
	t.Helper()

	dst := make([]byte, cfg.OutputSize(len(src)))

	n, err := cfg.Transform(dst, append([]byte(nil), src...))
	if err != nil {
		t.Fatalf("%s: Transform error = %v", cfg, err)
	}

	if n != len(dst) {
		t.Fatalf("%s: wrote %d bytes, want %d", cfg, n, len(dst))
	}

	return dst
}

func TestTransformUnsigned8ToSigned16(t *testing.T) {
	cfg := mustConfigure(t, U8, S16LE)

	got := transform(t, cfg, []byte{0x00, 0x80, 0xFF, 0x40})

	want := []byte{0x00, 0x80, 0x00, 0x00, 0x00, 0x7F, 0x00, 0xC0}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}

	if samples := decodeLE16(got); !slices.Equal(samples, []int16{-32768, 0, 32512, -16384}) {
		t.Fatalf("samples = %v", samples)
	}
}

func TestTransformIntegers(t *testing.T) {
	tests := []struct {
		name    string
		in, out Format
		src     []byte
		want    []byte
	}{
		{"byte order swap", S16BE, S16LE, []byte{0x12, 0x34, 0xAB, 0xCD}, []byte{0x34, 0x12, 0xCD, 0xAB}},
		{"sign only", S16LE, U16LE, le16(0, -32768, 32767), []byte{0x00, 0x80, 0x00, 0x00, 0xFF, 0xFF}},
		{"narrow", S32LE, S16BE, []byte{0x78, 0x56, 0x34, 0x12}, []byte{0x12, 0x34}},
		{"widen to 24", S16LE, S24BE, le16(0x1234), []byte{0x12, 0x34, 0x00}},
		{"unsigned 24 to signed 8", U24LE, S8, []byte{0x00, 0x00, 0x80, 0xFF, 0xFF, 0xFF}, []byte{0x00, 0x7F}},
		{"signed 8 to unsigned 16", S8, U16BE, []byte{0x80, 0x7F}, []byte{0x00, 0x00, 0xFF, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := transform(t, mustConfigure(t, tt.in, tt.out), tt.src)
			if !bytes.Equal(got, tt.want) {
				t.Fatalf("got % x, want % x", got, tt.want)
			}
		})
	}
}

func TestTransformFloatToInt(t *testing.T) {
	got := transform(t, mustConfigure(t, FloatLE, S16LE), leFloats(1, -1, 0, 0.5))

	want := []int16{32767, -32767, 0, 16384}
	if samples := decodeLE16(got); !slices.Equal(samples, want) {
		t.Fatalf("samples = %v, want %v", samples, want)
	}
}

func TestTransformFloatToUnsigned8(t *testing.T) {
	got := transform(t, mustConfigure(t, FloatBE, U8), []byte{0x3F, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})

	if !bytes.Equal(got, []byte{0xFF, 0x80}) {
		t.Fatalf("got % x, want ff 80", got)
	}
}

func TestTransformIntToFloat(t *testing.T) {
	tests := []struct {
		name string
		in   Format
		src  []byte
		want []float32
	}{
		{"signed 16", S16LE, le16(32767, -32768, 16384), []float32{32767.0 / 32768.0, -1, 0.5}},
		{"unsigned 8", U8, []byte{0x00, 0x80, 0xC0}, []float32{-1, 0, 0.5}},
		{"signed 24 big endian", S24BE, []byte{0x40, 0x00, 0x00, 0xC0, 0x00, 0x00}, []float32{0.5, -0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeLEFloats(transform(t, mustConfigure(t, tt.in, FloatLE), tt.src))
			if !slices.Equal(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransformFloatByteOrder(t *testing.T) {
	src := leFloats(0.25, -2)
	got := transform(t, mustConfigure(t, FloatLE, FloatBE), src)

	want := []byte{0x3E, 0x80, 0x00, 0x00, 0xC0, 0x00, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}
}

func TestTransformLaw(t *testing.T) {
	tests := []struct {
		name    string
		in, out Format
		src     []byte
		want    []byte
	}{
		{"mu-law to s16le", MuLaw, S16LE, []byte{0xFF, 0x80, 0x00}, le16(0, 32124, -32124)},
		{"A-law to s16le", ALaw, S16LE, []byte{0xD5, 0x55}, le16(8, -8)},
		{"mu-law to u8", MuLaw, U8, []byte{0xFF}, []byte{0x80}},
		{"s16le to mu-law", S16LE, MuLaw, le16(0, 32124, -32124), []byte{0xFF, 0x80, 0x00}},
		{"s16le to A-law", S16LE, ALaw, le16(0), []byte{0xD5}},
		{"u8 to A-law", U8, ALaw, []byte{0x80}, []byte{0xD5}},
		{"float to mu-law", FloatLE, MuLaw, leFloats(0, 2), []byte{0xFF, 0x80}},
		{"mu-law to A-law", MuLaw, ALaw, []byte{0xFF}, []byte{0xD5}},
		{"A-law to mu-law", ALaw, MuLaw, []byte{0xD5}, []byte{0xFE}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := transform(t, mustConfigure(t, tt.in, tt.out), tt.src)
			if !bytes.Equal(got, tt.want) {
				t.Fatalf("got % x, want % x", got, tt.want)
			}
		})
	}
}

func TestTransformLawToFloat(t *testing.T) {
	got := decodeLEFloats(transform(t, mustConfigure(t, MuLaw, FloatLE), []byte{0x80, 0xFF}))

	want := []float32{32124.0 / 32768.0, 0}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTransformInPlace(t *testing.T) {
	cfg := mustConfigure(t, S16LE, U16BE)
	buf := le16(0, -32768, 1)

	n, err := cfg.Transform(buf, buf)
	if err != nil {
		t.Fatalf("Transform error = %v", err)
	}

	want := []byte{0x80, 0x00, 0x00, 0x00, 0x80, 0x01}
	if !bytes.Equal(buf[:n], want) {
		t.Fatalf("got % x, want % x", buf[:n], want)
	}
}

func TestTransformRedundantCopies(t *testing.T) {
	cfg := mustConfigure(t, S16LE, S16LE)
	src := []byte{1, 2, 3}
	dst := make([]byte, 3)

	n, err := cfg.Transform(dst, src)
	if err != nil {
		t.Fatalf("Transform error = %v", err)
	}

	if n != 3 || !bytes.Equal(dst, src) {
		t.Fatalf("got %d bytes % x", n, dst)
	}
}

func TestTransformErrors(t *testing.T) {
	t.Run("misaligned", func(t *testing.T) {
		cfg := mustConfigure(t, S16LE, U8)

		_, err := cfg.Transform(make([]byte, 4), make([]byte, 3))
		if !errors.Is(err, ErrMisalignedBlock) {
			t.Fatalf("error = %v, want %v", err, ErrMisalignedBlock)
		}
	})

	t.Run("short destination", func(t *testing.T) {
		cfg := mustConfigure(t, U8, S16LE)

		_, err := cfg.Transform(make([]byte, 3), make([]byte, 2))
		if !errors.Is(err, ErrShortBuffer) {
			t.Fatalf("error = %v, want %v", err, ErrShortBuffer)
		}
	})
}

func TestTransformEmptyBlock(t *testing.T) {
	cfg := mustConfigure(t, FloatBE, S24LE)

	n, err := cfg.Transform(nil, nil)
	if err != nil || n != 0 {
		t.Fatalf("Transform(nil) = %d, %v", n, err)
	}
}

func TestTransformPreservesSampleCount(t *testing.T) {
	formats := []Format{U8, S8, U16BE, S16LE, U24LE, S24BE, U32BE, S32LE, FloatLE, FloatBE, MuLaw, ALaw}

	for _, in := range formats {
		for _, out := range formats {
			cfg := mustConfigure(t, in, out)
			src := randomBytes(7, in.BytesPerSample()*60)

			got := transform(t, cfg, src)
			if len(got)/out.BytesPerSample() != 60 {
				t.Fatalf("%s: %d output samples, want 60", cfg, len(got)/out.BytesPerSample())
			}
		}
	}
}

func TestTransformFloatRoundTrip(t *testing.T) {
	orig := le16(0, 1, -1, 1000, -1000, 32767, -32768)

	float := transform(t, mustConfigure(t, S16LE, FloatBE), orig)
	back := decodeLE16(transform(t, mustConfigure(t, FloatBE, S16LE), float))

	for i, want := range decodeLE16(orig) {
		diff := int(back[i]) - int(want)
		if diff < -1 || diff > 1 {
			t.Fatalf("sample %d: got %d, want %d", i, back[i], want)
		}
	}
}

func TestTransformConcurrentBlocks(t *testing.T) {
	cfg := mustConfigure(t, S16BE, FloatLE)
	want := transform(t, cfg, randomBytes(3, 512))

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			dst := make([]byte, cfg.OutputSize(512))
			if _, err := cfg.Transform(dst, randomBytes(3, 512)); err != nil {
				t.Errorf("Transform error = %v", err)
				return
			}

			if !bytes.Equal(dst, want) {
				t.Error("concurrent transform produced different output")
			}
		}()
	}

	wg.Wait()
}
