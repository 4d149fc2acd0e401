package sampleconv

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// Format is the packed sample format code. Each axis lives in its own
// bit-mask so the code can be exchanged with hosts that use the same
// layout.
type Format uint32

const (
	endianMask  Format = 1 << 0
	signMask    Format = 1 << 1
	pointMask   Format = 1 << 2
	bitsMask    Format = 7 << 3
	specialMask Format = 7 << 6

	formatBE Format = 0 << 0
	formatLE Format = 1 << 0
	formatSI Format = 0 << 1
	formatUS Format = 1 << 1
	formatI  Format = 0 << 2
	formatF  Format = 1 << 2

	format8Bit  Format = 0 << 3
	format16Bit Format = 1 << 3
	format24Bit Format = 2 << 3
	format32Bit Format = 3 << 3
	format40Bit Format = 4 << 3
	format48Bit Format = 5 << 3

	formatMuLaw    Format = 1 << 6
	formatALaw     Format = 2 << 6
	formatMPEG2    Format = 3 << 6
	formatAC3      Format = 4 << 6
	formatIMAADPCM Format = 5 << 6
)

// Common formats. Single byte formats carry no byte order.
const (
	U8 = formatI | formatUS | format8Bit
	S8 = formatI | formatSI | format8Bit

	U16LE = formatI | formatUS | format16Bit | formatLE
	U16BE = formatI | formatUS | format16Bit | formatBE
	S16LE = formatI | formatSI | format16Bit | formatLE
	S16BE = formatI | formatSI | format16Bit | formatBE
	U24LE = formatI | formatUS | format24Bit | formatLE
	U24BE = formatI | formatUS | format24Bit | formatBE
	S24LE = formatI | formatSI | format24Bit | formatLE
	S24BE = formatI | formatSI | format24Bit | formatBE
	U32LE = formatI | formatUS | format32Bit | formatLE
	U32BE = formatI | formatUS | format32Bit | formatBE
	S32LE = formatI | formatSI | format32Bit | formatLE
	S32BE = formatI | formatSI | format32Bit | formatBE

	FloatLE = formatF | format32Bit | formatLE
	FloatBE = formatF | format32Bit | formatBE

	MuLaw = formatMuLaw | format8Bit
	ALaw  = formatALaw | format8Bit

	// Reserved compressed encodings. They are recognised so they can be
	// rejected.
	MPEG2    = formatMPEG2
	AC3      = formatAC3
	IMAADPCM = formatIMAADPCM
)

// Native byte order aliases, resolved for the running machine.
var (
	U16NE   = U16LE.WithEndian(NativeEndian)
	S16NE   = S16LE.WithEndian(NativeEndian)
	U24NE   = U24LE.WithEndian(NativeEndian)
	S24NE   = S24LE.WithEndian(NativeEndian)
	U32NE   = U32LE.WithEndian(NativeEndian)
	S32NE   = S32LE.WithEndian(NativeEndian)
	FloatNE = FloatLE.WithEndian(NativeEndian)
)

var nativeLittle = binary.NativeEndian.Uint16([]byte{1, 0}) == 1

// Endianness is the byte order axis of a format.
type Endianness uint8

const (
	BigEndian Endianness = iota
	LittleEndian
	// NativeEndian resolves to the byte order of the running machine when
	// a Descriptor is packed into a Format.
	NativeEndian
)

func (e Endianness) resolve() Endianness {
	if e != NativeEndian {
		return e
	}

	if nativeLittle {
		return LittleEndian
	}

	return BigEndian
}

func (e Endianness) String() string {
	switch e {
	case BigEndian:
		return "be"
	case LittleEndian:
		return "le"
	case NativeEndian:
		return "ne"
	default:
		return fmt.Sprintf("endianness(%d)", uint8(e))
	}
}

// Signedness is only meaningful for integer formats.
type Signedness uint8

const (
	Signed Signedness = iota
	Unsigned
)

// PointType tells integer samples from floating point samples.
type PointType uint8

const (
	Integer PointType = iota
	Float
)

// Encoding is the special encoding axis of a format.
type Encoding uint8

const (
	EncodingNone Encoding = iota
	EncodingMuLaw
	EncodingALaw
	EncodingMPEG2
	EncodingAC3
	EncodingIMAADPCM
)

func (e Encoding) String() string {
	switch e {
	case EncodingNone:
		return "none"
	case EncodingMuLaw:
		return "mulaw"
	case EncodingALaw:
		return "alaw"
	case EncodingMPEG2:
		return "mpeg2"
	case EncodingAC3:
		return "ac3"
	case EncodingIMAADPCM:
		return "imaadpcm"
	default:
		return fmt.Sprintf("encoding(%d)", uint8(e))
	}
}

// Descriptor is the decomposed form of a Format.
type Descriptor struct {
	BytesPerSample int
	Endian         Endianness
	Sign           Signedness
	Point          PointType
	Encoding       Encoding
}

// Descriptor decomposes the packed code. The returned byte order is never
// NativeEndian.
func (f Format) Descriptor() Descriptor {
	d := Descriptor{
		BytesPerSample: f.BytesPerSample(),
		Endian:         f.Endian(),
		Encoding:       f.Encoding(),
	}

	if f&signMask == formatUS {
		d.Sign = Unsigned
	}

	if f&pointMask == formatF {
		d.Point = Float
	}

	return d
}

// Format packs the descriptor. BytesPerSample must be in 1..8 to be
// representable; other values are folded into that range.
func (d Descriptor) Format() Format {
	f := Format((d.BytesPerSample-1)&7) << 3

	if d.Endian.resolve() == LittleEndian {
		f |= formatLE
	}

	if d.Sign == Unsigned {
		f |= formatUS
	}

	if d.Point == Float {
		f |= formatF
	}

	return f | Format(d.Encoding&7)<<6
}

// BytesPerSample is derived from the bits field.
func (f Format) BytesPerSample() int {
	return int((f&bitsMask)>>3) + 1
}

// Bits returns the sample width in bits.
func (f Format) Bits() int {
	return f.BytesPerSample() * 8
}

func (f Format) Endian() Endianness {
	if f&endianMask == formatLE {
		return LittleEndian
	}

	return BigEndian
}

// WithEndian returns f with its byte order replaced.
func (f Format) WithEndian(e Endianness) Format {
	f &^= endianMask
	if e.resolve() == LittleEndian {
		f |= formatLE
	}

	return f
}

// IsNative reports whether the format is stored in machine byte order.
// Single byte formats are always native.
func (f Format) IsNative() bool {
	return f.BytesPerSample() == 1 || f.Endian() == NativeEndian.resolve()
}

func (f Format) IsUnsigned() bool { return f&signMask == formatUS }

func (f Format) IsFloat() bool { return f&pointMask == formatF }

func (f Format) Encoding() Encoding { return Encoding((f & specialMask) >> 6) }

// IsLaw reports whether the format is mu-law or A-law companded.
func (f Format) IsLaw() bool {
	e := f.Encoding()
	return e == EncodingMuLaw || e == EncodingALaw
}

// canonical drops the byte order of single byte formats so that U8 read
// from a little endian host compares equal to U8 from a big endian one.
func (f Format) canonical() Format {
	if f.BytesPerSample() == 1 {
		return f &^ endianMask
	}

	return f
}

// String returns the short name used by ParseFormat.
func (f Format) String() string {
	if e := f.Encoding(); e != EncodingNone {
		return e.String()
	}

	var b strings.Builder

	if f.IsFloat() {
		b.WriteString("float")
		if f.BytesPerSample() != 4 {
			fmt.Fprintf(&b, "%d", f.Bits())
		}
	} else {
		if f.IsUnsigned() {
			b.WriteByte('u')
		} else {
			b.WriteByte('s')
		}

		fmt.Fprintf(&b, "%d", f.Bits())
	}

	if f.BytesPerSample() > 1 {
		b.WriteString(f.Endian().String())
	}

	return b.String()
}

// ErrUnknownFormatName is returned by ParseFormat for names it can't map.
var ErrUnknownFormatName = errors.New("unknown sample format name")

var formatAliases = map[string]Format{
	"ulaw":   MuLaw,
	"mu-law": MuLaw,
	"a-law":  ALaw,
	"f32le":  FloatLE,
	"f32be":  FloatBE,
	"f32ne":  FloatNE,
	"s16":    S16NE,
	"u16":    U16NE,
	"s24":    S24NE,
	"u24":    U24NE,
	"s32":    S32NE,
	"u32":    U32NE,
	"float":  FloatNE,
}

var formatNames = buildFormatNames()

func buildFormatNames() map[string]Format {
	names := make(map[string]Format)

	known := []Format{
		U8, S8, U16LE, U16BE, S16LE, S16BE, U24LE, U24BE, S24LE, S24BE,
		U32LE, U32BE, S32LE, S32BE, FloatLE, FloatBE, MuLaw, ALaw,
		MPEG2, AC3, IMAADPCM,
	}
	for _, f := range known {
		names[f.String()] = f

		if f.BytesPerSample() > 1 && f.Encoding() == EncodingNone {
			name := f.String()
			native := name[:len(name)-2] + "ne"
			names[native] = f.WithEndian(NativeEndian)
		}
	}

	for name, f := range formatAliases {
		names[name] = f
	}

	return names
}

// ParseFormat maps a short name such as "s16le", "u8", "floatbe", "s24ne"
// or "mulaw" to its Format.
func ParseFormat(name string) (Format, error) {
	f, ok := formatNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormatName, name)
	}

	return f, nil
}
