package audio

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ebitengine/oto/v3"
)

// Format identifies a physical sample encoding the output stream can
// carry. The set mirrors what the oto backend accepts.
type Format int

const (
	FormatFloat32LE Format = iota
	FormatSignedInt16LE
	FormatUnsignedInt8
)

func (f Format) String() string {
	switch f {
	case FormatFloat32LE:
		return "f32le"
	case FormatSignedInt16LE:
		return "s16le"
	case FormatUnsignedInt8:
		return "u8"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat maps a flag value to a Format. "auto" is not a Format;
// the engine resolves it during negotiation.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "f32le":
		return FormatFloat32LE, nil
	case "s16le":
		return FormatSignedInt16LE, nil
	case "u8":
		return FormatUnsignedInt8, nil
	}
	return 0, fmt.Errorf("unknown sample format %q", s)
}

func (f Format) oto() oto.Format {
	switch f {
	case FormatSignedInt16LE:
		return oto.FormatSignedInt16LE
	case FormatUnsignedInt8:
		return oto.FormatUnsignedInt8
	}
	return oto.FormatFloat32LE
}

// Encoder converts one canonical float32 sample into a physical
// encoding. One implementation exists per format; the engine picks one
// when the stream is negotiated.
type Encoder interface {
	// Size is the encoded width of one sample in bytes.
	Size() int
	// Put writes v into dst[:Size()]. Values outside [-1,1] saturate
	// to the encoding's range; Put never fails.
	Put(dst []byte, v float32)
}

// NewEncoder returns the encoder for f.
func NewEncoder(f Format) Encoder {
	switch f {
	case FormatSignedInt16LE:
		return int16Encoder{}
	case FormatUnsignedInt8:
		return uint8Encoder{}
	}
	return float32Encoder{}
}

type float32Encoder struct{}

func (float32Encoder) Size() int { return 4 }
func (float32Encoder) Put(dst []byte, v float32) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(v))
}

type int16Encoder struct{}

func (int16Encoder) Size() int { return 2 }
func (int16Encoder) Put(dst []byte, v float32) {
	binary.LittleEndian.PutUint16(dst, uint16(int16(clamp(v)*math.MaxInt16)))
}

// uint8Encoder writes offset-binary samples: silence is 0x80.
type uint8Encoder struct{}

func (uint8Encoder) Size() int { return 1 }
func (uint8Encoder) Put(dst []byte, v float32) {
	dst[0] = byte(clamp(v)*127 + 128)
}

func clamp(v float32) float32 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
