package synth

import (
	"encoding/json"
	"fmt"
	"math"
)

// Waveform is one of the oscillator shapes. Each is a pure function of
// phase with output in [-1,1], evaluated fresh on every call.
type Waveform int

const (
	Sine Waveform = iota
	Triangle
	Sawtooth
	Square
	WhiteNoise

	numWaveforms
)

// At evaluates the waveform at the given phase, in cycles.
func (w Waveform) At(phase float32) float32 {
	switch w {
	case Sine:
		return float32(math.Sin(float64(phase) * 2 * math.Pi))
	case Triangle:
		f := fract(phase)
		if f < 0.5 {
			return f*4 - 1
		}
		return 3 - f*4
	case Sawtooth:
		return fract(phase)*2 - 1
	case Square:
		if fract(phase) < 0.5 {
			return -1
		}
		return 1
	case WhiteNoise:
		// Not an RNG: the phase's bit pattern run through the
		// MurmurHash3 fmix32 finalizer. The same phase always
		// yields the same sample, so multiple oscillators can
		// share the noise source without any synchronized state.
		n := math.Float32bits(phase)
		n = (n ^ n>>16) * 0x85ebca6b
		n = (n ^ n>>13) * 0xc2b2ae35
		n ^= n >> 16
		return float32(n)/float32(math.MaxInt32) - 1
	}
	return 0
}

// Next cycles to the following waveform, wrapping after WhiteNoise.
func (w Waveform) Next() Waveform {
	return (w + 1) % numWaveforms
}

func (w Waveform) String() string {
	switch w {
	case Sine:
		return "Sine"
	case Triangle:
		return "Triangle"
	case Sawtooth:
		return "Sawtooth"
	case Square:
		return "Square"
	case WhiteNoise:
		return "WhiteNoise"
	}
	return fmt.Sprintf("Waveform(%d)", int(w))
}

// ParseWaveform maps a patch tag back to its Waveform.
func ParseWaveform(s string) (Waveform, error) {
	for w := Sine; w < numWaveforms; w++ {
		if w.String() == s {
			return w, nil
		}
	}
	return 0, fmt.Errorf("unknown waveform %q", s)
}

// MarshalJSON writes the variant name, the tag format patches use.
func (w Waveform) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

func (w *Waveform) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseWaveform(s)
	if err != nil {
		return err
	}
	*w = v
	return nil
}

func fract(x float32) float32 {
	return x - float32(math.Floor(float64(x)))
}
