// Package midictl exposes a virtual MIDI input port that drives the
// synthesizer's base frequency. It shows up as an output destination in
// other music software; note-on messages retune the patch, monophonic,
// last note wins.
package midictl

import (
	"fmt"
	"math"

	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/icco/timbre/internal/audio"
)

// Input is an open virtual MIDI input port.
type Input struct {
	driver *rtmididrv.Driver
	port   drivers.In
	stop   func()
}

// Open creates the virtual port under name and starts listening,
// writing received pitches into pb.
func Open(name string, pb *audio.Playback) (*Input, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("initializing MIDI driver: %w", err)
	}
	port, err := drv.OpenVirtualIn(name)
	if err != nil {
		drv.Close()
		return nil, fmt.Errorf("creating virtual MIDI port %q: %w", name, err)
	}
	stop, err := port.Listen(func(data []byte, _ int32) {
		if len(data) < 3 {
			return
		}
		// High nibble 0x9 is note on; velocity 0 is a disguised
		// note off and leaves the pitch alone.
		if data[0]&0xF0 != 0x90 || data[2] == 0 {
			return
		}
		hz := NoteFreq(data[1])
		pb.Edit(func(s *audio.State) { s.Hz = hz })
	}, drivers.ListenConfig{})
	if err != nil {
		drv.Close()
		return nil, fmt.Errorf("listening on MIDI port: %w", err)
	}
	return &Input{driver: drv, port: port, stop: stop}, nil
}

// NoteFreq converts a MIDI note number to equal-temperament hertz,
// anchored at A4 (note 69) = 440 Hz.
func NoteFreq(note uint8) float32 {
	return float32(440 * math.Pow(2, (float64(note)-69)/12))
}

// Close stops listening and releases the port and driver.
func (in *Input) Close() error {
	if in.stop != nil {
		in.stop()
	}
	if in.port != nil {
		in.port.Close()
	}
	return in.driver.Close()
}
