package audio

import (
	"io"
	"log"
	"testing"
)

func TestNewEngineDefaults(t *testing.T) {
	e := NewEngine(NewPlayback(), Options{}, log.New(io.Discard, "", 0))
	if e.opts.SampleRate != 44100 {
		t.Errorf("default sample rate = %d, want 44100", e.opts.SampleRate)
	}
	if e.opts.ChannelCount != 2 {
		t.Errorf("default channel count = %d, want 2", e.opts.ChannelCount)
	}
	if e.opts.Format != "auto" {
		t.Errorf("default format = %q, want auto", e.opts.Format)
	}
}

func TestNegotiateRejectsUnknownFormat(t *testing.T) {
	e := NewEngine(NewPlayback(), Options{Format: "s24le"}, log.New(io.Discard, "", 0))
	if _, _, err := e.negotiate(); err == nil {
		t.Error("negotiate accepted an unknown format name")
	}
}

func TestFormatPreferenceOrder(t *testing.T) {
	// Auto negotiation tries the widest encoding first.
	if formatPreference[0] != FormatFloat32LE {
		t.Errorf("first preference = %s, want f32le", formatPreference[0])
	}
	if len(formatPreference) != 3 {
		t.Errorf("preference list has %d entries, want 3", len(formatPreference))
	}
}
