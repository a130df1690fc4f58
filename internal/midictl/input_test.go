package midictl

import (
	"math"
	"testing"
)

func TestNoteFreq(t *testing.T) {
	tests := []struct {
		note uint8
		want float64
	}{
		{69, 440},  // A4 anchor
		{57, 220},  // octave down
		{81, 880},  // octave up
		{60, 261.6255653}, // middle C
	}
	for _, tt := range tests {
		got := float64(NoteFreq(tt.note))
		if math.Abs(got-tt.want) > 0.001 {
			t.Errorf("NoteFreq(%d) = %v, want %v", tt.note, got, tt.want)
		}
	}
}
