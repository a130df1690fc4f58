package audio

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/icco/timbre/internal/synth"
)

func testPlayback(cfg Config) *Playback {
	pb := NewPlayback()
	pb.setStream(nil, cfg)
	return pb
}

func TestFillSilenceEmptyTimbre(t *testing.T) {
	// An empty wave list with master amp [0.5] mixes to an empty sum:
	// every frame must be the encoding's exact zero.
	pb := testPlayback(Config{SampleRate: 8, ChannelCount: 2, Format: FormatSignedInt16LE})
	buf := make([]byte, 8*2*2)
	for i := range buf {
		buf[i] = 0xAA
	}
	pb.Fill(buf)
	for i := 0; i < len(buf); i += 2 {
		if got := binary.LittleEndian.Uint16(buf[i:]); got != 0 {
			t.Fatalf("sample at %d = %#x, want 0", i, got)
		}
	}

	pb = testPlayback(Config{SampleRate: 8, ChannelCount: 1, Format: FormatUnsignedInt8})
	buf = make([]byte, 8)
	pb.Fill(buf)
	for i, b := range buf {
		if b != 0x80 {
			t.Fatalf("u8 sample at %d = %#x, want 0x80", i, b)
		}
	}
}

func TestFillSineQuarterPeriods(t *testing.T) {
	// 1 Hz sine at 4 samples/sec: sin(0), sin(pi/2), sin(pi), sin(3pi/2).
	pb := testPlayback(Config{SampleRate: 4, ChannelCount: 1, Format: FormatFloat32LE})
	pb.Edit(func(s *State) {
		s.Hz = 1
		s.Timbre = synth.Timbre{
			Amp:   synth.Curve{1},
			Waves: []synth.Wave{{Waveform: synth.Sine, Freq: synth.Curve{1}, Amp: synth.Curve{1}}},
		}
	})
	buf := make([]byte, 4*4)
	pb.Fill(buf)
	want := []float32{0, 1, 0, -1}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		if diff := got - w; diff > 1e-5 || diff < -1e-5 {
			t.Errorf("sample %d = %v, want %v", i, got, w)
		}
	}
}

func TestFillDuplicatesChannels(t *testing.T) {
	pb := testPlayback(Config{SampleRate: 16, ChannelCount: 2, Format: FormatFloat32LE})
	pb.Edit(func(s *State) {
		s.Hz = 2
		s.Timbre = synth.Timbre{
			Amp:   synth.Curve{1},
			Waves: []synth.Wave{{Waveform: synth.Sawtooth, Freq: synth.Curve{1}, Amp: synth.Curve{1}}},
		}
	})
	buf := make([]byte, 16*2*4)
	pb.Fill(buf)
	for i := 0; i < 16; i++ {
		l := binary.LittleEndian.Uint32(buf[i*8:])
		r := binary.LittleEndian.Uint32(buf[i*8+4:])
		if l != r {
			t.Fatalf("frame %d: channels differ, %#x vs %#x", i, l, r)
		}
	}
}

func TestSampleCounterWraps(t *testing.T) {
	const rate = 32
	pb := testPlayback(Config{SampleRate: rate, ChannelCount: 1, Format: FormatUnsignedInt8})
	buf := make([]byte, rate)
	pb.Fill(buf)
	if pb.sample != 0 {
		t.Errorf("after %d frames, counter = %d, want 0", rate, pb.sample)
	}
	pb.Fill(buf[:10])
	if pb.sample != 10 {
		t.Errorf("after 10 more frames, counter = %d, want 10", pb.sample)
	}
}

func TestFillBeforeNegotiation(t *testing.T) {
	pb := NewPlayback()
	buf := make([]byte, 64)
	pb.Fill(buf) // must not panic with no config installed
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	pb := NewPlayback()
	pb.Edit(func(s *State) { s.Timbre.AddWave() })
	snap := pb.Snapshot()
	snap.Timbre.Waves[0].Freq[0] = 99
	snap.Timbre.Amp[0] = 0

	live := pb.Snapshot()
	if live.Timbre.Waves[0].Freq[0] != 1 || live.Timbre.Amp[0] != 0.5 {
		t.Errorf("mutating a snapshot leaked into live state: %+v", live.Timbre)
	}
}

func TestSetStreamPreservesState(t *testing.T) {
	pb := testPlayback(Config{SampleRate: 8, ChannelCount: 1, Format: FormatUnsignedInt8})
	pb.Edit(func(s *State) {
		s.Hz = 220
		s.Timbre.AddWave()
	})
	pb.Fill(make([]byte, 3))

	// Simulate a rebuild: only device-facing fields change.
	pb.setStream(nil, Config{SampleRate: 8, ChannelCount: 2, Format: FormatSignedInt16LE})

	st := pb.Snapshot()
	if st.Hz != 220 || len(st.Timbre.Waves) != 1 {
		t.Errorf("rebuild reset synthesis state: %+v", st)
	}
	if pb.sample != 3 {
		t.Errorf("rebuild reset sample counter: %d", pb.sample)
	}
	if got := pb.Config().ChannelCount; got != 2 {
		t.Errorf("rebuild did not install new config: %d channels", got)
	}
}

func TestPeakTracksAndResets(t *testing.T) {
	pb := testPlayback(Config{SampleRate: 8, ChannelCount: 1, Format: FormatFloat32LE})
	pb.Edit(func(s *State) {
		s.Hz = 1
		s.Timbre = synth.Timbre{
			Amp:   synth.Curve{1},
			Waves: []synth.Wave{{Waveform: synth.Square, Freq: synth.Curve{1}, Amp: synth.Curve{1}}},
		}
	})
	pb.Fill(make([]byte, 8*4))
	if got := pb.Peak(); got != 1 {
		t.Errorf("peak = %v, want 1", got)
	}
	if got := pb.Peak(); got != 0 {
		t.Errorf("peak after reset = %v, want 0", got)
	}
}

func TestRenderLengthAndContent(t *testing.T) {
	timbre := synth.Timbre{
		Amp:   synth.Curve{1},
		Waves: []synth.Wave{{Waveform: synth.Sine, Freq: synth.Curve{1}, Amp: synth.Curve{1}}},
	}
	data := Render(timbre, 1, 4, 1)
	if len(data) != 4*2 {
		t.Fatalf("rendered %d bytes, want 8", len(data))
	}
	// Second sample is the sine peak.
	if got := int16(binary.LittleEndian.Uint16(data[2:])); got < 32700 {
		t.Errorf("peak sample = %d, want near %d", got, math.MaxInt16)
	}
}

func TestStreamReaderNeverErrors(t *testing.T) {
	pb := testPlayback(Config{SampleRate: 8, ChannelCount: 1, Format: FormatUnsignedInt8})
	r := &streamReader{pb: pb}
	buf := make([]byte, 17) // deliberately not frame aligned
	n, err := r.Read(buf)
	if n != len(buf) || err != nil {
		t.Errorf("Read = %d, %v; want %d, nil", n, err, len(buf))
	}
}
