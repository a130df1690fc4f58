// Package audio owns the real-time output path: the shared Playback
// state the control surface and the audio backend serialize on, sample
// encoding, and the oto stream lifecycle.
package audio

import (
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/icco/timbre/internal/synth"
)

// Config is the negotiated stream geometry.
type Config struct {
	SampleRate   int
	ChannelCount int
	Format       Format
}

// State is the synthesis state the control surface edits. It is only
// ever handed out inside Playback.Edit, under the lock.
type State struct {
	Hz     float32
	Timbre synth.Timbre
}

// Playback is the single shared structure bridging parameter edits and
// sample generation. Every access takes mu for the whole critical
// section; no reference to the guarded state outlives it. The sample
// counter wraps modulo the sample rate, so sec = sample/rate stays in
// [0,1) and every time-based curve is evaluated inside its domain.
type Playback struct {
	mu     sync.Mutex
	config Config
	enc    Encoder
	sample uint32
	state  State
	player *oto.Player
	peak   float32
}

// NewPlayback returns playback state with an empty patch at 440 Hz.
// The stream config is installed later, once negotiation finishes.
func NewPlayback() *Playback {
	return &Playback{state: State{Hz: 440, Timbre: synth.NewTimbre()}}
}

// Edit runs f against the guarded state, holding the lock only for the
// duration of the call.
func (p *Playback) Edit(f func(*State)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	f(&p.state)
}

// Snapshot returns a deep copy of the current state, safe to read and
// mutate without the lock.
func (p *Playback) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return State{Hz: p.state.Hz, Timbre: p.state.Timbre.Clone()}
}

// Config returns the installed stream geometry.
func (p *Playback) Config() Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.config
}

// Peak returns the largest absolute sample value rendered since the
// previous call, for the level meter.
func (p *Playback) Peak() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	v := p.peak
	p.peak = 0
	return v
}

func (p *Playback) currentPlayer() *oto.Player {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.player
}

// setStream installs a freshly built stream's handle and geometry. The
// synthesis state and sample counter deliberately survive untouched, so
// a rebuild after a device failure resumes the same patch.
func (p *Playback) setStream(player *oto.Player, cfg Config) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.player = player
	p.config = cfg
	p.enc = NewEncoder(cfg.Format)
}

// Fill renders the next len(buf) bytes of output. One mono value is
// mixed per frame and the identical encoded sample is written into
// every channel slot. Fill is the real-time pull path: it never blocks
// beyond the lock, never panics, and never fails.
func (p *Playback) Fill(buf []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.enc == nil || p.config.SampleRate <= 0 || p.config.ChannelCount <= 0 {
		return
	}
	size := p.enc.Size()
	frame := p.config.ChannelCount * size
	rate := uint32(p.config.SampleRate)
	for off := 0; off+frame <= len(buf); off += frame {
		sec := float32(p.sample) / float32(rate)
		v := p.state.Timbre.At(sec, p.state.Hz)
		p.sample = (p.sample + 1) % rate
		a := v
		if a < 0 {
			a = -a
		}
		if a > p.peak {
			p.peak = a
		}
		for c := 0; c < p.config.ChannelCount; c++ {
			p.enc.Put(buf[off+c*size:], v)
		}
	}
}

// streamReader adapts Fill to the io.Reader oto pulls on its own
// thread. Errors never cross this boundary.
type streamReader struct {
	pb *Playback
}

func (r *streamReader) Read(buf []byte) (int, error) {
	r.pb.Fill(buf)
	return len(buf), nil
}

// Render produces seconds of audio through the same fill path the live
// stream uses, without touching a device. Mono signed 16-bit output.
func Render(t synth.Timbre, hz float32, sampleRate int, seconds float64) []byte {
	pb := NewPlayback()
	pb.Edit(func(s *State) {
		s.Hz = hz
		s.Timbre = t
	})
	pb.setStream(nil, Config{SampleRate: sampleRate, ChannelCount: 1, Format: FormatSignedInt16LE})
	buf := make([]byte, int(seconds*float64(sampleRate))*2)
	pb.Fill(buf)
	return buf
}
