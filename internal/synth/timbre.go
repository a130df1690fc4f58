package synth

// Timbre is a complete patch: a master amplitude envelope plus an
// ordered list of oscillators. It owns its waves exclusively.
type Timbre struct {
	Amp   Curve  `json:"amp"`
	Waves []Wave `json:"waves"`
}

// NewTimbre returns an empty patch at half master volume.
func NewTimbre() Timbre {
	return Timbre{Amp: Curve{0.5}}
}

// At mixes the patch at sec seconds: every oscillator summed with no
// per-wave normalization, scaled by the master envelope. Sums outside
// [-1,1] are left for the output encoder to saturate.
func (t *Timbre) At(sec, hz float32) float32 {
	var sum float32
	for i := range t.Waves {
		sum += t.Waves[i].At(sec, hz)
	}
	return sum * t.Amp.At(sec)
}

// AddWave appends a new oscillator with the defaults from NewWave.
func (t *Timbre) AddWave() {
	t.Waves = append(t.Waves, NewWave())
}

// RemoveWave deletes the oscillator at i; out-of-range is ignored.
func (t *Timbre) RemoveWave(i int) {
	if i < 0 || i >= len(t.Waves) {
		return
	}
	t.Waves = append(t.Waves[:i], t.Waves[i+1:]...)
}

// SwapWaves exchanges two oscillators in place; out-of-range is
// ignored.
func (t *Timbre) SwapWaves(i, j int) {
	if i < 0 || i >= len(t.Waves) || j < 0 || j >= len(t.Waves) {
		return
	}
	t.Waves[i], t.Waves[j] = t.Waves[j], t.Waves[i]
}

// Clone returns a deep copy, safe to keep outside the playback lock.
func (t *Timbre) Clone() Timbre {
	c := Timbre{Amp: t.Amp.Clone()}
	if t.Waves != nil {
		c.Waves = make([]Wave, len(t.Waves))
		for i, w := range t.Waves {
			c.Waves[i] = Wave{Waveform: w.Waveform, Freq: w.Freq.Clone(), Amp: w.Amp.Clone()}
		}
	}
	return c
}
