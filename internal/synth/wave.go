package synth

// Wave is a single oscillator: a waveform driven by a frequency
// multiplier curve and gated by its own amplitude curve. Freq holds
// multipliers applied to the global base frequency; a flat one-point
// curve is the fixed-multiplier case.
type Wave struct {
	Waveform Waveform `json:"waveform"`
	Freq     Curve    `json:"freq"`
	Amp      Curve    `json:"amp"`
}

// NewWave returns an oscillator with the editor defaults: a sine at the
// base frequency, at half volume.
func NewWave() Wave {
	return Wave{Waveform: Sine, Freq: Curve{1}, Amp: Curve{0.5}}
}

// At evaluates the oscillator at sec seconds against the base
// frequency. Phase is recomputed from absolute time on every call
// rather than accumulated, which keeps the signal drift-free and
// phase-continuous under amplitude edits; the trade-off is that edits
// to the frequency curve itself are not phase-continuous.
func (w *Wave) At(sec, hz float32) float32 {
	return w.Waveform.At(sec*hz*w.Freq.At(sec)) * w.Amp.At(sec)
}
