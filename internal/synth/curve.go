// Package synth implements the additive synthesis model: waveforms,
// piecewise-linear envelope curves, oscillators, and the Timbre patch
// they combine into. Everything here is pure and allocation-free on the
// evaluation path, so it is safe to call from the real-time fill path.
package synth

// Curve is a piecewise-linear function over normalized time [0,1],
// defined by an ordered, non-empty list of control points.
type Curve []float32

// At evaluates the curve at t by linear interpolation between the two
// neighboring control points. A single-point curve is constant and
// At(1) is exactly the last point. Callers keep t inside [0,1]; the
// curve itself does not clamp.
func (c Curve) At(t float32) float32 {
	i := t * float32(len(c)-1)
	k := int(i)
	if k == len(c)-1 {
		return c[k]
	}
	frac := i - float32(k)
	return (1-frac)*c[k] + frac*c[k+1]
}

// Append extends the curve with a duplicate of its last point, so the
// shape is unchanged until the new point is edited.
func (c *Curve) Append() {
	*c = append(*c, (*c)[len(*c)-1])
}

// Pop removes the last control point. Removing the only point is
// silently refused; a curve never becomes empty.
func (c *Curve) Pop() {
	if len(*c) > 1 {
		*c = (*c)[:len(*c)-1]
	}
}

// Clone returns an independent copy of the curve.
func (c Curve) Clone() Curve {
	return append(Curve(nil), c...)
}
