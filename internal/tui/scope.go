package tui

import (
	"math/cmplx"
	"strings"

	"github.com/charmbracelet/harmonica"
	"github.com/ktye/fft"

	"github.com/icco/timbre/internal/audio"
)

const (
	fftSize      = 512
	meterWidth   = 44
	spectrumCols = 44
)

// scopeModel renders a live view of the output: a spring-smoothed peak
// meter fed by the fill path, and a magnitude spectrum of the current
// patch. All analysis runs on snapshots, outside the playback lock.
type scopeModel struct {
	spring   harmonica.Spring
	level    float64
	velocity float64
	spectrum [spectrumCols]float64
	fft      fft.FFT
}

func newScope() scopeModel {
	f, err := fft.New(fftSize)
	if err != nil {
		// fftSize is a power of two; New cannot fail on it.
		panic(err)
	}
	return scopeModel{
		spring: harmonica.NewSpring(harmonica.FPS(60), 6.0, 0.9),
		fft:    f,
	}
}

// advance moves the meter spring toward the latest output peak and
// refreshes the spectrum.
func (s *scopeModel) advance(pb *audio.Playback) {
	s.level, s.velocity = s.spring.Update(s.level, s.velocity, float64(pb.Peak()))
	rate := pb.Config().SampleRate
	if rate <= 0 {
		rate = 44100
	}
	s.analyze(pb.Snapshot(), rate)
}

// analyze renders one FFT window of the patch at the output rate and
// folds the bin magnitudes into display columns.
func (s *scopeModel) analyze(st audio.State, rate int) {
	buf := make([]complex128, fftSize)
	for i := range buf {
		sec := float32(i) / float32(rate)
		buf[i] = complex(float64(st.Timbre.At(sec, st.Hz)), 0)
	}
	out := s.fft.Transform(buf)

	bins := fftSize / 2
	perCol := bins / spectrumCols
	for col := 0; col < spectrumCols; col++ {
		var max float64
		for k := 0; k < perCol; k++ {
			if m := cmplx.Abs(out[col*perCol+k]); m > max {
				max = m
			}
		}
		s.spectrum[col] = max / float64(bins)
	}
}

var spectrumGlyphs = []rune(" ▁▂▃▄▅▆▇█")

func (s *scopeModel) view() string {
	var b strings.Builder

	filled := int(s.level * meterWidth)
	if filled > meterWidth {
		filled = meterWidth
	}
	if filled < 0 {
		filled = 0
	}
	b.WriteString("Level  [")
	b.WriteString(meterStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(strings.Repeat("─", meterWidth-filled))
	b.WriteString("]\n")

	b.WriteString("Spect  [")
	var row strings.Builder
	for _, v := range s.spectrum {
		g := int(v * float64(len(spectrumGlyphs)-1) * 4)
		if g >= len(spectrumGlyphs) {
			g = len(spectrumGlyphs) - 1
		}
		if g < 0 {
			g = 0
		}
		row.WriteRune(spectrumGlyphs[g])
	}
	b.WriteString(spectrumStyle.Render(row.String()))
	b.WriteString("]")

	return b.String()
}
