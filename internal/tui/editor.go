// Package tui implements the control surface: a bubbletea editor for
// the live patch, a patch file browser, and a live scope panel. All
// mutation goes through Playback's scoped edit API; rendering works on
// snapshots, so the audio thread is never blocked on a frame draw.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/icco/timbre/internal/audio"
	"github.com/icco/timbre/internal/synth"
)

// View modes
type viewMode int

const (
	editorMode viewMode = iota
	browserMode
)

// Editor rows: base frequency, master volume, then one row per wave.
const (
	hzRow = iota
	ampRow
	waveRow0
)

// Focused curve within a wave row.
const (
	fieldAmp = iota
	fieldFreq
)

// tickMsg drives the scope animation.
type tickMsg time.Time

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	dirStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AAFF")).
			Bold(true)

	patchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	waveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	pointStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#7D56F4")).
			Foreground(lipgloss.Color("#FAFAFA"))

	meterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	spectrumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))
)

// Model is the control surface state. The synthesis state itself lives
// in Playback; the model only tracks cursors, modes and messages.
type Model struct {
	pb        *audio.Playback
	mode      viewMode
	browser   browserModel
	scope     scopeModel
	showScope bool

	cursorRow   int
	cursorPoint int
	waveField   int

	patchPath string
	message   string
	width     int
	height    int
}

// New returns an editor over pb. patchPath may be empty; it becomes
// the default save destination once set.
func New(pb *audio.Playback, patchPath string) Model {
	return Model{
		pb:        pb,
		browser:   newBrowser(),
		scope:     newScope(),
		showScope: true,
		patchPath: patchPath,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	// 60ms balances meter smoothness against redraw cost.
	return tea.Tick(time.Millisecond*60, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.scope.advance(m.pb)
		return m, tick()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case browserMode:
			return m.updateBrowser(msg)
		default:
			return m.updateEditor(msg)
		}
	}

	return m, nil
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursorRow > 0 {
			m.cursorRow--
			m.cursorPoint = 0
			m.waveField = fieldAmp
		}
	case "down", "j":
		if m.cursorRow < m.lastRow() {
			m.cursorRow++
			m.cursorPoint = 0
			m.waveField = fieldAmp
		}
	case "tab":
		if m.cursorRow >= waveRow0 {
			m.waveField = (m.waveField + 1) % 2
			m.cursorPoint = 0
		}

	case "left", "h":
		if m.cursorRow == hzRow {
			m.bumpHz(-1)
		} else if m.cursorPoint > 0 {
			m.cursorPoint--
		}
	case "right", "l":
		if m.cursorRow == hzRow {
			m.bumpHz(1)
		} else if m.cursorPoint < m.focusedCurveLen()-1 {
			m.cursorPoint++
		}
	case "shift+left":
		if m.cursorRow == hzRow {
			m.bumpHz(-25)
		}
	case "shift+right":
		if m.cursorRow == hzRow {
			m.bumpHz(25)
		}

	case "+", "=":
		m.bump(1)
	case "-", "_":
		m.bump(-1)
	case "n":
		m.editCurve(func(c *synth.Curve) { c.Append() })
	case "d":
		m.editCurve(func(c *synth.Curve) { c.Pop() }) // refused on single-point curves
		if n := m.focusedCurveLen(); m.cursorPoint >= n && n > 0 {
			m.cursorPoint = n - 1
		}

	case "a":
		m.pb.Edit(func(s *audio.State) { s.Timbre.AddWave() })
		st := m.pb.Snapshot()
		m.cursorRow = waveRow0 + len(st.Timbre.Waves) - 1
		m.cursorPoint = 0
		m.waveField = fieldAmp
	case "x":
		if i := m.cursorRow - waveRow0; i >= 0 {
			m.pb.Edit(func(s *audio.State) { s.Timbre.RemoveWave(i) })
			if m.cursorRow > m.lastRow() {
				m.cursorRow = m.lastRow()
			}
			m.cursorPoint = 0
			m.waveField = fieldAmp
		}
	case "K":
		if i := m.cursorRow - waveRow0; i > 0 {
			m.pb.Edit(func(s *audio.State) { s.Timbre.SwapWaves(i, i-1) })
			m.cursorRow--
		}
	case "J":
		if i := m.cursorRow - waveRow0; i >= 0 {
			moved := false
			m.pb.Edit(func(s *audio.State) {
				if i+1 < len(s.Timbre.Waves) {
					s.Timbre.SwapWaves(i, i+1)
					moved = true
				}
			})
			if moved {
				m.cursorRow++
			}
		}
	case "f":
		if i := m.cursorRow - waveRow0; i >= 0 {
			m.pb.Edit(func(s *audio.State) {
				if i < len(s.Timbre.Waves) {
					w := &s.Timbre.Waves[i]
					w.Waveform = w.Waveform.Next()
				}
			})
		}

	case "s":
		path := m.patchPath
		if path == "" {
			path = "timbre.json"
		}
		st := m.pb.Snapshot()
		if err := st.Timbre.SaveFile(path); err != nil {
			m.message = fmt.Sprintf("Save failed: %v", err)
		} else {
			m.patchPath = path
			m.message = fmt.Sprintf("Saved %s", path)
		}
	case "o":
		m.mode = browserMode
		m.browser.loadFiles()

	case "v":
		m.showScope = !m.showScope
	}

	return m, nil
}

// bumpHz nudges the base frequency, clamped to the playable 20-2000
// range the original slider offered.
func (m *Model) bumpHz(delta float32) {
	m.pb.Edit(func(s *audio.State) {
		s.Hz += delta
		if s.Hz < 20 {
			s.Hz = 20
		}
		if s.Hz > 2000 {
			s.Hz = 2000
		}
	})
}

// bump raises or lowers whatever the cursor focuses: the base
// frequency in 5 Hz steps, or the selected curve point in 0.05 steps
// floored at zero.
func (m *Model) bump(sign float32) {
	if m.cursorRow == hzRow {
		m.bumpHz(sign * 5)
		return
	}
	point := m.cursorPoint
	m.editCurve(func(c *synth.Curve) {
		if point >= len(*c) {
			point = len(*c) - 1
		}
		v := (*c)[point] + sign*0.05
		if v < 0 {
			v = 0
		}
		(*c)[point] = v
	})
}

// editCurve runs f on the curve the cursor focuses, inside the
// playback lock.
func (m *Model) editCurve(f func(c *synth.Curve)) {
	row, field := m.cursorRow, m.waveField
	m.pb.Edit(func(s *audio.State) {
		switch {
		case row == ampRow:
			f(&s.Timbre.Amp)
		case row >= waveRow0:
			i := row - waveRow0
			if i >= len(s.Timbre.Waves) {
				return
			}
			if field == fieldFreq {
				f(&s.Timbre.Waves[i].Freq)
			} else {
				f(&s.Timbre.Waves[i].Amp)
			}
		}
	})
}

func (m Model) lastRow() int {
	st := m.pb.Snapshot()
	last := waveRow0 + len(st.Timbre.Waves) - 1
	if last < ampRow {
		return ampRow
	}
	return last
}

func (m Model) focusedCurveLen() int {
	st := m.pb.Snapshot()
	switch {
	case m.cursorRow == ampRow:
		return len(st.Timbre.Amp)
	case m.cursorRow >= waveRow0:
		i := m.cursorRow - waveRow0
		if i >= len(st.Timbre.Waves) {
			return 0
		}
		if m.waveField == fieldFreq {
			return len(st.Timbre.Waves[i].Freq)
		}
		return len(st.Timbre.Waves[i].Amp)
	}
	return 0
}

func (m Model) View() string {
	if m.mode == browserMode {
		return m.viewBrowser()
	}
	return m.viewEditor()
}

func (m Model) viewEditor() string {
	st := m.pb.Snapshot()
	cfg := m.pb.Config()

	var b strings.Builder
	b.WriteString(titleStyle.Render("TIMBRE - additive synthesizer") + "\n\n")
	if cfg.SampleRate > 0 {
		b.WriteString(fmt.Sprintf("Stream: %d Hz, %d channel(s), %s\n", cfg.SampleRate, cfg.ChannelCount, cfg.Format))
	} else {
		b.WriteString("Stream: negotiating\n")
	}
	patch := m.patchPath
	if patch == "" {
		patch = "(unsaved)"
	}
	b.WriteString(fmt.Sprintf("Patch:  %s\n\n", patch))

	hzLine := fmt.Sprintf("Base frequency  %.1f Hz", st.Hz)
	if m.cursorRow == hzRow {
		b.WriteString(selectedStyle.Render("> "+hzLine) + "\n")
	} else {
		b.WriteString("  " + hzLine + "\n")
	}

	b.WriteString(m.curveLine("  Master volume ", st.Timbre.Amp, m.cursorRow == ampRow) + "\n\n")

	if len(st.Timbre.Waves) == 0 {
		b.WriteString(helpStyle.Render("  no waves, press a to add one") + "\n")
	}
	for i, w := range st.Timbre.Waves {
		focused := m.cursorRow == waveRow0+i
		marker := "  "
		if focused {
			marker = selectedStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%d. %s\n", marker, i+1, waveStyle.Render(w.Waveform.String())))
		b.WriteString("      " + m.curveLine("volume ", w.Amp, focused && m.waveField == fieldAmp) + "\n")
		b.WriteString("      " + m.curveLine("freq x ", w.Freq, focused && m.waveField == fieldFreq) + "\n")
	}

	if m.showScope {
		b.WriteString("\n" + m.scope.view() + "\n")
	}

	if m.message != "" {
		b.WriteString("\n" + errorStyle.Render(m.message) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("up/down: row • tab: volume/freq • left/right: point • +/-: adjust • n/d: add/drop point"))
	b.WriteString("\n" + helpStyle.Render("a: add wave • x: remove • K/J: reorder • f: waveform • s: save • o: load • v: scope • q: quit"))

	return b.String()
}

// curveLine renders one curve as its point list, highlighting the
// selected point when the curve is focused.
func (m Model) curveLine(label string, c synth.Curve, focused bool) string {
	var b strings.Builder
	if focused {
		b.WriteString(selectedStyle.Render(label))
	} else {
		b.WriteString(label)
	}
	b.WriteString("[")
	for i, v := range c {
		if i > 0 {
			b.WriteString(" ")
		}
		cell := fmt.Sprintf("%.2f", v)
		if focused && i == m.cursorPoint {
			cell = pointStyle.Render(cell)
		}
		b.WriteString(cell)
	}
	b.WriteString("]")
	return b.String()
}
