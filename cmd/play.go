package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/icco/timbre/internal/audio"
	"github.com/icco/timbre/internal/midictl"
	"github.com/icco/timbre/internal/synth"
	"github.com/icco/timbre/internal/tui"
)

var (
	playSampleRate int
	playChannels   int
	playFormat     string
	playBufferMs   int
	playPatch      string
	playHz         float64
	playMIDI       bool
	playMIDIName   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the synthesizer with the interactive editor",
	Long: `Open the audio output and run the patch editor.

The audio stream starts immediately; edits to the patch are audible as
you make them. With --midi, a virtual MIDI input port is created and
incoming notes retune the base frequency.

Example:
  timbre play -p organ.json --midi
`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&playSampleRate, "sample-rate", 44100, "output sample rate in Hz")
	playCmd.Flags().IntVar(&playChannels, "channels", 2, "output channel count")
	playCmd.Flags().StringVar(&playFormat, "sample-format", "auto", "sample encoding: auto, f32le, s16le or u8")
	playCmd.Flags().IntVar(&playBufferMs, "buffer-ms", 0, "output buffer length in milliseconds (0 = backend default)")
	playCmd.Flags().StringVarP(&playPatch, "patch", "p", "", "patch file to load on startup")
	playCmd.Flags().Float64Var(&playHz, "hz", 440, "initial base frequency")
	playCmd.Flags().BoolVar(&playMIDI, "midi", false, "expose a virtual MIDI input that sets the base frequency")
	playCmd.Flags().StringVar(&playMIDIName, "midi-name", "Timbre", "name for the virtual MIDI input")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger := log.New(os.Stderr, "timbre: ", log.LstdFlags)

	pb := audio.NewPlayback()
	pb.Edit(func(s *audio.State) { s.Hz = float32(playHz) })
	if playPatch != "" {
		timbre, err := synth.LoadFile(playPatch)
		if err != nil {
			return fmt.Errorf("loading patch: %w", err)
		}
		pb.Edit(func(s *audio.State) { s.Timbre = timbre })
	}

	engine := audio.NewEngine(pb, audio.Options{
		SampleRate:   playSampleRate,
		ChannelCount: playChannels,
		Format:       playFormat,
		BufferSize:   time.Duration(playBufferMs) * time.Millisecond,
	}, logger)
	if err := engine.Start(); err != nil {
		return fmt.Errorf("starting audio: %w", err)
	}
	defer engine.Close()

	if playMIDI {
		in, err := midictl.Open(playMIDIName, pb)
		if err != nil {
			return fmt.Errorf("opening MIDI input: %w", err)
		}
		defer in.Close()
	}

	p := tea.NewProgram(tui.New(pb, playPatch), tea.WithAltScreen())

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running editor: %w", err)
	}
	return nil
}
