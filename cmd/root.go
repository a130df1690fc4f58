package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "timbre",
	Short: "A TUI additive synthesizer",
	Long: `timbre is a terminal additive synthesizer built with Bubbletea.

It plays a continuously generated signal while you edit the patch live:
per-oscillator waveforms, frequency-multiplier curves and amplitude
envelopes, mixed down and streamed to the system audio output.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
