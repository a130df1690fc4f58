package cmd

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/icco/timbre/internal/audio"
	"github.com/icco/timbre/internal/synth"
)

var (
	renderPatch   string
	renderOut     string
	renderSeconds float64
	renderRate    int
	renderHz      float64
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a patch to a WAV file without an audio device",
	Long: `Render a patch offline through the same sample path the live stream
uses, writing mono 16-bit WAV output.

Example:
  timbre render -p organ.json -o organ.wav --seconds 2
`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderPatch, "patch", "p", "", "patch file to render")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "out.wav", "output WAV path")
	renderCmd.Flags().Float64Var(&renderSeconds, "seconds", 1, "length to render")
	renderCmd.Flags().IntVar(&renderRate, "sample-rate", 44100, "render sample rate in Hz")
	renderCmd.Flags().Float64Var(&renderHz, "hz", 440, "base frequency")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	if renderSeconds <= 0 {
		return fmt.Errorf("seconds must be positive, got %v", renderSeconds)
	}
	timbre := synth.NewTimbre()
	if renderPatch != "" {
		var err error
		timbre, err = synth.LoadFile(renderPatch)
		if err != nil {
			return fmt.Errorf("loading patch: %w", err)
		}
	}

	data := audio.Render(timbre, float32(renderHz), renderRate, renderSeconds)
	wav, err := wavFile(data, renderRate)
	if err != nil {
		return fmt.Errorf("encoding WAV: %w", err)
	}
	if err := os.WriteFile(renderOut, wav, 0600); err != nil {
		return fmt.Errorf("writing WAV: %w", err)
	}
	fmt.Printf("Wrote %s: %.2fs at %d Hz\n", renderOut, renderSeconds, renderRate)
	return nil
}

// wavFile wraps raw mono 16-bit little-endian samples in a RIFF/WAVE
// header.
func wavFile(pcm []byte, sampleRate int) ([]byte, error) {
	var buf bytes.Buffer
	type header struct {
		ChunkSize     uint32
		Format        [4]byte
		Sub1ID        [4]byte
		Sub1Size      uint32
		AudioFormat   uint16
		NumChannels   uint16
		SampleRate    uint32
		ByteRate      uint32
		BlockAlign    uint16
		BitsPerSample uint16
		Sub2ID        [4]byte
		Sub2Size      uint32
	}
	h := header{
		ChunkSize:     uint32(36 + len(pcm)),
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Sub1ID:        [4]byte{'f', 'm', 't', ' '},
		Sub1Size:      16,
		AudioFormat:   1, // PCM
		NumChannels:   1,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * 2),
		BlockAlign:    2,
		BitsPerSample: 16,
		Sub2ID:        [4]byte{'d', 'a', 't', 'a'},
		Sub2Size:      uint32(len(pcm)),
	}
	buf.WriteString("RIFF")
	if err := binary.Write(&buf, binary.LittleEndian, h); err != nil {
		return nil, err
	}
	buf.Write(pcm)
	return buf.Bytes(), nil
}
