package audio

import (
	"fmt"
	"log"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Options are the requested stream parameters. Format "auto" lets
// negotiation pick the first encoding the backend accepts.
type Options struct {
	SampleRate   int
	ChannelCount int
	Format       string
	BufferSize   time.Duration
}

// formatPreference is the negotiation order under Format "auto".
var formatPreference = []Format{FormatFloat32LE, FormatSignedInt16LE, FormatUnsignedInt8}

const watchInterval = 500 * time.Millisecond

// Engine drives the stream lifecycle: negotiate an output
// configuration, run the stream, and rebuild it after asynchronous
// device failures. The lifecycle is uninitialized -> negotiating ->
// running, with failed streams looping back through negotiation
// forever.
type Engine struct {
	pb     *Playback
	opts   Options
	ctx    *oto.Context
	logger *log.Logger
}

// NewEngine prepares an engine for pb. Zero option fields get the
// usual defaults (44100 Hz, stereo, auto format).
func NewEngine(pb *Playback, opts Options, logger *log.Logger) *Engine {
	if opts.SampleRate <= 0 {
		opts.SampleRate = 44100
	}
	if opts.ChannelCount <= 0 {
		opts.ChannelCount = 2
	}
	if opts.Format == "" {
		opts.Format = "auto"
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{pb: pb, opts: opts, logger: logger}
}

// Start negotiates the output stream and begins playback. No usable
// device or configuration is fatal and returned to the caller; errors
// after Start are the watchdog's problem and never abort the process.
func (e *Engine) Start() error {
	cfg, ctx, err := e.negotiate()
	if err != nil {
		return err
	}
	e.ctx = ctx
	player := ctx.NewPlayer(&streamReader{pb: e.pb})
	player.Play()
	e.pb.setStream(player, cfg)
	e.logger.Printf("stream running: %d Hz, %d channel(s), %s", cfg.SampleRate, cfg.ChannelCount, cfg.Format)
	go e.watch()
	return nil
}

// negotiate builds the process-wide oto context. With format auto the
// preferred encodings are tried in order and the first the backend
// accepts wins.
func (e *Engine) negotiate() (Config, *oto.Context, error) {
	formats := formatPreference
	if e.opts.Format != "auto" {
		f, err := ParseFormat(e.opts.Format)
		if err != nil {
			return Config{}, nil, err
		}
		formats = []Format{f}
	}
	var lastErr error
	for _, f := range formats {
		op := &oto.NewContextOptions{
			SampleRate:   e.opts.SampleRate,
			ChannelCount: e.opts.ChannelCount,
			Format:       f.oto(),
		}
		if e.opts.BufferSize > 0 {
			op.BufferSize = e.opts.BufferSize
		}
		ctx, ready, err := oto.NewContext(op)
		if err != nil {
			lastErr = err
			e.logger.Printf("format %s rejected: %v", f, err)
			continue
		}
		<-ready
		cfg := Config{
			SampleRate:   e.opts.SampleRate,
			ChannelCount: e.opts.ChannelCount,
			Format:       f,
		}
		return cfg, ctx, nil
	}
	return Config{}, nil, fmt.Errorf("no usable output configuration: %w", lastErr)
}

// watch polls the live player for asynchronous stream errors. The pull
// model has no error callback, so a poll stands in for one; on error it
// logs and hands off to a rebuild goroutine so nothing blocks here.
func (e *Engine) watch() {
	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()
	for range ticker.C {
		player := e.pb.currentPlayer()
		if player == nil {
			continue
		}
		if err := player.Err(); err != nil {
			e.logger.Printf("stream error: %v, rebuilding", err)
			go e.rebuild()
			return
		}
	}
}

// rebuild constructs a fresh player against the existing context and
// reinstalls it under the Playback lock. It retries without backoff or
// cap: failures are rare, each one is logged, and eventual recovery
// beats giving up. The patch, base frequency and sample counter all
// survive, so output resumes where it left off.
func (e *Engine) rebuild() {
	for {
		player := e.ctx.NewPlayer(&streamReader{pb: e.pb})
		player.Play()
		time.Sleep(watchInterval)
		if err := player.Err(); err != nil {
			e.logger.Printf("stream rebuild failed: %v, retrying", err)
			continue
		}
		e.pb.setStream(player, e.pb.Config())
		e.logger.Printf("stream rebuilt")
		go e.watch()
		return
	}
}

// Close suspends the audio context. As of oto v3.4 players need no
// explicit teardown; they are reclaimed when garbage collected.
func (e *Engine) Close() error {
	if e.ctx != nil {
		return e.ctx.Suspend()
	}
	return nil
}
