// Package main provides the entry point for chip8sim.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/sarchlab/chip8sim/cache"
	"github.com/sarchlab/chip8sim/config"
	"github.com/sarchlab/chip8sim/emu"
	"github.com/sarchlab/chip8sim/frontend/sdlwindow"
	"github.com/sarchlab/chip8sim/frontend/term"
	"github.com/sarchlab/chip8sim/host"
	"github.com/sarchlab/chip8sim/loader"
)

var (
	configPath = flag.String("config", "", "Path to frontend configuration JSON file")
	frontend   = flag.String("frontend", "sdl", "Frontend: sdl, term or headless")
	verbose    = flag.Bool("v", false, "Verbose output")
	trace      = flag.Bool("trace", false, "Log every executed instruction")
	cycles     = flag.Uint64("cycles", 0, "Stop after this many cycles (0 = unlimited)")
	fetchCache = flag.Bool("fetch-cache", false, "Fetch instructions through a set-associative cache")
)

func init() {
	// SDL must be driven from the main thread.
	runtime.LockOSThread()
}

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: chip8sim [options] <program.ch8>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() logr.Logger {
	verbosity := 0
	if *verbose {
		verbosity = 1
	}
	if *trace {
		verbosity = 2
	}

	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, args)
		} else {
			fmt.Fprintln(os.Stderr, args)
		}
	}, funcr.Options{Verbosity: verbosity})
}

func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func run(programPath string) error {
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	prog, err := loader.Load(programPath)
	if err != nil {
		return err
	}

	opts := []emu.EmulatorOption{emu.WithLogger(logger.WithName("emu"))}
	if *cycles > 0 {
		opts = append(opts, emu.WithMaxInstructions(*cycles))
	}
	emulator := emu.NewEmulator(opts...)

	if err := prog.LoadInto(emulator); err != nil {
		return err
	}

	logger.V(1).Info("program loaded", "path", prog.Path, "bytes", prog.Size())

	var fetcher *cache.InstructionFetcher
	if *fetchCache {
		fetcher, err = cache.NewInstructionFetcher(cache.DefaultConfig(), emulator.Memory())
		if err != nil {
			return err
		}
		emulator.SetFetcher(fetcher)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessionLogger := logger.WithName("host")
	var session *host.Session

	switch *frontend {
	case "sdl":
		window, err := sdlwindow.Open(cfg, logger.WithName("sdl"))
		if err != nil {
			return err
		}
		defer func() { _ = window.Close() }()

		speaker := sdlwindow.OpenSpeaker(cfg, logger.WithName("audio"))
		if b, ok := speaker.(*sdlwindow.Buzzer); ok {
			defer b.Close()
		}

		session = host.NewSession(emulator, window,
			host.WithInput(window),
			host.WithSpeaker(speaker),
			host.WithLogger(sessionLogger))
	case "term":
		t, err := term.Open(cfg, logger.WithName("term"))
		if err != nil {
			return err
		}
		defer func() { _ = t.Close() }()

		session = host.NewSession(emulator, t,
			host.WithInput(t),
			host.WithLogger(sessionLogger))
	case "headless":
		session = host.NewSession(emulator, &host.HeadlessDisplay{},
			host.WithLogger(sessionLogger))
	default:
		return fmt.Errorf("unknown frontend %q", *frontend)
	}

	err = runSession(ctx, session)

	stats := session.Stats()
	logger.V(1).Info("run finished",
		"instructions", emulator.InstructionCount(),
		"ticks", stats.Ticks,
		"frames", stats.Frames,
		"wait_ticks", stats.WaitTicks,
		"sound_ticks", stats.SoundTicks)
	if fetcher != nil {
		cs := fetcher.Cache().Stats()
		logger.V(1).Info("fetch cache",
			"reads", cs.Reads,
			"hits", cs.Hits,
			"misses", cs.Misses,
			"evictions", cs.Evictions,
			"invalidations", cs.Invalidations,
			"hit_rate", fmt.Sprintf("%.3f", cs.HitRate()))
	}

	return err
}

// runSession runs headless sessions flat out and interactive ones paced.
// Reaching the -cycles limit and interrupts both end the run cleanly.
func runSession(ctx context.Context, session *host.Session) error {
	var err error
	if *frontend == "headless" && *cycles > 0 {
		_, err = session.RunCycles(*cycles)
	} else {
		err = session.Run(ctx)
	}

	if errors.Is(err, emu.ErrMaxInstructions) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
