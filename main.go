package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/olivier-w/tracescope/internal/source"
	"github.com/olivier-w/tracescope/internal/trace"
	"github.com/olivier-w/tracescope/internal/ui"
)

type options struct {
	source   string
	freq     float64
	easing   string
	interval time.Duration
	cfg      trace.Config
}

func parseFlags(args []string) (options, error) {
	opts := options{cfg: trace.DefaultConfig()}

	fs := flag.NewFlagSet("tracescope", flag.ContinueOnError)
	fs.StringVar(&opts.source, "source", "sine", "signal source: sine, ecg, or an audio file ("+source.SupportedExtsList()+")")
	fs.Float64Var(&opts.freq, "freq", 1, "generator frequency in Hz")
	fs.StringVar(&opts.easing, "easing", "linear", "reveal easing: linear or spring")
	fs.DurationVar(&opts.interval, "interval", time.Second, "time between frames")
	fs.Float64Var(&opts.cfg.VerticalScale, "vscale", opts.cfg.VerticalScale, "vertical amplitude scale")
	fs.IntVar(&opts.cfg.HorizontalScale, "hscale", opts.cfg.HorizontalScale, "seconds spanned by the canvas width")
	fs.Float64Var(&opts.cfg.SampleRate, "rate", opts.cfg.SampleRate, "display samples per second")
	fs.IntVar(&opts.cfg.HorizontalGridLines, "hgrid", 4, "horizontal grid lines")
	fs.IntVar(&opts.cfg.VerticalGridLines, "vgrid", 9, "vertical grid lines")
	fs.Float64Var(&opts.cfg.GridWidth, "grid-width", opts.cfg.GridWidth, "grid line width in dots")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		opts.source = fs.Arg(0)
	}

	if err := opts.cfg.Validate(); err != nil {
		return opts, err
	}
	switch opts.easing {
	case "linear", "spring":
	default:
		return opts, fmt.Errorf("unknown easing %q (linear or spring)", opts.easing)
	}
	return opts, nil
}

func (o options) revealEasing() trace.Easing {
	if o.easing == "spring" {
		return trace.SpringEasing(12, 1)
	}
	return trace.Linear
}

func main() {
	os.Exit(realMain(os.Args[1:]))
}

// realMain returns the process exit code, so deferred cleanup runs before
// main exits.
func realMain(args []string) int {
	opts, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	if os.Getenv("TRACESCOPE_DEBUG") != "" {
		f, err := tea.LogToFile("tracescope-debug.log", "debug")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
	}

	src, err := source.Open(opts.source, opts.cfg, opts.freq)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if c, ok := src.(source.Closer); ok {
		defer c.Close()
	}

	if err := run(opts, src); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// run owns the source pump and the TUI. Quitting the TUI cancels the pump.
func run(opts options, src source.Source) error {
	frames := trace.NewSlot[trace.Frame]()
	model := ui.New(opts.cfg, opts.revealEasing(), frames, src.Title())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	g.Go(func() error {
		err := source.Pump(ctx, src, opts.interval, frames)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		return err
	})
	return g.Wait()
}
