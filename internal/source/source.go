package source

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/olivier-w/tracescope/internal/trace"
)

// Source produces one frame of samples per call, normalized to [-1, 1].
type Source interface {
	Next(ctx context.Context) (trace.Frame, error)
	Title() string
}

// Closer is implemented by sources holding open files.
type Closer interface {
	Close() error
}

// Open resolves a source name: "sine", "ecg" or the path of a supported
// audio file. Generated sources fill exactly one window of cfg per frame.
func Open(name string, cfg trace.Config, freq float64) (Source, error) {
	switch strings.ToLower(name) {
	case "", "sine":
		return NewSine(cfg, freq, 1), nil
	case "ecg":
		return NewECG(cfg, freq*60, 0.02), nil
	}

	ext := strings.ToLower(filepath.Ext(name))
	if !IsSupportedExt(ext) {
		return nil, fmt.Errorf("unsupported source %q (use sine, ecg or one of: %s)", name, SupportedExtsList())
	}
	f, err := OpenFile(name, cfg)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Pump calls src.Next every interval and publishes each frame to out until
// ctx is cancelled. A failing Next is logged and skipped, so the display
// simply keeps its previous frame.
func Pump(ctx context.Context, src Source, interval time.Duration, out *trace.Slot[trace.Frame]) error {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		frame, err := src.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("source %q: %v", src.Title(), err)
			continue
		}
		out.Publish(frame)
	}
}
