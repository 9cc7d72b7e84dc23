package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/olivier-w/tracescope/internal/trace"
)

// File streams an audio file one window at a time, downmixed to mono and
// reduced to the display sample rate. It loops at end of file.
type File struct {
	path   string
	title  string
	file   *os.File
	dec    pcmDecoder
	window float64 // seconds per frame
	n      int     // output samples per frame
	raw    []float64
}

// OpenFile opens and probes an audio file.
func OpenFile(path string, cfg trace.Config) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	dec, err := newDecoder(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	if dec.SampleRate() <= 0 || dec.ChannelCount() <= 0 {
		f.Close()
		return nil, fmt.Errorf("%s: invalid stream (%d Hz, %d channels)", filepath.Base(path), dec.SampleRate(), dec.ChannelCount())
	}
	return &File{
		path:   path,
		title:  readTitle(path),
		file:   f,
		dec:    dec,
		window: float64(cfg.HorizontalScale),
		n:      cfg.FrameLen(),
	}, nil
}

func (s *File) Title() string { return s.title }

// Close releases the underlying file.
func (s *File) Close() error { return s.file.Close() }

func (s *File) Next(ctx context.Context) (trace.Frame, error) {
	ch := s.dec.ChannelCount()
	want := int(s.window*float64(s.dec.SampleRate())) * ch
	if want <= 0 || s.n <= 0 {
		return trace.Frame{}, nil
	}
	if cap(s.raw) < want {
		s.raw = make([]float64, want)
	}
	raw := s.raw[:want]

	filled := 0
	rewound := false
	for filled < want {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := s.dec.ReadSamples(raw[filled:])
		filled += n
		if err == nil && n > 0 {
			continue
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading %s: %w", filepath.Base(s.path), err)
		}
		if rewound {
			// File is shorter than one window.
			break
		}
		if err := s.dec.Rewind(); err != nil {
			return nil, fmt.Errorf("rewinding %s: %w", filepath.Base(s.path), err)
		}
		rewound = true
	}

	frames := filled / ch
	if frames == 0 {
		return nil, fmt.Errorf("%s: no audio data", filepath.Base(s.path))
	}
	return downmix(raw[:frames*ch], ch, s.n), nil
}

// downmix averages interleaved channels to mono and bucket-averages the
// result down to n samples.
func downmix(raw []float64, channels, n int) trace.Frame {
	frames := len(raw) / channels
	out := make(trace.Frame, n)
	if frames == 0 {
		return out
	}

	spf := float64(frames) / float64(n)
	for c := range n {
		lo := int(float64(c) * spf)
		hi := int(float64(c+1) * spf)
		if hi > frames {
			hi = frames
		}
		if hi <= lo {
			// upsampling: repeat the nearest frame
			hi = lo + 1
			if hi > frames {
				lo, hi = frames-1, frames
			}
		}

		var sum float64
		for i := lo; i < hi; i++ {
			for chn := range channels {
				sum += raw[i*channels+chn]
			}
		}
		out[c] = sum / float64((hi-lo)*channels)
	}
	return out
}
