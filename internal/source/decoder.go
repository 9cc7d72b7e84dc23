package source

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// pcmDecoder is implemented by all format-specific decoders.
type pcmDecoder interface {
	// ReadSamples fills dst with interleaved samples scaled to [-1, 1].
	// It returns io.EOF once the stream is exhausted.
	ReadSamples(dst []float64) (int, error)
	// Rewind repositions the stream at its first sample.
	Rewind() error
	SampleRate() int
	ChannelCount() int
}

// newDecoder detects format by file extension and returns the appropriate decoder.
func newDecoder(f *os.File) (pcmDecoder, error) {
	ext := strings.ToLower(filepath.Ext(f.Name()))
	switch ext {
	case ".mp3":
		return newMP3Decoder(f)
	case ".wav":
		return newWAVDecoder(f)
	case ".flac":
		return newFLACDecoder(f)
	case ".ogg":
		return newOGGDecoder(f)
	default:
		return nil, fmt.Errorf("unsupported format: %s", ext)
	}
}

// --- MP3 decoder ---

// go-mp3 always produces 16-bit little-endian stereo.
type mp3Decoder struct {
	dec *mp3.Decoder
	raw []byte
}

func newMP3Decoder(f *os.File) (*mp3Decoder, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("decoding MP3: %w", err)
	}
	return &mp3Decoder{dec: dec}, nil
}

func (d *mp3Decoder) ReadSamples(dst []float64) (int, error) {
	need := len(dst) * 2
	if cap(d.raw) < need {
		d.raw = make([]byte, need)
	}
	raw := d.raw[:need]

	n, err := io.ReadFull(d.dec, raw)
	samples := n / 2
	for i := range samples {
		dst[i] = float64(int16(binary.LittleEndian.Uint16(raw[i*2:]))) / 32768
	}
	switch {
	case samples > 0 && (err == io.ErrUnexpectedEOF || err == io.EOF):
		return samples, nil
	case samples == 0 && (err == nil || err == io.ErrUnexpectedEOF):
		return 0, io.EOF
	}
	return samples, err
}

func (d *mp3Decoder) Rewind() error {
	_, err := d.dec.Seek(0, io.SeekStart)
	return err
}

func (d *mp3Decoder) SampleRate() int   { return d.dec.SampleRate() }
func (d *mp3Decoder) ChannelCount() int { return 2 }

// --- WAV decoder ---

type wavDecoder struct {
	file     *os.File
	dec      *wav.Decoder
	buf      *audio.IntBuffer
	bitDepth int
	scale    float64
}

func newWAVDecoder(f *os.File) (*wavDecoder, error) {
	d := &wavDecoder{file: f}
	if err := d.open(); err != nil {
		return nil, err
	}
	d.bitDepth = int(d.dec.BitDepth)
	if d.bitDepth < 8 || d.bitDepth > 32 {
		return nil, fmt.Errorf("unsupported WAV bit depth %d", d.bitDepth)
	}
	d.scale = 1 / float64(int64(1)<<(d.bitDepth-1))
	d.buf = &audio.IntBuffer{Format: d.dec.Format(), SourceBitDepth: d.bitDepth}
	return d, nil
}

func (d *wavDecoder) open() error {
	dec := wav.NewDecoder(d.file)
	if !dec.IsValidFile() {
		return fmt.Errorf("invalid WAV file")
	}
	// FwdToPCM positions the reader at the start of PCM data
	if err := dec.FwdToPCM(); err != nil {
		return fmt.Errorf("reading WAV PCM data: %w", err)
	}
	d.dec = dec
	return nil
}

func (d *wavDecoder) ReadSamples(dst []float64) (int, error) {
	if cap(d.buf.Data) < len(dst) {
		d.buf.Data = make([]int, len(dst))
	}
	d.buf.Data = d.buf.Data[:len(dst)]

	n, err := d.dec.PCMBuffer(d.buf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("reading WAV samples: %w", err)
		}
		return 0, io.EOF
	}
	for i := range n {
		v := d.buf.Data[i]
		if d.bitDepth == 8 {
			// 8-bit WAV is unsigned
			v -= 128
		}
		dst[i] = float64(v) * d.scale
	}
	return n, nil
}

func (d *wavDecoder) Rewind() error {
	if _, err := d.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	return d.open()
}

func (d *wavDecoder) SampleRate() int   { return int(d.dec.SampleRate) }
func (d *wavDecoder) ChannelCount() int { return int(d.dec.NumChans) }

// --- FLAC decoder ---

type flacDecoder struct {
	stream     *flac.Stream
	pending    []float64
	sampleRate int
	channels   int
	scale      float64
}

func newFLACDecoder(f *os.File) (*flacDecoder, error) {
	stream, err := flac.NewSeek(f)
	if err != nil {
		return nil, fmt.Errorf("decoding FLAC: %w", err)
	}

	info := stream.Info
	return &flacDecoder{
		stream:     stream,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		scale:      1 / float64(int64(1)<<(info.BitsPerSample-1)),
	}, nil
}

func (d *flacDecoder) ReadSamples(dst []float64) (int, error) {
	written := 0
	for written < len(dst) {
		if len(d.pending) > 0 {
			n := copy(dst[written:], d.pending)
			d.pending = d.pending[n:]
			written += n
			continue
		}

		frame, err := d.stream.ParseNext()
		if err != nil {
			if written > 0 && err == io.EOF {
				return written, nil
			}
			return written, err
		}

		nSamples := int(frame.Subframes[0].NSamples)
		out := make([]float64, 0, nSamples*d.channels)
		for i := range nSamples {
			for ch := range d.channels {
				out = append(out, float64(frame.Subframes[ch].Samples[i])*d.scale)
			}
		}
		d.pending = out
	}
	return written, nil
}

func (d *flacDecoder) Rewind() error {
	d.pending = nil
	_, err := d.stream.Seek(0)
	return err
}

func (d *flacDecoder) SampleRate() int   { return d.sampleRate }
func (d *flacDecoder) ChannelCount() int { return d.channels }

// --- OGG Vorbis decoder ---

type oggDecoder struct {
	reader *oggvorbis.Reader
	buf    []float32
}

func newOGGDecoder(f *os.File) (*oggDecoder, error) {
	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decoding OGG: %w", err)
	}
	return &oggDecoder{reader: reader}, nil
}

func (d *oggDecoder) ReadSamples(dst []float64) (int, error) {
	if cap(d.buf) < len(dst) {
		d.buf = make([]float32, len(dst))
	}
	buf := d.buf[:len(dst)]

	n, err := d.reader.Read(buf)
	for i := range n {
		dst[i] = float64(buf[i])
	}
	if n > 0 && err == io.EOF {
		return n, nil
	}
	if n == 0 && err == nil {
		return 0, io.EOF
	}
	return n, err
}

func (d *oggDecoder) Rewind() error     { return d.reader.SetPosition(0) }
func (d *oggDecoder) SampleRate() int   { return d.reader.SampleRate() }
func (d *oggDecoder) ChannelCount() int { return d.reader.Channels() }
