// Package audiofile converts between WAV files and single-channel samples.
package audiofile

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/algo-winding/dsp/sample"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// DefaultBitDepth is used by Write when no bit depth is given.
const DefaultBitDepth = 16

const wavFormatPCM = 1

// Errors returned by the WAV helpers.
var (
	ErrInvalidWAV      = errors.New("audiofile: invalid WAV file")
	ErrUnsupportedBits = errors.New("audiofile: unsupported bit depth")
	ErrNoChannels      = errors.New("audiofile: no channels")
)

func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 8, 16, 24, 32:
		return math.Ldexp(1, bitDepth-1), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBits, bitDepth)
	}
}

// Load decodes a PCM WAV file into a single-channel sample. Channels are
// averaged per frame and amplitudes scaled to [-1, 1).
func Load(path string) (sample.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return sample.Sample{}, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return sample.Sample{}, fmt.Errorf("%w: %s", ErrInvalidWAV, path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return sample.Sample{}, fmt.Errorf("reading WAV PCM data: %w", err)
	}

	channels := int(dec.NumChans)
	if channels <= 0 {
		return sample.Sample{}, fmt.Errorf("%w: %s", ErrNoChannels, path)
	}
	bitDepth := int(dec.BitDepth)
	scale, err := fullScale(bitDepth)
	if err != nil {
		return sample.Sample{}, err
	}

	mono := Downmix(buf.Data, channels, bitDepth == 8)
	vecmath.ScaleBlock(mono, mono, 1/(scale*float64(channels)))

	return sample.New(mono, int(dec.SampleRate))
}

// Downmix sums interleaved frames into one value per frame. 8-bit PCM is
// unsigned and is re-centred on zero first. A trailing partial frame is
// dropped.
func Downmix(data []int, channels int, unsigned8 bool) []float64 {
	if channels <= 0 {
		return nil
	}
	frames := len(data) / channels
	out := make([]float64, frames)
	for i := range out {
		var sum float64
		for c := range channels {
			v := data[i*channels+c]
			if unsigned8 {
				v -= 128
			}
			sum += float64(v)
		}
		out[i] = sum
	}
	return out
}

// Write encodes s as a mono PCM WAV file. Amplitudes outside [-1, 1] are
// clipped. bitDepth 0 selects DefaultBitDepth.
func Write(path string, s sample.Sample, bitDepth int) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if bitDepth == 0 {
		bitDepth = DefaultBitDepth
	}
	if bitDepth == 8 {
		return fmt.Errorf("%w: %d (writing)", ErrUnsupportedBits, bitDepth)
	}
	scale, err := fullScale(bitDepth)
	if err != nil {
		return err
	}

	data := make([]int, s.Len())
	peak := scale - 1
	for i, a := range s.Amplitudes {
		data[i] = int(math.Round(math.Max(-1, math.Min(1, a)) * peak))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(f, s.Rate, bitDepth, 1, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: s.Rate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("writing WAV data: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finalizing WAV: %w", err)
	}
	return f.Close()
}
