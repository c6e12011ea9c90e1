// Package audio loads stereo WAV recordings and prepares them for analysis:
// RIFF parsing, sample normalization to float64 in [-1, 1], channel
// splitting, and linear-interpolation resampling.
//
// The analyzer is strictly two-speaker with one speaker per channel, so
// anything other than a two-channel file is rejected with [ErrNotStereo]
// before any analysis runs.
package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// ErrNotStereo is returned when a WAV file does not contain exactly two
// channels. The analyzer maps the left channel to speaker A and the right
// channel to speaker B; mono or multi-channel input has no such mapping.
var ErrNotStereo = errors.New("audio: expected stereo WAV (2 channels)")

// WAV format codes from the fmt chunk.
const (
	formatPCM        = 1
	formatIEEEFloat  = 3
	formatExtensible = 0xFFFE
)

// Recording holds a decoded stereo recording with both channels normalized
// to float64 in [-1, 1].
type Recording struct {
	// SampleRate in Hz, as declared by the fmt chunk.
	SampleRate int

	// Left and Right channel signals. Always the same length.
	Left  []float64
	Right []float64
}

// Duration returns the recording length in seconds.
func (r *Recording) Duration() float64 {
	if r.SampleRate <= 0 {
		return 0
	}
	return float64(len(r.Left)) / float64(r.SampleRate)
}

// LoadWAVFile opens and decodes the stereo WAV file at path.
func LoadWAVFile(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: open %q: %w", path, err)
	}
	defer f.Close()
	rec, err := LoadWAV(f)
	if err != nil {
		return nil, fmt.Errorf("audio: decode %q: %w", path, err)
	}
	return rec, nil
}

// LoadWAV decodes a stereo WAV stream and returns the normalized recording.
// Supported sample encodings: 8-bit unsigned, 16-bit and 32-bit signed PCM,
// and 32-bit and 64-bit IEEE float. Returns [ErrNotStereo] for any channel
// count other than 2.
func LoadWAV(r io.Reader) (*Recording, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return nil, fmt.Errorf("audio: read RIFF header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, errors.New("audio: not a RIFF/WAVE file")
	}

	var (
		haveFmt    bool
		formatCode uint16
		channels   int
		sampleRate int
		bitDepth   int
	)

	// Walk chunks until the data chunk. The fmt chunk must precede data.
	for {
		var hdr [8]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, errors.New("audio: no data chunk found")
			}
			return nil, fmt.Errorf("audio: read chunk header: %w", err)
		}
		chunkID := string(hdr[0:4])
		chunkLen := binary.LittleEndian.Uint32(hdr[4:8])

		switch chunkID {
		case "fmt ":
			body := make([]byte, chunkLen)
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, fmt.Errorf("audio: read fmt chunk: %w", err)
			}
			if len(body) < 16 {
				return nil, errors.New("audio: fmt chunk too short")
			}
			formatCode = binary.LittleEndian.Uint16(body[0:2])
			channels = int(binary.LittleEndian.Uint16(body[2:4]))
			sampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			bitDepth = int(binary.LittleEndian.Uint16(body[14:16]))
			if formatCode == formatExtensible && len(body) >= 26 {
				// WAVE_FORMAT_EXTENSIBLE carries the real format in the
				// first two bytes of the subformat GUID.
				formatCode = binary.LittleEndian.Uint16(body[24:26])
			}
			haveFmt = true

		case "data":
			if !haveFmt {
				return nil, errors.New("audio: data chunk before fmt chunk")
			}
			data := make([]byte, chunkLen)
			if _, err := io.ReadFull(r, data); err != nil {
				return nil, fmt.Errorf("audio: read data chunk: %w", err)
			}
			return decodeData(data, formatCode, channels, sampleRate, bitDepth)

		default:
			// Skip unknown chunks (LIST, fact, cue, ...). Chunks are
			// word-aligned; a pad byte follows odd-sized bodies.
			skip := int64(chunkLen)
			if chunkLen%2 == 1 {
				skip++
			}
			if _, err := io.CopyN(io.Discard, r, skip); err != nil {
				return nil, fmt.Errorf("audio: skip %q chunk: %w", chunkID, err)
			}
		}
	}
}

// decodeData converts raw interleaved sample data into the two normalized
// channel signals.
func decodeData(data []byte, formatCode uint16, channels, sampleRate, bitDepth int) (*Recording, error) {
	if channels != 2 {
		return nil, fmt.Errorf("%w, got %d channel(s)", ErrNotStereo, channels)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("audio: invalid sample rate %d", sampleRate)
	}

	samples, err := normalize(data, formatCode, bitDepth)
	if err != nil {
		return nil, err
	}

	frames := len(samples) / 2
	left := make([]float64, frames)
	right := make([]float64, frames)
	for i := 0; i < frames; i++ {
		left[i] = samples[i*2]
		right[i] = samples[i*2+1]
	}
	return &Recording{SampleRate: sampleRate, Left: left, Right: right}, nil
}

// normalize converts raw little-endian sample bytes to float64 in [-1, 1].
func normalize(data []byte, formatCode uint16, bitDepth int) ([]float64, error) {
	switch {
	case formatCode == formatPCM && bitDepth == 16:
		n := len(data) / 2
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			s := int16(binary.LittleEndian.Uint16(data[i*2:]))
			out[i] = float64(s) / 32768.0
		}
		return out, nil

	case formatCode == formatPCM && bitDepth == 32:
		n := len(data) / 4
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			s := int32(binary.LittleEndian.Uint32(data[i*4:]))
			out[i] = float64(s) / 2147483648.0
		}
		return out, nil

	case formatCode == formatPCM && bitDepth == 8:
		// 8-bit WAV is unsigned with a 128 midpoint.
		out := make([]float64, len(data))
		for i, b := range data {
			out[i] = (float64(b) - 128.0) / 128.0
		}
		return out, nil

	case formatCode == formatIEEEFloat && bitDepth == 32:
		n := len(data) / 4
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			bits := binary.LittleEndian.Uint32(data[i*4:])
			out[i] = float64(math.Float32frombits(bits))
		}
		return out, nil

	case formatCode == formatIEEEFloat && bitDepth == 64:
		n := len(data) / 8
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			bits := binary.LittleEndian.Uint64(data[i*8:])
			out[i] = math.Float64frombits(bits)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("audio: unsupported sample format (code %d, %d-bit)", formatCode, bitDepth)
	}
}
