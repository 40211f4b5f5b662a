// Package wav builds and inspects WAV containers. The generation profile
// (24 kHz mono 16-bit PCM) matches what the speech provider emits.
package wav

import (
	"encoding/binary"
	"errors"
)

const (
	GenerationSampleRate = 24000
	GenerationChannels   = 1
	GenerationBitDepth   = 16

	headerSize = 44
)

var (
	ErrNotWav        = errors.New("data is not a RIFF/WAVE container")
	ErrNoFormatChunk = errors.New("no format chunk found")
	ErrTruncated     = errors.New("wav data truncated")
)

// Format is the decoded "fmt " chunk of a WAV container.
type Format struct {
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// FromPCM wraps raw PCM samples in a WAV header using the generation profile.
func FromPCM(pcm []byte) []byte {
	byteRate := GenerationSampleRate * GenerationChannels * GenerationBitDepth / 8
	blockAlign := GenerationChannels * GenerationBitDepth / 8

	h := make([]byte, headerSize, headerSize+len(pcm))
	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], uint32(36+len(pcm)))
	copy(h[8:12], "WAVE")
	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16)
	binary.LittleEndian.PutUint16(h[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(h[22:24], GenerationChannels)
	binary.LittleEndian.PutUint32(h[24:28], GenerationSampleRate)
	binary.LittleEndian.PutUint32(h[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(h[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(h[34:36], GenerationBitDepth)
	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], uint32(len(pcm)))

	return append(h, pcm...)
}

// Duration returns the audio length in seconds for a generation-profile WAV.
func Duration(wavBytes []byte) float64 {
	n := len(wavBytes) - headerSize
	if n <= 0 {
		return 0
	}
	bytesPerSecond := GenerationSampleRate * GenerationChannels * GenerationBitDepth / 8
	return float64(n) / float64(bytesPerSecond)
}

// ScanFormat walks the chunks of a WAV container and returns the first format
// chunk. The payload is considered valid WAV iff a well-formed format chunk is
// found before any parse error; an empty body is invalid.
func ScanFormat(data []byte) (*Format, error) {
	if len(data) < 12 {
		return nil, ErrNotWav
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, ErrNotWav
	}

	off := 12
	for off+8 <= len(data) {
		id := string(data[off : off+4])
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		off += 8

		if id == "fmt " {
			if size < 16 || off+16 > len(data) {
				return nil, ErrTruncated
			}
			f := &Format{
				AudioFormat:   binary.LittleEndian.Uint16(data[off : off+2]),
				Channels:      binary.LittleEndian.Uint16(data[off+2 : off+4]),
				SampleRate:    binary.LittleEndian.Uint32(data[off+4 : off+8]),
				ByteRate:      binary.LittleEndian.Uint32(data[off+8 : off+12]),
				BlockAlign:    binary.LittleEndian.Uint16(data[off+12 : off+14]),
				BitsPerSample: binary.LittleEndian.Uint16(data[off+14 : off+16]),
			}
			if f.Channels == 0 || f.SampleRate == 0 {
				return nil, ErrNotWav
			}
			return f, nil
		}

		off += size
		if size%2 == 1 {
			off++ // chunks are word-aligned
		}
	}

	return nil, ErrNoFormatChunk
}
