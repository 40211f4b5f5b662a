// Package transcode defines the transcoding capability consumed by the audio
// persistence pipeline and its HTTP client implementation.
package transcode

import "context"

// Format is a lossy target encoding.
type Format string

const (
	FormatMP3 Format = "mp3"
	FormatOGG Format = "ogg"
)

// Formats lists the lossy derivatives produced for every saved artifact,
// in the order they are generated.
var Formats = []Format{FormatMP3, FormatOGG}

// ParseFormat reports whether s names a supported lossy format.
func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case FormatMP3:
		return FormatMP3, true
	case FormatOGG:
		return FormatOGG, true
	}
	return "", false
}

func (f Format) ContentType() string {
	switch f {
	case FormatMP3:
		return "audio/mpeg"
	case FormatOGG:
		return "audio/ogg"
	}
	return "application/octet-stream"
}

// Encoder converts a WAV payload into a lossy derivative. The concrete
// mechanism (HTTP microservice, in-process codec) is swappable behind this
// interface.
type Encoder interface {
	Encode(ctx context.Context, wavData []byte, format Format) ([]byte, error)
}
