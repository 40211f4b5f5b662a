// Package transcoder implements the audio-transcoding microservice: a WAV
// payload in, a lossy derivative out, produced by an external ffmpeg process.
package transcoder

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/voicer-app/voicer/internal/transcode"
)

// Converter is the capability the HTTP handler depends on, so the subprocess
// mechanism stays swappable.
type Converter interface {
	Installed() bool
	Convert(ctx context.Context, wavData []byte, format transcode.Format) ([]byte, error)
}

// Fixed argument templates: WAV on stdin, encoded stream on stdout.
// mp3 uses VBR quality 4, ogg uses vorbis quality 0.
var encodeArgs = map[transcode.Format][]string{
	transcode.FormatMP3: {"-f", "wav", "-i", "pipe:0", "-c:a", "libmp3lame", "-q:a", "4", "-f", "mp3", "pipe:1"},
	transcode.FormatOGG: {"-f", "wav", "-i", "pipe:0", "-c:a", "libvorbis", "-q:a", "0", "-f", "ogg", "pipe:1"},
}

type FFmpeg struct {
	Bin string
}

func NewFFmpeg() *FFmpeg {
	return &FFmpeg{Bin: "ffmpeg"}
}

// Installed probes for the binary; probed per request, not cached.
func (f *FFmpeg) Installed() bool {
	_, err := exec.LookPath(f.Bin)
	return err == nil
}

func (f *FFmpeg) Convert(ctx context.Context, wavData []byte, format transcode.Format) ([]byte, error) {
	args, ok := encodeArgs[format]
	if !ok {
		return nil, fmt.Errorf("no encoder arguments for format %q", format)
	}

	cmd := exec.CommandContext(ctx, f.Bin, args...)
	cmd.Stdin = bytes.NewReader(wavData)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s to %s failed: %w: %s", f.Bin, format, err, lastLine(&stderr))
	}
	return stdout.Bytes(), nil
}

func lastLine(b *bytes.Buffer) string {
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}
