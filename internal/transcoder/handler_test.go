package transcoder

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/voicer-app/voicer/internal/transcode"
	"github.com/voicer-app/voicer/internal/wav"
)

type fakeConverter struct {
	installed bool
	out       []byte
	err       error
	calls     int
}

func (f *fakeConverter) Installed() bool { return f.installed }

func (f *fakeConverter) Convert(_ context.Context, _ []byte, _ transcode.Format) ([]byte, error) {
	f.calls++
	return f.out, f.err
}

func post(r *gin.Engine, path string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "audio/wav")
	r.ServeHTTP(w, req)
	return w
}

func validWav() []byte {
	return wav.FromPCM(make([]byte, 4800))
}

func TestConvert_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	conv := &fakeConverter{installed: true, out: []byte("mp3-bytes")}
	r := NewRouter(conv)

	w := post(r, "/convert/mp3", validWav())
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "audio/mpeg", w.Header().Get("Content-Type"))
	require.Equal(t, "mp3-bytes", w.Body.String())
	require.Equal(t, 1, conv.calls)
}

func TestConvert_OggContentType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	conv := &fakeConverter{installed: true, out: []byte("ogg-bytes")}
	r := NewRouter(conv)

	w := post(r, "/convert/ogg", validWav())
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "audio/ogg", w.Header().Get("Content-Type"))
}

func TestConvert_UnknownFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	conv := &fakeConverter{installed: true, out: []byte("x")}
	r := NewRouter(conv)

	w := post(r, "/convert/flac", validWav())
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, w.Body.String(), "error")
	require.Zero(t, conv.calls)
}

func TestConvert_InvalidWav(t *testing.T) {
	gin.SetMode(gin.TestMode)
	conv := &fakeConverter{installed: true, out: []byte("x")}
	r := NewRouter(conv)

	for name, body := range map[string][]byte{
		"empty":   nil,
		"not wav": []byte("definitely not audio"),
		"no fmt":  []byte("RIFF\x24\x00\x00\x00WAVEdata\x04\x00\x00\x00abcd"),
	} {
		w := post(r, "/convert/mp3", body)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, name)
	}
	require.Zero(t, conv.calls)
}

func TestConvert_EncoderMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(&fakeConverter{installed: false})

	w := post(r, "/convert/mp3", validWav())
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "ffmpeg is not installed")
}

func TestConvert_EncoderFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	conv := &fakeConverter{installed: true, err: errors.New("boom")}
	r := NewRouter(conv)

	w := post(r, "/convert/ogg", validWav())
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "conversion failed")
}

func TestPing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(&fakeConverter{installed: true})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "pong", w.Body.String())
}
