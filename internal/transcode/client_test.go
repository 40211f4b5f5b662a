package transcode

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voicer-app/voicer/internal/common"
)

func TestHTTPEncoder_Encode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/convert/mp3", r.URL.Path)
		require.Equal(t, "audio/wav", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.Equal(t, "wav-input", string(body))

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("mp3-output"))
	}))
	defer srv.Close()

	enc := NewHTTPEncoder(srv.URL)
	out, err := enc.Encode(context.Background(), []byte("wav-input"), FormatMP3)
	require.NoError(t, err)
	require.Equal(t, "mp3-output", string(out))
}

func TestHTTPEncoder_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"request body is not valid WAV"}`))
	}))
	defer srv.Close()

	enc := NewHTTPEncoder(srv.URL)
	_, err := enc.Encode(context.Background(), []byte("junk"), FormatOGG)
	require.Error(t, err)

	var appErr *common.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, common.KindExternal, appErr.Kind)
	require.Equal(t, http.StatusUnprocessableEntity, appErr.Status)
	require.Equal(t, "request body is not valid WAV", appErr.Message)
}

func TestHTTPEncoder_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	enc := NewHTTPEncoder(srv.URL)
	_, err := enc.Encode(context.Background(), []byte("wav-input"), FormatMP3)
	require.Error(t, err)
}

func TestHTTPEncoder_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	enc := NewHTTPEncoder(srv.URL)
	_, err := enc.Encode(context.Background(), []byte("wav-input"), FormatMP3)

	var appErr *common.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, common.KindExternal, appErr.Kind)
}

func TestParseFormat(t *testing.T) {
	f, ok := ParseFormat("mp3")
	require.True(t, ok)
	require.Equal(t, FormatMP3, f)
	require.Equal(t, "audio/mpeg", f.ContentType())

	f, ok = ParseFormat("ogg")
	require.True(t, ok)
	require.Equal(t, FormatOGG, f)
	require.Equal(t, "audio/ogg", f.ContentType())

	_, ok = ParseFormat("flac")
	require.False(t, ok)
}
