package transcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/voicer-app/voicer/internal/common"
)

// HTTPEncoder talks to the transcoding microservice over its
// POST /convert/:format contract.
type HTTPEncoder struct {
	baseURL string
	client  *http.Client
}

func NewHTTPEncoder(baseURL string) *HTTPEncoder {
	return &HTTPEncoder{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 2 * time.Minute},
	}
}

func (e *HTTPEncoder) Encode(ctx context.Context, wavData []byte, format Format) ([]byte, error) {
	url := fmt.Sprintf("%s/convert/%s", e.baseURL, format)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(wavData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "audio/wav")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, common.Wrap(common.KindExternal, "transcoding service unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, common.Wrap(common.KindExternal, "read transcoding response", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("transcoding to %s failed", format)
		var decoded struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &decoded) == nil && decoded.Error != "" {
			msg = decoded.Error
		}
		return nil, &common.Error{Kind: common.KindExternal, Message: msg, Status: resp.StatusCode}
	}

	if len(body) == 0 {
		return nil, common.E(common.KindExternal, fmt.Sprintf("transcoding to %s returned an empty body", format))
	}
	return body, nil
}
