package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/voicer-app/voicer/internal/common"
	"github.com/voicer-app/voicer/internal/wav"
)

// Model aliases exposed to clients.
var modelNames = map[string]string{
	"basic":    "gemini-2.5-flash-preview-tts",
	"advanced": "gemini-2.5-pro-preview-tts",
}

// GeminiProvider calls the generative speech API and wraps the returned PCM
// into a WAV container.
type GeminiProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewGeminiProvider(baseURL, apiKey string) *GeminiProvider {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	return &GeminiProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 3 * time.Minute},
	}
}

type geminiInlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPrebuiltVoice struct {
	VoiceName string `json:"voiceName"`
}

type geminiVoiceConfig struct {
	PrebuiltVoiceConfig geminiPrebuiltVoice `json:"prebuiltVoiceConfig"`
}

type geminiSpeechConfig struct {
	VoiceConfig geminiVoiceConfig `json:"voiceConfig"`
}

type geminiGenConfig struct {
	Temperature        float64            `json:"temperature"`
	ResponseModalities []string           `json:"responseModalities"`
	SpeechConfig       geminiSpeechConfig `json:"speechConfig"`
}

type geminiGenReq struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiError struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type geminiGenResp struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
	} `json:"usageMetadata"`
	Error *geminiError `json:"error"`
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Result, error) {
	model, ok := modelNames[req.Model]
	if !ok {
		return nil, common.E(common.KindInvalidInput, fmt.Sprintf("unknown model %q", req.Model))
	}

	prompt := req.Style + "\n\n" + req.Text
	body := geminiGenReq{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenConfig{
			Temperature:        req.Temperature,
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: geminiSpeechConfig{
				VoiceConfig: geminiVoiceConfig{
					PrebuiltVoiceConfig: geminiPrebuiltVoice{VoiceName: req.VoiceName},
				},
			},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", p.BaseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", p.APIKey)

	start := time.Now()
	resp, err := p.Client.Do(httpReq)
	if err != nil {
		return nil, common.Wrap(common.KindExternal, "speech generation request failed", err)
	}
	defer resp.Body.Close()

	var decoded geminiGenResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, common.Wrap(common.KindExternal, "malformed speech generation response", err)
	}

	if decoded.Error != nil {
		return nil, &common.Error{
			Kind:    common.KindExternal,
			Message: decoded.Error.Status,
			Status:  decoded.Error.Code,
			Err:     errors.New(decoded.Error.Message),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &common.Error{
			Kind:    common.KindExternal,
			Message: fmt.Sprintf("speech generation returned status %d", resp.StatusCode),
			Status:  resp.StatusCode,
		}
	}

	// Prohibited content surfaces without an error object.
	if fb := decoded.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return nil, &common.Error{Kind: common.KindExternal, Message: fb.BlockReason, Status: http.StatusForbidden}
	}
	if len(decoded.Candidates) == 0 {
		return nil, common.E(common.KindExternal, "speech generation returned no candidates")
	}
	if fr := decoded.Candidates[0].FinishReason; fr != "" && fr != "STOP" {
		return nil, &common.Error{Kind: common.KindExternal, Message: fr, Status: http.StatusForbidden}
	}

	parts := decoded.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0].InlineData == nil || parts[0].InlineData.Data == "" {
		return nil, common.E(common.KindExternal, "speech generation returned no audio data")
	}

	pcm, err := base64.StdEncoding.DecodeString(parts[0].InlineData.Data)
	if err != nil {
		return nil, common.Wrap(common.KindExternal, "speech generation returned malformed audio data", err)
	}

	wavData := wav.FromPCM(pcm)
	meta := Metadata{
		InputTokenCount:    decoded.UsageMetadata.PromptTokenCount,
		OutputTokenCount:   decoded.UsageMetadata.CandidatesTokenCount,
		AudioDuration:      int(math.Round(wav.Duration(wavData))),
		GenerationDuration: int(math.Round(time.Since(start).Seconds())),
	}

	return &Result{Metadata: meta, WavData: wavData}, nil
}
