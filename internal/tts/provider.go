// Package tts generates speech audio through an upstream generative API.
package tts

import "context"

type Request struct {
	Model       string
	VoiceName   string
	Temperature float64
	Style       string
	Text        string
}

type Metadata struct {
	InputTokenCount    int `json:"inputTokenCount"`
	OutputTokenCount   int `json:"outputTokenCount"`
	AudioDuration      int `json:"audioDuration"`
	GenerationDuration int `json:"generationDuration"`
}

type Result struct {
	Metadata Metadata
	// WavData is the canonical lossless artifact.
	WavData []byte
}

type Provider interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}
