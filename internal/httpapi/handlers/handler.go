package handlers

import (
	"context"

	"github.com/voicer-app/voicer/internal/audio"
	"github.com/voicer-app/voicer/internal/tts"
	"github.com/voicer-app/voicer/internal/usage"
)

// JobPublisher hands a queued generation job to the worker.
type JobPublisher interface {
	PublishJob(ctx context.Context, jobID string) error
}

type Handler struct {
	Saver     *audio.Saver
	Repo      *audio.Repo
	Tracker   *usage.Tracker
	Provider  tts.Provider
	Publisher JobPublisher
}

func NewHandler(saver *audio.Saver, repo *audio.Repo, tracker *usage.Tracker, provider tts.Provider, pub JobPublisher) *Handler {
	return &Handler{
		Saver:     saver,
		Repo:      repo,
		Tracker:   tracker,
		Provider:  provider,
		Publisher: pub,
	}
}
