package main

import (
	"log"

	"github.com/voicer-app/voicer/internal/config"
	"github.com/voicer-app/voicer/internal/transcoder"
)

func main() {
	cfg := config.Load()

	conv := transcoder.NewFFmpeg()
	if !conv.Installed() {
		log.Printf("warning: %s not found on PATH, conversions will fail", conv.Bin)
	}

	r := transcoder.NewRouter(conv)

	log.Printf("transcoder listening on %s", cfg.TranscoderAddr)
	if err := r.Run(cfg.TranscoderAddr); err != nil {
		log.Fatalf("transcoder server: %v", err)
	}
}
