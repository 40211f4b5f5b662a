package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"

	"github.com/voicer-app/voicer/internal/audio"
	"github.com/voicer-app/voicer/internal/blob"
	"github.com/voicer-app/voicer/internal/config"
	"github.com/voicer-app/voicer/internal/db"
	"github.com/voicer-app/voicer/internal/httpapi"
	"github.com/voicer-app/voicer/internal/httpapi/handlers"
	"github.com/voicer-app/voicer/internal/httpapi/middleware"
	"github.com/voicer-app/voicer/internal/store/rabbitmq"
	"github.com/voicer-app/voicer/internal/store/redisstore"
	"github.com/voicer-app/voicer/internal/transcode"
	"github.com/voicer-app/voicer/internal/tts"
	"github.com/voicer-app/voicer/internal/usage"
)

func main() {
	cfg := config.Load()

	gdb := db.Connect(cfg.DBPath)

	nc, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		log.Fatalf("nats connect: %v", err)
	}
	defer nc.Close()

	js, err := nc.JetStream()
	if err != nil {
		log.Fatalf("jetstream: %v", err)
	}
	blobs, err := blob.New(js, cfg.Bucket)
	if err != nil {
		log.Fatalf("object store: %v", err)
	}

	repo := audio.NewRepo(gdb)
	encoder := transcode.NewHTTPEncoder(cfg.ConverterURL)
	saver := audio.NewSaver(repo, blobs, encoder, cfg.FilesPrefix)
	tracker := usage.NewTracker(gdb)
	provider := tts.NewGeminiProvider(cfg.GeminiBaseURL, cfg.GeminiAPIKey)

	var pub handlers.JobPublisher
	if cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
		if err != nil {
			log.Fatalf("rabbit publisher: %v", err)
		}
		defer p.Close()
		pub = p
	}

	var limiter gin.HandlerFunc
	if cfg.RedisAddr != "" {
		rds := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer rds.Close()
		limiter = middleware.RateLimit(rds, cfg.RateLimitPerMinute, time.Minute)
	}

	h := handlers.NewHandler(saver, repo, tracker, provider, pub)
	r := httpapi.NewRouter(h, limiter)

	log.Printf("api listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("api server: %v", err)
	}
}
