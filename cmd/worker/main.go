package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/voicer-app/voicer/internal/audio"
	"github.com/voicer-app/voicer/internal/blob"
	"github.com/voicer-app/voicer/internal/config"
	"github.com/voicer-app/voicer/internal/db"
	"github.com/voicer-app/voicer/internal/store/rabbitmq"
	"github.com/voicer-app/voicer/internal/transcode"
	"github.com/voicer-app/voicer/internal/tts"
	"github.com/voicer-app/voicer/internal/usage"
)

func workerConcurrency() int {
	v := os.Getenv("WORKER_CONCURRENCY")
	if v == "" {
		return 2
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 2
	}
	if n > 50 {
		return 50
	}
	return n
}

type deps struct {
	repo     *audio.Repo
	saver    *audio.Saver
	tracker  *usage.Tracker
	provider tts.Provider
}

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
	d := deps{
		repo:     repo,
		saver:    audio.NewSaver(repo, blobs, transcode.NewHTTPEncoder(cfg.ConverterURL), cfg.FilesPrefix),
		tracker:  usage.NewTracker(gdb),
		provider: tts.NewGeminiProvider(cfg.GeminiBaseURL, cfg.GeminiAPIKey),
	}

	conn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("rabbit dial: %v", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("rabbit channel: %v", err)
	}
	defer ch.Close()

	if err := rabbitmq.Declare(ch, cfg.RabbitQueue); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	concurrency := workerConcurrency()
	if err := ch.Qos(concurrency, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("worker started, queue=%s concurrency=%d", cfg.RabbitQueue, concurrency)

	jobs := make(chan amqp.Delivery, concurrency*2)

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func(workerID int) {
			defer wg.Done()
			for delivery := range jobs {
				var m rabbitmq.JobMessage
				if err := json.Unmarshal(delivery.Body, &m); err != nil || m.JobID == "" {
					log.Printf("worker=%d bad message: %v", workerID, err)
					_ = delivery.Nack(false, false)
					continue
				}

				start := time.Now()
				if err := handleJob(ctx, d, m.JobID); err != nil {
					log.Printf("worker=%d job %s failed cost=%s err=%v", workerID, m.JobID, time.Since(start), err)
					_ = delivery.Nack(false, false)
					continue
				}

				if err := delivery.Ack(false); err != nil {
					log.Printf("worker=%d ack failed job=%s err=%v", workerID, m.JobID, err)
				}
			}
		}(i)
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("worker shutting down")
			close(jobs)
			wg.Wait()
			return

		case delivery, ok := <-msgs:
			if !ok {
				log.Printf("delivery channel closed")
				time.Sleep(1 * time.Second)
				continue
			}
			jobs <- delivery
		}
	}
}

// handleJob runs one queued generation end to end: upstream speech call with
// usage tracking, then the persistence pipeline, then the job outcome.
func handleJob(ctx context.Context, d deps, jobID string) error {
	_ = d.repo.MarkJobRunning(ctx, jobID)

	job, err := d.repo.GetJobByID(ctx, jobID)
	if err != nil {
		return err
	}

	rec, err := d.tracker.SaveRequest(ctx, job.Model, len(job.Style), len(job.Text))
	if err != nil {
		log.Printf("job=%s save usage record: %v", jobID, err)
	}

	result, genErr := d.provider.Generate(ctx, tts.Request{
		Model:       job.Model,
		VoiceName:   job.VoiceName,
		Temperature: job.Temperature,
		Style:       job.Style,
		Text:        job.Text,
	})
	if rec != nil {
		if err := d.tracker.UpdateRequest(ctx, rec, genErr == nil); err != nil {
			log.Printf("job=%s update usage record: %v", jobID, err)
		}
	}
	if genErr != nil {
		_ = d.repo.MarkJobFailed(ctx, jobID, genErr.Error())
		return genErr
	}

	audioID, err := d.saver.SaveNewRaw(ctx,
		audio.GenerationInputs{
			Model:       job.Model,
			VoiceName:   job.VoiceName,
			Temperature: job.Temperature,
			Title:       job.Title,
			Style:       job.Style,
			Text:        job.Text,
		},
		audio.GeneratedMetadata(result.Metadata),
		result.WavData,
	)
	if err != nil {
		_ = d.repo.MarkJobFailed(ctx, jobID, err.Error())
		return err
	}

	return d.repo.MarkJobSucceeded(ctx, jobID, audioID)
}
