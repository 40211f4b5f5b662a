package audio

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/voicer-app/voicer/internal/common"
	"github.com/voicer-app/voicer/internal/transcode"
)

// BlobStore is the slice of the object store the pipeline needs.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// Saver orchestrates the persistence pipeline: upload the canonical WAV,
// produce and upload the lossy derivatives, then index everything in one row.
type Saver struct {
	repo    *Repo
	blobs   BlobStore
	encoder transcode.Encoder
	prefix  string
}

func NewSaver(repo *Repo, blobs BlobStore, encoder transcode.Encoder, prefix string) *Saver {
	return &Saver{repo: repo, blobs: blobs, encoder: encoder, prefix: prefix}
}

func (s *Saver) key(id, ext string) string {
	return fmt.Sprintf("%s/%s.%s", s.prefix, id, ext)
}

// SaveNew decodes the base64 WAV payload and runs SaveNewRaw.
func (s *Saver) SaveNew(ctx context.Context, in GenerationInputs, meta GeneratedMetadata, wavBase64 string) (uint64, error) {
	if wavBase64 == "" {
		return 0, common.E(common.KindInvalidInput, "generatedWav is required")
	}
	raw, err := base64.StdEncoding.DecodeString(wavBase64)
	if err != nil {
		return 0, common.Wrap(common.KindInvalidInput, "generatedWav is not valid base64", err)
	}
	return s.SaveNewRaw(ctx, in, meta, raw)
}

// SaveNewRaw uploads all blobs and inserts the row. Uploads are all-or-nothing:
// a failure after the first upload triggers compensating deletes of every blob
// already written for this artifact, and no row is persisted.
func (s *Saver) SaveNewRaw(ctx context.Context, in GenerationInputs, meta GeneratedMetadata, wavData []byte) (uint64, error) {
	if len(wavData) == 0 {
		return 0, common.E(common.KindInvalidInput, "audio payload is empty")
	}

	id := uuid.NewString()

	var uploaded []string
	fail := func(err error) (uint64, error) {
		for _, key := range uploaded {
			if delErr := s.blobs.Delete(ctx, key); delErr != nil && !common.IsNotFound(delErr) {
				log.Printf("compensating delete of %s failed: %v", key, delErr)
			}
		}
		return 0, err
	}

	wavKey := s.key(id, "wav")
	if err := s.blobs.Put(ctx, wavKey, wavData); err != nil {
		return 0, err
	}
	uploaded = append(uploaded, wavKey)

	lossyKeys := make(map[transcode.Format]string, len(transcode.Formats))
	for _, format := range transcode.Formats {
		data, err := s.encoder.Encode(ctx, wavData, format)
		if err != nil {
			return fail(err)
		}
		key := s.key(id, string(format))
		if err := s.blobs.Put(ctx, key, data); err != nil {
			return fail(err)
		}
		uploaded = append(uploaded, key)
		lossyKeys[format] = key
	}

	mp3Key := lossyKeys[transcode.FormatMP3]
	oggKey := lossyKeys[transcode.FormatOGG]
	row := &Audio{
		UUID:               id,
		Model:              in.Model,
		VoiceName:          in.VoiceName,
		Temperature:        in.Temperature,
		Title:              in.Title,
		Style:              in.Style,
		Text:               in.Text,
		InputTokenCount:    meta.InputTokenCount,
		OutputTokenCount:   meta.OutputTokenCount,
		AudioDuration:      meta.AudioDuration,
		GenerationDuration: meta.GenerationDuration,
		WavFilePath:        &wavKey,
		Mp3FilePath:        &mp3Key,
		OggFilePath:        &oggKey,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return fail(err)
	}

	return row.ID, nil
}

func (s *Saver) GetAll(ctx context.Context) ([]Audio, error) {
	return s.repo.List(ctx)
}

func (s *Saver) Get(ctx context.Context, id uint64) (*Audio, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.E(common.KindNotFound, fmt.Sprintf("audio %d not found", id))
		}
		return nil, err
	}
	return row, nil
}

// Delete removes the lossless blob first; if that fails for any reason other
// than the blob already being gone, the row is kept so it never dangles.
// Lossy blobs are removed best-effort, the row last.
func (s *Saver) Delete(ctx context.Context, id uint64) error {
	row, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if row.WavFilePath != nil {
		if err := s.blobs.Delete(ctx, *row.WavFilePath); err != nil && !common.IsNotFound(err) {
			return fmt.Errorf("delete lossless blob: %w", err)
		}
	}
	for _, path := range []*string{row.Mp3FilePath, row.OggFilePath} {
		if path == nil {
			continue
		}
		if err := s.blobs.Delete(ctx, *path); err != nil && !common.IsNotFound(err) {
			log.Printf("delete lossy blob %s failed: %v", *path, err)
		}
	}

	return s.repo.Delete(ctx, row.ID)
}

func (s *Saver) GetSound(ctx context.Context, path string) ([]byte, error) {
	return s.blobs.Get(ctx, path)
}

func (s *Saver) UpdateTitle(ctx context.Context, id uint64, title string) error {
	err := s.repo.UpdateTitle(ctx, id, title)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.E(common.KindNotFound, fmt.Sprintf("audio %d not found", id))
	}
	return err
}
