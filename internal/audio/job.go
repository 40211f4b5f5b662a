package audio

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// GenerationJob is one queued speech-generation request. The worker moves it
// queued -> running -> succeeded | failed.
type GenerationJob struct {
	ID string `gorm:"primaryKey;size:26" json:"jobId"` // ULID length

	Model       string  `gorm:"type:varchar(32);not null" json:"model"`
	VoiceName   string  `gorm:"type:varchar(64);not null" json:"voiceName"`
	Temperature float64 `json:"temperature"`
	Title       string  `gorm:"type:text" json:"title"`
	Style       string  `gorm:"type:text" json:"style"`
	Text        string  `gorm:"type:text" json:"text"`

	Status JobStatus `gorm:"type:varchar(16);index;not null" json:"status"`

	// Filled when succeeded
	ResultAudioID *uint64 `gorm:"index" json:"resultAudioId"`

	// Filled when failed
	Error *string `gorm:"type:text" json:"error"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (GenerationJob) TableName() string { return "generation_jobs" }

func NewJobID() string {
	return ulid.Make().String()
}
