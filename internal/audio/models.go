package audio

import "time"

// Audio is one row per generated speech artifact. The uuid keys the blobs in
// the object store and never changes once assigned; the file paths are only
// populated when the matching blob upload succeeded.
type Audio struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID string `gorm:"type:varchar(36);uniqueIndex;not null" json:"uuid"`

	Model       string  `gorm:"type:varchar(32);not null" json:"model"`
	VoiceName   string  `gorm:"type:varchar(64);not null" json:"voiceName"`
	Temperature float64 `json:"temperature"`
	Title       string  `gorm:"type:text" json:"title"`
	Style       string  `gorm:"type:text" json:"style"`
	Text        string  `gorm:"type:text" json:"text"`

	InputTokenCount    int `json:"inputTokenCount"`
	OutputTokenCount   int `json:"outputTokenCount"`
	AudioDuration      int `json:"audioDuration"`
	GenerationDuration int `json:"generationDuration"`

	WavFilePath *string `gorm:"type:varchar(255)" json:"wavFilePath"`
	Mp3FilePath *string `gorm:"type:varchar(255)" json:"mp3FilePath"`
	OggFilePath *string `gorm:"type:varchar(255)" json:"oggFilePath"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Audio) TableName() string { return "audios" }

// GenerationInputs are the caller-supplied voice/style parameters.
type GenerationInputs struct {
	Model       string  `json:"model"`
	VoiceName   string  `json:"voiceName"`
	Temperature float64 `json:"temperature"`
	Title       string  `json:"title"`
	Style       string  `json:"style"`
	Text        string  `json:"text"`
}

// GeneratedMetadata is what the generation step reports about the artifact.
type GeneratedMetadata struct {
	InputTokenCount    int `json:"inputTokenCount"`
	OutputTokenCount   int `json:"outputTokenCount"`
	AudioDuration      int `json:"audioDuration"`
	GenerationDuration int `json:"generationDuration"`
}
