package usage

import "time"

// TtsRequest is one row per generation attempt. The row is written before the
// upstream call resolves and its success flag is updated exactly once after.
type TtsRequest struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Model       string    `gorm:"type:varchar(32);not null" json:"model"`
	StyleLength int       `json:"styleLength"`
	TextLength  int       `json:"textLength"`
	Success     bool      `gorm:"not null;default:false" json:"success"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (TtsRequest) TableName() string { return "tts_requests" }
