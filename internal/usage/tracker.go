// Package usage records generation attempts and serves request statistics.
package usage

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Tracker struct {
	db *gorm.DB
}

func NewTracker(db *gorm.DB) *Tracker {
	return &Tracker{db: db}
}

// SaveRequest inserts a record with the outcome still unknown.
func (t *Tracker) SaveRequest(ctx context.Context, model string, styleLength, textLength int) (*TtsRequest, error) {
	req := &TtsRequest{
		Model:       model,
		StyleLength: styleLength,
		TextLength:  textLength,
	}
	if err := t.db.WithContext(ctx).Create(req).Error; err != nil {
		return nil, err
	}
	return req, nil
}

// UpdateRequest persists the outcome of the generation call.
func (t *Tracker) UpdateRequest(ctx context.Context, req *TtsRequest, success bool) error {
	req.Success = success
	return t.db.WithContext(ctx).Model(req).Update("success", success).Error
}

// CountSince counts requests created strictly after the given instant.
func (t *Tracker) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := t.db.WithContext(ctx).Model(&TtsRequest{}).
		Where("created_at > ?", since).
		Count(&n).Error
	return n, err
}
