package audio

import (
	"context"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, a *Audio) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *Repo) GetByID(ctx context.Context, id uint64) (*Audio, error) {
	var a Audio
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns all records, newest first.
func (r *Repo) List(ctx context.Context) ([]Audio, error) {
	var rows []Audio
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repo) UpdateTitle(ctx context.Context, id uint64, title string) error {
	res := r.db.WithContext(ctx).Model(&Audio{}).
		Where("id = ?", id).
		Update("title", title)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&Audio{}, "id = ?", id).Error
}

// Job CRUD

func (r *Repo) CreateJob(ctx context.Context, job *GenerationJob) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *Repo) GetJobByID(ctx context.Context, id string) (*GenerationJob, error) {
	var j GenerationJob
	if err := r.db.WithContext(ctx).First(&j, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *Repo) MarkJobRunning(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&GenerationJob{}).
		Where("id = ? AND status = ?", id, JobQueued).
		Update("status", JobRunning).Error
}

func (r *Repo) MarkJobSucceeded(ctx context.Context, id string, audioID uint64) error {
	return r.db.WithContext(ctx).Model(&GenerationJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":          JobSucceeded,
			"result_audio_id": audioID,
			"error":           nil,
		}).Error
}

func (r *Repo) MarkJobFailed(ctx context.Context, id string, errMsg string) error {
	return r.db.WithContext(ctx).Model(&GenerationJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":          JobFailed,
			"error":           errMsg,
			"result_audio_id": nil,
		}).Error
}
