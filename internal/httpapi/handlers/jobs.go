package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/voicer-app/voicer/internal/audio"
	"github.com/voicer-app/voicer/internal/common"
)

// CreateJob queues an async generation request and returns its id.
func (h *Handler) CreateJob(c *gin.Context) {
	if h.Publisher == nil {
		common.JSONError(c, common.E(common.KindServerConfig, "job queue is not configured"))
		return
	}

	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.JSONError(c, common.Wrap(common.KindInvalidInput, "model, voiceName and text are required", err))
		return
	}

	ctx := c.Request.Context()
	job := &audio.GenerationJob{
		ID:          audio.NewJobID(),
		Model:       req.Model,
		VoiceName:   req.VoiceName,
		Temperature: req.Temperature,
		Title:       req.Title,
		Style:       req.Style,
		Text:        req.Text,
		Status:      audio.JobQueued,
	}
	if err := h.Repo.CreateJob(ctx, job); err != nil {
		common.JSONError(c, err)
		return
	}

	if err := h.Publisher.PublishJob(ctx, job.ID); err != nil {
		_ = h.Repo.MarkJobFailed(ctx, job.ID, "failed to enqueue job")
		common.JSONError(c, common.Wrap(common.KindExternal, "failed to enqueue job", err))
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"jobId": job.ID})
}

func (h *Handler) GetJob(c *gin.Context) {
	job, err := h.Repo.GetJobByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.JSONError(c, common.E(common.KindNotFound, "job not found"))
			return
		}
		common.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}
