package handlers

import (
	"encoding/base64"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voicer-app/voicer/internal/common"
	"github.com/voicer-app/voicer/internal/tts"
)

type generateReq struct {
	Model       string  `json:"model" binding:"required"`
	VoiceName   string  `json:"voiceName" binding:"required"`
	Temperature float64 `json:"temperature"`
	Title       string  `json:"title"`
	Style       string  `json:"style"`
	Text        string  `json:"text" binding:"required"`
}

// Generate runs the upstream speech call synchronously. A usage record is
// written before the call and its outcome flag updated after, on both paths.
func (h *Handler) Generate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.JSONError(c, common.Wrap(common.KindInvalidInput, "model, voiceName and text are required", err))
		return
	}

	ctx := c.Request.Context()
	rec, err := h.Tracker.SaveRequest(ctx, req.Model, len(req.Style), len(req.Text))
	if err != nil {
		common.JSONError(c, err)
		return
	}

	result, genErr := h.Provider.Generate(ctx, tts.Request{
		Model:       req.Model,
		VoiceName:   req.VoiceName,
		Temperature: req.Temperature,
		Style:       req.Style,
		Text:        req.Text,
	})
	if updErr := h.Tracker.UpdateRequest(ctx, rec, genErr == nil); updErr != nil {
		log.Printf("update usage record %d: %v", rec.ID, updErr)
	}
	if genErr != nil {
		common.JSONError(c, genErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"metadata": result.Metadata,
		"wavData":  base64.StdEncoding.EncodeToString(result.WavData),
	})
}
