package handlers

import (
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/voicer-app/voicer/internal/audio"
	"github.com/voicer-app/voicer/internal/common"
)

// MIME types served by getSound, by blob path extension.
var soundContentTypes = map[string]string{
	"wav": "audio/wav",
	"mp3": "audio/mpeg",
	"ogg": "audio/ogg",
}

type saveReq struct {
	GenerationInputs  audio.GenerationInputs  `json:"generationInputs"`
	GeneratedMetadata audio.GeneratedMetadata `json:"generatedMetadata"`
	GeneratedWav      string                  `json:"generatedWav"`
}

func (h *Handler) Save(c *gin.Context) {
	var req saveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.JSONError(c, common.Wrap(common.KindInvalidInput, "invalid json body", err))
		return
	}

	id, err := h.Saver.SaveNew(c.Request.Context(), req.GenerationInputs, req.GeneratedMetadata, req.GeneratedWav)
	if err != nil {
		common.JSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"audioId": id})
}

func (h *Handler) GetAll(c *gin.Context) {
	rows, err := h.Saver.GetAll(c.Request.Context())
	if err != nil {
		common.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func pathID(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, common.E(common.KindNotFound, "audio not found")
	}
	return id, nil
}

func (h *Handler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		common.JSONError(c, err)
		return
	}

	row, err := h.Saver.Get(c.Request.Context(), id)
	if err != nil {
		common.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		common.JSONError(c, err)
		return
	}

	if err := h.Saver.Delete(c.Request.Context(), id); err != nil {
		common.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) GetSound(c *gin.Context) {
	filePath := c.Query("filePath")
	if filePath == "" {
		common.JSONError(c, common.E(common.KindInvalidInput, "filePath query parameter is required"))
		return
	}

	ext := strings.TrimPrefix(path.Ext(filePath), ".")
	contentType, ok := soundContentTypes[ext]
	if !ok {
		common.JSONError(c, common.E(common.KindUnsupportedMedia, "unsupported audio format "+ext))
		return
	}

	data, err := h.Saver.GetSound(c.Request.Context(), filePath)
	if err != nil {
		common.JSONError(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, data)
}

type updateTitleReq struct {
	Title string `json:"title"`
}

func (h *Handler) UpdateTitle(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		common.JSONError(c, err)
		return
	}

	var req updateTitleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.JSONError(c, common.Wrap(common.KindInvalidInput, "invalid json body", err))
		return
	}

	if err := h.Saver.UpdateTitle(c.Request.Context(), id, req.Title); err != nil {
		common.JSONError(c, err)
		return
	}
	c.String(http.StatusOK, "ok")
}
