package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/voicer-app/voicer/internal/common"
)

func (h *Handler) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

// RequestCount returns the number of generation attempts made strictly after
// sinceDt (RFC 3339, date-only accepted).
func (h *Handler) RequestCount(c *gin.Context) {
	raw := c.Query("sinceDt")
	since, err := parseSince(raw)
	if err != nil {
		common.JSONError(c, common.E(common.KindInvalidInput, "sinceDt does not parse as a valid date"))
		return
	}

	n, err := h.Tracker.CountSince(c.Request.Context(), since)
	if err != nil {
		common.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func parseSince(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
