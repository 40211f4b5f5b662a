package transcoder

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voicer-app/voicer/internal/transcode"
	"github.com/voicer-app/voicer/internal/wav"
)

const maxBodyBytes = 50 << 20

func NewRouter(conv Converter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	r.POST("/convert/:format", convertHandler(conv))

	return r
}

func convertHandler(conv Converter) gin.HandlerFunc {
	return func(c *gin.Context) {
		format, ok := transcode.ParseFormat(c.Param("format"))
		if !ok {
			msg := fmt.Sprintf("unsupported target format %q, must be one of %v", c.Param("format"), transcode.Formats)
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg})
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "failed to read request body"})
			return
		}
		if _, err := wav.ScanFormat(body); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "request body is not valid WAV"})
			return
		}

		if !conv.Installed() {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "ffmpeg is not installed on this host"})
			return
		}

		out, err := conv.Convert(c.Request.Context(), body, format)
		if err != nil {
			log.Printf("conversion to %s failed: %v", format, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "conversion failed"})
			return
		}

		c.Data(http.StatusOK, format.ContentType(), out)
	}
}
