package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voicer-app/voicer/internal/httpapi/handlers"
	"github.com/voicer-app/voicer/internal/httpapi/middleware"
)

// NewRouter wires the API surface. limiter guards the generation endpoints
// and may be nil when rate limiting is not configured.
func NewRouter(h *handlers.Handler, limiter gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	api := r.Group("/api")
	api.GET("/ping", h.Ping)

	api.POST("/save", h.Save)
	api.GET("/getAll", h.GetAll)
	api.GET("/get/:id", h.Get)
	api.DELETE("/delete/:id", h.Delete)
	api.GET("/getSound", h.GetSound)
	api.PATCH("/audios/:id", h.UpdateTitle)

	api.GET("/request-count", h.RequestCount)
	api.GET("/jobs/:id", h.GetJob)

	// The generation endpoints hit the expensive upstream API.
	gen := api.Group("")
	if limiter != nil {
		gen.Use(limiter)
	}
	gen.POST("/generate", h.Generate)
	gen.POST("/jobs", h.CreateJob)

	return r
}
