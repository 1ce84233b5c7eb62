package insight

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the routes for the AI insight module
func RegisterRoutes(g *gin.RouterGroup, c *Controller) {
	ai := g.Group("/ai")
	ai.POST("/answer", c.Answer)         // Answer a question from live context
	ai.POST("/summarize", c.Summarize)   // Generate a summary
	ai.POST("/transcribe", c.Transcribe) // Transcribe an audio chunk

	// Final summary lives under the webinar resource
	g.GET("/webinars/:id/summary", c.FinalSummary)
}
