package webinar

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the routes for the webinar module
func RegisterRoutes(g *gin.RouterGroup, c *Controller) {
	group := g.Group("/webinars")

	group.POST("", c.CreateWebinar)               // Schedule a new webinar
	group.GET("", c.ListWebinars)                 // List all webinars
	group.GET("/:id", c.GetWebinar)               // Get a webinar by ID
	group.PUT("/:id", c.UpdateWebinar)            // Edit a webinar
	group.PATCH("/:id/status", c.UpdateStatus)    // Transition lifecycle state
	group.POST("/:id/register", c.Register)       // Register an attendee
	group.POST("/:id/notify", c.Notify)           // Notify registered attendees
	group.POST("/:id/token", c.Token)             // Mint a video room token
	group.POST("/:id/chat", c.PostChat)           // Add a chat message
	group.GET("/:id/chat", c.ListChat)            // List chat messages
}
