package webinar

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/godwincybertechsolutions-cmyk/webinar/internal/livekit"
	store "github.com/godwincybertechsolutions-cmyk/webinar/internal/stores/webinar"
	"github.com/godwincybertechsolutions-cmyk/webinar/pkg/sdk"
)

// Controller handles webinar lifecycle, registration, chat, and room tokens
type Controller struct {
	store  store.Store
	minter *livekit.TokenMinter
}

// NewController creates a webinar controller. The minter may be nil when
// video credentials are not configured; the token route then reports 503.
func NewController(s store.Store, minter *livekit.TokenMinter) *Controller {
	return &Controller{store: s, minter: minter}
}

// CreateWebinar handles POST requests to schedule a new webinar
func (ctl *Controller) CreateWebinar(c *gin.Context) {
	var req sdk.CreateWebinarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
		return
	}

	w := &store.Webinar{
		HostID:          req.HostID,
		Title:           req.Title,
		Description:     req.Description,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		RoomName:        req.RoomName,
		MaxParticipants: req.MaxParticipants,
	}
	if w.RoomName == "" {
		w.RoomName = fmt.Sprintf("webinar-%s", uuid.New().String()[:8])
	}

	if err := ctl.store.CreateWebinar(c.Request.Context(), w); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to create webinar", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Webinar created successfully", toSDKWebinar(w)).AsGinResponse())
}

// ListWebinars handles GET requests to list all webinars
func (ctl *Controller) ListWebinars(c *gin.Context) {
	webinars, err := ctl.store.ListWebinars(c.Request.Context())
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to list webinars", err).AsGinResponse())
		return
	}

	out := make([]sdk.Webinar, 0, len(webinars))
	for i := range webinars {
		out = append(out, toSDKWebinar(&webinars[i]))
	}

	c.JSON(sdk.NewSuccessResponse("Webinars retrieved successfully", out).AsGinResponse())
}

// GetWebinar handles GET requests to retrieve a webinar by ID
func (ctl *Controller) GetWebinar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	w, err := ctl.store.GetWebinar(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Webinar not found", err).AsGinResponse())
			return
		}
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to get webinar", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Webinar retrieved successfully", toSDKWebinar(w)).AsGinResponse())
}

// UpdateWebinar handles PUT requests to edit an existing webinar
func (ctl *Controller) UpdateWebinar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req sdk.UpdateWebinarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
		return
	}

	w, err := ctl.store.GetWebinar(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Webinar not found", err).AsGinResponse())
			return
		}
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to get webinar", err).AsGinResponse())
		return
	}

	if req.Title != "" {
		w.Title = req.Title
	}
	if req.Description != "" {
		w.Description = req.Description
	}
	if req.ScheduledAt != nil {
		w.ScheduledAt = *req.ScheduledAt
	}
	if req.DurationMinutes != nil {
		w.DurationMinutes = *req.DurationMinutes
	}
	if req.MaxParticipants != nil {
		w.MaxParticipants = *req.MaxParticipants
	}

	if err := ctl.store.UpdateWebinar(c.Request.Context(), w); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to update webinar", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Webinar updated successfully", toSDKWebinar(w)).AsGinResponse())
}

// UpdateStatus handles PATCH requests to transition a webinar's status
func (ctl *Controller) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req sdk.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
		return
	}

	status := store.Status(req.Status)
	switch status {
	case store.StatusUpcoming, store.StatusLive, store.StatusCompleted, store.StatusCancelled:
	default:
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Unknown status", nil).AsGinResponse())
		return
	}

	if err := ctl.store.UpdateWebinarStatus(c.Request.Context(), id, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Webinar not found", err).AsGinResponse())
			return
		}
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to update status", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccess("Status updated successfully").AsGinResponse())
}

// Register handles POST requests to register an attendee
func (ctl *Controller) Register(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req sdk.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
		return
	}

	if err := ctl.store.RegisterAttendee(c.Request.Context(), id, req.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Webinar not found", err).AsGinResponse())
			return
		}
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to register attendee", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccess("Registered successfully").AsGinResponse())
}

// Notify handles POST requests to notify registered attendees.
// Mail delivery is delegated to an external service; this reports the
// audience size.
func (ctl *Controller) Notify(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if _, err := ctl.store.GetWebinar(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Webinar not found", err).AsGinResponse())
			return
		}
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to get webinar", err).AsGinResponse())
		return
	}

	regs, err := ctl.store.ListRegistrations(c.Request.Context(), id)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to list registrations", err).AsGinResponse())
		return
	}

	resp := sdk.NotifyResponse{
		Message: "Notifications sent",
		Count:   len(regs),
	}
	c.JSON(sdk.NewSuccessResponse("Notifications sent", resp).AsGinResponse())
}

// Token handles POST requests to mint a video room access token
func (ctl *Controller) Token(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if ctl.minter == nil {
		c.JSON(sdk.NewErrorResponse(http.StatusServiceUnavailable, "Video credentials not configured", nil).AsGinResponse())
		return
	}

	var req sdk.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
		return
	}

	w, err := ctl.store.GetWebinar(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Webinar not found", err).AsGinResponse())
			return
		}
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to get webinar", err).AsGinResponse())
		return
	}

	token, err := ctl.minter.Mint(livekit.GrantOptions{
		Room:         w.RoomName,
		Identity:     req.Identity,
		Name:         req.Name,
		CanPublish:   req.CanPublish,
		CanSubscribe: req.CanSubscribe,
	})
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to mint token", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Token minted successfully", sdk.TokenResponse{Token: token}).AsGinResponse())
}

// PostChat handles POST requests to add a chat message
func (ctl *Controller) PostChat(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req sdk.PostChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
		return
	}

	if _, err := ctl.store.GetWebinar(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Webinar not found", err).AsGinResponse())
			return
		}
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to get webinar", err).AsGinResponse())
		return
	}

	msg := &store.ChatMessage{
		WebinarID: id,
		UserID:    req.UserID,
		Text:      req.Text,
	}
	if err := ctl.store.InsertChatMessage(c.Request.Context(), msg); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to store chat message", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Message stored successfully", toSDKChatMessage(msg)).AsGinResponse())
}

// ListChat handles GET requests to list chat messages in order
func (ctl *Controller) ListChat(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	messages, err := ctl.store.AllChatMessages(c.Request.Context(), id)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to list chat messages", err).AsGinResponse())
		return
	}

	out := make([]sdk.ChatMessage, 0, len(messages))
	for i := range messages {
		out = append(out, toSDKChatMessage(&messages[i]))
	}

	c.JSON(sdk.NewSuccessResponse("Chat retrieved successfully", out).AsGinResponse())
}

// parseID reads and validates the :id path parameter
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Invalid webinar id", err).AsGinResponse())
		return uuid.Nil, false
	}
	return id, true
}

// Helper method to convert internal webinar to sdk webinar
func toSDKWebinar(w *store.Webinar) sdk.Webinar {
	return sdk.Webinar{
		ID:              w.ID.String(),
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
		HostID:          w.HostID,
		Title:           w.Title,
		Description:     w.Description,
		ScheduledAt:     w.ScheduledAt,
		DurationMinutes: w.DurationMinutes,
		Status:          string(w.Status),
		RoomName:        w.RoomName,
		MaxParticipants: w.MaxParticipants,
	}
}

// Helper method to convert internal chat message to sdk chat message
func toSDKChatMessage(m *store.ChatMessage) sdk.ChatMessage {
	return sdk.ChatMessage{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		WebinarID: m.WebinarID.String(),
		UserID:    m.UserID,
		Text:      m.Text,
	}
}
