package insight

import (
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/godwincybertechsolutions-cmyk/webinar/internal/insight"
	store "github.com/godwincybertechsolutions-cmyk/webinar/internal/stores/webinar"
	"github.com/godwincybertechsolutions-cmyk/webinar/internal/transcribe"
	"github.com/godwincybertechsolutions-cmyk/webinar/pkg/sdk"
)

// Controller exposes the AI endpoints: answer, summarize, transcribe, and
// the final-summary gateway
type Controller struct {
	store       store.Store
	answerer    *insight.Answerer
	summarizer  *insight.Summarizer
	gateway     *insight.SummaryGateway
	transcriber *transcribe.Transcriber
}

// NewController creates an insight controller
func NewController(
	s store.Store,
	answerer *insight.Answerer,
	summarizer *insight.Summarizer,
	gateway *insight.SummaryGateway,
	transcriber *transcribe.Transcriber,
) *Controller {
	return &Controller{
		store:       s,
		answerer:    answerer,
		summarizer:  summarizer,
		gateway:     gateway,
		transcriber: transcriber,
	}
}

// Answer handles POST requests to answer a question from live context.
// The question is stored first, then answered, then the entry is updated
// with the generated answer.
func (ctl *Controller) Answer(c *gin.Context) {
	var req sdk.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
		return
	}

	webinarID, err := uuid.Parse(req.WebinarID)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Invalid webinar id", err).AsGinResponse())
		return
	}

	entry := &store.QAEntry{
		WebinarID: webinarID,
		UserID:    req.UserID,
		Question:  req.Question,
	}
	if err := ctl.store.InsertQuestion(c.Request.Context(), entry); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to store question", err).AsGinResponse())
		return
	}

	answer, err := ctl.answerer.AnswerQuestion(c.Request.Context(), webinarID, req.Question)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(statusFor(err), "Failed to answer question", err).AsGinResponse())
		return
	}

	// The entry was created with question only; this is its single mutation
	if err := ctl.store.AnswerQuestion(c.Request.Context(), entry.ID, answer, time.Now().UTC()); err != nil {
		log.Printf("[API]: failed to record answer for question %d: %v", entry.ID, err)
	}

	resp := sdk.AnswerResponse{
		Answer:     answer,
		QuestionID: entry.ID,
	}
	c.JSON(sdk.NewSuccessResponse("Question answered successfully", resp).AsGinResponse())
}

// Summarize handles POST requests to generate a summary
func (ctl *Controller) Summarize(c *gin.Context) {
	var req sdk.SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
		return
	}

	webinarID, err := uuid.Parse(req.WebinarID)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Invalid webinar id", err).AsGinResponse())
		return
	}

	kind := store.SummaryKind(req.Kind)
	if kind == "" {
		kind = store.SummaryFinal
	}
	if kind != store.SummaryRealtime && kind != store.SummaryFinal {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Unknown summary kind", nil).AsGinResponse())
		return
	}

	record, _, err := ctl.summarizer.GenerateSummary(c.Request.Context(), webinarID, kind)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(statusFor(err), "Failed to generate summary", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Summary generated successfully", toSDKSummary(record)).AsGinResponse())
}

// FinalSummary handles GET requests for the final summary, generating one
// inline when none has been stored yet
func (ctl *Controller) FinalSummary(c *gin.Context) {
	webinarID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Invalid webinar id", err).AsGinResponse())
		return
	}

	record, err := ctl.gateway.FinalSummary(c.Request.Context(), webinarID)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(statusFor(err), "Failed to get final summary", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Summary retrieved successfully", toSDKSummary(record)).AsGinResponse())
}

// Transcribe handles POST requests with a multipart audio chunk
func (ctl *Controller) Transcribe(c *gin.Context) {
	webinarID, err := uuid.Parse(c.PostForm("webinar_id"))
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Invalid webinar id", err).AsGinResponse())
		return
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "No audio file provided", err).AsGinResponse())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not read audio file", err).AsGinResponse())
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not read audio file", err).AsGinResponse())
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "audio/mpeg"
	}

	text, err := ctl.transcriber.Transcribe(c.Request.Context(), webinarID, audio, mimeType)
	if err != nil {
		if errors.Is(err, transcribe.ErrNoAudio) {
			c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "No audio file provided", err).AsGinResponse())
			return
		}
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Webinar not found", err).AsGinResponse())
			return
		}
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to transcribe audio", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Audio transcribed successfully", sdk.TranscribeResponse{Text: text}).AsGinResponse())
}

// statusFor maps the insight error taxonomy onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, insight.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, insight.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, insight.ErrDependencyUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, insight.ErrGenerationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Helper method to convert internal summary record to sdk summary
func toSDKSummary(r *store.SummaryRecord) sdk.Summary {
	return sdk.Summary{
		ID:         r.ID,
		CreatedAt:  r.CreatedAt,
		WebinarID:  r.WebinarID.String(),
		Kind:       string(r.Kind),
		Summary:    r.Summary,
		KeyPoints:  r.KeyPoints,
		Topics:     r.Topics,
		Keywords:   r.Keywords,
		Highlights: r.Highlights,
	}
}
