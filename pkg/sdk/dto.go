package sdk

import (
	"encoding/json"
	"time"
)

// StatusType marks an API response as success or error
type StatusType string

const (
	StatusSuccess StatusType = "success"
	StatusError   StatusType = "error"
)

// ApiResponse represents a standard API response structure
type ApiResponse[T any] struct {
	Status  StatusType `json:"status"`          // Status message
	Code    int        `json:"code"`            // Status code
	Message string     `json:"message"`         // Human-readable message
	Data    T          `json:"data,omitempty"`  // Optional data field for successful responses
	Error   any        `json:"error,omitempty"` // Optional errors field for error responses
}

// AsGinResponse converts the ApiResponse to a format suitable for Gin framework
func (r ApiResponse[T]) AsGinResponse() (int, any) {
	return r.Code, r
}

// AsJSON converts the ApiResponse to a format suitable for JSON responses
func (r ApiResponse[T]) AsJSON() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func NewSuccess(message string) ApiResponse[any] {
	return ApiResponse[any]{
		Status:  StatusSuccess,
		Code:    200,
		Message: message,
	}
}

func NewSuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Status:  StatusSuccess,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(code int, message string, err any) ApiResponse[any] {
	resp := ApiResponse[any]{
		Status:  StatusError,
		Code:    code,
		Message: message,
	}
	// error values don't marshal; send their text
	if e, ok := err.(error); ok {
		resp.Error = e.Error()
	} else {
		resp.Error = err
	}
	return resp
}

/** Webinar DTOs */

// Webinar represents one scheduled webinar
type Webinar struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	HostID          string    `json:"host_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	RoomName        string    `json:"room_name"`
	MaxParticipants int       `json:"max_participants"`
}

// CreateWebinarRequest represents the request body for scheduling a webinar
type CreateWebinarRequest struct {
	HostID          string    `json:"host_id" binding:"required"`
	Title           string    `json:"title" binding:"required"`
	Description     string    `json:"description"`
	ScheduledAt     time.Time `json:"scheduled_at" binding:"required"`
	DurationMinutes int       `json:"duration_minutes"`
	RoomName        string    `json:"room_name"`
	MaxParticipants int       `json:"max_participants"`
}

// UpdateWebinarRequest represents the request body for editing a webinar
type UpdateWebinarRequest struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
	DurationMinutes *int       `json:"duration_minutes"`
	MaxParticipants *int       `json:"max_participants"`
}

// UpdateStatusRequest transitions a webinar's lifecycle state
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// RegisterRequest signs a user up for a webinar
type RegisterRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// NotifyResponse reports how many registered attendees were notified
type NotifyResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// TokenRequest asks for a video room access token
type TokenRequest struct {
	Identity     string `json:"identity" binding:"required"`
	Name         string `json:"name"`
	CanPublish   bool   `json:"can_publish"`
	CanSubscribe bool   `json:"can_subscribe"`
}

// TokenResponse carries the signed room token
type TokenResponse struct {
	Token string `json:"token"`
}

// PostChatRequest adds a chat message to a live webinar
type PostChatRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

// ChatMessage represents one attendee chat line
type ChatMessage struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	WebinarID string    `json:"webinar_id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
}

/** AI DTOs */

// AnswerRequest asks a question against the live webinar context
type AnswerRequest struct {
	WebinarID string `json:"webinar_id" binding:"required"`
	UserID    string `json:"user_id"`
	Question  string `json:"question" binding:"required"`
}

// AnswerResponse carries the generated answer and the stored Q&A entry id
type AnswerResponse struct {
	Answer     string `json:"answer"`
	QuestionID uint   `json:"question_id"`
}

// SummarizeRequest triggers summary generation for a webinar
type SummarizeRequest struct {
	WebinarID string `json:"webinar_id" binding:"required"`
	Kind      string `json:"kind"`
}

// Summary represents one generated summary record
type Summary struct {
	ID         uint      `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	WebinarID  string    `json:"webinar_id"`
	Kind       string    `json:"kind"`
	Summary    string    `json:"summary"`
	KeyPoints  []string  `json:"key_points"`
	Topics     []string  `json:"topics"`
	Keywords   []string  `json:"keywords"`
	Highlights []string  `json:"highlights"`
}

// TranscribeResponse carries the transcribed text
type TranscribeResponse struct {
	Text string `json:"text"`
}
