package webinar

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a webinar
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// SummaryKind distinguishes mid-event summaries from the final one
type SummaryKind string

const (
	SummaryRealtime SummaryKind = "realtime"
	SummaryFinal    SummaryKind = "final"
)

// Webinar is the aggregation root: transcripts, chat, Q&A, and summaries
// all reference its immutable ID
type Webinar struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	HostID          string    `gorm:"index" json:"host_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          Status    `gorm:"index" json:"status"`
	RoomName        string    `json:"room_name"`
	MaxParticipants int       `json:"max_participants"`
}

// Registration records that a user signed up to attend a webinar
type Registration struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	WebinarID uuid.UUID `gorm:"type:char(36);index" json:"webinar_id"`
	UserID    string    `json:"user_id"`
}

// TranscriptFragment is one piece of speech-to-text output.
// Fragments are append-only and ordered by Timestamp.
type TranscriptFragment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	WebinarID uuid.UUID `gorm:"type:char(36);index" json:"webinar_id"`
	Text      string    `gorm:"type:text" json:"text"`
	Speaker   string    `json:"speaker"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
}

// ChatMessage is one attendee chat line, append-only, ordered by CreatedAt
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	WebinarID uuid.UUID `gorm:"type:char(36);index" json:"webinar_id"`
	UserID    string    `json:"user_id"`
	Text      string    `gorm:"type:text" json:"text"`
}

// QAEntry is an attendee question. It is created with only the question set
// and mutated exactly once when the answer arrives.
type QAEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	WebinarID  uuid.UUID  `gorm:"type:char(36);index" json:"webinar_id"`
	UserID     string     `json:"user_id"`
	Question   string     `gorm:"type:text" json:"question"`
	Answer     *string    `gorm:"type:text" json:"answer"`
	AnsweredAt *time.Time `json:"answered_at"`
}

// StringList is a JSON-serialized ordered list column
type StringList []string

// SummaryRecord is one generated summary. Multiple records per webinar are
// allowed; the latest CreatedAt with kind=final is "the final summary".
type SummaryRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	WebinarID  uuid.UUID   `gorm:"type:char(36);index" json:"webinar_id"`
	Kind       SummaryKind `gorm:"index" json:"kind"`
	Summary    string      `gorm:"type:text" json:"summary"`
	KeyPoints  StringList  `gorm:"serializer:json" json:"key_points"`
	Topics     StringList  `gorm:"serializer:json" json:"topics"`
	Keywords   StringList  `gorm:"serializer:json" json:"keywords"`
	Highlights StringList  `gorm:"serializer:json" json:"highlights"`
}
