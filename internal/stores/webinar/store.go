package webinar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a referenced record does not exist.
// Both store implementations return it so callers can use errors.Is.
var ErrNotFound = errors.New("record not found")

// Store interface defines methods for webinar persistence
type Store interface {
	CreateWebinar(ctx context.Context, w *Webinar) error
	GetWebinar(ctx context.Context, id uuid.UUID) (*Webinar, error)
	ListWebinars(ctx context.Context) ([]Webinar, error)
	ListWebinarsByStatus(ctx context.Context, status Status) ([]Webinar, error)
	UpdateWebinar(ctx context.Context, w *Webinar) error
	UpdateWebinarStatus(ctx context.Context, id uuid.UUID, status Status) error

	RegisterAttendee(ctx context.Context, webinarID uuid.UUID, userID string) error
	ListRegistrations(ctx context.Context, webinarID uuid.UUID) ([]Registration, error)

	InsertTranscript(ctx context.Context, f *TranscriptFragment) error
	RecentTranscripts(ctx context.Context, webinarID uuid.UUID, limit int) ([]TranscriptFragment, error)
	AllTranscripts(ctx context.Context, webinarID uuid.UUID) ([]TranscriptFragment, error)

	InsertChatMessage(ctx context.Context, m *ChatMessage) error
	RecentChatMessages(ctx context.Context, webinarID uuid.UUID, limit int) ([]ChatMessage, error)
	AllChatMessages(ctx context.Context, webinarID uuid.UUID) ([]ChatMessage, error)

	InsertQuestion(ctx context.Context, q *QAEntry) error
	AnswerQuestion(ctx context.Context, id uint, answer string, answeredAt time.Time) error
	AnsweredQuestions(ctx context.Context, webinarID uuid.UUID) ([]QAEntry, error)

	InsertSummary(ctx context.Context, r *SummaryRecord) error
	LatestSummary(ctx context.Context, webinarID uuid.UUID, kind SummaryKind) (*SummaryRecord, error)
}

// MySqlStore handles webinar persistence using GORM
type MySqlStore struct {
	db *gorm.DB
}

// NewMySqlStore creates a new webinar store with GORM connection
func NewMySqlStore(databaseURL string) (*MySqlStore, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &MySqlStore{db: db}

	// Auto-migrate tables
	if err := db.AutoMigrate(
		&Webinar{},
		&Registration{},
		&TranscriptFragment{},
		&ChatMessage{},
		&QAEntry{},
		&SummaryRecord{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	return store, nil
}

// CreateWebinar inserts a new webinar, generating an ID if unset
func (s *MySqlStore) CreateWebinar(ctx context.Context, w *Webinar) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if w.Status == "" {
		w.Status = StatusUpcoming
	}

	if err := s.db.WithContext(ctx).Create(w).Error; err != nil {
		return fmt.Errorf("failed to create webinar: %w", err)
	}
	return nil
}

// GetWebinar retrieves a webinar by ID
func (s *MySqlStore) GetWebinar(ctx context.Context, id uuid.UUID) (*Webinar, error) {
	var w Webinar
	err := s.db.WithContext(ctx).First(&w, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("webinar %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get webinar: %w", err)
	}
	return &w, nil
}

// ListWebinars retrieves all webinars, newest scheduled first
func (s *MySqlStore) ListWebinars(ctx context.Context) ([]Webinar, error) {
	var webinars []Webinar
	err := s.db.WithContext(ctx).Order("scheduled_at DESC").Find(&webinars).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list webinars: %w", err)
	}
	return webinars, nil
}

// ListWebinarsByStatus retrieves all webinars with the given status
func (s *MySqlStore) ListWebinarsByStatus(ctx context.Context, status Status) ([]Webinar, error) {
	var webinars []Webinar
	err := s.db.WithContext(ctx).Where("status = ?", status).Order("scheduled_at ASC").Find(&webinars).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list webinars by status: %w", err)
	}
	return webinars, nil
}

// UpdateWebinar saves changed webinar fields
func (s *MySqlStore) UpdateWebinar(ctx context.Context, w *Webinar) error {
	if err := s.db.WithContext(ctx).Save(w).Error; err != nil {
		return fmt.Errorf("failed to update webinar: %w", err)
	}
	return nil
}

// UpdateWebinarStatus transitions a webinar to a new status
func (s *MySqlStore) UpdateWebinarStatus(ctx context.Context, id uuid.UUID, status Status) error {
	res := s.db.WithContext(ctx).Model(&Webinar{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update webinar status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("webinar %s: %w", id, ErrNotFound)
	}
	return nil
}

// RegisterAttendee records a registration for a webinar
func (s *MySqlStore) RegisterAttendee(ctx context.Context, webinarID uuid.UUID, userID string) error {
	reg := Registration{WebinarID: webinarID, UserID: userID}
	if err := s.db.WithContext(ctx).Create(&reg).Error; err != nil {
		return fmt.Errorf("failed to register attendee: %w", err)
	}
	return nil
}

// ListRegistrations retrieves all registrations for a webinar
func (s *MySqlStore) ListRegistrations(ctx context.Context, webinarID uuid.UUID) ([]Registration, error) {
	var regs []Registration
	err := s.db.WithContext(ctx).Where("webinar_id = ?", webinarID).Find(&regs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return regs, nil
}

// InsertTranscript appends a transcript fragment
func (s *MySqlStore) InsertTranscript(ctx context.Context, f *TranscriptFragment) error {
	if f.Timestamp.IsZero() {
		f.Timestamp = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(f).Error; err != nil {
		return fmt.Errorf("failed to insert transcript: %w", err)
	}
	return nil
}

// RecentTranscripts retrieves up to limit fragments, most recent first
func (s *MySqlStore) RecentTranscripts(ctx context.Context, webinarID uuid.UUID, limit int) ([]TranscriptFragment, error) {
	var fragments []TranscriptFragment
	err := s.db.WithContext(ctx).Where("webinar_id = ?", webinarID).
		Order("timestamp DESC").Order("id DESC").Limit(limit).Find(&fragments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query transcripts: %w", err)
	}
	return fragments, nil
}

// AllTranscripts retrieves every fragment in chronological order
func (s *MySqlStore) AllTranscripts(ctx context.Context, webinarID uuid.UUID) ([]TranscriptFragment, error) {
	var fragments []TranscriptFragment
	err := s.db.WithContext(ctx).Where("webinar_id = ?", webinarID).
		Order("timestamp ASC").Order("id ASC").Find(&fragments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query transcripts: %w", err)
	}
	return fragments, nil
}

// InsertChatMessage appends a chat message
func (s *MySqlStore) InsertChatMessage(ctx context.Context, m *ChatMessage) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to insert chat message: %w", err)
	}
	return nil
}

// RecentChatMessages retrieves up to limit messages, most recent first
func (s *MySqlStore) RecentChatMessages(ctx context.Context, webinarID uuid.UUID, limit int) ([]ChatMessage, error) {
	var messages []ChatMessage
	err := s.db.WithContext(ctx).Where("webinar_id = ?", webinarID).
		Order("created_at DESC").Order("id DESC").Limit(limit).Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query chat messages: %w", err)
	}
	return messages, nil
}

// AllChatMessages retrieves every message in chronological order
func (s *MySqlStore) AllChatMessages(ctx context.Context, webinarID uuid.UUID) ([]ChatMessage, error) {
	var messages []ChatMessage
	err := s.db.WithContext(ctx).Where("webinar_id = ?", webinarID).
		Order("created_at ASC").Order("id ASC").Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query chat messages: %w", err)
	}
	return messages, nil
}

// InsertQuestion appends a Q&A entry with only the question set
func (s *MySqlStore) InsertQuestion(ctx context.Context, q *QAEntry) error {
	if err := s.db.WithContext(ctx).Create(q).Error; err != nil {
		return fmt.Errorf("failed to insert question: %w", err)
	}
	return nil
}

// AnswerQuestion sets the answer and answered-at on an existing entry
func (s *MySqlStore) AnswerQuestion(ctx context.Context, id uint, answer string, answeredAt time.Time) error {
	res := s.db.WithContext(ctx).Model(&QAEntry{}).Where("id = ?", id).
		Updates(map[string]any{"answer": answer, "answered_at": answeredAt})
	if res.Error != nil {
		return fmt.Errorf("failed to answer question: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("question %d: %w", id, ErrNotFound)
	}
	return nil
}

// AnsweredQuestions retrieves all answered entries in chronological order
func (s *MySqlStore) AnsweredQuestions(ctx context.Context, webinarID uuid.UUID) ([]QAEntry, error) {
	var entries []QAEntry
	err := s.db.WithContext(ctx).Where("webinar_id = ? AND answer IS NOT NULL", webinarID).
		Order("created_at ASC").Order("id ASC").Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query answered questions: %w", err)
	}
	return entries, nil
}

// InsertSummary appends a summary record. Always an insert, never an upsert.
func (s *MySqlStore) InsertSummary(ctx context.Context, r *SummaryRecord) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("failed to insert summary: %w", err)
	}
	return nil
}

// LatestSummary retrieves the most recently created summary of the given kind
func (s *MySqlStore) LatestSummary(ctx context.Context, webinarID uuid.UUID, kind SummaryKind) (*SummaryRecord, error) {
	var record SummaryRecord
	err := s.db.WithContext(ctx).Where("webinar_id = ? AND kind = ?", webinarID, kind).
		Order("created_at DESC").Order("id DESC").First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("summary for webinar %s: %w", webinarID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query latest summary: %w", err)
	}
	return &record, nil
}

// GetDB returns the underlying GORM database connection
func (s *MySqlStore) GetDB() *gorm.DB {
	return s.db
}

// Close closes the database connection
func (s *MySqlStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return sqlDB.Close()
}
