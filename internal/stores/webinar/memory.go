package webinar

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore is a map-backed Store for tests and one-off operations
type InMemoryStore struct {
	mu sync.RWMutex

	webinars      map[uuid.UUID]*Webinar
	registrations map[uuid.UUID][]Registration
	transcripts   map[uuid.UUID][]TranscriptFragment
	chat          map[uuid.UUID][]ChatMessage
	questions     map[uuid.UUID][]QAEntry
	summaries     map[uuid.UUID][]SummaryRecord

	nextID uint
}

// NewInMemoryStore creates a new in-memory webinar store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		webinars:      make(map[uuid.UUID]*Webinar),
		registrations: make(map[uuid.UUID][]Registration),
		transcripts:   make(map[uuid.UUID][]TranscriptFragment),
		chat:          make(map[uuid.UUID][]ChatMessage),
		questions:     make(map[uuid.UUID][]QAEntry),
		summaries:     make(map[uuid.UUID][]SummaryRecord),
	}
}

// allocID hands out sequential row IDs. Caller must hold the lock.
func (s *InMemoryStore) allocID() uint {
	s.nextID++
	return s.nextID
}

// CreateWebinar inserts a new webinar, generating an ID if unset
func (s *InMemoryStore) CreateWebinar(ctx context.Context, w *Webinar) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if w.Status == "" {
		w.Status = StatusUpcoming
	}
	now := time.Now().UTC()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	w.UpdatedAt = now

	copied := *w
	s.webinars[w.ID] = &copied
	return nil
}

// GetWebinar retrieves a webinar by ID
func (s *InMemoryStore) GetWebinar(ctx context.Context, id uuid.UUID) (*Webinar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, exists := s.webinars[id]
	if !exists {
		return nil, fmt.Errorf("webinar %s: %w", id, ErrNotFound)
	}

	copied := *w
	return &copied, nil
}

// ListWebinars retrieves all webinars, newest scheduled first
func (s *InMemoryStore) ListWebinars(ctx context.Context) ([]Webinar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	webinars := make([]Webinar, 0, len(s.webinars))
	for _, w := range s.webinars {
		webinars = append(webinars, *w)
	}
	sort.Slice(webinars, func(i, j int) bool {
		return webinars[i].ScheduledAt.After(webinars[j].ScheduledAt)
	})
	return webinars, nil
}

// ListWebinarsByStatus retrieves all webinars with the given status
func (s *InMemoryStore) ListWebinarsByStatus(ctx context.Context, status Status) ([]Webinar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var webinars []Webinar
	for _, w := range s.webinars {
		if w.Status == status {
			webinars = append(webinars, *w)
		}
	}
	sort.Slice(webinars, func(i, j int) bool {
		return webinars[i].ScheduledAt.Before(webinars[j].ScheduledAt)
	})
	return webinars, nil
}

// UpdateWebinar saves changed webinar fields
func (s *InMemoryStore) UpdateWebinar(ctx context.Context, w *Webinar) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.webinars[w.ID]; !exists {
		return fmt.Errorf("webinar %s: %w", w.ID, ErrNotFound)
	}

	w.UpdatedAt = time.Now().UTC()
	copied := *w
	s.webinars[w.ID] = &copied
	return nil
}

// UpdateWebinarStatus transitions a webinar to a new status
func (s *InMemoryStore) UpdateWebinarStatus(ctx context.Context, id uuid.UUID, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, exists := s.webinars[id]
	if !exists {
		return fmt.Errorf("webinar %s: %w", id, ErrNotFound)
	}

	w.Status = status
	w.UpdatedAt = time.Now().UTC()
	return nil
}

// RegisterAttendee records a registration for a webinar
func (s *InMemoryStore) RegisterAttendee(ctx context.Context, webinarID uuid.UUID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.webinars[webinarID]; !exists {
		return fmt.Errorf("webinar %s: %w", webinarID, ErrNotFound)
	}

	reg := Registration{
		ID:        s.allocID(),
		CreatedAt: time.Now().UTC(),
		WebinarID: webinarID,
		UserID:    userID,
	}
	s.registrations[webinarID] = append(s.registrations[webinarID], reg)
	return nil
}

// ListRegistrations retrieves all registrations for a webinar
func (s *InMemoryStore) ListRegistrations(ctx context.Context, webinarID uuid.UUID) ([]Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	regs := s.registrations[webinarID]
	result := make([]Registration, len(regs))
	copy(result, regs)
	return result, nil
}

// InsertTranscript appends a transcript fragment
func (s *InMemoryStore) InsertTranscript(ctx context.Context, f *TranscriptFragment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.Timestamp.IsZero() {
		f.Timestamp = time.Now().UTC()
	}
	f.ID = s.allocID()
	s.transcripts[f.WebinarID] = append(s.transcripts[f.WebinarID], *f)
	return nil
}

// RecentTranscripts retrieves up to limit fragments, most recent first
func (s *InMemoryStore) RecentTranscripts(ctx context.Context, webinarID uuid.UUID, limit int) ([]TranscriptFragment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fragments := make([]TranscriptFragment, len(s.transcripts[webinarID]))
	copy(fragments, s.transcripts[webinarID])

	sort.Slice(fragments, func(i, j int) bool {
		if fragments[i].Timestamp.Equal(fragments[j].Timestamp) {
			return fragments[i].ID > fragments[j].ID
		}
		return fragments[i].Timestamp.After(fragments[j].Timestamp)
	})
	if len(fragments) > limit {
		fragments = fragments[:limit]
	}
	return fragments, nil
}

// AllTranscripts retrieves every fragment in chronological order
func (s *InMemoryStore) AllTranscripts(ctx context.Context, webinarID uuid.UUID) ([]TranscriptFragment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fragments := make([]TranscriptFragment, len(s.transcripts[webinarID]))
	copy(fragments, s.transcripts[webinarID])

	sort.Slice(fragments, func(i, j int) bool {
		if fragments[i].Timestamp.Equal(fragments[j].Timestamp) {
			return fragments[i].ID < fragments[j].ID
		}
		return fragments[i].Timestamp.Before(fragments[j].Timestamp)
	})
	return fragments, nil
}

// InsertChatMessage appends a chat message
func (s *InMemoryStore) InsertChatMessage(ctx context.Context, m *ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	m.ID = s.allocID()
	s.chat[m.WebinarID] = append(s.chat[m.WebinarID], *m)
	return nil
}

// RecentChatMessages retrieves up to limit messages, most recent first
func (s *InMemoryStore) RecentChatMessages(ctx context.Context, webinarID uuid.UUID, limit int) ([]ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := make([]ChatMessage, len(s.chat[webinarID]))
	copy(messages, s.chat[webinarID])

	sort.Slice(messages, func(i, j int) bool {
		if messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].ID > messages[j].ID
		}
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})
	if len(messages) > limit {
		messages = messages[:limit]
	}
	return messages, nil
}

// AllChatMessages retrieves every message in chronological order
func (s *InMemoryStore) AllChatMessages(ctx context.Context, webinarID uuid.UUID) ([]ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := make([]ChatMessage, len(s.chat[webinarID]))
	copy(messages, s.chat[webinarID])

	sort.Slice(messages, func(i, j int) bool {
		if messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].ID < messages[j].ID
		}
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

// InsertQuestion appends a Q&A entry with only the question set
func (s *InMemoryStore) InsertQuestion(ctx context.Context, q *QAEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
	q.ID = s.allocID()
	s.questions[q.WebinarID] = append(s.questions[q.WebinarID], *q)
	return nil
}

// AnswerQuestion sets the answer and answered-at on an existing entry
func (s *InMemoryStore) AnswerQuestion(ctx context.Context, id uint, answer string, answeredAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for webinarID, entries := range s.questions {
		for i := range entries {
			if entries[i].ID == id {
				entries[i].Answer = &answer
				entries[i].AnsweredAt = &answeredAt
				s.questions[webinarID] = entries
				return nil
			}
		}
	}
	return fmt.Errorf("question %d: %w", id, ErrNotFound)
}

// AnsweredQuestions retrieves all answered entries in chronological order
func (s *InMemoryStore) AnsweredQuestions(ctx context.Context, webinarID uuid.UUID) ([]QAEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []QAEntry
	for _, q := range s.questions[webinarID] {
		if q.Answer != nil {
			entries = append(entries, q)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return entries, nil
}

// InsertSummary appends a summary record
func (s *InMemoryStore) InsertSummary(ctx context.Context, r *SummaryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	r.ID = s.allocID()
	s.summaries[r.WebinarID] = append(s.summaries[r.WebinarID], *r)
	return nil
}

// LatestSummary retrieves the most recently created summary of the given kind
func (s *InMemoryStore) LatestSummary(ctx context.Context, webinarID uuid.UUID, kind SummaryKind) (*SummaryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *SummaryRecord
	for i := range s.summaries[webinarID] {
		r := s.summaries[webinarID][i]
		if r.Kind != kind {
			continue
		}
		if latest == nil ||
			r.CreatedAt.After(latest.CreatedAt) ||
			(r.CreatedAt.Equal(latest.CreatedAt) && r.ID > latest.ID) {
			copied := r
			latest = &copied
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("summary for webinar %s: %w", webinarID, ErrNotFound)
	}
	return latest, nil
}
