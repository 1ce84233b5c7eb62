// Package insight assembles live webinar events into bounded context blocks
// and turns them into answers and summaries via the generation service.
package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/godwincybertechsolutions-cmyk/webinar/internal/stores/webinar"
)

// Mode selects how much history goes into a context block
type Mode string

const (
	// ModeQA takes a bounded window of recent events
	ModeQA Mode = "qa"
	// ModeSummary takes the full session history plus answered Q&A
	ModeSummary Mode = "summary"
)

// Window sizes for ModeQA. The fetch is most-recent-first; presentation
// order is chronological.
const (
	qaTranscriptWindow = 20
	qaChatWindow       = 10
)

// ContextBlock is the assembled text fed to the generation step, together
// with the webinar metadata it was built from
type ContextBlock struct {
	WebinarID   uuid.UUID
	Title       string
	Description string
	Text        string
}

// ContextBuilder assembles context blocks from the event store.
// It is read-only and holds no state between calls.
type ContextBuilder struct {
	store webinar.Store
}

// NewContextBuilder creates a builder over the given store
func NewContextBuilder(store webinar.Store) *ContextBuilder {
	return &ContextBuilder{store: store}
}

// Build assembles the context block for a webinar in the given mode.
// Sections for empty categories are present but empty; only an unreachable
// store or an unknown webinar is an error.
func (b *ContextBuilder) Build(ctx context.Context, webinarID uuid.UUID, mode Mode) (*ContextBlock, error) {
	w, err := b.store.GetWebinar(ctx, webinarID)
	if err != nil {
		return nil, storeErr("build context", err)
	}

	switch mode {
	case ModeQA:
		return b.buildQA(ctx, w)
	case ModeSummary:
		return b.buildSummary(ctx, w)
	default:
		return nil, fmt.Errorf("build context: unknown mode %q: %w", mode, ErrInvalidInput)
	}
}

// buildQA assembles the bounded recent-events block
func (b *ContextBuilder) buildQA(ctx context.Context, w *webinar.Webinar) (*ContextBlock, error) {
	fragments, err := b.store.RecentTranscripts(ctx, w.ID, qaTranscriptWindow)
	if err != nil {
		return nil, storeErr("build context", err)
	}
	messages, err := b.store.RecentChatMessages(ctx, w.ID, qaChatWindow)
	if err != nil {
		return nil, storeErr("build context", err)
	}

	// Fetched newest-first; present chronologically
	reverse(fragments)
	reverse(messages)

	var sb strings.Builder
	writeHeader(&sb, w)

	sb.WriteString("Recent Transcripts:\n")
	for _, f := range fragments {
		sb.WriteString(f.Text)
		sb.WriteString("\n")
	}

	sb.WriteString("\nRecent Chat Messages:\n")
	for _, m := range messages {
		sb.WriteString(m.Text)
		sb.WriteString("\n")
	}

	return &ContextBlock{
		WebinarID:   w.ID,
		Title:       w.Title,
		Description: w.Description,
		Text:        sb.String(),
	}, nil
}

// buildSummary assembles the full-session block including answered Q&A
func (b *ContextBuilder) buildSummary(ctx context.Context, w *webinar.Webinar) (*ContextBlock, error) {
	fragments, err := b.store.AllTranscripts(ctx, w.ID)
	if err != nil {
		return nil, storeErr("build context", err)
	}
	messages, err := b.store.AllChatMessages(ctx, w.ID)
	if err != nil {
		return nil, storeErr("build context", err)
	}
	answered, err := b.store.AnsweredQuestions(ctx, w.ID)
	if err != nil {
		return nil, storeErr("build context", err)
	}

	var sb strings.Builder
	writeHeader(&sb, w)

	sb.WriteString("Full Transcript:\n")
	for _, f := range fragments {
		sb.WriteString(f.Text)
		sb.WriteString("\n")
	}

	sb.WriteString("\nChat Messages:\n")
	for _, m := range messages {
		sb.WriteString(m.Text)
		sb.WriteString("\n")
	}

	sb.WriteString("\nQ&A Session:\n")
	for _, q := range answered {
		fmt.Fprintf(&sb, "Q: %s\nA: %s\n\n", q.Question, *q.Answer)
	}

	return &ContextBlock{
		WebinarID:   w.ID,
		Title:       w.Title,
		Description: w.Description,
		Text:        sb.String(),
	}, nil
}

// writeHeader writes the metadata section shared by both modes
func writeHeader(sb *strings.Builder, w *webinar.Webinar) {
	title := w.Title
	if title == "" {
		title = "Unknown"
	}
	fmt.Fprintf(sb, "Webinar Title: %s\n", title)
	fmt.Fprintf(sb, "Webinar Description: %s\n\n", w.Description)
}

// Helper method to reverse slices
func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
