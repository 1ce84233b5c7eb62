package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/godwincybertechsolutions-cmyk/webinar/internal/genai"
	"github.com/godwincybertechsolutions-cmyk/webinar/internal/stores/webinar"
)

// defaultSummaryInstruction frames the summarization prompt. Override via
// PromptSet.
const defaultSummaryInstruction = "You are an AI assistant that creates comprehensive summaries of webinars. Always respond with valid JSON only."

// ParseOutcome tags how the model response was turned into a record
type ParseOutcome int

const (
	// ParseStructured means the whole response parsed as the expected object
	ParseStructured ParseOutcome = iota
	// ParseExtracted means a brace-delimited object was pulled out of
	// surrounding prose and parsed
	ParseExtracted
	// ParseDegraded means neither parse worked; the record carries the raw
	// response text and empty lists
	ParseDegraded
)

// structuredSummary mirrors the JSON object requested from the model
type structuredSummary struct {
	Summary    string   `json:"summary"`
	KeyPoints  []string `json:"keyPoints"`
	Topics     []string `json:"topics"`
	Keywords   []string `json:"keywords"`
	Highlights []string `json:"highlights"`
}

// Summarizer builds full-session summaries and persists them best-effort
type Summarizer struct {
	contexts    *ContextBuilder
	store       webinar.Store
	generator   genai.Generator
	instruction string
}

// NewSummarizer creates a summary assembler. An empty instruction selects
// the built-in default.
func NewSummarizer(contexts *ContextBuilder, store webinar.Store, generator genai.Generator, instruction string) *Summarizer {
	if instruction == "" {
		instruction = defaultSummaryInstruction
	}
	return &Summarizer{
		contexts:    contexts,
		store:       store,
		generator:   generator,
		instruction: instruction,
	}
}

// GenerateSummary builds the full-session context, requests a structured
// summary, and inserts a new SummaryRecord. Malformed model output degrades
// to a raw-text record instead of failing; a failed insert is logged and the
// record is still returned (without a persisted id).
func (s *Summarizer) GenerateSummary(ctx context.Context, webinarID uuid.UUID, kind webinar.SummaryKind) (*webinar.SummaryRecord, ParseOutcome, error) {
	block, err := s.contexts.Build(ctx, webinarID, ModeSummary)
	if err != nil {
		return nil, ParseDegraded, err
	}

	prompt := s.buildPrompt(block, kind)

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, ParseDegraded, fmt.Errorf("generate summary: %w: %v", ErrGenerationFailed, err)
	}

	parsed, outcome := parseSummaryResponse(raw)

	record := &webinar.SummaryRecord{
		WebinarID:  webinarID,
		Kind:       kind,
		Summary:    parsed.Summary,
		KeyPoints:  parsed.KeyPoints,
		Topics:     parsed.Topics,
		Keywords:   parsed.Keywords,
		Highlights: parsed.Highlights,
	}

	if err := s.store.InsertSummary(ctx, record); err != nil {
		// At-most-effort persistence: the generated record is still the
		// caller's result even when it could not be stored
		log.Printf("[INSIGHT]: failed to persist %s summary for webinar %s: %v", kind, webinarID, err)
		record.ID = 0
		if record.CreatedAt.IsZero() {
			record.CreatedAt = time.Now().UTC()
		}
	}

	return record, outcome, nil
}

// buildPrompt embeds the context block into the summarization instruction
func (s *Summarizer) buildPrompt(block *ContextBlock, kind webinar.SummaryKind) string {
	style := "final"
	if kind == webinar.SummaryRealtime {
		style = "brief real-time"
	}

	var sb strings.Builder

	sb.WriteString(s.instruction)
	sb.WriteString("\n\n")
	sb.WriteString(block.Text)
	fmt.Fprintf(&sb, "\nPlease provide a comprehensive %s summary of this webinar including:\n", style)
	sb.WriteString("1. Key points and main topics discussed\n")
	sb.WriteString("2. Important insights or takeaways\n")
	sb.WriteString("3. Notable questions and answers\n")
	sb.WriteString("4. Overall summary\n\n")
	sb.WriteString("Format the response as JSON with the following structure:\n")
	sb.WriteString(`{
  "summary": "Overall summary text",
  "keyPoints": ["point 1", "point 2", ...],
  "topics": ["topic 1", "topic 2", ...],
  "keywords": ["keyword 1", "keyword 2", ...],
  "highlights": ["highlight 1", "highlight 2", ...]
}`)

	return sb.String()
}

// parseSummaryResponse converts an untrusted model response into the fixed
// schema without ever failing. Strict parse first, then the first balanced
// brace-delimited substring, then a degraded record carrying the raw text.
func parseSummaryResponse(raw string) (structuredSummary, ParseOutcome) {
	var parsed structuredSummary

	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		return normalize(parsed), ParseStructured
	}

	if candidate, ok := firstBracedObject(raw); ok {
		parsed = structuredSummary{}
		if err := json.Unmarshal([]byte(candidate), &parsed); err == nil {
			return normalize(parsed), ParseExtracted
		}
	}

	return normalize(structuredSummary{Summary: raw}), ParseDegraded
}

// normalize replaces nil lists with empty ones so records are uniform
func normalize(s structuredSummary) structuredSummary {
	if s.KeyPoints == nil {
		s.KeyPoints = []string{}
	}
	if s.Topics == nil {
		s.Topics = []string{}
	}
	if s.Keywords == nil {
		s.Keywords = []string{}
	}
	if s.Highlights == nil {
		s.Highlights = []string{}
	}
	return s
}

// firstBracedObject returns the first balanced brace-delimited substring,
// respecting JSON string literals and escapes
func firstBracedObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}
