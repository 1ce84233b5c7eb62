// Package transcribe turns uploaded audio into stored transcript fragments
// via the multimodal generation service.
package transcribe

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/godwincybertechsolutions-cmyk/webinar/internal/genai"
	"github.com/godwincybertechsolutions-cmyk/webinar/internal/stores/webinar"
)

// ErrNoAudio is returned when no audio bytes were provided
var ErrNoAudio = errors.New("no audio file provided")

// defaultInstruction is the transcription prompt. Override via PromptSet.
const defaultInstruction = "Transcribe this audio to English text."

// autoSpeaker labels fragments produced by automatic transcription
const autoSpeaker = "auto"

// Transcriber converts audio chunks into transcript fragments
type Transcriber struct {
	store       webinar.Store
	generator   genai.Generator
	instruction string
}

// New creates a transcriber. An empty instruction selects the built-in
// default.
func New(store webinar.Store, generator genai.Generator, instruction string) *Transcriber {
	if instruction == "" {
		instruction = defaultInstruction
	}
	return &Transcriber{
		store:       store,
		generator:   generator,
		instruction: instruction,
	}
}

// Transcribe sends the audio to the generation service and appends the
// resulting text as a transcript fragment with the "auto" speaker label.
// The text is returned even if the fragment could not be stored.
func (t *Transcriber) Transcribe(ctx context.Context, webinarID uuid.UUID, audio []byte, mimeType string) (string, error) {
	if len(audio) == 0 {
		return "", ErrNoAudio
	}

	if _, err := t.store.GetWebinar(ctx, webinarID); err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}

	text, err := t.generator.GenerateMultimodal(ctx, t.instruction, audio, mimeType)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}

	fragment := &webinar.TranscriptFragment{
		WebinarID: webinarID,
		Text:      text,
		Speaker:   autoSpeaker,
	}
	if err := t.store.InsertTranscript(ctx, fragment); err != nil {
		log.Printf("[TRANSCRIBE]: failed to store fragment for webinar %s: %v", webinarID, err)
	}

	return text, nil
}
