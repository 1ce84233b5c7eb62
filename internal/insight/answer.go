package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/godwincybertechsolutions-cmyk/webinar/internal/genai"
)

// answerFallback is returned whenever the model produces an empty response.
// Attendees always get text back, never a raw failure.
const answerFallback = "I couldn't generate an answer. Please try again."

// defaultAnswerInstruction frames the answer prompt. Override via PromptSet.
const defaultAnswerInstruction = "You are an AI assistant helping webinar attendees by answering questions based on the live webinar content. Be concise, accurate, and helpful."

// Answerer turns an attendee question plus recent webinar context into a
// single free-text answer
type Answerer struct {
	contexts    *ContextBuilder
	generator   genai.Generator
	instruction string
}

// NewAnswerer creates an answer assembler. An empty instruction selects the
// built-in default.
func NewAnswerer(contexts *ContextBuilder, generator genai.Generator, instruction string) *Answerer {
	if instruction == "" {
		instruction = defaultAnswerInstruction
	}
	return &Answerer{
		contexts:    contexts,
		generator:   generator,
		instruction: instruction,
	}
}

// AnswerQuestion answers one question from recent webinar context.
// The question is validated here as well: this is a trust boundary, so an
// empty question is rejected before any generation call is made.
func (a *Answerer) AnswerQuestion(ctx context.Context, webinarID uuid.UUID, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("answer question: empty question: %w", ErrInvalidInput)
	}

	block, err := a.contexts.Build(ctx, webinarID, ModeQA)
	if err != nil {
		return "", err
	}

	prompt := a.buildPrompt(block, question)

	answer, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("answer question: %w: %v", ErrGenerationFailed, err)
	}

	if strings.TrimSpace(answer) == "" {
		return answerFallback, nil
	}
	return answer, nil
}

// buildPrompt embeds the context block and the question into one instruction
func (a *Answerer) buildPrompt(block *ContextBlock, question string) string {
	var sb strings.Builder

	sb.WriteString(a.instruction)
	sb.WriteString("\n\n")
	sb.WriteString(block.Text)
	sb.WriteString("\nBased on the above context from the ongoing webinar, please answer the following question:\n")
	sb.WriteString(question)
	sb.WriteString("\n\nProvide a concise and helpful answer based on the webinar content. If the question cannot be answered from the context, say so politely.")

	return sb.String()
}
