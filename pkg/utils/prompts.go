package utils

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// PromptSet holds the instruction templates used by the AI endpoints.
// Empty fields fall back to the built-in defaults of each component.
type PromptSet struct {
	AnswerSystem     string `yaml:"answer_system"`
	SummarySystem    string `yaml:"summary_system"`
	TranscribeSystem string `yaml:"transcribe_system"`
}

// LoadPrompt loads prompt instructions from a specific file path
// The path must be exact - no fallback searching is performed
func LoadPrompt(filePath string) (string, error) {
	// Check if file exists
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", filePath)
	}

	// Read file content
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	// Trim whitespace and return
	return strings.TrimSpace(string(content)), nil
}

// LoadPromptWithFallback loads prompt instructions from a specific file path with a fallback
// If the file is not found, it returns the fallback string
func LoadPromptWithFallback(filePath, fallback string) string {
	if content, err := LoadPrompt(filePath); err == nil {
		return content
	}
	return fallback
}

// LoadPromptSet reads a YAML file of instruction overrides.
// A missing path returns an empty set so defaults apply.
func LoadPromptSet(filePath string) (PromptSet, error) {
	var set PromptSet

	if filePath == "" {
		return set, nil
	}
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return set, nil
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return set, fmt.Errorf("failed to read prompt set %s: %w", filePath, err)
	}

	if err := yaml.Unmarshal(content, &set); err != nil {
		return set, fmt.Errorf("failed to parse prompt set %s: %w", filePath, err)
	}

	return set, nil
}
