package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPrompt(t *testing.T) {
	tempDir := t.TempDir()

	// Test case 1: Load from an exact path
	testContent1 := "You are a helpful assistant.\nProvide clear and concise answers."
	testFile1 := filepath.Join(tempDir, "answer.txt")
	err := os.WriteFile(testFile1, []byte(testContent1), 0644)
	require.NoError(t, err)

	content, err := LoadPrompt(testFile1)
	require.NoError(t, err)
	assert.Equal(t, testContent1, content)

	// Test case 2: Surrounding whitespace is trimmed
	testFile2 := filepath.Join(tempDir, "padded.txt")
	err = os.WriteFile(testFile2, []byte("\n  padded instruction  \n"), 0644)
	require.NoError(t, err)

	content, err = LoadPrompt(testFile2)
	require.NoError(t, err)
	assert.Equal(t, "padded instruction", content)

	// Test case 3: File not found
	_, err = LoadPrompt(filepath.Join(tempDir, "nonexistent-file.txt"))
	assert.Error(t, err)
}

func TestLoadPromptWithFallback(t *testing.T) {
	tempDir := t.TempDir()
	fallbackContent := "This is a fallback prompt"

	// Test case 1: File exists
	testContent := "Actual prompt content"
	testFile := filepath.Join(tempDir, "existing.txt")
	err := os.WriteFile(testFile, []byte(testContent), 0644)
	require.NoError(t, err)

	content := LoadPromptWithFallback(testFile, fallbackContent)
	assert.Equal(t, testContent, content)

	// Test case 2: File doesn't exist, use fallback
	content = LoadPromptWithFallback(filepath.Join(tempDir, "nonexistent.txt"), fallbackContent)
	assert.Equal(t, fallbackContent, content)
}

func TestLoadPromptSet(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("loads overrides", func(t *testing.T) {
		yamlContent := "answer_system: Answer tersely.\nsummary_system: Summarize in bullets.\n"
		file := filepath.Join(tempDir, "prompts.yaml")
		require.NoError(t, os.WriteFile(file, []byte(yamlContent), 0644))

		set, err := LoadPromptSet(file)
		require.NoError(t, err)
		assert.Equal(t, "Answer tersely.", set.AnswerSystem)
		assert.Equal(t, "Summarize in bullets.", set.SummarySystem)
		assert.Empty(t, set.TranscribeSystem)
	})

	t.Run("empty path returns empty set", func(t *testing.T) {
		set, err := LoadPromptSet("")
		require.NoError(t, err)
		assert.Equal(t, PromptSet{}, set)
	})

	t.Run("missing file returns empty set", func(t *testing.T) {
		set, err := LoadPromptSet(filepath.Join(tempDir, "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, PromptSet{}, set)
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		file := filepath.Join(tempDir, "bad.yaml")
		require.NoError(t, os.WriteFile(file, []byte("answer_system: [unclosed"), 0644))

		_, err := LoadPromptSet(file)
		assert.Error(t, err)
	})
}
