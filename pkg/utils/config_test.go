package utils

import (
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("with nil values", func(t *testing.T) {
		config := NewConfig(nil)
		require.NotNil(t, config)
		assert.Len(t, config.Keys(), 0)
	})

	t.Run("with empty map", func(t *testing.T) {
		config := NewConfig(map[string]string{})
		assert.Len(t, config.Keys(), 0)
	})

	t.Run("with values", func(t *testing.T) {
		values := map[string]string{
			"key1": "value1",
			"key2": "value2",
		}
		config := NewConfig(values)

		assert.Equal(t, "value1", config.Get("key1"))
		assert.Equal(t, "value2", config.Get("key2"))

		// Verify it's a copy, not a reference
		values["key1"] = "modified"
		assert.NotEqual(t, "modified", config.Get("key1"))
	})
}

func TestNewConfigFromEnv(t *testing.T) {
	// Create a temporary .env file for testing
	envContent := "TEST_KEY1=test_value1\nTEST_KEY2=test_value2\n"
	tmpFile, err := os.CreateTemp("", "test_env_*.env")
	require.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	_, err = tmpFile.WriteString(envContent)
	require.NoError(t, err)
	tmpFile.Close()

	config := NewConfigFromEnv(tmpFile.Name())

	require.NotNil(t, config)
}

func TestConfigGet(t *testing.T) {
	config := NewConfig(map[string]string{
		"existing": "value",
		"empty":    "",
	})

	t.Run("existing key", func(t *testing.T) {
		assert.Equal(t, "value", config.Get("existing"))
	})

	t.Run("non-existing key", func(t *testing.T) {
		assert.Empty(t, config.Get("missing"))
	})

	t.Run("empty value key", func(t *testing.T) {
		assert.Empty(t, config.Get("empty"))
	})
}

func TestConfigGetWithDefault(t *testing.T) {
	config := NewConfig(map[string]string{
		"existing": "value",
		"empty":    "",
	})

	t.Run("existing key", func(t *testing.T) {
		got := config.GetWithDefault("existing", "default")
		assert.Equal(t, "value", got)
	})

	t.Run("non-existing key", func(t *testing.T) {
		got := config.GetWithDefault("missing", "default")
		assert.Equal(t, "default", got)
	})

	t.Run("empty value key", func(t *testing.T) {
		got := config.GetWithDefault("empty", "default")
		assert.Equal(t, "default", got)
	})
}

func TestConfigGetBool(t *testing.T) {
	config := NewConfig(map[string]string{
		"true_bool":      "true",
		"false_bool":     "false",
		"true_1":         "1",
		"false_0":        "0",
		"true_yes":       "yes",
		"false_no":       "no",
		"true_on":        "on",
		"false_off":      "off",
		"true_enabled":   "enabled",
		"false_disabled": "disabled",
		"invalid":        "invalid_bool",
		"empty":          "",
	})

	tests := []struct {
		key      string
		expected bool
	}{
		{"true_bool", true},
		{"false_bool", false},
		{"true_1", true},
		{"false_0", false},
		{"true_yes", true},
		{"false_no", false},
		{"true_on", true},
		{"false_off", false},
		{"true_enabled", true},
		{"false_disabled", false},
		{"invalid", false},
		{"empty", false},
		{"missing", false},
	}

	for _, test := range tests {
		t.Run(test.key, func(t *testing.T) {
			got := config.GetBool(test.key)
			assert.Equal(t, test.expected, got, "GetBool(%s)", test.key)
		})
	}
}

func TestConfigGetInt(t *testing.T) {
	config := NewConfig(map[string]string{
		"valid_int":   "42",
		"zero":        "0",
		"negative":    "-10",
		"invalid_int": "not_a_number",
		"empty":       "",
	})

	tests := []struct {
		key      string
		expected int
	}{
		{"valid_int", 42},
		{"zero", 0},
		{"negative", -10},
		{"invalid_int", 0},
		{"empty", 0},
		{"missing", 0},
	}

	for _, test := range tests {
		t.Run(test.key, func(t *testing.T) {
			got := config.GetInt(test.key)
			assert.Equal(t, test.expected, got, "GetInt(%s)", test.key)
		})
	}
}

func TestConfigGetIntWithDefault(t *testing.T) {
	config := NewConfig(map[string]string{
		"valid_int": "42",
		"empty":     "",
	})

	t.Run("existing key", func(t *testing.T) {
		got := config.GetIntWithDefault("valid_int", 999)
		assert.Equal(t, 42, got)
	})

	t.Run("non-existing key", func(t *testing.T) {
		got := config.GetIntWithDefault("missing", 999)
		assert.Equal(t, 999, got)
	})

	t.Run("empty value key", func(t *testing.T) {
		got := config.GetIntWithDefault("empty", 999)
		assert.Equal(t, 0, got) // Expected 0 (parsed)
	})
}

func TestConfigGetDuration(t *testing.T) {
	config := NewConfig(map[string]string{
		"seconds": "30s",
		"minutes": "2m",
		"invalid": "soon",
		"empty":   "",
	})

	tests := []struct {
		key      string
		expected time.Duration
	}{
		{"seconds", 30 * time.Second},
		{"minutes", 2 * time.Minute},
		{"invalid", time.Minute},
		{"empty", time.Minute},
		{"missing", time.Minute},
	}

	for _, test := range tests {
		t.Run(test.key, func(t *testing.T) {
			got := config.GetDuration(test.key, time.Minute)
			assert.Equal(t, test.expected, got, "GetDuration(%s)", test.key)
		})
	}
}

func TestConfigSet(t *testing.T) {
	config := NewConfig(map[string]string{})

	config.Set("new_key", "new_value")
	assert.Equal(t, "new_value", config.Get("new_key"))

	// Test overwriting
	config.Set("new_key", "updated_value")
	assert.Equal(t, "updated_value", config.Get("new_key"))
}

func TestConfigHas(t *testing.T) {
	config := NewConfig(map[string]string{
		"existing": "value",
		"empty":    "",
	})

	assert.True(t, config.Has("existing"))
	assert.True(t, config.Has("empty"))
	assert.False(t, config.Has("missing"))
}

func TestConfigKeys(t *testing.T) {
	t.Run("empty config", func(t *testing.T) {
		config := NewConfig(map[string]string{})
		keys := config.Keys()
		assert.Len(t, keys, 0)
	})

	t.Run("config with keys", func(t *testing.T) {
		config := NewConfig(map[string]string{
			"key1": "value1",
			"key2": "value2",
			"key3": "value3",
		})
		keys := config.Keys()

		assert.Len(t, keys, 3)

		// Sort for consistent comparison
		sort.Strings(keys)
		expected := []string{"key1", "key2", "key3"}
		sort.Strings(expected)

		assert.Equal(t, expected, keys)
	})
}

func TestConfigToMap(t *testing.T) {
	original := map[string]string{
		"key1": "value1",
		"key2": "value2",
	}
	config := NewConfig(original)

	result := config.ToMap()

	assert.Equal(t, original, result)

	// Verify it's a copy, not a reference
	result["key1"] = "modified"
	assert.NotEqual(t, "modified", config.Get("key1"))
}

func TestConfigThreadSafety(t *testing.T) {
	config := NewConfig(map[string]string{
		"counter": "0",
	})

	const numGoroutines = 100
	const operationsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	// Start multiple goroutines that read and write concurrently
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < operationsPerGoroutine; j++ {
				// Mix of read and write operations
				config.Set("test_key_"+string(rune(id)), "value")
				config.Get("test_key_" + string(rune(id)))
				config.Has("test_key_" + string(rune(id)))
				config.GetBool("counter")
				config.GetInt("counter")
				config.Keys()
				config.ToMap()
			}
		}(i)
	}

	wg.Wait()
	// Test passes if no data races occur
}
