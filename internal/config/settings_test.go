package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequiredEnv sets the two mandatory credentials and registers cleanup.
// Tests in this package mutate the process environment, so none of them
// run in parallel.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AMADEUS_API_KEY", "test-key")
	t.Setenv("AMADEUS_API_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	// Arrange
	setRequiredEnv(t)

	// Act
	s, err := Load("")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, DefaultAmadeusBaseURL, s.AmadeusBaseURL)
	assert.Equal(t, DefaultGroqBaseURL, s.GroqBaseURL)
	assert.Equal(t, DefaultHost, s.Host)
	assert.Equal(t, DefaultPort, s.Port)
	assert.Equal(t, 30*time.Second, s.APITimeout)
	assert.Equal(t, "development", s.Environment)
	assert.False(t, s.AIEnabled())
}

func TestLoad_MissingCredentials(t *testing.T) {
	t.Setenv("AMADEUS_API_KEY", "")
	t.Setenv("AMADEUS_API_SECRET", "")

	_, err := Load("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "AMADEUS_API_KEY")
}

func TestLoad_InvalidPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "not-a-number")

	_, err := Load("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestLoad_PortOutOfRange(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "70000")

	_, err := Load("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT must be between")
}

func TestLoad_EnvFile(t *testing.T) {
	// Arrange: write a .env file and point the loader at it.
	setRequiredEnv(t)
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "GROQ_API_KEY=from-dotenv\nAPI_TIMEOUT=5\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))
	t.Setenv("GROQ_API_KEY", "")
	os.Unsetenv("GROQ_API_KEY")
	t.Setenv("API_TIMEOUT", "")
	os.Unsetenv("API_TIMEOUT")

	// Act
	s, err := Load(envPath)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", s.GroqAPIKey)
	assert.Equal(t, 5*time.Second, s.APITimeout)
	assert.True(t, s.AIEnabled())
}

func TestLoad_MissingEnvFileIsNotFatal(t *testing.T) {
	setRequiredEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.env"))

	assert.NoError(t, err)
}
