package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	t.Setenv("FIREBASE_PROJECT_ID", "pawmart-test")
	t.Setenv("FIRESTORE_EMULATOR_HOST", "localhost:8081")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 30*time.Second, cfg.ListingCacheTTL)
	assert.Equal(t, "pawmart.events", cfg.AMQPQueue)
	assert.True(t, cfg.IsRelease())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	t.Setenv("FIREBASE_PROJECT_ID", "pawmart-test")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/secrets/sa.json")
	t.Setenv("PORT", "9090")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("REDIS_DB", "2")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2, cfg.RedisDB)
}

func TestLoadConfigRequiresProjectID(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	t.Setenv("FIREBASE_PROJECT_ID", "")
	t.Setenv("FIRESTORE_EMULATOR_HOST", "localhost:8081")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FIREBASE_PROJECT_ID")
}

func TestValidate(t *testing.T) {
	base := Config{
		FirebaseProjectID: "p",
		RequestTimeout:    time.Second,
		ListingCacheTTL:   time.Second,
	}

	missingCreds := base
	assert.Error(t, missingCreds.Validate())

	withFile := base
	withFile.GoogleApplicationCredentials = "sa.json"
	assert.NoError(t, withFile.Validate())

	withBase64 := base
	withBase64.FirebaseServiceAccountJSONBase64 = "e30="
	assert.NoError(t, withBase64.Validate())

	badTimeout := withFile
	badTimeout.RequestTimeout = 0
	assert.Error(t, badTimeout.Validate())
}
