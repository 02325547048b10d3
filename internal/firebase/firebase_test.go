package firebase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pawmart-backend/internal/config"
)

func TestCredentialOptions(t *testing.T) {
	logger := zap.NewNop()

	opts, err := credentialOptions(&config.Config{FirebaseServiceAccountJSONBase64: "e30="}, logger)
	require.NoError(t, err)
	assert.Len(t, opts, 1)

	_, err = credentialOptions(&config.Config{FirebaseServiceAccountJSONBase64: "not base64!"}, logger)
	assert.Error(t, err)

	_, err = credentialOptions(&config.Config{}, logger)
	assert.Error(t, err)
}

func TestNewAppRejectsNilConfig(t *testing.T) {
	_, err := NewApp(t.Context(), nil, zap.NewNop())
	assert.Error(t, err)
}
