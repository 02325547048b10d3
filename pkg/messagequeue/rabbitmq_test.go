package messagequeue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewRabbitMQServiceRejectsBadURL(t *testing.T) {
	_, err := NewRabbitMQService(NewRabbitMQServiceConfig{URL: "not-a-url"}, zap.NewNop())
	assert.Error(t, err)
}

func TestCloseWithoutConnection(t *testing.T) {
	s := &RabbitMQService{}
	assert.NoError(t, s.Close())
}
