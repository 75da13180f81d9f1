package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name  string
		env   logger.Environment
		level string
	}{
		{"development debug", logger.Development, "debug"},
		{"production info", logger.Production, "info"},
		{"unknown level falls back to info", logger.Production, "verbose"},
		{"empty level", logger.Development, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := logger.NewLogger(tt.env, tt.level)
			require.NoError(t, err)
			require.NotNil(t, log)
		})
	}
}

func TestRequestIDContext(t *testing.T) {
	t.Run("stores and retrieves the id", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "req-123")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.Equal(t, "req-123", id)
	})

	t.Run("empty id is generated", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.NotEmpty(t, id)
	})

	t.Run("missing id", func(t *testing.T) {
		_, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
	})
}

func TestGenerateRequestID(t *testing.T) {
	first := logger.GenerateRequestID()
	second := logger.GenerateRequestID()

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

func TestLog(t *testing.T) {
	t.Run("returns a usable logger without setup", func(t *testing.T) {
		log := logger.Log(context.Background())
		require.NotNil(t, log)
		log.Info(context.Background(), "message without global logger")
	})

	t.Run("does not panic with request id in context", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "req-123")
		logger.Log(ctx).Debug(ctx, "message with request id")
	})
}
