package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWithContext(t *testing.T) {
	log := zap.NewNop()
	ctx := WithContext(context.Background(), log)

	assert.Same(t, log, FromContext(ctx))
}

func TestFromContext_Fallback(t *testing.T) {
	log := FromContext(context.Background())
	require.NotNil(t, log)
	// the fallback logger must be safe to use
	log.Info("noop")
}

func TestWithRequestID(t *testing.T) {
	log := zap.NewNop()
	ctx, enriched := WithRequestID(context.Background(), log, "req-42")

	require.NotNil(t, enriched)
	assert.Equal(t, "req-42", GetRequestID(ctx))
	assert.Same(t, enriched, FromContext(ctx))
}

func TestGetRequestID_Missing(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}
