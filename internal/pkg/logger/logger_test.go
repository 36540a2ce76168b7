package logger

import (
	"context"
	"testing"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAddFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := ctxzap.ToContext(context.Background(), zap.New(core))

	ctx = AddFields(ctx, zap.String("conversation_id", "conv-1"))
	ctxzap.Info(ctx, "first")
	ctxzap.Info(ctx, "second")

	require.Equal(t, 2, logs.Len())
	for _, entry := range logs.All() {
		assert.Equal(t, "conv-1", entry.ContextMap()["conversation_id"])
	}
}

func TestWithAction(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := ctxzap.ToContext(context.Background(), zap.New(core))

	ctxzap.Info(WithAction(ctx, "PostChat"), "handling")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "PostChat", logs.All()[0].ContextMap()["action"])
}
