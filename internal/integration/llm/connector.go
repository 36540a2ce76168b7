package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gdg-menorca/resort-assistant/internal/config"
	"github.com/gdg-menorca/resort-assistant/internal/entity"
	"github.com/gdg-menorca/resort-assistant/internal/integration/common"
	pkghttp "github.com/gdg-menorca/resort-assistant/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector talks to the managed completion service.
type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Generate performs a single non-streaming completion and returns the raw
// response text.
func (c *Connector) Generate(ctx context.Context, prompt string) (string, error) {
	ctxzap.Info(ctx, "generating content via completion service",
		zap.String("model", c.config.Model),
		zap.Int("prompt_length", len(prompt)),
	)

	req := entity.LLMGenerateRequest{
		Model: c.config.Model,
		Contents: []entity.LLMContent{
			entity.TextContent(entity.RoleUser, prompt),
		},
	}

	var resp entity.LLMGenerateResponse
	err := c.config.Retry.Do(ctx, func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.GenerateEndpoint, req, &resp)
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if resp.Text == "" {
		return "", fmt.Errorf("invalid completion response: empty text")
	}

	ctxzap.Info(ctx, "content generated", zap.Int("result_length", len(resp.Text)))
	return resp.Text, nil
}

// GenerateStream performs a streaming completion, invoking onChunk for each
// streamed text fragment. Streaming calls are never retried.
func (c *Connector) GenerateStream(ctx context.Context, req *entity.LLMStreamRequest, onChunk func(text string) error) error {
	if req.Model == "" {
		req.Model = c.config.ChatModel
	}

	ctxzap.Info(ctx, "streaming completion",
		zap.String("model", req.Model),
		zap.Int("content_count", len(req.Contents)),
		zap.Int("tool_count", len(req.Tools)),
	)

	return c.connector.DoStreamRequest(ctx, http.MethodPost, c.config.StreamEndpoint, req, func(data []byte) error {
		var chunk entity.LLMStreamChunk
		if err := json.Unmarshal(data, &chunk); err != nil {
			// Skip malformed frames rather than killing the stream.
			ctxzap.Warn(ctx, "skipping malformed stream frame", zap.Error(err))
			return nil
		}
		return onChunk(chunk.Text)
	})
}
