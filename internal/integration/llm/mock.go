package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdg-menorca/resort-assistant/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is a canned-response stand-in for the completion service,
// enabled with ENABLE_MOCKS for local development without credentials.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) Generate(ctx context.Context, prompt string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating content", zap.Int("prompt_length", len(prompt)))

	firstLine := prompt
	if idx := strings.IndexByte(firstLine, '\n'); idx > 0 {
		firstLine = firstLine[:idx]
	}
	return fmt.Sprintf("Documento de ejemplo generado para: %s", firstLine), nil
}

func (m *MockConnector) GenerateStream(ctx context.Context, req *entity.LLMStreamRequest, onChunk func(text string) error) error {
	ctxzap.Info(ctx, "[MOCK] streaming completion",
		zap.Int("content_count", len(req.Contents)),
		zap.Int("tool_count", len(req.Tools)),
	)

	chunks := []string{
		"Gracias por su interés en el GDG Menorca Resort. ",
		"Esta es una respuesta de ejemplo generada en modo de desarrollo. ",
		"Active las credenciales reales para obtener respuestas del corpus.",
	}
	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := onChunk(chunk); err != nil {
			return err
		}
	}
	return nil
}
