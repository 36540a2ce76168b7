package chat

import (
	"context"

	"github.com/gdg-menorca/resort-assistant/internal/entity"
)

type LLMConnector interface {
	GenerateStream(ctx context.Context, req *entity.LLMStreamRequest, onChunk func(text string) error) error
}

// CorpusManager exposes the pieces of the corpus lifecycle manager the chat
// orchestrator needs: the local metadata record (for the retrieval binding)
// and the cached status check (for the readiness gate).
type CorpusManager interface {
	Metadata() *entity.CorpusMetadata
	GetStatusCached(ctx context.Context) (*entity.CorpusInfo, entity.CorpusStatus)
}
