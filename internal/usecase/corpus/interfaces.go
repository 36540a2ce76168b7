package corpus

import (
	"context"

	"github.com/gdg-menorca/resort-assistant/internal/entity"
)

type LLMConnector interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type CorpusConnector interface {
	ListCorpora(ctx context.Context) ([]entity.CorpusInfo, error)
	ListFiles(ctx context.Context, corpusName string) ([]entity.CorpusFile, error)
	CreateCorpus(ctx context.Context, displayName string) (*entity.CorpusInfo, error)
	UploadFile(ctx context.Context, corpusName, displayName, description string, content []byte) error
	DeleteCorpus(ctx context.Context, corpusName string) error
}

type MetadataStore interface {
	Load() (*entity.CorpusMetadata, error)
	Save(md *entity.CorpusMetadata) error
}

// ConfirmFunc asks the operator to confirm a destructive or long-running
// step. The CLI wires a stdin prompt; non-interactive surfaces wire nil,
// which means auto-confirm.
type ConfirmFunc func(prompt string) bool
