package corpusapi

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdg-menorca/resort-assistant/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is an in-memory stand-in for the vector-store service,
// enabled with ENABLE_MOCKS for local development without credentials.
type MockConnector struct {
	logger *zap.Logger

	mu      sync.Mutex
	corpora map[string]*entity.CorpusInfo
	files   map[string][]entity.CorpusFile
	nextID  int
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger:  logger,
		corpora: make(map[string]*entity.CorpusInfo),
		files:   make(map[string][]entity.CorpusFile),
	}
}

func (m *MockConnector) ListCorpora(ctx context.Context) ([]entity.CorpusInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]entity.CorpusInfo, 0, len(m.corpora))
	for _, c := range m.corpora {
		out = append(out, *c)
	}

	ctxzap.Info(ctx, "[MOCK] listing corpora", zap.Int("count", len(out)))
	return out, nil
}

func (m *MockConnector) ListFiles(ctx context.Context, corpusName string) ([]entity.CorpusFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	files := m.files[corpusName]
	ctxzap.Info(ctx, "[MOCK] listing corpus files",
		zap.String("corpus_name", corpusName),
		zap.Int("count", len(files)),
	)
	return files, nil
}

func (m *MockConnector) CreateCorpus(ctx context.Context, displayName string) (*entity.CorpusInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	corpus := &entity.CorpusInfo{
		Name:        fmt.Sprintf("mock-corpus-%d", m.nextID),
		DisplayName: displayName,
	}
	m.corpora[corpus.Name] = corpus

	ctxzap.Info(ctx, "[MOCK] corpus created",
		zap.String("corpus_name", corpus.Name),
		zap.String("display_name", displayName),
	)
	return corpus, nil
}

func (m *MockConnector) UploadFile(ctx context.Context, corpusName, displayName, description string, content []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[corpusName] = append(m.files[corpusName], entity.CorpusFile{
		Name:        fmt.Sprintf("%s/files/%d", corpusName, len(m.files[corpusName])+1),
		DisplayName: displayName,
	})

	ctxzap.Info(ctx, "[MOCK] file uploaded",
		zap.String("corpus_name", corpusName),
		zap.String("display_name", displayName),
		zap.Int("size", len(content)),
	)
	return nil
}

func (m *MockConnector) DeleteCorpus(ctx context.Context, corpusName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.corpora, corpusName)
	delete(m.files, corpusName)

	ctxzap.Info(ctx, "[MOCK] corpus deleted", zap.String("corpus_name", corpusName))
	return nil
}
