package corpusapi

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gdg-menorca/resort-assistant/internal/config"
	"github.com/gdg-menorca/resort-assistant/internal/entity"
	"github.com/gdg-menorca/resort-assistant/internal/integration/common"
	pkghttp "github.com/gdg-menorca/resort-assistant/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector talks to the managed vector-store service that owns corpora,
// file indexing and retrieval.
type Connector struct {
	config    config.CorpusConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.CorpusConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

type listCorporaResponse struct {
	Corpora []entity.CorpusInfo `json:"corpora"`
}

type listFilesResponse struct {
	Files []entity.CorpusFile `json:"files"`
}

type createCorpusRequest struct {
	DisplayName    string `json:"display_name"`
	EmbeddingModel string `json:"embedding_model"`
}

// ListCorpora returns all corpora visible to the service account.
func (c *Connector) ListCorpora(ctx context.Context) ([]entity.CorpusInfo, error) {
	var resp listCorporaResponse
	err := c.config.Retry.Do(ctx, func() error {
		return c.connector.DoRequest(ctx, http.MethodGet, c.config.CorporaEndpoint, nil, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("list corpora: %w", err)
	}
	return resp.Corpora, nil
}

// ListFiles returns the files indexed in the given corpus.
func (c *Connector) ListFiles(ctx context.Context, corpusName string) ([]entity.CorpusFile, error) {
	endpoint := strings.Replace(c.config.FilesEndpoint, "{corpus_name}", corpusName, 1)

	var resp listFilesResponse
	err := c.config.Retry.Do(ctx, func() error {
		return c.connector.DoRequest(ctx, http.MethodGet, endpoint, nil, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("list corpus files: %w", err)
	}
	return resp.Files, nil
}

// CreateCorpus creates a new corpus configured with the embedding model.
func (c *Connector) CreateCorpus(ctx context.Context, displayName string) (*entity.CorpusInfo, error) {
	ctxzap.Info(ctx, "creating corpus in vector-store service",
		zap.String("display_name", displayName),
		zap.String("embedding_model", c.config.EmbeddingModel),
	)

	req := createCorpusRequest{
		DisplayName:    displayName,
		EmbeddingModel: c.config.EmbeddingModel,
	}

	var resp entity.CorpusInfo
	err := c.config.Retry.Do(ctx, func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.CorporaEndpoint, req, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("create corpus: %w", err)
	}

	ctxzap.Info(ctx, "corpus created", zap.String("corpus_name", resp.Name))
	return &resp, nil
}

// UploadFile uploads one document into the corpus with multipart/form-data.
func (c *Connector) UploadFile(ctx context.Context, corpusName, displayName, description string, content []byte) error {
	endpoint := strings.Replace(c.config.UploadEndpoint, "{corpus_name}", corpusName, 1)

	prepareBody := func(writer *multipart.Writer) error {
		if err := writer.WriteField("display_name", displayName); err != nil {
			return fmt.Errorf("write display_name field: %w", err)
		}
		if err := writer.WriteField("description", description); err != nil {
			return fmt.Errorf("write description field: %w", err)
		}

		part, err := writer.CreateFormFile("file", displayName)
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}
		if _, err := part.Write(content); err != nil {
			return fmt.Errorf("write file content: %w", err)
		}
		return nil
	}

	err := c.config.Retry.Do(ctx, func() error {
		return c.connector.DoMultipartRequest(ctx, http.MethodPost, endpoint, prepareBody, nil)
	})
	if err != nil {
		return fmt.Errorf("upload file %q: %w", displayName, err)
	}
	return nil
}

// DeleteCorpus deletes the corpus and all its indexed files.
func (c *Connector) DeleteCorpus(ctx context.Context, corpusName string) error {
	endpoint := strings.Replace(c.config.DeleteEndpoint, "{corpus_name}", corpusName, 1)

	ctxzap.Info(ctx, "deleting corpus", zap.String("corpus_name", corpusName))

	err := c.config.Retry.Do(ctx, func() error {
		return c.connector.DoRequest(ctx, http.MethodDelete, endpoint, nil, nil)
	})
	if err != nil {
		ctxzap.Error(ctx, "failed to delete corpus", zap.Error(err))
		return fmt.Errorf("delete corpus: %w", err)
	}

	ctxzap.Info(ctx, "corpus deleted")
	return nil
}
