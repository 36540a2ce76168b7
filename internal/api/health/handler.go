package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gdg-menorca/resort-assistant/internal/entity"
	"github.com/gdg-menorca/resort-assistant/internal/pkg/response"
)

// StatusProvider is the slice of the corpus manager the health endpoints
// consume. The cached variant keeps monitoring probes from hammering the
// remote service.
type StatusProvider interface {
	Metadata() *entity.CorpusMetadata
	GetStatusCached(ctx context.Context) (*entity.CorpusInfo, entity.CorpusStatus)
}

type Handler struct {
	manager StatusProvider
	version string
}

func NewHandler(manager StatusProvider, version string) *Handler {
	return &Handler{manager: manager, version: version}
}

type healthComponents struct {
	RAGManager bool   `json:"rag_manager"`
	Corpus     string `json:"corpus"`
}

type healthPayload struct {
	Status     string           `json:"status"`
	Timestamp  string           `json:"timestamp"`
	Version    string           `json:"version"`
	Components healthComponents `json:"components"`
}

type corpusDetails struct {
	Status        string `json:"status"`
	Name          string `json:"name,omitempty"`
	DocumentCount int    `json:"document_count"`
}

type statusPayload struct {
	healthPayload
	CorpusDetails corpusDetails `json:"corpus_details"`
}

func (h *Handler) buildHealth(ctx context.Context) (healthPayload, *entity.CorpusInfo, entity.CorpusStatus) {
	corpus, status := h.manager.GetStatusCached(ctx)

	payload := healthPayload{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   h.version,
		Components: healthComponents{
			RAGManager: true,
			Corpus:     string(status),
		},
	}
	if status != entity.StatusComplete {
		payload.Status = "degraded"
	}

	return payload, corpus, status
}

// GetHealth handles GET /health
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	payload, _, _ := h.buildHealth(r.Context())
	response.Success(w, payload)
}

// GetStatus handles GET /api/status
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	payload, corpus, status := h.buildHealth(r.Context())

	details := corpusDetails{
		Status:        string(status),
		DocumentCount: h.manager.Metadata().DocumentCount,
	}
	if corpus != nil {
		details.Name = corpus.Name
	}

	response.Success(w, statusPayload{
		healthPayload: payload,
		CorpusDetails: details,
	})
}
