package chat

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gdg-menorca/resort-assistant/internal/entity"
	"github.com/gdg-menorca/resort-assistant/internal/pkg/logger"
	"github.com/gdg-menorca/resort-assistant/internal/pkg/response"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type ChatUsecase interface {
	Stream(ctx context.Context, req *entity.ChatRequest) <-chan entity.ChatChunk
}

type Handler struct {
	usecase ChatUsecase
}

func NewHandler(usecase ChatUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// PostChat handles POST /api/chat: it streams the completion back to the
// caller as server-sent events, one event per incremental batch.
func (h *Handler) PostChat(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "PostChat")

	var req entity.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode chat request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		response.Error(w, http.StatusBadRequest, "message is required")
		return
	}
	if req.ConversationID == "" {
		req.ConversationID = uuid.New().String()
	}
	ctx = logger.AddFields(ctx, zap.String("conversation_id", req.ConversationID))

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.Error(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	ctxzap.Info(ctx, "starting chat stream", zap.Int("history_length", len(req.History)))

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Conversation-ID", req.ConversationID)
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for chunk := range h.usecase.Stream(ctx, &req) {
		data, err := json.Marshal(chunk)
		if err != nil {
			ctxzap.Error(ctx, "failed to marshal chunk", zap.Error(err))
			return
		}
		if _, err := w.Write([]byte("data: ")); err != nil {
			return
		}
		if _, err := w.Write(data); err != nil {
			return
		}
		if _, err := w.Write([]byte("\n\n")); err != nil {
			return
		}
		flusher.Flush()
	}

	w.Write([]byte("data: [DONE]\n\n"))
	flusher.Flush()
}
