package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gdg-menorca/resort-assistant/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsecase struct {
	chunks []entity.ChatChunk
	gotReq *entity.ChatRequest
}

func (f *fakeUsecase) Stream(_ context.Context, req *entity.ChatRequest) <-chan entity.ChatChunk {
	f.gotReq = req
	out := make(chan entity.ChatChunk, len(f.chunks))
	for _, c := range f.chunks {
		out <- c
	}
	close(out)
	return out
}

func TestPostChatStreamsChunks(t *testing.T) {
	uc := &fakeUsecase{chunks: []entity.ChatChunk{
		{Delta: "Hola", Text: "Hola"},
		{Delta: " mundo", Text: "Hola mundo"},
	}}
	h := NewHandler(uc)

	body := strings.NewReader(`{"message":"hola","history":[]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/chat", body)
	rec := httptest.NewRecorder()

	h.PostChat(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Conversation-ID"), "a conversation id is assigned when none is sent")

	out := rec.Body.String()
	assert.Contains(t, out, `data: {"delta":"Hola","text":"Hola"}`)
	assert.Contains(t, out, `data: {"delta":" mundo","text":"Hola mundo"}`)
	assert.True(t, strings.HasSuffix(out, "data: [DONE]\n\n"))
}

func TestPostChatKeepsConversationID(t *testing.T) {
	uc := &fakeUsecase{}
	h := NewHandler(uc)

	body := strings.NewReader(`{"conversation_id":"conv-1","message":"hola"}`)
	rec := httptest.NewRecorder()
	h.PostChat(rec, httptest.NewRequest(http.MethodPost, "/api/chat", body))

	assert.Equal(t, "conv-1", rec.Header().Get("X-Conversation-ID"))
	require.NotNil(t, uc.gotReq)
	assert.Equal(t, "conv-1", uc.gotReq.ConversationID)
}

func TestPostChatRejectsBadRequests(t *testing.T) {
	h := NewHandler(&fakeUsecase{})

	rec := httptest.NewRecorder()
	h.PostChat(rec, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader("not json")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.PostChat(rec, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":""}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
