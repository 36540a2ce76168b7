package chat

import (
	"context"
	"fmt"

	"github.com/gdg-menorca/resort-assistant/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Fixed generation parameters of the chat completion.
const (
	genTemperature     = 1
	genTopP            = 0.95
	genMaxOutputTokens = 65535
)

// streamErrorMessage is the literal user-facing text emitted when the
// streamed completion fails, most commonly because the corpus does not
// exist yet.
const streamErrorMessage = "❌ Error: The RAG corpus doesn't exist yet. Please create it first using the RAG manager.\n\nDetailed error: %v"

var safetySettings = []entity.SafetySetting{
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "OFF"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "OFF"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "OFF"},
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "OFF"},
}

// Usecase orchestrates one chat turn: context assembly, retrieval binding
// and streamed completion.
type Usecase struct {
	llm              LLMConnector
	corpusManager    CorpusManager
	fallbackCorpusID string
	logger           *zap.Logger
}

func NewUsecase(
	llm LLMConnector,
	corpusManager CorpusManager,
	fallbackCorpusID string,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		llm:              llm,
		corpusManager:    corpusManager,
		fallbackCorpusID: fallbackCorpusID,
		logger:           logger,
	}
}

// Stream runs one chat turn and returns a single-consumer channel of
// incremental response batches. The channel is closed when the response is
// complete, the context is cancelled, or an error chunk has been emitted.
func (uc *Usecase) Stream(ctx context.Context, req *entity.ChatRequest) <-chan entity.ChatChunk {
	out := make(chan entity.ChatChunk)

	go func() {
		defer close(out)

		if msg, ok := uc.corpusReadyMessage(ctx); !ok {
			uc.emit(ctx, out, entity.ChatChunk{Delta: msg, Text: msg})
			return
		}

		streamReq := &entity.LLMStreamRequest{
			Contents: uc.buildContents(req),
			Config: &entity.GenerationConfig{
				Temperature:     genTemperature,
				TopP:            genTopP,
				MaxOutputTokens: genMaxOutputTokens,
				SafetySettings:  safetySettings,
			},
			Tools: uc.retrievalTools(ctx),
		}

		var total string
		err := uc.llm.GenerateStream(ctx, streamReq, func(text string) error {
			if text == "" {
				return nil
			}
			total += text
			if !uc.emit(ctx, out, entity.ChatChunk{Delta: text, Text: total}) {
				return ctx.Err()
			}
			return nil
		})
		if err != nil && ctx.Err() == nil {
			ctxzap.Error(ctx, "error generating content", zap.Error(err))
			msg := fmt.Sprintf(streamErrorMessage, err)
			uc.emit(ctx, out, entity.ChatChunk{Delta: msg, Text: msg})
		}
	}()

	return out
}

func (uc *Usecase) emit(ctx context.Context, out chan<- entity.ChatChunk, chunk entity.ChatChunk) bool {
	select {
	case out <- chunk:
		return true
	case <-ctx.Done():
		return false
	}
}

// corpusReadyMessage gates the chat on corpus readiness. A NOT_FOUND or
// EMPTY corpus blocks the turn with a user-facing message; a failed status
// check does not, since the corpus might be working despite it.
func (uc *Usecase) corpusReadyMessage(ctx context.Context) (string, bool) {
	_, status := uc.corpusManager.GetStatusCached(ctx)
	if status.Ready() || status == entity.StatusError {
		return "", true
	}

	p := status.Presentation()
	return fmt.Sprintf("Corpus not ready: %s. Please use the admin panel to generate the corpus first.", p.Message), false
}

// buildContents assembles the completion context: the fixed seed turns,
// then the prior history, then the new user message.
func (uc *Usecase) buildContents(req *entity.ChatRequest) []entity.LLMContent {
	contents := seedContents()

	for _, msg := range req.History {
		if msg.Content == "" {
			continue
		}
		role := entity.RoleModel
		if msg.Role == entity.RoleUser {
			role = entity.RoleUser
		}
		contents = append(contents, entity.TextContent(role, msg.Content))
	}

	if req.Message != "" {
		contents = append(contents, entity.TextContent(entity.RoleUser, req.Message))
	}

	return contents
}

// retrievalTools binds the corpus as a retrieval tool when an identifier is
// resolvable: the locally recorded corpus name first, the configured
// fallback ID second. Without either, the completion runs unaugmented.
func (uc *Usecase) retrievalTools(ctx context.Context) []entity.RetrievalTool {
	corpusID := uc.corpusManager.Metadata().Name
	if corpusID == "" {
		corpusID = uc.fallbackCorpusID
	}
	if corpusID == "" {
		ctxzap.Info(ctx, "no corpus configured, using base model only")
		return nil
	}

	ctxzap.Info(ctx, "using corpus for retrieval", zap.String("corpus_id", corpusID))
	return []entity.RetrievalTool{{RagCorpus: corpusID}}
}
