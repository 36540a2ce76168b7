package entity

// Chat roles as expected by the completion service.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is a single turn of a conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is an incoming chat turn with its prior history.
type ChatRequest struct {
	ConversationID string        `json:"conversation_id,omitempty"`
	Message        string        `json:"message"`
	History        []ChatMessage `json:"history,omitempty"`
}

// ChatChunk is one incremental batch of the streamed response. Delta carries
// the newly received text, Text the accumulated response so far.
type ChatChunk struct {
	Delta string `json:"delta"`
	Text  string `json:"text"`
}
