package entity

// LLMPart is a single text part of a content turn.
type LLMPart struct {
	Text string `json:"text"`
}

// LLMContent is one role-tagged turn sent to the completion service.
type LLMContent struct {
	Role  string    `json:"role"`
	Parts []LLMPart `json:"parts"`
}

// TextContent builds a single-part content turn.
func TextContent(role, text string) LLMContent {
	return LLMContent{Role: role, Parts: []LLMPart{{Text: text}}}
}

// SafetySetting disables or tunes one harm category on the completion call.
type SafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

// GenerationConfig carries the fixed sampling parameters of a completion.
type GenerationConfig struct {
	Temperature     float64         `json:"temperature"`
	TopP            float64         `json:"top_p"`
	MaxOutputTokens int             `json:"max_output_tokens"`
	SafetySettings  []SafetySetting `json:"safety_settings,omitempty"`
}

// RetrievalTool binds a remote corpus to the completion call.
type RetrievalTool struct {
	RagCorpus string `json:"rag_corpus"`
}

// LLMGenerateRequest is the payload of a non-streaming completion call.
type LLMGenerateRequest struct {
	Model    string       `json:"model"`
	Contents []LLMContent `json:"contents"`
}

// LLMGenerateResponse is the completion service response body.
type LLMGenerateResponse struct {
	Text string `json:"text"`
}

// LLMStreamRequest is the payload of a streaming completion call.
type LLMStreamRequest struct {
	Model    string            `json:"model"`
	Contents []LLMContent      `json:"contents"`
	Config   *GenerationConfig `json:"generation_config,omitempty"`
	Tools    []RetrievalTool   `json:"tools,omitempty"`
}

// LLMStreamChunk is one streamed frame of a completion response.
type LLMStreamChunk struct {
	Text string `json:"text"`
}
