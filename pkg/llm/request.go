package llm

// ChatRequest is the inbound body posted by a chat client.
// Message is a pointer so an absent field can be told apart from an empty one.
type ChatRequest struct {
	Message             *string `json:"message"`
	ConversationHistory []Turn  `json:"conversationHistory,omitempty"`
}

// GenerateRequest is the body sent to the inference endpoint: the generation
// parameters flattened next to the prompt.
type GenerateRequest struct {
	Prompt string `json:"prompt"`
	GenerationConfig
}

// NewGenerateRequest merges cfg with prompt.
func NewGenerateRequest(cfg GenerationConfig, prompt string) GenerateRequest {
	return GenerateRequest{
		Prompt:           prompt,
		GenerationConfig: cfg,
	}
}
