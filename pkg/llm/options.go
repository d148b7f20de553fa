package llm

// GenerationConfig holds the sampling parameters sent with every prompt.
type GenerationConfig struct {
	MaxNewTokens int     `json:"max_new_tokens" toml:"max_new_tokens"` // Max tokens to generate
	DoSample     bool    `json:"do_sample" toml:"do_sample"`           // Sample instead of greedy decoding
	Temperature  float64 `json:"temperature" toml:"temperature"`       // Creativity
	TopP         float64 `json:"top_p" toml:"top_p"`                   // Nucleus sampling threshold
}

// DefaultGenerationConfig returns the parameters used when nothing overrides them.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		MaxNewTokens: 512,
		DoSample:     true,
		Temperature:  0.7,
		TopP:         0.9,
	}
}
