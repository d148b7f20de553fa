package forwarder

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/papercomputeco/chatrelay/pkg/llm"
)

const (
	// DefaultInferenceURL is used when INFERENCE_URL is unset.
	DefaultInferenceURL = "https://df52-34-143-237-29.ngrok-free.app/generate"

	// DefaultTimeout bounds the inference call.
	DefaultTimeout = 60 * time.Second

	inferenceURLEnv = "INFERENCE_URL"
)

// Config is the forwarder configuration. It is built once at start-up and
// never changed afterwards.
type Config struct {
	// InferenceURL is the endpoint prompts are POSTed to
	// (e.g., "http://localhost:8000/generate").
	InferenceURL string

	// Timeout bounds a single inference call, including reading the body.
	Timeout time.Duration

	// Generation holds the sampling parameters sent with every prompt.
	Generation llm.GenerationConfig
}

// LoadConfig builds a Config from the process environment.
func LoadConfig() Config {
	cfg := Config{
		InferenceURL: DefaultInferenceURL,
		Timeout:      DefaultTimeout,
		Generation:   llm.DefaultGenerationConfig(),
	}
	if v := os.Getenv(inferenceURLEnv); v != "" {
		cfg.InferenceURL = v
	}
	return cfg
}

// fileConfig mirrors the TOML layout accepted by LoadConfigFile:
//
//	inference_url = "http://localhost:8000/generate"
//	timeout = "30s"
//
//	[generation]
//	max_new_tokens = 256
//	temperature = 0.2
type fileConfig struct {
	InferenceURL string               `toml:"inference_url"`
	Timeout      string               `toml:"timeout"`
	Generation   llm.GenerationConfig `toml:"generation"`
}

// LoadConfigFile reads the environment like LoadConfig and then overlays the
// keys present in the TOML file at path.
func LoadConfigFile(path string) (Config, error) {
	cfg := LoadConfig()

	// Keys missing from the file keep these values.
	fc := fileConfig{Generation: cfg.Generation}
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return Config{}, fmt.Errorf("decode config file %s: %w", path, err)
	}

	if fc.InferenceURL != "" {
		cfg.InferenceURL = fc.InferenceURL
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse timeout %q: %w", fc.Timeout, err)
		}
		cfg.Timeout = d
	}
	cfg.Generation = fc.Generation

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration that cannot work.
func (c Config) Validate() error {
	if c.InferenceURL == "" {
		return fmt.Errorf("inference URL is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be greater than 0")
	}
	return nil
}
