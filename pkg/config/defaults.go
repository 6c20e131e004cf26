package config

import "github.com/papercomputeco/cairofix/pkg/prompt"

const (
	defaultEndpoint    = "https://api.cairo-coder.com/v1/chat/completions"
	defaultAuthHeader  = "x-api-key"
	defaultTimeout     = "5m"
	defaultInstruction = prompt.DefaultInstruction
	defaultRender      = RenderNever
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Client: ClientConfig{
			Endpoint:   defaultEndpoint,
			AuthHeader: defaultAuthHeader,
			Timeout:    defaultTimeout,
		},
		Prompt: PromptConfig{
			Instruction: defaultInstruction,
		},
		Output: OutputConfig{
			Render: defaultRender,
		},
	}
}
