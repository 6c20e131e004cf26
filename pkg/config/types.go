package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"
)

// Config represents the persistent cairofix configuration stored as
// config.toml in the .cairofix/ directory.
type Config struct {
	Version int          `toml:"version"`
	Client  ClientConfig `toml:"client"`
	Prompt  PromptConfig `toml:"prompt"`
	Output  OutputConfig `toml:"output"`
}

// ClientConfig holds settings for the Cairo Coder API call.
type ClientConfig struct {
	// Endpoint is the full chat completions URL.
	Endpoint string `toml:"endpoint,omitempty"`

	// AuthHeader is the header carrying the API key.
	AuthHeader string `toml:"auth_header,omitempty"`

	// Timeout bounds the whole request, as a Go duration string.
	Timeout string `toml:"timeout,omitempty"`
}

// PromptConfig holds the instruction placed in front of the contract source.
type PromptConfig struct {
	Instruction string `toml:"instruction,omitempty"`
}

// OutputConfig controls how the completion is written to stdout.
type OutputConfig struct {
	// Render is one of RenderNever, RenderAuto or RenderAlways.
	Render string `toml:"render,omitempty"`
}

// Render modes for the completion.
const (
	RenderNever  = "never"
	RenderAuto   = "auto"
	RenderAlways = "always"
)

// RenderModes lists the accepted output.render values.
func RenderModes() []string {
	return []string{RenderNever, RenderAuto, RenderAlways}
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
var configKeys = map[string]configKeyInfo{
	"client.endpoint": {
		get: func(c *Config) string { return c.Client.Endpoint },
		set: func(c *Config, v string) error {
			if err := ValidateEndpoint(v); err != nil {
				return err
			}
			c.Client.Endpoint = v
			return nil
		},
	},
	"client.auth_header": {
		get: func(c *Config) string { return c.Client.AuthHeader },
		set: func(c *Config, v string) error {
			v = strings.TrimSpace(v)
			if v == "" || strings.ContainsAny(v, " :\t") {
				return fmt.Errorf("invalid value for client.auth_header: %q", v)
			}
			c.Client.AuthHeader = v
			return nil
		},
	},
	"client.timeout": {
		get: func(c *Config) string { return c.Client.Timeout },
		set: func(c *Config, v string) error {
			if _, err := ParseTimeout(v); err != nil {
				return err
			}
			c.Client.Timeout = v
			return nil
		},
	},
	"prompt.instruction": {
		get: func(c *Config) string { return c.Prompt.Instruction },
		set: func(c *Config, v string) error { c.Prompt.Instruction = v; return nil },
	},
	"output.render": {
		get: func(c *Config) string { return c.Output.Render },
		set: func(c *Config, v string) error {
			if err := ValidateRender(v); err != nil {
				return err
			}
			c.Output.Render = v
			return nil
		},
	},
}

// ValidateEndpoint checks that v is an absolute http(s) URL.
func ValidateEndpoint(v string) error {
	u, err := url.Parse(v)
	if err != nil {
		return fmt.Errorf("invalid value for client.endpoint: %w", err)
	}
	if (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return fmt.Errorf("invalid value for client.endpoint: %q is not an http(s) URL", v)
	}
	return nil
}

// ParseTimeout parses a positive Go duration.
func ParseTimeout(v string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid value for client.timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid value for client.timeout: %s must be positive", v)
	}
	return d, nil
}

// ValidateRender checks v against RenderModes.
func ValidateRender(v string) error {
	if !slices.Contains(RenderModes(), v) {
		return fmt.Errorf("invalid value for output.render: %q (expected one of %s)",
			v, strings.Join(RenderModes(), ", "))
	}
	return nil
}
