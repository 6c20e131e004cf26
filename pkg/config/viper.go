package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/papercomputeco/cairofix/pkg/dotdir"
)

// EnvPrefix prefixes environment variables that override config keys,
// e.g. CAIROFIX_CLIENT_ENDPOINT for client.endpoint.
const EnvPrefix = "CAIROFIX"

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads config.toml (if found via
// dotdir resolution), and binds CAIROFIX_ environment variables.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (CAIROFIX_CLIENT_ENDPOINT, CAIROFIX_CLIENT_TIMEOUT, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	setViperDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")

	target, err := dotdir.NewManager().Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	if target != "" {
		v.AddConfigPath(target)

		if err := v.ReadInConfig(); err != nil {
			// A missing file is fine, defaults apply.
			if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// Settings is the resolved view of the precedence chain used by the fix
// command.
type Settings struct {
	Endpoint    string
	AuthHeader  string
	Timeout     time.Duration
	Instruction string
	Render      string
}

// ResolveSettings reads and validates the effective settings from v.
func ResolveSettings(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		Endpoint:    v.GetString("client.endpoint"),
		AuthHeader:  strings.TrimSpace(v.GetString("client.auth_header")),
		Instruction: v.GetString("prompt.instruction"),
		Render:      v.GetString("output.render"),
	}

	if err := ValidateEndpoint(s.Endpoint); err != nil {
		return nil, err
	}
	if s.AuthHeader == "" {
		return nil, errors.New("client.auth_header cannot be empty")
	}
	if err := ValidateRender(s.Render); err != nil {
		return nil, err
	}

	timeout, err := ParseTimeout(v.GetString("client.timeout"))
	if err != nil {
		return nil, err
	}
	s.Timeout = timeout

	return s, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// Client
	v.SetDefault("client.endpoint", d.Client.Endpoint)
	v.SetDefault("client.auth_header", d.Client.AuthHeader)
	v.SetDefault("client.timeout", d.Client.Timeout)

	// Prompt
	v.SetDefault("prompt.instruction", d.Prompt.Instruction)

	// Output
	v.SetDefault("output.render", d.Output.Render)
}
