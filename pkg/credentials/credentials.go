// Package credentials stores the Cairo Coder API key outside of source code,
// in a credentials.toml file restricted to the current user.
package credentials

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/papercomputeco/cairofix/pkg/dotdir"
)

const (
	credentialsFile = "credentials.toml"

	currentVersion = 0

	// CairoCoder is the provider name the API key is stored under.
	CairoCoder = "cairo-coder"
)

// providerEnvVars maps provider names to the environment variable that
// overrides the stored key.
var providerEnvVars = map[string]string{
	CairoCoder: "CAIRO_CODER_API_KEY",
}

// ErrNoKey is returned by ResolveKey when neither the environment nor
// credentials.toml provide a key.
var ErrNoKey = errors.New("no API key configured")

// Manager reads and writes credentials.toml in the .cairofix/ directory.
type Manager struct {
	ddm        *dotdir.Manager
	override   string
	targetPath string
}

// NewManager creates a credentials Manager. A non-empty override is used as
// the .cairofix/ directory; otherwise dotdir resolution applies and
// ~/.cairofix/ is created when nothing is found.
func NewManager(override string) (*Manager, error) {
	mgr := &Manager{ddm: dotdir.NewManager(), override: override}

	target, err := mgr.ddm.Ensure(override)
	if err != nil {
		return nil, err
	}

	mgr.targetPath = filepath.Join(target, credentialsFile)

	return mgr, nil
}

// NewReader creates a Manager for looking keys up. It never touches disk:
// when no .cairofix/ directory resolves, Load yields empty Credentials.
// Save still creates the directory on first write.
func NewReader(override string) (*Manager, error) {
	mgr := &Manager{ddm: dotdir.NewManager(), override: override}

	target, err := mgr.ddm.Target(override)
	if err != nil {
		return nil, err
	}
	if target != "" {
		mgr.targetPath = filepath.Join(target, credentialsFile)
	}

	return mgr, nil
}

// Load reads credentials.toml. A missing file yields empty Credentials.
func (m *Manager) Load() (*Credentials, error) {
	if m.targetPath == "" {
		return emptyCredentials(), nil
	}

	data, err := os.ReadFile(m.targetPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return emptyCredentials(), nil
		}
		return nil, fmt.Errorf("reading credentials: %w", err)
	}

	creds := &Credentials{}
	if err := toml.Unmarshal(data, creds); err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}

	if creds.Providers == nil {
		creds.Providers = make(map[string]ProviderCredential)
	}

	return creds, nil
}

// Save writes credentials.toml with 0600 permissions.
func (m *Manager) Save(creds *Credentials) error {
	if creds == nil {
		return errors.New("cannot save nil credentials")
	}

	if m.targetPath == "" {
		target, err := m.ddm.Ensure(m.override)
		if err != nil {
			return err
		}
		m.targetPath = filepath.Join(target, credentialsFile)
	} else if err := os.MkdirAll(filepath.Dir(m.targetPath), 0o755); err != nil {
		return fmt.Errorf("creating credentials directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(creds); err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}

	if err := os.WriteFile(m.targetPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}

	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(m.targetPath, 0o600); err != nil {
		return fmt.Errorf("restricting credentials: %w", err)
	}

	return nil
}

// SetKey stores an API key for provider.
func (m *Manager) SetKey(provider, key string) error {
	creds, err := m.Load()
	if err != nil {
		return err
	}

	creds.Providers[provider] = ProviderCredential{APIKey: key}

	return m.Save(creds)
}

// GetKey returns the stored key for provider, or "" when there is none.
func (m *Manager) GetKey(provider string) (string, error) {
	creds, err := m.Load()
	if err != nil {
		return "", err
	}

	return creds.Providers[provider].APIKey, nil
}

// RemoveKey deletes the stored credential for provider.
func (m *Manager) RemoveKey(provider string) error {
	creds, err := m.Load()
	if err != nil {
		return err
	}

	delete(creds.Providers, provider)

	return m.Save(creds)
}

// ListProviders returns the sorted names of providers with stored keys.
func (m *Manager) ListProviders() ([]string, error) {
	creds, err := m.Load()
	if err != nil {
		return nil, err
	}

	providers := make([]string, 0, len(creds.Providers))
	for name := range creds.Providers {
		providers = append(providers, name)
	}
	sort.Strings(providers)

	return providers, nil
}

// ResolveKey returns the key for provider. The environment variable wins
// over credentials.toml. ErrNoKey is returned when neither has one.
func (m *Manager) ResolveKey(provider string) (string, Source, error) {
	if envVar := EnvVarForProvider(provider); envVar != "" {
		if key := strings.TrimSpace(os.Getenv(envVar)); key != "" {
			return key, SourceEnv, nil
		}
	}

	key, err := m.GetKey(provider)
	if err != nil {
		return "", SourceNone, err
	}
	if key == "" {
		return "", SourceNone, fmt.Errorf("%w: set %s or run 'cairofix auth'", ErrNoKey, EnvVarForProvider(provider))
	}

	return key, SourceFile, nil
}

func emptyCredentials() *Credentials {
	return &Credentials{
		Version:   currentVersion,
		Providers: make(map[string]ProviderCredential),
	}
}

// GetTarget returns the path of credentials.toml, or "" for a reader that
// resolved no directory.
func (m *Manager) GetTarget() string {
	return m.targetPath
}

// EnvVarForProvider returns the environment variable for provider, or ""
// for unknown providers.
func EnvVarForProvider(provider string) string {
	return providerEnvVars[provider]
}

// SupportedProviders lists the providers keys can be stored for.
func SupportedProviders() []string {
	return []string{CairoCoder}
}

// IsSupportedProvider reports whether provider is supported.
func IsSupportedProvider(provider string) bool {
	return slices.Contains(SupportedProviders(), provider)
}
