// Package dotdir resolves the .cairofix/ directory that holds config.toml
// and credentials.toml.
package dotdir

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirName is the name of the cairofix directory.
const DirName = ".cairofix"

type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// Target returns the absolute path of the .cairofix/ directory to use.
// Order of precedence:
//  1. Provided override (returned as is, even if missing)
//  2. Local ./.cairofix/ dir
//  3. Home ~/.cairofix/ dir
//
// Target never touches disk. When there is no override and neither 2 nor 3
// exist, or the home directory is unknown, it returns "" so that read-only
// callers fall back to defaults.
func (m *Manager) Target(overrideDir string) (string, error) {
	if overrideDir != "" {
		return filepath.Abs(overrideDir)
	}

	if local, ok := m.localDir(); ok {
		return local, nil
	}

	home, err := m.homeDir()
	if err != nil {
		return "", nil
	}
	if isDir(home) {
		return home, nil
	}

	return "", nil
}

// Ensure behaves like Target but creates the directory it resolves to,
// falling back to ~/.cairofix/. Writers use it.
func (m *Manager) Ensure(overrideDir string) (string, error) {
	target, err := m.Target(overrideDir)
	if err != nil {
		return "", err
	}
	if target != "" {
		if err := os.MkdirAll(target, 0o755); err != nil {
			return "", fmt.Errorf("creating cairofix directory %s: %w", target, err)
		}
		return target, nil
	}

	home, err := m.homeDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(home, 0o755); err != nil {
		return "", fmt.Errorf("creating cairofix directory %s: %w", home, err)
	}
	return home, nil
}

func (m *Manager) localDir() (string, bool) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false
	}

	dir := filepath.Join(cwd, DirName)
	return dir, isDir(dir)
}

func (m *Manager) homeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
