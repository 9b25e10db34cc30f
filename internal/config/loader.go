package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Loader locates and reads the configuration file.
type Loader struct {
	Version      string // Build version; "dev" enables ./.pinchviewrc
	OverridePath string // Explicit path, from -config or set at link time
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load reads the first config file found, or returns defaults when there
// is none.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Candidates lists the paths searched, in precedence order.
func (l *Loader) Candidates() []string {
	var paths []string
	if l.OverridePath != "" {
		paths = append(paths, l.OverridePath)
	}
	if l.Version == "dev" {
		if wd, err := os.Getwd(); err == nil {
			paths = append(paths, filepath.Join(wd, ".pinchviewrc"))
		}
	}
	if dir := userConfigDir(); dir != "" {
		paths = append(paths,
			filepath.Join(dir, "config.rc"),
			filepath.Join(dir, "pinchview.rc"),
		)
	}
	return paths
}

// GetConfigPath returns the first existing candidate, or "".
func (l *Loader) GetConfigPath() string {
	for _, p := range l.Candidates() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// DefaultSavePath is where "config save" writes when no file exists yet.
func DefaultSavePath() (string, error) {
	dir := userConfigDir()
	if dir == "" {
		return "", fmt.Errorf("cannot determine home directory")
	}
	return filepath.Join(dir, "config.rc"), nil
}

func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "pinchview")
}
