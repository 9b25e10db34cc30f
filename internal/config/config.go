package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/example/pinchview/internal/theme"
	"github.com/example/pinchview/internal/viewer"
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Config holds the application configuration.
type Config struct {
	Theme     string
	Catalog   string // Path to a .yaml/.toml page manifest; empty uses the embedded one
	AssetsDir string
	SaveDir   string
	LogLevel  string
	Viewer    viewer.Limits
	Notify    Notify
	Themes    map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:  "", // Default to empty to allow fallback to Env/Default
		Viewer: viewer.DefaultLimits(),
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	root := []struct{ key, value string }{
		{"theme", c.Theme},
		{"catalog", c.Catalog},
		{"assets_dir", c.AssetsDir},
		{"save_dir", c.SaveDir},
		{"log_level", c.LogLevel},
	}
	for _, kv := range root {
		if kv.value != "" {
			fmt.Fprintf(&sb, "%s = %s\n", kv.key, kv.value)
		}
	}
	sb.WriteString("\n")

	sb.WriteString("[viewer]\n")
	fmt.Fprintf(&sb, "max_scale = %s\n", formatFloat(c.Viewer.MaxScale))
	fmt.Fprintf(&sb, "zoom_step = %s\n", formatFloat(c.Viewer.ZoomStep))
	fmt.Fprintf(&sb, "double_tap_scale = %s\n", formatFloat(c.Viewer.DoubleTapScale))
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	themeNames := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, e := range t.Entries() {
			fmt.Fprintf(&sb, "%s: %s\n", e.Key, theme.Hex(e.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
