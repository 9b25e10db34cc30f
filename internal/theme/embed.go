package theme

import "embed"

// EmbeddedThemes holds the theme files shipped with the binary.
//
//go:embed defaults/*.theme
var EmbeddedThemes embed.FS
