package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/example/pinchview/assets"
)

// Format identifies a manifest encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

type manifest struct {
	Title string         `yaml:"title" toml:"title"`
	Pages []manifestPage `yaml:"pages" toml:"pages"`
}

type manifestPage struct {
	ID    int    `yaml:"id" toml:"id"`
	Image string `yaml:"image" toml:"image"`
}

// FormatForPath picks the manifest format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported catalog manifest %q (want .yaml, .yml or .toml)", path)
}

// Load reads a catalog manifest from disk.
func Load(path string) (*Catalog, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	c, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Decode reads a manifest in the given format.
func Decode(r io.Reader, format Format) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var m manifest
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown manifest format %q", format)
	}
	pages := make([]Page, 0, len(m.Pages))
	for _, p := range m.Pages {
		pages = append(pages, Page{ID: p.ID, ImageName: p.Image})
	}
	c, err := New(pages...)
	if err != nil {
		return nil, err
	}
	c.Title = strings.TrimSpace(m.Title)
	return c, nil
}

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	format, err := FormatForPath(assets.CatalogManifestName)
	if err != nil {
		panic(err)
	}
	c, err := Decode(bytes.NewReader(assets.CatalogManifest()), format)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// LoadOrDefault loads path, or returns the embedded catalog when path is
// empty.
func LoadOrDefault(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	return Load(path)
}
