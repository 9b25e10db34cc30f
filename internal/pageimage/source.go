// Package pageimage resolves catalog image names to decoded images.
//
// Images are looked up in a directory by name with a known extension. A
// name that has no file on disk is replaced by a generated placeholder so
// the viewer always has something to draw.
package pageimage

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/webp"

	"github.com/example/pinchview/internal/catalog"
)

const (
	// PlaceholderWidth and PlaceholderHeight size the generated page.
	PlaceholderWidth  = 600
	PlaceholderHeight = 800
	// ThumbnailWidth is the width of derived thumbnails.
	ThumbnailWidth = 96

	checkerSize = 40
)

// Extensions are tried in order when resolving a name.
var Extensions = []string{".png", ".jpg", ".jpeg", ".webp"}

// Palette colours generated placeholder pages.
type Palette struct {
	Light, Dark, Label color.RGBA
}

// DefaultPalette is used when a Source has no palette of its own.
var DefaultPalette = Palette{
	Light: color.RGBA{236, 236, 240, 255},
	Dark:  color.RGBA{210, 210, 218, 255},
	Label: color.RGBA{60, 60, 67, 255},
}

// Source loads page images from Dir and caches them.
type Source struct {
	Dir     string
	Palette Palette

	mu     sync.Mutex
	images map[string]image.Image
	thumbs map[string]image.Image
}

// NewSource returns a Source reading from dir. An empty dir means only
// placeholders are produced.
func NewSource(dir string) *Source {
	return &Source{Dir: dir, Palette: DefaultPalette}
}

// Image returns the image named name.
func (s *Source) Image(name string) (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if img, ok := s.images[name]; ok {
		return img, nil
	}
	img, err := s.load(name)
	if errors.Is(err, os.ErrNotExist) {
		img, err = s.Palette.Placeholder(name, PlaceholderWidth, PlaceholderHeight), nil
	}
	if err != nil {
		return nil, err
	}
	if s.images == nil {
		s.images = make(map[string]image.Image)
	}
	s.images[name] = img
	return img, nil
}

// Page is Image for a catalog page.
func (s *Source) Page(p catalog.Page) (image.Image, error) {
	return s.Image(p.ImageName)
}

// Thumbnail returns the thumbnail for p, preferring a "thumb-" prefixed
// file and otherwise scaling down the page image.
func (s *Source) Thumbnail(p catalog.Page) (image.Image, error) {
	s.mu.Lock()
	if img, ok := s.thumbs[p.ImageName]; ok {
		s.mu.Unlock()
		return img, nil
	}
	img, err := s.load(p.ThumbnailName())
	s.mu.Unlock()
	if errors.Is(err, os.ErrNotExist) {
		var full image.Image
		full, err = s.Image(p.ImageName)
		if err == nil {
			img = Downscale(full, ThumbnailWidth)
		}
	}
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.thumbs == nil {
		s.thumbs = make(map[string]image.Image)
	}
	s.thumbs[p.ImageName] = img
	return img, nil
}

// Path returns the file backing name, or os.ErrNotExist.
func (s *Source) Path(name string) (string, error) {
	if s.Dir == "" || name == "" {
		return "", os.ErrNotExist
	}
	for _, ext := range Extensions {
		p := filepath.Join(s.Dir, name+ext)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", os.ErrNotExist
}

func (s *Source) load(name string) (image.Image, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Downscale returns img scaled to width, keeping its aspect ratio.
func Downscale(img image.Image, width int) image.Image {
	b := img.Bounds()
	if b.Dx() <= 0 || width <= 0 {
		return img
	}
	h := max(b.Dy()*width/b.Dx(), 1)
	dst := image.NewRGBA(image.Rect(0, 0, width, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Placeholder draws a checkerboard page in the default palette.
func Placeholder(name string, width, height int) *image.RGBA {
	return DefaultPalette.Placeholder(name, width, height)
}

// Placeholder draws a checkerboard page of the given size labelled with
// name.
func (p Palette) Placeholder(name string, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y += checkerSize {
		for x := 0; x < width; x += checkerSize {
			c := p.Light
			if (x/checkerSize+y/checkerSize)%2 == 1 {
				c = p.Dark
			}
			draw.Draw(img, image.Rect(x, y, x+checkerSize, y+checkerSize), image.NewUniform(c), image.Point{}, draw.Src)
		}
	}
	face := basicfont.Face7x13
	w := font.MeasureString(face, name).Ceil()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(p.Label),
		Face: face,
		Dot:  fixed.P((width-w)/2, height/2),
	}
	d.DrawString(name)
	return img
}
