// Package catalog holds the read-only list of pages the viewer can show.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ThumbnailPrefix is prepended to a page's image name to form the name of
// its thumbnail asset.
const ThumbnailPrefix = "thumb-"

// Page is one entry of the catalog.
type Page struct {
	ID        int
	ImageName string
}

// ThumbnailName returns the asset name of the page's thumbnail.
func (p Page) ThumbnailName() string {
	return ThumbnailPrefix + p.ImageName
}

var (
	// ErrEmpty is returned when a catalog has no pages.
	ErrEmpty = errors.New("catalog has no pages")
	// ErrInvalidPage is returned for pages with a non-positive id, a
	// duplicate id or an empty image name.
	ErrInvalidPage = errors.New("invalid page")
)

// Catalog is an ordered, immutable list of pages.
type Catalog struct {
	Title string
	pages []Page
	byID  map[int]int
}

// New validates pages and returns a catalog preserving their order.
func New(pages ...Page) (*Catalog, error) {
	if len(pages) == 0 {
		return nil, ErrEmpty
	}
	c := &Catalog{
		pages: make([]Page, 0, len(pages)),
		byID:  make(map[int]int, len(pages)),
	}
	for _, p := range pages {
		p.ImageName = strings.TrimSpace(p.ImageName)
		if p.ID <= 0 {
			return nil, fmt.Errorf("%w: id %d must be positive", ErrInvalidPage, p.ID)
		}
		if p.ImageName == "" {
			return nil, fmt.Errorf("%w: id %d has no image name", ErrInvalidPage, p.ID)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidPage, p.ID)
		}
		c.byID[p.ID] = len(c.pages)
		c.pages = append(c.pages, p)
	}
	return c, nil
}

// MustNew is like New but panics on invalid input. Intended for tests and
// package-level fixtures.
func MustNew(pages ...Page) *Catalog {
	c, err := New(pages...)
	if err != nil {
		panic(err)
	}
	return c
}

// Len reports the number of pages.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.pages)
}

// Pages returns a copy of the pages in catalog order.
func (c *Catalog) Pages() []Page {
	if c == nil {
		return nil
	}
	out := make([]Page, len(c.pages))
	copy(out, c.pages)
	return out
}

// Page looks up a page by id.
func (c *Catalog) Page(id int) (Page, bool) {
	if c == nil {
		return Page{}, false
	}
	idx, ok := c.byID[id]
	if !ok {
		return Page{}, false
	}
	return c.pages[idx], true
}

// Contains reports whether id names a page of the catalog.
func (c *Catalog) Contains(id int) bool {
	_, ok := c.Page(id)
	return ok
}

// Index returns the 0-based position of id, or -1.
func (c *Catalog) Index(id int) int {
	if c == nil {
		return -1
	}
	if idx, ok := c.byID[id]; ok {
		return idx
	}
	return -1
}

// First returns the first page in catalog order.
func (c *Catalog) First() Page {
	if c.Len() == 0 {
		return Page{}
	}
	return c.pages[0]
}

// At returns the page at 0-based position idx.
func (c *Catalog) At(idx int) (Page, bool) {
	if c == nil || idx < 0 || idx >= len(c.pages) {
		return Page{}, false
	}
	return c.pages[idx], true
}
