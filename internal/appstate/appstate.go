package appstate

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/example/pinchview/internal/catalog"
	"github.com/example/pinchview/internal/clipboard"
	"github.com/example/pinchview/internal/pageimage"
	"github.com/example/pinchview/internal/render"
	"github.com/example/pinchview/internal/theme"
	"github.com/example/pinchview/internal/viewer"
)

const (
	// DefaultWidth and DefaultHeight size a new window.
	DefaultWidth  = 480
	DefaultHeight = 720

	// DefaultOutput is where snapshots are saved without WithOutput.
	DefaultOutput = "pinchview.png"
)

// AppState holds the configuration and live session of one viewer window.
type AppState struct {
	Catalog *catalog.Catalog
	Limits  viewer.Limits
	Source  *pageimage.Source
	Theme   *theme.Theme
	Output  string
	Title   string

	session *viewer.Session
	initial *viewer.State
	logger  *log.Logger

	updateCh chan struct{}

	shadowMu   sync.Mutex
	shadowSize image.Point
	shadow     render.ShadowResult

	onSave    func(path string)
	onCopy    func(detail string)
	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithCatalog sets the pages shown by the viewer.
func WithCatalog(c *catalog.Catalog) Option { return func(a *AppState) { a.Catalog = c } }

// WithLimits sets the zoom limits.
func WithLimits(l viewer.Limits) Option { return func(a *AppState) { a.Limits = l } }

// WithSource sets where page images are loaded from.
func WithSource(s *pageimage.Source) Option { return func(a *AppState) { a.Source = s } }

// WithTheme sets the colours used to draw the window.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithOutput sets the file path used when saving snapshots.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.Title = title } }

// WithLogger sets the logger for the window and its session.
func WithLogger(l *log.Logger) Option { return func(a *AppState) { a.logger = l } }

// WithOnSave registers a callback invoked after a snapshot is saved.
func WithOnSave(fn func(path string)) Option { return func(a *AppState) { a.onSave = fn } }

// WithOnCopy registers a callback invoked after the view is copied.
func WithOnCopy(fn func(detail string)) Option { return func(a *AppState) { a.onCopy = fn } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// WithInitialState starts the session from st.
func WithInitialState(st viewer.State) Option {
	return func(a *AppState) { a.initial = &st }
}

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{
		Limits:   viewer.DefaultLimits(),
		Output:   DefaultOutput,
		updateCh: make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(a)
	}
	if a.Catalog == nil {
		a.Catalog = catalog.Default()
	}
	if a.Source == nil {
		a.Source = pageimage.NewSource("")
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	a.Source.Palette = pageimage.Palette{Light: a.Theme.CheckerLight, Dark: a.Theme.CheckerDark, Label: a.Theme.Foreground}
	if a.logger == nil {
		a.logger = log.Default()
	}
	if a.Title == "" {
		a.Title = "PinchView"
		if a.Catalog.Title != "" {
			a.Title = "PinchView - " + a.Catalog.Title
		}
	}
	sopts := []viewer.SessionOption{viewer.WithLogger(a.logger)}
	if a.initial != nil {
		sopts = append(sopts, viewer.WithState(*a.initial))
	}
	a.session = viewer.NewSession(a.Catalog, a.Limits, sopts...)
	a.session.Observe(func(_, _ viewer.State, _ viewer.Event) { a.NotifyChanged() })
	return a
}

// Session returns the live viewer session.
func (a *AppState) Session() *viewer.Session { return a.session }

// NotifyChanged requests a repaint of the window.
func (a *AppState) NotifyChanged() {
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}

// Scene assembles what Frame needs to draw the current state at the
// given window size.
func (a *AppState) Scene(width, height int) (render.Scene, error) {
	st := a.session.State()
	page := a.session.CurrentPage()
	img, err := a.Source.Page(page)
	if err != nil {
		return render.Scene{}, fmt.Errorf("load page %d: %w", page.ID, err)
	}
	pages := a.Catalog.Pages()
	sc := render.Scene{
		State:  st,
		Layout: render.NewLayout(width, height, len(pages), st.DrawerOpen),
		Theme:  a.Theme,
		Page:   page,
		Image:  img,
		Pages:  pages,
	}
	sc.Shadow = a.pageShadow(render.FitRect(sc.Layout.Canvas, img.Bounds()).Size())
	if st.DrawerOpen {
		sc.Thumbs = make([]image.Image, len(pages))
		for i, p := range pages {
			th, err := a.Source.Thumbnail(p)
			if err != nil {
				a.logger.Warn("thumbnail", "page", p.ID, "err", err)
				continue
			}
			sc.Thumbs[i] = th
		}
	}
	return sc, nil
}

// pageShadow caches the shadow for the last fitted page size.
func (a *AppState) pageShadow(size image.Point) render.ShadowResult {
	a.shadowMu.Lock()
	defer a.shadowMu.Unlock()
	if size != a.shadowSize || a.shadow.Image == nil {
		a.shadowSize = size
		a.shadow = render.PageShadow(size, render.PageShadowOptions())
	}
	return a.shadow
}

// Snapshot renders the current state into a new image.
func (a *AppState) Snapshot(width, height int) (*image.RGBA, error) {
	sc, err := a.Scene(width, height)
	if err != nil {
		return nil, err
	}
	dst := image.NewRGBA(image.Rectangle{Max: sc.Layout.Size})
	render.Frame(dst, sc)
	return dst, nil
}

// Save writes img as PNG to the output path.
func (a *AppState) Save(img image.Image) (string, error) {
	if err := SavePNG(a.Output, img); err != nil {
		return "", err
	}
	if a.onSave != nil {
		a.onSave(a.Output)
	}
	return a.Output, nil
}

// Copy publishes img to the clipboard.
func (a *AppState) Copy(img image.Image) error {
	if err := clipboard.WriteImage(img); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	if a.onCopy != nil {
		a.onCopy(fmt.Sprintf("page %d", a.session.State().PageIndex))
	}
	return nil
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// SavePNG writes img to path, creating parent directories.
func SavePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
