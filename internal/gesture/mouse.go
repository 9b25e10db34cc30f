// Package gesture maps raw platform input onto viewer events.
//
// Translators keep only the recogniser state they need between events; the
// viewer state itself is passed in so drags and pinches can continue from
// the current transform.
package gesture

import (
	"image"

	shiny "golang.org/x/exp/shiny/gesture"

	"github.com/example/pinchview/internal/catalog"
	"github.com/example/pinchview/internal/render"
	"github.com/example/pinchview/internal/viewer"
)

// Mouse turns shiny gesture events into viewer events. Layout and Pages
// must describe the frame currently on screen.
type Mouse struct {
	Layout render.Layout
	Pages  []catalog.Page

	dragging bool
	base     viewer.Point
}

// Gesture translates e. It returns nil when e has no meaning for the
// viewer.
func (m *Mouse) Gesture(e shiny.Event, st viewer.State) []viewer.Event {
	switch e.Type {
	case shiny.TypeIsDoublePress:
		if m.onCanvas(e.InitialPos) {
			return []viewer.Event{viewer.DoubleTap{}}
		}
	case shiny.TypeIsLongPress:
		if m.onCanvas(e.InitialPos) {
			return []viewer.Event{viewer.ToggleInfo{}}
		}
	case shiny.TypeIsDrag:
		if m.onCanvas(e.InitialPos) {
			m.dragging = true
			m.base = st.Offset
		}
	case shiny.TypeDrag:
		if m.dragging {
			return []viewer.Event{viewer.DragChanged{Translation: m.base.Add(delta(e.InitialPos, e.CurrentPos))}}
		}
	case shiny.TypeEnd:
		if m.dragging {
			m.dragging = false
			return []viewer.Event{viewer.DragEnded{}}
		}
	case shiny.TypeTap:
		if e.DoublePress {
			return nil
		}
		return m.Tap(pt(e.CurrentPos))
	}
	return nil
}

// Tap hit-tests p against the layout.
func (m *Mouse) Tap(p image.Point) []viewer.Event {
	if b, ok := m.Layout.HitButton(p); ok {
		switch b {
		case render.ButtonZoomOut:
			return []viewer.Event{viewer.ZoomOut{}}
		case render.ButtonReset:
			return []viewer.Event{viewer.Reset{}}
		case render.ButtonZoomIn:
			return []viewer.Event{viewer.ZoomIn{}}
		case render.ButtonDrawer:
			return []viewer.Event{viewer.ToggleDrawer{}}
		}
		return nil
	}
	if i, ok := m.Layout.HitThumbnail(p); ok && i < len(m.Pages) {
		return []viewer.Event{viewer.SelectPage{ID: m.Pages[i].ID}}
	}
	return nil
}

func (m *Mouse) onCanvas(p shiny.Point) bool {
	q := pt(p)
	return q.In(m.Layout.Canvas) && !q.In(m.Layout.Drawer)
}

func pt(p shiny.Point) image.Point {
	return image.Pt(int(p.X), int(p.Y))
}

func delta(from, to shiny.Point) viewer.Point {
	return viewer.Point{X: float64(to.X - from.X), Y: float64(to.Y - from.Y)}
}
