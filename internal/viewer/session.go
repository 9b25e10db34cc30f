package viewer

import (
	"github.com/charmbracelet/log"

	"github.com/example/pinchview/internal/catalog"
)

// Observer is called after every accepted transition.
type Observer func(prev, next State, ev Event)

// Session owns the live state of one viewer. It is not safe for concurrent
// use; front ends call it from their event goroutine only.
type Session struct {
	reducer   *Reducer
	state     State
	logger    *log.Logger
	observers []Observer
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the logger used to report rejected events.
func WithLogger(l *log.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithState starts the session from st instead of the reducer's initial
// state.
func WithState(st State) SessionOption { return func(s *Session) { s.state = st } }

// NewSession creates a session over cat using limits.
func NewSession(cat *catalog.Catalog, limits Limits, opts ...SessionOption) *Session {
	r := NewReducer(cat, limits)
	s := &Session{reducer: r, state: r.Initial(), logger: log.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Observe registers fn for accepted transitions.
func (s *Session) Observe(fn Observer) {
	if fn != nil {
		s.observers = append(s.observers, fn)
	}
}

// State returns a snapshot of the current state.
func (s *Session) State() State { return s.state }

// Limits returns the transform limits in effect.
func (s *Session) Limits() Limits { return s.reducer.Limits }

// Catalog returns the page catalog.
func (s *Session) Catalog() *catalog.Catalog { return s.reducer.Catalog }

// CurrentPage returns the page the state points at.
func (s *Session) CurrentPage() catalog.Page {
	if p, ok := s.reducer.Catalog.Page(s.state.PageIndex); ok {
		return p
	}
	return s.reducer.Catalog.First()
}

// Apply runs ev through the reducer. A rejected event leaves the state
// untouched and is returned after being logged.
func (s *Session) Apply(ev Event) error {
	next, err := s.reducer.Next(s.state, ev)
	if err != nil {
		s.logger.Debug("event rejected", "event", ev, "err", err)
		return err
	}
	prev := s.state
	s.state = next
	s.logger.Debug("transition", "event", ev, "state", next)
	for _, fn := range s.observers {
		fn(prev, next, ev)
	}
	return nil
}

// OnDoubleTap toggles between Fitted and the double-tap scale.
func (s *Session) OnDoubleTap() error { return s.Apply(DoubleTap{}) }

// OnDragChanged sets the pan offset to translation.
func (s *Session) OnDragChanged(translation Point) error {
	return s.Apply(DragChanged{Translation: translation})
}

// OnDragEnded snaps an unzoomed page back to Fitted.
func (s *Session) OnDragEnded() error { return s.Apply(DragEnded{}) }

// OnPinchChanged replaces the scale with magnification.
func (s *Session) OnPinchChanged(magnification float64) error {
	return s.Apply(PinchChanged{Magnification: magnification})
}

// OnPinchEnded clamps or resets a scale left out of range by the pinch.
func (s *Session) OnPinchEnded() error { return s.Apply(PinchEnded{}) }

// OnZoomOut lowers the scale by one zoom step.
func (s *Session) OnZoomOut() error { return s.Apply(ZoomOut{}) }

// OnZoomIn raises the scale by one zoom step.
func (s *Session) OnZoomIn() error { return s.Apply(ZoomIn{}) }

// OnReset returns to Fitted.
func (s *Session) OnReset() error { return s.Apply(Reset{}) }

// OnSelectPage shows the page with id.
func (s *Session) OnSelectPage(id int) error { return s.Apply(SelectPage{ID: id}) }

// OnToggleDrawer opens or closes the thumbnail drawer.
func (s *Session) OnToggleDrawer() error { return s.Apply(ToggleDrawer{}) }

// OnToggleInfo shows or hides the info overlay.
func (s *Session) OnToggleInfo() error { return s.Apply(ToggleInfo{}) }
