// Package viewer turns gesture events into view-transform state.
//
// The reducer is pure: Reducer.Next maps a State and an Event to the next
// State. Session wraps it for front ends that own one live state on the UI
// goroutine.
package viewer

import (
	"fmt"
	"math"
)

// FittedScale is the scale at which the page exactly fits the canvas.
const FittedScale = 1.0

// Point is a pan translation in presentation units.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

func (p Point) finite() bool { return finite(p.X) && finite(p.Y) }

// State is the complete viewer state read by the presentation layer.
type State struct {
	Scale      float64
	Offset     Point
	PageIndex  int
	DrawerOpen bool
	// InfoVisible shows the transform overlay.
	InfoVisible bool
}

// Fitted reports whether the page is unscaled and centred.
func (s State) Fitted() bool {
	return s.Scale == FittedScale && s.Offset == (Point{})
}

// Regime names the logical transform regime, "fitted" or "zoomed".
func (s State) Regime() string {
	if s.Fitted() {
		return "fitted"
	}
	return "zoomed"
}

func (s State) String() string {
	drawer := "closed"
	if s.DrawerOpen {
		drawer = "open"
	}
	return fmt.Sprintf("page=%d scale=%.2f offset=(%.1f,%.1f) drawer=%s %s",
		s.PageIndex, s.Scale, s.Offset.X, s.Offset.Y, drawer, s.Regime())
}

func (s State) reset() State {
	s.Scale = FittedScale
	s.Offset = Point{}
	return s
}

// Limits bounds the transform.
type Limits struct {
	// MaxScale is the inclusive upper scale bound at rest.
	MaxScale float64
	// ZoomStep is added or removed by the zoom buttons.
	ZoomStep float64
	// DoubleTapScale is the zoom level a double tap jumps to from Fitted.
	DoubleTapScale float64
}

// DefaultLimits returns the 1x-5x range with whole-step buttons.
func DefaultLimits() Limits {
	return Limits{MaxScale: 5, ZoomStep: 1, DoubleTapScale: 5}
}

// Validate reports whether the limits describe a usable range.
func (l Limits) Validate() error {
	switch {
	case !finite(l.MaxScale) || !finite(l.ZoomStep) || !finite(l.DoubleTapScale):
		return fmt.Errorf("limits must be finite: %+v", l)
	case l.MaxScale <= FittedScale:
		return fmt.Errorf("max scale %.2f must exceed %.1f", l.MaxScale, FittedScale)
	case l.ZoomStep <= 0:
		return fmt.Errorf("zoom step %.2f must be positive", l.ZoomStep)
	case l.DoubleTapScale <= FittedScale || l.DoubleTapScale > l.MaxScale:
		return fmt.Errorf("double tap scale %.2f must be in (%.1f, %.2f]", l.DoubleTapScale, FittedScale, l.MaxScale)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
