package gesture

import (
	"time"

	"golang.org/x/mobile/event/mouse"

	"github.com/example/pinchview/internal/viewer"
)

const (
	// WheelFactor is the magnification change per wheel notch.
	WheelFactor = 1.1
	// WheelIdle ends a wheel session when no notch arrives for this long.
	WheelIdle = 400 * time.Millisecond
)

// Wheel emulates a pinch with the scroll wheel. A run of wheel notches is
// one pinch session; Flush ends it. The magnification stays within
// [viewer.FittedScale, MaxScale] since a wheel has no release to settle
// out-of-range values.
type Wheel struct {
	Factor float64
	// MaxScale defaults to viewer.DefaultLimits().MaxScale.
	MaxScale float64
	// Now defaults to time.Now.
	Now func() time.Time

	active bool
	mag    float64
	last   time.Time
}

func (w *Wheel) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

// Mouse handles a wheel step. Other mouse events are ignored.
func (w *Wheel) Mouse(e mouse.Event, st viewer.State) (viewer.Event, bool) {
	var up bool
	switch e.Button {
	case mouse.ButtonWheelUp:
		up = true
	case mouse.ButtonWheelDown:
	default:
		return nil, false
	}
	now := w.now()
	if !w.active || now.Sub(w.last) > WheelIdle {
		w.active = true
		w.mag = st.Scale
	}
	w.last = now

	f := w.Factor
	if f <= 1 {
		f = WheelFactor
	}
	if up {
		w.mag *= f
	} else {
		w.mag /= f
	}
	hi := w.MaxScale
	if hi <= viewer.FittedScale {
		hi = viewer.DefaultLimits().MaxScale
	}
	w.mag = min(max(w.mag, viewer.FittedScale), hi)
	return viewer.PinchChanged{Magnification: w.mag}, true
}

// Active reports whether a pinch session is open.
func (w *Wheel) Active() bool { return w.active }

// Flush closes an open session, returning PinchEnded.
func (w *Wheel) Flush() (viewer.Event, bool) {
	if !w.active {
		return nil, false
	}
	w.active = false
	return viewer.PinchEnded{}, true
}
