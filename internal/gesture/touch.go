package gesture

import (
	"image"
	"math"
	"time"

	"golang.org/x/mobile/event/touch"

	"github.com/example/pinchview/internal/viewer"
)

const (
	// TapSlop is how far a finger may move and still count as a tap.
	TapSlop = 10
	// DoubleTapWindow is the longest gap between the taps of a double tap.
	DoubleTapWindow = 300 * time.Millisecond
)

type finger struct {
	start, cur viewer.Point
}

// Touch recognises drags, double taps and two-finger pinches from touch
// sequences.
type Touch struct {
	// Now defaults to time.Now.
	Now func() time.Time
	// OnTap is called for single taps that did not complete a double tap.
	OnTap func(p image.Point) []viewer.Event

	fingers map[touch.Sequence]*finger

	dragging   bool
	dragBase   viewer.Point
	pinching   bool
	pair       [2]touch.Sequence
	pinchBase  float64
	startDist  float64
	spent      bool
	lastTap    time.Time
	lastTapPos viewer.Point
}

func (t *Touch) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

// Touch feeds one touch event.
func (t *Touch) Touch(e touch.Event, st viewer.State) []viewer.Event {
	if t.fingers == nil {
		t.fingers = make(map[touch.Sequence]*finger)
	}
	p := viewer.Point{X: float64(e.X), Y: float64(e.Y)}

	switch e.Type {
	case touch.TypeBegin:
		t.fingers[e.Sequence] = &finger{start: p, cur: p}
		if len(t.fingers) == 2 && !t.pinching {
			t.dragging = false
			t.pinching = true
			t.spent = true
			t.pair = [2]touch.Sequence{t.other(e.Sequence), e.Sequence}
			t.pinchBase = max(st.Scale, viewer.FittedScale)
			t.startDist = t.spread()
		}

	case touch.TypeMove:
		f, ok := t.fingers[e.Sequence]
		if !ok {
			return nil
		}
		f.cur = p
		if t.pinching {
			if e.Sequence != t.pair[0] && e.Sequence != t.pair[1] {
				return nil
			}
			if t.startDist <= 0 {
				return nil
			}
			return []viewer.Event{viewer.PinchChanged{Magnification: t.pinchBase * t.spread() / t.startDist}}
		}
		if t.spent {
			return nil
		}
		if !t.dragging && dist(f.start, f.cur) > TapSlop {
			t.dragging = true
			t.dragBase = st.Offset
		}
		if t.dragging {
			d := viewer.Point{X: f.cur.X - f.start.X, Y: f.cur.Y - f.start.Y}
			return []viewer.Event{viewer.DragChanged{Translation: t.dragBase.Add(d)}}
		}

	case touch.TypeEnd:
		f, ok := t.fingers[e.Sequence]
		if !ok {
			return nil
		}
		delete(t.fingers, e.Sequence)
		defer func() {
			if len(t.fingers) == 0 {
				t.spent = false
			}
		}()
		switch {
		case t.pinching:
			t.pinching = false
			return []viewer.Event{viewer.PinchEnded{}}
		case t.dragging:
			t.dragging = false
			return []viewer.Event{viewer.DragEnded{}}
		case t.spent || dist(f.start, p) > TapSlop:
			return nil
		}
		return t.tap(p)
	}
	return nil
}

func (t *Touch) tap(p viewer.Point) []viewer.Event {
	now := t.now()
	if !t.lastTap.IsZero() && now.Sub(t.lastTap) <= DoubleTapWindow && dist(t.lastTapPos, p) <= TapSlop {
		t.lastTap = time.Time{}
		return []viewer.Event{viewer.DoubleTap{}}
	}
	t.lastTap = now
	t.lastTapPos = p
	if t.OnTap != nil {
		return t.OnTap(image.Pt(int(p.X), int(p.Y)))
	}
	return nil
}

// other returns the sequence of the finger that is down besides seq.
func (t *Touch) other(seq touch.Sequence) touch.Sequence {
	for s := range t.fingers {
		if s != seq {
			return s
		}
	}
	return seq
}

// spread measures the two fingers that started the pinch.
func (t *Touch) spread() float64 {
	a, okA := t.fingers[t.pair[0]]
	b, okB := t.fingers[t.pair[1]]
	if !okA || !okB {
		return 0
	}
	return dist(a.cur, b.cur)
}

func dist(a, b viewer.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
