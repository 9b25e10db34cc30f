package gesture

import (
	"image"
	"math"
	"testing"
	"time"

	shiny "golang.org/x/exp/shiny/gesture"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"

	"github.com/example/pinchview/internal/catalog"
	"github.com/example/pinchview/internal/render"
	"github.com/example/pinchview/internal/viewer"
)

var fitted = viewer.State{Scale: viewer.FittedScale, PageIndex: 1}

func events(t *testing.T, got []viewer.Event, want ...viewer.Event) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("event %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func newMouse(drawerOpen bool) *Mouse {
	pages := []catalog.Page{{ID: 1, ImageName: "a"}, {ID: 2, ImageName: "b"}}
	return &Mouse{Layout: render.NewLayout(432, 664, len(pages), drawerOpen), Pages: pages}
}

func TestMouseDoublePressAndLongPress(t *testing.T) {
	m := newMouse(false)
	at := shiny.Point{X: 100, Y: 100}
	events(t, m.Gesture(shiny.Event{Type: shiny.TypeIsDoublePress, InitialPos: at, CurrentPos: at}, fitted), viewer.DoubleTap{})
	events(t, m.Gesture(shiny.Event{Type: shiny.TypeIsLongPress, InitialPos: at, CurrentPos: at}, fitted), viewer.ToggleInfo{})

	bar := shiny.Point{X: 10, Y: 650}
	events(t, m.Gesture(shiny.Event{Type: shiny.TypeIsDoublePress, InitialPos: bar, CurrentPos: bar}, fitted))
}

func TestMouseDragFromCurrentOffset(t *testing.T) {
	m := newMouse(false)
	st := viewer.State{Scale: 3, Offset: viewer.Point{X: 5, Y: 5}, PageIndex: 1}
	start := shiny.Point{X: 100, Y: 100}
	m.Gesture(shiny.Event{Type: shiny.TypeIsDrag, Drag: true, InitialPos: start, CurrentPos: start}, st)
	got := m.Gesture(shiny.Event{Type: shiny.TypeDrag, Drag: true, InitialPos: start, CurrentPos: shiny.Point{X: 150, Y: 130}}, st)
	events(t, got, viewer.DragChanged{Translation: viewer.Point{X: 55, Y: 35}})
	events(t, m.Gesture(shiny.Event{Type: shiny.TypeEnd, Drag: true, InitialPos: start}, st), viewer.DragEnded{})
	events(t, m.Gesture(shiny.Event{Type: shiny.TypeEnd, InitialPos: start}, st))
}

func TestMouseDragOutsideCanvasIgnored(t *testing.T) {
	m := newMouse(false)
	start := shiny.Point{X: 10, Y: 650}
	m.Gesture(shiny.Event{Type: shiny.TypeIsDrag, Drag: true, InitialPos: start, CurrentPos: start}, fitted)
	events(t, m.Gesture(shiny.Event{Type: shiny.TypeDrag, Drag: true, InitialPos: start, CurrentPos: shiny.Point{X: 90, Y: 600}}, fitted))
}

func TestMouseTapHitTesting(t *testing.T) {
	m := newMouse(true)
	tap := func(x, y float32) []viewer.Event {
		return m.Gesture(shiny.Event{Type: shiny.TypeTap, CurrentPos: shiny.Point{X: x, Y: y}}, fitted)
	}
	events(t, tap(10, 650), viewer.ZoomOut{})
	events(t, tap(100, 650), viewer.Reset{})
	events(t, tap(150, 650), viewer.ZoomIn{})
	events(t, tap(420, 650), viewer.ToggleDrawer{})
	th := m.Layout.Thumbs[1].Min.Add(image.Pt(4, 4))
	events(t, tap(float32(th.X), float32(th.Y)), viewer.SelectPage{ID: 2})
	events(t, tap(100, 100))

	dbl := shiny.Event{Type: shiny.TypeTap, DoublePress: true, CurrentPos: shiny.Point{X: 150, Y: 650}}
	events(t, m.Gesture(dbl, fitted))
}

func TestWheelPinchSession(t *testing.T) {
	var w Wheel
	if _, ok := w.Flush(); ok {
		t.Fatalf("flush without a session")
	}
	ev, ok := w.Mouse(mouse.Event{Button: mouse.ButtonWheelUp, Direction: mouse.DirStep}, fitted)
	if !ok {
		t.Fatalf("expected wheel event")
	}
	if got := ev.(viewer.PinchChanged).Magnification; math.Abs(got-1.1) > 1e-9 {
		t.Fatalf("expected 1.1, got %v", got)
	}
	ev, _ = w.Mouse(mouse.Event{Button: mouse.ButtonWheelUp, Direction: mouse.DirStep}, fitted)
	if got := ev.(viewer.PinchChanged).Magnification; math.Abs(got-1.21) > 1e-9 {
		t.Fatalf("expected 1.21, got %v", got)
	}
	if !w.Active() {
		t.Fatalf("expected active session")
	}
	ev, ok = w.Flush()
	if !ok || ev != (viewer.PinchEnded{}) {
		t.Fatalf("expected PinchEnded, got %v", ev)
	}
	if _, ok := w.Mouse(mouse.Event{Button: mouse.ButtonLeft, Direction: mouse.DirPress}, fitted); ok {
		t.Fatalf("left button is not a wheel step")
	}
}

func TestWheelStartsFromCurrentScale(t *testing.T) {
	var w Wheel
	ev, _ := w.Mouse(mouse.Event{Button: mouse.ButtonWheelDown, Direction: mouse.DirStep}, viewer.State{Scale: 2.2})
	if got := ev.(viewer.PinchChanged).Magnification; math.Abs(got-2) > 1e-9 {
		t.Fatalf("expected 2, got %v", got)
	}
}

func wheelSession(t *testing.T, start float64, notches ...mouse.Button) []float64 {
	t.Helper()
	cat := catalog.MustNew(catalog.Page{ID: 1, ImageName: "a"})
	st := fitted
	st.Scale = start
	s := viewer.NewSession(cat, viewer.DefaultLimits(), viewer.WithState(st))
	c := &clock{t: time.Unix(0, 0)}
	w := &Wheel{Now: c.now, MaxScale: viewer.DefaultLimits().MaxScale}
	var scales []float64
	for _, b := range notches {
		ev, ok := w.Mouse(mouse.Event{Button: b, Direction: mouse.DirStep}, s.State())
		if !ok {
			t.Fatalf("expected wheel event")
		}
		if err := s.Apply(ev); err != nil {
			t.Fatalf("apply %v: %v", ev, err)
		}
		scales = append(scales, s.State().Scale)
		c.t = c.t.Add(50 * time.Millisecond)
	}
	return scales
}

func TestWheelDownThenUpFromFitted(t *testing.T) {
	got := wheelSession(t, 1, mouse.ButtonWheelDown, mouse.ButtonWheelUp, mouse.ButtonWheelUp)
	want := []float64{1, 1.1, 1.21}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("notch %d: expected scale %v, got %v", i, want[i], got[i])
		}
	}
}

func TestWheelPastMaxThenDown(t *testing.T) {
	up, down := mouse.ButtonWheelUp, mouse.ButtonWheelDown
	got := wheelSession(t, 5, up, up, up, down, down)
	for i, sc := range got[:3] {
		if sc != 5 {
			t.Fatalf("notch %d: expected scale held at 5, got %v", i, sc)
		}
	}
	if math.Abs(got[3]-5/1.1) > 1e-9 || got[4] >= got[3] {
		t.Fatalf("expected scrolling down to zoom out, got %v", got)
	}
}

func TestWheelIdleStartsNewSession(t *testing.T) {
	c := &clock{t: time.Unix(0, 0)}
	w := &Wheel{Now: c.now}
	w.Mouse(mouse.Event{Button: mouse.ButtonWheelUp, Direction: mouse.DirStep}, fitted)
	c.t = c.t.Add(time.Second)
	ev, _ := w.Mouse(mouse.Event{Button: mouse.ButtonWheelUp, Direction: mouse.DirStep}, viewer.State{Scale: 3})
	if got := ev.(viewer.PinchChanged).Magnification; math.Abs(got-3.3) > 1e-9 {
		t.Fatalf("expected session restarted from 3, got %v", got)
	}
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestTouchDoubleTap(t *testing.T) {
	c := &clock{t: time.Unix(0, 0)}
	var taps int
	tr := &Touch{Now: c.now, OnTap: func(image.Point) []viewer.Event { taps++; return nil }}
	tapAt := func(x, y float32) []viewer.Event {
		tr.Touch(touch.Event{X: x, Y: y, Sequence: 1, Type: touch.TypeBegin}, fitted)
		return tr.Touch(touch.Event{X: x, Y: y, Sequence: 1, Type: touch.TypeEnd}, fitted)
	}
	events(t, tapAt(100, 100))
	c.t = c.t.Add(200 * time.Millisecond)
	events(t, tapAt(104, 103), viewer.DoubleTap{})
	if taps != 1 {
		t.Fatalf("expected one single tap, got %d", taps)
	}

	c.t = c.t.Add(time.Second)
	tapAt(100, 100)
	c.t = c.t.Add(DoubleTapWindow + time.Millisecond)
	events(t, tapAt(100, 100))
}

func TestTouchDrag(t *testing.T) {
	tr := &Touch{}
	st := viewer.State{Scale: 2, Offset: viewer.Point{X: 1, Y: 1}}
	tr.Touch(touch.Event{X: 100, Y: 100, Sequence: 3, Type: touch.TypeBegin}, st)
	events(t, tr.Touch(touch.Event{X: 105, Y: 100, Sequence: 3, Type: touch.TypeMove}, st))
	events(t, tr.Touch(touch.Event{X: 150, Y: 80, Sequence: 3, Type: touch.TypeMove}, st),
		viewer.DragChanged{Translation: viewer.Point{X: 51, Y: -19}})
	events(t, tr.Touch(touch.Event{X: 150, Y: 80, Sequence: 3, Type: touch.TypeEnd}, st), viewer.DragEnded{})
}

func TestTouchPinch(t *testing.T) {
	tr := &Touch{}
	tr.Touch(touch.Event{X: 100, Y: 100, Sequence: 1, Type: touch.TypeBegin}, fitted)
	tr.Touch(touch.Event{X: 200, Y: 100, Sequence: 2, Type: touch.TypeBegin}, fitted)
	got := tr.Touch(touch.Event{X: 300, Y: 100, Sequence: 2, Type: touch.TypeMove}, fitted)
	events(t, got, viewer.PinchChanged{Magnification: 2})
	events(t, tr.Touch(touch.Event{X: 300, Y: 100, Sequence: 2, Type: touch.TypeEnd}, fitted), viewer.PinchEnded{})
	// The remaining finger lifts without producing a tap or drag.
	events(t, tr.Touch(touch.Event{X: 160, Y: 100, Sequence: 1, Type: touch.TypeMove}, fitted))
	events(t, tr.Touch(touch.Event{X: 160, Y: 100, Sequence: 1, Type: touch.TypeEnd}, fitted))
}

func TestTouchPinchIgnoresExtraFingers(t *testing.T) {
	tr := &Touch{}
	tr.Touch(touch.Event{X: 100, Y: 100, Sequence: 1, Type: touch.TypeBegin}, fitted)
	tr.Touch(touch.Event{X: 200, Y: 100, Sequence: 2, Type: touch.TypeBegin}, fitted)
	tr.Touch(touch.Event{X: 600, Y: 600, Sequence: 3, Type: touch.TypeBegin}, fitted)
	events(t, tr.Touch(touch.Event{X: 700, Y: 700, Sequence: 3, Type: touch.TypeMove}, fitted))
	for i := 0; i < 20; i++ {
		got := tr.Touch(touch.Event{X: 300, Y: 100, Sequence: 2, Type: touch.TypeMove}, fitted)
		events(t, got, viewer.PinchChanged{Magnification: 2})
	}
}

func TestKeys(t *testing.T) {
	cases := []struct {
		e    key.Event
		want Command
	}{
		{key.Event{Rune: '+', Direction: key.DirPress}, Command{Event: viewer.ZoomIn{}}},
		{key.Event{Rune: '=', Direction: key.DirPress}, Command{Event: viewer.ZoomIn{}}},
		{key.Event{Rune: '-', Direction: key.DirPress}, Command{Event: viewer.ZoomOut{}}},
		{key.Event{Rune: 'R', Direction: key.DirPress}, Command{Event: viewer.Reset{}}},
		{key.Event{Rune: '0', Direction: key.DirPress}, Command{Event: viewer.Reset{}}},
		{key.Event{Rune: -1, Code: key.CodeTab, Direction: key.DirPress}, Command{Event: viewer.ToggleDrawer{}}},
		{key.Event{Rune: 'i', Direction: key.DirPress}, Command{Event: viewer.ToggleInfo{}}},
		{key.Event{Rune: '7', Direction: key.DirPress}, Command{Event: viewer.SelectPage{ID: 7}}},
		{key.Event{Rune: 'c', Direction: key.DirPress}, Command{Action: ActionCopy}},
		{key.Event{Rune: 's', Direction: key.DirPress}, Command{Action: ActionSave}},
		{key.Event{Rune: -1, Code: key.CodeEscape, Direction: key.DirPress}, Command{Action: ActionQuit}},
	}
	for _, c := range cases {
		got, ok := Key(c.e)
		if !ok || got != c.want {
			t.Errorf("%v: expected %+v, got %+v (%v)", c.e, c.want, got, ok)
		}
	}
	if _, ok := Key(key.Event{Rune: '+', Direction: key.DirRelease}); ok {
		t.Errorf("release must not map")
	}
	if _, ok := Key(key.Event{Rune: 'z', Direction: key.DirPress}); ok {
		t.Errorf("unbound key must not map")
	}
}

func TestPan(t *testing.T) {
	d, ok := Pan(key.Event{Rune: -1, Code: key.CodeLeftArrow, Direction: key.DirPress})
	if !ok || d != (viewer.Point{X: -PanStep}) {
		t.Fatalf("unexpected pan %v %v", d, ok)
	}
	st := viewer.State{Scale: 2, Offset: viewer.Point{X: 3}}
	events(t, PanEvents(st, d), viewer.DragChanged{Translation: viewer.Point{X: 3 - PanStep}}, viewer.DragEnded{})
}
