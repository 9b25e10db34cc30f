package viewer

import (
	"fmt"
	"strconv"
)

// Event is a semantic input for the reducer. Each event prints in replay
// script syntax.
type Event interface {
	fmt.Stringer
	event()
}

// DoubleTap toggles between Fitted and the double-tap zoom level.
type DoubleTap struct{}

// DragChanged reports the translation of an ongoing drag from its start.
type DragChanged struct {
	Translation Point
}

// DragEnded ends a drag.
type DragEnded struct{}

// PinchChanged reports the magnification of an ongoing pinch relative to
// its start (1.0 means no change).
type PinchChanged struct {
	Magnification float64
}

// PinchEnded ends a pinch.
type PinchEnded struct{}

// ZoomIn is the zoom-in button.
type ZoomIn struct{}

// ZoomOut is the zoom-out button.
type ZoomOut struct{}

// Reset is the reset button.
type Reset struct{}

// SelectPage picks a page from the drawer.
type SelectPage struct {
	ID int
}

// ToggleDrawer opens or closes the thumbnail drawer.
type ToggleDrawer struct{}

// ToggleInfo shows or hides the transform overlay.
type ToggleInfo struct{}

func (DoubleTap) event() {}
func (DragChanged) event() {}
func (DragEnded) event() {}
func (PinchChanged) event() {}
func (PinchEnded) event() {}
func (ZoomIn) event() {}
func (ZoomOut) event() {}
func (Reset) event() {}
func (SelectPage) event() {}
func (ToggleDrawer) event() {}
func (ToggleInfo) event() {}

func (DoubleTap) String() string { return "doubletap" }
func (e DragChanged) String() string {
	return "drag " + formatFloat(e.Translation.X) + " " + formatFloat(e.Translation.Y)
}
func (DragEnded) String() string { return "dragend" }
func (e PinchChanged) String() string { return "pinch " + formatFloat(e.Magnification) }
func (PinchEnded) String() string { return "pinchend" }
func (ZoomIn) String() string { return "zoomin" }
func (ZoomOut) String() string { return "zoomout" }
func (Reset) String() string { return "reset" }
func (e SelectPage) String() string { return "select " + strconv.Itoa(e.ID) }
func (ToggleDrawer) String() string { return "drawer" }
func (ToggleInfo) String() string { return "info" }

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
