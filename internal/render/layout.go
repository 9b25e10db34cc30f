package render

import (
	"image"
)

const (
	// BarHeight is the height of the bottom button bar.
	BarHeight = 32
	// DrawerWidth is the width of the open thumbnail drawer.
	DrawerWidth = 120

	pagePadding  = 16
	thumbPadding = 10
	buttonWidth  = 64
)

// Button identifies a control in the bottom bar.
type Button int

const (
	ButtonNone Button = iota
	ButtonZoomOut
	ButtonReset
	ButtonZoomIn
	ButtonDrawer
)

// Label is the text drawn on the button.
func (b Button) Label() string {
	switch b {
	case ButtonZoomOut:
		return "-"
	case ButtonReset:
		return "Reset"
	case ButtonZoomIn:
		return "+"
	case ButtonDrawer:
		return "Pages"
	}
	return ""
}

// ButtonRect places a button.
type ButtonRect struct {
	Button Button
	Rect   image.Rectangle
}

// Layout holds the screen regions for one window size.
type Layout struct {
	Size    image.Point
	Canvas  image.Rectangle
	Bar     image.Rectangle
	Drawer  image.Rectangle // empty when the drawer is closed
	Thumbs  []image.Rectangle
	Buttons []ButtonRect
}

// NewLayout computes the regions of a width x height window showing
// pageCount thumbnails when the drawer is open.
func NewLayout(width, height, pageCount int, drawerOpen bool) Layout {
	width = max(width, 1)
	height = max(height, BarHeight+1)
	l := Layout{
		Size:   image.Pt(width, height),
		Canvas: image.Rect(0, 0, width, height-BarHeight),
		Bar:    image.Rect(0, height-BarHeight, width, height),
	}

	x := l.Bar.Min.X
	for _, b := range []Button{ButtonZoomOut, ButtonReset, ButtonZoomIn} {
		l.Buttons = append(l.Buttons, ButtonRect{Button: b, Rect: image.Rect(x, l.Bar.Min.Y, x+buttonWidth, l.Bar.Max.Y)})
		x += buttonWidth
	}
	l.Buttons = append(l.Buttons, ButtonRect{
		Button: ButtonDrawer,
		Rect:   image.Rect(l.Bar.Max.X-buttonWidth, l.Bar.Min.Y, l.Bar.Max.X, l.Bar.Max.Y),
	})

	if drawerOpen {
		l.Drawer = image.Rect(l.Canvas.Max.X-DrawerWidth, l.Canvas.Min.Y, l.Canvas.Max.X, l.Canvas.Max.Y)
		thumbW := DrawerWidth - 2*thumbPadding
		thumbH := thumbW * 4 / 3
		y := l.Drawer.Min.Y + thumbPadding
		for i := 0; i < pageCount; i++ {
			x0 := l.Drawer.Min.X + thumbPadding
			l.Thumbs = append(l.Thumbs, image.Rect(x0, y, x0+thumbW, y+thumbH))
			y += thumbH + thumbPadding
		}
	}
	return l
}

// HitButton returns the bar button under p.
func (l Layout) HitButton(p image.Point) (Button, bool) {
	for _, b := range l.Buttons {
		if p.In(b.Rect) {
			return b.Button, true
		}
	}
	return ButtonNone, false
}

// HitThumbnail returns the 0-based catalog position of the thumbnail
// under p. Thumbnails only exist while the drawer is open.
func (l Layout) HitThumbnail(p image.Point) (int, bool) {
	for i, r := range l.Thumbs {
		if p.In(r) {
			return i, true
		}
	}
	return 0, false
}

// FitRect returns the largest rectangle with img's aspect ratio that fits
// inside canvas after padding, centred.
func FitRect(canvas, img image.Rectangle) image.Rectangle {
	area := canvas.Inset(pagePadding)
	if area.Empty() {
		area = canvas
	}
	iw, ih := img.Dx(), img.Dy()
	if iw <= 0 || ih <= 0 || area.Empty() {
		return image.Rectangle{Min: area.Min, Max: area.Min}
	}
	w := area.Dx()
	h := w * ih / iw
	if h > area.Dy() {
		h = area.Dy()
		w = h * iw / ih
	}
	x0 := area.Min.X + (area.Dx()-w)/2
	y0 := area.Min.Y + (area.Dy()-h)/2
	return image.Rect(x0, y0, x0+w, y0+h)
}
