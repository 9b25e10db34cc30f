package render

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/example/pinchview/internal/catalog"
	"github.com/example/pinchview/internal/theme"
	"github.com/example/pinchview/internal/viewer"
)

var red = color.RGBA{R: 255, A: 255}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func testScene(st viewer.State) Scene {
	pages := []catalog.Page{{ID: 1, ImageName: "front"}, {ID: 2, ImageName: "back"}}
	return Scene{
		State:  st,
		Layout: NewLayout(432, 632+BarHeight, len(pages), st.DrawerOpen),
		Theme:  theme.Default(),
		Page:   pages[0],
		Image:  solid(400, 600, red),
		Pages:  pages,
		Thumbs: []image.Image{solid(30, 40, red), solid(30, 40, color.RGBA{B: 255, A: 255})},
	}
}

func render(sc Scene) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: sc.Layout.Size})
	Frame(dst, sc)
	return dst
}

func TestPageRect(t *testing.T) {
	canvas := image.Rect(0, 0, 432, 632)
	img := image.Rect(0, 0, 400, 600)

	got := PageRect(canvas, img, viewer.State{Scale: 1})
	if want := image.Rect(16, 16, 416, 616); got != want {
		t.Fatalf("fitted: expected %v, got %v", want, got)
	}

	got = PageRect(canvas, img, viewer.State{Scale: 2, Offset: viewer.Point{X: 10, Y: -5}})
	if want := image.Rect(-174, -289, 626, 911); got != want {
		t.Fatalf("zoomed: expected %v, got %v", want, got)
	}
}

func TestFitRectKeepsAspect(t *testing.T) {
	got := FitRect(image.Rect(0, 0, 832, 432), image.Rect(0, 0, 400, 600))
	if got.Dy() != 400 || got.Dx() != 266 {
		t.Fatalf("unexpected fit %v", got)
	}
	if mid := (got.Min.X + got.Max.X) / 2; mid < 415 || mid > 417 {
		t.Fatalf("expected horizontal centring, mid %d", mid)
	}
}

func TestFrameFittedPage(t *testing.T) {
	dst := render(testScene(viewer.State{Scale: 1, PageIndex: 1}))
	if got := dst.RGBAAt(216, 316); got != red {
		t.Fatalf("expected page at centre, got %+v", got)
	}
	if got := dst.RGBAAt(4, 4); got != theme.Default().Background {
		t.Fatalf("expected background outside page, got %+v", got)
	}
}

func TestFrameZoomClipsToCanvas(t *testing.T) {
	dst := render(testScene(viewer.State{Scale: 5, PageIndex: 1}))
	if got := dst.RGBAAt(1, 1); got != red {
		t.Fatalf("expected zoomed page to cover the corner, got %+v", got)
	}
	if got := dst.RGBAAt(200, 632+BarHeight-2); got == red {
		t.Fatalf("page must not bleed into the button bar")
	}
}

func TestFrameDrawerAndInfo(t *testing.T) {
	closed := render(testScene(viewer.State{Scale: 1, PageIndex: 1}))
	open := render(testScene(viewer.State{Scale: 1, PageIndex: 1, DrawerOpen: true, InfoVisible: true}))

	if closed.RGBAAt(330, 450) != red {
		t.Fatalf("expected page under the closed drawer area")
	}
	if open.RGBAAt(330, 450) == red {
		t.Fatalf("expected drawer to cover the page")
	}
	if open.RGBAAt(10, 10) == closed.RGBAAt(10, 10) {
		t.Fatalf("expected info overlay at the top-left corner")
	}
}

func TestInfoLines(t *testing.T) {
	sc := testScene(viewer.State{Scale: 3.2, Offset: viewer.Point{X: 12, Y: -7}, PageIndex: 1})
	lines := InfoLines(sc)
	if lines[0] != "Page 1: front" || lines[1] != "Scale: 3.20" || lines[2] != "Offset: 12, -7" || lines[3] != "Mode: zoomed" {
		t.Fatalf("unexpected info lines %q", lines)
	}
}

func TestLayoutHitTesting(t *testing.T) {
	l := NewLayout(432, 664, 2, false)
	if len(l.Thumbs) != 0 {
		t.Fatalf("closed drawer must not expose thumbnails")
	}
	if b, ok := l.HitButton(image.Pt(10, 650)); !ok || b != ButtonZoomOut {
		t.Fatalf("expected zoom out button, got %v %v", b, ok)
	}
	if b, ok := l.HitButton(image.Pt(100, 650)); !ok || b != ButtonReset {
		t.Fatalf("expected reset button, got %v %v", b, ok)
	}
	if b, ok := l.HitButton(image.Pt(430, 650)); !ok || b != ButtonDrawer {
		t.Fatalf("expected drawer button, got %v %v", b, ok)
	}
	if _, ok := l.HitButton(image.Pt(200, 100)); ok {
		t.Fatalf("canvas is not a button")
	}

	l = NewLayout(432, 664, 2, true)
	if len(l.Thumbs) != 2 {
		t.Fatalf("expected 2 thumbnails, got %d", len(l.Thumbs))
	}
	if idx, ok := l.HitThumbnail(l.Thumbs[1].Min.Add(image.Pt(3, 3))); !ok || idx != 1 {
		t.Fatalf("expected second thumbnail, got %d %v", idx, ok)
	}
	if _, ok := l.HitThumbnail(image.Pt(5, 5)); ok {
		t.Fatalf("unexpected thumbnail hit")
	}
}
