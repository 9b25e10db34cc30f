package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/pinchview/internal/catalog"
	"github.com/example/pinchview/internal/theme"
	"github.com/example/pinchview/internal/viewer"
)

// Scene is everything needed to draw one frame.
type Scene struct {
	State  viewer.State
	Layout Layout
	Theme  *theme.Theme

	Page   catalog.Page
	Image  image.Image
	Shadow ShadowResult // optional, see PageShadow

	Pages  []catalog.Page
	Thumbs []image.Image // parallel to Pages

	Message string
}

// PageRect returns where the page lands on screen: fitted into canvas,
// scaled about the canvas centre, then translated by the offset.
func PageRect(canvas, img image.Rectangle, st viewer.State) image.Rectangle {
	fit := FitRect(canvas, img)
	cx := float64(canvas.Min.X+canvas.Max.X) / 2
	cy := float64(canvas.Min.Y+canvas.Max.Y) / 2
	tx := func(v int, c, off float64) int {
		return int(math.Round(c + (float64(v)-c)*st.Scale + off))
	}
	return image.Rect(
		tx(fit.Min.X, cx, st.Offset.X), tx(fit.Min.Y, cy, st.Offset.Y),
		tx(fit.Max.X, cx, st.Offset.X), tx(fit.Max.Y, cy, st.Offset.Y),
	)
}

// Frame draws sc into dst.
func Frame(dst *image.RGBA, sc Scene) {
	th := sc.Theme
	if th == nil {
		th = theme.Default()
	}
	l := sc.Layout
	draw.Draw(dst, dst.Bounds(), image.NewUniform(th.Background), image.Point{}, draw.Src)

	if canvas, ok := dst.SubImage(l.Canvas).(*image.RGBA); ok && sc.Image != nil {
		drawPage(canvas, l.Canvas, sc)
	}
	if !l.Drawer.Empty() {
		drawDrawer(dst, sc, th)
	}
	drawBar(dst, sc, th)
	if sc.State.InfoVisible {
		drawInfo(dst, sc, th)
	}
	if sc.Message != "" {
		drawMessage(dst, l, sc.Message, th)
	}
}

func drawPage(canvas *image.RGBA, area image.Rectangle, sc Scene) {
	src := sc.Image.Bounds()
	pr := PageRect(area, src, sc.State)
	if pr.Empty() {
		return
	}
	if sh := sc.Shadow; sh.Image != nil {
		fit := FitRect(area, src)
		if fit.Dx() > 0 {
			k := float64(pr.Dx()) / float64(fit.Dx())
			origin := pr.Min.Sub(image.Pt(int(float64(sh.Offset.X)*k), int(float64(sh.Offset.Y)*k)))
			size := sh.Image.Bounds().Size()
			sr := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(int(float64(size.X)*k), int(float64(size.Y)*k)))}
			xdraw.ApproxBiLinear.Scale(canvas, sr, sh.Image, sh.Image.Bounds(), draw.Over, nil)
		}
	}
	xdraw.ApproxBiLinear.Scale(canvas, pr, sc.Image, src, draw.Over, nil)
}

func drawDrawer(dst *image.RGBA, sc Scene, th *theme.Theme) {
	l := sc.Layout
	draw.Draw(dst, l.Drawer, image.NewUniform(th.DrawerBackground), image.Point{}, draw.Over)
	strokeRect(dst, image.Rect(l.Drawer.Min.X, l.Drawer.Min.Y, l.Drawer.Min.X+1, l.Drawer.Max.Y), th.DrawerBorder, 1)
	dimmed := th.DrawerBackground
	dimmed.A = 140
	for i, r := range l.Thumbs {
		if i >= len(sc.Pages) {
			break
		}
		if i < len(sc.Thumbs) && sc.Thumbs[i] != nil {
			xdraw.ApproxBiLinear.Scale(dst, r, sc.Thumbs[i], sc.Thumbs[i].Bounds(), draw.Src, nil)
		}
		if sc.Pages[i].ID == sc.State.PageIndex {
			strokeRect(dst, r.Inset(-2), th.ThumbnailActive, 2)
			continue
		}
		draw.Draw(dst, r, image.NewUniform(dimmed), image.Point{}, draw.Over)
		strokeRect(dst, r, th.DrawerBorder, 1)
	}
}

func drawBar(dst *image.RGBA, sc Scene, th *theme.Theme) {
	l := sc.Layout
	draw.Draw(dst, l.Bar, image.NewUniform(th.ButtonBackground), image.Point{}, draw.Src)
	for _, b := range l.Buttons {
		if b.Button == ButtonDrawer && sc.State.DrawerOpen {
			draw.Draw(dst, b.Rect, image.NewUniform(th.ThumbnailActive), image.Point{}, draw.Src)
		}
		strokeRect(dst, b.Rect, th.ButtonBorder, 1)
		label := b.Button.Label()
		w := textWidth(label)
		drawText(dst, b.Rect.Min.X+(b.Rect.Dx()-w)/2, b.Rect.Min.Y+20, label, th.ButtonText)
	}
	if len(l.Buttons) < 2 {
		return
	}
	zoom := fmt.Sprintf("%.0f%%", sc.State.Scale*100)
	x := l.Buttons[len(l.Buttons)-2].Rect.Max.X + 8
	drawText(dst, x, l.Bar.Min.Y+20, zoom, th.ButtonText)
}

// InfoLines are the rows of the info overlay.
func InfoLines(sc Scene) []string {
	st := sc.State
	return []string{
		fmt.Sprintf("Page %d: %s", st.PageIndex, sc.Page.ImageName),
		fmt.Sprintf("Scale: %.2f", st.Scale),
		fmt.Sprintf("Offset: %.0f, %.0f", st.Offset.X, st.Offset.Y),
		fmt.Sprintf("Mode: %s", st.Regime()),
	}
}

func drawInfo(dst *image.RGBA, sc Scene, th *theme.Theme) {
	lines := InfoLines(sc)
	w := 0
	for _, ln := range lines {
		w = max(w, textWidth(ln))
	}
	box := image.Rect(8, 8, 8+w+16, 8+len(lines)*16+8)
	draw.Draw(dst, box, image.NewUniform(th.InfoBackground), image.Point{}, draw.Over)
	for i, ln := range lines {
		drawText(dst, box.Min.X+8, box.Min.Y+16+i*16, ln, th.InfoText)
	}
}

func drawMessage(dst *image.RGBA, l Layout, msg string, th *theme.Theme) {
	w := textWidth(msg) + 16
	cx := l.Canvas.Min.X + l.Canvas.Dx()/2
	box := image.Rect(cx-w/2, l.Canvas.Max.Y-40, cx+w/2, l.Canvas.Max.Y-12)
	draw.Draw(dst, box, image.NewUniform(th.InfoBackground), image.Point{}, draw.Over)
	drawText(dst, box.Min.X+8, box.Min.Y+19, msg, th.InfoText)
}

func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

func drawText(dst *image.RGBA, x, y int, s string, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func strokeRect(dst *image.RGBA, r image.Rectangle, col color.Color, thick int) {
	u := image.NewUniform(col)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thick), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-thick, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+thick, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-thick, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}
