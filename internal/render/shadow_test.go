package render

import (
	"image"
	"image/color"
	"testing"
)

func TestApplyShadowExpandsBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	subject := image.Pt(5, 5)
	img.Set(subject.X, subject.Y, color.RGBA{R: 255, A: 255})

	opts := ShadowOptions{Radius: 4, Offset: image.Pt(8, 6), Opacity: 0.5}
	out := ApplyShadow(img, opts)
	if out.Image == nil {
		t.Fatal("expected output image")
	}
	expected := image.Rect(0, 0, 22, 20)
	if !out.Image.Bounds().Eq(expected) {
		t.Fatalf("unexpected bounds %v, want %v", out.Image.Bounds(), expected)
	}
	shadowPt := subject.Add(opts.Offset)
	if out.Image.RGBAAt(shadowPt.X, shadowPt.Y).A == 0 {
		t.Fatalf("expected shadow alpha at %v", shadowPt)
	}
}

func TestApplyShadowNoShadowWhenOpacityZero(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	fill := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, fill)
		}
	}
	out := ApplyShadow(img, ShadowOptions{Radius: 12, Offset: image.Pt(20, 10), Opacity: 0})
	if out.Image != img {
		t.Fatalf("expected the input image back unchanged")
	}
}

func TestApplyShadowBlurredAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{A: 255})
	opts := ShadowOptions{Radius: 2, Offset: image.Pt(3, 0), Opacity: 1}

	out := ApplyShadow(img, opts)
	if out.Image.Bounds().Dx() <= img.Bounds().Dx() {
		t.Fatalf("expected wider output bounds")
	}
	base := img.Bounds().Min.Add(opts.Offset)
	baseAlpha := out.Image.RGBAAt(base.X, base.Y).A
	if baseAlpha == 0 {
		t.Fatal("expected alpha at base shadow location")
	}
	if out.Image.RGBAAt(base.X+1, base.Y).A == 0 {
		t.Fatalf("expected blurred alpha to reach neighbor, base alpha=%d", baseAlpha)
	}
}

func TestPageShadowLeavesPageTransparent(t *testing.T) {
	res := PageShadow(image.Pt(20, 20), PageShadowOptions())
	if res.Image == nil {
		t.Fatal("expected shadow image")
	}
	if res.Offset != image.Pt(10, 10) {
		t.Fatalf("unexpected offset %v", res.Offset)
	}
	if got := res.Image.Bounds().Size(); got != image.Pt(44, 44) {
		t.Fatalf("unexpected size %v", got)
	}
	inside := res.Offset.Add(image.Pt(5, 5))
	if a := res.Image.RGBAAt(inside.X, inside.Y).A; a != 0 {
		t.Fatalf("expected page area cut out, alpha %d", a)
	}
	below := res.Offset.Add(image.Pt(21, 21))
	if res.Image.RGBAAt(below.X, below.Y).A == 0 {
		t.Fatalf("expected shadow beyond the page corner")
	}
	if PageShadow(image.Point{}, PageShadowOptions()).Image != nil {
		t.Fatalf("expected no shadow for an empty page")
	}
}
