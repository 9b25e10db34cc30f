package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow drawn beneath a page.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// ShadowResult captures the output of ApplyShadow.
type ShadowResult struct {
	// Image is the composited image that includes the blurred shadow.
	Image *image.RGBA
	// Offset reports where the original image's top-left corner ended up
	// inside the expanded canvas.
	Offset image.Point
}

// PageShadowOptions returns the soft shadow used under the displayed page.
func PageShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  12,
		Offset:  image.Pt(2, 2),
		Opacity: 0.2,
	}
}

// ApplyShadow composites img over a blurred drop shadow. The result always
// has a zero origin.
func ApplyShadow(img *image.RGBA, opts ShadowOptions) ShadowResult {
	if img == nil {
		return ShadowResult{}
	}
	if img.Bounds().Empty() || opts.Opacity <= 0 {
		return ShadowResult{Image: img}
	}
	opacity := min(opts.Opacity, 1)
	radius := max(opts.Radius, 0)

	srcBounds := img.Bounds()
	padded := srcBounds.Inset(-radius)
	shadowBounds := padded.Add(opts.Offset)
	composite := srcBounds.Union(shadowBounds)

	shift := srcBounds.Min.Sub(composite.Min)
	shadowOrigin := shadowBounds.Min.Sub(composite.Min)

	mask := image.NewGray(padded.Sub(padded.Min))
	for y := srcBounds.Min.Y; y < srcBounds.Max.Y; y++ {
		for x := srcBounds.Min.X; x < srcBounds.Max.X; x++ {
			if a := img.RGBAAt(x, y).A; a != 0 {
				mask.SetGray(x-padded.Min.X, y-padded.Min.Y, color.Gray{Y: a})
			}
		}
	}
	blurred := boxBlur(mask, radius)

	dst := image.NewRGBA(composite.Sub(composite.Min))
	if alpha := uint8(opacity*255 + 0.5); alpha > 0 {
		draw.DrawMask(dst, blurred.Bounds().Add(shadowOrigin), image.NewUniform(color.RGBA{A: alpha}), image.Point{}, blurred, blurred.Bounds().Min, draw.Over)
	}
	draw.Draw(dst, srcBounds.Sub(composite.Min), img, srcBounds.Min, draw.Over)

	return ShadowResult{Image: dst, Offset: shift}
}

// PageShadow returns the shadow of an opaque page of the given size with
// the page itself left transparent, ready to be scaled under the page.
func PageShadow(size image.Point, opts ShadowOptions) ShadowResult {
	if size.X <= 0 || size.Y <= 0 {
		return ShadowResult{}
	}
	solid := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(solid, solid.Bounds(), image.NewUniform(color.RGBA{A: 255}), image.Point{}, draw.Src)
	res := ApplyShadow(solid, opts)
	if res.Image == solid {
		return ShadowResult{}
	}
	// Cut the page out so only the shadow remains.
	draw.Draw(res.Image, solid.Bounds().Add(res.Offset), image.Transparent, image.Point{}, draw.Src)
	return res
}

// boxBlur runs a horizontal then a vertical running-sum box filter.
func boxBlur(src *image.Gray, radius int) *image.Gray {
	out := image.NewGray(src.Bounds())
	if radius <= 0 {
		copy(out.Pix, src.Pix)
		return out
	}
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	tmp := image.NewGray(src.Bounds())
	for y := 0; y < h; y++ {
		blurLine(src.Pix[y*src.Stride:], tmp.Pix[y*tmp.Stride:], w, 1, radius)
	}
	for x := 0; x < w; x++ {
		blurLine(tmp.Pix[x:], out.Pix[x:], h, tmp.Stride, radius)
	}
	return out
}

// blurLine averages n samples spaced stride apart over a window of
// 2*radius+1, shrinking the window at the edges.
func blurLine(src, dst []uint8, n, stride, radius int) {
	prefix := make([]int, n+1)
	for i := 0; i < n; i++ {
		prefix[i+1] = prefix[i] + int(src[i*stride])
	}
	for i := 0; i < n; i++ {
		lo := max(i-radius, 0)
		hi := min(i+radius, n-1)
		dst[i*stride] = uint8((prefix[hi+1] - prefix[lo]) / (hi - lo + 1))
	}
}
