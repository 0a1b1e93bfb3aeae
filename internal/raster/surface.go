// Package raster is an in-memory surface backed by image.RGBA. Circles are
// filled with the golang.org/x/image/vector rasterizer, so edges are
// antialiased the way a browser canvas would draw them.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// Surface is a software raster. The zero value is a 0x0 surface.
type Surface struct {
	img *image.RGBA
	bg  *image.Uniform
	z   vector.Rasterizer
}

// New returns a w x h surface cleared to bg. A nil bg clears to transparent.
func New(w, h int, bg color.Color) *Surface {
	if bg == nil {
		bg = color.Transparent
	}
	s := &Surface{bg: image.NewUniform(bg)}
	s.SetSize(w, h)
	return s
}

func (s *Surface) Size() (int, int) {
	if s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// SetSize reallocates the pixels, which clears them.
func (s *Surface) SetSize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
	s.Clear()
}

func (s *Surface) Clear() {
	if s.img == nil {
		return
	}
	if s.bg == nil {
		s.bg = image.NewUniform(color.Transparent)
	}
	draw.Draw(s.img, s.img.Bounds(), s.bg, image.Point{}, draw.Src)
}

// FillCircle blends a filled circle over the current content.
func (s *Surface) FillCircle(x, y, r float64, c color.Color) {
	if s.img == nil || !(r > 0) {
		return
	}
	box := image.Rect(
		int(math.Floor(x-r)), int(math.Floor(y-r)),
		int(math.Ceil(x+r)), int(math.Ceil(y+r)),
	).Intersect(s.img.Bounds())
	if box.Empty() {
		return
	}

	// rasterizer space starts at box.Min
	cx, cy := float32(x-float64(box.Min.X)), float32(y-float64(box.Min.Y))
	rr := float32(r)
	k := float32(kappa) * rr

	s.z.Reset(box.Dx(), box.Dy())
	s.z.DrawOp = draw.Over
	s.z.MoveTo(cx+rr, cy)
	s.z.CubeTo(cx+rr, cy+k, cx+k, cy+rr, cx, cy+rr)
	s.z.CubeTo(cx-k, cy+rr, cx-rr, cy+k, cx-rr, cy)
	s.z.CubeTo(cx-rr, cy-k, cx-k, cy-rr, cx, cy-rr)
	s.z.CubeTo(cx+k, cy-rr, cx+rr, cy-k, cx+rr, cy)
	s.z.ClosePath()
	s.z.Draw(s.img, box, image.NewUniform(c), image.Point{})
}

// Image returns the backing pixels. The pointer changes on SetSize.
func (s *Surface) Image() *image.RGBA {
	if s.img == nil {
		s.img = image.NewRGBA(image.Rectangle{})
	}
	return s.img
}
