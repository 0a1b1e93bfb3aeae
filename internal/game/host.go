package game

import "image/color"

// Container is the element a surface is laid out in. Bounds may be zero,
// negative or NaN while the host has no layout yet; Bind sanitizes them.
type Container interface {
	Bounds() (w, h float64)
	// Observe calls fn after every bounds change until cancel is called.
	Observe(fn func()) (cancel func())
}

// Surface is a raster owned by exactly one container.
type Surface interface {
	Size() (w, h int)
	// SetSize resizes the raster. Resizing clears the drawn content.
	SetSize(w, h int)
	Clear()
	FillCircle(x, y, r float64, c color.Color)
}

// Scheduler invokes a callback before the next repaint.
type Scheduler interface {
	RequestFrame(fn func()) (cancel func())
}

// Target is one candidate surface together with its host container.
type Target struct {
	Container Container
	Surface   Surface
	// Remove detaches the surface from its host. May be nil.
	Remove func()
}
