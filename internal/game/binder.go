package game

// Resize copies the container's current bounds onto the surface raster.
// Calling it twice with unchanged bounds leaves the surface as it was.
func Resize(c Container, s Surface) {
	bw, bh := c.Bounds()
	w, h := pixelDim(bw), pixelDim(bh)
	if sw, sh := s.Size(); sw == w && sh == h {
		return
	}
	s.SetSize(w, h)
}

// Bind sizes the surface to its container and keeps it sized on every
// bounds change until the returned cancel func is called.
func Bind(c Container, s Surface) (cancel func()) {
	Resize(c, s)
	return c.Observe(func() { Resize(c, s) })
}
