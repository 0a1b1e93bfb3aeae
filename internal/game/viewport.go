package game

import (
	"sync"

	"github.com/iburimskiy/bgfield/internal/config"
)

// Viewport is the host area (window, terminal, framebuffer). It notifies
// observers whenever SetSize changes its dimensions.
type Viewport struct {
	mu        sync.Mutex
	w, h      float64
	nextID    uint64
	observers map[uint64]func()
}

func NewViewport(w, h float64) *Viewport {
	return &Viewport{w: w, h: h, observers: map[uint64]func(){}}
}

// Size returns the current host dimensions.
func (v *Viewport) Size() (w, h float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.w, v.h
}

// SetSize updates the host dimensions and reports whether they changed.
func (v *Viewport) SetSize(w, h float64) bool {
	v.mu.Lock()
	if v.w == w && v.h == h {
		v.mu.Unlock()
		return false
	}
	v.w, v.h = w, h
	fns := make([]func(), 0, len(v.observers))
	for _, fn := range v.observers {
		fns = append(fns, fn)
	}
	v.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return true
}

func (v *Viewport) observe(fn func()) func() {
	v.mu.Lock()
	defer v.mu.Unlock()
	id := v.nextID
	v.nextID++
	v.observers[id] = fn
	return func() {
		v.mu.Lock()
		delete(v.observers, id)
		v.mu.Unlock()
	}
}

// Observers returns the number of live subscriptions, for embedders that
// want to confirm every surface let go of the viewport.
func (v *Viewport) Observers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.observers)
}

// Bounds and Observe make the whole viewport usable as a Container.
func (v *Viewport) Bounds() (w, h float64) { return v.Size() }

func (v *Viewport) Observe(fn func()) (cancel func()) { return v.observe(fn) }

// PanelContainer is a fractional rectangle of a Viewport.
type PanelContainer struct {
	vp    *Viewport
	panel config.Panel
}

// Panel returns the container for p within v.
func (v *Viewport) Panel(p config.Panel) *PanelContainer {
	return &PanelContainer{vp: v, panel: p}
}

// Origin returns the panel's top-left corner in host pixels.
func (c *PanelContainer) Origin() (x, y float64) {
	w, h := c.vp.Size()
	return c.panel.X * w, c.panel.Y * h
}

func (c *PanelContainer) Bounds() (w, h float64) {
	vw, vh := c.vp.Size()
	return c.panel.W * vw, c.panel.H * vh
}

func (c *PanelContainer) Observe(fn func()) (cancel func()) { return c.vp.observe(fn) }
