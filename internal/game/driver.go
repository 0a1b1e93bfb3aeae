package game

import (
	"image/color"
	"log/slog"
)

// Driver repaints one surface from its field once per scheduled frame.
type Driver struct {
	surface Surface
	field   *Field
	fill    color.Color
	sched   Scheduler

	cancelFrame func()
	running     bool
}

// NewDriver returns a stopped driver.
func NewDriver(s Surface, f *Field, fill color.Color, sched Scheduler) *Driver {
	return &Driver{surface: s, field: f, fill: fill, sched: sched}
}

// Start paints the first frame immediately and keeps rescheduling itself
// until Stop.
func (d *Driver) Start() {
	if d.running {
		return
	}
	d.running = true
	d.Frame()
}

// Frame runs one frame: clear, then per particle update followed by draw,
// then schedule the next frame.
func (d *Driver) Frame() {
	if !d.running {
		return
	}
	w, h := d.surface.Size()
	d.surface.Clear()

	fw, fh := float64(w), float64(h)
	for i := range d.field.Particles {
		p := &d.field.Particles[i]
		p.Step(fw, fh)
		d.surface.FillCircle(p.X, p.Y, p.R, d.fill)
	}

	d.cancelFrame = d.sched.RequestFrame(d.Frame)
}

// Stop cancels the pending frame. Safe to call more than once.
func (d *Driver) Stop() {
	d.running = false
	if d.cancelFrame != nil {
		d.cancelFrame()
		d.cancelFrame = nil
	}
}

// Running reports whether a frame is pending.
func (d *Driver) Running() bool { return d.running }

// Handle owns everything started for one surface.
type Handle struct {
	driver  *Driver
	field   *Field
	unbind  func()
	remove  func()
	log     *slog.Logger
	stopped bool
}

// Field exposes the seeded particles.
func (h *Handle) Field() *Field { return h.field }

// Running reports whether the frame loop is still scheduled.
func (h *Handle) Running() bool { return h.driver.Running() }

// Stop cancels the frame loop and the resize observation.
func (h *Handle) Stop() {
	if h.stopped {
		return
	}
	h.stopped = true
	h.driver.Stop()
	if h.unbind != nil {
		h.unbind()
	}
	h.log.Debug("surface stopped", "particles", h.field.Len())
}

// Detach stops the loop and removes the surface from its host.
func (h *Handle) Detach() {
	h.Stop()
	if h.remove != nil {
		h.remove()
		h.remove = nil
	}
}

// StopAll stops every handle.
func StopAll(hs []*Handle) {
	for _, h := range hs {
		h.Stop()
	}
}

// DetachAll stops every handle and removes its surface. Hosts call it on
// shutdown so surfaces release their pixels.
func DetachAll(hs []*Handle) {
	for _, h := range hs {
		h.Detach()
	}
}
