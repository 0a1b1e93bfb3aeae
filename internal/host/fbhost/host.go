// Package fbhost draws the particle field onto any draw.Image, in practice
// the Linux framebuffer device.
package fbhost

import (
	"context"
	"image"
	"image/draw"
	"log/slog"
	"time"

	"github.com/iburimskiy/bgfield/internal/config"
	"github.com/iburimskiy/bgfield/internal/game"
	"github.com/iburimskiy/bgfield/internal/raster"
)

type panel struct {
	container *game.PanelContainer
	surface   *raster.Surface
	removed   bool
}

// Host composes one raster surface per panel into an offscreen canvas and
// writes the canvas to dst once per tick.
type Host struct {
	dst     draw.Image
	canvas  *image.RGBA
	bg      *image.Uniform
	fps     int
	vp      *game.Viewport
	queue   game.FrameQueue
	panels  []*panel
	handles []*game.Handle
	log     *slog.Logger
}

func New(dst draw.Image, cfg *config.Config, log *slog.Logger) *Host {
	if log == nil {
		log = slog.Default()
	}
	b := dst.Bounds()
	h := &Host{
		dst: dst,
		bg:  image.NewUniform(cfg.BackgroundColor()),
		fps: cfg.FPS,
		vp:  game.NewViewport(float64(b.Dx()), float64(b.Dy())),
		log: log.With("component", "fbhost"),
	}
	for _, p := range cfg.Panels {
		h.panels = append(h.panels, &panel{
			container: h.vp.Panel(p),
			surface:   raster.New(0, 0, nil),
		})
	}
	return h
}

// Targets returns one game.Target per panel.
func (h *Host) Targets() []game.Target {
	targets := make([]game.Target, 0, len(h.panels))
	for _, p := range h.panels {
		targets = append(targets, game.Target{
			Container: p.container,
			Surface:   p.surface,
			Remove: func() {
				p.removed = true
				p.surface.SetSize(0, 0)
			},
		})
	}
	return targets
}

// Start runs the preference gate over every panel.
func (h *Host) Start(reduced bool, opts game.Options) {
	h.handles = game.Init(h.Targets(), reduced, &h.queue, opts)
	h.log.Info("started", "bounds", h.dst.Bounds().String(), "animated", len(h.handles))
}

// Stop cancels every panel loop and drops the panel surfaces.
func (h *Host) Stop() {
	game.DetachAll(h.handles)
	h.handles = nil
}

// Tick advances one frame and blits it.
func (h *Host) Tick() {
	b := h.dst.Bounds()
	h.vp.SetSize(float64(b.Dx()), float64(b.Dy()))
	h.queue.Flush()
	h.blit()
}

// Run ticks until ctx is done.
func (h *Host) Run(ctx context.Context) error {
	defer h.Stop()
	ticker := time.NewTicker(time.Second / time.Duration(h.fps))
	defer ticker.Stop()

	h.blit()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			h.Tick()
		}
	}
}

func (h *Host) blit() {
	b := h.dst.Bounds()
	if h.canvas == nil || h.canvas.Bounds().Size() != b.Size() {
		h.canvas = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	}
	draw.Draw(h.canvas, h.canvas.Bounds(), h.bg, image.Point{}, draw.Src)
	for _, p := range h.panels {
		if p.removed {
			continue
		}
		img := p.surface.Image()
		ox, oy := p.container.Origin()
		r := img.Bounds().Add(image.Pt(int(ox), int(oy)))
		draw.Draw(h.canvas, r, img, image.Point{}, draw.Over)
	}
	draw.Draw(h.dst, b, h.canvas, image.Point{}, draw.Src)
}
