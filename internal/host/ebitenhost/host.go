// Package ebitenhost runs the particle field inside an ebiten window. The
// window is the viewport, each configured panel is an offscreen image, and
// every Update tick flushes the frame queue once.
package ebitenhost

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/bgfield/internal/config"
	"github.com/iburimskiy/bgfield/internal/game"
)

// surface is an offscreen ebiten image. A 0x0 surface holds no image.
type surface struct {
	img  *ebiten.Image
	w, h int
}

func (s *surface) Size() (int, int) { return s.w, s.h }

func (s *surface) SetSize(w, h int) {
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	s.w, s.h = w, h
	if w > 0 && h > 0 {
		s.img = ebiten.NewImage(w, h)
	}
}

func (s *surface) Clear() {
	if s.img != nil {
		s.img.Clear()
	}
}

func (s *surface) FillCircle(x, y, r float64, c color.Color) {
	if s.img == nil {
		return
	}
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(r), c, true)
}

type panel struct {
	container *game.PanelContainer
	surface   *surface
	removed   bool
}

// Host implements ebiten.Game.
type Host struct {
	vp      *game.Viewport
	queue   game.FrameQueue
	panels  []*panel
	handles []*game.Handle
	bg      color.Color
	log     *slog.Logger

	reduced bool
	opts    game.Options
	started bool

	// Debug draws particle and FPS counters in the corner.
	Debug bool
}

// New prepares one panel per configured rectangle. Nothing is bound until
// the first Update, when the window size is known.
func New(cfg *config.Config, reduced bool, opts game.Options, log *slog.Logger) *Host {
	if log == nil {
		log = slog.Default()
	}
	h := &Host{
		vp:      game.NewViewport(float64(cfg.Window.Width), float64(cfg.Window.Height)),
		bg:      cfg.BackgroundColor(),
		log:     log.With("component", "ebitenhost"),
		reduced: reduced,
		opts:    opts,
	}
	for _, p := range cfg.Panels {
		h.panels = append(h.panels, &panel{
			container: h.vp.Panel(p),
			surface:   &surface{},
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
func (h *Host) Start() {
	if h.started {
		return
	}
	h.started = true
	h.handles = game.Init(h.Targets(), h.reduced, &h.queue, h.opts)
	h.log.Info("started", "panels", len(h.panels), "animated", len(h.handles))
}

// Close stops every panel loop and deallocates the panel images.
func (h *Host) Close() {
	game.DetachAll(h.handles)
	h.handles = nil
}

func (h *Host) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	h.Start()
	h.queue.Flush()
	return nil
}

func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(h.bg)
	for _, p := range h.panels {
		if p.removed || p.surface.img == nil {
			continue
		}
		x, y := p.container.Origin()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(x, y)
		screen.DrawImage(p.surface.img, op)
	}

	if h.Debug {
		ebitenutil.DebugPrintAt(screen, h.status(), 12, 12)
	}
}

func (h *Host) status() string {
	if h.reduced {
		return "reduced motion: animation off"
	}
	n := 0
	for _, hd := range h.handles {
		n += hd.Field().Len()
	}
	w, ht := h.vp.Size()
	return fmt.Sprintf("%.0fx%.0f  particles: %d  fps: %.1f", w, ht, n, ebiten.ActualFPS())
}

// Layout makes the logical screen follow the window, which drives the
// resize notifications of every panel.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.vp.SetSize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func Run(h *Host, cfg *config.Config) error {
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	defer h.Close()

	if err := ebiten.RunGame(h); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}
