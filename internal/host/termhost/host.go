// Package termhost runs the particle field in a terminal through tcell.
// Each cell stands for a block of pixels so radii and densities keep the
// same meaning as in the window host.
package termhost

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/bgfield/internal/config"
	"github.com/iburimskiy/bgfield/internal/game"
)

type panel struct {
	container *game.PanelContainer
	surface   *cellSurface
	removed   bool
}

// Host owns the tcell screen and one cell surface per panel.
type Host struct {
	screen       tcell.Screen
	cellW, cellH int
	fps          int
	bg           colorful.Color
	vp           *game.Viewport
	queue        game.FrameQueue
	panels       []*panel
	handles      []*game.Handle
	log          *slog.Logger
}

// New wraps an initialized screen.
func New(screen tcell.Screen, cfg *config.Config, log *slog.Logger) *Host {
	if log == nil {
		log = slog.Default()
	}
	bg, _ := colorful.Hex(cfg.Background)
	h := &Host{
		screen: screen,
		cellW:  cfg.Terminal.CellWidth,
		cellH:  cfg.Terminal.CellHeight,
		fps:    cfg.FPS,
		bg:     bg,
		log:    log.With("component", "termhost"),
	}
	cols, rows := screen.Size()
	h.vp = game.NewViewport(float64(cols*h.cellW), float64(rows*h.cellH))
	for _, p := range cfg.Panels {
		h.panels = append(h.panels, &panel{
			container: h.vp.Panel(p),
			surface:   newCellSurface(h.cellW, h.cellH, bg),
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
			Remove:    func() { p.removed = true },
		})
	}
	return targets
}

// Start runs the preference gate over every panel.
func (h *Host) Start(reduced bool, opts game.Options) {
	h.handles = game.Init(h.Targets(), reduced, &h.queue, opts)
	h.log.Info("started", "panels", len(h.panels), "animated", len(h.handles))
}

// Stop cancels every panel loop and drops the panel surfaces.
func (h *Host) Stop() {
	game.DetachAll(h.handles)
	h.handles = nil
}

// Run ticks at the configured rate until ctx ends or the user quits.
func (h *Host) Run(ctx context.Context) error {
	defer h.Stop()

	ticker := time.NewTicker(time.Second / time.Duration(h.fps))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go feed(h.screen, events, done)

	h.present()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !h.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			h.queue.Flush()
			h.present()
		}
	}
}

// feed forwards screen events until the screen is finalized or done closes.
func feed(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent returns false when the user asked to quit.
func (h *Host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
			return false
		}
	case *tcell.EventResize:
		h.screen.Sync()
		cols, rows := h.screen.Size()
		if h.vp.SetSize(float64(cols*h.cellW), float64(rows*h.cellH)) {
			h.log.Debug("resized", "cols", cols, "rows", rows)
		}
	}
	return true
}

func (h *Host) present() {
	bgStyle := tcell.StyleDefault.Background(toTcell(h.bg))
	cols, rows := h.screen.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			h.screen.SetContent(x, y, ' ', nil, bgStyle)
		}
	}

	for _, p := range h.panels {
		if p.removed {
			continue
		}
		ox, oy := p.container.Origin()
		col0, row0 := int(ox)/h.cellW, int(oy)/h.cellH
		s := p.surface
		for row := 0; row < s.rows; row++ {
			for col := 0; col < s.cols; col++ {
				st := tcell.StyleDefault.Background(toTcell(s.at(col, row)))
				h.screen.SetContent(col0+col, row0+row, ' ', nil, st)
			}
		}
	}
	h.screen.Show()
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
