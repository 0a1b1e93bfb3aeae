package game

import (
	"image/color"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/iburimskiy/bgfield/internal/config"
)

// Options tunes Init. Zero values fall back to the config defaults.
type Options struct {
	Rand   *rand.Rand
	Field  FieldParams
	Fill   color.Color
	Logger *slog.Logger
}

// OptionsFromConfig builds Options from a loaded configuration.
func OptionsFromConfig(cfg *config.Config, rng *rand.Rand, log *slog.Logger) Options {
	return Options{
		Rand: rng,
		Field: FieldParams{
			Density:   cfg.Density,
			RadiusMin: cfg.Radius.Min,
			RadiusMax: cfg.Radius.Max,
			Speed:     cfg.Speed,
		},
		Fill:   cfg.FillColor(),
		Logger: log,
	}
}

// NewRand returns a PCG generator. Seed 0 picks a time based seed.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (o *Options) setDefaults() {
	if o.Rand == nil {
		o.Rand = NewRand(0)
	}
	if o.Field == (FieldParams{}) || !o.Field.usable() {
		o.Field = FieldParams{
			Density:   config.Density,
			RadiusMin: config.RadiusMin,
			RadiusMax: config.RadiusMax,
			Speed:     config.Speed,
		}
	}
	if o.Fill == nil {
		o.Fill = config.Default().FillColor()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Init decides once whether the targets animate. With reduced motion every
// target is removed from its host and nil is returned. Otherwise each target
// is bound, seeded and started, and one Handle per target is returned.
func Init(targets []Target, reducedMotion bool, sched Scheduler, opts Options) []*Handle {
	opts.setDefaults()
	log := opts.Logger.With("component", "game")

	if reducedMotion {
		for _, t := range targets {
			if t.Remove != nil {
				t.Remove()
			}
		}
		log.Info("reduced motion preferred, surfaces removed", "surfaces", len(targets))
		return nil
	}

	handles := make([]*Handle, 0, len(targets))
	for i, t := range targets {
		h := start(t, sched, opts, log.With("surface", i))
		handles = append(handles, h)
	}
	return handles
}

func start(t Target, sched Scheduler, opts Options, log *slog.Logger) *Handle {
	unbind := Bind(t.Container, t.Surface)

	w, h := t.Surface.Size()
	field := Seed(w, h, opts.Field, opts.Rand)
	log.Debug("surface bound", "width", w, "height", h, "particles", field.Len())

	d := NewDriver(t.Surface, field, opts.Fill, sched)
	d.Start()

	return &Handle{
		driver: d,
		field:  field,
		unbind: unbind,
		remove: t.Remove,
		log:    log,
	}
}
