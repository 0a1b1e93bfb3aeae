// Package app holds the startup sequence shared by every entry point:
// flags, logging, config, and the one-time reduced-motion decision.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ncruces/zenity"
	"github.com/spf13/pflag"

	"github.com/iburimskiy/bgfield/internal/config"
	"github.com/iburimskiy/bgfield/internal/game"
	"github.com/iburimskiy/bgfield/internal/prefs"
)

// StoreName is the gdata application name for persisted preferences.
const StoreName = "bgfield"

// Flags are the command line options common to all hosts.
type Flags struct {
	ConfigPath     string
	PickConfig     bool
	Seed           uint64
	ReduceMotion   *bool
	SavePreference bool
	LogLevel       string
	LogFile        string
	Debug          bool
}

// ParseFlags parses args (without the program name).
func ParseFlags(name string, args []string) (*Flags, error) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	f := &Flags{}
	var reduce bool
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "YAML config file")
	fs.BoolVar(&f.PickConfig, "pick-config", false, "choose the config file in a native dialog")
	fs.Uint64Var(&f.Seed, "seed", 0, "random seed (0 uses the config seed, then the clock)")
	fs.BoolVar(&reduce, "reduce-motion", false, "prefer reduced motion (overrides env and stored preference)")
	fs.BoolVar(&f.SavePreference, "save-preference", false, "persist the resolved motion preference")
	fs.StringVar(&f.LogLevel, "log-level", "info", "debug, info, warn or error")
	fs.StringVar(&f.LogFile, "log-file", "", "write logs to this file instead of stderr")
	fs.BoolVar(&f.Debug, "debug", false, "draw diagnostic counters where the host supports it")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.Changed("reduce-motion") {
		f.ReduceMotion = &reduce
	}
	return f, nil
}

// Setup is everything a host needs to start.
type Setup struct {
	Flags   *Flags
	Config  *config.Config
	Reduced bool
	Options game.Options
	Log     *slog.Logger
	closers []io.Closer
}

// Close releases the log file, if any.
func (s *Setup) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// Prepare runs the shared startup sequence. stderr is the default log sink.
func Prepare(name string, args []string, stderr io.Writer) (*Setup, error) {
	f, err := ParseFlags(name, args)
	if err != nil {
		return nil, err
	}
	s := &Setup{Flags: f}

	sink := stderr
	if f.LogFile != "" {
		lf, err := os.OpenFile(f.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		s.closers = append(s.closers, lf)
		sink = lf
	}
	s.Log = slog.New(slog.NewTextHandler(sink, &slog.HandlerOptions{Level: parseLevel(f.LogLevel)}))

	path := f.ConfigPath
	if f.PickConfig {
		picked, err := pickConfig()
		if err != nil {
			s.Close()
			return nil, err
		}
		if picked != "" {
			path = picked
		}
	}
	s.Config, err = config.Load(path)
	if err != nil {
		s.Close()
		return nil, err
	}

	store, err := prefs.OpenStore(StoreName)
	if err != nil {
		s.Log.Warn("preference store unavailable", "err", err)
	}
	var source string
	s.Reduced, source = prefs.Resolve(prefs.Inputs{
		Flag:   f.ReduceMotion,
		Store:  store,
		Config: s.Config.ReducedMotion,
	}, s.Log)
	s.Log.Info("motion preference", "reduced", s.Reduced, "source", source)

	if f.SavePreference {
		if err := store.Save(prefs.Accessibility{ReducedMotion: s.Reduced}); err != nil {
			s.Log.Warn("could not save preference", "err", err)
		}
	}

	seed := f.Seed
	if seed == 0 {
		seed = s.Config.Seed
	}
	s.Options = game.OptionsFromConfig(s.Config, game.NewRand(seed), s.Log)
	return s, nil
}

func pickConfig() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open bgfield config"),
		zenity.FileFilters{{
			Name:     "YAML",
			Patterns: []string{"*.yaml", "*.yml"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", fmt.Errorf("pick config: %w", err)
	}
	return filename, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
