// Package prefs resolves the reduced-motion preference once at startup.
package prefs

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/iburimskiy/bgfield/internal/config"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	accessibilityObject = "accessibility"
	motionProperty      = "motion"
)

// Accessibility is the persisted accessibility record.
type Accessibility struct {
	ReducedMotion bool `yaml:"reducedMotion"`
}

// Store reads and writes Accessibility through gdata. A nil manager makes
// every call a no-op, so the effect still runs where storage is unavailable.
type Store struct {
	m *gdata.Manager
}

func NewStore(m *gdata.Manager) *Store { return &Store{m: m} }

// OpenStore opens the per-user gdata store for appName.
func OpenStore(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return NewStore(nil), fmt.Errorf("open preference store: %w", err)
	}
	return NewStore(m), nil
}

// Load returns the stored record. ok is false when nothing is stored.
func (s *Store) Load() (a Accessibility, ok bool, err error) {
	if s == nil || s.m == nil {
		return a, false, nil
	}
	if !s.m.ObjectPropExists(accessibilityObject, motionProperty) {
		return a, false, nil
	}
	data, err := s.m.LoadObjectProp(accessibilityObject, motionProperty)
	if err != nil {
		return a, false, fmt.Errorf("load accessibility: %w", err)
	}
	if err := yaml.Unmarshal(data, &a); err != nil {
		return Accessibility{}, false, fmt.Errorf("unmarshal accessibility: %w", err)
	}
	return a, true, nil
}

// Save persists a. Without a manager it does nothing.
func (s *Store) Save(a Accessibility) error {
	if s == nil || s.m == nil {
		return nil
	}
	data, err := yaml.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal accessibility: %w", err)
	}
	if err := s.m.SaveObjectProp(accessibilityObject, motionProperty, data); err != nil {
		return fmt.Errorf("save accessibility: %w", err)
	}
	return nil
}

// ParseBool accepts the usual spellings plus the CSS media values
// "reduce" and "no-preference".
func ParseBool(v string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "reduce":
		return true, true
	case "0", "false", "no", "off", "no-preference":
		return false, true
	}
	return false, false
}

// Inputs are the candidate sources, highest priority first.
type Inputs struct {
	// Flag is nil unless the command line set it.
	Flag   *bool
	Store  *Store
	Config bool
}

// Resolve picks the first source that gives an answer: flag, environment,
// store, config. Failures fall through to the next source and end at
// "motion allowed" unless the config says otherwise.
func Resolve(in Inputs, log *slog.Logger) (reduced bool, source string) {
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "prefs")

	if in.Flag != nil {
		return *in.Flag, "flag"
	}
	if raw, set := os.LookupEnv(config.EnvReducedMotion); set {
		if v, ok := ParseBool(raw); ok {
			return v, "env"
		}
		log.Warn("ignoring unparsable preference", "env", config.EnvReducedMotion, "value", raw)
	}
	a, ok, err := in.Store.Load()
	if err != nil {
		log.Warn("preference store unreadable, motion allowed", "err", err)
	}
	if ok {
		return a.ReducedMotion, "store"
	}
	return in.Config, "config"
}
