package autoplay

import (
	"os"
	"strconv"
	"strings"
)

// MotionPreference answers whether the viewer asked for reduced motion. It
// is consulted once, when the decision is made.
type MotionPreference interface {
	PrefersReducedMotion() bool
}

// StaticPreference is a fixed answer.
type StaticPreference bool

// PrefersReducedMotion implements MotionPreference.
func (p StaticPreference) PrefersReducedMotion() bool { return bool(p) }

// ReducedMotionEnv lists the environment variables EnvPreference reads, in
// order. The first one that is set and parses as a boolean wins.
var ReducedMotionEnv = []string{
	"EXPLAINER_REDUCED_MOTION",
	"REDUCE_MOTION",
	"NO_MOTION",
}

// EnvPreference reads the reduced-motion variables at query time, falling
// back to Default when none is set.
type EnvPreference struct {
	Default bool
	Lookup  func(string) (string, bool)
}

// PrefersReducedMotion implements MotionPreference.
func (p EnvPreference) PrefersReducedMotion() bool {
	lookup := p.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, key := range ReducedMotionEnv {
		raw, ok := lookup(key)
		if !ok {
			continue
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			// NO_MOTION= is conventionally "on", like NO_COLOR.
			if key == "NO_MOTION" {
				return true
			}
			continue
		}
		if v, err := strconv.ParseBool(raw); err == nil {
			return v
		}
	}
	return p.Default
}

// AnyPreference prefers reduced motion when any of its members does.
type AnyPreference []MotionPreference

// PrefersReducedMotion implements MotionPreference.
func (a AnyPreference) PrefersReducedMotion() bool {
	for _, p := range a {
		if p != nil && p.PrefersReducedMotion() {
			return true
		}
	}
	return false
}
