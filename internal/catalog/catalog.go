// Package catalog provides loading of ordered stage catalogs for explainer
// playback.
package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when a catalog name does not resolve.
var ErrNotFound = errors.New("catalog not found")

// FinalHold controls what happens once playback reaches the last stage.
type FinalHold string

const (
	// FinalHoldDwell keeps playing for the last stage's duration before
	// playback returns to idle.
	FinalHoldDwell FinalHold = "dwell"
	// FinalHoldNone returns to idle as soon as the last stage is entered.
	FinalHoldNone FinalHold = "none"
)

// DefaultVisibleAt is the share of a section that must be on screen before
// it counts as visible.
const DefaultVisibleAt = 0.3

// Stage is one step of an explainer.
type Stage struct {
	Index       int
	Title       string
	Description string
	// Duration is how long the stage stays on screen before playback
	// advances. Zero is only allowed on the last stage.
	Duration time.Duration
	// Body is render payload for the stage, opaque to playback.
	Body []string
}

// Input is reader-editable text that stage bodies can reference with the
// {{input}} and {{tokens}} placeholders.
type Input struct {
	Label   string
	Default string
}

// Placeholders expanded by ExpandBody.
const (
	InputPlaceholder  = "{{input}}"
	TokensPlaceholder = "{{tokens}}"
)

// MaxInputRunes bounds edited input text.
const MaxInputRunes = 280

// Catalog is an immutable ordered list of stages plus presentation data.
type Catalog struct {
	name        string
	title       string
	kicker      string
	description string
	visibleAt   float64
	finalHold   FinalHold
	tags        []string
	summary     []string
	input       *Input
	stages      []Stage
	source      string
}

// Name returns the catalog's lookup name.
func (c *Catalog) Name() string { return c.name }

// Title returns the section heading.
func (c *Catalog) Title() string { return c.title }

// Kicker returns the small label shown above the heading.
func (c *Catalog) Kicker() string { return c.kicker }

// Description returns the section lead text.
func (c *Catalog) Description() string { return c.description }

// VisibleAt returns the visible share that triggers autoplay.
func (c *Catalog) VisibleAt() float64 { return c.visibleAt }

// FinalHold returns the end-of-playback policy.
func (c *Catalog) FinalHold() FinalHold { return c.finalHold }

// Source returns the file path the catalog was loaded from, or "builtin".
func (c *Catalog) Source() string { return c.source }

// Len returns the number of stages. It is always at least 1.
func (c *Catalog) Len() int { return len(c.stages) }

// Last returns the index of the final stage.
func (c *Catalog) Last() int { return len(c.stages) - 1 }

// Stage returns the stage at index i.
func (c *Catalog) Stage(i int) (Stage, bool) {
	if i < 0 || i >= len(c.stages) {
		return Stage{}, false
	}
	return copyStage(c.stages[i]), true
}

// Stages returns a copy of all stages.
func (c *Catalog) Stages() []Stage {
	out := make([]Stage, len(c.stages))
	for i, stage := range c.stages {
		out[i] = copyStage(stage)
	}
	return out
}

// Duration returns the dwell time of stage i, or 0 when out of range.
func (c *Catalog) Duration(i int) time.Duration {
	if i < 0 || i >= len(c.stages) {
		return 0
	}
	return c.stages[i].Duration
}

// TotalDuration returns the time a full playback takes, including the
// trailing dwell when the catalog holds the last stage.
func (c *Catalog) TotalDuration() time.Duration {
	var total time.Duration
	for i, stage := range c.stages {
		if i == c.Last() && c.finalHold != FinalHoldDwell {
			break
		}
		total += stage.Duration
	}
	return total
}

// Tags returns a copy of the catalog tags.
func (c *Catalog) Tags() []string {
	return append([]string(nil), c.tags...)
}

// Summary returns the recap steps shown after playback, if any.
func (c *Catalog) Summary() []string {
	return append([]string(nil), c.summary...)
}

// Input returns the editable input, if the catalog declares one.
func (c *Catalog) Input() (Input, bool) {
	if c.input == nil {
		return Input{}, false
	}
	return *c.input, true
}

// HasTag reports whether the catalog carries tag (case-insensitive).
func (c *Catalog) HasTag(tag string) bool {
	for _, t := range c.tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func copyStage(s Stage) Stage {
	s.Body = append([]string(nil), s.Body...)
	return s
}

// Find returns the catalog named name (case-insensitive).
func Find(catalogs []*Catalog, name string) (*Catalog, error) {
	name = strings.TrimSpace(name)
	for _, c := range catalogs {
		if strings.EqualFold(c.name, name) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}
