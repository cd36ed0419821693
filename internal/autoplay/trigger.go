// Package autoplay starts an explainer the first time it scrolls into view,
// or jumps straight to its final stage when the viewer prefers reduced motion.
package autoplay

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/folio-labs/explainer/internal/logging"
	"github.com/folio-labs/explainer/internal/player"
	"github.com/folio-labs/explainer/internal/visibility"
)

// Player is the part of a sequencer the trigger drives.
type Player interface {
	Snapshot() player.Snapshot
	Play()
	ShowFinal() bool
}

// Outcome records what the trigger did when the section became visible.
type Outcome string

const (
	OutcomeNone    Outcome = "none"
	OutcomePlayed  Outcome = "played"
	OutcomeReduced Outcome = "reduced"
	OutcomeSkipped Outcome = "skipped"
)

// Option configures a Trigger.
type Option func(*Trigger)

// WithLogger sets the logger. Default: logging.Component("autoplay").
func WithLogger(logger zerolog.Logger) Option {
	return func(t *Trigger) {
		t.logger = logger
	}
}

// Trigger makes the autoplay decision exactly once per section.
type Trigger struct {
	seq    Player
	pref   MotionPreference
	logger zerolog.Logger

	mu      sync.Mutex
	decided bool
	outcome Outcome
}

// New creates a trigger for seq. A nil preference never asks for reduced
// motion.
func New(seq Player, pref MotionPreference, opts ...Option) *Trigger {
	if seq == nil {
		panic("autoplay: player is required")
	}
	if pref == nil {
		pref = StaticPreference(false)
	}
	t := &Trigger{
		seq:     seq,
		pref:    pref,
		logger:  logging.Component("autoplay"),
		outcome: OutcomeNone,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Attach fires the trigger from gate's one-shot visibility callback.
func (t *Trigger) Attach(gate *visibility.Gate) {
	if gate == nil {
		return
	}
	gate.OnVisible(t.OnVisible)
}

// Observe feeds a visibility observation. Only the first visible one counts.
func (t *Trigger) Observe(visible bool) {
	if visible {
		t.OnVisible()
	}
}

// OnVisible runs the autoplay decision the first time it is called.
func (t *Trigger) OnVisible() {
	t.mu.Lock()
	if t.decided {
		t.mu.Unlock()
		return
	}
	t.decided = true
	t.mu.Unlock()

	outcome := t.decide()

	t.mu.Lock()
	t.outcome = outcome
	t.mu.Unlock()

	t.logger.Debug().Str("outcome", string(outcome)).Msg("autoplay decided")
}

func (t *Trigger) decide() Outcome {
	if t.seq.Snapshot().HasPlayedOnce {
		return OutcomeSkipped
	}
	if t.pref.PrefersReducedMotion() {
		if t.seq.ShowFinal() {
			return OutcomeReduced
		}
		return OutcomeSkipped
	}
	t.seq.Play()
	return OutcomePlayed
}

// Decided reports whether the trigger has fired.
func (t *Trigger) Decided() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.decided
}

// Outcome returns the decision, or OutcomeNone before the first visible
// observation.
func (t *Trigger) Outcome() Outcome {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.outcome
}
