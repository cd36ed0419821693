// Package player implements the staged playback sequencer behind the
// interactive explainers.
package player

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/folio-labs/explainer/internal/catalog"
	"github.com/folio-labs/explainer/internal/clock"
	"github.com/folio-labs/explainer/internal/logging"
)

// Sequencer errors.
var (
	ErrClosed             = errors.New("sequencer closed")
	ErrSubscriberExists   = errors.New("subscriber already registered")
	ErrSubscriberNotFound = errors.New("subscriber not found")
	ErrSubscriberID       = errors.New("subscriber id is required")
)

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithScheduler sets the timer source. Default: clock.Real().
func WithScheduler(s clock.Scheduler) Option {
	return func(seq *Sequencer) {
		if s != nil {
			seq.sched = s
		}
	}
}

// WithLogger sets the logger. Default: logging.Component("player").
func WithLogger(logger zerolog.Logger) Option {
	return func(seq *Sequencer) {
		seq.logger = logger
	}
}

// WithID sets the instance id used in logs. Default: a random UUID.
func WithID(id string) Option {
	return func(seq *Sequencer) {
		if id = strings.TrimSpace(id); id != "" {
			seq.id = id
		}
	}
}

// Sequencer owns the current stage, playback status and the single
// outstanding advance timer for one explainer section.
//
// Every transition is serialized by one mutex. Subscribers are called
// synchronously while that mutex is held, so they must not call back into
// the sequencer; forward to another goroutine or event loop instead.
type Sequencer struct {
	id      string
	catalog *catalog.Catalog
	sched   clock.Scheduler
	logger  zerolog.Logger

	mu            sync.Mutex
	stage         int
	status        Status
	hasPlayedOnce bool
	pending       clock.Timer
	closed        bool

	subscribers map[string]Subscriber
	order       []string
}

// New creates an idle sequencer positioned on the first stage.
func New(cat *catalog.Catalog, opts ...Option) *Sequencer {
	if cat == nil {
		panic("player: catalog is required")
	}

	seq := &Sequencer{
		catalog:     cat,
		sched:       clock.Real(),
		logger:      logging.Component("player"),
		subscribers: make(map[string]Subscriber),
	}
	for _, opt := range opts {
		opt(seq)
	}
	if seq.id == "" {
		seq.id = uuid.New().String()
	}
	seq.logger = seq.logger.With().
		Str("player", seq.id).
		Str("catalog", cat.Name()).
		Logger()
	return seq
}

// ID returns the instance id.
func (s *Sequencer) ID() string { return s.id }

// Catalog returns the catalog being played.
func (s *Sequencer) Catalog() *catalog.Catalog { return s.catalog }

// Snapshot returns the current state.
func (s *Sequencer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked("")
}

// Play restarts playback from the first stage. Any pending advance is
// cancelled first, so calling Play while playing starts over.
func (s *Sequencer) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startLocked(CausePlay)
}

// Replay is Cancel followed by Play as one step: no stale advance can land
// between the two.
func (s *Sequencer) Replay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startLocked(CauseReplay)
}

// JumpTo selects stage i without starting playback. It is ignored while
// playing and for indexes outside the catalog; the return value reports
// whether the request was honoured.
func (s *Sequencer) JumpTo(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	if s.status == StatusPlaying {
		s.logger.Debug().Int("stage", i).Msg("jump ignored while playing")
		return false
	}
	if i < 0 || i > s.catalog.Last() {
		s.logger.Debug().Int("stage", i).Int("stages", s.catalog.Len()).Msg("jump ignored: stage out of range")
		return false
	}
	if i == s.stage {
		return true
	}

	s.stage = i
	s.notifyLocked(CauseJump)
	return true
}

// ShowFinal moves straight to the last stage and marks the explainer as
// played, without scheduling anything. It is ignored while playing.
func (s *Sequencer) ShowFinal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.status == StatusPlaying {
		return false
	}

	last := s.catalog.Last()
	if s.stage == last && s.hasPlayedOnce {
		return true
	}
	s.stage = last
	s.hasPlayedOnce = true
	s.notifyLocked(CauseShowFinal)
	return true
}

// Cancel stops playback, keeping the current stage. Cancelling an idle
// sequencer does nothing.
func (s *Sequencer) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.stopPendingLocked()
	if s.status != StatusPlaying {
		return
	}
	s.status = StatusIdle
	s.notifyLocked(CauseCancel)
}

// Close cancels any pending advance and detaches all subscribers. Every
// later call is a no-op.
func (s *Sequencer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.stopPendingLocked()
	s.status = StatusIdle
	s.closed = true
	s.subscribers = nil
	s.order = nil
	s.logger.Debug().Msg("sequencer closed")
}

// Closed reports whether Close has been called.
func (s *Sequencer) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Subscribe registers sub under id. Subscribers are notified in
// registration order.
func (s *Sequencer) Subscribe(id string, sub Subscriber) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrSubscriberID
	}
	if sub == nil {
		return errors.New("subscriber is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if _, exists := s.subscribers[id]; exists {
		return ErrSubscriberExists
	}
	s.subscribers[id] = sub
	s.order = append(s.order, id)
	return nil
}

// SubscribeFunc registers a function subscriber.
func (s *Sequencer) SubscribeFunc(id string, fn func(Snapshot)) error {
	if fn == nil {
		return errors.New("subscriber is required")
	}
	return s.Subscribe(id, SubscriberFunc(fn))
}

// Unsubscribe removes the subscriber registered under id.
func (s *Sequencer) Unsubscribe(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.subscribers[id]; !exists {
		return ErrSubscriberNotFound
	}
	delete(s.subscribers, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Sequencer) startLocked(cause Cause) {
	if s.closed {
		return
	}
	s.stopPendingLocked()
	s.stage = 0
	s.status = StatusPlaying
	s.hasPlayedOnce = true
	s.logger.Debug().Str("cause", string(cause)).Msg("playback started")
	s.continueLocked(cause)
}

// continueLocked schedules the next transition from the current stage, or
// returns to idle when there is none, then notifies.
func (s *Sequencer) continueLocked(cause Cause) {
	delay, step := nextTransition(s.stage, s.catalog)
	if step == stepNone {
		s.status = StatusIdle
		s.notifyLocked(cause)
		return
	}
	s.scheduleLocked(delay, step)
	s.notifyLocked(cause)
}

func (s *Sequencer) scheduleLocked(delay time.Duration, step transitionStep) {
	var handle clock.Timer
	handle = s.sched.AfterFunc(delay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		// A handle that is no longer pending was cancelled or replaced.
		if s.closed || s.pending != handle {
			return
		}
		s.pending = nil
		s.fireLocked(step)
	})
	s.pending = handle
}

func (s *Sequencer) fireLocked(step transitionStep) {
	switch step {
	case stepAdvance:
		s.stage++
		s.continueLocked(CauseAdvance)
	case stepFinish:
		s.status = StatusIdle
		s.notifyLocked(CauseFinish)
	}
}

func (s *Sequencer) stopPendingLocked() {
	if s.pending == nil {
		return
	}
	s.pending.Stop()
	s.pending = nil
}

func (s *Sequencer) snapshotLocked(cause Cause) Snapshot {
	return Snapshot{
		Stage:         s.stage,
		Status:        s.status,
		HasPlayedOnce: s.hasPlayedOnce,
		Cause:         cause,
	}
}

func (s *Sequencer) notifyLocked(cause Cause) {
	snap := s.snapshotLocked(cause)
	s.logger.Debug().
		Int("stage", snap.Stage).
		Stringer("status", snap.Status).
		Str("cause", string(cause)).
		Msg("transition")

	for _, id := range s.order {
		if sub, ok := s.subscribers[id]; ok {
			sub.OnTransition(snap)
		}
	}
}
