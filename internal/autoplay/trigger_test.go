package autoplay

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-labs/explainer/internal/catalog"
	"github.com/folio-labs/explainer/internal/clock"
	"github.com/folio-labs/explainer/internal/player"
	"github.com/folio-labs/explainer/internal/visibility"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

type harness struct {
	seq   *player.Sequencer
	fake  *clock.Fake
	mu    sync.Mutex
	snaps []player.Snapshot
}

func (h *harness) record(s player.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snaps = append(h.snaps, s)
}

func (h *harness) events() []player.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]player.Snapshot(nil), h.snaps...)
}

func newHarness(t *testing.T, durations ...string) *harness {
	t.Helper()

	def := catalog.Definition{Name: "autoplay-test"}
	for i, d := range durations {
		def.Stages = append(def.Stages, catalog.StageDefinition{
			Title:    fmt.Sprintf("stage %d", i+1),
			Duration: d,
		})
	}
	c, err := catalog.New(def)
	require.NoError(t, err)

	h := &harness{fake: clock.NewFake(epoch)}
	h.seq = player.New(c, player.WithScheduler(h.fake), player.WithLogger(zerolog.Nop()))
	require.NoError(t, h.seq.SubscribeFunc("harness", h.record))
	t.Cleanup(h.seq.Close)
	return h
}

func quiet() Option { return WithLogger(zerolog.Nop()) }

func TestTriggerPlaysOnFirstVisibility(t *testing.T) {
	h := newHarness(t, "1s", "1s", "1s")
	trig := New(h.seq, StaticPreference(false), quiet())

	assert.False(t, trig.Decided())
	assert.Equal(t, OutcomeNone, trig.Outcome())

	trig.Observe(false)
	assert.False(t, trig.Decided())

	trig.Observe(true)
	require.True(t, trig.Decided())
	assert.Equal(t, OutcomePlayed, trig.Outcome())
	assert.True(t, h.seq.Snapshot().Playing())
}

func TestTriggerFiresOnlyOnce(t *testing.T) {
	h := newHarness(t, "1s", "1s", "1s")
	trig := New(h.seq, StaticPreference(false), quiet())

	trig.OnVisible()
	h.fake.Advance(10 * time.Second)
	require.False(t, h.seq.Snapshot().Playing())
	before := len(h.events())

	// Toggling visibility repeatedly must not restart playback.
	for i := 0; i < 5; i++ {
		trig.Observe(false)
		trig.Observe(true)
		trig.OnVisible()
	}
	h.fake.Advance(10 * time.Second)

	assert.Len(t, h.events(), before)
	assert.Equal(t, OutcomePlayed, trig.Outcome())
}

func TestTriggerReducedMotionShowsFinalStage(t *testing.T) {
	h := newHarness(t, "1s", "1s", "1s", "1s")
	trig := New(h.seq, StaticPreference(true), quiet())

	trig.OnVisible()

	events := h.events()
	require.Len(t, events, 1)
	assert.Equal(t, 3, events[0].Stage)
	assert.Equal(t, player.StatusIdle, events[0].Status)
	assert.True(t, events[0].HasPlayedOnce)
	assert.Equal(t, player.CauseShowFinal, events[0].Cause)
	assert.Equal(t, 0, h.fake.Pending())
	assert.Equal(t, OutcomeReduced, trig.Outcome())

	h.fake.Advance(time.Minute)
	assert.Len(t, h.events(), 1)
}

func TestTriggerSkipsWhenAlreadyPlayed(t *testing.T) {
	h := newHarness(t, "1s", "1s")
	h.seq.Play()
	h.fake.Advance(5 * time.Second)
	before := len(h.events())

	trig := New(h.seq, StaticPreference(false), quiet())
	trig.OnVisible()

	assert.Equal(t, OutcomeSkipped, trig.Outcome())
	assert.Len(t, h.events(), before)
	assert.False(t, h.seq.Snapshot().Playing())
}

func TestTriggerAttachToGate(t *testing.T) {
	h := newHarness(t, "1s", "1s", "1s")
	gate := visibility.New(0.3)
	trig := New(h.seq, StaticPreference(false), quiet())
	trig.Attach(gate)

	gate.Update(0.1)
	assert.False(t, trig.Decided())

	gate.Update(0.4)
	require.True(t, trig.Decided())
	assert.Equal(t, 0, h.seq.Snapshot().Stage)
	assert.True(t, h.seq.Snapshot().Playing())

	h.fake.Advance(1500 * time.Millisecond)
	assert.Equal(t, 1, h.seq.Snapshot().Stage)

	// Scrolling out and back in mid-playback is not a restart.
	gate.Update(0)
	gate.Update(1)
	assert.Equal(t, 1, h.seq.Snapshot().Stage)
}

func TestTriggerNilPreference(t *testing.T) {
	h := newHarness(t, "1s", "1s")
	trig := New(h.seq, nil, quiet())
	trig.OnVisible()
	assert.Equal(t, OutcomePlayed, trig.Outcome())
}

func TestEnvPreference(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		fallback bool
		want     bool
	}{
		{"nothing set", nil, false, false},
		{"nothing set uses default", nil, true, true},
		{"explainer var true", map[string]string{"EXPLAINER_REDUCED_MOTION": "1"}, false, true},
		{"explainer var false overrides default", map[string]string{"EXPLAINER_REDUCED_MOTION": "false"}, true, false},
		{"explainer var wins over others", map[string]string{"EXPLAINER_REDUCED_MOTION": "0", "REDUCE_MOTION": "1"}, false, false},
		{"reduce motion", map[string]string{"REDUCE_MOTION": "true"}, false, true},
		{"empty no motion", map[string]string{"NO_MOTION": ""}, false, true},
		{"unparseable is skipped", map[string]string{"REDUCE_MOTION": "maybe"}, false, false},
		{"empty explainer var skipped", map[string]string{"EXPLAINER_REDUCED_MOTION": " ", "REDUCE_MOTION": "1"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pref := EnvPreference{
				Default: tt.fallback,
				Lookup: func(key string) (string, bool) {
					v, ok := tt.env[key]
					return v, ok
				},
			}
			assert.Equal(t, tt.want, pref.PrefersReducedMotion())
		})
	}
}

func TestEnvPreferenceReadsProcessEnv(t *testing.T) {
	t.Setenv("EXPLAINER_REDUCED_MOTION", "true")
	assert.True(t, EnvPreference{}.PrefersReducedMotion())
}

func TestAnyPreference(t *testing.T) {
	assert.False(t, AnyPreference{}.PrefersReducedMotion())
	assert.False(t, AnyPreference{StaticPreference(false), nil}.PrefersReducedMotion())
	assert.True(t, AnyPreference{StaticPreference(false), StaticPreference(true)}.PrefersReducedMotion())
}
