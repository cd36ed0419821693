package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-labs/explainer/internal/autoplay"
	"github.com/folio-labs/explainer/internal/catalog"
	"github.com/folio-labs/explainer/internal/clock"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// syncBuffer guards a bytes.Buffer written by runPlayback and read by the
// test goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func threeStages(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(catalog.Definition{
		Name: "three",
		Stages: []catalog.StageDefinition{
			{Title: "Input", Duration: "1s"},
			{Title: "Process", Duration: "500ms"},
			{Title: "Output"},
		},
	})
	require.NoError(t, err)
	return c
}

func decodeRecords(t *testing.T, out string) []transitionRecord {
	t.Helper()
	var recs []transitionRecord
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var rec transitionRecord
		require.NoError(t, json.Unmarshal([]byte(line), &rec), line)
		recs = append(recs, rec)
	}
	return recs
}

func TestRunPlaybackPlaysToIdle(t *testing.T) {
	fake := clock.NewFake(epoch)
	out := &syncBuffer{}
	done := make(chan error, 1)

	go func() {
		done <- runPlayback(context.Background(), out, threeStages(t), playbackOptions{
			Scheduler: fake,
			Motion:    autoplay.StaticPreference(false),
			JSON:      true,
		})
	}()

	require.Eventually(t, func() bool { return fake.Pending() == 1 }, time.Second, time.Millisecond)
	fake.Advance(time.Minute)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("playback did not finish")
	}

	recs := decodeRecords(t, out.String())
	require.Len(t, recs, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{recs[0].Stage, recs[1].Stage, recs[2].Stage})
	assert.Equal(t, []int64{0, 1000, 1500}, []int64{recs[0].ElapsedMS, recs[1].ElapsedMS, recs[2].ElapsedMS})
	assert.Equal(t, "play", recs[0].Cause)
	assert.Equal(t, "idle", recs[2].Status)
	assert.Equal(t, "Output", recs[2].Title)
}

func TestRunPlaybackReducedMotion(t *testing.T) {
	fake := clock.NewFake(epoch)
	var out bytes.Buffer

	err := runPlayback(context.Background(), &out, threeStages(t), playbackOptions{
		Scheduler: fake,
		Motion:    autoplay.StaticPreference(true),
		JSON:      true,
	})
	require.NoError(t, err)

	recs := decodeRecords(t, out.String())
	require.Len(t, recs, 1)
	assert.Equal(t, 2, recs[0].Stage)
	assert.Equal(t, "idle", recs[0].Status)
	assert.True(t, recs[0].HasPlayedOnce)
	assert.Equal(t, "show_final", recs[0].Cause)
	assert.Equal(t, 0, fake.Pending())
}

func TestRunPlaybackCancel(t *testing.T) {
	fake := clock.NewFake(epoch)
	out := &syncBuffer{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- runPlayback(ctx, out, threeStages(t), playbackOptions{Scheduler: fake, JSON: true})
	}()

	require.Eventually(t, func() bool { return fake.Pending() == 1 }, time.Second, time.Millisecond)
	fake.Advance(time.Second)
	require.Eventually(t, func() bool { return strings.Count(out.String(), "\n") == 2 }, time.Second, time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, 0, fake.Pending())

	recs := decodeRecords(t, out.String())
	require.Len(t, recs, 3)
	last := recs[2]
	assert.Equal(t, "cancel", last.Cause)
	assert.Equal(t, 1, last.Stage)
	assert.Equal(t, "idle", last.Status)
}

func TestRunPlaybackTextOutput(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var out bytes.Buffer

	err := runPlayback(context.Background(), &out, threeStages(t), playbackOptions{
		Scheduler: clock.NewFake(epoch),
		Motion:    autoplay.StaticPreference(true),
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "DONE idle")
	assert.Contains(t, out.String(), "stage 3/3  Output  (show_final)")
}
