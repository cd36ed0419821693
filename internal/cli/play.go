package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/folio-labs/explainer/internal/autoplay"
	"github.com/folio-labs/explainer/internal/catalog"
	"github.com/folio-labs/explainer/internal/clock"
	"github.com/folio-labs/explainer/internal/config"
	"github.com/folio-labs/explainer/internal/logging"
	"github.com/folio-labs/explainer/internal/player"
	"github.com/folio-labs/explainer/internal/visibility"
)

var playbackSpeed float64

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().Float64Var(&playbackSpeed, "speed", 1, "playback speed multiplier (2 plays twice as fast)")
}

var playCmd = &cobra.Command{
	Use:   "play <name>",
	Short: "Play an explainer headlessly, printing each stage",
	Long: `Play an explainer without the TUI. Each transition is printed as it happens,
as text or as JSON lines with --json/--jsonl. The command returns when playback
is back to idle; Ctrl+C cancels it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		catalogs, err := loadCatalogs(cfg)
		if err != nil {
			return err
		}
		c, err := catalog.Find(catalogs, args[0])
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runPlayback(ctx, cmd.OutOrStdout(), c, playbackOptions{
			Scheduler: clock.Scaled(clock.Real(), cfg.Playback.Speed),
			Motion:    motionPreference(cfg),
			JSON:      IsJSONOutput() || IsJSONLOutput(),
		})
	},
}

type playbackOptions struct {
	Scheduler clock.Scheduler
	Motion    autoplay.MotionPreference
	JSON      bool
}

// timedSnapshot is a transition stamped with the scheduler time it
// happened at.
type timedSnapshot struct {
	player.Snapshot
	at time.Time
}

// transitionRecord is one printed transition.
type transitionRecord struct {
	Catalog       string `json:"catalog"`
	ElapsedMS     int64  `json:"elapsed_ms"`
	Stage         int    `json:"stage"`
	Stages        int    `json:"stages"`
	Title         string `json:"title"`
	Status        string `json:"status"`
	HasPlayedOnce bool   `json:"has_played_once"`
	Cause         string `json:"cause"`
}

// motionPreference combines the configured flag with the environment.
func motionPreference(cfg *config.Config) autoplay.MotionPreference {
	return autoplay.AnyPreference{
		autoplay.StaticPreference(cfg.Playback.ReducedMotion),
		autoplay.EnvPreference{},
	}
}

// runPlayback plays c as if its section had just scrolled fully into view
// and writes every transition to out until playback is idle again or ctx
// is cancelled.
func runPlayback(ctx context.Context, out io.Writer, c *catalog.Catalog, opts playbackOptions) error {
	sched := opts.Scheduler
	if sched == nil {
		sched = clock.Real()
	}
	logger := logging.Component("play")

	seq := player.New(c, player.WithScheduler(sched))
	defer seq.Close()

	// One play produces at most one notification per stage plus a finish
	// and a cancel, so this buffer never fills.
	events := make(chan timedSnapshot, c.Len()+4)
	if err := seq.SubscribeFunc("play", func(snap player.Snapshot) {
		select {
		case events <- timedSnapshot{Snapshot: snap, at: sched.Now()}:
		default:
			logger.Warn().Int("stage", snap.Stage).Msg("transition dropped")
		}
	}); err != nil {
		return err
	}

	started := sched.Now()
	enc := json.NewEncoder(out)
	emit := func(ev timedSnapshot) error {
		rec := newTransitionRecord(c, ev.Snapshot, ev.at.Sub(started))
		if opts.JSON {
			return enc.Encode(rec)
		}
		_, err := fmt.Fprintln(out, formatTransition(rec, ev.Snapshot))
		return err
	}

	gate := visibility.New(c.VisibleAt())
	trigger := autoplay.New(seq, opts.Motion)
	trigger.Attach(gate)
	gate.Update(1)
	logger.Debug().Str("catalog", c.Name()).Str("outcome", string(trigger.Outcome())).Msg("playback started")

	for {
		select {
		case ev := <-events:
			if err := emit(ev); err != nil {
				return err
			}
			if !ev.Playing() {
				return nil
			}
		case <-ctx.Done():
			seq.Cancel()
			for {
				select {
				case ev := <-events:
					if err := emit(ev); err != nil {
						return err
					}
				default:
					return nil
				}
			}
		}
	}
}

func newTransitionRecord(c *catalog.Catalog, snap player.Snapshot, elapsed time.Duration) transitionRecord {
	stage, _ := c.Stage(snap.Stage)
	return transitionRecord{
		Catalog:       c.Name(),
		ElapsedMS:     elapsed.Milliseconds(),
		Stage:         snap.Stage,
		Stages:        c.Len(),
		Title:         stage.Title,
		Status:        snap.Status.String(),
		HasPlayedOnce: snap.HasPlayedOnce,
		Cause:         string(snap.Cause),
	}
}

func formatTransition(rec transitionRecord, snap player.Snapshot) string {
	return fmt.Sprintf("[%7s] %s  stage %d/%d  %s  (%s)",
		formatDuration(time.Duration(rec.ElapsedMS)*time.Millisecond),
		formatPlaybackStatus(snap),
		rec.Stage+1, rec.Stages,
		rec.Title,
		rec.Cause,
	)
}
