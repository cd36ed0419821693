package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/folio-labs/explainer/internal/catalog"
	"github.com/folio-labs/explainer/internal/clock"
	"github.com/folio-labs/explainer/internal/logging"
	"github.com/folio-labs/explainer/internal/tui"
)

func init() {
	rootCmd.AddCommand(uiCmd)
	uiCmd.Flags().Float64Var(&playbackSpeed, "speed", 1, "playback speed multiplier (2 plays twice as fast)")
	uiCmd.Flags().StringVar(&uiTheme, "theme", "", "color theme (default, high-contrast)")
}

var uiTheme string

var uiCmd = &cobra.Command{
	Use:   "ui [names...]",
	Short: "Browse explainers in the terminal",
	Long: `Open a scrollable document with one section per explainer. A section plays
once on its own the first time it scrolls into view. With names, only those
explainers are shown, in the given order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

func runTUI(cmd *cobra.Command, names []string) error {
	if IsNonInteractive() {
		return &PreflightError{
			Message:  "TUI requires an interactive terminal",
			Hint:     "Run without --non-interactive and with a TTY, or play headlessly",
			NextStep: "explainer play nlp-flow",
		}
	}

	cfg := GetConfig()
	catalogs, err := loadCatalogs(cfg)
	if err != nil {
		return err
	}
	selected, missing := resolveUICatalogs(catalogs, names)

	theme := cfg.TUI.Theme
	if cmd.Flags().Changed("theme") {
		theme = uiTheme
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, os.Interrupt)
	defer stop()

	return tui.Run(ctx, tui.Options{
		Catalogs:  selected,
		Scheduler: clock.Scaled(clock.Real(), cfg.Playback.Speed),
		Motion:    motionPreference(cfg),
		Theme:     theme,
		Missing:   missing,
	})
}

// resolveUICatalogs selects the named catalogs and logs the names that
// matched nothing. The TUI shows the missing names too.
func resolveUICatalogs(catalogs []*catalog.Catalog, names []string) ([]*catalog.Catalog, []string) {
	selected, missing := selectCatalogs(catalogs, names)
	if len(missing) > 0 {
		logger := logging.Component("cli")
		logger.Warn().Strs("names", missing).Msg("catalogs not found")
	}
	return selected, missing
}
