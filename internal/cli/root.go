// Package cli implements the explainer command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/folio-labs/explainer/internal/config"
	"github.com/folio-labs/explainer/internal/logging"
)

var (
	cfgFile        string
	logLevel       string
	logFile        string
	jsonOutput     bool
	jsonlOutput    bool
	nonInteractive bool
	noProgress     bool
	reducedMotion  bool
	projectDir     string

	appConfig  *config.Config
	closeLogFn func() error
)

var rootCmd = &cobra.Command{
	Use:   "explainer",
	Short: "Staged, self-playing explainers for the terminal",
	Long: `explainer plays multi-stage walkthroughs (an NLP flow, a RAG pipeline, or
your own YAML catalogs). Each explainer starts on its own the first time it
scrolls into view and can be replayed or stepped through by hand.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		applyFlagOverrides(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}
		appConfig = cfg

		logCfg := logging.Config{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			File:   cfg.Logging.File,
		}
		if ownsTerminal(cmd) {
			if logCfg.File == "" {
				logCfg.File = defaultLogFile()
			}
			if logCfg.File == "" {
				logging.Discard()
				return nil
			}
		}
		closeFn, err := logging.Init(logCfg)
		if err != nil {
			return err
		}
		closeLogFn = closeFn
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if closeLogFn != nil {
			return closeLogFn()
		}
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./explainer.yaml or $XDG_CONFIG_HOME/explainer/config.yaml)")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&logFile, "log-file", "", "write logs to this file")
	flags.BoolVar(&jsonOutput, "json", false, "output JSON")
	flags.BoolVar(&jsonlOutput, "jsonl", false, "output JSON lines")
	flags.BoolVar(&nonInteractive, "non-interactive", false, "never prompt or start the TUI")
	flags.BoolVar(&noProgress, "no-progress", false, "disable progress output")
	flags.BoolVar(&reducedMotion, "reduced-motion", false, "skip animation and show each explainer's final stage")
	flags.StringVar(&projectDir, "project-dir", "", "project whose .explainer/catalogs directory is searched first")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// GetConfig returns the loaded configuration, or defaults before loading.
func GetConfig() *config.Config {
	if appConfig == nil {
		return config.DefaultConfig()
	}
	return appConfig
}

// IsJSONOutput reports whether --json was given.
func IsJSONOutput() bool { return jsonOutput }

// IsJSONLOutput reports whether --jsonl was given.
func IsJSONLOutput() bool { return jsonlOutput }

// WriteOutput writes v as indented JSON, or as one line per element of a
// slice with --jsonl.
func WriteOutput(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	if IsJSONLOutput() {
		return writeJSONLines(enc, v)
	}
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeJSONLines(enc *json.Encoder, v any) error {
	switch items := v.(type) {
	case []catalogSummary:
		for _, item := range items {
			if err := enc.Encode(item); err != nil {
				return err
			}
		}
		return nil
	default:
		return enc.Encode(v)
	}
}

// PreflightError reports an environment problem with a suggested fix.
type PreflightError struct {
	Message  string
	Hint     string
	NextStep string
}

func (e *PreflightError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Hint != "" {
		fmt.Fprintf(&b, "\n  hint: %s", e.Hint)
	}
	if e.NextStep != "" {
		fmt.Fprintf(&b, "\n  next: %s", e.NextStep)
	}
	return b.String()
}

func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = logFile
	}
	if flags.Changed("reduced-motion") {
		cfg.Playback.ReducedMotion = reducedMotion
	}
	if flags.Changed("project-dir") {
		cfg.Catalogs.ProjectDir = projectDir
	}
	if flags.Lookup("speed") != nil && flags.Changed("speed") {
		cfg.Playback.Speed = playbackSpeed
	}
}

// ownsTerminal reports whether cmd hands the terminal to bubbletea, in
// which case logs must not go to stderr.
func ownsTerminal(cmd *cobra.Command) bool {
	return cmd == uiCmd
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil || dir == "" {
		return ""
	}
	dir = filepath.Join(dir, "explainer")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ""
	}
	return filepath.Join(dir, "explainer.log")
}
