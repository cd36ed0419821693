package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/folio-labs/explainer/internal/catalog"
	"github.com/folio-labs/explainer/internal/config"
)

var catalogTags []string

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)

	catalogListCmd.Flags().StringSliceVar(&catalogTags, "tag", nil, "only list catalogs with any of these tags")
}

var catalogCmd = &cobra.Command{
	Use:     "catalog",
	Aliases: []string{"catalogs"},
	Short:   "Inspect explainer catalogs",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available catalogs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalogs, err := loadCatalogs(GetConfig())
		if err != nil {
			return err
		}
		catalogs = filterCatalogs(catalogs, catalogTags)

		out := cmd.OutOrStdout()
		if IsJSONOutput() || IsJSONLOutput() {
			summaries := make([]catalogSummary, 0, len(catalogs))
			for _, c := range catalogs {
				summaries = append(summaries, summarizeCatalog(c))
			}
			return WriteOutput(out, summaries)
		}

		if len(catalogs) == 0 {
			fmt.Fprintln(out, "No catalogs found.")
			return nil
		}

		rows := make([][]string, 0, len(catalogs))
		for _, c := range catalogs {
			rows = append(rows, []string{
				c.Name(),
				c.Title(),
				fmt.Sprintf("%d", c.Len()),
				formatDuration(c.TotalDuration()),
				string(c.FinalHold()),
				c.Source(),
				strings.Join(c.Tags(), ","),
			})
		}
		return writeTable(out,
			[]string{"NAME", "TITLE", "STAGES", "LENGTH", "FINAL HOLD", "SOURCE", "TAGS"},
			rows,
			alignLeft, alignLeft, alignRight, alignRight,
		)
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the stages of a catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalogs, err := loadCatalogs(GetConfig())
		if err != nil {
			return err
		}
		c, err := catalog.Find(catalogs, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(out, describeCatalog(c))
		}

		fmt.Fprintf(out, "%s (%s)\n", c.Title(), c.Name())
		if c.Description() != "" {
			fmt.Fprintln(out, c.Description())
		}
		fmt.Fprintf(out, "Source: %s  Visible at: %.0f%%  Final hold: %s  Summary: %s\n\n",
			c.Source(), c.VisibleAt()*100, c.FinalHold(), formatYesNo(len(c.Summary()) > 0))

		rows := make([][]string, 0, c.Len())
		var at time.Duration
		for _, stage := range c.Stages() {
			rows = append(rows, []string{
				fmt.Sprintf("%d", stage.Index+1),
				stage.Title,
				formatStageDuration(stage.Duration),
				formatDuration(at),
				stage.Description,
			})
			at += stage.Duration
		}
		return writeTable(out,
			[]string{"#", "STAGE", "DWELL", "STARTS AT", "DESCRIPTION"},
			rows,
			alignRight, alignLeft, alignRight, alignRight,
		)
	},
}

type catalogSummary struct {
	Name      string   `json:"name"`
	Title     string   `json:"title"`
	Stages    int      `json:"stages"`
	LengthMS  int64    `json:"length_ms"`
	FinalHold string   `json:"final_hold"`
	Source    string   `json:"source"`
	Tags      []string `json:"tags,omitempty"`
}

type stageDetail struct {
	Index       int      `json:"index"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	DurationMS  int64    `json:"duration_ms"`
	Body        []string `json:"body,omitempty"`
}

type catalogDetail struct {
	catalogSummary
	Kicker      string        `json:"kicker,omitempty"`
	Description string        `json:"description,omitempty"`
	VisibleAt   float64       `json:"visible_at"`
	Summary     []string      `json:"summary,omitempty"`
	Input       string        `json:"input,omitempty"`
	StageList   []stageDetail `json:"stage_list"`
}

func summarizeCatalog(c *catalog.Catalog) catalogSummary {
	return catalogSummary{
		Name:      c.Name(),
		Title:     c.Title(),
		Stages:    c.Len(),
		LengthMS:  c.TotalDuration().Milliseconds(),
		FinalHold: string(c.FinalHold()),
		Source:    c.Source(),
		Tags:      c.Tags(),
	}
}

func describeCatalog(c *catalog.Catalog) catalogDetail {
	detail := catalogDetail{
		catalogSummary: summarizeCatalog(c),
		Kicker:         c.Kicker(),
		Description:    c.Description(),
		VisibleAt:      c.VisibleAt(),
		Summary:        c.Summary(),
	}
	if in, ok := c.Input(); ok {
		detail.Input = in.Default
	}
	for _, stage := range c.Stages() {
		detail.StageList = append(detail.StageList, stageDetail{
			Index:       stage.Index,
			Title:       stage.Title,
			Description: stage.Description,
			DurationMS:  stage.Duration.Milliseconds(),
			Body:        stage.Body,
		})
	}
	return detail
}

func formatStageDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return formatDuration(d)
}

// loadCatalogs resolves catalogs from the configured search paths.
func loadCatalogs(cfg *config.Config) ([]*catalog.Catalog, error) {
	step := startCatalogStep("Loading catalogs")
	project := cfg.Catalogs.ProjectDir
	if project == "" {
		if wd, err := os.Getwd(); err == nil {
			project = wd
		}
	}
	catalogs, err := catalog.LoadCatalogsFromSearchPaths(project, cfg.Catalogs.Dirs...)
	if err != nil {
		step.Fail(err)
		return nil, fmt.Errorf("load catalogs: %w", err)
	}
	step.Done(catalogs)
	return catalogs, nil
}

// filterCatalogs keeps catalogs carrying any of tags. No tags keeps all.
func filterCatalogs(items []*catalog.Catalog, tags []string) []*catalog.Catalog {
	if len(tags) == 0 {
		return items
	}
	var out []*catalog.Catalog
	for _, c := range items {
		for _, tag := range tags {
			if c.HasTag(tag) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// selectCatalogs returns the catalogs named in names, in that order, and
// the names that matched nothing. No names selects everything.
func selectCatalogs(items []*catalog.Catalog, names []string) ([]*catalog.Catalog, []string) {
	if len(names) == 0 {
		return items, nil
	}
	var (
		selected []*catalog.Catalog
		missing  []string
	)
	for _, name := range names {
		c, err := catalog.Find(items, name)
		if err != nil {
			missing = append(missing, name)
			continue
		}
		selected = append(selected, c)
	}
	return selected, missing
}
