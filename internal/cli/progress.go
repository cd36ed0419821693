package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/folio-labs/explainer/internal/catalog"
)

// catalogStep reports catalog discovery on stderr while a command starts.
type catalogStep struct {
	out     io.Writer
	started time.Time
}

func startCatalogStep(label string) *catalogStep {
	if !progressEnabled() {
		return nil
	}
	return beginCatalogStep(os.Stderr, label)
}

func beginCatalogStep(out io.Writer, label string) *catalogStep {
	fmt.Fprintf(out, "%s... ", label)
	return &catalogStep{out: out, started: time.Now()}
}

// Done prints where the loaded catalogs came from.
func (s *catalogStep) Done(catalogs []*catalog.Catalog) {
	if s == nil {
		return
	}
	fmt.Fprintf(s.out, "%s (%s)\n", countSources(catalogs), formatDuration(time.Since(s.started)))
}

func (s *catalogStep) Fail(err error) {
	if s == nil {
		return
	}
	if err != nil {
		fmt.Fprintf(s.out, "failed: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "failed")
}

// sourceCounts splits loaded catalogs into bundled and on-disk ones.
type sourceCounts struct {
	Builtin int
	Disk    int
}

func countSources(catalogs []*catalog.Catalog) sourceCounts {
	var counts sourceCounts
	for _, c := range catalogs {
		if c.Source() == "builtin" {
			counts.Builtin++
		} else {
			counts.Disk++
		}
	}
	return counts
}

func (c sourceCounts) String() string {
	total := c.Builtin + c.Disk
	noun := "catalogs"
	if total == 1 {
		noun = "catalog"
	}
	if c.Disk == 0 {
		return fmt.Sprintf("%d %s, all built-in", total, noun)
	}
	return fmt.Sprintf("%d %s: %d built-in, %d from disk", total, noun, c.Builtin, c.Disk)
}

func progressEnabled() bool {
	if IsJSONOutput() || IsJSONLOutput() || noProgress || !hasTTY() {
		return false
	}
	for _, key := range []string{"EXPLAINER_NO_PROGRESS", "NO_PROGRESS"} {
		if _, ok := os.LookupEnv(key); ok {
			return false
		}
	}
	return true
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return d.String()
	case d < time.Second:
		return d.Round(10 * time.Millisecond).String()
	default:
		return d.Round(100 * time.Millisecond).String()
	}
}
