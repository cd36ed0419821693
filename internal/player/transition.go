package player

import (
	"time"

	"github.com/folio-labs/explainer/internal/catalog"
)

type transitionStep int

const (
	stepNone transitionStep = iota
	stepAdvance
	stepFinish
)

// nextTransition returns what follows stage and after how long. The delay
// is always the dwell of the stage being left, never the destination.
func nextTransition(stage int, c *catalog.Catalog) (time.Duration, transitionStep) {
	last := c.Last()
	if stage < last {
		return c.Duration(stage), stepAdvance
	}
	if c.FinalHold() == catalog.FinalHoldDwell {
		if d := c.Duration(last); d > 0 {
			return d, stepFinish
		}
	}
	return 0, stepNone
}
