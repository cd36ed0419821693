package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/folio-labs/explainer/internal/autoplay"
	"github.com/folio-labs/explainer/internal/catalog"
	"github.com/folio-labs/explainer/internal/player"
	"github.com/folio-labs/explainer/internal/tui/components"
	"github.com/folio-labs/explainer/internal/tui/styles"
	"github.com/folio-labs/explainer/internal/visibility"
)

// section is one explainer in the document: a catalog, its sequencer and
// the gate that autoplays it.
type section struct {
	catalog *catalog.Catalog
	seq     *player.Sequencer
	gate    *visibility.Gate
	trigger *autoplay.Trigger
	snap    player.Snapshot

	// Reader-edited input text, or empty to use the catalog default.
	input   string
	editing bool
	draft   []rune

	// Layout, recomputed on every render.
	top   int
	lines []string
}

func (s *section) height() int { return len(s.lines) }

// fraction is the share of the section inside the viewport.
func (s *section) fraction(viewTop, viewHeight int) float64 {
	return visibility.Fraction(s.top, s.height(), viewTop, viewHeight)
}

func (s *section) refresh() {
	s.snap = s.seq.Snapshot()
}

// inputText returns the text substituted into stage bodies.
func (s *section) inputText() string {
	if s.input != "" {
		return s.input
	}
	in, _ := s.catalog.Input()
	return in.Default
}

func (s *section) editable() bool {
	_, ok := s.catalog.Input()
	return ok
}

func (s *section) startEdit() bool {
	if !s.editable() {
		return false
	}
	s.editing = true
	s.draft = []rune(s.inputText())
	return true
}

// editKey applies one key to the draft. It reports false once editing ends.
func (s *section) editKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyEnter:
		text := strings.Join(strings.Fields(string(s.draft)), " ")
		in, _ := s.catalog.Input()
		if text == in.Default {
			text = ""
		}
		s.input = text
		s.editing, s.draft = false, nil
		return false
	case tea.KeyEsc:
		s.editing, s.draft = false, nil
		return false
	case tea.KeyBackspace:
		if len(s.draft) > 0 {
			s.draft = s.draft[:len(s.draft)-1]
		}
	case tea.KeyCtrlU:
		s.draft = s.draft[:0]
	case tea.KeySpace:
		s.appendDraft(' ')
	case tea.KeyRunes:
		s.appendDraft(msg.Runes...)
	}
	return true
}

func (s *section) appendDraft(runes ...rune) {
	for _, r := range runes {
		if len(s.draft) >= catalog.MaxInputRunes {
			return
		}
		s.draft = append(s.draft, r)
	}
}

func (s *section) render(styleSet styles.Styles, width int, focused bool) []string {
	c := s.catalog
	snap := s.snap
	stage, _ := c.Stage(snap.Stage)

	wrap := func(style lipgloss.Style, text string) string {
		return style.Copy().Width(width).Render(text)
	}

	var blocks []string
	if c.Kicker() != "" {
		blocks = append(blocks, styleSet.Kicker.Render(strings.ToUpper(c.Kicker())))
	}
	marker, titleStyle := "  ", styleSet.Title
	if focused {
		marker, titleStyle = "▸ ", styleSet.Focus
	}
	blocks = append(blocks, marker+titleStyle.Render(c.Title()))
	if c.Description() != "" {
		blocks = append(blocks, wrap(styleSet.Muted, c.Description()))
	}

	progress := components.ProgressBar{Current: snap.Stage, Total: c.Len(), Width: min(40, max(width/2, 8))}
	blocks = append(blocks,
		"",
		progress.Render(styleSet)+"  "+components.RenderStatusBadge(styleSet, snap),
		components.StageTabs{Titles: stageTitles(c), Current: snap.Stage, Width: width}.Render(styleSet),
		"",
		styleSet.Accent.Render(fmt.Sprintf("Stage %d: %s", snap.Stage+1, stage.Title)),
	)
	if stage.Description != "" {
		blocks = append(blocks, wrap(styleSet.Text, stage.Description))
	}
	text := s.inputText()
	if s.editing {
		text = string(s.draft)
		in, _ := c.Input()
		blocks = append(blocks, "", components.RenderInputEditor(styleSet, in.Label, text, width))
	}
	for _, line := range catalog.ExpandBody(stage.Body, text) {
		if strings.TrimSpace(line) == catalog.TokensPlaceholder {
			blocks = append(blocks, components.RenderTokens(styleSet, catalog.Tokenize(text), width-2))
			continue
		}
		blocks = append(blocks, wrap(styleSet.Muted, "  "+line))
	}

	if snap.Stage == c.Last() && !snap.Playing() {
		if summary := components.RenderSummary(styleSet, "", c.Summary()); summary != "" {
			blocks = append(blocks, "", summary)
		}
	}

	blocks = append(blocks,
		"",
		components.RenderQuickActionBar(styleSet, s.actions()),
		styleSet.Border.Render(strings.Repeat("─", width)),
		"",
	)
	return strings.Split(strings.Join(blocks, "\n"), "\n")
}

func (s *section) actions() []components.QuickAction {
	actions := components.PlaybackActions(s.snap, s.catalog.Len())
	if s.editable() {
		actions = append(actions, components.QuickAction{Key: "e", Label: "Edit text", Enabled: !s.editing})
	}
	return actions
}

func stageTitles(c *catalog.Catalog) []string {
	stages := c.Stages()
	titles := make([]string, len(stages))
	for i, st := range stages {
		titles[i] = st.Title
	}
	return titles
}
