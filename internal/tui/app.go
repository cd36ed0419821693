// Package tui renders explainers as a scrollable terminal document.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/folio-labs/explainer/internal/autoplay"
	"github.com/folio-labs/explainer/internal/catalog"
	"github.com/folio-labs/explainer/internal/clock"
	"github.com/folio-labs/explainer/internal/logging"
	"github.com/folio-labs/explainer/internal/player"
	"github.com/folio-labs/explainer/internal/tui/components"
	"github.com/folio-labs/explainer/internal/tui/styles"
	"github.com/folio-labs/explainer/internal/visibility"
)

// Options configures the explainer UI.
type Options struct {
	Catalogs  []*catalog.Catalog
	Scheduler clock.Scheduler
	Motion    autoplay.MotionPreference
	Theme     string
	// Missing lists requested names that matched no catalog.
	Missing []string
}

// Run launches the explainer UI and blocks until the user quits or ctx is
// cancelled. Every sequencer is closed before Run returns.
func Run(ctx context.Context, opts Options) error {
	m, err := newModel(opts)
	if err != nil {
		return err
	}
	defer m.close()

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

const (
	minWidth      = 50
	minHeight     = 12
	defaultWidth  = 80
	defaultHeight = 24
	footerLines   = 2
	maxWidth      = 100
)

type model struct {
	styles   styles.Styles
	sections []*section
	bridge   *bridge
	logger   zerolog.Logger
	missing  []string

	width  int
	height int
	offset int
	focus  int
	doc    []string
}

func newModel(opts Options) (model, error) {
	theme := styles.DefaultTheme
	if opts.Theme != "" {
		var ok bool
		if theme, ok = styles.ThemeByName(opts.Theme); !ok {
			return model{}, fmt.Errorf("unknown theme %q", opts.Theme)
		}
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = clock.Real()
	}

	m := model{
		styles:  styles.BuildStyles(theme),
		bridge:  newBridge(),
		logger:  logging.Component("tui"),
		missing: opts.Missing,
	}

	for i, c := range opts.Catalogs {
		seq := player.New(c, player.WithScheduler(sched))
		if err := seq.Subscribe("tui", m.bridge.subscriber(i)); err != nil {
			m.close()
			return model{}, fmt.Errorf("subscribe to %s: %w", c.Name(), err)
		}
		s := &section{
			catalog: c,
			seq:     seq,
			gate:    visibility.New(c.VisibleAt()),
			trigger: autoplay.New(seq, opts.Motion),
		}
		s.trigger.Attach(s.gate)
		s.refresh()
		m.sections = append(m.sections, s)
	}

	m.layout()
	return m, nil
}

func (m model) Init() tea.Cmd {
	return m.bridge.wait()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.feedGates()
	case stageBatchMsg:
		for _, change := range msg {
			if change.Section >= 0 && change.Section < len(m.sections) {
				m.sections[change.Section].snap = change.Snapshot
			}
		}
		m.layout()
		m.feedGates()
		return m, m.bridge.wait()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if s := m.focused(); s != nil && s.editing {
		if msg.Type == tea.KeyCtrlC {
			m.close()
			return m, tea.Quit
		}
		if !s.editKey(msg) {
			m.logger.Debug().Str("catalog", s.catalog.Name()).Int("tokens", len(catalog.Tokenize(s.inputText()))).Msg("input edited")
		}
		m.layout()
		return m, nil
	}

	key := msg.String()
	switch key {
	case "q", "esc", "ctrl+c":
		m.close()
		return m, tea.Quit
	case "j", "down":
		m.scroll(1)
	case "k", "up":
		m.scroll(-1)
	case "pgdown", " ":
		m.scroll(m.viewHeight())
	case "pgup":
		m.scroll(-m.viewHeight())
	case "home", "g":
		m.scroll(-len(m.doc))
	case "end", "G":
		m.scroll(len(m.doc))
	case "tab":
		m.focusSection(m.focus + 1)
	case "shift+tab":
		m.focusSection(m.focus - 1)
	default:
		m.handleSectionKey(key)
	}
	return m, nil
}

func (m *model) handleSectionKey(key string) {
	s := m.focused()
	if s == nil {
		return
	}
	live := s.seq.Snapshot()

	switch key {
	case "left", "h":
		s.seq.JumpTo(live.Stage - 1)
	case "right", "l":
		s.seq.JumpTo(live.Stage + 1)
	case "r":
		if !live.Playing() {
			s.seq.Replay()
		}
	case "s":
		if !live.Playing() && !live.HasPlayedOnce {
			s.seq.Play()
		}
	case "e":
		if !s.startEdit() {
			return
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			s.seq.JumpTo(int(key[0] - '1'))
		} else {
			return
		}
	}

	s.refresh()
	m.layout()
	m.feedGates()
}

func (m *model) focused() *section {
	if m.focus < 0 || m.focus >= len(m.sections) {
		return nil
	}
	return m.sections[m.focus]
}

// focusSection moves focus to section i, wrapping around, and scrolls its
// top into view.
func (m *model) focusSection(i int) {
	n := len(m.sections)
	if n == 0 {
		return
	}
	m.focus = ((i % n) + n) % n
	m.layout()
	m.offset = m.sections[m.focus].top
	m.clampOffset()
	m.feedGates()
}

func (m *model) scroll(delta int) {
	m.offset += delta
	m.clampOffset()
	m.feedGates()
}

func (m *model) clampOffset() {
	maxOffset := max(len(m.doc)-m.viewHeight(), 0)
	m.offset = max(0, min(m.offset, maxOffset))
}

// feedGates reports each section's visible share to its gate. The first
// time a section crosses its threshold, its trigger decides how to start it.
func (m *model) feedGates() {
	opened := false
	for _, s := range m.sections {
		if s.gate.Update(s.fraction(m.offset, m.viewHeight())) {
			opened = true
			s.refresh()
			m.logger.Debug().
				Str("catalog", s.catalog.Name()).
				Str("outcome", string(s.trigger.Outcome())).
				Msg("section visible")
		}
	}
	if opened {
		m.layout()
	}
}

func (m *model) layout() {
	width := m.contentWidth()
	doc := m.header(width)
	for i, s := range m.sections {
		s.top = len(doc)
		s.lines = s.render(m.styles, width, i == m.focus)
		doc = append(doc, s.lines...)
	}
	m.doc = doc
	m.clampOffset()
}

func (m model) header(width int) []string {
	lines := []string{
		m.styles.Title.Render("Interactive explainers"),
		m.styles.Muted.Copy().Width(width).Render("Scroll to bring a walkthrough into view; it plays once on its own."),
		"",
	}
	switch {
	case len(m.sections) == 0 && len(m.missing) > 0:
		lines = append(lines, strings.Split(components.EmptyCatalogsFiltered(m.missing).Render(m.styles), "\n")...)
	case len(m.sections) == 0:
		lines = append(lines, strings.Split(components.EmptyCatalogs().Render(m.styles), "\n")...)
	case len(m.missing) > 0:
		lines = append(lines, m.styles.Warning.Render("Not found: "+strings.Join(m.missing, ", ")), "")
	}
	return lines
}

func (m model) contentWidth() int {
	w := m.width
	if w <= 0 {
		w = defaultWidth
	}
	return min(w-2, maxWidth)
}

func (m model) viewHeight() int {
	h := m.height
	if h <= 0 {
		h = defaultHeight
	}
	return max(h-footerLines, 1)
}

func (m model) View() string {
	if m.width > 0 && m.height > 0 {
		if m.width < minWidth || m.height < minHeight {
			return strings.Join(m.smallViewLines(), "\n") + "\n"
		}
	}

	vh := m.viewHeight()
	end := min(m.offset+vh, len(m.doc))
	lines := append([]string(nil), m.doc[m.offset:end]...)
	for len(lines) < vh {
		lines = append(lines, "")
	}

	lines = append(lines, m.statusLine(), m.styles.Muted.Render("Shortcuts: j/k scroll | tab next | 1-9 stage | r replay | s start | e edit | q quit"))
	return strings.Join(lines, "\n")
}

func (m model) statusLine() string {
	s := m.focused()
	if s == nil {
		return ""
	}
	return fmt.Sprintf("%s  %s  %s",
		m.styles.Focus.Render(s.catalog.Title()),
		components.RenderStatusBadge(m.styles, s.snap),
		m.styles.Muted.Render(fmt.Sprintf("stage %d/%d", s.snap.Stage+1, s.catalog.Len())),
	)
}

func (m model) smallViewLines() []string {
	message := fmt.Sprintf("Terminal too small (%dx%d).", m.width, m.height)
	hint := fmt.Sprintf("Resize to at least %dx%d.", minWidth, minHeight)

	return []string{
		m.styles.Warning.Render(message),
		m.styles.Muted.Render(hint),
		m.styles.Muted.Render("Press q to quit."),
	}
}

// close stops every sequencer and the bridge. Safe to call more than once.
func (m model) close() {
	for _, s := range m.sections {
		s.seq.Close()
	}
	m.bridge.close()
}
