package present

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"ttydeck/internal/deck"
	"ttydeck/internal/render"
)

const (
	defaultTitle  = "ttydeck"
	maxPending    = 4 // digits in a numeric prefix
	minContentCol = 20
)

// SlideRenderer lays out one slide for a given area.
type SlideRenderer interface {
	Render(s deck.Slide, width, height int) render.Frame
}

// Options configure the presentation chrome.
type Options struct {
	ShowProgress bool
	ShowTOC      bool
	TOCWidth     int

	// Size used until the terminal reports its own.
	Width  int
	Height int

	Logger *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		ShowProgress: true,
		TOCWidth:     28,
		Width:        80,
		Height:       24,
	}
}

// Model is the bubbletea model driving a presentation. The current slide is
// rendered once when it is entered and again on resize; View only composes
// the cached frame with the chrome.
type Model struct {
	deck     *deck.Deck
	nav      *Navigator
	renderer SlideRenderer
	keys     keyMap
	help     help.Model
	progress progress.Model
	opts     Options
	log      *slog.Logger
	titler   cases.Caser

	width  int
	height int
	frame  render.Frame

	initCmd tea.Cmd

	pending  string // numeric prefix typed so far
	status   string // transient message, cleared by the next key
	showTOC  bool
	showHelp bool
}

// NewModel starts navigation on d. It fails with ErrEmptyDeck when d has no
// slides.
func NewModel(d *deck.Deck, r SlideRenderer, opts Options) (Model, error) {
	nav := NewNavigator(d)
	if err := nav.Start(); err != nil {
		return Model{}, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.TOCWidth <= 0 {
		opts.TOCWidth = DefaultOptions().TOCWidth
	}

	m := Model{
		deck:     d,
		nav:      nav,
		renderer: r,
		keys:     defaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient()),
		opts:     opts,
		log:      logger,
		titler:   cases.Title(language.English),
		showTOC:  opts.ShowTOC,
	}
	m.resize(opts.Width, opts.Height)
	m.enter()
	m.initCmd = m.setProgress()
	return m, nil
}

// Navigator exposes the cursor, mainly for tests and callers inspecting the
// final state.
func (m Model) Navigator() *Navigator { return m.nav }

func (m Model) Init() tea.Cmd {
	return m.initCmd
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.nav.State() == Exited {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.render()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	// FrameMsg is sent when the progress bar wants to animate itself
	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	if s := msg.String(); len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		if len(m.pending) < maxPending {
			m.pending += s
		}
		return m, nil
	}
	pending := m.pending
	m.pending = ""

	var moved bool
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.nav.Quit()
		m.log.Info("presentation finished", slog.Int("slide", m.nav.Current()+1))
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		moved = m.nav.Next()

	case key.Matches(msg, m.keys.Previous):
		moved = m.nav.Previous()

	case key.Matches(msg, m.keys.First):
		if n, ok := parsePending(pending); ok {
			moved = m.nav.JumpTo(n - 1)
		} else {
			moved = m.nav.First()
		}

	case key.Matches(msg, m.keys.Last):
		moved = m.nav.Last()

	case key.Matches(msg, m.keys.Section):
		n, ok := parsePending(pending)
		if !ok {
			m.status = "type a section number before enter"
			return m, nil
		}
		var err error
		moved, err = m.nav.JumpToSection(n - 1)
		if err != nil {
			m.status = err.Error()
			var navErr *NavigationError
			if errors.As(err, &navErr) {
				m.log.Info("navigation rejected", slog.Int("section", navErr.Section+1), slog.Int("sections", navErr.Count))
			}
			return m, nil
		}

	case key.Matches(msg, m.keys.ClearNum):
		return m, nil

	case key.Matches(msg, m.keys.ToggleTOC):
		m.showTOC = !m.showTOC
		m.render()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}

	if !moved {
		return m, nil
	}
	m.enter()
	cmd := m.setProgress()
	return m, cmd
}

func parsePending(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// enter is called whenever the cursor lands on a new slide.
func (m *Model) enter() {
	m.log.Debug("showing slide",
		slog.Int("slide", m.nav.Current()+1),
		slog.Int("total", m.nav.Total()),
		slog.String("kind", m.nav.Slide().Kind().String()),
	)
	m.render()
}

func (m *Model) render() {
	m.frame = m.renderer.Render(m.nav.Slide(), m.contentWidth(), m.contentHeight())
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.progress.Width = max(width-4, 0) // Leave some margin
}

func (m *Model) setProgress() tea.Cmd {
	if !m.progressVisible() {
		return nil
	}
	percentage := float64(m.nav.Current()+1) / float64(m.nav.Total())
	return m.progress.SetPercent(percentage)
}

// statusVisible reports whether the status line fits below at least one
// content row.
func (m Model) statusVisible() bool {
	return m.height >= 2
}

// progressVisible reports whether the progress bar fits below the status
// line. It is dropped before the status line on short terminals.
func (m Model) progressVisible() bool {
	return m.opts.ShowProgress && m.height >= 3
}

func (m Model) chromeHeight() int {
	h := 0
	if m.statusVisible() {
		h++
	}
	if m.progressVisible() {
		h++
	}
	return h
}

func (m Model) contentHeight() int {
	return max(m.height-m.chromeHeight(), 0)
}

func (m Model) sidebarVisible() bool {
	return m.showTOC && m.width >= m.opts.TOCWidth+minContentCol
}

func (m Model) contentWidth() int {
	if m.sidebarVisible() {
		return m.width - m.opts.TOCWidth
	}
	return m.width
}

func (m Model) View() string {
	if m.nav.State() == Exited || m.height <= 0 || m.width <= 0 {
		return ""
	}

	contentHeight := m.contentHeight()
	contentWidth := m.contentWidth()

	var lines []string
	if m.showHelp {
		h := m.help
		h.Width = contentWidth
		lines = []string{""}
		for _, l := range strings.Split(h.FullHelpView(m.keys.FullHelp()), "\n") {
			lines = append(lines, ansi.Truncate(l, contentWidth, ""))
		}
	} else {
		lines = append(lines, m.frame...)
	}
	if len(lines) > contentHeight {
		lines = lines[:contentHeight]
	}

	// Pad content to fill the available height
	for len(lines) < contentHeight {
		lines = append(lines, "")
	}
	content := strings.Join(lines, "\n")

	if m.sidebarVisible() {
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(contentHeight), content)
	}

	view := content
	if m.statusVisible() {
		view += "\n" + m.statusLine()
	}
	if m.progressVisible() {
		view += "\n" + m.progress.View()
	}
	return view
}

var (
	sidebarStyle = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderRight(true).BorderForeground(lipgloss.Color("240"))
	currentEntry = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	statusStyle  = lipgloss.NewStyle().Background(lipgloss.Color("240")).Foreground(lipgloss.Color("15")).Padding(0, 1)
	statusError  = lipgloss.NewStyle().Background(lipgloss.Color("240")).Foreground(lipgloss.Color("9"))
)

func (m Model) sidebar(height int) string {
	inner := m.opts.TOCWidth - 2 // border and one column gap
	current := m.nav.Section()

	lines := []string{"Contents", ""}
	for i, e := range m.deck.TOCEntries() {
		title := e.Title
		if title == "" {
			title = "(untitled)"
		}
		line := ansi.Truncate(fmt.Sprintf("%s%d %s", strings.Repeat(" ", e.Depth), i+1, title), inner, "…")
		if i == current {
			line = currentEntry.Render(line)
		}
		lines = append(lines, line)
	}
	if len(lines) > height {
		lines = lines[:height]
	}

	return sidebarStyle.
		Width(m.opts.TOCWidth - 1).
		Height(height).
		MaxHeight(height).
		Render(strings.Join(lines, "\n"))
}

func (m Model) statusLine() string {
	var left strings.Builder
	fmt.Fprintf(&left, "Slide %d/%d", m.nav.Current()+1, m.nav.Total())

	if entries := m.deck.TOCEntries(); m.nav.Section() >= 0 {
		if t := entries[m.nav.Section()].Title; t != "" {
			left.WriteString(" · " + t)
		}
	}
	if s := m.nav.Slide(); s.Kind() == deck.Code && s.Language() != "" {
		left.WriteString(" · " + m.titler.String(s.Language()))
	}
	if m.pending != "" {
		left.WriteString(" · " + m.pending + "…")
	}

	statusLeft := left.String()
	if m.status != "" {
		statusLeft += " " + statusError.Render(m.status)
	}

	statusRight := m.deck.Title()
	if statusRight == "" {
		statusRight = defaultTitle
	}

	// Calculate available width (account for padding)
	availableWidth := m.width - 4
	totalTextWidth := ansi.StringWidth(statusLeft) + ansi.StringWidth(statusRight)

	// If text is too long, truncate the title
	if totalTextWidth > availableWidth {
		maxTitleWidth := availableWidth - ansi.StringWidth(statusLeft) - 4
		if maxTitleWidth < 10 {
			statusRight = ""
		} else if maxTitleWidth < ansi.StringWidth(statusRight) {
			statusRight = ansi.Truncate(statusRight, maxTitleWidth, "...")
		}
	}

	totalTextWidth = ansi.StringWidth(statusLeft) + ansi.StringWidth(statusRight)
	remainingSpace := availableWidth - totalTextWidth

	var statusContent string
	if remainingSpace > 0 {
		statusContent = statusLeft + strings.Repeat(" ", remainingSpace+2) + statusRight
	} else {
		// Minimal spacing if very tight
		statusContent = ansi.Truncate(statusLeft+" "+statusRight, max(m.width-2, 0), "")
	}

	return statusStyle.Width(m.width).MaxWidth(m.width).Render(statusContent)
}
