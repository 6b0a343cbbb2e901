package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"textdiff/internal/clipboard"
	"textdiff/internal/logging"
	"textdiff/internal/results"
)

const (
	alertDuration = 3 * time.Second
	copyTimeout   = 5 * time.Second
	emptyDocument = "No documents to display."
)

type clipboardResultMsg struct {
	err error
}

type savedMsg struct {
	path string
	err  error
}

type alertTickMsg struct{}

// setContent loads rendered text into the viewport.
var setContent = func(v *viewport.Model, content string) {
	v.SetContent(content)
}

// Options configure NewModel. Zero values select the system clipboard and a discarding logger.
type Options struct {
	Title string
	// Export holds the documents handed out by copy and save. When empty, the displayed documents are used with
	// terminal escapes removed.
	Export results.Set
	// Store is where the save key writes the result set; nil disables saving.
	Store  *results.Store
	Logger *slog.Logger
	Copy   func(ctx context.Context, text string) error
}

// Model displays one result set and switches between its documents. Failures while displaying are logged and shown as
// an alert; they never end the program.
type Model struct {
	keys     KeyMap
	viewer   *results.Viewer
	export   results.Set
	store    *results.Store
	logger   *slog.Logger
	copyText func(ctx context.Context, text string) error
	title    string

	width    int
	height   int
	ready    bool
	helpOpen bool

	view          viewport.Model
	dirty         bool
	renderedWidth int

	alertMsg   string
	alertUntil time.Time
}

func NewModel(set results.Set, opts Options) Model {
	m := Model{
		keys:          defaultKeyMap(),
		viewer:        results.NewViewer(set),
		export:        opts.Export,
		store:         opts.Store,
		logger:        opts.Logger,
		copyText:      opts.Copy,
		title:         opts.Title,
		dirty:         true,
		renderedWidth: -1,
	}
	if m.logger == nil {
		m.logger = logging.Discard()
	}
	if m.copyText == nil {
		m.copyText = clipboard.CopyText
	}
	if m.title == "" {
		m.title = "textdiff"
	}
	m.view = viewport.New(1, 1)
	return m
}

func (m Model) Init() tea.Cmd {
	return alertTickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizePane()
		return m, nil

	case clipboardResultMsg:
		if msg.err != nil {
			m.logger.Warn("copy to clipboard failed", "error", msg.err)
			m.setAlert(fmt.Sprintf("Copy failed: %v", msg.err))
			m.resizePane()
			return m, nil
		}
		m.setAlert(fmt.Sprintf("Copied %s document to clipboard.", m.viewer.Mode()))
		m.resizePane()
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.logger.Warn("save results failed", "path", msg.path, "error", msg.err)
			m.setAlert(fmt.Sprintf("Save failed: %v", msg.err))
			m.resizePane()
			return m, nil
		}
		m.logger.Info("results saved", "path", msg.path)
		m.setAlert("Saved results to " + msg.path + ".")
		m.resizePane()
		return m, nil

	case alertTickMsg:
		if m.alertMsg != "" && !m.alertUntil.IsZero() && time.Now().After(m.alertUntil) {
			m.alertMsg = ""
			m.alertUntil = time.Time{}
			m.resizePane()
		}
		return m, alertTickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.helpOpen = !m.helpOpen
		m.resizePane()
		return m, nil
	case key.Matches(msg, m.keys.ToggleView):
		if _, ok := m.viewer.Toggle(); !ok {
			m.setAlert("Only one document is available; the view cannot be switched.")
			m.resizePane()
			return m, nil
		}
		offset := m.view.YOffset
		m.dirty = true
		m.resizePane()
		m.view.SetYOffset(clampOffset(offset, m.view.TotalLineCount(), m.view.Height))
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.scroll(1)
	case key.Matches(msg, m.keys.Up):
		m.scroll(-1)
	case key.Matches(msg, m.keys.PageDown):
		m.scroll(max(1, m.view.Height))
	case key.Matches(msg, m.keys.PageUp):
		m.scroll(-max(1, m.view.Height))
	case key.Matches(msg, m.keys.Top):
		m.view.SetYOffset(0)
	case key.Matches(msg, m.keys.Bottom):
		m.scroll(m.view.TotalLineCount())
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyCmd()
	case key.Matches(msg, m.keys.Save):
		if m.store == nil {
			m.setAlert("No results file configured; start with --save FILE.")
			m.resizePane()
			return m, nil
		}
		return m, m.saveCmd()
	}
	return m, nil
}

// View only renders; Update keeps the pane size and its content current.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	footer := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render(truncateLinesToWidth(m.helpText(), m.width))

	dock := ""
	if m.alertMsg != "" {
		dock = m.renderAlertDock()
	}

	body := m.renderPane(m.view.Width, m.view.Height)
	if dock != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, dock)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

func (m Model) helpText() string {
	if !m.helpOpen {
		return "t switch view | j/k scroll | ctrl-f/b page | g/G top/bottom | y copy | s save | ? help | q quit"
	}
	lines := make([]string, 0, len(m.keys.bindings()))
	for _, b := range m.keys.bindings() {
		h := b.Help()
		lines = append(lines, fmt.Sprintf("%-8s %s", h.Key, h.Desc))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderPane(width, height int) string {
	paneStyle := lipgloss.NewStyle().
		Width(max(1, width)).
		Height(max(1, height+1)).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("39"))

	title := fmt.Sprintf("%s [%s]", m.title, m.viewer.Mode())
	if !m.viewer.Set().Switchable() {
		title = m.title + " [single document]"
	}
	if total := m.view.TotalLineCount(); total > m.view.Height {
		title += fmt.Sprintf(" %3.0f%%", m.view.ScrollPercent()*100)
	}
	header := lipgloss.NewStyle().Bold(true).Width(width).MaxWidth(width).Render(title)

	return paneStyle.Render(header + "\n" + m.view.View())
}

func (m Model) renderAlertDock() string {
	hint := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render("Auto-hides after 3s")
	body := strings.Join([]string{
		m.alertMsg,
		"",
		hint,
	}, "\n")
	return m.renderDockPanel("Notice", lipgloss.Color("220"), lipgloss.Color("220"), body)
}

func (m Model) renderDockPanel(title string, titleColor, borderColor lipgloss.Color, body string) string {
	contentW := max(10, m.width-2)
	titleText := ansi.Truncate(title, max(1, contentW-2), "")
	titleBar := lipgloss.NewStyle().
		Width(contentW).
		Padding(0, 1).
		Bold(true).
		Foreground(lipgloss.Color("230")).
		Background(titleColor).
		Render(titleText)

	bodyBlock := lipgloss.NewStyle().
		Width(contentW).
		Padding(1, 2).
		Render(body)

	return lipgloss.NewStyle().
		Width(contentW).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Render(titleBar + "\n" + bodyBlock)
}

func dockHeight(dock string) int {
	if dock == "" {
		return 0
	}
	return lipgloss.Height(dock)
}

// resizePane fits the viewport between the alert dock and the footer, then reloads the document when it is stale.
func (m *Model) resizePane() {
	m.fitPane()
	m.refreshContent()
}

func (m *Model) fitPane() {
	footerHeight := lineCount(truncateLinesToWidth(m.helpText(), m.width))
	dock := ""
	if m.alertMsg != "" {
		dock = m.renderAlertDock()
	}
	w, h := paneSize(m.width, m.height, footerHeight, dockHeight(dock))
	if m.view.Width != w {
		m.dirty = true
	}
	m.view.Width = w
	m.view.Height = h
}

// refreshContent loads the selected document into the viewport, cut to the pane width. A failure is logged and leaves
// the previous content in place until the next switch or resize.
func (m *Model) refreshContent() {
	if !m.dirty && m.renderedWidth == m.view.Width {
		return
	}
	m.dirty = false
	m.renderedWidth = m.view.Width

	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("display update failed", "mode", m.viewer.Mode().String(), "panic", fmt.Sprint(r))
			m.setAlert("Display update failed; showing previous content.")
			m.fitPane()
		}
	}()

	doc, _ := m.viewer.Current()
	if doc == "" {
		doc = emptyDocument
	}
	setContent(&m.view, truncateLinesToWidth(doc, m.view.Width))
}

func (m *Model) scroll(delta int) {
	m.view.SetYOffset(clampOffset(m.view.YOffset+delta, m.view.TotalLineCount(), m.view.Height))
}

func (m Model) exportSet() results.Set {
	set := m.viewer.Set()
	if m.export.Empty() {
		return set
	}
	export := m.export
	export.Mode = set.Mode
	return export
}

func (m Model) exportDocument() string {
	if !m.export.Empty() {
		doc, _ := m.export.View(m.viewer.Mode())
		return doc
	}
	doc, _ := m.viewer.Current()
	return ansi.Strip(doc)
}

func (m Model) copyCmd() tea.Cmd {
	text := m.exportDocument()
	copyText := m.copyText
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), copyTimeout)
		defer cancel()
		return clipboardResultMsg{err: copyText(ctx, text)}
	}
}

func (m Model) saveCmd() tea.Cmd {
	store := *m.store
	set := m.exportSet()
	return func() tea.Msg {
		return savedMsg{path: store.Path(), err: store.Save(set)}
	}
}

func alertTickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return alertTickMsg{}
	})
}

func (m *Model) setAlert(msg string) {
	m.alertMsg = msg
	m.alertUntil = time.Now().Add(alertDuration)
}

func truncateLinesToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if ansi.StringWidth(line) > width {
			lines[i] = ansi.Truncate(line, width, "")
		}
	}
	return strings.Join(lines, "\n")
}

func lineCount(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}
