// Package terminal previews bar charts in the terminal with bubbletea.
package terminal

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/recera/vangochart/internal/dataset"
	"github.com/recera/vangochart/pkg/barchart"
	"github.com/recera/vangochart/pkg/scale"
)

// Loader fetches the series to display
type Loader func() (*dataset.Series, error)

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var DefaultKeyMap = KeyMap{
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q", "esc"),
		key.WithHelp("q", "quit"),
	),
}

// Messages
type loadedMsg struct {
	layout *barchart.Layout
	total  float64
	at     time.Time
}
type loadErrorMsg struct{ err error }

// Model represents the preview state
type Model struct {
	width  int
	height int

	title  string
	chart  *barchart.Chart
	load   Loader
	layout *barchart.Layout
	total  float64

	loadedAt time.Time
	loading  bool
	showHelp bool
	quitting bool
	err      error
}

// NewModel creates a preview of the series returned by load
func NewModel(title string, chart *barchart.Chart, load Loader) Model {
	return Model{
		width:   80,
		title:   title,
		chart:   chart,
		load:    load,
		loading: true,
	}
}

// Init loads the initial series
func (m Model) Init() tea.Cmd {
	return m.reload()
}

func (m Model) reload() tea.Cmd {
	chart, load := m.chart, m.load
	return func() tea.Msg {
		s, err := load()
		if err != nil {
			return loadErrorMsg{err}
		}
		l, err := chart.Layout(s.Values, s.Labels)
		if err != nil {
			return loadErrorMsg{err}
		}
		return loadedMsg{layout: l, total: s.Total(), at: time.Now()}
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, DefaultKeyMap.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, DefaultKeyMap.Reload):
			m.loading = true
			return m, m.reload()
		}

	case loadedMsg:
		m.layout = msg.layout
		m.total = msg.total
		m.loadedAt = msg.at
		m.loading = false
		m.err = nil
		return m, nil

	case loadErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("✗ " + m.err.Error()))
		b.WriteString("\n")
	case m.layout == nil:
		b.WriteString(helpStyle.Render("Loading..."))
		b.WriteString("\n")
	default:
		b.WriteString(Render(m.layout, m.plotCols()))
	}

	b.WriteString(footerStyle.Render(m.status()))
	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(helpStyle.Render(m.help()))
		b.WriteString("\n")
	}

	return baseStyle.Render(b.String())
}

// plotCols leaves room for padding, labels and the value text.
func (m Model) plotCols() int {
	labels := 0
	for _, bar := range m.layout.Bars {
		labels = max(labels, lipgloss.Width(bar.Label))
	}
	return m.width - labels - 16
}

func (m Model) status() string {
	if m.layout == nil {
		return "r reload • q quit"
	}
	s := fmt.Sprintf("%d bars • total %s", len(m.layout.Bars), scale.GroupedFixed(2)(m.total))
	if !m.loadedAt.IsZero() {
		s += " • loaded " + m.loadedAt.Format("15:04:05")
	}
	if m.loading {
		s += " • reloading"
	}
	return s
}

func (m Model) help() string {
	var parts []string
	for _, b := range []key.Binding{DefaultKeyMap.Reload, DefaultKeyMap.Help, DefaultKeyMap.Quit} {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
