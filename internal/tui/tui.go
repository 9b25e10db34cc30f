// Package tui is a terminal front end for the viewer. It drives the same
// session as the desktop window and prints the resulting state.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/example/pinchview/internal/catalog"
	"github.com/example/pinchview/internal/clipboard"
	"github.com/example/pinchview/internal/gesture"
	"github.com/example/pinchview/internal/viewer"
)

// PinchStep is the magnification change for one [ or ] press.
const PinchStep = 0.5

var (
	colorAccent = lipgloss.Color("#BD93F9")
	colorDim    = lipgloss.Color("#6272A4")
	colorWarn   = lipgloss.Color("#FF5555")
	colorOK     = lipgloss.Color("#50FA7B")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	labelStyle  = lipgloss.NewStyle().Foreground(colorDim).Width(8)
	statusStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(colorOK)
	errorStyle  = lipgloss.NewStyle().Foreground(colorWarn)
	helpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// copyText is replaced in tests.
var copyText = clipboard.WriteText

// Model is the bubbletea model.
type Model struct {
	session *viewer.Session
	catalog *catalog.Catalog

	message string
	failed  bool
	width   int
}

// New returns a model driving session.
func New(session *viewer.Session, cat *catalog.Catalog) Model {
	return Model{session: session, catalog: cat}
}

// State returns the session state.
func (m Model) State() viewer.State { return m.session.State() }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update applies key presses to the session.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		return m.key(msg)
	}
	return m, nil
}

func (m Model) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.session.State()
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		return m.apply(viewer.ToggleDrawer{}), nil
	case "left":
		return m.apply(gesture.PanEvents(st, viewer.Point{X: -gesture.PanStep})...), nil
	case "right":
		return m.apply(gesture.PanEvents(st, viewer.Point{X: gesture.PanStep})...), nil
	case "up":
		return m.apply(gesture.PanEvents(st, viewer.Point{Y: -gesture.PanStep})...), nil
	case "down":
		return m.apply(gesture.PanEvents(st, viewer.Point{Y: gesture.PanStep})...), nil
	case "[":
		return m.apply(viewer.PinchChanged{Magnification: st.Scale - PinchStep}, viewer.PinchEnded{}), nil
	case "]":
		return m.apply(viewer.PinchChanged{Magnification: st.Scale + PinchStep}, viewer.PinchEnded{}), nil
	}
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return m, nil
	}
	cmd, ok := gesture.Rune(msg.Runes[0])
	if !ok {
		return m, nil
	}
	if cmd.Event != nil {
		return m.apply(cmd.Event), nil
	}
	switch cmd.Action {
	case gesture.ActionQuit:
		return m, tea.Quit
	case gesture.ActionCopy:
		if err := copyText(st.String()); err != nil {
			m.message, m.failed = fmt.Sprintf("copy: %v", err), true
		} else {
			m.message, m.failed = "state copied to clipboard", false
		}
	case gesture.ActionSave:
		m.message, m.failed = "snapshots are saved from the window or the snapshot command", true
	}
	return m, nil
}

// apply runs events in order and keeps the last rejection as the message.
func (m Model) apply(evs ...viewer.Event) Model {
	m.message, m.failed = "", false
	for _, ev := range evs {
		if err := m.session.Apply(ev); err != nil {
			m.message, m.failed = fmt.Sprintf("%s rejected: %v", ev, err), true
		}
	}
	return m
}

// View renders the status block, drawer, last message and help line.
func (m Model) View() string {
	st := m.session.State()
	page := m.session.CurrentPage()
	var b strings.Builder

	title := "PinchView"
	if m.catalog.Title != "" {
		title += " - " + m.catalog.Title
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	regime := "Fitted"
	if !st.Fitted() {
		regime = "Zoomed"
	}
	rows := []string{
		row("Page", fmt.Sprintf("%d  %s", page.ID, page.ImageName)),
		row("Scale", fmt.Sprintf("%.2f", st.Scale)),
		row("Offset", fmt.Sprintf("%.0f, %.0f", st.Offset.X, st.Offset.Y)),
		row("Mode", regime),
	}
	if st.InfoVisible {
		rows = append(rows, row("Limits", fmt.Sprintf("max %.1f  step %.1f", m.session.Limits().MaxScale, m.session.Limits().ZoomStep)))
	}
	b.WriteString(statusStyle.Render(strings.Join(rows, "\n")))
	b.WriteString("\n")

	if st.DrawerOpen {
		b.WriteString(m.drawer(st))
		b.WriteString("\n")
	}
	if m.message != "" {
		style := activeStyle
		if m.failed {
			style = errorStyle
		}
		b.WriteString(style.Render(m.message))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("+/- zoom  0 reset  [/] pinch  arrows pan  tab pages  1-9 page  i info  c copy  q quit"))
	return b.String()
}

func (m Model) drawer(st viewer.State) string {
	pages := m.catalog.Pages()
	var rows [][]string
	for _, p := range pages {
		mark := ""
		if p.ID == st.PageIndex {
			mark = "▸"
		}
		rows = append(rows, []string{mark, fmt.Sprint(p.ID), p.ImageName})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Page").
		Rows(rows...).
		StyleFunc(func(r, c int) lipgloss.Style {
			if r >= 0 && r < len(pages) && pages[r].ID == st.PageIndex {
				return activeStyle
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func row(label, value string) string {
	return labelStyle.Render(label) + value
}
