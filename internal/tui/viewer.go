// internal/tui/viewer.go
// Package tui is the interactive table viewer behind `featcmp view`.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/featcmp/internal/metrics"
	"github.com/mwiater/featcmp/internal/report"
	"github.com/mwiater/featcmp/internal/util"
)

// tab identifies one of the comparison views.
type tab int

const (
	tabCombined tab = iota
	tabGrouped
	tabPerRun
	tabCount
)

func (t tab) String() string {
	switch t {
	case tabCombined:
		return "Combined"
	case tabGrouped:
		return "Grouped"
	default:
		return "Per run"
	}
}

const (
	minColumnWidth = 8
	maxLabelWidth  = 28
	chromeHeight   = 6
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("63")).Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Background(lipgloss.Color("236")).Padding(0, 1)
	helpStyle        = lipgloss.NewStyle().Faint(true)
)

type model struct {
	source string
	tables [tabCount]table.Model
	active tab
	width  int
	height int
}

func newModel(source string, c metrics.Comparison) *model {
	m := &model{source: source}
	for i, t := range []metrics.Table{c.Combined, c.Grouped, c.PerRun} {
		m.tables[i] = newTable(t)
	}
	m.tables[m.active].Focus()
	return m
}

// newTable sizes columns to the widest of header and cells.
func newTable(t metrics.Table) table.Model {
	headers := report.PlainHeaders(t)
	rows := report.PlainRows(t)

	columns := make([]table.Column, len(headers))
	for i, h := range headers {
		width := util.Max(minColumnWidth, len(h))
		for _, r := range rows {
			width = util.Max(width, len(r[i]))
		}
		if i == 0 && width > maxLabelWidth {
			width = maxLabelWidth
		}
		columns[i] = table.Column{Title: h, Width: width}
	}

	tableRows := make([]table.Row, len(rows))
	for i, r := range rows {
		r[0] = util.TruncateRunes(r[0], maxLabelWidth-1)
		tableRows[i] = table.Row(r)
	}

	return table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithHeight(util.Max(3, len(tableRows)+1)),
	)
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) switchTab(next tab) {
	m.tables[m.active].Blur()
	m.active = (next + tabCount) % tabCount
	m.tables[m.active].Focus()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for i := range m.tables {
			m.tables[i].SetHeight(util.Max(3, msg.Height-chromeHeight))
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			m.switchTab(m.active + 1)
			return m, nil
		case "shift+tab", "left", "h":
			m.switchTab(m.active - 1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.tables[m.active], cmd = m.tables[m.active].Update(msg)
	return m, cmd
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("featcmp: %s", m.source)))
	b.WriteString("\n\n")

	tabs := make([]string, 0, tabCount)
	for t := tabCombined; t < tabCount; t++ {
		style := inactiveTabStyle
		if t == m.active {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(t.String()))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")
	b.WriteString(m.tables[m.active].View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab/shift+tab switch view  ↑/↓ scroll  q quit"))
	return b.String()
}

// Run opens the viewer on c and blocks until the user quits.
func Run(source string, c metrics.Comparison) error {
	p := tea.NewProgram(newModel(source, c), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}
