package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/volume-bridge/notify"
	"github.com/wippyai/volume-bridge/source"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	groupStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type changeMsg struct {
	group int32
	flags int32
}

type monitorModel struct {
	counts []int
	flags  []int32
	total  int
	gauge  progress.Model
}

func newMonitorModel(groups int) monitorModel {
	return monitorModel{
		counts: make([]int, groups),
		flags:  make([]int32, groups),
		gauge:  progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
	}
}

func (m monitorModel) Init() tea.Cmd {
	return nil
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case changeMsg:
		if int(msg.group) < len(m.counts) {
			m.counts[msg.group]++
			m.flags[msg.group] = msg.flags
			m.total++
		}
	}
	return m, nil
}

func (m monitorModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("volume-bridge monitor"))
	b.WriteString("\n\n")

	for i, count := range m.counts {
		share := 0.0
		if m.total > 0 {
			share = float64(count) / float64(m.total)
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			groupStyle.Render(fmt.Sprintf("group %2d", i)),
			m.gauge.ViewAs(share),
			countStyle.Render(fmt.Sprintf("%4d changes (flags %d)", count, m.flags[i]))))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("q: quit"))
	b.WriteString("\n")

	return b.String()
}

func runInteractive(src *source.Sim, h *notify.Handler, groups int) error {
	p := tea.NewProgram(newMonitorModel(groups))

	h.RegisterListener(notify.DispatcherFunc(func(group, flags int32) error {
		p.Send(changeMsg{group: group, flags: flags})
		return nil
	}))

	src.Start()
	defer src.Stop()

	_, err := p.Run()
	return err
}
