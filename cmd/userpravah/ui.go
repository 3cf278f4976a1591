package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ksrpraneeth/UserPravah/internal/app"
	"github.com/ksrpraneeth/UserPravah/internal/routes"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type item struct {
	title, desc string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type model struct {
	list       list.Model
	framework  string
	routeCount int
	flowCount  int
	fileCount  int
	warnings   []string
	lastUpdate time.Time
}

type updateMsg struct {
	framework string
	routes    []*routes.Route
	flows     []routes.NavigationFlow
	warnings  []string
	fileCount int
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
	case updateMsg:
		m.framework = msg.framework
		m.routeCount = len(msg.routes)
		m.flowCount = len(msg.flows)
		m.fileCount = msg.fileCount
		m.warnings = msg.warnings
		m.lastUpdate = time.Now()

		items := []list.Item{}
		for _, r := range msg.routes {
			desc := r.Component
			if r.HasRedirect() {
				desc = "redirect to " + r.RedirectTo
			} else if r.LazyModule != "" && desc == "" {
				desc = "lazy: " + r.LazyModule
			}
			if desc == "" {
				desc = r.SourceFile
			}
			items = append(items, item{title: r.FullPath, desc: desc})
		}
		m.list.SetItems(items)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d files | %s",
		m.lastUpdate.Format("15:04:05"), m.fileCount, m.framework))

	var summary string
	if len(m.warnings) == 0 {
		summary = successStyle.Render(fmt.Sprintf("%d routes | %d flows", m.routeCount, m.flowCount))
	} else {
		summary = fmt.Sprintf("%s | %s",
			successStyle.Render(fmt.Sprintf("%d routes", m.routeCount)),
			warningStyle.Render(fmt.Sprintf("%d warnings", len(m.warnings))))
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Navigation Map"), status, summary)
	return docStyle.Render(header + "\n" + m.list.View())
}

func initialModel() model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Discovered Routes"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return model{
		list:       l,
		lastUpdate: time.Now(),
	}
}

func runUI(a *app.App, initial *app.RunReport) error {
	m := initialModel()
	p := tea.NewProgram(m, tea.WithAltScreen())

	a.SetUpdateHandler(func(u app.Update) {
		p.Send(updateMsg{
			framework: u.Framework,
			routes:    u.Routes,
			flows:     u.Flows,
			warnings:  u.Warnings,
			fileCount: u.FileCount,
		})
	})

	// Seed the UI with the run that completed before the program started.
	go func() {
		p.Send(updateMsg{
			framework: initial.Framework,
			routes:    initial.Result.Routes,
			flows:     initial.Result.Flows,
			warnings:  initial.Result.Warnings,
			fileCount: initial.FileCount,
		})
	}()

	_, err := p.Run()
	return err
}
