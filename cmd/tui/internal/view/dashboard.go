package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pfms/cmd/tui/internal/client"
)

var boxStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

type totalsMsg struct {
	totals *client.Totals
	err    error
}

type budgetsMsg struct {
	budgets []client.Budget
	err     error
}

type goalsMsg struct {
	goals []client.Goal
	err   error
}

// DashboardModel shows the current month's totals, budgets and goals.
type DashboardModel struct {
	CommonModel
	api *client.Client

	month   string
	totals  *client.Totals
	budgets []client.Budget
	goals   []client.Goal
	bar     progress.Model
	err     error
}

func NewDashboardModel(api *client.Client) DashboardModel {
	return DashboardModel{
		api:   api,
		month: time.Now().UTC().Format("2006-01"),
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	return "Esc: back | r: refresh"
}

func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(loadTotalsCmd(m.api), loadBudgetsCmd(m.api, m.month), loadGoalsCmd(m.api))
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case totalsMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, checkSession(msg.err)
		}

		m.totals = msg.totals

	case budgetsMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, checkSession(msg.err)
		}

		m.budgets = msg.budgets

	case goalsMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, checkSession(msg.err)
		}

		m.goals = msg.goals

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.err = nil
			return m, m.Init()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	sections := []string{titleStyle.Render("Overview for " + m.month)}

	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	sections = append(sections, m.totalsView(), m.budgetsView(), m.goalsView())

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m DashboardModel) totalsView() string {
	if m.totals == nil {
		return boxStyle.Render("Loading totals...")
	}

	return boxStyle.Render(fmt.Sprintf(
		"Income: %s  |  Expense: %s  |  Net: %s",
		FormatAmount(m.totals.Income),
		FormatAmount(m.totals.Expense),
		FormatAmount(m.totals.Net),
	))
}

func (m DashboardModel) budgetsView() string {
	var b strings.Builder

	b.WriteString("Budgets\n")

	if len(m.budgets) == 0 {
		b.WriteString(faintStyle.Render("No budgets for this month."))
		return boxStyle.Render(b.String())
	}

	for _, bud := range m.budgets {
		ratio := bud.Utilization.InexactFloat64()

		line := fmt.Sprintf("%-16s %s  %s / %s", bud.Category, m.bar.ViewAs(min(ratio, 1)), FormatAmount(bud.Spent), FormatAmount(bud.CapAmount))
		if bud.Remaining.IsNegative() {
			line += errorStyle.Render("  over by " + FormatAmount(bud.Remaining.Neg()))
		}

		b.WriteString(line + "\n")
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m DashboardModel) goalsView() string {
	var b strings.Builder

	b.WriteString("Goals\n")

	if len(m.goals) == 0 {
		b.WriteString(faintStyle.Render("No goals yet."))
		return boxStyle.Render(b.String())
	}

	for _, g := range m.goals {
		b.WriteString(goalLine(m.bar, g) + "\n")
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func goalLine(bar progress.Model, g client.Goal) string {
	line := fmt.Sprintf("%-16s %s  %6.2f%%", g.Name, bar.ViewAs(min(g.ProgressPercentage/100, 1)), g.ProgressPercentage)
	if g.IsCompleted {
		line += lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render("  done")
	}

	return line
}

func loadTotalsCmd(api *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		t, err := api.Totals(ctx)

		return totalsMsg{totals: t, err: err}
	}
}

func loadBudgetsCmd(api *client.Client, month string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		b, err := api.Budgets(ctx, month)

		return budgetsMsg{budgets: b, err: err}
	}
}

func loadGoalsCmd(api *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		g, err := api.Goals(ctx)

		return goalsMsg{goals: g, err: err}
	}
}
