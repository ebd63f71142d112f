package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pfms/cmd/tui/internal/client"
)

type goalState int

const (
	goalStateBrowse goalState = iota
	goalStateContributing
)

type contributedMsg struct {
	goal *client.Goal
	err  error
}

type GoalsModel struct {
	CommonModel
	api *client.Client

	state   goalState
	goals   []client.Goal
	cursor  int
	bar     progress.Model
	form    *huh.Form
	loading bool
	status  string
}

func NewGoalsModel(api *client.Client) GoalsModel {
	return GoalsModel{
		api:     api,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		loading: true,
	}
}

func (m GoalsModel) Title() string { return "Savings goals" }

func (m GoalsModel) ShortHelp() string {
	if m.state == goalStateContributing {
		return "Esc: cancel | Enter: contribute"
	}

	return "Esc: back | ↑/↓: select | c: contribute | r: refresh"
}

func (m GoalsModel) Init() tea.Cmd {
	return loadGoalsCmd(m.api)
}

func (m GoalsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case goalsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, checkSession(msg.err)
		}

		m.goals = msg.goals
		m.cursor = min(m.cursor, max(len(m.goals)-1, 0))

		return m, nil

	case contributedMsg:
		m.state = goalStateBrowse
		m.form = nil

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, checkSession(msg.err)
		}

		m.status = fmt.Sprintf("%s is now at %s (%.2f%%).", msg.goal.Name, FormatAmount(msg.goal.CurrentAmount), msg.goal.ProgressPercentage)
		if msg.goal.IsCompleted {
			m.status += " Goal reached!"
		}

		return m, loadGoalsCmd(m.api)
	}

	if m.state == goalStateContributing {
		return m.updateContributing(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.goals)-1 {
			m.cursor++
		}
	case "r":
		m.loading = true
		return m, loadGoalsCmd(m.api)
	case "c":
		if len(m.goals) == 0 {
			return m, nil
		}

		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Key("amount").
					Title("Contribute to " + m.goals[m.cursor].Name).
					Placeholder("100.00").
					Validate(validateAmount),
			),
		).WithWidth(50).WithShowHelp(false)
		m.state = goalStateContributing

		return m, m.form.Init()
	}

	return m, nil
}

func (m GoalsModel) updateContributing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = goalStateBrowse
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	amount, _ := decimal.NewFromString(strings.TrimSpace(m.form.GetString("amount")))

	return m, m.contributeCmd(m.goals[m.cursor], amount)
}

func (m GoalsModel) contributeCmd(g client.Goal, amount decimal.Decimal) tea.Cmd {
	api := m.api

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		updated, err := api.Contribute(ctx, g.ID, amount)

		return contributedMsg{goal: updated, err: err}
	}
}

func (m GoalsModel) View() string {
	if m.state == goalStateContributing && m.form != nil {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading goals...")
	}

	var b strings.Builder

	if m.status != "" {
		b.WriteString(faintStyle.Render(m.status) + "\n\n")
	}

	if len(m.goals) == 0 {
		b.WriteString("No goals yet.")
	}

	for i, g := range m.goals {
		cursor := "  "
		if i == m.cursor {
			cursor = titleStyle.Render("> ")
		}

		target := ""
		if g.TargetDate != nil {
			target = faintStyle.Render("  by " + *g.TargetDate)
		}

		fmt.Fprintf(&b, "%s%s  %s / %s%s\n", cursor, goalLine(m.bar, g), FormatAmount(g.CurrentAmount), FormatAmount(g.TargetAmount), target)
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}
