package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/pfms/cmd/tui/internal/client"
	"github.com/MrJamesThe3rd/pfms/cmd/tui/internal/view"
)

type config struct {
	APIURL string `envconfig:"PFMS_API_URL" default:"http://localhost:8000"`
}

type View int

const (
	ViewLogin        View = 0
	ViewMenu         View = 1
	ViewDashboard    View = 2
	ViewTransactions View = 3
	ViewGoals        View = 4
	ViewImport       View = 5
	ViewExport       View = 6
)

type model struct {
	api   *client.Client
	email string

	currentView View
	screen      view.View
}

func initialModel() model {
	_ = godotenv.Load()

	var cfg config
	if err := envconfig.Process("", &cfg); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	api := client.New(cfg.APIURL)

	return model{
		api:         api,
		currentView: ViewLogin,
		screen:      view.NewLoginModel(api),
	}
}

func (m model) Init() tea.Cmd {
	return m.screen.Init()
}

func (m model) open(v View, screen view.View) (tea.Model, tea.Cmd) {
	m.currentView = v
	m.screen = screen

	return m, screen.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				return m.open(ViewDashboard, view.NewDashboardModel(m.api))
			case "2":
				return m.open(ViewTransactions, view.NewTransactionsModel(m.api))
			case "3":
				return m.open(ViewGoals, view.NewGoalsModel(m.api))
			case "4":
				return m.open(ViewImport, view.NewImportModel(m.api))
			case "5":
				return m.open(ViewExport, view.NewExportModel(m.api))
			case "l":
				return m.logout()
			}

			return m, nil
		}

	case view.LoggedInMsg:
		m.api.SetToken(msg.Token)
		m.email = msg.Email
		m.currentView = ViewMenu
		m.screen = nil

		return m, nil

	case view.SessionExpiredMsg:
		return m.logout()

	case view.BackMsg:
		m.currentView = ViewMenu
		m.screen = nil

		return m, nil
	}

	if m.screen == nil {
		return m, nil
	}

	newModel, cmd := m.screen.Update(msg)
	m.screen = newModel.(view.View)

	return m, cmd
}

func (m model) logout() (tea.Model, tea.Cmd) {
	m.api.SetToken("")
	m.email = ""

	return m.open(ViewLogin, view.NewLoginModel(m.api))
}

func (m model) View() string {
	if m.currentView == ViewMenu {
		return lipgloss.NewStyle().Padding(2).Render(
			"PFMS TUI  (" + m.email + ")\n\n" +
				"1. Dashboard\n" +
				"2. Transactions\n" +
				"3. Savings Goals\n" +
				"4. Import CSV\n" +
				"5. Export Statement\n\n" +
				"l. Log out\n" +
				"q. Quit",
		)
	}

	if m.screen == nil {
		return "Unknown View"
	}

	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(m.screen.Title() + " | " + m.screen.ShortHelp())

	return m.screen.View() + "\n" + help
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
