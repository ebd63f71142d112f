package view

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pfms/cmd/tui/internal/client"
)

const (
	modeLogin    = "login"
	modeRegister = "register"
)

// LoggedInMsg is emitted once the API has issued a session token.
type LoggedInMsg struct {
	Email string
	Token string
}

type loginResultMsg struct {
	email string
	token string
	err   error
}

type LoginModel struct {
	CommonModel
	api *client.Client

	form    *huh.Form
	pending bool
	err     error
}

func NewLoginModel(api *client.Client) LoginModel {
	return LoginModel{api: api, form: newLoginForm()}
}

func newLoginForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("mode").
				Title("PFMS").
				Options(
					huh.NewOption("Sign in", modeLogin),
					huh.NewOption("Create account", modeRegister),
				),

			huh.NewInput().
				Key("email").
				Title("Email").
				Placeholder("you@example.com").
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return fmt.Errorf("enter a valid email address")
					}
					return nil
				}),

			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Validate(func(s string) error {
					if len(s) < 8 {
						return fmt.Errorf("password must be at least 8 characters")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m LoginModel) Title() string { return "Sign in" }

func (m LoginModel) ShortHelp() string {
	return "Enter/Tab: next field | Ctrl+C: quit"
}

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if res, ok := msg.(loginResultMsg); ok {
		m.pending = false

		if res.err != nil {
			m.err = res.err
			m.form = newLoginForm()

			return m, m.form.Init()
		}

		return m, func() tea.Msg { return LoggedInMsg{Email: res.email, Token: res.token} }
	}

	if m.pending {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.pending = true
	m.err = nil

	return m, m.submitCmd(m.form.GetString("mode"), m.form.GetString("email"), m.form.GetString("password"))
}

func (m LoginModel) submitCmd(mode, email, password string) tea.Cmd {
	api := m.api

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		if mode == modeRegister {
			if err := api.Register(ctx, email, password); err != nil {
				return loginResultMsg{err: err}
			}
		}

		token, err := api.Login(ctx, email, password)
		if err != nil {
			if errors.Is(err, client.ErrUnauthorized) {
				err = fmt.Errorf("invalid email or password")
			}

			return loginResultMsg{err: err}
		}

		return loginResultMsg{email: strings.ToLower(strings.TrimSpace(email)), token: token}
	}
}

func (m LoginModel) View() string {
	if m.pending {
		return lipgloss.NewStyle().Padding(2).Render("Signing in...")
	}

	out := m.form.View()
	if m.err != nil {
		out = errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n" + out
	}

	return lipgloss.NewStyle().Padding(1).Render(out)
}
