package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pfms/cmd/tui/internal/client"
	"github.com/MrJamesThe3rd/pfms/internal/period"
)

const (
	exportTimeout = 2 * time.Minute
	exportMonths  = 12
)

type exportState int

const (
	exportStateForm exportState = iota
	exportStateExporting
	exportStateResult
)

type exportResultMsg struct {
	path string
	err  error
}

type ExportModel struct {
	CommonModel
	api *client.Client

	state   exportState
	form    *huh.Form
	spinner spinner.Model
	path    string
	err     error
}

func NewExportModel(api *client.Client) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		api:     api,
		form:    newExportForm(),
		spinner: s,
	}
}

// recentMonths lists n months ending with the one containing now, newest first.
func recentMonths(now time.Time, n int) []period.Month {
	months := make([]period.Month, 0, n)

	for m := period.Of(now); len(months) < n; m = m.Prev() {
		months = append(months, m)
	}

	return months
}

func newExportForm() *huh.Form {
	dir := "./exports"

	var options []huh.Option[string]
	for _, m := range recentMonths(time.Now(), exportMonths) {
		options = append(options, huh.NewOption(m.Start().Format("January 2006"), m.String()))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("month").
				Title("Month").
				Options(options...),

			huh.NewSelect[string]().
				Key("format").
				Title("Format").
				Options(
					huh.NewOption("CSV", "csv"),
					huh.NewOption("Excel (xlsx)", "xlsx"),
				),

			huh.NewInput().
				Key("dir").
				Title("Output directory").
				Description("Directory will be created if it doesn't exist").
				Value(&dir),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) Title() string { return "Export statement" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case exportStateForm:
		return m.updateForm(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ExportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(m.form.GetString("month"), m.form.GetString("format"), m.form.GetString("dir")))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.path = result.path
		m.err = result.err

		return m, checkSession(result.err)
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Downloading statement...", m.spinner.View()),
		)

	case exportStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(1).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		}

		header := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")).
			Render("Export Complete!")

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, "", "Saved to "+m.path),
		)
	}

	return ""
}

func (m ExportModel) runExportCmd(month, format, dir string) tea.Cmd {
	api := m.api

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		path, err := api.DownloadStatement(ctx, month, format, dir)

		return exportResultMsg{path: path, err: err}
	}
}
