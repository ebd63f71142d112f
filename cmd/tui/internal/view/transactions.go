package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pfms/cmd/tui/internal/client"
)

type txState int

const (
	txStateBrowse txState = iota
	txStateAdding
)

type loadTxsMsg struct {
	txs []client.Transaction
	err error
}

type txSavedMsg struct {
	status string
	err    error
}

type TransactionsModel struct {
	CommonModel
	api *client.Client

	state   txState
	table   table.Model
	form    *huh.Form
	txs     []client.Transaction
	loading bool
	status  string
}

func NewTransactionsModel(api *client.Client) TransactionsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Kind", Width: 8},
		{Title: "Category", Width: 16},
		{Title: "Amount", Width: 12},
		{Title: "Note", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return TransactionsModel{api: api, table: t, loading: true}
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	if m.state == txStateAdding {
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return "Esc: back | a: add | d: delete | r: refresh"
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.loadTxsCmd()
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTxsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, checkSession(msg.err)
		}

		m.txs = msg.txs
		m.refreshTable()

		if len(msg.txs) == 0 {
			m.status = "No transactions yet."
		}

		return m, nil

	case txSavedMsg:
		m.state = txStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, checkSession(msg.err)
		}

		m.status = msg.status
		m.loading = true

		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == txStateAdding {
		return m.updateAdding(msg)
	}

	return m.updateBrowse(msg)
}

func (m TransactionsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadTxsCmd()
		case "a":
			m.form = newTransactionForm()
			m.state = txStateAdding
			m.table.Blur()

			return m, m.form.Init()
		case "d":
			return m, m.deleteSelectedCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TransactionsModel) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = txStateBrowse
		m.form = nil
		m.table.Focus()

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

	return m, m.addCmd(client.NewTransaction{
		Kind:     m.form.GetString("kind"),
		Amount:   amount,
		Category: m.form.GetString("category"),
		Note:     m.form.GetString("note"),
	})
}

func newTransactionForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("kind").
				Title("Kind").
				Options(
					huh.NewOption("Expense", "expense"),
					huh.NewOption("Income", "income"),
				),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("12.50").
				Validate(validateAmount),

			huh.NewInput().
				Key("category").
				Title("Category").
				Placeholder("general"),

			huh.NewInput().
				Key("note").
				Title("Note (optional)"),
		),
	).WithWidth(50).WithShowHelp(false)
}

func validateAmount(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a number such as 12.50")
	}

	if !d.IsPositive() {
		return fmt.Errorf("amount must be greater than 0")
	}

	if !d.Equal(d.Round(2)) {
		return fmt.Errorf("use at most 2 decimal places")
	}

	return nil
}

func (m TransactionsModel) View() string {
	if m.state == txStateAdding && m.form != nil {
		return lipgloss.NewStyle().Padding(1).Render(titleStyle.Render("New transaction") + "\n\n" + m.form.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	statusLine := ""
	if m.status != "" {
		statusLine = faintStyle.Render(m.status) + "\n"
	}

	return lipgloss.NewStyle().Padding(1).Render(statusLine + m.table.View())
}

func (m *TransactionsModel) refreshTable() {
	rows := make([]table.Row, len(m.txs))
	for i, tx := range m.txs {
		rows[i] = table.Row{
			FormatDate(tx.CreatedAt),
			tx.Kind,
			tx.Category,
			FormatAmount(tx.Amount),
			tx.Note,
		}
	}

	m.table.SetRows(rows)
}

func (m TransactionsModel) loadTxsCmd() tea.Cmd {
	api := m.api

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		txs, err := api.Transactions(ctx)

		return loadTxsMsg{txs: txs, err: err}
	}
}

func (m TransactionsModel) addCmd(tx client.NewTransaction) tea.Cmd {
	api := m.api

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		created, err := api.AddTransaction(ctx, tx)
		if err != nil {
			return txSavedMsg{err: err}
		}

		return txSavedMsg{status: fmt.Sprintf("Added %s %s (%s).", created.Kind, FormatAmount(created.Amount), created.Category)}
	}
}

func (m TransactionsModel) deleteSelectedCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	api := m.api
	tx := m.txs[idx]

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		if err := api.DeleteTransaction(ctx, tx.ID); err != nil {
			return txSavedMsg{err: err}
		}

		return txSavedMsg{status: "Deleted."}
	}
}
