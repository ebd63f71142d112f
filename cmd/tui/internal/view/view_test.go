package view

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/pfms/cmd/tui/internal/client"
	"github.com/MrJamesThe3rd/pfms/internal/period"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{in: "12.50"},
		{in: " 3 "},
		{in: "0", wantErr: true},
		{in: "-4", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "0.005", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := validateAmount(tt.in)
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestCheckSession(t *testing.T) {
	assert.Nil(t, checkSession(nil))
	assert.Nil(t, checkSession(errors.New("boom")))

	cmd := checkSession(client.ErrUnauthorized)
	if assert.NotNil(t, cmd) {
		assert.Equal(t, SessionExpiredMsg{}, cmd())
	}
}

func TestGoalsModel_CursorAndBack(t *testing.T) {
	m := NewGoalsModel(client.New("http://localhost"))

	goals := []client.Goal{
		{ID: uuid.New(), Name: "A", TargetAmount: decimal.NewFromInt(10)},
		{ID: uuid.New(), Name: "B", TargetAmount: decimal.NewFromInt(10)},
	}

	next, _ := m.Update(goalsMsg{goals: goals})
	m = next.(GoalsModel)
	assert.False(t, m.loading)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(GoalsModel)
	assert.Equal(t, 1, m.cursor)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(GoalsModel)
	assert.Equal(t, 1, m.cursor)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if assert.NotNil(t, cmd) {
		assert.Equal(t, BackMsg{}, cmd())
	}
}

func TestDashboardModel_KeepsFirstError(t *testing.T) {
	m := NewDashboardModel(client.New("http://localhost"))

	next, _ := m.Update(totalsMsg{err: errors.New("db down")})
	m = next.(DashboardModel)

	next, _ = m.Update(goalsMsg{goals: []client.Goal{{Name: "A"}}})
	m = next.(DashboardModel)

	assert.EqualError(t, m.err, "db down")
	assert.Len(t, m.goals, 1)
	assert.Contains(t, m.View(), "Error: db down")
}

func TestRecentMonths(t *testing.T) {
	got := recentMonths(time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC), 3)

	assert.Equal(t, []period.Month{
		{Year: 2024, Month: time.February},
		{Year: 2024, Month: time.January},
		{Year: 2023, Month: time.December},
	}, got)
}
