package tui

import (
	"fmt"

	"garmin-trainer/internal/service"
	"garmin-trainer/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// WorkoutsModel is the workout list screen model
type WorkoutsModel struct {
	queryService *service.QueryService
	workouts     []store.Workout
	cursor       int
	offset       int
	pageSize     int
	loading      bool
	err          error
}

// NewWorkoutsModel creates a new workouts model
func NewWorkoutsModel(qs *service.QueryService) WorkoutsModel {
	return WorkoutsModel{
		queryService: qs,
		pageSize:     15,
		loading:      true,
	}
}

// Init initializes the workouts screen
func (m WorkoutsModel) Init() tea.Cmd {
	return m.loadPage
}

type workoutsLoadedMsg struct {
	workouts []store.Workout
	err      error
}

func (m WorkoutsModel) loadPage() tea.Msg {
	workouts, err := m.queryService.GetWorkouts(m.pageSize, m.offset)
	if err != nil {
		return workoutsLoadedMsg{err: err}
	}
	return workoutsLoadedMsg{workouts: workouts}
}

// Update handles messages
func (m WorkoutsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workoutsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.workouts = msg.workouts
		if m.cursor >= len(m.workouts) {
			m.cursor = 0
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			} else if m.offset > 0 {
				m.offset -= m.pageSize
				m.cursor = m.pageSize - 1
				m.loading = true
				return m, m.loadPage
			}
		case "down", "j":
			if m.cursor < len(m.workouts)-1 {
				m.cursor++
			} else if len(m.workouts) == m.pageSize {
				m.offset += m.pageSize
				m.cursor = 0
				m.loading = true
				return m, m.loadPage
			}
		case "r":
			m.loading = true
			return m, m.loadPage
		case "enter":
			if len(m.workouts) > 0 && m.cursor < len(m.workouts) {
				workoutID := m.workouts[m.cursor].ID
				return m, func() tea.Msg {
					return OpenWorkoutDetailMsg{WorkoutID: workoutID}
				}
			}
		}
	}
	return m, nil
}

// View renders the workout list
func (m WorkoutsModel) View() string {
	if m.loading {
		return "\n  Loading workouts..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if len(m.workouts) == 0 {
		return "\n  No workouts. Press 's' to sync."
	}

	header := tableHeaderStyle.Render(fmt.Sprintf("%-12s  %-24s  %-10s  %8s  %6s  %5s",
		"Date", "Name", "Sport", "Duration", "Avg HR", "HR?"))

	var rows []string
	rows = append(rows, header)
	for i, w := range m.workouts {
		avgHR := "-"
		if w.AvgHR != nil {
			avgHR = fmt.Sprintf("%.0f", *w.AvgHR)
		}
		hasHR := ""
		if w.HasHR {
			hasHR = "yes"
		}

		row := fmt.Sprintf("%-12s  %-24s  %-10s  %8s  %6s  %5s",
			w.StartTime.Format("2006-01-02"),
			truncateName(w.Name, 24),
			truncateName(w.Sport, 10),
			formatDuration(w.DurationSeconds),
			avgHR,
			hasHR,
		)

		if i == m.cursor {
			rows = append(rows, tableSelectedStyle.Render(row))
		} else {
			rows = append(rows, tableRowStyle.Render(row))
		}
	}

	table := lipgloss.JoinVertical(lipgloss.Left, rows...)
	help := statusStyle.Render("↑/↓ to move, Enter for zone analysis, 'r' to refresh")

	return lipgloss.JoinVertical(lipgloss.Left, table, help)
}
