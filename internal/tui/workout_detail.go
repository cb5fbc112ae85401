package tui

import (
	"fmt"
	"strings"

	"garmin-trainer/internal/service"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// WorkoutDetailModel is the workout detail screen model
type WorkoutDetailModel struct {
	queryService *service.QueryService
	workoutID    int64
	detail       *service.WorkoutDetail
	viewport     viewport.Model
	loading      bool
	err          error
	width        int
	height       int
	ready        bool
}

// NewWorkoutDetailModel creates a new workout detail model
func NewWorkoutDetailModel(qs *service.QueryService, workoutID int64, width, height int) WorkoutDetailModel {
	m := WorkoutDetailModel{
		queryService: qs,
		workoutID:    workoutID,
		loading:      true,
		width:        width,
		height:       height,
	}

	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-6) // Reserve space for header/footer
		m.ready = true
	}

	return m
}

// Init initializes the workout detail screen
func (m WorkoutDetailModel) Init() tea.Cmd {
	return m.loadDetail
}

type workoutDetailLoadedMsg struct {
	detail *service.WorkoutDetail
	err    error
}

func (m WorkoutDetailModel) loadDetail() tea.Msg {
	detail, err := m.queryService.GetWorkoutDetail(m.workoutID)
	if err != nil {
		return workoutDetailLoadedMsg{err: err}
	}
	return workoutDetailLoadedMsg{detail: detail}
}

// Update handles messages
func (m WorkoutDetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workoutDetailLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.detail = msg.detail
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		if m.detail != nil {
			m.viewport.SetContent(m.renderContent())
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the workout detail screen
func (m WorkoutDetailModel) View() string {
	if m.loading {
		return "\n  Loading workout..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	help := statusStyle.Render("↑/↓ to scroll, Esc to go back")
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), help)
}

func (m WorkoutDetailModel) renderContent() string {
	if m.detail == nil {
		return ""
	}

	w := m.detail.Workout
	var sections []string

	title := cardTitleStyle.Render(w.Name)
	sections = append(sections, title)

	summary := []string{
		RenderMetric("Date", w.StartTime.Format("Monday, Jan 2 15:04")),
		RenderMetric("Sport", w.Sport),
		RenderMetric("Duration", formatDuration(w.DurationSeconds)),
	}
	if w.AvgHR != nil {
		summary = append(summary, RenderMetric("Avg HR", fmt.Sprintf("%.0f bpm", *w.AvgHR)))
	}
	if w.MaxHR != nil {
		summary = append(summary, RenderMetric("Max HR", fmt.Sprintf("%.0f bpm", *w.MaxHR)))
	}
	if w.TrainingLoad != nil {
		summary = append(summary, RenderMetric("Training load", fmt.Sprintf("%.0f", *w.TrainingLoad)))
	}
	sections = append(sections, cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, summary...)))

	if m.detail.Analysis != nil {
		sections = append(sections, m.renderZones())
	} else {
		sections = append(sections, statusStyle.Render("  No heart rate samples for this workout."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m WorkoutDetailModel) renderZones() string {
	a := m.detail.Analysis
	title := cardTitleStyle.Render("Time in Zones")

	zoneNames := [6]string{"Below Z1", "Zone 1", "Zone 2", "Zone 3", "Zone 4", "Zone 5"}

	var lines []string
	for z := 0; z <= 5; z++ {
		minutes := a.Distribution[z]
		pct := a.Percentages[z]

		barWidth := int(pct / 100 * 30)
		bar := strings.Repeat("█", barWidth)

		line := fmt.Sprintf("%-9s %6.1fm %5.1f%%  %s",
			zoneNames[z], minutes, pct, progressFullStyle.Render(bar))
		lines = append(lines, line)
	}

	lines = append(lines,
		"",
		RenderMetric("Dominant zone", fmt.Sprintf("Zone %d", a.DominantZone)),
		RenderMetric("HR range", fmt.Sprintf("%d-%d bpm (avg %d)", a.MinHR, a.MaxHR, a.AvgHR)),
		"",
		lipgloss.NewStyle().Foreground(mutedColor).Width(60).Render(a.Recommendation),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}
