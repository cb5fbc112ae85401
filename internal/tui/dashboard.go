package tui

import (
	"context"
	"fmt"
	"time"

	"garmin-trainer/internal/advisor"
	"garmin-trainer/internal/analysis"
	"garmin-trainer/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// DashboardModel is the dashboard screen model
type DashboardModel struct {
	queryService *service.QueryService
	advisor      *advisor.Advisor
	data         *service.DashboardData
	narrative    string
	loading      bool
	err          error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(qs *service.QueryService, adv *advisor.Advisor) DashboardModel {
	return DashboardModel{
		queryService: qs,
		advisor:      adv,
		loading:      true,
	}
}

// Init initializes the dashboard
func (m DashboardModel) Init() tea.Cmd {
	return m.loadData
}

func (m DashboardModel) loadData() tea.Msg {
	data, err := m.queryService.GetDashboardData()
	if err != nil {
		return dashboardDataMsg{err: err}
	}
	return dashboardDataMsg{data: data}
}

type dashboardDataMsg struct {
	data *service.DashboardData
	err  error
}

type narrativeMsg struct {
	narrative string
}

// loadNarrative fetches the advisor narrative in the background.
// Failures just leave the narrative empty; the score stands on its own.
func (m DashboardModel) loadNarrative() tea.Msg {
	if m.advisor == nil || !m.advisor.Enabled() || m.data == nil {
		return narrativeMsg{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	today := time.Now().Truncate(24 * time.Hour)
	narrative, err := m.advisor.Narrative(ctx, today, m.data.Readiness, m.data.Load)
	if err != nil {
		return narrativeMsg{}
	}
	return narrativeMsg{narrative: narrative}
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data
		if m.err == nil {
			return m, m.loadNarrative
		}
	case narrativeMsg:
		m.narrative = msg.narrative
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			m.narrative = ""
			return m, m.loadData
		}
	}
	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.loading {
		return "\n  Loading dashboard..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if m.data == nil {
		return "\n  No data available. Press 's' to sync."
	}

	var sections []string

	readinessCard := m.renderReadinessCard()
	loadCard := m.renderLoadCard()
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, readinessCard, "  ", loadCard)
	sections = append(sections, topRow)

	if flags := m.renderRedFlags(); flags != "" {
		sections = append(sections, flags)
	}

	if m.narrative != "" {
		sections = append(sections, m.renderNarrative())
	}

	if len(m.data.FormHistory) > 2 {
		sections = append(sections, m.renderChart())
	}

	sections = append(sections, m.renderRecentWorkouts())

	help := statusStyle.Render("Press 'r' to refresh, 's' to sync, '2' for workouts")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderReadinessCard() string {
	title := cardTitleStyle.Render("Today's Readiness")
	r := m.data.Readiness

	scoreStyle := levelStyle(r.Level)
	score := scoreStyle.Bold(true).Render(fmt.Sprintf("%d", r.Score)) +
		metricValueStyle.Render("/100  ") +
		scoreStyle.Render(string(r.Level))

	lines := []string{
		score,
		RenderProgressBar(float64(r.Score)/100, 30),
		"",
		RenderMetric("Recommendation", recommendationText(r.Recommendation)),
	}

	if r.HRVScore != nil {
		lines = append(lines, RenderMetric("HRV factor", fmt.Sprintf("%.0f", *r.HRVScore)))
	}
	if r.SleepScore != nil {
		lines = append(lines, RenderMetric("Sleep factor", fmt.Sprintf("%.0f", *r.SleepScore)))
	}
	if r.LoadScore != nil {
		lines = append(lines, RenderMetric("Load factor", fmt.Sprintf("%.0f", *r.LoadScore)))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(40).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderLoadCard() string {
	title := cardTitleStyle.Render("Training Load")
	l := m.data.Load

	lines := []string{
		RenderMetric("Acute (7d)", fmt.Sprintf("%.0f", l.AcuteLoad)),
		RenderMetric("Chronic (28d)", fmt.Sprintf("%.0f", l.ChronicLoad)),
	}

	if l.ACWR != nil {
		lines = append(lines, RenderMetric("ACWR", fmt.Sprintf("%.2f", *l.ACWR))+
			"  "+acwrStyle(l.Status).Render(string(l.Status)))
	} else {
		lines = append(lines, RenderMetric("ACWR", "n/a"))
	}

	if l.Monotony != nil {
		lines = append(lines, RenderMetric("Monotony", fmt.Sprintf("%.1f", *l.Monotony)))
	}

	lines = append(lines,
		"",
		RenderMetric("Fitness", fmt.Sprintf("%.0f", l.Fitness)),
		RenderMetric("Fatigue", fmt.Sprintf("%.0f", l.Fatigue)),
		RenderMetric("Form", fmt.Sprintf("%+.0f", l.Form)),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(36).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderRedFlags() string {
	r := m.data.Readiness
	if len(r.RedFlags) == 0 {
		return ""
	}

	lines := make([]string, 0, len(r.RedFlags))
	for _, flag := range r.RedFlags {
		lines = append(lines, badStyle.Render("  ! "+flag))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m DashboardModel) renderNarrative() string {
	title := cardTitleStyle.Render("Coach's Notes")
	body := lipgloss.NewStyle().Width(72).Render(m.narrative)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
}

func (m DashboardModel) renderChart() string {
	title := cardTitleStyle.Render("Form - Recent Trend")

	graph := asciigraph.Plot(m.data.FormHistory,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Precision(1),
	)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}

func (m DashboardModel) renderRecentWorkouts() string {
	title := cardTitleStyle.Render("Recent Workouts")

	if len(m.data.RecentWorkouts) == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "No workouts yet"))
	}

	header := tableHeaderStyle.Render(fmt.Sprintf("%-10s  %-20s  %-10s  %8s  %6s",
		"Date", "Name", "Sport", "Duration", "Avg HR"))

	var rows []string
	rows = append(rows, header)
	for _, w := range m.data.RecentWorkouts {
		avgHR := "-"
		if w.AvgHR != nil {
			avgHR = fmt.Sprintf("%.0f", *w.AvgHR)
		}
		row := fmt.Sprintf("%-10s  %-20s  %-10s  %8s  %6s",
			w.StartTime.Format("Jan 02"),
			truncateName(w.Name, 20),
			truncateName(w.Sport, 10),
			formatDuration(w.DurationSeconds),
			avgHR,
		)
		rows = append(rows, tableRowStyle.Render(row))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func formatDuration(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func truncateName(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// levelStyle maps a readiness level to a display style
func levelStyle(level analysis.ReadinessLevel) lipgloss.Style {
	switch level {
	case analysis.LevelOptimal, analysis.LevelGood:
		return goodStyle
	case analysis.LevelModerate:
		return cautionStyle
	default:
		return badStyle
	}
}

// acwrStyle maps an ACWR status to a display style
func acwrStyle(status analysis.ACWRStatus) lipgloss.Style {
	switch status {
	case analysis.ACWROptimal:
		return goodStyle
	case analysis.ACWRUndertraining, analysis.ACWRCaution:
		return cautionStyle
	case analysis.ACWRHighRisk:
		return badStyle
	default:
		return navInactiveStyle
	}
}

// recommendationText maps the recommendation bucket to display text
func recommendationText(r analysis.TrainingRecommendation) string {
	switch r {
	case analysis.RecommendHighIntensity:
		return "High intensity OK"
	case analysis.RecommendModerate:
		return "Moderate session"
	case analysis.RecommendEasy:
		return "Easy day"
	case analysis.RecommendRest:
		return "Rest day"
	case analysis.RecommendRecovery:
		return "Active recovery"
	default:
		return string(r)
	}
}
