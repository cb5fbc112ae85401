package tui

import (
	"garmin-trainer/internal/advisor"
	"garmin-trainer/internal/service"
	"garmin-trainer/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen identifiers
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenWorkouts
	ScreenWorkoutDetail
	ScreenSync
	ScreenHelp
)

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	dashboard  DashboardModel
	workouts   WorkoutsModel
	detail     WorkoutDetailModel
	syncScreen SyncModel
	help       HelpModel

	// Services
	db           *store.DB
	queryService *service.QueryService
	syncService  *service.SyncService
	advisor      *advisor.Advisor

	// Window dimensions
	width  int
	height int

	status string
}

// NewApp creates a new App with all dependencies
func NewApp(db *store.DB, syncService *service.SyncService, queryService *service.QueryService, adv *advisor.Advisor) *App {
	return &App{
		screen:       ScreenDashboard,
		db:           db,
		queryService: queryService,
		syncService:  syncService,
		advisor:      adv,
		dashboard:    NewDashboardModel(queryService, adv),
		workouts:     NewWorkoutsModel(queryService),
		syncScreen:   NewSyncModel(syncService),
		help:         NewHelpModel(),
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.dashboard.Init()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global keybindings (unless syncing)
		if a.screen != ScreenSync || !a.syncScreen.syncing {
			switch msg.String() {
			case "q", "ctrl+c":
				return a, tea.Quit
			case "1":
				a.screen = ScreenDashboard
				a.dashboard = NewDashboardModel(a.queryService, a.advisor)
				return a, a.dashboard.Init()
			case "2":
				a.screen = ScreenWorkouts
				return a, a.workouts.Init()
			case "3", "s":
				if a.screen != ScreenSync {
					a.screen = ScreenSync
					return a, a.syncScreen.Init()
				}
			case "?":
				a.prevScreen = a.screen
				a.screen = ScreenHelp
				return a, nil
			case "esc":
				switch a.screen {
				case ScreenHelp:
					a.screen = a.prevScreen
					return a, nil
				case ScreenWorkoutDetail:
					a.screen = ScreenWorkouts
					return a, nil
				}
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case OpenWorkoutDetailMsg:
		a.screen = ScreenWorkoutDetail
		a.detail = NewWorkoutDetailModel(a.queryService, msg.WorkoutID, a.width, a.height)
		return a, a.detail.Init()

	case SyncCompleteMsg:
		// Refresh dashboard after sync
		a.screen = ScreenDashboard
		a.dashboard = NewDashboardModel(a.queryService, a.advisor)
		return a, a.dashboard.Init()
	}

	// Delegate to current screen
	var cmd tea.Cmd
	switch a.screen {
	case ScreenDashboard:
		var m tea.Model
		m, cmd = a.dashboard.Update(msg)
		a.dashboard = m.(DashboardModel)
	case ScreenWorkouts:
		var m tea.Model
		m, cmd = a.workouts.Update(msg)
		a.workouts = m.(WorkoutsModel)
	case ScreenWorkoutDetail:
		var m tea.Model
		m, cmd = a.detail.Update(msg)
		a.detail = m.(WorkoutDetailModel)
	case ScreenSync:
		var m tea.Model
		m, cmd = a.syncScreen.Update(msg)
		a.syncScreen = m.(SyncModel)
	case ScreenHelp:
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

// View renders the app
func (a *App) View() string {
	header := a.renderHeader()
	nav := a.renderNav()

	var content string
	switch a.screen {
	case ScreenDashboard:
		content = a.dashboard.View()
	case ScreenWorkouts:
		content = a.workouts.View()
	case ScreenWorkoutDetail:
		content = a.detail.View()
	case ScreenSync:
		content = a.syncScreen.View()
	case ScreenHelp:
		content = a.help.View()
	}

	footer := a.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, content, footer)
}

func (a *App) renderHeader() string {
	return headerStyle.Render("Garmin Training Readiness")
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Dashboard", ScreenDashboard},
		{"2", "Workouts", ScreenWorkouts},
		{"3", "Sync", ScreenSync},
		{"?", "Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	nav += "  " + navInactiveStyle.Render("[q] Quit")

	return navStyle.Render(nav)
}

func (a *App) renderFooter() string {
	if a.status != "" {
		return statusStyle.Render(a.status)
	}
	return ""
}

// OpenWorkoutDetailMsg requests the workout detail screen
type OpenWorkoutDetailMsg struct {
	WorkoutID int64
}

// SyncCompleteMsg is sent when sync finishes
type SyncCompleteMsg struct{}
