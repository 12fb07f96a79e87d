package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pulse/internal/domain"
	"pulse/internal/logging"
	"pulse/internal/services"
	"pulse/internal/theme"
)

// errorClearDelay is how long operation errors stay on the status line
const errorClearDelay = 10 * time.Second

// recentSatisfactionDays is how many recent scores the journal shows
const recentSatisfactionDays = 14

// Services bundles everything the dashboard reads from and writes to
type Services struct {
	Journal    *services.JournalService
	Matrix     *services.MatrixService
	Milestones *services.MilestoneService
	Summary    *services.SummaryService
	Tasks      *services.TaskService
	Time       *services.TimeService
}

// tab identifies a dashboard view
type tab int

const (
	tabOverview tab = iota
	tabMatrix
	tabTimer
	tabJournal
)

var tabNames = []string{"Overview", "Matrix", "Timer", "Journal"}

// Model is the root bubbletea model for the pulse dashboard
type Model struct {
	services Services

	active tab
	height int
	width  int

	dashboard services.DashboardSummary
	loaded    bool
	matrix    domain.MatrixSnapshot
	running   *domain.TimeEntry
	sat       []domain.SatisfactionLog
	standups  []domain.StandupLog
	week      domain.WeeklySummary

	cursor  int
	err     error
	form    *formState
	spinner spinner.Model

	// Live feeds; each is nil when its watch is unavailable and the
	// view falls back to manual refresh
	taskEvents      <-chan []domain.Task
	matrixEvents    <-chan domain.MatrixSnapshot
	milestoneEvents <-chan []domain.Milestone
	runningEvents   <-chan *domain.TimeEntry
	weekEvents      <-chan domain.WeeklySummary
	satEvents       <-chan []domain.SatisfactionLog
	cancelWatches   []func()
}

// NewModel creates the dashboard model. The caller owns the services and
// the store behind them.
func NewModel(svcs Services) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.SpinnerStyle

	m := &Model{
		services: svcs,
		spinner:  sp,
	}

	ctx := context.Background()
	m.taskEvents = registerWatch(m, "tasks", func() (<-chan []domain.Task, func(), error) {
		return svcs.Tasks.WatchRecent(ctx)
	})
	m.matrixEvents = registerWatch(m, "matrix", func() (<-chan domain.MatrixSnapshot, func(), error) {
		return svcs.Matrix.Watch(ctx, nil)
	})
	m.milestoneEvents = registerWatch(m, "milestones", func() (<-chan []domain.Milestone, func(), error) {
		return svcs.Milestones.WatchByStatus(ctx, domain.StatusActive)
	})
	m.runningEvents = registerWatch(m, "timer", func() (<-chan *domain.TimeEntry, func(), error) {
		return svcs.Time.WatchRunning(ctx)
	})
	m.weekEvents = registerWatch(m, "week", func() (<-chan domain.WeeklySummary, func(), error) {
		return svcs.Time.WatchWeek(ctx, time.Now())
	})
	m.satEvents = registerWatch(m, "satisfaction", func() (<-chan []domain.SatisfactionLog, func(), error) {
		return svcs.Journal.WatchRecentSatisfaction(ctx, recentSatisfactionDays)
	})
	return m
}

// registerWatch opens one live feed, keeping its cancel with the model.
// A failed watch is logged and the view falls back to manual refresh.
func registerWatch[T any](m *Model, name string, open func() (<-chan T, func(), error)) <-chan T {
	events, cancel, err := open()
	if err != nil {
		logging.Logger.Warn("Watch unavailable, falling back to manual refresh",
			"watch", name, "error", err)
		return nil
	}
	m.cancelWatches = append(m.cancelWatches, cancel)
	return events
}

// Close releases the model's watch resources
func (m *Model) Close() {
	for _, cancel := range m.cancelWatches {
		cancel()
	}
	m.cancelWatches = nil
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		m.loadDashboard(),
		m.loadMatrix(),
		m.loadTimer(),
		m.loadJournal(),
		m.loadWeek(),
		tickCmd(),
	}
	for _, wait := range []tea.Cmd{
		m.waitForTaskEvent(),
		m.waitForMatrixEvent(),
		m.waitForMilestoneEvent(),
		m.waitForTimerEvent(),
		m.waitForWeekEvent(),
		m.waitForSatisfactionEvent(),
	} {
		if wait != nil {
			cmds = append(cmds, wait)
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// An open form captures all input until submitted or cancelled
	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case dashboardMsg:
		m.dashboard = msg.summary
		m.loaded = true
		m.clampCursor()
		return m, nil

	case matrixMsg:
		m.matrix = msg.snapshot
		return m, nil

	case timerMsg:
		m.running = msg.running
		return m, nil

	case journalMsg:
		m.sat = msg.satisfaction
		m.standups = msg.standups
		return m, nil

	case weekMsg:
		m.week = msg.summary
		return m, nil

	case matrixEventMsg:
		m.matrix = msg.snapshot
		return m, m.waitForMatrixEvent()

	case timerEventMsg:
		m.running = msg.running
		return m, m.waitForTimerEvent()

	case weekEventMsg:
		m.week = msg.summary
		return m, m.waitForWeekEvent()

	case satisfactionEventMsg:
		m.sat = msg.logs
		return m, m.waitForSatisfactionEvent()

	case tickMsg:
		// Only the timer display depends on wall-clock ticks
		return m, tickCmd()

	case tasksChangedMsg:
		cmds := []tea.Cmd{m.loadDashboard()}
		// The matrix has its own feed unless its watch failed to open
		if m.matrixEvents == nil {
			cmds = append(cmds, m.loadMatrix())
		}
		if wait := m.waitForTaskEvent(); wait != nil {
			cmds = append(cmds, wait)
		}
		return m, tea.Batch(cmds...)

	case milestonesChangedMsg:
		cmds := []tea.Cmd{m.loadDashboard()}
		if wait := m.waitForMilestoneEvent(); wait != nil {
			cmds = append(cmds, wait)
		}
		return m, tea.Batch(cmds...)

	case errMsg:
		m.err = msg.err
		logging.Logger.Error("Dashboard operation failed", "error", msg.err)
		return m, tea.Tick(errorClearDelay, func(time.Time) tea.Msg { return clearErrMsg{} })

	case clearErrMsg:
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.Close()
		return m, tea.Quit

	case "tab", "right", "l":
		m.active = (m.active + 1) % tab(len(tabNames))
		m.cursor = 0
		return m, nil

	case "shift+tab", "left", "h":
		m.active = (m.active + tab(len(tabNames)) - 1) % tab(len(tabNames))
		m.cursor = 0
		return m, nil

	case "1", "2", "3", "4":
		m.active = tab(msg.String()[0] - '1')
		m.cursor = 0
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		m.cursor++
		m.clampCursor()
		return m, nil

	case "enter", " ":
		if m.active == tabOverview {
			return m, m.toggleSelectedTask()
		}
		return m, nil

	case "a":
		if m.active == tabOverview {
			return m.openTaskForm()
		}
		return m, nil

	case "s":
		if m.active == tabTimer {
			if m.running != nil {
				return m, m.stopTimer()
			}
			return m.openTimerForm()
		}
		return m, nil

	case "g":
		if m.active == tabJournal {
			return m.openSatisfactionForm()
		}
		return m, nil

	case "r":
		return m, tea.Batch(m.loadDashboard(), m.loadMatrix(), m.loadTimer(), m.loadJournal(), m.loadWeek())
	}

	return m, nil
}

func (m *Model) clampCursor() {
	max := len(m.dashboard.RecentTasks) - 1
	if max < 0 {
		max = 0
	}
	if m.cursor > max {
		m.cursor = max
	}
}

func (m *Model) View() string {
	if !m.loaded {
		return fmt.Sprintf("\n %s loading pulse...\n", m.spinner.View())
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")

	switch m.active {
	case tabOverview:
		b.WriteString(m.overviewView())
	case tabMatrix:
		b.WriteString(m.matrixView())
	case tabTimer:
		b.WriteString(m.timerView())
	case tabJournal:
		b.WriteString(m.journalView())
	}

	if m.form != nil {
		return m.form.View()
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(theme.ErrorStyle.Render("error: " + m.err.Error()))
	}

	b.WriteString("\n")
	b.WriteString(m.helpView())
	return b.String()
}

func (m *Model) headerView() string {
	name := theme.AppNameStyle.Render("pulse")
	version := theme.VersionStyle.Render(versionInfo.Version)

	var tabs []string
	for i, label := range tabNames {
		style := theme.HelpLabelStyle
		if tab(i) == m.active {
			style = theme.SubtitleStyle
		}
		tabs = append(tabs, style.Render(fmt.Sprintf("%d:%s", i+1, label)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		name, " ", version, "  ", strings.Join(tabs, "  "))
}

func (m *Model) helpView() string {
	pairs := [][2]string{
		{"tab", "switch view"},
		{"r", "refresh"},
		{"q", "quit"},
	}
	switch m.active {
	case tabOverview:
		pairs = append([][2]string{{"a", "add task"}, {"enter", "toggle done"}, {"j/k", "move"}}, pairs...)
	case tabTimer:
		label := "start timer"
		if m.running != nil {
			label = "stop timer"
		}
		pairs = append([][2]string{{"s", label}}, pairs...)
	case tabJournal:
		pairs = append([][2]string{{"g", "log satisfaction"}}, pairs...)
	}

	var parts []string
	for _, p := range pairs {
		parts = append(parts,
			theme.HelpShortcutStyle.Render(p[0])+" "+theme.HelpLabelStyle.Render(p[1]))
	}
	return theme.HelpStyle.Render(strings.Join(parts, "  ·  "))
}

// tickCmd schedules the next wall-clock tick
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}
