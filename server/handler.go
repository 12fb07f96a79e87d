package server

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"

	"pulse/internal/adapters/storage"
	"pulse/internal/config"
	"pulse/internal/logging"
	"pulse/internal/services"
	"pulse/internal/ui"
)

// sessionModel wraps ui.Model to close the per-session store on quit
type sessionModel struct {
	*ui.Model
	sessionID string
	startTime time.Time
	store     *storage.Store
}

func (s *sessionModel) Init() tea.Cmd {
	return s.Model.Init()
}

func (s *sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.QuitMsg); ok {
		duration := time.Since(s.startTime)

		s.Model.Close()
		if err := s.store.Close(); err != nil {
			logging.Logger.Error("Failed to close store for SSH session",
				"error", err,
				"session_id", s.sessionID,
				"duration", duration.String())
		}

		logging.Logger.Info("SSH session ended",
			"session_id", s.sessionID,
			"duration", duration.String())
	}

	updatedModel, cmd := s.Model.Update(msg)
	if m, ok := updatedModel.(*ui.Model); ok {
		s.Model = m
	}
	return s, cmd
}

func (s *sessionModel) View() string {
	return s.Model.View()
}

// errorModel renders a startup failure and exits on any key
type errorModel struct {
	err error
}

func (e errorModel) Init() tea.Cmd { return nil }

func (e errorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return e, tea.Quit
	}
	return e, nil
}

func (e errorModel) View() string {
	return fmt.Sprintf("failed to start dashboard: %v\n\npress any key to disconnect\n", e.err)
}

// teaHandler creates a dashboard model for each SSH session
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	sessionID := fmt.Sprintf("%s@%s", sess.User(), sess.RemoteAddr().String())

	logging.Logger.Info("New SSH session",
		"session_id", sessionID,
		"user", sess.User(),
		"remote_addr", sess.RemoteAddr().String(),
		"term", pty.Term,
		"window", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

	// Each session opens its own handle onto the shared database
	store, err := storage.Open(s.dbPath)
	if err != nil {
		logging.Logger.Error("Failed to open database for SSH session",
			"error", err,
			"session_id", sessionID)
		return errorModel{err}, nil
	}

	userID := config.DefaultUserID
	if s.settings != nil {
		userID = s.settings.ResolvedUserID()
	}

	milestoneService := services.NewMilestoneService(store.Milestones, store.Tasks)
	taskService := services.NewTaskService(store.Tasks, milestoneService)
	journalService := services.NewJournalService(store.Journal, userID)

	model := ui.NewModel(ui.Services{
		Journal:    journalService,
		Matrix:     services.NewMatrixService(store.Tasks),
		Milestones: milestoneService,
		Summary:    services.NewSummaryService(taskService, milestoneService, journalService),
		Tasks:      taskService,
		Time:       services.NewTimeService(store.TimeSheet, userID),
	})

	wrapped := &sessionModel{
		Model:     model,
		sessionID: sessionID,
		startTime: time.Now(),
		store:     store,
	}

	return wrapped, []tea.ProgramOption{tea.WithAltScreen()}
}
