package cmd

import (
	"pulse/internal/adapters/storage"
	"pulse/internal/config"
	"pulse/internal/services"
	"pulse/internal/ui"
)

// Container holds all dependencies for the application
type Container struct {
	// Services
	JournalService   *services.JournalService
	MatrixService    *services.MatrixService
	MilestoneService *services.MilestoneService
	SummaryService   *services.SummaryService
	TaskService      *services.TaskService
	TimeService      *services.TimeService

	// Internal - for cleanup only
	store *storage.Store
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(settings *config.Settings) (*Container, error) {
	store, err := storage.Open(config.GetDBPath())
	if err != nil {
		return nil, err
	}

	userID := config.DefaultUserID
	if settings != nil {
		userID = settings.ResolvedUserID()
	}

	milestoneService := services.NewMilestoneService(store.Milestones, store.Tasks)
	taskService := services.NewTaskService(store.Tasks, milestoneService)
	matrixService := services.NewMatrixService(store.Tasks)
	timeService := services.NewTimeService(store.TimeSheet, userID)
	journalService := services.NewJournalService(store.Journal, userID)
	summaryService := services.NewSummaryService(taskService, milestoneService, journalService)

	return &Container{
		JournalService:   journalService,
		MatrixService:    matrixService,
		MilestoneService: milestoneService,
		SummaryService:   summaryService,
		TaskService:      taskService,
		TimeService:      timeService,
		store:            store,
	}, nil
}

// UIServices bundles the container's services for the dashboard model
func (c *Container) UIServices() ui.Services {
	return ui.Services{
		Journal:    c.JournalService,
		Matrix:     c.MatrixService,
		Milestones: c.MilestoneService,
		Summary:    c.SummaryService,
		Tasks:      c.TaskService,
		Time:       c.TimeService,
	}
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}
