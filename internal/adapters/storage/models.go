package storage

import "time"

// TaskModel is the GORM model for the tasks table
type TaskModel struct {
	Completed   bool       `gorm:"not null;default:false;index:idx_tasks_completed"`
	CreatedAt   time.Time  `gorm:"not null;index:idx_tasks_created_at"`
	Date        *time.Time `gorm:"index:idx_tasks_date;default:null"`
	ID          string     `gorm:"primaryKey"`
	MilestoneID *string    `gorm:"index:idx_tasks_milestone;default:null"`
	Priority    string     `gorm:"default:'';check:priority IN ('','low','medium','high')"`
	Tags        string     `gorm:"default:''"`
	Title       string     `gorm:"not null"`
	UpdatedAt   time.Time
	Urgency     string `gorm:"default:'';check:urgency IN ('','low','medium','high')"`
}

// TableName specifies the table name for GORM
func (TaskModel) TableName() string { return "tasks" }

// MilestoneModel is the GORM model for the milestones table
type MilestoneModel struct {
	CreatedAt   time.Time
	Description string     `gorm:"default:''"`
	EndDate     *time.Time `gorm:"index:idx_milestones_end_date;default:null"`
	ID          string     `gorm:"primaryKey"`
	Progress    int        `gorm:"not null;default:0"`
	StartDate   *time.Time `gorm:"default:null"`
	Status      string     `gorm:"not null;default:'active';index:idx_milestones_status;check:status IN ('planned','active','completed','on_hold')"`
	Title       string     `gorm:"not null"`
	UpdatedAt   time.Time
	Urgency     string `gorm:"default:'';check:urgency IN ('','low','medium','high')"`
}

// TableName specifies the table name for GORM
func (MilestoneModel) TableName() string { return "milestones" }

// TimeEntryModel is the GORM model for the time_entries table
type TimeEntryModel struct {
	CreatedAt     time.Time
	Day           string     `gorm:"not null;index:idx_time_entries_day"`
	DurationSec   int64      `gorm:"not null;default:0"`
	EndedAt       *time.Time `gorm:"index:idx_time_entries_ended_at;default:null"`
	ID            string     `gorm:"primaryKey"`
	MilestoneID   *string    `gorm:"default:null"`
	Note          string     `gorm:"default:''"`
	Source        string     `gorm:"not null;check:source IN ('manual','timer')"`
	StartedAt     time.Time  `gorm:"not null"`
	Tags          string     `gorm:"default:''"`
	TaskID        *string    `gorm:"index:idx_time_entries_task;default:null"`
	TitleSnapshot string     `gorm:"not null;default:''"`
	UpdatedAt     time.Time
	UserID        string `gorm:"not null;index:idx_time_entries_user"`
}

// TableName specifies the table name for GORM
func (TimeEntryModel) TableName() string { return "time_entries" }

// SatisfactionLogModel is the GORM model for the satisfaction_logs table
type SatisfactionLogModel struct {
	CreatedAt time.Time
	Date      time.Time `gorm:"not null;index:idx_satisfaction_date"`
	ID        string    `gorm:"primaryKey"`
	Mood      string    `gorm:"default:'';check:mood IN ('','happy','cool','okay','angry')"`
	Notes     string    `gorm:"default:''"`
	Score     int       `gorm:"not null"`
	UpdatedAt time.Time
	UserID    string `gorm:"not null;index:idx_satisfaction_user"`
}

// TableName specifies the table name for GORM
func (SatisfactionLogModel) TableName() string { return "satisfaction_logs" }

// StandupLogModel is the GORM model for the standup_logs table
type StandupLogModel struct {
	Blockers  string `gorm:"default:''"`
	Completed string `gorm:"default:''"`
	CreatedAt time.Time
	Date      time.Time `gorm:"not null;index:idx_standup_date"`
	ID        string    `gorm:"primaryKey"`
	Notes     string    `gorm:"default:''"`
	Planned   string    `gorm:"default:''"`
	UpdatedAt time.Time
	UserID    string `gorm:"not null;index:idx_standup_user"`
}

// TableName specifies the table name for GORM
func (StandupLogModel) TableName() string { return "standup_logs" }
