package storage

import (
	"encoding/json"

	"pulse/internal/domain"
	"pulse/internal/logging"
)

// encodeStrings serializes a string list as JSON for a TEXT column.
// An empty list maps to the empty string, not "[]".
func encodeStrings(items []string) string {
	if len(items) == 0 {
		return ""
	}
	data, err := json.Marshal(items)
	if err != nil {
		logging.Logger.Error("failed to encode string list", "error", err)
		return ""
	}
	return string(data)
}

// decodeStrings deserializes a JSON string list column
func decodeStrings(raw string) []string {
	if raw == "" {
		return nil
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logging.Logger.Error("failed to decode string list", "raw", raw, "error", err)
		return nil
	}
	return items
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// taskModelToDomain converts a TaskModel (GORM) to domain.Task
func taskModelToDomain(m TaskModel) domain.Task {
	return domain.Task{
		Completed:   m.Completed,
		CreatedAt:   m.CreatedAt,
		Date:        m.Date,
		ID:          m.ID,
		MilestoneID: strVal(m.MilestoneID),
		Priority:    domain.Priority(m.Priority),
		Tags:        decodeStrings(m.Tags),
		Title:       m.Title,
		Urgency:     domain.Urgency(m.Urgency),
	}
}

// domainToTaskModel converts a domain.Task to TaskModel (GORM)
func domainToTaskModel(t domain.Task) TaskModel {
	return TaskModel{
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		Date:        t.Date,
		ID:          t.ID,
		MilestoneID: strPtr(t.MilestoneID),
		Priority:    string(t.Priority),
		Tags:        encodeStrings(t.Tags),
		Title:       t.Title,
		Urgency:     string(t.Urgency),
	}
}

// milestoneModelToDomain converts a MilestoneModel (GORM) to domain.Milestone
func milestoneModelToDomain(m MilestoneModel) domain.Milestone {
	return domain.Milestone{
		Description: m.Description,
		EndDate:     m.EndDate,
		ID:          m.ID,
		Progress:    m.Progress,
		StartDate:   m.StartDate,
		Status:      domain.MilestoneStatus(m.Status),
		Title:       m.Title,
		Urgency:     domain.Urgency(m.Urgency),
	}
}

// domainToMilestoneModel converts a domain.Milestone to MilestoneModel (GORM)
func domainToMilestoneModel(m domain.Milestone) MilestoneModel {
	return MilestoneModel{
		Description: m.Description,
		EndDate:     m.EndDate,
		ID:          m.ID,
		Progress:    m.Progress,
		StartDate:   m.StartDate,
		Status:      string(m.Status),
		Title:       m.Title,
		Urgency:     string(m.Urgency),
	}
}

// entryModelToDomain converts a TimeEntryModel (GORM) to domain.TimeEntry
func entryModelToDomain(m TimeEntryModel) domain.TimeEntry {
	return domain.TimeEntry{
		CreatedAt:     m.CreatedAt,
		Day:           m.Day,
		DurationSec:   m.DurationSec,
		EndedAt:       m.EndedAt,
		ID:            m.ID,
		MilestoneID:   strVal(m.MilestoneID),
		Note:          m.Note,
		Source:        domain.EntrySource(m.Source),
		StartedAt:     m.StartedAt,
		Tags:          decodeStrings(m.Tags),
		TaskID:        strVal(m.TaskID),
		TitleSnapshot: m.TitleSnapshot,
		UpdatedAt:     m.UpdatedAt,
		UserID:        m.UserID,
	}
}

// domainToEntryModel converts a domain.TimeEntry to TimeEntryModel (GORM)
func domainToEntryModel(e domain.TimeEntry) TimeEntryModel {
	return TimeEntryModel{
		CreatedAt:     e.CreatedAt,
		Day:           e.Day,
		DurationSec:   e.DurationSec,
		EndedAt:       e.EndedAt,
		ID:            e.ID,
		MilestoneID:   strPtr(e.MilestoneID),
		Note:          e.Note,
		Source:        string(e.Source),
		StartedAt:     e.StartedAt,
		Tags:          encodeStrings(e.Tags),
		TaskID:        strPtr(e.TaskID),
		TitleSnapshot: e.TitleSnapshot,
		UserID:        e.UserID,
	}
}

// satisfactionModelToDomain converts a SatisfactionLogModel to domain.SatisfactionLog
func satisfactionModelToDomain(m SatisfactionLogModel) domain.SatisfactionLog {
	return domain.SatisfactionLog{
		Date:   m.Date,
		ID:     m.ID,
		Mood:   domain.Mood(m.Mood),
		Notes:  m.Notes,
		Score:  m.Score,
		UserID: m.UserID,
	}
}

// domainToSatisfactionModel converts a domain.SatisfactionLog to SatisfactionLogModel
func domainToSatisfactionModel(l domain.SatisfactionLog) SatisfactionLogModel {
	return SatisfactionLogModel{
		Date:   l.Date,
		ID:     l.ID,
		Mood:   string(l.Mood),
		Notes:  l.Notes,
		Score:  l.Score,
		UserID: l.UserID,
	}
}

// standupModelToDomain converts a StandupLogModel to domain.StandupLog
func standupModelToDomain(m StandupLogModel) domain.StandupLog {
	return domain.StandupLog{
		Blockers:  decodeStrings(m.Blockers),
		Completed: decodeStrings(m.Completed),
		Date:      m.Date,
		ID:        m.ID,
		Notes:     m.Notes,
		Planned:   decodeStrings(m.Planned),
		UserID:    m.UserID,
	}
}

// domainToStandupModel converts a domain.StandupLog to StandupLogModel
func domainToStandupModel(l domain.StandupLog) StandupLogModel {
	return StandupLogModel{
		Blockers:  encodeStrings(l.Blockers),
		Completed: encodeStrings(l.Completed),
		Date:      l.Date,
		ID:        l.ID,
		Notes:     l.Notes,
		Planned:   encodeStrings(l.Planned),
		UserID:    l.UserID,
	}
}
