package domain

import "time"

// Mood is the emoji bucket attached to a satisfaction entry
type Mood string

const (
	MoodHappy Mood = "happy"
	MoodCool  Mood = "cool"
	MoodOkay  Mood = "okay"
	MoodAngry Mood = "angry"
)

// ValidMood reports whether m is a known mood.
func ValidMood(m Mood) bool {
	switch m {
	case MoodHappy, MoodCool, MoodOkay, MoodAngry:
		return true
	}
	return false
}

// SatisfactionLog is a dated satisfaction score. At most one meaningful
// entry exists per calendar day; saves upsert by day.
type SatisfactionLog struct {
	Date   time.Time
	ID     string
	Mood   Mood
	Notes  string
	Score  int // 1-10
	UserID string
}

// SatisfactionSummary is the latest score and its delta from the
// previous entry. Nil fields mean not enough data yet.
type SatisfactionSummary struct {
	Change       *int
	CurrentScore *int
}

// StandupLog records a daily standup: what was done, what is blocked,
// what comes next.
type StandupLog struct {
	Blockers  []string
	Completed []string
	Date      time.Time
	ID        string
	Notes     string
	Planned   []string
	UserID    string
}
