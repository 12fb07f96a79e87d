package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMilestoneProgress(t *testing.T) {
	tests := []struct {
		name      string
		completed int64
		total     int64
		expected  int
	}{
		{"no tasks", 0, 0, 0},
		{"none completed", 0, 4, 0},
		{"half completed", 2, 4, 50},
		{"all completed", 4, 4, 100},
		{"one of three rounds down", 1, 3, 33},
		{"two of three rounds up", 2, 3, 67},
		{"one of eight", 1, 8, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MilestoneProgress(tt.completed, tt.total))
		})
	}
}

func TestNextStatus_TransitionRule(t *testing.T) {
	tests := []struct {
		name     string
		current  MilestoneStatus
		progress int
		expected MilestoneStatus
	}{
		{"active reaching 100 completes", StatusActive, 100, StatusCompleted},
		{"completed dropping below 100 reverts", StatusCompleted, 50, StatusActive},
		{"completed at 100 stays", StatusCompleted, 100, StatusCompleted},
		{"active below 100 stays", StatusActive, 40, StatusActive},
		{"planned reaching 100 untouched", StatusPlanned, 100, StatusPlanned},
		{"planned below 100 untouched", StatusPlanned, 60, StatusPlanned},
		{"on hold below 100 untouched", StatusOnHold, 0, StatusOnHold},
		{"on hold reaching 100 untouched", StatusOnHold, 100, StatusOnHold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextStatus(tt.current, tt.progress))
		})
	}
}

func TestDaysLeft(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC)

	t.Run("no end date", func(t *testing.T) {
		assert.Equal(t, -1, DaysLeft(nil, now))
	})

	t.Run("ends today", func(t *testing.T) {
		end := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
		assert.Equal(t, 0, DaysLeft(&end, now))
	})

	t.Run("ends in three days", func(t *testing.T) {
		end := time.Date(2025, 6, 13, 1, 0, 0, 0, time.UTC)
		assert.Equal(t, 3, DaysLeft(&end, now))
	})

	t.Run("past end date floors at zero", func(t *testing.T) {
		end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 0, DaysLeft(&end, now))
	})
}
