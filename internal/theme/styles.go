package theme

import (
	"github.com/charmbracelet/lipgloss"

	"pulse/internal/domain"
)

// Main UI styles
var (
	HelpLabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	HelpShortcutStyle = lipgloss.NewStyle().
				Foreground(ColorHighlight).
				Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(1, 0)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(1, 0)
)

// Dialog header styles
var (
	AppNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorVersion)
)

// Task styles
var (
	DoneStyle = lipgloss.NewStyle().
			Foreground(ColorDone).
			Strikethrough(true)

	TagStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)
)

// Timer styles
var (
	TimerStyle = lipgloss.NewStyle().
			Foreground(ColorTimer).
			Bold(true)

	TimerLabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)
)

// Progress bar styles
var (
	ProgressFilledStyle = lipgloss.NewStyle().
				Foreground(ColorActive)

	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)
)

// Spinner style
var SpinnerStyle = lipgloss.NewStyle().
	Foreground(ColorSpinner)

// Error style
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorError).
	Bold(true)

// QuadrantStyle returns the border style for a matrix quadrant cell.
func QuadrantStyle(q domain.Quadrant) lipgloss.Style {
	color := ColorUncategorized
	switch q {
	case domain.Quadrant1:
		color = ColorQ1
	case domain.Quadrant2:
		color = ColorQ2
	case domain.Quadrant3:
		color = ColorQ3
	case domain.Quadrant4:
		color = ColorQ4
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1)
}

// StatusStyle returns the style for a milestone status label.
func StatusStyle(status domain.MilestoneStatus) lipgloss.Style {
	color := ColorNormal
	switch status {
	case domain.StatusActive:
		color = ColorActive
	case domain.StatusCompleted:
		color = ColorCompleted
	case domain.StatusOnHold:
		color = ColorOnHold
	case domain.StatusPlanned:
		color = ColorPlanned
	}
	return lipgloss.NewStyle().Foreground(color)
}

// MoodStyle returns the style for a mood label.
func MoodStyle(mood domain.Mood) lipgloss.Style {
	color := ColorNormal
	switch mood {
	case domain.MoodHappy:
		color = ColorMoodHappy
	case domain.MoodCool:
		color = ColorMoodCool
	case domain.MoodOkay:
		color = ColorMoodOkay
	case domain.MoodAngry:
		color = ColorMoodAngry
	}
	return lipgloss.NewStyle().Foreground(color)
}
