package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// Milestone status colors
const (
	ColorActive    Color = "2" // Green
	ColorCompleted Color = "8" // Gray
	ColorOnHold    Color = "3" // Yellow
	ColorPlanned   Color = "4" // Blue
)

// Matrix quadrant colors
const (
	ColorQ1            Color = "196" // Red - do first
	ColorQ2            Color = "46"  // Green - schedule
	ColorQ3            Color = "214" // Orange - delegate
	ColorQ4            Color = "241" // Gray - eliminate
	ColorUncategorized Color = "245"
)

// Mood colors
const (
	ColorMoodAngry Color = "1"
	ColorMoodCool  Color = "39"
	ColorMoodHappy Color = "2"
	ColorMoodOkay  Color = "3"
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
	ColorVersion   Color = "240" // Dark gray
)

// Accent colors
const (
	ColorDone    Color = "2"   // Green - completed tasks
	ColorSpinner Color = "205" // Pink
	ColorTimer   Color = "226" // Yellow - running timer
)
