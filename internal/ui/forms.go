package ui

import (
	"context"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"pulse/internal/domain"
	"pulse/internal/services"
)

// formKind identifies which action an open form submits to
type formKind int

const (
	formAddTask formKind = iota
	formStartTimer
	formLogSatisfaction
)

// formState wraps a huh form plus the values its fields bind to
type formState struct {
	form *huh.Form
	kind formKind

	mood     string
	note     string
	priority string
	score    string
	tags     string
	title    string
	urgency  string
}

func (f *formState) View() string {
	if f.form == nil {
		return ""
	}
	return f.form.View()
}

func (m *Model) openTaskForm() (tea.Model, tea.Cmd) {
	f := &formState{kind: formAddTask, priority: string(domain.PriorityMedium)}
	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task title").
				Value(&f.title).
				CharLimit(200),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("Low", string(domain.PriorityLow)),
					huh.NewOption("Medium", string(domain.PriorityMedium)),
					huh.NewOption("High", string(domain.PriorityHigh)),
				).
				Value(&f.priority),
			huh.NewSelect[string]().
				Title("Urgency").
				Options(
					huh.NewOption("None", ""),
					huh.NewOption("Low", string(domain.UrgencyLow)),
					huh.NewOption("Medium", string(domain.UrgencyMedium)),
					huh.NewOption("High", string(domain.UrgencyHigh)),
				).
				Value(&f.urgency),
			huh.NewInput().
				Title("Tags (comma separated)").
				Value(&f.tags),
		),
	)
	m.form = f
	return m, f.form.Init()
}

func (m *Model) openTimerForm() (tea.Model, tea.Cmd) {
	f := &formState{kind: formStartTimer}
	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What are you working on?").
				Value(&f.title).
				CharLimit(200),
			huh.NewInput().
				Title("Note (optional)").
				Value(&f.note),
		),
	)
	m.form = f
	return m, f.form.Init()
}

func (m *Model) openSatisfactionForm() (tea.Model, tea.Cmd) {
	f := &formState{kind: formLogSatisfaction, score: "7", mood: string(domain.MoodOkay)}
	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Score (1-10)").
				Value(&f.score).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 || n > 10 {
						return domain.ErrValidation
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Mood").
				Options(
					huh.NewOption("Happy", string(domain.MoodHappy)),
					huh.NewOption("Cool", string(domain.MoodCool)),
					huh.NewOption("Okay", string(domain.MoodOkay)),
					huh.NewOption("Angry", string(domain.MoodAngry)),
				).
				Value(&f.mood),
			huh.NewText().
				Title("Notes").
				Value(&f.note).
				CharLimit(500),
		),
	)
	m.form = f
	return m, f.form.Init()
}

// updateForm routes messages into the open form and submits on completion
func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form.form = f
	}

	if m.form.form.State == huh.StateCompleted {
		submitted := m.form
		m.form = nil
		return m, m.submitForm(submitted)
	}

	return m, cmd
}

func (m *Model) submitForm(f *formState) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		switch f.kind {
		case formAddTask:
			task := domain.Task{
				Priority: domain.Priority(f.priority),
				Tags:     splitTags(f.tags),
				Title:    f.title,
				Urgency:  domain.Urgency(f.urgency),
			}
			if _, err := m.services.Tasks.Add(ctx, task); err != nil {
				return errMsg{err}
			}
			return tasksChangedMsg{}

		case formStartTimer:
			_, err := m.services.Time.StartTimer(ctx, services.TimerStart{
				Note:  f.note,
				Title: f.title,
			})
			if err != nil {
				return errMsg{err}
			}
			running, err := m.services.Time.Running(ctx)
			if err != nil {
				return errMsg{err}
			}
			return timerMsg{running}

		case formLogSatisfaction:
			score, _ := strconv.Atoi(strings.TrimSpace(f.score))
			_, err := m.services.Journal.LogSatisfaction(ctx, time.Now(), score, domain.Mood(f.mood), f.note)
			if err != nil {
				return errMsg{err}
			}
			sat, err := m.services.Journal.RecentSatisfaction(ctx, 14)
			if err != nil {
				return errMsg{err}
			}
			standups, err := m.services.Journal.RecentStandups(ctx, 3)
			if err != nil {
				return errMsg{err}
			}
			return journalMsg{satisfaction: sat, standups: standups}
		}
		return nil
	}
}

func splitTags(raw string) []string {
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
