// Package tui implements the interactive sleep tracking screen
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ayoisaiah/slumber/internal/config"
	"github.com/ayoisaiah/slumber/internal/models"
	"github.com/ayoisaiah/slumber/tracker"
)

type (
	// stateMsg carries a new tracker state to the UI loop.
	stateMsg tracker.State

	// tickMsg refreshes the elapsed time of the running session.
	tickMsg time.Time

	// closedMsg is sent once the tracker subscription ends.
	closedMsg struct{}

	errMsg struct {
		err error
	}

	// stoppedMsg is sent after a session is stopped and the stop hook has
	// run.
	stoppedMsg struct {
		sess *models.Session
	}
)

// Model is the bubbletea model for the tracker screen.
type Model struct {
	ctx         context.Context
	tracker     *tracker.Tracker
	updates     <-chan tracker.State
	unsubscribe func()
	onStop      func(*models.Session)
	cfg         *config.Config
	form        *huh.Form
	detail      *models.Session
	rating      *models.Session
	err         error
	styles      styles
	flash       string
	state       tracker.State
	help        help.Model
	quality     int
	cursor      int
}

// New creates the tracker screen. onStop, if not nil, is called with every
// session stopped from the screen. It runs outside the UI loop.
func New(
	ctx context.Context,
	t *tracker.Tracker,
	cfg *config.Config,
	onStop func(*models.Session),
) *Model {
	updates, unsubscribe := t.Subscribe()

	return &Model{
		ctx:         ctx,
		tracker:     t,
		updates:     updates,
		unsubscribe: unsubscribe,
		onStop:      onStop,
		cfg:         cfg,
		styles:      newStyles(cfg.Display.DarkTheme),
		state:       t.State(),
		help:        help.New(),
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForState(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForState blocks until the tracker publishes a new state.
func (m *Model) waitForState() tea.Cmd {
	return func() tea.Msg {
		s, ok := <-m.updates
		if !ok {
			return closedMsg{}
		}

		return stateMsg(s)
	}
}

func (m *Model) startTracking() tea.Cmd {
	return func() tea.Msg {
		_, err := m.tracker.StartTracking(m.ctx)
		if err != nil {
			return errMsg{err}
		}

		return nil
	}
}

func (m *Model) stopTracking() tea.Cmd {
	return func() tea.Msg {
		sess, err := m.tracker.StopTracking(m.ctx)
		if err != nil {
			return errMsg{err}
		}

		if m.onStop != nil {
			m.onStop(sess)
		}

		return stoppedMsg{sess}
	}
}

func (m *Model) clearSessions() tea.Cmd {
	return func() tea.Msg {
		err := m.tracker.Clear(m.ctx)
		if err != nil {
			return errMsg{err}
		}

		return nil
	}
}

func (m *Model) setQuality(id int64, q models.Quality) tea.Cmd {
	return func() tea.Msg {
		_, err := m.tracker.SetQuality(m.ctx, id, q)
		if err != nil {
			return errMsg{err}
		}

		return nil
	}
}

func (m *Model) selectSession(id int64) tea.Cmd {
	return func() tea.Msg {
		_, err := m.tracker.SelectSession(m.ctx, id)
		if err != nil {
			return errMsg{err}
		}

		return nil
	}
}

// QualitySelect builds a selection field for a sleep quality rating, best
// rating first.
func QualitySelect(value *int, description string) *huh.Select[int] {
	options := make([]huh.Option[int], 0, len(models.Qualities))

	for i := len(models.Qualities) - 1; i >= 0; i-- {
		q := models.Qualities[i]
		options = append(options, huh.NewOption(q.String(), int(q)))
	}

	return huh.NewSelect[int]().
		Title("How did you sleep?").
		Description(description).
		Options(options...).
		Value(value)
}

// qualityForm asks for the quality of sess.
func (m *Model) qualityForm(sess *models.Session) *huh.Form {
	m.quality = int(models.QualityOK)

	return huh.NewForm(
		huh.NewGroup(
			QualitySelect(
				&m.quality,
				sessionSummary(sess, m.cfg.Display.TwentyFourHour),
			),
		),
	).WithShowHelp(true)
}
