package tui

import (
	"log/slog"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/davecgh/go-spew/spew"

	"github.com/ayoisaiah/slumber/internal/models"
	"github.com/ayoisaiah/slumber/report"
	"github.com/ayoisaiah/slumber/tracker"
)

// handleState applies a new tracker state and consumes its one-shot events.
func (m *Model) handleState(s stateMsg) (tea.Model, tea.Cmd) {
	grew := len(s.Nights) > len(m.state.Nights)

	m.state = tracker.State(s)

	// a new night is listed first, so jump back to the top
	if grew {
		m.cursor = 0
	}

	if m.cursor >= len(m.state.Nights) {
		m.cursor = max(len(m.state.Nights)-1, 0)
	}

	var cmds []tea.Cmd

	if sess := m.state.NavigateToQuality; sess != nil {
		m.tracker.DoneNavigating()

		if m.form == nil {
			m.rating = sess
			m.form = m.qualityForm(sess)
			cmds = append(cmds, m.form.Init())
		}
	}

	if sess := m.state.NavigateToDetail; sess != nil {
		m.tracker.DoneNavigatingToDetail()
		m.detail = sess
	}

	if m.state.ShowSnackbar {
		m.tracker.DoneShowingSnackbar()
		m.flash = report.ClearedMsg
		m.detail = nil
	}

	cmds = append(cmds, m.waitForState())

	return m, tea.Batch(cmds...)
}

// handleForm forwards messages to the quality form until it is submitted or
// dismissed.
func (m *Model) handleForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, defaultKeymap.esc) {
		m.form = nil
		m.rating = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		sess := m.rating
		m.form = nil
		m.rating = nil

		return m, m.setQuality(sess.ID, models.Quality(m.quality))
	case huh.StateAborted:
		m.form = nil
		m.rating = nil

		return m, nil
	case huh.StateNormal:
	}

	return m, cmd
}

func (m *Model) selected() *models.Session {
	if len(m.state.Nights) == 0 {
		return nil
	}

	return &m.state.Nights[m.cursor]
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch {
	case key.Matches(msg, defaultKeymap.quit):
		m.unsubscribe()

		return m, tea.Quit

	case key.Matches(msg, defaultKeymap.start):
		if !m.state.StartVisible {
			return m, nil
		}

		m.flash = ""

		return m, m.startTracking()

	case key.Matches(msg, defaultKeymap.stop):
		if !m.state.StopVisible {
			return m, nil
		}

		return m, m.stopTracking()

	case key.Matches(msg, defaultKeymap.clear):
		if !m.state.ClearVisible {
			return m, nil
		}

		return m, m.clearSessions()

	case key.Matches(msg, defaultKeymap.up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, defaultKeymap.down):
		if m.cursor < min(len(m.state.Nights), maxNights)-1 {
			m.cursor++
		}

	case key.Matches(msg, defaultKeymap.enter):
		if sess := m.selected(); sess != nil {
			return m, m.selectSession(sess.ID)
		}

	case key.Matches(msg, defaultKeymap.esc):
		m.detail = nil

	case key.Matches(msg, defaultKeymap.rate):
		sess := m.selected()
		if sess == nil || sess.InProgress() {
			return m, nil
		}

		q, err := strconv.Atoi(msg.String())
		if err != nil {
			return m, nil
		}

		return m, m.setQuality(sess.ID, models.Quality(q))
	}

	return m, nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	slog.Debug(spew.Sdump(msg))

	switch msg := msg.(type) {
	case stateMsg:
		return m.handleState(msg)

	case tickMsg:
		return m, tick()

	case closedMsg:
		return m, tea.Quit

	case errMsg:
		m.err = msg.err

		return m, nil

	case stoppedMsg:
		slog.Debug("session stopped", slog.Int64("id", msg.sess.ID))

		return m, nil

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width - padding*2

		return m, nil
	}

	if m.form != nil {
		return m.handleForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeyPress(msg)
	}

	return m, nil
}
