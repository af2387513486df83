package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/ayoisaiah/slumber/internal/models"
	"github.com/ayoisaiah/slumber/internal/timeutil"
)

const dayLayout = "Mon Jan 02"

func sessionSummary(sess *models.Session, twentyFourHour bool) string {
	clock := timeutil.Clock(twentyFourHour)

	if sess.InProgress() {
		return fmt.Sprintf(
			"%s, since %s",
			sess.StartTime.Format(dayLayout),
			sess.StartTime.Format(clock),
		)
	}

	return fmt.Sprintf(
		"%s, %s - %s (%s)",
		sess.StartTime.Format(dayLayout),
		sess.StartTime.Format(clock),
		sess.EndTime.Format(clock),
		timeutil.FormatDuration(sess.Duration()),
	)
}

// helpKeys lists only the actions that are currently available.
func (m *Model) helpKeys() []key.Binding {
	var keys []key.Binding

	if m.state.StartVisible {
		keys = append(keys, defaultKeymap.start)
	}

	if m.state.StopVisible {
		keys = append(keys, defaultKeymap.stop)
	}

	if m.state.ClearVisible {
		keys = append(
			keys,
			defaultKeymap.clear,
			defaultKeymap.up,
			defaultKeymap.down,
			defaultKeymap.enter,
			defaultKeymap.rate,
		)
	}

	if m.detail != nil {
		keys = append(keys, defaultKeymap.esc)
	}

	return append(keys, defaultKeymap.quit)
}

func (m *Model) statusView() string {
	if tonight := m.state.Tonight; tonight != nil {
		return m.styles.Recording.Render(
			fmt.Sprintf(
				"Recording since %s (%s)",
				tonight.StartTime.Format(timeutil.Clock(m.cfg.Display.TwentyFourHour)),
				timeutil.FormatDuration(m.tracker.Now().Sub(tonight.StartTime)),
			),
		)
	}

	return m.styles.Idle.Render("Idle")
}

func (m *Model) nightsView() string {
	if len(m.state.Nights) == 0 {
		return m.styles.Hint.Render("No sleep sessions recorded yet")
	}

	var b strings.Builder

	for i := range m.state.Nights {
		if i == maxNights {
			fmt.Fprintf(
				&b,
				"%s\n",
				m.styles.Hint.Render(
					fmt.Sprintf("… %d more", len(m.state.Nights)-maxNights),
				),
			)

			break
		}

		night := &m.state.Nights[i]

		line := fmt.Sprintf(
			"#%-4d %s  %s",
			night.ID,
			sessionSummary(night, m.cfg.Display.TwentyFourHour),
			night.Quality,
		)

		if i == m.cursor {
			line = m.styles.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}

		b.WriteString(line + "\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func (m *Model) detailView() string {
	sess := m.detail
	clock := "Jan 02, 2006 " + timeutil.Clock(m.cfg.Display.TwentyFourHour)

	end := "in progress"
	if !sess.InProgress() {
		end = sess.EndTime.Format(clock)
	}

	return m.styles.Detail.Render(
		fmt.Sprintf(
			"Session #%d\nStarted:  %s\nEnded:    %s\nDuration: %s\nQuality:  %s",
			sess.ID,
			sess.StartTime.Format(clock),
			end,
			timeutil.FormatDuration(sess.Duration()),
			sess.Quality,
		),
	)
}

func (m *Model) View() string {
	if m.form != nil {
		return m.styles.Base.Render(m.form.View())
	}

	var s strings.Builder

	s.WriteString(m.styles.Title.Render("slumber") + "\n\n")
	s.WriteString(m.statusView() + "\n\n")
	s.WriteString(m.nightsView() + "\n")

	if m.detail != nil {
		s.WriteString(m.detailView() + "\n")
	}

	if m.flash != "" {
		s.WriteString("\n" + m.styles.Flash.Render(m.flash) + "\n")
	}

	if m.err != nil {
		s.WriteString("\n" + m.styles.Err.Render(m.err.Error()) + "\n")
	}

	s.WriteString("\n" + m.help.ShortHelpView(m.helpKeys()))

	return m.styles.Base.Render(s.String())
}
