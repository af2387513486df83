package app

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/slumber/internal/models"
	"github.com/ayoisaiah/slumber/internal/timeutil"
	"github.com/ayoisaiah/slumber/internal/ui"
	"github.com/ayoisaiah/slumber/tracker"
)

const (
	noSessionsMsg = "No sleep sessions found"
	inProgressMsg = "in progress"
)

func dateLayout(twentyFourHour bool) string {
	return "Jan 02, 2006 " + timeutil.Clock(twentyFourHour)
}

func durationText(sess *models.Session) string {
	if sess.InProgress() {
		return inProgressMsg
	}

	return timeutil.FormatDuration(sess.Duration())
}

func qualityText(q models.Quality) string {
	if !q.Valid() {
		return q.String()
	}

	return ui.Quality(q.String(), int(q))
}

// printTable renders data as a boxed table whose first row is the header.
func printTable(w io.Writer, data [][]string) {
	str, err := pterm.DefaultTable.
		WithBoxed().
		WithHasHeader().
		WithData(data).
		Srender()
	if err != nil {
		pterm.Error.Printfln("Failed to output session table: %s", err.Error())
		return
	}

	fmt.Fprintln(w, str)
}

// printSessionsTable prints a session table to the command-line.
func printSessionsTable(
	w io.Writer,
	sessions []*models.Session,
	twentyFourHour bool,
) {
	layout := dateLayout(twentyFourHour)

	tableBody := make([][]string, len(sessions))

	for i := range sessions {
		sess := sessions[i]

		endDate := sess.EndTime.Format(layout)
		if sess.InProgress() {
			endDate = ui.Green(inProgressMsg)
		}

		tableBody[i] = []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", sess.ID),
			sess.StartTime.Format(layout),
			endDate,
			durationText(sess),
			qualityText(sess.Quality),
		}
	}

	tableBody = append([][]string{
		{"#", "ID", "START", "END", "DURATION", "QUALITY"},
	}, tableBody...)

	printTable(w, tableBody)
}

// listSessions prints out a table of sessions.
func listSessions(w io.Writer, sessions []*models.Session, twentyFourHour bool) {
	if len(sessions) == 0 {
		pterm.Info.Println(noSessionsMsg)
		return
	}

	printSessionsTable(w, sessions, twentyFourHour)
}

// printSessionDetail prints every field of a single session.
func printSessionDetail(w io.Writer, sess *models.Session, twentyFourHour bool) {
	layout := dateLayout(twentyFourHour)

	end := inProgressMsg
	if !sess.InProgress() {
		end = sess.EndTime.Format(layout)
	}

	printTable(w, [][]string{
		{"SESSION", fmt.Sprintf("#%d", sess.ID)},
		{"Started", sess.StartTime.Format(layout)},
		{"Ended", end},
		{"Duration", durationText(sess)},
		{"Quality", qualityText(sess.Quality)},
	})
}

// printStatus reports the session being recorded and the available actions.
func printStatus(
	w io.Writer,
	s tracker.State,
	now time.Time,
	twentyFourHour bool,
) {
	if s.Recording() {
		fmt.Fprintf(
			w,
			"%s since %s (%s)\n",
			ui.Green("Recording"),
			s.Tonight.StartTime.Format(dateLayout(twentyFourHour)),
			timeutil.FormatDuration(now.Sub(s.Tonight.StartTime)),
		)
	} else {
		fmt.Fprintln(w, ui.Cyan("Idle"))
	}

	var actions []string

	if s.StartVisible {
		actions = append(actions, "start")
	}

	if s.StopVisible {
		actions = append(actions, "stop")
	}

	if s.ClearVisible {
		actions = append(actions, "clear")
	}

	fmt.Fprintf(w, "Available actions: %s\n", strings.Join(actions, ", "))
}
