// Package report prints the outcome of slumber actions to the terminal
package report

import (
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/slumber/internal/models"
	"github.com/ayoisaiah/slumber/internal/timeutil"
)

const timeLayout = "Jan 02, 2006 03:04 PM"

// ClearedMsg is shown once every session has been deleted.
const ClearedMsg = "All your sleep data has been cleared"

func Started(sess *models.Session) {
	pterm.Success.Printfln(
		"Sleep session #%d started at %s. Sleep well!",
		sess.ID,
		sess.StartTime.Format(timeLayout),
	)
}

func Stopped(sess *models.Session) {
	pterm.Success.Printfln(
		"Sleep session #%d stopped after %s",
		sess.ID,
		timeutil.FormatDuration(sess.Duration()),
	)
}

func Rated(sess *models.Session) {
	pterm.Success.Printfln(
		"Sleep session #%d rated: %s",
		sess.ID,
		sess.Quality,
	)
}

func Cleared() {
	pterm.Info.Println(ClearedMsg)
}

func Error(err error) {
	pterm.Error.Println(err)
}
