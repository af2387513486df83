// Package notify runs the side effects configured for the end of a sleep
// session: a desktop notification and a user-defined command
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"

	"github.com/gen2brain/beeep"
	"github.com/kballard/go-shellquote"

	"github.com/ayoisaiah/slumber/internal/models"
	"github.com/ayoisaiah/slumber/internal/timeutil"
)

const appName = "slumber"

// Environment variables passed to the session command.
const (
	EnvSessionID       = "SLUMBER_SESSION_ID"
	EnvSessionStart    = "SLUMBER_SESSION_START"
	EnvSessionEnd      = "SLUMBER_SESSION_END"
	EnvSessionDuration = "SLUMBER_SESSION_DURATION"
)

// notifyFunc is replaced in tests.
var notifyFunc = func(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Desktop shows a system notification for a stopped session.
func Desktop(sess *models.Session) error {
	msg := fmt.Sprintf(
		"You slept for %s",
		timeutil.FormatDuration(sess.Duration()),
	)

	err := notifyFunc(appName, msg)
	if err != nil {
		return fmt.Errorf("desktop notification failed: %w", err)
	}

	return nil
}

// Command builds the configured session command. Details of the session are
// exposed to it through environment variables. A nil command is returned if
// sessionCmd is empty.
func Command(
	ctx context.Context,
	sessionCmd string,
	sess *models.Session,
) (*exec.Cmd, error) {
	if sessionCmd == "" {
		return nil, nil
	}

	cmdSlice, err := shellquote.Split(sessionCmd)
	if err != nil {
		return nil, fmt.Errorf("unable to parse session cmd option: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil, nil
	}

	//nolint:gosec // the command comes from the user's own config file
	cmd := exec.CommandContext(ctx, cmdSlice[0], cmdSlice[1:]...)

	cmd.Env = append(
		cmd.Environ(),
		EnvSessionID+"="+strconv.FormatInt(sess.ID, 10),
		EnvSessionStart+"="+sess.StartTime.Format("2006-01-02T15:04:05Z07:00"),
		EnvSessionEnd+"="+sess.EndTime.Format("2006-01-02T15:04:05Z07:00"),
		EnvSessionDuration+"="+strconv.Itoa(int(sess.Duration().Seconds())),
	)

	return cmd, nil
}

// RunCommand executes the configured session command and waits for it to
// finish.
func RunCommand(
	ctx context.Context,
	sessionCmd string,
	sess *models.Session,
) error {
	cmd, err := Command(ctx, sessionCmd, sess)
	if err != nil || cmd == nil {
		return err
	}

	slog.InfoContext(ctx, "running session command", slog.String("cmd", sessionCmd))

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("session command failed: %w: %s", err, out)
	}

	return nil
}
