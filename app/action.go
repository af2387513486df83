package app

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/jonboulle/clockwork"
	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/slumber/internal/config"
	"github.com/ayoisaiah/slumber/internal/models"
	"github.com/ayoisaiah/slumber/internal/notify"
	"github.com/ayoisaiah/slumber/internal/osutil"
	"github.com/ayoisaiah/slumber/internal/pathutil"
	"github.com/ayoisaiah/slumber/internal/ui"
	"github.com/ayoisaiah/slumber/report"
	"github.com/ayoisaiah/slumber/stats"
	"github.com/ayoisaiah/slumber/store"
	"github.com/ayoisaiah/slumber/tracker"
	"github.com/ayoisaiah/slumber/tui"
)

const (
	envNoColor        = "NO_COLOR"
	envSlumberNoColor = "SLUMBER_NO_COLOR"
)

// clock is replaced in tests.
var clock = clockwork.NewRealClock()

// env bundles everything an action needs.
type env struct {
	cfg     *config.Config
	db      store.DB
	tracker *tracker.Tracker
}

func (e *env) Close() {
	e.tracker.Close()

	if err := e.db.Close(); err != nil {
		slog.Error("closing database failed", slog.Any("error", err))
	}
}

// setup loads the configuration and opens the store and tracker it points to.
func setup(ctx *cli.Context) (*env, error) {
	cfg, err := config.New(
		config.WithViperConfig(pathutil.ConfigFilePath()),
		config.WithCLIConfig(ctx, clock.Now()),
	)
	if err != nil {
		return nil, err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	db, err := store.Open(
		cfg.Storage.Driver,
		pathutil.DBFilePath(cfg.Storage.Driver),
	)
	if err != nil {
		return nil, err
	}

	t, err := tracker.New(ctx.Context, db, tracker.WithClock(clock))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &env{
		cfg:     cfg,
		db:      db,
		tracker: t,
	}, nil
}

// afterStop notifies the user about a stopped session and runs the
// configured session command.
func (e *env) afterStop(ctx *cli.Context, sess *models.Session) {
	if e.cfg.Notifications.Enabled {
		if err := notify.Desktop(sess); err != nil {
			slog.WarnContext(ctx.Context, "notification failed", slog.Any("error", err))
		}
	}

	err := notify.RunCommand(ctx.Context, e.cfg.Settings.Cmd, sess)
	if err != nil {
		slog.ErrorContext(ctx.Context, "session command failed", slog.Any("error", err))
		pterm.Warning.Println(err)
	}
}

func printJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(config.Stdout, string(b))

	return err
}

// startAction begins a new sleep session now or at --since.
func startAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	sess, err := e.tracker.StartTrackingAt(ctx.Context, e.cfg.CLI.StartTime)
	if err != nil {
		return err
	}

	report.Started(sess)

	return nil
}

// promptQuality asks the user to rate sess.
func promptQuality(sess *models.Session) (models.Quality, error) {
	q := int(models.QualityOK)

	err := huh.NewForm(
		huh.NewGroup(
			tui.QualitySelect(
				&q,
				fmt.Sprintf("Session #%d lasted %s", sess.ID, durationText(sess)),
			),
		),
	).Run()
	if err != nil {
		return models.QualityUnrated, err
	}

	return models.Quality(q), nil
}

// stopAction ends the session in progress and records its quality if one is
// provided or the user is prompted for it.
func stopAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	sess, err := e.tracker.StopTrackingAt(ctx.Context, e.cfg.CLI.EndTime)
	if err != nil {
		return err
	}

	e.tracker.DoneNavigating()

	report.Stopped(sess)

	quality := e.cfg.CLI.Quality

	if !e.cfg.CLI.HasQuality && e.cfg.Settings.PromptQuality &&
		osutil.IsInteractive() {
		quality, err = promptQuality(sess)
		if err != nil {
			slog.WarnContext(ctx.Context, "quality prompt dismissed", slog.Any("error", err))
		}
	}

	if quality.Valid() {
		sess, err = e.tracker.SetQuality(ctx.Context, sess.ID, quality)
		if err != nil {
			return err
		}

		report.Rated(sess)
	}

	e.afterStop(ctx, sess)

	return nil
}

// latestFinished returns the ID of the most recent finished session.
func latestFinished(s tracker.State) (int64, error) {
	for i := range s.Nights {
		if !s.Nights[i].InProgress() {
			return s.Nights[i].ID, nil
		}
	}

	return 0, errNoFinishedSession
}

// rateAction sets the quality of a session.
func rateAction(ctx *cli.Context) error {
	arg := ctx.Args().First()
	if arg == "" {
		return errMissingArg.Fmt("quality")
	}

	q, err := strconv.Atoi(arg)
	if err != nil {
		return errInvalidArg.Fmt("quality", arg)
	}

	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	id := e.cfg.CLI.ID
	if id == 0 {
		id, err = latestFinished(e.tracker.State())
		if err != nil {
			return err
		}
	}

	sess, err := e.tracker.SetQuality(ctx.Context, id, models.Quality(q))
	if err != nil {
		return err
	}

	report.Rated(sess)

	return nil
}

// showAction prints a single session.
func showAction(ctx *cli.Context) error {
	arg := ctx.Args().First()
	if arg == "" {
		return errMissingArg.Fmt("session id")
	}

	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return errInvalidArg.Fmt("session id", arg)
	}

	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	sess, err := e.tracker.SelectSession(ctx.Context, id)
	if err != nil {
		return err
	}

	e.tracker.DoneNavigatingToDetail()

	if ctx.Bool("json") {
		return printJSON(sess)
	}

	printSessionDetail(config.Stdout, sess, e.cfg.Display.TwentyFourHour)

	return nil
}

// filteredSessions returns the sessions selected by the filter flags.
func filteredSessions(ctx *cli.Context, e *env) ([]*models.Session, *config.FilterConfig, error) {
	filter, err := config.Filter(ctx, clock.Now())
	if err != nil {
		return nil, nil, err
	}

	sessions, err := e.db.GetSessions(filter.StartTime, filter.EndTime)
	if err != nil {
		return nil, nil, err
	}

	return sessions, filter, nil
}

// listAction prints a table of the sessions that started within a time
// period.
func listAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	sessions, _, err := filteredSessions(ctx, e)
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		if sessions == nil {
			sessions = []*models.Session{}
		}

		return printJSON(sessions)
	}

	listSessions(config.Stdout, sessions, e.cfg.Display.TwentyFourHour)

	return nil
}

// statusAction reports whether a session is being recorded and which actions
// are available.
func statusAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	printStatus(
		config.Stdout,
		e.tracker.State(),
		clock.Now(),
		e.cfg.Display.TwentyFourHour,
	)

	return nil
}

// statsAction computes the stats for the specified time period.
func statsAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	sessions, filter, err := filteredSessions(ctx, e)
	if err != nil {
		return err
	}

	s := stats.Compute(sessions, filter.StartTime, filter.EndTime)

	if ctx.Bool("json") {
		b, err := s.ToJSON()
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(config.Stdout, string(b))

		return err
	}

	s.Print(config.Stdout)

	return nil
}

// clearAction deletes every session after the user confirms.
func clearAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	state := e.tracker.State()
	if !state.ClearVisible {
		pterm.Info.Println(noSessionsMsg)
		return nil
	}

	if !ctx.Bool("yes") {
		sessions := make([]*models.Session, len(state.Nights))
		for i := range state.Nights {
			sessions[i] = &state.Nights[i]
		}

		printSessionsTable(config.Stdout, sessions, e.cfg.Display.TwentyFourHour)

		warning := pterm.Warning.Sprint(
			"The above sessions will be deleted permanently. Press ENTER to proceed",
		)

		fmt.Fprint(config.Stdout, warning)

		reader := bufio.NewReader(config.Stdin)

		_, err = reader.ReadString('\n')
		if err != nil {
			return errClearAborted.Wrap(err)
		}
	}

	err = e.tracker.Clear(ctx.Context)
	if err != nil {
		return err
	}

	if e.tracker.State().ShowSnackbar {
		report.Cleared()
		e.tracker.DoneShowingSnackbar()
	}

	return nil
}

// editConfigAction opens the config file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	// make sure the file exists before opening it
	_, err := config.New(config.WithViperConfig(pathutil.ConfigFilePath()))
	if err != nil {
		return err
	}

	editor, err := shellquote.Split(osutil.Editor())
	if err != nil || len(editor) == 0 {
		return errInvalidArg.Fmt("editor", osutil.Editor())
	}

	args := append(editor[1:], pathutil.ConfigFilePath())

	//nolint:gosec // the editor is chosen by the user
	cmd := exec.CommandContext(ctx.Context, editor[0], args...)

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

// defaultAction opens the interactive tracker screen.
func defaultAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	m := tui.New(ctx.Context, e.tracker, e.cfg, func(sess *models.Session) {
		e.afterStop(ctx, sess)
	})

	_, err = tea.NewProgram(m, tea.WithContext(ctx.Context)).Run()

	return err
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if SLUMBER_NO_COLOR is set
	if _, exists := os.LookupEnv(envSlumberNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	slog.DebugContext(ctx.Context, "starting slumber", slog.Any("args", ctx.Args().Slice()))

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.DebugContext(ctx.Context, "exiting slumber")

	return nil
}
