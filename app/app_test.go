package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/slumber/internal/config"
	"github.com/ayoisaiah/slumber/internal/models"
	"github.com/ayoisaiah/slumber/internal/pathutil"
	"github.com/ayoisaiah/slumber/internal/testutil"
	"github.com/ayoisaiah/slumber/stats"
	"github.com/ayoisaiah/slumber/tracker"
)

var bedtime = time.Date(2024, 3, 1, 22, 30, 0, 0, time.UTC)

const testConfig = `storage:
  driver: bolt
display:
  dark_theme: true
  24hr_clock: false
notifications:
  enabled: false
settings:
  cmd: ""
  prompt_quality: false
`

func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "slumber-app")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	os.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	os.Setenv("XDG_DATA_HOME", filepath.Join(tmp, "data"))

	xdg.Reload()

	err = pathutil.Initialize()
	if err == nil {
		err = os.WriteFile(pathutil.ConfigFilePath(), []byte(testConfig), 0o600)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	disableStyling()

	code := m.Run()

	_ = os.RemoveAll(tmp)

	os.Exit(code)
}

// reset removes all recorded data and installs a fake clock.
func reset(t *testing.T) *clockwork.FakeClock {
	t.Helper()

	for _, driver := range []string{config.DriverBolt, config.DriverSQLite} {
		err := os.Remove(pathutil.DBFilePath(driver))
		if err != nil && !os.IsNotExist(err) {
			require.NoError(t, err)
		}
	}

	fake := clockwork.NewFakeClockAt(bedtime)
	clock = fake

	t.Cleanup(func() {
		clock = clockwork.NewRealClock()
	})

	return fake
}

// run executes the app with args and returns what it wrote to stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	oldStdout, oldStdin := config.Stdout, config.Stdin
	config.Stdout = &out
	config.Stdin = strings.NewReader(stdin)

	t.Cleanup(func() {
		config.Stdout, config.Stdin = oldStdout, oldStdin
	})

	err := Get().Run(append([]string{"slumber"}, args...))

	return out.String(), err
}

// sleep records a finished session of the given length.
func sleep(t *testing.T, fake *clockwork.FakeClock, d time.Duration, args ...string) {
	t.Helper()

	_, err := run(t, "", "start")
	require.NoError(t, err)

	fake.Advance(d)

	_, err = run(t, "", append([]string{"stop"}, args...)...)
	require.NoError(t, err)
}

// listJSON lists every session. globalArgs are placed before the command.
func listJSON(t *testing.T, globalArgs ...string) []models.Session {
	t.Helper()

	out, err := run(t, "", append(globalArgs, "list", "--json")...)
	require.NoError(t, err)

	var sessions []models.Session

	require.NoError(t, json.Unmarshal([]byte(out), &sessions))

	return sessions
}

func TestStartStop(t *testing.T) {
	fake := reset(t)

	sleep(t, fake, 8*time.Hour, "--quality", "4")

	sessions := listJSON(t)
	require.Len(t, sessions, 1)

	sess := sessions[0]
	assert.Equal(t, int64(1), sess.ID)
	assert.True(t, sess.StartTime.Equal(bedtime))
	assert.Equal(t, 8*time.Hour, sess.Duration())
	assert.Equal(t, models.QualityPrettyGood, sess.Quality)
}

func TestStartTwice(t *testing.T) {
	reset(t)

	_, err := run(t, "", "start")
	require.NoError(t, err)

	_, err = run(t, "", "start")
	require.ErrorIs(t, err, tracker.ErrSessionInProgress)

	assert.Len(t, listJSON(t), 1)
}

func TestStopWithoutSession(t *testing.T) {
	reset(t)

	_, err := run(t, "", "stop")
	assert.ErrorIs(t, err, tracker.ErrNoSessionInProgress)
}

func TestStopInvalidQuality(t *testing.T) {
	reset(t)

	_, err := run(t, "", "start")
	require.NoError(t, err)

	_, err = run(t, "", "stop", "--quality", "9")
	require.Error(t, err)

	// the session is still in progress
	sessions := listJSON(t)
	require.Len(t, sessions, 1)
	assert.True(t, sessions[0].InProgress())
}

func TestRate(t *testing.T) {
	fake := reset(t)

	_, err := run(t, "", "rate", "3")
	require.ErrorIs(t, err, errNoFinishedSession)

	sleep(t, fake, 7*time.Hour)

	sessions := listJSON(t)
	require.Len(t, sessions, 1)
	assert.Equal(t, models.QualityUnrated, sessions[0].Quality)

	_, err = run(t, "", "rate", "3")
	require.NoError(t, err)

	assert.Equal(t, models.QualityOK, listJSON(t)[0].Quality)

	_, err = run(t, "", "rate", "--id", "1", "0")
	require.NoError(t, err)

	assert.Equal(t, models.QualityVeryBad, listJSON(t)[0].Quality)

	_, err = run(t, "", "rate", "6")
	require.ErrorIs(t, err, tracker.ErrInvalidQuality)

	_, err = run(t, "", "rate", "good")
	require.ErrorIs(t, err, errInvalidArg)

	_, err = run(t, "", "rate")
	require.ErrorIs(t, err, errMissingArg)
}

func TestShow(t *testing.T) {
	fake := reset(t)

	sleep(t, fake, 6*time.Hour, "--quality", "5")

	out, err := run(t, "", "show", "--json", "1")
	require.NoError(t, err)

	var sess models.Session

	require.NoError(t, json.Unmarshal([]byte(out), &sess))
	assert.Equal(t, models.QualityExcellent, sess.Quality)

	out, err = run(t, "", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "6h 00m")
	assert.Contains(t, out, "Excellent")

	_, err = run(t, "", "show", "42")
	assert.Error(t, err)
}

func TestListJSON(t *testing.T) {
	fake := reset(t)

	sleep(t, fake, 8*time.Hour, "--quality", "4")

	fake.Advance(15*time.Hour + 30*time.Minute)

	_, err := run(t, "", "start")
	require.NoError(t, err)

	out, err := run(t, "", "list", "--json")
	require.NoError(t, err)

	testutil.CompareGoldenFile(t, testutil.Golden{
		Name:     "list_json",
		Snapshot: []byte(out),
	})
}

func TestListTable(t *testing.T) {
	fake := reset(t)

	sleep(t, fake, 8*time.Hour, "--quality", "1")

	out, err := run(t, "", "list")
	require.NoError(t, err)

	assert.Contains(t, out, "DURATION")
	assert.Contains(t, out, "8h 00m")
	assert.Contains(t, out, "Poor")
}

func TestStatus(t *testing.T) {
	fake := reset(t)

	out, err := run(t, "", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Idle")
	assert.Contains(t, out, "Available actions: start\n")

	_, err = run(t, "", "start")
	require.NoError(t, err)

	fake.Advance(90 * time.Minute)

	out, err = run(t, "", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Recording since Mar 01, 2024 10:30 PM (1h 30m)")
	assert.Contains(t, out, "Available actions: stop, clear\n")
}

func TestStatsJSON(t *testing.T) {
	fake := reset(t)

	sleep(t, fake, 8*time.Hour, "--quality", "4")

	fake.Advance(16 * time.Hour)

	sleep(t, fake, 6*time.Hour, "--quality", "2")

	out, err := run(t, "", "stats", "--json")
	require.NoError(t, err)

	var s stats.Stats

	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 2, s.Rated)
	assert.Equal(t, 7*time.Hour, s.AverageSleep)
	assert.InDelta(t, 3.0, s.AverageQuality, 0.001)
}

func TestClear(t *testing.T) {
	fake := reset(t)

	sleep(t, fake, 8*time.Hour)

	out, err := run(t, "\n", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted permanently")

	assert.Empty(t, listJSON(t))

	// IDs are not reused
	sleep(t, fake, time.Hour)

	sessions := listJSON(t)
	require.Len(t, sessions, 1)
	assert.Equal(t, int64(2), sessions[0].ID)

	_, err = run(t, "", "clear", "--yes")
	require.NoError(t, err)

	assert.Empty(t, listJSON(t))
}

func TestClearNeedsConfirmation(t *testing.T) {
	fake := reset(t)

	sleep(t, fake, 8*time.Hour)

	_, err := run(t, "", "clear")
	require.ErrorIs(t, err, errClearAborted)

	assert.Len(t, listJSON(t), 1)
}

func TestSQLiteDriver(t *testing.T) {
	fake := reset(t)

	_, err := run(t, "", "--driver", "sqlite", "start")
	require.NoError(t, err)

	fake.Advance(5 * time.Hour)

	_, err = run(t, "", "--driver", "sqlite", "stop", "--quality", "2")
	require.NoError(t, err)

	sessions := listJSON(t, "--driver", "sqlite")
	require.Len(t, sessions, 1)
	assert.Equal(t, 5*time.Hour, sessions[0].Duration())

	// the bolt store is untouched
	assert.Empty(t, listJSON(t))

	_, err = run(t, "", "--driver", "mysql", "status")
	assert.Error(t, err)
}
