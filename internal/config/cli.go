package config

import (
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/slumber/internal/models"
	"github.com/ayoisaiah/slumber/internal/timeutil"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Driver     string
	Since      string
	At         string
	ID         int64
	Quality    int
	HasQuality bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context, now time.Time) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Driver:     ctx.String("driver"),
			Since:      ctx.String("since"),
			At:         ctx.String("at"),
			ID:         ctx.Int64("id"),
			Quality:    ctx.Int("quality"),
			HasQuality: ctx.IsSet("quality"),
		}

		return applyCLIOptions(c, opts, now)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions, now time.Time) error {
	if d := strings.TrimSpace(opts.Driver); d != "" {
		c.Storage.Driver = d
	}

	if opts.HasQuality {
		c.CLI.Quality = models.Quality(opts.Quality)
		c.CLI.HasQuality = true
	}

	c.CLI.ID = opts.ID

	var err error

	c.CLI.StartTime, err = parseTime(opts.Since, now, "start")
	if err != nil {
		return err
	}

	c.CLI.EndTime, err = parseTime(opts.At, now, "end")
	if err != nil {
		return err
	}

	return nil
}

// parseTime parses s relative to now, defaulting to now when s is empty.
func parseTime(s string, now time.Time, which string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return now, nil
	}

	t, err := timeutil.FromStr(s, now)
	if err != nil {
		return time.Time{}, errInvalidTime.Fmt(which).Wrap(err)
	}

	return t, nil
}
