package config

import (
	"slices"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/slumber/internal/timeutil"
)

// FilterConfig represents a configuration to filter sessions
// in the database by their start time.
type FilterConfig struct {
	StartTime time.Time
	EndTime   time.Time
}

// FilterOptions holds the raw filter arguments.
type FilterOptions struct {
	Period string
	Start  string
	End    string
}

// Filter initializes and returns a configuration to filter sessions from
// command-line arguments. Without any arguments, all sessions are selected.
func Filter(ctx *cli.Context, now time.Time) (*FilterConfig, error) {
	return NewFilter(FilterOptions{
		Period: ctx.String("period"),
		Start:  ctx.String("start"),
		End:    ctx.String("end"),
	}, now)
}

// NewFilter builds a FilterConfig from opts relative to now.
func NewFilter(opts FilterOptions, now time.Time) (*FilterConfig, error) {
	filterCfg := &FilterConfig{}

	period := timeutil.Period(strings.TrimSpace(opts.Period))

	if period != "" && !slices.Contains(timeutil.PeriodCollection, period) {
		return nil, errInvalidPeriod.Fmt(periodList())
	}

	if period != "" {
		filterCfg.StartTime, filterCfg.EndTime = timeutil.PeriodRange(period, now)

		return filterCfg, nil
	}

	if opts.Start != "" {
		dateTime, err := timeutil.FromStr(opts.Start, now)
		if err != nil {
			return nil, errInvalidTime.Fmt("start").Wrap(err)
		}

		filterCfg.StartTime = dateTime
	}

	if opts.End != "" {
		dateTime, err := timeutil.FromStr(opts.End, now)
		if err != nil {
			return nil, errInvalidTime.Fmt("end").Wrap(err)
		}

		filterCfg.EndTime = dateTime
	}

	if !filterCfg.EndTime.IsZero() &&
		filterCfg.EndTime.Before(filterCfg.StartTime) {
		return nil, errInvalidDateRange
	}

	return filterCfg, nil
}

func periodList() string {
	s := make([]string, len(timeutil.PeriodCollection))

	for i, p := range timeutil.PeriodCollection {
		s[i] = string(p)
	}

	return strings.Join(s, ", ")
}
