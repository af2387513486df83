package app

import "github.com/urfave/cli/v2"

var (
	sinceFlag = &cli.StringFlag{
		Name:  "since",
		Usage: "Start a session in the past (e.g. '30 mins ago'). Must not overlap the previous session",
	}

	atFlag = &cli.StringFlag{
		Name:  "at",
		Usage: "Stop the session at an earlier time (e.g. '7am')",
	}

	qualityFlag = &cli.IntFlag{
		Name:    "quality",
		Aliases: []string{"q"},
		Usage:   "Rate the session from 0 (very bad) to 5 (excellent)",
	}

	idFlag = &cli.Int64Flag{
		Name:  "id",
		Usage: "The session to rate (default: the latest finished session)",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print output as JSON",
	}

	periodFlag = &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"p"},
		Usage:   "Specify a time period: today, yesterday, 7days, 14days, 30days, 90days, 180days, 365days, all-time",
	}

	startFlag = &cli.StringFlag{
		Name:    "start",
		Aliases: []string{"s"},
		Usage:   "Only include sessions that started after this time",
	}

	endFlag = &cli.StringFlag{
		Name:    "end",
		Aliases: []string{"e"},
		Usage:   "Only include sessions that started before this time",
	}

	yesFlag = &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Skip the confirmation prompt",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	driverFlag = &cli.StringFlag{
		Name:  "driver",
		Usage: "Storage backend to use: bolt or sqlite (overrides storage.driver)",
	}
)
