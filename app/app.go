// Package app wires the slumber command-line interface
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/slumber/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the slumber app instance.
func Get() *cli.App {
	return &cli.App{
		Name: "slumber",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		Slumber is a cross-platform sleep tracker for the command-line. Record
		when you go to bed and when you wake up, rate how well you slept and
		review your sleep over time.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "start",
				Usage:  "Start recording a sleep session",
				Flags:  []cli.Flag{sinceFlag},
				Action: startAction,
			},
			{
				Name:   "stop",
				Usage:  "Stop the sleep session in progress",
				Flags:  []cli.Flag{atFlag, qualityFlag},
				Action: stopAction,
			},
			{
				Name:      "rate",
				Usage:     "Rate the quality of a sleep session from 0 (very bad) to 5 (excellent)",
				ArgsUsage: "<quality>",
				Flags:     []cli.Flag{idFlag},
				Action:    rateAction,
			},
			{
				Name:      "show",
				Usage:     "Show the details of a sleep session",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{jsonFlag},
				Action:    showAction,
			},
			{
				Name:  "list",
				Usage: "List recorded sleep sessions",
				Flags: []cli.Flag{
					periodFlag,
					startFlag,
					endFlag,
					jsonFlag,
				},
				Action: listAction,
			},
			{
				Name:   "status",
				Usage:  "Print the status of the tracker",
				Action: statusAction,
			},
			{
				Name:  "stats",
				Usage: "Summarise your sleep over a reporting period",
				Flags: []cli.Flag{
					periodFlag,
					startFlag,
					endFlag,
					jsonFlag,
				},
				Action: statsAction,
			},
			{
				Name:   "clear",
				Usage:  "Permanently delete all recorded sleep sessions",
				Flags:  []cli.Flag{yesFlag},
				Action: clearAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			noColorFlag,
			driverFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}
}
