package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/slumber/internal/models"
	"github.com/ayoisaiah/slumber/internal/timeutil"
	"github.com/ayoisaiah/slumber/internal/ui"
)

const (
	barChartChar  = "▇"
	noSessionsMsg = "No sleep sessions found for the specified time range"
)

// getSummary retrieves the session summary for the reporting period.
func (s *Stats) getSummary() string {
	header := fmt.Sprintf("%s\n", ui.Blue("Summary"))

	recorded := fmt.Sprintln(
		"Nights recorded:",
		ui.Green(s.Finished),
	)

	inProgress := ""
	if s.InProgress > 0 {
		inProgress = fmt.Sprintln("In progress:", ui.Green(s.InProgress))
	}

	total := fmt.Sprintln(
		"Total sleep:",
		ui.Green(timeutil.FormatDuration(s.TotalSleep)),
	)

	return header + recorded + inProgress + total
}

// getAverages retrieves the averages for the reporting period.
func (s *Stats) getAverages() string {
	if s.Finished == 0 {
		return ""
	}

	header := fmt.Sprintf("\n%s\n", ui.Blue("Averages"))

	avg := fmt.Sprintln(
		"Average sleep:",
		ui.Green(timeutil.FormatDuration(s.AverageSleep)),
	)

	longest := fmt.Sprintln(
		"Longest sleep:",
		ui.Green(timeutil.FormatDuration(s.LongestSleep)),
	)

	shortest := fmt.Sprintln(
		"Shortest sleep:",
		ui.Green(timeutil.FormatDuration(s.ShortestSleep)),
	)

	quality := fmt.Sprintln(
		"Average quality:",
		ui.Green("unrated"),
	)

	if s.Rated > 0 {
		rounded := models.Quality(int(math.Round(s.AverageQuality)))
		quality = fmt.Sprintln(
			"Average quality:",
			ui.Green(fmt.Sprintf("%.1f (%s)", s.AverageQuality, rounded)),
		)
	}

	return header + avg + longest + shortest + quality
}

func barChart(header string, bars pterm.Bars) string {
	if len(bars) == 0 {
		return ""
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return ui.Blue(header) + "\n" + chart
}

// getQualityChart shows how many nights were given each rating.
func (s *Stats) getQualityChart() string {
	var bars pterm.Bars

	for _, q := range models.Qualities {
		if s.QualityCounts[q] == 0 {
			continue
		}

		bars = append(bars, pterm.Bar{
			Label: q.String(),
			Value: s.QualityCounts[q],
		})
	}

	return barChart("\nQuality breakdown (nights)", bars)
}

// getWeekdayChart shows the average sleep for each day of the week.
func (s *Stats) getWeekdayChart() string {
	var bars pterm.Bars

	for day := time.Sunday; day <= time.Saturday; day++ {
		hrs, ok := s.Weekday[day]
		if !ok {
			continue
		}

		bars = append(bars, pterm.Bar{
			Label: day.String(),
			Value: timeutil.Round(hrs),
		})
	}

	return barChart("\nWeekday breakdown (average hours)", bars)
}

// Print displays the statistics for the reporting period.
func (s *Stats) Print(w io.Writer) {
	if s.Total == 0 {
		pterm.Info.Println(noSessionsMsg)
		return
	}

	end := s.EndTime
	if end.IsZero() {
		end = time.Now()
	}

	timePeriod := "Reporting period: " + s.StartTime.Format("January 02, 2006") +
		" - " + end.Format("January 02, 2006")

	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintln(timePeriod)

	output := fmt.Sprint(
		header,
		s.getSummary(),
		s.getAverages(),
		s.getQualityChart(),
		s.getWeekdayChart(),
	)

	fmt.Fprintln(w, strings.TrimSpace(output))
}
