// Package stats reports sleep session statistics
package stats

import (
	"encoding/json"
	"time"

	"github.com/ayoisaiah/slumber/internal/models"
)

// Stats summarises a set of sleep sessions.
type Stats struct {
	StartTime      time.Time                `json:"start_time"`
	EndTime        time.Time                `json:"end_time"`
	QualityCounts  map[models.Quality]int   `json:"quality_counts"`
	Weekday        map[time.Weekday]float64 `json:"weekday_average_hours"`
	TotalSleep     time.Duration            `json:"total_sleep"`
	AverageSleep   time.Duration            `json:"average_sleep"`
	LongestSleep   time.Duration            `json:"longest_sleep"`
	ShortestSleep  time.Duration            `json:"shortest_sleep"`
	AverageQuality float64                  `json:"average_quality"`
	Total          int                      `json:"total"`
	Finished       int                      `json:"finished"`
	InProgress     int                      `json:"in_progress"`
	Rated          int                      `json:"rated"`
}

// Compute calculates the statistics for sessions. In-progress sessions are
// counted but excluded from duration figures.
func Compute(sessions []*models.Session, startTime, endTime time.Time) *Stats {
	s := &Stats{
		StartTime:     startTime,
		EndTime:       endTime,
		QualityCounts: make(map[models.Quality]int),
		Weekday:       make(map[time.Weekday]float64),
		Total:         len(sessions),
	}

	var qualitySum int

	weekdayTotals := make(map[time.Weekday]time.Duration)
	weekdayCounts := make(map[time.Weekday]int)

	for _, sess := range sessions {
		// For all-time, start from the earliest session
		if s.StartTime.IsZero() || sess.StartTime.Before(s.StartTime) {
			s.StartTime = sess.StartTime
		}

		if sess.InProgress() {
			s.InProgress++
			continue
		}

		s.Finished++

		d := sess.Duration()
		s.TotalSleep += d

		if d > s.LongestSleep {
			s.LongestSleep = d
		}

		if s.ShortestSleep == 0 || d < s.ShortestSleep {
			s.ShortestSleep = d
		}

		day := sess.StartTime.Weekday()
		weekdayTotals[day] += d
		weekdayCounts[day]++

		if sess.Quality.Valid() {
			s.Rated++
			qualitySum += int(sess.Quality)
			s.QualityCounts[sess.Quality]++
		}
	}

	if s.Finished > 0 {
		s.AverageSleep = s.TotalSleep / time.Duration(s.Finished)
	}

	if s.Rated > 0 {
		s.AverageQuality = float64(qualitySum) / float64(s.Rated)
	}

	for day, total := range weekdayTotals {
		s.Weekday[day] = total.Hours() / float64(weekdayCounts[day])
	}

	return s
}

// ToJSON renders the statistics as JSON.
func (s *Stats) ToJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
