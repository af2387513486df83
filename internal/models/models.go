// Package models defines the records persisted by slumber
package models

import "time"

// Quality is the self-rated quality of a sleep session.
type Quality int

const (
	QualityUnrated    Quality = -1
	QualityVeryBad    Quality = 0
	QualityPoor       Quality = 1
	QualitySoSo       Quality = 2
	QualityOK         Quality = 3
	QualityPrettyGood Quality = 4
	QualityExcellent  Quality = 5
)

var qualityLabels = map[Quality]string{
	QualityVeryBad:    "Very bad",
	QualityPoor:       "Poor",
	QualitySoSo:       "So-so",
	QualityOK:         "OK",
	QualityPrettyGood: "Pretty good",
	QualityExcellent:  "Excellent",
}

// Qualities lists the valid ratings from worst to best.
var Qualities = []Quality{
	QualityVeryBad,
	QualityPoor,
	QualitySoSo,
	QualityOK,
	QualityPrettyGood,
	QualityExcellent,
}

func (q Quality) String() string {
	if label, ok := qualityLabels[q]; ok {
		return label
	}

	return "Unrated"
}

// Valid reports whether q is one of the ratings a user can choose.
func (q Quality) Valid() bool {
	return q >= QualityVeryBad && q <= QualityExcellent
}

// Session is a single night of sleep. While a session is being recorded, its
// end time is equal to its start time.
type Session struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	ID        int64     `json:"id"`
	Quality   Quality   `json:"quality"`
}

// NewSession returns an in-progress session that started at t.
func NewSession(t time.Time) *Session {
	start := t.Truncate(time.Millisecond)

	return &Session{
		StartTime: start,
		EndTime:   start,
		Quality:   QualityUnrated,
	}
}

// InProgress reports whether the session is still being recorded.
func (s *Session) InProgress() bool {
	return s.StartTime.Equal(s.EndTime)
}

// Duration returns the length of a finished session.
func (s *Session) Duration() time.Duration {
	if s.InProgress() {
		return 0
	}

	return s.EndTime.Sub(s.StartTime)
}

// Stop ends the session at t.
func (s *Session) Stop(t time.Time) {
	s.EndTime = t.Truncate(time.Millisecond)
}
