package tracker

import "github.com/ayoisaiah/slumber/internal/models"

// State is a snapshot of everything a screen needs to render the tracker.
type State struct {
	// Tonight is the session currently being recorded, if any
	Tonight *models.Session
	// NavigateToQuality carries a session that was just stopped and needs a
	// quality rating. It stays set until DoneNavigating is called
	NavigateToQuality *models.Session
	// NavigateToDetail carries the session selected by SelectSession until
	// DoneNavigatingToDetail is called
	NavigateToDetail *models.Session
	// Nights lists every recorded session, newest first
	Nights       []models.Session
	StartVisible bool
	StopVisible  bool
	ClearVisible bool
	// ShowSnackbar is raised after the sessions are cleared and stays set
	// until DoneShowingSnackbar is called
	ShowSnackbar bool
}

// Recording reports whether a session is in progress.
func (s State) Recording() bool {
	return s.Tonight != nil
}

func clone(sess *models.Session) *models.Session {
	if sess == nil {
		return nil
	}

	c := *sess

	return &c
}
