package tracker

import "github.com/ayoisaiah/slumber/internal/apperr"

var (
	ErrSessionInProgress = &apperr.Error{
		Message: "a sleep session has been in progress since %s: stop it before starting a new one",
	}

	ErrNoSessionInProgress = &apperr.Error{
		Message: "there is no sleep session in progress",
	}

	ErrEndBeforeStart = &apperr.Error{
		Message: "a sleep session must end after it starts (started %s)",
	}

	ErrSessionOverlap = &apperr.Error{
		Message: "new sessions cannot overlap with existing ones: the last session ended %s",
	}

	ErrStartInFuture = &apperr.Error{
		Message: "a sleep session cannot start in the future",
	}

	ErrInvalidQuality = &apperr.Error{
		Message: "sleep quality must be between 0 and 5, got %d",
	}

	ErrClosed = &apperr.Error{
		Message: "the tracker has been closed",
	}
)
