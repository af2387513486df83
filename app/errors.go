package app

import "github.com/ayoisaiah/slumber/internal/apperr"

var (
	errNoFinishedSession = &apperr.Error{
		Message: "there is no finished sleep session to rate",
	}

	errInvalidArg = &apperr.Error{
		Message: "invalid %s: %q",
	}

	errClearAborted = &apperr.Error{
		Message: "clear aborted: no confirmation received",
	}

	errMissingArg = &apperr.Error{
		Message: "missing argument: %s",
	}
)
