package config

import "github.com/ayoisaiah/slumber/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errUnknownDriver = &apperr.Error{
		Message: "unknown storage driver: %q (must be bolt or sqlite)",
	}

	errInvalidQuality = &apperr.Error{
		Message: "sleep quality must be between 0 and 5, got %d",
	}

	errInvalidTime = &apperr.Error{
		Message: "invalid %s time",
	}

	errInvalidDateRange = &apperr.Error{
		Message: "the start time must be earlier than the end time",
	}

	errInvalidPeriod = &apperr.Error{
		Message: "please provide a valid time period: %s",
	}
)
