package config

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && verrs[0].Field() == "Driver" {
			return errUnknownDriver.Fmt(c.Storage.Driver)
		}

		return err
	}

	if c.CLI.HasQuality && !c.CLI.Quality.Valid() {
		return errInvalidQuality.Fmt(int(c.CLI.Quality))
	}

	return nil
}
