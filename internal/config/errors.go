package config

import "github.com/slihbo/WinTrace/internal/apperr"

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

	errInvalidDuration = &apperr.Error{
		Message: "%s must be between %v and %v, got %v",
	}

	errTimeoutTooLong = &apperr.Error{
		Message: "sample timeout (%v) must be shorter than the tick interval (%v)",
	}

	errSaveTooFrequent = &apperr.Error{
		Message: "save interval (%v) must not be shorter than the tick interval (%v)",
	}

	errUnknownBackend = &apperr.Error{
		Message: "unknown storage backend: %q (must be json, bolt or sqlite)",
	}

	errEmptyAddr = &apperr.Error{
		Message: "server address cannot be empty",
	}

	errUnknownLogLevel = &apperr.Error{
		Message: "unknown log level: %q",
	}

	errInvalidTopApps = &apperr.Error{
		Message: "display.top_apps must be between %d and %d",
	}

	errInvalidCLIDuration = &apperr.Error{
		Message: "invalid %s duration: %v",
	}
)
