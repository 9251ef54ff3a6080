package report

import "github.com/slihbo/WinTrace/internal/apperr"

var (
	// ErrInvalidRange is returned for a custom range whose start is after
	// its end. No partial result accompanies it.
	ErrInvalidRange = &apperr.Error{
		Message: "invalid range: start %s is after end %s",
	}

	ErrUnknownMode = &apperr.Error{
		Message: "unknown view mode %q: expected daily, weekly, monthly, yearly or custom",
	}

	ErrIncompleteRange = &apperr.Error{
		Message: "a custom range needs both a start and an end date",
	}

	ErrInvalidYear = &apperr.Error{
		Message: "invalid year %q",
	}
)
