package server

import "github.com/slihbo/WinTrace/internal/apperr"

var (
	// ErrUnavailable means no tracker answered at the configured address.
	ErrUnavailable = &apperr.Error{
		Message: "no running tracker at %s",
	}

	// ErrAPI carries an error reported by the server.
	ErrAPI = &apperr.Error{
		Message: "tracker responded with status %d: %s",
	}

	errListen = &apperr.Error{
		Message: "unable to serve the API on %s",
	}
)
