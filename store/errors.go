package store

import "github.com/slihbo/WinTrace/internal/apperr"

var (
	// ErrRead is a PersistenceReadFailure: the archive or override file
	// could not be read. Callers continue with empty state.
	ErrRead = &apperr.Error{
		Message: "unable to read %s",
	}

	// ErrCorrupt is the parse variant of ErrRead.
	ErrCorrupt = &apperr.Error{
		Message: "%s is corrupt and was moved to %s",
	}

	// ErrWrite is a PersistenceWriteFailure. In-memory state is retained and
	// the next save retries.
	ErrWrite = &apperr.Error{
		Message: "unable to save %s",
	}

	// ErrUnsupportedVersion is returned for files written by a newer release.
	ErrUnsupportedVersion = &apperr.Error{
		Message: "unsupported format version %d (this build understands up to %d)",
	}

	// ErrAlreadyRunning means another process holds the data lock.
	ErrAlreadyRunning = &apperr.Error{
		Message: "is WinTrace already running? Only one tracker can be active at a time",
	}

	// ErrReadOnly is returned by saves after the stored data turned out to
	// be from a newer release. The file is never overwritten.
	ErrReadOnly = &apperr.Error{
		Message: "%s was written by a newer release and is left untouched",
	}

	errUnknownBackend = &apperr.Error{
		Message: "unknown storage backend: %s",
	}
)
