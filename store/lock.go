package store

import (
	"io"
	"time"
)

// AcquireLock takes the single-instance lock at path. It returns
// ErrAlreadyRunning when another tracker holds it. The lock is released by
// closing the returned value.
func AcquireLock(path string) (io.Closer, error) {
	return openDB(path, time.Second)
}
