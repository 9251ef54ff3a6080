package tracker

import (
	"bufio"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/slihbo/WinTrace/internal/apperr"
	"github.com/slihbo/WinTrace/internal/osutil"
)

var errReadStatus = &apperr.Error{
	Message: "unable to read tracker status from %s",
}

// Status is what a running tracker publishes about itself in the status
// file.
type Status struct {
	Started  time.Time `json:"started"`
	Updated  time.Time `json:"updated"`
	Day      string    `json:"day"`
	Current  string    `json:"current,omitempty"`
	PID      int       `json:"pid"`
	Tracking bool      `json:"tracking"`
}

// ReadStatus reads the status file at path. A missing file means no tracker
// has run yet and yields nil without an error.
func ReadStatus(path string) (*Status, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, errReadStatus.Fmt(path).Wrap(err)
	}

	var s Status

	if err := json.Unmarshal(b, &s); err != nil {
		return nil, errReadStatus.Fmt(path).Wrap(err)
	}

	return &s, nil
}

func writeStatus(path string, s *Status) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, osutil.FilePermission)
	if err != nil {
		return err
	}

	defer func() {
		ferr := f.Close()
		if ferr != nil && err == nil {
			err = ferr
		}
	}()

	b, err := json.Marshal(s)
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(f)

	if _, err = writer.Write(b); err != nil {
		return err
	}

	return writer.Flush()
}
