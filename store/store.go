// Package store owns the usage archive and the category overrides, and
// persists them through a pluggable Backend.
package store

import (
	"errors"
	"log/slog"
	"maps"
	"sync"

	"github.com/slihbo/WinTrace/internal/config"
	"github.com/slihbo/WinTrace/internal/models"
)

// Store is the in-memory owner of the archive. Reads return copies so that
// callers never observe a write in progress.
type Store struct {
	backend Backend
	logger  *slog.Logger

	archive   models.Archive
	overrides models.Overrides

	// set when the stored data is from a newer release; saves are refused
	archiveFrozen   error
	overridesFrozen error

	mu sync.RWMutex
	// saveMu serialises writes to the backend so that an older snapshot can
	// never replace a newer one.
	saveMu sync.Mutex
}

// Open creates the backend selected in cfg and loads its state. A database
// file that cannot be opened is moved aside and replaced with an empty one.
// Lock contention and files from a newer release are returned as errors.
func Open(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	backend, err := NewBackend(cfg.Storage.Backend, cfg.Paths)
	if err != nil {
		path := databaseFile(cfg.Storage.Backend, cfg.Paths)

		if path == "" ||
			errors.Is(err, ErrAlreadyRunning) ||
			errors.Is(err, ErrUnsupportedVersion) {
			return nil, err
		}

		qerr := quarantine(path, err)
		if !errors.Is(qerr, ErrCorrupt) {
			return nil, err
		}

		logger.Warn(
			"database unreadable, starting with empty history",
			slog.String("component", "store"),
			slog.String("backend", cfg.Storage.Backend),
			slog.Any("error", qerr),
		)

		backend, err = NewBackend(cfg.Storage.Backend, cfg.Paths)
		if err != nil {
			return nil, err
		}
	}

	return New(backend, logger), nil
}

// New wraps backend and loads its state. Read failures are logged and leave
// the store empty; they never prevent startup.
func New(backend Backend, logger *slog.Logger) *Store {
	s := &Store{
		backend:   backend,
		logger:    logger.With(slog.String("component", "store"), slog.String("backend", backend.Name())),
		archive:   models.NewArchive(),
		overrides: models.Overrides{},
	}

	s.load()

	return s
}

func (s *Store) load() {
	archive, err := s.backend.LoadArchive()
	if err != nil {
		s.logger.Warn(
			"archive unreadable, starting with empty history",
			slog.Any("error", err),
			slog.Bool("corrupt", errors.Is(err, ErrCorrupt)),
		)

		archive = models.NewArchive()

		if errors.Is(err, ErrUnsupportedVersion) {
			s.archiveFrozen = ErrReadOnly.Fmt("usage archive").Wrap(err)
		}
	}

	overrides, err := s.backend.LoadOverrides()
	if err != nil {
		s.logger.Warn(
			"category overrides unreadable, using defaults",
			slog.Any("error", err),
			slog.Bool("corrupt", errors.Is(err, ErrCorrupt)),
		)

		overrides = models.Overrides{}

		if errors.Is(err, ErrUnsupportedVersion) {
			s.overridesFrozen = ErrReadOnly.Fmt("category overrides").Wrap(err)
		}
	}

	s.mu.Lock()
	s.archive = archive.Clone()
	s.overrides = maps.Clone(overrides)

	if s.overrides == nil {
		s.overrides = models.Overrides{}
	}
	s.mu.Unlock()

	s.logger.Debug(
		"store loaded",
		slog.Int("days", len(archive.Days)),
		slog.Int("overrides", len(overrides)),
	)
}

// Archive returns a deep copy of the archive.
func (s *Store) Archive() models.Archive {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.archive.Clone()
}

// Day returns a copy of the stored usage for key. Both values are empty when
// the day is unknown.
func (s *Store) Day(key string) (models.DailyUsage, models.HourlyUsage) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.archive.Days[key].Clone(), s.archive.Hours[key]
}

// PutDay replaces the stored usage of one day. It does not save.
func (s *Store) PutDay(
	key string,
	usage models.DailyUsage,
	hours models.HourlyUsage,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.archive.Days[key] = usage.Clone()

	if hours.Total() > 0 {
		s.archive.Hours[key] = hours
	}
}

// Save writes the current archive to the backend. On failure the error is
// logged and returned; the in-memory archive is kept for the next attempt.
func (s *Store) Save() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if s.archiveFrozen != nil {
		err := ErrWrite.Fmt("usage archive").Wrap(s.archiveFrozen)

		s.logger.Error("archive save refused", slog.Any("error", err))

		return err
	}

	snapshot := s.Archive()

	if err := s.backend.SaveArchive(snapshot); err != nil {
		err = ErrWrite.Fmt("usage archive").Wrap(err)

		s.logger.Error("archive save failed", slog.Any("error", err))

		return err
	}

	s.logger.Debug("archive saved", slog.Int("days", len(snapshot.Days)))

	return nil
}

// Override returns the user's category for id, if any.
func (s *Store) Override(id string) (models.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.overrides[id]

	return c, ok
}

// Overrides returns a copy of every override.
func (s *Store) Overrides() models.Overrides {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.overrides)
}

// SetOverride persists the override immediately. The in-memory map only
// changes once the backend has accepted the write.
func (s *Store) SetOverride(id string, c models.Category) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if s.overridesFrozen != nil {
		err := ErrWrite.Fmt("category overrides").Wrap(s.overridesFrozen)

		s.logger.Error("override save refused", slog.String("id", id), slog.Any("error", err))

		return err
	}

	next := s.Overrides()
	next[id] = c

	if err := s.backend.SaveOverrides(next); err != nil {
		err = ErrWrite.Fmt("category overrides").Wrap(err)

		s.logger.Error("override save failed", slog.String("id", id), slog.Any("error", err))

		return err
	}

	s.mu.Lock()
	s.overrides = next
	s.mu.Unlock()

	s.logger.Info("category override saved", slog.String("id", id), slog.String("category", c.String()))

	return nil
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
