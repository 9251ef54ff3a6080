package store

import (
	"github.com/slihbo/WinTrace/internal/config"
	"github.com/slihbo/WinTrace/internal/models"
	"github.com/slihbo/WinTrace/internal/pathutil"
)

// Backend is the durable storage behind a Store. SaveArchive must be atomic:
// either the complete new archive is stored or the previous one is left
// untouched.
type Backend interface {
	// LoadArchive returns the stored archive. A backend that holds no data
	// yet returns an empty archive and no error.
	LoadArchive() (models.Archive, error)
	// SaveArchive replaces the stored archive.
	SaveArchive(a models.Archive) error
	// LoadOverrides returns the stored category overrides.
	LoadOverrides() (models.Overrides, error)
	// SaveOverrides replaces the stored category overrides.
	SaveOverrides(o models.Overrides) error
	// Name identifies the backend in logs.
	Name() string
	// Close releases the underlying file or connection.
	Close() error
}

// databaseFile returns the single file behind a database backend, or "" for
// backends that are not one file.
func databaseFile(kind string, p *pathutil.Paths) string {
	switch kind {
	case config.BackendBolt:
		return p.BoltFile
	case config.BackendSQLite:
		return p.SQLiteFile
	}

	return ""
}

// NewBackend opens the backend selected by kind using the locations in p.
func NewBackend(kind string, p *pathutil.Paths) (Backend, error) {
	switch kind {
	case config.BackendJSON, "":
		return NewJSONFile(p.ArchiveFile, p.OverridesFile), nil
	case config.BackendBolt:
		return OpenBolt(p.BoltFile)
	case config.BackendSQLite:
		return OpenSQLite(p.SQLiteFile)
	default:
		return nil, errUnknownBackend.Fmt(kind)
	}
}
