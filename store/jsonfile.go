package store

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/slihbo/WinTrace/internal/models"
	"github.com/slihbo/WinTrace/internal/osutil"
)

const corruptSuffix = ".corrupt"

// JSONFile stores the archive and the overrides as two indented JSON files.
type JSONFile struct {
	archivePath   string
	overridesPath string
}

// NewJSONFile returns a backend writing to the given files. Nothing is
// touched on disk until the first save.
func NewJSONFile(archivePath, overridesPath string) *JSONFile {
	return &JSONFile{
		archivePath:   archivePath,
		overridesPath: overridesPath,
	}
}

func (j *JSONFile) Name() string {
	return "json"
}

func (j *JSONFile) LoadArchive() (models.Archive, error) {
	b, err := readIfExists(j.archivePath)
	if err != nil {
		return models.Archive{}, ErrRead.Fmt(j.archivePath).Wrap(err)
	}

	if len(bytes.TrimSpace(b)) == 0 {
		return models.NewArchive(), nil
	}

	a, err := decodeArchive(b)
	if err != nil {
		return models.Archive{}, unreadable(j.archivePath, err)
	}

	return a, nil
}

func (j *JSONFile) SaveArchive(a models.Archive) error {
	b, err := encodeArchive(a)
	if err != nil {
		return errors.Wrap(err, "encode archive")
	}

	return writeAtomic(j.archivePath, b)
}

func (j *JSONFile) LoadOverrides() (models.Overrides, error) {
	b, err := readIfExists(j.overridesPath)
	if err != nil {
		return nil, ErrRead.Fmt(j.overridesPath).Wrap(err)
	}

	if len(bytes.TrimSpace(b)) == 0 {
		return models.Overrides{}, nil
	}

	o, err := decodeOverrides(b)
	if err != nil {
		return nil, unreadable(j.overridesPath, err)
	}

	return o, nil
}

func (j *JSONFile) SaveOverrides(o models.Overrides) error {
	b, err := encodeOverrides(o)
	if err != nil {
		return errors.Wrap(err, "encode overrides")
	}

	return writeAtomic(j.overridesPath, b)
}

func (j *JSONFile) Close() error {
	return nil
}

// readIfExists returns nil content for a missing file.
func readIfExists(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	return b, err
}

// unreadable classifies a decode failure. A file from a newer release is
// left in place; anything else is quarantined.
func unreadable(path string, cause error) error {
	if errors.Is(cause, ErrUnsupportedVersion) {
		return ErrRead.Fmt(path).Wrap(cause)
	}

	return quarantine(path, cause)
}

// quarantine moves an unreadable file aside so that the next save does not
// destroy what may still be recovered by hand.
func quarantine(path string, cause error) error {
	dst := path + corruptSuffix

	if err := os.Rename(path, dst); err != nil {
		return ErrRead.Fmt(path).Wrap(cause)
	}

	return ErrCorrupt.Fmt(path, dst).Wrap(cause)
}

// writeAtomic writes b to a temporary file in the destination directory and
// renames it over path, so readers see either the old or the new content.
func writeAtomic(path string, b []byte) error {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, osutil.DirPermission); err != nil {
		return errors.Wrapf(err, "create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}

	tmpName := tmp.Name()

	cleanup := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)

		return err
	}

	if _, err := tmp.Write(b); err != nil {
		return cleanup(errors.Wrap(err, "write temp file"))
	}

	if err := tmp.Sync(); err != nil {
		return cleanup(errors.Wrap(err, "sync temp file"))
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrap(err, "close temp file")
	}

	if err := os.Chmod(tmpName, osutil.FilePermission); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrap(err, "chmod temp file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, "replace %s", path)
	}

	return nil
}
