// Package testutil provides fixtures shared by WinTrace tests.
package testutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/slihbo/WinTrace/internal/models"
)

// Days is a compact literal form of an archive's day map.
type Days map[string]map[string]float64

// Archive builds an archive from days. Hourly buckets are left empty.
func Archive(days Days) models.Archive {
	a := models.NewArchive()

	for key, apps := range days {
		day := models.DailyUsage{}

		for id, secs := range apps {
			day[id] = secs
		}

		a.Days[key] = day
	}

	return a
}

// WithHours returns a copy of a with the given hourly buckets for key.
func WithHours(a models.Archive, key string, hours map[int]float64) models.Archive {
	out := a.Clone()

	var buckets models.HourlyUsage
	for h, secs := range hours {
		buckets[h] = secs
	}

	out.Hours[key] = buckets

	return out
}

// WriteFile writes content to name inside a fresh temporary directory and
// returns the full path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

// CopyFile copies src to dst.
func CopyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source file: %w", err)
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating destination file: %w", err)
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, sourceFile)
	if err != nil {
		return fmt.Errorf("copying file: %w", err)
	}

	return nil
}
