// Package pathutil manages application file paths and locations
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const (
	appDir = "wintrace"

	// EnvName selects an isolated set of files (config_<env>.yml,
	// usage_data_<env>.json...) so that test runs never touch real data.
	EnvName = "WINTRACE_ENV"
)

// Paths holds the absolute location of every file WinTrace reads or writes.
type Paths struct {
	env string

	ConfigFile    string
	DataDir       string
	ArchiveFile   string
	OverridesFile string
	BoltFile      string
	SQLiteFile    string
	StatusFile    string
	LockFile      string
	LogFile       string
}

// Resolve computes the default XDG locations, honouring WINTRACE_ENV.
func Resolve() (*Paths, error) {
	p := &Paths{
		env: strings.TrimSpace(os.Getenv(EnvName)),
	}

	var err error

	p.ConfigFile, err = xdg.ConfigFile(
		filepath.Join(appDir, p.name("config", ".yml")),
	)
	if err != nil {
		return nil, err
	}

	dataDir, err := xdg.DataFile(appDir)
	if err != nil {
		return nil, err
	}

	return p.WithDataDir(dataDir), nil
}

// WithDataDir relocates every data file into dir. An empty dir is a no-op.
func (p *Paths) WithDataDir(dir string) *Paths {
	if dir == "" {
		return p
	}

	p.DataDir = dir
	p.ArchiveFile = filepath.Join(dir, p.name("usage_data", ".json"))
	p.OverridesFile = filepath.Join(dir, p.name("user_categories", ".json"))
	p.BoltFile = filepath.Join(dir, p.name("wintrace", ".db"))
	p.SQLiteFile = filepath.Join(dir, p.name("wintrace", ".sqlite"))
	p.StatusFile = filepath.Join(dir, p.name("status", ".json"))
	p.LockFile = filepath.Join(dir, p.name("wintrace", ".lock"))
	p.LogFile = filepath.Join(dir, "log", p.name("wintrace", ".log"))

	return p
}

func (p *Paths) name(base, ext string) string {
	if p.env == "" {
		return base + ext
	}

	return fmt.Sprintf("%s_%s%s", base, p.env, ext)
}
