package store

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/slihbo/WinTrace/internal/models"
	"github.com/slihbo/WinTrace/internal/osutil"
)

const batchSize = 500

type trackedDay struct {
	Date string `gorm:"primaryKey;size:10"`
}

func (trackedDay) TableName() string { return "tracked_days" }

type usageEntry struct {
	Date     string  `gorm:"primaryKey;size:10"`
	Identity string  `gorm:"primaryKey"`
	Seconds  float64 `gorm:"not null"`
}

func (usageEntry) TableName() string { return "usage_entries" }

type hourlyEntry struct {
	Date    string  `gorm:"primaryKey;size:10"`
	Hour    int     `gorm:"primaryKey;autoIncrement:false"`
	Seconds float64 `gorm:"not null"`
}

func (hourlyEntry) TableName() string { return "hourly_entries" }

type categoryOverride struct {
	Identity string `gorm:"primaryKey"`
	Category string `gorm:"not null"`
}

func (categoryOverride) TableName() string { return "category_overrides" }

type schemaMeta struct {
	Name  string `gorm:"primaryKey"`
	Value string
}

func (schemaMeta) TableName() string { return "schema_meta" }

// SQLite stores the archive as rows through gorm.
type SQLite struct {
	db   *gorm.DB
	path string
}

// OpenSQLite opens or creates the database and migrates its schema.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), osutil.DirPermission); err != nil {
		return nil, errors.Wrap(err, "create data directory")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}

	s := &SQLite{db: db, path: path}

	err = db.AutoMigrate(
		&trackedDay{},
		&usageEntry{},
		&hourlyEntry{},
		&categoryOverride{},
		&schemaMeta{},
	)
	if err != nil {
		_ = s.Close()
		return nil, errors.Wrap(err, "migrate schema")
	}

	if err := s.checkVersion(); err != nil {
		_ = s.Close()
		return nil, err
	}

	return s, nil
}

func (s *SQLite) checkVersion() error {
	var meta schemaMeta

	err := s.db.Where("name = ?", versionKey).Limit(1).Find(&meta).Error
	if err != nil {
		return errors.Wrap(err, "read schema version")
	}

	if meta.Name == "" {
		return s.db.Create(&schemaMeta{
			Name:  versionKey,
			Value: strconv.Itoa(archiveVersion),
		}).Error
	}

	v, err := strconv.Atoi(meta.Value)
	if err != nil {
		return errors.Wrap(err, "parse schema version")
	}

	if v > archiveVersion {
		return ErrUnsupportedVersion.Fmt(v, archiveVersion)
	}

	return nil
}

func (s *SQLite) Name() string {
	return "sqlite"
}

func (s *SQLite) LoadArchive() (models.Archive, error) {
	out := models.NewArchive()

	var days []trackedDay
	if err := s.db.Find(&days).Error; err != nil {
		return models.Archive{}, ErrRead.Fmt(s.path).Wrap(errors.Wrap(err, "query days"))
	}

	for _, d := range days {
		out.Days[d.Date] = models.DailyUsage{}
	}

	var entries []usageEntry
	if err := s.db.Find(&entries).Error; err != nil {
		return models.Archive{}, ErrRead.Fmt(s.path).Wrap(errors.Wrap(err, "query usage"))
	}

	for _, e := range entries {
		day, ok := out.Days[e.Date]
		if !ok {
			day = models.DailyUsage{}
			out.Days[e.Date] = day
		}

		day[e.Identity] = e.Seconds
	}

	var hours []hourlyEntry
	if err := s.db.Find(&hours).Error; err != nil {
		return models.Archive{}, ErrRead.Fmt(s.path).Wrap(errors.Wrap(err, "query hours"))
	}

	for _, h := range hours {
		if h.Hour < 0 || h.Hour >= models.HoursInADay {
			continue
		}

		buckets := out.Hours[h.Date]
		buckets[h.Hour] = h.Seconds
		out.Hours[h.Date] = buckets
	}

	return out, nil
}

// SaveArchive replaces every usage row inside one transaction.
func (s *SQLite) SaveArchive(a models.Archive) error {
	days := make([]trackedDay, 0, len(a.Days))
	entries := make([]usageEntry, 0, len(a.Days))
	hours := make([]hourlyEntry, 0, len(a.Hours))

	for date, day := range a.Days {
		days = append(days, trackedDay{Date: date})

		for id, secs := range day {
			entries = append(entries, usageEntry{Date: date, Identity: id, Seconds: secs})
		}
	}

	for date, buckets := range a.Hours {
		for hour, secs := range buckets {
			if secs == 0 {
				continue
			}

			hours = append(hours, hourlyEntry{Date: date, Hour: hour, Seconds: secs})
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&trackedDay{}, &usageEntry{}, &hourlyEntry{}} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return errors.Wrap(err, "clear usage tables")
			}
		}

		if len(days) > 0 {
			if err := tx.CreateInBatches(days, batchSize).Error; err != nil {
				return errors.Wrap(err, "insert days")
			}
		}

		if len(entries) > 0 {
			if err := tx.CreateInBatches(entries, batchSize).Error; err != nil {
				return errors.Wrap(err, "insert usage")
			}
		}

		if len(hours) > 0 {
			if err := tx.CreateInBatches(hours, batchSize).Error; err != nil {
				return errors.Wrap(err, "insert hours")
			}
		}

		return nil
	})
}

func (s *SQLite) LoadOverrides() (models.Overrides, error) {
	var rows []categoryOverride
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, ErrRead.Fmt(s.path).Wrap(errors.Wrap(err, "query overrides"))
	}

	out := make(models.Overrides, len(rows))

	for _, r := range rows {
		if c, ok := models.ParseCategory(r.Category); ok {
			out[r.Identity] = c
		}
	}

	return out, nil
}

func (s *SQLite) SaveOverrides(o models.Overrides) error {
	rows := make([]categoryOverride, 0, len(o))

	for id, c := range o {
		rows = append(rows, categoryOverride{Identity: id, Category: string(c)})
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&categoryOverride{}).Error; err != nil {
			return errors.Wrap(err, "clear overrides")
		}

		if len(rows) == 0 {
			return nil
		}

		return errors.Wrap(tx.Create(&rows).Error, "insert overrides")
	})
}

func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
