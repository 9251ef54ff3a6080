package store

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/slihbo/WinTrace/internal/models"
	"github.com/slihbo/WinTrace/internal/osutil"
)

const (
	daysBucket      = "days"
	hoursBucket     = "hours"
	overridesBucket = "overrides"
	metaBucket      = "meta"

	versionKey = "version"
)

// Bolt stores each day as a JSON value keyed by its date-key.
type Bolt struct {
	*bolt.DB
}

// OpenBolt opens or creates the database and its buckets. The file is locked
// for as long as the backend is open.
func OpenBolt(path string) (*Bolt, error) {
	db, err := openDB(path, time.Second)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{daysBucket, hoursBucket, overridesBucket, metaBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return errors.Wrapf(err, "create bucket %s", name)
			}
		}

		return checkVersion(tx.Bucket([]byte(metaBucket)))
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Bolt{db}, nil
}

// openDB creates or opens a database and locks it.
func openDB(path string, timeout time.Duration) (*bolt.DB, error) {
	var fileMode fs.FileMode = osutil.FilePermission

	if err := os.MkdirAll(filepath.Dir(path), osutil.DirPermission); err != nil {
		return nil, errors.Wrap(err, "create data directory")
	}

	db, err := bolt.Open(path, fileMode, &bolt.Options{Timeout: timeout})
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, ErrAlreadyRunning
		}

		return nil, errors.Wrapf(err, "open %s", path)
	}

	return db, nil
}

func checkVersion(meta *bolt.Bucket) error {
	raw := meta.Get([]byte(versionKey))
	if raw == nil {
		return meta.Put([]byte(versionKey), []byte(strconv.Itoa(archiveVersion)))
	}

	v, err := strconv.Atoi(string(raw))
	if err != nil {
		return errors.Wrap(err, "parse schema version")
	}

	if v > archiveVersion {
		return ErrUnsupportedVersion.Fmt(v, archiveVersion)
	}

	return nil
}

func (b *Bolt) Name() string {
	return "bolt"
}

func (b *Bolt) LoadArchive() (models.Archive, error) {
	out := models.NewArchive()

	err := b.View(func(tx *bolt.Tx) error {
		err := tx.Bucket([]byte(daysBucket)).ForEach(func(k, v []byte) error {
			var day models.DailyUsage
			if err := json.Unmarshal(v, &day); err != nil {
				return errors.Wrapf(err, "decode day %s", k)
			}

			out.Days[string(k)] = day.Clone()

			return nil
		})
		if err != nil {
			return err
		}

		return tx.Bucket([]byte(hoursBucket)).ForEach(func(k, v []byte) error {
			var hours models.HourlyUsage
			if err := json.Unmarshal(v, &hours); err != nil {
				return errors.Wrapf(err, "decode hours %s", k)
			}

			out.Hours[string(k)] = hours

			return nil
		})
	})
	if err != nil {
		return models.Archive{}, ErrRead.Fmt(b.Path()).Wrap(err)
	}

	return out, nil
}

// SaveArchive rewrites both usage buckets inside one transaction.
func (b *Bolt) SaveArchive(a models.Archive) error {
	return b.Update(func(tx *bolt.Tx) error {
		days, err := recreateBucket(tx, daysBucket)
		if err != nil {
			return err
		}

		for key, day := range a.Days {
			if err := putJSON(days, key, day.Clone()); err != nil {
				return err
			}
		}

		hours, err := recreateBucket(tx, hoursBucket)
		if err != nil {
			return err
		}

		for key, h := range a.Hours {
			if err := putJSON(hours, key, h); err != nil {
				return err
			}
		}

		return nil
	})
}

func (b *Bolt) LoadOverrides() (models.Overrides, error) {
	out := models.Overrides{}

	err := b.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(overridesBucket)).ForEach(func(k, v []byte) error {
			if c, ok := models.ParseCategory(string(v)); ok {
				out[string(k)] = c
			}

			return nil
		})
	})
	if err != nil {
		return nil, ErrRead.Fmt(b.Path()).Wrap(err)
	}

	return out, nil
}

func (b *Bolt) SaveOverrides(o models.Overrides) error {
	return b.Update(func(tx *bolt.Tx) error {
		bucket, err := recreateBucket(tx, overridesBucket)
		if err != nil {
			return err
		}

		for id, c := range o {
			if err := bucket.Put([]byte(id), []byte(c)); err != nil {
				return errors.Wrapf(err, "put override %s", id)
			}
		}

		return nil
	})
}

func recreateBucket(tx *bolt.Tx, name string) (*bolt.Bucket, error) {
	if tx.Bucket([]byte(name)) != nil {
		if err := tx.DeleteBucket([]byte(name)); err != nil {
			return nil, errors.Wrapf(err, "delete bucket %s", name)
		}
	}

	bucket, err := tx.CreateBucket([]byte(name))
	if err != nil {
		return nil, errors.Wrapf(err, "create bucket %s", name)
	}

	return bucket, nil
}

func putJSON(bucket *bolt.Bucket, key string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode %s", key)
	}

	return bucket.Put([]byte(key), value)
}
