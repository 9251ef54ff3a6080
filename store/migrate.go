package store

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/slihbo/WinTrace/internal/models"
)

const (
	// archiveVersion 1 was the unversioned {date: {identity: seconds}} map.
	// Version 2 wraps it in an envelope and adds hourly buckets.
	archiveVersion = 2

	// overridesVersion 0 was the bare {identity: category} map.
	overridesVersion = 1
)

type archiveFile struct {
	Days    map[string]models.DailyUsage  `json:"days"`
	Hours   map[string]models.HourlyUsage `json:"hours,omitempty"`
	Version int                           `json:"version"`
}

type overridesFile struct {
	Overrides models.Overrides `json:"overrides"`
	Version   int              `json:"version"`
}

// versionOf reports the envelope version of b, or 0 when b is not an
// envelope.
func versionOf(b []byte) (int, error) {
	var head map[string]json.RawMessage

	if err := json.Unmarshal(b, &head); err != nil {
		return 0, errors.Wrap(err, "decode json object")
	}

	raw, ok := head["version"]
	if !ok {
		return 0, nil
	}

	var v int
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, nil
	}

	return v, nil
}

// decodeArchive parses every archive layout this build knows about.
func decodeArchive(b []byte) (models.Archive, error) {
	version, err := versionOf(b)
	if err != nil {
		return models.Archive{}, err
	}

	out := models.NewArchive()

	switch {
	case version == 0:
		var legacy map[string]models.DailyUsage
		if err := json.Unmarshal(b, &legacy); err != nil {
			return models.Archive{}, errors.Wrap(err, "decode legacy archive")
		}

		for key, day := range legacy {
			out.Days[key] = day.Clone()
		}

		return out, nil
	case version > archiveVersion:
		return models.Archive{}, ErrUnsupportedVersion.Fmt(version, archiveVersion)
	}

	var f archiveFile
	if err := json.Unmarshal(b, &f); err != nil {
		return models.Archive{}, errors.Wrapf(err, "decode archive v%d", version)
	}

	for key, day := range f.Days {
		out.Days[key] = day.Clone()
	}

	for key, hours := range f.Hours {
		out.Hours[key] = hours
	}

	return out, nil
}

func encodeArchive(a models.Archive) ([]byte, error) {
	f := archiveFile{
		Version: archiveVersion,
		Days:    a.Days,
		Hours:   a.Hours,
	}

	if f.Days == nil {
		f.Days = map[string]models.DailyUsage{}
	}

	return json.MarshalIndent(f, "", "    ")
}

// decodeOverrides parses both the bare map and the versioned envelope.
func decodeOverrides(b []byte) (models.Overrides, error) {
	version, err := versionOf(b)
	if err != nil {
		return nil, err
	}

	if version > overridesVersion {
		return nil, ErrUnsupportedVersion.Fmt(version, overridesVersion)
	}

	out := models.Overrides{}

	if version == 0 {
		var legacy map[string]string
		if err := json.Unmarshal(b, &legacy); err != nil {
			return nil, errors.Wrap(err, "decode legacy overrides")
		}

		for id, name := range legacy {
			if c, ok := models.ParseCategory(name); ok {
				out[id] = c
			}
		}

		return out, nil
	}

	var f overridesFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, errors.Wrapf(err, "decode overrides v%d", version)
	}

	for id, c := range f.Overrides {
		if parsed, ok := models.ParseCategory(string(c)); ok {
			out[id] = parsed
		}
	}

	return out, nil
}

func encodeOverrides(o models.Overrides) ([]byte, error) {
	f := overridesFile{
		Version:   overridesVersion,
		Overrides: o,
	}

	if f.Overrides == nil {
		f.Overrides = models.Overrides{}
	}

	return json.MarshalIndent(f, "", "  ")
}
