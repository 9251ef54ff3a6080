package app

import (
	"context"
	"errors"
	"time"

	"github.com/slihbo/WinTrace/internal/config"
	"github.com/slihbo/WinTrace/internal/logging"
	"github.com/slihbo/WinTrace/internal/models"
	"github.com/slihbo/WinTrace/report"
	"github.com/slihbo/WinTrace/sampler"
	"github.com/slihbo/WinTrace/server"
	"github.com/slihbo/WinTrace/store"
	"github.com/slihbo/WinTrace/tracker"
)

// source answers the query commands, either through a running tracker or
// straight from the data files.
type source interface {
	Stats(ctx context.Context, mode, date, start, end string) (*models.PeriodStats, error)
	YearlyRecap(ctx context.Context, year string) (*models.YearlyRecap, error)
	SetCategory(ctx context.Context, id, category string) (bool, error)
	Overrides(ctx context.Context) (models.Overrides, error)
	Close() error
}

type remote struct {
	*server.Client
}

func (remote) Close() error {
	return nil
}

// local serves queries from a tracker that never starts sampling.
type local struct {
	tracker *tracker.Tracker
	store   *store.Store
}

func (l *local) Stats(_ context.Context, mode, date, start, end string) (*models.PeriodStats, error) {
	q, err := report.ParseQuery(mode, date, start, end, time.Now())
	if err != nil {
		return nil, err
	}

	return l.tracker.Stats(q)
}

func (l *local) YearlyRecap(_ context.Context, year string) (*models.YearlyRecap, error) {
	y, err := report.ParseYear(year, time.Now())
	if err != nil {
		return nil, err
	}

	return l.tracker.YearlyRecap(y), nil
}

func (l *local) SetCategory(_ context.Context, id, category string) (bool, error) {
	return l.tracker.SetCategory(id, category)
}

func (l *local) Overrides(context.Context) (models.Overrides, error) {
	return l.tracker.Overrides(), nil
}

func (l *local) Close() error {
	return l.store.Close()
}

// openSource prefers the running tracker so that the live day is included
// and overrides reach the process that classifies. Without one, the data
// files are read directly.
func openSource(ctx context.Context, cfg *config.Config) (source, error) {
	if !cfg.CLI.Local {
		c := server.NewClient(cfg.Server.Addr)

		_, err := c.Health(ctx)
		if err == nil {
			return remote{c}, nil
		}

		if !errors.Is(err, server.ErrUnavailable) {
			return nil, err
		}
	}

	st, err := store.Open(cfg, logging.Discard())
	if err != nil {
		return nil, err
	}

	idle := sampler.Func(func(context.Context) (string, error) {
		return "", sampler.ErrNoForeground
	})

	return &local{
		tracker: tracker.New(cfg, idle, st, logging.Discard()),
		store:   st,
	}, nil
}
