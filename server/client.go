package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/slihbo/WinTrace/internal/models"
)

// Client talks to the API of a running tracker.
type Client struct {
	http *http.Client
	base string
	addr string
}

// NewClient returns a client for the API listening on addr (host:port).
func NewClient(addr string) *Client {
	return &Client{
		http: &http.Client{Timeout: 5 * time.Second},
		base: "http://" + addr + "/api",
		addr: addr,
	}
}

// Health checks that a tracker is answering. Any failure is reported as
// ErrUnavailable.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &h); err != nil {
		return nil, ErrUnavailable.Fmt(c.addr).Wrap(err)
	}

	return &h, nil
}

// Stats runs a get_stats query.
func (c *Client) Stats(
	ctx context.Context,
	mode, date, start, end string,
) (*models.PeriodStats, error) {
	q := url.Values{}

	for k, v := range map[string]string{
		"mode":  mode,
		"date":  date,
		"start": start,
		"end":   end,
	} {
		if v != "" {
			q.Set(k, v)
		}
	}

	var stats models.PeriodStats
	if err := c.do(ctx, http.MethodGet, "/stats", q, nil, &stats); err != nil {
		return nil, err
	}

	return &stats, nil
}

// YearlyRecap fetches the recap of year. An empty year is the current one.
func (c *Client) YearlyRecap(ctx context.Context, year string) (*models.YearlyRecap, error) {
	q := url.Values{}
	if year != "" {
		q.Set("year", year)
	}

	var recap models.YearlyRecap
	if err := c.do(ctx, http.MethodGet, "/recap", q, nil, &recap); err != nil {
		return nil, err
	}

	return &recap, nil
}

// SetCategory records a category override.
func (c *Client) SetCategory(ctx context.Context, id, category string) (bool, error) {
	var resp CategoryResponse

	err := c.do(ctx, http.MethodPost, "/categories", nil, CategoryRequest{
		ID:       id,
		Category: category,
	}, &resp)
	if err != nil {
		return false, err
	}

	return resp.Success, nil
}

// Overrides lists the category overrides.
func (c *Client) Overrides(ctx context.Context) (models.Overrides, error) {
	var o models.Overrides
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &o); err != nil {
		return nil, err
	}

	return o, nil
}

// StartTracking resumes sampling in the running tracker.
func (c *Client) StartTracking(ctx context.Context) (bool, error) {
	return c.tracking(ctx, "/tracking/start")
}

// StopTracking pauses sampling and flushes the live day.
func (c *Client) StopTracking(ctx context.Context) (bool, error) {
	return c.tracking(ctx, "/tracking/stop")
}

func (c *Client) tracking(ctx context.Context, path string) (bool, error) {
	var resp TrackingResponse
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &resp); err != nil {
		return false, err
	}

	return resp.Tracking, nil
}

// Snapshot fetches the live day.
func (c *Client) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	var snap models.Snapshot
	if err := c.do(ctx, http.MethodGet, "/snapshot", nil, nil, &snap); err != nil {
		return nil, err
	}

	return &snap, nil
}

func (c *Client) do(
	ctx context.Context,
	method, path string,
	query url.Values,
	body, out any,
) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}

		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}

		msg := strings.TrimSpace(string(b))
		if json.Unmarshal(b, &e) == nil && e.Error != "" {
			msg = e.Error
		}

		return ErrAPI.Fmt(resp.StatusCode, msg)
	}

	return json.Unmarshal(b, out)
}
