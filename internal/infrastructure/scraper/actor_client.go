// Package scraper wraps the hosted actor API the external job scraper runs
// on: submit a run, poll its status on a fixed interval, fetch the result
// dataset once the run succeeds.
package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"job-scout/internal/config"
)

// ScraperError covers every terminal failure of an external fetch: submit
// errors, non-success terminal run states and poll-budget exhaustion. The
// orchestrator recovers from it; it is never a user-facing error.
type ScraperError struct {
	Reason string
	Err    error
}

func (e *ScraperError) Error() string {
	if e.Err != nil {
		return "scraper: " + e.Reason + ": " + e.Err.Error()
	}
	return "scraper: " + e.Reason
}

func (e *ScraperError) Unwrap() error {
	return e.Err
}

type Client interface {
	// Run executes one actor run to completion and returns the result
	// dataset items. There is no retry at this layer.
	Run(ctx context.Context, actorID string, input map[string]any) ([]map[string]any, error)
}

const (
	statusSucceeded = "SUCCEEDED"
	statusFailed    = "FAILED"
	statusAborted   = "ABORTED"
	statusTimedOut  = "TIMED-OUT"
)

type actorHTTPClient struct {
	baseURL      string
	token        string
	pollInterval time.Duration
	maxPolls     int
	client       *http.Client
	logger       *log.Logger
}

type runData struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	DefaultDatasetID string `json:"defaultDatasetId"`
}

type runEnvelope struct {
	Data runData `json:"data"`
}

func NewActorClient(cfg config.ScraperConfig, logger *log.Logger) Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil
	}
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = 3 * time.Second
	}
	maxPolls := cfg.MaxPolls
	if maxPolls <= 0 {
		maxPolls = 60
	}
	return &actorHTTPClient{
		baseURL:      base,
		token:        strings.TrimSpace(cfg.Token),
		pollInterval: interval,
		maxPolls:     maxPolls,
		client:       &http.Client{Timeout: 30 * time.Second},
		logger:       logger,
	}
}

func (c *actorHTTPClient) Run(ctx context.Context, actorID string, input map[string]any) ([]map[string]any, error) {
	run, err := c.startRun(ctx, actorID, input)
	if err != nil {
		return nil, err
	}
	if c.logger != nil {
		c.logger.Printf("[Scraper] Run started | actor=%s run_id=%s", actorID, run.ID)
	}

	run, err = c.waitForRun(ctx, run)
	if err != nil {
		return nil, err
	}

	items, err := c.datasetItems(ctx, run.DefaultDatasetID)
	if err != nil {
		return nil, err
	}
	if c.logger != nil {
		c.logger.Printf("[Scraper] Run finished | run_id=%s items=%d", run.ID, len(items))
	}
	return items, nil
}

func (c *actorHTTPClient) startRun(ctx context.Context, actorID string, input map[string]any) (runData, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return runData{}, &ScraperError{Reason: "encode input", Err: err}
	}

	endpoint := fmt.Sprintf("%s/v2/acts/%s/runs%s", c.baseURL, url.PathEscape(actorID), c.tokenQuery())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return runData{}, &ScraperError{Reason: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	var env runEnvelope
	if err := c.do(req, &env); err != nil {
		return runData{}, err
	}
	if env.Data.ID == "" {
		return runData{}, &ScraperError{Reason: "start run: empty run id"}
	}
	return env.Data, nil
}

// waitForRun polls on a fixed interval. Exceeding the poll budget is a
// timeout; the remote run keeps going regardless, we just stop waiting.
func (c *actorHTTPClient) waitForRun(ctx context.Context, run runData) (runData, error) {
	for i := 0; i < c.maxPolls; i++ {
		select {
		case <-ctx.Done():
			return runData{}, &ScraperError{Reason: "poll cancelled", Err: ctx.Err()}
		case <-time.After(c.pollInterval):
		}

		endpoint := fmt.Sprintf("%s/v2/actor-runs/%s%s", c.baseURL, url.PathEscape(run.ID), c.tokenQuery())
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return runData{}, &ScraperError{Reason: "build poll request", Err: err}
		}

		var env runEnvelope
		if err := c.do(req, &env); err != nil {
			return runData{}, err
		}

		switch env.Data.Status {
		case statusSucceeded:
			if env.Data.DefaultDatasetID == "" {
				env.Data.DefaultDatasetID = run.DefaultDatasetID
			}
			return env.Data, nil
		case statusFailed, statusAborted, statusTimedOut:
			return runData{}, &ScraperError{Reason: "run " + strings.ToLower(env.Data.Status)}
		}
	}
	return runData{}, &ScraperError{Reason: "timed out waiting for run"}
}

func (c *actorHTTPClient) datasetItems(ctx context.Context, datasetID string) ([]map[string]any, error) {
	if datasetID == "" {
		return nil, &ScraperError{Reason: "empty dataset id"}
	}

	endpoint := fmt.Sprintf("%s/v2/datasets/%s/items%s", c.baseURL, url.PathEscape(datasetID), c.tokenQuery())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &ScraperError{Reason: "build dataset request", Err: err}
	}

	var items []map[string]any
	if err := c.do(req, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *actorHTTPClient) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return &ScraperError{Reason: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &ScraperError{Reason: fmt.Sprintf("status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(rb)))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ScraperError{Reason: "decode response", Err: err}
	}
	return nil
}

func (c *actorHTTPClient) tokenQuery() string {
	if c.token == "" {
		return ""
	}
	return "?token=" + url.QueryEscape(c.token)
}

var _ Client = (*actorHTTPClient)(nil)
