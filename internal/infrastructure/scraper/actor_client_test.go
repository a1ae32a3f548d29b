package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"job-scout/internal/config"
)

func testClient(t *testing.T, srv *httptest.Server, maxPolls int) Client {
	t.Helper()
	return NewActorClient(config.ScraperConfig{
		BaseURL:      srv.URL,
		Token:        "test-token",
		PollInterval: time.Millisecond,
		MaxPolls:     maxPolls,
	}, nil)
}

func TestActorClient_Run_Success(t *testing.T) {
	var polls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/v2/acts/"):
			if r.URL.Query().Get("token") != "test-token" {
				t.Errorf("missing token on start: %s", r.URL.String())
			}
			var input map[string]any
			if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
				t.Errorf("bad input body: %v", err)
			}
			if input["keywords"] != "golang developer" {
				t.Errorf("unexpected keywords: %v", input["keywords"])
			}
			json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"id": "run-1", "status": "RUNNING"}})

		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/v2/actor-runs/run-1"):
			status := "RUNNING"
			if polls.Add(1) >= 3 {
				status = "SUCCEEDED"
			}
			json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{
				"id": "run-1", "status": status, "defaultDatasetId": "ds-1",
			}})

		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/v2/datasets/ds-1/items"):
			json.NewEncoder(w).Encode([]map[string]any{
				{"jobUrl": "https://example.com/a", "title": "Go Engineer"},
				{"jobUrl": "https://example.com/b", "title": "Backend Engineer"},
			})

		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	items, err := testClient(t, srv, 10).Run(context.Background(), "actor-x", map[string]any{"keywords": "golang developer"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0]["jobUrl"] != "https://example.com/a" {
		t.Fatalf("unexpected first item: %v", items[0])
	}
	if polls.Load() < 3 {
		t.Fatalf("expected at least 3 polls, got %d", polls.Load())
	}
}

func TestActorClient_Run_TerminalFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"id": "run-1", "status": "RUNNING"}})
		default:
			json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"id": "run-1", "status": "FAILED"}})
		}
	}))
	defer srv.Close()

	_, err := testClient(t, srv, 10).Run(context.Background(), "actor-x", nil)
	var se *ScraperError
	if !errors.As(err, &se) {
		t.Fatalf("expected ScraperError, got %v", err)
	}
	if !strings.Contains(se.Reason, "failed") {
		t.Fatalf("unexpected reason: %q", se.Reason)
	}
}

func TestActorClient_Run_PollBudgetExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"id": "run-1", "status": "RUNNING"}})
		default:
			json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"id": "run-1", "status": "RUNNING"}})
		}
	}))
	defer srv.Close()

	_, err := testClient(t, srv, 3).Run(context.Background(), "actor-x", nil)
	var se *ScraperError
	if !errors.As(err, &se) {
		t.Fatalf("expected ScraperError, got %v", err)
	}
	if !strings.Contains(se.Reason, "timed out") {
		t.Fatalf("unexpected reason: %q", se.Reason)
	}
}

func TestActorClient_Run_StartHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "actor not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testClient(t, srv, 3).Run(context.Background(), "missing", nil)
	var se *ScraperError
	if !errors.As(err, &se) {
		t.Fatalf("expected ScraperError, got %v", err)
	}
	if !strings.Contains(se.Reason, "status=404") {
		t.Fatalf("unexpected reason: %q", se.Reason)
	}
}

func TestActorClient_Run_ContextCancelledDuringPoll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"id": "run-1", "status": "RUNNING"}})
	}))
	defer srv.Close()

	c := NewActorClient(config.ScraperConfig{
		BaseURL:      srv.URL,
		PollInterval: time.Hour,
		MaxPolls:     10,
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := c.Run(ctx, "actor-x", nil)
	var se *ScraperError
	if !errors.As(err, &se) {
		t.Fatalf("expected ScraperError, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected wrapped context.Canceled, got %v", err)
	}
}

func TestNewActorClient_EmptyBaseURL(t *testing.T) {
	if c := NewActorClient(config.ScraperConfig{}, nil); c != nil {
		t.Fatal("expected nil client without a base URL")
	}
}
