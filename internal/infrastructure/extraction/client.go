// Package extraction wraps the hosted text model used to turn pasted job
// postings into structured records. The model is an opaque collaborator: it
// may fail or answer with JSON buried in prose, so every response goes
// through best-effort JSON extraction before decoding.
package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"job-scout/internal/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// Posting is the normalized shape extracted from free-form posting text.
type Posting struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Salary      string   `json:"salary"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
}

type Client struct {
	model  llms.Model
	logger *log.Logger
}

const postingPrompt = `Extract the job posting below into JSON with exactly these keys:
title, company, location, salary, description, skills (array of strings).
Use null or "" for anything that is not stated. Respond with JSON only.

POSTING:
%s`

const termPrompt = `Rewrite the job search query below into a single canonical job title
suitable as a search keyword. Respond with JSON only: {"term": "..."}.

QUERY: %s`

// New returns nil without error when no API key is configured; callers treat
// a nil client as "extraction disabled".
func New(cfg config.ExtractionConfig, logger *log.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		return nil, nil
	}

	model, err := googleai.New(context.Background(),
		googleai.WithAPIKey(cfg.GeminiAPIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("init extraction model: %w", err)
	}
	return &Client{model: model, logger: logger}, nil
}

func (c *Client) ExtractPosting(ctx context.Context, text string) (Posting, error) {
	if c == nil || c.model == nil {
		return Posting{}, fmt.Errorf("extraction disabled")
	}
	if len(text) > 20000 {
		text = text[:20000]
	}

	resp, err := llms.GenerateFromSinglePrompt(ctx, c.model, fmt.Sprintf(postingPrompt, text))
	if err != nil {
		return Posting{}, fmt.Errorf("extraction call: %w", err)
	}

	raw, err := ExtractJSON(resp)
	if err != nil {
		return Posting{}, err
	}

	var p Posting
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Posting{}, fmt.Errorf("decode extraction response: %w", err)
	}
	return p, nil
}

// NormalizeTerm rewrites a free-text query into a canonical search keyword.
// Exposed as a standalone endpoint only; the search path keys on the raw
// lowercased term so cached results stay addressable by what users typed.
func (c *Client) NormalizeTerm(ctx context.Context, query string) (string, error) {
	if c == nil || c.model == nil {
		return "", fmt.Errorf("extraction disabled")
	}

	resp, err := llms.GenerateFromSinglePrompt(ctx, c.model, fmt.Sprintf(termPrompt, query))
	if err != nil {
		return "", fmt.Errorf("normalize call: %w", err)
	}

	raw, err := ExtractJSON(resp)
	if err != nil {
		return "", err
	}

	var out struct {
		Term string `json:"term"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return "", fmt.Errorf("decode normalize response: %w", err)
	}
	if strings.TrimSpace(out.Term) == "" {
		return "", fmt.Errorf("empty normalized term")
	}
	return strings.TrimSpace(out.Term), nil
}
