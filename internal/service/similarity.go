package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pictocode/internal/config"
)

// SimilarityPair is one (word, description) comparison to score.
type SimilarityPair struct {
	Word        string `json:"word"`
	Description string `json:"description"`
}

// SimilarityOracle batch-scores comparison pairs. Scores come back
// positionally aligned with the request, which the guess resolver
// relies on to reassociate them with candidates.
type SimilarityOracle interface {
	CompareBatch(ctx context.Context, pairs []SimilarityPair) ([]float64, error)
}

// SimilarityClient talks to the external semantic similarity service.
type SimilarityClient struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewSimilarityClient creates a client with the configured timeout.
// The timeout is the oracle failure bound for a whole batch call and
// is independent of the reveal pacing delays.
func NewSimilarityClient(cfg *config.Config) *SimilarityClient {
	return &SimilarityClient{
		baseURL: cfg.SimilarityURL,
		model:   cfg.SimilarityModel,
		client:  &http.Client{Timeout: cfg.SimilarityTimeout},
	}
}

// CompareBatch scores all pairs in one round trip. The response must
// align positionally with the request; a length mismatch is an
// oracle failure like any other.
func (c *SimilarityClient) CompareBatch(ctx context.Context, pairs []SimilarityPair) ([]float64, error) {
	reqBody := struct {
		Pairs []SimilarityPair `json:"pairs"`
		Model string           `json:"model"`
	}{Pairs: pairs, Model: c.model}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/compare-batch", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("similarity service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("similarity service returned %d", resp.StatusCode)
	}

	var batchResp struct {
		Results []struct {
			Similarity float64 `json:"similarity"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&batchResp); err != nil {
		return nil, err
	}
	if len(batchResp.Results) != len(pairs) {
		return nil, fmt.Errorf("similarity service returned %d scores for %d pairs", len(batchResp.Results), len(pairs))
	}

	scores := make([]float64, len(batchResp.Results))
	for i, r := range batchResp.Results {
		scores[i] = r.Similarity
	}
	return scores, nil
}

// Compare scores a single pair, reporting how long the call took.
// Backs the test-gameplay probe endpoint.
func (c *SimilarityClient) Compare(ctx context.Context, word, description string) (float64, time.Duration, error) {
	start := time.Now()

	reqBody := struct {
		Word        string `json:"word"`
		Description string `json:"description"`
		Model       string `json:"model"`
	}{Word: word, Description: description, Model: c.model}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return 0, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/compare", bytes.NewBuffer(jsonBody))
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("similarity service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("similarity service returned %d", resp.StatusCode)
	}

	var compareResp struct {
		Similarity float64 `json:"similarity"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&compareResp); err != nil {
		return 0, 0, err
	}
	return compareResp.Similarity, time.Since(start), nil
}

// Healthy probes the similarity service's health endpoint. Used at
// room creation to warm the service up and by the health endpoint to
// report oracle readiness.
func (c *SimilarityClient) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Model returns the configured embedding model name.
func (c *SimilarityClient) Model() string { return c.model }
