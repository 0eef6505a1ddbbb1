package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pictocode/internal/config"
)

func similarityClientFor(url string) *SimilarityClient {
	return NewSimilarityClient(&config.Config{
		SimilarityURL:     url,
		SimilarityModel:   "use",
		SimilarityTimeout: 2 * time.Second,
	})
}

func TestCompareBatch_AlignsScoresWithPairs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/compare-batch", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req struct {
			Pairs []SimilarityPair `json:"pairs"`
			Model string           `json:"model"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "use", req.Model)
		require.Len(t, req.Pairs, 3)

		// Score each pair by its position so alignment is observable.
		resp := struct {
			Results []map[string]float64 `json:"results"`
		}{}
		for i := range req.Pairs {
			resp.Results = append(resp.Results, map[string]float64{"similarity": float64(i) / 10})
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := similarityClientFor(srv.URL)
	scores, err := c.CompareBatch(context.Background(), []SimilarityPair{
		{Word: "dog", Description: "a dog"},
		{Word: "dog", Description: "a cat"},
		{Word: "dog", Description: "a tree"},
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.1, 0.2}, scores)
}

func TestCompareBatch_LengthMismatchIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"similarity":0.5}]}`))
	}))
	defer srv.Close()

	c := similarityClientFor(srv.URL)
	_, err := c.CompareBatch(context.Background(), []SimilarityPair{
		{Word: "dog", Description: "a"},
		{Word: "dog", Description: "b"},
	})
	assert.Error(t, err)
}

func TestCompareBatch_Non200IsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := similarityClientFor(srv.URL)
	_, err := c.CompareBatch(context.Background(), []SimilarityPair{{Word: "dog", Description: "a"}})
	assert.Error(t, err)
}

func TestCompareBatch_Unreachable(t *testing.T) {
	c := similarityClientFor("http://127.0.0.1:1")
	_, err := c.CompareBatch(context.Background(), []SimilarityPair{{Word: "dog", Description: "a"}})
	assert.Error(t, err)
}

func TestCompare_ReportsScoreAndDuration(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/compare", r.URL.Path)

		var req struct {
			Word        string `json:"word"`
			Description string `json:"description"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "dog", req.Word)

		w.Write([]byte(`{"similarity":0.87}`))
	}))
	defer srv.Close()

	c := similarityClientFor(srv.URL)
	score, took, err := c.Compare(context.Background(), "dog", "a small dog")
	require.NoError(t, err)
	assert.Equal(t, 0.87, score)
	assert.Greater(t, took, time.Duration(0))
}

func TestHealthy(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer up.Close()

	assert.True(t, similarityClientFor(up.URL).Healthy(context.Background()))
	assert.False(t, similarityClientFor("http://127.0.0.1:1").Healthy(context.Background()))
}
