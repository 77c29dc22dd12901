package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchFoodsParsesCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/foods/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1, "name": "Oat Milk", "nutrition": {"calories": 120}},
			{"id": "b2", "name": "Almond Milk", "nutrition_score": 70}
		]`))
	}))
	defer srv.Close()

	svc := NewFoodAPIService(srv.URL)
	foods, err := svc.FetchFoods(context.Background())
	require.NoError(t, err)
	require.Len(t, foods, 2)
	assert.Equal(t, "Oat Milk", foods[0].Name)
	assert.Equal(t, "b2", string(foods[1].ID))
}

func TestFetchFoodsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := NewFoodAPIService(srv.URL)
	_, err := svc.FetchFoods(context.Background())
	assert.Error(t, err)
}

func TestFetchFoodsMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"`))
	}))
	defer srv.Close()

	svc := NewFoodAPIService(srv.URL)
	_, err := svc.FetchFoods(context.Background())
	assert.Error(t, err)
}

func TestExplainSwapSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/foods/explain-swap", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"explanation": "Oat milk has a far lower carbon footprint."}`))
	}))
	defer srv.Close()

	svc := NewFoodAPIService(srv.URL)
	got := svc.ExplainSwap(context.Background(), "almond milk", "oat milk")
	assert.Equal(t, "Oat milk has a far lower carbon footprint.", got)
}

func TestExplainSwapFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"upstream 500", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusInternalServerError)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}},
		{"empty explanation", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"explanation": ""}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			svc := NewFoodAPIService(srv.URL)
			got := svc.ExplainSwap(context.Background(), "a", "b")
			assert.Equal(t, SwapFallbackExplanation, got)
		})
	}
}

func TestExplainSwapUnreachableHost(t *testing.T) {
	svc := NewFoodAPIService("http://127.0.0.1:1")
	got := svc.ExplainSwap(context.Background(), "a", "b")
	assert.Equal(t, SwapFallbackExplanation, got)
}
