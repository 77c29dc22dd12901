package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"platewise-backend/models"
)

// SwapFallbackExplanation stands in whenever the explanation endpoint cannot
// answer. Callers show it verbatim instead of surfacing the error.
const SwapFallbackExplanation = "Both options have their own strengths. Weigh the nutrition and sustainability scores against your own goals when choosing between them."

// FoodAPIService talks to the external food catalog REST API.
type FoodAPIService struct {
	baseURL string
	client  *http.Client
}

func NewFoodAPIService(baseURL string) *FoodAPIService {
	return &FoodAPIService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchFoods calls GET /foods/ and returns the raw catalog. Callers normalize
// before doing anything else with the records.
func (s *FoodAPIService) FetchFoods(ctx context.Context) ([]models.RawFood, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/foods/", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create foods request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call food API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read food API response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("food API error %d: %s", resp.StatusCode, string(body))
	}

	var foods []models.RawFood
	if err := json.Unmarshal(body, &foods); err != nil {
		return nil, fmt.Errorf("failed to parse food API JSON: %w", err)
	}
	return foods, nil
}

type explainSwapRequest struct {
	Original    string `json:"original"`
	Alternative string `json:"alternative"`
}

type explainSwapResponse struct {
	Explanation string `json:"explanation"`
}

// ExplainSwap asks the AI endpoint why alternative beats original. Any
// failure, transport, status or decode, degrades to the fixed fallback text;
// this path never errors.
func (s *FoodAPIService) ExplainSwap(ctx context.Context, original, alternative string) string {
	payload, err := json.Marshal(explainSwapRequest{Original: original, Alternative: alternative})
	if err != nil {
		return SwapFallbackExplanation
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/foods/explain-swap", bytes.NewReader(payload))
	if err != nil {
		return SwapFallbackExplanation
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return SwapFallbackExplanation
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return SwapFallbackExplanation
	}

	var out explainSwapResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Explanation == "" {
		return SwapFallbackExplanation
	}
	return out.Explanation
}
