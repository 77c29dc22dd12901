package services

import (
	"context"
	"encoding/json"
	"errors"

	"platewise-backend/models"
	"platewise-backend/utils"

	"go.uber.org/zap"
)

const (
	comparisonKeyPrefix = "comparison_set:"
	comparisonLimit     = 4
)

var (
	ErrComparisonFull = errors.New("comparison set is full")
	ErrAlreadyInSet   = errors.New("food is already in the comparison set")
)

// ComparisonService manages the per-session working set of foods being
// compared side by side. The set is ordered, capped at four entries and unique
// by id; it only ever changes through explicit add/remove/clear calls.
type ComparisonService struct {
	store utils.KVStore
	log   *zap.SugaredLogger
}

func NewComparisonService(store utils.KVStore, log *zap.SugaredLogger) *ComparisonService {
	return &ComparisonService{store: store, log: log}
}

// Get returns the current set, empty when nothing was stored or the stored
// value doesn't parse.
func (s *ComparisonService) Get(ctx context.Context, session string) []models.NormalizedFood {
	raw, err := s.store.Get(ctx, comparisonKeyPrefix+session)
	if err != nil {
		if !errors.Is(err, utils.ErrKeyNotFound) {
			s.log.Warnw("failed to read comparison set", "session", session, "error", err)
		}
		return []models.NormalizedFood{}
	}
	var set []models.NormalizedFood
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		s.log.Warnw("corrupt comparison set discarded", "session", session, "error", err)
		return []models.NormalizedFood{}
	}
	if set == nil {
		return []models.NormalizedFood{}
	}
	return set
}

// Add appends a food, rejecting duplicates and additions beyond the cap.
func (s *ComparisonService) Add(ctx context.Context, session string, food models.NormalizedFood) ([]models.NormalizedFood, error) {
	set := s.Get(ctx, session)
	if len(set) >= comparisonLimit {
		return set, ErrComparisonFull
	}
	for _, f := range set {
		if f.ID == food.ID {
			return set, ErrAlreadyInSet
		}
	}
	set = append(set, food)
	return set, s.persist(ctx, session, set)
}

// Remove drops the entry with the given id, if present.
func (s *ComparisonService) Remove(ctx context.Context, session string, id models.FlexID) ([]models.NormalizedFood, error) {
	set := s.Get(ctx, session)
	kept := make([]models.NormalizedFood, 0, len(set))
	for _, f := range set {
		if f.ID == id {
			continue
		}
		kept = append(kept, f)
	}
	return kept, s.persist(ctx, session, kept)
}

// Clear empties the set.
func (s *ComparisonService) Clear(ctx context.Context, session string) error {
	if err := s.store.Remove(ctx, comparisonKeyPrefix+session); err != nil {
		s.log.Warnw("failed to clear comparison set", "session", session, "error", err)
		return err
	}
	return nil
}

func (s *ComparisonService) persist(ctx context.Context, session string, set []models.NormalizedFood) error {
	data, err := json.Marshal(set)
	if err != nil {
		s.log.Warnw("failed to encode comparison set", "error", err)
		return err
	}
	if err := s.store.Set(ctx, comparisonKeyPrefix+session, string(data)); err != nil {
		s.log.Warnw("failed to persist comparison set", "session", session, "error", err)
		return err
	}
	return nil
}
