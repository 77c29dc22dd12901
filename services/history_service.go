package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"platewise-backend/models"
	"platewise-backend/utils"

	"go.uber.org/zap"
)

const (
	historyKeyPrefix = "user_history:"
	historyLimit     = 10
)

// HistoryService keeps a bounded, most-recent-first log of viewed foods per
// session. Storage failures are logged and swallowed: a failed write means the
// history simply doesn't grow, a failed read reads as empty.
type HistoryService struct {
	store utils.KVStore
	log   *zap.SugaredLogger
	now   func() time.Time
}

func NewHistoryService(store utils.KVStore, log *zap.SugaredLogger) *HistoryService {
	return &HistoryService{store: store, log: log, now: time.Now}
}

// AddToHistory records a view. An existing entry with the same name (exact,
// case-sensitive) is evicted first, the new entry goes in front, and anything
// past the cap falls off the end.
func (s *HistoryService) AddToHistory(ctx context.Context, session string, item models.NormalizedFood) {
	entries := s.GetHistory(ctx, session)

	kept := make([]models.HistoryEntry, 0, len(entries)+1)
	kept = append(kept, models.HistoryEntry{
		NormalizedFood: item,
		ViewedAt:       s.now().Format(time.RFC3339),
	})
	for _, e := range entries {
		if e.Name == item.Name {
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) > historyLimit {
		kept = kept[:historyLimit]
	}

	data, err := json.Marshal(kept)
	if err != nil {
		s.log.Warnw("failed to encode view history", "error", err)
		return
	}
	if err := s.store.Set(ctx, historyKeyPrefix+session, string(data)); err != nil {
		s.log.Warnw("failed to persist view history", "session", session, "error", err)
	}
}

// GetHistory returns the stored log, empty when nothing was stored or the
// stored value doesn't parse.
func (s *HistoryService) GetHistory(ctx context.Context, session string) []models.HistoryEntry {
	raw, err := s.store.Get(ctx, historyKeyPrefix+session)
	if err != nil {
		if !errors.Is(err, utils.ErrKeyNotFound) {
			s.log.Warnw("failed to read view history", "session", session, "error", err)
		}
		return []models.HistoryEntry{}
	}

	var entries []models.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.log.Warnw("corrupt view history discarded", "session", session, "error", err)
		return []models.HistoryEntry{}
	}
	if entries == nil {
		return []models.HistoryEntry{}
	}
	return entries
}

// TimeAgo renders a coarse relative-time label for a history timestamp.
// Everything older than a day reads "Yesterday" no matter how old; that
// matches what the history panel has always shown.
func (s *HistoryService) TimeAgo(viewedAt string) string {
	t, err := time.Parse(time.RFC3339, viewedAt)
	if err != nil {
		return ""
	}
	d := s.now().Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%d mins ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	default:
		return "Yesterday"
	}
}
