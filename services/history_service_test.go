package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"platewise-backend/models"
	"platewise-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// failingStore errors on every operation, standing in for unavailable storage.
type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, error) {
	return "", errors.New("storage down")
}
func (failingStore) Set(context.Context, string, string) error { return errors.New("storage down") }
func (failingStore) Remove(context.Context, string) error      { return errors.New("storage down") }

func newHistoryService(store utils.KVStore) *HistoryService {
	return NewHistoryService(store, zap.NewNop().Sugar())
}

func namedFood(name string) models.NormalizedFood {
	return models.NormalizedFood{
		ID:        models.FlexID(name),
		Name:      name,
		Allergens: []string{},
	}
}

func TestHistoryMostRecentFirst(t *testing.T) {
	svc := newHistoryService(utils.NewMemoryStore())
	ctx := context.Background()

	svc.AddToHistory(ctx, "s1", namedFood("Apple"))
	svc.AddToHistory(ctx, "s1", namedFood("Banana"))

	entries := svc.GetHistory(ctx, "s1")
	require.Len(t, entries, 2)
	assert.Equal(t, "Banana", entries[0].Name)
	assert.Equal(t, "Apple", entries[1].Name)
}

func TestHistoryDedupByNameAndCap(t *testing.T) {
	svc := newHistoryService(utils.NewMemoryStore())
	ctx := context.Background()

	for i := 0; i < 11; i++ {
		svc.AddToHistory(ctx, "s1", namedFood(fmt.Sprintf("Food %d", i)))
	}
	entries := svc.GetHistory(ctx, "s1")
	require.Len(t, entries, 10)
	assert.Equal(t, "Food 10", entries[0].Name)
	assert.Equal(t, "Food 1", entries[9].Name) // Food 0 fell off the end

	// re-viewing moves the entry up instead of duplicating it
	svc.AddToHistory(ctx, "s1", namedFood("Food 5"))
	entries = svc.GetHistory(ctx, "s1")
	require.Len(t, entries, 10)
	assert.Equal(t, "Food 5", entries[0].Name)
	count := 0
	for _, e := range entries {
		if e.Name == "Food 5" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestHistoryDedupIsCaseSensitive(t *testing.T) {
	svc := newHistoryService(utils.NewMemoryStore())
	ctx := context.Background()

	svc.AddToHistory(ctx, "s1", namedFood("apple"))
	svc.AddToHistory(ctx, "s1", namedFood("Apple"))

	assert.Len(t, svc.GetHistory(ctx, "s1"), 2)
}

func TestHistorySessionsAreIsolated(t *testing.T) {
	svc := newHistoryService(utils.NewMemoryStore())
	ctx := context.Background()

	svc.AddToHistory(ctx, "s1", namedFood("Apple"))
	assert.Empty(t, svc.GetHistory(ctx, "s2"))
}

func TestHistoryCorruptValueReadsEmpty(t *testing.T) {
	store := utils.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), historyKeyPrefix+"s1", "{not json"))

	svc := newHistoryService(store)
	assert.Equal(t, []models.HistoryEntry{}, svc.GetHistory(context.Background(), "s1"))
}

func TestHistoryStorageFailureIsSwallowed(t *testing.T) {
	svc := newHistoryService(failingStore{})
	ctx := context.Background()

	// neither call may panic or error out; the history just stays empty
	svc.AddToHistory(ctx, "s1", namedFood("Apple"))
	assert.Empty(t, svc.GetHistory(ctx, "s1"))
}

func TestTimeAgoBuckets(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	svc := newHistoryService(utils.NewMemoryStore())
	svc.now = func() time.Time { return now }

	tests := []struct {
		age  time.Duration
		want string
	}{
		{30 * time.Second, "Just now"},
		{5 * time.Minute, "5 mins ago"},
		{59 * time.Minute, "59 mins ago"},
		{2 * time.Hour, "2 hours ago"},
		{23 * time.Hour, "23 hours ago"},
		{30 * time.Hour, "Yesterday"},
		// anything beyond a day collapses to "Yesterday"
		{10 * 24 * time.Hour, "Yesterday"},
	}

	for _, tt := range tests {
		stamp := now.Add(-tt.age).Format(time.RFC3339)
		assert.Equal(t, tt.want, svc.TimeAgo(stamp), "age %v", tt.age)
	}
}

func TestTimeAgoUnparseable(t *testing.T) {
	svc := newHistoryService(utils.NewMemoryStore())
	assert.Equal(t, "", svc.TimeAgo("not-a-timestamp"))
}
