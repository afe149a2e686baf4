package overlay

import (
	"context"
	"fmt"
	"testing"
	"time"

	"eduvoyage-service/internal/app/contracts"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeRedisRepository struct {
	hashes  map[string]map[string]string
	expires map[string]time.Duration
}

func newFakeRedisRepository() *fakeRedisRepository {
	return &fakeRedisRepository{
		hashes:  make(map[string]map[string]string),
		expires: make(map[string]time.Duration),
	}
}

func (f *fakeRedisRepository) Get(ctx context.Context, key string) (string, error) { return "", nil }

func (f *fakeRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return nil
}

func (f *fakeRedisRepository) Delete(ctx context.Context, key string) error { return nil }

func (f *fakeRedisRepository) HSet(ctx context.Context, key, field string, value interface{}) error {
	if f.hashes[key] == nil {
		f.hashes[key] = make(map[string]string)
	}
	switch v := value.(type) {
	case []byte:
		f.hashes[key][field] = string(v)
	case string:
		f.hashes[key][field] = v
	default:
		return fmt.Errorf("unexpected value type %T", value)
	}
	return nil
}

func (f *fakeRedisRepository) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return f.hashes[key], nil
}

func (f *fakeRedisRepository) HDelete(ctx context.Context, key string, fields ...string) error {
	for _, field := range fields {
		delete(f.hashes[key], field)
	}
	return nil
}

func (f *fakeRedisRepository) Expire(ctx context.Context, key string, exp time.Duration) error {
	f.expires[key] = exp
	return nil
}

func TestOverlayRoundTrip(t *testing.T) {
	repo := newFakeRedisRepository()
	service := NewOverlayService(repo, zap.NewNop())
	ctx := context.Background()

	entry := contracts.OverlayEntry{EventID: "828840291", StartUnix: 1000, EndUnix: 2800}
	assert.NoError(t, service.Add(ctx, "2026-09-07", entry))

	entries, err := service.EntriesFor(ctx, "2026-09-07")
	assert.NoError(t, err)
	assert.Equal(t, []contracts.OverlayEntry{entry}, entries)

	assert.Equal(t, entryTTL, repo.expires[keyPrefix+"2026-09-07"],
		"entries must expire on their own")

	other, err := service.EntriesFor(ctx, "2026-09-08")
	assert.NoError(t, err)
	assert.Empty(t, other, "entries are scoped per date")

	assert.NoError(t, service.Remove(ctx, "2026-09-07", "828840291"))
	entries, err = service.EntriesFor(ctx, "2026-09-07")
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOverlayDropsUndecodableEntries(t *testing.T) {
	repo := newFakeRedisRepository()
	service := NewOverlayService(repo, zap.NewNop())
	ctx := context.Background()

	entry := contracts.OverlayEntry{EventID: "828840291", StartUnix: 1000, EndUnix: 2800}
	assert.NoError(t, service.Add(ctx, "2026-09-07", entry))
	assert.NoError(t, repo.HSet(ctx, keyPrefix+"2026-09-07", "bad", "{not json"))

	entries, err := service.EntriesFor(ctx, "2026-09-07")
	assert.NoError(t, err)
	assert.Equal(t, []contracts.OverlayEntry{entry}, entries)
}

func TestMemoryOverlayPrune(t *testing.T) {
	service := NewMemoryOverlayService(zap.NewNop())
	ctx := context.Background()

	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return base }
	assert.NoError(t, service.Add(ctx, "2026-09-07", contracts.OverlayEntry{EventID: "old"}))

	service.now = func() time.Time { return base.Add(entryTTL / 2) }
	assert.NoError(t, service.Add(ctx, "2026-09-07", contracts.OverlayEntry{EventID: "fresh"}))

	service.now = func() time.Time { return base.Add(entryTTL + time.Hour) }
	service.Prune()

	entries, err := service.EntriesFor(ctx, "2026-09-07")
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "fresh", entries[0].EventID)
}

func TestMemoryOverlayRoundTrip(t *testing.T) {
	service := NewMemoryOverlayService(zap.NewNop())
	ctx := context.Background()

	entry := contracts.OverlayEntry{EventID: "828840291", StartUnix: 1000, EndUnix: 2800}
	assert.NoError(t, service.Add(ctx, "2026-09-07", entry))

	entries, err := service.EntriesFor(ctx, "2026-09-07")
	assert.NoError(t, err)
	assert.Equal(t, []contracts.OverlayEntry{entry}, entries)

	assert.NoError(t, service.Remove(ctx, "2026-09-07", "828840291"))
	entries, err = service.EntriesFor(ctx, "2026-09-07")
	assert.NoError(t, err)
	assert.Empty(t, entries)
}
