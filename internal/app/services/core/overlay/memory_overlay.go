package overlay

import (
	"context"
	"sync"
	"time"

	"eduvoyage-service/internal/app/contracts"

	"go.uber.org/zap"
)

type memoryEntry struct {
	entry   contracts.OverlayEntry
	addedAt time.Time
}

// MemoryOverlayService is the single-process fallback used when no redis host
// is configured. Entries never cross replicas; a cron job calls Prune so an
// abandoned date does not pin memory.
type MemoryOverlayService struct {
	mu     sync.Mutex
	byDate map[string]map[string]memoryEntry
	now    func() time.Time
	log    *zap.Logger
}

func NewMemoryOverlayService(logger *zap.Logger) *MemoryOverlayService {
	return &MemoryOverlayService{
		byDate: make(map[string]map[string]memoryEntry),
		now:    time.Now,
		log:    logger,
	}
}

func (s *MemoryOverlayService) Add(_ context.Context, dateKey string, entry contracts.OverlayEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byDate[dateKey] == nil {
		s.byDate[dateKey] = make(map[string]memoryEntry)
	}
	s.byDate[dateKey][entry.EventID] = memoryEntry{entry: entry, addedAt: s.now()}
	return nil
}

func (s *MemoryOverlayService) EntriesFor(_ context.Context, dateKey string) ([]contracts.OverlayEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]contracts.OverlayEntry, 0, len(s.byDate[dateKey]))
	for _, e := range s.byDate[dateKey] {
		entries = append(entries, e.entry)
	}
	return entries, nil
}

func (s *MemoryOverlayService) Remove(_ context.Context, dateKey, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byDate[dateKey], eventID)
	return nil
}

// Prune drops entries older than the shared overlay TTL.
func (s *MemoryOverlayService) Prune() {
	cutoff := s.now().Add(-entryTTL)

	s.mu.Lock()
	defer s.mu.Unlock()
	pruned := 0
	for dateKey, entries := range s.byDate {
		for id, e := range entries {
			if e.addedAt.Before(cutoff) {
				delete(entries, id)
				pruned++
			}
		}
		if len(entries) == 0 {
			delete(s.byDate, dateKey)
		}
	}
	if pruned > 0 {
		s.log.Debug("overlay.Prune removed expired entries", zap.Int("pruned", pruned))
	}
}
