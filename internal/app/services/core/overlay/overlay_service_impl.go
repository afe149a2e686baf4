package overlay

import (
	"context"
	"time"

	"eduvoyage-service/internal/app/contracts"
	"eduvoyage-service/internal/pkg/constvars"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	keyPrefix = "booking_overlay:"

	// entryTTL comfortably outlives the window in which the provider's list
	// endpoint can lag behind a create. Entries are advisory, so expiring
	// them is always safe.
	entryTTL = 48 * time.Hour
)

type overlayService struct {
	redisRepo contracts.RedisRepository
	log       *zap.Logger
}

// NewOverlayService stores just-created bookings in a per-date redis hash so
// every replica sees them before the remote provider lists them.
func NewOverlayService(repo contracts.RedisRepository, logger *zap.Logger) contracts.OverlayService {
	return &overlayService{redisRepo: repo, log: logger}
}

func (s *overlayService) Add(ctx context.Context, dateKey string, entry contracts.OverlayEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	key := keyPrefix + dateKey
	if err := s.redisRepo.HSet(ctx, key, entry.EventID, payload); err != nil {
		return err
	}
	return s.redisRepo.Expire(ctx, key, entryTTL)
}

func (s *overlayService) EntriesFor(ctx context.Context, dateKey string) ([]contracts.OverlayEntry, error) {
	fields, err := s.redisRepo.HGetAll(ctx, keyPrefix+dateKey)
	if err != nil {
		return nil, err
	}

	entries := make([]contracts.OverlayEntry, 0, len(fields))
	for field, raw := range fields {
		var entry contracts.OverlayEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			s.log.Warn("overlay.EntriesFor dropping undecodable entry",
				zap.String(constvars.LoggingDateKey, dateKey),
				zap.String(constvars.LoggingEventIDKey, field),
				zap.Error(err),
			)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *overlayService) Remove(ctx context.Context, dateKey, eventID string) error {
	return s.redisRepo.HDelete(ctx, keyPrefix+dateKey, eventID)
}
