package contracts

import "context"

// OverlayEntry records a booking created by this process that the remote
// provider may not yet reflect in list responses. Start and End are fake-UTC
// seconds (displaytime convention), comparable only with other fake-UTC values.
type OverlayEntry struct {
	EventID   string `json:"event_id"`
	StartUnix int64  `json:"start_unix"`
	EndUnix   int64  `json:"end_unix"`
}

// OverlayService masks the read-your-write gap against the remote calendar.
// It is an advisory optimization, not a correctness guarantee; the residual
// race between list and create is accepted.
type OverlayService interface {
	Add(ctx context.Context, dateKey string, entry OverlayEntry) error
	EntriesFor(ctx context.Context, dateKey string) ([]OverlayEntry, error)
	Remove(ctx context.Context, dateKey, eventID string) error
}
