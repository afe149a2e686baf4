package contracts

import (
	"context"
	"time"
)

// CalendarEvent is the provider-owned meeting record. Start is a true instant;
// conversion into the display timezone happens in the scheduling core.
type CalendarEvent struct {
	ID              string
	Topic           string
	Start           time.Time
	DurationMinutes int
	Timezone        string
	JoinURL         string
}

type CreateCalendarEventInput struct {
	Topic           string
	Start           time.Time
	DurationMinutes int
}

type UpdateCalendarEventInput struct {
	EventID         string
	Start           time.Time
	DurationMinutes int
}

// CalendarClient is the minimal verb set this core needs from the remote
// scheduling provider. The provider is the system of record; nothing here is
// persisted locally.
type CalendarClient interface {
	ListUpcomingEvents(ctx context.Context) ([]CalendarEvent, error)
	// GetEvent returns the event by provider ID, or (nil, nil) when the
	// provider does not know it. The by-ID read is consistent even while a
	// freshly created event has not reached the upcoming list yet.
	GetEvent(ctx context.Context, eventID string) (*CalendarEvent, error)
	CreateEvent(ctx context.Context, input CreateCalendarEventInput) (*CalendarEvent, error)
	UpdateEvent(ctx context.Context, input UpdateCalendarEventInput) error
	DeleteEvent(ctx context.Context, eventID string) error
}
