package contracts

import (
	"context"

	"eduvoyage-service/internal/pkg/dto/responses"
)

type AvailabilityUsecase interface {
	GetDaySlots(ctx context.Context, date string) ([]responses.TimeSlot, error)
}

// SlotValidator re-runs the full slot validation pipeline server-side; the
// orchestrator never trusts a client-selected slot. excludeEventID removes
// one event from the conflict snapshot so a reschedule does not collide with
// the booking being moved.
type SlotValidator interface {
	ValidateSlot(ctx context.Context, date, timeOfDay string, durationMinutes int, excludeEventID string) error
}
