package contracts

import (
	"context"

	"eduvoyage-service/internal/pkg/dto/requests"
	"eduvoyage-service/internal/pkg/dto/responses"
)

type BookingUsecase interface {
	Create(ctx context.Context, request *requests.CreateBooking) (*responses.BookingConfirmation, error)
	Reschedule(ctx context.Context, capability requests.Capability, request *requests.RescheduleBooking) (*responses.BookingConfirmation, error)
	Cancel(ctx context.Context, capability requests.Capability) error
}
