package bookings

import (
	"context"
	"fmt"
	"strings"

	"eduvoyage-service/internal/app/config"
	"eduvoyage-service/internal/app/contracts"
	"eduvoyage-service/internal/pkg/constvars"
	"eduvoyage-service/internal/pkg/displaytime"
	"eduvoyage-service/internal/pkg/dto/requests"
	"eduvoyage-service/internal/pkg/dto/responses"
	"eduvoyage-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

// BookingUsecase orchestrates the write path. The remote calendar provider is
// the system of record; this type holds no state of its own beyond the
// advisory overlay writes.
type BookingUsecase struct {
	calendar   contracts.CalendarClient
	validator  contracts.SlotValidator
	overlay    contracts.OverlayService
	capability contracts.CapabilityService
	notifier   contracts.NotifierService
	zone       displaytime.Zone

	topicTemplate          string
	defaultDurationMinutes int
	frontendDomain         string

	log *zap.Logger
}

func NewBookingUsecase(
	calendar contracts.CalendarClient,
	validator contracts.SlotValidator,
	overlay contracts.OverlayService,
	capability contracts.CapabilityService,
	notifier contracts.NotifierService,
	zone displaytime.Zone,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) *BookingUsecase {
	return &BookingUsecase{
		calendar:               calendar,
		validator:              validator,
		overlay:                overlay,
		capability:             capability,
		notifier:               notifier,
		zone:                   zone,
		topicTemplate:          internalConfig.Booking.TopicTemplate,
		defaultDurationMinutes: internalConfig.Booking.SlotDurationMinutes,
		frontendDomain:         strings.TrimRight(internalConfig.App.FrontendDomain, "/"),
		log:                    logger,
	}
}

func (u *BookingUsecase) Create(ctx context.Context, request *requests.CreateBooking) (*responses.BookingConfirmation, error) {
	duration := request.DurationMinutes
	if duration == 0 {
		duration = u.defaultDurationMinutes
	}

	// Revalidate server-side regardless of what the availability endpoint
	// showed the client earlier.
	if err := u.validator.ValidateSlot(ctx, request.Date, request.Time, duration, ""); err != nil {
		return nil, err
	}

	local, err := displaytime.FromDateClock(request.Date, request.Time)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}

	event, err := u.calendar.CreateEvent(ctx, contracts.CreateCalendarEventInput{
		Topic:           fmt.Sprintf(u.topicTemplate, request.Name),
		Start:           u.zone.ToInstant(local),
		DurationMinutes: duration,
	})
	if err != nil {
		return nil, err
	}

	u.addOverlay(ctx, local, duration, event.ID)

	confirmation, err := u.buildConfirmation(event, request.Email, request.Date, request.Time, duration)
	if err != nil {
		return nil, err
	}

	u.notifier.Dispatch(ctx, contracts.NotificationEnvelope{
		Kind:            constvars.NotificationKindCreated,
		BookerName:      request.Name,
		BookerEmail:     request.Email,
		EventID:         event.ID,
		JoinURL:         event.JoinURL,
		StartDate:       request.Date,
		StartTime:       request.Time,
		DurationMinutes: duration,
		ICSFileName:     confirmation.ICSFileName,
		ICSBase64:       confirmation.ICSBase64,
		CalendarLink:    confirmation.GoogleCalendarLink,
		RescheduleLink:  confirmation.RescheduleLink,
		CancelLink:      confirmation.CancelLink,
	})

	return confirmation, nil
}

func (u *BookingUsecase) Reschedule(ctx context.Context, capability requests.Capability, request *requests.RescheduleBooking) (*responses.BookingConfirmation, error) {
	claims, err := u.capability.Verify(capability.Payload, capability.Signature)
	if err != nil {
		return nil, err
	}

	event, err := u.findEvent(ctx, claims.EventID)
	if err != nil {
		return nil, err
	}
	duration := event.DurationMinutes
	if duration == 0 {
		duration = u.defaultDurationMinutes
	}

	// The booking being moved must not block its own target slot.
	if err := u.validator.ValidateSlot(ctx, request.Date, request.Time, duration, event.ID); err != nil {
		return nil, err
	}

	local, err := displaytime.FromDateClock(request.Date, request.Time)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}

	if err := u.calendar.UpdateEvent(ctx, contracts.UpdateCalendarEventInput{
		EventID:         event.ID,
		Start:           u.zone.ToInstant(local),
		DurationMinutes: duration,
	}); err != nil {
		return nil, err
	}

	u.removeOverlay(ctx, event, claims.EventID)
	u.addOverlay(ctx, local, duration, event.ID)

	moved := *event
	moved.Start = u.zone.ToInstant(local)
	confirmation, err := u.buildConfirmation(&moved, claims.BookerEmail, request.Date, request.Time, duration)
	if err != nil {
		return nil, err
	}

	u.notifier.Dispatch(ctx, contracts.NotificationEnvelope{
		Kind:            constvars.NotificationKindRescheduled,
		BookerEmail:     claims.BookerEmail,
		EventID:         event.ID,
		JoinURL:         event.JoinURL,
		StartDate:       request.Date,
		StartTime:       request.Time,
		DurationMinutes: duration,
		ICSFileName:     confirmation.ICSFileName,
		ICSBase64:       confirmation.ICSBase64,
		CalendarLink:    confirmation.GoogleCalendarLink,
		RescheduleLink:  confirmation.RescheduleLink,
		CancelLink:      confirmation.CancelLink,
	})

	return confirmation, nil
}

func (u *BookingUsecase) Cancel(ctx context.Context, capability requests.Capability) error {
	claims, err := u.capability.Verify(capability.Payload, capability.Signature)
	if err != nil {
		return err
	}

	event, err := u.findEvent(ctx, claims.EventID)
	if err != nil {
		return err
	}

	if err := u.calendar.DeleteEvent(ctx, event.ID); err != nil {
		return err
	}

	u.removeOverlay(ctx, event, claims.EventID)

	u.notifier.Dispatch(ctx, contracts.NotificationEnvelope{
		Kind:        constvars.NotificationKindCancelled,
		BookerEmail: claims.BookerEmail,
		EventID:     event.ID,
	})
	return nil
}

// findEvent resolves a capability's event against the provider. The upcoming
// list can lag behind a just-created event, so a list miss falls back to the
// by-ID read before the token is rejected. A token whose event no longer
// exists gets the same rejection as a forged one.
func (u *BookingUsecase) findEvent(ctx context.Context, eventID string) (*contracts.CalendarEvent, error) {
	events, err := u.calendar.ListUpcomingEvents(ctx)
	if err != nil {
		return nil, err
	}
	for i := range events {
		if events[i].ID == eventID {
			return &events[i], nil
		}
	}

	event, err := u.calendar.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, exceptions.ErrCapabilityRejected()
	}
	return event, nil
}

func (u *BookingUsecase) buildConfirmation(event *contracts.CalendarEvent, bookerEmail, date, timeOfDay string, duration int) (*responses.BookingConfirmation, error) {
	payload, signature, err := u.capability.Sign(contracts.CapabilityClaims{
		EventID:     event.ID,
		BookerEmail: bookerEmail,
	})
	if err != nil {
		return nil, err
	}

	artifacts := buildCalendarArtifacts(event.ID, event.Topic, event.JoinURL, event.Start, duration)

	return &responses.BookingConfirmation{
		EventID:            event.ID,
		JoinURL:            event.JoinURL,
		Date:               date,
		Time:               timeOfDay,
		DurationMinutes:    duration,
		Timezone:           u.zone.Name(),
		ICSFileName:        artifacts.ICSFileName,
		ICSBase64:          artifacts.ICSBase64,
		GoogleCalendarLink: artifacts.GoogleCalendarLink,
		RescheduleLink:     u.manageLink("reschedule", payload, signature),
		CancelLink:         u.manageLink("cancel", payload, signature),
	}, nil
}

// manageLink points at the frontend manage page; the tokens are base64url and
// need no further escaping.
func (u *BookingUsecase) manageLink(action, payload, signature string) string {
	return fmt.Sprintf("%s/bookings/%s?p=%s&t=%s", u.frontendDomain, action, payload, signature)
}

// Overlay writes are advisory. Failures are logged and never fail the booking.
func (u *BookingUsecase) addOverlay(ctx context.Context, start displaytime.LocalInstant, duration int, eventID string) {
	err := u.overlay.Add(ctx, start.DateKey(), contracts.OverlayEntry{
		EventID:   eventID,
		StartUnix: start.Unix(),
		EndUnix:   start.AddMinutes(duration).Unix(),
	})
	if err != nil {
		u.log.Warn("bookings.addOverlay failed",
			zap.String(constvars.LoggingEventIDKey, eventID),
			zap.Error(err),
		)
	}
}

func (u *BookingUsecase) removeOverlay(ctx context.Context, event *contracts.CalendarEvent, eventID string) {
	dateKey := u.zone.FromInstant(event.Start).DateKey()
	if err := u.overlay.Remove(ctx, dateKey, eventID); err != nil {
		u.log.Warn("bookings.removeOverlay failed",
			zap.String(constvars.LoggingEventIDKey, eventID),
			zap.Error(err),
		)
	}
}
