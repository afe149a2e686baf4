package availability

import (
	"context"
	"time"

	"eduvoyage-service/internal/app/config"
	"eduvoyage-service/internal/app/contracts"
	"eduvoyage-service/internal/pkg/constvars"
	"eduvoyage-service/internal/pkg/displaytime"
	"eduvoyage-service/internal/pkg/dto/responses"
	"eduvoyage-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type AvailabilityUsecase struct {
	calendar contracts.CalendarClient
	overlay  contracts.OverlayService
	zone     displaytime.Zone
	plan     weeklyPlan
	holidays map[string]bool
	params   slotGridParams
	log      *zap.Logger

	// now is swappable for tests; production uses time.Now.
	now func() time.Time
}

func NewAvailabilityUsecase(
	calendar contracts.CalendarClient,
	overlay contracts.OverlayService,
	zone displaytime.Zone,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) (*AvailabilityUsecase, error) {
	if err := validateGridPolicy(internalConfig.Booking); err != nil {
		return nil, err
	}
	plan, err := BuildWeeklyPlan(internalConfig.Booking)
	if err != nil {
		return nil, err
	}
	holidays, err := BuildHolidaySet(internalConfig.Booking.Holidays)
	if err != nil {
		return nil, err
	}
	return &AvailabilityUsecase{
		calendar: calendar,
		overlay:  overlay,
		zone:     zone,
		plan:     plan,
		holidays: holidays,
		params: slotGridParams{
			StepMinutes:     internalConfig.Booking.SlotStepMinutes,
			DurationMinutes: internalConfig.Booking.SlotDurationMinutes,
			NoticeMinutes:   internalConfig.Booking.MinimumNoticeMinutes,
			BufferMinutes:   internalConfig.Booking.BufferMinutes,
		},
		log: logger,
		now: time.Now,
	}, nil
}

func (u *AvailabilityUsecase) GetDaySlots(ctx context.Context, date string) ([]responses.TimeSlot, error) {
	weekday, err := displaytime.DateWeekday(date)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}

	if u.holidays[date] {
		return []responses.TimeSlot{}, nil
	}
	windows := u.plan.forWeekday(weekday)
	if len(windows) == 0 {
		return []responses.TimeSlot{}, nil
	}

	busy, err := u.busyIntervalsFor(ctx, date, "")
	if err != nil {
		return nil, err
	}

	now := u.zone.FromInstant(u.now())
	slots := buildDaySlots(date, windows, u.params, now, busy)

	u.log.Debug("availability.GetDaySlots computed",
		zap.String(constvars.LoggingDateKey, date),
		zap.Int("busy_intervals", len(busy)),
		zap.Int("slots", len(slots)),
	)
	return slots, nil
}

// ValidateSlot runs the create/reschedule pipeline for one candidate slot:
// business hours first, then minimum notice, then conflicts.
func (u *AvailabilityUsecase) ValidateSlot(ctx context.Context, date, timeOfDay string, durationMinutes int, excludeEventID string) error {
	weekday, err := displaytime.DateWeekday(date)
	if err != nil {
		return exceptions.ErrCannotParseDate(err)
	}
	start, err := displaytime.FromDateClock(date, timeOfDay)
	if err != nil {
		return exceptions.ErrCannotParseTimeOfDay(err)
	}
	end := start.AddMinutes(durationMinutes)

	if u.holidays[date] || !u.withinBusinessHours(date, weekday, start, end) {
		return exceptions.ErrSlotOutOfHours()
	}

	noticeCutoff := u.zone.FromInstant(u.now()).AddMinutes(u.params.NoticeMinutes)
	if start.Before(noticeCutoff) {
		return exceptions.ErrSlotInsufficientNotice()
	}

	busy, err := u.busyIntervalsFor(ctx, date, excludeEventID)
	if err != nil {
		return err
	}
	if overlapsBuffered(start, end, busy, u.params.BufferMinutes) {
		return exceptions.ErrSlotConflict()
	}
	return nil
}

func (u *AvailabilityUsecase) withinBusinessHours(date string, weekday time.Weekday, start, end displaytime.LocalInstant) bool {
	for _, w := range u.plan.forWeekday(weekday) {
		open := instantAt(date, w.Open)
		close := instantAt(date, w.Close)
		if !start.Before(open) && !end.After(close) {
			return true
		}
	}
	return false
}

// busyIntervalsFor snapshots the remote calendar for one date and folds in
// the local overlay of just-created events the provider may not list yet.
func (u *AvailabilityUsecase) busyIntervalsFor(ctx context.Context, date, excludeEventID string) ([]BusyInterval, error) {
	events, err := u.calendar.ListUpcomingEvents(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(events))
	busy := make([]BusyInterval, 0, len(events))
	for _, ev := range events {
		if ev.ID == excludeEventID {
			continue
		}
		start := u.zone.FromInstant(ev.Start)
		if start.DateKey() != date {
			continue
		}
		seen[ev.ID] = true
		busy = append(busy, BusyInterval{Start: start, End: start.AddMinutes(ev.DurationMinutes)})
	}

	entries, err := u.overlay.EntriesFor(ctx, date)
	if err != nil {
		// The overlay is advisory; a failed read must not break availability.
		u.log.Warn("availability.busyIntervalsFor overlay read failed",
			zap.String(constvars.LoggingDateKey, date),
			zap.Error(err),
		)
		return busy, nil
	}
	for _, entry := range entries {
		if entry.EventID == excludeEventID || seen[entry.EventID] {
			continue
		}
		busy = append(busy, BusyInterval{
			Start: displaytime.FromUnix(entry.StartUnix),
			End:   displaytime.FromUnix(entry.EndUnix),
		})
	}
	return busy, nil
}
