package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"eduvoyage-service/internal/app/config"
	"eduvoyage-service/internal/app/contracts"
	"eduvoyage-service/internal/pkg/displaytime"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeCalendar struct {
	events  []contracts.CalendarEvent
	listErr error
}

func (f *fakeCalendar) ListUpcomingEvents(ctx context.Context) ([]contracts.CalendarEvent, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.events, nil
}

func (f *fakeCalendar) GetEvent(ctx context.Context, eventID string) (*contracts.CalendarEvent, error) {
	return nil, errors.New("not used")
}

func (f *fakeCalendar) CreateEvent(ctx context.Context, input contracts.CreateCalendarEventInput) (*contracts.CalendarEvent, error) {
	return nil, errors.New("not used")
}

func (f *fakeCalendar) UpdateEvent(ctx context.Context, input contracts.UpdateCalendarEventInput) error {
	return errors.New("not used")
}

func (f *fakeCalendar) DeleteEvent(ctx context.Context, eventID string) error {
	return errors.New("not used")
}

type fakeOverlay struct {
	entries map[string][]contracts.OverlayEntry
	err     error
}

func (f *fakeOverlay) Add(ctx context.Context, dateKey string, entry contracts.OverlayEntry) error {
	return nil
}

func (f *fakeOverlay) EntriesFor(ctx context.Context, dateKey string) ([]contracts.OverlayEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries[dateKey], nil
}

func (f *fakeOverlay) Remove(ctx context.Context, dateKey, eventID string) error {
	return nil
}

// mondayDate is a Monday with 09:00-12:00 hours in the test config below.
const mondayDate = "2026-09-07"

func newTestUsecase(t *testing.T, calendar *fakeCalendar, overlay *fakeOverlay) (*AvailabilityUsecase, displaytime.Zone) {
	t.Helper()

	zone, err := displaytime.LoadZone("Asia/Dhaka")
	assert.NoError(t, err)

	cfg := &config.InternalConfig{
		Booking: config.Booking{
			SlotStepMinutes:      30,
			SlotDurationMinutes:  30,
			MinimumNoticeMinutes: 120,
			BufferMinutes:        15,
			HoursByWeekday: [7]string{
				"",            // Sunday closed
				"09:00-12:00", // Monday
				"09:00-12:00",
				"09:00-12:00",
				"09:00-12:00",
				"09:00-12:00",
				"09:00-11:45", // Saturday, close not on the grid
			},
			Holidays: []string{"2026-09-14"},
		},
	}

	usecase, err := NewAvailabilityUsecase(calendar, overlay, zone, cfg, zap.NewNop())
	assert.NoError(t, err)

	// Far enough before the queried dates that the notice window never bites
	// unless a test moves the clock.
	usecase.now = fixedNow(zone, "2026-09-01", "09:00")
	return usecase, zone
}

func fixedNow(zone displaytime.Zone, date, clock string) func() time.Time {
	local, err := displaytime.FromDateClock(date, clock)
	if err != nil {
		panic(err)
	}
	instant := zone.ToInstant(local)
	return func() time.Time { return instant }
}

func slotTimes(t *testing.T, usecase *AvailabilityUsecase, date string) ([]string, map[string]string) {
	t.Helper()
	slots, err := usecase.GetDaySlots(context.Background(), date)
	assert.NoError(t, err)

	times := make([]string, 0, len(slots))
	reasons := make(map[string]string)
	for _, s := range slots {
		times = append(times, s.Time)
		if s.Disabled {
			reasons[s.Time] = s.Reason
		}
	}
	return times, reasons
}

func TestNewAvailabilityUsecaseRejectsBadGridPolicy(t *testing.T) {
	zone, err := displaytime.LoadZone("Asia/Dhaka")
	assert.NoError(t, err)

	build := func(step, duration, notice, buffer int) error {
		cfg := &config.InternalConfig{
			Booking: config.Booking{
				SlotStepMinutes:      step,
				SlotDurationMinutes:  duration,
				MinimumNoticeMinutes: notice,
				BufferMinutes:        buffer,
				HoursByWeekday:       [7]string{1: "09:00-12:00"},
			},
		}
		_, err := NewAvailabilityUsecase(&fakeCalendar{}, &fakeOverlay{}, zone, cfg, zap.NewNop())
		return err
	}

	assert.NoError(t, build(30, 30, 120, 15))

	// A non-positive step would make every availability request loop without
	// bound, so it must stop the process at construction time.
	assert.Error(t, build(0, 30, 120, 15))
	assert.Error(t, build(-15, 30, 120, 15))
	assert.Error(t, build(30, 0, 120, 15))
	assert.Error(t, build(30, -30, 120, 15))
	assert.Error(t, build(30, 30, -1, 15))
	assert.Error(t, build(30, 30, 120, -1))
}

func TestGetDaySlotsGrid(t *testing.T) {
	usecase, _ := newTestUsecase(t, &fakeCalendar{}, &fakeOverlay{})

	times, reasons := slotTimes(t, usecase, mondayDate)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, times,
		"last start is the one whose full duration still fits before close")
	assert.Empty(t, reasons)
}

func TestGetDaySlotsClosingBoundary(t *testing.T) {
	usecase, _ := newTestUsecase(t, &fakeCalendar{}, &fakeOverlay{})

	// Saturday closes at 11:45; an 11:30 start would end past close.
	times, _ := slotTimes(t, usecase, "2026-09-12")
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00"}, times)
}

func TestGetDaySlotsBusyWithBuffer(t *testing.T) {
	// 10:00-10:30 Dhaka is 04:00 UTC. With a 15 minute buffer the halo is
	// 09:45-10:45, which also disables the neighbouring grid points.
	calendar := &fakeCalendar{events: []contracts.CalendarEvent{{
		ID:              "828840291",
		Start:           time.Date(2026, 9, 7, 4, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	}}}
	usecase, _ := newTestUsecase(t, calendar, &fakeOverlay{})

	_, reasons := slotTimes(t, usecase, mondayDate)
	assert.Equal(t, map[string]string{
		"09:30": "busy",
		"10:00": "busy",
		"10:30": "busy",
	}, reasons)
}

func TestGetDaySlotsNoticeWindow(t *testing.T) {
	usecase, zone := newTestUsecase(t, &fakeCalendar{}, &fakeOverlay{})
	usecase.now = fixedNow(zone, mondayDate, "07:30")

	_, reasons := slotTimes(t, usecase, mondayDate)
	assert.Equal(t, map[string]string{"09:00": "notice"}, reasons,
		"slots before now+notice are blocked, the cutoff slot itself is offerable")
}

func TestBusyTakesPrecedenceOverNotice(t *testing.T) {
	calendar := &fakeCalendar{events: []contracts.CalendarEvent{{
		ID:              "828840291",
		Start:           time.Date(2026, 9, 7, 4, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	}}}
	usecase, zone := newTestUsecase(t, calendar, &fakeOverlay{})
	usecase.now = fixedNow(zone, mondayDate, "08:30")

	_, reasons := slotTimes(t, usecase, mondayDate)
	assert.Equal(t, "notice", reasons["09:00"])
	assert.Equal(t, "busy", reasons["09:30"], "a slot that is both gets the busy reason")
	assert.Equal(t, "busy", reasons["10:00"])
	assert.Equal(t, "busy", reasons["10:30"])
}

func TestGetDaySlotsOverlayMerged(t *testing.T) {
	entryStart, err := displaytime.FromDateClock(mondayDate, "11:00")
	assert.NoError(t, err)

	overlay := &fakeOverlay{entries: map[string][]contracts.OverlayEntry{
		mondayDate: {{
			EventID:   "just-created",
			StartUnix: entryStart.Unix(),
			EndUnix:   entryStart.AddMinutes(30).Unix(),
		}},
	}}
	usecase, _ := newTestUsecase(t, &fakeCalendar{}, overlay)

	_, reasons := slotTimes(t, usecase, mondayDate)
	assert.Equal(t, "busy", reasons["11:00"],
		"a just-created event must block its slot before the provider lists it")
	assert.Equal(t, "busy", reasons["11:30"])
	assert.Equal(t, "busy", reasons["10:30"])
}

func TestGetDaySlotsOverlayFailureTolerated(t *testing.T) {
	overlay := &fakeOverlay{err: errors.New("redis down")}
	usecase, _ := newTestUsecase(t, &fakeCalendar{}, overlay)

	times, reasons := slotTimes(t, usecase, mondayDate)
	assert.Len(t, times, 6)
	assert.Empty(t, reasons)
}

func TestGetDaySlotsClosedDays(t *testing.T) {
	usecase, _ := newTestUsecase(t, &fakeCalendar{}, &fakeOverlay{})

	t.Run("Closed Weekday", func(t *testing.T) {
		slots, err := usecase.GetDaySlots(context.Background(), "2026-09-06") // Sunday
		assert.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("Holiday", func(t *testing.T) {
		slots, err := usecase.GetDaySlots(context.Background(), "2026-09-14")
		assert.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("Malformed Date", func(t *testing.T) {
		_, err := usecase.GetDaySlots(context.Background(), "07-09-2026")
		assert.Error(t, err)
	})
}

func TestGetDaySlotsIdempotent(t *testing.T) {
	calendar := &fakeCalendar{events: []contracts.CalendarEvent{{
		ID:              "828840291",
		Start:           time.Date(2026, 9, 7, 4, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	}}}
	usecase, _ := newTestUsecase(t, calendar, &fakeOverlay{})

	first, err := usecase.GetDaySlots(context.Background(), mondayDate)
	assert.NoError(t, err)
	second, err := usecase.GetDaySlots(context.Background(), mondayDate)
	assert.NoError(t, err)
	assert.Equal(t, first, second, "same snapshot in, same slots out")
}

func TestValidateSlot(t *testing.T) {
	calendar := &fakeCalendar{events: []contracts.CalendarEvent{{
		ID:              "828840291",
		Start:           time.Date(2026, 9, 7, 4, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	}}}
	usecase, _ := newTestUsecase(t, calendar, &fakeOverlay{})
	ctx := context.Background()

	t.Run("Valid Slot", func(t *testing.T) {
		assert.NoError(t, usecase.ValidateSlot(ctx, mondayDate, "11:00", 30, ""))
	})

	t.Run("Out Of Hours", func(t *testing.T) {
		assert.Error(t, usecase.ValidateSlot(ctx, mondayDate, "13:00", 30, ""))
	})

	t.Run("End Past Close", func(t *testing.T) {
		assert.Error(t, usecase.ValidateSlot(ctx, mondayDate, "11:45", 30, ""))
	})

	t.Run("Holiday", func(t *testing.T) {
		assert.Error(t, usecase.ValidateSlot(ctx, "2026-09-14", "10:00", 30, ""))
	})

	t.Run("Insufficient Notice", func(t *testing.T) {
		zone, err := displaytime.LoadZone("Asia/Dhaka")
		assert.NoError(t, err)
		late, _ := newTestUsecase(t, &fakeCalendar{}, &fakeOverlay{})
		late.now = fixedNow(zone, mondayDate, "08:30")
		assert.Error(t, late.ValidateSlot(ctx, mondayDate, "09:00", 30, ""))
		assert.NoError(t, late.ValidateSlot(ctx, mondayDate, "11:00", 30, ""))
	})

	t.Run("Conflict", func(t *testing.T) {
		assert.Error(t, usecase.ValidateSlot(ctx, mondayDate, "10:00", 30, ""))
	})

	t.Run("Buffered Neighbour Conflicts", func(t *testing.T) {
		assert.Error(t, usecase.ValidateSlot(ctx, mondayDate, "10:30", 30, ""))
	})

	t.Run("Excluded Event Does Not Conflict With Itself", func(t *testing.T) {
		assert.NoError(t, usecase.ValidateSlot(ctx, mondayDate, "10:00", 30, "828840291"))
	})
}
