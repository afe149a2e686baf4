package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"eduvoyage-service/internal/app/config"
	"eduvoyage-service/internal/pkg/constvars"
	"eduvoyage-service/internal/pkg/displaytime"
)

// BuildWeeklyPlan maps the per-weekday "HH:MM-HH:MM" config strings to a
// weeklyPlan. It validates strictly and fails fast on the first invalid
// entry so a misconfigured calendar stops the process at startup instead of
// silently offering wrong hours.
func BuildWeeklyPlan(booking config.Booking) (weeklyPlan, error) {
	var wp weeklyPlan
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		raw := strings.TrimSpace(booking.HoursByWeekday[int(wd)])
		if raw == "" {
			continue
		}
		open, close, err := parseWindow(raw)
		if err != nil {
			return weeklyPlan{}, fmt.Errorf("hours for %s: %w", wd, err)
		}
		appendWindow(&wp, wd, dayWindow{Open: open, Close: close})
	}
	return wp, nil
}

// validateGridPolicy rejects numeric policy values the slot grid cannot run
// on. A non-positive step or duration would make the grid loop endless, so a
// misconfiguration stops the process at startup like a malformed window does.
func validateGridPolicy(booking config.Booking) error {
	if booking.SlotStepMinutes <= 0 {
		return fmt.Errorf("slot step minutes must be positive, got %d", booking.SlotStepMinutes)
	}
	if booking.SlotDurationMinutes <= 0 {
		return fmt.Errorf("slot duration minutes must be positive, got %d", booking.SlotDurationMinutes)
	}
	if booking.MinimumNoticeMinutes < 0 {
		return fmt.Errorf("minimum notice minutes must not be negative, got %d", booking.MinimumNoticeMinutes)
	}
	if booking.BufferMinutes < 0 {
		return fmt.Errorf("buffer minutes must not be negative, got %d", booking.BufferMinutes)
	}
	return nil
}

// BuildHolidaySet validates the configured holiday dates and indexes them by
// date key.
func BuildHolidaySet(dates []string) (map[string]bool, error) {
	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		if _, err := time.Parse(constvars.LayoutBookingDate, d); err != nil {
			return nil, fmt.Errorf("holiday %q: %w", d, err)
		}
		set[d] = true
	}
	return set, nil
}

func parseWindow(raw string) (clock, clock, error) {
	parts := strings.Split(raw, "-")
	if len(parts) != 2 {
		return clock{}, clock{}, fmt.Errorf("invalid window %q, want HH:MM-HH:MM", raw)
	}
	open, ok := parseClock(parts[0])
	if !ok {
		return clock{}, clock{}, fmt.Errorf("invalid open time %q", parts[0])
	}
	close, ok := parseClock(parts[1])
	if !ok {
		return clock{}, clock{}, fmt.Errorf("invalid close time %q", parts[1])
	}
	if open.H*60+open.M >= close.H*60+close.M {
		return clock{}, clock{}, fmt.Errorf("open %02d:%02d is not before close %02d:%02d", open.H, open.M, close.H, close.M)
	}
	return open, close, nil
}

func parseClock(s string) (clock, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return clock{}, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return clock{}, false
	}
	return clock{H: h, M: m}, true
}

func appendWindow(wp *weeklyPlan, wd time.Weekday, w dayWindow) {
	switch wd {
	case time.Sunday:
		wp.Sunday = append(wp.Sunday, w)
	case time.Monday:
		wp.Monday = append(wp.Monday, w)
	case time.Tuesday:
		wp.Tuesday = append(wp.Tuesday, w)
	case time.Wednesday:
		wp.Wednesday = append(wp.Wednesday, w)
	case time.Thursday:
		wp.Thursday = append(wp.Thursday, w)
	case time.Friday:
		wp.Friday = append(wp.Friday, w)
	case time.Saturday:
		wp.Saturday = append(wp.Saturday, w)
	}
}

func (c clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.H, c.M)
}

// instantAt pins a validated clock onto a date. The inputs were validated at
// startup, so a failure here is a programmer error.
func instantAt(date string, c clock) displaytime.LocalInstant {
	li, err := displaytime.FromDateClock(date, c.String())
	if err != nil {
		panic(fmt.Sprintf("availability: instantAt(%q, %q): %v", date, c.String(), err))
	}
	return li
}

// overlapsBuffered reports whether [candidateStart, candidateEnd) intersects
// any busy interval expanded by bufferMinutes on both ends. Each existing
// event gets its own halo; the test is the standard half-open overlap.
func overlapsBuffered(candidateStart, candidateEnd displaytime.LocalInstant, busy []BusyInterval, bufferMinutes int) bool {
	for _, b := range busy {
		bufferedStart := b.Start.AddMinutes(-bufferMinutes)
		bufferedEnd := b.End.AddMinutes(bufferMinutes)
		if candidateStart.Before(bufferedEnd) && candidateEnd.After(bufferedStart) {
			return true
		}
	}
	return false
}
