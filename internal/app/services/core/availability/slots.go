package availability

import (
	"eduvoyage-service/internal/pkg/constvars"
	"eduvoyage-service/internal/pkg/displaytime"
	"eduvoyage-service/internal/pkg/dto/responses"
)

// slotGridParams collects the policy knobs the grid depends on. The values
// come from config and never change after startup.
type slotGridParams struct {
	StepMinutes     int
	DurationMinutes int
	NoticeMinutes   int
	BufferMinutes   int
}

// buildDaySlots produces the ordered slot list for one calendar date. It is a
// pure function of its inputs: no clock reads, no remote calls, no hidden
// state, so the same snapshot always yields the same list.
//
// The date is assumed valid and not a holiday; weekday lookup and holiday
// filtering happen in the caller. A grid point is emitted only if its full
// duration fits before close. When a slot is both buffered-busy and inside
// the notice window, busy wins: it is the more actionable signal.
func buildDaySlots(date string, windows []dayWindow, params slotGridParams, now displaytime.LocalInstant, busy []BusyInterval) []responses.TimeSlot {
	noticeCutoff := now.AddMinutes(params.NoticeMinutes)

	slots := make([]responses.TimeSlot, 0, 64)
	for _, w := range windows {
		open := instantAt(date, w.Open)
		close := instantAt(date, w.Close)

		for start := open; !start.AddMinutes(params.DurationMinutes).After(close); start = start.AddMinutes(params.StepMinutes) {
			end := start.AddMinutes(params.DurationMinutes)

			slot := responses.TimeSlot{Time: start.Clock()}
			switch {
			case overlapsBuffered(start, end, busy, params.BufferMinutes):
				slot.Disabled = true
				slot.Reason = constvars.SlotReasonBusy
			case start.Before(noticeCutoff):
				slot.Disabled = true
				slot.Reason = constvars.SlotReasonNotice
			}
			slots = append(slots, slot)
		}
	}
	return slots
}
