package availability

import (
	"time"

	"eduvoyage-service/internal/pkg/displaytime"
)

// clock holds a local wall time (hour and minute).
type clock struct {
	H int
	M int
}

// dayWindow defines an inclusive open and close wall-clock window for a
// single day. A slot may start at any grid point whose full duration still
// fits before close.
type dayWindow struct {
	Open  clock
	Close clock
}

// weeklyPlan lists zero or more windows per weekday. A weekday with no
// windows is closed.
type weeklyPlan struct {
	Sunday    []dayWindow
	Monday    []dayWindow
	Tuesday   []dayWindow
	Wednesday []dayWindow
	Thursday  []dayWindow
	Friday    []dayWindow
	Saturday  []dayWindow
}

func (wp weeklyPlan) forWeekday(wd time.Weekday) []dayWindow {
	switch wd {
	case time.Sunday:
		return wp.Sunday
	case time.Monday:
		return wp.Monday
	case time.Tuesday:
		return wp.Tuesday
	case time.Wednesday:
		return wp.Wednesday
	case time.Thursday:
		return wp.Thursday
	case time.Friday:
		return wp.Friday
	case time.Saturday:
		return wp.Saturday
	default:
		return nil
	}
}

// BusyInterval is one existing event on the queried date, both ends in the
// fake-UTC convention. The buffer halo is applied at comparison time, not
// stored here.
type BusyInterval struct {
	Start displaytime.LocalInstant
	End   displaytime.LocalInstant
}
