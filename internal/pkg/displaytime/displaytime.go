// Package displaytime normalizes every instant the scheduling core touches
// into the single configured display timezone.
//
// The core currency is LocalInstant: the wall-clock calendar fields an
// observer in the display timezone would read, reinterpreted as UTC. A
// LocalInstant is not a real point on the UTC timeline; it is only meaningful
// when compared against other LocalInstants produced by the same Zone. Code
// outside this package must never mix a LocalInstant with a true instant.
package displaytime

import (
	"fmt"
	"time"

	"eduvoyage-service/internal/pkg/constvars"
)

// Zone wraps the display timezone. Loaded once at startup and immutable.
type Zone struct {
	loc  *time.Location
	name string
}

func LoadZone(name string) (Zone, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Zone{}, fmt.Errorf("displaytime: load zone %q: %w", name, err)
	}
	return Zone{loc: loc, name: name}, nil
}

func (z Zone) Name() string {
	return z.name
}

// LocalInstant is a display-timezone wall clock reinterpreted as UTC. The
// wrapper keeps raw time.Time values from leaking in and out by accident.
type LocalInstant struct {
	t time.Time
}

// FromInstant converts a real instant into the wall clock of the display
// timezone. Daylight transitions are handled by the timezone database, not by
// offset arithmetic.
func (z Zone) FromInstant(t time.Time) LocalInstant {
	w := t.In(z.loc)
	return LocalInstant{time.Date(w.Year(), w.Month(), w.Day(), w.Hour(), w.Minute(), w.Second(), 0, time.UTC)}
}

// FromDateClock builds a LocalInstant from a "2006-01-02" date and a "15:04"
// time of day. Both are parsed strictly; an invalid value is an error, never
// a silent default. No Zone is needed: wall-clock fields map onto the
// fake-UTC timeline identically for every zone.
func FromDateClock(date, clock string) (LocalInstant, error) {
	d, err := time.Parse(constvars.LayoutBookingDate, date)
	if err != nil {
		return LocalInstant{}, fmt.Errorf("displaytime: invalid date %q: %w", date, err)
	}
	c, err := time.Parse(constvars.LayoutClock, clock)
	if err != nil {
		return LocalInstant{}, fmt.Errorf("displaytime: invalid clock %q: %w", clock, err)
	}
	return LocalInstant{time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, time.UTC)}, nil
}

// ToInstant maps a LocalInstant back onto the real timeline of the display
// timezone. Used only at the edges (remote provider payloads, ICS artifacts).
func (z Zone) ToInstant(li LocalInstant) time.Time {
	t := li.t
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, z.loc)
}

// DateWeekday returns the weekday of a calendar date as a calendar concept,
// independent of any instant.
func DateWeekday(date string) (time.Weekday, error) {
	d, err := time.Parse(constvars.LayoutBookingDate, date)
	if err != nil {
		return time.Sunday, fmt.Errorf("displaytime: invalid date %q: %w", date, err)
	}
	return d.Weekday(), nil
}

func (li LocalInstant) AddMinutes(m int) LocalInstant {
	return LocalInstant{li.t.Add(time.Duration(m) * time.Minute)}
}

func (li LocalInstant) Before(other LocalInstant) bool {
	return li.t.Before(other.t)
}

func (li LocalInstant) After(other LocalInstant) bool {
	return li.t.After(other.t)
}

func (li LocalInstant) Equal(other LocalInstant) bool {
	return li.t.Equal(other.t)
}

// Clock renders the time-of-day component as "15:04".
func (li LocalInstant) Clock() string {
	return li.t.Format(constvars.LayoutClock)
}

// DateKey renders the calendar-date component as "2006-01-02".
func (li LocalInstant) DateKey() string {
	return li.t.Format(constvars.LayoutBookingDate)
}

// Unix exposes the fake-UTC seconds for serialization (overlay entries). The
// value round-trips through FromUnix and is comparable with other fake-UTC
// values only.
func (li LocalInstant) Unix() int64 {
	return li.t.Unix()
}

func FromUnix(sec int64) LocalInstant {
	return LocalInstant{time.Unix(sec, 0).UTC()}
}
