package bookings

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"time"

	ics "github.com/arran4/golang-ical"
)

// calendarArtifacts bundles the add-to-calendar material sent back with every
// confirmation: an ICS attachment and a Google Calendar deep link. All times
// inside are true UTC instants, not the fake-UTC values the scheduling core
// computes with.
type calendarArtifacts struct {
	ICSFileName        string
	ICSBase64          string
	GoogleCalendarLink string
}

func buildCalendarArtifacts(eventID, topic, joinURL string, start time.Time, durationMinutes int) calendarArtifacts {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)
	cal.SetProductId("-//EduVoyage//Booking//EN")

	event := cal.AddEvent(fmt.Sprintf("booking-%s@eduvoyage", eventID))
	event.SetCreatedTime(time.Now().UTC())
	event.SetDtStampTime(time.Now().UTC())
	event.SetStartAt(start.UTC())
	event.SetEndAt(end.UTC())
	event.SetSummary(topic)
	if joinURL != "" {
		event.SetLocation(joinURL)
		event.SetDescription("Join link: " + joinURL)
		event.SetURL(joinURL)
	}

	return calendarArtifacts{
		ICSFileName:        fmt.Sprintf("booking-%s.ics", eventID),
		ICSBase64:          base64.StdEncoding.EncodeToString([]byte(cal.Serialize())),
		GoogleCalendarLink: googleCalendarLink(topic, joinURL, start, end),
	}
}

func googleCalendarLink(topic, joinURL string, start, end time.Time) string {
	const layout = "20060102T150405Z"

	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", topic)
	params.Set("dates", start.UTC().Format(layout)+"/"+end.UTC().Format(layout))
	if joinURL != "" {
		params.Set("details", "Join link: "+joinURL)
		params.Set("location", joinURL)
	}
	return "https://calendar.google.com/calendar/render?" + params.Encode()
}
