package contracts

import "context"

// NotificationEnvelope is the JSON body POSTed to the configured webhook after
// a booking operation succeeds. Delivery is best-effort; failures are logged
// and never surfaced to the booker.
type NotificationEnvelope struct {
	Kind            string `json:"kind"` // "created" | "rescheduled" | "cancelled"
	BookerName      string `json:"booker_name"`
	BookerEmail     string `json:"booker_email"`
	EventID         string `json:"event_id"`
	JoinURL         string `json:"join_url,omitempty"`
	StartDate       string `json:"start_date,omitempty"`
	StartTime       string `json:"start_time,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	ICSFileName     string `json:"ics_file_name,omitempty"`
	ICSBase64       string `json:"ics_base64,omitempty"`
	CalendarLink    string `json:"calendar_link,omitempty"`
	RescheduleLink  string `json:"reschedule_link,omitempty"`
	CancelLink      string `json:"cancel_link,omitempty"`
}

// NotifierService dispatches envelopes toward the webhook. Implementations
// must return quickly and never block the booking path.
type NotifierService interface {
	Dispatch(ctx context.Context, envelope NotificationEnvelope)
}
