package responses

type BookingConfirmation struct {
	EventID         string `json:"event_id"`
	JoinURL         string `json:"join_url"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"duration_minutes"`
	Timezone        string `json:"timezone"`

	ICSFileName string `json:"ics_file_name"`
	ICSBase64   string `json:"ics_base64"`

	GoogleCalendarLink string `json:"google_calendar_link"`
	RescheduleLink     string `json:"reschedule_link"`
	CancelLink         string `json:"cancel_link"`
}
