package responses

// TimeSlot is one offerable start time on the queried date, in display-timezone
// wall clock. Reason is set only when Disabled is true.
type TimeSlot struct {
	Time     string `json:"time"`
	Disabled bool   `json:"disabled"`
	Reason   string `json:"reason,omitempty"`
}
