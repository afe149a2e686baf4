package constvars

type contextKey string

// Context keys
const (
	CONTEXT_REQUEST_ID_KEY           contextKey = "requestID"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY contextKey = "isClientRequestID"
)

// Date and clock layouts used across the scheduling core.
const (
	LayoutBookingDate = "2006-01-02"
	LayoutClock       = "15:04"
)

// Slot block reasons surfaced on availability responses.
const (
	SlotReasonBusy   = "busy"
	SlotReasonNotice = "notice"
)

// Notification envelope kinds.
const (
	NotificationKindCreated     = "created"
	NotificationKindRescheduled = "rescheduled"
	NotificationKindCancelled   = "cancelled"
)

// Success messages
const (
	GetAvailabilitySuccessMessage   = "successfully retrieved availability"
	CreateBookingSuccessMessage     = "successfully created booking"
	RescheduleBookingSuccessMessage = "successfully rescheduled booking"
	CancelBookingSuccessMessage     = "successfully cancelled booking"
)
