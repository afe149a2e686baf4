package constvars

// Validation messages, mapped by validator tag.
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"hhmm":     "must be a time of day in HH:MM format",
	"bookdate": "must be a calendar date in YYYY-MM-DD format",
}

// Machine-readable error codes surfaced to clients.
const (
	ErrCodeInvalidRequest      = "invalid_request"
	ErrCodeOutOfHours          = "out_of_hours"
	ErrCodeInsufficientNotice  = "insufficient_notice"
	ErrCodeSlotConflict        = "slot_conflict"
	ErrCodeCapabilityRejected  = "capability_rejected"
	ErrCodeUpstreamFailure     = "upstream_failure"
	ErrCodeInternalServerError = "internal_error"
)

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientOutOfHours                    = "requested time is not in allowed hours"
	ErrClientInsufficientNotice            = "advance notice not met for the requested time"
	ErrClientSlotConflict                  = "slot unavailable"
	ErrClientCapabilityRejected            = "cannot manage this booking"
	ErrClientUpstreamFailure               = "the scheduling provider is currently unavailable"
)

// Error messages for developers
const (
	ErrDevInvalidInput         = "invalid input"
	ErrDevValidationFailed     = "validation failed"
	ErrDevCannotParseJSON      = "cannot parse JSON"
	ErrDevCannotParseDate      = "cannot parse date"
	ErrDevCannotParseTimeOfDay = "cannot parse time of day"
	ErrDevCreateHTTPRequest    = "failed to create HTTP request"
	ErrDevSendHTTPRequest      = "failed to send HTTP request"
	ErrDevDecodeResponse       = "failed to decode response body"

	// Scheduling messages
	ErrDevSlotOutsideBusinessHours = "slot falls outside the configured business hours"
	ErrDevSlotInsideNoticeWindow   = "slot start is inside the minimum notice window"
	ErrDevSlotOverlapsBusyInterval = "slot overlaps a buffered busy interval"

	// Capability messages
	ErrDevCapabilitySignature = "capability payload or signature did not verify"
	ErrDevCapabilityExpired   = "capability is older than the configured max age"

	// Calendar provider messages
	ErrDevCalendarToken       = "failed to obtain calendar provider token"
	ErrDevCalendarListEvents  = "failed to list calendar events"
	ErrDevCalendarGetEvent    = "failed to get calendar event"
	ErrDevCalendarCreateEvent = "failed to create calendar event"
	ErrDevCalendarUpdateEvent = "failed to update calendar event"
	ErrDevCalendarDeleteEvent = "failed to delete calendar event"

	// Redis messages
	ErrDevRedisOperation = "redis operation failed"

	// Queue messages
	ErrDevQueuePublish = "failed to publish message to queue"

	// Server messages
	ErrDevServerDeadlineExceeded = "deadline exceeded"
	ErrDevMissingRequestID       = "request id missing from context"
)
