package constvars

// Structured logging field keys.
const (
	LoggingRequestIDKey      = "request_id"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingDateKey           = "date"
	LoggingEventIDKey        = "event_id"
	LoggingBookerEmailKey    = "booker_email"
	LoggingSlotTimeKey       = "slot_time"
	LoggingQueueMessageIDKey = "queue_message_id"
)
