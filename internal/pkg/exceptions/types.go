package exceptions

import (
	"eduvoyage-service/internal/pkg/constvars"
	"fmt"
)

var (
	// Request parsing and validation
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrCodeInvalidRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrCodeInvalidRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotParseDate = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrCodeInvalidRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseDate)
	}
	ErrCannotParseTimeOfDay = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrCodeInvalidRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseTimeOfDay)
	}

	// Scheduling outcomes
	ErrSlotOutOfHours = func() *CustomError {
		return BuildNewCustomError(nil, constvars.StatusUnprocessableEntity, constvars.ErrCodeOutOfHours, constvars.ErrClientOutOfHours, constvars.ErrDevSlotOutsideBusinessHours)
	}
	ErrSlotInsufficientNotice = func() *CustomError {
		return BuildNewCustomError(nil, constvars.StatusUnprocessableEntity, constvars.ErrCodeInsufficientNotice, constvars.ErrClientInsufficientNotice, constvars.ErrDevSlotInsideNoticeWindow)
	}
	ErrSlotConflict = func() *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, constvars.ErrCodeSlotConflict, constvars.ErrClientSlotConflict, constvars.ErrDevSlotOverlapsBusyInterval)
	}

	// Capability outcomes. A single undifferentiated rejection regardless of
	// which half of the capability failed.
	ErrCapabilityRejected = func() *CustomError {
		return BuildNewCustomError(nil, constvars.StatusForbidden, constvars.ErrCodeCapabilityRejected, constvars.ErrClientCapabilityRejected, constvars.ErrDevCapabilitySignature)
	}
	ErrCapabilityExpired = func() *CustomError {
		return BuildNewCustomError(nil, constvars.StatusForbidden, constvars.ErrCodeCapabilityRejected, constvars.ErrClientCapabilityRejected, constvars.ErrDevCapabilityExpired)
	}

	// Calendar provider failures
	ErrCalendarToken = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrCodeUpstreamFailure, constvars.ErrClientUpstreamFailure, constvars.ErrDevCalendarToken)
	}
	ErrCalendarListEvents = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrCodeUpstreamFailure, constvars.ErrClientUpstreamFailure, constvars.ErrDevCalendarListEvents)
	}
	ErrCalendarGetEvent = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrCodeUpstreamFailure, constvars.ErrClientUpstreamFailure, constvars.ErrDevCalendarGetEvent)
	}
	ErrCalendarCreateEvent = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrCodeUpstreamFailure, constvars.ErrClientUpstreamFailure, constvars.ErrDevCalendarCreateEvent)
	}
	ErrCalendarUpdateEvent = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrCodeUpstreamFailure, constvars.ErrClientUpstreamFailure, constvars.ErrDevCalendarUpdateEvent)
	}
	ErrCalendarDeleteEvent = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrCodeUpstreamFailure, constvars.ErrClientUpstreamFailure, constvars.ErrDevCalendarDeleteEvent)
	}

	// HTTP plumbing
	ErrCreateHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrCodeInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCreateHTTPRequest)
	}
	ErrSendHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrCodeUpstreamFailure, constvars.ErrClientUpstreamFailure, constvars.ErrDevSendHTTPRequest)
	}
	ErrDecodeResponse = func(err error, source string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrCodeUpstreamFailure, constvars.ErrClientUpstreamFailure, fmt.Sprintf("%s from %s", constvars.ErrDevDecodeResponse, source))
	}

	// Infrastructure
	ErrRedisOperation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrCodeInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisOperation)
	}
	ErrQueuePublish = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrCodeInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevQueuePublish)
	}

	// Server
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrCodeUpstreamFailure, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrMissingRequestID = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrCodeInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMissingRequestID)
	}
)
