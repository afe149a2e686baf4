package utils

import (
	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return uuid.NewString()
}

// GenerateMessageID identifies a queued notification envelope across retries.
func GenerateMessageID() string {
	return uuid.NewString()
}
