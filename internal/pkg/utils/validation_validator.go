package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	regexClock       = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	regexBookingDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("hhmm", validateClock)
	validate.RegisterValidation("bookdate", validateBookingDate)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// validateClock accepts a 24h wall-clock value such as "09:00" or "17:30".
func validateClock(fl validator.FieldLevel) bool {
	return regexClock.MatchString(fl.Field().String())
}

// validateBookingDate accepts a calendar date such as "2026-09-01". Only the
// shape is checked here; strict calendar validation happens in displaytime.
func validateBookingDate(fl validator.FieldLevel) bool {
	return regexBookingDate.MatchString(fl.Field().String())
}
